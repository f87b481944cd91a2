package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stagehand/internal/cache"
	"stagehand/internal/config"
	"stagehand/internal/eventsapi"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List your events",
	Long:  "Lists events from the platform, falling back to the local cache when the backend is unreachable.",
	RunE:  runEvents,
}

var resumeCmd = &cobra.Command{
	Use:   "resume <event-id>",
	Short: "Reopen the wizard for an existing event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWizard(args[0])
	},
}

var importCmd = &cobra.Command{
	Use:   "import <event-id> <file.csv>",
	Short: "Import participants from a CSV file",
	Long: `Imports participants into an event from a CSV with name and email columns.
Rows are validated locally first; the server's verdict is printed per row.`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and backend reachability",
	RunE:  runStatus,
}

func runEvents(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.BackendTimeout())
	defer cancel()

	var (
		serverList []eventsapi.Summary
		serverErr  error
		cachedList []eventsapi.Summary
		eventCache *cache.EventCache
	)

	// Backend fetch and cache load race in parallel; the cache copy is the
	// answer only when the server does not come through.
	g, gctx := errgroup.WithContext(ctx)
	if cfg.Backend.BaseURL != "" {
		client := eventsapi.NewClient(eventsapi.Config{
			BaseURL: cfg.Backend.BaseURL,
			Timeout: cfg.BackendTimeout(),
		})
		g.Go(func() error {
			serverList, serverErr = client.ListEvents(gctx)
			return nil
		})
	} else {
		serverErr = fmt.Errorf("no backend configured")
	}
	g.Go(func() error {
		c, err := cache.Open(cfg.Cache.Path)
		if err != nil {
			logger.Debug("cache unavailable", zap.Error(err))
			return nil
		}
		eventCache = c
		if list, err := c.LoadList(); err == nil {
			cachedList = list
		}
		return nil
	})
	_ = g.Wait()
	if eventCache != nil {
		defer eventCache.Close()
	}

	list := serverList
	source := "server"
	if serverErr != nil {
		logger.Debug("backend list failed", zap.Error(serverErr))
		list = cachedList
		source = "cache"
	} else if eventCache != nil {
		if err := eventCache.SaveList(serverList); err != nil {
			logger.Warn("failed to refresh event cache", zap.Error(err))
		}
	}

	if len(list) == 0 {
		if serverErr != nil {
			fmt.Printf("No events available (backend unreachable: %v)\n", serverErr)
			return nil
		}
		fmt.Println("No events yet. Run `stagehand` to create one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tSTART\tPARTICIPANTS\tCODE")
	for _, s := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			s.ID, s.Name, s.Status, s.StartDate, s.ParticipantCount, s.EventCode)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if source == "cache" {
		fmt.Println("\n(backend unreachable; showing cached data)")
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	eventID, path := args[0], args[1]
	if cfg.Backend.BaseURL == "" {
		return fmt.Errorf("no backend configured (set backend.base_url or STAGEHAND_BACKEND_URL)")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	total, localErrs, err := eventsapi.PreValidateCSV(strings.NewReader(string(data)))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("csv pre-validated",
		zap.Int("rows", total), zap.Int("problems", len(localErrs)))
	for _, e := range localErrs {
		fmt.Printf("row %d: %s\n", e.Row, e.Reason)
	}

	client := eventsapi.NewClient(eventsapi.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.BackendTimeout(),
	})
	sum, err := client.ImportParticipants(cmd.Context(), eventID, path, data)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d of %d rows (%d skipped)\n", sum.Created, sum.TotalRows, sum.Skipped)
	for _, e := range sum.Errors {
		fmt.Printf("row %d: %s\n", e.Row, e.Reason)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	workspace, err := os.Getwd()
	if err != nil {
		return err
	}

	fmt.Printf("Config file:  %s\n", config.Path(workspace))
	fmt.Printf("Provider:     %s\n", cfg.ResolveProvider())
	fmt.Printf("Cache:        %s\n", cfg.Cache.Path)

	if cfg.Backend.BaseURL == "" {
		fmt.Println("Backend:      not configured")
	} else {
		fmt.Printf("Backend:      %s ", cfg.Backend.BaseURL)
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		client := eventsapi.NewClient(eventsapi.Config{
			BaseURL: cfg.Backend.BaseURL,
			Timeout: 5 * time.Second,
		})
		if _, err := client.ListEvents(ctx); err != nil {
			fmt.Printf("(unreachable: %v)\n", err)
		} else {
			fmt.Println("(ok)")
		}
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("\nWarning: %v\n", err)
	}
	return nil
}
