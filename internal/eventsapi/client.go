// Package eventsapi is the client for the platform's persistence service:
// event CRUD, the dashboard list, and the image/participant uploads.
package eventsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"stagehand/internal/event"
)

// Config holds configuration for the persistence client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks JSON to the events backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the given backend.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// eventPayload is the snake_case body for create and update.
type eventPayload struct {
	Name             *string  `json:"name"`
	EventType        *string  `json:"event_type"`
	ParticipantCount *int     `json:"participant_count"`
	ScoringMode      *string  `json:"scoring_mode"`
	ScoringAudience  *float64 `json:"scoring_audience"`
	ScoringJudge     *float64 `json:"scoring_judge"`
	Location         *string  `json:"location"`
	StartDate        *string  `json:"start_date"`
	EndDate          *string  `json:"end_date"`
	Sponsor          *string  `json:"sponsor"`
	Rules            *string  `json:"rules"`
	AudienceLimit    *int     `json:"audience_limit"`
	EventCode        string   `json:"event_code"`
}

func payloadFromRecord(rec event.Record) eventPayload {
	p := eventPayload{
		Name:             rec.EventName,
		EventType:        rec.EventType,
		ParticipantCount: rec.ParticipantCount,
		ScoringAudience:  rec.ScoringAudience,
		ScoringJudge:     rec.ScoringJudge,
		Location:         rec.Venue,
		StartDate:        rec.StartDateTime,
		EndDate:          rec.EndDateTime,
		Sponsor:          rec.Sponsor,
		Rules:            rec.Rules,
		AudienceLimit:    rec.AudienceLimit,
		EventCode:        rec.EventCode,
	}
	if rec.ScoringMode != nil {
		m := string(*rec.ScoringMode)
		p.ScoringMode = &m
	}
	return p
}

// Summary is one dashboard row from the list endpoint.
type Summary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Sport            string `json:"sport"`
	Format           string `json:"format"`
	Status           string `json:"status"`
	StartDate        string `json:"start_date"`
	ParticipantCount int    `json:"athletes"`
	EventCode        string `json:"event_code"`
	Location         string `json:"location"`
}

// CreateEvent persists the record and returns the server id. A short event
// code is generated client-side when the record carries none.
func (c *Client) CreateEvent(ctx context.Context, rec event.Record) (string, error) {
	if rec.EventCode == "" {
		rec.EventCode = ShortCode()
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/events", payloadFromRecord(rec), &out); err != nil {
		return "", fmt.Errorf("creating event: %w", err)
	}
	return out.ID, nil
}

// UpdateEvent replaces the stored fixed fields for id. Idempotent.
func (c *Client) UpdateEvent(ctx context.Context, id string, rec event.Record) error {
	if err := c.doJSON(ctx, http.MethodPut, "/events/"+id, payloadFromRecord(rec), nil); err != nil {
		return fmt.Errorf("updating event %s: %w", id, err)
	}
	return nil
}

// GetEvent hydrates a record from the server for resuming.
func (c *Client) GetEvent(ctx context.Context, id string) (event.Record, error) {
	var p eventPayload
	if err := c.doJSON(ctx, http.MethodGet, "/events/"+id, nil, &p); err != nil {
		return event.Record{}, fmt.Errorf("fetching event %s: %w", id, err)
	}
	rec := event.Record{
		ID:               id,
		EventCode:        p.EventCode,
		EventName:        p.Name,
		EventType:        p.EventType,
		ParticipantCount: p.ParticipantCount,
		ScoringAudience:  p.ScoringAudience,
		ScoringJudge:     p.ScoringJudge,
		Venue:            p.Location,
		StartDateTime:    p.StartDate,
		EndDateTime:      p.EndDate,
		Sponsor:          p.Sponsor,
		Rules:            p.Rules,
		AudienceLimit:    p.AudienceLimit,
	}
	if p.ScoringMode != nil {
		switch m := event.ScoringMode(*p.ScoringMode); m {
		case event.ScoringJudges, event.ScoringAudience, event.ScoringMixed:
			rec.ScoringMode = &m
		}
	}
	return rec, nil
}

// ListEvents returns the dashboard rows.
func (c *Client) ListEvents(ctx context.Context) ([]Summary, error) {
	var out []Summary
	if err := c.doJSON(ctx, http.MethodGet, "/events", nil, &out); err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return out, nil
}

// UploadImage attaches an image to the event.
func (c *Client) UploadImage(ctx context.Context, id, filename string, data []byte) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("creating image part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("writing image part: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing image upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/events/"+id+"/image", &body)
	if err != nil {
		return fmt.Errorf("building image upload: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("uploading image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("uploading image: status %d", resp.StatusCode)
	}
	return nil
}

// RowError is a per-row problem from an import, using file row numbers
// (header row is 1, first data row is 2).
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportSummary is the server's verdict on a participant upload.
type ImportSummary struct {
	TotalRows int        `json:"total_rows"`
	Created   int        `json:"created"`
	Skipped   int        `json:"skipped"`
	Errors    []RowError `json:"errors"`
}

// ImportParticipants uploads a participant CSV for the event.
func (c *Client) ImportParticipants(ctx context.Context, id, filename string, data []byte) (ImportSummary, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("creating csv part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return ImportSummary{}, fmt.Errorf("writing csv part: %w", err)
	}
	if err := w.Close(); err != nil {
		return ImportSummary{}, fmt.Errorf("finalizing csv upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/events/"+id+"/participants/import", &body)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("building csv upload: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("uploading participants: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("reading import response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return ImportSummary{}, fmt.Errorf("uploading participants: status %d", resp.StatusCode)
	}
	var sum ImportSummary
	if err := json.Unmarshal(raw, &sum); err != nil {
		return ImportSummary{}, fmt.Errorf("parsing import response: %w", err)
	}
	return sum, nil
}

// doJSON runs one JSON request/response cycle against the backend.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
	}
	return nil
}
