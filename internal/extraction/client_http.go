package extraction

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
)

// BackendConfig holds configuration for the backend extractor.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// BackendExtractor talks to the platform's extraction endpoint. The request
// goes out as multipart/form-data so an attached file rides along with the
// JSON parts.
type BackendExtractor struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackendExtractor builds an extractor for the given backend.
func NewBackendExtractor(cfg BackendConfig) *BackendExtractor {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &BackendExtractor{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Extract posts the window, the known-field snapshot, and any attachment to
// /ai/extract and decodes the snapshot response.
func (c *BackendExtractor) Extract(ctx context.Context, req Request) (*Response, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	messages, err := json.Marshal(req.Messages)
	if err != nil {
		return nil, fmt.Errorf("encoding messages: %w", err)
	}
	if err := w.WriteField("messages_json", string(messages)); err != nil {
		return nil, fmt.Errorf("writing messages part: %w", err)
	}

	known, err := json.Marshal(req.Known)
	if err != nil {
		return nil, fmt.Errorf("encoding known fields: %w", err)
	}
	if err := w.WriteField("known_fields_json", string(known)); err != nil {
		return nil, fmt.Errorf("writing known fields part: %w", err)
	}

	if att := req.Attachment; att != nil {
		part, err := w.CreateFormFile("file", att.Name)
		if err != nil {
			return nil, fmt.Errorf("creating file part: %w", err)
		}
		if _, err := part.Write(att.Data); err != nil {
			return nil, fmt.Errorf("writing file part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ai/extract", &body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading extraction response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extraction request failed: status %d: %s", httpResp.StatusCode, truncate(raw, 200))
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("parsing extraction response: %w", err)
	}
	return &resp, nil
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
