package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/config"
)

// Client talks to the Mantis REST API for ticket write-backs.
type Client interface {
	UpdateCustomField(ctx context.Context, ticketID string, fieldID int, fieldName, value string) error
	UpdateHandler(ctx context.Context, ticketID, handler string) error
	AddNote(ctx context.Context, ticketID, text string) error
}

// RemoteError carries the upstream tracker's HTTP status and message.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tracker responded %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("tracker responded %d", e.Status)
}

type restClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a REST client from tracker configuration.
func NewClient(cfg config.TrackerConfig, logger *zap.Logger) Client {
	return &restClient{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		logger:     logger,
	}
}

type customFieldRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type customFieldUpdate struct {
	Field customFieldRef `json:"field"`
	Value string         `json:"value"`
}

type issuePatch struct {
	CustomFields []customFieldUpdate `json:"custom_fields,omitempty"`
	Handler      *handlerRef         `json:"handler,omitempty"`
}

type handlerRef struct {
	Name string `json:"name"`
}

type notePayload struct {
	Text      string `json:"text"`
	ViewState struct {
		Name string `json:"name"`
	} `json:"view_state"`
}

func (c *restClient) UpdateCustomField(ctx context.Context, ticketID string, fieldID int, fieldName, value string) error {
	patch := issuePatch{
		CustomFields: []customFieldUpdate{{
			Field: customFieldRef{ID: fieldID, Name: fieldName},
			Value: value,
		}},
	}
	return c.patchIssue(ctx, ticketID, patch)
}

func (c *restClient) UpdateHandler(ctx context.Context, ticketID, handler string) error {
	return c.patchIssue(ctx, ticketID, issuePatch{Handler: &handlerRef{Name: handler}})
}

func (c *restClient) AddNote(ctx context.Context, ticketID, text string) error {
	payload := notePayload{Text: text}
	payload.ViewState.Name = "public"

	url := fmt.Sprintf("%s/api/rest/issues/%s/notes", c.baseURL, ticketID)
	return c.send(ctx, http.MethodPost, url, payload)
}

func (c *restClient) patchIssue(ctx context.Context, ticketID string, patch issuePatch) error {
	url := fmt.Sprintf("%s/api/rest/issues/%s", c.baseURL, ticketID)
	return c.send(ctx, http.MethodPatch, url, patch)
}

func (c *restClient) send(ctx context.Context, method, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("tracker call",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return c.remoteError(resp)
}

// remoteError extracts the tracker's own message when the error body
// is JSON, falling back to the bare status.
func (c *restClient) remoteError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &body)

	return &RemoteError{Status: resp.StatusCode, Message: body.Message}
}
