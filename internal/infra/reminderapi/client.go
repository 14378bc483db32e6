package reminderapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
	"github.com/BlendB5/OnTrackr-sub001/internal/observability/logging"
	"github.com/BlendB5/OnTrackr-sub001/internal/observability/tracing"
)

const (
	remindersPath         = "/api/reminders"
	upcomingRemindersPath = "/api/reminders/upcoming"

	requestTimeout = 15 * time.Second
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: newHTTPClient(baseURL),
	}
}

func (c *Client) FetchAll(ctx context.Context) ([]domain.Reminder, error) {
	return c.fetch(ctx, "fetch_all", remindersPath)
}

func (c *Client) FetchUpcoming(ctx context.Context) ([]domain.Reminder, error) {
	return c.fetch(ctx, "fetch_upcoming", upcomingRemindersPath)
}

func (c *Client) fetch(ctx context.Context, operation, path string) (reminders []domain.Reminder, err error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = path

	ctx, span := tracing.StartExternalAPISpan(ctx, operation, u.String())
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	slog.DebugContext(ctx, "fetching reminders from OnTrackr",
		slog.String("operation", operation),
		slog.String("url", u.String()),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set("x-request-id", requestID)
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var payload []ReminderResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	reminders = make([]domain.Reminder, 0, len(payload))
	for _, r := range payload {
		if r.ID == "" || r.RemindAt.IsZero() {
			return nil, fmt.Errorf("%w: missing id or remindAt", ErrInvalidReminder)
		}
		reminders = append(reminders, r.toDomain())
	}

	slog.DebugContext(ctx, "successfully fetched reminders",
		slog.String("operation", operation),
		slog.Int("count", len(reminders)),
	)

	return reminders, nil
}
