// Package schedules speaks the external background-task scheduler API used to
// execute a trigger firing: create a one-shot schedule, fire it, tear it down.
package schedules

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hookfire/core/internal/models"
)

const (
	// DefaultBaseURL points at the hosted scheduler service.
	DefaultBaseURL = "https://client-api.bhindi.io/api/background-tasks"

	defaultTimezone = "UTC"
	requestTimeout  = 30 * time.Second
)

// ErrMissingScheduleID is returned when the create response carries no
// recognizable schedule identifier.
var ErrMissingScheduleID = errors.New("schedules: create response missing schedule id")

// StatusError reports a non-success response from the scheduler API.
type StatusError struct {
	Op     string
	Status int
	Reason string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("schedules: %s failed: %d %s", e.Op, e.Status, e.Reason)
}

// Client calls the scheduler API. Stateless and safe for concurrent use; the
// caller's bearer token is passed per call.
type Client struct {
	baseURL    string
	timezone   string
	httpClient *http.Client
}

// New creates a scheduler client. Empty baseURL/timezone fall back to defaults.
func New(baseURL, timezone string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if strings.TrimSpace(timezone) == "" {
		timezone = defaultTimezone
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timezone:   timezone,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// CreateRequest holds the inputs for one ephemeral schedule.
type CreateRequest struct {
	Title          string
	Instructions   string
	Context        []models.ContextEntry
	CronExpression string
}

type textFragment struct {
	Label   string `json:"label"`
	Content string `json:"content"`
}

type createBody struct {
	Title string `json:"title"`
	Input struct {
		Text []textFragment `json:"text"`
	} `json:"input"`
	Recurring      bool   `json:"recurring"`
	CronExpression string `json:"cronExpression"`
}

// CreateSchedule registers a one-shot schedule and returns its identifier.
func (c *Client) CreateSchedule(ctx context.Context, token string, req CreateRequest) (string, error) {
	body := createBody{
		Title:          req.Title,
		Recurring:      false,
		CronExpression: req.CronExpression,
	}
	body.Input.Text = make([]textFragment, 0, len(req.Context)+1)
	body.Input.Text = append(body.Input.Text, textFragment{Label: "Instructions", Content: req.Instructions})
	for _, entry := range req.Context {
		body.Input.Text = append(body.Input.Text, textFragment{Label: entry.Label, Content: entry.Content})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/schedules", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	c.setHeaders(httpReq, token)
	httpReq.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("schedules: create request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Op: "create", Status: resp.StatusCode, Reason: resp.Status}
	}
	return extractScheduleID(raw)
}

// TriggerSchedule fires a previously created schedule immediately and returns
// the opaque response text.
func (c *Client) TriggerSchedule(ctx context.Context, token, scheduleID string) (string, error) {
	return c.do(ctx, token, "trigger", http.MethodPost, "/schedules/"+scheduleID+"/trigger")
}

// DeleteSchedule removes an ephemeral schedule and returns the opaque response text.
func (c *Client) DeleteSchedule(ctx context.Context, token, scheduleID string) (string, error) {
	return c.do(ctx, token, "delete", http.MethodDelete, "/schedules/"+scheduleID)
}

func (c *Client) do(ctx context.Context, token, op, method, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return "", err
	}
	c.setHeaders(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("schedules: %s request: %w", op, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Op: op, Status: resp.StatusCode, Reason: resp.Status}
	}
	return string(raw), nil
}

func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("accept", "application/json")
	req.Header.Set("authorization", "Bearer "+token)
	req.Header.Set("timezone", c.timezone)
}

// extractScheduleID pins the documented identifier contract: the v2 shape
// data.schedule.scheduleId, with top-level id and _id as compatibility
// fallbacks for older API versions.
func extractScheduleID(raw []byte) (string, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", ErrMissingScheduleID
	}

	if data, ok := payload["data"].(map[string]interface{}); ok {
		if schedule, ok := data["schedule"].(map[string]interface{}); ok {
			if id, ok := schedule["scheduleId"].(string); ok && id != "" {
				return id, nil
			}
		}
	}
	for _, key := range []string{"id", "_id"} {
		if id, ok := payload[key].(string); ok && id != "" {
			return id, nil
		}
	}
	return "", ErrMissingScheduleID
}
