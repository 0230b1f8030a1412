package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-roomgrid/pkg/config"
	appErrors "github.com/noah-isme/campus-roomgrid/pkg/errors"
)

// RoomRecord is a room as the campus backend reports it.
type RoomRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BuildingName string `json:"buildingName"`
	Floor        int    `json:"floor"`
	Status       string `json:"status"`
}

// ClassRecord is a class with its meeting days and required shift.
type ClassRecord struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	MajorName     string   `json:"majorName"`
	DegreeName    string   `json:"degreeName"`
	Generation    string   `json:"generation"`
	RequiredShift string   `json:"requiredShift"`
	Days          []string `json:"days"`
}

// ScheduleRecord is one committed room assignment on the backend.
// TemporaryRoomID is set when the backend has parked the class in a
// stand-in room while its regular one is unavailable.
type ScheduleRecord struct {
	ScheduleID      string `json:"scheduleId"`
	ClassID         string `json:"classId"`
	ClassName       string `json:"className"`
	MajorName       string `json:"majorName"`
	RoomID          string `json:"roomId"`
	TemporaryRoomID string `json:"temporaryRoomId,omitempty"`
	Day             string `json:"day"`
	Shift           string `json:"shift"`
}

// Client talks to the campus administration backend. All mutating calls
// map one-to-one onto committed grid gestures; any non-2xx response is
// treated as "the mutation did not happen" by callers.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds an upstream client from config.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// ListRooms fetches the full room directory.
func (c *Client) ListRooms(ctx context.Context) ([]RoomRecord, error) {
	var out []RoomRecord
	if err := c.do(ctx, http.MethodGet, "/rooms", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListClasses fetches all classes with their meeting days.
func (c *Client) ListClasses(ctx context.Context) ([]ClassRecord, error) {
	var out []ClassRecord
	if err := c.do(ctx, http.MethodGet, "/classes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSchedules fetches the committed assignments for one day.
func (c *Client) ListSchedules(ctx context.Context, day string) ([]ScheduleRecord, error) {
	var out []ScheduleRecord
	if err := c.do(ctx, http.MethodGet, "/schedules?day="+day, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AssignRoomToClass creates a new assignment and returns the record
// carrying the server-issued schedule id.
func (c *Client) AssignRoomToClass(ctx context.Context, classID, roomID, day, shift string) (*ScheduleRecord, error) {
	body := map[string]string{
		"classId": classID,
		"roomId":  roomID,
		"day":     day,
		"shift":   shift,
	}
	var out ScheduleRecord
	if err := c.do(ctx, http.MethodPost, "/schedules", body, &out); err != nil {
		return nil, err
	}
	if out.ScheduleID == "" {
		return nil, appErrors.Clone(appErrors.ErrSyncFailed, "upstream returned no schedule id")
	}
	return &out, nil
}

// MoveScheduleToRoom relocates an existing assignment.
func (c *Client) MoveScheduleToRoom(ctx context.Context, scheduleID, targetRoomID string) error {
	body := map[string]string{"roomId": targetRoomID}
	return c.do(ctx, http.MethodPatch, "/schedules/"+scheduleID+"/room", body, nil)
}

// SwapSchedules exchanges the rooms of two assignments; the backend
// commits both sides atomically.
func (c *Client) SwapSchedules(ctx context.Context, scheduleID1, scheduleID2 string) error {
	body := map[string]string{
		"scheduleId1": scheduleID1,
		"scheduleId2": scheduleID2,
	}
	return c.do(ctx, http.MethodPost, "/schedules/swap", body, nil)
}

// UnassignRoomFromClass deletes an assignment.
func (c *Client) UnassignRoomFromClass(ctx context.Context, scheduleID string) error {
	return c.do(ctx, http.MethodDelete, "/schedules/"+scheduleID, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode upstream payload")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrSyncFailed.Code, appErrors.ErrSyncFailed.Status, "upstream unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("upstream rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return appErrors.Clone(appErrors.ErrSyncFailed, fmt.Sprintf("upstream responded %d: %s", resp.StatusCode, string(snippet)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrSyncFailed.Code, appErrors.ErrSyncFailed.Status, "failed to decode upstream response")
	}
	return nil
}
