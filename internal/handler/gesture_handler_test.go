package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-roomgrid/internal/dto"
	appErrors "github.com/noah-isme/campus-roomgrid/pkg/errors"
)

type gestureServiceMock struct {
	pickNewResp   *dto.GestureRef
	pickNewErr    error
	pickSchedResp *dto.GestureRef
	pickSchedErr  error
	hoverResp     *dto.HoverView
	hoverErr      error
	dropResp      *dto.DropResult
	dropErr       error
	confirmResp   *dto.DropResult
	confirmErr    error
	outsideResp   *dto.DropResult
	outsideErr    error
	cancelErr     error

	lastGestureID string
	lastHover     dto.HoverRequest
}

func (m *gestureServiceMock) PickUpNew(req dto.PickUpNewRequest) (*dto.GestureRef, error) {
	return m.pickNewResp, m.pickNewErr
}

func (m *gestureServiceMock) PickUpScheduled(req dto.PickUpScheduledRequest) (*dto.GestureRef, error) {
	return m.pickSchedResp, m.pickSchedErr
}

func (m *gestureServiceMock) Hover(gestureID string, req dto.HoverRequest) (*dto.HoverView, error) {
	m.lastGestureID = gestureID
	m.lastHover = req
	return m.hoverResp, m.hoverErr
}

func (m *gestureServiceMock) Drop(ctx context.Context, gestureID string, req dto.HoverRequest) (*dto.DropResult, error) {
	m.lastGestureID = gestureID
	m.lastHover = req
	return m.dropResp, m.dropErr
}

func (m *gestureServiceMock) ConfirmSwap(ctx context.Context, gestureID string) (*dto.DropResult, error) {
	m.lastGestureID = gestureID
	return m.confirmResp, m.confirmErr
}

func (m *gestureServiceMock) DropOutside(ctx context.Context, gestureID string) (*dto.DropResult, error) {
	m.lastGestureID = gestureID
	return m.outsideResp, m.outsideErr
}

func (m *gestureServiceMock) Cancel(gestureID string) error {
	m.lastGestureID = gestureID
	return m.cancelErr
}

func gestureRequest(t *testing.T, handlerFn gin.HandlerFunc, method, path, gestureID, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	if gestureID != "" {
		c.Params = gin.Params{{Key: "gestureId", Value: gestureID}}
	}
	handlerFn(c)
	c.Writer.WriteHeaderNow()
	return w
}

func TestGestureHandlerPickUpNew(t *testing.T) {
	mockSvc := &gestureServiceMock{
		pickNewResp: &dto.GestureRef{GestureID: "g-1"},
	}
	handler := NewGestureHandler(mockSvc)

	w := gestureRequest(t, handler.PickUpNew, http.MethodPost, "/gestures/pickup/new", "",
		`{"day":"MONDAY","classId":"class-1"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var envelope struct {
		Data dto.GestureRef `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "g-1", envelope.Data.GestureID)
}

func TestGestureHandlerPickUpNewUnknownClass(t *testing.T) {
	mockSvc := &gestureServiceMock{
		pickNewErr: appErrors.Clone(appErrors.ErrNotFound, "class not found"),
	}
	handler := NewGestureHandler(mockSvc)

	w := gestureRequest(t, handler.PickUpNew, http.MethodPost, "/gestures/pickup/new", "",
		`{"day":"MONDAY","classId":"ghost"}`)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGestureHandlerHover(t *testing.T) {
	mockSvc := &gestureServiceMock{
		hoverResp: &dto.HoverView{State: dto.HoverSwapEligible},
	}
	handler := NewGestureHandler(mockSvc)

	w := gestureRequest(t, handler.Hover, http.MethodPost, "/gestures/g-7/hover", "g-7",
		`{"cell":{"day":"MONDAY","shift":"07:00-10:00","roomId":"room-2"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "g-7", mockSvc.lastGestureID)
	assert.Equal(t, "room-2", mockSvc.lastHover.Cell.RoomID)
	assert.Contains(t, w.Body.String(), dto.HoverSwapEligible)
}

func TestGestureHandlerDropReportsStatus(t *testing.T) {
	mockSvc := &gestureServiceMock{
		dropResp: &dto.DropResult{Status: dto.DropSwapPending},
	}
	handler := NewGestureHandler(mockSvc)

	w := gestureRequest(t, handler.Drop, http.MethodPost, "/gestures/g-7/drop", "g-7",
		`{"cell":{"day":"MONDAY","shift":"07:00-10:00","roomId":"room-2"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data dto.DropResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, dto.DropSwapPending, envelope.Data.Status)
}

func TestGestureHandlerDropExpiredGesture(t *testing.T) {
	mockSvc := &gestureServiceMock{
		dropErr: appErrors.Clone(appErrors.ErrNotFound, "gesture not found or expired"),
	}
	handler := NewGestureHandler(mockSvc)

	w := gestureRequest(t, handler.Drop, http.MethodPost, "/gestures/stale/drop", "stale",
		`{"cell":{"day":"MONDAY","shift":"07:00-10:00","roomId":"room-2"}}`)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGestureHandlerConfirmSwap(t *testing.T) {
	mockSvc := &gestureServiceMock{
		confirmResp: &dto.DropResult{Status: dto.DropCommitted},
	}
	handler := NewGestureHandler(mockSvc)

	w := gestureRequest(t, handler.ConfirmSwap, http.MethodPost, "/gestures/g-2/confirm-swap", "g-2", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "g-2", mockSvc.lastGestureID)
	assert.Contains(t, w.Body.String(), dto.DropCommitted)
}

func TestGestureHandlerDropOutside(t *testing.T) {
	mockSvc := &gestureServiceMock{
		outsideResp: &dto.DropResult{Status: dto.DropCommitted},
	}
	handler := NewGestureHandler(mockSvc)

	w := gestureRequest(t, handler.DropOutside, http.MethodPost, "/gestures/g-3/drop-outside", "g-3", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "g-3", mockSvc.lastGestureID)
}

func TestGestureHandlerCancel(t *testing.T) {
	mockSvc := &gestureServiceMock{}
	handler := NewGestureHandler(mockSvc)

	w := gestureRequest(t, handler.Cancel, http.MethodDelete, "/gestures/g-4", "g-4", "")

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "g-4", mockSvc.lastGestureID)
}
