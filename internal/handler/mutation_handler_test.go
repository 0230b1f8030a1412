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
	"github.com/noah-isme/campus-roomgrid/internal/models"
	appErrors "github.com/noah-isme/campus-roomgrid/pkg/errors"
)

type mutationServiceMock struct {
	assignResp *models.Assignment
	assignErr  error
	moveResp   *models.Assignment
	moveErr    error
	swapErr    error
	unErr      error

	lastAssign dto.AssignRequest
	lastMove   dto.MoveRequest
	lastSwap   dto.SwapRequest
	lastUn     dto.UnassignRequest
}

func (m *mutationServiceMock) Assign(ctx context.Context, req dto.AssignRequest) (*models.Assignment, error) {
	m.lastAssign = req
	return m.assignResp, m.assignErr
}

func (m *mutationServiceMock) Move(ctx context.Context, req dto.MoveRequest) (*models.Assignment, error) {
	m.lastMove = req
	return m.moveResp, m.moveErr
}

func (m *mutationServiceMock) Swap(ctx context.Context, req dto.SwapRequest) error {
	m.lastSwap = req
	return m.swapErr
}

func (m *mutationServiceMock) Unassign(ctx context.Context, req dto.UnassignRequest) error {
	m.lastUn = req
	return m.unErr
}

func postJSON(t *testing.T, handlerFn gin.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	handlerFn(c)
	c.Writer.WriteHeaderNow()
	return w
}

func TestMutationHandlerAssign(t *testing.T) {
	mockSvc := &mutationServiceMock{
		assignResp: &models.Assignment{ClassID: "class-1", ScheduleID: "sched-1"},
	}
	handler := NewMutationHandler(mockSvc)

	w := postJSON(t, handler.Assign, "/grid/assign",
		`{"day":"MONDAY","shift":"07:00-10:00","roomId":"room-1","classId":"class-1"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "class-1", mockSvc.lastAssign.ClassID)
	assert.Equal(t, "room-1", mockSvc.lastAssign.RoomID)

	var envelope struct {
		Data models.Assignment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "sched-1", envelope.Data.ScheduleID)
}

func TestMutationHandlerAssignInvalidBody(t *testing.T) {
	mockSvc := &mutationServiceMock{}
	handler := NewMutationHandler(mockSvc)

	w := postJSON(t, handler.Assign, "/grid/assign", `{"day":"MONDAY"`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, mockSvc.lastAssign.ClassID)
}

func TestMutationHandlerMoveSwapRequired(t *testing.T) {
	mockSvc := &mutationServiceMock{
		moveErr: appErrors.ErrSwapRequired,
	}
	handler := NewMutationHandler(mockSvc)

	w := postJSON(t, handler.Move, "/grid/move",
		`{"source":{"day":"MONDAY","shift":"07:00-10:00","roomId":"room-1"},"target":{"day":"MONDAY","shift":"07:00-10:00","roomId":"room-2"}}`)

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.ErrSwapRequired.Code)
	assert.Equal(t, "room-2", mockSvc.lastMove.Target.RoomID)
}

func TestMutationHandlerSwap(t *testing.T) {
	mockSvc := &mutationServiceMock{}
	handler := NewMutationHandler(mockSvc)

	w := postJSON(t, handler.Swap, "/grid/swap",
		`{"cellA":{"day":"MONDAY","shift":"07:00-10:00","roomId":"room-1"},"cellB":{"day":"MONDAY","shift":"07:00-10:00","roomId":"room-2"}}`)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "room-1", mockSvc.lastSwap.CellA.RoomID)
	assert.Equal(t, "room-2", mockSvc.lastSwap.CellB.RoomID)
}

func TestMutationHandlerUnassignSyncFailure(t *testing.T) {
	mockSvc := &mutationServiceMock{
		unErr: appErrors.ErrSyncFailed,
	}
	handler := NewMutationHandler(mockSvc)

	w := postJSON(t, handler.Unassign, "/grid/unassign",
		`{"cell":{"day":"MONDAY","shift":"07:00-10:00","roomId":"room-1"}}`)

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.ErrSyncFailed.Code)
}
