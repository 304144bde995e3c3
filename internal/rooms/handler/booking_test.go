package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	apperrors "roombook/pkg/errors"
	"roombook/pkg/logger"
	"roombook/pkg/model"
)

// Mock booking system for testing
type mockBookingSystem struct {
	bookFunc      func(ctx context.Context, roomID string, start, end time.Time) (bool, error)
	cancelFunc    func(ctx context.Context, bookingID string) error
	availableFunc func(ctx context.Context, start, end time.Time) ([]*model.Room, error)
}

func (m *mockBookingSystem) BookRoom(ctx context.Context, roomID string, start, end time.Time) (bool, error) {
	if m.bookFunc != nil {
		return m.bookFunc(ctx, roomID, start, end)
	}
	return true, nil
}

func (m *mockBookingSystem) CancelBooking(ctx context.Context, bookingID string) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, bookingID)
	}
	return nil
}

func (m *mockBookingSystem) GetAvailableRooms(ctx context.Context, start, end time.Time) ([]*model.Room, error) {
	if m.availableFunc != nil {
		return m.availableFunc(ctx, start, end)
	}
	return []*model.Room{}, nil
}

func testLog() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Service: "test"})
}

func newRouter(system *mockBookingSystem) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(system, testLog()).RegisterRoutes(router)
	return router
}

func TestBook_Created(t *testing.T) {
	router := newRouter(&mockBookingSystem{})

	body := `{"room_id":"room1","start_time":"2025-01-01T10:00:00Z","end_time":"2025-01-01T12:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestBook_WindowTaken(t *testing.T) {
	system := &mockBookingSystem{
		bookFunc: func(ctx context.Context, roomID string, start, end time.Time) (bool, error) {
			return false, nil
		},
	}
	router := newRouter(system)

	body := `{"room_id":"room1","start_time":"2025-01-01T10:00:00Z","end_time":"2025-01-01T12:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestBook_InvalidInput(t *testing.T) {
	system := &mockBookingSystem{
		bookFunc: func(ctx context.Context, roomID string, start, end time.Time) (bool, error) {
			return false, apperrors.InvalidInput("End time must be after start time")
		},
	}
	router := newRouter(system)

	body := `{"room_id":"room1","start_time":"2025-01-01T12:00:00Z","end_time":"2025-01-01T10:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "End time must be after start time" {
		t.Errorf("unexpected error message %q", resp.Error)
	}
}

func TestBook_MalformedBody(t *testing.T) {
	router := newRouter(&mockBookingSystem{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "success", err: nil, wantCode: http.StatusNoContent},
		{name: "unknown booking", err: apperrors.NotFoundWithID("Booking", "b1"), wantCode: http.StatusNotFound},
		{name: "already started", err: apperrors.IllegalState("Cannot cancel a booking that has already started or ended"), wantCode: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			system := &mockBookingSystem{
				cancelFunc: func(ctx context.Context, bookingID string) error {
					return tt.err
				},
			}
			router := newRouter(system)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/id/b1", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, rec.Code)
			}
		})
	}
}

func TestAvailableRooms(t *testing.T) {
	system := &mockBookingSystem{
		availableFunc: func(ctx context.Context, start, end time.Time) ([]*model.Room, error) {
			return []*model.Room{{ID: "room1", Name: "Room 1"}}, nil
		},
	}
	router := newRouter(system)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/rooms/available?start_time=2025-01-01T10:00:00Z&end_time=2025-01-01T12:00:00Z", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []*model.Room `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "room1" {
		t.Errorf("unexpected rooms payload: %+v", resp.Data)
	}
}

func TestAvailableRooms_BadTimestamp(t *testing.T) {
	router := newRouter(&mockBookingSystem{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/available?start_time=tomorrow", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
