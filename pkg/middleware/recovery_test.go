package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"roombook/pkg/logger"
)

func TestRecovery_PanicReturns500(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Service: "test"})
	chain := Recovery(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Internal server error" {
		t.Errorf("unexpected error message %q", resp.Error)
	}
}

func TestRecovery_PassesThroughWithoutPanic(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Service: "test"})
	chain := Recovery(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/id/b1", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
