package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"roombook/internal/rooms/service"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/httputil"
	"roombook/pkg/logger"
)

type BookingRequest struct {
	RoomID    string    `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type BookingResponse struct {
	Booked bool `json:"booked"`
}

type BookingHandler struct {
	system service.BookingSystem
	log    *logger.Logger
}

func NewBookingHandler(system service.BookingSystem, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		system: system,
		log:    log,
	}
}

func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Invalid request body")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Book", "error", writeErr)
		}
		return
	}

	booked, err := h.system.BookRoom(r.Context(), req.RoomID, req.StartTime, req.EndTime)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Book", "error", writeErr)
		}
		return
	}

	if !booked {
		if writeErr := httputil.WriteError(w, apperrors.Conflict("Room is not available for the requested time window")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Book", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, BookingResponse{Booked: true}); err != nil {
		h.log.Error("failed to write created response", "handler", "Book", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.system.CancelBooking(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cancel", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) AvailableRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	start, err := httputil.ExtractTimeParam(r, "start_time")
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "AvailableRooms", "error", writeErr)
		}
		return
	}
	end, err := httputil.ExtractTimeParam(r, "end_time")
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "AvailableRooms", "error", writeErr)
		}
		return
	}

	rooms, err := h.system.GetAvailableRooms(r.Context(), start, end)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "AvailableRooms", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "AvailableRooms", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Book)
	router.DELETE("/api/v1/bookings/id/:id", h.Cancel)
	router.GET("/api/v1/rooms/available", h.AvailableRooms)
}
