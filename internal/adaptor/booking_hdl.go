package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

// BookingHandler serves /api/bookings. Every route is mounted behind required authentication.
type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// List handles GET /api/bookings
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	query, errs := request.ParseBookingQuery(r.URL.Query())
	if errs != nil {
		utils.ResponseBadRequest(w, "Invalid query parameters", errs)
		return
	}

	bookings, err := h.service.List(r.Context(), utils.ActorFromContext(r.Context()), query)
	if err != nil {
		handleServiceError(h.log, w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// Get handles GET /api/bookings/{id}
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	booking, err := h.service.Get(r.Context(), utils.ActorFromContext(r.Context()), id)
	if err != nil {
		handleServiceError(h.log, w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// Create handles POST /api/bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.BookingRequest
	if !decodeJSON(w, r, &req) || !validateBody(w, &req) {
		return
	}

	booking, err := h.service.Create(r.Context(), utils.ActorFromContext(r.Context()), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created successfully", booking)
}

// Replace handles PUT /api/bookings/{id}
func (h *BookingHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req request.BookingRequest
	if !decodeJSON(w, r, &req) || !validateBody(w, &req) {
		return
	}

	h.update(w, r, req.AsUpdate())
}

// Patch handles PATCH /api/bookings/{id}
func (h *BookingHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req request.BookingUpdateRequest
	if !decodeJSON(w, r, &req) || !validateBody(w, &req) {
		return
	}

	h.update(w, r, &req)
}

func (h *BookingHandler) update(w http.ResponseWriter, r *http.Request, req *request.BookingUpdateRequest) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	booking, err := h.service.Update(r.Context(), utils.ActorFromContext(r.Context()), id, req)
	if err != nil {
		handleServiceError(h.log, w, err, "update booking")
		return
	}

	utils.ResponseSuccess(w, "Booking updated successfully", booking)
}

// Delete handles DELETE /api/bookings/{id}
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), utils.ActorFromContext(r.Context()), id); err != nil {
		handleServiceError(h.log, w, err, "delete booking")
		return
	}

	utils.ResponseNoContent(w)
}

// MyBookings handles GET /api/bookings/my_bookings
func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	query, errs := request.ParseOwnBookingQuery(r.URL.Query())
	if errs != nil {
		utils.ResponseBadRequest(w, "Invalid query parameters", errs)
		return
	}

	bookings, err := h.service.MyBookings(r.Context(), utils.ActorFromContext(r.Context()), query)
	if err != nil {
		handleServiceError(h.log, w, err, "list my bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// Upcoming handles GET /api/bookings/upcoming
func (h *BookingHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.Upcoming(r.Context(), utils.ActorFromContext(r.Context()))
	if err != nil {
		handleServiceError(h.log, w, err, "list upcoming bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
