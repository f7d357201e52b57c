package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type AmenityHandler struct {
	service usecase.AmenityService
	log     *zap.Logger
}

func NewAmenityHandler(service usecase.AmenityService, log *zap.Logger) *AmenityHandler {
	return &AmenityHandler{
		service: service,
		log:     log.With(zap.String("handler", "amenity")),
	}
}

// List handles GET /api/amenities (public)
func (h *AmenityHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
	}

	amenities, err := h.service.List(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list amenities")
		return
	}

	utils.ResponseSuccess(w, "success", amenities)
}

// Get handles GET /api/amenities/{id} (public)
func (h *AmenityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	amenity, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(h.log, w, err, "get amenity")
		return
	}

	utils.ResponseSuccess(w, "success", amenity)
}
