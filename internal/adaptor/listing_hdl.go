package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ListingHandler struct {
	service usecase.ListingService
	log     *zap.Logger
}

func NewListingHandler(service usecase.ListingService, log *zap.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		log:     log.With(zap.String("handler", "listing")),
	}
}

// List handles GET /api/listings (public)
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	query, errs := request.ParseListingQuery(r.URL.Query())
	if errs != nil {
		utils.ResponseBadRequest(w, "Invalid query parameters", errs)
		return
	}

	listings, err := h.service.List(r.Context(), query)
	if err != nil {
		handleServiceError(h.log, w, err, "list listings")
		return
	}

	utils.ResponseSuccess(w, "success", listings)
}

// Featured handles GET /api/listings/featured (public)
func (h *ListingHandler) Featured(w http.ResponseWriter, r *http.Request) {
	query, errs := request.ParseListingQuery(r.URL.Query())
	if errs != nil {
		utils.ResponseBadRequest(w, "Invalid query parameters", errs)
		return
	}

	listings, err := h.service.Featured(r.Context(), query)
	if err != nil {
		handleServiceError(h.log, w, err, "list featured listings")
		return
	}

	utils.ResponseSuccess(w, "success", listings)
}

// Get handles GET /api/listings/{slug} (public)
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	listing, err := h.service.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handleServiceError(h.log, w, err, "get listing")
		return
	}

	utils.ResponseSuccess(w, "success", listing)
}

// Create handles POST /api/listings (protected)
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.ListingRequest
	if !decodeJSON(w, r, &req) || !validateBody(w, &req) {
		return
	}

	listing, err := h.service.Create(r.Context(), utils.ActorFromContext(r.Context()), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create listing")
		return
	}

	utils.ResponseCreated(w, "Listing created successfully", listing)
}

// Replace handles PUT /api/listings/{slug} (protected)
func (h *ListingHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req request.ListingRequest
	if !decodeJSON(w, r, &req) || !validateBody(w, &req) {
		return
	}

	h.update(w, r, req.AsUpdate())
}

// Patch handles PATCH /api/listings/{slug} (protected)
func (h *ListingHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req request.ListingUpdateRequest
	if !decodeJSON(w, r, &req) || !validateBody(w, &req) {
		return
	}

	h.update(w, r, &req)
}

func (h *ListingHandler) update(w http.ResponseWriter, r *http.Request, req *request.ListingUpdateRequest) {
	actor := utils.ActorFromContext(r.Context())

	listing, err := h.service.Update(r.Context(), actor, chi.URLParam(r, "slug"), req)
	if err != nil {
		handleServiceError(h.log, w, err, "update listing")
		return
	}

	utils.ResponseSuccess(w, "Listing updated successfully", listing)
}

// Delete handles DELETE /api/listings/{slug} (protected)
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := utils.ActorFromContext(r.Context())

	if err := h.service.Delete(r.Context(), actor, chi.URLParam(r, "slug")); err != nil {
		handleServiceError(h.log, w, err, "delete listing")
		return
	}

	utils.ResponseNoContent(w)
}
