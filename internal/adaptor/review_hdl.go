package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// List handles GET /api/reviews (public)
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	query, errs := request.ParseReviewQuery(r.URL.Query())
	if errs != nil {
		utils.ResponseBadRequest(w, "Invalid query parameters", errs)
		return
	}

	reviews, err := h.service.List(r.Context(), query)
	if err != nil {
		handleServiceError(h.log, w, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// Get handles GET /api/reviews/{id} (public)
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	review, err := h.service.Get(r.Context(), utils.ActorFromContext(r.Context()), id)
	if err != nil {
		handleServiceError(h.log, w, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// TopRated handles GET /api/reviews/top_rated (public)
func (h *ReviewHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.TopRated(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list top rated reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// Create handles POST /api/reviews (protected)
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.ReviewRequest
	if !decodeJSON(w, r, &req) || !validateBody(w, &req) {
		return
	}

	review, err := h.service.Create(r.Context(), utils.ActorFromContext(r.Context()), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review created successfully", review)
}

// Replace handles PUT /api/reviews/{id} (protected, owner or staff)
func (h *ReviewHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req request.ReviewRequest
	if !decodeJSON(w, r, &req) || !validateBody(w, &req) {
		return
	}

	h.update(w, r, req.AsUpdate())
}

// Patch handles PATCH /api/reviews/{id} (protected, owner or staff)
func (h *ReviewHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req request.ReviewUpdateRequest
	if !decodeJSON(w, r, &req) || !validateBody(w, &req) {
		return
	}

	h.update(w, r, &req)
}

func (h *ReviewHandler) update(w http.ResponseWriter, r *http.Request, req *request.ReviewUpdateRequest) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	review, err := h.service.Update(r.Context(), utils.ActorFromContext(r.Context()), id, req)
	if err != nil {
		handleServiceError(h.log, w, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "Review updated successfully", review)
}

// Delete handles DELETE /api/reviews/{id} (protected, owner or staff)
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), utils.ActorFromContext(r.Context()), id); err != nil {
		handleServiceError(h.log, w, err, "delete review")
		return
	}

	utils.ResponseNoContent(w)
}

// MyReviews handles GET /api/reviews/my_reviews (protected)
func (h *ReviewHandler) MyReviews(w http.ResponseWriter, r *http.Request) {
	query, errs := request.ParseOwnReviewQuery(r.URL.Query())
	if errs != nil {
		utils.ResponseBadRequest(w, "Invalid query parameters", errs)
		return
	}

	reviews, err := h.service.MyReviews(r.Context(), utils.ActorFromContext(r.Context()), query)
	if err != nil {
		handleServiceError(h.log, w, err, "list my reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}
