package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookreview/internal/httpx"
	"bookreview/internal/pagination"
	"bookreview/internal/review"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type HTTPHandler struct {
	svc CatalogService
	log *zap.Logger
}

func NewHTTPHandler(svc CatalogService, log *zap.Logger) *HTTPHandler {
	return &HTTPHandler{svc: svc, log: log}
}

// Routes mounts the catalog endpoints. Mutations go through requireAuth.
func (h *HTTPHandler) Routes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/books", h.ListBooks)
	r.Get("/books/search", h.SearchBooks)
	r.Get("/books/{id}", h.GetBookDetail)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/books", h.AddBook)
		r.Post("/books/{id}/reviews", h.AddReview)
		r.Put("/reviews/{id}", h.UpdateReview)
		r.Delete("/reviews/{id}", h.DeleteReview)
		r.Put("/books/reviews/{id}", h.UpdateReview)
		r.Delete("/books/reviews/{id}", h.DeleteReview)
	})
}

func principalFrom(r *http.Request) Principal {
	p, _ := httpx.PrincipalFrom(r)
	return Principal{ID: p.ID, Username: p.Username}
}

// ListBooks handles GET /api/books
// @Summary List books
// @Description List books filtered by author substring and exact genre
// @Tags books
// @Produce json
// @Param author query string false "Author substring, case-insensitive"
// @Param genre query string false "Exact genre"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Items per page" default(10)
// @Success 200 {object} pagination.Envelope[book.Book]
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := pagination.Parse(q.Get("page"), q.Get("size"))

	env, err := h.svc.ListBooks(r.Context(), ListBooksInput{
		Author: q.Get("author"),
		Genre:  q.Get("genre"),
		Page:   req.Page,
		Size:   req.Limit,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, env)
}

// SearchBooks handles GET /api/books/search
// @Summary Search books
// @Description Case-insensitive match on title or author
// @Tags books
// @Produce json
// @Param query query string true "Search term"
// @Success 200 {array} book.Book
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/search [get]
func (h *HTTPHandler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.SearchBooks(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// GetBookDetail handles GET /api/books/{id}
// @Summary Get book detail
// @Description Book with average rating, review count and one page of reviews
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Param page query int false "Review page" default(1)
// @Param limit query int false "Reviews per page" default(10)
// @Success 200 {object} DetailView
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) GetBookDetail(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := h.svc.GetBookDetail(r.Context(), chi.URLParam(r, "id"), pagination.Parse(q.Get("page"), q.Get("limit")))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

// AddBook handles POST /api/books
// @Summary Add a book
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body AddBookInput true "Book"
// @Success 201 {object} book.Book
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var req AddBookInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	b, err := h.svc.AddBook(r.Context(), principalFrom(r), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, b)
}

// AddReview handles POST /api/books/{id}/reviews
// @Summary Review a book
// @Tags reviews
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Book ID"
// @Param request body AddReviewInput true "Review"
// @Success 201 {object} review.Review
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{id}/reviews [post]
func (h *HTTPHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var req AddReviewInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	rv, err := h.svc.AddReview(r.Context(), principalFrom(r), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rv)
}

// UpdateReview handles PUT /api/reviews/{id}
// @Summary Update own review
// @Tags reviews
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Review ID"
// @Param request body UpdateReviewInput true "Fields to change"
// @Success 200 {object} review.Review
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /reviews/{id} [put]
func (h *HTTPHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var req UpdateReviewInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	rv, err := h.svc.UpdateReview(r.Context(), principalFrom(r), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rv)
}

// DeleteReview handles DELETE /api/reviews/{id}
// @Summary Delete own review
// @Tags reviews
// @Produce json
// @Security Bearer
// @Param id path string true "Review ID"
// @Success 200 {object} httpx.MessageResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /reviews/{id} [delete]
func (h *HTTPHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteReview(r.Context(), principalFrom(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONMessage(w, http.StatusOK, "Review deleted successfully")
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", verr.Fields)
	case errors.Is(err, ErrUnauthenticated):
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
	case errors.Is(err, review.ErrNotFoundOrUnauthorized):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Review not found or unauthorized", nil)
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	default:
		h.log.Error("catalog request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", httpx.RequestIDFrom(r)),
		)
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
