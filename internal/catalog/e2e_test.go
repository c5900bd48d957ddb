package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookreview/internal/book"
	"bookreview/internal/review"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type apiClient struct {
	t      *testing.T
	router http.Handler
}

func (c apiClient) do(method, path, auth string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func decodeInto[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func TestCatalog_EndToEnd(t *testing.T) {
	books := newMemBooks()
	reviews := newMemReviews(books)
	reviews.usernames[aliceID] = "alice"
	reviews.usernames[bobID] = "bob"

	svc := NewService(books, reviews, NewDetailAssembler(directSnapshotter{books: books, reviews: reviews}), zap.NewNop())
	api := apiClient{t: t, router: newTestRouter(svc)}
	aliceAuth := bearer(t, aliceID, "alice")
	bobAuth := bearer(t, bobID, "bob")

	w := api.do(http.MethodPost, "/api/books", aliceAuth, map[string]string{"title": "Dune", "author": "Herbert"})
	require.Equal(t, http.StatusCreated, w.Code)
	dune := decodeInto[book.Book](t, w)

	w = api.do(http.MethodPost, "/api/books", aliceAuth, map[string]string{"title": "Children of Dune", "author": "Frank Herbert", "genre": "Sci-Fi"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = api.do(http.MethodPost, "/api/books", aliceAuth, map[string]string{"title": "Emma", "author": "Jane Austen"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(http.MethodGet, "/api/books/"+dune.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeInto[DetailView](t, w)
	assert.Equal(t, 0.0, view.AverageRating)
	assert.Equal(t, 0, view.TotalReviews)

	w = api.do(http.MethodPost, "/api/books/"+dune.ID+"/reviews", aliceAuth, map[string]int{"rating": 4})
	require.Equal(t, http.StatusCreated, w.Code)
	w = api.do(http.MethodPost, "/api/books/"+dune.ID+"/reviews", bobAuth, map[string]any{"rating": 5, "review_text": "Spice"})
	require.Equal(t, http.StatusCreated, w.Code)
	bobsReview := decodeInto[review.Review](t, w)

	w = api.do(http.MethodGet, "/api/books/"+dune.ID+"?page=1&limit=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view = decodeInto[DetailView](t, w)
	assert.Equal(t, 4.5, view.AverageRating)
	assert.Equal(t, 2, view.TotalReviews)
	require.Len(t, view.Reviews.Data, 1)
	assert.Equal(t, "bob", view.Reviews.Data[0].Username, "newest review first")
	assert.Equal(t, 2, view.Reviews.Pagination.TotalPages)

	// a later page changes the nested rows, not the top-level figures
	w = api.do(http.MethodGet, "/api/books/"+dune.ID+"?page=3&limit=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view = decodeInto[DetailView](t, w)
	assert.Equal(t, 4.5, view.AverageRating)
	assert.Empty(t, view.Reviews.Data)
	assert.Equal(t, 3, view.Reviews.Pagination.CurrentPage)

	w = api.do(http.MethodDelete, "/api/reviews/"+bobsReview.ID, aliceAuth, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = api.do(http.MethodPut, "/api/reviews/"+bobsReview.ID, aliceAuth, map[string]int{"rating": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/api/books/"+dune.ID, "", nil)
	view = decodeInto[DetailView](t, w)
	assert.Equal(t, 2, view.TotalReviews, "review survives a non-owner delete")

	w = api.do(http.MethodGet, "/api/books?author=herb&page=1&size=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	type bookPage struct {
		Data       []book.Book `json:"data"`
		Pagination struct {
			TotalPages   int `json:"total_pages"`
			TotalReviews int `json:"total_reviews"`
		} `json:"pagination"`
	}
	page := decodeInto[bookPage](t, w)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, 2, page.Pagination.TotalPages, "totals follow the filtered set")
	assert.Equal(t, 2, page.Pagination.TotalReviews)

	w = api.do(http.MethodGet, "/api/books/search?query=DUNE", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	found := decodeInto[[]book.Book](t, w)
	require.Len(t, found, 2)
	assert.Equal(t, "Children of Dune", found[0].Title)
	assert.Equal(t, "Dune", found[1].Title)

	w = api.do(http.MethodPut, "/api/books/reviews/"+bobsReview.ID, bobAuth, map[string]string{"review_text": "Spice must flow"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeInto[review.Review](t, w)
	assert.Equal(t, "Spice must flow", updated.ReviewText)
	assert.Equal(t, 5, updated.Rating, "omitted fields keep their stored value")
	assert.NotNil(t, updated.UpdatedAt)

	w = api.do(http.MethodDelete, "/api/reviews/"+bobsReview.ID, bobAuth, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, "/api/books/"+dune.ID, "", nil)
	view = decodeInto[DetailView](t, w)
	assert.Equal(t, 4.0, view.AverageRating)
	assert.Equal(t, 1, view.TotalReviews)
}
