package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Alp4ka/keysetpager"
	"github.com/Alp4ka/keysetpager/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type tPage struct {
	Content           []store.Order `json:"content"`
	HasNext           bool          `json:"hasNext"`
	ContinuationToken string        `json:"continuationToken"`
	Size              int           `json:"size"`
}

type tError struct {
	Error ErrorResponse `json:"error"`
}

func newTestServer(t *testing.T, maxSize int) (*Server, *observer.ObservedLogs) {
	t.Helper()

	st := store.NewMemory(zap.NewNop())

	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	orders := make([]store.Order, 0, 5)
	for i := range 5 {
		orders = append(orders, store.Order{
			ID:        int64(i + 1),
			Customer:  "acme",
			Status:    []string{"new", "paid"}[i%2],
			CreatedAt: t0.Add(time.Duration(i) * time.Minute),
		})
	}
	require.NoError(t, st.Insert(context.Background(), orders...))

	core, logs := observer.New(zap.InfoLevel)

	return New(st, zap.New(core), maxSize), logs
}

func get(t *testing.T, s *Server, query url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/orders?"+query.Encode(), nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	return rec
}

func Test_Server_ListOrders(t *testing.T) {
	s, logs := newTestServer(t, keysetpager.MaxLimit)

	rec := get(t, s, url.Values{"size": {"2"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var page1 tPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page1))
	assert.Equal(t, []int64{5, 4}, ids(page1.Content))
	assert.True(t, page1.HasNext)
	assert.Equal(t, 5, page1.Size)
	require.NotEmpty(t, page1.ContinuationToken)

	rec = get(t, s, url.Values{"size": {"2"}, "continuationToken": {page1.ContinuationToken}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var page2 tPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page2))
	assert.Equal(t, []int64{3, 2}, ids(page2.Content))
	assert.Equal(t, 2, page2.Size)

	rec = get(t, s, url.Values{"size": {"2"}, "continuationToken": {page2.ContinuationToken}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var page3 tPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page3))
	assert.Equal(t, []int64{1}, ids(page3.Content))
	assert.False(t, page3.HasNext)
	assert.Empty(t, page3.ContinuationToken)

	assert.Equal(t, 3, logs.FilterMessage("request").Len())
}

func Test_Server_ListOrders_SortAndFilter(t *testing.T) {
	s, _ := newTestServer(t, keysetpager.MaxLimit)

	rec := get(t, s, url.Values{
		"sort":   {"createdAt asc"},
		"status": {"paid"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var page tPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, []int64{2, 4}, ids(page.Content))
	assert.False(t, page.HasNext)
	assert.Equal(t, 2, page.Size)
}

func Test_Server_ListOrders_MaxSize(t *testing.T) {
	s, _ := newTestServer(t, 3)

	rec := get(t, s, url.Values{"size": {"50"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var page tPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Content, 3)
	assert.True(t, page.HasNext)
}

func Test_Server_ListOrders_BadRequest(t *testing.T) {
	s, _ := newTestServer(t, keysetpager.MaxLimit)

	first := get(t, s, url.Values{"size": {"1"}})
	require.Equal(t, http.StatusOK, first.Code)

	var page tPage
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &page))

	tests := []struct {
		name  string
		query url.Values
	}{
		{"malformed token", url.Values{"continuationToken": {"***"}}},
		{"sort changed", url.Values{"continuationToken": {page.ContinuationToken}, "sort": {"id asc"}}},
		{"unknown sort alias", url.Values{"sort": {"price asc"}}},
		{"bad sort direction", url.Values{"sort": {"id up"}}},
		{"size is not a number", url.Values{"size": {"ten"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.query)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			var body tError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func Test_statusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing sort", keysetpager.ErrMissingSort, http.StatusBadRequest},
		{"wrapped malformed token", errors.Join(errors.New("ctx"), keysetpager.ErrMalformedToken), http.StatusBadRequest},
		{"invalid boundary value", keysetpager.ErrInvalidBoundaryValue, http.StatusInternalServerError},
		{"backend failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func Test_Server_Health(t *testing.T) {
	s, _ := newTestServer(t, keysetpager.MaxLimit)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func ids(orders []store.Order) []int64 {
	ret := make([]int64, 0, len(orders))
	for _, o := range orders {
		ret = append(ret, o.ID)
	}

	return ret
}
