package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Alp4ka/keysetpager"
	"github.com/Alp4ka/keysetpager/internal/store"
)

// listOrdersRequest is bound from the query string:
//
//	GET /orders?size=20&sort=createdAt+desc&sort=id+asc&status=paid&continuationToken=...
type listOrdersRequest struct {
	keysetpager.RawPageRequest
	store.Filter
}

// ErrorResponse is the body of every non 2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listOrders(c *gin.Context) {
	var req listOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}

	pageReq, err := req.RawPageRequest.DecodeMax(s.maxSize, s.store.Mapping(), s.store.DefaultSort()...)
	if err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}

	page, err := s.store.List(c.Request.Context(), pageReq, req.Filter)
	if err != nil {
		sendError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// statusFor maps pager errors caused by the request to 400. Everything else,
// backend failures included, is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, keysetpager.ErrMissingSort),
		errors.Is(err, keysetpager.ErrSortChanged),
		errors.Is(err, keysetpager.ErrMalformedToken),
		errors.Is(err, keysetpager.ErrInvalidSize),
		errors.Is(err, keysetpager.ErrUnknownSortField),
		errors.Is(err, keysetpager.ErrDuplicateSortColumn):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func sendError(c *gin.Context, status int, err error) {
	_ = c.Error(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	c.JSON(status, gin.H{"error": ErrorResponse{Message: message}})
}
