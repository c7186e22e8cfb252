package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/domains/book/service"
	"catalog-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates book HTTP handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListBooks handles GET /books/
func (h *Handler) ListBooks(c *gin.Context) {
	// 1. Bind query parameters
	var req model.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.RequestURL = requestURL(c)

	// 2. Reject malformed page / page_size before touching the database
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// 3. Delegate to service layer
	resp, err := h.service.ListBooks(c.Request.Context(), &req)
	if model.HandleBookError(c, err) {
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetBookDetail handles GET /books/:id/
func (h *Handler) GetBookDetail(c *gin.Context) {
	// A non-numeric id can never identify a book, so it reports the same
	// 404 as an unknown one.
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		model.HandleBookError(c, model.ErrBookNotFound)
		return
	}

	book, err := h.service.GetBookDetail(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}

	c.JSON(http.StatusOK, book)
}

// requestURL reconstructs the absolute URL of the current request so the
// service can derive pagination links from it.
func requestURL(c *gin.Context) *url.URL {
	u := *c.Request.URL
	u.Host = c.Request.Host
	u.Scheme = "http"
	if c.Request.TLS != nil {
		u.Scheme = "https"
	}
	return &u
}
