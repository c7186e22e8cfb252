package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared/response"
	"catalog-backend/pkg/logger"
)

var (
	ErrBookNotFound    = errors.New("book not found")
	ErrInvalidPage     = errors.New("page must be a positive integer")
	ErrInvalidPageSize = errors.New("page_size must be a positive integer")
)

var bookErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrBookNotFound: {
		Status:  http.StatusNotFound,
		Code:    "BOOK_404",
		Message: "The specified book does not exist",
	},
	ErrInvalidPage: {
		Status:  http.StatusBadRequest,
		Code:    "BOOK_400",
		Message: "page must be a positive integer",
	},
	ErrInvalidPageSize: {
		Status:  http.StatusBadRequest,
		Code:    "BOOK_400",
		Message: "page_size must be a positive integer",
	},
}

// HandleBookError writes the mapped HTTP response for err and reports
// whether a response was written. Unknown errors become a generic 500;
// the database is the only collaborator that can produce them.
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, config := range bookErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, config.Status, config.Code, config.Message)
			return true
		}
	}

	logger.Error("book request failed", err)
	response.InternalServerError(c, "Internal server error")
	return true
}
