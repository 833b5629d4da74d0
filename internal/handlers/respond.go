package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"rental_erp/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidState):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}

func pagination(page, perPage int, total int64) gin.H {
	pages := (total + int64(perPage) - 1) / int64(perPage)
	return gin.H{
		"page":     page,
		"per_page": perPage,
		"total":    total,
		"pages":    pages,
	}
}
