package handlers

import (
	"net/http"

	"faregateway/internal/domain"

	"github.com/gin-gonic/gin"
)

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, "validation failed", err)
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, "not found", err)
	case domain.IsUpstream(err):
		RespondError(c, http.StatusBadGateway, "upstream update failed", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal error", nil)
	}
}
