package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/shopcrm/internal/domain"
)

// APIError описывает ошибку в теле ответа.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope — обёртка ошибки в JSON-ответе.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

const (
	codeValidation = "validation"
	codeNotFound   = "not_found"
	codeBadRequest = "bad_request"
	codeInternal   = "internal"
)

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// respondDomainError переводит доменную ошибку в HTTP статус:
// ошибки валидации — 400, отсутствующие сущности — 404, остальное — 500.
func (h *Handler) respondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, codeValidation, err)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, codeNotFound, err)
	default:
		h.logger.WithError(err).Error("internal error")
		respondError(c, http.StatusInternalServerError, codeInternal, err)
	}
}
