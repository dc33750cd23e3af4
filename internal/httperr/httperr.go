package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond maps err onto a status code and a localized body. Unknown errors are
// reported as upstream failures.
func Respond(c *gin.Context, err error) {
	lang := c.GetHeader("Accept-Language")

	var be BusinessError
	if !errors.As(err, &be) {
		_ = c.Error(err)
		Write(c, http.StatusInternalServerError, "upstream", Message("upstream", lang))
		return
	}

	Write(c, StatusFor(be.Kind), be.Code, Message(be.Code, lang))
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusUnprocessableEntity
	}
}
