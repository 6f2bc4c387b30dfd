package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aiig/deliverables-backend/internal/domain"
)

// ErrorBody is the uniform failure envelope for every endpoint.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Error maps a domain error to its HTTP status and writes the failure
// envelope.
func Error(c *gin.Context, err error) {
	var (
		notFound   *domain.NotFoundError
		validation *domain.ValidationError
		conflict   *domain.ConflictError
		reference  *domain.ReferentialIntegrityError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, fail("validation", err))
	case errors.As(err, &reference):
		c.JSON(http.StatusBadRequest, fail("referential_integrity", err))
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, fail("not_found", err))
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, fail("conflict", err))
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":    false,
			"error": ErrorBody{Kind: "internal", Message: "internal error"},
		})
	}
}

func fail(kind string, err error) gin.H {
	return gin.H{"ok": false, "error": ErrorBody{Kind: kind, Message: err.Error()}}
}

// BadRequest writes a validation failure for malformed input detected at the
// HTTP boundary.
func BadRequest(c *gin.Context, field, message string) {
	Error(c, domain.Invalid(field, message))
}

// UUIDParam reads the :id style path parameter and rejects the request if it
// is not a syntactically valid UUID.
func UUIDParam(c *gin.Context, name string) (string, bool) {
	v := c.Param(name)
	if _, err := uuid.Parse(v); err != nil {
		BadRequest(c, name, "must be a valid UUID")
		return "", false
	}
	return v, true
}

// ValidUUID reports whether v parses as a UUID. Used on foreign-key-shaped
// body and query fields.
func ValidUUID(v string) bool {
	_, err := uuid.Parse(v)
	return err == nil
}
