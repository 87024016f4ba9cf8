package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/internhub/api/http/presenter"
	"github.com/artem13815/internhub/pkg/application"
)

const msgNotFound = "Application ID not found"

// writeError maps orchestrator errors onto HTTP statuses.
func writeError(c *fiber.Ctx, err error) error {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		return presenter.Invalid(c, verr.Field, verr.Message)
	case errors.Is(err, application.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, msgNotFound)
	default:
		return presenter.Error(c, http.StatusInternalServerError, "internal error")
	}
}
