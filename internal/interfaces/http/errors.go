package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jcastaneda/kardex-api/internal/application/dto"
	"github.com/jcastaneda/kardex-api/internal/domain"
)

// statusForError mapea los errores de dominio a códigos HTTP y un código de
// máquina para el cuerpo de error.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrAlreadyAuthorized):
		return fiber.StatusConflict, "ALREADY_AUTHORIZED"
	case errors.Is(err, domain.ErrNotCancellable):
		return fiber.StatusConflict, "NOT_CANCELLABLE"
	case errors.Is(err, domain.ErrEditNotAllowed):
		return fiber.StatusConflict, "EDIT_NOT_ALLOWED"
	case errors.Is(err, domain.ErrUnsupportedMovementType):
		return fiber.StatusBadRequest, "UNSUPPORTED_MOVEMENT_TYPE"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// errorJSON responde el error con el código HTTP que le corresponde.
// Los errores por detalle (DetailError) conservan el índice en el mensaje.
func errorJSON(c *fiber.Ctx, err error) error {
	status, code := statusForError(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Error: err.Error()})
}
