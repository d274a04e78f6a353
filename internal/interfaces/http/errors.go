package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/malikaashish/Inventory-Management-System/internal/application/dto"
	"github.com/malikaashish/Inventory-Management-System/internal/domain"
)

// writeError traduce un error de dominio a código HTTP y cuerpo dto.ErrorResponse.
// Errores sin clasificar responden 500 sin filtrar el detalle interno.
func writeError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	msg := domain.Message(err)
	if status == fiber.StatusInternalServerError {
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

func badBody(c *fiber.Ctx) error {
	return abort(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
}

func badRequest(c *fiber.Ctx, msg string) error {
	return abort(c, fiber.StatusBadRequest, "VALIDATION", msg)
}

// pageFromQuery lee ?limit=&offset= normalizados.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}.Normalize()
}

// abort corta la cadena de middlewares con un error HTTP.
func abort(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
