package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/domain"
)

// Códigos de error de la API de la consola.
const (
	CodigoCredencialesInvalidas = "INVALID_CREDENTIALS"
	CodigoSesionInvalida        = "SESSION_INVALID"
	CodigoSinCredenciales       = "MISSING_CREDENTIALS"
	CodigoTransicionInvalida    = "INVALID_TRANSITION"
	CodigoBackend               = "BACKEND_ERROR"
	CodigoBackendInaccesible    = "BACKEND_UNREACHABLE"
	CodigoProhibido             = "FORBIDDEN"
	CodigoEnCurso               = "IN_PROGRESS"
	CodigoValidacion            = "VALIDATION"
	CodigoNoEncontrado          = "NOT_FOUND"
	CodigoConflicto             = "CONFLICT"
	CodigoCuerpoInvalido        = "INVALID_BODY"
	CodigoInterno               = "INTERNAL"
)

// clasificar traduce un error normalizado a status HTTP y código.
// El orden importa: las clases del backend van antes que los sentinelas genéricos.
func clasificar(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrCredencialesInvalidas):
		return fiber.StatusUnauthorized, CodigoCredencialesInvalidas
	case errors.Is(err, domain.ErrSesionInvalida):
		return fiber.StatusUnauthorized, CodigoSesionInvalida
	case errors.Is(err, domain.ErrSinCredenciales):
		return fiber.StatusUnauthorized, CodigoSinCredenciales
	case errors.Is(err, domain.ErrTransicionInvalida):
		return fiber.StatusBadRequest, CodigoTransicionInvalida
	case errors.Is(err, domain.ErrConexion):
		return fiber.StatusBadGateway, CodigoBackendInaccesible
	case errors.Is(err, domain.ErrBackend):
		var be *domain.BackendError
		if errors.As(err, &be) && be.Status >= 400 && be.Status < 500 {
			return be.Status, CodigoBackend
		}
		return fiber.StatusBadGateway, CodigoBackend
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, CodigoProhibido
	case errors.Is(err, domain.ErrOperacionEnCurso):
		return fiber.StatusConflict, CodigoEnCurso
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, CodigoValidacion
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, CodigoNoEncontrado
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, CodigoConflicto
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, CodigoSesionInvalida
	}
	return fiber.StatusInternalServerError, CodigoInterno
}

// responderError escribe dto.ErrorResponse para err. Los errores no clasificados
// se registran y se devuelven con un mensaje genérico.
func responderError(c *fiber.Ctx, err error) error {
	status, codigo := clasificar(err)
	resp := dto.ErrorResponse{Code: codigo, Message: domain.MensajeUsuario(err)}
	var be *domain.BackendError
	if errors.As(err, &be) && len(be.Detalles) > 0 {
		resp.Details = be.Detalles
	}
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error no clasificado")
		resp.Message = "error interno del servidor"
	}
	return c.Status(status).JSON(resp)
}

func cuerpoInvalido(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodigoCuerpoInvalido, Message: "cuerpo inválido"})
}

// paramID lee el parámetro :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func idInvalido(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodigoValidacion, Message: "id inválido"})
}
