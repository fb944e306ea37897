package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/consola-admin/internal/domain"
)

func TestClasificar(t *testing.T) {
	casos := []struct {
		nombre string
		err    error
		status int
		codigo string
	}{
		{"credenciales", domain.ErrCredencialesInvalidas, fiber.StatusUnauthorized, CodigoCredencialesInvalidas},
		{"sesión", &domain.BackendError{Clase: domain.ErrSesionInvalida, Status: 403}, fiber.StatusUnauthorized, CodigoSesionInvalida},
		{"sin credenciales", domain.ErrSinCredenciales, fiber.StatusUnauthorized, CodigoSinCredenciales},
		{"transición", domain.TransicionInvalida("enviado", "pendiente", 0), fiber.StatusBadRequest, CodigoTransicionInvalida},
		{"conexión", &domain.BackendError{Clase: domain.ErrConexion}, fiber.StatusBadGateway, CodigoBackendInaccesible},
		{"backend 422", &domain.BackendError{Clase: domain.ErrBackend, Status: 422}, 422, CodigoBackend},
		{"backend 503", &domain.BackendError{Clase: domain.ErrBackend, Status: 503}, fiber.StatusBadGateway, CodigoBackend},
		{"prohibido envuelto", fmt.Errorf("%w: falta ordenes.leer", domain.ErrForbidden), fiber.StatusForbidden, CodigoProhibido},
		{"en curso", domain.ErrOperacionEnCurso, fiber.StatusConflict, CodigoEnCurso},
		{"validación", fmt.Errorf("%w: nombre", domain.ErrInvalidInput), fiber.StatusBadRequest, CodigoValidacion},
		{"no encontrado", domain.ErrNotFound, fiber.StatusNotFound, CodigoNoEncontrado},
		{"conflicto", domain.ErrConflict, fiber.StatusConflict, CodigoConflicto},
		{"no autorizado", domain.ErrUnauthorized, fiber.StatusUnauthorized, CodigoSesionInvalida},
		{"otro", errors.New("boom"), fiber.StatusInternalServerError, CodigoInterno},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			status, codigo := clasificar(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.codigo, codigo)
		})
	}
}
