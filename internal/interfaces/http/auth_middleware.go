package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/domain/permisos"
)

// Cabeceras de credenciales, las mismas que exige el backend.
const (
	HeaderUsuario  = "x-admin-user"
	HeaderPassword = "x-admin-password"
)

// LocalPrincipal clave de c.Locals con el *auth.Principal de la petición.
const LocalPrincipal = "principal"

// AuthMiddleware lee las credenciales de las cabeceras, obtiene el perfil del backend
// y deja el principal en c.Locals. No hay caché: cada petición revalida.
func AuthMiddleware(uc *auth.AuthUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cred := entity.Credenciales{
			Usuario:  strings.TrimSpace(c.Get(HeaderUsuario)),
			Password: c.Get(HeaderPassword),
		}
		if !cred.Completas() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    CodigoSinCredenciales,
				Message: "cabeceras " + HeaderUsuario + " y " + HeaderPassword + " requeridas",
			})
		}
		p, err := uc.Perfil(c.UserContext(), cred)
		if err != nil {
			return responderError(c, err)
		}
		c.Locals(LocalPrincipal, p)
		return c.Next()
	}
}

// GetPrincipal devuelve el principal de la petición (nil antes de AuthMiddleware).
func GetPrincipal(c *fiber.Ctx) *auth.Principal {
	p, _ := c.Locals(LocalPrincipal).(*auth.Principal)
	return p
}

// RequirePermiso corta con 403 si el principal no tiene la capacidad.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequirePermiso(capacidad permisos.Capacidad) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := GetPrincipal(c).Exigir(capacidad); err != nil {
			return responderError(c, err)
		}
		return c.Next()
	}
}

// RequireAdministrador corta con 403 si el principal no es administrador.
func RequireAdministrador() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := GetPrincipal(c).ExigirAdministrador(); err != nil {
			return responderError(c, err)
		}
		return c.Next()
	}
}
