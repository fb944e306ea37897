package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/dto"
)

// AuthHandler login, sesión actual y cambio de contraseña.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Verifica las credenciales contra el backend y devuelve el perfil con sus capacidades.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "usuario, password"
// @Success      200   {object}  dto.SesionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	p, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(auth.RespuestaSesion(p))
}

// Sesion godoc
// @Summary      Sesión actual
// @Tags         auth
// @Security     AdminUser
// @Security     AdminPassword
// @Produce      json
// @Success      200  {object}  dto.SesionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/sesion [get]
func (h *AuthHandler) Sesion(c *fiber.Ctx) error {
	return c.JSON(auth.RespuestaSesion(GetPrincipal(c)))
}

// CambiarPassword godoc
// @Summary      Cambiar contraseña
// @Description  Un 401 del backend aquí significa contraseña actual incorrecta.
// @Tags         auth
// @Security     AdminUser
// @Security     AdminPassword
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CambiarPasswordRequest  true  "passwordActual, passwordNuevo"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/password [put]
func (h *AuthHandler) CambiarPassword(c *fiber.Ctx) error {
	var in dto.CambiarPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	if err := h.uc.CambiarPassword(c.UserContext(), GetPrincipal(c), in); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Contraseña actualizada exitosamente"})
}
