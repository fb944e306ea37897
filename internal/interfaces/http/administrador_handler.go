package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/application/usecase"
)

// AdministradorHandler gestión de administradores y roles (solo administrador).
type AdministradorHandler struct {
	admins *usecase.AdministradorUseCase
	roles  *usecase.RolUseCase
}

// NewAdministradorHandler construye el handler.
func NewAdministradorHandler(admins *usecase.AdministradorUseCase, roles *usecase.RolUseCase) *AdministradorHandler {
	return &AdministradorHandler{admins: admins, roles: roles}
}

// List godoc
// @Summary      Listar administradores
// @Tags         administradores
// @Security     AdminUser
// @Security     AdminPassword
// @Produce      json
// @Success      200  {array}   entity.Administrador
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/administradores [get]
func (h *AdministradorHandler) List(c *fiber.Ctx) error {
	out, err := h.admins.Listar(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener administrador
// @Tags         administradores
// @Security     AdminUser
// @Security     AdminPassword
// @Produce      json
// @Param        id   path  int  true  "ID del administrador"
// @Success      200  {object}  entity.Administrador
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/administradores/{id} [get]
func (h *AdministradorHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	out, err := h.admins.Obtener(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear administrador
// @Tags         administradores
// @Security     AdminUser
// @Security     AdminPassword
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearAdministradorRequest  true  "usuario, password, rol_id"
// @Success      201   {object}  entity.Administrador
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/administradores [post]
func (h *AdministradorHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearAdministradorRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.admins.Crear(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar administrador
// @Tags         administradores
// @Security     AdminUser
// @Security     AdminPassword
// @Accept       json
// @Produce      json
// @Param        id    path  int                                 true  "ID del administrador"
// @Param        body  body  dto.ActualizarAdministradorRequest  true  "Campos a actualizar"
// @Success      200   {object}  entity.Administrador
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/administradores/{id} [put]
func (h *AdministradorHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	var in dto.ActualizarAdministradorRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.admins.Actualizar(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar administrador
// @Tags         administradores
// @Security     AdminUser
// @Security     AdminPassword
// @Param        id   path  int  true  "ID del administrador"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/administradores/{id} [delete]
func (h *AdministradorHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	if err := h.admins.Eliminar(c.UserContext(), GetPrincipal(c), id); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignRole godoc
// @Summary      Asignar o quitar rol
// @Tags         administradores
// @Security     AdminUser
// @Security     AdminPassword
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del administrador"
// @Param        body  body  dto.AsignarRolRequest  true  "rol_id (null quita el rol)"
// @Success      200   {object}  entity.Administrador
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/administradores/{id}/rol [put]
func (h *AdministradorHandler) AssignRole(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	var in dto.AsignarRolRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.admins.AsignarRol(c.UserContext(), GetPrincipal(c), id, in.RolID)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListRoles godoc
// @Summary      Listar roles
// @Tags         roles
// @Security     AdminUser
// @Security     AdminPassword
// @Produce      json
// @Success      200  {array}   entity.Rol
// @Router       /api/roles [get]
func (h *AdministradorHandler) ListRoles(c *fiber.Ctx) error {
	out, err := h.roles.Listar(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// RoleStats godoc
// @Summary      Estadísticas de roles
// @Tags         roles
// @Security     AdminUser
// @Security     AdminPassword
// @Produce      json
// @Success      200  {object}  dto.EstadisticasRoles
// @Router       /api/roles/stats [get]
func (h *AdministradorHandler) RoleStats(c *fiber.Ctx) error {
	out, err := h.roles.Estadisticas(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// GetRole godoc
// @Summary      Obtener rol
// @Tags         roles
// @Security     AdminUser
// @Security     AdminPassword
// @Produce      json
// @Param        id   path  int  true  "ID del rol"
// @Success      200  {object}  entity.Rol
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [get]
func (h *AdministradorHandler) GetRole(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	out, err := h.roles.Obtener(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
