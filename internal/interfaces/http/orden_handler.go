package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/application/ordenes"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

// OrdenHandler órdenes y su ciclo de estados.
type OrdenHandler struct {
	uc *ordenes.OrdenesUseCase
}

// NewOrdenHandler construye el handler.
func NewOrdenHandler(uc *ordenes.OrdenesUseCase) *OrdenHandler {
	return &OrdenHandler{uc: uc}
}

// List godoc
// @Summary      Listar órdenes
// @Tags         ordenes
// @Security     AdminUser
// @Security     AdminPassword
// @Produce      json
// @Param        page       query  int     false  "Página"            default(1)
// @Param        limit      query  int     false  "Límite (máx. 100)" default(25)
// @Param        sortBy     query  string  false  "id | fecha | total | cliente"
// @Param        sortOrder  query  string  false  "asc | desc"
// @Param        estado     query  string  false  "Estado o todas"
// @Success      200        {object}  dto.OrdenesPaginadas
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      403        {object}  dto.ErrorResponse
// @Router       /api/ordenes [get]
func (h *OrdenHandler) List(c *fiber.Ctx) error {
	var params dto.OrdenesParams
	if err := c.QueryParser(&params); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Listar(c.UserContext(), GetPrincipal(c), params)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden
// @Description  Incluye el control de estado que corresponde al principal.
// @Tags         ordenes
// @Security     AdminUser
// @Security     AdminPassword
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.OrdenDetalleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id} [get]
func (h *OrdenHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	out, err := h.uc.Obtener(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Transitions godoc
// @Summary      Transiciones disponibles
// @Tags         ordenes
// @Security     AdminUser
// @Security     AdminPassword
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.ControlEstadoDTO
// @Router       /api/ordenes/{id}/transiciones [get]
func (h *OrdenHandler) Transitions(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	out, err := h.uc.TransicionesDisponibles(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear orden
// @Tags         ordenes
// @Security     AdminUser
// @Security     AdminPassword
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearOrdenRequest  true  "Cliente y productos"
// @Success      201   {object}  entity.Orden
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ordenes [post]
func (h *OrdenHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearOrdenRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Crear(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar orden
// @Tags         ordenes
// @Security     AdminUser
// @Security     AdminPassword
// @Accept       json
// @Produce      json
// @Param        id    path  int                         true  "ID de la orden"
// @Param        body  body  dto.ActualizarOrdenRequest  true  "Campos a actualizar"
// @Success      200   {object}  entity.Orden
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id} [put]
func (h *OrdenHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	var in dto.ActualizarOrdenRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Actualizar(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado
// @Description  Solo destinos permitidos por la máquina de estados; cancelado exige administrador.
// @Tags         ordenes
// @Security     AdminUser
// @Security     AdminPassword
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID de la orden"
// @Param        body  body  dto.CambiarEstadoRequest  true  "nuevoEstado"
// @Success      200   {object}  dto.OrdenDetalleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id}/estado [put]
func (h *OrdenHandler) ChangeStatus(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	var in dto.CambiarEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	destino := entity.EstadoOrden(strings.ToLower(strings.TrimSpace(string(in.NuevoEstado))))
	out, err := h.uc.CambiarEstado(c.UserContext(), GetPrincipal(c), id, destino)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar orden
// @Tags         ordenes
// @Security     AdminUser
// @Security     AdminPassword
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.OrdenDetalleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id} [delete]
func (h *OrdenHandler) Cancel(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	out, err := h.uc.Cancelar(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF
// @Tags         ordenes
// @Security     AdminUser
// @Security     AdminPassword
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordenes/{id}/comprobante [get]
func (h *OrdenHandler) Receipt(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	doc, nombre, err := h.uc.ComprobantePDF(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return responderError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
	return c.Send(doc)
}
