package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/consola-admin/internal/application/analytics"
	"github.com/jhoicas/consola-admin/internal/application/bitacora"
	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/application/preferencias"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/domain/repository"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Datos del dashboard
// @Description  KPIs, gráficos y alertas del período. Los widgets opcionales que fallan
// @Description  se listan en metadata.widgetsOcultos en vez de hacer fallar la página.
// @Tags         dashboard
// @Security     AdminUser
// @Security     AdminPassword
// @Produce      json
// @Param        anio  query  int  false  "Año (por defecto el actual)"
// @Param        mes   query  int  false  "Mes 1-12 (0 = año completo)"
// @Success      200   {object}  dto.DashboardData
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	var f dto.FiltrosDashboard
	if err := c.QueryParser(&f); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Resumen(c.UserContext(), GetPrincipal(c), f)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Exportar dashboard a CSV
// @Tags         dashboard
// @Security     AdminUser
// @Security     AdminPassword
// @Produce      text/csv
// @Param        anio  query  int  false  "Año"
// @Param        mes   query  int  false  "Mes"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dashboard/export.csv [get]
func (h *DashboardHandler) ExportCSV(c *fiber.Ctx) error {
	var f dto.FiltrosDashboard
	if err := c.QueryParser(&f); err != nil {
		return cuerpoInvalido(c)
	}
	doc, nombre, err := h.uc.ExportarCSV(c.UserContext(), GetPrincipal(c), f)
	if err != nil {
		return responderError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
	return c.Send(doc)
}

// BitacoraHandler consulta de la bitácora de auditoría.
type BitacoraHandler struct {
	uc *bitacora.BitacoraUseCase
}

// NewBitacoraHandler construye el handler.
func NewBitacoraHandler(uc *bitacora.BitacoraUseCase) *BitacoraHandler {
	return &BitacoraHandler{uc: uc}
}

// List godoc
// @Summary      Listar bitácora
// @Tags         bitacora
// @Security     AdminUser
// @Security     AdminPassword
// @Produce      json
// @Param        admin_id  query  int     false  "Filtrar por administrador"
// @Param        accion    query  string  false  "Filtrar por acción (ej. ordenes.cambiar_estado)"
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200       {object}  dto.BitacoraListResponse
// @Failure      403       {object}  dto.ErrorResponse
// @Router       /api/bitacora [get]
func (h *BitacoraHandler) List(c *fiber.Ctx) error {
	f := repository.FiltroBitacora{
		AdminID: int64(c.QueryInt("admin_id", 0)),
		Accion:  c.Query("accion"),
		Limit:   c.QueryInt("limit", 20),
		Offset:  c.QueryInt("offset", 0),
	}
	out, err := h.uc.Listar(c.UserContext(), GetPrincipal(c), f)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// PreferenciasHandler preferencias del dashboard del administrador autenticado.
type PreferenciasHandler struct {
	uc *preferencias.PreferenciasUseCase
}

// NewPreferenciasHandler construye el handler.
func NewPreferenciasHandler(uc *preferencias.PreferenciasUseCase) *PreferenciasHandler {
	return &PreferenciasHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener preferencias del dashboard
// @Tags         preferencias
// @Security     AdminUser
// @Security     AdminPassword
// @Produce      json
// @Success      200  {object}  entity.PreferenciasDashboard
// @Router       /api/preferencias/dashboard [get]
func (h *PreferenciasHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Obtener(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar preferencias del dashboard
// @Tags         preferencias
// @Security     AdminUser
// @Security     AdminPassword
// @Accept       json
// @Produce      json
// @Param        body  body  entity.PreferenciasDashboard  true  "Preferencias"
// @Success      200   {object}  entity.PreferenciasDashboard
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/preferencias/dashboard [put]
func (h *PreferenciasHandler) Save(c *fiber.Ctx) error {
	var in entity.PreferenciasDashboard
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Guardar(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Reset godoc
// @Summary      Restablecer preferencias del dashboard
// @Tags         preferencias
// @Security     AdminUser
// @Security     AdminPassword
// @Produce      json
// @Success      200  {object}  entity.PreferenciasDashboard
// @Router       /api/preferencias/dashboard [delete]
func (h *PreferenciasHandler) Reset(c *fiber.Ctx) error {
	out, err := h.uc.Restablecer(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
