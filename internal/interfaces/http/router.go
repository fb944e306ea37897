package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/consola-admin/internal/application/analytics"
	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/bitacora"
	"github.com/jhoicas/consola-admin/internal/application/ordenes"
	"github.com/jhoicas/consola-admin/internal/application/preferencias"
	"github.com/jhoicas/consola-admin/internal/application/usecase"
	"github.com/jhoicas/consola-admin/internal/domain/permisos"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	CategoriaUC     *usecase.CategoriaUseCase
	ProductoUC      *usecase.ProductoUseCase
	UploadUC        *usecase.UploadUseCase
	AdministradorUC *usecase.AdministradorUseCase
	RolUC           *usecase.RolUseCase
	OrdenesUC       *ordenes.OrdenesUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	BitacoraUC      *bitacora.BitacoraUseCase
	PreferenciasUC  *preferencias.PreferenciasUseCase
}

// Router registra las rutas de la API. El chequeo de capacidades en la ruta corta
// antes de llegar al backend; los casos de uso vuelven a verificar.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.AuthUC)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/auth/sesion", requireAuth, authHandler.Sesion)
	api.Put("/auth/password", requireAuth, authHandler.CambiarPassword)

	// Categorías (lectura pública)
	categoriaHandler := NewCategoriaHandler(deps.CategoriaUC)
	api.Get("/categorias", categoriaHandler.List)
	api.Get("/categorias/:id", categoriaHandler.GetByID)
	api.Post("/categorias", requireAuth, RequirePermiso(permisos.CategoriasCrear), categoriaHandler.Create)
	api.Put("/categorias/:id", requireAuth, RequirePermiso(permisos.CategoriasEditar), categoriaHandler.Update)
	api.Delete("/categorias/:id", requireAuth, RequirePermiso(permisos.CategoriasEliminar), categoriaHandler.Delete)

	// Productos (lectura y verificación de stock públicas)
	productoHandler := NewProductoHandler(deps.ProductoUC)
	api.Get("/productos", productoHandler.List)
	api.Get("/productos/search", productoHandler.Search)
	api.Post("/productos/check-stock", productoHandler.CheckStock)
	api.Get("/productos/:id", productoHandler.GetByID)
	api.Post("/productos", requireAuth, RequirePermiso(permisos.ProductosCrear), productoHandler.Create)
	api.Put("/productos/:id", requireAuth, RequirePermiso(permisos.ProductosEditar), productoHandler.Update)
	api.Patch("/productos/:id/stock", requireAuth, RequirePermiso(permisos.ProductosEditar), productoHandler.UpdateStock)
	api.Delete("/productos/:id", requireAuth, RequirePermiso(permisos.ProductosEliminar), productoHandler.Delete)

	// Uploads
	uploadHandler := NewUploadHandler(deps.UploadUC)
	api.Post("/uploads/image", requireAuth, RequirePermiso(permisos.UploadsSubir), uploadHandler.Image)

	// Administradores y roles (solo administrador)
	adminHandler := NewAdministradorHandler(deps.AdministradorUC, deps.RolUC)
	admins := api.Group("/administradores", requireAuth, RequireAdministrador())
	admins.Get("/", adminHandler.List)
	admins.Post("/", adminHandler.Create)
	admins.Get("/:id", adminHandler.GetByID)
	admins.Put("/:id", adminHandler.Update)
	admins.Delete("/:id", adminHandler.Delete)
	admins.Put("/:id/rol", adminHandler.AssignRole)

	roles := api.Group("/roles", requireAuth, RequireAdministrador())
	roles.Get("/", adminHandler.ListRoles)
	roles.Get("/stats", adminHandler.RoleStats)
	roles.Get("/:id", adminHandler.GetRole)

	// Órdenes
	ordenHandler := NewOrdenHandler(deps.OrdenesUC)
	ord := api.Group("/ordenes", requireAuth)
	ord.Get("/", RequirePermiso(permisos.OrdenesLeer), ordenHandler.List)
	ord.Post("/", RequirePermiso(permisos.OrdenesCrear), ordenHandler.Create)
	ord.Get("/:id", RequirePermiso(permisos.OrdenesLeer), ordenHandler.GetByID)
	ord.Get("/:id/transiciones", RequirePermiso(permisos.OrdenesLeer), ordenHandler.Transitions)
	ord.Get("/:id/comprobante", RequirePermiso(permisos.OrdenesLeer), ordenHandler.Receipt)
	ord.Put("/:id", RequirePermiso(permisos.OrdenesEditar), ordenHandler.Update)
	ord.Put("/:id/estado", RequirePermiso(permisos.OrdenesCambiarEstado), ordenHandler.ChangeStatus)
	ord.Delete("/:id", RequireAdministrador(), ordenHandler.Cancel)

	// Dashboard: basta con estar autenticado
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", requireAuth, dashboardHandler.Get)
	api.Get("/dashboard/export.csv", requireAuth, dashboardHandler.ExportCSV)

	// Bitácora
	bitacoraHandler := NewBitacoraHandler(deps.BitacoraUC)
	api.Get("/bitacora", requireAuth, RequirePermiso(permisos.BitacoraLeer), bitacoraHandler.List)

	// Preferencias del dashboard
	prefHandler := NewPreferenciasHandler(deps.PreferenciasUC)
	api.Get("/preferencias/dashboard", requireAuth, prefHandler.Get)
	api.Put("/preferencias/dashboard", requireAuth, prefHandler.Save)
	api.Delete("/preferencias/dashboard", requireAuth, prefHandler.Reset)
}
