package ports

import (
	"context"
	"io"

	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

// Puertos de salida hacia el backend REST, fuente de verdad de todas las entidades.
// Las implementaciones normalizan cualquier fallo a un *domain.BackendError, de modo
// que los casos de uso solo comparan contra los sentinelas de domain.

// AuthBackend verificación de credenciales y perfil.
type AuthBackend interface {
	VerificarCredenciales(ctx context.Context, cred entity.Credenciales) (*entity.Administrador, error)
	ObtenerPerfil(ctx context.Context, cred entity.Credenciales) (*entity.Administrador, error)
	CambiarPassword(ctx context.Context, cred entity.Credenciales, actual, nuevo string) error
}

// RolesBackend catálogo de roles (solo lectura).
type RolesBackend interface {
	ListarRoles(ctx context.Context, cred entity.Credenciales) ([]entity.Rol, error)
	ObtenerRol(ctx context.Context, cred entity.Credenciales, id int64) (*entity.Rol, error)
	EstadisticasRoles(ctx context.Context, cred entity.Credenciales) (*dto.EstadisticasRoles, error)
}

// AdministradoresBackend CRUD de administradores y asignación de rol.
type AdministradoresBackend interface {
	ListarAdministradores(ctx context.Context, cred entity.Credenciales) ([]entity.Administrador, error)
	ObtenerAdministrador(ctx context.Context, cred entity.Credenciales, id int64) (*entity.Administrador, error)
	CrearAdministrador(ctx context.Context, cred entity.Credenciales, in dto.CrearAdministradorRequest) (*entity.Administrador, error)
	ActualizarAdministrador(ctx context.Context, cred entity.Credenciales, id int64, in dto.ActualizarAdministradorRequest) (*entity.Administrador, error)
	EliminarAdministrador(ctx context.Context, cred entity.Credenciales, id int64) error
	AsignarRol(ctx context.Context, cred entity.Credenciales, id int64, rolID *int64) (*entity.Administrador, error)
}

// CategoriasBackend CRUD de categorías. Las lecturas son públicas.
type CategoriasBackend interface {
	ListarCategorias(ctx context.Context, f dto.CategoriaFiltros) (*dto.CategoriaListResponse, error)
	ObtenerCategoria(ctx context.Context, id int64) (*entity.Categoria, error)
	CrearCategoria(ctx context.Context, cred entity.Credenciales, in dto.CategoriaRequest) (*entity.Categoria, error)
	ActualizarCategoria(ctx context.Context, cred entity.Credenciales, id int64, in dto.CategoriaRequest) (*entity.Categoria, error)
	EliminarCategoria(ctx context.Context, cred entity.Credenciales, id int64) error
}

// ProductosBackend CRUD de productos, stock e imágenes. Las lecturas son públicas.
type ProductosBackend interface {
	ListarProductos(ctx context.Context, f dto.ProductoFiltros) (*dto.ProductoListResponse, error)
	ObtenerProducto(ctx context.Context, id int64) (*entity.Producto, error)
	BuscarProductos(ctx context.Context, q string) ([]entity.Producto, error)
	CrearProducto(ctx context.Context, cred entity.Credenciales, in dto.ProductoRequest) (*entity.Producto, error)
	ActualizarProducto(ctx context.Context, cred entity.Credenciales, id int64, in dto.ProductoRequest) (*entity.Producto, error)
	EliminarProducto(ctx context.Context, cred entity.Credenciales, id int64) error
	ActualizarStock(ctx context.Context, cred entity.Credenciales, id int64, stock int) (*entity.Producto, error)
	VerificarStock(ctx context.Context, items []dto.StockCheckItem) (*dto.StockCheckResponse, error)
	SubirImagen(ctx context.Context, cred entity.Credenciales, nombre, contentType string, r io.Reader) (*dto.ImagenSubida, error)
}

// OrdenesBackend órdenes y transiciones de estado.
type OrdenesBackend interface {
	ListarOrdenes(ctx context.Context, cred entity.Credenciales, p dto.OrdenesParams) (*dto.OrdenesPaginadas, error)
	ObtenerOrden(ctx context.Context, cred entity.Credenciales, id int64) (*entity.Orden, error)
	CrearOrden(ctx context.Context, cred entity.Credenciales, in dto.CrearOrdenRequest) (*entity.Orden, error)
	ActualizarOrden(ctx context.Context, cred entity.Credenciales, id int64, in dto.ActualizarOrdenRequest) (*entity.Orden, error)
	// CambiarEstado devuelve un error de clase domain.ErrTransicionInvalida si el backend responde 400.
	CambiarEstado(ctx context.Context, cred entity.Credenciales, id int64, nuevo entity.EstadoOrden) (*entity.Orden, error)
	CancelarOrden(ctx context.Context, cred entity.Credenciales, id int64) (*entity.Orden, error)
}

// DashboardBackend agregados de ventas.
type DashboardBackend interface {
	General(ctx context.Context, cred entity.Credenciales, anio, mes int) (*dto.APIDashboardGeneral, error)
	VentasPeriodo(ctx context.Context, cred entity.Credenciales, anio, mes int, tipo string) (*dto.APIVentasPeriodo, error)
	TopProductos(ctx context.Context, cred entity.Credenciales, anio, mes, limit int) (*dto.APITopProductos, error)
	AnalisisCategorias(ctx context.Context, cred entity.Credenciales, anio, mes int) (*dto.APIAnalisisCategorias, error)
	ComparativaAnual(ctx context.Context, cred entity.Credenciales, anioBase, anioComparacion int) (*dto.APIComparativaAnual, error)
}

// Backend agrupa todos los puertos; lo implementa *backend.Client.
type Backend interface {
	AuthBackend
	RolesBackend
	AdministradoresBackend
	CategoriasBackend
	ProductosBackend
	OrdenesBackend
	DashboardBackend
}
