package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/bitacora"
	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/application/ports"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/domain/permisos"
)

// ProductoUseCase casos de uso CRUD para productos. El stock lo administra el backend;
// aquí solo se valida la entrada y se reenvía.
type ProductoUseCase struct {
	backend  ports.ProductosBackend
	bitacora *bitacora.BitacoraUseCase
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(backend ports.ProductosBackend, bit *bitacora.BitacoraUseCase) *ProductoUseCase {
	return &ProductoUseCase{backend: backend, bitacora: bit}
}

// Listar lista productos (público). Siempre incluye las categorías.
func (uc *ProductoUseCase) Listar(ctx context.Context, f dto.ProductoFiltros) (*dto.ProductoListResponse, error) {
	if f.Page < 0 || f.Limit < 0 {
		return nil, fmt.Errorf("%w: page y limit no pueden ser negativos", domain.ErrInvalidInput)
	}
	f.Search = strings.TrimSpace(f.Search)
	out, err := uc.backend.ListarProductos(ctx, f)
	if err != nil {
		return nil, err
	}
	if out.Productos == nil {
		out.Productos = []entity.Producto{}
	}
	return out, nil
}

// Obtener obtiene un producto por ID.
func (uc *ProductoUseCase) Obtener(ctx context.Context, id int64) (*entity.Producto, error) {
	return uc.backend.ObtenerProducto(ctx, id)
}

// Buscar busca por texto libre; una consulta vacía devuelve lista vacía sin llamar al backend.
func (uc *ProductoUseCase) Buscar(ctx context.Context, q string) ([]entity.Producto, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []entity.Producto{}, nil
	}
	return uc.backend.BuscarProductos(ctx, q)
}

func validarProducto(in *dto.ProductoRequest) error {
	in.Nombre = strings.TrimSpace(in.Nombre)
	if in.Nombre == "" {
		return fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if !in.Precio.IsPositive() {
		return fmt.Errorf("%w: el precio debe ser mayor a 0", domain.ErrInvalidInput)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: el stock no puede ser negativo", domain.ErrInvalidInput)
	}
	for _, c := range in.Categorias {
		if c <= 0 {
			return fmt.Errorf("%w: categoría %d inválida", domain.ErrInvalidInput, c)
		}
	}
	if in.Categorias == nil {
		in.Categorias = []int64{}
	}
	return nil
}

// Crear crea un producto. Requiere productos.crear.
func (uc *ProductoUseCase) Crear(ctx context.Context, p *auth.Principal, in dto.ProductoRequest) (prod *entity.Producto, err error) {
	defer func() {
		id := ""
		if prod != nil {
			id = strconv.FormatInt(prod.ID, 10)
		}
		uc.bitacora.Registrar(ctx, p, permisos.ProductosCrear, "producto", id, in.Nombre, err)
	}()
	if err := p.Exigir(permisos.ProductosCrear); err != nil {
		return nil, err
	}
	if err := validarProducto(&in); err != nil {
		return nil, err
	}
	return uc.backend.CrearProducto(ctx, p.Credenciales, in)
}

// Actualizar reemplaza los datos de un producto. Requiere productos.editar.
func (uc *ProductoUseCase) Actualizar(ctx context.Context, p *auth.Principal, id int64, in dto.ProductoRequest) (prod *entity.Producto, err error) {
	defer func() {
		uc.bitacora.Registrar(ctx, p, permisos.ProductosEditar, "producto", strconv.FormatInt(id, 10), in.Nombre, err)
	}()
	if err := p.Exigir(permisos.ProductosEditar); err != nil {
		return nil, err
	}
	if err := validarProducto(&in); err != nil {
		return nil, err
	}
	return uc.backend.ActualizarProducto(ctx, p.Credenciales, id, in)
}

// Eliminar borra un producto. Requiere productos.eliminar.
func (uc *ProductoUseCase) Eliminar(ctx context.Context, p *auth.Principal, id int64) (err error) {
	defer func() {
		uc.bitacora.Registrar(ctx, p, permisos.ProductosEliminar, "producto", strconv.FormatInt(id, 10), "", err)
	}()
	if err := p.Exigir(permisos.ProductosEliminar); err != nil {
		return err
	}
	return uc.backend.EliminarProducto(ctx, p.Credenciales, id)
}

// ActualizarStock fija el stock absoluto de un producto. Requiere productos.editar.
func (uc *ProductoUseCase) ActualizarStock(ctx context.Context, p *auth.Principal, id int64, stock int) (prod *entity.Producto, err error) {
	defer func() {
		uc.bitacora.Registrar(ctx, p, permisos.ProductosEditar, "producto", strconv.FormatInt(id, 10), "stock="+strconv.Itoa(stock), err)
	}()
	if err := p.Exigir(permisos.ProductosEditar); err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, fmt.Errorf("%w: el stock no puede ser negativo", domain.ErrInvalidInput)
	}
	return uc.backend.ActualizarStock(ctx, p.Credenciales, id, stock)
}

// VerificarStock consulta disponibilidad para una lista de productos (público).
func (uc *ProductoUseCase) VerificarStock(ctx context.Context, items []dto.StockCheckItem) (*dto.StockCheckResponse, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos un producto", domain.ErrInvalidInput)
	}
	for _, it := range items {
		if it.ID <= 0 || it.Cantidad <= 0 {
			return nil, fmt.Errorf("%w: id y cantidad deben ser mayores a 0", domain.ErrInvalidInput)
		}
	}
	return uc.backend.VerificarStock(ctx, items)
}
