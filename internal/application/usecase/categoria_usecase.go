package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/bitacora"
	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/application/ports"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/domain/permisos"
)

// CategoriaUseCase casos de uso de categorías. Las lecturas son públicas.
type CategoriaUseCase struct {
	backend  ports.CategoriasBackend
	bitacora *bitacora.BitacoraUseCase
}

// NewCategoriaUseCase construye el caso de uso.
func NewCategoriaUseCase(backend ports.CategoriasBackend, bit *bitacora.BitacoraUseCase) *CategoriaUseCase {
	return &CategoriaUseCase{backend: backend, bitacora: bit}
}

// Listar lista categorías con búsqueda y paginación opcionales.
func (uc *CategoriaUseCase) Listar(ctx context.Context, f dto.CategoriaFiltros) (*dto.CategoriaListResponse, error) {
	f.Search = strings.TrimSpace(f.Search)
	if f.Page < 0 || f.Limit < 0 {
		return nil, fmt.Errorf("%w: page y limit no pueden ser negativos", domain.ErrInvalidInput)
	}
	out, err := uc.backend.ListarCategorias(ctx, f)
	if err != nil {
		return nil, err
	}
	if out.Categorias == nil {
		out.Categorias = []entity.Categoria{}
	}
	return out, nil
}

// Obtener devuelve una categoría por ID.
func (uc *CategoriaUseCase) Obtener(ctx context.Context, id int64) (*entity.Categoria, error) {
	return uc.backend.ObtenerCategoria(ctx, id)
}

func validarCategoria(in *dto.CategoriaRequest) error {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Descripcion = strings.TrimSpace(in.Descripcion)
	n := utf8.RuneCountInString(in.Nombre)
	if n < 2 || n > 100 {
		return fmt.Errorf("%w: el nombre debe tener entre 2 y 100 caracteres", domain.ErrInvalidInput)
	}
	return nil
}

// Crear crea una categoría. Requiere categorias.crear.
func (uc *CategoriaUseCase) Crear(ctx context.Context, p *auth.Principal, in dto.CategoriaRequest) (c *entity.Categoria, err error) {
	defer func() {
		id := ""
		if c != nil {
			id = strconv.FormatInt(c.ID, 10)
		}
		uc.bitacora.Registrar(ctx, p, permisos.CategoriasCrear, "categoria", id, in.Nombre, err)
	}()
	if err := p.Exigir(permisos.CategoriasCrear); err != nil {
		return nil, err
	}
	if err := validarCategoria(&in); err != nil {
		return nil, err
	}
	return uc.backend.CrearCategoria(ctx, p.Credenciales, in)
}

// Actualizar reemplaza nombre y descripción. Requiere categorias.editar.
func (uc *CategoriaUseCase) Actualizar(ctx context.Context, p *auth.Principal, id int64, in dto.CategoriaRequest) (c *entity.Categoria, err error) {
	defer func() {
		uc.bitacora.Registrar(ctx, p, permisos.CategoriasEditar, "categoria", strconv.FormatInt(id, 10), in.Nombre, err)
	}()
	if err := p.Exigir(permisos.CategoriasEditar); err != nil {
		return nil, err
	}
	if err := validarCategoria(&in); err != nil {
		return nil, err
	}
	return uc.backend.ActualizarCategoria(ctx, p.Credenciales, id, in)
}

// Eliminar borra una categoría; el backend la rechaza (409) si tiene productos.
func (uc *CategoriaUseCase) Eliminar(ctx context.Context, p *auth.Principal, id int64) (err error) {
	defer func() {
		uc.bitacora.Registrar(ctx, p, permisos.CategoriasEliminar, "categoria", strconv.FormatInt(id, 10), "", err)
	}()
	if err := p.Exigir(permisos.CategoriasEliminar); err != nil {
		return err
	}
	return uc.backend.EliminarCategoria(ctx, p.Credenciales, id)
}
