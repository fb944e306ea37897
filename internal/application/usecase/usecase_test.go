package usecase_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/bitacora"
	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/application/usecase"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/testutil/fakebackend"
	"github.com/jhoicas/consola-admin/internal/testutil/memrepo"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type entorno struct {
	backend *fakebackend.Backend
	repo    *memrepo.Bitacora
	bit     *bitacora.BitacoraUseCase
	admin   *auth.Principal
	gerente *auth.Principal
	asesor  *auth.Principal
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	b := fakebackend.New()
	e := &entorno{backend: b, repo: &memrepo.Bitacora{}}
	e.bit = bitacora.NewBitacoraUseCase(e.repo, zerolog.Nop())

	perfil := auth.NewAuthUseCase(b, zerolog.Nop())
	cargar := func(id int64, usuario, rol string) *auth.Principal {
		p, err := perfil.Perfil(context.Background(), b.AgregarAdmin(id, usuario, "clave123", rol))
		require.NoError(t, err)
		return p
	}
	e.admin = cargar(1, "admin", "administrador")
	e.gerente = cargar(2, "gerente1", "gerente")
	e.asesor = cargar(3, "asesor1", "asesor de ventas")
	b.LimpiarLlamadas()
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoria_CrearValidaNombre(t *testing.T) {
	e := nuevoEntorno(t)
	uc := usecase.NewCategoriaUseCase(e.backend, e.bit)
	ctx := context.Background()

	_, err := uc.Crear(ctx, e.gerente, dto.CategoriaRequest{Nombre: " a "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Crear(ctx, e.gerente, dto.CategoriaRequest{Nombre: strings.Repeat("x", 101)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, e.backend.Conteo("CrearCategoria"))

	c, err := uc.Crear(ctx, e.gerente, dto.CategoriaRequest{Nombre: "  Proteínas ", Descripcion: "Suplementos"})
	require.NoError(t, err)
	assert.Equal(t, "Proteínas", c.Nombre)

	entradas := e.repo.Entradas()
	require.Len(t, entradas, 3)
	assert.Equal(t, "categorias.crear", entradas[2].Accion)
	assert.Equal(t, entity.ResultadoExito, entradas[2].Resultado)
}

func TestCategoria_AsesorSoloLee(t *testing.T) {
	e := nuevoEntorno(t)
	uc := usecase.NewCategoriaUseCase(e.backend, e.bit)
	e.backend.Categorias[1] = &entity.Categoria{ID: 1, Nombre: "Ropa"}

	_, err := uc.Crear(context.Background(), e.asesor, dto.CategoriaRequest{Nombre: "Accesorios"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, uc.Eliminar(context.Background(), e.asesor, 1), domain.ErrForbidden)

	out, err := uc.Listar(context.Background(), dto.CategoriaFiltros{Search: " ro "})
	require.NoError(t, err)
	require.Len(t, out.Categorias, 1)
	assert.Equal(t, "Ropa", out.Categorias[0].Nombre)
}

func TestCategoria_EliminarConProductosDevuelveMensajeDelBackend(t *testing.T) {
	e := nuevoEntorno(t)
	uc := usecase.NewCategoriaUseCase(e.backend, e.bit)
	e.backend.FijarError("EliminarCategoria", fakebackend.Error(409, "No se puede eliminar la categoría porque tiene productos asociados"))

	err := uc.Eliminar(context.Background(), e.admin, 1)
	assert.ErrorIs(t, err, domain.ErrBackend)
	assert.Equal(t, "No se puede eliminar la categoría porque tiene productos asociados", domain.MensajeUsuario(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProducto_Validaciones(t *testing.T) {
	e := nuevoEntorno(t)
	uc := usecase.NewProductoUseCase(e.backend, e.bit)
	ctx := context.Background()

	casos := []dto.ProductoRequest{
		{Nombre: "", Precio: decimal.NewFromInt(10)},
		{Nombre: "Guantes", Precio: decimal.Zero},
		{Nombre: "Guantes", Precio: decimal.NewFromInt(-5)},
		{Nombre: "Guantes", Precio: decimal.NewFromInt(10), Stock: -1},
		{Nombre: "Guantes", Precio: decimal.NewFromInt(10), Categorias: []int64{0}},
	}
	for _, in := range casos {
		_, err := uc.Crear(ctx, e.gerente, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
	assert.Equal(t, 0, e.backend.Conteo("CrearProducto"))

	p, err := uc.Crear(ctx, e.gerente, dto.ProductoRequest{Nombre: "Guantes", Precio: decimal.RequireFromString("49.90"), Stock: 3, Disponible: true})
	require.NoError(t, err)
	assert.True(t, p.Precio.Equal(decimal.RequireFromString("49.90")))
}

func TestProducto_AsesorNoEdita(t *testing.T) {
	e := nuevoEntorno(t)
	uc := usecase.NewProductoUseCase(e.backend, e.bit)
	e.backend.Productos[5] = &entity.Producto{ID: 5, Nombre: "Banda", Precio: decimal.NewFromInt(20), Stock: 2}

	_, err := uc.ActualizarStock(context.Background(), e.asesor, 5, 10)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.ActualizarStock(context.Background(), e.gerente, 5, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := uc.ActualizarStock(context.Background(), e.gerente, 5, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)
}

func TestProducto_BuscarVacioNoLlamaAlBackend(t *testing.T) {
	e := nuevoEntorno(t)
	uc := usecase.NewProductoUseCase(e.backend, e.bit)

	out, err := uc.Buscar(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, e.backend.Llamadas())
}

func TestProducto_VerificarStock(t *testing.T) {
	e := nuevoEntorno(t)
	uc := usecase.NewProductoUseCase(e.backend, e.bit)
	e.backend.Productos[5] = &entity.Producto{ID: 5, Nombre: "Banda", Stock: 2}

	_, err := uc.VerificarStock(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.VerificarStock(context.Background(), []dto.StockCheckItem{{ID: 5, Cantidad: 3}})
	require.NoError(t, err)
	assert.False(t, out.Disponible)
}

// ──────────────────────────────────────────────────────────────────────────────
// Uploads
// ──────────────────────────────────────────────────────────────────────────────

func TestUpload_TipoYTamano(t *testing.T) {
	e := nuevoEntorno(t)
	uc := usecase.NewUploadUseCase(e.backend, e.bit)
	ctx := context.Background()

	_, err := uc.SubirImagen(ctx, e.gerente, "doc.pdf", "application/pdf", 10, bytes.NewReader([]byte("x")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	grande := bytes.NewReader(make([]byte, usecase.TamanoMaximoImagen+1))
	_, err = uc.SubirImagen(ctx, e.gerente, "foto.png", "image/png", 0, grande)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, e.backend.Conteo("SubirImagen"))

	_, err = uc.SubirImagen(ctx, e.asesor, "foto.png", "image/png", 3, bytes.NewReader([]byte("png")))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	img, err := uc.SubirImagen(ctx, e.gerente, "foto.webp", "image/webp; charset=binary", 4, bytes.NewReader([]byte("webp")))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/foto.webp", img.URL)
	assert.Equal(t, int64(4), img.Size)
}

// ──────────────────────────────────────────────────────────────────────────────
// Administradores y roles
// ──────────────────────────────────────────────────────────────────────────────

func TestAdministrador_SoloRangoAdministrador(t *testing.T) {
	e := nuevoEntorno(t)
	uc := usecase.NewAdministradorUseCase(e.backend, e.bit)

	_, err := uc.Listar(context.Background(), e.gerente)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	lista, err := uc.Listar(context.Background(), e.admin)
	require.NoError(t, err)
	assert.Len(t, lista, 3)
}

func TestAdministrador_CrearValidaYDetectaDuplicado(t *testing.T) {
	e := nuevoEntorno(t)
	uc := usecase.NewAdministradorUseCase(e.backend, e.bit)
	ctx := context.Background()

	_, err := uc.Crear(ctx, e.admin, dto.CrearAdministradorRequest{Usuario: "ab", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Crear(ctx, e.admin, dto.CrearAdministradorRequest{Usuario: "vendedor", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Crear(ctx, e.admin, dto.CrearAdministradorRequest{Usuario: "GERENTE1", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrBackend)

	a, err := uc.Crear(ctx, e.admin, dto.CrearAdministradorRequest{Usuario: " vendedor ", Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, "vendedor", a.Usuario)
}

func TestAdministrador_NoPuedeEliminarse(t *testing.T) {
	e := nuevoEntorno(t)
	uc := usecase.NewAdministradorUseCase(e.backend, e.bit)

	err := uc.Eliminar(context.Background(), e.admin, e.admin.Admin.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, e.backend.Conteo("EliminarAdministrador"))

	require.NoError(t, uc.Eliminar(context.Background(), e.admin, 3))
}

func TestAdministrador_AsignarYQuitarRol(t *testing.T) {
	e := nuevoEntorno(t)
	uc := usecase.NewAdministradorUseCase(e.backend, e.bit)
	ctx := context.Background()
	rolGerente := *e.gerente.Admin.RolID

	a, err := uc.AsignarRol(ctx, e.admin, 3, &rolGerente)
	require.NoError(t, err)
	require.NotNil(t, a.Rol)
	assert.Equal(t, "gerente", a.Rol.Nombre)

	a, err = uc.AsignarRol(ctx, e.admin, 3, nil)
	require.NoError(t, err)
	assert.Nil(t, a.RolID)

	cero := int64(0)
	_, err = uc.AsignarRol(ctx, e.admin, 3, &cero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	entradas := e.repo.Entradas()
	require.Len(t, entradas, 3)
	assert.Equal(t, "rol_id=null", entradas[1].Detalle)
}

func TestAdministrador_ActualizarSinCambios(t *testing.T) {
	e := nuevoEntorno(t)
	uc := usecase.NewAdministradorUseCase(e.backend, e.bit)

	_, err := uc.Actualizar(context.Background(), e.admin, 3, dto.ActualizarAdministradorRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRol_Estadisticas(t *testing.T) {
	e := nuevoEntorno(t)
	uc := usecase.NewRolUseCase(e.backend)

	_, err := uc.Estadisticas(context.Background(), e.asesor)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	st, err := uc.Estadisticas(context.Background(), e.admin)
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalAdministradores)
	assert.Equal(t, 1, st.DistribucionPorRol["gerente"])

	roles, err := uc.Listar(context.Background(), e.admin)
	require.NoError(t, err)
	assert.Len(t, roles, 3)
}
