package bitacora_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/bitacora"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/domain/permisos"
	"github.com/jhoicas/consola-admin/internal/domain/repository"
	"github.com/jhoicas/consola-admin/internal/testutil/memrepo"
)

func principal(id int64, rol string) *auth.Principal {
	admin := &entity.Administrador{ID: id, Usuario: "u"}
	if rol != "" {
		rolID := int64(1)
		admin.RolID = &rolID
		admin.Rol = &entity.Rol{ID: 1, Nombre: rol}
	}
	return auth.NuevoPrincipal(admin, entity.Credenciales{Usuario: "u", Password: "p"})
}

func TestResultado_Clasificacion(t *testing.T) {
	assert.Equal(t, entity.ResultadoExito, bitacora.Resultado(nil))
	assert.Equal(t, entity.ResultadoError, bitacora.Resultado(&domain.BackendError{Clase: domain.ErrConexion}))
	assert.Equal(t, entity.ResultadoError, bitacora.Resultado(&domain.BackendError{Clase: domain.ErrBackend, Status: 503}))
	assert.Equal(t, entity.ResultadoRechazado, bitacora.Resultado(&domain.BackendError{Clase: domain.ErrSesionInvalida, Status: 403}))
	assert.Equal(t, entity.ResultadoRechazado, bitacora.Resultado(domain.ErrForbidden))
}

func TestRegistrar_FalloDelRepositorioNoSePropaga(t *testing.T) {
	repo := &memrepo.Bitacora{Err: errors.New("db caída")}
	uc := bitacora.NewBitacoraUseCase(repo, zerolog.Nop())

	assert.NotPanics(t, func() {
		uc.Registrar(context.Background(), principal(1, "gerente"), permisos.OrdenesCambiarEstado, "orden", "5", "", nil)
	})
}

func TestRegistrar_SinRepositorio(t *testing.T) {
	uc := bitacora.NewBitacoraUseCase(nil, zerolog.Nop())
	assert.NotPanics(t, func() {
		uc.Registrar(context.Background(), nil, permisos.ProductosCrear, "producto", "", "", nil)
	})
}

func TestRegistrar_DetalleTomaMensajeDelError(t *testing.T) {
	repo := &memrepo.Bitacora{}
	uc := bitacora.NewBitacoraUseCase(repo, zerolog.Nop())

	uc.Registrar(context.Background(), principal(9, "gerente"), permisos.OrdenesCambiarEstado, "orden", "5", "",
		domain.TransicionInvalida("pendiente", "enviado", 400))

	entradas := repo.Entradas()
	require.Len(t, entradas, 1)
	e := entradas[0]
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, int64(9), e.AdminID)
	assert.Equal(t, "ordenes.cambiar_estado", e.Accion)
	assert.Equal(t, entity.ResultadoRechazado, e.Resultado)
	assert.Contains(t, e.Detalle, "Transición inválida")
}

func TestListar_RequierePermiso(t *testing.T) {
	repo := &memrepo.Bitacora{}
	uc := bitacora.NewBitacoraUseCase(repo, zerolog.Nop())

	_, err := uc.Listar(context.Background(), principal(1, "asesor de ventas"), repository.FiltroBitacora{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListar_FiltraYPagina(t *testing.T) {
	repo := &memrepo.Bitacora{}
	uc := bitacora.NewBitacoraUseCase(repo, zerolog.Nop())
	for i := 0; i < 3; i++ {
		uc.Registrar(context.Background(), principal(1, "gerente"), permisos.ProductosCrear, "producto", "", "", nil)
	}
	uc.Registrar(context.Background(), principal(2, "gerente"), permisos.CategoriasCrear, "categoria", "", "", nil)

	out, err := uc.Listar(context.Background(), principal(7, "gerente"), repository.FiltroBitacora{Accion: "productos.crear", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 3, out.Page.Total)
	assert.Equal(t, 2, out.Page.Limit)

	out, err = uc.Listar(context.Background(), principal(7, "administrador"), repository.FiltroBitacora{AdminID: 2})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "categorias.crear", out.Items[0].Accion)
	assert.Equal(t, 20, out.Page.Limit)
}
