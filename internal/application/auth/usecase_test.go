package auth_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/domain/permisos"
	"github.com/jhoicas/consola-admin/internal/testutil/fakebackend"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type almacenMemoria struct {
	cred    *entity.Credenciales
	borrado int
}

func (a *almacenMemoria) Cargar() (entity.Credenciales, bool, error) {
	if a.cred == nil {
		return entity.Credenciales{}, false, nil
	}
	return *a.cred, true, nil
}

func (a *almacenMemoria) Guardar(c entity.Credenciales) error {
	a.cred = &c
	return nil
}

func (a *almacenMemoria) Borrar() error {
	a.cred = nil
	a.borrado++
	return nil
}

func nuevoEntorno() (*fakebackend.Backend, *auth.AuthUseCase) {
	b := fakebackend.New()
	b.AgregarAdmin(1, "admin", "admin123", "administrador")
	b.AgregarAdmin(2, "gerente1", "clave123", "Gerente")
	b.AgregarAdmin(3, "nuevo", "clave123", "")
	return b, auth.NewAuthUseCase(b, zerolog.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CargaPerfilConRol(t *testing.T) {
	b, uc := nuevoEntorno()

	p, err := uc.Login(context.Background(), dto.LoginRequest{Usuario: " gerente1 ", Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.Admin.ID)
	assert.True(t, p.Evaluador.EsGerente())
	assert.True(t, p.Puede(permisos.OrdenesCambiarEstado))
	assert.Equal(t, []string{"VerificarCredenciales", "ObtenerPerfil"}, b.Llamadas())
}

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	b, uc := nuevoEntorno()

	_, err := uc.Login(context.Background(), dto.LoginRequest{Usuario: "gerente1", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas)
	assert.Equal(t, 0, b.Conteo("ObtenerPerfil"))
}

func TestLogin_CamposVacios(t *testing.T) {
	b, uc := nuevoEntorno()

	_, err := uc.Login(context.Background(), dto.LoginRequest{Usuario: "gerente1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, b.Llamadas())
}

func TestCambiarPassword_Validaciones(t *testing.T) {
	_, uc := nuevoEntorno()
	p := auth.NuevoPrincipal(&entity.Administrador{ID: 2, Usuario: "gerente1"}, entity.Credenciales{Usuario: "gerente1", Password: "clave123"})

	err := uc.CambiarPassword(context.Background(), p, dto.CambiarPasswordRequest{PasswordActual: "clave123", PasswordNuevo: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.CambiarPassword(context.Background(), p, dto.CambiarPasswordRequest{PasswordActual: "clave123", PasswordNuevo: "clave123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.CambiarPassword(context.Background(), p, dto.CambiarPasswordRequest{PasswordActual: "otra", PasswordNuevo: "nueva123"})
	assert.ErrorIs(t, err, domain.ErrBackend)
	assert.Equal(t, "Contraseña actual incorrecta", err.Error())

	require.NoError(t, uc.CambiarPassword(context.Background(), p, dto.CambiarPasswordRequest{PasswordActual: "clave123", PasswordNuevo: "nueva123"}))
}

func TestRespuestaSesion_SinRolTieneMensajePropio(t *testing.T) {
	_, uc := nuevoEntorno()

	p, err := uc.Perfil(context.Background(), entity.Credenciales{Usuario: "nuevo", Password: "clave123"})
	require.NoError(t, err)

	r := auth.RespuestaSesion(p)
	assert.Equal(t, string(permisos.SinRol), r.EstadoRol)
	assert.NotEmpty(t, r.MensajeRol)
	assert.Empty(t, r.Capacidades)
	assert.False(t, r.EsAdministrador)
}

func TestRespuestaSesion_AdministradorExpandeComodin(t *testing.T) {
	_, uc := nuevoEntorno()

	p, err := uc.Perfil(context.Background(), entity.Credenciales{Usuario: "admin", Password: "admin123"})
	require.NoError(t, err)

	r := auth.RespuestaSesion(p)
	assert.True(t, r.EsAdministrador)
	assert.Len(t, r.Capacidades, len(permisos.Todas()))
	assert.Contains(t, r.Capacidades, "bitacora.leer")
	assert.Empty(t, r.MensajeRol)
}

func TestPrincipal_ExigirNil(t *testing.T) {
	var p *auth.Principal
	assert.False(t, p.Puede(permisos.ProductosLeer))
	assert.ErrorIs(t, p.Exigir(permisos.ProductosLeer), domain.ErrSinCredenciales)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesion (consola de terminal)
// ──────────────────────────────────────────────────────────────────────────────

func TestSesion_IniciarGuardaYCerrarBorra(t *testing.T) {
	_, uc := nuevoEntorno()
	almacen := &almacenMemoria{}
	s := auth.NuevaSesion(uc, almacen, zerolog.Nop())

	assert.False(t, s.Actual().Autenticado())

	c, err := s.Iniciar(context.Background(), entity.Credenciales{Usuario: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.True(t, c.Autenticado())
	assert.False(t, c.Cargando)
	assert.True(t, c.Evaluador.EsAdministrador())
	require.NotNil(t, almacen.cred)
	assert.Equal(t, "admin", almacen.cred.Usuario)

	require.NoError(t, s.Cerrar())
	assert.False(t, s.Actual().Autenticado())
	assert.Nil(t, almacen.cred)
}

func TestSesion_IniciarFallidoNoGuarda(t *testing.T) {
	_, uc := nuevoEntorno()
	almacen := &almacenMemoria{}
	s := auth.NuevaSesion(uc, almacen, zerolog.Nop())

	_, err := s.Iniciar(context.Background(), entity.Credenciales{Usuario: "admin", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas)
	assert.Nil(t, almacen.cred)
	assert.False(t, s.Actual().Autenticado())
}

func TestSesion_RestaurarConCredencialesGuardadas(t *testing.T) {
	_, uc := nuevoEntorno()
	almacen := &almacenMemoria{cred: &entity.Credenciales{Usuario: "gerente1", Password: "clave123"}}
	s := auth.NuevaSesion(uc, almacen, zerolog.Nop())

	require.NoError(t, s.Restaurar(context.Background()))
	c := s.Actual()
	assert.True(t, c.Autenticado())
	require.NotNil(t, c.Admin)
	assert.Equal(t, "gerente1", c.Admin.Usuario)
}

func TestSesion_RestaurarRechazadaBorraCredenciales(t *testing.T) {
	_, uc := nuevoEntorno()
	almacen := &almacenMemoria{cred: &entity.Credenciales{Usuario: "gerente1", Password: "vieja"}}
	s := auth.NuevaSesion(uc, almacen, zerolog.Nop())

	err := s.Restaurar(context.Background())
	assert.ErrorIs(t, err, domain.ErrSesionInvalida)
	assert.Nil(t, almacen.cred)
	assert.False(t, s.Actual().Autenticado())
}

func TestSesion_RestaurarSinConexionConservaCredenciales(t *testing.T) {
	b, uc := nuevoEntorno()
	b.FijarError("ObtenerPerfil", fakebackend.Error(0, ""))
	almacen := &almacenMemoria{cred: &entity.Credenciales{Usuario: "gerente1", Password: "clave123"}}
	s := auth.NuevaSesion(uc, almacen, zerolog.Nop())

	err := s.Restaurar(context.Background())
	assert.ErrorIs(t, err, domain.ErrConexion)
	assert.NotNil(t, almacen.cred)
	assert.False(t, s.Actual().Autenticado())
}

func TestSesion_InvalidarLimpiaTodo(t *testing.T) {
	_, uc := nuevoEntorno()
	almacen := &almacenMemoria{}
	s := auth.NuevaSesion(uc, almacen, zerolog.Nop())
	_, err := s.Iniciar(context.Background(), entity.Credenciales{Usuario: "admin", Password: "admin123"})
	require.NoError(t, err)

	antes := s.Actual()
	s.Invalidar()

	assert.False(t, s.Actual().Autenticado())
	assert.Nil(t, almacen.cred)
	assert.True(t, antes.Autenticado(), "las instantáneas previas no cambian")
}
