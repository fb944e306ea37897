package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/infrastructure/credenciales"
	"github.com/jhoicas/consola-admin/internal/testutil/fakebackend"
)

type pdfFalso struct{}

func (pdfFalso) GenerarComprobante(_ context.Context, o *entity.Orden) ([]byte, error) {
	return []byte("%PDF-1.4 " + o.Cliente), nil
}

type entorno struct {
	backend *fakebackend.Backend
	almacen *credenciales.Almacen
	out     *bytes.Buffer
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	b := fakebackend.New()
	b.AgregarAdmin(1, "admin", "clave123", "administrador")
	b.AgregarAdmin(3, "asesor1", "clave123", "asesor de ventas")
	b.AgregarOrden(entity.Orden{ID: 10, Cliente: "Ana", Estado: entity.EstadoPendiente, Total: decimal.NewFromInt(25000)})
	b.AgregarOrden(entity.Orden{ID: 13, Cliente: "Sol", Estado: entity.EstadoCompletado, Total: decimal.NewFromInt(4000)})

	almacen, err := credenciales.NewAlmacen(t.TempDir())
	require.NoError(t, err)
	return &entorno{backend: b, almacen: almacen, out: &bytes.Buffer{}}
}

// app crea una App nueva (como una invocación nueva de la CLI) con la entrada dada.
func (e *entorno) app(entrada string) *App {
	e.out.Reset()
	return Ensamblar(e.backend, e.almacen, pdfFalso{}, zerolog.Nop(), strings.NewReader(entrada), e.out)
}

func (e *entorno) login(t *testing.T, usuario string) {
	t.Helper()
	require.NoError(t, (&LoginCmd{Usuario: usuario, Password: "clave123"}).Run(context.Background(), e.app("")))
}

func TestLogin_GuardaCredenciales(t *testing.T) {
	e := nuevoEntorno(t)
	e.login(t, "admin")

	assert.Contains(t, e.out.String(), "Sesión iniciada como admin")
	cred, ok, err := e.almacen.Cargar()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "admin", cred.Usuario)
}

func TestLogin_PasswordPorEntrada(t *testing.T) {
	e := nuevoEntorno(t)
	err := (&LoginCmd{Usuario: "admin"}).Run(context.Background(), e.app("clave123\n"))

	require.NoError(t, err)
	assert.Contains(t, e.out.String(), "Contraseña: ")
}

func TestLogin_CredencialesIncorrectasNoGuarda(t *testing.T) {
	e := nuevoEntorno(t)
	err := (&LoginCmd{Usuario: "admin", Password: "mala"}).Run(context.Background(), e.app(""))

	assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas)
	_, ok, _ := e.almacen.Cargar()
	assert.False(t, ok)
}

func TestPerfil_RestauraSesionGuardada(t *testing.T) {
	e := nuevoEntorno(t)
	e.login(t, "asesor1")

	require.NoError(t, (&PerfilCmd{}).Run(context.Background(), e.app("")))
	out := e.out.String()
	assert.Contains(t, out, "asesor de ventas")
	assert.Contains(t, out, "ordenes.leer")
}

func TestPerfil_SinSesion(t *testing.T) {
	e := nuevoEntorno(t)
	err := (&PerfilCmd{}).Run(context.Background(), e.app(""))

	assert.ErrorIs(t, err, domain.ErrSinCredenciales)
	assert.Contains(t, Amigable(err).Error(), "consola login")
}

func TestPerfil_CredencialesRechazadasSeBorran(t *testing.T) {
	e := nuevoEntorno(t)
	require.NoError(t, e.almacen.Guardar(entity.Credenciales{Usuario: "admin", Password: "vieja"}))

	err := (&PerfilCmd{}).Run(context.Background(), e.app(""))
	assert.ErrorIs(t, err, domain.ErrSesionInvalida)
	_, ok, _ := e.almacen.Cargar()
	assert.False(t, ok)
}

func TestLogout(t *testing.T) {
	e := nuevoEntorno(t)
	e.login(t, "admin")

	require.NoError(t, (&LogoutCmd{}).Run(e.app("")))
	_, ok, _ := e.almacen.Cargar()
	assert.False(t, ok)
}

func TestOrdenesListar(t *testing.T) {
	e := nuevoEntorno(t)
	e.login(t, "asesor1")

	cmd := &OrdenesListarCmd{Page: 1, Limit: 25, Estado: "todas", SortBy: "id", SortOrder: "asc"}
	require.NoError(t, cmd.Run(context.Background(), e.app("")))
	out := e.out.String()
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "$25.000")
	assert.Contains(t, out, "Página 1/")
}

func TestOrdenesVer_MuestraTransiciones(t *testing.T) {
	e := nuevoEntorno(t)
	e.login(t, "admin")

	require.NoError(t, (&OrdenesVerCmd{ID: 10}).Run(context.Background(), e.app("")))
	assert.Contains(t, e.out.String(), "Transiciones disponibles: pagado, cancelado")

	require.NoError(t, (&OrdenesVerCmd{ID: 13}).Run(context.Background(), e.app("")))
	assert.Contains(t, e.out.String(), "Estado final")
}

func TestOrdenesEstado_ConfirmacionRechazada(t *testing.T) {
	e := nuevoEntorno(t)
	e.login(t, "admin")
	e.backend.LimpiarLlamadas()

	require.NoError(t, (&OrdenesEstadoCmd{ID: 10, Estado: "pagado"}).Run(context.Background(), e.app("n\n")))
	assert.Contains(t, e.out.String(), "Sin cambios")
	assert.Zero(t, e.backend.Conteo("CambiarEstado"))
}

func TestOrdenesEstado_Confirmado(t *testing.T) {
	e := nuevoEntorno(t)
	e.login(t, "admin")

	require.NoError(t, (&OrdenesEstadoCmd{ID: 10, Estado: "Pagado"}).Run(context.Background(), e.app("s\n")))
	assert.Contains(t, e.out.String(), "Estado actualizado")
	assert.Equal(t, entity.EstadoPagado, e.backend.Ordenes[10].Estado)
}

func TestOrdenesEstado_AsesorSinPermiso(t *testing.T) {
	e := nuevoEntorno(t)
	e.login(t, "asesor1")

	err := (&OrdenesEstadoCmd{ID: 10, Estado: "pagado", Si: true}).Run(context.Background(), e.app(""))
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Zero(t, e.backend.Conteo("CambiarEstado"))
}

func TestOrdenesCancelar(t *testing.T) {
	e := nuevoEntorno(t)
	e.login(t, "admin")

	require.NoError(t, (&OrdenesCancelarCmd{ID: 10, Si: true}).Run(context.Background(), e.app("")))
	assert.Equal(t, entity.EstadoCancelado, e.backend.Ordenes[10].Estado)
}

func TestOrdenesComprobante_GuardaArchivo(t *testing.T) {
	e := nuevoEntorno(t)
	e.login(t, "asesor1")
	ruta := filepath.Join(t.TempDir(), "orden.pdf")

	require.NoError(t, (&OrdenesComprobanteCmd{ID: 10, Salida: ruta}).Run(context.Background(), e.app("")))
	datos, err := os.ReadFile(ruta)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(datos, []byte("%PDF")))
}

func TestDashboard_ImprimeKPIs(t *testing.T) {
	e := nuevoEntorno(t)
	e.backend.DatosGeneral = &dto.APIDashboardGeneral{Metricas: &dto.APIMetricasGenerales{
		VentasTotales: decimal.NewFromInt(100000),
		TotalOrdenes:  4,
	}}
	e.backend.DatosMensual = &dto.APIVentasPeriodo{}
	e.backend.DatosTop = &dto.APITopProductos{}
	e.backend.DatosAnalisis = &dto.APIAnalisisCategorias{}
	e.login(t, "admin")

	require.NoError(t, (&DashboardCmd{}).Run(context.Background(), e.app("")))
	out := e.out.String()
	assert.Contains(t, out, "$100.000")
	assert.Contains(t, out, "Sin datos")
}

func TestAmigable(t *testing.T) {
	assert.Nil(t, Amigable(nil))
	err := &domain.BackendError{Clase: domain.ErrBackend, Status: 409, Mensaje: "Stock insuficiente"}
	assert.Equal(t, "Stock insuficiente", Amigable(err).Error())
}
