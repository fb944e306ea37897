package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/consola-admin/internal/application/analytics"
	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/bitacora"
	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/application/ordenes"
	"github.com/jhoicas/consola-admin/internal/application/preferencias"
	"github.com/jhoicas/consola-admin/internal/application/usecase"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/domain/permisos"
	apphttp "github.com/jhoicas/consola-admin/internal/interfaces/http"
	"github.com/jhoicas/consola-admin/internal/testutil/fakebackend"
	"github.com/jhoicas/consola-admin/internal/testutil/memrepo"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type pdfFalso struct{}

func (pdfFalso) GenerarComprobante(_ context.Context, o *entity.Orden) ([]byte, error) {
	return []byte("%PDF-1.4 " + o.Cliente), nil
}

type entorno struct {
	app      *fiber.App
	backend  *fakebackend.Backend
	bitacora *memrepo.Bitacora
	admin    entity.Credenciales
	gerente  entity.Credenciales
	asesor   entity.Credenciales
	sinRol   entity.Credenciales
}

// nuevoEntorno arma el router completo sobre el backend en memoria.
func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	b := fakebackend.New()
	e := &entorno{backend: b, bitacora: &memrepo.Bitacora{}}
	e.admin = b.AgregarAdmin(1, "admin", "clave123", "administrador")
	e.gerente = b.AgregarAdmin(2, "gerente1", "clave123", "gerente")
	e.asesor = b.AgregarAdmin(3, "asesor1", "clave123", "asesor de ventas")
	e.sinRol = b.AgregarAdmin(4, "nuevo", "clave123", "")

	for _, o := range []entity.Orden{
		{ID: 10, Cliente: "Ana", Estado: entity.EstadoPendiente, Total: decimal.NewFromInt(1000)},
		{ID: 11, Cliente: "Luis", Estado: entity.EstadoPagado, Total: decimal.NewFromInt(2000)},
		{ID: 12, Cliente: "Eva", Estado: entity.EstadoEnviado, Total: decimal.NewFromInt(3000)},
		{ID: 13, Cliente: "Sol", Estado: entity.EstadoCompletado, Total: decimal.NewFromInt(4000)},
	} {
		b.AgregarOrden(o)
	}
	b.Categorias[1] = &entity.Categoria{ID: 1, Nombre: "Bebidas"}

	log := zerolog.Nop()
	bit := bitacora.NewBitacoraUseCase(e.bitacora, log)
	prefs := preferencias.NewPreferenciasUseCase(&memrepo.Preferencias{}, log)

	e.app = fiber.New()
	apphttp.Router(e.app, apphttp.RouterDeps{
		AuthUC:          auth.NewAuthUseCase(b, log),
		CategoriaUC:     usecase.NewCategoriaUseCase(b, bit),
		ProductoUC:      usecase.NewProductoUseCase(b, bit),
		UploadUC:        usecase.NewUploadUseCase(b, bit),
		AdministradorUC: usecase.NewAdministradorUseCase(b, bit),
		RolUC:           usecase.NewRolUseCase(b),
		OrdenesUC:       ordenes.NewOrdenesUseCase(b, bit, pdfFalso{}, log),
		DashboardUC:     appanalytics.NewDashboardUseCase(b, b, prefs, log),
		BitacoraUC:      bit,
		PreferenciasUC:  prefs,
	})
	return e
}

// hacer lanza la petición con las credenciales dadas (vacías = sin cabeceras).
func (e *entorno) hacer(t *testing.T, metodo, ruta string, cred entity.Credenciales, cuerpo string) *http.Response {
	t.Helper()
	var body io.Reader
	if cuerpo != "" {
		body = strings.NewReader(cuerpo)
	}
	req := httptest.NewRequest(metodo, ruta, body)
	if cuerpo != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred.Usuario != "" {
		req.Header.Set(apphttp.HeaderUsuario, cred.Usuario)
		req.Header.Set(apphttp.HeaderPassword, cred.Password)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func leerError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	defer resp.Body.Close()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinCabeceras_Retorna401(t *testing.T) {
	e := nuevoEntorno(t)
	resp := e.hacer(t, http.MethodGet, "/api/ordenes", entity.Credenciales{}, "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apphttp.CodigoSinCredenciales, leerError(t, resp).Code)
	assert.Zero(t, e.backend.Conteo("ListarOrdenes"))
}

func TestAuthMiddleware_PasswordIncorrecto_SesionInvalida(t *testing.T) {
	e := nuevoEntorno(t)
	resp := e.hacer(t, http.MethodGet, "/api/ordenes", entity.Credenciales{Usuario: "admin", Password: "otra"}, "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apphttp.CodigoSesionInvalida, leerError(t, resp).Code)
}

func TestAuthMiddleware_CargaPrincipal(t *testing.T) {
	app := fiber.New()
	b := fakebackend.New()
	cred := b.AgregarAdmin(2, "gerente1", "clave123", "gerente")
	app.Get("/yo", apphttp.AuthMiddleware(auth.NewAuthUseCase(b, zerolog.Nop())), func(c *fiber.Ctx) error {
		p := apphttp.GetPrincipal(c)
		return c.JSON(fiber.Map{"id": p.Admin.ID, "rol": p.Evaluador.NombreRol()})
	})

	req := httptest.NewRequest(http.MethodGet, "/yo", nil)
	req.Header.Set(apphttp.HeaderUsuario, cred.Usuario)
	req.Header.Set(apphttp.HeaderPassword, cred.Password)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(2), body["id"])
	assert.Equal(t, "gerente", body["rol"])
}

func TestRequirePermiso_SinPrincipal_Retorna401(t *testing.T) {
	app := fiber.New()
	app.Get("/x", apphttp.RequirePermiso(permisos.OrdenesLeer), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_DevuelveCapacidades(t *testing.T) {
	e := nuevoEntorno(t)
	resp := e.hacer(t, http.MethodPost, "/api/auth/login", entity.Credenciales{}, `{"usuario":"asesor1","password":"clave123"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var s dto.SesionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
	assert.Equal(t, "asesor de ventas", s.Rol)
	assert.False(t, s.EsAdministrador)
	assert.ElementsMatch(t, []string{"productos.leer", "categorias.leer", "ordenes.leer", "ordenes.crear"}, s.Capacidades)
}

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	e := nuevoEntorno(t)
	resp := e.hacer(t, http.MethodPost, "/api/auth/login", entity.Credenciales{}, `{"usuario":"admin","password":"mala"}`)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apphttp.CodigoCredencialesInvalidas, leerError(t, resp).Code)
}

func TestSesion_SinRol(t *testing.T) {
	e := nuevoEntorno(t)
	resp := e.hacer(t, http.MethodGet, "/api/auth/sesion", e.sinRol, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var s dto.SesionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
	assert.Empty(t, s.Capacidades)
	assert.NotEmpty(t, s.MensajeRol)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas por capacidad
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogo_LecturaPublica(t *testing.T) {
	e := nuevoEntorno(t)
	resp := e.hacer(t, http.MethodGet, "/api/categorias", entity.Credenciales{}, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.CategoriaListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Categorias, 1)
	assert.Equal(t, "Bebidas", out.Categorias[0].Nombre)
}

func TestCatalogo_CrearSinPermiso(t *testing.T) {
	e := nuevoEntorno(t)
	resp := e.hacer(t, http.MethodPost, "/api/categorias", e.asesor, `{"nombre":"Snacks"}`)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, apphttp.CodigoProhibido, leerError(t, resp).Code)
	assert.Zero(t, e.backend.Conteo("CrearCategoria"))
}

func TestCatalogo_GerenteCreaCategoria(t *testing.T) {
	e := nuevoEntorno(t)
	resp := e.hacer(t, http.MethodPost, "/api/categorias", e.gerente, `{"nombre":"Snacks"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, e.bitacora.Entradas(), 1)
	assert.Equal(t, "categorias.crear", e.bitacora.Entradas()[0].Accion)
}

func TestAdministradores_SoloAdministrador(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.hacer(t, http.MethodGet, "/api/administradores", e.gerente, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = e.hacer(t, http.MethodGet, "/api/roles/stats", e.admin, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestBitacora_RequierePermiso(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.hacer(t, http.MethodGet, "/api/bitacora", e.asesor, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = e.hacer(t, http.MethodGet, "/api/bitacora?limit=5", e.gerente, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.BitacoraListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 5, out.Page.Limit)
}

func TestPreferencias_GuardarYLeer(t *testing.T) {
	e := nuevoEntorno(t)
	anio := time.Now().Year()
	cuerpo := `{"darkMode":false,"widgetVisibility":{"kpis":false},"alertas":{"umbralStockBajo":5,"umbralTendenciaNegativa":20},"periodosComparacion":{"periodoBase":` +
		itoa(anio) + `}}`

	resp := e.hacer(t, http.MethodPut, "/api/preferencias/dashboard", e.asesor, cuerpo)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = e.hacer(t, http.MethodGet, "/api/preferencias/dashboard", e.asesor, "")
	defer resp.Body.Close()
	var p entity.PreferenciasDashboard
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.False(t, p.ModoOscuro)
	assert.False(t, p.WidgetsVisibles["kpis"])
	assert.Equal(t, -20.0, p.Alertas.UmbralTendenciaNegativa)
	assert.Equal(t, anio-1, p.Comparacion.AnioComparacion)
}

func TestPreferencias_WidgetDesconocido(t *testing.T) {
	e := nuevoEntorno(t)
	resp := e.hacer(t, http.MethodPut, "/api/preferencias/dashboard", e.asesor,
		`{"widgetVisibility":{"reloj":true},"alertas":{"umbralStockBajo":5,"umbralTendenciaNegativa":10}}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apphttp.CodigoValidacion, leerError(t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes
// ──────────────────────────────────────────────────────────────────────────────

func leerDetalle(t *testing.T, resp *http.Response) dto.OrdenDetalleResponse {
	t.Helper()
	defer resp.Body.Close()
	var out dto.OrdenDetalleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCambiarEstado_AsesorSinPermiso(t *testing.T) {
	e := nuevoEntorno(t)
	resp := e.hacer(t, http.MethodPut, "/api/ordenes/10/estado", e.asesor, `{"nuevoEstado":"pagado"}`)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, apphttp.CodigoProhibido, leerError(t, resp).Code)
	assert.Zero(t, e.backend.Conteo("CambiarEstado"))
}

func TestCambiarEstado_GerenteAvanzaOrden(t *testing.T) {
	e := nuevoEntorno(t)
	resp := e.hacer(t, http.MethodPut, "/api/ordenes/10/estado", e.gerente, `{"nuevoEstado":" Pagado "}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := leerDetalle(t, resp)
	assert.Equal(t, entity.EstadoPagado, out.Orden.Estado)
	assert.Equal(t, 1, e.backend.Conteo("CambiarEstado"))
}

func TestCambiarEstado_RetrocesoRechazadoLocalmente(t *testing.T) {
	e := nuevoEntorno(t)
	resp := e.hacer(t, http.MethodPut, "/api/ordenes/12/estado", e.admin, `{"nuevoEstado":"pendiente"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := leerError(t, resp)
	assert.Equal(t, apphttp.CodigoTransicionInvalida, body.Code)
	assert.Contains(t, body.Message, "Transición inválida")
	assert.Zero(t, e.backend.Conteo("CambiarEstado"))
}

func TestCambiarEstado_EstadoDesconocido(t *testing.T) {
	e := nuevoEntorno(t)
	resp := e.hacer(t, http.MethodPut, "/api/ordenes/10/estado", e.admin, `{"nuevoEstado":"perdido"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apphttp.CodigoValidacion, leerError(t, resp).Code)
}

func TestCambiarEstado_ErroresDelBackend(t *testing.T) {
	casos := []struct {
		nombre string
		err    error
		status int
		codigo string
	}{
		{"403 invalida la sesión", fakebackend.Error(http.StatusForbidden, "Acceso denegado"), http.StatusUnauthorized, apphttp.CodigoSesionInvalida},
		{"sin respuesta", fakebackend.Error(0, ""), http.StatusBadGateway, apphttp.CodigoBackendInaccesible},
		{"500", fakebackend.Error(http.StatusInternalServerError, "fallo"), http.StatusBadGateway, apphttp.CodigoBackend},
		{"409", fakebackend.Error(http.StatusConflict, "Stock insuficiente"), http.StatusConflict, apphttp.CodigoBackend},
		{
			"transición rechazada",
			&domain.BackendError{Clase: domain.ErrTransicionInvalida, Status: http.StatusBadRequest, Mensaje: "Transición inválida"},
			http.StatusBadRequest, apphttp.CodigoTransicionInvalida,
		},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			e := nuevoEntorno(t)
			e.backend.FijarError("CambiarEstado", tc.err)

			resp := e.hacer(t, http.MethodPut, "/api/ordenes/10/estado", e.gerente, `{"nuevoEstado":"pagado"}`)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.codigo, leerError(t, resp).Code)
		})
	}
}

func TestCancelar_SoloAdministrador(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.hacer(t, http.MethodDelete, "/api/ordenes/11", e.gerente, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
	assert.Zero(t, e.backend.Conteo("CancelarOrden"))

	resp = e.hacer(t, http.MethodDelete, "/api/ordenes/11", e.admin, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.EstadoCancelado, leerDetalle(t, resp).Orden.Estado)
}

func TestCancelar_OrdenTerminal(t *testing.T) {
	e := nuevoEntorno(t)
	resp := e.hacer(t, http.MethodDelete, "/api/ordenes/13", e.admin, "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apphttp.CodigoTransicionInvalida, leerError(t, resp).Code)
}

func TestOrden_IDInvalido(t *testing.T) {
	e := nuevoEntorno(t)
	resp := e.hacer(t, http.MethodGet, "/api/ordenes/abc", e.admin, "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apphttp.CodigoValidacion, leerError(t, resp).Code)
}

func TestComprobante_DevuelvePDF(t *testing.T) {
	e := nuevoEntorno(t)
	resp := e.hacer(t, http.MethodGet, "/api/ordenes/10/comprobante", e.asesor, "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestBitacora_RegistraCambioDeEstado(t *testing.T) {
	e := nuevoEntorno(t)
	resp := e.hacer(t, http.MethodPut, "/api/ordenes/10/estado", e.gerente, `{"nuevoEstado":"pagado"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = e.hacer(t, http.MethodGet, "/api/bitacora?accion=ordenes.cambiar_estado", e.admin, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.BitacoraListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Items, 1)
	assert.Equal(t, "gerente1", out.Items[0].AdminUsuario)
	assert.Equal(t, "10", out.Items[0].RecursoID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func sembrarDashboard(b *fakebackend.Backend) {
	b.DatosGeneral = &dto.APIDashboardGeneral{Metricas: &dto.APIMetricasGenerales{
		VentasTotales: decimal.NewFromInt(1500),
		TotalOrdenes:  3,
	}}
	b.DatosMensual = &dto.APIVentasPeriodo{Evolucion: []dto.APIPuntoEvolucion{{MesAbreviado: "ene", Ventas: decimal.NewFromInt(1500)}}}
	b.DatosTop = &dto.APITopProductos{}
	b.DatosAnalisis = &dto.APIAnalisisCategorias{}
}

func TestDashboard_Resumen(t *testing.T) {
	e := nuevoEntorno(t)
	sembrarDashboard(e.backend)

	resp := e.hacer(t, http.MethodGet, "/api/dashboard", e.asesor, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.DashboardData
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, time.Now().Year(), out.Filtros.Anio)
}

func TestDashboard_MesFueraDeRango(t *testing.T) {
	e := nuevoEntorno(t)
	sembrarDashboard(e.backend)

	resp := e.hacer(t, http.MethodGet, "/api/dashboard?mes=13", e.asesor, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestDashboard_ExportCSV(t *testing.T) {
	e := nuevoEntorno(t)
	sembrarDashboard(e.backend)

	resp := e.hacer(t, http.MethodGet, "/api/dashboard/export.csv", e.gerente, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".csv")
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
