// Package analytics contiene los casos de uso del dashboard de ventas: combina los
// agregados del backend en estructuras listas para graficar.
package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/application/ports"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

const (
	dashboardTopProductos = 10 // productos en el widget de más vendidos
	maxAlertasStock       = 3
	porcentajeGanancia    = 60
	aniosHistoricos       = 4 // años previos al actual en el selector
	sinDatos              = "Sin datos"
	limiteEscaneoStock    = 100
)

// Widgets opcionales que se ocultan si su llamada falla.
const (
	WidgetComparativa  = "comparativaAnual"
	WidgetAlertasStock = "alertasStock"
)

var factorGanancia = decimal.NewFromFloat(0.6)

// FuentePreferencias entrega las preferencias del dashboard del principal.
type FuentePreferencias interface {
	Obtener(ctx context.Context, p *auth.Principal) (*entity.PreferenciasDashboard, error)
}

// DashboardUseCase genera el dashboard a partir de los endpoints /api/dashboard/*.
//
// Fuente de datos: el backend REST (agregados read-only) y el catálogo público
// de productos para la alerta de stock bajo.
type DashboardUseCase struct {
	backend   ports.DashboardBackend
	productos ports.ProductosBackend
	prefs     FuentePreferencias
	log       zerolog.Logger
	ahora     func() time.Time
}

// NewDashboardUseCase construye el caso de uso. prefs puede ser nil (valores por defecto).
func NewDashboardUseCase(backend ports.DashboardBackend, productos ports.ProductosBackend, prefs FuentePreferencias, log zerolog.Logger) *DashboardUseCase {
	return &DashboardUseCase{
		backend:   backend,
		productos: productos,
		prefs:     prefs,
		log:       log.With().Str("component", "dashboard").Logger(),
		ahora:     time.Now,
	}
}

// AniosDisponibles el año actual y los cuatro anteriores, en orden ascendente.
func AniosDisponibles(ahora time.Time) []int {
	out := make([]int, 0, aniosHistoricos+1)
	for a := ahora.Year() - aniosHistoricos; a <= ahora.Year(); a++ {
		out = append(out, a)
	}
	return out
}

func (uc *DashboardUseCase) normalizarFiltros(f dto.FiltrosDashboard) (dto.FiltrosDashboard, error) {
	actual := uc.ahora().Year()
	if f.Anio == 0 {
		f.Anio = actual
	}
	if f.Anio < 2000 || f.Anio > actual {
		return f, fmt.Errorf("%w: año %d fuera de rango", domain.ErrInvalidInput, f.Anio)
	}
	if f.Mes < 0 || f.Mes > 12 {
		return f, fmt.Errorf("%w: el mes debe estar entre 1 y 12", domain.ErrInvalidInput)
	}
	return f, nil
}

func (uc *DashboardUseCase) preferencias(ctx context.Context, p *auth.Principal) *entity.PreferenciasDashboard {
	if uc.prefs != nil {
		pref, err := uc.prefs.Obtener(ctx, p)
		if err == nil && pref != nil {
			return pref
		}
		if err != nil {
			uc.log.Warn().Err(err).Int64("admin_id", p.Admin.ID).Msg("preferencias no disponibles; se usan las de por defecto")
		}
	}
	return entity.PreferenciasPorDefecto(p.Admin.ID, uc.ahora())
}

// Resumen construye el DashboardData para los filtros indicados.
//
// Llamadas en paralelo (errgroup):
//  1. /general                      → KPIs
//  2. /ventas-periodo?tipo=mensual  → evolución mensual
//  3. /ventas-periodo?tipo=diario   → evolución diaria (solo con mes)
//  4. /top-productos (limit 10)     → productos más vendidos
//  5. /analisis-categorias          → categorías
//
// Cualquiera de ellas que falle hace fallar la página. La comparativa anual y el
// escaneo de stock son opcionales: si fallan se listan en WidgetsOcultos.
func (uc *DashboardUseCase) Resumen(ctx context.Context, p *auth.Principal, f dto.FiltrosDashboard) (*dto.DashboardData, error) {
	if p == nil {
		return nil, domain.ErrSinCredenciales
	}
	f, err := uc.normalizarFiltros(f)
	if err != nil {
		return nil, err
	}
	pref := uc.preferencias(ctx, p)
	cred := p.Credenciales

	var (
		general    *dto.APIDashboardGeneral
		mensual    *dto.APIVentasPeriodo
		diario     *dto.APIVentasPeriodo
		top        *dto.APITopProductos
		categorias *dto.APIAnalisisCategorias
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		general, err = uc.backend.General(gctx, cred, f.Anio, f.Mes)
		return envolver("general", err)
	})
	g.Go(func() (err error) {
		mensual, err = uc.backend.VentasPeriodo(gctx, cred, f.Anio, 0, "mensual")
		return envolver("evolución mensual", err)
	})
	if f.Mes > 0 {
		g.Go(func() (err error) {
			diario, err = uc.backend.VentasPeriodo(gctx, cred, f.Anio, f.Mes, "diario")
			return envolver("evolución diaria", err)
		})
	}
	g.Go(func() (err error) {
		top, err = uc.backend.TopProductos(gctx, cred, f.Anio, f.Mes, dashboardTopProductos)
		return envolver("top productos", err)
	})
	g.Go(func() (err error) {
		categorias, err = uc.backend.AnalisisCategorias(gctx, cred, f.Anio, f.Mes)
		return envolver("análisis de categorías", err)
	})

	// Opcionales: nunca devuelven error al grupo.
	var (
		mu          sync.Mutex
		ocultos     []string
		comparativa *dto.APIComparativaAnual
		bajoStock   []entity.Producto
	)
	ocultar := func(widget string, err error) {
		uc.log.Warn().Err(err).Str("widget", widget).Msg("widget opcional omitido")
		mu.Lock()
		ocultos = append(ocultos, widget)
		mu.Unlock()
	}
	var opcionales sync.WaitGroup
	if pref.Comparacion.Habilitado {
		opcionales.Add(1)
		go func() {
			defer opcionales.Done()
			c, err := uc.backend.ComparativaAnual(ctx, cred, pref.Comparacion.AnioBase, pref.Comparacion.AnioComparacion)
			if err != nil {
				ocultar(WidgetComparativa, err)
				return
			}
			comparativa = c
		}()
	}
	if pref.Alertas.StockBajo && uc.productos != nil {
		opcionales.Add(1)
		go func() {
			defer opcionales.Done()
			prods, err := uc.productosBajoStock(ctx, pref.Alertas.UmbralStockBajo)
			if err != nil {
				ocultar(WidgetAlertasStock, err)
				return
			}
			bajoStock = prods
		}()
	}

	errReq := g.Wait()
	opcionales.Wait()
	if errReq != nil {
		return nil, errReq
	}
	if general == nil || general.Metricas == nil {
		return nil, fmt.Errorf("dashboard: general: %w", &domain.BackendError{Clase: domain.ErrBackend, Mensaje: "Datos de API incompletos o inválidos"})
	}

	data := &dto.DashboardData{
		Filtros: f,
		KPIs:    mapearKPIs(general),
		Graficos: dto.Graficos{
			VentasMensuales:      mapearMensual(serie(mensual)),
			VentasDiarias:        mapearDiario(serie(diario)),
			ProductosMasVendidos: mapearTop(top),
			Categorias:           mapearCategorias(categorias),
		},
		Alertas: []dto.Alerta{},
		Metadata: dto.MetadataDashboard{
			AniosDisponibles:    AniosDisponibles(uc.ahora()),
			UltimaActualizacion: uc.ahora().UTC(),
		},
	}
	if comparativa != nil {
		data.Comparativa = &dto.Comparativa{
			AnioBase:        pref.Comparacion.AnioBase,
			AnioComparacion: pref.Comparacion.AnioComparacion,
			Crecimiento:     comparativa.Resumen.Crecimiento,
			Actual:          mapearMensual(comparativa.EvolucionYear1),
			Anterior:        mapearMensual(comparativa.EvolucionYear2),
		}
		data.KPIs.Ventas.ComparativaAnterior = comparativa.Resumen.Crecimiento
	}
	if pref.Alertas.StockBajo {
		data.Alertas = append(data.Alertas, AlertasStock(bajoStock, pref.Alertas.UmbralStockBajo)...)
	}
	if pref.Alertas.TendenciasNegativas {
		if a := AlertaTendencia(data.Graficos.VentasMensuales, pref.Alertas.UmbralTendenciaNegativa); a != nil {
			data.Alertas = append(data.Alertas, *a)
		}
	}
	sort.Strings(ocultos)
	data.WidgetsOcultos = ocultos
	return data, nil
}

func envolver(que string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dashboard: %s: %w", que, err)
}

func serie(v *dto.APIVentasPeriodo) []dto.APIPuntoEvolucion {
	if v == nil {
		return nil
	}
	return v.Evolucion
}

// productosBajoStock recorre el catálogo público y devuelve los productos con stock
// por debajo del umbral, de menor a mayor stock.
func (uc *DashboardUseCase) productosBajoStock(ctx context.Context, umbral int) ([]entity.Producto, error) {
	lista, err := uc.productos.ListarProductos(ctx, dto.ProductoFiltros{Page: 1, Limit: limiteEscaneoStock})
	if err != nil {
		return nil, err
	}
	var out []entity.Producto
	for _, p := range lista.Productos {
		if p.Stock < umbral {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	return out, nil
}

// ── Mapeo a estructuras de gráfico ────────────────────────────────────────────

// Ganancia estimación fija: 60 % de las ventas, redondeado a entero.
func Ganancia(ventas decimal.Decimal) decimal.Decimal {
	return ventas.Mul(factorGanancia).Round(0)
}

func mapearKPIs(g *dto.APIDashboardGeneral) dto.KPIs {
	m := g.Metricas
	k := dto.KPIs{
		Ventas: dto.VentasKPI{
			TotalVentas:        m.VentasTotales,
			GananciaTotal:      Ganancia(m.VentasTotales),
			PorcentajeGanancia: porcentajeGanancia,
		},
		Productos: dto.ProductosKPI{
			ProductoTop:  dto.DestacadoKPI{Nombre: sinDatos, Monto: decimal.Zero},
			CategoriaTop: dto.DestacadoKPI{Nombre: sinDatos, Monto: decimal.Zero},
		},
	}
	if pt := m.ProductoTop; pt != nil && pt.Nombre != "" {
		k.Productos.ProductoTop = dto.DestacadoKPI{ID: pt.ID, Nombre: pt.Nombre, Ventas: pt.UnidadesVendidas, Monto: pt.TotalVentas}
	}
	if ct := m.CategoriaTop; ct != nil && ct.Nombre != "" {
		k.Productos.CategoriaTop = dto.DestacadoKPI{ID: ct.ID, Nombre: ct.Nombre, Monto: ct.TotalVentas}
	}
	return k
}

func mapearMensual(in []dto.APIPuntoEvolucion) []dto.PuntoVentas {
	out := make([]dto.PuntoVentas, 0, len(in))
	for _, p := range in {
		out = append(out, dto.PuntoVentas{Etiqueta: p.MesAbreviado, Ventas: p.Ventas, Ganancia: Ganancia(p.Ventas)})
	}
	return out
}

func mapearDiario(in []dto.APIPuntoEvolucion) []dto.PuntoVentas {
	out := make([]dto.PuntoVentas, 0, len(in))
	for _, p := range in {
		out = append(out, dto.PuntoVentas{Etiqueta: p.Fecha, Ventas: p.Ventas, Ganancia: Ganancia(p.Ventas)})
	}
	return out
}

// mapearTop: ventas = unidades vendidas, ganancia = monto total vendido.
func mapearTop(t *dto.APITopProductos) []dto.ProductoMasVendido {
	out := []dto.ProductoMasVendido{}
	if t == nil {
		return out
	}
	for _, p := range t.Productos {
		out = append(out, dto.ProductoMasVendido{ID: p.ID, Nombre: p.Nombre, Ventas: p.UnidadesVendidas, Ganancia: p.TotalVentas})
	}
	return out
}

// mapearCategorias: ventas = productos únicos vendidos, ganancia = monto total.
func mapearCategorias(c *dto.APIAnalisisCategorias) []dto.VentasPorCategoria {
	out := []dto.VentasPorCategoria{}
	if c == nil {
		return out
	}
	for _, cat := range c.Categorias {
		out = append(out, dto.VentasPorCategoria{
			ID:         cat.ID,
			Nombre:     cat.Nombre,
			Ventas:     cat.ProductosUnicos,
			Ganancia:   cat.TotalVentas,
			Porcentaje: cat.Porcentaje,
		})
	}
	return out
}

// ── Alertas ───────────────────────────────────────────────────────────────────

// AlertasStock una alerta por producto bajo el umbral, como máximo tres.
func AlertasStock(productos []entity.Producto, umbral int) []dto.Alerta {
	out := []dto.Alerta{}
	for _, p := range productos {
		if len(out) == maxAlertasStock {
			break
		}
		if p.Stock >= umbral {
			continue
		}
		out = append(out, dto.Alerta{
			ID:        fmt.Sprintf("stock-%d", p.ID),
			Tipo:      "stockBajo",
			Mensaje:   "Stock bajo para " + p.Nombre,
			Detalle:   fmt.Sprintf("El stock actual (%d) está por debajo del umbral de %d unidades.", p.Stock, umbral),
			Severidad: "alta",
		})
	}
	return out
}

// AlertaTendencia compara los dos últimos meses; requiere más de dos meses de datos.
// umbral es un porcentaje (se toma su valor absoluto).
func AlertaTendencia(mensual []dto.PuntoVentas, umbral float64) *dto.Alerta {
	if len(mensual) <= 2 {
		return nil
	}
	ultimo := mensual[len(mensual)-1]
	penultimo := mensual[len(mensual)-2]
	if !penultimo.Ventas.IsPositive() {
		return nil
	}
	variacion, _ := ultimo.Ventas.Sub(penultimo.Ventas).Div(penultimo.Ventas).Mul(decimal.NewFromInt(100)).Float64()
	if variacion >= -math.Abs(umbral) {
		return nil
	}
	return &dto.Alerta{
		ID:        "tendencia-mensual-" + ultimo.Etiqueta,
		Tipo:      "tendenciaNegativa",
		Mensaje:   "Caída en ventas mensuales",
		Detalle:   fmt.Sprintf("Las ventas han disminuido un %.2f%% respecto al mes anterior.", math.Abs(variacion)),
		Severidad: "media",
	}
}
