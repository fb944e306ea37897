package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FiltrosDashboard año obligatorio y mes opcional (1–12, 0 = todo el año).
type FiltrosDashboard struct {
	Anio int `query:"anio"`
	Mes  int `query:"mes"`
}

// ── Respuestas crudas del backend (/api/dashboard/*) ──────────────────────────

// APIProductoTop producto top según /general.
type APIProductoTop struct {
	ID               int64           `json:"id"`
	Nombre           string          `json:"nombre"`
	ImagenURL        string          `json:"imagen_url"`
	TotalVentas      decimal.Decimal `json:"totalVentas"`
	UnidadesVendidas int             `json:"unidadesVendidas"`
}

// APICategoriaTop categoría top según /general.
type APICategoriaTop struct {
	ID          int64           `json:"id"`
	Nombre      string          `json:"nombre"`
	TotalVentas decimal.Decimal `json:"totalVentas"`
}

// APIMetricasGenerales bloque "metricas" de /general.
type APIMetricasGenerales struct {
	VentasTotales decimal.Decimal  `json:"ventasTotales"`
	TotalOrdenes  int              `json:"totalOrdenes"`
	PromedioOrden decimal.Decimal  `json:"promedioOrden"`
	ProductoTop   *APIProductoTop  `json:"productoTop"`
	CategoriaTop  *APICategoriaTop `json:"categoriaTop"`
}

// APIDashboardGeneral data de GET /api/dashboard/general.
type APIDashboardGeneral struct {
	Metricas *APIMetricasGenerales `json:"metricas"`
}

// APIPuntoEvolucion punto de /ventas-periodo (mensual o diario).
type APIPuntoEvolucion struct {
	Mes          int             `json:"mes,omitempty"`
	MesNombre    string          `json:"mesNombre,omitempty"`
	MesAbreviado string          `json:"mesAbreviado,omitempty"`
	Dia          int             `json:"dia,omitempty"`
	Fecha        string          `json:"fecha,omitempty"`
	Ventas       decimal.Decimal `json:"ventas"`
	Ordenes      int             `json:"ordenes"`
}

// APIVentasPeriodo data de GET /api/dashboard/ventas-periodo.
type APIVentasPeriodo struct {
	Evolucion []APIPuntoEvolucion `json:"evolucion"`
}

// APIProductoVendido elemento de /top-productos.
type APIProductoVendido struct {
	ID                 int64           `json:"id"`
	Nombre             string          `json:"nombre"`
	TotalVentas        decimal.Decimal `json:"totalVentas"`
	UnidadesVendidas   int             `json:"unidadesVendidas"`
	PorcentajeDelTotal float64         `json:"porcentajeDelTotal"`
	Posicion           int             `json:"posicion"`
}

// APITopProductos data de GET /api/dashboard/top-productos.
type APITopProductos struct {
	Productos []APIProductoVendido `json:"productos"`
}

// APICategoriaAnalisis elemento de /analisis-categorias.
type APICategoriaAnalisis struct {
	ID              int64           `json:"id"`
	Nombre          string          `json:"nombre"`
	TotalVentas     decimal.Decimal `json:"totalVentas"`
	ProductosUnicos int             `json:"productosUnicos"`
	Porcentaje      float64         `json:"porcentaje"`
}

// APIAnalisisCategorias data de GET /api/dashboard/analisis-categorias.
type APIAnalisisCategorias struct {
	Categorias []APICategoriaAnalisis `json:"categorias"`
}

// APIComparativaAnual data de GET /api/dashboard/comparativa-anual.
type APIComparativaAnual struct {
	Resumen struct {
		VentasYear1 decimal.Decimal `json:"ventasYear1"`
		VentasYear2 decimal.Decimal `json:"ventasYear2"`
		Crecimiento float64         `json:"crecimiento"`
		Diferencia  decimal.Decimal `json:"diferencia"`
	} `json:"resumen"`
	EvolucionYear1 []APIPuntoEvolucion `json:"evolucionYear1"`
	EvolucionYear2 []APIPuntoEvolucion `json:"evolucionYear2"`
}

// ── Estructuras listas para graficar ──────────────────────────────────────────

// VentasKPI indicadores de ventas. La ganancia es una estimación (60 %).
type VentasKPI struct {
	TotalVentas         decimal.Decimal `json:"totalVentas"`
	GananciaTotal       decimal.Decimal `json:"gananciaTotal"`
	PorcentajeGanancia  int             `json:"porcentajeGanancia"`
	ComparativaAnterior float64         `json:"comparativaAnterior"`
}

// DestacadoKPI producto o categoría destacada.
type DestacadoKPI struct {
	ID     int64           `json:"id"`
	Nombre string          `json:"nombre"`
	Ventas int             `json:"ventas"`
	Monto  decimal.Decimal `json:"monto"`
}

// ProductosKPI producto y categoría top.
type ProductosKPI struct {
	ProductoTop  DestacadoKPI `json:"productoTop"`
	CategoriaTop DestacadoKPI `json:"categoriaTop"`
}

// KPIs bloque de indicadores.
type KPIs struct {
	Ventas    VentasKPI    `json:"ventas"`
	Productos ProductosKPI `json:"productos"`
}

// PuntoVentas punto de una serie mensual (Etiqueta = "ene") o diaria (Etiqueta = "2025-03-01").
type PuntoVentas struct {
	Etiqueta string          `json:"etiqueta"`
	Ventas   decimal.Decimal `json:"ventas"`
	Ganancia decimal.Decimal `json:"ganancia"`
}

// ProductoMasVendido barra del gráfico de productos.
type ProductoMasVendido struct {
	ID       int64           `json:"id"`
	Nombre   string          `json:"nombre"`
	Ventas   int             `json:"ventas"`
	Ganancia decimal.Decimal `json:"ganancia"`
}

// VentasPorCategoria porción del gráfico de categorías.
type VentasPorCategoria struct {
	ID         int64           `json:"id"`
	Nombre     string          `json:"nombre"`
	Ventas     int             `json:"ventas"`
	Ganancia   decimal.Decimal `json:"ganancia"`
	Porcentaje float64         `json:"porcentaje"`
}

// Graficos series del dashboard.
type Graficos struct {
	VentasMensuales      []PuntoVentas        `json:"ventasMensuales"`
	VentasDiarias        []PuntoVentas        `json:"ventasDiarias"`
	ProductosMasVendidos []ProductoMasVendido `json:"productosMasVendidos"`
	Categorias           []VentasPorCategoria `json:"categorias"`
}

// Comparativa series del año base y del año de comparación.
type Comparativa struct {
	AnioBase        int           `json:"anioBase"`
	AnioComparacion int           `json:"anioComparacion"`
	Crecimiento     float64       `json:"crecimiento"`
	Actual          []PuntoVentas `json:"actual"`
	Anterior        []PuntoVentas `json:"anterior"`
}

// Alerta notificación calculada a partir de los datos y las preferencias.
type Alerta struct {
	ID        string `json:"id"`
	Tipo      string `json:"tipo"` // stockBajo | tendenciaNegativa
	Mensaje   string `json:"mensaje"`
	Detalle   string `json:"detalle"`
	Severidad string `json:"severidad"` // alta | media
}

// MetadataDashboard años disponibles y marca de tiempo.
type MetadataDashboard struct {
	AniosDisponibles    []int     `json:"aniosDisponibles"`
	UltimaActualizacion time.Time `json:"ultimaActualizacion"`
}

// DashboardData respuesta completa del dashboard.
type DashboardData struct {
	Filtros        FiltrosDashboard  `json:"filtros"`
	KPIs           KPIs              `json:"kpis"`
	Graficos       Graficos          `json:"graficos"`
	Comparativa    *Comparativa      `json:"comparativa,omitempty"`
	Alertas        []Alerta          `json:"alertas"`
	WidgetsOcultos []string          `json:"widgetsOcultos,omitempty"`
	Metadata       MetadataDashboard `json:"metadata"`
}
