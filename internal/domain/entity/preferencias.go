package entity

import "time"

// Widgets del dashboard, en el orden por defecto.
var WidgetsDashboard = []string{
	"kpis",
	"evolucionMensual",
	"productosMasVendidos",
	"evolucionDiaria",
	"distribucionVentas",
	"categoriaDistribucion",
	"distribucionCategorias",
	"mapaCalorCategorias",
}

// ComparacionPeriodos configuración de la comparativa anual.
type ComparacionPeriodos struct {
	Habilitado      bool `json:"habilitado"`
	AnioBase        int  `json:"periodoBase"`
	AnioComparacion int  `json:"periodoComparacion"`
}

// ConfiguracionAlertas umbrales de alertas del dashboard.
type ConfiguracionAlertas struct {
	StockBajo               bool    `json:"stockBajo"`
	UmbralStockBajo         int     `json:"umbralStockBajo"`
	TendenciasNegativas     bool    `json:"tendenciasNegativas"`
	UmbralTendenciaNegativa float64 `json:"umbralTendenciaNegativa"` // porcentaje, normalmente negativo
}

// PreferenciasDashboard preferencias persistidas por administrador.
type PreferenciasDashboard struct {
	AdminID         int64                `json:"admin_id"`
	WidgetsVisibles map[string]bool      `json:"widgetVisibility"`
	OrdenWidgets    []string             `json:"ordenWidgets"`
	ModoOscuro      bool                 `json:"darkMode"`
	Comparacion     ComparacionPeriodos  `json:"periodosComparacion"`
	Alertas         ConfiguracionAlertas `json:"alertas"`
	ActualizadoEn   time.Time            `json:"actualizado_en"`
}

// PreferenciasPorDefecto configuración inicial cuando el administrador no ha guardado nada.
func PreferenciasPorDefecto(adminID int64, ahora time.Time) *PreferenciasDashboard {
	visibles := make(map[string]bool, len(WidgetsDashboard))
	for _, w := range WidgetsDashboard {
		visibles[w] = true
	}
	orden := make([]string, len(WidgetsDashboard))
	copy(orden, WidgetsDashboard)
	return &PreferenciasDashboard{
		AdminID:         adminID,
		WidgetsVisibles: visibles,
		OrdenWidgets:    orden,
		ModoOscuro:      true,
		Comparacion: ComparacionPeriodos{
			Habilitado:      false,
			AnioBase:        ahora.Year(),
			AnioComparacion: ahora.Year() - 1,
		},
		Alertas: ConfiguracionAlertas{
			StockBajo:               true,
			UmbralStockBajo:         10,
			TendenciasNegativas:     true,
			UmbralTendenciaNegativa: -10,
		},
		ActualizadoEn: ahora,
	}
}

// EsWidget informa si id es un widget conocido.
func EsWidget(id string) bool {
	for _, w := range WidgetsDashboard {
		if w == id {
			return true
		}
	}
	return false
}
