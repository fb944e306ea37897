package analytics

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/dto"
)

// ExportarCSV genera el reporte detallado del dashboard. Devuelve el contenido y
// el nombre de archivo sugerido.
func (uc *DashboardUseCase) ExportarCSV(ctx context.Context, p *auth.Principal, f dto.FiltrosDashboard) ([]byte, string, error) {
	data, err := uc.Resumen(ctx, p, f)
	if err != nil {
		return nil, "", err
	}
	doc, err := EscribirCSV(data)
	if err != nil {
		return nil, "", fmt.Errorf("dashboard: exportar: %w", err)
	}
	nombre := fmt.Sprintf("dashboard_%d.csv", data.Filtros.Anio)
	if data.Filtros.Mes > 0 {
		nombre = fmt.Sprintf("dashboard_%d_%02d.csv", data.Filtros.Anio, data.Filtros.Mes)
	}
	return doc, nombre, nil
}

// DescribirFiltros texto legible de los filtros ("Año 2025, Mes 3").
func DescribirFiltros(f dto.FiltrosDashboard) string {
	s := "Año " + strconv.Itoa(f.Anio)
	if f.Mes > 0 {
		s += ", Mes " + strconv.Itoa(f.Mes)
	}
	return s
}

// EscribirCSV secciones: encabezado, KPIs, producto top, categoría top, ventas
// mensuales, productos más vendidos y categorías, separadas por una fila vacía.
func EscribirCSV(d *dto.DashboardData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	// separador entre secciones
	vacia := []string{""}

	filas := [][]string{
		{"Reporte Dashboard - " + d.Metadata.UltimaActualizacion.Format("2006-01-02")},
		{"Filtros: " + DescribirFiltros(d.Filtros)},
		vacia,
		{"KPIs"},
		{"Indicador", "Valor"},
		{"Ventas Totales", d.KPIs.Ventas.TotalVentas.String()},
		{"Ganancia Total", d.KPIs.Ventas.GananciaTotal.String()},
		{"Porcentaje de Ganancia", strconv.Itoa(d.KPIs.Ventas.PorcentajeGanancia) + "%"},
		{"Comparativa Período Anterior", formatoPorcentaje(d.KPIs.Ventas.ComparativaAnterior)},
		vacia,
	}
	destacados := []struct {
		titulo string
		k      dto.DestacadoKPI
	}{
		{"Producto Top", d.KPIs.Productos.ProductoTop},
		{"Categoría Top", d.KPIs.Productos.CategoriaTop},
	}
	for _, x := range destacados {
		filas = append(filas,
			[]string{x.titulo},
			[]string{"ID", "Nombre", "Ventas", "Monto"},
			[]string{strconv.FormatInt(x.k.ID, 10), x.k.Nombre, strconv.Itoa(x.k.Ventas), x.k.Monto.String()},
			vacia,
		)
	}

	filas = append(filas, []string{"Ventas Mensuales"}, []string{"Mes", "Ventas", "Ganancia"})
	for _, p := range d.Graficos.VentasMensuales {
		filas = append(filas, []string{p.Etiqueta, p.Ventas.String(), p.Ganancia.String()})
	}
	filas = append(filas, vacia)

	filas = append(filas, []string{"Productos Más Vendidos"}, []string{"ID", "Nombre", "Ventas", "Ganancia"})
	for _, p := range d.Graficos.ProductosMasVendidos {
		filas = append(filas, []string{strconv.FormatInt(p.ID, 10), p.Nombre, strconv.Itoa(p.Ventas), p.Ganancia.String()})
	}
	filas = append(filas, vacia)

	filas = append(filas, []string{"Categorías"}, []string{"ID", "Nombre", "Ventas", "Ganancia", "Porcentaje"})
	for _, c := range d.Graficos.Categorias {
		filas = append(filas, []string{strconv.FormatInt(c.ID, 10), c.Nombre, strconv.Itoa(c.Ventas), c.Ganancia.String(), formatoPorcentaje(c.Porcentaje)})
	}

	if err := w.WriteAll(filas); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatoPorcentaje(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
