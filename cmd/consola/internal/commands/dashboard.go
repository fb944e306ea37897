package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	appanalytics "github.com/jhoicas/consola-admin/internal/application/analytics"
	"github.com/jhoicas/consola-admin/internal/application/dto"
	infrapdf "github.com/jhoicas/consola-admin/internal/infrastructure/pdf"
)

// DashboardCmd imprime los KPIs del período o los exporta a CSV.
type DashboardCmd struct {
	Anio int    `help:"Año (por defecto el actual)"`
	Mes  int    `help:"Mes 1-12 (0 = año completo)"`
	CSV  string `name:"csv" help:"Exportar el reporte a este archivo" type:"path"`
}

func (d *DashboardCmd) Run(ctx context.Context, app *App) error {
	p, err := app.principal(ctx)
	if err != nil {
		return err
	}
	f := dto.FiltrosDashboard{Anio: d.Anio, Mes: d.Mes}

	if d.CSV != "" {
		doc, _, err := app.Dashboard.ExportarCSV(ctx, p, f)
		if err != nil {
			return err
		}
		if err := escribirArchivo(d.CSV, doc); err != nil {
			return fmt.Errorf("guardar reporte: %w", err)
		}
		app.printf("Reporte guardado en %s\n", d.CSV)
		return nil
	}

	data, err := app.Dashboard.Resumen(ctx, p, f)
	if err != nil {
		return err
	}
	imprimirDashboard(app, data)
	return nil
}

func imprimirDashboard(app *App, data *dto.DashboardData) {
	k := data.KPIs
	app.printf("Dashboard: %s\n\n", appanalytics.DescribirFiltros(data.Filtros))

	w := tabwriter.NewWriter(app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Ventas totales:\t%s\n", infrapdf.Moneda(k.Ventas.TotalVentas))
	fmt.Fprintf(w, "Ganancia estimada:\t%s (%d%%)\n", infrapdf.Moneda(k.Ventas.GananciaTotal), k.Ventas.PorcentajeGanancia)
	if data.Comparativa != nil {
		fmt.Fprintf(w, "Frente a %d:\t%+.1f%%\n", data.Comparativa.AnioComparacion, data.Comparativa.Crecimiento)
	}
	fmt.Fprintf(w, "Producto top:\t%s\n", destacado(k.Productos.ProductoTop))
	fmt.Fprintf(w, "Categoría top:\t%s\n", destacado(k.Productos.CategoriaTop))
	w.Flush()

	if len(data.Graficos.ProductosMasVendidos) > 0 {
		app.printf("\n")
		w = tabwriter.NewWriter(app.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PRODUCTO\tUNIDADES\tGANANCIA")
		for _, pr := range data.Graficos.ProductosMasVendidos {
			fmt.Fprintf(w, "%s\t%d\t%s\n", pr.Nombre, pr.Ventas, infrapdf.Moneda(pr.Ganancia))
		}
		w.Flush()
	}

	if len(data.Alertas) > 0 {
		app.printf("\nAlertas:\n")
		for _, a := range data.Alertas {
			app.printf("  [%s] %s: %s\n", a.Severidad, a.Mensaje, a.Detalle)
		}
	}
	if len(data.WidgetsOcultos) > 0 {
		app.printf("\nNo disponibles: %v\n", data.WidgetsOcultos)
	}
}

func destacado(d dto.DestacadoKPI) string {
	if d.Nombre == "" {
		return "Sin datos"
	}
	return fmt.Sprintf("%s (%s)", d.Nombre, infrapdf.Moneda(d.Monto))
}
