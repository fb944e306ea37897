package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
	infrapdf "github.com/jhoicas/consola-admin/internal/infrastructure/pdf"
)

// OrdenesCmd agrupa los subcomandos de órdenes.
type OrdenesCmd struct {
	Listar      OrdenesListarCmd      `cmd:"" default:"withargs" help:"Listar órdenes"`
	Ver         OrdenesVerCmd         `cmd:"" help:"Ver una orden y sus transiciones"`
	Estado      OrdenesEstadoCmd      `cmd:"" help:"Cambiar el estado de una orden"`
	Cancelar    OrdenesCancelarCmd    `cmd:"" help:"Cancelar una orden (solo administrador)"`
	Comprobante OrdenesComprobanteCmd `cmd:"" help:"Descargar el comprobante PDF"`
}

// OrdenesListarCmd listado paginado.
type OrdenesListarCmd struct {
	Page      int    `help:"Página" default:"1"`
	Limit     int    `help:"Órdenes por página (máx. 100)" default:"25"`
	Estado    string `help:"pendiente, pagado, enviado, completado, cancelado o todas" default:"todas"`
	SortBy    string `help:"id, fecha, total o cliente" default:"fecha"`
	SortOrder string `help:"asc o desc" default:"desc" enum:"asc,desc"`
}

func (l *OrdenesListarCmd) Run(ctx context.Context, app *App) error {
	p, err := app.principal(ctx)
	if err != nil {
		return err
	}
	out, err := app.Ordenes.Listar(ctx, p, dto.OrdenesParams{
		Page: l.Page, Limit: l.Limit, Estado: l.Estado, SortBy: l.SortBy, SortOrder: l.SortOrder,
	})
	if err != nil {
		return err
	}
	if len(out.Ordenes) == 0 {
		app.printf("No hay órdenes.\n")
		return nil
	}

	w := tabwriter.NewWriter(app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFECHA\tCLIENTE\tESTADO\tTOTAL")
	for _, o := range out.Ordenes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", o.ID, fecha(o), o.Cliente, o.Estado.Nombre(), infrapdf.Moneda(o.Total))
	}
	w.Flush()

	pg := out.Paginacion
	app.printf("\nPágina %d/%d (%d órdenes)\n", pg.Page, pg.TotalPages, pg.Total)
	if pg.HasNext {
		app.printf("Usa --page=%d para ver la siguiente\n", pg.Page+1)
	}
	return nil
}

func fecha(o entity.Orden) string {
	if o.Fecha.IsZero() {
		return "-"
	}
	return o.Fecha.Local().Format("2006-01-02 15:04")
}

// OrdenesVerCmd detalle de una orden.
type OrdenesVerCmd struct {
	ID int64 `arg:"" help:"ID de la orden"`
}

func (v *OrdenesVerCmd) Run(ctx context.Context, app *App) error {
	p, err := app.principal(ctx)
	if err != nil {
		return err
	}
	d, err := app.Ordenes.Obtener(ctx, p, v.ID)
	if err != nil {
		return err
	}
	imprimirOrden(app, d)
	return nil
}

func imprimirOrden(app *App, d *dto.OrdenDetalleResponse) {
	o := d.Orden
	w := tabwriter.NewWriter(app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Orden:\t#%d\n", o.ID)
	fmt.Fprintf(w, "Fecha:\t%s\n", fecha(o))
	fmt.Fprintf(w, "Cliente:\t%s\n", o.Cliente)
	if o.Telefono != "" {
		fmt.Fprintf(w, "Teléfono:\t%s\n", o.Telefono)
	}
	if o.Direccion != "" {
		fmt.Fprintf(w, "Dirección:\t%s\n", o.Direccion)
	}
	fmt.Fprintf(w, "Estado:\t%s\n", d.Control.NombreEstado)
	fmt.Fprintf(w, "Total:\t%s\n", infrapdf.Moneda(o.Total))
	w.Flush()

	if len(o.Detalles) > 0 {
		app.printf("\n")
		w = tabwriter.NewWriter(app.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PRODUCTO\tCANT.\tPRECIO\tSUBTOTAL")
		for _, det := range o.Detalles {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", det.ProductoNombre, det.Cantidad, infrapdf.Moneda(det.PrecioUnitario), infrapdf.Moneda(det.Subtotal))
		}
		w.Flush()
	}

	switch {
	case d.Control.EsFinal:
		app.printf("\nEstado final: no admite más cambios.\n")
	case len(d.Control.Opciones) > 0:
		nombres := make([]string, 0, len(d.Control.Opciones))
		for _, op := range d.Control.Opciones {
			nombres = append(nombres, string(op.Valor))
		}
		app.printf("\nTransiciones disponibles: %s\n", strings.Join(nombres, ", "))
	}
}

// OrdenesEstadoCmd aplica una transición tras confirmarla.
type OrdenesEstadoCmd struct {
	ID     int64  `arg:"" help:"ID de la orden"`
	Estado string `arg:"" help:"Nuevo estado"`
	Si     bool   `short:"y" help:"No pedir confirmación"`
}

func (e *OrdenesEstadoCmd) Run(ctx context.Context, app *App) error {
	p, err := app.principal(ctx)
	if err != nil {
		return err
	}
	destino := entity.EstadoOrden(strings.ToLower(strings.TrimSpace(e.Estado)))
	ok, err := app.confirmar(e.Si, fmt.Sprintf("¿Cambiar la orden #%d a %q?", e.ID, destino.Nombre()))
	if err != nil {
		return err
	}
	if !ok {
		app.printf("Sin cambios.\n")
		return nil
	}
	d, err := app.Ordenes.CambiarEstado(ctx, p, e.ID, destino)
	if err != nil {
		return err
	}
	app.printf("Estado actualizado.\n\n")
	imprimirOrden(app, d)
	return nil
}

// OrdenesCancelarCmd cancela la orden.
type OrdenesCancelarCmd struct {
	ID int64 `arg:"" help:"ID de la orden"`
	Si bool  `short:"y" help:"No pedir confirmación"`
}

func (c *OrdenesCancelarCmd) Run(ctx context.Context, app *App) error {
	p, err := app.principal(ctx)
	if err != nil {
		return err
	}
	ok, err := app.confirmar(c.Si, fmt.Sprintf("¿Cancelar la orden #%d? Esta acción no se puede deshacer.", c.ID))
	if err != nil {
		return err
	}
	if !ok {
		app.printf("Sin cambios.\n")
		return nil
	}
	d, err := app.Ordenes.Cancelar(ctx, p, c.ID)
	if err != nil {
		return err
	}
	app.printf("Orden cancelada.\n\n")
	imprimirOrden(app, d)
	return nil
}

// OrdenesComprobanteCmd guarda el comprobante en disco.
type OrdenesComprobanteCmd struct {
	ID     int64  `arg:"" help:"ID de la orden"`
	Salida string `short:"o" help:"Archivo de salida" type:"path"`
}

func (c *OrdenesComprobanteCmd) Run(ctx context.Context, app *App) error {
	p, err := app.principal(ctx)
	if err != nil {
		return err
	}
	doc, nombre, err := app.Ordenes.ComprobantePDF(ctx, p, c.ID)
	if err != nil {
		return err
	}
	ruta := rutaSalida(c.Salida, nombre)
	if err := escribirArchivo(ruta, doc); err != nil {
		return fmt.Errorf("guardar comprobante: %w", err)
	}
	app.printf("Comprobante guardado en %s\n", ruta)
	return nil
}
