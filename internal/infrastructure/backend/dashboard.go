package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

func periodo(anio, mes int) url.Values {
	q := url.Values{}
	q.Set("year", strconv.Itoa(anio))
	if mes > 0 {
		q.Set("month", strconv.Itoa(mes))
	}
	return q
}

func (c *Client) dashboard(ctx context.Context, cred entity.Credenciales, r string, q url.Values, fallback string, dst any) error {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodGet,
		ruta:     r,
		query:    q,
		cred:     &cred,
		fallback: fallback,
	})
	if err != nil {
		return err
	}
	return extraer(raw, "", dst)
}

// General GET /api/dashboard/general?year&month.
func (c *Client) General(ctx context.Context, cred entity.Credenciales, anio, mes int) (*dto.APIDashboardGeneral, error) {
	var out dto.APIDashboardGeneral
	if err := c.dashboard(ctx, cred, "/api/dashboard/general", periodo(anio, mes), "Error al obtener datos del dashboard", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VentasPeriodo GET /api/dashboard/ventas-periodo?year&month&tipo (mensual | diario).
func (c *Client) VentasPeriodo(ctx context.Context, cred entity.Credenciales, anio, mes int, tipo string) (*dto.APIVentasPeriodo, error) {
	q := periodo(anio, mes)
	q.Set("tipo", tipo)
	var out dto.APIVentasPeriodo
	if err := c.dashboard(ctx, cred, "/api/dashboard/ventas-periodo", q, "Error al obtener evolución de ventas", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TopProductos GET /api/dashboard/top-productos?year&month&limit.
func (c *Client) TopProductos(ctx context.Context, cred entity.Credenciales, anio, mes, limit int) (*dto.APITopProductos, error) {
	q := periodo(anio, mes)
	q.Set("limit", strconv.Itoa(limit))
	var out dto.APITopProductos
	if err := c.dashboard(ctx, cred, "/api/dashboard/top-productos", q, "Error al obtener top productos", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalisisCategorias GET /api/dashboard/analisis-categorias?year&month.
func (c *Client) AnalisisCategorias(ctx context.Context, cred entity.Credenciales, anio, mes int) (*dto.APIAnalisisCategorias, error) {
	var out dto.APIAnalisisCategorias
	if err := c.dashboard(ctx, cred, "/api/dashboard/analisis-categorias", periodo(anio, mes), "Error al obtener análisis de categorías", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ComparativaAnual GET /api/dashboard/comparativa-anual?year&year_comparacion.
func (c *Client) ComparativaAnual(ctx context.Context, cred entity.Credenciales, anioBase, anioComparacion int) (*dto.APIComparativaAnual, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(anioBase))
	q.Set("year_comparacion", strconv.Itoa(anioComparacion))
	var out dto.APIComparativaAnual
	if err := c.dashboard(ctx, cred, "/api/dashboard/comparativa-anual", q, "Error al obtener datos comparativos", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
