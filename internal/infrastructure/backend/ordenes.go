package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

// ListarOrdenes GET /api/ordenes. Si el backend no devuelve paginación se simula
// una única página con todas las órdenes recibidas.
func (c *Client) ListarOrdenes(ctx context.Context, cred entity.Credenciales, p dto.OrdenesParams) (*dto.OrdenesPaginadas, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("sortBy", p.SortBy)
	q.Set("sortOrder", p.SortOrder)
	if p.Estado != "" && p.Estado != "todas" {
		q.Set("estado", p.Estado)
	}

	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodGet,
		ruta:     "/api/ordenes",
		query:    q,
		cred:     &cred,
		fallback: "Error al obtener órdenes",
	})
	if err != nil {
		return nil, err
	}

	var data json.RawMessage
	if err := extraer(raw, "", &data); err != nil {
		return nil, err
	}

	// data puede ser un arreglo o {ordenes, pagination}.
	var lista []entity.Orden
	if json.Unmarshal(data, &lista) == nil {
		return paginaSimulada(lista), nil
	}
	var pag struct {
		Ordenes    []entity.Orden          `json:"ordenes"`
		Paginacion *dto.PaginacionOrdenes `json:"pagination"`
	}
	if err := decodificar(data, &pag); err != nil {
		return nil, err
	}
	if pag.Paginacion == nil {
		return paginaSimulada(pag.Ordenes), nil
	}
	if pag.Ordenes == nil {
		pag.Ordenes = []entity.Orden{}
	}
	return &dto.OrdenesPaginadas{Ordenes: pag.Ordenes, Paginacion: *pag.Paginacion}, nil
}

func paginaSimulada(ordenes []entity.Orden) *dto.OrdenesPaginadas {
	if ordenes == nil {
		ordenes = []entity.Orden{}
	}
	return &dto.OrdenesPaginadas{
		Ordenes: ordenes,
		Paginacion: dto.PaginacionOrdenes{
			Page:       1,
			Limit:      len(ordenes),
			Total:      len(ordenes),
			TotalPages: 1,
		},
	}
}

// ObtenerOrden GET /api/ordenes/:id (con detalles).
func (c *Client) ObtenerOrden(ctx context.Context, cred entity.Credenciales, id int64) (*entity.Orden, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodGet,
		ruta:     ruta("/api/ordenes/%d", id),
		cred:     &cred,
		fallback: "Error al obtener la orden",
		mensajes: map[int]string{http.StatusNotFound: "Orden no encontrada"},
	})
	if err != nil {
		return nil, err
	}
	return decodificarOrden(raw)
}

// CrearOrden POST /api/ordenes.
func (c *Client) CrearOrden(ctx context.Context, cred entity.Credenciales, in dto.CrearOrdenRequest) (*entity.Orden, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodPost,
		ruta:     "/api/ordenes",
		cuerpo:   in,
		cred:     &cred,
		fallback: "Error al crear la orden",
	})
	if err != nil {
		return nil, err
	}
	return decodificarOrden(raw)
}

// ActualizarOrden PUT /api/ordenes/:id.
func (c *Client) ActualizarOrden(ctx context.Context, cred entity.Credenciales, id int64, in dto.ActualizarOrdenRequest) (*entity.Orden, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodPut,
		ruta:     ruta("/api/ordenes/%d", id),
		cuerpo:   in,
		cred:     &cred,
		fallback: "Error al actualizar la orden",
		mensajes: map[int]string{http.StatusNotFound: "Orden no encontrada"},
	})
	if err != nil {
		return nil, err
	}
	return decodificarOrden(raw)
}

// CambiarEstado PUT /api/ordenes/:id/estado {nuevoEstado}. Un 400 del backend se
// reclasifica como transición inválida.
func (c *Client) CambiarEstado(ctx context.Context, cred entity.Credenciales, id int64, nuevo entity.EstadoOrden) (*entity.Orden, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodPut,
		ruta:     ruta("/api/ordenes/%d/estado", id),
		cuerpo:   dto.CambiarEstadoRequest{NuevoEstado: nuevo},
		cred:     &cred,
		fallback: "Error al cambiar el estado",
		mensajes: map[int]string{http.StatusNotFound: "Orden no encontrada"},
	})
	if err != nil {
		var be *domain.BackendError
		if errors.As(err, &be) && be.Status == http.StatusBadRequest {
			be.Clase = domain.ErrTransicionInvalida
		}
		return nil, err
	}
	return decodificarOrden(raw)
}

// CancelarOrden DELETE /api/ordenes/:id (el backend la pasa a cancelado).
func (c *Client) CancelarOrden(ctx context.Context, cred entity.Credenciales, id int64) (*entity.Orden, error) {
	raw, err := c.hacer(ctx, peticion{
		metodo:   http.MethodDelete,
		ruta:     ruta("/api/ordenes/%d", id),
		cred:     &cred,
		fallback: "Error al cancelar la orden",
		mensajes: map[int]string{http.StatusNotFound: "Orden no encontrada"},
	})
	if err != nil {
		var be *domain.BackendError
		if errors.As(err, &be) && be.Status == http.StatusBadRequest {
			be.Clase = domain.ErrTransicionInvalida
		}
		return nil, err
	}
	return decodificarOrden(raw)
}

func decodificarOrden(raw []byte) (*entity.Orden, error) {
	var o entity.Orden
	if err := extraer(raw, "orden", &o); err != nil {
		return nil, err
	}
	return &o, nil
}
