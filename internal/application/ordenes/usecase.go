// Package ordenes contiene los casos de uso de órdenes: listado, detalle con su
// control de estado, creación, edición, transiciones y comprobante PDF.
package ordenes

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/bitacora"
	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/application/ports"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
	maquina "github.com/jhoicas/consola-admin/internal/domain/ordenes"
	"github.com/jhoicas/consola-admin/internal/domain/permisos"
)

const (
	limitePorDefecto = 25
	limiteMaximo     = 100
)

var camposOrden = map[string]bool{"id": true, "fecha": true, "total": true, "cliente": true}

// OrdenesUseCase casos de uso de órdenes. Los totales y detalles los calcula
// siempre el backend; aquí nunca se recalculan.
type OrdenesUseCase struct {
	backend  ports.OrdenesBackend
	bitacora *bitacora.BitacoraUseCase
	pdf      ports.ComprobanteGenerator
	log      zerolog.Logger

	mu      sync.Mutex
	enCurso map[int64]struct{}
}

// NewOrdenesUseCase construye el caso de uso. bitacora y pdf pueden ser nil.
func NewOrdenesUseCase(backend ports.OrdenesBackend, bit *bitacora.BitacoraUseCase, pdf ports.ComprobanteGenerator, log zerolog.Logger) *OrdenesUseCase {
	return &OrdenesUseCase{
		backend:  backend,
		bitacora: bit,
		pdf:      pdf,
		log:      log.With().Str("component", "ordenes").Logger(),
		enCurso:  map[int64]struct{}{},
	}
}

// ── Control de estado ─────────────────────────────────────────────────────────

// ControlEstado decide si la interfaz muestra el selector de estados o la insignia
// de solo lectura. Las opciones salen únicamente de la lista filtrada por rango.
func (uc *OrdenesUseCase) ControlEstado(p *auth.Principal, o entity.Orden) dto.ControlEstadoDTO {
	destinos := maquina.TransicionesPermitidas(o.Estado, p.EsAdministrador())
	ctrl := dto.ControlEstadoDTO{
		Estado:       o.Estado,
		NombreEstado: o.Estado.Nombre(),
		Modo:         dto.ModoInsignia,
		Opciones:     []dto.OpcionEstado{},
		EsFinal:      maquina.EsTerminal(o.Estado),
	}
	if !p.Puede(permisos.OrdenesCambiarEstado) || len(destinos) == 0 {
		return ctrl
	}
	ctrl.Modo = dto.ModoSelector
	for _, d := range destinos {
		ctrl.Opciones = append(ctrl.Opciones, dto.OpcionEstado{Valor: d, Nombre: d.Nombre()})
	}
	return ctrl
}

func (uc *OrdenesUseCase) detalle(p *auth.Principal, o *entity.Orden) *dto.OrdenDetalleResponse {
	return &dto.OrdenDetalleResponse{Orden: *o, Control: uc.ControlEstado(p, *o)}
}

// ── Transiciones ──────────────────────────────────────────────────────────────

// reservar marca la orden como ocupada; false si ya hay una transición en curso.
func (uc *OrdenesUseCase) reservar(id int64) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, ok := uc.enCurso[id]; ok {
		return false
	}
	uc.enCurso[id] = struct{}{}
	return true
}

func (uc *OrdenesUseCase) liberar(id int64) {
	uc.mu.Lock()
	delete(uc.enCurso, id)
	uc.mu.Unlock()
}

// CambiarEstado aplica una transición confirmada. Pasos: permiso, lectura fresca,
// validación local contra la lista filtrada, envío al backend y relectura.
// Nunca se envía un destino que la máquina de estados no ofrece.
func (uc *OrdenesUseCase) CambiarEstado(ctx context.Context, p *auth.Principal, id int64, destino entity.EstadoOrden) (out *dto.OrdenDetalleResponse, err error) {
	recursoID := strconv.FormatInt(id, 10)
	detalle := "→ " + string(destino)
	defer func() {
		if !errors.Is(err, domain.ErrOperacionEnCurso) {
			uc.bitacora.Registrar(ctx, p, permisos.OrdenesCambiarEstado, "orden", recursoID, detalleDe(detalle, err), err)
		}
	}()

	if err := p.Exigir(permisos.OrdenesCambiarEstado); err != nil {
		return nil, err
	}
	if !maquina.EstadoValido(destino) {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, destino)
	}
	if !uc.reservar(id) {
		return nil, domain.ErrOperacionEnCurso
	}
	defer uc.liberar(id)

	actual, err := uc.backend.ObtenerOrden(ctx, p.Credenciales, id)
	if err != nil {
		return nil, err
	}
	detalle = string(actual.Estado) + " → " + string(destino)

	esAdmin := p.EsAdministrador()
	if destino == entity.EstadoCancelado && !esAdmin {
		return nil, fmt.Errorf("%w: solo un administrador puede cancelar órdenes", domain.ErrForbidden)
	}
	if !maquina.PuedeTransicionar(actual.Estado, destino, esAdmin) {
		return nil, domain.TransicionInvalida(string(actual.Estado), string(destino), 0)
	}

	actualizada, err := uc.backend.CambiarEstado(ctx, p.Credenciales, id, destino)
	if err != nil {
		return nil, uc.reclasificar(err, actual.Estado, destino)
	}
	uc.log.Info().Int64("orden_id", id).Str("desde", string(actual.Estado)).Str("hacia", string(destino)).Msg("estado de orden actualizado")
	return uc.releer(ctx, p, id, actualizada), nil
}

// Cancelar cancela una orden (DELETE en el backend). Solo administradores.
func (uc *OrdenesUseCase) Cancelar(ctx context.Context, p *auth.Principal, id int64) (out *dto.OrdenDetalleResponse, err error) {
	recursoID := strconv.FormatInt(id, 10)
	defer func() {
		if !errors.Is(err, domain.ErrOperacionEnCurso) {
			uc.bitacora.Registrar(ctx, p, permisos.OrdenesCambiarEstado, "orden", recursoID, detalleDe("cancelar", err), err)
		}
	}()

	if err := p.ExigirAdministrador(); err != nil {
		return nil, err
	}
	if !uc.reservar(id) {
		return nil, domain.ErrOperacionEnCurso
	}
	defer uc.liberar(id)

	actual, err := uc.backend.ObtenerOrden(ctx, p.Credenciales, id)
	if err != nil {
		return nil, err
	}
	if !maquina.PuedeTransicionar(actual.Estado, entity.EstadoCancelado, true) {
		return nil, domain.TransicionInvalida(string(actual.Estado), string(entity.EstadoCancelado), 0)
	}
	cancelada, err := uc.backend.CancelarOrden(ctx, p.Credenciales, id)
	if err != nil {
		return nil, uc.reclasificar(err, actual.Estado, entity.EstadoCancelado)
	}
	uc.log.Info().Int64("orden_id", id).Str("desde", string(actual.Estado)).Msg("orden cancelada")
	return uc.releer(ctx, p, id, cancelada), nil
}

// reclasificar reescribe el mensaje de una transición rechazada con los estados reales.
func (uc *OrdenesUseCase) reclasificar(err error, desde, hacia entity.EstadoOrden) error {
	var be *domain.BackendError
	if errors.Is(err, domain.ErrTransicionInvalida) && errors.As(err, &be) {
		ti := domain.TransicionInvalida(string(desde), string(hacia), be.Status)
		ti.Detalles = be.Detalles
		return ti
	}
	return err
}

// releer obtiene de nuevo la orden tras una mutación; si falla se usa la respuesta del backend.
func (uc *OrdenesUseCase) releer(ctx context.Context, p *auth.Principal, id int64, respaldo *entity.Orden) *dto.OrdenDetalleResponse {
	fresca, err := uc.backend.ObtenerOrden(ctx, p.Credenciales, id)
	if err != nil {
		uc.log.Warn().Err(err).Int64("orden_id", id).Msg("no se pudo releer la orden")
		fresca = respaldo
	}
	return uc.detalle(p, fresca)
}

func detalleDe(detalle string, err error) string {
	if err == nil {
		return detalle
	}
	return detalle + ": " + domain.MensajeUsuario(err)
}

// ── Lectura ───────────────────────────────────────────────────────────────────

// NormalizarParams aplica los valores por defecto del listado: página 1, 25 por
// página, orden por id descendente, "todas" = sin filtro.
func NormalizarParams(in dto.OrdenesParams) (dto.OrdenesParams, error) {
	out := in
	if out.Page <= 0 {
		out.Page = 1
	}
	if out.Limit <= 0 {
		out.Limit = limitePorDefecto
	}
	if out.Limit > limiteMaximo {
		out.Limit = limiteMaximo
	}
	if out.SortBy == "" {
		out.SortBy = "id"
	}
	if !camposOrden[out.SortBy] {
		return out, fmt.Errorf("%w: sortBy debe ser id, fecha, total o cliente", domain.ErrInvalidInput)
	}
	out.SortOrder = strings.ToLower(out.SortOrder)
	if out.SortOrder == "" {
		out.SortOrder = "desc"
	}
	if out.SortOrder != "asc" && out.SortOrder != "desc" {
		return out, fmt.Errorf("%w: sortOrder debe ser asc o desc", domain.ErrInvalidInput)
	}
	if out.Estado == "todas" {
		out.Estado = ""
	}
	if out.Estado != "" && !maquina.EstadoValido(entity.EstadoOrden(out.Estado)) {
		return out, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, out.Estado)
	}
	return out, nil
}

// Listar devuelve una página de órdenes.
func (uc *OrdenesUseCase) Listar(ctx context.Context, p *auth.Principal, params dto.OrdenesParams) (*dto.OrdenesPaginadas, error) {
	if err := p.Exigir(permisos.OrdenesLeer); err != nil {
		return nil, err
	}
	params, err := NormalizarParams(params)
	if err != nil {
		return nil, err
	}
	return uc.backend.ListarOrdenes(ctx, p.Credenciales, params)
}

// Obtener devuelve la orden con sus detalles y el control de estado.
func (uc *OrdenesUseCase) Obtener(ctx context.Context, p *auth.Principal, id int64) (*dto.OrdenDetalleResponse, error) {
	if err := p.Exigir(permisos.OrdenesLeer); err != nil {
		return nil, err
	}
	o, err := uc.backend.ObtenerOrden(ctx, p.Credenciales, id)
	if err != nil {
		return nil, err
	}
	return uc.detalle(p, o), nil
}

// TransicionesDisponibles destinos que el principal puede elegir para la orden.
func (uc *OrdenesUseCase) TransicionesDisponibles(ctx context.Context, p *auth.Principal, id int64) (*dto.ControlEstadoDTO, error) {
	d, err := uc.Obtener(ctx, p, id)
	if err != nil {
		return nil, err
	}
	return &d.Control, nil
}

// ── Escritura ─────────────────────────────────────────────────────────────────

func validarItems(items []dto.ItemOrdenRequest) error {
	for _, it := range items {
		if it.ProductoID <= 0 {
			return fmt.Errorf("%w: producto_id inválido", domain.ErrInvalidInput)
		}
		if it.Cantidad <= 0 {
			return fmt.Errorf("%w: la cantidad debe ser mayor a 0", domain.ErrInvalidInput)
		}
	}
	return nil
}

// Crear registra una nueva orden (queda en pendiente).
func (uc *OrdenesUseCase) Crear(ctx context.Context, p *auth.Principal, in dto.CrearOrdenRequest) (o *entity.Orden, err error) {
	defer func() {
		id := ""
		if o != nil {
			id = strconv.FormatInt(o.ID, 10)
		}
		uc.bitacora.Registrar(ctx, p, permisos.OrdenesCrear, "orden", id, "", err)
	}()

	if err := p.Exigir(permisos.OrdenesCrear); err != nil {
		return nil, err
	}
	in.Cliente = strings.TrimSpace(in.Cliente)
	if in.Cliente == "" {
		return nil, fmt.Errorf("%w: el cliente es obligatorio", domain.ErrInvalidInput)
	}
	if len(in.Productos) == 0 {
		return nil, fmt.Errorf("%w: la orden debe tener al menos un producto", domain.ErrInvalidInput)
	}
	if err := validarItems(in.Productos); err != nil {
		return nil, err
	}
	return uc.backend.CrearOrden(ctx, p.Credenciales, in)
}

// Actualizar modifica los datos de contacto o los productos de una orden.
func (uc *OrdenesUseCase) Actualizar(ctx context.Context, p *auth.Principal, id int64, in dto.ActualizarOrdenRequest) (o *entity.Orden, err error) {
	defer func() {
		uc.bitacora.Registrar(ctx, p, permisos.OrdenesEditar, "orden", strconv.FormatInt(id, 10), "", err)
	}()

	if err := p.Exigir(permisos.OrdenesEditar); err != nil {
		return nil, err
	}
	if in.Cliente != nil && strings.TrimSpace(*in.Cliente) == "" {
		return nil, fmt.Errorf("%w: el cliente no puede quedar vacío", domain.ErrInvalidInput)
	}
	if err := validarItems(in.Productos); err != nil {
		return nil, err
	}
	return uc.backend.ActualizarOrden(ctx, p.Credenciales, id, in)
}

// ── Comprobante ───────────────────────────────────────────────────────────────

// ComprobantePDF genera el comprobante de la orden.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrForbidden        sin ordenes.leer.
//   - errores del backend        si la orden no existe o la sesión expiró.
func (uc *OrdenesUseCase) ComprobantePDF(ctx context.Context, p *auth.Principal, id int64) ([]byte, string, error) {
	if err := p.Exigir(permisos.OrdenesLeer); err != nil {
		return nil, "", err
	}
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("comprobante: %w: generador no configurado", domain.ErrNotFound)
	}
	o, err := uc.backend.ObtenerOrden(ctx, p.Credenciales, id)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.pdf.GenerarComprobante(ctx, o)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: %w", err)
	}
	return doc, fmt.Sprintf("orden-%d.pdf", o.ID), nil
}
