// Package ordenes define la máquina de estados de una orden: qué estados son
// alcanzables en una transición y quién puede ofrecerlos.
package ordenes

import "github.com/jhoicas/consola-admin/internal/domain/entity"

// transiciones tabla exacta; el orden de cada fila es el orden en que se ofrecen.
var transiciones = map[entity.EstadoOrden][]entity.EstadoOrden{
	entity.EstadoPendiente:  {entity.EstadoPagado, entity.EstadoCancelado},
	entity.EstadoPagado:     {entity.EstadoEnviado, entity.EstadoCancelado},
	entity.EstadoEnviado:    {entity.EstadoCompletado},
	entity.EstadoCompletado: {},
	entity.EstadoCancelado:  {},
}

// Estados devuelve los cinco estados en orden de ciclo de vida.
func Estados() []entity.EstadoOrden {
	return []entity.EstadoOrden{
		entity.EstadoPendiente, entity.EstadoPagado, entity.EstadoEnviado,
		entity.EstadoCompletado, entity.EstadoCancelado,
	}
}

// EstadoValido informa si e pertenece a la enumeración.
func EstadoValido(e entity.EstadoOrden) bool {
	_, ok := transiciones[e]
	return ok
}

// EsTerminal informa si desde e no se ofrece ninguna transición.
func EsTerminal(e entity.EstadoOrden) bool {
	return EstadoValido(e) && len(transiciones[e]) == 0
}

// TransicionesPermitidas estados alcanzables desde actual. Cancelar es exclusivo
// de administradores. Siempre devuelve un slice nuevo (nunca nil).
func TransicionesPermitidas(actual entity.EstadoOrden, esAdmin bool) []entity.EstadoOrden {
	fila := transiciones[actual]
	out := make([]entity.EstadoOrden, 0, len(fila))
	for _, e := range fila {
		if e == entity.EstadoCancelado && !esAdmin {
			continue
		}
		out = append(out, e)
	}
	return out
}

// PuedeTransicionar informa si destino está entre las transiciones permitidas.
func PuedeTransicionar(actual, destino entity.EstadoOrden, esAdmin bool) bool {
	for _, e := range TransicionesPermitidas(actual, esAdmin) {
		if e == destino {
			return true
		}
	}
	return false
}
