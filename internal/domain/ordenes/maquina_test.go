package ordenes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/domain/ordenes"
)

func TestTransicionesPermitidas_Tabla(t *testing.T) {
	casos := []struct {
		desde   entity.EstadoOrden
		esAdmin bool
		want    []entity.EstadoOrden
	}{
		{entity.EstadoPendiente, true, []entity.EstadoOrden{entity.EstadoPagado, entity.EstadoCancelado}},
		{entity.EstadoPendiente, false, []entity.EstadoOrden{entity.EstadoPagado}},
		{entity.EstadoPagado, true, []entity.EstadoOrden{entity.EstadoEnviado, entity.EstadoCancelado}},
		{entity.EstadoPagado, false, []entity.EstadoOrden{entity.EstadoEnviado}},
		{entity.EstadoEnviado, true, []entity.EstadoOrden{entity.EstadoCompletado}},
		{entity.EstadoEnviado, false, []entity.EstadoOrden{entity.EstadoCompletado}},
		{entity.EstadoCompletado, true, []entity.EstadoOrden{}},
		{entity.EstadoCancelado, true, []entity.EstadoOrden{}},
		{entity.EstadoCompletado, false, []entity.EstadoOrden{}},
		{"archivado", true, []entity.EstadoOrden{}},
	}
	for _, tc := range casos {
		got := ordenes.TransicionesPermitidas(tc.desde, tc.esAdmin)
		assert.Equal(t, tc.want, got, "desde=%s admin=%v", tc.desde, tc.esAdmin)
	}
}

func TestTransicionesPermitidas_Idempotente(t *testing.T) {
	a := ordenes.TransicionesPermitidas(entity.EstadoPendiente, true)
	a[0] = entity.EstadoCompletado // mutar el resultado no debe afectar llamadas posteriores
	b := ordenes.TransicionesPermitidas(entity.EstadoPendiente, true)
	c := ordenes.TransicionesPermitidas(entity.EstadoPendiente, true)

	assert.Equal(t, []entity.EstadoOrden{entity.EstadoPagado, entity.EstadoCancelado}, b)
	assert.Equal(t, b, c)
}

func TestPuedeTransicionar_SinSaltosNiCiclos(t *testing.T) {
	assert.False(t, ordenes.PuedeTransicionar(entity.EstadoPendiente, entity.EstadoEnviado, true))
	assert.False(t, ordenes.PuedeTransicionar(entity.EstadoPendiente, entity.EstadoCompletado, true))
	assert.False(t, ordenes.PuedeTransicionar(entity.EstadoPagado, entity.EstadoPendiente, true))
	assert.False(t, ordenes.PuedeTransicionar(entity.EstadoEnviado, entity.EstadoCancelado, true))
	assert.False(t, ordenes.PuedeTransicionar(entity.EstadoPagado, entity.EstadoCancelado, false))
	assert.True(t, ordenes.PuedeTransicionar(entity.EstadoPagado, entity.EstadoCancelado, true))
}

func TestEsTerminal(t *testing.T) {
	assert.True(t, ordenes.EsTerminal(entity.EstadoCompletado))
	assert.True(t, ordenes.EsTerminal(entity.EstadoCancelado))
	assert.False(t, ordenes.EsTerminal(entity.EstadoEnviado))
	assert.False(t, ordenes.EsTerminal("desconocido"))
	assert.Len(t, ordenes.Estados(), 5)
}
