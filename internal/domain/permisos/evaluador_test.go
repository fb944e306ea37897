package permisos_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/domain/permisos"
)

func adminConRol(nombre string) *entity.Administrador {
	id := int64(7)
	return &entity.Administrador{ID: 1, Usuario: "ana", RolID: &id, Rol: &entity.Rol{ID: id, Nombre: nombre}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Puede
// ──────────────────────────────────────────────────────────────────────────────

func TestPuede_AdministradorTieneTodo(t *testing.T) {
	ev := permisos.NuevoEvaluador(adminConRol("Administrador"))
	for _, c := range permisos.Todas() {
		assert.True(t, ev.Puede(c), "administrador debe poder %s", c)
	}
	assert.True(t, ev.Puede("administradores.crear"), "el comodín cubre tokens no listados")
}

func TestPuede_Gerente(t *testing.T) {
	ev := permisos.NuevoEvaluador(adminConRol("gerente"))

	assert.True(t, ev.Puede(permisos.BitacoraLeer))
	assert.True(t, ev.Puede(permisos.UploadsSubir))
	assert.True(t, ev.Puede(permisos.OrdenesCambiarEstado))
	assert.False(t, ev.Puede("administradores.crear"), "token no listado")
	assert.False(t, ev.Puede(permisos.Comodin))
	assert.Len(t, ev.Capacidades(), 14)
}

func TestPuede_AsesorDeVentas(t *testing.T) {
	ev := permisos.NuevoEvaluador(adminConRol("Asesor de Ventas"))

	assert.ElementsMatch(t, []permisos.Capacidad{
		permisos.ProductosLeer, permisos.CategoriasLeer, permisos.OrdenesLeer, permisos.OrdenesCrear,
	}, ev.Capacidades())
	assert.False(t, ev.Puede(permisos.OrdenesCambiarEstado))
	assert.False(t, ev.Puede(permisos.ProductosCrear))
}

func TestPuede_RolDesconocidoNoTieneNada(t *testing.T) {
	for _, nombre := range []string{"supervisor", "admin", "administradora", "gerente general"} {
		ev := permisos.NuevoEvaluador(adminConRol(nombre))
		for _, c := range append(permisos.Todas(), permisos.Comodin) {
			assert.False(t, ev.Puede(c), "rol %q no debe poder %s", nombre, c)
		}
		assert.False(t, ev.EsAdministrador())
		assert.Empty(t, ev.Capacidades())
	}
}

func TestPuede_SinRolNiSesion(t *testing.T) {
	sinRol := permisos.NuevoEvaluador(&entity.Administrador{ID: 3, Usuario: "luis"})
	sinSesion := permisos.NuevoEvaluador(nil)

	for _, ev := range []permisos.Evaluador{sinRol, sinSesion} {
		assert.False(t, ev.EsAdministrador())
		assert.False(t, ev.EsGerente())
		assert.False(t, ev.EsAsesorVentas())
		assert.False(t, ev.TieneRol())
		for _, c := range permisos.Todas() {
			assert.False(t, ev.Puede(c))
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Predicados y estado del rol
// ──────────────────────────────────────────────────────────────────────────────

func TestParseRol_SinDistinguirMayusculas(t *testing.T) {
	assert.Equal(t, permisos.RolAdministrador, permisos.ParseRol("ADMINISTRADOR"))
	assert.Equal(t, permisos.RolGerente, permisos.ParseRol(" Gerente "))
	assert.Equal(t, permisos.RolAsesorVentas, permisos.ParseRol("asesor  de VENTAS"))
	assert.Equal(t, permisos.RolDesconocido, permisos.ParseRol(""))
	assert.Equal(t, "asesor de ventas", permisos.RolAsesorVentas.String())
}

func TestTieneRol_ExigeIDYNombre(t *testing.T) {
	id := int64(2)
	sinNombre := &entity.Administrador{ID: 1, RolID: &id}
	sinID := &entity.Administrador{ID: 1, Rol: &entity.Rol{Nombre: "gerente"}}

	assert.False(t, permisos.NuevoEvaluador(sinNombre).TieneRol())
	assert.False(t, permisos.NuevoEvaluador(sinID).TieneRol())
	assert.True(t, permisos.NuevoEvaluador(adminConRol("gerente")).TieneRol())
}

func TestEstadoRol_MensajesDistintos(t *testing.T) {
	sinRol := permisos.NuevoEvaluador(&entity.Administrador{ID: 1})
	desconocido := permisos.NuevoEvaluador(adminConRol("supervisor"))
	gerente := permisos.NuevoEvaluador(adminConRol("gerente"))

	assert.Equal(t, permisos.SinRol, sinRol.EstadoRol())
	assert.Equal(t, permisos.RolNoReconocido, desconocido.EstadoRol())
	assert.Equal(t, permisos.RolReconocido, gerente.EstadoRol())

	assert.NotEqual(t, sinRol.MensajeRol(), desconocido.MensajeRol())
	assert.Contains(t, desconocido.MensajeRol(), "supervisor")
	assert.Empty(t, gerente.MensajeRol())
}
