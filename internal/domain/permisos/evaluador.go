package permisos

import (
	"sort"

	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

// EstadoRol distingue por qué un administrador no tiene capacidades.
type EstadoRol string

const (
	SinRol          EstadoRol = "sin_rol"
	RolNoReconocido EstadoRol = "rol_no_reconocido"
	RolReconocido   EstadoRol = "rol_reconocido"
)

// Evaluador responde preguntas de permisos sobre un principal ya obtenido.
// Es un valor inmutable; la ausencia de datos siempre resuelve al menor privilegio.
type Evaluador struct {
	autenticado bool
	rolID       *int64
	nombreRol   string
	rol         Rol
}

// NuevoEvaluador construye el evaluador para admin (nil = sin sesión).
func NuevoEvaluador(admin *entity.Administrador) Evaluador {
	if admin == nil {
		return Evaluador{}
	}
	nombre := admin.NombreRol()
	return Evaluador{
		autenticado: true,
		rolID:       admin.RolID,
		nombreRol:   nombre,
		rol:         ParseRol(nombre),
	}
}

// Puede informa si el principal tiene la capacidad c.
func (e Evaluador) Puede(c Capacidad) bool {
	if !e.autenticado || e.nombreRol == "" {
		return false
	}
	caps := e.rol.capacidades()
	if _, ok := caps[Comodin]; ok {
		return true
	}
	_, ok := caps[c]
	return ok
}

// EsAdministrador compara el rol contra "administrador".
func (e Evaluador) EsAdministrador() bool { return e.autenticado && e.rol == RolAdministrador }

// EsGerente compara el rol contra "gerente".
func (e Evaluador) EsGerente() bool { return e.autenticado && e.rol == RolGerente }

// EsAsesorVentas compara el rol contra "asesor de ventas".
func (e Evaluador) EsAsesorVentas() bool { return e.autenticado && e.rol == RolAsesorVentas }

// TieneRol exige id de rol y nombre resoluble.
func (e Evaluador) TieneRol() bool {
	return e.autenticado && e.rolID != nil && e.nombreRol != ""
}

// Rol devuelve el arquetipo resuelto.
func (e Evaluador) Rol() Rol { return e.rol }

// NombreRol devuelve el nombre tal como llegó del backend.
func (e Evaluador) NombreRol() string { return e.nombreRol }

// EstadoRol clasifica el rol del principal.
func (e Evaluador) EstadoRol() EstadoRol {
	switch {
	case !e.TieneRol():
		return SinRol
	case e.rol == RolDesconocido:
		return RolNoReconocido
	default:
		return RolReconocido
	}
}

// MensajeRol texto para el usuario cuando no tiene capacidades; "" si su rol es reconocido.
func (e Evaluador) MensajeRol() string {
	switch e.EstadoRol() {
	case SinRol:
		return "No tienes un rol asignado. Contacta a un administrador para que te asigne uno."
	case RolNoReconocido:
		return "Tu rol \"" + e.nombreRol + "\" no es reconocido por esta versión de la consola."
	}
	return ""
}

// Capacidades lista ordenada de capacidades concedidas, con el comodín expandido.
func (e Evaluador) Capacidades() []Capacidad {
	out := make([]Capacidad, 0, len(todas))
	for _, c := range todas {
		if e.Puede(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
