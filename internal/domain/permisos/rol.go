package permisos

import (
	"strings"

	"golang.org/x/text/cases"
)

// Rol arquetipo de rol reconocido por la consola. Conjunto cerrado: cualquier
// nombre que el backend emita y no esté aquí es RolDesconocido.
type Rol int

const (
	RolDesconocido Rol = iota
	RolAdministrador
	RolGerente
	RolAsesorVentas
)

// Nombres canónicos (en minúsculas) tal como los emite el backend.
const (
	NombreAdministrador = "administrador"
	NombreGerente       = "gerente"
	NombreAsesorVentas  = "asesor de ventas"
)

var plegado = cases.Fold()

// ParseRol resuelve un nombre de rol sin distinguir mayúsculas.
func ParseRol(nombre string) Rol {
	n := strings.Join(strings.Fields(plegado.String(nombre)), " ")
	switch n {
	case NombreAdministrador:
		return RolAdministrador
	case NombreGerente:
		return RolGerente
	case NombreAsesorVentas:
		return RolAsesorVentas
	}
	return RolDesconocido
}

func (r Rol) String() string {
	switch r {
	case RolAdministrador:
		return NombreAdministrador
	case RolGerente:
		return NombreGerente
	case RolAsesorVentas:
		return NombreAsesorVentas
	}
	return "desconocido"
}

// capacidades mapeo exhaustivo rol → conjunto de capacidades.
func (r Rol) capacidades() map[Capacidad]struct{} {
	switch r {
	case RolAdministrador:
		return capacidadesAdministrador
	case RolGerente:
		return capacidadesGerente
	case RolAsesorVentas:
		return capacidadesAsesor
	case RolDesconocido:
		return sinCapacidades
	}
	return sinCapacidades
}
