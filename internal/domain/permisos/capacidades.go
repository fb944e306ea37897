// Package permisos deriva las capacidades del administrador autenticado a partir
// de su rol. Es una comodidad de interfaz: el backend vuelve a autorizar cada
// llamada y es la única frontera de seguridad.
package permisos

// Capacidad token de la forma <recurso>.<verbo>. Debe coincidir con el
// vocabulario de autorización del backend.
type Capacidad string

// Capacidades reconocidas.
const (
	ProductosCrear       Capacidad = "productos.crear"
	ProductosEditar      Capacidad = "productos.editar"
	ProductosEliminar    Capacidad = "productos.eliminar"
	ProductosLeer        Capacidad = "productos.leer"
	CategoriasCrear      Capacidad = "categorias.crear"
	CategoriasEditar     Capacidad = "categorias.editar"
	CategoriasEliminar   Capacidad = "categorias.eliminar"
	CategoriasLeer       Capacidad = "categorias.leer"
	OrdenesCrear         Capacidad = "ordenes.crear"
	OrdenesEditar        Capacidad = "ordenes.editar"
	OrdenesLeer          Capacidad = "ordenes.leer"
	OrdenesCambiarEstado Capacidad = "ordenes.cambiar_estado"
	BitacoraLeer         Capacidad = "bitacora.leer"
	UploadsSubir         Capacidad = "uploads.subir"

	// Comodin equivale a todas las capacidades.
	Comodin Capacidad = "*"
)

var todas = []Capacidad{
	ProductosCrear, ProductosEditar, ProductosEliminar, ProductosLeer,
	CategoriasCrear, CategoriasEditar, CategoriasEliminar, CategoriasLeer,
	OrdenesCrear, OrdenesEditar, OrdenesLeer, OrdenesCambiarEstado,
	BitacoraLeer, UploadsSubir,
}

// Todas devuelve una copia de la lista de capacidades conocidas (sin el comodín).
func Todas() []Capacidad {
	out := make([]Capacidad, len(todas))
	copy(out, todas)
	return out
}

// Conocida informa si c es una capacidad del vocabulario o el comodín.
func Conocida(c Capacidad) bool {
	if c == Comodin {
		return true
	}
	for _, t := range todas {
		if t == c {
			return true
		}
	}
	return false
}

func conjunto(cs ...Capacidad) map[Capacidad]struct{} {
	m := make(map[Capacidad]struct{}, len(cs))
	for _, c := range cs {
		m[c] = struct{}{}
	}
	return m
}

var (
	capacidadesAdministrador = conjunto(Comodin)
	capacidadesGerente       = conjunto(todas...)
	capacidadesAsesor        = conjunto(ProductosLeer, CategoriasLeer, OrdenesLeer, OrdenesCrear)
	sinCapacidades           = map[Capacidad]struct{}{}
)
