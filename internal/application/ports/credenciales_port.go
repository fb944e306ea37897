package ports

import "github.com/jhoicas/consola-admin/internal/domain/entity"

// AlmacenCredenciales ranura durable del principal de la consola de terminal.
type AlmacenCredenciales interface {
	// Cargar devuelve ok=false si no hay credenciales guardadas.
	Cargar() (cred entity.Credenciales, ok bool, err error)
	Guardar(cred entity.Credenciales) error
	// Borrar no falla si no había nada guardado.
	Borrar() error
}
