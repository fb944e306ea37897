package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
)

// LoginCmd verifica las credenciales y las guarda en la ranura local.
type LoginCmd struct {
	Usuario  string `arg:"" help:"Usuario administrador"`
	Password string `help:"Contraseña (si se omite se pide por la entrada estándar)" env:"CONSOLA_PASSWORD"`
}

func (l *LoginCmd) Run(ctx context.Context, app *App) error {
	pw := l.Password
	if pw == "" {
		var err error
		if pw, err = app.leerLinea("Contraseña: "); err != nil {
			return err
		}
	}
	c, err := app.Sesion.Iniciar(ctx, entity.Credenciales{Usuario: strings.TrimSpace(l.Usuario), Password: pw})
	if err != nil {
		return err
	}
	app.printf("Sesión iniciada como %s\n", c.Admin.Usuario)
	if msg := c.Evaluador.MensajeRol(); msg != "" {
		app.printf("%s\n", msg)
	}
	return nil
}

// LogoutCmd borra las credenciales guardadas.
type LogoutCmd struct{}

func (l *LogoutCmd) Run(app *App) error {
	if err := app.Sesion.Cerrar(); err != nil {
		return err
	}
	app.printf("Sesión cerrada\n")
	return nil
}

// PerfilCmd muestra el administrador autenticado.
type PerfilCmd struct{}

func (p *PerfilCmd) Run(ctx context.Context, app *App) error {
	pr, err := app.principal(ctx)
	if err != nil {
		return err
	}
	imprimirSesion(app, auth.RespuestaSesion(pr))
	return nil
}

func imprimirSesion(app *App, s dto.SesionResponse) {
	w := tabwriter.NewWriter(app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Usuario:\t%s\n", s.Admin.Usuario)
	fmt.Fprintf(w, "ID:\t%d\n", s.Admin.ID)
	rol := s.Rol
	if rol == "" {
		rol = "(sin rol)"
	}
	fmt.Fprintf(w, "Rol:\t%s\n", rol)
	if s.MensajeRol != "" {
		fmt.Fprintf(w, "Aviso:\t%s\n", s.MensajeRol)
	}
	caps := strings.Join(s.Capacidades, ", ")
	if caps == "" {
		caps = "ninguna"
	}
	fmt.Fprintf(w, "Capacidades:\t%s\n", caps)
	w.Flush()
}

// PasswordCmd cambia la contraseña y actualiza la copia guardada.
type PasswordCmd struct {
	Actual string `help:"Contraseña actual" env:"CONSOLA_PASSWORD"`
	Nueva  string `help:"Contraseña nueva (mínimo 6 caracteres)"`
}

func (p *PasswordCmd) Run(ctx context.Context, app *App) error {
	if _, err := app.principal(ctx); err != nil {
		return err
	}
	actual, nueva := p.Actual, p.Nueva
	var err error
	if actual == "" {
		if actual, err = app.leerLinea("Contraseña actual: "); err != nil {
			return err
		}
	}
	if nueva == "" {
		if nueva, err = app.leerLinea("Contraseña nueva: "); err != nil {
			return err
		}
	}
	if err := app.Sesion.CambiarPassword(ctx, dto.CambiarPasswordRequest{PasswordActual: actual, PasswordNuevo: nueva}); err != nil {
		return err
	}
	app.printf("Contraseña actualizada exitosamente\n")
	return nil
}

// rutaSalida devuelve nombre si no se pidió otra ruta.
func rutaSalida(salida, nombre string) string {
	if salida != "" {
		return salida
	}
	return nombre
}

func escribirArchivo(ruta string, datos []byte) error {
	return os.WriteFile(ruta, datos, 0o644)
}
