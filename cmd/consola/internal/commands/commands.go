package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/consola-admin/internal/application/analytics"
	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/bitacora"
	"github.com/jhoicas/consola-admin/internal/application/ordenes"
	"github.com/jhoicas/consola-admin/internal/application/ports"
	"github.com/jhoicas/consola-admin/internal/application/preferencias"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/infrastructure/backend"
	"github.com/jhoicas/consola-admin/internal/infrastructure/credenciales"
	infrapdf "github.com/jhoicas/consola-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/consola-admin/pkg/config"
)

// App dependencias compartidas por los comandos.
type App struct {
	Sesion    *auth.Sesion
	Ordenes   *ordenes.OrdenesUseCase
	Dashboard *appanalytics.DashboardUseCase

	in  *bufio.Reader
	out io.Writer
}

// NewApp arma el cliente, la ranura de credenciales y los casos de uso.
func NewApp(cfg *config.Config, log zerolog.Logger, in io.Reader, out io.Writer) (*App, error) {
	almacen, err := credenciales.NewAlmacen(cfg.App.Dir)
	if err != nil {
		return nil, err
	}
	client := backend.NewClient(backend.Config{
		BaseURL:  cfg.Backend.URL,
		Timeout:  cfg.Backend.Timeout(),
		CacheDir: cfg.Backend.CacheDir,
	}, log)
	app := Ensamblar(client, almacen, infrapdf.NewComprobanteOrden(cfg.App.Tienda), log, in, out)
	// cualquier 401/403 de una llamada autenticada vacía la ranura
	client.AlInvalidarSesion(app.Sesion.Invalidar)
	return app, nil
}

// Ensamblar construye la App sobre un backend cualquiera. Sin base de datos la
// bitácora queda en los logs y el dashboard usa las preferencias por defecto.
func Ensamblar(b ports.Backend, almacen ports.AlmacenCredenciales, pdf ports.ComprobanteGenerator, log zerolog.Logger, in io.Reader, out io.Writer) *App {
	bit := bitacora.NewBitacoraUseCase(nil, log)
	prefs := preferencias.NewPreferenciasUseCase(nil, log)
	return &App{
		Sesion:    auth.NuevaSesion(auth.NewAuthUseCase(b, log), almacen, log),
		Ordenes:   ordenes.NewOrdenesUseCase(b, bit, pdf, log),
		Dashboard: appanalytics.NewDashboardUseCase(b, b, prefs, log),
		in:        bufio.NewReader(in),
		out:       out,
	}
}

// principal restaura la sesión guardada si hace falta.
func (a *App) principal(ctx context.Context) (*auth.Principal, error) {
	if c := a.Sesion.Actual(); c.Autenticado() {
		return c.Principal(), nil
	}
	if err := a.Sesion.Restaurar(ctx); err != nil {
		return nil, err
	}
	if c := a.Sesion.Actual(); c.Autenticado() {
		return c.Principal(), nil
	}
	return nil, domain.ErrSinCredenciales
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// leerLinea lee una línea de la entrada sin el salto final.
func (a *App) leerLinea(prompt string) (string, error) {
	a.printf("%s", prompt)
	linea, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(linea), nil
}

// confirmar pide s/N; si ya se aceptó con --si no pregunta.
func (a *App) confirmar(si bool, pregunta string) (bool, error) {
	if si {
		return true, nil
	}
	r, err := a.leerLinea(pregunta + " [s/N]: ")
	if err != nil {
		return false, err
	}
	r = strings.ToLower(r)
	return r == "s" || r == "si" || r == "sí", nil
}

// Amigable reemplaza el error por el mensaje para el usuario.
func Amigable(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrSinCredenciales) {
		return errors.New("no hay sesión iniciada; ejecuta 'consola login <usuario>'")
	}
	return errors.New(domain.MensajeUsuario(err))
}
