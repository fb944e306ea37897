package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/jhoicas/consola-admin/cmd/consola/internal/commands"
	"github.com/jhoicas/consola-admin/pkg/config"
	"github.com/jhoicas/consola-admin/pkg/logger"
)

var (
	version = "dev"
	cli     struct {
		Login     commands.LoginCmd     `cmd:"" help:"Iniciar sesión y guardar las credenciales"`
		Logout    commands.LogoutCmd    `cmd:"" help:"Cerrar sesión y borrar las credenciales"`
		Perfil    commands.PerfilCmd    `cmd:"" help:"Mostrar el administrador y sus capacidades"`
		Password  commands.PasswordCmd  `cmd:"" help:"Cambiar la contraseña"`
		Ordenes   commands.OrdenesCmd   `cmd:"" help:"Consultar y gestionar órdenes"`
		Dashboard commands.DashboardCmd `cmd:"" help:"Resumen de ventas del período"`

		Backend string `help:"URL del backend (por defecto BACKEND_URL)" env:"CONSOLA_BACKEND"`
		Dir     string `help:"Directorio de credenciales (por defecto ~/.consola-admin)" type:"path"`
		Debug   bool   `help:"Logs de depuración en stderr."`
		Version kong.VersionFlag
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := kong.Parse(&cli,
		kong.Name("consola"),
		kong.Description("Consola de administración de la tienda."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))

	cfg, err := config.Load()
	cmd.FatalIfErrorf(err)
	if cli.Backend != "" {
		cfg.Backend.URL = cli.Backend
	}
	if cli.Dir != "" {
		cfg.App.Dir = cli.Dir
	}
	nivel := "warn"
	if cli.Debug {
		nivel = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: nivel, Out: os.Stderr})

	app, err := commands.NewApp(cfg, log.Zerolog(), os.Stdin, os.Stdout)
	cmd.FatalIfErrorf(err)

	err = cmd.Run(app)
	cmd.FatalIfErrorf(commands.Amigable(err))
}
