package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/application/ports"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/entity"
	"github.com/jhoicas/consola-admin/internal/domain/permisos"
)

// AuthUseCase casos de uso de autenticación: login, perfil y cambio de contraseña.
// Las contraseñas nunca se procesan aquí; se reenvían tal cual al backend.
type AuthUseCase struct {
	backend ports.AuthBackend
	log     zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(backend ports.AuthBackend, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{backend: backend, log: log.With().Str("component", "auth").Logger()}
}

// Login verifica las credenciales y luego obtiene el perfil con el rol embebido.
// Credenciales incorrectas → domain.ErrCredencialesInvalidas.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*Principal, error) {
	cred := entity.Credenciales{Usuario: strings.TrimSpace(in.Usuario), Password: in.Password}
	if !cred.Completas() {
		return nil, fmt.Errorf("%w: usuario y contraseña son obligatorios", domain.ErrInvalidInput)
	}
	if _, err := uc.backend.VerificarCredenciales(ctx, cred); err != nil {
		uc.log.Info().Str("usuario", cred.Usuario).Err(err).Msg("login rechazado")
		return nil, err
	}
	p, err := uc.Perfil(ctx, cred)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("admin_id", p.Admin.ID).Str("rol", p.Evaluador.NombreRol()).Msg("login correcto")
	return p, nil
}

// Perfil vuelve a obtener el principal a partir de credenciales ya guardadas o
// recibidas en cabeceras.
func (uc *AuthUseCase) Perfil(ctx context.Context, cred entity.Credenciales) (*Principal, error) {
	if !cred.Completas() {
		return nil, domain.ErrSinCredenciales
	}
	admin, err := uc.backend.ObtenerPerfil(ctx, cred)
	if err != nil {
		return nil, err
	}
	return NuevoPrincipal(admin, cred), nil
}

// CambiarPassword cambia la contraseña del principal. Un 401/403 aquí significa
// contraseña actual incorrecta, no sesión expirada.
func (uc *AuthUseCase) CambiarPassword(ctx context.Context, p *Principal, in dto.CambiarPasswordRequest) error {
	if p == nil {
		return domain.ErrSinCredenciales
	}
	if in.PasswordActual == "" || in.PasswordNuevo == "" {
		return fmt.Errorf("%w: la contraseña actual y la nueva son obligatorias", domain.ErrInvalidInput)
	}
	if len(in.PasswordNuevo) < 6 {
		return fmt.Errorf("%w: la nueva contraseña debe tener al menos 6 caracteres", domain.ErrInvalidInput)
	}
	if in.PasswordNuevo == in.PasswordActual {
		return fmt.Errorf("%w: la nueva contraseña debe ser distinta de la actual", domain.ErrInvalidInput)
	}
	return uc.backend.CambiarPassword(ctx, p.Credenciales, in.PasswordActual, in.PasswordNuevo)
}

// RespuestaSesion arma la vista pública del principal (sin contraseña).
func RespuestaSesion(p *Principal) dto.SesionResponse {
	if p == nil {
		ev := permisos.NuevoEvaluador(nil)
		return dto.SesionResponse{EstadoRol: string(ev.EstadoRol()), MensajeRol: ev.MensajeRol(), Capacidades: []string{}}
	}
	caps := p.Evaluador.Capacidades()
	tokens := make([]string, 0, len(caps))
	for _, c := range caps {
		tokens = append(tokens, string(c))
	}
	return dto.SesionResponse{
		Admin:           p.Admin,
		Rol:             p.Evaluador.NombreRol(),
		EstadoRol:       string(p.Evaluador.EstadoRol()),
		MensajeRol:      p.Evaluador.MensajeRol(),
		EsAdministrador: p.Evaluador.EsAdministrador(),
		Capacidades:     tokens,
	}
}
