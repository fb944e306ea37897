package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/consola-admin/internal/application/auth"
	"github.com/jhoicas/consola-admin/internal/application/bitacora"
	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/application/ports"
	"github.com/jhoicas/consola-admin/internal/domain"
	"github.com/jhoicas/consola-admin/internal/domain/permisos"
)

// TamanoMaximoImagen límite de subida (5 MB).
const TamanoMaximoImagen = 5 << 20

var tiposImagen = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// UploadUseCase reenvía imágenes de producto al backend.
type UploadUseCase struct {
	backend  ports.ProductosBackend
	bitacora *bitacora.BitacoraUseCase
}

// NewUploadUseCase construye el caso de uso.
func NewUploadUseCase(backend ports.ProductosBackend, bit *bitacora.BitacoraUseCase) *UploadUseCase {
	return &UploadUseCase{backend: backend, bitacora: bit}
}

// SubirImagen valida tipo y tamaño antes de reenviar. tamano es el declarado por
// el cliente; el contenido se lee completo (máximo 5 MB) antes de enviarlo.
func (uc *UploadUseCase) SubirImagen(ctx context.Context, p *auth.Principal, nombre, contentType string, tamano int64, r io.Reader) (img *dto.ImagenSubida, err error) {
	defer func() {
		uc.bitacora.Registrar(ctx, p, permisos.UploadsSubir, "imagen", nombre, "", err)
	}()
	if err := p.Exigir(permisos.UploadsSubir); err != nil {
		return nil, err
	}
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if !tiposImagen[contentType] {
		return nil, fmt.Errorf("%w: solo se permiten imágenes JPEG, PNG, WEBP o GIF", domain.ErrInvalidInput)
	}
	if tamano > TamanoMaximoImagen {
		return nil, fmt.Errorf("%w: la imagen supera el máximo de 5 MB", domain.ErrInvalidInput)
	}
	datos, err := io.ReadAll(io.LimitReader(r, TamanoMaximoImagen+1))
	if err != nil {
		return nil, fmt.Errorf("%w: no se pudo leer la imagen", domain.ErrInvalidInput)
	}
	if len(datos) > TamanoMaximoImagen {
		return nil, fmt.Errorf("%w: la imagen supera el máximo de 5 MB", domain.ErrInvalidInput)
	}
	if len(datos) == 0 {
		return nil, fmt.Errorf("%w: la imagen está vacía", domain.ErrInvalidInput)
	}
	return uc.backend.SubirImagen(ctx, p.Credenciales, nombre, contentType, bytes.NewReader(datos))
}
