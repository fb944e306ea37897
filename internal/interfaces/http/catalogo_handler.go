package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-admin/internal/application/dto"
	"github.com/jhoicas/consola-admin/internal/application/usecase"
)

// CategoriaHandler categorías: lectura pública, mutaciones con permiso.
type CategoriaHandler struct {
	uc *usecase.CategoriaUseCase
}

// NewCategoriaHandler construye el handler.
func NewCategoriaHandler(uc *usecase.CategoriaUseCase) *CategoriaHandler {
	return &CategoriaHandler{uc: uc}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categorias
// @Produce      json
// @Param        search  query  string  false  "Texto a buscar"
// @Param        page    query  int     false  "Página"
// @Param        limit   query  int     false  "Límite"
// @Success      200     {object}  dto.CategoriaListResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Router       /api/categorias [get]
func (h *CategoriaHandler) List(c *fiber.Ctx) error {
	var f dto.CategoriaFiltros
	if err := c.QueryParser(&f); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Listar(c.UserContext(), f)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría
// @Tags         categorias
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {object}  entity.Categoria
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categorias/{id} [get]
func (h *CategoriaHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	out, err := h.uc.Obtener(c.UserContext(), id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categorias
// @Security     AdminUser
// @Security     AdminPassword
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoriaRequest  true  "Datos de la categoría"
// @Success      201   {object}  entity.Categoria
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/categorias [post]
func (h *CategoriaHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Crear(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         categorias
// @Security     AdminUser
// @Security     AdminPassword
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "ID de la categoría"
// @Param        body  body  dto.CategoriaRequest  true  "Datos de la categoría"
// @Success      200   {object}  entity.Categoria
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categorias/{id} [put]
func (h *CategoriaHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	var in dto.CategoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Actualizar(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría
// @Tags         categorias
// @Security     AdminUser
// @Security     AdminPassword
// @Param        id   path  int  true  "ID de la categoría"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categorias/{id} [delete]
func (h *CategoriaHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	if err := h.uc.Eliminar(c.UserContext(), GetPrincipal(c), id); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ProductoHandler productos: lectura y verificación de stock públicas, mutaciones con permiso.
type ProductoHandler struct {
	uc *usecase.ProductoUseCase
}

// NewProductoHandler construye el handler.
func NewProductoHandler(uc *usecase.ProductoUseCase) *ProductoHandler {
	return &ProductoHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos
// @Tags         productos
// @Produce      json
// @Param        page        query  int     false  "Página"
// @Param        limit       query  int     false  "Límite"
// @Param        categoria   query  int     false  "ID de categoría"
// @Param        disponible  query  bool    false  "Solo disponibles"
// @Param        search      query  string  false  "Texto a buscar"
// @Success      200         {object}  dto.ProductoListResponse
// @Router       /api/productos [get]
func (h *ProductoHandler) List(c *fiber.Ctx) error {
	var f dto.ProductoFiltros
	if err := c.QueryParser(&f); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Listar(c.UserContext(), f)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar productos
// @Tags         productos
// @Produce      json
// @Param        q    query  string  true  "Texto a buscar"
// @Success      200  {array}   entity.Producto
// @Router       /api/productos/search [get]
func (h *ProductoHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Buscar(c.UserContext(), c.Query("q"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// CheckStock godoc
// @Summary      Verificar stock
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.StockCheckItem  true  "Productos y cantidades"
// @Success      200   {object}  dto.StockCheckResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/productos/check-stock [post]
func (h *ProductoHandler) CheckStock(c *fiber.Ctx) error {
	var in struct {
		Productos []dto.StockCheckItem `json:"productos"`
	}
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.VerificarStock(c.UserContext(), in.Productos)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         productos
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  entity.Producto
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductoHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	out, err := h.uc.Obtener(c.UserContext(), id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         productos
// @Security     AdminUser
// @Security     AdminPassword
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductoRequest  true  "Datos del producto"
// @Success      201   {object}  entity.Producto
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductoHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Crear(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         productos
// @Security     AdminUser
// @Security     AdminPassword
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID del producto"
// @Param        body  body  dto.ProductoRequest  true  "Datos del producto"
// @Success      200   {object}  entity.Producto
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [put]
func (h *ProductoHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	var in dto.ProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Actualizar(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// UpdateStock godoc
// @Summary      Actualizar stock
// @Tags         productos
// @Security     AdminUser
// @Security     AdminPassword
// @Accept       json
// @Produce      json
// @Param        id    path  int               true  "ID del producto"
// @Param        body  body  dto.StockRequest  true  "Nuevo stock"
// @Success      200   {object}  entity.Producto
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/stock [patch]
func (h *ProductoHandler) UpdateStock(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	var in dto.StockRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.ActualizarStock(c.UserContext(), GetPrincipal(c), id, in.Stock)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         productos
// @Security     AdminUser
// @Security     AdminPassword
// @Param        id   path  int  true  "ID del producto"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [delete]
func (h *ProductoHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return idInvalido(c)
	}
	if err := h.uc.Eliminar(c.UserContext(), GetPrincipal(c), id); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadHandler subida de imágenes de producto.
type UploadHandler struct {
	uc *usecase.UploadUseCase
}

// NewUploadHandler construye el handler.
func NewUploadHandler(uc *usecase.UploadUseCase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// Image godoc
// @Summary      Subir imagen
// @Tags         uploads
// @Security     AdminUser
// @Security     AdminPassword
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Imagen (jpeg, png, webp o gif; máx. 5 MB)"
// @Success      201    {object}  dto.ImagenSubida
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Router       /api/uploads/image [post]
func (h *UploadHandler) Image(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodigoValidacion, Message: "campo image requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return cuerpoInvalido(c)
	}
	defer f.Close()

	out, err := h.uc.SubirImagen(c.UserContext(), GetPrincipal(c), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
