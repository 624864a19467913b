package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ssamucr/chenchen/internal/errors"
	"github.com/ssamucr/chenchen/internal/pagination"
	"github.com/ssamucr/chenchen/internal/services"
)

// CategoriaHandler handles category requests. Categories are shared across
// users, so no ownership scoping applies.
type CategoriaHandler struct {
	categoriaService services.CategoriaServicer
}

// NewCategoriaHandler creates a new CategoriaHandler.
func NewCategoriaHandler(categoriaService services.CategoriaServicer) *CategoriaHandler {
	return &CategoriaHandler{categoriaService: categoriaService}
}

type categoriaListQuery struct {
	pagination.PageRequest
	Tipo *string `form:"tipo"`
}

// CreateCategoria handles the creation of a new category
// @Summary     Crear una categoría
// @Description Create a new transaction category, optionally as a subcategory of an existing one
// @Tags        categorias
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.CategoriaCreateInput true "Category details"
// @Success     201 {object} models.Categoria "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Parent category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categorias [post]
func (h *CategoriaHandler) CreateCategoria(c *gin.Context) {
	var in services.CategoriaCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	categoria, err := h.categoriaService.CreateCategoria(in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"categoria": categoria})
}

// GetCategorias lists categories
// @Summary     Listar categorías
// @Description Get a paginated list of categories, optionally filtered by transaction type
// @Tags        categorias
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       tipo      query string false "Filter by transaction type"
// @Success     200 {object} pagination.PageResponse[models.Categoria] "Paginated categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categorias [get]
func (h *CategoriaHandler) GetCategorias(c *gin.Context) {
	var q categoriaListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.categoriaService.GetCategorias(q.PageRequest, q.Tipo)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCategoriaByID handles the retrieval of a specific category
// @Summary     Obtener categoría
// @Description Get a specific category by ID
// @Tags        categorias
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Category ID"
// @Success     200 {object} models.Categoria "Category details"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categorias/{id} [get]
func (h *CategoriaHandler) GetCategoriaByID(c *gin.Context) {
	categoriaID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoria, err := h.categoriaService.GetCategoriaByID(categoriaID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categoria": categoria})
}

// UpdateCategoria handles a partial update of a category
// @Summary     Actualizar categoría
// @Description Partially update a category, keeping the subcategory flag and parent reference in agreement
// @Tags        categorias
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Category ID"
// @Param       request body services.CategoriaUpdateInput true "Fields to update"
// @Success     200 {object} models.Categoria "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input or category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categorias/{id} [patch]
func (h *CategoriaHandler) UpdateCategoria(c *gin.Context) {
	categoriaID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in services.CategoriaUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	categoria, err := h.categoriaService.UpdateCategoria(categoriaID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categoria": categoria})
}

// DeleteCategoria handles the deletion of a category
// @Summary     Eliminar categoría
// @Description Delete a category. Transactions keep their history with the category reference cleared, and child categories are detached.
// @Tags        categorias
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Category ID"
// @Success     204 "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categorias/{id} [delete]
func (h *CategoriaHandler) DeleteCategoria(c *gin.Context) {
	categoriaID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoriaService.DeleteCategoria(categoriaID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
