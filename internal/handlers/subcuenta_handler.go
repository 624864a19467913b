package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ssamucr/chenchen/internal/errors"
	"github.com/ssamucr/chenchen/internal/pagination"
	"github.com/ssamucr/chenchen/internal/services"
)

// SubcuentaHandler handles sub-account requests.
type SubcuentaHandler struct {
	subcuentaService services.SubcuentaServicer
}

// NewSubcuentaHandler creates a new SubcuentaHandler.
func NewSubcuentaHandler(subcuentaService services.SubcuentaServicer) *SubcuentaHandler {
	return &SubcuentaHandler{subcuentaService: subcuentaService}
}

// CreateSubcuenta handles the creation of a new sub-account
// @Summary     Crear una subcuenta
// @Description Create a sub-account under one of the user's accounts. A positive initial balance also records an adjustment transaction and an assignment movement.
// @Tags        subcuentas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.SubcuentaCreateInput true "Sub-account details"
// @Success     201 {object} models.Subcuenta "Sub-account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Parent account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subcuentas [post]
func (h *SubcuentaHandler) CreateSubcuenta(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in services.SubcuentaCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	subcuenta, err := h.subcuentaService.CreateSubcuenta(usuarioID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"subcuenta": subcuenta})
}

// GetCuentaSubcuentas lists the sub-accounts of one account
// @Summary     Listar subcuentas de una cuenta
// @Description Get a paginated list of a specific account's sub-accounts
// @Tags        subcuentas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int true  "Account ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Subcuenta] "Paginated sub-accounts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cuentas/{id}/subcuentas [get]
func (h *SubcuentaHandler) GetCuentaSubcuentas(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cuentaID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.subcuentaService.GetCuentaSubcuentas(usuarioID, cuentaID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSubcuentaByID handles the retrieval of a specific sub-account
// @Summary     Obtener subcuenta
// @Description Get a specific sub-account by ID for the authenticated user
// @Tags        subcuentas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Sub-account ID"
// @Success     200 {object} models.Subcuenta "Sub-account details"
// @Failure     400 {object} ErrorResponse "Invalid sub-account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sub-account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subcuentas/{id} [get]
func (h *SubcuentaHandler) GetSubcuentaByID(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	subcuentaID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	subcuenta, err := h.subcuentaService.GetSubcuentaByID(usuarioID, subcuentaID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subcuenta": subcuenta})
}

// UpdateSubcuenta handles a partial update of a sub-account
// @Summary     Actualizar subcuenta
// @Description Partially update a sub-account. Balances move only through movements.
// @Tags        subcuentas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Sub-account ID"
// @Param       request body services.SubcuentaUpdateInput true "Fields to update"
// @Success     200 {object} models.Subcuenta "Updated sub-account"
// @Failure     400 {object} ErrorResponse "Invalid input or sub-account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sub-account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subcuentas/{id} [patch]
func (h *SubcuentaHandler) UpdateSubcuenta(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	subcuentaID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in services.SubcuentaUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	subcuenta, err := h.subcuentaService.UpdateSubcuenta(usuarioID, subcuentaID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subcuenta": subcuenta})
}

// DeleteSubcuenta handles the deletion of a sub-account
// @Summary     Eliminar subcuenta
// @Description Delete a sub-account and its planned expenses. Blocked while movements reference it.
// @Tags        subcuentas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Sub-account ID"
// @Success     204 "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid sub-account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sub-account not found"
// @Failure     409 {object} ErrorResponse "Blocked by dependent records"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subcuentas/{id} [delete]
func (h *SubcuentaHandler) DeleteSubcuenta(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	subcuentaID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.subcuentaService.DeleteSubcuenta(usuarioID, subcuentaID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
