package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ssamucr/chenchen/internal/errors"
	"github.com/ssamucr/chenchen/internal/pagination"
	"github.com/ssamucr/chenchen/internal/services"
)

// DeudaHandler handles debt requests and the debt ledger nested under it.
type DeudaHandler struct {
	deudaService      services.DeudaServicer
	movimientoService services.MovimientoDeudaServicer
}

// NewDeudaHandler creates a new DeudaHandler.
func NewDeudaHandler(deudaService services.DeudaServicer, movimientoService services.MovimientoDeudaServicer) *DeudaHandler {
	return &DeudaHandler{deudaService: deudaService, movimientoService: movimientoService}
}

type deudaListQuery struct {
	pagination.PageRequest
	Estado *string `form:"estado"`
	Tipo   *string `form:"tipo"`
}

// CreateDeuda handles the creation of a new debt
// @Summary     Registrar una deuda
// @Description Register a debt. Receivables (POR_COBRAR) carry a negative initial balance and name a debtor; payable kinds name a creditor.
// @Tags        deudas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.DeudaCreateInput true "Debt details"
// @Success     201 {object} models.Deuda "Debt registered"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Referenced account or sub-account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /deudas [post]
func (h *DeudaHandler) CreateDeuda(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in services.DeudaCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	deuda, err := h.deudaService.CreateDeuda(usuarioID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"deuda": deuda})
}

// GetUserDeudas lists a user's debts
// @Summary     Listar deudas
// @Description Get a paginated list of the user's debts with optional state and type filters
// @Tags        deudas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       estado    query string false "Filter by debt state"
// @Param       tipo      query string false "Filter by debt type"
// @Success     200 {object} pagination.PageResponse[models.Deuda] "Paginated debts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /deudas [get]
func (h *DeudaHandler) GetUserDeudas(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q deudaListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.deudaService.GetUserDeudas(usuarioID, q.PageRequest, services.DeudaFilter{
		Estado: q.Estado,
		Tipo:   q.Tipo,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDeudaByID handles the retrieval of a specific debt
// @Summary     Obtener deuda
// @Description Get a specific debt by ID for the authenticated user
// @Tags        deudas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Debt ID"
// @Success     200 {object} models.Deuda "Debt details"
// @Failure     400 {object} ErrorResponse "Invalid debt ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /deudas/{id} [get]
func (h *DeudaHandler) GetDeudaByID(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	deudaID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	deuda, err := h.deudaService.GetDeudaByID(usuarioID, deudaID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deuda": deuda})
}

// UpdateDeuda handles a partial update of a debt
// @Summary     Actualizar deuda
// @Description Update debt metadata. The debt type and balances are immutable; balances move only through movements.
// @Tags        deudas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Debt ID"
// @Param       request body services.DeudaUpdateInput true "Fields to update"
// @Success     200 {object} models.Deuda "Updated debt"
// @Failure     400 {object} ErrorResponse "Invalid input or debt ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /deudas/{id} [patch]
func (h *DeudaHandler) UpdateDeuda(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	deudaID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in services.DeudaUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	deuda, err := h.deudaService.UpdateDeuda(usuarioID, deudaID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deuda": deuda})
}

// DeleteDeuda handles the deletion of a debt
// @Summary     Eliminar deuda
// @Description Delete a debt. Blocked while movements or plan items reference it.
// @Tags        deudas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Debt ID"
// @Success     204 "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid debt ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     409 {object} ErrorResponse "Blocked by dependent records"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /deudas/{id} [delete]
func (h *DeudaHandler) DeleteDeuda(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	deudaID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.deudaService.DeleteDeuda(usuarioID, deudaID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateMovimientoDeuda records a debt ledger entry
// @Summary     Registrar movimiento de deuda
// @Description Record a debt ledger entry. Payments carry a capital and interest breakdown that must reconcile with the amount, and they advance the debt balance toward zero.
// @Tags        deudas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.MovimientoDeudaInput true "Movement details"
// @Success     201 {object} models.MovimientoDeuda "Movement recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt or transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /movimientos-deuda [post]
func (h *DeudaHandler) CreateMovimientoDeuda(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in services.MovimientoDeudaInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	movimiento, err := h.movimientoService.CreateMovimientoDeuda(usuarioID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"movimiento": movimiento})
}

// GetDeudaMovimientos lists the ledger of one debt
// @Summary     Listar movimientos de una deuda
// @Description Get a paginated list of a debt's ledger entries
// @Tags        deudas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int true  "Debt ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.MovimientoDeuda] "Paginated movements"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /deudas/{id}/movimientos [get]
func (h *DeudaHandler) GetDeudaMovimientos(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	deudaID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.movimientoService.GetDeudaMovimientos(usuarioID, deudaID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMovimientoDeudaByID retrieves a single debt ledger entry
// @Summary     Obtener movimiento de deuda
// @Description Get a specific debt ledger entry by ID
// @Tags        deudas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Movement ID"
// @Success     200 {object} models.MovimientoDeuda "Movement details"
// @Failure     400 {object} ErrorResponse "Invalid movement ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Movement not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /movimientos-deuda/{id} [get]
func (h *DeudaHandler) GetMovimientoDeudaByID(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	movimientoID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	movimiento, err := h.movimientoService.GetMovimientoDeudaByID(usuarioID, movimientoID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"movimiento": movimiento})
}
