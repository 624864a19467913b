package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ssamucr/chenchen/internal/errors"
	"github.com/ssamucr/chenchen/internal/pagination"
	"github.com/ssamucr/chenchen/internal/services"
)

// MovimientoSubcuentaHandler handles the sub-account ledger.
type MovimientoSubcuentaHandler struct {
	movimientoService services.MovimientoSubcuentaServicer
}

// NewMovimientoSubcuentaHandler creates a new MovimientoSubcuentaHandler.
func NewMovimientoSubcuentaHandler(movimientoService services.MovimientoSubcuentaServicer) *MovimientoSubcuentaHandler {
	return &MovimientoSubcuentaHandler{movimientoService: movimientoService}
}

// CreateMovimientoSubcuenta records a sub-account ledger entry
// @Summary     Registrar movimiento de subcuenta
// @Description Record a sub-account ledger entry and apply it to the balance. Transfers need a distinct destination sub-account.
// @Tags        subcuentas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.MovimientoSubcuentaInput true "Movement details"
// @Success     201 {object} models.MovimientoSubcuenta "Movement recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sub-account or transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /movimientos-subcuenta [post]
func (h *MovimientoSubcuentaHandler) CreateMovimientoSubcuenta(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in services.MovimientoSubcuentaInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	movimiento, err := h.movimientoService.CreateMovimientoSubcuenta(usuarioID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"movimiento": movimiento})
}

// GetSubcuentaMovimientos lists the ledger of one sub-account
// @Summary     Listar movimientos de una subcuenta
// @Description Get a paginated list of a sub-account's ledger entries, incoming transfers included
// @Tags        subcuentas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int true  "Sub-account ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.MovimientoSubcuenta] "Paginated movements"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sub-account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subcuentas/{id}/movimientos [get]
func (h *MovimientoSubcuentaHandler) GetSubcuentaMovimientos(c *gin.Context) {
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

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.movimientoService.GetSubcuentaMovimientos(usuarioID, subcuentaID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMovimientoSubcuentaByID retrieves a single sub-account ledger entry
// @Summary     Obtener movimiento de subcuenta
// @Description Get a specific sub-account ledger entry by ID
// @Tags        subcuentas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Movement ID"
// @Success     200 {object} models.MovimientoSubcuenta "Movement details"
// @Failure     400 {object} ErrorResponse "Invalid movement ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Movement not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /movimientos-subcuenta/{id} [get]
func (h *MovimientoSubcuentaHandler) GetMovimientoSubcuentaByID(c *gin.Context) {
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

	movimiento, err := h.movimientoService.GetMovimientoSubcuentaByID(usuarioID, movimientoID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"movimiento": movimiento})
}
