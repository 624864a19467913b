package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ssamucr/chenchen/internal/errors"
	"github.com/ssamucr/chenchen/internal/pagination"
	"github.com/ssamucr/chenchen/internal/services"
)

// GastoHandler handles planned expense requests.
type GastoHandler struct {
	gastoService services.GastoPlanificadoServicer
}

// NewGastoHandler creates a new GastoHandler.
func NewGastoHandler(gastoService services.GastoPlanificadoServicer) *GastoHandler {
	return &GastoHandler{gastoService: gastoService}
}

type gastoListQuery struct {
	pagination.PageRequest
	Estado *string `form:"estado"`
}

// CreateGasto registers a planned expense
// @Summary     Crear gasto planificado
// @Description Register a planned expense against one of the user's sub-accounts
// @Tags        gastos
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.GastoCreateInput true "Planned expense details"
// @Success     201 {object} models.GastoPlanificado "Planned expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sub-account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /gastos-planificados [post]
func (h *GastoHandler) CreateGasto(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in services.GastoCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	gasto, err := h.gastoService.CreateGasto(usuarioID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"gasto": gasto})
}

// GetSubcuentaGastos lists the planned expenses of one sub-account
// @Summary     Listar gastos de una subcuenta
// @Description Get a paginated list of a sub-account's planned expenses with an optional state filter
// @Tags        gastos
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int    true  "Sub-account ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       estado    query string false "Filter by state"
// @Success     200 {object} pagination.PageResponse[models.GastoPlanificado] "Paginated planned expenses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sub-account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subcuentas/{id}/gastos-planificados [get]
func (h *GastoHandler) GetSubcuentaGastos(c *gin.Context) {
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

	var q gastoListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.gastoService.GetSubcuentaGastos(usuarioID, subcuentaID, q.PageRequest, q.Estado)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGastoByID handles the retrieval of a specific planned expense
// @Summary     Obtener gasto planificado
// @Description Get a specific planned expense by ID
// @Tags        gastos
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Planned expense ID"
// @Success     200 {object} models.GastoPlanificado "Planned expense details"
// @Failure     400 {object} ErrorResponse "Invalid planned expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Planned expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /gastos-planificados/{id} [get]
func (h *GastoHandler) GetGastoByID(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	gastoID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	gasto, err := h.gastoService.GetGastoByID(usuarioID, gastoID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"gasto": gasto})
}

// GetProgreso reports the advance of a planned expense
// @Summary     Progreso de un gasto planificado
// @Description Get the spent percentage, remaining amount and days until the target date
// @Tags        gastos
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Planned expense ID"
// @Success     200 {object} services.ProgresoGasto "Progress report"
// @Failure     400 {object} ErrorResponse "Invalid planned expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Planned expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /gastos-planificados/{id}/progreso [get]
func (h *GastoHandler) GetProgreso(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	gastoID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	progreso, err := h.gastoService.GetProgreso(usuarioID, gastoID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progreso": progreso})
}

// UpdateGasto handles a partial update of a planned expense
// @Summary     Actualizar gasto planificado
// @Description Partially update a planned expense, re-checking the amount and state rules on the merged result
// @Tags        gastos
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Planned expense ID"
// @Param       request body services.GastoUpdateInput true "Fields to update"
// @Success     200 {object} models.GastoPlanificado "Updated planned expense"
// @Failure     400 {object} ErrorResponse "Invalid input or planned expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Planned expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /gastos-planificados/{id} [patch]
func (h *GastoHandler) UpdateGasto(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	gastoID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in services.GastoUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	gasto, err := h.gastoService.UpdateGasto(usuarioID, gastoID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"gasto": gasto})
}

// DeleteGasto handles the deletion of a planned expense
// @Summary     Eliminar gasto planificado
// @Description Delete a planned expense
// @Tags        gastos
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Planned expense ID"
// @Success     204 "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid planned expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Planned expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /gastos-planificados/{id} [delete]
func (h *GastoHandler) DeleteGasto(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	gastoID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.gastoService.DeleteGasto(usuarioID, gastoID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
