package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ssamucr/chenchen/internal/errors"
	"github.com/ssamucr/chenchen/internal/pagination"
	"github.com/ssamucr/chenchen/internal/services"
)

// PlanHandler handles biweekly plan requests.
type PlanHandler struct {
	planService services.PlanQuincenalServicer
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService services.PlanQuincenalServicer) *PlanHandler {
	return &PlanHandler{planService: planService}
}

type planListQuery struct {
	pagination.PageRequest
	Ejecutado *bool `form:"ejecutado"`
}

// MarcarEjecutadoRequest links the transaction generated by executing an item.
type MarcarEjecutadoRequest struct {
	TransaccionID uint `json:"transaccion_id" binding:"required"`
}

// CreateItem queues a plan item
// @Summary     Crear item del plan quincenal
// @Description Queue a plan item. The required references depend on the movement kind.
// @Tags        plan
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.PlanItemCreateInput true "Plan item details"
// @Success     201 {object} models.PlanQuincenal "Item queued"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Referenced entity not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /plan [post]
func (h *PlanHandler) CreateItem(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in services.PlanItemCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.planService.CreateItem(usuarioID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// GetUserItems lists a user's plan items
// @Summary     Listar items del plan
// @Description Get a paginated list of the user's plan items in execution order
// @Tags        plan
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int  false "Page number (default 1)"
// @Param       page_size query int  false "Items per page (default 20, max 100)"
// @Param       ejecutado query bool false "Filter by executed flag"
// @Success     200 {object} pagination.PageResponse[models.PlanQuincenal] "Paginated items"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /plan [get]
func (h *PlanHandler) GetUserItems(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q planListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.planService.GetUserItems(usuarioID, q.PageRequest, q.Ejecutado)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetResumen aggregates the state of the plan
// @Summary     Resumen del plan
// @Description Get counts and pending versus executed totals over the user's active plan items
// @Tags        plan
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.ResumenPlan "Plan summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /plan/resumen [get]
func (h *PlanHandler) GetResumen(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resumen, err := h.planService.GetResumen(usuarioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resumen": resumen})
}

// GetItemByID handles the retrieval of a specific plan item
// @Summary     Obtener item del plan
// @Description Get a specific plan item by ID
// @Tags        plan
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Item ID"
// @Success     200 {object} models.PlanQuincenal "Item details"
// @Failure     400 {object} ErrorResponse "Invalid item ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /plan/{id} [get]
func (h *PlanHandler) GetItemByID(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.planService.GetItemByID(usuarioID, itemID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// UpdateItem handles a partial update of a plan item
// @Summary     Actualizar item del plan
// @Description Update the descriptive fields of a plan item. The movement kind and its references are immutable.
// @Tags        plan
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Item ID"
// @Param       request body services.PlanItemUpdateInput true "Fields to update"
// @Success     200 {object} models.PlanQuincenal "Updated item"
// @Failure     400 {object} ErrorResponse "Invalid input or item ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /plan/{id} [patch]
func (h *PlanHandler) UpdateItem(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in services.PlanItemUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.planService.UpdateItem(usuarioID, itemID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// MarcarEjecutado marks a plan item as executed
// @Summary     Marcar item como ejecutado
// @Description Mark a plan item as executed, linking the transaction generated for it
// @Tags        plan
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Item ID"
// @Param       request body MarcarEjecutadoRequest true "Generated transaction"
// @Success     200 {object} models.PlanQuincenal "Executed item"
// @Failure     400 {object} ErrorResponse "Invalid input, item already executed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item or transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /plan/{id}/ejecutar [post]
func (h *PlanHandler) MarcarEjecutado(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MarcarEjecutadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.planService.MarcarEjecutado(usuarioID, itemID, req.TransaccionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteItem handles the deletion of a plan item
// @Summary     Eliminar item del plan
// @Description Delete a plan item
// @Tags        plan
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Item ID"
// @Success     204 "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid item ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /plan/{id} [delete]
func (h *PlanHandler) DeleteItem(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.planService.DeleteItem(usuarioID, itemID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
