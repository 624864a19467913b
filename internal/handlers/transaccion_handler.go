package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ssamucr/chenchen/internal/errors"
	"github.com/ssamucr/chenchen/internal/pagination"
	"github.com/ssamucr/chenchen/internal/services"
)

// TransaccionHandler handles transaction requests.
type TransaccionHandler struct {
	transaccionService services.TransaccionServicer
}

// NewTransaccionHandler creates a new TransaccionHandler.
func NewTransaccionHandler(transaccionService services.TransaccionServicer) *TransaccionHandler {
	return &TransaccionHandler{transaccionService: transaccionService}
}

type transaccionListQuery struct {
	pagination.PageRequest
	FechaDesde  *string `form:"fecha_desde"`
	FechaHasta  *string `form:"fecha_hasta"`
	Tipo        *string `form:"tipo"`
	CuentaID    *uint   `form:"cuenta_id"`
	CategoriaID *uint   `form:"categoria_id"`
}

// parseQueryDate accepts RFC3339 or a bare date.
func parseQueryDate(raw string) (*time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, err
		}
	}
	return &parsed, nil
}

// CreateTransaccion handles the creation of a new transaction
// @Summary     Registrar una transacción
// @Description Record a transaction. Transfers require distinct source and destination accounts.
// @Tags        transacciones
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.TransaccionCreateInput true "Transaction details"
// @Success     201 {object} models.Transaccion "Transaction recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Referenced entity not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transacciones [post]
func (h *TransaccionHandler) CreateTransaccion(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in services.TransaccionCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaccion, err := h.transaccionService.CreateTransaccion(usuarioID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaccion": transaccion})
}

// GetUserTransacciones lists a user's transactions
// @Summary     Listar transacciones
// @Description Get a paginated list of the user's transactions, newest first, with optional filters
// @Tags        transacciones
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Param       fecha_desde query string false "Lower date bound (YYYY-MM-DD)"
// @Param       fecha_hasta query string false "Upper date bound (YYYY-MM-DD)"
// @Param       tipo        query string false "Filter by transaction type"
// @Param       cuenta_id   query int    false "Filter by account (source or destination)"
// @Param       categoria_id query int   false "Filter by category"
// @Success     200 {object} pagination.PageResponse[models.Transaccion] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid filters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transacciones [get]
func (h *TransaccionHandler) GetUserTransacciones(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q transaccionListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.TransaccionFilter{
		Tipo:        q.Tipo,
		CuentaID:    q.CuentaID,
		CategoriaID: q.CategoriaID,
	}
	if q.FechaDesde != nil && *q.FechaDesde != "" {
		desde, err := parseQueryDate(*q.FechaDesde)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "formato de fecha_desde inválido"))
			return
		}
		filter.FechaDesde = desde
	}
	if q.FechaHasta != nil && *q.FechaHasta != "" {
		hasta, err := parseQueryDate(*q.FechaHasta)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "formato de fecha_hasta inválido"))
			return
		}
		filter.FechaHasta = hasta
	}

	result, err := h.transaccionService.GetUserTransacciones(usuarioID, q.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransaccionByID handles the retrieval of a specific transaction
// @Summary     Obtener transacción
// @Description Get a specific transaction by ID for the authenticated user
// @Tags        transacciones
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaccion "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transacciones/{id} [get]
func (h *TransaccionHandler) GetTransaccionByID(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaccionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaccion, err := h.transaccionService.GetTransaccionByID(usuarioID, transaccionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaccion": transaccion})
}

// UpdateTransaccion handles a partial update of a transaction
// @Summary     Actualizar transacción
// @Description Update the descriptive fields of a transaction. Amounts and accounts are immutable; correcting those means deleting and re-recording.
// @Tags        transacciones
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Param       request body services.TransaccionUpdateInput true "Fields to update"
// @Success     200 {object} models.Transaccion "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input or transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transacciones/{id} [patch]
func (h *TransaccionHandler) UpdateTransaccion(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaccionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in services.TransaccionUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaccion, err := h.transaccionService.UpdateTransaccion(usuarioID, transaccionID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaccion": transaccion})
}

// DeleteTransaccion handles the deletion of a transaction
// @Summary     Eliminar transacción
// @Description Delete a transaction. Blocked while ledger movements reference it.
// @Tags        transacciones
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     204 "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     409 {object} ErrorResponse "Blocked by dependent records"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transacciones/{id} [delete]
func (h *TransaccionHandler) DeleteTransaccion(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaccionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transaccionService.DeleteTransaccion(usuarioID, transaccionID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
