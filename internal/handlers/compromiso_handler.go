package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ssamucr/chenchen/internal/errors"
	"github.com/ssamucr/chenchen/internal/pagination"
	"github.com/ssamucr/chenchen/internal/services"
)

// CompromisoHandler handles recurring commitment requests.
type CompromisoHandler struct {
	compromisoService services.CompromisoServicer
}

// NewCompromisoHandler creates a new CompromisoHandler.
func NewCompromisoHandler(compromisoService services.CompromisoServicer) *CompromisoHandler {
	return &CompromisoHandler{compromisoService: compromisoService}
}

type compromisoListQuery struct {
	pagination.PageRequest
	Activo *bool `form:"activo"`
}

// CreateCompromiso handles the creation of a recurring commitment
// @Summary     Crear un compromiso recurrente
// @Description Create a recurring commitment. The end date, when set, must fall strictly after the start date.
// @Tags        compromisos
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.CompromisoCreateInput true "Commitment details"
// @Success     201 {object} models.CompromisoRecurrente "Commitment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Destination account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /compromisos [post]
func (h *CompromisoHandler) CreateCompromiso(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in services.CompromisoCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	compromiso, err := h.compromisoService.CreateCompromiso(usuarioID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"compromiso": compromiso})
}

// GetUserCompromisos lists a user's recurring commitments
// @Summary     Listar compromisos
// @Description Get a paginated list of the user's recurring commitments
// @Tags        compromisos
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int  false "Page number (default 1)"
// @Param       page_size query int  false "Items per page (default 20, max 100)"
// @Param       activo    query bool false "Filter by active flag"
// @Success     200 {object} pagination.PageResponse[models.CompromisoRecurrente] "Paginated commitments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /compromisos [get]
func (h *CompromisoHandler) GetUserCompromisos(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q compromisoListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.compromisoService.GetUserCompromisos(usuarioID, q.PageRequest, q.Activo)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCompromisoByID handles the retrieval of a specific commitment
// @Summary     Obtener compromiso
// @Description Get a specific recurring commitment by ID
// @Tags        compromisos
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Commitment ID"
// @Success     200 {object} models.CompromisoRecurrente "Commitment details"
// @Failure     400 {object} ErrorResponse "Invalid commitment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Commitment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /compromisos/{id} [get]
func (h *CompromisoHandler) GetCompromisoByID(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	compromisoID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	compromiso, err := h.compromisoService.GetCompromisoByID(usuarioID, compromisoID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"compromiso": compromiso})
}

// GetProximoEvento computes the next occurrence of a commitment
// @Summary     Próximo evento de un compromiso
// @Description Compute the next due date from the cadence, the start date and the last recorded event. Null when the commitment is inactive or past its end date.
// @Tags        compromisos
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Commitment ID"
// @Success     200 {object} map[string]interface{} "Next occurrence, possibly null"
// @Failure     400 {object} ErrorResponse "Invalid commitment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Commitment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /compromisos/{id}/proximo-evento [get]
func (h *CompromisoHandler) GetProximoEvento(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	compromisoID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	proximo, err := h.compromisoService.ProximoEvento(usuarioID, compromisoID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proximo_evento": proximo})
}

// UpdateCompromiso handles a partial update of a commitment
// @Summary     Actualizar compromiso
// @Description Partially update a recurring commitment, re-checking the date ordering on the merged result
// @Tags        compromisos
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Commitment ID"
// @Param       request body services.CompromisoUpdateInput true "Fields to update"
// @Success     200 {object} models.CompromisoRecurrente "Updated commitment"
// @Failure     400 {object} ErrorResponse "Invalid input or commitment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Commitment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /compromisos/{id} [patch]
func (h *CompromisoHandler) UpdateCompromiso(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	compromisoID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in services.CompromisoUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	compromiso, err := h.compromisoService.UpdateCompromiso(usuarioID, compromisoID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"compromiso": compromiso})
}

// DeleteCompromiso handles the deletion of a commitment
// @Summary     Eliminar compromiso
// @Description Delete a recurring commitment. Generated transactions keep their history with the commitment reference cleared.
// @Tags        compromisos
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Commitment ID"
// @Success     204 "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid commitment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Commitment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /compromisos/{id} [delete]
func (h *CompromisoHandler) DeleteCompromiso(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	compromisoID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.compromisoService.DeleteCompromiso(usuarioID, compromisoID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
