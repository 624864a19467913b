package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ssamucr/chenchen/internal/errors"
	"github.com/ssamucr/chenchen/internal/pagination"
	"github.com/ssamucr/chenchen/internal/services"
)

// CuentaHandler handles account-related requests.
type CuentaHandler struct {
	cuentaService services.CuentaServicer
}

// NewCuentaHandler creates a new CuentaHandler.
func NewCuentaHandler(cuentaService services.CuentaServicer) *CuentaHandler {
	return &CuentaHandler{cuentaService: cuentaService}
}

// cuentaListQuery holds the optional list filters alongside pagination.
type cuentaListQuery struct {
	pagination.PageRequest
	Activa *bool   `form:"activa"`
	Tipo   *string `form:"tipo"`
}

// CreateCuenta handles the creation of a new account
// @Summary     Crear una cuenta
// @Description Create a new account for the authenticated user. A positive initial balance also records an adjustment transaction.
// @Tags        cuentas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.CuentaCreateInput true "Account details"
// @Success     201 {object} models.Cuenta "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate account name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cuentas [post]
func (h *CuentaHandler) CreateCuenta(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in services.CuentaCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cuenta, err := h.cuentaService.CreateCuenta(usuarioID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cuenta": cuenta})
}

// GetUserCuentas handles the retrieval of accounts for a user
// @Summary     Listar cuentas
// @Description Get a paginated list of accounts for the authenticated user
// @Tags        cuentas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       activa    query bool   false "Filter by active flag"
// @Param       tipo      query string false "Filter by account type"
// @Success     200 {object} pagination.PageResponse[models.Cuenta] "Paginated accounts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cuentas [get]
func (h *CuentaHandler) GetUserCuentas(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q cuentaListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.cuentaService.GetUserCuentas(usuarioID, q.PageRequest, services.CuentaFilter{
		Activa: q.Activa,
		Tipo:   q.Tipo,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetResumen handles the aggregate balance summary
// @Summary     Resumen de cuentas
// @Description Get the user's total balance and a per-type breakdown over active accounts
// @Tags        cuentas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.ResumenCuentas "Balance summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cuentas/resumen [get]
func (h *CuentaHandler) GetResumen(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resumen, err := h.cuentaService.GetResumen(usuarioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resumen": resumen})
}

// GetCuentaByID handles the retrieval of a specific account
// @Summary     Obtener cuenta
// @Description Get a specific account by ID for the authenticated user
// @Tags        cuentas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Success     200 {object} models.Cuenta "Account details"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cuentas/{id} [get]
func (h *CuentaHandler) GetCuentaByID(c *gin.Context) {
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

	cuenta, err := h.cuentaService.GetCuentaByID(usuarioID, cuentaID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cuenta": cuenta})
}

// UpdateCuenta handles a partial update of an account
// @Summary     Actualizar cuenta
// @Description Partially update an account. Balances are not updatable through this endpoint.
// @Tags        cuentas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Param       request body services.CuentaUpdateInput true "Fields to update"
// @Success     200 {object} models.Cuenta "Updated account"
// @Failure     400 {object} ErrorResponse "Invalid input or account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cuentas/{id} [patch]
func (h *CuentaHandler) UpdateCuenta(c *gin.Context) {
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

	var in services.CuentaUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cuenta, err := h.cuentaService.UpdateCuenta(usuarioID, cuentaID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cuenta": cuenta})
}

// DeleteCuenta handles the deletion of an account
// @Summary     Eliminar cuenta
// @Description Delete an account. Sub-accounts are removed with it; the delete is blocked while transactions or plan items reference the account.
// @Tags        cuentas
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Success     204 "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     409 {object} ErrorResponse "Blocked by dependent records"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cuentas/{id} [delete]
func (h *CuentaHandler) DeleteCuenta(c *gin.Context) {
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

	if err := h.cuentaService.DeleteCuenta(usuarioID, cuentaID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
