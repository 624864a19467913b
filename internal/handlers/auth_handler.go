package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ssamucr/chenchen/internal/errors"
	"github.com/ssamucr/chenchen/internal/middleware"
	"github.com/ssamucr/chenchen/internal/services"
)

// AuthHandler handles registration, login and the authenticated profile.
type AuthHandler struct {
	usuarioService services.UsuarioServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(usuarioService services.UsuarioServicer) *AuthHandler {
	return &AuthHandler{usuarioService: usuarioService}
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response with token.
type AuthResponse struct {
	Token   string      `json:"token"`
	Usuario interface{} `json:"usuario"`
}

// Registro handles user registration
// @Summary     Registrar un nuevo usuario
// @Description Register a new user with email and password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body services.UsuarioCreateInput true "User registration data"
// @Success     201 {object} AuthResponse "User registered and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/registro [post]
func (h *AuthHandler) Registro(c *gin.Context) {
	var in services.UsuarioCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	usuario, err := h.usuarioService.CreateUsuario(in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(usuario)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "usuario": usuario})
}

// Login handles user login
// @Summary     Iniciar sesión
// @Description Authenticate a user and get a token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} AuthResponse "User authenticated and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	usuario, err := h.usuarioService.AttemptLogin(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(usuario)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "usuario": usuario})
}

// GetPerfil returns the authenticated user's profile
// @Summary     Obtener perfil
// @Description Get the authenticated user's profile information
// @Tags        usuarios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Usuario "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /perfil [get]
func (h *AuthHandler) GetPerfil(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	usuario, err := h.usuarioService.GetUsuarioByID(usuarioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"usuario": usuario})
}

// UpdatePerfil applies a partial update to the authenticated user's profile
// @Summary     Actualizar perfil
// @Description Partially update the authenticated user's profile
// @Tags        usuarios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.UsuarioUpdateInput true "Fields to update"
// @Success     200 {object} models.Usuario "Updated profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /perfil [patch]
func (h *AuthHandler) UpdatePerfil(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in services.UsuarioUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	usuario, err := h.usuarioService.UpdateUsuario(usuarioID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"usuario": usuario})
}

// DeletePerfil deletes the authenticated user's account
// @Summary     Eliminar cuenta de usuario
// @Description Delete the authenticated user and everything owned by them. Blocked while transactions exist.
// @Tags        usuarios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     204 "Deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Blocked by dependent records"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /perfil [delete]
func (h *AuthHandler) DeletePerfil(c *gin.Context) {
	usuarioID, err := getUsuarioID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.usuarioService.DeleteUsuario(usuarioID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
