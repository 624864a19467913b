package services

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/ssamucr/chenchen/internal/errors"
	"github.com/ssamucr/chenchen/internal/models"
	"github.com/ssamucr/chenchen/internal/rules"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UsuarioCreateInput carries the fields accepted when registering a user.
type UsuarioCreateInput struct {
	Email           string  `json:"email" binding:"required"`
	Password        string  `json:"password" binding:"required"`
	Nombre          string  `json:"nombre" binding:"required"`
	Apellido        string  `json:"apellido" binding:"required"`
	MonedaPrincipal *string `json:"moneda_principal" binding:"omitempty,iso4217"`
	ZonaHoraria     *string `json:"zona_horaria"`
	Idioma          *string `json:"idioma"`
}

// UsuarioUpdateInput carries the fields accepted on partial update. Nil
// fields retain their prior value.
type UsuarioUpdateInput struct {
	Nombre          *string `json:"nombre"`
	Apellido        *string `json:"apellido"`
	MonedaPrincipal *string `json:"moneda_principal" binding:"omitempty,iso4217"`
	ZonaHoraria     *string `json:"zona_horaria"`
	Idioma          *string `json:"idioma"`
	Activo          *bool   `json:"activo"`
	EmailVerificado *bool   `json:"email_verificado"`
}

// usuarioService handles user-related business logic.
type usuarioService struct {
	db *gorm.DB
}

// NewUsuarioService creates a new UsuarioServicer.
func NewUsuarioService(db *gorm.DB) UsuarioServicer {
	return &usuarioService{db: db}
}

func validateUsuarioCreate(in *UsuarioCreateInput) *apperrors.ValidationError {
	verr := &apperrors.ValidationError{}
	if !emailRegex.MatchString(in.Email) {
		verr.Add("email", "debe ser una dirección de email válida")
	}
	if len(in.Password) < 8 {
		verr.Add("password", "debe tener al menos 8 caracteres")
	}
	verr.Add("nombre", rules.NonEmptyTrimmed(in.Nombre))
	verr.Add("apellido", rules.NonEmptyTrimmed(in.Apellido))
	if in.MonedaPrincipal != nil {
		verr.Add("moneda_principal", rules.ISOCurrencyCode(*in.MonedaPrincipal))
	}
	if in.Idioma != nil {
		verr.Add("idioma", rules.ISOLanguageCode(*in.Idioma))
	}
	return verr
}

// CreateUsuario registers a new user. The password is stored only as a
// bcrypt hash.
func (s *usuarioService) CreateUsuario(in UsuarioCreateInput) (*models.Usuario, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if verr := validateUsuarioCreate(&in); verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	var count int64
	if err := s.db.Model(&models.Usuario{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	usuario := &models.Usuario{
		Email:           in.Email,
		PasswordHash:    string(hashed),
		Nombre:          strings.TrimSpace(in.Nombre),
		Apellido:        strings.TrimSpace(in.Apellido),
		MonedaPrincipal: "USD",
		ZonaHoraria:     "UTC",
		Idioma:          "es",
		Activo:          true,
		EmailVerificado: false,
	}
	if in.MonedaPrincipal != nil {
		usuario.MonedaPrincipal = *in.MonedaPrincipal
	}
	if in.ZonaHoraria != nil {
		usuario.ZonaHoraria = *in.ZonaHoraria
	}
	if in.Idioma != nil {
		usuario.Idioma = *in.Idioma
	}

	if err := s.db.Create(usuario).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return usuario, nil
}

// GetUsuarioByID retrieves a user by ID
func (s *usuarioService) GetUsuarioByID(id uint) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := s.db.First(&usuario, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUsuarioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &usuario, nil
}

// GetUsuarioByEmail retrieves an active user by email
func (s *usuarioService) GetUsuarioByEmail(email string) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := s.db.Where("email = ? AND activo = ?", strings.ToLower(email), true).First(&usuario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUsuarioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &usuario, nil
}

// UpdateUsuario applies a partial update. Only supplied fields are
// validated and replaced.
func (s *usuarioService) UpdateUsuario(id uint, in UsuarioUpdateInput) (*models.Usuario, error) {
	usuario, err := s.GetUsuarioByID(id)
	if err != nil {
		return nil, err
	}

	verr := &apperrors.ValidationError{}
	if in.Nombre != nil {
		verr.Add("nombre", rules.NonEmptyTrimmed(*in.Nombre))
	}
	if in.Apellido != nil {
		verr.Add("apellido", rules.NonEmptyTrimmed(*in.Apellido))
	}
	if in.MonedaPrincipal != nil {
		verr.Add("moneda_principal", rules.ISOCurrencyCode(*in.MonedaPrincipal))
	}
	if in.Idioma != nil {
		verr.Add("idioma", rules.ISOLanguageCode(*in.Idioma))
	}
	if verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	updates := make(map[string]interface{})
	if in.Nombre != nil {
		updates["nombre"] = strings.TrimSpace(*in.Nombre)
	}
	if in.Apellido != nil {
		updates["apellido"] = strings.TrimSpace(*in.Apellido)
	}
	if in.MonedaPrincipal != nil {
		updates["moneda_principal"] = *in.MonedaPrincipal
	}
	if in.ZonaHoraria != nil {
		updates["zona_horaria"] = *in.ZonaHoraria
	}
	if in.Idioma != nil {
		updates["idioma"] = *in.Idioma
	}
	if in.Activo != nil {
		updates["activo"] = *in.Activo
	}
	if in.EmailVerificado != nil {
		updates["email_verificado"] = *in.EmailVerificado
	}

	if len(updates) > 0 {
		if err := s.db.Model(usuario).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return usuario, nil
}

// DeleteUsuario removes a user and everything the user owns, unless the
// user has transaction history.
func (s *usuarioService) DeleteUsuario(id uint) error {
	if _, err := s.GetUsuarioByID(id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteWithPolicy(tx, "usuarios", id)
	})
}

// AttemptLogin verifies the credentials and records the access time.
func (s *usuarioService) AttemptLogin(email, password string) (*models.Usuario, error) {
	usuario, err := s.GetUsuarioByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists.
		if errors.Is(err, error(apperrors.ErrUsuarioNotFound)) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.db.Model(usuario).Update("ultimo_acceso", now).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	usuario.UltimoAcceso = &now
	return usuario, nil
}
