package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/ssamucr/chenchen/internal/errors"
	"github.com/ssamucr/chenchen/internal/models"
	"github.com/ssamucr/chenchen/internal/pagination"
	"github.com/ssamucr/chenchen/internal/rules"
)

// CompromisoCreateInput carries the fields accepted when creating a
// recurring commitment.
type CompromisoCreateInput struct {
	Descripcion     string          `json:"descripcion" binding:"required"`
	Tipo            string          `json:"tipo" binding:"required"`
	Categoria       *string         `json:"categoria"`
	Monto           decimal.Decimal `json:"monto" binding:"required"`
	Frecuencia      string          `json:"frecuencia" binding:"required"`
	DiaPago         *int            `json:"dia_pago"`
	FechaInicio     time.Time       `json:"fecha_inicio" binding:"required"`
	FechaFin        *time.Time      `json:"fecha_fin"`
	CuentaDestinoID *uint           `json:"cuenta_destino_id"`
	AutoGenerar     *bool           `json:"auto_generar"`
	ColorHex        *string         `json:"color_hex" binding:"omitempty,hex_color"`
	Icono           *string         `json:"icono"`
	Notas           *string         `json:"notas"`
}

// CompromisoUpdateInput carries the fields accepted on partial update.
type CompromisoUpdateInput struct {
	Descripcion     *string          `json:"descripcion"`
	Categoria       *string          `json:"categoria"`
	Monto           *decimal.Decimal `json:"monto"`
	Frecuencia      *string          `json:"frecuencia"`
	DiaPago         *int             `json:"dia_pago"`
	FechaFin        *time.Time       `json:"fecha_fin"`
	UltimoEvento    *time.Time       `json:"ultimo_evento"`
	CuentaDestinoID *uint            `json:"cuenta_destino_id"`
	Activo          *bool            `json:"activo"`
	AutoGenerar     *bool            `json:"auto_generar"`
	ColorHex        *string          `json:"color_hex" binding:"omitempty,hex_color"`
	Icono           *string          `json:"icono"`
	Notas           *string          `json:"notas"`
}

// compromisoService handles recurring commitment business logic.
type compromisoService struct {
	db *gorm.DB
}

// NewCompromisoService creates a new CompromisoServicer.
func NewCompromisoService(db *gorm.DB) CompromisoServicer {
	return &compromisoService{db: db}
}

func validateCompromisoCreate(in *CompromisoCreateInput) *apperrors.ValidationError {
	verr := &apperrors.ValidationError{}
	verr.Add("descripcion", rules.NonEmptyTrimmed(in.Descripcion))
	verr.Add("tipo", rules.EnumMember(in.Tipo, models.TiposCompromiso))
	verr.Add("monto", rules.PositiveAmount(in.Monto))
	verr.Add("frecuencia", rules.EnumMember(in.Frecuencia, models.Frecuencias))
	if in.DiaPago != nil {
		verr.Add("dia_pago", rules.DayOfMonth(*in.DiaPago))
	}
	if in.ColorHex != nil {
		verr.Add("color_hex", rules.HexColor(*in.ColorHex))
	}
	if verr.HasErrors() {
		return verr
	}

	if in.FechaFin != nil && !in.FechaFin.After(in.FechaInicio) {
		verr.Add("fecha_fin", "debe ser posterior a la fecha de inicio")
	}
	return verr
}

// CreateCompromiso creates a recurring commitment template.
func (s *compromisoService) CreateCompromiso(usuarioID uint, in CompromisoCreateInput) (*models.CompromisoRecurrente, error) {
	in.Tipo = strings.ToUpper(strings.TrimSpace(in.Tipo))
	in.Frecuencia = strings.ToUpper(strings.TrimSpace(in.Frecuencia))
	if verr := validateCompromisoCreate(&in); verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	if in.CuentaDestinoID != nil {
		var cuenta models.Cuenta
		if err := s.db.Where("cuenta_id = ? AND usuario_id = ?", *in.CuentaDestinoID, usuarioID).First(&cuenta).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCuentaNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	compromiso := &models.CompromisoRecurrente{
		UsuarioID:       usuarioID,
		CuentaDestinoID: in.CuentaDestinoID,
		Descripcion:     strings.TrimSpace(in.Descripcion),
		Tipo:            models.TipoCompromiso(in.Tipo),
		Categoria:       in.Categoria,
		Monto:           in.Monto,
		Frecuencia:      models.Frecuencia(in.Frecuencia),
		DiaPago:         in.DiaPago,
		FechaInicio:     in.FechaInicio,
		FechaFin:        in.FechaFin,
		Activo:          true,
		ColorHex:        "#8B5CF6",
		Icono:           in.Icono,
		Notas:           in.Notas,
	}
	if in.AutoGenerar != nil {
		compromiso.AutoGenerar = *in.AutoGenerar
	}
	if in.ColorHex != nil {
		compromiso.ColorHex = strings.ToUpper(*in.ColorHex)
	}

	if err := s.db.Create(compromiso).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return compromiso, nil
}

// GetUserCompromisos retrieves a paginated list of a user's commitments.
func (s *compromisoService) GetUserCompromisos(usuarioID uint, page pagination.PageRequest, activo *bool) (*pagination.PageResponse[models.CompromisoRecurrente], error) {
	query := s.db.Model(&models.CompromisoRecurrente{}).Where("usuario_id = ?", usuarioID)
	if activo != nil {
		query = query.Where("activo = ?", *activo)
	}
	query = query.Order("compromiso_id")

	result, err := pagination.List[models.CompromisoRecurrente](query, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

// GetCompromisoByID retrieves a commitment by ID for a specific user
func (s *compromisoService) GetCompromisoByID(usuarioID, compromisoID uint) (*models.CompromisoRecurrente, error) {
	var compromiso models.CompromisoRecurrente
	if err := s.db.Where("compromiso_id = ? AND usuario_id = ?", compromisoID, usuarioID).First(&compromiso).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCompromisoNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &compromiso, nil
}

// UpdateCompromiso applies a partial update.
func (s *compromisoService) UpdateCompromiso(usuarioID, compromisoID uint, in CompromisoUpdateInput) (*models.CompromisoRecurrente, error) {
	compromiso, err := s.GetCompromisoByID(usuarioID, compromisoID)
	if err != nil {
		return nil, err
	}

	if in.Frecuencia != nil {
		upper := strings.ToUpper(strings.TrimSpace(*in.Frecuencia))
		in.Frecuencia = &upper
	}

	verr := &apperrors.ValidationError{}
	if in.Descripcion != nil {
		verr.Add("descripcion", rules.NonEmptyTrimmed(*in.Descripcion))
	}
	if in.Monto != nil {
		verr.Add("monto", rules.PositiveAmount(*in.Monto))
	}
	if in.Frecuencia != nil {
		verr.Add("frecuencia", rules.EnumMember(*in.Frecuencia, models.Frecuencias))
	}
	if in.DiaPago != nil {
		verr.Add("dia_pago", rules.DayOfMonth(*in.DiaPago))
	}
	if in.ColorHex != nil {
		verr.Add("color_hex", rules.HexColor(*in.ColorHex))
	}
	if verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	if in.FechaFin != nil && !in.FechaFin.After(compromiso.FechaInicio) {
		verr.Add("fecha_fin", "debe ser posterior a la fecha de inicio")
		return nil, verr.AsAppError()
	}

	if in.CuentaDestinoID != nil {
		var cuenta models.Cuenta
		if err := s.db.Where("cuenta_id = ? AND usuario_id = ?", *in.CuentaDestinoID, usuarioID).First(&cuenta).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCuentaNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	updates := make(map[string]interface{})
	if in.Descripcion != nil {
		updates["descripcion"] = strings.TrimSpace(*in.Descripcion)
	}
	if in.Categoria != nil {
		updates["categoria"] = *in.Categoria
	}
	if in.Monto != nil {
		updates["monto"] = *in.Monto
	}
	if in.Frecuencia != nil {
		updates["frecuencia"] = *in.Frecuencia
	}
	if in.DiaPago != nil {
		updates["dia_pago"] = *in.DiaPago
	}
	if in.FechaFin != nil {
		updates["fecha_fin"] = *in.FechaFin
	}
	if in.UltimoEvento != nil {
		updates["ultimo_evento"] = *in.UltimoEvento
	}
	if in.CuentaDestinoID != nil {
		updates["cuenta_destino_id"] = *in.CuentaDestinoID
	}
	if in.Activo != nil {
		updates["activo"] = *in.Activo
	}
	if in.AutoGenerar != nil {
		updates["auto_generar"] = *in.AutoGenerar
	}
	if in.ColorHex != nil {
		updates["color_hex"] = strings.ToUpper(*in.ColorHex)
	}
	if in.Icono != nil {
		updates["icono"] = *in.Icono
	}
	if in.Notas != nil {
		updates["notas"] = *in.Notas
	}

	if len(updates) > 0 {
		if err := s.db.Model(compromiso).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return compromiso, nil
}

// DeleteCompromiso removes a commitment. Transactions generated from it
// keep existing and just lose the back reference.
func (s *compromisoService) DeleteCompromiso(usuarioID, compromisoID uint) error {
	if _, err := s.GetCompromisoByID(usuarioID, compromisoID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteWithPolicy(tx, "compromisos_recurrentes", compromisoID)
	})
}

// avanzar returns the occurrence that follows t for the given cadence.
func avanzar(t time.Time, f models.Frecuencia) time.Time {
	switch f {
	case models.FrecuenciaDiaria:
		return t.AddDate(0, 0, 1)
	case models.FrecuenciaSemanal:
		return t.AddDate(0, 0, 7)
	case models.FrecuenciaQuincenal:
		return t.AddDate(0, 0, 15)
	case models.FrecuenciaMensual:
		return t.AddDate(0, 1, 0)
	case models.FrecuenciaBimestral:
		return t.AddDate(0, 2, 0)
	case models.FrecuenciaTrimestral:
		return t.AddDate(0, 3, 0)
	case models.FrecuenciaSemestral:
		return t.AddDate(0, 6, 0)
	case models.FrecuenciaAnual:
		return t.AddDate(1, 0, 0)
	}
	return t.AddDate(0, 1, 0)
}

// ProximoEvento computes when the commitment fires next: the first
// occurrence on or after today, starting from the last recorded event (or
// the start date when none). Returns nil when the schedule is exhausted or
// the commitment is inactive.
func (s *compromisoService) ProximoEvento(usuarioID, compromisoID uint) (*time.Time, error) {
	compromiso, err := s.GetCompromisoByID(usuarioID, compromisoID)
	if err != nil {
		return nil, err
	}
	if !compromiso.Activo {
		return nil, nil
	}

	hoy := time.Now().Truncate(24 * time.Hour)
	proximo := compromiso.FechaInicio
	if compromiso.UltimoEvento != nil {
		proximo = avanzar(*compromiso.UltimoEvento, compromiso.Frecuencia)
	}
	for proximo.Before(hoy) {
		proximo = avanzar(proximo, compromiso.Frecuencia)
	}

	if compromiso.FechaFin != nil && proximo.After(*compromiso.FechaFin) {
		return nil, nil
	}
	return &proximo, nil
}
