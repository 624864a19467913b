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

// TransaccionCreateInput carries the fields accepted when recording a
// transaction.
type TransaccionCreateInput struct {
	Fecha                  time.Time       `json:"fecha" binding:"required"`
	Tipo                   string          `json:"tipo" binding:"required"`
	Monto                  decimal.Decimal `json:"monto" binding:"required"`
	CuentaOrigenID         *uint           `json:"cuenta_origen_id"`
	CuentaDestinoID        *uint           `json:"cuenta_destino_id"`
	CategoriaID            *uint           `json:"categoria_id"`
	CompromisoRecurrenteID *uint           `json:"compromiso_recurrente_id"`
	Descripcion            *string         `json:"descripcion"`
	Referencia             *string         `json:"referencia"`
}

// TransaccionUpdateInput carries the fields accepted on partial update.
// Account references and amount are immutable after creation: correcting
// them means deleting and re-recording the event.
type TransaccionUpdateInput struct {
	Fecha       *time.Time `json:"fecha"`
	CategoriaID *uint      `json:"categoria_id"`
	Descripcion *string    `json:"descripcion"`
	Referencia  *string    `json:"referencia"`
}

// transaccionService handles transaction business logic.
type transaccionService struct {
	db *gorm.DB
}

// NewTransaccionService creates a new TransaccionServicer.
func NewTransaccionService(db *gorm.DB) TransaccionServicer {
	return &transaccionService{db: db}
}

func validateTransaccionCreate(in *TransaccionCreateInput) *apperrors.ValidationError {
	verr := &apperrors.ValidationError{}
	verr.Add("tipo", rules.EnumMember(in.Tipo, models.TiposTransaccion))
	verr.Add("monto", rules.PositiveAmount(in.Monto))
	if verr.HasErrors() {
		return verr
	}

	if in.CuentaOrigenID == nil && in.CuentaDestinoID == nil {
		verr.Add("cuenta_origen_id", "al menos una cuenta (origen o destino) es requerida")
	}
	if models.TipoTransaccion(in.Tipo) == models.TipoTransaccionTransferencia {
		if in.CuentaOrigenID == nil || in.CuentaDestinoID == nil {
			verr.Add("tipo", "una transferencia requiere cuenta origen y cuenta destino")
		}
	}
	if in.CuentaOrigenID != nil && in.CuentaDestinoID != nil && *in.CuentaOrigenID == *in.CuentaDestinoID {
		verr.Add("cuenta_destino_id", "la cuenta destino debe ser distinta de la cuenta origen")
	}
	return verr
}

// CreateTransaccion records a financial event. Every referenced entity is
// existence-checked before the insert.
func (s *transaccionService) CreateTransaccion(usuarioID uint, in TransaccionCreateInput) (*models.Transaccion, error) {
	in.Tipo = strings.ToUpper(strings.TrimSpace(in.Tipo))
	if verr := validateTransaccionCreate(&in); verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	for _, ref := range []*uint{in.CuentaOrigenID, in.CuentaDestinoID} {
		if ref == nil {
			continue
		}
		var cuenta models.Cuenta
		if err := s.db.Where("cuenta_id = ? AND usuario_id = ?", *ref, usuarioID).First(&cuenta).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCuentaNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if in.CategoriaID != nil {
		var categoria models.Categoria
		if err := s.db.First(&categoria, *in.CategoriaID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoriaNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if in.CompromisoRecurrenteID != nil {
		var compromiso models.CompromisoRecurrente
		if err := s.db.Where("compromiso_id = ? AND usuario_id = ?", *in.CompromisoRecurrenteID, usuarioID).
			First(&compromiso).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCompromisoNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	transaccion := &models.Transaccion{
		UsuarioID:              usuarioID,
		CuentaOrigenID:         in.CuentaOrigenID,
		CuentaDestinoID:        in.CuentaDestinoID,
		CategoriaID:            in.CategoriaID,
		CompromisoRecurrenteID: in.CompromisoRecurrenteID,
		Fecha:                  in.Fecha,
		Tipo:                   models.TipoTransaccion(in.Tipo),
		Monto:                  in.Monto,
		Descripcion:            in.Descripcion,
		Referencia:             in.Referencia,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaccion).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		now := time.Now()
		for _, ref := range []*uint{in.CuentaOrigenID, in.CuentaDestinoID} {
			if ref == nil {
				continue
			}
			if err := tx.Model(&models.Cuenta{}).
				Where("cuenta_id = ?", *ref).
				Update("ultimo_movimiento", now).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaccion, nil
}

// GetUserTransacciones retrieves a paginated, filtered list of a user's
// transactions, newest first.
func (s *transaccionService) GetUserTransacciones(usuarioID uint, page pagination.PageRequest, filter TransaccionFilter) (*pagination.PageResponse[models.Transaccion], error) {
	query := s.db.Model(&models.Transaccion{}).Where("usuario_id = ?", usuarioID)
	if filter.FechaDesde != nil {
		query = query.Where("fecha >= ?", *filter.FechaDesde)
	}
	if filter.FechaHasta != nil {
		query = query.Where("fecha <= ?", *filter.FechaHasta)
	}
	if filter.Tipo != nil {
		query = query.Where("tipo = ?", strings.ToUpper(*filter.Tipo))
	}
	if filter.CuentaID != nil {
		query = query.Where("cuenta_origen_id = ? OR cuenta_destino_id = ?", *filter.CuentaID, *filter.CuentaID)
	}
	if filter.CategoriaID != nil {
		query = query.Where("categoria_id = ?", *filter.CategoriaID)
	}
	query = query.Order("fecha DESC, transaccion_id DESC")

	result, err := pagination.List[models.Transaccion](query, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

// GetTransaccionByID retrieves a transaction by ID for a specific user
func (s *transaccionService) GetTransaccionByID(usuarioID, transaccionID uint) (*models.Transaccion, error) {
	var transaccion models.Transaccion
	if err := s.db.Where("transaccion_id = ? AND usuario_id = ?", transaccionID, usuarioID).First(&transaccion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransaccionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaccion, nil
}

// UpdateTransaccion applies a partial update of the descriptive fields.
func (s *transaccionService) UpdateTransaccion(usuarioID, transaccionID uint, in TransaccionUpdateInput) (*models.Transaccion, error) {
	transaccion, err := s.GetTransaccionByID(usuarioID, transaccionID)
	if err != nil {
		return nil, err
	}

	if in.CategoriaID != nil {
		var categoria models.Categoria
		if err := s.db.First(&categoria, *in.CategoriaID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoriaNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	updates := make(map[string]interface{})
	if in.Fecha != nil {
		updates["fecha"] = *in.Fecha
	}
	if in.CategoriaID != nil {
		updates["categoria_id"] = *in.CategoriaID
	}
	if in.Descripcion != nil {
		updates["descripcion"] = *in.Descripcion
	}
	if in.Referencia != nil {
		updates["referencia"] = *in.Referencia
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaccion).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return transaccion, nil
}

// DeleteTransaccion removes a transaction. Transactions referenced by
// ledger movements are immutable history and cannot be deleted.
func (s *transaccionService) DeleteTransaccion(usuarioID, transaccionID uint) error {
	if _, err := s.GetTransaccionByID(usuarioID, transaccionID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteWithPolicy(tx, "transacciones", transaccionID)
	})
}
