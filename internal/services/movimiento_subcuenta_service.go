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

// MovimientoSubcuentaInput carries the fields accepted when recording a
// sub-account ledger entry.
type MovimientoSubcuentaInput struct {
	SubcuentaID        uint            `json:"subcuenta_id" binding:"required"`
	SubcuentaDestinoID *uint           `json:"subcuenta_destino_id"`
	TransaccionID      uint            `json:"transaccion_id" binding:"required"`
	Fecha              time.Time       `json:"fecha" binding:"required"`
	Tipo               string          `json:"tipo" binding:"required"`
	Monto              decimal.Decimal `json:"monto" binding:"required"`
	Descripcion        *string         `json:"descripcion"`
}

// movimientoSubcuentaService handles sub-account ledger entries.
type movimientoSubcuentaService struct {
	db *gorm.DB
}

// NewMovimientoSubcuentaService creates a new MovimientoSubcuentaServicer.
func NewMovimientoSubcuentaService(db *gorm.DB) MovimientoSubcuentaServicer {
	return &movimientoSubcuentaService{db: db}
}

func validateMovimientoSubcuenta(in *MovimientoSubcuentaInput) *apperrors.ValidationError {
	verr := &apperrors.ValidationError{}
	verr.Add("tipo", rules.EnumMember(in.Tipo, models.TiposMovimientoSubcuenta))
	verr.Add("monto", rules.PositiveAmount(in.Monto))
	if verr.HasErrors() {
		return verr
	}

	tipo := models.TipoMovimientoSubcuenta(in.Tipo)
	if tipo == models.MovimientoSubcuentaTransferencia && in.SubcuentaDestinoID == nil {
		verr.Add("subcuenta_destino_id", "es requerido para movimientos TRANSFERENCIA")
	}
	if tipo != models.MovimientoSubcuentaTransferencia && in.SubcuentaDestinoID != nil {
		verr.Add("subcuenta_destino_id", "solo aplica a movimientos TRANSFERENCIA")
	}
	if in.SubcuentaDestinoID != nil && *in.SubcuentaDestinoID == in.SubcuentaID {
		verr.Add("subcuenta_destino_id", "la subcuenta destino debe ser distinta de la subcuenta origen")
	}
	return verr
}

// CreateMovimientoSubcuenta records a sub-account ledger entry and applies
// it to the envelope balances: assignments and adjustments add to the
// balance, expenses subtract, transfers move the amount between envelopes.
func (s *movimientoSubcuentaService) CreateMovimientoSubcuenta(usuarioID uint, in MovimientoSubcuentaInput) (*models.MovimientoSubcuenta, error) {
	in.Tipo = strings.ToUpper(strings.TrimSpace(in.Tipo))
	if verr := validateMovimientoSubcuenta(&in); verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	subcuenta, err := s.getOwnedSubcuenta(usuarioID, in.SubcuentaID)
	if err != nil {
		return nil, err
	}
	var destino *models.Subcuenta
	if in.SubcuentaDestinoID != nil {
		destino, err = s.getOwnedSubcuenta(usuarioID, *in.SubcuentaDestinoID)
		if err != nil {
			return nil, err
		}
	}

	var transaccion models.Transaccion
	if err := s.db.Where("transaccion_id = ? AND usuario_id = ?", in.TransaccionID, usuarioID).First(&transaccion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransaccionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	tipo := models.TipoMovimientoSubcuenta(in.Tipo)
	saldoOrigen := subcuenta.SaldoActual
	var saldoDestino decimal.Decimal
	switch tipo {
	case models.MovimientoSubcuentaAsignacion, models.MovimientoSubcuentaAjuste:
		saldoOrigen = saldoOrigen.Add(in.Monto)
	case models.MovimientoSubcuentaGasto:
		saldoOrigen = saldoOrigen.Sub(in.Monto)
	case models.MovimientoSubcuentaTransferencia:
		saldoOrigen = saldoOrigen.Sub(in.Monto)
		saldoDestino = destino.SaldoActual.Add(in.Monto)
	}
	if saldoOrigen.IsNegative() {
		verr := &apperrors.ValidationError{}
		verr.Add("monto", "el movimiento dejaría la subcuenta con saldo negativo")
		return nil, verr.AsAppError()
	}

	movimiento := &models.MovimientoSubcuenta{
		SubcuentaID:        in.SubcuentaID,
		SubcuentaDestinoID: in.SubcuentaDestinoID,
		TransaccionID:      in.TransaccionID,
		Fecha:              in.Fecha,
		Tipo:               tipo,
		Monto:              in.Monto,
		Descripcion:        in.Descripcion,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(movimiento).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&models.Subcuenta{}).
			Where("subcuenta_id = ?", in.SubcuentaID).
			Update("saldo_actual", saldoOrigen).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if destino != nil {
			if err := tx.Model(&models.Subcuenta{}).
				Where("subcuenta_id = ?", destino.SubcuentaID).
				Update("saldo_actual", saldoDestino).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movimiento, nil
}

func (s *movimientoSubcuentaService) getOwnedSubcuenta(usuarioID, subcuentaID uint) (*models.Subcuenta, error) {
	var subcuenta models.Subcuenta
	err := s.db.
		Joins("JOIN cuentas ON cuentas.cuenta_id = subcuentas.cuenta_id").
		Where("subcuentas.subcuenta_id = ? AND cuentas.usuario_id = ?", subcuentaID, usuarioID).
		First(&subcuenta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubcuentaNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &subcuenta, nil
}

// GetSubcuentaMovimientos retrieves a paginated list of a sub-account's
// ledger entries, newest first. Transfers into the sub-account are
// included.
func (s *movimientoSubcuentaService) GetSubcuentaMovimientos(usuarioID, subcuentaID uint, page pagination.PageRequest) (*pagination.PageResponse[models.MovimientoSubcuenta], error) {
	if _, err := s.getOwnedSubcuenta(usuarioID, subcuentaID); err != nil {
		return nil, err
	}

	query := s.db.Model(&models.MovimientoSubcuenta{}).
		Where("subcuenta_id = ? OR subcuenta_destino_id = ?", subcuentaID, subcuentaID).
		Order("fecha DESC, movimiento_subcuenta_id DESC")
	result, err := pagination.List[models.MovimientoSubcuenta](query, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

// GetMovimientoSubcuentaByID retrieves a ledger entry, checking ownership
// through the sub-account's parent account.
func (s *movimientoSubcuentaService) GetMovimientoSubcuentaByID(usuarioID, movimientoID uint) (*models.MovimientoSubcuenta, error) {
	var movimiento models.MovimientoSubcuenta
	err := s.db.
		Joins("JOIN subcuentas ON subcuentas.subcuenta_id = movimientos_subcuentas.subcuenta_id").
		Joins("JOIN cuentas ON cuentas.cuenta_id = subcuentas.cuenta_id").
		Where("movimientos_subcuentas.movimiento_subcuenta_id = ? AND cuentas.usuario_id = ?", movimientoID, usuarioID).
		First(&movimiento).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMovimientoSubcuentaNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &movimiento, nil
}
