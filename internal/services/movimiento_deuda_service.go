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

// MovimientoDeudaInput carries the fields accepted when recording a debt
// ledger entry. The backing transaction must already exist and may back at
// most one movement.
type MovimientoDeudaInput struct {
	DeudaID         uint             `json:"deuda_id" binding:"required"`
	TransaccionID   uint             `json:"transaccion_id" binding:"required"`
	Fecha           time.Time        `json:"fecha" binding:"required"`
	Tipo            string           `json:"tipo" binding:"required"`
	Monto           decimal.Decimal  `json:"monto" binding:"required"`
	Descripcion     *string          `json:"descripcion"`
	InteresGenerado *decimal.Decimal `json:"interes_generado"`
	CapitalPagado   *decimal.Decimal `json:"capital_pagado"`
	InteresPagado   *decimal.Decimal `json:"interes_pagado"`
}

// movimientoDeudaService handles debt ledger entries. epsilon is the
// tolerance for the capital+interest reconciliation of payments.
type movimientoDeudaService struct {
	db      *gorm.DB
	epsilon decimal.Decimal
}

// NewMovimientoDeudaService creates a new MovimientoDeudaServicer.
func NewMovimientoDeudaService(db *gorm.DB, epsilon decimal.Decimal) MovimientoDeudaServicer {
	return &movimientoDeudaService{db: db, epsilon: epsilon}
}

func (s *movimientoDeudaService) validate(in *MovimientoDeudaInput) *apperrors.ValidationError {
	verr := &apperrors.ValidationError{}
	verr.Add("tipo", rules.EnumMember(in.Tipo, models.TiposMovimientoDeuda))
	verr.Add("monto", rules.PositiveAmount(in.Monto))
	if in.CapitalPagado != nil {
		verr.Add("capital_pagado", rules.NonNegativeAmount(*in.CapitalPagado))
	}
	if in.InteresPagado != nil {
		verr.Add("interes_pagado", rules.NonNegativeAmount(*in.InteresPagado))
	}
	if in.InteresGenerado != nil {
		verr.Add("interes_generado", rules.PositiveAmount(*in.InteresGenerado))
	}
	if verr.HasErrors() {
		return verr
	}

	tipo := models.TipoMovimientoDeuda(in.Tipo)
	if tipo == models.MovimientoDeudaPago {
		if in.CapitalPagado == nil || in.InteresPagado == nil {
			verr.Add("capital_pagado", "capital_pagado e interes_pagado son requeridos para movimientos PAGO")
		} else {
			suma := in.CapitalPagado.Add(*in.InteresPagado)
			if suma.Sub(in.Monto).Abs().GreaterThan(s.epsilon) {
				verr.Add("monto", "capital_pagado + interes_pagado debe ser igual al monto")
			}
		}
	} else if in.CapitalPagado != nil || in.InteresPagado != nil {
		verr.Add("tipo", "el desglose capital/interés solo aplica a movimientos PAGO")
	}
	if tipo != models.MovimientoDeudaInteres && in.InteresGenerado != nil {
		verr.Add("interes_generado", "solo aplica a movimientos INTERES")
	}
	return verr
}

// CreateMovimientoDeuda records a debt ledger entry. A PAGO entry also
// advances the debt: the paid capital moves the balance toward zero, the
// installment counter and payment dates are refreshed.
func (s *movimientoDeudaService) CreateMovimientoDeuda(usuarioID uint, in MovimientoDeudaInput) (*models.MovimientoDeuda, error) {
	in.Tipo = strings.ToUpper(strings.TrimSpace(in.Tipo))
	if verr := s.validate(&in); verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	var deuda models.Deuda
	if err := s.db.Where("deuda_id = ? AND usuario_id = ?", in.DeudaID, usuarioID).First(&deuda).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDeudaNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transaccion models.Transaccion
	if err := s.db.Where("transaccion_id = ? AND usuario_id = ?", in.TransaccionID, usuarioID).First(&transaccion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransaccionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// One movement per backing transaction.
	var linked int64
	if err := s.db.Model(&models.MovimientoDeuda{}).
		Where("transaccion_id = ?", in.TransaccionID).
		Count(&linked).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if linked > 0 {
		verr := &apperrors.ValidationError{}
		verr.Add("transaccion_id", "la transacción ya respalda otro movimiento de deuda")
		return nil, verr.AsAppError()
	}

	tipo := models.TipoMovimientoDeuda(in.Tipo)
	if tipo == models.MovimientoDeudaPago {
		// The paid capital always moves the balance toward zero,
		// whichever side of zero the debt lives on.
		nuevoSaldo := deuda.SaldoActual.Sub(*in.CapitalPagado)
		if deuda.EsPorCobrar() {
			nuevoSaldo = deuda.SaldoActual.Add(*in.CapitalPagado)
		}
		if reason := saldoDentroDeRango(deuda.Tipo, deuda.SaldoInicial, nuevoSaldo); reason != "" {
			verr := &apperrors.ValidationError{}
			verr.Add("capital_pagado", "el pago excede el saldo actual de la deuda")
			return nil, verr.AsAppError()
		}
		deuda.SaldoActual = nuevoSaldo
	}

	movimiento := &models.MovimientoDeuda{
		DeudaID:         in.DeudaID,
		TransaccionID:   in.TransaccionID,
		Fecha:           in.Fecha,
		Tipo:            tipo,
		Monto:           in.Monto,
		Descripcion:     in.Descripcion,
		InteresGenerado: in.InteresGenerado,
		CapitalPagado:   in.CapitalPagado,
		InteresPagado:   in.InteresPagado,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(movimiento).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if tipo != models.MovimientoDeudaPago {
			return nil
		}
		// Extra payments past the schedule still apply to the balance
		// but cannot push cuotas_pagadas beyond numero_cuotas.
		cuotasPagadas := deuda.CuotasPagadas
		if deuda.NumeroCuotas == nil || cuotasPagadas < *deuda.NumeroCuotas {
			cuotasPagadas++
		}
		updates := map[string]interface{}{
			"saldo_actual":   deuda.SaldoActual,
			"cuotas_pagadas": cuotasPagadas,
			"ultimo_pago":    in.Fecha,
		}
		if deuda.SaldoActual.IsZero() {
			updates["estado"] = models.EstadoDeudaPagada
		}
		if err := tx.Model(&models.Deuda{}).
			Where("deuda_id = ?", deuda.DeudaID).
			Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movimiento, nil
}

// GetDeudaMovimientos retrieves a paginated list of a debt's ledger
// entries, newest first.
func (s *movimientoDeudaService) GetDeudaMovimientos(usuarioID, deudaID uint, page pagination.PageRequest) (*pagination.PageResponse[models.MovimientoDeuda], error) {
	var deuda models.Deuda
	if err := s.db.Where("deuda_id = ? AND usuario_id = ?", deudaID, usuarioID).First(&deuda).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDeudaNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	query := s.db.Model(&models.MovimientoDeuda{}).
		Where("deuda_id = ?", deudaID).
		Order("fecha DESC, movimiento_deuda_id DESC")
	result, err := pagination.List[models.MovimientoDeuda](query, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

// GetMovimientoDeudaByID retrieves a ledger entry, checking ownership
// through its debt.
func (s *movimientoDeudaService) GetMovimientoDeudaByID(usuarioID, movimientoID uint) (*models.MovimientoDeuda, error) {
	var movimiento models.MovimientoDeuda
	err := s.db.
		Joins("JOIN deudas ON deudas.deuda_id = movimientos_deuda.deuda_id").
		Where("movimientos_deuda.movimiento_deuda_id = ? AND deudas.usuario_id = ?", movimientoID, usuarioID).
		First(&movimiento).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMovimientoDeudaNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &movimiento, nil
}
