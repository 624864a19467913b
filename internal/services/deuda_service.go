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

// DeudaCreateInput carries the fields accepted when registering a debt or
// receivable. SaldoActual defaults to SaldoInicial when omitted.
type DeudaCreateInput struct {
	Tipo             string           `json:"tipo" binding:"required"`
	Acreedor         *string          `json:"acreedor"`
	Deudor           *string          `json:"deudor"`
	Descripcion      *string          `json:"descripcion"`
	SaldoInicial     decimal.Decimal  `json:"saldo_inicial" binding:"required"`
	SaldoActual      *decimal.Decimal `json:"saldo_actual"`
	CuentaID         *uint            `json:"cuenta_id"`
	SubcuentaID      *uint            `json:"subcuenta_id"`
	MontoCuota       *decimal.Decimal `json:"monto_cuota"`
	FrecuenciaPago   *string          `json:"frecuencia_pago"`
	DiaPago          *int             `json:"dia_pago"`
	TasaInteres      *decimal.Decimal `json:"tasa_interes"`
	NumeroCuotas     *int             `json:"numero_cuotas"`
	CuotasPagadas    *int             `json:"cuotas_pagadas"`
	FechaInicio      time.Time        `json:"fecha_inicio" binding:"required"`
	FechaVencimiento *time.Time       `json:"fecha_vencimiento"`
	ProximoPago      *time.Time       `json:"proximo_pago"`
	Prioridad        *string          `json:"prioridad"`
	ColorHex         *string          `json:"color_hex" binding:"omitempty,hex_color"`
	Icono            *string          `json:"icono"`
}

// DeudaUpdateInput carries the fields accepted on partial update. Balances
// change only through debt movements.
type DeudaUpdateInput struct {
	Acreedor         *string          `json:"acreedor"`
	Deudor           *string          `json:"deudor"`
	Descripcion      *string          `json:"descripcion"`
	CuentaID         *uint            `json:"cuenta_id"`
	SubcuentaID      *uint            `json:"subcuenta_id"`
	MontoCuota       *decimal.Decimal `json:"monto_cuota"`
	FrecuenciaPago   *string          `json:"frecuencia_pago"`
	DiaPago          *int             `json:"dia_pago"`
	TasaInteres      *decimal.Decimal `json:"tasa_interes"`
	NumeroCuotas     *int             `json:"numero_cuotas"`
	CuotasPagadas    *int             `json:"cuotas_pagadas"`
	FechaVencimiento *time.Time       `json:"fecha_vencimiento"`
	ProximoPago      *time.Time       `json:"proximo_pago"`
	Estado           *string          `json:"estado"`
	Prioridad        *string          `json:"prioridad"`
	ColorHex         *string          `json:"color_hex" binding:"omitempty,hex_color"`
	Icono            *string          `json:"icono"`
}

// deudaService handles debt business logic.
type deudaService struct {
	db *gorm.DB
}

// NewDeudaService creates a new DeudaServicer.
func NewDeudaService(db *gorm.DB) DeudaServicer {
	return &deudaService{db: db}
}

// saldoDentroDeRango checks the balance bounds implied by the debt type:
// receivables run from a negative initial balance up to zero, everything
// else runs from zero up to a positive initial balance.
func saldoDentroDeRango(tipo models.TipoDeuda, inicial, actual decimal.Decimal) string {
	if tipo == models.TipoDeudaPorCobrar {
		if actual.LessThan(inicial) || actual.GreaterThan(decimal.Zero) {
			return "debe estar entre el saldo inicial y 0 para deudas POR_COBRAR"
		}
		return ""
	}
	if actual.IsNegative() || actual.GreaterThan(inicial) {
		return "debe estar entre 0 y el saldo inicial"
	}
	return ""
}

func validateDeudaCreate(in *DeudaCreateInput) *apperrors.ValidationError {
	verr := &apperrors.ValidationError{}
	verr.Add("tipo", rules.EnumMember(in.Tipo, models.TiposDeuda))
	if in.MontoCuota != nil {
		verr.Add("monto_cuota", rules.PositiveAmount(*in.MontoCuota))
	}
	if in.FrecuenciaPago != nil {
		verr.Add("frecuencia_pago", rules.EnumMember(*in.FrecuenciaPago, models.FrecuenciasPago))
	}
	if in.DiaPago != nil {
		verr.Add("dia_pago", rules.DayOfMonth(*in.DiaPago))
	}
	if in.TasaInteres != nil {
		verr.Add("tasa_interes", rules.Percentage(*in.TasaInteres))
	}
	if in.NumeroCuotas != nil && *in.NumeroCuotas <= 0 {
		verr.Add("numero_cuotas", "debe ser un valor positivo")
	}
	if in.CuotasPagadas != nil && *in.CuotasPagadas < 0 {
		verr.Add("cuotas_pagadas", "no puede ser negativo")
	}
	if in.Prioridad != nil {
		verr.Add("prioridad", rules.EnumMember(*in.Prioridad, models.Prioridades))
	}
	if in.ColorHex != nil {
		verr.Add("color_hex", rules.HexColor(*in.ColorHex))
	}
	if verr.HasErrors() {
		return verr
	}

	tipo := models.TipoDeuda(in.Tipo)
	saldoActual := in.SaldoInicial
	if in.SaldoActual != nil {
		saldoActual = *in.SaldoActual
	}

	if tipo == models.TipoDeudaPorCobrar {
		if !in.SaldoInicial.IsNegative() {
			verr.Add("saldo_inicial", "debe ser negativo para deudas POR_COBRAR")
		}
		if in.Deudor == nil || strings.TrimSpace(*in.Deudor) == "" {
			verr.Add("deudor", "es requerido para deudas POR_COBRAR")
		}
	} else {
		if !in.SaldoInicial.IsPositive() {
			verr.Add("saldo_inicial", "debe ser positivo")
		}
		if models.RequiereAcreedor(tipo) && (in.Acreedor == nil || strings.TrimSpace(*in.Acreedor) == "") {
			verr.Add("acreedor", "es requerido para este tipo de deuda")
		}
	}
	if !verr.Has("saldo_inicial") {
		verr.Add("saldo_actual", saldoDentroDeRango(tipo, in.SaldoInicial, saldoActual))
	}
	if in.NumeroCuotas != nil && in.CuotasPagadas != nil && *in.CuotasPagadas > *in.NumeroCuotas {
		verr.Add("cuotas_pagadas", "no puede exceder el número de cuotas")
	}
	if in.FechaVencimiento != nil && in.FechaVencimiento.Before(in.FechaInicio) {
		verr.Add("fecha_vencimiento", "no puede ser anterior a la fecha de inicio")
	}
	return verr
}

// CreateDeuda registers a debt for a user.
func (s *deudaService) CreateDeuda(usuarioID uint, in DeudaCreateInput) (*models.Deuda, error) {
	in.Tipo = strings.ToUpper(strings.TrimSpace(in.Tipo))
	if in.FrecuenciaPago != nil {
		upper := strings.ToUpper(*in.FrecuenciaPago)
		in.FrecuenciaPago = &upper
	}
	if in.Prioridad != nil {
		upper := strings.ToUpper(*in.Prioridad)
		in.Prioridad = &upper
	}
	if verr := validateDeudaCreate(&in); verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	if in.CuentaID != nil {
		var cuenta models.Cuenta
		if err := s.db.Where("cuenta_id = ? AND usuario_id = ?", *in.CuentaID, usuarioID).First(&cuenta).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCuentaNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if in.SubcuentaID != nil {
		var subcuenta models.Subcuenta
		err := s.db.
			Joins("JOIN cuentas ON cuentas.cuenta_id = subcuentas.cuenta_id").
			Where("subcuentas.subcuenta_id = ? AND cuentas.usuario_id = ?", *in.SubcuentaID, usuarioID).
			First(&subcuenta).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrSubcuentaNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	saldoActual := in.SaldoInicial
	if in.SaldoActual != nil {
		saldoActual = *in.SaldoActual
	}

	deuda := &models.Deuda{
		UsuarioID:        usuarioID,
		CuentaID:         in.CuentaID,
		SubcuentaID:      in.SubcuentaID,
		Tipo:             models.TipoDeuda(in.Tipo),
		Acreedor:         in.Acreedor,
		Deudor:           in.Deudor,
		Descripcion:      in.Descripcion,
		SaldoInicial:     in.SaldoInicial,
		SaldoActual:      saldoActual,
		MontoCuota:       in.MontoCuota,
		DiaPago:          in.DiaPago,
		TasaInteres:      in.TasaInteres,
		NumeroCuotas:     in.NumeroCuotas,
		FechaInicio:      in.FechaInicio,
		FechaVencimiento: in.FechaVencimiento,
		ProximoPago:      in.ProximoPago,
		Estado:           models.EstadoDeudaActiva,
		Prioridad:        models.PrioridadMedia,
		ColorHex:         "#EF4444",
		Icono:            in.Icono,
	}
	if in.FrecuenciaPago != nil {
		f := models.FrecuenciaPago(*in.FrecuenciaPago)
		deuda.FrecuenciaPago = &f
	}
	if in.CuotasPagadas != nil {
		deuda.CuotasPagadas = *in.CuotasPagadas
	}
	if in.Prioridad != nil {
		deuda.Prioridad = models.Prioridad(*in.Prioridad)
	}
	if in.ColorHex != nil {
		deuda.ColorHex = strings.ToUpper(*in.ColorHex)
	}

	if err := s.db.Create(deuda).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return deuda, nil
}

// GetUserDeudas retrieves a paginated, filtered list of a user's debts.
func (s *deudaService) GetUserDeudas(usuarioID uint, page pagination.PageRequest, filter DeudaFilter) (*pagination.PageResponse[models.Deuda], error) {
	query := s.db.Model(&models.Deuda{}).Where("usuario_id = ?", usuarioID)
	if filter.Estado != nil {
		query = query.Where("estado = ?", strings.ToUpper(*filter.Estado))
	}
	if filter.Tipo != nil {
		query = query.Where("tipo = ?", strings.ToUpper(*filter.Tipo))
	}
	query = query.Order("deuda_id")

	result, err := pagination.List[models.Deuda](query, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

// GetDeudaByID retrieves a debt by ID for a specific user
func (s *deudaService) GetDeudaByID(usuarioID, deudaID uint) (*models.Deuda, error) {
	var deuda models.Deuda
	if err := s.db.Where("deuda_id = ? AND usuario_id = ?", deudaID, usuarioID).First(&deuda).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDeudaNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &deuda, nil
}

// UpdateDeuda applies a partial update. Type and balances are immutable;
// balances change only through movements.
func (s *deudaService) UpdateDeuda(usuarioID, deudaID uint, in DeudaUpdateInput) (*models.Deuda, error) {
	deuda, err := s.GetDeudaByID(usuarioID, deudaID)
	if err != nil {
		return nil, err
	}

	if in.FrecuenciaPago != nil {
		upper := strings.ToUpper(*in.FrecuenciaPago)
		in.FrecuenciaPago = &upper
	}
	if in.Estado != nil {
		upper := strings.ToUpper(*in.Estado)
		in.Estado = &upper
	}
	if in.Prioridad != nil {
		upper := strings.ToUpper(*in.Prioridad)
		in.Prioridad = &upper
	}

	verr := &apperrors.ValidationError{}
	if in.MontoCuota != nil {
		verr.Add("monto_cuota", rules.PositiveAmount(*in.MontoCuota))
	}
	if in.FrecuenciaPago != nil {
		verr.Add("frecuencia_pago", rules.EnumMember(*in.FrecuenciaPago, models.FrecuenciasPago))
	}
	if in.DiaPago != nil {
		verr.Add("dia_pago", rules.DayOfMonth(*in.DiaPago))
	}
	if in.TasaInteres != nil {
		verr.Add("tasa_interes", rules.Percentage(*in.TasaInteres))
	}
	if in.NumeroCuotas != nil && *in.NumeroCuotas <= 0 {
		verr.Add("numero_cuotas", "debe ser un valor positivo")
	}
	if in.CuotasPagadas != nil && *in.CuotasPagadas < 0 {
		verr.Add("cuotas_pagadas", "no puede ser negativo")
	}
	if in.Estado != nil {
		verr.Add("estado", rules.EnumMember(*in.Estado, models.EstadosDeuda))
	}
	if in.Prioridad != nil {
		verr.Add("prioridad", rules.EnumMember(*in.Prioridad, models.Prioridades))
	}
	if in.ColorHex != nil {
		verr.Add("color_hex", rules.HexColor(*in.ColorHex))
	}
	if verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	numeroCuotas := deuda.NumeroCuotas
	if in.NumeroCuotas != nil {
		numeroCuotas = in.NumeroCuotas
	}
	cuotasPagadas := deuda.CuotasPagadas
	if in.CuotasPagadas != nil {
		cuotasPagadas = *in.CuotasPagadas
	}
	if numeroCuotas != nil && cuotasPagadas > *numeroCuotas {
		verr.Add("cuotas_pagadas", "no puede exceder el número de cuotas")
	}
	if in.FechaVencimiento != nil && in.FechaVencimiento.Before(deuda.FechaInicio) {
		verr.Add("fecha_vencimiento", "no puede ser anterior a la fecha de inicio")
	}
	if verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	if in.CuentaID != nil {
		var cuenta models.Cuenta
		if err := s.db.Where("cuenta_id = ? AND usuario_id = ?", *in.CuentaID, usuarioID).First(&cuenta).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCuentaNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if in.SubcuentaID != nil {
		var subcuenta models.Subcuenta
		err := s.db.
			Joins("JOIN cuentas ON cuentas.cuenta_id = subcuentas.cuenta_id").
			Where("subcuentas.subcuenta_id = ? AND cuentas.usuario_id = ?", *in.SubcuentaID, usuarioID).
			First(&subcuenta).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrSubcuentaNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	updates := make(map[string]interface{})
	if in.Acreedor != nil {
		updates["acreedor"] = *in.Acreedor
	}
	if in.Deudor != nil {
		updates["deudor"] = *in.Deudor
	}
	if in.Descripcion != nil {
		updates["descripcion"] = *in.Descripcion
	}
	if in.CuentaID != nil {
		updates["cuenta_id"] = *in.CuentaID
	}
	if in.SubcuentaID != nil {
		updates["subcuenta_id"] = *in.SubcuentaID
	}
	if in.MontoCuota != nil {
		updates["monto_cuota"] = *in.MontoCuota
	}
	if in.FrecuenciaPago != nil {
		updates["frecuencia_pago"] = *in.FrecuenciaPago
	}
	if in.DiaPago != nil {
		updates["dia_pago"] = *in.DiaPago
	}
	if in.TasaInteres != nil {
		updates["tasa_interes"] = *in.TasaInteres
	}
	if in.NumeroCuotas != nil {
		updates["numero_cuotas"] = *in.NumeroCuotas
	}
	if in.CuotasPagadas != nil {
		updates["cuotas_pagadas"] = *in.CuotasPagadas
	}
	if in.FechaVencimiento != nil {
		updates["fecha_vencimiento"] = *in.FechaVencimiento
	}
	if in.ProximoPago != nil {
		updates["proximo_pago"] = *in.ProximoPago
	}
	if in.Estado != nil {
		updates["estado"] = *in.Estado
	}
	if in.Prioridad != nil {
		updates["prioridad"] = *in.Prioridad
	}
	if in.ColorHex != nil {
		updates["color_hex"] = strings.ToUpper(*in.ColorHex)
	}
	if in.Icono != nil {
		updates["icono"] = *in.Icono
	}

	if len(updates) > 0 {
		if err := s.db.Model(deuda).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return deuda, nil
}

// DeleteDeuda removes a debt. Debts with ledger history cannot be deleted.
func (s *deudaService) DeleteDeuda(usuarioID, deudaID uint) error {
	if _, err := s.GetDeudaByID(usuarioID, deudaID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteWithPolicy(tx, "deudas", deudaID)
	})
}
