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

// CuentaCreateInput carries the fields accepted when creating an account.
// SaldoInicial is not persisted on the account: a positive value is recorded
// as a synthetic adjustment transaction crediting the new account.
type CuentaCreateInput struct {
	Nombre         string           `json:"nombre" binding:"required"`
	TipoCuenta     string           `json:"tipo_cuenta" binding:"required"`
	Institucion    *string          `json:"institucion"`
	NumeroCuenta   *string          `json:"numero_cuenta"`
	Moneda         *string          `json:"moneda" binding:"omitempty,iso4217"`
	SaldoInicial   *decimal.Decimal `json:"saldo_inicial"`
	LimiteCredito  *decimal.Decimal `json:"limite_credito"`
	DiaCorte       *int             `json:"dia_corte"`
	DiaPago        *int             `json:"dia_pago"`
	TasaInteres    *decimal.Decimal `json:"tasa_interes"`
	IncluirEnTotal *bool            `json:"incluir_en_total"`
	ColorHex       *string          `json:"color_hex" binding:"omitempty,hex_color"`
	Icono          *string          `json:"icono"`
	OrdenMostrar   *int             `json:"orden_mostrar"`
	Descripcion    *string          `json:"descripcion"`
	Notas          *string          `json:"notas"`
}

// CuentaUpdateInput carries the fields accepted on partial update. Nil
// fields retain their prior value. The running balance is not updatable:
// it changes only through transactions.
type CuentaUpdateInput struct {
	Nombre         *string          `json:"nombre"`
	TipoCuenta     *string          `json:"tipo_cuenta"`
	Institucion    *string          `json:"institucion"`
	NumeroCuenta   *string          `json:"numero_cuenta"`
	Moneda         *string          `json:"moneda" binding:"omitempty,iso4217"`
	LimiteCredito  *decimal.Decimal `json:"limite_credito"`
	DiaCorte       *int             `json:"dia_corte"`
	DiaPago        *int             `json:"dia_pago"`
	TasaInteres    *decimal.Decimal `json:"tasa_interes"`
	Activa         *bool            `json:"activa"`
	IncluirEnTotal *bool            `json:"incluir_en_total"`
	ColorHex       *string          `json:"color_hex" binding:"omitempty,hex_color"`
	Icono          *string          `json:"icono"`
	OrdenMostrar   *int             `json:"orden_mostrar"`
	Descripcion    *string          `json:"descripcion"`
	Notas          *string          `json:"notas"`
}

// cuentaService handles account-related business logic.
type cuentaService struct {
	db *gorm.DB
}

// NewCuentaService creates a new CuentaServicer.
func NewCuentaService(db *gorm.DB) CuentaServicer {
	return &cuentaService{db: db}
}

func validateCuentaCreate(in *CuentaCreateInput) *apperrors.ValidationError {
	verr := &apperrors.ValidationError{}
	verr.Add("nombre", rules.NonEmptyTrimmed(in.Nombre))
	verr.Add("tipo_cuenta", rules.EnumMember(in.TipoCuenta, models.TiposCuenta))
	if in.Moneda != nil {
		verr.Add("moneda", rules.ISOCurrencyCode(*in.Moneda))
	}
	if in.SaldoInicial != nil {
		verr.Add("saldo_inicial", rules.NonNegativeAmount(*in.SaldoInicial))
	}
	if in.LimiteCredito != nil {
		verr.Add("limite_credito", rules.NonNegativeAmount(*in.LimiteCredito))
	}
	if in.DiaCorte != nil {
		verr.Add("dia_corte", rules.DayOfMonth(*in.DiaCorte))
	}
	if in.DiaPago != nil {
		verr.Add("dia_pago", rules.DayOfMonth(*in.DiaPago))
	}
	if in.TasaInteres != nil {
		verr.Add("tasa_interes", rules.Percentage(*in.TasaInteres))
	}
	if in.ColorHex != nil {
		verr.Add("color_hex", rules.HexColor(*in.ColorHex))
	}
	if verr.HasErrors() {
		return verr
	}

	// Cross-field rules run only once every field passed on its own.
	esTarjeta := models.TipoCuenta(in.TipoCuenta) == models.TipoCuentaTarjetaCredito
	if esTarjeta && in.LimiteCredito == nil {
		verr.Add("limite_credito", "es requerido para cuentas de tipo TARJETA_CREDITO")
	}
	if !esTarjeta && in.LimiteCredito != nil {
		verr.Add("limite_credito", "solo aplica a cuentas de tipo TARJETA_CREDITO")
	}
	return verr
}

// CreateCuenta creates an account for a user. A positive SaldoInicial is
// recorded inside the same transaction as an AJUSTE Transaccion crediting
// the new account, auto-provisioning the shared "Ajuste Inicial" category
// on first use.
func (s *cuentaService) CreateCuenta(usuarioID uint, in CuentaCreateInput) (*models.Cuenta, error) {
	in.TipoCuenta = strings.ToUpper(strings.TrimSpace(in.TipoCuenta))
	if in.Moneda != nil {
		upper := strings.ToUpper(*in.Moneda)
		in.Moneda = &upper
	}
	if verr := validateCuentaCreate(&in); verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	var usuario models.Usuario
	if err := s.db.First(&usuario, usuarioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUsuarioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	nombre := strings.TrimSpace(in.Nombre)
	var count int64
	if err := s.db.Model(&models.Cuenta{}).
		Where("usuario_id = ? AND nombre = ?", usuarioID, nombre).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCuentaName
	}

	cuenta := &models.Cuenta{
		UsuarioID:      usuarioID,
		Nombre:         nombre,
		TipoCuenta:     models.TipoCuenta(in.TipoCuenta),
		Institucion:    in.Institucion,
		NumeroCuenta:   in.NumeroCuenta,
		Moneda:         "USD",
		SaldoActual:    decimal.Zero,
		LimiteCredito:  in.LimiteCredito,
		DiaCorte:       in.DiaCorte,
		DiaPago:        in.DiaPago,
		TasaInteres:    in.TasaInteres,
		Activa:         true,
		IncluirEnTotal: true,
		ColorHex:       "#3B82F6",
		Icono:          in.Icono,
		Descripcion:    in.Descripcion,
		Notas:          in.Notas,
	}
	if in.Moneda != nil {
		cuenta.Moneda = *in.Moneda
	}
	if in.IncluirEnTotal != nil {
		cuenta.IncluirEnTotal = *in.IncluirEnTotal
	}
	if in.ColorHex != nil {
		cuenta.ColorHex = *in.ColorHex
	}
	if in.OrdenMostrar != nil {
		cuenta.OrdenMostrar = *in.OrdenMostrar
	}

	saldoInicial := decimal.Zero
	if in.SaldoInicial != nil {
		saldoInicial = *in.SaldoInicial
	}
	if saldoInicial.IsPositive() {
		cuenta.SaldoActual = saldoInicial
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cuenta).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if !saldoInicial.IsPositive() {
			return nil
		}

		categoria, err := lookupOrCreateCategoriaAjuste(tx)
		if err != nil {
			return err
		}

		now := time.Now()
		descripcion := "Saldo inicial de cuenta: " + cuenta.Nombre
		referencia := models.ReferenciaAjusteInicial
		ajuste := &models.Transaccion{
			UsuarioID:       usuarioID,
			CuentaDestinoID: &cuenta.CuentaID,
			CategoriaID:     &categoria.CategoriaID,
			Fecha:           now,
			Tipo:            models.TipoTransaccionAjuste,
			Monto:           saldoInicial,
			Descripcion:     &descripcion,
			Referencia:      &referencia,
		}
		if err := tx.Create(ajuste).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return tx.Model(cuenta).Update("ultimo_movimiento", now).Error
	})
	if err != nil {
		return nil, err
	}
	return cuenta, nil
}

// lookupOrCreateCategoriaAjuste finds the shared initial-adjustment
// category by its natural key, creating it on first use. Idempotent: the
// same row is returned on every call.
func lookupOrCreateCategoriaAjuste(tx *gorm.DB) (*models.Categoria, error) {
	var categoria models.Categoria
	err := tx.Where("nombre = ? AND tipo_transaccion = ?",
		models.CategoriaAjusteInicialNombre, models.TipoTransaccionAjuste).
		Attrs(models.Categoria{
			Nombre:          models.CategoriaAjusteInicialNombre,
			TipoTransaccion: models.TipoTransaccionAjuste,
			ColorHex:        "#6B7280",
			Activa:          true,
		}).
		FirstOrCreate(&categoria).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &categoria, nil
}

// GetUserCuentas retrieves a paginated, optionally filtered list of a
// user's accounts.
func (s *cuentaService) GetUserCuentas(usuarioID uint, page pagination.PageRequest, filter CuentaFilter) (*pagination.PageResponse[models.Cuenta], error) {
	query := s.db.Model(&models.Cuenta{}).Where("usuario_id = ?", usuarioID)
	if filter.Activa != nil {
		query = query.Where("activa = ?", *filter.Activa)
	}
	if filter.Tipo != nil {
		query = query.Where("tipo_cuenta = ?", strings.ToUpper(*filter.Tipo))
	}
	query = query.Order("orden_mostrar, cuenta_id")

	result, err := pagination.List[models.Cuenta](query, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

// GetCuentaByID retrieves an account by ID for a specific user
func (s *cuentaService) GetCuentaByID(usuarioID, cuentaID uint) (*models.Cuenta, error) {
	var cuenta models.Cuenta
	if err := s.db.Where("cuenta_id = ? AND usuario_id = ?", cuentaID, usuarioID).First(&cuenta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCuentaNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &cuenta, nil
}

// UpdateCuenta applies a partial update. The credit-limit rule is
// re-checked against the effective (merged) type and limit.
func (s *cuentaService) UpdateCuenta(usuarioID, cuentaID uint, in CuentaUpdateInput) (*models.Cuenta, error) {
	cuenta, err := s.GetCuentaByID(usuarioID, cuentaID)
	if err != nil {
		return nil, err
	}

	if in.TipoCuenta != nil {
		upper := strings.ToUpper(strings.TrimSpace(*in.TipoCuenta))
		in.TipoCuenta = &upper
	}
	if in.Moneda != nil {
		upper := strings.ToUpper(*in.Moneda)
		in.Moneda = &upper
	}

	verr := &apperrors.ValidationError{}
	if in.Nombre != nil {
		verr.Add("nombre", rules.NonEmptyTrimmed(*in.Nombre))
	}
	if in.TipoCuenta != nil {
		verr.Add("tipo_cuenta", rules.EnumMember(*in.TipoCuenta, models.TiposCuenta))
	}
	if in.Moneda != nil {
		verr.Add("moneda", rules.ISOCurrencyCode(*in.Moneda))
	}
	if in.LimiteCredito != nil {
		verr.Add("limite_credito", rules.NonNegativeAmount(*in.LimiteCredito))
	}
	if in.DiaCorte != nil {
		verr.Add("dia_corte", rules.DayOfMonth(*in.DiaCorte))
	}
	if in.DiaPago != nil {
		verr.Add("dia_pago", rules.DayOfMonth(*in.DiaPago))
	}
	if in.TasaInteres != nil {
		verr.Add("tasa_interes", rules.Percentage(*in.TasaInteres))
	}
	if in.ColorHex != nil {
		verr.Add("color_hex", rules.HexColor(*in.ColorHex))
	}
	if verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	tipoEfectivo := cuenta.TipoCuenta
	if in.TipoCuenta != nil {
		tipoEfectivo = models.TipoCuenta(*in.TipoCuenta)
	}
	limiteEfectivo := cuenta.LimiteCredito
	if in.LimiteCredito != nil {
		limiteEfectivo = in.LimiteCredito
	}
	esTarjeta := tipoEfectivo == models.TipoCuentaTarjetaCredito
	if esTarjeta && limiteEfectivo == nil {
		verr.Add("limite_credito", "es requerido para cuentas de tipo TARJETA_CREDITO")
	}
	if !esTarjeta && in.LimiteCredito != nil {
		verr.Add("limite_credito", "solo aplica a cuentas de tipo TARJETA_CREDITO")
	}
	// Retyping away from TARJETA_CREDITO drops the stored limit.
	limpiarLimite := !esTarjeta && in.LimiteCredito == nil && cuenta.LimiteCredito != nil
	if verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	updates := make(map[string]interface{})
	if in.Nombre != nil {
		nombre := strings.TrimSpace(*in.Nombre)
		if nombre != cuenta.Nombre {
			var count int64
			if err := s.db.Model(&models.Cuenta{}).
				Where("usuario_id = ? AND nombre = ? AND cuenta_id <> ?", usuarioID, nombre, cuentaID).
				Count(&count).Error; err != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if count > 0 {
				return nil, apperrors.ErrDuplicateCuentaName
			}
		}
		updates["nombre"] = nombre
	}
	if in.TipoCuenta != nil {
		updates["tipo_cuenta"] = *in.TipoCuenta
	}
	if in.Institucion != nil {
		updates["institucion"] = *in.Institucion
	}
	if in.NumeroCuenta != nil {
		updates["numero_cuenta"] = *in.NumeroCuenta
	}
	if in.Moneda != nil {
		updates["moneda"] = *in.Moneda
	}
	if in.LimiteCredito != nil {
		updates["limite_credito"] = *in.LimiteCredito
	}
	if limpiarLimite {
		updates["limite_credito"] = nil
	}
	if in.DiaCorte != nil {
		updates["dia_corte"] = *in.DiaCorte
	}
	if in.DiaPago != nil {
		updates["dia_pago"] = *in.DiaPago
	}
	if in.TasaInteres != nil {
		updates["tasa_interes"] = *in.TasaInteres
	}
	if in.Activa != nil {
		updates["activa"] = *in.Activa
	}
	if in.IncluirEnTotal != nil {
		updates["incluir_en_total"] = *in.IncluirEnTotal
	}
	if in.ColorHex != nil {
		updates["color_hex"] = *in.ColorHex
	}
	if in.Icono != nil {
		updates["icono"] = *in.Icono
	}
	if in.OrdenMostrar != nil {
		updates["orden_mostrar"] = *in.OrdenMostrar
	}
	if in.Descripcion != nil {
		updates["descripcion"] = *in.Descripcion
	}
	if in.Notas != nil {
		updates["notas"] = *in.Notas
	}

	if len(updates) > 0 {
		if err := s.db.Model(cuenta).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return cuenta, nil
}

// DeleteCuenta removes an account, cascading to its sub-accounts. Accounts
// referenced by transactions cannot be deleted.
func (s *cuentaService) DeleteCuenta(usuarioID, cuentaID uint) error {
	if _, err := s.GetCuentaByID(usuarioID, cuentaID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteWithPolicy(tx, "cuentas", cuentaID)
	})
}

// GetResumen aggregates the user's active accounts: total balance of the
// accounts marked incluir_en_total, count, and a per-type breakdown.
func (s *cuentaService) GetResumen(usuarioID uint) (*ResumenCuentas, error) {
	var cuentas []models.Cuenta
	if err := s.db.Where("usuario_id = ? AND activa = ?", usuarioID, true).Find(&cuentas).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resumen := &ResumenCuentas{
		SaldoTotal:    decimal.Zero,
		TotalCuentas:  len(cuentas),
		SaldosPorTipo: make(map[string]decimal.Decimal),
	}
	for _, c := range cuentas {
		tipo := string(c.TipoCuenta)
		resumen.SaldosPorTipo[tipo] = resumen.SaldosPorTipo[tipo].Add(c.SaldoActual)
		if c.IncluirEnTotal {
			resumen.SaldoTotal = resumen.SaldoTotal.Add(c.SaldoActual)
		}
	}
	return resumen, nil
}
