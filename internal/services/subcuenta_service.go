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

// SubcuentaCreateInput carries the fields accepted when creating a
// sub-account. A positive SaldoInicial is recorded as an ASIGNACION
// movement backed by an adjustment transaction.
type SubcuentaCreateInput struct {
	CuentaID     uint             `json:"cuenta_id" binding:"required"`
	Nombre       string           `json:"nombre" binding:"required"`
	Descripcion  *string          `json:"descripcion"`
	MontoMeta    *decimal.Decimal `json:"monto_meta"`
	SaldoInicial *decimal.Decimal `json:"saldo_inicial"`
	ColorHex     *string          `json:"color_hex" binding:"omitempty,hex_color"`
	Icono        *string          `json:"icono"`
	OrdenMostrar *int             `json:"orden_mostrar"`
}

// SubcuentaUpdateInput carries the fields accepted on partial update.
type SubcuentaUpdateInput struct {
	Nombre       *string          `json:"nombre"`
	Descripcion  *string          `json:"descripcion"`
	MontoMeta    *decimal.Decimal `json:"monto_meta"`
	Activa       *bool            `json:"activa"`
	ColorHex     *string          `json:"color_hex" binding:"omitempty,hex_color"`
	Icono        *string          `json:"icono"`
	OrdenMostrar *int             `json:"orden_mostrar"`
}

// subcuentaService handles sub-account business logic.
type subcuentaService struct {
	db *gorm.DB
}

// NewSubcuentaService creates a new SubcuentaServicer.
func NewSubcuentaService(db *gorm.DB) SubcuentaServicer {
	return &subcuentaService{db: db}
}

func validateSubcuentaCreate(in *SubcuentaCreateInput) *apperrors.ValidationError {
	verr := &apperrors.ValidationError{}
	verr.Add("nombre", rules.NonEmptyTrimmed(in.Nombre))
	if in.MontoMeta != nil {
		verr.Add("monto_meta", rules.PositiveAmount(*in.MontoMeta))
	}
	if in.SaldoInicial != nil {
		verr.Add("saldo_inicial", rules.NonNegativeAmount(*in.SaldoInicial))
	}
	if in.ColorHex != nil {
		verr.Add("color_hex", rules.HexColor(*in.ColorHex))
	}
	return verr
}

// CreateSubcuenta creates an envelope inside one of the user's accounts.
func (s *subcuentaService) CreateSubcuenta(usuarioID uint, in SubcuentaCreateInput) (*models.Subcuenta, error) {
	if verr := validateSubcuentaCreate(&in); verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	// The parent account must exist and belong to the user.
	var cuenta models.Cuenta
	if err := s.db.Where("cuenta_id = ? AND usuario_id = ?", in.CuentaID, usuarioID).First(&cuenta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCuentaNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	subcuenta := &models.Subcuenta{
		CuentaID:    in.CuentaID,
		Nombre:      strings.TrimSpace(in.Nombre),
		Descripcion: in.Descripcion,
		MontoMeta:   in.MontoMeta,
		SaldoActual: decimal.Zero,
		Activa:      true,
		ColorHex:    "#8B5CF6",
		Icono:       in.Icono,
	}
	if in.ColorHex != nil {
		subcuenta.ColorHex = *in.ColorHex
	}
	if in.OrdenMostrar != nil {
		subcuenta.OrdenMostrar = *in.OrdenMostrar
	}

	saldoInicial := decimal.Zero
	if in.SaldoInicial != nil {
		saldoInicial = *in.SaldoInicial
	}
	if saldoInicial.IsPositive() {
		subcuenta.SaldoActual = saldoInicial
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(subcuenta).Error; err != nil {
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
		descripcion := "Saldo inicial de subcuenta: " + subcuenta.Nombre
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

		movimiento := &models.MovimientoSubcuenta{
			SubcuentaID:   subcuenta.SubcuentaID,
			TransaccionID: ajuste.TransaccionID,
			Fecha:         now,
			Tipo:          models.MovimientoSubcuentaAsignacion,
			Monto:         saldoInicial,
			Descripcion:   &descripcion,
		}
		if err := tx.Create(movimiento).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return subcuenta, nil
}

// GetCuentaSubcuentas retrieves a paginated list of an account's
// sub-accounts.
func (s *subcuentaService) GetCuentaSubcuentas(usuarioID, cuentaID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Subcuenta], error) {
	var cuenta models.Cuenta
	if err := s.db.Where("cuenta_id = ? AND usuario_id = ?", cuentaID, usuarioID).First(&cuenta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCuentaNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	query := s.db.Model(&models.Subcuenta{}).
		Where("cuenta_id = ?", cuentaID).
		Order("orden_mostrar, subcuenta_id")
	result, err := pagination.List[models.Subcuenta](query, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

// GetSubcuentaByID retrieves a sub-account, checking ownership through its
// parent account.
func (s *subcuentaService) GetSubcuentaByID(usuarioID, subcuentaID uint) (*models.Subcuenta, error) {
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

// UpdateSubcuenta applies a partial update. The balance is not updatable:
// it changes only through movements.
func (s *subcuentaService) UpdateSubcuenta(usuarioID, subcuentaID uint, in SubcuentaUpdateInput) (*models.Subcuenta, error) {
	subcuenta, err := s.GetSubcuentaByID(usuarioID, subcuentaID)
	if err != nil {
		return nil, err
	}

	verr := &apperrors.ValidationError{}
	if in.Nombre != nil {
		verr.Add("nombre", rules.NonEmptyTrimmed(*in.Nombre))
	}
	if in.MontoMeta != nil {
		verr.Add("monto_meta", rules.PositiveAmount(*in.MontoMeta))
	}
	if in.ColorHex != nil {
		verr.Add("color_hex", rules.HexColor(*in.ColorHex))
	}
	if verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	updates := make(map[string]interface{})
	if in.Nombre != nil {
		updates["nombre"] = strings.TrimSpace(*in.Nombre)
	}
	if in.Descripcion != nil {
		updates["descripcion"] = *in.Descripcion
	}
	if in.MontoMeta != nil {
		updates["monto_meta"] = *in.MontoMeta
	}
	if in.Activa != nil {
		updates["activa"] = *in.Activa
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

	if len(updates) > 0 {
		if err := s.db.Model(subcuenta).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return subcuenta, nil
}

// DeleteSubcuenta removes a sub-account, cascading to its planned
// expenses. Sub-accounts with movement history cannot be deleted.
func (s *subcuentaService) DeleteSubcuenta(usuarioID, subcuentaID uint) error {
	if _, err := s.GetSubcuentaByID(usuarioID, subcuentaID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteWithPolicy(tx, "subcuentas", subcuentaID)
	})
}
