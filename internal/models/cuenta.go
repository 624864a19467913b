package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoCuenta classifies a financial account.
type TipoCuenta string

// Valid account types.
const (
	TipoCuentaEfectivo       TipoCuenta = "EFECTIVO"
	TipoCuentaCorriente      TipoCuenta = "CUENTA_CORRIENTE"
	TipoCuentaAhorro         TipoCuenta = "CUENTA_AHORRO"
	TipoCuentaNomina         TipoCuenta = "CUENTA_NOMINA"
	TipoCuentaTarjetaCredito TipoCuenta = "TARJETA_CREDITO"
	TipoCuentaTarjetaDebito  TipoCuenta = "TARJETA_DEBITO"
	TipoCuentaInversion      TipoCuenta = "INVERSION"
	TipoCuentaPrestamo       TipoCuenta = "PRESTAMO"
	TipoCuentaWalletDigital  TipoCuenta = "WALLET_DIGITAL"
	TipoCuentaCriptomoneda   TipoCuenta = "CRIPTOMONEDA"
	TipoCuentaOtro           TipoCuenta = "OTRO"
)

// TiposCuenta lists every valid account type, for enum validation.
var TiposCuenta = []string{
	string(TipoCuentaEfectivo),
	string(TipoCuentaCorriente),
	string(TipoCuentaAhorro),
	string(TipoCuentaNomina),
	string(TipoCuentaTarjetaCredito),
	string(TipoCuentaTarjetaDebito),
	string(TipoCuentaInversion),
	string(TipoCuentaPrestamo),
	string(TipoCuentaWalletDigital),
	string(TipoCuentaCriptomoneda),
	string(TipoCuentaOtro),
}

// Cuenta represents a financial account owned by a Usuario.
// SaldoActual is read-only for clients: it changes only through transactions.
type Cuenta struct {
	CuentaID  uint `gorm:"primaryKey;column:cuenta_id" json:"cuenta_id"`
	UsuarioID uint `gorm:"not null;index" json:"usuario_id"`

	Nombre       string     `gorm:"size:100;not null" json:"nombre"`
	TipoCuenta   TipoCuenta `gorm:"size:30;not null" json:"tipo_cuenta"`
	Institucion  *string    `gorm:"size:100" json:"institucion,omitempty"`
	NumeroCuenta *string    `gorm:"size:50" json:"numero_cuenta,omitempty"`
	Moneda       string     `gorm:"size:3;not null;default:USD" json:"moneda"`

	SaldoActual   decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0.00" json:"saldo_actual"`
	LimiteCredito *decimal.Decimal `gorm:"type:decimal(15,2)" json:"limite_credito,omitempty"`

	DiaCorte    *int             `json:"dia_corte,omitempty"`
	DiaPago     *int             `json:"dia_pago,omitempty"`
	TasaInteres *decimal.Decimal `gorm:"type:decimal(5,2)" json:"tasa_interes,omitempty"`

	Activa         bool    `gorm:"not null;default:true" json:"activa"`
	IncluirEnTotal bool    `gorm:"not null;default:true" json:"incluir_en_total"`
	ColorHex       string  `gorm:"size:7;not null;default:#3B82F6" json:"color_hex"`
	Icono          *string `gorm:"size:50" json:"icono,omitempty"`
	OrdenMostrar   int     `gorm:"not null;default:0" json:"orden_mostrar"`

	Descripcion *string `json:"descripcion,omitempty"`
	Notas       *string `json:"notas,omitempty"`

	CreadaEn         time.Time  `gorm:"column:creada_en;autoCreateTime" json:"creada_en"`
	ActualizadaEn    time.Time  `gorm:"column:actualizada_en;autoUpdateTime" json:"actualizada_en"`
	UltimoMovimiento *time.Time `gorm:"column:ultimo_movimiento" json:"ultimo_movimiento,omitempty"`
}

// TableName overrides the default table name.
func (Cuenta) TableName() string { return "cuentas" }

// EsTarjetaCredito reports whether the account is a credit card, the only
// type that carries a credit limit.
func (c *Cuenta) EsTarjetaCredito() bool { return c.TipoCuenta == TipoCuentaTarjetaCredito }
