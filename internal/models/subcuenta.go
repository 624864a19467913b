package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subcuenta is an internal envelope of a Cuenta with its own balance.
// SaldoActual changes only through sub-account movements.
type Subcuenta struct {
	SubcuentaID uint `gorm:"primaryKey;column:subcuenta_id" json:"subcuenta_id"`
	CuentaID    uint `gorm:"not null;index" json:"cuenta_id"`

	Nombre      string  `gorm:"size:100;not null" json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`

	MontoMeta   *decimal.Decimal `gorm:"type:decimal(15,2)" json:"monto_meta,omitempty"`
	SaldoActual decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0.00" json:"saldo_actual"`

	Activa       bool    `gorm:"not null;default:true" json:"activa"`
	ColorHex     string  `gorm:"size:7;not null;default:#8B5CF6" json:"color_hex"`
	Icono        *string `gorm:"size:50" json:"icono,omitempty"`
	OrdenMostrar int     `gorm:"not null;default:0" json:"orden_mostrar"`

	CreadaEn      time.Time `gorm:"column:creada_en;autoCreateTime" json:"creada_en"`
	ActualizadaEn time.Time `gorm:"column:actualizada_en;autoUpdateTime" json:"actualizada_en"`
}

// TableName overrides the default table name.
func (Subcuenta) TableName() string { return "subcuentas" }
