package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaccion is an atomic financial event. At least one of the two account
// references must be present; transfers require both, and they must differ.
type Transaccion struct {
	TransaccionID uint `gorm:"primaryKey;column:transaccion_id" json:"transaccion_id"`

	UsuarioID              uint  `gorm:"not null;index" json:"usuario_id"`
	CuentaOrigenID         *uint `gorm:"column:cuenta_origen_id;index" json:"cuenta_origen_id,omitempty"`
	CuentaDestinoID        *uint `gorm:"column:cuenta_destino_id;index" json:"cuenta_destino_id,omitempty"`
	CategoriaID            *uint `gorm:"index" json:"categoria_id,omitempty"`
	CompromisoRecurrenteID *uint `gorm:"column:compromiso_recurrente_id" json:"compromiso_recurrente_id,omitempty"`

	Fecha       time.Time       `gorm:"not null" json:"fecha"`
	Tipo        TipoTransaccion `gorm:"size:20;not null" json:"tipo"`
	Monto       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"monto"`
	Descripcion *string         `json:"descripcion,omitempty"`
	Referencia  *string         `gorm:"size:100" json:"referencia,omitempty"`

	CreadaEn      time.Time `gorm:"column:creada_en;autoCreateTime" json:"creada_en"`
	ActualizadaEn time.Time `gorm:"column:actualizada_en;autoUpdateTime" json:"actualizada_en"`
}

// TableName overrides the default table name.
func (Transaccion) TableName() string { return "transacciones" }
