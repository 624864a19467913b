package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoMovimientoSubcuenta classifies a sub-account ledger entry.
type TipoMovimientoSubcuenta string

// Valid sub-account movement types.
const (
	MovimientoSubcuentaAsignacion    TipoMovimientoSubcuenta = "ASIGNACION"
	MovimientoSubcuentaGasto         TipoMovimientoSubcuenta = "GASTO"
	MovimientoSubcuentaTransferencia TipoMovimientoSubcuenta = "TRANSFERENCIA"
	MovimientoSubcuentaAjuste        TipoMovimientoSubcuenta = "AJUSTE"
)

// TiposMovimientoSubcuenta lists every valid sub-account movement type.
var TiposMovimientoSubcuenta = []string{
	string(MovimientoSubcuentaAsignacion),
	string(MovimientoSubcuentaGasto),
	string(MovimientoSubcuentaTransferencia),
	string(MovimientoSubcuentaAjuste),
}

// MovimientoSubcuenta is an immutable sub-account ledger entry backed by a
// Transaccion. Only TRANSFERENCIA entries carry a destination sub-account.
type MovimientoSubcuenta struct {
	MovimientoSubcuentaID uint `gorm:"primaryKey;column:movimiento_subcuenta_id" json:"movimiento_subcuenta_id"`

	SubcuentaID        uint  `gorm:"not null;index" json:"subcuenta_id"`
	SubcuentaDestinoID *uint `gorm:"column:subcuenta_destino_id;index" json:"subcuenta_destino_id,omitempty"`
	TransaccionID      uint  `gorm:"not null;index" json:"transaccion_id"`

	Fecha       time.Time               `gorm:"not null" json:"fecha"`
	Tipo        TipoMovimientoSubcuenta `gorm:"size:30;not null" json:"tipo"`
	Monto       decimal.Decimal         `gorm:"type:decimal(15,2);not null" json:"monto"`
	Descripcion *string                 `json:"descripcion,omitempty"`

	CreadoEn      time.Time `gorm:"column:creado_en;autoCreateTime" json:"creado_en"`
	ActualizadoEn time.Time `gorm:"column:actualizado_en;autoUpdateTime" json:"actualizado_en"`
}

// TableName overrides the default table name.
func (MovimientoSubcuenta) TableName() string { return "movimientos_subcuentas" }
