package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoMovimientoDeuda classifies a debt ledger entry.
type TipoMovimientoDeuda string

// Valid debt movement types.
const (
	MovimientoDeudaCargo          TipoMovimientoDeuda = "CARGO"
	MovimientoDeudaPago           TipoMovimientoDeuda = "PAGO"
	MovimientoDeudaAjuste         TipoMovimientoDeuda = "AJUSTE"
	MovimientoDeudaInteres        TipoMovimientoDeuda = "INTERES"
	MovimientoDeudaRefinanciacion TipoMovimientoDeuda = "REFINANCIACION"
)

// TiposMovimientoDeuda lists every valid debt movement type.
var TiposMovimientoDeuda = []string{
	string(MovimientoDeudaCargo),
	string(MovimientoDeudaPago),
	string(MovimientoDeudaAjuste),
	string(MovimientoDeudaInteres),
	string(MovimientoDeudaRefinanciacion),
}

// MovimientoDeuda is an immutable debt ledger entry backed 1:1 by a
// Transaccion. For PAGO entries the capital/interest breakdown is mandatory
// and must reconcile with the total amount; for every other type the
// breakdown fields must be absent.
type MovimientoDeuda struct {
	MovimientoDeudaID uint `gorm:"primaryKey;column:movimiento_deuda_id" json:"movimiento_deuda_id"`

	DeudaID       uint `gorm:"not null;index" json:"deuda_id"`
	TransaccionID uint `gorm:"not null;index" json:"transaccion_id"`

	Fecha       time.Time           `gorm:"not null" json:"fecha"`
	Tipo        TipoMovimientoDeuda `gorm:"size:30;not null" json:"tipo"`
	Monto       decimal.Decimal     `gorm:"type:decimal(15,2);not null" json:"monto"`
	Descripcion *string             `json:"descripcion,omitempty"`

	InteresGenerado *decimal.Decimal `gorm:"type:decimal(15,2)" json:"interes_generado,omitempty"`
	CapitalPagado   *decimal.Decimal `gorm:"type:decimal(15,2)" json:"capital_pagado,omitempty"`
	InteresPagado   *decimal.Decimal `gorm:"type:decimal(15,2)" json:"interes_pagado,omitempty"`

	CreadoEn      time.Time `gorm:"column:creado_en;autoCreateTime" json:"creado_en"`
	ActualizadoEn time.Time `gorm:"column:actualizado_en;autoUpdateTime" json:"actualizado_en"`
}

// TableName overrides the default table name.
func (MovimientoDeuda) TableName() string { return "movimientos_deuda" }
