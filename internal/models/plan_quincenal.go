package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoMovimientoPlan classifies a biweekly plan item. Each kind demands its
// own set of references: account transfers need distinct source and
// destination accounts, sub-account movements and savings need a source
// account plus destination sub-account, and debt payments need a source
// account plus debt.
type TipoMovimientoPlan string

// Valid plan movement kinds.
const (
	PlanTransferenciaCuentas TipoMovimientoPlan = "TRANSFERENCIA_CUENTAS"
	PlanMovimientoSubcuenta  TipoMovimientoPlan = "MOVIMIENTO_SUBCUENTA"
	PlanPagoDeuda            TipoMovimientoPlan = "PAGO_DEUDA"
	PlanAhorro               TipoMovimientoPlan = "AHORRO"
)

// TiposMovimientoPlan lists every valid plan movement kind.
var TiposMovimientoPlan = []string{
	string(PlanTransferenciaCuentas),
	string(PlanMovimientoSubcuenta),
	string(PlanPagoDeuda),
	string(PlanAhorro),
}

// PlanQuincenal is a queued, prioritized, not-yet-executed movement
// instruction. Execution is performed by an external process which records
// the generated transaction back onto the item.
type PlanQuincenal struct {
	ItemID uint `gorm:"primaryKey;column:item_id" json:"item_id"`

	UsuarioID             uint  `gorm:"not null;index" json:"usuario_id"`
	CuentaOrigenID        *uint `gorm:"column:cuenta_origen_id" json:"cuenta_origen_id,omitempty"`
	CuentaDestinoID       *uint `gorm:"column:cuenta_destino_id" json:"cuenta_destino_id,omitempty"`
	SubcuentaDestinoID    *uint `gorm:"column:subcuenta_destino_id" json:"subcuenta_destino_id,omitempty"`
	DeudaID               *uint `json:"deuda_id,omitempty"`
	TransaccionGeneradaID *uint `gorm:"column:transaccion_generada_id" json:"transaccion_generada_id,omitempty"`

	Nombre         string             `gorm:"size:150;not null" json:"nombre"`
	Descripcion    *string            `json:"descripcion,omitempty"`
	TipoMovimiento TipoMovimientoPlan `gorm:"size:30;not null" json:"tipo_movimiento"`

	Monto decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"monto"`

	Activo         bool      `gorm:"not null;default:true" json:"activo"`
	Ejecutado      bool      `gorm:"not null;default:false" json:"ejecutado"`
	Prioridad      Prioridad `gorm:"size:20;default:MEDIA" json:"prioridad"`
	OrdenEjecucion int       `gorm:"not null;default:0" json:"orden_ejecucion"`

	CreadoEn      time.Time  `gorm:"column:creado_en;autoCreateTime" json:"creado_en"`
	ActualizadoEn time.Time  `gorm:"column:actualizado_en;autoUpdateTime" json:"actualizado_en"`
	EjecutadoEn   *time.Time `gorm:"column:ejecutado_en" json:"ejecutado_en,omitempty"`
}

// TableName overrides the default table name.
func (PlanQuincenal) TableName() string { return "plan_quincenal" }
