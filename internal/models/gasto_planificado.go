package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoGasto is the lifecycle state of a planned expense.
type EstadoGasto string

// Valid planned expense states.
const (
	EstadoGastoPendiente  EstadoGasto = "PENDIENTE"
	EstadoGastoEnProgreso EstadoGasto = "EN_PROGRESO"
	EstadoGastoCompletado EstadoGasto = "COMPLETADO"
	EstadoGastoCancelado  EstadoGasto = "CANCELADO"
	EstadoGastoVencido    EstadoGasto = "VENCIDO"
)

// EstadosGasto lists every valid planned expense state.
var EstadosGasto = []string{
	string(EstadoGastoPendiente),
	string(EstadoGastoEnProgreso),
	string(EstadoGastoCompletado),
	string(EstadoGastoCancelado),
	string(EstadoGastoVencido),
}

// GastoPlanificado is a budget goal tracked against a Subcuenta. The spent
// amount can never exceed the target, and only COMPLETADO rows carry a
// completion date.
type GastoPlanificado struct {
	GastoPlanificadoID uint `gorm:"primaryKey;column:gasto_planificado_id" json:"gasto_planificado_id"`

	SubcuentaID uint `gorm:"not null;index" json:"subcuenta_id"`

	Descripcion string  `gorm:"not null" json:"descripcion"`
	Categoria   *string `gorm:"size:100" json:"categoria,omitempty"`

	MontoTotal   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"monto_total"`
	MontoGastado decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0.00" json:"monto_gastado"`

	FechaCreacion   time.Time  `gorm:"type:date;not null" json:"fecha_creacion"`
	FechaObjetivo   *time.Time `gorm:"type:date" json:"fecha_objetivo,omitempty"`
	FechaCompletado *time.Time `gorm:"type:date" json:"fecha_completado,omitempty"`

	Estado    EstadoGasto `gorm:"size:20;not null;default:PENDIENTE" json:"estado"`
	Prioridad Prioridad   `gorm:"size:20;default:MEDIA" json:"prioridad"`

	ColorHex string  `gorm:"size:7;not null;default:#F59E0B" json:"color_hex"`
	Notas    *string `json:"notas,omitempty"`

	CreadoEn      time.Time `gorm:"column:creado_en;autoCreateTime" json:"creado_en"`
	ActualizadoEn time.Time `gorm:"column:actualizado_en;autoUpdateTime" json:"actualizado_en"`
}

// TableName overrides the default table name.
func (GastoPlanificado) TableName() string { return "gastos_planificados" }
