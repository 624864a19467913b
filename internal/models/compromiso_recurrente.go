package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoCompromiso classifies a recurring commitment.
type TipoCompromiso string

// Valid commitment types.
const (
	CompromisoIngreso TipoCompromiso = "INGRESO"
	CompromisoEgreso  TipoCompromiso = "EGRESO"
)

// TiposCompromiso lists every valid commitment type.
var TiposCompromiso = []string{
	string(CompromisoIngreso),
	string(CompromisoEgreso),
}

// Frecuencia is the cadence of a recurring commitment. Unlike debt payment
// frequencies it includes DIARIA.
type Frecuencia string

// Valid commitment frequencies.
const (
	FrecuenciaDiaria     Frecuencia = "DIARIA"
	FrecuenciaSemanal    Frecuencia = "SEMANAL"
	FrecuenciaQuincenal  Frecuencia = "QUINCENAL"
	FrecuenciaMensual    Frecuencia = "MENSUAL"
	FrecuenciaBimestral  Frecuencia = "BIMESTRAL"
	FrecuenciaTrimestral Frecuencia = "TRIMESTRAL"
	FrecuenciaSemestral  Frecuencia = "SEMESTRAL"
	FrecuenciaAnual      Frecuencia = "ANUAL"
)

// Frecuencias lists every valid commitment frequency.
var Frecuencias = []string{
	string(FrecuenciaDiaria),
	string(FrecuenciaSemanal),
	string(FrecuenciaQuincenal),
	string(FrecuenciaMensual),
	string(FrecuenciaBimestral),
	string(FrecuenciaTrimestral),
	string(FrecuenciaSemestral),
	string(FrecuenciaAnual),
}

// CompromisoRecurrente is a template describing a periodic income or
// expense. It records facts only: a separate batch process decides when
// events fire.
type CompromisoRecurrente struct {
	CompromisoID uint `gorm:"primaryKey;column:compromiso_id" json:"compromiso_id"`

	UsuarioID       uint  `gorm:"not null;index" json:"usuario_id"`
	CuentaDestinoID *uint `gorm:"column:cuenta_destino_id" json:"cuenta_destino_id,omitempty"`

	Descripcion string         `gorm:"not null" json:"descripcion"`
	Tipo        TipoCompromiso `gorm:"size:20;not null" json:"tipo"`
	Categoria   *string        `gorm:"size:100" json:"categoria,omitempty"`

	Monto      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"monto"`
	Frecuencia Frecuencia      `gorm:"size:30;not null" json:"frecuencia"`
	DiaPago    *int            `json:"dia_pago,omitempty"`

	FechaInicio  time.Time  `gorm:"type:date;not null" json:"fecha_inicio"`
	FechaFin     *time.Time `gorm:"type:date" json:"fecha_fin,omitempty"`
	UltimoEvento *time.Time `gorm:"type:date" json:"ultimo_evento,omitempty"`

	Activo      bool `gorm:"not null;default:true" json:"activo"`
	AutoGenerar bool `gorm:"not null;default:false" json:"auto_generar"`

	ColorHex string  `gorm:"size:7;not null;default:#8B5CF6" json:"color_hex"`
	Icono    *string `gorm:"size:50" json:"icono,omitempty"`
	Notas    *string `json:"notas,omitempty"`

	CreadoEn      time.Time `gorm:"column:creado_en;autoCreateTime" json:"creado_en"`
	ActualizadoEn time.Time `gorm:"column:actualizado_en;autoUpdateTime" json:"actualizado_en"`
}

// TableName overrides the default table name.
func (CompromisoRecurrente) TableName() string { return "compromisos_recurrentes" }
