package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoDeuda classifies a debt or receivable.
type TipoDeuda string

// Valid debt types. POR_COBRAR is the only receivable type; its balances
// are negative by convention.
const (
	TipoDeudaTarjeta   TipoDeuda = "TARJETA"
	TipoDeudaPrestamo  TipoDeuda = "PRESTAMO"
	TipoDeudaHipoteca  TipoDeuda = "HIPOTECA"
	TipoDeudaAuto      TipoDeuda = "AUTO"
	TipoDeudaPorPagar  TipoDeuda = "POR_PAGAR"
	TipoDeudaPorCobrar TipoDeuda = "POR_COBRAR"
	TipoDeudaOtro      TipoDeuda = "OTRO"
)

// TiposDeuda lists every valid debt type, for enum validation.
var TiposDeuda = []string{
	string(TipoDeudaTarjeta),
	string(TipoDeudaPrestamo),
	string(TipoDeudaHipoteca),
	string(TipoDeudaAuto),
	string(TipoDeudaPorPagar),
	string(TipoDeudaPorCobrar),
	string(TipoDeudaOtro),
}

// EstadoDeuda is the lifecycle state of a debt.
type EstadoDeuda string

// Valid debt states.
const (
	EstadoDeudaActiva       EstadoDeuda = "ACTIVA"
	EstadoDeudaPagada       EstadoDeuda = "PAGADA"
	EstadoDeudaVencida      EstadoDeuda = "VENCIDA"
	EstadoDeudaRefinanciada EstadoDeuda = "REFINANCIADA"
	EstadoDeudaCancelada    EstadoDeuda = "CANCELADA"
)

// EstadosDeuda lists every valid debt state, for enum validation.
var EstadosDeuda = []string{
	string(EstadoDeudaActiva),
	string(EstadoDeudaPagada),
	string(EstadoDeudaVencida),
	string(EstadoDeudaRefinanciada),
	string(EstadoDeudaCancelada),
}

// Prioridad ranks debts, plan items, and planned expenses.
type Prioridad string

// Valid priorities.
const (
	PrioridadAlta  Prioridad = "ALTA"
	PrioridadMedia Prioridad = "MEDIA"
	PrioridadBaja  Prioridad = "BAJA"
)

// Prioridades lists every valid priority, for enum validation.
var Prioridades = []string{
	string(PrioridadAlta),
	string(PrioridadMedia),
	string(PrioridadBaja),
}

// FrecuenciaPago is a payment cadence for debts.
type FrecuenciaPago string

// Valid debt payment frequencies.
const (
	FrecuenciaPagoSemanal    FrecuenciaPago = "SEMANAL"
	FrecuenciaPagoQuincenal  FrecuenciaPago = "QUINCENAL"
	FrecuenciaPagoMensual    FrecuenciaPago = "MENSUAL"
	FrecuenciaPagoBimestral  FrecuenciaPago = "BIMESTRAL"
	FrecuenciaPagoTrimestral FrecuenciaPago = "TRIMESTRAL"
	FrecuenciaPagoSemestral  FrecuenciaPago = "SEMESTRAL"
	FrecuenciaPagoAnual      FrecuenciaPago = "ANUAL"
)

// FrecuenciasPago lists every valid debt payment frequency.
var FrecuenciasPago = []string{
	string(FrecuenciaPagoSemanal),
	string(FrecuenciaPagoQuincenal),
	string(FrecuenciaPagoMensual),
	string(FrecuenciaPagoBimestral),
	string(FrecuenciaPagoTrimestral),
	string(FrecuenciaPagoSemestral),
	string(FrecuenciaPagoAnual),
}

// Deuda tracks a debt (payable) or receivable independently of account
// balances. For POR_COBRAR the initial balance is negative and the current
// balance lies between it and zero; for all other types the initial balance
// is positive and the current balance lies between zero and it.
type Deuda struct {
	DeudaID uint `gorm:"primaryKey;column:deuda_id" json:"deuda_id"`

	UsuarioID   uint  `gorm:"not null;index" json:"usuario_id"`
	CuentaID    *uint `gorm:"index" json:"cuenta_id,omitempty"`
	SubcuentaID *uint `gorm:"index" json:"subcuenta_id,omitempty"`

	Tipo        TipoDeuda `gorm:"size:30;not null" json:"tipo"`
	Acreedor    *string   `gorm:"size:150" json:"acreedor,omitempty"`
	Deudor      *string   `gorm:"size:150" json:"deudor,omitempty"`
	Descripcion *string   `json:"descripcion,omitempty"`

	SaldoInicial decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"saldo_inicial"`
	SaldoActual  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"saldo_actual"`

	MontoCuota     *decimal.Decimal `gorm:"type:decimal(15,2)" json:"monto_cuota,omitempty"`
	FrecuenciaPago *FrecuenciaPago  `gorm:"size:30" json:"frecuencia_pago,omitempty"`
	DiaPago        *int             `json:"dia_pago,omitempty"`
	TasaInteres    *decimal.Decimal `gorm:"type:decimal(5,2)" json:"tasa_interes,omitempty"`
	NumeroCuotas   *int             `json:"numero_cuotas,omitempty"`
	CuotasPagadas  int              `gorm:"not null;default:0" json:"cuotas_pagadas"`

	FechaInicio      time.Time  `gorm:"type:date;not null" json:"fecha_inicio"`
	FechaVencimiento *time.Time `gorm:"type:date" json:"fecha_vencimiento,omitempty"`
	ProximoPago      *time.Time `gorm:"type:date" json:"proximo_pago,omitempty"`

	Estado    EstadoDeuda `gorm:"size:20;not null;default:ACTIVA" json:"estado"`
	Prioridad Prioridad   `gorm:"size:20;default:MEDIA" json:"prioridad"`

	ColorHex string  `gorm:"size:7;not null;default:#EF4444" json:"color_hex"`
	Icono    *string `gorm:"size:50" json:"icono,omitempty"`

	CreadaEn      time.Time  `gorm:"column:creada_en;autoCreateTime" json:"creada_en"`
	ActualizadaEn time.Time  `gorm:"column:actualizada_en;autoUpdateTime" json:"actualizada_en"`
	UltimoPago    *time.Time `gorm:"column:ultimo_pago" json:"ultimo_pago,omitempty"`
}

// TableName overrides the default table name.
func (Deuda) TableName() string { return "deudas" }

// EsPorCobrar reports whether the debt is a receivable.
func (d *Deuda) EsPorCobrar() bool { return d.Tipo == TipoDeudaPorCobrar }

// RequiereAcreedor reports whether the debt type requires a creditor name.
func RequiereAcreedor(t TipoDeuda) bool {
	switch t {
	case TipoDeudaTarjeta, TipoDeudaPrestamo, TipoDeudaHipoteca, TipoDeudaAuto, TipoDeudaPorPagar:
		return true
	}
	return false
}
