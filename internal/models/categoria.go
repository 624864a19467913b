package models

import "time"

// TipoTransaccion classifies a transaction and the categories that apply
// to it.
type TipoTransaccion string

// Valid transaction types.
const (
	TipoTransaccionIngreso       TipoTransaccion = "INGRESO"
	TipoTransaccionGasto         TipoTransaccion = "GASTO"
	TipoTransaccionTransferencia TipoTransaccion = "TRANSFERENCIA"
	TipoTransaccionAjuste        TipoTransaccion = "AJUSTE"
)

// TiposTransaccion lists every valid transaction type, for enum validation.
var TiposTransaccion = []string{
	string(TipoTransaccionIngreso),
	string(TipoTransaccionGasto),
	string(TipoTransaccionTransferencia),
	string(TipoTransaccionAjuste),
}

// Categoria classifies transactions. Categories form a two-level tree:
// a subcategory points at its parent through CategoriaPadreID, and the
// es_subcategoria flag must agree with the presence of the parent id.
type Categoria struct {
	CategoriaID uint `gorm:"primaryKey;column:categoria_id" json:"categoria_id"`

	Nombre      string  `gorm:"size:100;not null" json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
	ColorHex    string  `gorm:"size:7;not null;default:#6B7280" json:"color_hex"`
	Icono       *string `gorm:"size:50" json:"icono,omitempty"`

	TipoTransaccion  TipoTransaccion `gorm:"size:20;not null" json:"tipo_transaccion"`
	EsSubcategoria   bool            `gorm:"not null;default:false" json:"es_subcategoria"`
	CategoriaPadreID *uint           `gorm:"column:categoria_padre_id" json:"categoria_padre_id,omitempty"`

	Activa       bool `gorm:"not null;default:true" json:"activa"`
	OrdenMostrar int  `gorm:"not null;default:0" json:"orden_mostrar"`

	CreadaEn      time.Time `gorm:"column:creada_en;autoCreateTime" json:"creada_en"`
	ActualizadaEn time.Time `gorm:"column:actualizada_en;autoUpdateTime" json:"actualizada_en"`
}

// TableName overrides the default table name.
func (Categoria) TableName() string { return "categorias" }

// Natural key of the category auto-provisioned for initial balance
// adjustments.
const (
	CategoriaAjusteInicialNombre = "Ajuste Inicial"
	ReferenciaAjusteInicial      = "AJUSTE_INICIAL"
)
