package models

import "time"

// Usuario represents an account holder.
type Usuario struct {
	UsuarioID       uint       `gorm:"primaryKey;column:usuario_id" json:"usuario_id"`
	Email           string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Nombre          string     `gorm:"size:100;not null" json:"nombre"`
	Apellido        string     `gorm:"size:100;not null" json:"apellido"`
	PasswordHash    string     `gorm:"size:255;not null" json:"-"`
	MonedaPrincipal string     `gorm:"size:3;not null;default:USD" json:"moneda_principal"`
	ZonaHoraria     string     `gorm:"size:50;not null;default:UTC" json:"zona_horaria"`
	Idioma          string     `gorm:"size:2;not null;default:es" json:"idioma"`
	Activo          bool       `gorm:"not null;default:true" json:"activo"`
	EmailVerificado bool       `gorm:"not null;default:false" json:"email_verificado"`
	CreadoEn        time.Time  `gorm:"column:creado_en;autoCreateTime" json:"creado_en"`
	ActualizadoEn   time.Time  `gorm:"column:actualizado_en;autoUpdateTime" json:"actualizado_en"`
	UltimoAcceso    *time.Time `gorm:"column:ultimo_acceso" json:"ultimo_acceso,omitempty"`
}

// TableName overrides the default table name.
func (Usuario) TableName() string { return "usuarios" }
