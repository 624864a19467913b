// Package services implements the mutation contracts of the bookkeeping
// core: creation, partial update and policy-driven deletion of the eleven
// entity types, with all field-level and cross-field business rules
// evaluated before any write.
package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ssamucr/chenchen/internal/models"
	"github.com/ssamucr/chenchen/internal/pagination"
)

// UsuarioServicer defines the contract for user-related business logic.
type UsuarioServicer interface {
	CreateUsuario(in UsuarioCreateInput) (*models.Usuario, error)
	GetUsuarioByID(id uint) (*models.Usuario, error)
	GetUsuarioByEmail(email string) (*models.Usuario, error)
	UpdateUsuario(id uint, in UsuarioUpdateInput) (*models.Usuario, error)
	DeleteUsuario(id uint) error
	AttemptLogin(email, password string) (*models.Usuario, error)
}

// CuentaFilter holds optional filter parameters for listing accounts.
type CuentaFilter struct {
	Activa *bool
	Tipo   *string
}

// ResumenCuentas aggregates a user's account balances.
type ResumenCuentas struct {
	SaldoTotal    decimal.Decimal            `json:"saldo_total"`
	TotalCuentas  int                        `json:"total_cuentas"`
	SaldosPorTipo map[string]decimal.Decimal `json:"saldos_por_tipo"`
}

// CuentaServicer defines the contract for account-related business logic.
type CuentaServicer interface {
	CreateCuenta(usuarioID uint, in CuentaCreateInput) (*models.Cuenta, error)
	GetUserCuentas(usuarioID uint, page pagination.PageRequest, filter CuentaFilter) (*pagination.PageResponse[models.Cuenta], error)
	GetCuentaByID(usuarioID, cuentaID uint) (*models.Cuenta, error)
	UpdateCuenta(usuarioID, cuentaID uint, in CuentaUpdateInput) (*models.Cuenta, error)
	DeleteCuenta(usuarioID, cuentaID uint) error
	GetResumen(usuarioID uint) (*ResumenCuentas, error)
}

// SubcuentaServicer defines the contract for sub-account business logic.
type SubcuentaServicer interface {
	CreateSubcuenta(usuarioID uint, in SubcuentaCreateInput) (*models.Subcuenta, error)
	GetCuentaSubcuentas(usuarioID, cuentaID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Subcuenta], error)
	GetSubcuentaByID(usuarioID, subcuentaID uint) (*models.Subcuenta, error)
	UpdateSubcuenta(usuarioID, subcuentaID uint, in SubcuentaUpdateInput) (*models.Subcuenta, error)
	DeleteSubcuenta(usuarioID, subcuentaID uint) error
}

// CategoriaServicer defines the contract for category business logic.
// Categories are shared across users.
type CategoriaServicer interface {
	CreateCategoria(in CategoriaCreateInput) (*models.Categoria, error)
	GetCategorias(page pagination.PageRequest, tipo *string) (*pagination.PageResponse[models.Categoria], error)
	GetCategoriaByID(categoriaID uint) (*models.Categoria, error)
	UpdateCategoria(categoriaID uint, in CategoriaUpdateInput) (*models.Categoria, error)
	DeleteCategoria(categoriaID uint) error
}

// TransaccionFilter holds optional filter parameters for listing transactions.
type TransaccionFilter struct {
	FechaDesde  *time.Time
	FechaHasta  *time.Time
	Tipo        *string
	CuentaID    *uint
	CategoriaID *uint
}

// TransaccionServicer defines the contract for transaction business logic.
type TransaccionServicer interface {
	CreateTransaccion(usuarioID uint, in TransaccionCreateInput) (*models.Transaccion, error)
	GetUserTransacciones(usuarioID uint, page pagination.PageRequest, filter TransaccionFilter) (*pagination.PageResponse[models.Transaccion], error)
	GetTransaccionByID(usuarioID, transaccionID uint) (*models.Transaccion, error)
	UpdateTransaccion(usuarioID, transaccionID uint, in TransaccionUpdateInput) (*models.Transaccion, error)
	DeleteTransaccion(usuarioID, transaccionID uint) error
}

// DeudaFilter holds optional filter parameters for listing debts.
type DeudaFilter struct {
	Estado *string
	Tipo   *string
}

// DeudaServicer defines the contract for debt business logic.
type DeudaServicer interface {
	CreateDeuda(usuarioID uint, in DeudaCreateInput) (*models.Deuda, error)
	GetUserDeudas(usuarioID uint, page pagination.PageRequest, filter DeudaFilter) (*pagination.PageResponse[models.Deuda], error)
	GetDeudaByID(usuarioID, deudaID uint) (*models.Deuda, error)
	UpdateDeuda(usuarioID, deudaID uint, in DeudaUpdateInput) (*models.Deuda, error)
	DeleteDeuda(usuarioID, deudaID uint) error
}

// MovimientoDeudaServicer defines the contract for debt ledger entries.
// Ledger entries are immutable history: there is no update or delete.
type MovimientoDeudaServicer interface {
	CreateMovimientoDeuda(usuarioID uint, in MovimientoDeudaInput) (*models.MovimientoDeuda, error)
	GetDeudaMovimientos(usuarioID, deudaID uint, page pagination.PageRequest) (*pagination.PageResponse[models.MovimientoDeuda], error)
	GetMovimientoDeudaByID(usuarioID, movimientoID uint) (*models.MovimientoDeuda, error)
}

// MovimientoSubcuentaServicer defines the contract for sub-account ledger
// entries. Like debt movements, entries are immutable history.
type MovimientoSubcuentaServicer interface {
	CreateMovimientoSubcuenta(usuarioID uint, in MovimientoSubcuentaInput) (*models.MovimientoSubcuenta, error)
	GetSubcuentaMovimientos(usuarioID, subcuentaID uint, page pagination.PageRequest) (*pagination.PageResponse[models.MovimientoSubcuenta], error)
	GetMovimientoSubcuentaByID(usuarioID, movimientoID uint) (*models.MovimientoSubcuenta, error)
}

// CompromisoServicer defines the contract for recurring commitments.
type CompromisoServicer interface {
	CreateCompromiso(usuarioID uint, in CompromisoCreateInput) (*models.CompromisoRecurrente, error)
	GetUserCompromisos(usuarioID uint, page pagination.PageRequest, activo *bool) (*pagination.PageResponse[models.CompromisoRecurrente], error)
	GetCompromisoByID(usuarioID, compromisoID uint) (*models.CompromisoRecurrente, error)
	UpdateCompromiso(usuarioID, compromisoID uint, in CompromisoUpdateInput) (*models.CompromisoRecurrente, error)
	DeleteCompromiso(usuarioID, compromisoID uint) error
	ProximoEvento(usuarioID, compromisoID uint) (*time.Time, error)
}

// ResumenPlan aggregates the pending items of a user's biweekly plan.
type ResumenPlan struct {
	TotalItems      int             `json:"total_items"`
	ItemsPendientes int             `json:"items_pendientes"`
	ItemsEjecutados int             `json:"items_ejecutados"`
	MontoPendiente  decimal.Decimal `json:"monto_pendiente"`
	MontoEjecutado  decimal.Decimal `json:"monto_ejecutado"`
}

// PlanQuincenalServicer defines the contract for biweekly plan items.
type PlanQuincenalServicer interface {
	CreateItem(usuarioID uint, in PlanItemCreateInput) (*models.PlanQuincenal, error)
	GetUserItems(usuarioID uint, page pagination.PageRequest, ejecutado *bool) (*pagination.PageResponse[models.PlanQuincenal], error)
	GetItemByID(usuarioID, itemID uint) (*models.PlanQuincenal, error)
	UpdateItem(usuarioID, itemID uint, in PlanItemUpdateInput) (*models.PlanQuincenal, error)
	DeleteItem(usuarioID, itemID uint) error
	MarcarEjecutado(usuarioID, itemID, transaccionID uint) (*models.PlanQuincenal, error)
	GetResumen(usuarioID uint) (*ResumenPlan, error)
}

// ProgresoGasto reports how far a planned expense has advanced.
type ProgresoGasto struct {
	GastoPlanificadoID uint            `json:"gasto_planificado_id"`
	MontoTotal         decimal.Decimal `json:"monto_total"`
	MontoGastado       decimal.Decimal `json:"monto_gastado"`
	MontoRestante      decimal.Decimal `json:"monto_restante"`
	Porcentaje         float64         `json:"porcentaje"`
	DiasParaObjetivo   *int            `json:"dias_para_objetivo,omitempty"`
}

// GastoPlanificadoServicer defines the contract for planned expenses.
type GastoPlanificadoServicer interface {
	CreateGasto(usuarioID uint, in GastoCreateInput) (*models.GastoPlanificado, error)
	GetSubcuentaGastos(usuarioID, subcuentaID uint, page pagination.PageRequest, estado *string) (*pagination.PageResponse[models.GastoPlanificado], error)
	GetGastoByID(usuarioID, gastoID uint) (*models.GastoPlanificado, error)
	UpdateGasto(usuarioID, gastoID uint, in GastoUpdateInput) (*models.GastoPlanificado, error)
	DeleteGasto(usuarioID, gastoID uint) error
	GetProgreso(usuarioID, gastoID uint) (*ProgresoGasto, error)
}
