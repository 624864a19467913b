package models

// DeletePolicy describes how a delete propagates across a foreign key.
type DeletePolicy string

// Delete propagation policies. The storage layer is not trusted to enforce
// these; the service layer walks the relation table on every delete.
const (
	Cascade  DeletePolicy = "CASCADE"
	Restrict DeletePolicy = "RESTRICT"
	SetNull  DeletePolicy = "SET_NULL"
)

// Relation declares one foreign key of the entity graph together with its
// delete propagation policy. Owner and Dependent are table names;
// ForeignKey is the dependent's column referencing the owner.
type Relation struct {
	Owner      string
	Dependent  string
	ForeignKey string
	Policy     DeletePolicy
}

// Relations is the full referential graph. Ledger tables (movimientos)
// RESTRICT their parents: ledger entries are immutable history and are
// never silently dropped.
var Relations = []Relation{
	// Usuario owns almost everything. Transaction history blocks user
	// deletion outright.
	{Owner: "usuarios", Dependent: "cuentas", ForeignKey: "usuario_id", Policy: Cascade},
	{Owner: "usuarios", Dependent: "deudas", ForeignKey: "usuario_id", Policy: Cascade},
	{Owner: "usuarios", Dependent: "compromisos_recurrentes", ForeignKey: "usuario_id", Policy: Cascade},
	{Owner: "usuarios", Dependent: "plan_quincenal", ForeignKey: "usuario_id", Policy: Cascade},
	{Owner: "usuarios", Dependent: "transacciones", ForeignKey: "usuario_id", Policy: Restrict},

	// Cuenta.
	{Owner: "cuentas", Dependent: "subcuentas", ForeignKey: "cuenta_id", Policy: Cascade},
	{Owner: "cuentas", Dependent: "deudas", ForeignKey: "cuenta_id", Policy: SetNull},
	{Owner: "cuentas", Dependent: "compromisos_recurrentes", ForeignKey: "cuenta_destino_id", Policy: SetNull},
	{Owner: "cuentas", Dependent: "transacciones", ForeignKey: "cuenta_origen_id", Policy: Restrict},
	{Owner: "cuentas", Dependent: "transacciones", ForeignKey: "cuenta_destino_id", Policy: Restrict},
	{Owner: "cuentas", Dependent: "plan_quincenal", ForeignKey: "cuenta_origen_id", Policy: Restrict},
	{Owner: "cuentas", Dependent: "plan_quincenal", ForeignKey: "cuenta_destino_id", Policy: Restrict},

	// Subcuenta.
	{Owner: "subcuentas", Dependent: "gastos_planificados", ForeignKey: "subcuenta_id", Policy: Cascade},
	{Owner: "subcuentas", Dependent: "movimientos_subcuentas", ForeignKey: "subcuenta_id", Policy: Restrict},
	{Owner: "subcuentas", Dependent: "movimientos_subcuentas", ForeignKey: "subcuenta_destino_id", Policy: Restrict},
	{Owner: "subcuentas", Dependent: "deudas", ForeignKey: "subcuenta_id", Policy: SetNull},
	{Owner: "subcuentas", Dependent: "plan_quincenal", ForeignKey: "subcuenta_destino_id", Policy: Restrict},

	// Categoria: references are informative, never blocking.
	{Owner: "categorias", Dependent: "categorias", ForeignKey: "categoria_padre_id", Policy: SetNull},
	{Owner: "categorias", Dependent: "transacciones", ForeignKey: "categoria_id", Policy: SetNull},

	// Ledger history.
	{Owner: "deudas", Dependent: "movimientos_deuda", ForeignKey: "deuda_id", Policy: Restrict},
	{Owner: "deudas", Dependent: "plan_quincenal", ForeignKey: "deuda_id", Policy: Restrict},
	{Owner: "transacciones", Dependent: "movimientos_deuda", ForeignKey: "transaccion_id", Policy: Restrict},
	{Owner: "transacciones", Dependent: "movimientos_subcuentas", ForeignKey: "transaccion_id", Policy: Restrict},
	{Owner: "transacciones", Dependent: "plan_quincenal", ForeignKey: "transaccion_generada_id", Policy: SetNull},

	// Compromiso.
	{Owner: "compromisos_recurrentes", Dependent: "transacciones", ForeignKey: "compromiso_recurrente_id", Policy: SetNull},
}

// DependentsOf returns the relations in which the given table is the owner.
func DependentsOf(owner string) []Relation {
	var out []Relation
	for _, r := range Relations {
		if r.Owner == owner {
			out = append(out, r)
		}
	}
	return out
}

// All lists every entity, in an order safe for migration.
var All = []interface{}{
	&Usuario{},
	&Cuenta{},
	&Subcuenta{},
	&Categoria{},
	&Transaccion{},
	&Deuda{},
	&MovimientoDeuda{},
	&MovimientoSubcuenta{},
	&CompromisoRecurrente{},
	&PlanQuincenal{},
	&GastoPlanificado{},
}
