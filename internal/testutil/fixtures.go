package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ssamucr/chenchen/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUsuario creates an active user with a hashed password and unique
// email.
func CreateTestUsuario(t *testing.T, db *gorm.DB) *models.Usuario {
	t.Helper()
	email := fmt.Sprintf("usuario%d@test.com", nextID())
	return CreateTestUsuarioWithEmail(t, db, email)
}

// CreateTestUsuarioWithEmail creates a user with the given email.
func CreateTestUsuarioWithEmail(t *testing.T, db *gorm.DB, email string) *models.Usuario {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	usuario := &models.Usuario{
		Email:           email,
		Nombre:          "Test",
		Apellido:        "Usuario",
		PasswordHash:    string(hash),
		MonedaPrincipal: "USD",
		ZonaHoraria:     "UTC",
		Idioma:          "es",
		Activo:          true,
	}
	if err := db.Create(usuario).Error; err != nil {
		t.Fatalf("failed to create test usuario: %v", err)
	}
	return usuario
}

// CreateTestCuenta creates an active account of the given type with zero
// balance.
func CreateTestCuenta(t *testing.T, db *gorm.DB, usuarioID uint, tipo models.TipoCuenta) *models.Cuenta {
	t.Helper()

	cuenta := &models.Cuenta{
		UsuarioID:      usuarioID,
		Nombre:         fmt.Sprintf("Cuenta %d", nextID()),
		TipoCuenta:     tipo,
		Moneda:         "USD",
		Activa:         true,
		IncluirEnTotal: true,
		ColorHex:       "#3B82F6",
	}
	if cuenta.EsTarjetaCredito() {
		limite := decimal.NewFromInt(5000)
		cuenta.LimiteCredito = &limite
	}
	if err := db.Create(cuenta).Error; err != nil {
		t.Fatalf("failed to create test cuenta: %v", err)
	}
	return cuenta
}

// CreateTestSubcuenta creates an active sub-account under the given account.
func CreateTestSubcuenta(t *testing.T, db *gorm.DB, cuentaID uint) *models.Subcuenta {
	t.Helper()

	subcuenta := &models.Subcuenta{
		CuentaID: cuentaID,
		Nombre:   fmt.Sprintf("Subcuenta %d", nextID()),
		Activa:   true,
		ColorHex: "#8B5CF6",
	}
	if err := db.Create(subcuenta).Error; err != nil {
		t.Fatalf("failed to create test subcuenta: %v", err)
	}
	return subcuenta
}

// CreateTestCategoria creates a root category for the given transaction type.
func CreateTestCategoria(t *testing.T, db *gorm.DB, tipo models.TipoTransaccion) *models.Categoria {
	t.Helper()

	categoria := &models.Categoria{
		Nombre:          fmt.Sprintf("Categoria %d", nextID()),
		TipoTransaccion: tipo,
		ColorHex:        "#6B7280",
		Activa:          true,
	}
	if err := db.Create(categoria).Error; err != nil {
		t.Fatalf("failed to create test categoria: %v", err)
	}
	return categoria
}

// CreateTestTransaccion creates a transaction of the given type and amount
// credited to the given account.
func CreateTestTransaccion(t *testing.T, db *gorm.DB, usuarioID, cuentaID uint, tipo models.TipoTransaccion, monto decimal.Decimal) *models.Transaccion {
	t.Helper()

	transaccion := &models.Transaccion{
		UsuarioID:       usuarioID,
		CuentaDestinoID: &cuentaID,
		Fecha:           time.Now(),
		Tipo:            tipo,
		Monto:           monto,
	}
	if err := db.Create(transaccion).Error; err != nil {
		t.Fatalf("failed to create test transaccion: %v", err)
	}
	return transaccion
}

// CreateTestDeuda creates an active debt with the given balances.
func CreateTestDeuda(t *testing.T, db *gorm.DB, usuarioID uint, tipo models.TipoDeuda, saldoInicial decimal.Decimal) *models.Deuda {
	t.Helper()

	acreedor := fmt.Sprintf("Acreedor %d", nextID())
	deuda := &models.Deuda{
		UsuarioID:    usuarioID,
		Tipo:         tipo,
		SaldoInicial: saldoInicial,
		SaldoActual:  saldoInicial,
		FechaInicio:  time.Now().AddDate(0, -1, 0),
		Estado:       models.EstadoDeudaActiva,
		Prioridad:    models.PrioridadMedia,
		ColorHex:     "#EF4444",
	}
	if tipo == models.TipoDeudaPorCobrar {
		deuda.Deudor = &acreedor
	} else {
		deuda.Acreedor = &acreedor
	}
	if err := db.Create(deuda).Error; err != nil {
		t.Fatalf("failed to create test deuda: %v", err)
	}
	return deuda
}

// CreateTestCompromiso creates an active recurring commitment.
func CreateTestCompromiso(t *testing.T, db *gorm.DB, usuarioID uint, frecuencia models.Frecuencia, fechaInicio time.Time) *models.CompromisoRecurrente {
	t.Helper()

	compromiso := &models.CompromisoRecurrente{
		UsuarioID:   usuarioID,
		Descripcion: fmt.Sprintf("Compromiso %d", nextID()),
		Tipo:        models.CompromisoEgreso,
		Monto:       decimal.NewFromInt(100),
		Frecuencia:  frecuencia,
		FechaInicio: fechaInicio,
		Activo:      true,
		ColorHex:    "#8B5CF6",
	}
	if err := db.Create(compromiso).Error; err != nil {
		t.Fatalf("failed to create test compromiso: %v", err)
	}
	return compromiso
}

// CreateTestGasto creates a pending planned expense on the given sub-account.
func CreateTestGasto(t *testing.T, db *gorm.DB, subcuentaID uint, montoTotal decimal.Decimal) *models.GastoPlanificado {
	t.Helper()

	gasto := &models.GastoPlanificado{
		SubcuentaID:   subcuentaID,
		Descripcion:   fmt.Sprintf("Gasto %d", nextID()),
		MontoTotal:    montoTotal,
		MontoGastado:  decimal.Zero,
		FechaCreacion: time.Now(),
		Estado:        models.EstadoGastoPendiente,
		Prioridad:     models.PrioridadMedia,
		ColorHex:      "#F59E0B",
	}
	if err := db.Create(gasto).Error; err != nil {
		t.Fatalf("failed to create test gasto: %v", err)
	}
	return gasto
}
