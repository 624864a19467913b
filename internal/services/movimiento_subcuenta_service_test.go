package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ssamucr/chenchen/internal/models"
	"github.com/ssamucr/chenchen/internal/pagination"
	"github.com/ssamucr/chenchen/internal/testutil"
)

func TestCreateMovimientoSubcuenta(t *testing.T) {
	t.Run("asignacion_adds_saldo", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMovimientoSubcuentaService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		subcuenta := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)
		transaccion := testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuenta.CuentaID, models.TipoTransaccionIngreso, decimal.NewFromInt(60))

		movimiento, err := svc.CreateMovimientoSubcuenta(usuario.UsuarioID, MovimientoSubcuentaInput{
			SubcuentaID:   subcuenta.SubcuentaID,
			TransaccionID: transaccion.TransaccionID,
			Fecha:         time.Now(),
			Tipo:          "ASIGNACION",
			Monto:         decimal.NewFromInt(60),
		})
		testutil.AssertNoError(t, err)
		if movimiento.MovimientoSubcuentaID == 0 {
			t.Fatal("expected non-zero movimiento ID")
		}

		var reloaded models.Subcuenta
		if err := db.First(&reloaded, subcuenta.SubcuentaID).Error; err != nil {
			t.Fatalf("failed to reload subcuenta: %v", err)
		}
		if !reloaded.SaldoActual.Equal(decimal.NewFromInt(60)) {
			t.Errorf("expected saldo 60, got %s", reloaded.SaldoActual)
		}
	})

	t.Run("gasto_cannot_overdraw", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMovimientoSubcuentaService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		subcuenta := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)
		transaccion := testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuenta.CuentaID, models.TipoTransaccionGasto, decimal.NewFromInt(10))

		_, err := svc.CreateMovimientoSubcuenta(usuario.UsuarioID, MovimientoSubcuentaInput{
			SubcuentaID:   subcuenta.SubcuentaID,
			TransaccionID: transaccion.TransaccionID,
			Fecha:         time.Now(),
			Tipo:          "GASTO",
			Monto:         decimal.NewFromInt(10),
		})
		testutil.AssertValidationField(t, err, "monto")
	})

	t.Run("transferencia_moves_between_envelopes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMovimientoSubcuentaService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		origen := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)
		destino := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)
		if err := db.Model(origen).Update("saldo_actual", decimal.NewFromInt(100)).Error; err != nil {
			t.Fatalf("failed to seed saldo: %v", err)
		}
		transaccion := testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuenta.CuentaID, models.TipoTransaccionAjuste, decimal.NewFromInt(30))

		_, err := svc.CreateMovimientoSubcuenta(usuario.UsuarioID, MovimientoSubcuentaInput{
			SubcuentaID:        origen.SubcuentaID,
			SubcuentaDestinoID: &destino.SubcuentaID,
			TransaccionID:      transaccion.TransaccionID,
			Fecha:              time.Now(),
			Tipo:               "TRANSFERENCIA",
			Monto:              decimal.NewFromInt(30),
		})
		testutil.AssertNoError(t, err)

		var reloadedOrigen, reloadedDestino models.Subcuenta
		db.First(&reloadedOrigen, origen.SubcuentaID)
		db.First(&reloadedDestino, destino.SubcuentaID)
		if !reloadedOrigen.SaldoActual.Equal(decimal.NewFromInt(70)) {
			t.Errorf("expected origen saldo 70, got %s", reloadedOrigen.SaldoActual)
		}
		if !reloadedDestino.SaldoActual.Equal(decimal.NewFromInt(30)) {
			t.Errorf("expected destino saldo 30, got %s", reloadedDestino.SaldoActual)
		}
	})

	t.Run("transferencia_requires_destino", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMovimientoSubcuentaService(db)
		usuario := testutil.CreateTestUsuario(t, db)

		_, err := svc.CreateMovimientoSubcuenta(usuario.UsuarioID, MovimientoSubcuentaInput{
			SubcuentaID:   1,
			TransaccionID: 1,
			Fecha:         time.Now(),
			Tipo:          "TRANSFERENCIA",
			Monto:         decimal.NewFromInt(10),
		})
		testutil.AssertValidationField(t, err, "subcuenta_destino_id")
	})

	t.Run("destino_forbidden_outside_transferencia", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMovimientoSubcuentaService(db)
		usuario := testutil.CreateTestUsuario(t, db)

		destino := uint(2)
		_, err := svc.CreateMovimientoSubcuenta(usuario.UsuarioID, MovimientoSubcuentaInput{
			SubcuentaID:        1,
			SubcuentaDestinoID: &destino,
			TransaccionID:      1,
			Fecha:              time.Now(),
			Tipo:               "ASIGNACION",
			Monto:              decimal.NewFromInt(10),
		})
		testutil.AssertValidationField(t, err, "subcuenta_destino_id")
	})

	t.Run("same_subcuenta_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMovimientoSubcuentaService(db)
		usuario := testutil.CreateTestUsuario(t, db)

		mismo := uint(7)
		_, err := svc.CreateMovimientoSubcuenta(usuario.UsuarioID, MovimientoSubcuentaInput{
			SubcuentaID:        mismo,
			SubcuentaDestinoID: &mismo,
			TransaccionID:      1,
			Fecha:              time.Now(),
			Tipo:               "TRANSFERENCIA",
			Monto:              decimal.NewFromInt(10),
		})
		testutil.AssertValidationField(t, err, "subcuenta_destino_id")
	})

	t.Run("other_users_subcuenta", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMovimientoSubcuentaService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		otro := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, otro.UsuarioID, models.TipoCuentaAhorro)
		subcuenta := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)

		_, err := svc.CreateMovimientoSubcuenta(usuario.UsuarioID, MovimientoSubcuentaInput{
			SubcuentaID:   subcuenta.SubcuentaID,
			TransaccionID: 1,
			Fecha:         time.Now(),
			Tipo:          "ASIGNACION",
			Monto:         decimal.NewFromInt(10),
		})
		testutil.AssertAppError(t, err, "SUBCUENTA_NOT_FOUND")
	})
}

func TestGetSubcuentaMovimientos(t *testing.T) {
	t.Run("lists_for_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMovimientoSubcuentaService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		subcuenta := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)

		for i := 0; i < 3; i++ {
			transaccion := testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuenta.CuentaID, models.TipoTransaccionIngreso, decimal.NewFromInt(5))
			_, err := svc.CreateMovimientoSubcuenta(usuario.UsuarioID, MovimientoSubcuentaInput{
				SubcuentaID:   subcuenta.SubcuentaID,
				TransaccionID: transaccion.TransaccionID,
				Fecha:         time.Now(),
				Tipo:          "ASIGNACION",
				Monto:         decimal.NewFromInt(5),
			})
			testutil.AssertNoError(t, err)
		}

		page := pagination.PageRequest{Page: 1, PageSize: 10}
		result, err := svc.GetSubcuentaMovimientos(usuario.UsuarioID, subcuenta.SubcuentaID, page)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 3 {
			t.Errorf("expected 3 movimientos, got %d", result.TotalItems)
		}
	})
}
