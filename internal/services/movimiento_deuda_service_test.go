package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ssamucr/chenchen/internal/models"
	"github.com/ssamucr/chenchen/internal/testutil"
)

func newMovimientoDeudaServiceForTest(db *gorm.DB) MovimientoDeudaServicer {
	return NewMovimientoDeudaService(db, decimal.NewFromFloat(0.01))
}

func TestCreateMovimientoDeuda(t *testing.T) {
	t.Run("pago_advances_deuda", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newMovimientoDeudaServiceForTest(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		deuda := testutil.CreateTestDeuda(t, db, usuario.UsuarioID, models.TipoDeudaPrestamo, decimal.NewFromInt(1000))
		transaccion := testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuenta.CuentaID, models.TipoTransaccionGasto, decimal.NewFromInt(120))

		capital := decimal.NewFromInt(100)
		interes := decimal.NewFromInt(20)
		movimiento, err := svc.CreateMovimientoDeuda(usuario.UsuarioID, MovimientoDeudaInput{
			DeudaID:       deuda.DeudaID,
			TransaccionID: transaccion.TransaccionID,
			Fecha:         time.Now(),
			Tipo:          "PAGO",
			Monto:         decimal.NewFromInt(120),
			CapitalPagado: &capital,
			InteresPagado: &interes,
		})
		testutil.AssertNoError(t, err)
		if movimiento.MovimientoDeudaID == 0 {
			t.Fatal("expected non-zero movimiento ID")
		}

		var reloaded models.Deuda
		if err := db.First(&reloaded, deuda.DeudaID).Error; err != nil {
			t.Fatalf("failed to reload deuda: %v", err)
		}
		if !reloaded.SaldoActual.Equal(decimal.NewFromInt(900)) {
			t.Errorf("expected saldo 900, got %s", reloaded.SaldoActual)
		}
		if reloaded.CuotasPagadas != 1 {
			t.Errorf("expected 1 cuota pagada, got %d", reloaded.CuotasPagadas)
		}
		if reloaded.UltimoPago == nil {
			t.Error("expected ultimo_pago stamped")
		}
	})

	t.Run("pago_to_zero_marks_pagada", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newMovimientoDeudaServiceForTest(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		deuda := testutil.CreateTestDeuda(t, db, usuario.UsuarioID, models.TipoDeudaPrestamo, decimal.NewFromInt(300))
		transaccion := testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuenta.CuentaID, models.TipoTransaccionGasto, decimal.NewFromInt(300))

		capital := decimal.NewFromInt(300)
		interes := decimal.Zero
		_, err := svc.CreateMovimientoDeuda(usuario.UsuarioID, MovimientoDeudaInput{
			DeudaID:       deuda.DeudaID,
			TransaccionID: transaccion.TransaccionID,
			Fecha:         time.Now(),
			Tipo:          "PAGO",
			Monto:         decimal.NewFromInt(300),
			CapitalPagado: &capital,
			InteresPagado: &interes,
		})
		testutil.AssertNoError(t, err)

		var reloaded models.Deuda
		if err := db.First(&reloaded, deuda.DeudaID).Error; err != nil {
			t.Fatalf("failed to reload deuda: %v", err)
		}
		if reloaded.Estado != models.EstadoDeudaPagada {
			t.Errorf("expected estado PAGADA, got %s", reloaded.Estado)
		}
	})

	t.Run("pago_on_fully_paid_schedule_keeps_cuotas_capped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newMovimientoDeudaServiceForTest(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		deuda := testutil.CreateTestDeuda(t, db, usuario.UsuarioID, models.TipoDeudaPrestamo, decimal.NewFromInt(100))
		if err := db.Model(&models.Deuda{}).
			Where("deuda_id = ?", deuda.DeudaID).
			Updates(map[string]interface{}{"numero_cuotas": 2, "cuotas_pagadas": 2}).Error; err != nil {
			t.Fatalf("failed to seed installments: %v", err)
		}
		transaccion := testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuenta.CuentaID, models.TipoTransaccionGasto, decimal.NewFromInt(10))

		capital := decimal.NewFromInt(10)
		interes := decimal.Zero
		_, err := svc.CreateMovimientoDeuda(usuario.UsuarioID, MovimientoDeudaInput{
			DeudaID:       deuda.DeudaID,
			TransaccionID: transaccion.TransaccionID,
			Fecha:         time.Now(),
			Tipo:          "PAGO",
			Monto:         decimal.NewFromInt(10),
			CapitalPagado: &capital,
			InteresPagado: &interes,
		})
		testutil.AssertNoError(t, err)

		var reloaded models.Deuda
		if err := db.First(&reloaded, deuda.DeudaID).Error; err != nil {
			t.Fatalf("failed to reload deuda: %v", err)
		}
		if !reloaded.SaldoActual.Equal(decimal.NewFromInt(90)) {
			t.Errorf("expected saldo 90, got %s", reloaded.SaldoActual)
		}
		if reloaded.NumeroCuotas == nil || reloaded.CuotasPagadas > *reloaded.NumeroCuotas {
			t.Errorf("cuotas_pagadas %d must not exceed numero_cuotas %v", reloaded.CuotasPagadas, reloaded.NumeroCuotas)
		}
		if reloaded.CuotasPagadas != 2 {
			t.Errorf("expected cuotas_pagadas to stay at 2, got %d", reloaded.CuotasPagadas)
		}
	})

	t.Run("pago_por_cobrar_moves_toward_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newMovimientoDeudaServiceForTest(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		deuda := testutil.CreateTestDeuda(t, db, usuario.UsuarioID, models.TipoDeudaPorCobrar, decimal.NewFromInt(-500))
		transaccion := testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuenta.CuentaID, models.TipoTransaccionIngreso, decimal.NewFromInt(200))

		capital := decimal.NewFromInt(200)
		interes := decimal.Zero
		_, err := svc.CreateMovimientoDeuda(usuario.UsuarioID, MovimientoDeudaInput{
			DeudaID:       deuda.DeudaID,
			TransaccionID: transaccion.TransaccionID,
			Fecha:         time.Now(),
			Tipo:          "PAGO",
			Monto:         decimal.NewFromInt(200),
			CapitalPagado: &capital,
			InteresPagado: &interes,
		})
		testutil.AssertNoError(t, err)

		var reloaded models.Deuda
		if err := db.First(&reloaded, deuda.DeudaID).Error; err != nil {
			t.Fatalf("failed to reload deuda: %v", err)
		}
		if !reloaded.SaldoActual.Equal(decimal.NewFromInt(-300)) {
			t.Errorf("expected saldo -300, got %s", reloaded.SaldoActual)
		}
	})

	t.Run("pago_exceeds_saldo", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newMovimientoDeudaServiceForTest(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		deuda := testutil.CreateTestDeuda(t, db, usuario.UsuarioID, models.TipoDeudaPrestamo, decimal.NewFromInt(100))
		transaccion := testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuenta.CuentaID, models.TipoTransaccionGasto, decimal.NewFromInt(150))

		capital := decimal.NewFromInt(150)
		interes := decimal.Zero
		_, err := svc.CreateMovimientoDeuda(usuario.UsuarioID, MovimientoDeudaInput{
			DeudaID:       deuda.DeudaID,
			TransaccionID: transaccion.TransaccionID,
			Fecha:         time.Now(),
			Tipo:          "PAGO",
			Monto:         decimal.NewFromInt(150),
			CapitalPagado: &capital,
			InteresPagado: &interes,
		})
		testutil.AssertValidationField(t, err, "capital_pagado")
	})

	t.Run("breakdown_must_reconcile", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newMovimientoDeudaServiceForTest(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		deuda := testutil.CreateTestDeuda(t, db, usuario.UsuarioID, models.TipoDeudaPrestamo, decimal.NewFromInt(1000))
		transaccion := testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuenta.CuentaID, models.TipoTransaccionGasto, decimal.NewFromInt(120))

		capital := decimal.NewFromInt(100)
		interes := decimal.NewFromInt(10)
		_, err := svc.CreateMovimientoDeuda(usuario.UsuarioID, MovimientoDeudaInput{
			DeudaID:       deuda.DeudaID,
			TransaccionID: transaccion.TransaccionID,
			Fecha:         time.Now(),
			Tipo:          "PAGO",
			Monto:         decimal.NewFromInt(120),
			CapitalPagado: &capital,
			InteresPagado: &interes,
		})
		testutil.AssertValidationField(t, err, "monto")
	})

	t.Run("breakdown_within_epsilon", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newMovimientoDeudaServiceForTest(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		deuda := testutil.CreateTestDeuda(t, db, usuario.UsuarioID, models.TipoDeudaPrestamo, decimal.NewFromInt(1000))
		transaccion := testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuenta.CuentaID, models.TipoTransaccionGasto, decimal.NewFromInt(120))

		capital := decimal.RequireFromString("100.00")
		interes := decimal.RequireFromString("19.99")
		_, err := svc.CreateMovimientoDeuda(usuario.UsuarioID, MovimientoDeudaInput{
			DeudaID:       deuda.DeudaID,
			TransaccionID: transaccion.TransaccionID,
			Fecha:         time.Now(),
			Tipo:          "PAGO",
			Monto:         decimal.NewFromInt(120),
			CapitalPagado: &capital,
			InteresPagado: &interes,
		})
		testutil.AssertNoError(t, err)
	})

	t.Run("breakdown_forbidden_on_cargo", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newMovimientoDeudaServiceForTest(db)
		usuario := testutil.CreateTestUsuario(t, db)

		capital := decimal.NewFromInt(10)
		_, err := svc.CreateMovimientoDeuda(usuario.UsuarioID, MovimientoDeudaInput{
			DeudaID:       1,
			TransaccionID: 1,
			Fecha:         time.Now(),
			Tipo:          "CARGO",
			Monto:         decimal.NewFromInt(10),
			CapitalPagado: &capital,
		})
		testutil.AssertValidationField(t, err, "tipo")
	})

	t.Run("cargo_leaves_saldo", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newMovimientoDeudaServiceForTest(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		deuda := testutil.CreateTestDeuda(t, db, usuario.UsuarioID, models.TipoDeudaPrestamo, decimal.NewFromInt(1000))
		transaccion := testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuenta.CuentaID, models.TipoTransaccionGasto, decimal.NewFromInt(40))

		_, err := svc.CreateMovimientoDeuda(usuario.UsuarioID, MovimientoDeudaInput{
			DeudaID:       deuda.DeudaID,
			TransaccionID: transaccion.TransaccionID,
			Fecha:         time.Now(),
			Tipo:          "CARGO",
			Monto:         decimal.NewFromInt(40),
		})
		testutil.AssertNoError(t, err)

		var reloaded models.Deuda
		if err := db.First(&reloaded, deuda.DeudaID).Error; err != nil {
			t.Fatalf("failed to reload deuda: %v", err)
		}
		if !reloaded.SaldoActual.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected saldo untouched by CARGO, got %s", reloaded.SaldoActual)
		}
	})

	t.Run("transaccion_already_linked", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newMovimientoDeudaServiceForTest(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		deuda := testutil.CreateTestDeuda(t, db, usuario.UsuarioID, models.TipoDeudaPrestamo, decimal.NewFromInt(1000))
		transaccion := testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuenta.CuentaID, models.TipoTransaccionGasto, decimal.NewFromInt(40))

		for i := 0; i < 2; i++ {
			_, err := svc.CreateMovimientoDeuda(usuario.UsuarioID, MovimientoDeudaInput{
				DeudaID:       deuda.DeudaID,
				TransaccionID: transaccion.TransaccionID,
				Fecha:         time.Now(),
				Tipo:          "CARGO",
				Monto:         decimal.NewFromInt(40),
			})
			if i == 0 {
				testutil.AssertNoError(t, err)
			} else {
				testutil.AssertValidationField(t, err, "transaccion_id")
			}
		}
	})

	t.Run("other_users_deuda", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newMovimientoDeudaServiceForTest(db)
		usuario := testutil.CreateTestUsuario(t, db)
		otro := testutil.CreateTestUsuario(t, db)
		deuda := testutil.CreateTestDeuda(t, db, otro.UsuarioID, models.TipoDeudaPrestamo, decimal.NewFromInt(1000))

		_, err := svc.CreateMovimientoDeuda(usuario.UsuarioID, MovimientoDeudaInput{
			DeudaID:       deuda.DeudaID,
			TransaccionID: 1,
			Fecha:         time.Now(),
			Tipo:          "CARGO",
			Monto:         decimal.NewFromInt(40),
		})
		testutil.AssertAppError(t, err, "DEUDA_NOT_FOUND")
	})
}
