package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ssamucr/chenchen/internal/models"
	"github.com/ssamucr/chenchen/internal/pagination"
	"github.com/ssamucr/chenchen/internal/testutil"
)

func TestCreateSubcuenta(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcuentaService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)

		subcuenta, err := svc.CreateSubcuenta(usuario.UsuarioID, SubcuentaCreateInput{
			CuentaID: cuenta.CuentaID,
			Nombre:   "Vacaciones",
		})
		testutil.AssertNoError(t, err)

		if subcuenta.SubcuentaID == 0 {
			t.Fatal("expected non-zero subcuenta ID")
		}
		if !subcuenta.SaldoActual.IsZero() {
			t.Errorf("expected zero saldo, got %s", subcuenta.SaldoActual)
		}
		if !subcuenta.Activa {
			t.Error("expected subcuenta to be activa")
		}
	})

	t.Run("saldo_inicial_records_asignacion", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcuentaService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)

		saldo := decimal.NewFromInt(80)
		subcuenta, err := svc.CreateSubcuenta(usuario.UsuarioID, SubcuentaCreateInput{
			CuentaID:     cuenta.CuentaID,
			Nombre:       "Emergencias",
			SaldoInicial: &saldo,
		})
		testutil.AssertNoError(t, err)
		if !subcuenta.SaldoActual.Equal(saldo) {
			t.Errorf("expected saldo 80, got %s", subcuenta.SaldoActual)
		}

		var movimientos []models.MovimientoSubcuenta
		if err := db.Where("subcuenta_id = ?", subcuenta.SubcuentaID).Find(&movimientos).Error; err != nil {
			t.Fatalf("failed to load movimientos: %v", err)
		}
		if len(movimientos) != 1 {
			t.Fatalf("expected one asignacion movimiento, got %d", len(movimientos))
		}
		if movimientos[0].Tipo != models.MovimientoSubcuentaAsignacion {
			t.Errorf("expected tipo ASIGNACION, got %s", movimientos[0].Tipo)
		}

		// The backing ajuste transaccion lands on the parent cuenta.
		var transaccion models.Transaccion
		if err := db.First(&transaccion, movimientos[0].TransaccionID).Error; err != nil {
			t.Fatalf("failed to load backing transaccion: %v", err)
		}
		if transaccion.Tipo != models.TipoTransaccionAjuste {
			t.Errorf("expected tipo AJUSTE, got %s", transaccion.Tipo)
		}
		if transaccion.CuentaDestinoID == nil || *transaccion.CuentaDestinoID != cuenta.CuentaID {
			t.Errorf("expected cuenta destino %d, got %v", cuenta.CuentaID, transaccion.CuentaDestinoID)
		}
	})

	t.Run("other_users_cuenta", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcuentaService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		otro := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, otro.UsuarioID, models.TipoCuentaAhorro)

		_, err := svc.CreateSubcuenta(usuario.UsuarioID, SubcuentaCreateInput{
			CuentaID: cuenta.CuentaID,
			Nombre:   "Ajena",
		})
		testutil.AssertAppError(t, err, "CUENTA_NOT_FOUND")
	})

	t.Run("negative_monto_meta", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcuentaService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)

		meta := decimal.NewFromInt(-1)
		_, err := svc.CreateSubcuenta(usuario.UsuarioID, SubcuentaCreateInput{
			CuentaID:  cuenta.CuentaID,
			Nombre:    "Meta inválida",
			MontoMeta: &meta,
		})
		testutil.AssertValidationField(t, err, "monto_meta")
	})
}

func TestGetCuentaSubcuentas(t *testing.T) {
	t.Run("lists_only_own_cuenta", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcuentaService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)
		testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)

		page := pagination.PageRequest{Page: 1, PageSize: 10}
		result, err := svc.GetCuentaSubcuentas(usuario.UsuarioID, cuenta.CuentaID, page)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 subcuentas, got %d", result.TotalItems)
		}

		otro := testutil.CreateTestUsuario(t, db)
		_, err = svc.GetCuentaSubcuentas(otro.UsuarioID, cuenta.CuentaID, page)
		testutil.AssertAppError(t, err, "CUENTA_NOT_FOUND")
	})
}

func TestDeleteSubcuenta(t *testing.T) {
	t.Run("cascades_gastos", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcuentaService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		subcuenta := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)
		gasto := testutil.CreateTestGasto(t, db, subcuenta.SubcuentaID, decimal.NewFromInt(300))

		err := svc.DeleteSubcuenta(usuario.UsuarioID, subcuenta.SubcuentaID)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.GastoPlanificado{}).Where("gasto_planificado_id = ?", gasto.GastoPlanificadoID).Count(&count)
		if count != 0 {
			t.Error("expected gastos planificados to cascade with their subcuenta")
		}
	})

	t.Run("blocked_by_movimientos", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubcuentaService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		subcuenta := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)
		transaccion := testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuenta.CuentaID, models.TipoTransaccionAjuste, decimal.NewFromInt(10))

		movimiento := &models.MovimientoSubcuenta{
			SubcuentaID:   subcuenta.SubcuentaID,
			TransaccionID: transaccion.TransaccionID,
			Fecha:         transaccion.Fecha,
			Tipo:          models.MovimientoSubcuentaAsignacion,
			Monto:         decimal.NewFromInt(10),
		}
		if err := db.Create(movimiento).Error; err != nil {
			t.Fatalf("failed to create movimiento: %v", err)
		}

		err := svc.DeleteSubcuenta(usuario.UsuarioID, subcuenta.SubcuentaID)
		testutil.AssertAppError(t, err, "REFERENTIAL_INTEGRITY")
	})
}
