package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ssamucr/chenchen/internal/models"
	"github.com/ssamucr/chenchen/internal/pagination"
	"github.com/ssamucr/chenchen/internal/testutil"
)

func TestCreateTransaccion(t *testing.T) {
	t.Run("ingreso", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransaccionService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)

		transaccion, err := svc.CreateTransaccion(usuario.UsuarioID, TransaccionCreateInput{
			Fecha:           time.Now(),
			Tipo:            "INGRESO",
			Monto:           decimal.NewFromInt(250),
			CuentaDestinoID: &cuenta.CuentaID,
		})
		testutil.AssertNoError(t, err)

		if transaccion.TransaccionID == 0 {
			t.Fatal("expected non-zero transaccion ID")
		}

		var reloaded models.Cuenta
		if err := db.First(&reloaded, cuenta.CuentaID).Error; err != nil {
			t.Fatalf("failed to reload cuenta: %v", err)
		}
		if reloaded.UltimoMovimiento == nil {
			t.Error("expected ultimo_movimiento stamped on the cuenta")
		}
	})

	t.Run("no_accounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransaccionService(db)
		usuario := testutil.CreateTestUsuario(t, db)

		_, err := svc.CreateTransaccion(usuario.UsuarioID, TransaccionCreateInput{
			Fecha: time.Now(),
			Tipo:  "GASTO",
			Monto: decimal.NewFromInt(10),
		})
		testutil.AssertValidationField(t, err, "cuenta_origen_id")
	})

	t.Run("transferencia_needs_both", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransaccionService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)

		_, err := svc.CreateTransaccion(usuario.UsuarioID, TransaccionCreateInput{
			Fecha:          time.Now(),
			Tipo:           "TRANSFERENCIA",
			Monto:          decimal.NewFromInt(10),
			CuentaOrigenID: &cuenta.CuentaID,
		})
		testutil.AssertValidationField(t, err, "tipo")
	})

	t.Run("same_account_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransaccionService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)

		_, err := svc.CreateTransaccion(usuario.UsuarioID, TransaccionCreateInput{
			Fecha:           time.Now(),
			Tipo:            "TRANSFERENCIA",
			Monto:           decimal.NewFromInt(10),
			CuentaOrigenID:  &cuenta.CuentaID,
			CuentaDestinoID: &cuenta.CuentaID,
		})
		testutil.AssertValidationField(t, err, "cuenta_destino_id")
	})

	t.Run("non_positive_monto", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransaccionService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)

		_, err := svc.CreateTransaccion(usuario.UsuarioID, TransaccionCreateInput{
			Fecha:           time.Now(),
			Tipo:            "INGRESO",
			Monto:           decimal.Zero,
			CuentaDestinoID: &cuenta.CuentaID,
		})
		testutil.AssertValidationField(t, err, "monto")
	})

	t.Run("other_users_cuenta", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransaccionService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		otro := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, otro.UsuarioID, models.TipoCuentaAhorro)

		_, err := svc.CreateTransaccion(usuario.UsuarioID, TransaccionCreateInput{
			Fecha:           time.Now(),
			Tipo:            "INGRESO",
			Monto:           decimal.NewFromInt(10),
			CuentaDestinoID: &cuenta.CuentaID,
		})
		testutil.AssertAppError(t, err, "CUENTA_NOT_FOUND")
	})

	t.Run("missing_categoria", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransaccionService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)

		fantasma := uint(99999)
		_, err := svc.CreateTransaccion(usuario.UsuarioID, TransaccionCreateInput{
			Fecha:           time.Now(),
			Tipo:            "INGRESO",
			Monto:           decimal.NewFromInt(10),
			CuentaDestinoID: &cuenta.CuentaID,
			CategoriaID:     &fantasma,
		})
		testutil.AssertAppError(t, err, "CATEGORIA_NOT_FOUND")
	})
}

func TestGetUserTransacciones(t *testing.T) {
	t.Run("filters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransaccionService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuentaA := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		cuentaB := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaEfectivo)

		testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuentaA.CuentaID, models.TipoTransaccionIngreso, decimal.NewFromInt(100))
		testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuentaA.CuentaID, models.TipoTransaccionGasto, decimal.NewFromInt(20))
		testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuentaB.CuentaID, models.TipoTransaccionIngreso, decimal.NewFromInt(30))

		page := pagination.PageRequest{Page: 1, PageSize: 10}

		tipo := "ingreso"
		result, err := svc.GetUserTransacciones(usuario.UsuarioID, page, TransaccionFilter{Tipo: &tipo})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 ingresos, got %d", result.TotalItems)
		}

		result, err = svc.GetUserTransacciones(usuario.UsuarioID, page, TransaccionFilter{CuentaID: &cuentaB.CuentaID})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 transaccion on cuenta B, got %d", result.TotalItems)
		}
	})

	t.Run("scoped_to_usuario", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransaccionService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		otro := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, otro.UsuarioID, models.TipoCuentaAhorro)
		testutil.CreateTestTransaccion(t, db, otro.UsuarioID, cuenta.CuentaID, models.TipoTransaccionIngreso, decimal.NewFromInt(10))

		page := pagination.PageRequest{Page: 1, PageSize: 10}
		result, err := svc.GetUserTransacciones(usuario.UsuarioID, page, TransaccionFilter{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 0 {
			t.Errorf("expected no foreign transacciones, got %d", result.TotalItems)
		}
	})
}

func TestDeleteTransaccion(t *testing.T) {
	t.Run("free_transaccion", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransaccionService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		transaccion := testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuenta.CuentaID, models.TipoTransaccionIngreso, decimal.NewFromInt(10))

		err := svc.DeleteTransaccion(usuario.UsuarioID, transaccion.TransaccionID)
		testutil.AssertNoError(t, err)
	})

	t.Run("blocked_by_movimiento_deuda", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransaccionService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		deuda := testutil.CreateTestDeuda(t, db, usuario.UsuarioID, models.TipoDeudaPrestamo, decimal.NewFromInt(400))
		transaccion := testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuenta.CuentaID, models.TipoTransaccionGasto, decimal.NewFromInt(50))

		movimiento := &models.MovimientoDeuda{
			DeudaID:       deuda.DeudaID,
			TransaccionID: transaccion.TransaccionID,
			Fecha:         time.Now(),
			Tipo:          models.MovimientoDeudaCargo,
			Monto:         decimal.NewFromInt(50),
		}
		if err := db.Create(movimiento).Error; err != nil {
			t.Fatalf("failed to create movimiento: %v", err)
		}

		err := svc.DeleteTransaccion(usuario.UsuarioID, transaccion.TransaccionID)
		testutil.AssertAppError(t, err, "REFERENTIAL_INTEGRITY")
	})

	t.Run("clears_plan_reference", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransaccionService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		transaccion := testutil.CreateTestTransaccion(t, db, usuario.UsuarioID, cuenta.CuentaID, models.TipoTransaccionGasto, decimal.NewFromInt(50))

		now := time.Now()
		item := &models.PlanQuincenal{
			UsuarioID:             usuario.UsuarioID,
			CuentaOrigenID:        &cuenta.CuentaID,
			Nombre:                "Plan ejecutado",
			TipoMovimiento:        models.PlanPagoDeuda,
			Monto:                 decimal.NewFromInt(50),
			Activo:                true,
			Ejecutado:             true,
			EjecutadoEn:           &now,
			TransaccionGeneradaID: &transaccion.TransaccionID,
			Prioridad:             models.PrioridadMedia,
		}
		if err := db.Create(item).Error; err != nil {
			t.Fatalf("failed to create plan item: %v", err)
		}

		err := svc.DeleteTransaccion(usuario.UsuarioID, transaccion.TransaccionID)
		testutil.AssertNoError(t, err)

		var reloaded models.PlanQuincenal
		if err := db.First(&reloaded, item.ItemID).Error; err != nil {
			t.Fatalf("failed to reload plan item: %v", err)
		}
		if reloaded.TransaccionGeneradaID != nil {
			t.Errorf("expected transaccion_generada_id cleared, got %v", reloaded.TransaccionGeneradaID)
		}
	})
}
