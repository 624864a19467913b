package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ssamucr/chenchen/internal/models"
	"github.com/ssamucr/chenchen/internal/testutil"
)

func TestCreateGasto(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGastoPlanificadoService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		subcuenta := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)

		gasto, err := svc.CreateGasto(usuario.UsuarioID, GastoCreateInput{
			SubcuentaID:   subcuenta.SubcuentaID,
			Descripcion:   "Llantas nuevas",
			MontoTotal:    decimal.NewFromInt(400),
			FechaCreacion: time.Now(),
		})
		testutil.AssertNoError(t, err)

		if gasto.GastoPlanificadoID == 0 {
			t.Fatal("expected non-zero gasto ID")
		}
		if gasto.Estado != models.EstadoGastoPendiente {
			t.Errorf("expected estado PENDIENTE, got %s", gasto.Estado)
		}
		if !gasto.MontoGastado.IsZero() {
			t.Errorf("expected zero monto gastado, got %s", gasto.MontoGastado)
		}
	})

	t.Run("initial_progress_sets_en_progreso", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGastoPlanificadoService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		subcuenta := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)

		gastado := decimal.NewFromInt(100)
		gasto, err := svc.CreateGasto(usuario.UsuarioID, GastoCreateInput{
			SubcuentaID:   subcuenta.SubcuentaID,
			Descripcion:   "Avanzado",
			MontoTotal:    decimal.NewFromInt(400),
			MontoGastado:  &gastado,
			FechaCreacion: time.Now(),
		})
		testutil.AssertNoError(t, err)
		if gasto.Estado != models.EstadoGastoEnProgreso {
			t.Errorf("expected estado EN_PROGRESO, got %s", gasto.Estado)
		}
	})

	t.Run("gastado_exceeds_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGastoPlanificadoService(db)
		usuario := testutil.CreateTestUsuario(t, db)

		gastado := decimal.NewFromInt(500)
		_, err := svc.CreateGasto(usuario.UsuarioID, GastoCreateInput{
			SubcuentaID:   1,
			Descripcion:   "Imposible",
			MontoTotal:    decimal.NewFromInt(400),
			MontoGastado:  &gastado,
			FechaCreacion: time.Now(),
		})
		testutil.AssertValidationField(t, err, "monto_gastado")
	})

	t.Run("objetivo_before_creacion", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGastoPlanificadoService(db)
		usuario := testutil.CreateTestUsuario(t, db)

		creacion := time.Now()
		objetivo := creacion.AddDate(0, 0, -5)
		_, err := svc.CreateGasto(usuario.UsuarioID, GastoCreateInput{
			SubcuentaID:   1,
			Descripcion:   "Invertido",
			MontoTotal:    decimal.NewFromInt(400),
			FechaCreacion: creacion,
			FechaObjetivo: &objetivo,
		})
		testutil.AssertValidationField(t, err, "fecha_objetivo")
	})

	t.Run("other_users_subcuenta", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGastoPlanificadoService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		otro := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, otro.UsuarioID, models.TipoCuentaAhorro)
		subcuenta := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)

		_, err := svc.CreateGasto(usuario.UsuarioID, GastoCreateInput{
			SubcuentaID:   subcuenta.SubcuentaID,
			Descripcion:   "Ajeno",
			MontoTotal:    decimal.NewFromInt(400),
			FechaCreacion: time.Now(),
		})
		testutil.AssertAppError(t, err, "SUBCUENTA_NOT_FOUND")
	})
}

func TestUpdateGasto(t *testing.T) {
	t.Run("merged_gastado_exceeds_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGastoPlanificadoService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		subcuenta := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)
		gasto := testutil.CreateTestGasto(t, db, subcuenta.SubcuentaID, decimal.NewFromInt(400))

		gastado := decimal.NewFromInt(450)
		_, err := svc.UpdateGasto(usuario.UsuarioID, gasto.GastoPlanificadoID, GastoUpdateInput{MontoGastado: &gastado})
		testutil.AssertValidationField(t, err, "monto_gastado")
	})

	t.Run("normalizes_color", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGastoPlanificadoService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		subcuenta := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)
		gasto := testutil.CreateTestGasto(t, db, subcuenta.SubcuentaID, decimal.NewFromInt(400))

		color := "#f59e0b"
		updated, err := svc.UpdateGasto(usuario.UsuarioID, gasto.GastoPlanificadoID, GastoUpdateInput{ColorHex: &color})
		testutil.AssertNoError(t, err)
		if updated.ColorHex != "#F59E0B" {
			t.Errorf("expected color #F59E0B, got %s", updated.ColorHex)
		}
	})

	t.Run("completar_stamps_fecha", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGastoPlanificadoService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		subcuenta := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)
		gasto := testutil.CreateTestGasto(t, db, subcuenta.SubcuentaID, decimal.NewFromInt(400))

		estado := "COMPLETADO"
		updated, err := svc.UpdateGasto(usuario.UsuarioID, gasto.GastoPlanificadoID, GastoUpdateInput{Estado: &estado})
		testutil.AssertNoError(t, err)
		if updated.Estado != models.EstadoGastoCompletado {
			t.Errorf("expected estado COMPLETADO, got %s", updated.Estado)
		}
		if updated.FechaCompletado == nil {
			t.Error("expected fecha_completado auto-stamped")
		}
	})

	t.Run("fecha_completado_without_estado", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGastoPlanificadoService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		subcuenta := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)
		gasto := testutil.CreateTestGasto(t, db, subcuenta.SubcuentaID, decimal.NewFromInt(400))

		fecha := time.Now()
		_, err := svc.UpdateGasto(usuario.UsuarioID, gasto.GastoPlanificadoID, GastoUpdateInput{FechaCompletado: &fecha})
		testutil.AssertValidationField(t, err, "fecha_completado")
	})

	t.Run("leaving_completado_clears_fecha", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGastoPlanificadoService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		subcuenta := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)
		gasto := testutil.CreateTestGasto(t, db, subcuenta.SubcuentaID, decimal.NewFromInt(400))

		completado := "COMPLETADO"
		_, err := svc.UpdateGasto(usuario.UsuarioID, gasto.GastoPlanificadoID, GastoUpdateInput{Estado: &completado})
		testutil.AssertNoError(t, err)

		pendiente := "PENDIENTE"
		updated, err := svc.UpdateGasto(usuario.UsuarioID, gasto.GastoPlanificadoID, GastoUpdateInput{Estado: &pendiente})
		testutil.AssertNoError(t, err)
		if updated.Estado != models.EstadoGastoPendiente {
			t.Errorf("expected estado PENDIENTE, got %s", updated.Estado)
		}
		if updated.FechaCompletado != nil {
			t.Errorf("expected fecha_completado cleared, got %v", updated.FechaCompletado)
		}
	})
}

func TestProgresoGasto(t *testing.T) {
	t.Run("percentage_and_remaining", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGastoPlanificadoService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		subcuenta := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)
		gasto := testutil.CreateTestGasto(t, db, subcuenta.SubcuentaID, decimal.NewFromInt(400))
		if err := db.Model(gasto).Update("monto_gastado", decimal.NewFromInt(100)).Error; err != nil {
			t.Fatalf("failed to seed progreso: %v", err)
		}

		progreso, err := svc.GetProgreso(usuario.UsuarioID, gasto.GastoPlanificadoID)
		testutil.AssertNoError(t, err)

		if !progreso.MontoRestante.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected restante 300, got %s", progreso.MontoRestante)
		}
		if progreso.Porcentaje != 25 {
			t.Errorf("expected 25%%, got %f", progreso.Porcentaje)
		}
		if progreso.DiasParaObjetivo != nil {
			t.Errorf("expected nil dias without objetivo, got %v", progreso.DiasParaObjetivo)
		}
	})

	t.Run("dias_para_objetivo", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGastoPlanificadoService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		subcuenta := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)
		gasto := testutil.CreateTestGasto(t, db, subcuenta.SubcuentaID, decimal.NewFromInt(400))

		objetivo := time.Now().AddDate(0, 0, 10)
		if err := db.Model(gasto).Update("fecha_objetivo", objetivo).Error; err != nil {
			t.Fatalf("failed to set objetivo: %v", err)
		}

		progreso, err := svc.GetProgreso(usuario.UsuarioID, gasto.GastoPlanificadoID)
		testutil.AssertNoError(t, err)
		if progreso.DiasParaObjetivo == nil {
			t.Fatal("expected dias para objetivo")
		}
		if *progreso.DiasParaObjetivo < 9 || *progreso.DiasParaObjetivo > 10 {
			t.Errorf("expected around 10 dias, got %d", *progreso.DiasParaObjetivo)
		}
	})

	t.Run("other_usuario", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGastoPlanificadoService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		otro := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, otro.UsuarioID, models.TipoCuentaAhorro)
		subcuenta := testutil.CreateTestSubcuenta(t, db, cuenta.CuentaID)
		gasto := testutil.CreateTestGasto(t, db, subcuenta.SubcuentaID, decimal.NewFromInt(400))

		_, err := svc.GetProgreso(usuario.UsuarioID, gasto.GastoPlanificadoID)
		testutil.AssertAppError(t, err, "GASTO_PLANIFICADO_NOT_FOUND")
	})
}
