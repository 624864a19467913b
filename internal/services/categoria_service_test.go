package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ssamucr/chenchen/internal/models"
	"github.com/ssamucr/chenchen/internal/pagination"
	"github.com/ssamucr/chenchen/internal/testutil"
)

func TestCreateCategoria(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoriaService(db)

		categoria, err := svc.CreateCategoria(CategoriaCreateInput{
			Nombre:          "Supermercado",
			TipoTransaccion: "GASTO",
		})
		testutil.AssertNoError(t, err)

		if categoria.CategoriaID == 0 {
			t.Fatal("expected non-zero categoria ID")
		}
		if categoria.EsSubcategoria {
			t.Error("expected es_subcategoria to default false")
		}
		if !categoria.Activa {
			t.Error("expected categoria to be activa")
		}
	})

	t.Run("subcategoria_with_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoriaService(db)
		padre := testutil.CreateTestCategoria(t, db, models.TipoTransaccionGasto)

		esSub := true
		hija, err := svc.CreateCategoria(CategoriaCreateInput{
			Nombre:           "Snacks",
			TipoTransaccion:  "GASTO",
			EsSubcategoria:   &esSub,
			CategoriaPadreID: &padre.CategoriaID,
		})
		testutil.AssertNoError(t, err)
		if hija.CategoriaPadreID == nil || *hija.CategoriaPadreID != padre.CategoriaID {
			t.Errorf("expected padre %d, got %v", padre.CategoriaID, hija.CategoriaPadreID)
		}
	})

	t.Run("subcategoria_without_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoriaService(db)

		esSub := true
		_, err := svc.CreateCategoria(CategoriaCreateInput{
			Nombre:          "Huérfana",
			TipoTransaccion: "GASTO",
			EsSubcategoria:  &esSub,
		})
		testutil.AssertValidationField(t, err, "categoria_padre_id")
	})

	t.Run("parent_without_flag", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoriaService(db)
		padre := testutil.CreateTestCategoria(t, db, models.TipoTransaccionGasto)

		_, err := svc.CreateCategoria(CategoriaCreateInput{
			Nombre:           "Inconsistente",
			TipoTransaccion:  "GASTO",
			CategoriaPadreID: &padre.CategoriaID,
		})
		testutil.AssertValidationField(t, err, "es_subcategoria")
	})

	t.Run("missing_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoriaService(db)

		esSub := true
		fantasma := uint(99999)
		_, err := svc.CreateCategoria(CategoriaCreateInput{
			Nombre:           "Sin padre",
			TipoTransaccion:  "GASTO",
			EsSubcategoria:   &esSub,
			CategoriaPadreID: &fantasma,
		})
		testutil.AssertAppError(t, err, "CATEGORIA_NOT_FOUND")
	})

	t.Run("invalid_tipo", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoriaService(db)

		_, err := svc.CreateCategoria(CategoriaCreateInput{
			Nombre:          "Rara",
			TipoTransaccion: "REEMBOLSO",
		})
		testutil.AssertValidationField(t, err, "tipo_transaccion")
	})
}

func TestUpdateCategoria(t *testing.T) {
	t.Run("self_parent_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoriaService(db)
		categoria := testutil.CreateTestCategoria(t, db, models.TipoTransaccionGasto)

		esSub := true
		_, err := svc.UpdateCategoria(categoria.CategoriaID, CategoriaUpdateInput{
			EsSubcategoria:   &esSub,
			CategoriaPadreID: &categoria.CategoriaID,
		})
		testutil.AssertValidationField(t, err, "categoria_padre_id")
	})

	t.Run("merged_flag_and_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoriaService(db)
		padre := testutil.CreateTestCategoria(t, db, models.TipoTransaccionGasto)
		categoria := testutil.CreateTestCategoria(t, db, models.TipoTransaccionGasto)

		// Supplying only the parent leaves the stored flag false: the
		// merged row is inconsistent and must be rejected.
		_, err := svc.UpdateCategoria(categoria.CategoriaID, CategoriaUpdateInput{CategoriaPadreID: &padre.CategoriaID})
		testutil.AssertValidationField(t, err, "es_subcategoria")

		esSub := true
		updated, err := svc.UpdateCategoria(categoria.CategoriaID, CategoriaUpdateInput{
			EsSubcategoria:   &esSub,
			CategoriaPadreID: &padre.CategoriaID,
		})
		testutil.AssertNoError(t, err)
		if !updated.EsSubcategoria || updated.CategoriaPadreID == nil {
			t.Error("expected categoria converted into subcategoria")
		}
	})
}

func TestDeleteCategoria(t *testing.T) {
	t.Run("repairs_children", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoriaService(db)
		padre := testutil.CreateTestCategoria(t, db, models.TipoTransaccionGasto)

		esSub := true
		hija, err := svc.CreateCategoria(CategoriaCreateInput{
			Nombre:           "Hija",
			TipoTransaccion:  "GASTO",
			EsSubcategoria:   &esSub,
			CategoriaPadreID: &padre.CategoriaID,
		})
		testutil.AssertNoError(t, err)

		err = svc.DeleteCategoria(padre.CategoriaID)
		testutil.AssertNoError(t, err)

		var reloaded models.Categoria
		if err := db.First(&reloaded, hija.CategoriaID).Error; err != nil {
			t.Fatalf("failed to reload hija: %v", err)
		}
		if reloaded.CategoriaPadreID != nil {
			t.Errorf("expected padre reference cleared, got %v", reloaded.CategoriaPadreID)
		}
		if reloaded.EsSubcategoria {
			t.Error("expected es_subcategoria reset to false")
		}
	})

	t.Run("clears_transaccion_reference", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoriaService(db)
		usuario := testutil.CreateTestUsuario(t, db)
		cuenta := testutil.CreateTestCuenta(t, db, usuario.UsuarioID, models.TipoCuentaAhorro)
		categoria := testutil.CreateTestCategoria(t, db, models.TipoTransaccionIngreso)

		transaccion := &models.Transaccion{
			UsuarioID:       usuario.UsuarioID,
			CuentaDestinoID: &cuenta.CuentaID,
			CategoriaID:     &categoria.CategoriaID,
			Fecha:           time.Now(),
			Tipo:            models.TipoTransaccionIngreso,
			Monto:           decimal.NewFromInt(75),
		}
		if err := db.Create(transaccion).Error; err != nil {
			t.Fatalf("failed to create transaccion: %v", err)
		}

		err := svc.DeleteCategoria(categoria.CategoriaID)
		testutil.AssertNoError(t, err)

		var reloaded models.Transaccion
		if err := db.First(&reloaded, transaccion.TransaccionID).Error; err != nil {
			t.Fatalf("failed to reload transaccion: %v", err)
		}
		if reloaded.CategoriaID != nil {
			t.Errorf("expected categoria_id cleared, got %v", reloaded.CategoriaID)
		}
	})
}

func TestGetCategorias(t *testing.T) {
	t.Run("filter_by_tipo", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoriaService(db)
		testutil.CreateTestCategoria(t, db, models.TipoTransaccionGasto)
		testutil.CreateTestCategoria(t, db, models.TipoTransaccionGasto)
		testutil.CreateTestCategoria(t, db, models.TipoTransaccionIngreso)

		tipo := "gasto"
		page := pagination.PageRequest{Page: 1, PageSize: 10}
		result, err := svc.GetCategorias(page, &tipo)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 categorias GASTO, got %d", result.TotalItems)
		}
	})
}
