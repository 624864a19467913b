package services

import (
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/ssamucr/chenchen/internal/errors"
	"github.com/ssamucr/chenchen/internal/models"
)

// primaryKeys maps each table to its primary key column, for the generic
// policy walk below.
var primaryKeys = map[string]string{
	"usuarios":                "usuario_id",
	"cuentas":                 "cuenta_id",
	"subcuentas":              "subcuenta_id",
	"categorias":              "categoria_id",
	"transacciones":           "transaccion_id",
	"deudas":                  "deuda_id",
	"movimientos_deuda":       "movimiento_deuda_id",
	"movimientos_subcuentas":  "movimiento_subcuenta_id",
	"compromisos_recurrentes": "compromiso_id",
	"plan_quincenal":          "item_id",
	"gastos_planificados":     "gasto_planificado_id",
}

// deleteWithPolicy removes one row and applies the declared delete policy of
// every relation the row owns: RESTRICT blocks the whole operation naming
// the dependent table, CASCADE recurses into dependents (which apply their
// own policies), SET_NULL clears dangling references. Must run inside a
// transaction so a blocked delete leaves nothing half-applied.
func deleteWithPolicy(tx *gorm.DB, table string, id uint) error {
	pk, ok := primaryKeys[table]
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}

	rels := models.DependentsOf(table)

	// RESTRICT relations are checked before anything is touched.
	for _, rel := range rels {
		if rel.Policy != models.Restrict {
			continue
		}
		var count int64
		if err := tx.Table(rel.Dependent).Where(rel.ForeignKey+" = ?", id).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			ref := &apperrors.ReferentialIntegrityError{Entity: table, Dependent: rel.Dependent, Count: count}
			return ref.AsAppError()
		}
	}

	for _, rel := range rels {
		switch rel.Policy {
		case models.Cascade:
			depPK, ok := primaryKeys[rel.Dependent]
			if !ok {
				return fmt.Errorf("unknown table %q", rel.Dependent)
			}
			var depIDs []uint
			if err := tx.Table(rel.Dependent).Where(rel.ForeignKey+" = ?", id).Pluck(depPK, &depIDs).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			for _, depID := range depIDs {
				if err := deleteWithPolicy(tx, rel.Dependent, depID); err != nil {
					return err
				}
			}
		case models.SetNull:
			if err := tx.Table(rel.Dependent).
				Where(rel.ForeignKey+" = ?", id).
				Update(rel.ForeignKey, nil).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
	}

	if err := tx.Table(table).Where(pk+" = ?", id).Delete(nil).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
