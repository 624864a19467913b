package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/ssamucr/chenchen/internal/errors"
	"github.com/ssamucr/chenchen/internal/models"
	"github.com/ssamucr/chenchen/internal/pagination"
	"github.com/ssamucr/chenchen/internal/rules"
)

// PlanItemCreateInput carries the fields accepted when queueing a biweekly
// plan item. Which references are required depends on the movement kind.
type PlanItemCreateInput struct {
	Nombre             string          `json:"nombre" binding:"required"`
	Descripcion        *string         `json:"descripcion"`
	TipoMovimiento     string          `json:"tipo_movimiento" binding:"required"`
	Monto              decimal.Decimal `json:"monto" binding:"required"`
	CuentaOrigenID     *uint           `json:"cuenta_origen_id"`
	CuentaDestinoID    *uint           `json:"cuenta_destino_id"`
	SubcuentaDestinoID *uint           `json:"subcuenta_destino_id"`
	DeudaID            *uint           `json:"deuda_id"`
	Prioridad          *string         `json:"prioridad"`
	OrdenEjecucion     *int            `json:"orden_ejecucion"`
}

// PlanItemUpdateInput carries the fields accepted on partial update. The
// movement kind and its references are immutable: a mis-queued item is
// deleted and re-created.
type PlanItemUpdateInput struct {
	Nombre         *string          `json:"nombre"`
	Descripcion    *string          `json:"descripcion"`
	Monto          *decimal.Decimal `json:"monto"`
	Activo         *bool            `json:"activo"`
	Prioridad      *string          `json:"prioridad"`
	OrdenEjecucion *int             `json:"orden_ejecucion"`
}

// planQuincenalService handles biweekly plan business logic.
type planQuincenalService struct {
	db *gorm.DB
}

// NewPlanQuincenalService creates a new PlanQuincenalServicer.
func NewPlanQuincenalService(db *gorm.DB) PlanQuincenalServicer {
	return &planQuincenalService{db: db}
}

func validatePlanItemCreate(in *PlanItemCreateInput) *apperrors.ValidationError {
	verr := &apperrors.ValidationError{}
	verr.Add("nombre", rules.NonEmptyTrimmed(in.Nombre))
	verr.Add("tipo_movimiento", rules.EnumMember(in.TipoMovimiento, models.TiposMovimientoPlan))
	verr.Add("monto", rules.PositiveAmount(in.Monto))
	if in.Prioridad != nil {
		verr.Add("prioridad", rules.EnumMember(*in.Prioridad, models.Prioridades))
	}
	if verr.HasErrors() {
		return verr
	}

	// Each movement kind demands its own reference set and nothing else.
	if in.CuentaOrigenID == nil {
		verr.Add("cuenta_origen_id", "es requerido")
	}
	switch models.TipoMovimientoPlan(in.TipoMovimiento) {
	case models.PlanTransferenciaCuentas:
		if in.CuentaDestinoID == nil {
			verr.Add("cuenta_destino_id", "es requerido para movimientos TRANSFERENCIA_CUENTAS")
		} else if in.CuentaOrigenID != nil && *in.CuentaDestinoID == *in.CuentaOrigenID {
			verr.Add("cuenta_destino_id", "la cuenta destino debe ser distinta de la cuenta origen")
		}
		if in.SubcuentaDestinoID != nil {
			verr.Add("subcuenta_destino_id", "no aplica a movimientos TRANSFERENCIA_CUENTAS")
		}
		if in.DeudaID != nil {
			verr.Add("deuda_id", "no aplica a movimientos TRANSFERENCIA_CUENTAS")
		}
	case models.PlanMovimientoSubcuenta, models.PlanAhorro:
		if in.SubcuentaDestinoID == nil {
			verr.Add("subcuenta_destino_id", "es requerido para este tipo de movimiento")
		}
		if in.CuentaDestinoID != nil {
			verr.Add("cuenta_destino_id", "no aplica a este tipo de movimiento")
		}
		if in.DeudaID != nil {
			verr.Add("deuda_id", "no aplica a este tipo de movimiento")
		}
	case models.PlanPagoDeuda:
		if in.DeudaID == nil {
			verr.Add("deuda_id", "es requerido para movimientos PAGO_DEUDA")
		}
		if in.CuentaDestinoID != nil {
			verr.Add("cuenta_destino_id", "no aplica a movimientos PAGO_DEUDA")
		}
		if in.SubcuentaDestinoID != nil {
			verr.Add("subcuenta_destino_id", "no aplica a movimientos PAGO_DEUDA")
		}
	}
	return verr
}

// CreateItem queues a plan item, checking every referenced entity.
func (s *planQuincenalService) CreateItem(usuarioID uint, in PlanItemCreateInput) (*models.PlanQuincenal, error) {
	in.TipoMovimiento = strings.ToUpper(strings.TrimSpace(in.TipoMovimiento))
	if in.Prioridad != nil {
		upper := strings.ToUpper(*in.Prioridad)
		in.Prioridad = &upper
	}
	if verr := validatePlanItemCreate(&in); verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	for _, ref := range []*uint{in.CuentaOrigenID, in.CuentaDestinoID} {
		if ref == nil {
			continue
		}
		var cuenta models.Cuenta
		if err := s.db.Where("cuenta_id = ? AND usuario_id = ?", *ref, usuarioID).First(&cuenta).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCuentaNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if in.SubcuentaDestinoID != nil {
		var subcuenta models.Subcuenta
		err := s.db.
			Joins("JOIN cuentas ON cuentas.cuenta_id = subcuentas.cuenta_id").
			Where("subcuentas.subcuenta_id = ? AND cuentas.usuario_id = ?", *in.SubcuentaDestinoID, usuarioID).
			First(&subcuenta).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrSubcuentaNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if in.DeudaID != nil {
		var deuda models.Deuda
		if err := s.db.Where("deuda_id = ? AND usuario_id = ?", *in.DeudaID, usuarioID).First(&deuda).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrDeudaNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	item := &models.PlanQuincenal{
		UsuarioID:          usuarioID,
		CuentaOrigenID:     in.CuentaOrigenID,
		CuentaDestinoID:    in.CuentaDestinoID,
		SubcuentaDestinoID: in.SubcuentaDestinoID,
		DeudaID:            in.DeudaID,
		Nombre:             strings.TrimSpace(in.Nombre),
		Descripcion:        in.Descripcion,
		TipoMovimiento:     models.TipoMovimientoPlan(in.TipoMovimiento),
		Monto:              in.Monto,
		Activo:             true,
		Ejecutado:          false,
		Prioridad:          models.PrioridadMedia,
	}
	if in.Prioridad != nil {
		item.Prioridad = models.Prioridad(*in.Prioridad)
	}
	if in.OrdenEjecucion != nil {
		item.OrdenEjecucion = *in.OrdenEjecucion
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

// GetUserItems retrieves a paginated list of a user's plan items in
// execution order.
func (s *planQuincenalService) GetUserItems(usuarioID uint, page pagination.PageRequest, ejecutado *bool) (*pagination.PageResponse[models.PlanQuincenal], error) {
	query := s.db.Model(&models.PlanQuincenal{}).Where("usuario_id = ?", usuarioID)
	if ejecutado != nil {
		query = query.Where("ejecutado = ?", *ejecutado)
	}
	query = query.Order("orden_ejecucion, item_id")

	result, err := pagination.List[models.PlanQuincenal](query, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

// GetItemByID retrieves a plan item by ID for a specific user
func (s *planQuincenalService) GetItemByID(usuarioID, itemID uint) (*models.PlanQuincenal, error) {
	var item models.PlanQuincenal
	if err := s.db.Where("item_id = ? AND usuario_id = ?", itemID, usuarioID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlanItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}

// UpdateItem applies a partial update of the descriptive fields.
func (s *planQuincenalService) UpdateItem(usuarioID, itemID uint, in PlanItemUpdateInput) (*models.PlanQuincenal, error) {
	item, err := s.GetItemByID(usuarioID, itemID)
	if err != nil {
		return nil, err
	}

	if in.Prioridad != nil {
		upper := strings.ToUpper(*in.Prioridad)
		in.Prioridad = &upper
	}

	verr := &apperrors.ValidationError{}
	if in.Nombre != nil {
		verr.Add("nombre", rules.NonEmptyTrimmed(*in.Nombre))
	}
	if in.Monto != nil {
		verr.Add("monto", rules.PositiveAmount(*in.Monto))
	}
	if in.Prioridad != nil {
		verr.Add("prioridad", rules.EnumMember(*in.Prioridad, models.Prioridades))
	}
	if verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	updates := make(map[string]interface{})
	if in.Nombre != nil {
		updates["nombre"] = strings.TrimSpace(*in.Nombre)
	}
	if in.Descripcion != nil {
		updates["descripcion"] = *in.Descripcion
	}
	if in.Monto != nil {
		updates["monto"] = *in.Monto
	}
	if in.Activo != nil {
		updates["activo"] = *in.Activo
	}
	if in.Prioridad != nil {
		updates["prioridad"] = *in.Prioridad
	}
	if in.OrdenEjecucion != nil {
		updates["orden_ejecucion"] = *in.OrdenEjecucion
	}

	if len(updates) > 0 {
		if err := s.db.Model(item).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return item, nil
}

// DeleteItem removes a plan item.
func (s *planQuincenalService) DeleteItem(usuarioID, itemID uint) error {
	if _, err := s.GetItemByID(usuarioID, itemID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteWithPolicy(tx, "plan_quincenal", itemID)
	})
}

// MarcarEjecutado records that an external process executed the item,
// linking the transaction it generated.
func (s *planQuincenalService) MarcarEjecutado(usuarioID, itemID, transaccionID uint) (*models.PlanQuincenal, error) {
	item, err := s.GetItemByID(usuarioID, itemID)
	if err != nil {
		return nil, err
	}
	if item.Ejecutado {
		verr := &apperrors.ValidationError{}
		verr.Add("ejecutado", "el item ya fue ejecutado")
		return nil, verr.AsAppError()
	}

	var transaccion models.Transaccion
	if err := s.db.Where("transaccion_id = ? AND usuario_id = ?", transaccionID, usuarioID).First(&transaccion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransaccionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"ejecutado":               true,
		"ejecutado_en":            now,
		"transaccion_generada_id": transaccionID,
	}
	if err := s.db.Model(item).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

// GetResumen aggregates the state of a user's active plan.
func (s *planQuincenalService) GetResumen(usuarioID uint) (*ResumenPlan, error) {
	var items []models.PlanQuincenal
	if err := s.db.Where("usuario_id = ? AND activo = ?", usuarioID, true).Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resumen := &ResumenPlan{
		TotalItems:     len(items),
		MontoPendiente: decimal.Zero,
		MontoEjecutado: decimal.Zero,
	}
	for _, item := range items {
		if item.Ejecutado {
			resumen.ItemsEjecutados++
			resumen.MontoEjecutado = resumen.MontoEjecutado.Add(item.Monto)
		} else {
			resumen.ItemsPendientes++
			resumen.MontoPendiente = resumen.MontoPendiente.Add(item.Monto)
		}
	}
	return resumen, nil
}
