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

// GastoCreateInput carries the fields accepted when creating a planned
// expense against a sub-account.
type GastoCreateInput struct {
	SubcuentaID   uint             `json:"subcuenta_id" binding:"required"`
	Descripcion   string           `json:"descripcion" binding:"required"`
	Categoria     *string          `json:"categoria"`
	MontoTotal    decimal.Decimal  `json:"monto_total" binding:"required"`
	MontoGastado  *decimal.Decimal `json:"monto_gastado"`
	FechaCreacion time.Time        `json:"fecha_creacion" binding:"required"`
	FechaObjetivo *time.Time       `json:"fecha_objetivo"`
	Prioridad     *string          `json:"prioridad"`
	ColorHex      *string          `json:"color_hex"`
	Notas         *string          `json:"notas"`
}

// GastoUpdateInput carries the fields accepted on partial update.
type GastoUpdateInput struct {
	Descripcion     *string          `json:"descripcion"`
	Categoria       *string          `json:"categoria"`
	MontoTotal      *decimal.Decimal `json:"monto_total"`
	MontoGastado    *decimal.Decimal `json:"monto_gastado"`
	FechaObjetivo   *time.Time       `json:"fecha_objetivo"`
	FechaCompletado *time.Time       `json:"fecha_completado"`
	Estado          *string          `json:"estado"`
	Prioridad       *string          `json:"prioridad"`
	ColorHex        *string          `json:"color_hex"`
	Notas           *string          `json:"notas"`
}

// gastoPlanificadoService handles planned expense business logic.
type gastoPlanificadoService struct {
	db *gorm.DB
}

// NewGastoPlanificadoService creates a new GastoPlanificadoServicer.
func NewGastoPlanificadoService(db *gorm.DB) GastoPlanificadoServicer {
	return &gastoPlanificadoService{db: db}
}

func validateGastoCreate(in *GastoCreateInput) *apperrors.ValidationError {
	verr := &apperrors.ValidationError{}
	verr.Add("descripcion", rules.NonEmptyTrimmed(in.Descripcion))
	verr.Add("monto_total", rules.PositiveAmount(in.MontoTotal))
	if in.MontoGastado != nil {
		verr.Add("monto_gastado", rules.NonNegativeAmount(*in.MontoGastado))
	}
	if in.Prioridad != nil {
		verr.Add("prioridad", rules.EnumMember(*in.Prioridad, models.Prioridades))
	}
	if in.ColorHex != nil {
		verr.Add("color_hex", rules.HexColor(*in.ColorHex))
	}
	if verr.HasErrors() {
		return verr
	}

	if in.MontoGastado != nil && in.MontoGastado.GreaterThan(in.MontoTotal) {
		verr.Add("monto_gastado", "no puede exceder el monto total")
	}
	if in.FechaObjetivo != nil && in.FechaObjetivo.Before(in.FechaCreacion) {
		verr.Add("fecha_objetivo", "no puede ser anterior a la fecha de creación")
	}
	return verr
}

// getOwnedGasto loads a planned expense and verifies, through its
// sub-account's parent account, that it belongs to the user.
func (s *gastoPlanificadoService) getOwnedGasto(usuarioID, gastoID uint) (*models.GastoPlanificado, error) {
	var gasto models.GastoPlanificado
	err := s.db.
		Joins("JOIN subcuentas ON subcuentas.subcuenta_id = gastos_planificados.subcuenta_id").
		Joins("JOIN cuentas ON cuentas.cuenta_id = subcuentas.cuenta_id").
		Where("gastos_planificados.gasto_planificado_id = ? AND cuentas.usuario_id = ?", gastoID, usuarioID).
		First(&gasto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGastoPlanificadoNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &gasto, nil
}

// CreateGasto registers a planned expense on one of the user's sub-accounts.
func (s *gastoPlanificadoService) CreateGasto(usuarioID uint, in GastoCreateInput) (*models.GastoPlanificado, error) {
	if in.Prioridad != nil {
		upper := strings.ToUpper(*in.Prioridad)
		in.Prioridad = &upper
	}
	if verr := validateGastoCreate(&in); verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	var subcuenta models.Subcuenta
	err := s.db.
		Joins("JOIN cuentas ON cuentas.cuenta_id = subcuentas.cuenta_id").
		Where("subcuentas.subcuenta_id = ? AND cuentas.usuario_id = ?", in.SubcuentaID, usuarioID).
		First(&subcuenta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubcuentaNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	gasto := &models.GastoPlanificado{
		SubcuentaID:   in.SubcuentaID,
		Descripcion:   strings.TrimSpace(in.Descripcion),
		Categoria:     in.Categoria,
		MontoTotal:    in.MontoTotal,
		MontoGastado:  decimal.Zero,
		FechaCreacion: in.FechaCreacion,
		FechaObjetivo: in.FechaObjetivo,
		Estado:        models.EstadoGastoPendiente,
		Prioridad:     models.PrioridadMedia,
		ColorHex:      "#F59E0B",
		Notas:         in.Notas,
	}
	if in.MontoGastado != nil {
		gasto.MontoGastado = *in.MontoGastado
		if gasto.MontoGastado.IsPositive() {
			gasto.Estado = models.EstadoGastoEnProgreso
		}
	}
	if in.Prioridad != nil {
		gasto.Prioridad = models.Prioridad(*in.Prioridad)
	}
	if in.ColorHex != nil {
		gasto.ColorHex = strings.ToUpper(*in.ColorHex)
	}

	if err := s.db.Create(gasto).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return gasto, nil
}

// GetSubcuentaGastos retrieves a paginated list of a sub-account's planned
// expenses, optionally filtered by state.
func (s *gastoPlanificadoService) GetSubcuentaGastos(usuarioID, subcuentaID uint, page pagination.PageRequest, estado *string) (*pagination.PageResponse[models.GastoPlanificado], error) {
	var subcuenta models.Subcuenta
	err := s.db.
		Joins("JOIN cuentas ON cuentas.cuenta_id = subcuentas.cuenta_id").
		Where("subcuentas.subcuenta_id = ? AND cuentas.usuario_id = ?", subcuentaID, usuarioID).
		First(&subcuenta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubcuentaNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	query := s.db.Model(&models.GastoPlanificado{}).Where("subcuenta_id = ?", subcuentaID)
	if estado != nil {
		query = query.Where("estado = ?", strings.ToUpper(*estado))
	}
	query = query.Order("fecha_objetivo NULLS LAST, gasto_planificado_id")

	result, err := pagination.List[models.GastoPlanificado](query, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

// GetGastoByID retrieves a planned expense by ID for a specific user
func (s *gastoPlanificadoService) GetGastoByID(usuarioID, gastoID uint) (*models.GastoPlanificado, error) {
	return s.getOwnedGasto(usuarioID, gastoID)
}

// UpdateGasto applies a partial update, re-checking the amount and state
// rules against the merged result.
func (s *gastoPlanificadoService) UpdateGasto(usuarioID, gastoID uint, in GastoUpdateInput) (*models.GastoPlanificado, error) {
	gasto, err := s.getOwnedGasto(usuarioID, gastoID)
	if err != nil {
		return nil, err
	}

	if in.Estado != nil {
		upper := strings.ToUpper(*in.Estado)
		in.Estado = &upper
	}
	if in.Prioridad != nil {
		upper := strings.ToUpper(*in.Prioridad)
		in.Prioridad = &upper
	}

	verr := &apperrors.ValidationError{}
	if in.Descripcion != nil {
		verr.Add("descripcion", rules.NonEmptyTrimmed(*in.Descripcion))
	}
	if in.MontoTotal != nil {
		verr.Add("monto_total", rules.PositiveAmount(*in.MontoTotal))
	}
	if in.MontoGastado != nil {
		verr.Add("monto_gastado", rules.NonNegativeAmount(*in.MontoGastado))
	}
	if in.Estado != nil {
		verr.Add("estado", rules.EnumMember(*in.Estado, models.EstadosGasto))
	}
	if in.Prioridad != nil {
		verr.Add("prioridad", rules.EnumMember(*in.Prioridad, models.Prioridades))
	}
	if in.ColorHex != nil {
		verr.Add("color_hex", rules.HexColor(*in.ColorHex))
	}
	if verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	// The invariants must hold on the merged row, not just the patch.
	montoTotal := gasto.MontoTotal
	if in.MontoTotal != nil {
		montoTotal = *in.MontoTotal
	}
	montoGastado := gasto.MontoGastado
	if in.MontoGastado != nil {
		montoGastado = *in.MontoGastado
	}
	if montoGastado.GreaterThan(montoTotal) {
		verr.Add("monto_gastado", "no puede exceder el monto total")
	}
	if in.FechaObjetivo != nil && in.FechaObjetivo.Before(gasto.FechaCreacion) {
		verr.Add("fecha_objetivo", "no puede ser anterior a la fecha de creación")
	}

	estado := gasto.Estado
	if in.Estado != nil {
		estado = models.EstadoGasto(*in.Estado)
	}
	fechaCompletado := gasto.FechaCompletado
	if in.FechaCompletado != nil {
		fechaCompletado = in.FechaCompletado
	}
	if estado == models.EstadoGastoCompletado && fechaCompletado == nil {
		// Completing without an explicit date stamps today.
		now := time.Now()
		fechaCompletado = &now
	}
	if estado != models.EstadoGastoCompletado {
		if in.FechaCompletado != nil {
			verr.Add("fecha_completado", "solo aplica a gastos en estado COMPLETADO")
		}
		// Leaving COMPLETADO drops the stale completion date.
		fechaCompletado = nil
	}
	if verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	updates := make(map[string]interface{})
	if in.Descripcion != nil {
		updates["descripcion"] = strings.TrimSpace(*in.Descripcion)
	}
	if in.Categoria != nil {
		updates["categoria"] = *in.Categoria
	}
	if in.MontoTotal != nil {
		updates["monto_total"] = *in.MontoTotal
	}
	if in.MontoGastado != nil {
		updates["monto_gastado"] = *in.MontoGastado
	}
	if in.FechaObjetivo != nil {
		updates["fecha_objetivo"] = *in.FechaObjetivo
	}
	if in.Estado != nil {
		updates["estado"] = *in.Estado
	}
	if in.Estado != nil || in.FechaCompletado != nil {
		updates["fecha_completado"] = fechaCompletado
	}
	if in.Prioridad != nil {
		updates["prioridad"] = *in.Prioridad
	}
	if in.ColorHex != nil {
		updates["color_hex"] = strings.ToUpper(*in.ColorHex)
	}
	if in.Notas != nil {
		updates["notas"] = *in.Notas
	}

	if len(updates) > 0 {
		if err := s.db.Model(gasto).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return gasto, nil
}

// DeleteGasto removes a planned expense.
func (s *gastoPlanificadoService) DeleteGasto(usuarioID, gastoID uint) error {
	if _, err := s.getOwnedGasto(usuarioID, gastoID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteWithPolicy(tx, "gastos_planificados", gastoID)
	})
}

// GetProgreso reports how far the expense has advanced toward its target.
func (s *gastoPlanificadoService) GetProgreso(usuarioID, gastoID uint) (*ProgresoGasto, error) {
	gasto, err := s.getOwnedGasto(usuarioID, gastoID)
	if err != nil {
		return nil, err
	}

	progreso := &ProgresoGasto{
		GastoPlanificadoID: gasto.GastoPlanificadoID,
		MontoTotal:         gasto.MontoTotal,
		MontoGastado:       gasto.MontoGastado,
		MontoRestante:      gasto.MontoTotal.Sub(gasto.MontoGastado),
	}
	if gasto.MontoTotal.IsPositive() {
		porcentaje, _ := gasto.MontoGastado.Div(gasto.MontoTotal).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		progreso.Porcentaje = porcentaje
	}
	if gasto.FechaObjetivo != nil {
		dias := int(time.Until(*gasto.FechaObjetivo).Hours() / 24)
		progreso.DiasParaObjetivo = &dias
	}
	return progreso, nil
}
