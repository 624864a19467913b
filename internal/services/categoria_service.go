package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/ssamucr/chenchen/internal/errors"
	"github.com/ssamucr/chenchen/internal/models"
	"github.com/ssamucr/chenchen/internal/pagination"
	"github.com/ssamucr/chenchen/internal/rules"
)

// CategoriaCreateInput carries the fields accepted when creating a
// category.
type CategoriaCreateInput struct {
	Nombre           string  `json:"nombre" binding:"required"`
	Descripcion      *string `json:"descripcion"`
	TipoTransaccion  string  `json:"tipo_transaccion" binding:"required"`
	EsSubcategoria   *bool   `json:"es_subcategoria"`
	CategoriaPadreID *uint   `json:"categoria_padre_id"`
	ColorHex         *string `json:"color_hex" binding:"omitempty,hex_color"`
	Icono            *string `json:"icono"`
	OrdenMostrar     *int    `json:"orden_mostrar"`
}

// CategoriaUpdateInput carries the fields accepted on partial update.
type CategoriaUpdateInput struct {
	Nombre           *string `json:"nombre"`
	Descripcion      *string `json:"descripcion"`
	TipoTransaccion  *string `json:"tipo_transaccion"`
	EsSubcategoria   *bool   `json:"es_subcategoria"`
	CategoriaPadreID *uint   `json:"categoria_padre_id"`
	Activa           *bool   `json:"activa"`
	ColorHex         *string `json:"color_hex" binding:"omitempty,hex_color"`
	Icono            *string `json:"icono"`
	OrdenMostrar     *int    `json:"orden_mostrar"`
}

// categoriaService handles category business logic.
type categoriaService struct {
	db *gorm.DB
}

// NewCategoriaService creates a new CategoriaServicer.
func NewCategoriaService(db *gorm.DB) CategoriaServicer {
	return &categoriaService{db: db}
}

// CreateCategoria creates a category. The es_subcategoria flag and the
// presence of a parent id must agree.
func (s *categoriaService) CreateCategoria(in CategoriaCreateInput) (*models.Categoria, error) {
	in.TipoTransaccion = strings.ToUpper(strings.TrimSpace(in.TipoTransaccion))

	verr := &apperrors.ValidationError{}
	verr.Add("nombre", rules.NonEmptyTrimmed(in.Nombre))
	verr.Add("tipo_transaccion", rules.EnumMember(in.TipoTransaccion, models.TiposTransaccion))
	if in.ColorHex != nil {
		verr.Add("color_hex", rules.HexColor(*in.ColorHex))
	}
	if verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	esSubcategoria := in.EsSubcategoria != nil && *in.EsSubcategoria
	if esSubcategoria && in.CategoriaPadreID == nil {
		verr.Add("categoria_padre_id", "es requerido cuando es_subcategoria es true")
	}
	if !esSubcategoria && in.CategoriaPadreID != nil {
		verr.Add("es_subcategoria", "debe ser true cuando se indica una categoría padre")
	}
	if verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	if in.CategoriaPadreID != nil {
		var padre models.Categoria
		if err := s.db.First(&padre, *in.CategoriaPadreID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.WithMessage(apperrors.ErrCategoriaNotFound, "Categoría padre no encontrada")
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	categoria := &models.Categoria{
		Nombre:           strings.TrimSpace(in.Nombre),
		Descripcion:      in.Descripcion,
		TipoTransaccion:  models.TipoTransaccion(in.TipoTransaccion),
		EsSubcategoria:   esSubcategoria,
		CategoriaPadreID: in.CategoriaPadreID,
		Activa:           true,
		ColorHex:         "#6B7280",
		Icono:            in.Icono,
	}
	if in.ColorHex != nil {
		categoria.ColorHex = *in.ColorHex
	}
	if in.OrdenMostrar != nil {
		categoria.OrdenMostrar = *in.OrdenMostrar
	}

	if err := s.db.Create(categoria).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categoria, nil
}

// GetCategorias retrieves a paginated list of categories, optionally
// filtered by transaction type affinity.
func (s *categoriaService) GetCategorias(page pagination.PageRequest, tipo *string) (*pagination.PageResponse[models.Categoria], error) {
	query := s.db.Model(&models.Categoria{})
	if tipo != nil {
		query = query.Where("tipo_transaccion = ?", strings.ToUpper(*tipo))
	}
	query = query.Order("orden_mostrar, categoria_id")

	result, err := pagination.List[models.Categoria](query, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

// GetCategoriaByID retrieves a category by ID
func (s *categoriaService) GetCategoriaByID(categoriaID uint) (*models.Categoria, error) {
	var categoria models.Categoria
	if err := s.db.First(&categoria, categoriaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoriaNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &categoria, nil
}

// UpdateCategoria applies a partial update, re-checking the subcategory
// rule against the effective flag and parent.
func (s *categoriaService) UpdateCategoria(categoriaID uint, in CategoriaUpdateInput) (*models.Categoria, error) {
	categoria, err := s.GetCategoriaByID(categoriaID)
	if err != nil {
		return nil, err
	}

	if in.TipoTransaccion != nil {
		upper := strings.ToUpper(strings.TrimSpace(*in.TipoTransaccion))
		in.TipoTransaccion = &upper
	}

	verr := &apperrors.ValidationError{}
	if in.Nombre != nil {
		verr.Add("nombre", rules.NonEmptyTrimmed(*in.Nombre))
	}
	if in.TipoTransaccion != nil {
		verr.Add("tipo_transaccion", rules.EnumMember(*in.TipoTransaccion, models.TiposTransaccion))
	}
	if in.ColorHex != nil {
		verr.Add("color_hex", rules.HexColor(*in.ColorHex))
	}
	if verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	esSubcategoria := categoria.EsSubcategoria
	if in.EsSubcategoria != nil {
		esSubcategoria = *in.EsSubcategoria
	}
	padreID := categoria.CategoriaPadreID
	if in.CategoriaPadreID != nil {
		padreID = in.CategoriaPadreID
	}
	if esSubcategoria && padreID == nil {
		verr.Add("categoria_padre_id", "es requerido cuando es_subcategoria es true")
	}
	if !esSubcategoria && padreID != nil {
		verr.Add("es_subcategoria", "debe ser true cuando se indica una categoría padre")
	}
	if padreID != nil && *padreID == categoriaID {
		verr.Add("categoria_padre_id", "una categoría no puede ser su propia padre")
	}
	if verr.HasErrors() {
		return nil, verr.AsAppError()
	}

	if in.CategoriaPadreID != nil {
		var padre models.Categoria
		if err := s.db.First(&padre, *in.CategoriaPadreID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.WithMessage(apperrors.ErrCategoriaNotFound, "Categoría padre no encontrada")
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	updates := make(map[string]interface{})
	if in.Nombre != nil {
		updates["nombre"] = strings.TrimSpace(*in.Nombre)
	}
	if in.Descripcion != nil {
		updates["descripcion"] = *in.Descripcion
	}
	if in.TipoTransaccion != nil {
		updates["tipo_transaccion"] = *in.TipoTransaccion
	}
	if in.EsSubcategoria != nil {
		updates["es_subcategoria"] = *in.EsSubcategoria
	}
	if in.CategoriaPadreID != nil {
		updates["categoria_padre_id"] = *in.CategoriaPadreID
	}
	if in.Activa != nil {
		updates["activa"] = *in.Activa
	}
	if in.ColorHex != nil {
		updates["color_hex"] = *in.ColorHex
	}
	if in.Icono != nil {
		updates["icono"] = *in.Icono
	}
	if in.OrdenMostrar != nil {
		updates["orden_mostrar"] = *in.OrdenMostrar
	}

	if len(updates) > 0 {
		if err := s.db.Model(categoria).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return categoria, nil
}

// DeleteCategoria removes a category. Child categories and transactions
// keep working: their references are cleared, not blocked.
func (s *categoriaService) DeleteCategoria(categoriaID uint) error {
	if _, err := s.GetCategoriaByID(categoriaID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		// Children that lose their parent stop being subcategories, keeping
		// es_subcategoria in agreement with the parent reference.
		if err := tx.Model(&models.Categoria{}).
			Where("categoria_padre_id = ?", categoriaID).
			Update("es_subcategoria", false).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return deleteWithPolicy(tx, "categorias", categoriaID)
	})
}
