package ports

import (
	"context"

	"github.com/tiendavale/ecommerce-api/internal/core/domain"
)

// ProductFilter narrows a catalog listing. Zero values mean "no filter";
// Status is a pointer so availability can be filtered to either value.
type ProductFilter struct {
	Category string
	Status   *bool
}

// Price sort directions for ListOptions.
const (
	SortNone      = 0
	SortPriceAsc  = 1
	SortPriceDesc = -1
)

// ListOptions controls pagination of a catalog listing. Page is 1-based.
type ListOptions struct {
	Page      int
	Limit     int
	PriceSort int
}

// ProductPatch carries a partial update. Nil fields are left untouched.
type ProductPatch struct {
	Title       *string
	Description *string
	Price       *float64
	Thumbnail   *string
	Code        *string
	Status      *bool
	Stock       *int
	Category    *string
}

// IsZero reports whether the patch contains no fields to apply.
func (p ProductPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil &&
		p.Thumbnail == nil && p.Code == nil && p.Status == nil &&
		p.Stock == nil && p.Category == nil
}

// ProductRepository defines the persistence contract for the catalog.
// Lookups for missing products return domain.ErrProductNotFound; Insert
// returns domain.ErrDuplicateCode when the unique code index rejects the
// write.
type ProductRepository interface {
	Find(ctx context.Context, filter ProductFilter, opts ListOptions) ([]domain.Product, int64, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByCode(ctx context.Context, code string) (*domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) error
	Delete(ctx context.Context, id string) error
}
