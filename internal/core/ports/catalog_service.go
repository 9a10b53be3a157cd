package ports

import (
	"context"

	"github.com/tiendavale/ecommerce-api/internal/core/domain"
)

// ListQuery carries the raw catalog query parameters as received on the
// wire. Page must parse as a positive integer; Limit defaults to 10 when
// empty; Sort accepts "asc"/"desc" on price; Availability accepts
// "true"/"false".
type ListQuery struct {
	Page         string
	Limit        string
	Sort         string
	Category     string
	Availability string
}

// CreateProductInput carries the fields for a new catalog entry. Status nil
// means "not supplied" and normalizes to available; Owner is the email of
// the requesting user, resolved against the premium-role rule.
type CreateProductInput struct {
	Title       string
	Description string
	Price       float64
	Thumbnail   string
	Code        string
	Status      *bool
	Stock       int
	Category    string
	Owner       string
}

// PageResult is the navigable listing computed fresh per query, never
// persisted. PrevPage/NextPage and the links are meaningful only when the
// corresponding Has flag is set; links are relative, of the form
// "/products?page=<n>".
type PageResult struct {
	Status      string
	Payload     []domain.ProductDTO
	TotalPages  int
	PrevPage    int
	NextPage    int
	Page        int
	HasPrevPage bool
	HasNextPage bool
	PrevLink    string
	NextLink    string
}

// CatalogService owns catalog validation, pagination, DTO mapping and the
// ownership rules for mutation. All failures are *domain.Error values.
type CatalogService interface {
	ListProducts(ctx context.Context, q ListQuery) ([]domain.ProductDTO, error)
	ListProductsPage(ctx context.Context, q ListQuery) (*PageResult, error)
	GetProduct(ctx context.Context, id string) (*domain.ProductDTO, error)
	AddProduct(ctx context.Context, input CreateProductInput) (*domain.ProductDTO, error)
	UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*domain.ProductDTO, error)
	DeleteProduct(ctx context.Context, id string, requester *domain.User) error
}
