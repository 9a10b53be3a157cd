package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tiendavale/ecommerce-api/internal/core/domain"
	"github.com/tiendavale/ecommerce-api/internal/core/ports"
)

const defaultPageLimit = 10

// CatalogService owns catalog validation, pagination and the ownership
// rules for deletion. Every failure it returns is a *domain.Error.
type CatalogService struct {
	products ports.ProductRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewCatalogService(products ports.ProductRepository, users ports.UserRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{products: products, users: users, log: log}
}

// buildListParams translates the raw query into a store filter and options.
// A page that does not parse as a positive integer fails immediately.
func buildListParams(q ports.ListQuery) (ports.ProductFilter, ports.ListOptions, *domain.Error) {
	var filter ports.ProductFilter
	if q.Category != "" {
		filter.Category = q.Category
	}
	if q.Availability != "" {
		status := q.Availability == "true"
		filter.Status = &status
	}

	page, err := strconv.Atoi(q.Page)
	if err != nil || page < 1 {
		return filter, ports.ListOptions{}, domain.NewInvalidPageNumber("the page must be a valid positive number")
	}

	limit := defaultPageLimit
	if q.Limit != "" {
		if n, err := strconv.Atoi(q.Limit); err == nil && n > 0 {
			limit = n
		}
	}

	sort := ports.SortNone
	switch q.Sort {
	case "asc":
		sort = ports.SortPriceAsc
	case "desc":
		sort = ports.SortPriceDesc
	}

	return filter, ports.ListOptions{Page: page, Limit: limit, PriceSort: sort}, nil
}

// ListProducts returns the DTOs for one page of the catalog.
func (s *CatalogService) ListProducts(ctx context.Context, q ports.ListQuery) ([]domain.ProductDTO, error) {
	filter, opts, derr := buildListParams(q)
	if derr != nil {
		return nil, derr
	}

	products, _, err := s.products.Find(ctx, filter, opts)
	if err != nil {
		s.log.Error().Err(err).Msg("catalog listing failed")
		return nil, domain.WrapDatabaseError(err)
	}

	dtos := make([]domain.ProductDTO, len(products))
	for i := range products {
		dtos[i] = domain.NewProductDTO(&products[i])
	}
	return dtos, nil
}

// ListProductsPage returns the navigable page result. The resolved page must
// not exceed the total page count; prev/next links are present only when the
// corresponding direction exists.
func (s *CatalogService) ListProductsPage(ctx context.Context, q ports.ListQuery) (*ports.PageResult, error) {
	filter, opts, derr := buildListParams(q)
	if derr != nil {
		return nil, derr
	}

	products, total, err := s.products.Find(ctx, filter, opts)
	if err != nil {
		s.log.Error().Err(err).Msg("catalog page listing failed")
		return nil, domain.WrapDatabaseError(err)
	}

	totalPages := int((total + int64(opts.Limit) - 1) / int64(opts.Limit))
	if totalPages < 1 {
		totalPages = 1
	}
	if opts.Page > totalPages {
		return nil, domain.NewInvalidPageNumber("the page exceeds the total page count")
	}

	dtos := make([]domain.ProductDTO, len(products))
	for i := range products {
		dtos[i] = domain.NewProductDTO(&products[i])
	}

	result := &ports.PageResult{
		Status:      "success",
		Payload:     dtos,
		TotalPages:  totalPages,
		Page:        opts.Page,
		HasPrevPage: opts.Page > 1,
		HasNextPage: opts.Page < totalPages,
	}
	if result.HasPrevPage {
		result.PrevPage = opts.Page - 1
		result.PrevLink = fmt.Sprintf("/products?page=%d", result.PrevPage)
	}
	if result.HasNextPage {
		result.NextPage = opts.Page + 1
		result.NextLink = fmt.Sprintf("/products?page=%d", result.NextPage)
	}
	return result, nil
}

// GetProduct fetches a single product. Any failure, including a malformed
// id, is normalized to UNDEFINED_PRODUCT.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.ProductDTO, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NewUndefinedProduct()
	}
	dto := domain.NewProductDTO(product)
	return &dto, nil
}

// invalidProductCause names each field that breaks the creation rules.
func invalidProductCause(input ports.CreateProductInput) string {
	var missing []string
	if input.Title == "" {
		missing = append(missing, "title is required")
	}
	if input.Description == "" {
		missing = append(missing, "description is required")
	}
	if input.Code == "" {
		missing = append(missing, "code is required")
	}
	if input.Category == "" {
		missing = append(missing, "category is required")
	}
	if input.Price <= 0 {
		missing = append(missing, "price must be greater than 0")
	}
	if input.Stock < 0 {
		missing = append(missing, "stock must be 0 or greater")
	}
	return strings.Join(missing, "; ")
}

// AddProduct validates, applies defaults, resolves the owner and enforces
// code uniqueness before persisting. The pre-insert uniqueness check gives a
// friendly cause; the unique index on code closes the race a concurrent
// insert could win.
func (s *CatalogService) AddProduct(ctx context.Context, input ports.CreateProductInput) (*domain.ProductDTO, error) {
	if input.Title == "" || input.Description == "" || input.Code == "" ||
		input.Category == "" || input.Price <= 0 || input.Stock < 0 {
		return nil, domain.NewInvalidProductData(invalidProductCause(input))
	}

	thumbnail := input.Thumbnail
	if thumbnail == "" {
		thumbnail = domain.DefaultThumbnail
	}

	status := true
	if input.Status != nil {
		status = *input.Status
	}

	// The product belongs to the supplied email only when it identifies a
	// premium user; anything else falls back to the platform owner.
	owner := domain.OwnerAdmin
	if input.Owner != "" {
		user, err := s.users.FindByEmail(ctx, input.Owner)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.WrapProductCreation(err)
		}
		if user != nil && user.Role == domain.RolePremium {
			owner = user.Email
		}
	}

	existing, err := s.products.FindByCode(ctx, input.Code)
	if err != nil && !errors.Is(err, domain.ErrProductNotFound) {
		return nil, domain.WrapProductCreation(err)
	}
	if existing != nil {
		return nil, domain.NewDuplicateProductCode(input.Code)
	}

	created, err := s.products.Insert(ctx, &domain.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Thumbnail:   thumbnail,
		Code:        input.Code,
		Status:      status,
		Stock:       input.Stock,
		Category:    input.Category,
		Owner:       owner,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateCode) {
			return nil, domain.NewDuplicateProductCode(input.Code)
		}
		return nil, domain.WrapProductCreation(err)
	}

	s.log.Info().Str("code", created.Code).Str("owner", created.Owner).Msg("product added")
	dto := domain.NewProductDTO(created)
	return &dto, nil
}

// UpdateProduct applies a non-empty patch to an existing product and returns
// the re-read DTO.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch ports.ProductPatch) (*domain.ProductDTO, error) {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}

	if patch.IsZero() {
		return nil, domain.NewProductUpdateError("at least one field must be supplied")
	}

	if err := s.products.Update(ctx, id, patch); err != nil {
		return nil, domain.WrapDatabaseError(err)
	}

	return s.GetProduct(ctx, id)
}

// DeleteProduct removes a product when the requester is an admin or the
// product's owner; anyone else is refused.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string, requester *domain.User) error {
	dto, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	authorized := requester != nil && (requester.IsAdmin() || dto.Owner == requester.Email)
	if !authorized {
		s.log.Warn().Str("product_id", id).Str("owner", dto.Owner).Msg("delete refused")
		return domain.NewProductDeletionError()
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return domain.WrapDatabaseError(err)
	}

	s.log.Info().Str("product_id", id).Str("owner", dto.Owner).Msg("product deleted")
	return nil
}
