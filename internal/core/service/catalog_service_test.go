package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tiendavale/ecommerce-api/internal/core/domain"
	"github.com/tiendavale/ecommerce-api/internal/core/ports"
)

type stubProductRepo struct {
	products []domain.Product
	nextID   int
	findErr  error
}

func (r *stubProductRepo) matches(p domain.Product, filter ports.ProductFilter) bool {
	if filter.Category != "" && p.Category != filter.Category {
		return false
	}
	if filter.Status != nil && p.Status != *filter.Status {
		return false
	}
	return true
}

func (r *stubProductRepo) Find(_ context.Context, filter ports.ProductFilter, opts ports.ListOptions) ([]domain.Product, int64, error) {
	if r.findErr != nil {
		return nil, 0, r.findErr
	}

	var matched []domain.Product
	for _, p := range r.products {
		if r.matches(p, filter) {
			matched = append(matched, p)
		}
	}

	if opts.PriceSort != ports.SortNone {
		asc := opts.PriceSort == ports.SortPriceAsc
		sort.SliceStable(matched, func(i, j int) bool {
			if asc {
				return matched[i].Price < matched[j].Price
			}
			return matched[i].Price > matched[j].Price
		})
	}

	total := int64(len(matched))
	start := (opts.Page - 1) * opts.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + opts.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) FindByCode(_ context.Context, code string) (*domain.Product, error) {
	for i := range r.products {
		if r.products[i].Code == code {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) Insert(_ context.Context, product *domain.Product) (*domain.Product, error) {
	for _, p := range r.products {
		if p.Code == product.Code {
			return nil, domain.ErrDuplicateCode
		}
	}
	r.nextID++
	created := *product
	created.ID = fmt.Sprintf("prod_%d", r.nextID)
	r.products = append(r.products, created)
	return &created, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, patch ports.ProductPatch) error {
	for i := range r.products {
		if r.products[i].ID != id {
			continue
		}
		p := &r.products[i]
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Thumbnail != nil {
			p.Thumbnail = *patch.Thumbnail
		}
		if patch.Code != nil {
			p.Code = *patch.Code
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		if patch.Stock != nil {
			p.Stock = *patch.Stock
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		return nil
	}
	return domain.ErrProductNotFound
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func newCatalog(products ports.ProductRepository, users *stubUserRepo) *CatalogService {
	return NewCatalogService(products, users, zerolog.Nop())
}

func seedProducts(t *testing.T, repo *stubProductRepo, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		_, err := repo.Insert(context.Background(), &domain.Product{
			Title:       fmt.Sprintf("Product %d", i),
			Description: "seeded",
			Price:       float64(i * 10),
			Thumbnail:   domain.DefaultThumbnail,
			Code:        fmt.Sprintf("CODE-%03d", i),
			Status:      true,
			Stock:       i,
			Category:    "general",
			Owner:       domain.OwnerAdmin,
		})
		if err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}
	}
}

func validInput(code string) ports.CreateProductInput {
	return ports.CreateProductInput{
		Title:       "Mate cup",
		Description: "Handmade",
		Price:       25.5,
		Code:        code,
		Stock:       3,
		Category:    "kitchen",
	}
}

func codeOf(t *testing.T, err error) domain.ErrorCode {
	t.Helper()
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected a typed catalog error, got %v", err)
	}
	return de.Code
}

func TestCatalogService_ListProductsPage_Flags(t *testing.T) {
	repo := &stubProductRepo{}
	seedProducts(t, repo, 25) // 3 pages at the default limit of 10
	svc := newCatalog(repo, newStubUserRepo())

	cases := []struct {
		page                 string
		hasPrev, hasNext     bool
		prevPage, nextPage   int
		prevLink, nextLink   string
	}{
		{"1", false, true, 0, 2, "", "/products?page=2"},
		{"2", true, true, 1, 3, "/products?page=1", "/products?page=3"},
		{"3", true, false, 2, 0, "/products?page=2", ""},
	}

	for _, tc := range cases {
		result, err := svc.ListProductsPage(context.Background(), ports.ListQuery{Page: tc.page})
		if err != nil {
			t.Fatalf("page %s: %v", tc.page, err)
		}
		if result.TotalPages != 3 {
			t.Fatalf("page %s: expected 3 total pages, got %d", tc.page, result.TotalPages)
		}
		if result.HasPrevPage != tc.hasPrev || result.HasNextPage != tc.hasNext {
			t.Fatalf("page %s: flags prev=%v next=%v", tc.page, result.HasPrevPage, result.HasNextPage)
		}
		if result.PrevPage != tc.prevPage || result.NextPage != tc.nextPage {
			t.Fatalf("page %s: numbers prev=%d next=%d", tc.page, result.PrevPage, result.NextPage)
		}
		if result.PrevLink != tc.prevLink || result.NextLink != tc.nextLink {
			t.Fatalf("page %s: links prev=%q next=%q", tc.page, result.PrevLink, result.NextLink)
		}
	}
}

func TestCatalogService_ListProductsPage_PageTooHigh(t *testing.T) {
	repo := &stubProductRepo{}
	seedProducts(t, repo, 5)
	svc := newCatalog(repo, newStubUserRepo())

	_, err := svc.ListProductsPage(context.Background(), ports.ListQuery{Page: "2"})
	if code := codeOf(t, err); code != domain.CodeInvalidPageNumber {
		t.Fatalf("expected INVALID_PAGE_NUMBER, got %s", code)
	}
	if status := domain.StatusOf(err); status != 400 {
		t.Fatalf("expected status 400, got %d", status)
	}
}

func TestCatalogService_ListProducts_BadPage(t *testing.T) {
	repo := &stubProductRepo{}
	seedProducts(t, repo, 3)
	svc := newCatalog(repo, newStubUserRepo())

	for _, page := range []string{"", "abc", "0", "-1"} {
		_, err := svc.ListProducts(context.Background(), ports.ListQuery{Page: page})
		if code := codeOf(t, err); code != domain.CodeInvalidPageNumber {
			t.Fatalf("page %q: expected INVALID_PAGE_NUMBER, got %s", page, code)
		}
	}
}

func TestCatalogService_ListProducts_StoreFailure(t *testing.T) {
	repo := &stubProductRepo{findErr: errors.New("connection refused")}
	svc := newCatalog(repo, newStubUserRepo())

	_, err := svc.ListProducts(context.Background(), ports.ListQuery{Page: "1"})
	if code := codeOf(t, err); code != domain.CodeDatabaseError {
		t.Fatalf("expected DATABASE_ERROR, got %s", code)
	}
	if status := domain.StatusOf(err); status != 500 {
		t.Fatalf("expected status 500, got %d", status)
	}
	if !errors.Is(err, repo.findErr) {
		t.Fatalf("original error must be preserved for diagnostics")
	}
}

func TestCatalogService_ListProducts_FilterAndSort(t *testing.T) {
	repo := &stubProductRepo{}
	mustInsert := func(p domain.Product) {
		if _, err := repo.Insert(context.Background(), &p); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	mustInsert(domain.Product{Title: "A", Description: "d", Price: 30, Code: "A1", Status: true, Stock: 1, Category: "toys"})
	mustInsert(domain.Product{Title: "B", Description: "d", Price: 10, Code: "B1", Status: false, Stock: 1, Category: "toys"})
	mustInsert(domain.Product{Title: "C", Description: "d", Price: 20, Code: "C1", Status: true, Stock: 1, Category: "books"})
	svc := newCatalog(repo, newStubUserRepo())

	dtos, err := svc.ListProducts(context.Background(), ports.ListQuery{
		Page: "1", Category: "toys", Sort: "asc",
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(dtos) != 2 || dtos[0].Title != "B" || dtos[1].Title != "A" {
		t.Fatalf("unexpected order/filter: %+v", dtos)
	}

	available, err := svc.ListProducts(context.Background(), ports.ListQuery{
		Page: "1", Availability: "false",
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(available) != 1 || available[0].Title != "B" {
		t.Fatalf("availability filter broken: %+v", available)
	}
}

func TestCatalogService_GetProduct_Missing(t *testing.T) {
	svc := newCatalog(&stubProductRepo{}, newStubUserRepo())

	_, err := svc.GetProduct(context.Background(), "does-not-exist")
	if code := codeOf(t, err); code != domain.CodeUndefinedProduct {
		t.Fatalf("expected UNDEFINED_PRODUCT, got %s", code)
	}
	if status := domain.StatusOf(err); status != 404 {
		t.Fatalf("expected status 404, got %d", status)
	}
}

func TestCatalogService_AddProduct_Validation(t *testing.T) {
	svc := newCatalog(&stubProductRepo{}, newStubUserRepo())

	bad := []ports.CreateProductInput{
		func() ports.CreateProductInput { in := validInput("V1"); in.Title = ""; return in }(),
		func() ports.CreateProductInput { in := validInput("V2"); in.Description = ""; return in }(),
		func() ports.CreateProductInput { in := validInput(""); return in }(),
		func() ports.CreateProductInput { in := validInput("V4"); in.Category = ""; return in }(),
		func() ports.CreateProductInput { in := validInput("V5"); in.Price = 0; return in }(),
		func() ports.CreateProductInput { in := validInput("V6"); in.Stock = -1; return in }(),
	}
	for i, in := range bad {
		_, err := svc.AddProduct(context.Background(), in)
		if code := codeOf(t, err); code != domain.CodeInvalidProductData {
			t.Fatalf("case %d: expected INVALID_PRODUCT_DATA, got %s", i, code)
		}
	}

	// Boundary values that must pass.
	in := validInput("V7")
	in.Price = 0.01
	in.Stock = 0
	if _, err := svc.AddProduct(context.Background(), in); err != nil {
		t.Fatalf("boundary input rejected: %v", err)
	}
}

func TestCatalogService_AddProduct_Defaults(t *testing.T) {
	svc := newCatalog(&stubProductRepo{}, newStubUserRepo())

	dto, err := svc.AddProduct(context.Background(), validInput("D1"))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if dto.Thumbnail != domain.DefaultThumbnail {
		t.Fatalf("expected thumbnail sentinel, got %q", dto.Thumbnail)
	}
	if !dto.Status {
		t.Fatalf("expected status to default to available")
	}
	if dto.ID == "" {
		t.Fatalf("expected a persisted id on the DTO")
	}

	off := false
	in := validInput("D2")
	in.Status = &off
	dto2, err := svc.AddProduct(context.Background(), in)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if dto2.Status {
		t.Fatalf("explicit false status must be kept")
	}
}

func TestCatalogService_AddProduct_OwnerResolution(t *testing.T) {
	users := newStubUserRepo()
	if _, err := users.Create(context.Background(), &domain.User{Email: "prem@example.com", Role: domain.RolePremium}); err != nil {
		t.Fatalf("seed premium: %v", err)
	}
	if _, err := users.Create(context.Background(), &domain.User{Email: "std@example.com", Role: domain.RoleUser}); err != nil {
		t.Fatalf("seed standard: %v", err)
	}
	svc := newCatalog(&stubProductRepo{}, users)

	in := validInput("O1")
	in.Owner = "prem@example.com"
	dto, err := svc.AddProduct(context.Background(), in)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if dto.Owner != "prem@example.com" {
		t.Fatalf("premium creator must own the product, got %q", dto.Owner)
	}

	in = validInput("O2")
	in.Owner = "std@example.com"
	dto, err = svc.AddProduct(context.Background(), in)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if dto.Owner != domain.OwnerAdmin {
		t.Fatalf("standard creator falls back to admin owner, got %q", dto.Owner)
	}

	in = validInput("O3")
	in.Owner = "nobody@example.com"
	dto, err = svc.AddProduct(context.Background(), in)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if dto.Owner != domain.OwnerAdmin {
		t.Fatalf("unknown creator falls back to admin owner, got %q", dto.Owner)
	}
}

func TestCatalogService_AddProduct_DuplicateCode(t *testing.T) {
	repo := &stubProductRepo{}
	svc := newCatalog(repo, newStubUserRepo())

	first, err := svc.AddProduct(context.Background(), validInput("DUP"))
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	in := validInput("DUP")
	in.Title = "Different title"
	_, err = svc.AddProduct(context.Background(), in)
	if code := codeOf(t, err); code != domain.CodeDuplicateProductCode {
		t.Fatalf("expected DUPLICATE_PRODUCT_CODE, got %s", code)
	}
	if status := domain.StatusOf(err); status != 409 {
		t.Fatalf("expected status 409, got %d", status)
	}

	// The first product must remain unmodified.
	stored, err := svc.GetProduct(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("re-read failed: %v", err)
	}
	if stored.Title != first.Title {
		t.Fatalf("first product was modified: %+v", stored)
	}
	if len(repo.products) != 1 {
		t.Fatalf("expected exactly one stored product, got %d", len(repo.products))
	}
}

// racingProductRepo simulates the loser of a concurrent insert: the code
// lookup misses, but the unique index rejects the write.
type racingProductRepo struct {
	stubProductRepo
}

func (r *racingProductRepo) FindByCode(_ context.Context, _ string) (*domain.Product, error) {
	return nil, domain.ErrProductNotFound
}

func (r *racingProductRepo) Insert(_ context.Context, _ *domain.Product) (*domain.Product, error) {
	return nil, domain.ErrDuplicateCode
}

func TestCatalogService_AddProduct_DuplicateCodeRace(t *testing.T) {
	svc := newCatalog(&racingProductRepo{}, newStubUserRepo())

	_, err := svc.AddProduct(context.Background(), validInput("RACE"))
	if code := codeOf(t, err); code != domain.CodeDuplicateProductCode {
		t.Fatalf("expected DUPLICATE_PRODUCT_CODE, got %s", code)
	}
	if status := domain.StatusOf(err); status != 409 {
		t.Fatalf("expected status 409, got %d", status)
	}
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	repo := &stubProductRepo{}
	svc := newCatalog(repo, newStubUserRepo())

	dto, err := svc.AddProduct(context.Background(), validInput("U1"))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// Empty patch is refused.
	_, err = svc.UpdateProduct(context.Background(), dto.ID, ports.ProductPatch{})
	if code := codeOf(t, err); code != domain.CodeProductUpdate {
		t.Fatalf("expected PRODUCT_UPDATE_ERROR, got %s", code)
	}

	price := 50.0
	updated, err := svc.UpdateProduct(context.Background(), dto.ID, ports.ProductPatch{Price: &price})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Price != 50.0 {
		t.Fatalf("expected updated price, got %v", updated.Price)
	}
	if updated.Title != dto.Title || updated.Code != dto.Code || updated.Stock != dto.Stock {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	// Unknown id propagates the not-found code.
	_, err = svc.UpdateProduct(context.Background(), "missing", ports.ProductPatch{Price: &price})
	if code := codeOf(t, err); code != domain.CodeUndefinedProduct {
		t.Fatalf("expected UNDEFINED_PRODUCT, got %s", code)
	}
}

func TestCatalogService_DeleteProduct_Authorization(t *testing.T) {
	admin := &domain.User{Email: "root@example.com", Role: domain.RoleAdmin}
	owner := &domain.User{Email: "prem@example.com", Role: domain.RolePremium}
	stranger := &domain.User{Email: "other@example.com", Role: domain.RolePremium}

	users := newStubUserRepo()
	if _, err := users.Create(context.Background(), cloneUser(owner)); err != nil {
		t.Fatalf("seed owner: %v", err)
	}

	newProduct := func(t *testing.T, svc *CatalogService) *domain.ProductDTO {
		in := validInput("DEL")
		in.Owner = owner.Email
		dto, err := svc.AddProduct(context.Background(), in)
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		return dto
	}

	t.Run("admin may delete anything", func(t *testing.T) {
		svc := newCatalog(&stubProductRepo{}, users)
		dto := newProduct(t, svc)
		if err := svc.DeleteProduct(context.Background(), dto.ID, admin); err != nil {
			t.Fatalf("admin delete failed: %v", err)
		}
	})

	t.Run("owner may delete own product", func(t *testing.T) {
		svc := newCatalog(&stubProductRepo{}, users)
		dto := newProduct(t, svc)
		if err := svc.DeleteProduct(context.Background(), dto.ID, owner); err != nil {
			t.Fatalf("owner delete failed: %v", err)
		}
	})

	t.Run("anyone else is refused", func(t *testing.T) {
		repo := &stubProductRepo{}
		svc := newCatalog(repo, users)
		dto := newProduct(t, svc)
		err := svc.DeleteProduct(context.Background(), dto.ID, stranger)
		if code := codeOf(t, err); code != domain.CodeProductDeletion {
			t.Fatalf("expected PRODUCT_DELETION_ERROR, got %s", code)
		}
		if status := domain.StatusOf(err); status != 403 {
			t.Fatalf("expected status 403, got %d", status)
		}
		if len(repo.products) != 1 {
			t.Fatalf("refused delete must not remove the product")
		}
	})

	t.Run("nil requester is refused", func(t *testing.T) {
		repo := &stubProductRepo{}
		svc := newCatalog(repo, users)
		dto := newProduct(t, svc)
		err := svc.DeleteProduct(context.Background(), dto.ID, nil)
		if code := codeOf(t, err); code != domain.CodeProductDeletion {
			t.Fatalf("expected PRODUCT_DELETION_ERROR, got %s", code)
		}
		if len(repo.products) != 1 {
			t.Fatalf("refused delete must not remove the product")
		}
	})

	t.Run("missing product propagates not found", func(t *testing.T) {
		svc := newCatalog(&stubProductRepo{}, users)
		err := svc.DeleteProduct(context.Background(), "missing", admin)
		if code := codeOf(t, err); code != domain.CodeUndefinedProduct {
			t.Fatalf("expected UNDEFINED_PRODUCT, got %s", code)
		}
	})
}

func TestCatalogService_DTOShape(t *testing.T) {
	svc := newCatalog(&stubProductRepo{}, newStubUserRepo())

	in := validInput("SHAPE")
	in.Thumbnail = "https://img.example.com/p.png"
	dto, err := svc.AddProduct(context.Background(), in)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if dto.Title != in.Title || dto.Description != in.Description ||
		dto.Price != in.Price || dto.Thumbnail != in.Thumbnail ||
		dto.Code != in.Code || dto.Stock != in.Stock ||
		dto.Category != in.Category || dto.Owner != domain.OwnerAdmin {
		t.Fatalf("DTO does not project the stored fields: %+v", dto)
	}
}
