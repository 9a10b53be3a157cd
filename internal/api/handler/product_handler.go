package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tiendavale/ecommerce-api/internal/api/metrics"
	"github.com/tiendavale/ecommerce-api/internal/core/domain"
	"github.com/tiendavale/ecommerce-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for catalog operations. Errors are
// returned as-is; the central error handler maps catalog codes to statuses.
type ProductHandler struct {
	service ports.CatalogService
}

func NewProductHandler(service ports.CatalogService) *ProductHandler {
	return &ProductHandler{service: service}
}

func listQuery(c echo.Context) ports.ListQuery {
	return ports.ListQuery{
		Page:         c.QueryParam("page"),
		Limit:        c.QueryParam("limit"),
		Sort:         c.QueryParam("sort"),
		Category:     c.QueryParam("category"),
		Availability: c.QueryParam("availability"),
	}
}

// List handles GET /products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        page          query     int     true   "Page number (1-based)"
// @Param        limit         query     int     false  "Page size (default 10)"
// @Param        sort          query     string  false  "Price order: asc or desc"
// @Param        category      query     string  false  "Exact category match"
// @Param        availability  query     string  false  "Availability filter: true or false"
// @Success      200  {object}  listProductsResponse
// @Failure      400  {object}  map[string]string
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	start := time.Now()

	dtos, err := h.service.ListProducts(c.Request().Context(), listQuery(c))
	if err != nil {
		return err
	}

	metrics.ListDurationSeconds.WithLabelValues("plain").Observe(time.Since(start).Seconds())
	return c.JSON(http.StatusOK, listProductsResponse{Payload: toProductResponses(dtos)})
}

// ListPage handles GET /products/view — the navigable page result.
//
// @Summary      List products with page navigation
// @Tags         products
// @Produce      json
// @Param        page          query     int     true   "Page number (1-based, must not exceed total pages)"
// @Param        limit         query     int     false  "Page size (default 10)"
// @Param        sort          query     string  false  "Price order: asc or desc"
// @Param        category      query     string  false  "Exact category match"
// @Param        availability  query     string  false  "Availability filter: true or false"
// @Success      200  {object}  pageResponse
// @Failure      400  {object}  map[string]string
// @Router       /products/view [get]
func (h *ProductHandler) ListPage(c echo.Context) error {
	start := time.Now()

	result, err := h.service.ListProductsPage(c.Request().Context(), listQuery(c))
	if err != nil {
		return err
	}

	metrics.ListDurationSeconds.WithLabelValues("page").Observe(time.Since(start).Seconds())
	return c.JSON(http.StatusOK, toPageResponse(result))
}

// Get handles GET /products/:id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	dto, err := h.service.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(*dto))
}

// Create handles POST /products. The owner is the authenticated requester;
// the service decides whether the product is theirs or the platform's.
//
// @Summary      Add a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product data"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	dto, err := h.service.AddProduct(c.Request().Context(), toCreateInput(req, user.Email))
	if err != nil {
		return err
	}

	ownerKind := domain.RolePremium
	if dto.Owner == domain.OwnerAdmin {
		ownerKind = domain.OwnerAdmin
	}
	metrics.ProductsCreatedTotal.WithLabelValues(ownerKind).Inc()

	return c.JSON(http.StatusCreated, toProductResponse(*dto))
}

// Update handles PUT /products/:id.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  productResponse
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	dto, err := h.service.UpdateProduct(c.Request().Context(), c.Param("id"), toPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(*dto))
}

// Delete handles DELETE /products/:id. Authorization (admin or owner) is
// decided by the catalog service.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  deleteProductResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(c.Request().Context(), c.Param("id"), user); err != nil {
		var de *domain.Error
		if errors.As(err, &de) && de.Code == domain.CodeProductDeletion {
			metrics.ProductsDeletedTotal.WithLabelValues("forbidden").Inc()
		}
		return err
	}

	metrics.ProductsDeletedTotal.WithLabelValues("deleted").Inc()
	return c.JSON(http.StatusOK, deleteProductResponse{Status: "deleted"})
}
