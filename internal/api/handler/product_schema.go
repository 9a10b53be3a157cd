package handler

// Creation rules (required fields, price > 0, stock >= 0, defaults) live in
// the catalog service so violations carry the catalog error code; the
// request type stays tag-free on purpose.
type createProductRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Thumbnail   string  `json:"thumbnail"`
	Code        string  `json:"code"`
	Status      *bool   `json:"status"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
}

// updateProductRequest is a partial update; absent fields stay untouched.
type updateProductRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Thumbnail   *string  `json:"thumbnail"`
	Code        *string  `json:"code"`
	Status      *bool    `json:"status"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
}

type productResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Thumbnail   string  `json:"thumbnail"`
	Code        string  `json:"code"`
	Status      bool    `json:"status"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Owner       string  `json:"owner"`
}

type listProductsResponse struct {
	Payload []productResponse `json:"payload"`
}

// pageResponse mirrors the navigable page result. Prev/next numbers and
// links are null when the corresponding direction does not exist.
type pageResponse struct {
	Status      string            `json:"status"`
	Payload     []productResponse `json:"payload"`
	TotalPages  int               `json:"totalPages"`
	PrevPage    *int              `json:"prevPage"`
	NextPage    *int              `json:"nextPage"`
	Page        int               `json:"page"`
	HasPrevPage bool              `json:"hasPrevPage"`
	HasNextPage bool              `json:"hasNextPage"`
	PrevLink    *string           `json:"prevLink"`
	NextLink    *string           `json:"nextLink"`
}

type deleteProductResponse struct {
	Status string `json:"status"`
}
