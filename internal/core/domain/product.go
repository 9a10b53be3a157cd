package domain

import "time"

// DefaultThumbnail is stored when a product is created without an image.
const DefaultThumbnail = "no image"

// OwnerAdmin marks products owned by the platform rather than a premium user.
const OwnerAdmin = "admin"

// Product is the catalog aggregate. Code is unique across all products;
// Owner is either OwnerAdmin or the email of the premium user who created it.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Thumbnail   string    `json:"thumbnail" bson:"thumbnail"`
	Code        string    `json:"code" bson:"code"`
	Status      bool      `json:"status" bson:"status"`
	Stock       int       `json:"stock" bson:"stock"`
	Category    string    `json:"category" bson:"category"`
	Owner       string    `json:"owner" bson:"owner"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// ProductDTO is the only product shape exposed to callers. Store-internal
// fields (timestamps) never appear here.
type ProductDTO struct {
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

// NewProductDTO projects a stored product into its public view.
func NewProductDTO(p *Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Thumbnail:   p.Thumbnail,
		Code:        p.Code,
		Status:      p.Status,
		Stock:       p.Stock,
		Category:    p.Category,
		Owner:       p.Owner,
	}
}
