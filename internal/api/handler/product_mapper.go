package handler

import (
	"github.com/tiendavale/ecommerce-api/internal/core/domain"
	"github.com/tiendavale/ecommerce-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createProductRequest, owner string) ports.CreateProductInput {
	return ports.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Thumbnail:   req.Thumbnail,
		Code:        req.Code,
		Status:      req.Status,
		Stock:       req.Stock,
		Category:    req.Category,
		Owner:       owner,
	}
}

func toPatch(req updateProductRequest) ports.ProductPatch {
	return ports.ProductPatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Thumbnail:   req.Thumbnail,
		Code:        req.Code,
		Status:      req.Status,
		Stock:       req.Stock,
		Category:    req.Category,
	}
}

// --- Service result → HTTP response ---

func toProductResponse(dto domain.ProductDTO) productResponse {
	return productResponse{
		ID:          dto.ID,
		Title:       dto.Title,
		Description: dto.Description,
		Price:       dto.Price,
		Thumbnail:   dto.Thumbnail,
		Code:        dto.Code,
		Status:      dto.Status,
		Stock:       dto.Stock,
		Category:    dto.Category,
		Owner:       dto.Owner,
	}
}

func toProductResponses(dtos []domain.ProductDTO) []productResponse {
	out := make([]productResponse, len(dtos))
	for i, dto := range dtos {
		out[i] = toProductResponse(dto)
	}
	return out
}

func toPageResponse(r *ports.PageResult) pageResponse {
	resp := pageResponse{
		Status:      r.Status,
		Payload:     toProductResponses(r.Payload),
		TotalPages:  r.TotalPages,
		Page:        r.Page,
		HasPrevPage: r.HasPrevPage,
		HasNextPage: r.HasNextPage,
	}
	if r.HasPrevPage {
		prevPage, prevLink := r.PrevPage, r.PrevLink
		resp.PrevPage = &prevPage
		resp.PrevLink = &prevLink
	}
	if r.HasNextPage {
		nextPage, nextLink := r.NextPage, r.NextLink
		resp.NextPage = &nextPage
		resp.NextLink = &nextLink
	}
	return resp
}
