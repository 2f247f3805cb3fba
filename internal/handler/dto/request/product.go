package request

import (
	"school-rewards/internal/usecase/commands"
)

type CreateProductRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=1000"`
	Price       int    `json:"price" binding:"required,min=1"`
	Stock       int    `json:"stock" binding:"min=0"`
}

func (r *CreateProductRequest) ToInput() commands.CreateProductInput {
	return commands.CreateProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
	}
}

type UpdateProductRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Price       *int    `json:"price" binding:"omitempty,min=1"`
	Active      *bool   `json:"active"`
}

func (r *UpdateProductRequest) ToInput() commands.UpdateProductInput {
	return commands.UpdateProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Active:      r.Active,
	}
}

type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}
