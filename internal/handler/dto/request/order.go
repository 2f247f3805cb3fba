package request

import (
	"school-rewards/internal/domain/order"

	"github.com/google/uuid"
)

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r *CreateOrderRequest) ToCart() []order.CartLine {
	cart := make([]order.CartLine, len(r.Items))
	for i, item := range r.Items {
		cart[i] = order.CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}
	return cart
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
