package response

import (
	"school-rewards/internal/usecase/queries"
)

type OrderItemResponse struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	Quantity     int    `json:"quantity"`
	PriceAtOrder int    `json:"price_at_order"`
}

type OrderResponse struct {
	ID          string              `json:"id"`
	StudentID   string              `json:"student_id"`
	StudentName string              `json:"student_name"`
	Items       []OrderItemResponse `json:"items"`
	TotalCost   int                 `json:"total_cost"`
	Status      string              `json:"status"`
	CreatedAt   int64               `json:"created_at"`
	UpdatedAt   int64               `json:"updated_at"`
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	items := make([]OrderItemResponse, len(v.Items))
	for i, item := range v.Items {
		items[i] = OrderItemResponse{
			ProductID:    item.ProductID.String(),
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			PriceAtOrder: item.PriceAtOrder,
		}
	}

	return &OrderResponse{
		ID:          v.ID.String(),
		StudentID:   v.StudentID.String(),
		StudentName: v.StudentName,
		Items:       items,
		TotalCost:   v.TotalCost,
		Status:      v.Status,
		CreatedAt:   v.CreatedAt.Unix(),
		UpdatedAt:   v.UpdatedAt.Unix(),
	}
}

func FromOrderList(views []*queries.OrderView) []*OrderResponse {
	res := make([]*OrderResponse, len(views))
	for i, v := range views {
		res[i] = FromOrderView(v)
	}
	return res
}
