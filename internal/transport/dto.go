package transport

import "github.com/Skotchmaster/pedidos_api/internal/models"

type CustomerRequest struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r CustomerRequest) Model() *models.Customer {
	return &models.Customer{ID: r.ID, Name: r.Name, Email: r.Email, Phone: r.Phone}
}

type ProductRequest struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func (r ProductRequest) Model() *models.Product {
	return &models.Product{ID: r.ID, Name: r.Name, Description: r.Description, Price: r.Price}
}

type LineItemRequest struct {
	ProductID int `json:"product_id"`
}

type OrderRequest struct {
	ID         int               `json:"id"`
	CustomerID int               `json:"customer_id"`
	Status     string            `json:"status"`
	LineItems  []LineItemRequest `json:"line_items"`
}

func (r OrderRequest) Model() *models.Order {
	o := &models.Order{ID: r.ID, CustomerID: r.CustomerID, Status: r.Status}
	for _, li := range r.LineItems {
		o.LineItems = append(o.LineItems, models.OrderProduct{OrderID: r.ID, ProductID: li.ProductID})
	}
	return o
}

type SearchResponse struct {
	Total int64            `json:"total"`
	Data  []models.Product `json:"data"`
}
