package models

type Customer struct {
	ID    int    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name  string `gorm:"not null"                  json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Product struct {
	ID          int     `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string  `gorm:"not null"                  json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null"                  json:"price"`
}

type Order struct {
	ID         int            `gorm:"primaryKey;autoIncrement"                                   json:"id"`
	CustomerID int            `gorm:"index;not null"                                             json:"customer_id"`
	Customer   *Customer      `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"         json:"customer,omitempty"`
	Status     string         `json:"status"`
	LineItems  []OrderProduct `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"             json:"line_items"`
}

// OrderProduct is one line item. The (order, product) pair is the key, so a
// product appears at most once per order.
type OrderProduct struct {
	OrderID   int      `gorm:"primaryKey;autoIncrement:false"                      json:"order_id"`
	ProductID int      `gorm:"primaryKey;autoIncrement:false;index"                json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"   json:"product,omitempty"`
}

// All lists every table in dependency order.
func All() []any {
	return []any{&Customer{}, &Product{}, &Order{}, &OrderProduct{}}
}
