package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/pedidos_api/internal/models"
)

// withLines is the fixed read plan for orders: the customer, the line items
// and the product behind each line item, one query per level.
func withLines(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer").
		Preload("LineItems", func(db *gorm.DB) *gorm.DB { return db.Order("product_id ASC") }).
		Preload("LineItems.Product")
}

func (r *GormRepo) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	if err := withLines(r.DB.WithContext(ctx)).Order("id ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	var order models.Order
	if err := withLines(r.DB.WithContext(ctx)).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder inserts the order and its line items in one transaction.
// Line items are plain inserts, so a repeated product hits the composite key.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	items := order.LineItems
	order.ID = 0
	order.Customer = nil
	order.LineItems = nil

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].OrderID = order.ID
			items[i].Product = nil
		}
		return tx.Omit(clause.Associations).Create(&items).Error
	})
	if err != nil {
		return nil, err
	}

	order.LineItems = items
	return order, nil
}

// ReplaceOrder overwrites the order's own columns. Line items are left alone.
func (r *GormRepo) ReplaceOrder(ctx context.Context, order *models.Order) error {
	res := r.DB.WithContext(ctx).
		Model(order).
		Omit(clause.Associations).
		Select("customer_id", "status").
		Updates(order)
	return affected(res)
}

func (r *GormRepo) DeleteOrder(ctx context.Context, id int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderProduct{}).Error; err != nil {
			return err
		}
		return affected(tx.Delete(&models.Order{}, id))
	})
}

func (r *GormRepo) OrderExists(ctx context.Context, id int) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormRepo) GetLineItem(ctx context.Context, orderID, productID int) (*models.OrderProduct, error) {
	var item models.OrderProduct
	err := r.DB.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) AddLineItem(ctx context.Context, orderID, productID int) error {
	item := models.OrderProduct{OrderID: orderID, ProductID: productID}
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(&item).Error
}

func (r *GormRepo) RemoveLineItem(ctx context.Context, orderID, productID int) error {
	res := r.DB.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		Delete(&models.OrderProduct{})
	return affected(res)
}
