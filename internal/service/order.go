package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/pedidos_api/internal/events"
	"github.com/Skotchmaster/pedidos_api/internal/models"
	"github.com/Skotchmaster/pedidos_api/internal/repo"
	"github.com/Skotchmaster/pedidos_api/internal/transport"
)

type OrderService struct {
	Repo      *repo.GormRepo
	Publisher events.Publisher
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx)
}

func (s *OrderService) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	o, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order %d", id)
	}
	return o, nil
}

func productIDs(items []models.OrderProduct) []int {
	ids := make([]int, 0, len(items))
	for _, li := range items {
		ids = append(ids, li.ProductID)
	}
	return ids
}

// CreateOrder stores the order with its line items atomically. A product
// listed twice is a conflict: line items are a set keyed by product.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.OrderRequest) (*models.Order, error) {
	seen := make(map[int]struct{}, len(req.LineItems))
	for _, li := range req.LineItems {
		if _, dup := seen[li.ProductID]; dup {
			return nil, fmt.Errorf("%w: product %d listed twice", ErrConflict, li.ProductID)
		}
		seen[li.ProductID] = struct{}{}
	}

	created, err := s.Repo.CreateOrder(ctx, req.Model())
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	order, err := s.Repo.GetOrder(ctx, created.ID)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Publisher, events.TopicOrders, order.ID, map[string]any{
		"type":       "order_created",
		"orderID":    order.ID,
		"customerID": order.CustomerID,
		"status":     order.Status,
		"productIDs": productIDs(order.LineItems),
	})
	return order, nil
}

// ReplaceOrder overwrites customer and status. Line items are managed
// through AddLineItem and RemoveLineItem only.
func (s *OrderService) ReplaceOrder(ctx context.Context, id int, req transport.OrderRequest) error {
	if err := checkID(id, req.ID); err != nil {
		return err
	}
	o := req.Model()
	o.LineItems = nil
	if err := s.Repo.ReplaceOrder(ctx, o); err != nil {
		return notFound(err, "order %d", id)
	}

	publish(ctx, s.Publisher, events.TopicOrders, id, map[string]any{
		"type":       "order_updated",
		"orderID":    id,
		"customerID": o.CustomerID,
		"status":     o.Status,
	})
	return nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id int) error {
	if err := s.Repo.DeleteOrder(ctx, id); err != nil {
		return notFound(err, "order %d", id)
	}

	publish(ctx, s.Publisher, events.TopicOrders, id, map[string]any{
		"type":    "order_deleted",
		"orderID": id,
	})
	return nil
}

func (s *OrderService) AddLineItem(ctx context.Context, orderID int, req transport.LineItemRequest) (*models.Order, error) {
	ok, err := s.Repo.OrderExists(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}

	_, err = s.Repo.GetLineItem(ctx, orderID, req.ProductID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: product %d already in order %d", ErrConflict, req.ProductID, orderID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	if err := s.Repo.AddLineItem(ctx, orderID, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	publish(ctx, s.Publisher, events.TopicOrders, orderID, map[string]any{
		"type":      "order_line_item_added",
		"orderID":   orderID,
		"productID": req.ProductID,
	})
	return s.Repo.GetOrder(ctx, orderID)
}

func (s *OrderService) RemoveLineItem(ctx context.Context, orderID, productID int) error {
	if err := s.Repo.RemoveLineItem(ctx, orderID, productID); err != nil {
		return notFound(err, "product %d in order %d", productID, orderID)
	}

	publish(ctx, s.Publisher, events.TopicOrders, orderID, map[string]any{
		"type":      "order_line_item_removed",
		"orderID":   orderID,
		"productID": productID,
	})
	return nil
}
