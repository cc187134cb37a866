package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/pedidos_api/internal/events"
	"github.com/Skotchmaster/pedidos_api/internal/logging"
	"github.com/Skotchmaster/pedidos_api/internal/models"
	"github.com/Skotchmaster/pedidos_api/internal/repo"
	"github.com/Skotchmaster/pedidos_api/internal/search"
	"github.com/Skotchmaster/pedidos_api/internal/transport"
)

type ProductService struct {
	Repo      *repo.GormRepo
	Publisher events.Publisher
	Index     search.ProductIndex
}

func (s *ProductService) index() search.ProductIndex {
	if s.Index == nil {
		return search.Disabled{}
	}
	return s.Index
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *ProductService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, "product %d", id)
	}
	return p, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req transport.ProductRequest) (*models.Product, error) {
	p, err := s.Repo.CreateProduct(ctx, req.Model())
	if err != nil {
		return nil, err
	}

	s.reindex(ctx, *p)
	publish(ctx, s.Publisher, events.TopicProducts, p.ID, map[string]any{
		"type":      "product_created",
		"productID": p.ID,
		"name":      p.Name,
	})
	return p, nil
}

func (s *ProductService) ReplaceProduct(ctx context.Context, id int, req transport.ProductRequest) error {
	if err := checkID(id, req.ID); err != nil {
		return err
	}
	p := req.Model()
	if err := s.Repo.ReplaceProduct(ctx, p); err != nil {
		return notFound(err, "product %d", id)
	}

	s.reindex(ctx, *p)
	publish(ctx, s.Publisher, events.TopicProducts, id, map[string]any{
		"type":      "product_updated",
		"productID": id,
		"name":      p.Name,
	})
	return nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return notFound(err, "product %d", id)
	}

	if err := s.index().DeleteProduct(ctx, id); err != nil {
		logging.FromContext(ctx).Error("unindex_product_failed", "productID", id, "error", err)
	}
	publish(ctx, s.Publisher, events.TopicProducts, id, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return nil
}

func (s *ProductService) SearchProducts(ctx context.Context, q string) (int64, []models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, nil, fmt.Errorf("%w: q is required", ErrValidation)
	}
	return s.index().Search(ctx, q, search.DefaultSize)
}

func (s *ProductService) reindex(ctx context.Context, p models.Product) {
	if err := s.index().IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Error("index_product_failed", "productID", p.ID, "error", err)
	}
}
