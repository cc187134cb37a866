package service

import (
	"context"

	"github.com/Skotchmaster/pedidos_api/internal/events"
	"github.com/Skotchmaster/pedidos_api/internal/models"
	"github.com/Skotchmaster/pedidos_api/internal/repo"
	"github.com/Skotchmaster/pedidos_api/internal/transport"
)

type CustomerService struct {
	Repo      *repo.GormRepo
	Publisher events.Publisher
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.Repo.ListCustomers(ctx)
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	c, err := s.Repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, notFound(err, "customer %d", id)
	}
	return c, nil
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req transport.CustomerRequest) (*models.Customer, error) {
	c, err := s.Repo.CreateCustomer(ctx, req.Model())
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Publisher, events.TopicCustomers, c.ID, map[string]any{
		"type":       "customer_created",
		"customerID": c.ID,
		"name":       c.Name,
	})
	return c, nil
}

func (s *CustomerService) ReplaceCustomer(ctx context.Context, id int, req transport.CustomerRequest) error {
	if err := checkID(id, req.ID); err != nil {
		return err
	}
	if err := s.Repo.ReplaceCustomer(ctx, req.Model()); err != nil {
		return notFound(err, "customer %d", id)
	}

	publish(ctx, s.Publisher, events.TopicCustomers, id, map[string]any{
		"type":       "customer_updated",
		"customerID": id,
		"name":       req.Name,
	})
	return nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id int) error {
	if err := s.Repo.DeleteCustomer(ctx, id); err != nil {
		return notFound(err, "customer %d", id)
	}

	publish(ctx, s.Publisher, events.TopicCustomers, id, map[string]any{
		"type":       "customer_deleted",
		"customerID": id,
	})
	return nil
}
