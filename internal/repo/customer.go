package repo

import (
	"context"

	"github.com/Skotchmaster/pedidos_api/internal/models"
)

func (r *GormRepo) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	items := make([]models.Customer, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	customer := models.Customer{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *GormRepo) CreateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	customer.ID = 0
	if err := r.DB.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *GormRepo) ReplaceCustomer(ctx context.Context, customer *models.Customer) error {
	res := r.DB.WithContext(ctx).
		Model(customer).
		Select("name", "email", "phone").
		Updates(customer)
	return affected(res)
}

func (r *GormRepo) DeleteCustomer(ctx context.Context, id int) error {
	return affected(r.DB.WithContext(ctx).Delete(&models.Customer{}, id))
}
