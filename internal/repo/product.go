package repo

import (
	"context"

	"github.com/Skotchmaster/pedidos_api/internal/models"
)

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	prod.ID = 0
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

func (r *GormRepo) ReplaceProduct(ctx context.Context, prod *models.Product) error {
	res := r.DB.WithContext(ctx).
		Model(prod).
		Select("name", "description", "price").
		Updates(prod)
	return affected(res)
}

// DeleteProduct fails with a foreign key error while any order still lists the product.
func (r *GormRepo) DeleteProduct(ctx context.Context, id int) error {
	return affected(r.DB.WithContext(ctx).Delete(&models.Product{}, id))
}
