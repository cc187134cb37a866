package repo

import (
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

// affected turns an empty write into gorm.ErrRecordNotFound.
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
