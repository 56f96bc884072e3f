package repo

import (
	"context"

	"gorm.io/gorm"
)

// updateByID writes the listed columns of values into the row id of dest's
// table and then reloads that row into dest. It returns ErrNotFound when the
// row does not exist.
//
// RowsAffected alone cannot tell "missing" from "unchanged" on MySQL, so a
// zero count is confirmed with an existence check.
func updateByID(ctx context.Context, db *gorm.DB, dest any, id uint, values any, columns ...string) error {
	res := db.WithContext(ctx).
		Model(dest).
		Where("id = ?", id).
		Select(columns).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := db.WithContext(ctx).Model(dest).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
	}
	return db.WithContext(ctx).First(dest, id).Error
}

// deleteByID removes row id from model's table and reports how many rows went.
func deleteByID(ctx context.Context, db *gorm.DB, model any, id uint) (int64, error) {
	res := db.WithContext(ctx).Delete(model, id)
	return res.RowsAffected, res.Error
}
