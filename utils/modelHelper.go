package utils

import (
	"context"
	"reflect"

	"bitbucket.org/restgest/restgest_backend/config"
)

/* DB fetching */

// fetch model from db by id
// (returns NotFoundError when the id does not resolve)
func FetchSingleModel[T any](ctx context.Context, id int, associations ...string) (*T, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	// preloading
	for _, field := range associations {
		dbCtx = dbCtx.Preload(field)
	}
	var result T
	if err := dbCtx.First(&result, id).Error; err != nil {
		return nil, &NotFoundError{Resource: reflect.TypeOf(result).Name()}
	}
	return &result, nil
}

// fetch all models from db, sorted by the given clause
func FetchAllModels[T any](ctx context.Context, order string, associations ...string) ([]*T, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	// preloading
	for _, field := range associations {
		dbCtx = dbCtx.Preload(field)
	}
	if order != "" {
		dbCtx = dbCtx.Order(order)
	}
	var results []*T
	if err := dbCtx.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
