// Package db carries a GORM transaction through a context so that
// repositories can join it without knowing about each other.
package db

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TransactionManager starts transactions and hands them to callees via
// the context.
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction runs fn inside a transaction. Repository calls made
// with the context fn receives share it; fn returning an error rolls
// everything back.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// GetTxFromContext returns the transaction carried by ctx, or defaultDB
// bound to ctx when no transaction is running. Repositories call this at
// the top of every operation.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
