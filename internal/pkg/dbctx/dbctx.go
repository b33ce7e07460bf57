// Package dbctx carries a request context together with an optional open
// transaction, so repository methods work the same inside and outside a
// composite write.
package dbctx

import (
	"context"

	"gorm.io/gorm"
)

type Context struct {
	Ctx context.Context
	// Tx, when non-nil, is the transaction every statement must run on.
	Tx *gorm.DB
}

// New wraps a plain request context with no transaction attached.
func New(ctx context.Context) Context {
	return Context{Ctx: ctx}
}
