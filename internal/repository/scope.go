package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cotizaplus/cotiza-api/internal/auth"
)

// ApplyUserFilter scopes a query to the authenticated user's rows.
// Every table carries a user_id column; a request can never see or
// touch another user's data.
func ApplyUserFilter(ctx context.Context, query *gorm.DB) *gorm.DB {
	if userCtx, ok := auth.FromContext(ctx); ok {
		return query.Where("user_id = ?", userCtx.UserID)
	}
	return query
}
