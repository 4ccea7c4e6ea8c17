package businessctx

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type ctxKey struct{}

// WithBusinessID stamps the active business onto the request context.
func WithBusinessID(ctx context.Context, id snowflake.ID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// BusinessIDFromContext returns the active business id, or false when the
// request was not scoped to a business.
func BusinessIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	id, ok := ctx.Value(ctxKey{}).(snowflake.ID)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}
