package pkglog

import "context"

type chainIDContextKey struct{}

type workspaceIDContextKey struct{}

// GetCorrelationID returns the correlation ID stored in the context.
//
// Middleware is expected to set this value early in the request lifecycle so
// it can be attached to logs and propagated to downstream calls.
func GetCorrelationID(ctx context.Context) string {
	clm, ok := ctx.Value(chainIDContextKey{}).(string)
	if !ok {
		return "[invalid_chain_id]"
	}
	return clm
}

// SetCorrelationID stores a correlation ID into the context.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, chainIDContextKey{}, cid)
}

// GetWorkspaceID returns the browser workspace bound to the request, or "".
func GetWorkspaceID(ctx context.Context) string {
	id, _ := ctx.Value(workspaceIDContextKey{}).(string)
	return id
}

// SetWorkspaceID stores the browser workspace ID into the context.
func SetWorkspaceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, workspaceIDContextKey{}, id)
}
