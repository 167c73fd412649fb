package logging

import "context"

type contextKey string

const (
	repoDirKey   contextKey = "repo_dir"
	operationKey contextKey = "operation"
)

// WithRepoDir adds the repository directory to the context.
func WithRepoDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, repoDirKey, dir)
}

// WithOperation adds the name of the repository operation to the context.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey, op)
}

// GetRepoDir retrieves the repository directory from the context.
// Returns empty string if not present.
func GetRepoDir(ctx context.Context) string {
	if dir, ok := ctx.Value(repoDirKey).(string); ok {
		return dir
	}
	return ""
}

// GetOperation retrieves the operation name from the context.
// Returns empty string if not present.
func GetOperation(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey).(string); ok {
		return op
	}
	return ""
}
