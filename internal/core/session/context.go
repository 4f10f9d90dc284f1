package session

import "context"

type ctxKey struct{}

// WithState returns a context carrying st, so outbound requests made on the
// client's behalf can find its token.
func WithState(ctx context.Context, st *State) context.Context {
	return context.WithValue(ctx, ctxKey{}, st)
}

// FromContext returns the State carried by ctx.
func FromContext(ctx context.Context) (*State, bool) {
	st, ok := ctx.Value(ctxKey{}).(*State)
	return st, ok && st != nil
}
