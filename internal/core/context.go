package core

import "context"

// Requester identifies who made a change. It is stamped on audit entries.
type Requester struct {
	IP        string
	UserAgent string
}

type requesterKey struct{}

// WithRequester attaches the requester to ctx.
func WithRequester(ctx context.Context, r Requester) context.Context {
	return context.WithValue(ctx, requesterKey{}, r)
}

// RequesterFrom returns the requester on ctx. Changes made outside a request,
// such as scheduled reloads, have none and yield the zero value.
func RequesterFrom(ctx context.Context) Requester {
	r, _ := ctx.Value(requesterKey{}).(Requester)
	return r
}
