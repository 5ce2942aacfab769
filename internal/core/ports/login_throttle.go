package ports

import "context"

// LoginThrottle tracks failed login attempts per email so repeated guessing
// can be slowed down.
type LoginThrottle interface {
	// TooManyFailures reports whether the email has exceeded the failure
	// budget inside the tracking window.
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
