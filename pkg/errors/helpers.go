package errors

import (
	"context"
)

// CheckContext returns an error if the context is canceled or timed out,
// wrapping it with the operation name so long evolution runs report where
// they were interrupted.
func CheckContext(ctx context.Context, operation string) error {
	if err := ctx.Err(); err != nil {
		return Wrap(err, Canceled, operation+" canceled")
	}
	return nil
}
