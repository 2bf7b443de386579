package vanity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
)

// ThrottledError signals that the platform rejected a mutation and suggested
// a retry delay. It is the only retryable mutation failure.
type ThrottledError struct {
	RetryAfter time.Duration
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("rate limited by platform, retry after %s", e.RetryAfter)
}

// PermissionError signals a non-retryable permission failure (missing
// manage-roles grant or role hierarchy violation reported by the platform).
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	return e.Message
}

// wrapRESTError converts discordgo transport errors into the engine's error
// taxonomy. Anything unrecognized passes through as a transient error.
func wrapRESTError(err error) error {
	if err == nil {
		return nil
	}

	var rateErr *discordgo.RateLimitError
	if errors.As(err, &rateErr) {
		return &ThrottledError{RetryAfter: rateErr.RetryAfter}
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusForbidden:
			return &PermissionError{Message: "missing permissions: " + restErr.Error()}
		case http.StatusTooManyRequests:
			retryAfter := 5 * time.Second
			if v := restErr.Response.Header.Get("Retry-After"); v != "" {
				if secs, perr := strconv.ParseFloat(v, 64); perr == nil {
					retryAfter = time.Duration(secs * float64(time.Second))
				}
			}
			return &ThrottledError{RetryAfter: retryAfter}
		}
	}
	return err
}

// sleepCtx waits for d unless the context is canceled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
