package narrative

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limited caps how often the wrapped narrator is called. Calls over the
// budget fail immediately with ErrRateLimited instead of waiting.
type Limited struct {
	next Narrator
	lim  *rate.Limiter
}

// NewLimited allows perMinute calls per minute with a burst of the same
// size. A non-positive perMinute disables the cap.
func NewLimited(next Narrator, perMinute int) *Limited {
	lim := rate.NewLimiter(rate.Inf, 0)
	if perMinute > 0 {
		lim = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	}
	return &Limited{next: next, lim: lim}
}

func (l *Limited) Generate(ctx context.Context, s Summary) (string, error) {
	if !l.lim.Allow() {
		return "", ErrRateLimited
	}
	return l.next.Generate(ctx, s)
}
