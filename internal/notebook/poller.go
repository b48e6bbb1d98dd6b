package notebook

import (
	"log/slog"
	"time"
)

// Default polling parameters: a hard ceiling of 90 attempts one second apart,
// so a provisioning run blocks at most ~90s before handing control back.
const (
	DefaultMaxAttempts = 90
	DefaultInterval    = time.Second
)

// QueryFunc returns the current status listing, one line per running server.
// Transient failures are expected while the server is still binding its
// listener; the poller swallows them and treats them as "no lines yet".
type QueryFunc func() ([]string, error)

// Poller repeatedly queries a status listing until a record for Port appears
// or MaxAttempts is exhausted.
type Poller struct {
	Query       QueryFunc
	Port        int
	MaxAttempts int           // defaults to DefaultMaxAttempts when <= 0
	Interval    time.Duration // defaults to DefaultInterval when <= 0
}

// Result describes a successful poll.
type Result struct {
	Record  ServiceRecord
	Attempt int           // 1-based attempt index that matched
	Elapsed time.Duration // total time spent polling
}

// Poll blocks until a matching record appears or all attempts are exhausted.
// Returns the result and true on a match, or a zero result and false on
// timeout. Total blocking time is bounded by MaxAttempts * Interval; there is
// no sleep after the final attempt, and a match on the first attempt returns
// without sleeping at all.
func (p *Poller) Poll() (Result, bool) {
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	start := time.Now()
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lines, err := p.Query()
		if err != nil {
			// Expected transient noise while the server starts up.
			slog.Debug("status query failed, retrying", "attempt", attempt, "error", err)
			lines = nil
		}

		if rec, ok := MatchFirst(lines, p.Port); ok {
			return Result{
				Record:  rec,
				Attempt: attempt,
				Elapsed: time.Since(start),
			}, true
		}

		if attempt < maxAttempts {
			time.Sleep(interval)
		}
	}

	return Result{}, false
}
