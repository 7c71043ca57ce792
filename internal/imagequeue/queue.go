// Package imagequeue runs image generation jobs one at a time.
//
// Image backends enforce tight per-minute quotas, so jobs never overlap:
// the queue is an explicit loop that runs a job, records its result, waits
// a fixed spacing and moves on. A failing job is retried a bounded number of
// times; retryable failures (rate limits) wait base*attempt before the next
// try. A job that still fails is reported in its Result and the loop
// continues. Only context cancellation stops the loop early.
package imagequeue

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Defaults.
const (
	DefaultSpacing     = time.Second
	DefaultAttempts    = 2
	DefaultBackoffBase = 2 * time.Second
)

// ErrNoGenerator indicates the queue was built without a job function.
var ErrNoGenerator = errors.New("imagequeue: nil job function")

// JobFunc produces the value for key, typically an image URL or data URI.
// attempt starts at 1.
type JobFunc func(ctx context.Context, key string, attempt int) (string, error)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Result is the outcome of one distinct key.
type Result struct {
	Key      string
	Value    string // empty when Err is set
	Err      error  // last error after all attempts
	Attempts int
}

// EventKind classifies progress events.
type EventKind int

// Event kinds, in the order a job emits them.
const (
	JobStarted EventKind = iota
	JobRetrying
	JobSucceeded
	JobFailed
)

// String returns a lowercase label for the kind.
func (k EventKind) String() string {
	switch k {
	case JobStarted:
		return "started"
	case JobRetrying:
		return "retrying"
	case JobSucceeded:
		return "succeeded"
	case JobFailed:
		return "failed"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event reports progress. Index is 1-based among distinct keys.
type Event struct {
	Kind    EventKind
	Key     string
	Index   int
	Total   int
	Attempt int
	Delay   time.Duration // wait before the next attempt, for JobRetrying
	Err     error
}

// Queue is a sequential job runner. It is safe to call Run from one
// goroutine at a time; a Queue holds no state between runs.
type Queue struct {
	job       JobFunc
	spacing   time.Duration
	attempts  int
	backoff   func(attempt int) time.Duration
	retryable func(error) bool
	sleep     SleepFunc
	onEvent   func(Event)
}

// Option configures a Queue.
type Option func(*Queue)

// WithSpacing sets the pause between consecutive jobs.
// It is not applied after the last job.
func WithSpacing(d time.Duration) Option {
	return func(q *Queue) {
		if d >= 0 {
			q.spacing = d
		}
	}
}

// WithAttempts sets the number of tries per key. Values below 1 are ignored.
func WithAttempts(n int) Option {
	return func(q *Queue) {
		if n >= 1 {
			q.attempts = n
		}
	}
}

// WithBackoff sets the wait before retry number attempt+1 after a retryable
// failure of attempt.
func WithBackoff(fn func(attempt int) time.Duration) Option {
	return func(q *Queue) {
		if fn != nil {
			q.backoff = fn
		}
	}
}

// WithRetryable sets the classifier deciding whether a failure waits for
// backoff before the next attempt. Non-retryable failures are retried
// immediately.
func WithRetryable(fn func(error) bool) Option {
	return func(q *Queue) {
		if fn != nil {
			q.retryable = fn
		}
	}
}

// WithSleep replaces the timer used for spacing and backoff.
func WithSleep(fn SleepFunc) Option {
	return func(q *Queue) {
		if fn != nil {
			q.sleep = fn
		}
	}
}

// WithEvents registers a progress callback. It runs on the queue goroutine.
func WithEvents(fn func(Event)) Option {
	return func(q *Queue) {
		q.onEvent = fn
	}
}

// LinearBackoff returns base*attempt.
func LinearBackoff(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return base * time.Duration(attempt)
	}
}

// New creates a Queue running job.
func New(job JobFunc, opts ...Option) (*Queue, error) {
	if job == nil {
		return nil, ErrNoGenerator
	}
	q := &Queue{
		job:       job,
		spacing:   DefaultSpacing,
		attempts:  DefaultAttempts,
		backoff:   LinearBackoff(DefaultBackoffBase),
		retryable: func(error) bool { return false },
		sleep:     Sleep,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q, nil
}

// Run processes keys in order, each distinct key once. Results follow the
// order of first appearance. On cancellation Run returns the results
// completed so far together with ctx.Err().
func (q *Queue) Run(ctx context.Context, keys []string) ([]Result, error) {
	distinct := dedupe(keys)
	results := make([]Result, 0, len(distinct))

	for i, key := range distinct {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := q.runJob(ctx, key, i+1, len(distinct))
		if err != nil {
			return results, err
		}
		results = append(results, res)

		if i < len(distinct)-1 && q.spacing > 0 {
			if err := q.sleep(ctx, q.spacing); err != nil {
				return results, err
			}
		}
	}

	return results, nil
}

// runJob tries key up to q.attempts times. The returned error is only set
// when ctx ends; job failures are recorded in the Result.
func (q *Queue) runJob(ctx context.Context, key string, index, total int) (Result, error) {
	q.emit(Event{Kind: JobStarted, Key: key, Index: index, Total: total, Attempt: 1})

	res := Result{Key: key}
	for attempt := 1; attempt <= q.attempts; attempt++ {
		res.Attempts = attempt

		value, err := q.job(ctx, key, attempt)
		if err == nil {
			res.Value, res.Err = value, nil
			q.emit(Event{Kind: JobSucceeded, Key: key, Index: index, Total: total, Attempt: attempt})
			return res, nil
		}
		res.Err = err

		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		if attempt == q.attempts {
			break
		}

		var delay time.Duration
		if q.retryable(err) {
			delay = q.backoff(attempt)
		}
		q.emit(Event{Kind: JobRetrying, Key: key, Index: index, Total: total, Attempt: attempt, Delay: delay, Err: err})
		if delay > 0 {
			if err := q.sleep(ctx, delay); err != nil {
				return res, err
			}
		}
	}

	q.emit(Event{Kind: JobFailed, Key: key, Index: index, Total: total, Attempt: res.Attempts, Err: res.Err})
	return res, nil
}

func (q *Queue) emit(e Event) {
	if q.onEvent != nil {
		q.onEvent(e)
	}
}

// Sleep waits for d or until ctx is done, returning ctx.Err() in that case.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// dedupe keeps the first occurrence of every key.
func dedupe(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// Values collects successful results into a key → value map.
func Values(results []Result) map[string]string {
	out := make(map[string]string, len(results))
	for _, r := range results {
		if r.Err == nil {
			out[r.Key] = r.Value
		}
	}
	return out
}
