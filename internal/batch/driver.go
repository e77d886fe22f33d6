// Package batch runs recolour jobs over a set of files on a bounded worker
// pool and aggregates their outcomes.
package batch

import (
	"runtime"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/silcolour/internal/recolour"
)

// Runner processes a single file.
type Runner interface {
	Run(path string) (recolour.Result, error)
}

// Outcome is the result of one file.
type Outcome struct {
	Path   string
	Result recolour.Result
	Err    error
}

// Progress observes a batch. Calls are never concurrent.
type Progress interface {
	// Start is called once before any job completes.
	Start(total int)
	// Advance is called once per completed job with the running total.
	Advance(done int, o Outcome)
	// Finish is called once after the last job completes.
	Finish()
}

// Driver dispatches one job per file to a fixed-size worker pool.
type Driver struct {
	runner   Runner
	workers  int
	progress Progress
	logger   hclog.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithWorkers sets the pool size. Values below 1 select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(d *Driver) {
		d.workers = n
	}
}

// WithProgress attaches a progress observer.
func WithProgress(p Progress) Option {
	return func(d *Driver) {
		d.progress = p
	}
}

// WithLogger sets the logger used for failed jobs.
func WithLogger(l hclog.Logger) Option {
	return func(d *Driver) {
		d.logger = l
	}
}

// NewDriver creates a Driver running jobs with r.
func NewDriver(r Runner, opts ...Option) *Driver {
	d := &Driver{runner: r}
	for _, opt := range opts {
		opt(d)
	}
	if d.workers < 1 {
		d.workers = runtime.NumCPU()
	}
	if d.progress == nil {
		d.progress = nopProgress{}
	}
	if d.logger == nil {
		d.logger = hclog.NewNullLogger()
	}
	return d
}

// Workers returns the pool size.
func (d *Driver) Workers() int {
	return d.workers
}

type event struct {
	index   int
	outcome Outcome
}

// Run processes every file and returns once all of them have completed.
// Jobs share nothing but the runner; each reports its outcome as an event
// to a single aggregator, which owns the tallies and drives Progress.
func (d *Driver) Run(files []string) *Summary {
	events := make(chan event, d.workers)
	done := make(chan *Summary, 1)

	d.progress.Start(len(files))
	go func() {
		done <- d.aggregate(len(files), events)
	}()

	var g errgroup.Group
	g.SetLimit(d.workers)
	for i, path := range files {
		g.Go(func() error {
			res, err := d.runner.Run(path)
			if err != nil {
				res = recolour.ResultFailed
			}
			events <- event{index: i, outcome: Outcome{Path: path, Result: res, Err: err}}
			return nil
		})
	}
	_ = g.Wait()
	close(events)

	summary := <-done
	d.progress.Finish()
	return summary
}

func (d *Driver) aggregate(total int, events <-chan event) *Summary {
	s := newSummary(total)
	completed := 0
	for ev := range events {
		s.record(ev.index, ev.outcome)
		if ev.outcome.Err != nil {
			d.logger.Error("job failed", "file", ev.outcome.Path, "error", ev.outcome.Err)
		}
		completed++
		d.progress.Advance(completed, ev.outcome)
	}
	return s
}

type nopProgress struct{}

func (nopProgress) Start(int) {}

func (nopProgress) Advance(int, Outcome) {}

func (nopProgress) Finish() {}
