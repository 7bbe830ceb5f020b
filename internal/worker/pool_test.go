package worker

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type funcJob struct {
	id string
	fn func(ctx context.Context) error
}

func (j funcJob) ID() string                        { return j.id }
func (j funcJob) Execute(ctx context.Context) error { return j.fn(ctx) }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestDispatcherRunsJobs(t *testing.T) {
	d := NewDispatcher(3, 10, quietLogger())
	d.Run(context.Background())
	defer d.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	ran := map[string]bool{}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		wg.Add(1)
		id := id
		err := d.SubmitJob(funcJob{id: id, fn: func(context.Context) error {
			defer wg.Done()
			mu.Lock()
			ran[id] = true
			mu.Unlock()
			if id == "c" {
				return errors.New("boom")
			}
			return nil
		}})
		if err != nil {
			t.Fatalf("SubmitJob(%s): %v", id, err)
		}
	}

	waitOrFail(t, &wg)
	if len(ran) != 5 {
		t.Fatalf("expected 5 jobs to run, got %d", len(ran))
	}
}

func TestSubmitJobQueueFull(t *testing.T) {
	// Not started: nothing drains the queue.
	d := NewDispatcher(1, 1, quietLogger())
	noop := funcJob{id: "x", fn: func(context.Context) error { return nil }}

	if err := d.SubmitJob(noop); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := d.SubmitJob(noop); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestStopCancelsRunningJobs(t *testing.T) {
	d := NewDispatcher(1, 1, quietLogger())
	d.Run(context.Background())

	started := make(chan struct{})
	cancelled := make(chan struct{})
	err := d.SubmitJob(funcJob{id: "slow", fn: func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	}})
	if err != nil {
		t.Fatalf("SubmitJob: %v", err)
	}

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not start")
	}
	d.Stop()

	select {
	case <-cancelled:
	default:
		t.Fatal("expected job context to be cancelled by Stop")
	}
}

func waitOrFail(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for jobs")
	}
}
