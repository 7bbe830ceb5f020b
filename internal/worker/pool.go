package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrQueueFull is returned by SubmitJob when the job queue has no free slot.
var ErrQueueFull = errors.New("job queue is full")

// Job represents a unit of work to be executed.
type Job interface {
	Execute(ctx context.Context) error
	ID() string
}

// Worker pulls jobs from its own channel after registering it with the pool.
type Worker struct {
	ID         int
	WorkerPool chan chan Job
	JobChannel chan Job
	logger     logrus.FieldLogger
	wg         *sync.WaitGroup
}

func NewWorker(id int, workerPool chan chan Job, wg *sync.WaitGroup, logger logrus.FieldLogger) Worker {
	return Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan Job),
		logger:     logger.WithField("worker", id),
		wg:         wg,
	}
}

// Start makes the Worker listen for jobs until ctx is cancelled.
func (w Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case w.WorkerPool <- w.JobChannel:
			case <-ctx.Done():
				w.logger.Debug("Worker stopping")
				return
			}

			select {
			case job := <-w.JobChannel:
				w.run(ctx, job)
			case <-ctx.Done():
				w.logger.Debug("Worker stopping")
				return
			}
		}
	}()
}

func (w Worker) run(ctx context.Context, job Job) {
	log := w.logger.WithField("job_id", job.ID())
	log.Info("Started job")
	if err := job.Execute(ctx); err != nil {
		log.WithError(err).Error("Error processing job")
		return
	}
	log.Info("Finished job")
}

// Dispatcher manages a pool of workers and dispatches queued jobs to them.
type Dispatcher struct {
	MaxWorkers int
	WorkerPool chan chan Job
	JobQueue   chan Job
	Workers    []Worker

	logger logrus.FieldLogger
	wg     sync.WaitGroup
	cancel context.CancelFunc
	done   chan struct{}
}

// NewDispatcher creates a pool of maxWorkers workers fed by a queue of jobQueueSize.
func NewDispatcher(maxWorkers, jobQueueSize int, logger logrus.FieldLogger) *Dispatcher {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Dispatcher{
		MaxWorkers: maxWorkers,
		WorkerPool: make(chan chan Job, maxWorkers),
		JobQueue:   make(chan Job, jobQueueSize),
		Workers:    make([]Worker, 0, maxWorkers),
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Run starts the dispatcher and its workers. Jobs receive a context derived
// from ctx that is cancelled by Stop.
func (d *Dispatcher) Run(ctx context.Context) {
	ctx, d.cancel = context.WithCancel(ctx)

	d.logger.WithField("workers", d.MaxWorkers).Info("Dispatcher starting")
	for i := 1; i <= d.MaxWorkers; i++ {
		worker := NewWorker(i, d.WorkerPool, &d.wg, d.logger)
		d.Workers = append(d.Workers, worker)
		worker.Start(ctx)
	}

	go d.dispatch(ctx)
}

func (d *Dispatcher) dispatch(ctx context.Context) {
	defer close(d.done)
	for {
		select {
		case job := <-d.JobQueue:
			select {
			case jobChannel := <-d.WorkerPool:
				select {
				case jobChannel <- job:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				d.logger.WithField("job_id", job.ID()).Warn("Dispatcher stopped before job could run")
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// SubmitJob queues a job without blocking.
func (d *Dispatcher) SubmitJob(job Job) error {
	select {
	case d.JobQueue <- job:
		d.logger.WithField("job_id", job.ID()).Debug("Job submitted to queue")
		return nil
	default:
		d.logger.WithField("job_id", job.ID()).Warn("Job queue full, job rejected")
		return ErrQueueFull
	}
}

// Stop cancels running jobs and waits for all workers to exit.
func (d *Dispatcher) Stop() {
	if d.cancel == nil {
		return
	}
	d.logger.Info("Dispatcher: initiating shutdown")
	d.cancel()
	<-d.done
	d.wg.Wait()
	d.logger.Info("Dispatcher: shutdown complete")
}
