package infrastructure

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolStopped la tâche a été soumise après l'arrêt du pool
var ErrPoolStopped = errors.New("worker pool is stopped")

// Task représente une tâche à exécuter
type Task func(ctx context.Context) error

// WorkerPool gère un pool de workers pour traiter des tâches en parallèle.
// La première erreur annule le contexte partagé: les tâches restantes
// sont abandonnées et Wait retourne cette erreur.
type WorkerPool struct {
	workerCount int
	tasks       chan Task
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc

	errOnce  sync.Once
	firstErr error
}

// NewWorkerPool crée un nouveau pool de workers rattaché à ctx
func NewWorkerPool(ctx context.Context, workerCount int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool{
		workerCount: workerCount,
		tasks:       make(chan Task, workerCount*2),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// worker est la routine d'exécution des tâches
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.tasks {
		if wp.ctx.Err() != nil {
			// Pool annulé: on vide le canal sans exécuter
			continue
		}
		if err := task(wp.ctx); err != nil {
			wp.fail(err)
		}
	}
}

func (wp *WorkerPool) fail(err error) {
	wp.errOnce.Do(func() {
		wp.firstErr = err
		wp.cancel()
	})
}

// Start démarre les workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Submit soumet une tâche au pool; ne pas appeler après Wait
func (wp *WorkerPool) Submit(task Task) error {
	if wp.ctx.Err() != nil {
		return ErrPoolStopped
	}
	select {
	case <-wp.ctx.Done():
		return ErrPoolStopped
	case wp.tasks <- task:
		return nil
	}
}

// Wait ferme le canal de tâches, attend la fin des workers et retourne la première erreur
func (wp *WorkerPool) Wait() error {
	close(wp.tasks)
	wp.wg.Wait()
	wp.cancel()
	return wp.firstErr
}
