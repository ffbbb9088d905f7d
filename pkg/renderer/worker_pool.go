package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/df07/go-tiny-raytracer/pkg/integrator"
	"github.com/df07/go-tiny-raytracer/pkg/scene"
)

// RowTask represents one image row for the worker pool
type RowTask struct {
	Row int
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Row      int
	RaysCast int
	Skipped  bool // The render was cancelled before the row started
}

// WorkerPool renders image rows in parallel into a shared framebuffer.
// Every row is handed to exactly one worker, so each pixel is written once
// and no locking is needed until Stop joins the workers.
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID          int
	camera      *Camera
	caster      *integrator.Whitted
	framebuffer *Framebuffer
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(s *scene.Scene, fb *Framebuffer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, fb.Height),   // Buffer for every row
		resultQueue: make(chan RowResult, fb.Height), // Buffer for every result
		numWorkers:  numWorkers,
	}

	camera := NewCamera(s.Camera)
	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			camera:      camera,
			caster:      integrator.NewWhitted(s),
			framebuffer: fb,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop waits for queued rows to drain and shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// Results returns the result channel; it is closed by Stop
func (wp *WorkerPool) Results() <-chan RowResult {
	return wp.resultQueue
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if ctx.Err() != nil {
			w.resultQueue <- RowResult{Row: task.Row, Skipped: true}
			continue
		}

		before := w.caster.RaysCast()
		w.renderRow(task.Row)
		w.resultQueue <- RowResult{
			Row:      task.Row,
			RaysCast: w.caster.RaysCast() - before,
		}
	}
}

// renderRow casts one primary ray per pixel of row j
func (w *Worker) renderRow(j int) {
	for i := 0; i < w.framebuffer.Width; i++ {
		ray := w.camera.GetRay(i, j)
		w.framebuffer.Set(i, j, w.caster.CastRay(ray, 0))
	}
}
