package push

import "sync"

// job — задача для воркера
type job struct {
	task func()
}

// workerPool — ограниченный пул горутин для параллельной отправки
type workerPool struct {
	workers   int
	jobQueue  chan job
	waitGroup sync.WaitGroup
}

func newWorkerPool(workers int) *workerPool {
	pool := &workerPool{
		workers:  workers,
		jobQueue: make(chan job, workers),
	}

	pool.waitGroup.Add(workers)
	for i := 0; i < workers; i++ {
		go pool.worker()
	}

	return pool
}

func (wp *workerPool) worker() {
	defer wp.waitGroup.Done()
	for j := range wp.jobQueue {
		j.task()
	}
}

func (wp *workerPool) submit(task func()) {
	wp.jobQueue <- job{task: task}
}

// shutdown дожидается завершения всех задач
func (wp *workerPool) shutdown() {
	close(wp.jobQueue)
	wp.waitGroup.Wait()
}
