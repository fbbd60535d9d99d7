package scraper

import (
	"sync"

	"contactscraper/pkg/logger"
	"contactscraper/pkg/models"
)

// workerPool fans URL jobs out to a fixed number of workers. The pool size
// is independent of the job count; results are merged only after every
// worker has finished.
type workerPool struct {
	numWorkers int
	jobs       chan string
	results    chan models.Record
	wg         sync.WaitGroup
	process    func(url string) models.Record
	logger     logger.Logger
}

func newWorkerPool(numWorkers int, process func(url string) models.Record, log logger.Logger) *workerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &workerPool{
		numWorkers: numWorkers,
		jobs:       make(chan string, numWorkers*2),
		results:    make(chan models.Record, numWorkers),
		process:    process,
		logger:     log,
	}
}

func (wp *workerPool) start() {
	wp.logger.DebugWithFields("starting worker pool", map[string]interface{}{
		"num_workers": wp.numWorkers,
	})
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// run dispatches all URLs, waits for every worker to finish, and returns
// the merged records. There is no partial-result return.
func (wp *workerPool) run(urls []string) []models.Record {
	wp.start()

	go func() {
		for _, url := range urls {
			wp.jobs <- url
		}
		close(wp.jobs)
		wp.wg.Wait()
		close(wp.results)
	}()

	records := make([]models.Record, 0, len(urls))
	for record := range wp.results {
		records = append(records, record)
	}
	return records
}

func (wp *workerPool) worker(id int) {
	defer wp.wg.Done()

	for url := range wp.jobs {
		wp.logger.DebugWithFields("worker processing url", map[string]interface{}{
			"worker_id": id,
			"url":       url,
		})
		wp.results <- wp.process(url)
	}
}
