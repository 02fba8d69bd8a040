package pipeline

import (
	"sort"
	"sync"

	"github.com/confluentinc/data-tools/pkg/datatools"
)

// dispatch executes tasks on exactly `workers` goroutines, each pulling the
// next unstarted task until the queue drains. Completion order is not
// guaranteed; results are sorted by relative path before being returned so
// summaries are stable regardless of interleaving.
func (p *Pipeline) dispatch(workers int, tasks []FileTask, cfg *datatools.TransformConfig) []datatools.TaskResult {
	if workers > len(tasks) {
		workers = len(tasks)
	}

	taskCh := make(chan FileTask)
	resultCh := make(chan datatools.TaskResult, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskCh {
				resultCh <- p.run(task, cfg)
			}
		}()
	}

	for _, task := range tasks {
		taskCh <- task
	}
	close(taskCh)

	wg.Wait()
	close(resultCh)

	results := make([]datatools.TaskResult, 0, len(tasks))
	for result := range resultCh {
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].RelativePath < results[j].RelativePath
	})

	return results
}
