package scheduler

import "context"

// ProgressFunc is called after each task in a batch completes, with the
// count finished so far and the batch total.
type ProgressFunc func(done, total int)

// BatchExecute submits every task in tasks at prio and blocks until all
// complete, reporting progress via onProgress (nil is allowed). Results
// are returned in the same order as tasks, regardless of completion
// order.
func (s *Scheduler) BatchExecute(prio QuantumPriority, tasks []Task, onProgress ProgressFunc) ([]Result, error) {
	jobs := make([]*Job, len(tasks))
	for i, t := range tasks {
		job, err := s.SubmitQuantum(prio, t)
		if err != nil {
			return nil, err
		}
		jobs[i] = job
	}

	results := make([]Result, len(tasks))
	for i, job := range jobs {
		r, err := job.Result(context.Background())
		if err != nil {
			return nil, err
		}
		results[i] = r
		if onProgress != nil {
			onProgress(i+1, len(tasks))
		}
	}
	return results, nil
}
