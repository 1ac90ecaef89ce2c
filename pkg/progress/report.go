package progress

import "sort"

// Worker is the state published by one worker process.
type Worker struct {
	ID    int   `json:"id"`
	State State `json:"state"`
}

// Report is what pollers see: the coordinator state with the worker
// counters folded in, plus the per-worker details.
type Report struct {
	State
	Workers []Worker `json:"workers,omitempty"`
}

// Aggregate adds current, success and error counts of the workers to
// the main state. Totals are not added, the coordinator already knows
// the total of the whole stage.
func Aggregate(main State, workers map[int]State) Report {
	res := Report{State: main}
	ids := make([]int, 0, len(workers))
	for id := range workers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		w := workers[id]
		res.Progress.Current += w.Progress.Current
		res.SuccessCount += w.SuccessCount
		res.ErrorCount += w.ErrorCount
		res.Workers = append(res.Workers, Worker{ID: id, State: w})
	}
	return res
}

// Fold merges finished worker counters into the main state.
func Fold(main State, workers map[int]State) State {
	return Aggregate(main, workers).State
}
