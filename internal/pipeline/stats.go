package pipeline

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	Total   int
	Current int
	Edited  int
	Remuxed int
	Skipped int
	Failed  int
}

// Ok reports whether the batch completed without per-file failures.
func (s *RunStats) Ok() bool { return s.Failed == 0 }
