package main

import (
	"fmt"

	vetoana "github.com/mjd-veto/vetoana_go/pkg"
)

type WorkerData struct {
	Index  int
	RunSet vetoana.RunSet
}

type WorkerResult struct {
	Index  int
	Result *vetoana.SetResult
}

// worker analyses whole run-sets. Each set gets its own accumulators, so
// nothing is shared between workers.
func worker(id int, jobs <-chan WorkerData, results chan<- WorkerResult) {
	for job := range jobs {
		if VerbosityLevel > 0 {
			logger.Info(fmt.Sprintf("Worker %d processing set %s", id, job.RunSet.ExtName), "worker")
		}
		result := vetoana.AnalyzeSafely(job.RunSet, configuration, vetoana.AnalyzeFile)
		results <- WorkerResult{Index: job.Index, Result: result}
	}
}

func sendSetsToWorkers(runSets []vetoana.RunSet, jobs chan<- WorkerData) {
	for i, rs := range runSets {
		jobs <- WorkerData{Index: i, RunSet: rs}
	}
	close(jobs)
}

// analyzeParallel returns the results in configuration order once every set
// has finished.
func analyzeParallel(runSets []vetoana.RunSet, numWorkers int) []*vetoana.SetResult {
	jobs := make(chan WorkerData, len(runSets))
	results := make(chan WorkerResult, len(runSets))

	for w := 1; w <= numWorkers; w++ {
		go worker(w, jobs, results)
	}
	go sendSetsToWorkers(runSets, jobs)

	ordered := make([]*vetoana.SetResult, len(runSets))
	for range runSets {
		r := <-results
		ordered[r.Index] = r.Result
	}
	return ordered
}
