package vetoana

import (
	"errors"
	"fmt"
	"time"
)

// SetResult is everything one run-set's pass produces.
type SetResult struct {
	RunSet     RunSet
	Summary    SetData
	Classifier *Classifier
	Elapsed    time.Duration
	Err        error
}

func (r *SetResult) Hists() *Histograms {
	if r.Classifier == nil {
		return nil
	}
	return r.Classifier.Hists
}

// FourPanelFraction is the share of all events that are four-panel events.
func (r *SetResult) FourPanelFraction() Ratio {
	return NewRatio(float64(r.Summary.FourPanelEvents), float64(r.Summary.TotalEvents))
}

// Location is the time zone used for calendar-day bookkeeping.
func (c Configuration) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	default:
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
		return loc, nil
	}
}

// Analyze makes the single pass over one run-set's events. Each call owns
// fresh accumulators.
func Analyze(runSet RunSet, source EventSource, config Configuration) (*SetResult, error) {
	start := time.Now()
	location, err := config.Location()
	if err != nil {
		return nil, err
	}

	classifier := NewClassifier(config)
	aggregator := NewAggregator(runSet.ExtName, location, config.Verbosity)

	err = source.ForEach(func(evt *VetoEvent) error {
		cl := classifier.Fill(evt)
		aggregator.Observe(evt, cl.FourPanel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error analysing set %s: %w", runSet.ExtName, err)
	}

	result := &SetResult{
		RunSet:     runSet,
		Summary:    aggregator.Finalize(),
		Classifier: classifier,
		Elapsed:    time.Since(start),
	}
	if n := classifier.DegradedTotal(); n > 0 {
		message := fmt.Sprintf("set %s: %d four-panel events with an unmapped panel", runSet.ExtName, n)
		logger.Error(message)
	}
	if !result.Summary.Rate.Defined {
		message := fmt.Sprintf("set %s: total live time is zero, four-panel rate undefined", runSet.ExtName)
		logger.Error(message)
	}
	if config.Verbosity > 0 {
		message := fmt.Sprintf("set %s: %d events, %d runs, %d four-panel events in %d ms",
			runSet.ExtName, result.Summary.TotalEvents, result.Summary.TotalRuns,
			result.Summary.FourPanelEvents, result.Elapsed.Milliseconds())
		logger.Info(message, "analysis")
	}
	return result, nil
}

// AnalyzeFile opens the set's ROOT file and analyses it.
func AnalyzeFile(runSet RunSet, config Configuration) (*SetResult, error) {
	if config.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Casting onto the data file %s located at %s", runSet.ExtName, runSet.Path), "analysis")
	}
	reader, err := OpenTree(runSet.Path, config.TreeName)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	if config.Verbosity > 0 {
		message := fmt.Sprintf("Opened %s: %d entries", runSet.Path, reader.Entries())
		logger.Info(message, "reader")
	}
	return Analyze(runSet, reader, config)
}

// AnalyzeAll runs every set in order. A failing set is recorded in its
// result and does not stop the others.
func AnalyzeAll(runSets []RunSet, config Configuration, open func(RunSet, Configuration) (*SetResult, error)) []*SetResult {
	results := make([]*SetResult, len(runSets))
	for i, runSet := range runSets {
		results[i] = AnalyzeSafely(runSet, config, open)
	}
	return results
}

// AnalyzeSafely runs one set, turning errors and panics into a failed result.
func AnalyzeSafely(runSet RunSet, config Configuration, open func(RunSet, Configuration) (*SetResult, error)) (result *SetResult) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("recovered from panic analysing set %s: %v", runSet.ExtName, r)
			logger.Error(err.Error())
			result = &SetResult{RunSet: runSet, Err: err}
		}
	}()

	res, err := open(runSet, config)
	if err != nil {
		logger.Error(err.Error())
		return &SetResult{RunSet: runSet, Err: err}
	}
	return res
}

// Failed returns the joined errors of the failed sets, or nil.
func Failed(results []*SetResult) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
