package vetoana

import (
	"cmp"
	"fmt"
	"time"

	"golang.org/x/exp/slices"
)

const nRankedRuns = 10

// RunStats is the record of one run, created when its first event is seen.
type RunStats struct {
	RunNumber       int
	Duration        float64
	ZeroDuration    bool
	Start           int64
	NumEvents       int
	FourPanelEvents int
}

// DayBucket accumulates the runs starting on one calendar date.
type DayBucket struct {
	Day      int
	Month    int
	Year     int
	Count    int
	Duration float64
}

// SetData is the summary of one run-set.
type SetData struct {
	Name                      string
	FourPanelEvents           int
	TotalTime                 float64
	TotalRuns                 int
	TotalEvents               int
	MaxRunDuration            float64
	FirstRun                  int
	FinalRun                  int
	FirstStart                time.Time
	FinalStart                time.Time
	ZeroDurationRuns          []int
	ZeroDurationFourPanelRuns []int
	Runs                      []RunStats
	Days                      []DayBucket
	Longest                   []RunStats
	Shortest                  []RunStats
	Rate                      Rate
}

// NumDays is the number of distinct calendar dates with runs.
func (s *SetData) NumDays() int {
	return len(s.Days)
}

type aggregatorState int

const (
	noRunYet aggregatorState = iota
	inRun
	finalized
)

// Aggregator walks a run-ordered event stream and builds the SetData of one
// run-set.
type Aggregator struct {
	name      string
	location  *time.Location
	verbosity int

	state   aggregatorState
	current RunStats
	runs    []RunStats
	seen    map[int]bool
	zeroFP  map[int]bool
	data    SetData
}

func NewAggregator(name string, location *time.Location, verbosity int) *Aggregator {
	if location == nil {
		location = time.Local
	}
	a := &Aggregator{name: name, location: location, verbosity: verbosity}
	a.Reset()
	return a
}

// Reset discards everything observed so far.
func (a *Aggregator) Reset() {
	a.state = noRunYet
	a.current = RunStats{}
	a.runs = nil
	a.seen = make(map[int]bool)
	a.zeroFP = make(map[int]bool)
	a.data = SetData{Name: a.name}
}

// Observe records evt. fourPanel tells whether the classifier accepted it as
// a four-panel event.
func (a *Aggregator) Observe(evt *VetoEvent, fourPanel bool) {
	if a.state == finalized {
		panic("vetoana: Observe on a finalized aggregator")
	}
	if a.state == noRunYet || evt.RunNumber != a.current.RunNumber {
		a.startRun(evt)
	}

	a.current.NumEvents++
	a.data.TotalEvents++
	if fourPanel {
		a.current.FourPanelEvents++
		a.data.FourPanelEvents++
		a.data.Days[len(a.data.Days)-1].Count++
		if a.current.ZeroDuration && !a.zeroFP[evt.RunNumber] {
			a.zeroFP[evt.RunNumber] = true
			a.data.ZeroDurationFourPanelRuns = append(a.data.ZeroDurationFourPanelRuns, evt.RunNumber)
			if a.verbosity > 0 {
				message := fmt.Sprintf("four-panel event inside zero-duration run %d", evt.RunNumber)
				logger.Info(message, "aggregator")
			}
		}
	}
}

func (a *Aggregator) startRun(evt *VetoEvent) {
	if a.state == inRun {
		a.closeRun()
	}
	if a.seen[evt.RunNumber] {
		message := fmt.Sprintf("run %d events are not contiguous in set %s", evt.RunNumber, a.name)
		logger.Error(message)
	}
	a.seen[evt.RunNumber] = true

	a.current = RunStats{
		RunNumber:    evt.RunNumber,
		Duration:     evt.ScalerDuration,
		ZeroDuration: evt.ScalerDuration == 0,
		Start:        evt.Start,
	}
	if a.current.ZeroDuration {
		a.data.ZeroDurationRuns = append(a.data.ZeroDurationRuns, evt.RunNumber)
	}

	start := time.Unix(evt.Start, 0).In(a.location)
	if a.state == noRunYet {
		a.data.FirstRun = evt.RunNumber
		a.data.FirstStart = start
	}
	a.data.FinalRun = evt.RunNumber
	a.data.FinalStart = start
	a.data.TotalTime += evt.ScalerDuration
	a.data.TotalRuns++
	a.bookDay(start, evt.ScalerDuration)

	if a.verbosity > 1 {
		message := fmt.Sprintf("run %d: start %s, duration %s s", evt.RunNumber, start.Format(time.DateTime), formatFloat(evt.ScalerDuration))
		logger.Info(message, "aggregator")
	}
	a.state = inRun
}

func (a *Aggregator) closeRun() {
	a.runs = append(a.runs, a.current)
}

// bookDay opens a new day bucket whenever the calendar date of the run start
// differs from the previous run's.
func (a *Aggregator) bookDay(start time.Time, duration float64) {
	year, month, day := start.Date()
	if n := len(a.data.Days); n > 0 {
		last := &a.data.Days[n-1]
		if last.Year == year && last.Month == int(month) && last.Day == day {
			last.Duration += duration
			return
		}
	}
	a.data.Days = append(a.data.Days, DayBucket{
		Day:      day,
		Month:    int(month),
		Year:     year,
		Duration: duration,
	})
}

// Finalize closes the last run and derives the summary. The aggregator
// accepts no more events afterwards.
func (a *Aggregator) Finalize() SetData {
	if a.state == finalized {
		return a.data
	}
	if a.state == inRun {
		a.closeRun()
	}
	a.state = finalized

	a.data.Runs = a.runs
	a.data.Rate = NewPoissonRate(a.data.FourPanelEvents, a.data.TotalTime)

	byDuration := slices.Clone(a.runs)
	slices.SortStableFunc(byDuration, func(x, y RunStats) int {
		return cmp.Compare(x.Duration, y.Duration)
	})
	a.data.Shortest = firstN(byDuration, nRankedRuns)

	longest := slices.Clone(a.runs)
	slices.SortStableFunc(longest, func(x, y RunStats) int {
		return cmp.Compare(y.Duration, x.Duration)
	})
	a.data.Longest = firstN(longest, nRankedRuns)
	if len(longest) > 0 {
		a.data.MaxRunDuration = longest[0].Duration
	}
	return a.data
}

func firstN(runs []RunStats, n int) []RunStats {
	if len(runs) < n {
		n = len(runs)
	}
	return slices.Clone(runs[:n])
}
