package vetoana

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const separator = "========================================="

type painter struct {
	warn, good func(...any) string
}

func newPainter(useColors bool) painter {
	if !useColors {
		return painter{warn: fmt.Sprint, good: fmt.Sprint}
	}
	return painter{
		warn: color.New(color.FgRed).SprintFunc(),
		good: color.New(color.FgGreen).SprintFunc(),
	}
}

func (p painter) ratio(r Ratio) string {
	if !r.Defined {
		return p.warn(r.String())
	}
	return r.String()
}

func (p painter) rate(r Rate) string {
	if !r.Defined {
		return p.warn(r.String())
	}
	return p.good(r.String())
}

// WriteSetReport prints the human-readable summary of one run-set.
func WriteSetReport(w io.Writer, result *SetResult, config Configuration) error {
	p := newPainter(config.UseColors)
	s := &result.Summary
	c := result.Classifier

	effAll, effStrong, effWeak := c.Counts.Efficiencies()
	fmt.Fprintf(w, "Total 3-panel (1 top + 1 bot_x + 1 bot_y) events...(Class A): %d\n", c.Counts.ThreePanel)
	fmt.Fprintf(w, "Total events.......................................(Class B): %d\n", c.Counts.All)
	fmt.Fprintf(w, "Coin Type 1 (2 top + 2 bottom) events..............(Class C): %d\n", c.Counts.Strong)
	fmt.Fprintf(w, "Coin Type 0 (Multiplicity 2) events................(Class D): %d\n", c.Counts.Weak)
	fmt.Fprintf(w, "Events where at least one panel meets the cut......(Class E): %d\n", c.Counts.AnyHit)
	fmt.Fprintln(w, "------------------------------------------------------------------")
	fmt.Fprintf(w, "Efficiency_1 (N_A/N_B): %s\n", p.ratio(effAll))
	fmt.Fprintf(w, "Efficiency_2 (N_A/N_C): %s\n", p.ratio(effStrong))
	fmt.Fprintf(w, "Efficiency_3 (N_A/N_D): %s\n", p.ratio(effWeak))
	for _, class := range []MultipClass{ClassWeak, ClassStrong, ClassAnyStrong} {
		fmt.Fprintf(w, "4-track efficiency (%s): %s\n", class, p.ratio(c.Hists.FourTrackEfficiency(class)))
	}

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Data Set: %s\n", result.RunSet.ExtName)
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "total_run_time (sec) = %s\n", formatFloat(s.TotalTime))
	fmt.Fprintf(w, "total nruns = %d\n", s.TotalRuns)
	fmt.Fprintf(w, "total ndays = %d\n", s.NumDays())
	fmt.Fprintf(w, "fourPanelHitsTOT = %d\n", s.FourPanelEvents)
	fmt.Fprintf(w, "first run: %d\n", s.FirstRun)
	fmt.Fprintf(w, "final run: %d\n", s.FinalRun)
	if s.TotalRuns > 0 {
		fmt.Fprintf(w, "start date: %s\n", s.FirstStart.Format(time.ANSIC))
		fmt.Fprintf(w, "end date: %s\n", s.FinalStart.Format(time.ANSIC))
	}
	fmt.Fprintf(w, "total events: %d\n", s.TotalEvents)
	fmt.Fprintf(w, "total hours: %s\n", formatFloat(s.TotalTime/3600))
	fmt.Fprintf(w, "4-panel muons/second: %s\n", p.rate(s.Rate))
	fmt.Fprintf(w, "4-panel %%: %s\n", p.ratio(result.FourPanelFraction()))
	fmt.Fprintln(w, separator)

	if len(c.DegradedDetHits) > 0 {
		indices := maps.Keys(c.DegradedDetHits)
		slices.Sort(indices)
		for _, idx := range indices {
			fmt.Fprintf(w, "%s detector pair index %d: %d events\n", p.warn("unmapped"), idx, c.DegradedDetHits[idx])
		}
	}

	if config.ZeroRuns {
		fmt.Fprintf(w, "zero duration runs with four panel events: %d\n", len(s.ZeroDurationFourPanelRuns))
		fmt.Fprintf(w, "zero duration runs (of any time): %d\n", len(s.ZeroDurationRuns))
		if len(s.ZeroDurationRuns) > 0 {
			fmt.Fprintf(w, "zero duration run numbers: %v\n", s.ZeroDurationRuns)
		}
	}

	if config.RunTiming {
		fmt.Fprintln(w, ">>> Longest-Duration Runs <<<")
		if err := writeRunTable(w, s.Longest); err != nil {
			return err
		}
		fmt.Fprintln(w, ">>> Shortest-Duration Runs <<<")
		if err := writeRunTable(w, s.Shortest); err != nil {
			return err
		}
		fmt.Fprintf(w, "Maximum Run Duration in this Set: %s\n", formatFloat(s.MaxRunDuration))
	}
	return nil
}

func writeRunTable(w io.Writer, runs []RunStats) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Rank", "Run", "Duration (s)", "Zero", "Events", "4-panel"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(runs))
	for i, r := range runs {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.RunNumber),
			formatFloat(r.Duration),
			strconv.FormatBool(r.ZeroDuration),
			strconv.Itoa(r.NumEvents),
			strconv.Itoa(r.FourPanelEvents),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// WriteComparisonReport prints the four-panel rate of every set side by side.
func WriteComparisonReport(w io.Writer, results []*SetResult, config Configuration) error {
	p := newPainter(config.UseColors)
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Set", "Runs", "First", "Last", "Live time (s)", "4-panel", "Rate (1/s)", "Error"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			data = append(data, []string{r.RunSet.ExtName, p.warn("failed"), "", "", "", "", "", ""})
			continue
		}
		s := r.Summary
		rate, rateErr := p.warn("undefined"), p.warn("undefined")
		if s.Rate.Defined {
			rate, rateErr = formatFloat(s.Rate.Value), formatFloat(s.Rate.Err)
		}
		data = append(data, []string{
			r.RunSet.ExtName,
			strconv.Itoa(s.TotalRuns),
			strconv.Itoa(s.FirstRun),
			strconv.Itoa(s.FinalRun),
			formatFloat(s.TotalTime),
			strconv.Itoa(s.FourPanelEvents),
			rate,
			rateErr,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%s: %v\n", p.warn(r.RunSet.ExtName), r.Err)
		}
	}
	return nil
}
