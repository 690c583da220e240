package vetoana

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

const (
	HighMultipListName = "high-multip-list.txt"
	MultipTableName    = "multips-table.txt"
	ZeroRunsName       = "zero-runs.txt"
)

// WriteDetectorTable writes one "<index> <four-panel hits> <live time>" line
// per detector pair 1..144.
func WriteDetectorTable(w io.Writer, detHits *[NumDetectorPairs + 1]int, totalTime float64) error {
	bw := bufio.NewWriter(w)
	for j := 1; j <= NumDetectorPairs; j++ {
		fmt.Fprintf(bw, "%d %d %s\n", j, detHits[j], formatFloat(totalTime))
	}
	return bw.Flush()
}

// WriteDayTable writes one "<day> <month> <year> <count> <duration>" line per
// calendar day.
func WriteDayTable(w io.Writer, days []DayBucket) error {
	bw := bufio.NewWriter(w)
	for _, d := range days {
		fmt.Fprintf(bw, "%d %d %d %d %s\n", d.Day, d.Month, d.Year, d.Count, formatFloat(d.Duration))
	}
	return bw.Flush()
}

func writeIntList(w io.Writer, values []int) error {
	bw := bufio.NewWriter(w)
	for _, v := range values {
		bw.WriteString(strconv.Itoa(v))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func writeFile(path string, flag int, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &ErrWriteOutput{Path: path, Err: err}
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return &ErrWriteOutput{Path: path, Err: err}
	}
	if err := write(f); err != nil {
		f.Close()
		return &ErrWriteOutput{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &ErrWriteOutput{Path: path, Err: err}
	}
	return nil
}

func createFile(path string, write func(io.Writer) error) error {
	return writeFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, write)
}

// SetOutputPath builds <output>/<base>/<ext>-<suffix>.
func SetOutputPath(config Configuration, runSet RunSet, suffix string) string {
	return filepath.Join(config.OutputFolder, runSet.BaseName, runSet.ExtName+"-"+suffix)
}

// WriteSetTables writes the per-set text tables enabled in config.
func WriteSetTables(result *SetResult, config Configuration) error {
	detPath := SetOutputPath(config, result.RunSet, "vetoAna_det"+config.FileModifier+".txt")
	if config.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Saving %s", detPath), "output")
	}
	err := createFile(detPath, func(w io.Writer) error {
		return WriteDetectorTable(w, &result.Classifier.DetHits, result.Summary.TotalTime)
	})
	if err != nil {
		return err
	}

	dayPath := SetOutputPath(config, result.RunSet, "vetoAna_day"+config.FileModifier+".txt")
	if config.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Saving %s", dayPath), "output")
	}
	err = createFile(dayPath, func(w io.Writer) error {
		return WriteDayTable(w, result.Summary.Days)
	})
	if err != nil {
		return err
	}

	if config.HighMultipCut {
		path := SetOutputPath(config, result.RunSet, HighMultipListName)
		err = createFile(path, func(w io.Writer) error {
			return writeIntList(w, result.Classifier.HighMultipRuns)
		})
		if err != nil {
			return err
		}
	}

	if config.MultipTable {
		path := filepath.Join(config.OutputFolder, MultipTableName)
		err = writeFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, func(w io.Writer) error {
			bw := bufio.NewWriter(w)
			for _, e := range result.Classifier.MultipTable {
				fmt.Fprintf(bw, "%d %d\n", e.RunNumber, e.Multiplicity)
			}
			return bw.Flush()
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// ClearMultipTable truncates the batch-wide multiplicity table.
func ClearMultipTable(config Configuration) error {
	path := filepath.Join(config.OutputFolder, MultipTableName)
	return createFile(path, func(io.Writer) error { return nil })
}

// WriteZeroRuns lists the zero-duration runs of every successful set.
func WriteZeroRuns(results []*SetResult, config Configuration) error {
	path := filepath.Join(config.OutputFolder, ZeroRunsName)
	return createFile(path, func(w io.Writer) error {
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			if err := writeIntList(w, r.Summary.ZeroDurationRuns); err != nil {
				return err
			}
		}
		return nil
	})
}
