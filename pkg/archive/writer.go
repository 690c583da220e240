// Package archive stores the accumulated histograms and run tables of a
// run-set in an HDF5 file.
package archive

import (
	"errors"
	"fmt"

	vetoana "github.com/mjd-veto/vetoana_go/pkg"
	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/hdf5"
)

type Writer struct {
	File             *hdf5.File
	Filename         string
	CompressionLevel int
	HistGroup        *hdf5.Group
	RunGroup         *hdf5.Group
	RunTable         *hdf5.Dataset
	DayTable         *hdf5.Dataset
	SummaryTable     *hdf5.Dataset
	datasets         []*hdf5.Dataset
}

func NewWriter(filename string, compressionLevel int) (*Writer, error) {
	file, err := openFile(filename)
	if err != nil {
		return nil, &vetoana.ErrOpenFile{Filename: filename, Err: err}
	}
	w := &Writer{File: file, Filename: filename, CompressionLevel: compressionLevel}

	if w.HistGroup, err = createGroup(file, "Histograms"); err != nil {
		w.Close()
		return nil, err
	}
	if w.RunGroup, err = createGroup(file, "Runs"); err != nil {
		w.Close()
		return nil, err
	}
	if w.RunTable, err = createTable(w.RunGroup, "runs", RunHDF5{}, compressionLevel); err != nil {
		w.Close()
		return nil, err
	}
	if w.DayTable, err = createTable(w.RunGroup, "days", DayHDF5{}, compressionLevel); err != nil {
		w.Close()
		return nil, err
	}
	if w.SummaryTable, err = createTable(w.RunGroup, "summary", SummaryHDF5{}, compressionLevel); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// WriteSet stores one run-set result.
func (w *Writer) WriteSet(result *vetoana.SetResult) error {
	s := &result.Summary
	hists := result.Hists()

	runs := make([]RunHDF5, len(s.Runs))
	for i, r := range s.Runs {
		zero := int32(0)
		if r.ZeroDuration {
			zero = 1
		}
		runs[i] = RunHDF5{
			RunNumber:       int32(r.RunNumber),
			Duration:        r.Duration,
			ZeroDuration:    zero,
			Start:           r.Start,
			Events:          int32(r.NumEvents),
			FourPanelEvents: int32(r.FourPanelEvents),
		}
	}
	if err := writeArrayToTable(w.RunTable, &runs, 0); err != nil {
		return fmt.Errorf("error writing run table: %w", err)
	}

	days := make([]DayHDF5, len(s.Days))
	for i, d := range s.Days {
		days[i] = DayHDF5{
			Day:      int32(d.Day),
			Month:    int32(d.Month),
			Year:     int32(d.Year),
			Count:    int32(d.Count),
			Duration: d.Duration,
		}
	}
	if err := writeArrayToTable(w.DayTable, &days, 0); err != nil {
		return fmt.Errorf("error writing day table: %w", err)
	}

	summary := []SummaryHDF5{{
		FourPanelEvents: int32(s.FourPanelEvents),
		TotalTime:       s.TotalTime,
		Rate:            s.Rate.Value,
		RateErr:         s.Rate.Err,
		MaxRunDuration:  s.MaxRunDuration,
		TotalRuns:       int32(s.TotalRuns),
		TotalEvents:     int32(s.TotalEvents),
		FirstRun:        int32(s.FirstRun),
		FinalRun:        int32(s.FinalRun),
	}}
	if err := writeArrayToTable(w.SummaryTable, &summary, 0); err != nil {
		return fmt.Errorf("error writing summary table: %w", err)
	}

	if err := w.writeHistograms("qdc_raw", hists.RawQDC[:]); err != nil {
		return err
	}
	if err := w.writeHistograms("qdc_cut", hists.CutQDC[:]); err != nil {
		return err
	}
	if err := w.writeHistograms("multiplicity", hists.Multip[:]); err != nil {
		return err
	}
	if err := w.writeHistograms("det_pairs", []*hbook.H1D{hists.DetPair}); err != nil {
		return err
	}
	if err := w.writeHistograms("time", []*hbook.H1D{hists.Time}); err != nil {
		return err
	}
	return w.writeHistograms("run", []*hbook.H1D{hists.Run})
}

// writeHistograms stores the bin contents of hs as a [len(hs)][nbins] array.
// All histograms must share the binning of the first.
func (w *Writer) writeHistograms(name string, hs []*hbook.H1D) error {
	nBins := hs[0].Len()
	data := make([]float64, len(hs)*nBins)
	for i, h := range hs {
		if h.Len() != nBins {
			return fmt.Errorf("histogram %s[%d] has %d bins, want %d", name, i, h.Len(), nBins)
		}
		for j, bin := range h.Binning.Bins {
			data[i*nBins+j] = bin.SumW()
		}
	}

	dset, err := createArray(w.HistGroup, name, []uint{uint(len(hs)), uint(nBins)}, w.CompressionLevel)
	if err != nil {
		return err
	}
	w.datasets = append(w.datasets, dset)
	if err := dset.Write(&data); err != nil {
		return fmt.Errorf("error writing %s: %w", name, err)
	}
	return nil
}

func (w *Writer) Close() error {
	var errs []error

	for _, dset := range w.datasets {
		if err := dset.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing histogram dataset: %w", err))
		}
	}
	if w.RunTable != nil {
		if err := w.RunTable.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing run table: %w", err))
		}
	}
	if w.DayTable != nil {
		if err := w.DayTable.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing day table: %w", err))
		}
	}
	if w.SummaryTable != nil {
		if err := w.SummaryTable.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing summary table: %w", err))
		}
	}
	if w.HistGroup != nil {
		if err := w.HistGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing histogram group: %w", err))
		}
	}
	if w.RunGroup != nil {
		if err := w.RunGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing run group: %w", err))
		}
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// WriteSetArchive writes result to <path> in one go.
func WriteSetArchive(path string, result *vetoana.SetResult, compressionLevel int) error {
	w, err := NewWriter(path, compressionLevel)
	if err != nil {
		return err
	}
	if err := w.WriteSet(result); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
