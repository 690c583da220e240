package vetoana

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/hbook"
)

const QDCAgglomName = "qdc-agglom.root"

// AgglomerateQDC sums the threshold-passing QDC spectra of every successful
// set.
func AgglomerateQDC(results []*SetResult) [NumChannels]*hbook.H1D {
	var agglom [NumChannels]*hbook.H1D
	for _, r := range results {
		if r.Err != nil || r.Hists() == nil {
			continue
		}
		AddCutQDC(&agglom, r.Hists())
	}
	return agglom
}

// WriteQDCAgglom stores the agglomerated spectra in a ROOT file, one hcqdcN
// histogram per channel.
func WriteQDCAgglom(path string, agglom [NumChannels]*hbook.H1D, config Configuration) error {
	f, err := groot.Create(path)
	if err != nil {
		return &ErrWriteOutput{Path: path, Err: err}
	}
	for ch, h := range agglom {
		if h == nil {
			continue
		}
		name := fmt.Sprintf("hcqdc%d", ch)
		if err := f.Put(name, rhist.NewH1DFrom(h)); err != nil {
			f.Close()
			return &ErrWriteOutput{Path: path, Err: fmt.Errorf("could not write %s: %w", name, err)}
		}
		if config.Verbosity > 1 {
			message := fmt.Sprintf("%s mean: %s", name, formatFloat(h.XMean()))
			logger.Info(message, "agglom")
		}
	}
	if err := f.Close(); err != nil {
		return &ErrWriteOutput{Path: path, Err: err}
	}
	return nil
}
