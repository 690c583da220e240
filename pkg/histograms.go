package vetoana

import (
	"fmt"

	"go-hep.org/x/hep/hbook"
)

// MultipClass indexes the multiplicity histograms.
type MultipClass int

const (
	ClassWeak      MultipClass = iota // Type0 with multiplicity >= 3
	ClassStrong                       // Type1
	ClassSideBottom                   // Type2
	ClassTopSide                      // Type3
	ClassAnyStrong                    // Type1, 2 or 3
	ClassFourPanel                    // Type1 with multiplicity == 4
	NumMultipClasses
)

func (c MultipClass) String() string {
	switch c {
	case ClassWeak:
		return "weak"
	case ClassStrong:
		return "strong"
	case ClassSideBottom:
		return "side+bottom"
	case ClassTopSide:
		return "top+side"
	case ClassAnyStrong:
		return "any-strong"
	case ClassFourPanel:
		return "four-panel"
	default:
		return fmt.Sprintf("class%d", int(c))
	}
}

const (
	nQDCBins = 100
	qdcMin   = 0.
	qdcMax   = 4200.

	nMultipBins = NumPanels + 1
	multipMin   = -0.5
	multipMax   = NumPanels + 0.5

	nRunBins = 1000
	runMin   = 0.
	runMax   = 30000.

	// limits are in seconds relative to 1/1/95, one day bins
	nTimeBins = 695
	timeMin   = 640000000.
	timeMax   = 750000000.

	// RootEpochOffset is the unix time of 1995-01-01, the origin of the
	// time-series histogram.
	RootEpochOffset int64 = 788918400
)

// Histograms is the accumulator set of one run-set. Every set gets its own.
type Histograms struct {
	RawQDC  [NumChannels]*hbook.H1D
	CutQDC  [NumChannels]*hbook.H1D
	Multip  [NumMultipClasses]*hbook.H1D
	Run     *hbook.H1D
	DetPair *hbook.H1D
	Time    *hbook.H1D
}

func NewHistograms() *Histograms {
	h := &Histograms{}
	for ch := 0; ch < NumChannels; ch++ {
		h.RawQDC[ch] = hbook.NewH1D(nQDCBins, qdcMin, qdcMax)
		h.RawQDC[ch].Annotation()["name"] = fmt.Sprintf("hrqdc%d", ch)
		h.CutQDC[ch] = hbook.NewH1D(nQDCBins, qdcMin, qdcMax)
		h.CutQDC[ch].Annotation()["name"] = fmt.Sprintf("hcqdc%d", ch)
	}
	for c := MultipClass(0); c < NumMultipClasses; c++ {
		h.Multip[c] = hbook.NewH1D(nMultipBins, multipMin, multipMax)
		h.Multip[c].Annotation()["name"] = fmt.Sprintf("hMultip%d", int(c))
	}
	h.Run = hbook.NewH1D(nRunBins, runMin, runMax)
	h.Run.Annotation()["name"] = "hrun"
	h.DetPair = hbook.NewH1D(NumDetectorPairs+1, 0, NumDetectorPairs)
	h.DetPair.Annotation()["name"] = "hiDet"
	h.Time = hbook.NewH1D(nTimeBins, timeMin, timeMax)
	h.Time.Annotation()["name"] = "ht1"
	return h
}

// MultipCount returns the number of entries of class c with exactly
// multiplicity m.
func (h *Histograms) MultipCount(c MultipClass, m int) float64 {
	bins := h.Multip[c].Binning.Bins
	if m < 0 || m >= len(bins) {
		return 0
	}
	return bins[m].SumW()
}

// FourTrackEfficiency is the fraction of class c events in multiplicity
// 3..14 that have multiplicity 4.
func (h *Histograms) FourTrackEfficiency(c MultipClass) Ratio {
	var den float64
	for m := 3; m <= 14; m++ {
		den += h.MultipCount(c, m)
	}
	return NewRatio(h.MultipCount(c, 4), den)
}

// AddCutQDC sums the threshold-passing QDC spectra of other into dst,
// channel by channel, outflows and entry counts included.
func AddCutQDC(dst *[NumChannels]*hbook.H1D, other *Histograms) {
	for ch := 0; ch < NumChannels; ch++ {
		src := other.CutQDC[ch]
		if dst[ch] == nil {
			dst[ch] = hbook.NewH1D(nQDCBins, qdcMin, qdcMax)
		}
		dst[ch] = hbook.AddH1D(dst[ch], src)
		dst[ch].Annotation()["name"] = fmt.Sprintf("hcqdc%d", ch)
	}
}
