package vetoana

import (
	"fmt"
)

// Classification is the outcome of classifying one event.
type Classification struct {
	Classes    [NumMultipClasses]bool
	AnyHit     bool
	ThreePanel bool
	FourPanel  bool
	// Set only for four-panel events.
	Slots    [4]Panel
	DetIndex int
}

// ClassCounts are the event class totals of a run-set.
type ClassCounts struct {
	ThreePanel int // A: 1 top + 1 bottom-x + 1 bottom-y
	All        int // B: any event
	Strong     int // C: CoinType 1
	Weak       int // D: CoinType 0
	AnyHit     int // E: at least one panel meets the cut
}

// Efficiencies of the three-panel selection against the wider classes.
func (c ClassCounts) Efficiencies() (overAll, overStrong, overWeak Ratio) {
	a := float64(c.ThreePanel)
	return NewRatio(a, float64(c.All)), NewRatio(a, float64(c.Strong)), NewRatio(a, float64(c.Weak))
}

type MultipEntry struct {
	RunNumber    int
	Multiplicity int
}

// panelResolver caches the configuration epoch of the run being read so an
// unknown run is reported once rather than once per channel.
type panelResolver struct {
	run   int
	set   bool
	epoch *Epoch
}

func (r *panelResolver) resolve(channel int, runNumber int) Panel {
	if !r.set || r.run != runNumber {
		r.run = runNumber
		r.set = true
		epoch, err := EpochFor(runNumber)
		if err != nil {
			logger.Error(err.Error())
		}
		r.epoch = epoch
	}
	if r.epoch == nil {
		return Unmapped
	}
	return r.epoch.Panel(channel)
}

// FourPanelSlots assigns the hit panels of a four-panel event to the
// detector-pair inputs. The first four hit channels in ascending channel
// order fill slots 0-3; with the veto cabling slots 0 and 1 are the bottom
// pair and slots 2 and 3 the top pair. Missing slots stay Unmapped.
func FourPanelSlots(hits []Panel) (slots [4]Panel) {
	for i := range slots {
		slots[i] = Unmapped
	}
	copy(slots[:], hits)
	return slots
}

// FourPanelIndex computes the detector-pair index of filled slots.
func FourPanelIndex(slots [4]Panel) int {
	return DetectorPairIndex(slots[2], slots[3], slots[0], slots[1])
}

// Classifier fills the per-set histograms and class counters.
type Classifier struct {
	Hists           *Histograms
	Counts          ClassCounts
	DetHits         [NumDetectorPairs + 1]int
	DegradedDetHits map[int]int
	FourPanelTotal  int
	HighMultipRuns  []int
	MultipTable     []MultipEntry

	verbosity           int
	multipTable         bool
	highMultipCut       bool
	highMultipThreshold int
	resolver            panelResolver
	highMultipSeen      map[int]bool
}

func NewClassifier(config Configuration) *Classifier {
	return &Classifier{
		Hists:               NewHistograms(),
		DegradedDetHits:     make(map[int]int),
		verbosity:           config.Verbosity,
		multipTable:         config.MultipTable,
		highMultipCut:       config.HighMultipCut,
		highMultipThreshold: config.HighMultipThreshold,
		highMultipSeen:      make(map[int]bool),
	}
}

// Classify works out which classes evt belongs to without touching any
// accumulator.
func (c *Classifier) Classify(evt *VetoEvent) Classification {
	var cl Classification
	flags := evt.CoinType
	mult := evt.Multiplicity

	cl.Classes[ClassWeak] = flags.Has(Weak) && mult >= 3
	cl.Classes[ClassStrong] = flags.Has(Strong)
	cl.Classes[ClassSideBottom] = flags.Has(SideBottom)
	cl.Classes[ClassTopSide] = flags.Has(TopSide)
	cl.Classes[ClassAnyStrong] = flags.AnyStrong()
	cl.AnyHit = evt.AnyHit()

	if cl.Classes[ClassWeak] {
		cl.ThreePanel = IsThreePanel(c.hitPanels(evt))
	}

	if flags.Has(Strong) && mult == 4 {
		cl.FourPanel = true
		cl.Classes[ClassFourPanel] = true
		cl.Slots = FourPanelSlots(c.hitPanels(evt))
		cl.DetIndex = FourPanelIndex(cl.Slots)
	}
	return cl
}

func (c *Classifier) hitPanels(evt *VetoEvent) []Panel {
	hits := make([]Panel, 0, 4)
	for _, ch := range evt.HitChannels() {
		hits = append(hits, c.resolver.resolve(ch, evt.RunNumber))
	}
	return hits
}

// Fill classifies evt and records it.
func (c *Classifier) Fill(evt *VetoEvent) Classification {
	cl := c.Classify(evt)
	h := c.Hists
	mult := float64(evt.Multiplicity)

	h.Run.Fill(float64(evt.RunNumber), 1)
	for class, in := range cl.Classes {
		if in {
			h.Multip[class].Fill(mult, 1)
		}
	}

	c.Counts.All++
	if cl.AnyHit {
		c.Counts.AnyHit++
	}
	if evt.CoinType.Has(Strong) {
		c.Counts.Strong++
	}
	if evt.CoinType.Has(Weak) {
		c.Counts.Weak++
		if c.highMultipCut && evt.Multiplicity >= c.highMultipThreshold {
			c.addHighMultipRun(evt.RunNumber)
		}
	}
	if cl.ThreePanel {
		c.Counts.ThreePanel++
	}
	if c.multipTable {
		c.MultipTable = append(c.MultipTable, MultipEntry{evt.RunNumber, evt.Multiplicity})
	}

	if cl.FourPanel {
		c.fillFourPanel(evt, cl)
	}
	return cl
}

func (c *Classifier) fillFourPanel(evt *VetoEvent, cl Classification) {
	h := c.Hists
	for ch := 0; ch < NumChannels; ch++ {
		qdc := float64(evt.QDC[ch])
		h.RawQDC[ch].Fill(qdc, 1)
		if evt.Hit(ch) {
			h.CutQDC[ch].Fill(qdc, 1)
		}
	}

	h.DetPair.Fill(float64(cl.DetIndex), 1)
	if ValidDetectorPair(cl.DetIndex) {
		c.DetHits[cl.DetIndex]++
	} else {
		c.DegradedDetHits[cl.DetIndex]++
		if c.verbosity > 1 {
			message := fmt.Sprintf("run %d entry %d: detector pair index %d from slots %v",
				evt.RunNumber, evt.Entry, cl.DetIndex, cl.Slots)
			logger.Info(message, "classifier")
		}
	}
	c.FourPanelTotal++

	h.Time.Fill(float64(evt.Start-RootEpochOffset), 1)
}

func (c *Classifier) addHighMultipRun(runNumber int) {
	if c.highMultipSeen[runNumber] {
		return
	}
	c.highMultipSeen[runNumber] = true
	c.HighMultipRuns = append(c.HighMultipRuns, runNumber)
	if c.verbosity > 0 {
		message := fmt.Sprintf("high multiplicity (>=%d) event in run %d", c.highMultipThreshold, runNumber)
		logger.Info(message, "classifier")
	}
}

// DegradedTotal is the number of four-panel events whose index fell outside
// 1..144 because of an Unmapped panel.
func (c *Classifier) DegradedTotal() int {
	n := 0
	for _, v := range c.DegradedDetHits {
		n += v
	}
	return n
}
