package vetoana

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const run32 = 5000 // 32-panel configuration, channel = panel - 1

func TestClassifyFourPanel(t *testing.T) {
	c := NewClassifier(Configuration{})
	// panels 1, 7, 18, 19
	evt := newEvent(run32, 1436500000, 100, 4, []CoincidenceType{Weak, Strong}, 0, 6, 17, 18)

	cl := c.Fill(&evt)
	assert.True(t, cl.FourPanel)
	assert.Equal(t, [4]Panel{1, 7, 18, 19}, cl.Slots)
	assert.Equal(t, 73, cl.DetIndex)
	assert.True(t, cl.Classes[ClassWeak])
	assert.True(t, cl.Classes[ClassStrong])
	assert.True(t, cl.Classes[ClassAnyStrong])
	assert.True(t, cl.Classes[ClassFourPanel])
	assert.False(t, cl.Classes[ClassSideBottom])
	assert.False(t, cl.ThreePanel)

	assert.Equal(t, 1, c.DetHits[73])
	assert.Equal(t, 1, c.FourPanelTotal)
	assert.Empty(t, c.DegradedDetHits)
	assert.Equal(t, 1.0, c.Hists.DetPair.SumW())
	assert.Equal(t, 1.0, c.Hists.Time.SumW())
	assert.Equal(t, 1.0, c.Hists.RawQDC[5].SumW())
	assert.Equal(t, 0.0, c.Hists.CutQDC[5].SumW())
	assert.Equal(t, 1.0, c.Hists.CutQDC[17].SumW())
	assert.Equal(t, 1.0, c.Hists.MultipCount(ClassFourPanel, 4))
}

func TestClassifyFourPanelRequiresMultiplicityFour(t *testing.T) {
	c := NewClassifier(Configuration{})
	evt := newEvent(run32, 1436500000, 100, 5, []CoincidenceType{Strong}, 0, 6, 17, 18, 20)
	cl := c.Fill(&evt)
	assert.False(t, cl.FourPanel)
	assert.True(t, cl.Classes[ClassStrong])
	assert.Equal(t, 0, c.FourPanelTotal)
	assert.Equal(t, 0.0, c.Hists.DetPair.SumW())

	evt = newEvent(run32, 1436500000, 100, 4, []CoincidenceType{Weak}, 0, 6, 17, 18)
	cl = c.Fill(&evt)
	assert.False(t, cl.FourPanel)
	assert.Equal(t, 0, c.FourPanelTotal)
}

func TestClassifyThreePanel(t *testing.T) {
	c := NewClassifier(Configuration{})
	// panels 1, 7, 18
	evt := newEvent(run32, 1436500000, 100, 3, []CoincidenceType{Weak}, 0, 6, 17)
	cl := c.Fill(&evt)
	assert.True(t, cl.ThreePanel)
	assert.True(t, cl.Classes[ClassWeak])

	// multiplicity 2 is below the class-0 cut
	evt = newEvent(run32, 1436500000, 100, 2, []CoincidenceType{Weak}, 0, 17)
	cl = c.Fill(&evt)
	assert.False(t, cl.ThreePanel)
	assert.False(t, cl.Classes[ClassWeak])

	assert.Equal(t, ClassCounts{ThreePanel: 1, All: 2, Weak: 2, AnyHit: 2}, c.Counts)
	assert.Equal(t, 1.0, c.Hists.MultipCount(ClassWeak, 3))
	assert.Equal(t, 0.0, c.Hists.MultipCount(ClassWeak, 2))
}

func TestClassCountsEfficiencies(t *testing.T) {
	counts := ClassCounts{ThreePanel: 2, All: 8, Strong: 4, Weak: 0}
	all, strong, weak := counts.Efficiencies()
	assert.Equal(t, 0.25, all.Value)
	assert.Equal(t, 0.5, strong.Value)
	assert.False(t, weak.Defined)
	assert.True(t, math.IsNaN(weak.Value))
}

func TestClassifyDegradedIndex(t *testing.T) {
	c := NewClassifier(Configuration{})
	// multiplicity four but only panels 1 and 2 over threshold
	evt := newEvent(run32, 1436500000, 100, 4, []CoincidenceType{Strong}, 0, 1)
	cl := c.Fill(&evt)
	require.True(t, cl.FourPanel)
	assert.Equal(t, [4]Panel{1, 2, Unmapped, Unmapped}, cl.Slots)
	assert.Equal(t, -29, cl.DetIndex)
	assert.Equal(t, map[int]int{-29: 1}, c.DegradedDetHits)
	assert.Equal(t, 1, c.DegradedTotal())
	assert.Equal(t, 1, c.FourPanelTotal)
	for j := 1; j <= NumDetectorPairs; j++ {
		assert.Zero(t, c.DetHits[j])
	}
}

func TestClassifyUnknownRun(t *testing.T) {
	c := NewClassifier(Configuration{})
	evt := newEvent(45000100, 1436500000, 100, 4, []CoincidenceType{Strong}, 0, 1, 2, 3)
	cl := c.Fill(&evt)
	require.True(t, cl.FourPanel)
	assert.Equal(t, [4]Panel{Unmapped, Unmapped, Unmapped, Unmapped}, cl.Slots)
	assert.False(t, ValidDetectorPair(cl.DetIndex))
	assert.Equal(t, 1, c.DegradedTotal())
}

func TestClassifyExtraHits(t *testing.T) {
	// the first four hit channels fill the slots
	slots := FourPanelSlots([]Panel{1, 7, 18, 19, 22})
	assert.Equal(t, [4]Panel{1, 7, 18, 19}, slots)
	assert.Equal(t, 73, FourPanelIndex(slots))
}

func TestHighMultipRuns(t *testing.T) {
	c := NewClassifier(Configuration{HighMultipCut: true, HighMultipThreshold: 16})
	for _, e := range []struct{ run, mult int }{{5, 16}, {5, 18}, {6, 20}, {7, 15}} {
		evt := newEvent(e.run, 0, 1, e.mult, []CoincidenceType{Weak})
		c.Fill(&evt)
	}
	assert.Equal(t, []int{5, 6}, c.HighMultipRuns)

	off := NewClassifier(Configuration{HighMultipThreshold: 16})
	evt := newEvent(5, 0, 1, 20, []CoincidenceType{Weak})
	off.Fill(&evt)
	assert.Empty(t, off.HighMultipRuns)
}

func TestMultipTable(t *testing.T) {
	c := NewClassifier(Configuration{MultipTable: true})
	for _, mult := range []int{2, 4, 0} {
		evt := newEvent(run32, 0, 1, mult, nil)
		c.Fill(&evt)
	}
	assert.Equal(t, []MultipEntry{{run32, 2}, {run32, 4}, {run32, 0}}, c.MultipTable)

	off := NewClassifier(Configuration{})
	evt := newEvent(run32, 0, 1, 3, nil)
	off.Fill(&evt)
	assert.Empty(t, off.MultipTable)
}

func TestFourTrackEfficiency(t *testing.T) {
	h := NewHistograms()
	assert.False(t, h.FourTrackEfficiency(ClassWeak).Defined)

	for _, m := range []float64{3, 4, 4, 5, 15} {
		h.Multip[ClassWeak].Fill(m, 1)
	}
	eff := h.FourTrackEfficiency(ClassWeak)
	require.True(t, eff.Defined)
	assert.Equal(t, 0.5, eff.Value)
}

func TestClassifyStrongTypes(t *testing.T) {
	tests := []struct {
		name  string
		flags []CoincidenceType
		mult  int
		want  map[MultipClass]bool
	}{
		{"side+bottom only", []CoincidenceType{SideBottom}, 5,
			map[MultipClass]bool{ClassSideBottom: true, ClassAnyStrong: true}},
		{"top+side only", []CoincidenceType{TopSide}, 6,
			map[MultipClass]bool{ClassTopSide: true, ClassAnyStrong: true}},
		{"side+bottom and top+side", []CoincidenceType{SideBottom, TopSide}, 7,
			map[MultipClass]bool{ClassSideBottom: true, ClassTopSide: true, ClassAnyStrong: true}},
		{"weak below multiplicity three", []CoincidenceType{Weak}, 2,
			map[MultipClass]bool{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(Configuration{})
			evt := newEvent(run32, 1436500000, 100, tt.mult, tt.flags, 0, 6)
			cl := c.Fill(&evt)

			for class := MultipClass(0); class < NumMultipClasses; class++ {
				assert.Equal(t, tt.want[class], cl.Classes[class], class.String())
				want := 0.0
				if tt.want[class] {
					want = 1
				}
				assert.Equal(t, want, c.Hists.MultipCount(class, tt.mult), class.String())
			}
			assert.False(t, cl.FourPanel)
			assert.Zero(t, c.Counts.Strong)
		})
	}
}

func TestClassifierVerbosityFromConfig(t *testing.T) {
	l := withLogger(t)
	require.Zero(t, GetConfiguration().Verbosity)

	events := SliceSource{newEvent(run32, 1436500000, 100, 4, []CoincidenceType{Strong}, 0, 1)}
	_, err := Analyze(RunSet{ExtName: "P3TESTNz"}, events, Configuration{Verbosity: 2, Timezone: "UTC"})
	require.NoError(t, err)

	joined := strings.Join(l.infos, "\n")
	assert.Contains(t, joined, "detector pair index -29")
	assert.Contains(t, joined, "run 5000: start")

	l.infos = nil
	_, err = Analyze(RunSet{ExtName: "P3TESTNz"}, events, Configuration{Timezone: "UTC"})
	require.NoError(t, err)
	assert.Empty(t, l.infos)
}
