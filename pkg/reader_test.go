package vetoana

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"
)

// writeSkimFile writes events to a ROOT file laid out like the veto skim tree.
func writeSkimFile(t *testing.T, path string, events []VetoEvent) {
	t.Helper()
	f, err := groot.Create(path)
	require.NoError(t, err)
	defer f.Close()

	var b vetoBranches
	wvars := []rtree.WriteVar{
		{Name: branchRun, Value: &b.Run},
		{Name: branchQDC, Value: &b.QDC},
		{Name: branchThreshold, Value: &b.Threshold},
		{Name: branchCoinType, Value: &b.CoinType},
		{Name: branchMultip, Value: &b.Multip},
		{Name: branchStart, Value: &b.Start},
		{Name: branchScalerDuration, Value: &b.ScalerDuration},
	}
	w, err := rtree.NewWriter(f, "vetoTree", wvars)
	require.NoError(t, err)

	for _, evt := range events {
		b = vetoBranches{
			Run:            int32(evt.RunNumber),
			Multip:         int32(evt.Multiplicity),
			Start:          evt.Start,
			ScalerDuration: evt.ScalerDuration,
		}
		for ch := 0; ch < NumChannels; ch++ {
			b.QDC[ch] = int32(evt.QDC[ch])
			b.Threshold[ch] = int32(evt.Threshold[ch])
		}
		for i, set := range evt.CoinType {
			if set {
				b.CoinType[i] = 1
			}
		}
		_, err = w.Write()
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func TestTreeReaderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skimVeto_P3TEST.root")
	events := []VetoEvent{
		newEvent(5001, 1436500000, 10.5, 4, []CoincidenceType{Weak, Strong}, 0, 6, 17, 18),
		newEvent(5002, 1436500600, 0, 2, []CoincidenceType{Weak}, 3, 30),
	}
	writeSkimFile(t, path, events)

	r, err := OpenTree(path, "vetoTree")
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, int64(2), r.Entries())

	var got []VetoEvent
	err = r.ForEach(func(evt *VetoEvent) error {
		got = append(got, *evt)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range events {
		events[i].Entry = int64(i)
	}
	assert.Equal(t, events, got)
}

func TestTreeReaderStopsOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skimVeto_P3TEST.root")
	writeSkimFile(t, path, []VetoEvent{
		newEvent(5001, 1436500000, 1, 1, nil),
		newEvent(5001, 1436500000, 1, 1, nil),
	})

	r, err := OpenTree(path, "vetoTree")
	require.NoError(t, err)
	defer r.Close()

	n := 0
	err = r.ForEach(func(evt *VetoEvent) error {
		n++
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, n)
}

func TestOpenTreeMissingTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skimVeto_P3TEST.root")
	writeSkimFile(t, path, nil)
	_, err := OpenTree(path, "noSuchTree")
	assert.ErrorContains(t, err, "noSuchTree")
}

func TestAnalyzeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skimVeto_P3TEST.root")
	writeSkimFile(t, path, []VetoEvent{
		newEvent(5001, 1436500000, 20, 4, []CoincidenceType{Strong}, 0, 6, 17, 18),
		newEvent(5001, 1436500000, 20, 3, []CoincidenceType{Weak}, 0, 6, 17),
	})
	rs := RunSet{BaseName: "P3TEST", ExtName: "P3TESTNz", Path: path}
	result, err := AnalyzeFile(rs, Configuration{TreeName: "vetoTree", Timezone: "UTC"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.FourPanelEvents)
	assert.Equal(t, 20.0, result.Summary.TotalTime)
	assert.Equal(t, 1, result.Classifier.Counts.ThreePanel)
	assert.Equal(t, 1, result.Classifier.DetHits[73])
}
