package vetoana

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelMapBoundaries(t *testing.T) {
	tests := []struct {
		run   int
		epoch string
	}{
		{1, "module-1"},
		{3056, "module-1"},
		{3057, "32-panel"},
		{44999999, "32-panel"},
		{45000509, "prototype-1"},
		{45004116, "prototype-1"},
		{45004117, "prototype-2"},
		{45008659, "prototype-2"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("run %d", tt.run), func(t *testing.T) {
			epoch, err := EpochFor(tt.run)
			require.NoError(t, err)
			assert.Equal(t, tt.epoch, epoch.Name)
		})
	}
}

func TestPanelMapUnknownRuns(t *testing.T) {
	for _, run := range []int{0, -3, 45000000, 45000508, 45008660, 60000000} {
		_, err := EpochFor(run)
		var unknown *ErrUnknownEpoch
		require.True(t, errors.As(err, &unknown), "run %d", run)
		assert.Equal(t, run, unknown.RunNumber)

		for ch := 0; ch < NumChannels; ch++ {
			assert.Equal(t, Unmapped, PanelMap(ch, run))
		}
	}
}

func TestPanelMapTables(t *testing.T) {
	for ch := 0; ch < NumChannels; ch++ {
		assert.Equal(t, Panel(ch+1), PanelMap(ch, 5000), "32-panel channel %d", ch)
	}

	proto1 := []Panel{
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12,
		21, 22, 15, 16, 17, 18, 19, 20, 13, 14, 23, 24,
	}
	for ch, want := range proto1 {
		assert.Equal(t, want, PanelMap(ch, 45000600), "prototype-1 channel %d", ch)
	}
	for ch := 0; ch < 24; ch++ {
		assert.Equal(t, Panel(ch+1), PanelMap(ch, 45005000), "prototype-2 channel %d", ch)
		assert.Equal(t, Panel(ch+1), PanelMap(ch, 2000), "module-1 channel %d", ch)
	}
	for ch := 24; ch < NumChannels; ch++ {
		assert.Equal(t, Unmapped, PanelMap(ch, 45000600))
		assert.Equal(t, Unmapped, PanelMap(ch, 45005000))
		assert.Equal(t, Unmapped, PanelMap(ch, 2000))
	}

	assert.Equal(t, Unmapped, PanelMap(-1, 5000))
	assert.Equal(t, Unmapped, PanelMap(NumChannels, 5000))
}

func TestEpochsDisjoint(t *testing.T) {
	epochs := Epochs()
	require.Len(t, epochs, 4)
	for i := range epochs {
		assert.LessOrEqual(t, epochs[i].MinRun, epochs[i].MaxRun)
		for j := i + 1; j < len(epochs); j++ {
			a, b := epochs[i], epochs[j]
			overlap := a.MinRun <= b.MaxRun && b.MinRun <= a.MaxRun
			assert.False(t, overlap, "%s overlaps %s", a.Name, b.Name)
		}
	}

	// the copy must not alias the lookup tables
	epochs[0].Panels[0] = 99
	assert.Equal(t, Panel(1), PanelMap(0, 5000))
}

func TestPanelString(t *testing.T) {
	assert.Equal(t, "panel 7", Panel(7).String())
	assert.Equal(t, "unmapped", Unmapped.String())
	assert.False(t, Panel(0).Valid())
	assert.False(t, Panel(33).Valid())
}
