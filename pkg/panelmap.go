package vetoana

import "fmt"

const (
	NumChannels = 32
	NumPanels   = 32
)

// Panel is a physical mounting location in the veto enclosure, numbered as in
// the "Veto Panels, View From The Top" figure of the veto change log. The
// meaning of a panel number does not change between configurations; the QDC
// channel reading it does.
type Panel int

// Unmapped is returned for channels without a panel and for runs outside
// every known configuration.
const Unmapped Panel = -1

func (p Panel) Valid() bool {
	return p >= 1 && p <= NumPanels
}

func (p Panel) String() string {
	if !p.Valid() {
		return "unmapped"
	}
	return fmt.Sprintf("panel %d", int(p))
}

// Epoch is a closed run-number interval read out with one fixed
// channel->panel table.
type Epoch struct {
	Name   string
	MinRun int
	MaxRun int
	Panels [NumChannels]Panel
}

func (e *Epoch) Contains(runNumber int) bool {
	return runNumber >= e.MinRun && runNumber <= e.MaxRun
}

// Panel returns the panel read by channel, or Unmapped if the channel is not
// cabled in this configuration.
func (e *Epoch) Panel(channel int) Panel {
	if channel < 0 || channel >= NumChannels {
		return Unmapped
	}
	return e.Panels[channel]
}

const u = Unmapped

// Epochs are listed in the order they are tested. The tables are copied from
// the veto change log and must not be regenerated.
var epochs = []Epoch{
	{
		// 32-panel configuration, began 7/10/15
		Name:   "32-panel",
		MinRun: 3057,
		MaxRun: 45000000 - 1,
		Panels: [NumChannels]Panel{
			1, 2, 3, 4, 5, 6,
			7, 8, 9, 10, 11, 12,
			13, 14, 15, 16,
			17, 18, 19, 20,
			21, 22, 23, 24,
			25, 26, 27, 28,
			29, 30, 31, 32,
		},
	},
	{
		// 1st prototype, 24 panels
		Name:   "prototype-1",
		MinRun: 45000509,
		MaxRun: 45004116,
		Panels: [NumChannels]Panel{
			1, 2, 3, 4, 5, 6,
			7, 8, 9, 10, 11, 12,
			21, 22, 15, 16,
			17, 18, 19, 20,
			13, 14, 23, 24,
			u, u, u, u,
			u, u, u, u,
		},
	},
	{
		// 2nd prototype, 24 panels
		Name:   "prototype-2",
		MinRun: 45004117,
		MaxRun: 45008659,
		Panels: [NumChannels]Panel{
			1, 2, 3, 4, 5, 6,
			7, 8, 9, 10, 11, 12,
			13, 14, 15, 16,
			17, 18, 19, 20,
			21, 22, 23, 24,
			u, u, u, u,
			u, u, u, u,
		},
	},
	{
		// module 1 (P3JDY), 6/24/15 - 7/7/15
		Name:   "module-1",
		MinRun: 1,
		MaxRun: 3056,
		Panels: [NumChannels]Panel{
			1, 2, 3, 4, 5, 6,
			7, 8, 9, 10, 11, 12,
			13, 14, 15, 16,
			17, 18, 19, 20,
			21, 22, 23, 24,
			u, u, u, u,
			u, u, u, u,
		},
	},
}

// Epochs returns a copy of the known configurations in lookup order.
func Epochs() []Epoch {
	out := make([]Epoch, len(epochs))
	copy(out, epochs)
	return out
}

// EpochFor selects the configuration covering runNumber.
func EpochFor(runNumber int) (*Epoch, error) {
	for i := range epochs {
		if epochs[i].Contains(runNumber) {
			return &epochs[i], nil
		}
	}
	return nil, &ErrUnknownEpoch{RunNumber: runNumber}
}

// PanelMap maps a QDC channel to its panel location for the given run.
// Unknown runs are reported and resolve to Unmapped for every channel.
func PanelMap(channel int, runNumber int) Panel {
	epoch, err := EpochFor(runNumber)
	if err != nil {
		logger.Error(err.Error())
		return Unmapped
	}
	return epoch.Panel(channel)
}
