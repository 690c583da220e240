package vetoana

const NumDetectorPairs = 144

// Top panels that shift the pair index. Only these two are distinguished:
// 18 and 21 fold onto the same ranges as each other.
const (
	topPanelHalf    Panel = 19
	topPanelQuarter Panel = 22
)

// DetectorPairIndex numbers a top-pair/bottom-pair combination in 1..144.
// The bottom pair is order independent; the top pair only contributes
// whether it contains panel 19 (+72) and whether it contains panel 22 (+36).
func DetectorPairIndex(top1, top2, bottom1, bottom2 Panel) int {
	idx := 0
	if top1 == topPanelHalf || top2 == topPanelHalf {
		idx += NumDetectorPairs / 2
	}
	if top1 == topPanelQuarter || top2 == topPanelQuarter {
		idx += NumDetectorPairs / 4
	}
	lo, hi := bottom1, bottom2
	if bottom1 > bottom2 {
		lo, hi = bottom2, bottom1
	}
	idx += int(lo)
	idx += (int(hi) - 7) * 6
	return idx
}

// ValidDetectorPair reports whether idx falls inside the canonical numbering.
func ValidDetectorPair(idx int) bool {
	return idx >= 1 && idx <= NumDetectorPairs
}
