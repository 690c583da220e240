package vetoana

import "fmt"

// CoincidenceType indexes the precomputed CoinType flags of a veto event.
// The order is significant for classification.
type CoincidenceType int

const (
	// 2 or more panels over threshold
	Weak CoincidenceType = iota
	// 2 top + 2 bottom panels
	Strong
	// both planes of a side + both bottom planes
	SideBottom
	// both top planes + both planes of a side
	TopSide
)

const NumCoincidenceFlags = 32

func (c CoincidenceType) String() string {
	switch c {
	case Weak:
		return "weak"
	case Strong:
		return "strong"
	case SideBottom:
		return "side+bottom"
	case TopSide:
		return "top+side"
	default:
		return fmt.Sprintf("CoinType[%d]", int(c))
	}
}

type CoincidenceFlags [NumCoincidenceFlags]bool

func (f CoincidenceFlags) Has(c CoincidenceType) bool {
	if c < 0 || int(c) >= len(f) {
		return false
	}
	return f[c]
}

// AnyStrong is set when any of the strong-type flags (1, 2 or 3) fired.
func (f CoincidenceFlags) AnyStrong() bool {
	return f.Has(Strong) || f.Has(SideBottom) || f.Has(TopSide)
}

// Panel groups used for three-panel events.
var (
	topPanels     = []Panel{18, 19, 21, 22}
	bottomXPanels = []Panel{1, 2, 3, 4, 5, 6}
	bottomYPanels = []Panel{7, 8, 9, 10, 11, 12}
)

func countIn(hits []Panel, group []Panel) int {
	n := 0
	for _, h := range hits {
		for _, g := range group {
			if h == g {
				n++
			}
		}
	}
	return n
}

// IsThreePanel reports whether hits contain exactly one top, one bottom-x and
// one bottom-y panel.
func IsThreePanel(hits []Panel) bool {
	return countIn(hits, topPanels) == 1 &&
		countIn(hits, bottomXPanels) == 1 &&
		countIn(hits, bottomYPanels) == 1
}
