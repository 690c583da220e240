package vetoana

// VetoEvent is one readout cycle of the veto.
type VetoEvent struct {
	Entry          int64
	RunNumber      int
	QDC            [NumChannels]int
	Threshold      [NumChannels]int
	CoinType       CoincidenceFlags
	Multiplicity   int
	Start          int64 // unix seconds
	ScalerDuration float64
}

// Hit reports whether channel ch met its software threshold.
func (e *VetoEvent) Hit(ch int) bool {
	return e.QDC[ch] >= e.Threshold[ch]
}

func (e *VetoEvent) AnyHit() bool {
	for ch := 0; ch < NumChannels; ch++ {
		if e.Hit(ch) {
			return true
		}
	}
	return false
}

// HitChannels returns the channels above threshold in ascending order.
func (e *VetoEvent) HitChannels() []int {
	hits := make([]int, 0, 4)
	for ch := 0; ch < NumChannels; ch++ {
		if e.Hit(ch) {
			hits = append(hits, ch)
		}
	}
	return hits
}
