package vetoana

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"
)

// EventSource is a sequential, read-only cursor over the events of one
// run-set. ForEach stops at the first error returned by fn.
type EventSource interface {
	ForEach(fn func(evt *VetoEvent) error) error
	Close() error
}

// SliceSource serves events held in memory.
type SliceSource []VetoEvent

func (s SliceSource) ForEach(fn func(evt *VetoEvent) error) error {
	for i := range s {
		evt := s[i]
		if err := fn(&evt); err != nil {
			return err
		}
	}
	return nil
}

func (s SliceSource) Close() error {
	return nil
}

// Branches of the veto skim tree.
const (
	branchRun            = "run"
	branchQDC            = "fQDC"
	branchThreshold      = "fSWThresh"
	branchCoinType       = "CoinType"
	branchMultip         = "fMultip"
	branchStart          = "start"
	branchScalerDuration = "scalerDuration"
)

type vetoBranches struct {
	Run            int32
	QDC            [NumChannels]int32
	Threshold      [NumChannels]int32
	CoinType       [NumCoincidenceFlags]int32
	Multip         int32
	Start          int64
	ScalerDuration float64
}

func (b *vetoBranches) readVars() []rtree.ReadVar {
	return []rtree.ReadVar{
		{Name: branchRun, Value: &b.Run},
		{Name: branchQDC, Value: &b.QDC},
		{Name: branchThreshold, Value: &b.Threshold},
		{Name: branchCoinType, Value: &b.CoinType},
		{Name: branchMultip, Value: &b.Multip},
		{Name: branchStart, Value: &b.Start},
		{Name: branchScalerDuration, Value: &b.ScalerDuration},
	}
}

func (b *vetoBranches) toEvent(entry int64, evt *VetoEvent) {
	*evt = VetoEvent{
		Entry:          entry,
		RunNumber:      int(b.Run),
		Multiplicity:   int(b.Multip),
		Start:          b.Start,
		ScalerDuration: b.ScalerDuration,
	}
	for ch := 0; ch < NumChannels; ch++ {
		evt.QDC[ch] = int(b.QDC[ch])
		evt.Threshold[ch] = int(b.Threshold[ch])
	}
	for i, v := range b.CoinType {
		evt.CoinType[i] = v != 0
	}
}

// TreeReader reads veto events from a ROOT skim file.
type TreeReader struct {
	Filename string
	file     *groot.File
	tree     rtree.Tree
}

func OpenTree(filename string, treeName string) (*TreeReader, error) {
	f, err := groot.Open(filename)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	obj, err := f.Get(treeName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("could not find tree %q in %q: %w", treeName, filename, err)
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		f.Close()
		return nil, fmt.Errorf("object %q in %q is a %T, not a tree", treeName, filename, obj)
	}
	return &TreeReader{Filename: filename, file: f, tree: tree}, nil
}

func (r *TreeReader) Entries() int64 {
	return r.tree.Entries()
}

func (r *TreeReader) ForEach(fn func(evt *VetoEvent) error) error {
	var branches vetoBranches
	rr, err := rtree.NewReader(r.tree, branches.readVars())
	if err != nil {
		return fmt.Errorf("could not create reader for %q: %w", r.Filename, err)
	}
	defer rr.Close()

	var evt VetoEvent
	err = rr.Read(func(ctx rtree.RCtx) error {
		branches.toEvent(ctx.Entry, &evt)
		return fn(&evt)
	})
	if err != nil {
		return fmt.Errorf("error reading %q: %w", r.Filename, err)
	}
	return nil
}

func (r *TreeReader) Close() error {
	return r.file.Close()
}
