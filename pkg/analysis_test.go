package vetoana

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	infos  []string
	errors []string
}

func (l *recordingLogger) Info(message string, module string) { l.infos = append(l.infos, message) }
func (l *recordingLogger) Error(message string)               { l.errors = append(l.errors, message) }

func withLogger(t *testing.T) *recordingLogger {
	t.Helper()
	l := &recordingLogger{}
	SetLogger(l)
	t.Cleanup(func() { SetLogger(nil) })
	return l
}

func TestAnalyze(t *testing.T) {
	result := testResult(t, Configuration{Timezone: "UTC"})
	assert.Equal(t, "P3TESTNz", result.Summary.Name)
	assert.Equal(t, 2, result.Summary.FourPanelEvents)
	assert.Equal(t, 3, result.Summary.TotalEvents)
	assert.Equal(t, 2, result.Classifier.FourPanelTotal)
	assert.InDelta(t, 2.0/3, result.FourPanelFraction().Value, 1e-12)
	assert.NoError(t, result.Err)
	assert.Same(t, result.Classifier.Hists, result.Hists())
}

func TestAnalyzeFreshAccumulators(t *testing.T) {
	first := testResult(t, Configuration{Timezone: "UTC"})
	second := testResult(t, Configuration{Timezone: "UTC"})
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.Classifier.DetHits, second.Classifier.DetHits)
	assert.NotSame(t, first.Classifier.Hists, second.Classifier.Hists)
}

func TestAnalyzeBadTimezone(t *testing.T) {
	_, err := Analyze(RunSet{ExtName: "x"}, SliceSource{}, Configuration{Timezone: "Nowhere/Atlantis"})
	assert.Error(t, err)
}

func TestAnalyzeZeroLiveTimeWarns(t *testing.T) {
	l := withLogger(t)
	events := SliceSource{newEvent(5001, 1436500000, 0, 4, []CoincidenceType{Strong}, 0, 6, 17, 18)}
	result, err := Analyze(RunSet{ExtName: "P3ZERO"}, events, Configuration{Timezone: "UTC"})
	require.NoError(t, err)
	assert.False(t, result.Summary.Rate.Defined)
	require.NotEmpty(t, l.errors)
	assert.Contains(t, l.errors[len(l.errors)-1], "rate undefined")
}

type failingSource struct{ err error }

func (s failingSource) ForEach(func(*VetoEvent) error) error { return s.err }
func (s failingSource) Close() error                          { return nil }

func TestAnalyzeSourceError(t *testing.T) {
	boom := errors.New("truncated basket")
	_, err := Analyze(RunSet{ExtName: "P3BAD"}, failingSource{boom}, Configuration{Timezone: "UTC"})
	assert.ErrorIs(t, err, boom)
}

func TestAnalyzeAllIsolatesFailures(t *testing.T) {
	l := withLogger(t)
	sets := []RunSet{{ExtName: "ok1"}, {ExtName: "missing"}, {ExtName: "panics"}, {ExtName: "ok2"}}
	config := Configuration{Timezone: "UTC"}

	open := func(rs RunSet, config Configuration) (*SetResult, error) {
		switch rs.ExtName {
		case "missing":
			return nil, &ErrOpenFile{Filename: "missing.root", Err: errors.New("no such file")}
		case "panics":
			panic("corrupt event")
		}
		events := SliceSource{newEvent(5001, 1436500000, 10, 4, []CoincidenceType{Strong}, 0, 6, 17, 18)}
		return Analyze(rs, events, config)
	}

	results := AnalyzeAll(sets, config, open)
	require.Len(t, results, 4)
	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[3].Err)
	assert.Equal(t, 1, results[3].Summary.FourPanelEvents)

	var openErr *ErrOpenFile
	assert.ErrorAs(t, results[1].Err, &openErr)
	assert.ErrorContains(t, results[2].Err, "corrupt event")
	assert.Equal(t, "panics", results[2].RunSet.ExtName)
	assert.Nil(t, results[2].Hists())

	err := Failed(results)
	assert.ErrorAs(t, err, &openErr)
	assert.ErrorContains(t, err, "corrupt event")
	assert.Len(t, l.errors, 2)

	assert.NoError(t, Failed(results[:1]))
}

func TestAnalyzeFileMissing(t *testing.T) {
	_, err := AnalyzeFile(RunSet{ExtName: "P3NONE", Path: "does/not/exist.root"}, Configuration{TreeName: "vetoTree"})
	var openErr *ErrOpenFile
	assert.ErrorAs(t, err, &openErr)
}
