package archive

import (
	"fmt"

	"gonum.org/v1/hdf5"
)

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}

type RunHDF5 struct {
	RunNumber       int32   `hdf5:"run_number"`
	Duration        float64 `hdf5:"duration"`
	ZeroDuration    int32   `hdf5:"zero_duration"`
	Start           int64   `hdf5:"start"`
	Events          int32   `hdf5:"events"`
	FourPanelEvents int32   `hdf5:"four_panel_events"`
}

type DayHDF5 struct {
	Day      int32   `hdf5:"day"`
	Month    int32   `hdf5:"month"`
	Year     int32   `hdf5:"year"`
	Count    int32   `hdf5:"count"`
	Duration float64 `hdf5:"duration"`
}

type SummaryHDF5 struct {
	FourPanelEvents int32   `hdf5:"four_panel_events"`
	TotalTime       float64 `hdf5:"total_time"`
	Rate            float64 `hdf5:"rate"`
	RateErr         float64 `hdf5:"rate_err"`
	MaxRunDuration  float64 `hdf5:"max_run_duration"`
	TotalRuns       int32   `hdf5:"total_runs"`
	TotalEvents     int32   `hdf5:"total_events"`
	FirstRun        int32   `hdf5:"first_run"`
	FinalRun        int32   `hdf5:"final_run"`
}

func openFile(fname string) (*hdf5.File, error) {
	return hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

func datasetPropList(chunks []uint, compressionLevel int) (*hdf5.PropList, error) {
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, err
	}
	if err := plist.SetChunk(chunks); err != nil {
		plist.Close()
		return nil, err
	}
	if err := plist.SetDeflate(compressionLevel); err != nil {
		plist.Close()
		return nil, err
	}
	return plist, nil
}

// createArray makes a fixed-size float64 dataset chunked along its last
// dimension.
func createArray(group *hdf5.Group, name string, dims []uint, compressionLevel int) (*hdf5.Dataset, error) {
	space, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer space.Close()

	chunks := make([]uint, len(dims))
	for i := range chunks {
		chunks[i] = 1
	}
	chunks[len(dims)-1] = dims[len(dims)-1]
	plist, err := datasetPropList(chunks, compressionLevel)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	dset, err := group.CreateDatasetWith(name, hdf5.T_NATIVE_DOUBLE, space, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

func createTable(group *hdf5.Group, name string, datatype interface{}, compressionLevel int) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer fileSpace.Close()

	plist, err := datasetPropList([]uint{1024}, compressionLevel)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	dset, err := group.CreateDatasetWith(name, dtype, fileSpace, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

// writeArrayToTable appends data after the first rows already in dataset.
func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T, rows int) error {
	length := uint(len(*data))
	if length == 0 {
		return nil
	}
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return err
	}
	defer dataspace.Close()

	// extend
	newsize := []uint{uint(rows) + length}
	if err := dataset.Resize(newsize); err != nil {
		return err
	}
	filespace := dataset.Space()
	defer filespace.Close()

	start := []uint{uint(rows)}
	count := []uint{length}
	if err := filespace.SelectHyperslab(start, nil, count, nil); err != nil {
		return err
	}
	return dataset.WriteSubset(data, dataspace, filespace)
}
