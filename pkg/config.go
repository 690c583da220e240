package vetoana

import "path/filepath"

type Configuration struct {
	Verbosity           int      `json:"verbosity"`
	TreeName            string   `json:"tree_name"`
	DataFolder          string   `json:"data_folder"`
	OutputFolder        string   `json:"output_folder"`
	FileModifier        string   `json:"file_modifier"`
	RunSets             []RunSet `json:"run_sets"`
	ZeroRuns            bool     `json:"zero_runs"`
	MultipTable         bool     `json:"multip_table"`
	QDCAgglom           bool     `json:"qdc_agglom"`
	RunTiming           bool     `json:"run_timing"`
	HighMultipCut       bool     `json:"high_multip_cut"`
	HighMultipThreshold int      `json:"high_multip_threshold"`
	Plots               bool     `json:"plots"`
	WriteHDF5           bool     `json:"write_hdf5"`
	CompressionLevel    int      `json:"compression_level"`
	Timezone            string   `json:"timezone"`
	CheckDB             bool     `json:"check_db"`
	Host                string   `json:"host"`
	User                string   `json:"user"`
	Passwd              string   `json:"pass"`
	DBName              string   `json:"dbname"`
	NumWorkers          int      `json:"num_workers"`
	Parallel            bool     `json:"parallel"`
	UseColors           bool     `json:"use_colors"`
}

// RunSet is one named collection of runs taken under a single detector
// configuration.
type RunSet struct {
	BaseName string `json:"base_name"` // P3LTP, P3JDY, ...
	ExtName  string `json:"ext_name"`  // P3LTPNz
	Path     string `json:"path"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}

// DefaultRunSets lists every set taken with the veto, rooted at dataFolder.
// Only the last one is analysed by default; the older skims carry a
// different file naming.
func DefaultRunSets(dataFolder string) []RunSet {
	return []RunSet{
		{"P3N992", "P3N992Nz", filepath.Join(dataFolder, "P3N992", "skimVeto_P3N992.root")},
	}
}

// ArchivedRunSets are the skim-cut sets of the earlier reanalysis.
func ArchivedRunSets(dataFolder string) []RunSet {
	skim := func(base string) RunSet {
		return RunSet{base, base + "Nz", filepath.Join(dataFolder, base, "skimVeto_"+base+"Nz-skim-cut.root")}
	}
	plain := func(base string) RunSet {
		return RunSet{base, base + "Nz", filepath.Join(dataFolder, base, "skimVeto_"+base+".root")}
	}
	return []RunSet{
		skim("P3JDY"),
		skim("P3KJR"),
		skim("P3LQKa"),
		skim("P3LQK2"),
		skim("P3LTP"),
		skim("P3LTP2"),
		skim("P3LTP3"),
		plain("P3LTP4"),
		plain("P3LTP5"),
		plain("P3N991"),
		plain("P3N992"),
	}
}
