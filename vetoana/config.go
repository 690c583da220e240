package main

import (
	"encoding/json"
	"fmt"
	"os"

	vetoana "github.com/mjd-veto/vetoana_go/pkg"
)

func LoadConfiguration(filename string) (vetoana.Configuration, error) {
	var config vetoana.Configuration

	// Set default values
	config.Verbosity = 0
	config.TreeName = "vetoTree"
	config.DataFolder = "muon-data"
	config.OutputFolder = "muon-data"
	config.FileModifier = "-sc"
	config.ZeroRuns = false
	config.MultipTable = false
	config.QDCAgglom = false
	config.RunTiming = true
	config.HighMultipCut = false
	config.HighMultipThreshold = 16
	config.Plots = true
	config.WriteHDF5 = false
	config.CompressionLevel = 4
	config.Timezone = "Local"
	config.CheckDB = false
	config.Host = "localhost"
	config.User = "vetoreader"
	config.Passwd = "readonly"
	config.DBName = "MJDVeto"
	config.NumWorkers = 1
	config.Parallel = false
	config.UseColors = true

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return config, err
		}
		err = json.Unmarshal(data, &config)
		if err != nil {
			return config, err
		}
	}
	if len(config.RunSets) == 0 {
		config.RunSets = vetoana.DefaultRunSets(config.DataFolder)
	}
	if config.NumWorkers < 1 {
		config.NumWorkers = 1
	}
	return config, nil
}

func printConfiguration(config vetoana.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("Tree name: %s", config.TreeName), "config")
	logger.Info(fmt.Sprintf("Data folder: %s", config.DataFolder), "config")
	logger.Info(fmt.Sprintf("Output folder: %s", config.OutputFolder), "config")
	logger.Info(fmt.Sprintf("File modifier: %s", config.FileModifier), "config")
	for _, rs := range config.RunSets {
		logger.Info(fmt.Sprintf("Run set: %s (%s) %s", rs.ExtName, rs.BaseName, rs.Path), "config")
	}
	logger.Info(fmt.Sprintf("Zero-duration runs: %t", config.ZeroRuns), "config")
	logger.Info(fmt.Sprintf("Multiplicity table: %t", config.MultipTable), "config")
	logger.Info(fmt.Sprintf("QDC agglomeration: %t", config.QDCAgglom), "config")
	logger.Info(fmt.Sprintf("Run timing: %t", config.RunTiming), "config")
	logger.Info(fmt.Sprintf("High multiplicity cut: %t (>= %d)", config.HighMultipCut, config.HighMultipThreshold), "config")
	logger.Info(fmt.Sprintf("Plots: %t", config.Plots), "config")
	logger.Info(fmt.Sprintf("Write HDF5: %t", config.WriteHDF5), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Timezone: %s", config.Timezone), "config")
	logger.Info(fmt.Sprintf("Check DB: %t", config.CheckDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Parallel: %t", config.Parallel), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
}
