package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	sqlx "github.com/jmoiron/sqlx"
	vetoana "github.com/mjd-veto/vetoana_go/pkg"
	"github.com/mjd-veto/vetoana_go/pkg/archive"
	"github.com/mjd-veto/vetoana_go/pkg/plots"
)

var dbConn *sqlx.DB
var configuration vetoana.Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	archived := flag.Bool("archived", false, "Analyse the archived skim-cut run sets")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	if *archived {
		configuration.RunSets = vetoana.ArchivedRunSets(configuration.DataFolder)
	}
	if !configuration.UseColors {
		color.NoColor = true
	}
	vetoana.SetConfiguration(configuration)
	vetoana.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	if configuration.CheckDB {
		dbConn, err = vetoana.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
		if err != nil {
			message := fmt.Errorf("Error connection to database: %w", err)
			logger.Error(message.Error())
			os.Exit(1)
		}
		defer dbConn.Close()
	}

	if configuration.MultipTable {
		if err := vetoana.ClearMultipTable(configuration); err != nil {
			logger.Error(err.Error())
		}
	}

	start := time.Now()
	var results []*vetoana.SetResult
	if configuration.Parallel && configuration.NumWorkers > 1 {
		results = analyzeParallel(configuration.RunSets, configuration.NumWorkers)
	} else {
		results = vetoana.AnalyzeAll(configuration.RunSets, configuration, vetoana.AnalyzeFile)
	}

	// Outputs are written in configuration order so the appended tables
	// do not depend on worker scheduling.
	for _, result := range results {
		if result.Err != nil {
			continue
		}
		writeSetOutputs(result)
	}
	writeBatchOutputs(results)

	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Total time: %d ms", time.Since(start).Milliseconds())
		logger.Info(message, "main")
	}
	if err := vetoana.Failed(results); err != nil {
		logger.Error(fmt.Sprintf("some run sets failed: %v", err))
		os.Exit(1)
	}
}

func writeSetOutputs(result *vetoana.SetResult) {
	if err := vetoana.WriteSetTables(result, configuration); err != nil {
		message := fmt.Errorf("error writing tables for set %s: %w", result.RunSet.ExtName, err)
		logger.Error(message.Error())
	}
	if err := vetoana.WriteSetReport(os.Stdout, result, configuration); err != nil {
		logger.Error(err.Error())
	}
	if configuration.WriteHDF5 {
		path := vetoana.SetOutputPath(configuration, result.RunSet, "vetoAna.h5")
		if err := archive.WriteSetArchive(path, result, configuration.CompressionLevel); err != nil {
			message := fmt.Errorf("error writing archive for set %s: %w", result.RunSet.ExtName, err)
			logger.Error(message.Error())
		}
	}
	if configuration.Plots {
		if err := plots.SetPlots(result, configuration); err != nil {
			message := fmt.Errorf("error drawing plots for set %s: %w", result.RunSet.ExtName, err)
			logger.Error(message.Error())
		}
	}
	if dbConn != nil {
		checkPanelMap(result)
	}
}

// panelMapRuns lists the runs of a set whose panel map is checked against the
// database: the first and the last. A set without runs has none.
func panelMapRuns(summary *vetoana.SetData) []int {
	if summary.TotalRuns == 0 {
		return nil
	}
	runs := []int{summary.FirstRun}
	if summary.FinalRun != summary.FirstRun {
		runs = append(runs, summary.FinalRun)
	}
	return runs
}

// checkPanelMap compares the built-in panel map against the database.
func checkPanelMap(result *vetoana.SetResult) {
	for _, run := range panelMapRuns(&result.Summary) {
		mismatches, err := vetoana.VerifyPanelMap(dbConn, run, configuration)
		if err != nil {
			logger.Error(err.Error())
			continue
		}
		if len(mismatches) > 0 {
			message := fmt.Sprintf("set %s: %d channels differ from the database for run %d",
				result.RunSet.ExtName, len(mismatches), run)
			logger.Error(message)
		} else if VerbosityLevel > 0 {
			logger.Info(fmt.Sprintf("Panel map for run %d matches the database", run), "main")
		}
	}
}

func writeBatchOutputs(results []*vetoana.SetResult) {
	if err := vetoana.WriteComparisonReport(os.Stdout, results, configuration); err != nil {
		logger.Error(err.Error())
	}

	if configuration.RunTiming && configuration.Plots {
		path := filepath.Join(configuration.OutputFolder, "run-comparison.pdf")
		if err := plots.RunComparison(path, results); err != nil {
			logger.Error(fmt.Errorf("error drawing run comparison: %w", err).Error())
		}
	}

	if configuration.QDCAgglom {
		agglom := vetoana.AgglomerateQDC(results)
		path := filepath.Join(configuration.OutputFolder, vetoana.QDCAgglomName)
		if err := vetoana.WriteQDCAgglom(path, agglom, configuration); err != nil {
			logger.Error(err.Error())
		}
		if configuration.Plots {
			pdf := filepath.Join(configuration.OutputFolder, "qdc-agglom.pdf")
			if err := plots.QDCGrid(pdf, "QDC, all sets", agglom); err != nil {
				logger.Error(fmt.Errorf("error drawing QDC agglomeration: %w", err).Error())
			}
		}
	}

	if configuration.ZeroRuns {
		if err := vetoana.WriteZeroRuns(results, configuration); err != nil {
			logger.Error(err.Error())
		}
	}
}
