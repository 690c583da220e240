package vetoana

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

type PanelMappingEntry struct {
	Channel int `db:"Channel"`
	Panel   int `db:"Panel"`
}

// PanelMismatch is a channel whose database panel differs from the built-in
// table.
type PanelMismatch struct {
	Channel  int
	BuiltIn  Panel
	Database Panel
}

func (m PanelMismatch) String() string {
	return fmt.Sprintf("channel %d: built-in %v, database %v", m.Channel, m.BuiltIn, m.Database)
}

func getPanelMapFromDB(db *sqlx.DB, runNumber int, verbosity int) (map[int]Panel, error) {
	query := "SELECT Channel, Panel FROM VetoChannelMapping WHERE MinRun <= %d and MaxRun >= %d ORDER BY Channel"
	query = fmt.Sprintf(query, runNumber, runNumber)

	if verbosity > 0 {
		logger.Info(fmt.Sprintf("Reading channel mapping for run %d from DB", runNumber), "database")
	}
	if verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return nil, errMessage
	}
	defer rows.Close()

	panels := make(map[int]Panel)
	for rows.Next() {
		result := PanelMappingEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return nil, errMessage
		}
		panels[result.Channel] = Panel(result.Panel)
	}
	return panels, rows.Err()
}

// ComparePanelMap checks a channel->panel table against the built-in epoch
// of runNumber. Channels missing from dbPanels are compared as Unmapped.
func ComparePanelMap(dbPanels map[int]Panel, runNumber int) ([]PanelMismatch, error) {
	epoch, err := EpochFor(runNumber)
	if err != nil {
		return nil, err
	}
	var mismatches []PanelMismatch
	for ch := 0; ch < NumChannels; ch++ {
		builtIn := epoch.Panel(ch)
		fromDB, ok := dbPanels[ch]
		if !ok || !fromDB.Valid() {
			fromDB = Unmapped
		}
		if builtIn != fromDB {
			mismatches = append(mismatches, PanelMismatch{Channel: ch, BuiltIn: builtIn, Database: fromDB})
		}
	}
	return mismatches, nil
}

// VerifyPanelMap compares the detector database mapping of runNumber with the
// built-in tables and logs every difference. The built-in tables stay
// authoritative.
func VerifyPanelMap(db *sqlx.DB, runNumber int, config Configuration) ([]PanelMismatch, error) {
	dbPanels, err := getPanelMapFromDB(db, runNumber, config.Verbosity)
	if err != nil {
		errMessage := fmt.Errorf("error getting panel map from database: %w", err)
		logger.Error(errMessage.Error())
		return nil, errMessage
	}
	mismatches, err := ComparePanelMap(dbPanels, runNumber)
	if err != nil {
		return nil, err
	}
	for _, m := range mismatches {
		logger.Error(fmt.Sprintf("run %d panel map differs from database, %v", runNumber, m))
	}
	return mismatches, nil
}
