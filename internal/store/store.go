package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/awaistahir/ecohome/internal/engine"
	_ "modernc.org/sqlite"
)

// Store persists the appliance catalog and tariff schedules using SQLite.
// These are configuration — per-call estimation results are never written.
type Store struct {
	db *sql.DB
}

// NewStore creates a new store and initializes the database
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// initialize creates the database schema
func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS appliances (
		name TEXT PRIMARY KEY,
		rated_watts REAL NOT NULL,
		active INTEGER DEFAULT 0,
		duty_cycle REAL DEFAULT 1.0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tariff_schedules (
		name TEXT PRIMARY KEY,
		tiers TEXT NOT NULL,
		is_active INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveAppliance saves or updates a catalog entry
func (s *Store) SaveAppliance(a engine.ApplianceSpec) error {
	query := `INSERT OR REPLACE INTO appliances
		(name, rated_watts, active, duty_cycle, updated_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query, a.Name, a.RatedWatts, boolToInt(a.Active), a.DutyCycle, time.Now())
	return err
}

// GetAppliances retrieves the full catalog in name order
func (s *Store) GetAppliances() ([]engine.ApplianceSpec, error) {
	query := `SELECT name, rated_watts, active, duty_cycle FROM appliances ORDER BY name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	specs := []engine.ApplianceSpec{}
	for rows.Next() {
		var a engine.ApplianceSpec
		var activeInt int

		if err := rows.Scan(&a.Name, &a.RatedWatts, &activeInt, &a.DutyCycle); err != nil {
			return nil, err
		}
		a.Active = activeInt == 1

		specs = append(specs, a)
	}

	return specs, rows.Err()
}

// GetAppliance retrieves a single catalog entry by name
func (s *Store) GetAppliance(name string) (*engine.ApplianceSpec, error) {
	query := `SELECT name, rated_watts, active, duty_cycle FROM appliances WHERE name = ?`

	var a engine.ApplianceSpec
	var activeInt int

	err := s.db.QueryRow(query, name).Scan(&a.Name, &a.RatedWatts, &activeInt, &a.DutyCycle)
	if err != nil {
		return nil, err
	}
	a.Active = activeInt == 1

	return &a, nil
}

// DeleteAppliance removes a catalog entry by name
func (s *Store) DeleteAppliance(name string) error {
	_, err := s.db.Exec(`DELETE FROM appliances WHERE name = ?`, name)
	return err
}

// SaveSchedule saves or updates a tariff schedule, preserving its active flag
func (s *Store) SaveSchedule(ts engine.TariffSchedule) error {
	tiersJSON, err := json.Marshal(ts.Tiers)
	if err != nil {
		return err
	}

	query := `INSERT INTO tariff_schedules (name, tiers, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET tiers = excluded.tiers, updated_at = excluded.updated_at`

	_, err = s.db.Exec(query, ts.Name, string(tiersJSON), time.Now())
	return err
}

// GetSchedule retrieves a tariff schedule by name
func (s *Store) GetSchedule(name string) (*engine.TariffSchedule, error) {
	query := `SELECT name, tiers FROM tariff_schedules WHERE name = ?`

	var ts engine.TariffSchedule
	var tiersJSON string

	if err := s.db.QueryRow(query, name).Scan(&ts.Name, &tiersJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tiersJSON), &ts.Tiers); err != nil {
		return nil, err
	}

	return &ts, nil
}

// ListSchedules returns every stored schedule name with its active flag
func (s *Store) ListSchedules() (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT name, is_active FROM tariff_schedules ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := map[string]bool{}
	for rows.Next() {
		var name string
		var activeInt int
		if err := rows.Scan(&name, &activeInt); err != nil {
			return nil, err
		}
		schedules[name] = activeInt == 1
	}

	return schedules, rows.Err()
}

// SetActiveSchedule marks one schedule active and clears the flag everywhere else
func (s *Store) SetActiveSchedule(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE tariff_schedules SET is_active = 0`); err != nil {
		return err
	}

	res, err := tx.Exec(`UPDATE tariff_schedules SET is_active = 1, updated_at = ? WHERE name = ?`, time.Now(), name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("schedule not found: %s", name)
	}

	return tx.Commit()
}

// ActiveSchedule retrieves the schedule currently marked active
func (s *Store) ActiveSchedule() (*engine.TariffSchedule, error) {
	query := `SELECT name, tiers FROM tariff_schedules WHERE is_active = 1`

	var ts engine.TariffSchedule
	var tiersJSON string

	if err := s.db.QueryRow(query).Scan(&ts.Name, &tiersJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tiersJSON), &ts.Tiers); err != nil {
		return nil, err
	}

	return &ts, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
