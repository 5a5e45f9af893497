// Package alertlog persists emitted alerts to SQLite so replay sessions can
// be compared offline.
package alertlog

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/pathguard/internal/engine"
	"github.com/banshee-data/pathguard/internal/monitoring"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Event is one emitted alert.
type Event struct {
	ID             string
	SessionID      string
	FrameIndex     int
	Alert          string
	MessageID      string
	Vibration      string
	Zones          string
	StepKind       string
	DistanceMeters float64
	Timestamp      time.Time
}

// EventFromOutput converts an engine output into a loggable event. The
// timestamp is supplied by the caller.
func EventFromOutput(out engine.Output, ts time.Time) Event {
	return Event{
		SessionID:      out.SessionID,
		FrameIndex:     out.FrameIndex,
		Alert:          out.Alert.String(),
		MessageID:      out.Alert.MessageID(),
		Vibration:      out.Alert.Vibration().String(),
		Zones:          out.Zones.Set().String(),
		StepKind:       out.Step.Kind.String(),
		DistanceMeters: out.Step.DistanceMeters,
		Timestamp:      ts,
	}
}

// Store is a SQLite-backed alert log.
type Store struct {
	*sql.DB
}

// Open opens (or creates) the database at path. Call Migrate before use.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open alert log %s: %w", path, err)
	}
	return &Store{DB: db}, nil
}

// Migrate applies all pending schema migrations. It is a no-op on an
// up-to-date database.
func (s *Store) Migrate() error {
	m, err := s.newMigrate()
	if err != nil {
		return err
	}
	// m is not closed: that would close the underlying DB connection.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// SchemaVersion returns the applied migration version, or 0 if none.
func (s *Store) SchemaVersion() (uint, error) {
	m, err := s.newMigrate()
	if err != nil {
		return 0, err
	}
	version, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	return version, err
}

func (s *Store) newMigrate() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(s.DB, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = &migrateLogger{}
	return m, nil
}

// Record inserts e, assigning an ID when e.ID is empty, and returns the ID.
func (s *Store) Record(e Event) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.StepKind == "" {
		e.StepKind = "none"
	}
	_, err := s.Exec(`
		INSERT INTO alert_events (
			event_id, session_id, frame_index, alert, message_id, vibration,
			zones, step_kind, distance_meters, recorded_unix_nanos
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SessionID, e.FrameIndex, e.Alert, e.MessageID, e.Vibration,
		e.Zones, e.StepKind, e.DistanceMeters, e.Timestamp.UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("insert alert event: %w", err)
	}
	monitoring.Debugf("alertlog: session %s frame %d: %s", e.SessionID, e.FrameIndex, e.Alert)
	return e.ID, nil
}

// Events returns a session's events in frame order.
func (s *Store) Events(sessionID string) ([]Event, error) {
	rows, err := s.Query(`
		SELECT event_id, session_id, frame_index, alert, message_id, vibration,
		       zones, step_kind, distance_meters, recorded_unix_nanos
		FROM alert_events
		WHERE session_id = ?
		ORDER BY frame_index, recorded_unix_nanos`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query alert events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var nanos int64
		if err := rows.Scan(&e.ID, &e.SessionID, &e.FrameIndex, &e.Alert, &e.MessageID,
			&e.Vibration, &e.Zones, &e.StepKind, &e.DistanceMeters, &nanos); err != nil {
			return nil, fmt.Errorf("scan alert event: %w", err)
		}
		e.Timestamp = time.Unix(0, nanos).UTC()
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountByAlert tallies a session's events per alert name.
func (s *Store) CountByAlert(sessionID string) (map[string]int, error) {
	rows, err := s.Query(`
		SELECT alert, COUNT(*) FROM alert_events
		WHERE session_id = ?
		GROUP BY alert`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("count alert events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scan alert count: %w", err)
		}
		counts[name] = n
	}
	return counts, rows.Err()
}

// migrateLogger implements migrate.Logger.
type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	monitoring.Logf("[migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}
