package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/darshan/internal/model"
)

// TempleStore reads the temple directory from SQL. The directory is
// read-only at runtime; Seed only fills an empty database.
type TempleStore struct {
	db *sqlx.DB
}

func NewStore(conn *sqlx.DB) *TempleStore {
	return &TempleStore{db: conn}
}

type timingRow struct {
	TempleID string `db:"temple_id"`
	Name     string `db:"name"`
	Time     string `db:"time"`
}

type alertRow struct {
	TempleID string `db:"temple_id"`
	Message  string `db:"message"`
}

// ListTemples returns every temple in directory order with its timings and
// alerts attached.
func (s *TempleStore) ListTemples(ctx context.Context) ([]model.TempleRecord, error) {
	var temples []model.TempleRecord
	err := s.db.SelectContext(ctx, &temples, `
		SELECT id, name, location, icon, crowd_status, wait_time, open_time, close_time, description, last_updated
		FROM temples
		ORDER BY position, id
		`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list temples")
		return nil, fmt.Errorf("list temples: %w", err)
	}

	var timings []timingRow
	err = s.db.SelectContext(ctx, &timings, `
		SELECT temple_id, name, time
		FROM temple_special_timings
		ORDER BY temple_id, position
		`)
	if err != nil {
		return nil, fmt.Errorf("list special timings: %w", err)
	}

	var alerts []alertRow
	err = s.db.SelectContext(ctx, &alerts, `
		SELECT temple_id, message
		FROM temple_alerts
		ORDER BY temple_id, position
		`)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	byID := make(map[string]int, len(temples))
	for i := range temples {
		byID[temples[i].ID] = i
		temples[i].SpecialTimings = []model.SpecialTiming{}
		temples[i].Alerts = []string{}
	}
	for _, r := range timings {
		if i, ok := byID[r.TempleID]; ok {
			temples[i].SpecialTimings = append(temples[i].SpecialTimings, model.SpecialTiming{Name: r.Name, Time: r.Time})
		}
	}
	for _, r := range alerts {
		if i, ok := byID[r.TempleID]; ok {
			temples[i].Alerts = append(temples[i].Alerts, r.Message)
		}
	}
	return temples, nil
}

// CountTemples reports how many temples are stored.
func (s *TempleStore) CountTemples(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM temples`); err != nil {
		return 0, fmt.Errorf("count temples: %w", err)
	}
	return n, nil
}

// SeedTemples inserts records when the temples table is empty and reports
// whether it did.
func (s *TempleStore) SeedTemples(ctx context.Context, records []model.TempleRecord) (bool, error) {
	n, err := s.CountTemples(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertTemple := tx.Rebind(`
		INSERT INTO temples (id, position, name, location, icon, crowd_status, wait_time, open_time, close_time, description, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	insertTiming := tx.Rebind(`
		INSERT INTO temple_special_timings (temple_id, position, name, time)
		VALUES (?, ?, ?, ?)`)
	insertAlert := tx.Rebind(`
		INSERT INTO temple_alerts (temple_id, position, message)
		VALUES (?, ?, ?)`)

	for pos, t := range records {
		if _, err := tx.ExecContext(ctx, insertTemple,
			t.ID, pos, t.Name, t.Location, t.Icon, string(t.CrowdStatus),
			t.WaitTime, t.OpenTime, t.CloseTime, t.Description, t.LastUpdated,
		); err != nil {
			return false, fmt.Errorf("insert temple %q: %w", t.ID, err)
		}
		for i, st := range t.SpecialTimings {
			if _, err := tx.ExecContext(ctx, insertTiming, t.ID, i, st.Name, st.Time); err != nil {
				return false, fmt.Errorf("insert timing for %q: %w", t.ID, err)
			}
		}
		for i, a := range t.Alerts {
			if _, err := tx.ExecContext(ctx, insertAlert, t.ID, i, a); err != nil {
				return false, fmt.Errorf("insert alert for %q: %w", t.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	log.Info().Int("temples", len(records)).Msg("seeded temple directory")
	return true, nil
}
