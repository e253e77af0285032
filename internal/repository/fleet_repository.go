// This file holds persistence for airplane types and airplanes. The
// two are kept in one repository because airplanes are always listed
// and retrieved together with their type.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/airport-booking/internal/model"
)

// ErrAirplaneTypeNotFound indicates the referenced airplane type row is absent.
var ErrAirplaneTypeNotFound = errors.New("airplane type not found")

// ErrAirplaneNotFound indicates the airplane row is absent.
var ErrAirplaneNotFound = errors.New("airplane not found")

// ErrNameExists indicates a unique name column collision (airplane
// types, airplanes and airports all carry unique names).
var ErrNameExists = errors.New("name already exists")

// FleetRepo manages airplane_types and airplanes.
type FleetRepo struct {
	db *sql.DB
}

func NewFleetRepo(db *sql.DB) *FleetRepo { return &FleetRepo{db: db} }

// DB exposes the underlying sql.DB so callers can begin transactions
// spanning multiple repositories.
func (r *FleetRepo) DB() *sql.DB { return r.db }

// CreateType inserts a new airplane type. Duplicate names map to ErrNameExists.
func (r *FleetRepo) CreateType(ctx context.Context, t *model.AirplaneType) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO airplane_types (name) VALUES (?)`, t.Name)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrNameExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// ListTypes returns all airplane types ordered by name.
func (r *FleetRepo) ListTypes(ctx context.Context) ([]AirplaneTypeView, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM airplane_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]AirplaneTypeView, 0)
	for rows.Next() {
		var t AirplaneTypeView
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateAirplane inserts an airplane. The referenced type must exist;
// a missing type maps to ErrAirplaneTypeNotFound and a duplicate name
// to ErrNameExists.
func (r *FleetRepo) CreateAirplane(ctx context.Context, a *model.Airplane) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM airplane_types WHERE id=?)`, a.AirplaneTypeID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrAirplaneTypeNotFound
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO airplanes (name, `rows`, seats_in_row, airplane_type_id) VALUES (?,?,?,?)",
		a.Name, a.Rows, a.SeatsInRow, a.AirplaneTypeID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrNameExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// AirplaneSummary is the list projection of an airplane: the type is
// flattened to its name and the capacity is precomputed.
type AirplaneSummary struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	AirplaneType string `json:"airplane_type"`
	Rows         uint32 `json:"rows"`
	SeatsInRow   uint32 `json:"seats_in_row"`
	Capacity     uint32 `json:"capacity"`
}

// AirplaneTypeView is the JSON projection of an airplane type.
type AirplaneTypeView struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// AirplaneDetail nests the full airplane type object.
type AirplaneDetail struct {
	ID           uint64           `json:"id"`
	Name         string           `json:"name"`
	AirplaneType AirplaneTypeView `json:"airplane_type"`
	Rows         uint32           `json:"rows"`
	SeatsInRow   uint32           `json:"seats_in_row"`
	Capacity     uint32           `json:"capacity"`
}

// ListAirplanes returns airplane summaries ordered by name.
func (r *FleetRepo) ListAirplanes(ctx context.Context) ([]AirplaneSummary, error) {
	const q = "SELECT a.id, a.name, t.name, a.`rows`, a.seats_in_row" +
		" FROM airplanes a JOIN airplane_types t ON t.id = a.airplane_type_id" +
		" ORDER BY a.name"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]AirplaneSummary, 0)
	for rows.Next() {
		var s AirplaneSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.AirplaneType, &s.Rows, &s.SeatsInRow); err != nil {
			return nil, err
		}
		s.Capacity = s.Rows * s.SeatsInRow
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetAirplane returns the detail projection for one airplane.
func (r *FleetRepo) GetAirplane(ctx context.Context, id uint64) (*AirplaneDetail, error) {
	const q = "SELECT a.id, a.name, a.`rows`, a.seats_in_row, t.id, t.name" +
		" FROM airplanes a JOIN airplane_types t ON t.id = a.airplane_type_id" +
		" WHERE a.id = ?"
	var d AirplaneDetail
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.Name, &d.Rows, &d.SeatsInRow, &d.AirplaneType.ID, &d.AirplaneType.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAirplaneNotFound
		}
		return nil, err
	}
	d.Capacity = d.Rows * d.SeatsInRow
	return &d, nil
}
