package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/airport-booking/internal/model"
)

// ErrAirportNotFound indicates the airport row is absent.
var ErrAirportNotFound = errors.New("airport not found")

// AirportRepo manages airports and routes between them.
type AirportRepo struct {
	db *sql.DB
}

func NewAirportRepo(db *sql.DB) *AirportRepo { return &AirportRepo{db: db} }

// CreateAirport inserts an airport. Both the name and the
// (name, closest_big_city) pair are unique; either collision maps to
// ErrNameExists.
func (r *AirportRepo) CreateAirport(ctx context.Context, a *model.Airport) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO airports (name, closest_big_city) VALUES (?,?)`,
		a.Name, a.ClosestBigCity)
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

// AirportView is the JSON projection of an airport, including the
// rendered full name and the image path when an image was uploaded.
type AirportView struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	ClosestBigCity string  `json:"closest_big_city"`
	FullName       string  `json:"full_name"`
	ImagePath      *string `json:"image_path,omitempty"`
}

func airportView(a model.Airport) AirportView {
	return AirportView{
		ID:             a.ID,
		Name:           a.Name,
		ClosestBigCity: a.ClosestBigCity,
		FullName:       a.FullName(),
		ImagePath:      a.ImagePath,
	}
}

// ListAirports returns all airports ordered by name.
func (r *AirportRepo) ListAirports(ctx context.Context) ([]AirportView, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, closest_big_city, image_path FROM airports ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]AirportView, 0)
	for rows.Next() {
		var a model.Airport
		var img sql.NullString
		if err := rows.Scan(&a.ID, &a.Name, &a.ClosestBigCity, &img); err != nil {
			return nil, err
		}
		if img.Valid {
			v := img.String
			a.ImagePath = &v
		}
		out = append(out, airportView(a))
	}
	return out, rows.Err()
}

// GetAirport fetches one airport by id.
func (r *AirportRepo) GetAirport(ctx context.Context, id uint64) (model.Airport, error) {
	var a model.Airport
	var img sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, closest_big_city, image_path FROM airports WHERE id=?`, id).
		Scan(&a.ID, &a.Name, &a.ClosestBigCity, &img)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, ErrAirportNotFound
		}
		return a, err
	}
	if img.Valid {
		v := img.String
		a.ImagePath = &v
	}
	return a, nil
}

// SetAirportImage records the stored image path for an airport.
func (r *AirportRepo) SetAirportImage(ctx context.Context, id uint64, path string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE airports SET image_path=? WHERE id=?`, path, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAirportNotFound
	}
	return nil
}
