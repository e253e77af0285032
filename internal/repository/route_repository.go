package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/airport-booking/internal/model"
)

// ErrRouteNotFound indicates the route row is absent.
var ErrRouteNotFound = errors.New("route not found")

// ErrRouteExists indicates a route between the same source and
// destination already exists.
var ErrRouteExists = errors.New("route already exists")

// RouteRepo manages routes between airports.
type RouteRepo struct {
	db *sql.DB
}

func NewRouteRepo(db *sql.DB) *RouteRepo { return &RouteRepo{db: db} }

// CreateRoute inserts a route. Both endpoints must exist
// (ErrAirportNotFound otherwise) and the (source, destination) pair is
// unique (ErrRouteExists on collision).
func (r *RouteRepo) CreateRoute(ctx context.Context, rt *model.Route) error {
	var count int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM airports WHERE id IN (?, ?)`, rt.SourceID, rt.DestinationID).Scan(&count); err != nil {
		return err
	}
	want := 2
	if rt.SourceID == rt.DestinationID {
		want = 1
	}
	if count != want {
		return ErrAirportNotFound
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO routes (source_id, destination_id, distance) VALUES (?,?,?)`,
		rt.SourceID, rt.DestinationID, rt.Distance)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrRouteExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)
	return nil
}

// RouteSummary is the list projection: airports flattened to names.
type RouteSummary struct {
	ID          uint64 `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    uint32 `json:"distance"`
	FullRoute   string `json:"full_route"`
}

// RouteDetail nests both airport objects.
type RouteDetail struct {
	ID          uint64      `json:"id"`
	Source      AirportView `json:"source"`
	Destination AirportView `json:"destination"`
	Distance    uint32      `json:"distance"`
	FullRoute   string      `json:"full_route"`
}

// ListRoutes returns route summaries ordered by the airport names.
func (r *RouteRepo) ListRoutes(ctx context.Context) ([]RouteSummary, error) {
	const q = `SELECT r.id, s.name, d.name, r.distance
	           FROM routes r
	           JOIN airports s ON s.id = r.source_id
	           JOIN airports d ON d.id = r.destination_id
	           ORDER BY s.name, d.name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RouteSummary, 0)
	for rows.Next() {
		var s RouteSummary
		if err := rows.Scan(&s.ID, &s.Source, &s.Destination, &s.Distance); err != nil {
			return nil, err
		}
		s.FullRoute = fmt.Sprintf("%s -> %s", s.Source, s.Destination)
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetRoute returns the detail projection with both airports nested.
func (r *RouteRepo) GetRoute(ctx context.Context, id uint64) (*RouteDetail, error) {
	const q = `SELECT r.id, r.distance,
	                  s.id, s.name, s.closest_big_city, s.image_path,
	                  d.id, d.name, d.closest_big_city, d.image_path
	           FROM routes r
	           JOIN airports s ON s.id = r.source_id
	           JOIN airports d ON d.id = r.destination_id
	           WHERE r.id = ?`
	var det RouteDetail
	var src, dst model.Airport
	var srcImg, dstImg sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&det.ID, &det.Distance,
		&src.ID, &src.Name, &src.ClosestBigCity, &srcImg,
		&dst.ID, &dst.Name, &dst.ClosestBigCity, &dstImg,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	if srcImg.Valid {
		v := srcImg.String
		src.ImagePath = &v
	}
	if dstImg.Valid {
		v := dstImg.String
		dst.ImagePath = &v
	}
	det.Source = airportView(src)
	det.Destination = airportView(dst)
	det.FullRoute = fmt.Sprintf("%s -> %s", src.Name, dst.Name)
	return &det, nil
}
