// Package repository: flight persistence. Flights join routes,
// airplanes and crew; the list projection flattens those to strings
// while the detail projection nests the full objects and the set of
// already-sold seats.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/airport-booking/internal/model"
)

// ErrFlightNotFound indicates the flight row is absent.
var ErrFlightNotFound = errors.New("flight not found")

// ErrCrewNotFound indicates one or more assigned crew ids are absent.
var ErrCrewNotFound = errors.New("crew member not found")

// FlightRepo manages flights and their crew assignments.
type FlightRepo struct {
	db *sql.DB
}

func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

// DB exposes the underlying sql.DB for cross-repository transactions.
func (r *FlightRepo) DB() *sql.DB { return r.db }

// CreateFlight inserts a flight together with its crew assignments in
// one transaction. The route and airplane must exist; missing
// references surface as ErrRouteNotFound / ErrAirplaneNotFound and
// unknown crew ids as ErrCrewNotFound.
func (r *FlightRepo) CreateFlight(ctx context.Context, f *model.Flight, crewIDs []uint64) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM routes WHERE id=?)`, f.RouteID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrRouteNotFound
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM airplanes WHERE id=?)`, f.AirplaneID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrAirplaneNotFound
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time) VALUES (?,?,?,?)`,
		f.RouteID, f.AirplaneID, f.DepartureTime.UTC(), f.ArrivalTime.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)

	for _, crewID := range crewIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO flight_crew (flight_id, crew_id) VALUES (?,?)`, f.ID, crewID); err != nil {
			if isForeignKeyViolation(err) {
				return ErrCrewNotFound
			}
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// FlightFilter narrows flight listings. Zero values mean "no filter";
// the date fields match the calendar date of the respective timestamp.
type FlightFilter struct {
	SourceID      uint64
	DestinationID uint64
	DepartureDate *time.Time
	ArrivalDate   *time.Time
}

// FlightSummary is the list projection: route rendered as
// "Source -> Destination", airplane flattened to its name.
type FlightSummary struct {
	ID            uint64    `json:"id"`
	Route         string    `json:"route"`
	Airplane      string    `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

// SeatRef identifies one sold seat on a flight.
type SeatRef struct {
	Row  uint32 `json:"row"`
	Seat uint32 `json:"seat"`
}

// FlightDetail nests the route (with airports), the airplane, the
// crew list and the seats already taken on this flight.
type FlightDetail struct {
	ID            uint64         `json:"id"`
	Route         RouteDetail    `json:"route"`
	Airplane      AirplaneDetail `json:"airplane"`
	Crew          []CrewView     `json:"crew"`
	DepartureTime time.Time      `json:"departure_time"`
	ArrivalTime   time.Time      `json:"arrival_time"`
	TakenSeats    []SeatRef      `json:"taken_seats"`
}

// ListFlights returns flight summaries matching the filter, ordered
// by departure then arrival time.
func (r *FlightRepo) ListFlights(ctx context.Context, filter FlightFilter) ([]FlightSummary, error) {
	query := `SELECT f.id, s.name, d.name, a.name, f.departure_time, f.arrival_time
	          FROM flights f
	          JOIN routes rt ON rt.id = f.route_id
	          JOIN airports s ON s.id = rt.source_id
	          JOIN airports d ON d.id = rt.destination_id
	          JOIN airplanes a ON a.id = f.airplane_id
	          WHERE 1=1`
	args := make([]interface{}, 0, 4)
	if filter.SourceID != 0 {
		query += ` AND rt.source_id = ?`
		args = append(args, filter.SourceID)
	}
	if filter.DestinationID != 0 {
		query += ` AND rt.destination_id = ?`
		args = append(args, filter.DestinationID)
	}
	if filter.DepartureDate != nil {
		query += ` AND DATE(f.departure_time) = ?`
		args = append(args, filter.DepartureDate.UTC().Format("2006-01-02"))
	}
	if filter.ArrivalDate != nil {
		query += ` AND DATE(f.arrival_time) = ?`
		args = append(args, filter.ArrivalDate.UTC().Format("2006-01-02"))
	}
	query += ` ORDER BY f.departure_time, f.arrival_time`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]FlightSummary, 0)
	for rows.Next() {
		var fs FlightSummary
		var srcName, dstName string
		if err := rows.Scan(&fs.ID, &srcName, &dstName, &fs.Airplane, &fs.DepartureTime, &fs.ArrivalTime); err != nil {
			return nil, err
		}
		fs.Route = fmt.Sprintf("%s -> %s", srcName, dstName)
		out = append(out, fs)
	}
	return out, rows.Err()
}

// GetFlight assembles the detail projection. Taken seats are computed
// by scanning this flight's tickets at read time, never cached.
func (r *FlightRepo) GetFlight(ctx context.Context, id uint64) (*FlightDetail, error) {
	const q = `SELECT f.id, f.departure_time, f.arrival_time,
	                  rt.id, rt.distance,
	                  s.id, s.name, s.closest_big_city, s.image_path,
	                  d.id, d.name, d.closest_big_city, d.image_path,
	                  a.id, a.name, a.` + "`rows`" + `, a.seats_in_row,
	                  t.id, t.name
	           FROM flights f
	           JOIN routes rt ON rt.id = f.route_id
	           JOIN airports s ON s.id = rt.source_id
	           JOIN airports d ON d.id = rt.destination_id
	           JOIN airplanes a ON a.id = f.airplane_id
	           JOIN airplane_types t ON t.id = a.airplane_type_id
	           WHERE f.id = ?`
	var det FlightDetail
	var src, dst model.Airport
	var srcImg, dstImg sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&det.ID, &det.DepartureTime, &det.ArrivalTime,
		&det.Route.ID, &det.Route.Distance,
		&src.ID, &src.Name, &src.ClosestBigCity, &srcImg,
		&dst.ID, &dst.Name, &dst.ClosestBigCity, &dstImg,
		&det.Airplane.ID, &det.Airplane.Name, &det.Airplane.Rows, &det.Airplane.SeatsInRow,
		&det.Airplane.AirplaneType.ID, &det.Airplane.AirplaneType.Name,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlightNotFound
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
	det.Route.Source = airportView(src)
	det.Route.Destination = airportView(dst)
	det.Route.FullRoute = fmt.Sprintf("%s -> %s", src.Name, dst.Name)
	det.Airplane.Capacity = det.Airplane.Rows * det.Airplane.SeatsInRow

	det.Crew, err = r.crewForFlight(ctx, id)
	if err != nil {
		return nil, err
	}
	det.TakenSeats, err = r.takenSeats(ctx, id)
	if err != nil {
		return nil, err
	}
	return &det, nil
}

func (r *FlightRepo) crewForFlight(ctx context.Context, flightID uint64) ([]CrewView, error) {
	const q = `SELECT c.id, c.first_name, c.last_name
	           FROM flight_crew fc
	           JOIN crews c ON c.id = fc.crew_id
	           WHERE fc.flight_id = ?
	           ORDER BY c.last_name, c.first_name`
	rows, err := r.db.QueryContext(ctx, q, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]CrewView, 0)
	for rows.Next() {
		var c model.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		out = append(out, CrewView{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, FullName: c.FullName()})
	}
	return out, rows.Err()
}

func (r *FlightRepo) takenSeats(ctx context.Context, flightID uint64) ([]SeatRef, error) {
	const q = "SELECT `row`, seat FROM tickets WHERE flight_id = ? ORDER BY `row`, seat"
	rows, err := r.db.QueryContext(ctx, q, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]SeatRef, 0)
	for rows.Next() {
		var s SeatRef
		if err := rows.Scan(&s.Row, &s.Seat); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// FlightBookingInfo is what order placement needs to know about a
// flight: the seat grid of its airplane and a route label for events.
type FlightBookingInfo struct {
	Rows       uint32
	SeatsInRow uint32
	Route      string
}

// BookingInfo returns the seat layout and route label of a flight.
// Order placement validates every requested seat against this grid;
// the grid is looked up fresh on every call.
func (r *FlightRepo) BookingInfo(ctx context.Context, flightID uint64) (FlightBookingInfo, error) {
	const q = "SELECT a.`rows`, a.seats_in_row, s.name, d.name" +
		" FROM flights f" +
		" JOIN airplanes a ON a.id = f.airplane_id" +
		" JOIN routes rt ON rt.id = f.route_id" +
		" JOIN airports s ON s.id = rt.source_id" +
		" JOIN airports d ON d.id = rt.destination_id" +
		" WHERE f.id = ?"
	var info FlightBookingInfo
	var srcName, dstName string
	err := r.db.QueryRowContext(ctx, q, flightID).Scan(&info.Rows, &info.SeatsInRow, &srcName, &dstName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return info, ErrFlightNotFound
		}
		return info, err
	}
	info.Route = fmt.Sprintf("%s -> %s", srcName, dstName)
	return info, nil
}
