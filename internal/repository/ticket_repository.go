package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrTicketNotFound covers both an absent ticket and a ticket owned by
// another user, mirroring ErrOrderNotFound.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketRepo reads tickets through their owning orders. Tickets are
// only ever written via OrderRepo.CreateWithTickets.
type TicketRepo struct {
	db *sql.DB
}

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

const ticketSelect = "SELECT t.id, t.`row`, t.seat, t.flight_id, s.name, d.name, f.departure_time" +
	" FROM tickets t" +
	" JOIN orders o ON o.id = t.order_id" +
	" JOIN flights f ON f.id = t.flight_id" +
	" JOIN routes rt ON rt.id = f.route_id" +
	" JOIN airports s ON s.id = rt.source_id" +
	" JOIN airports d ON d.id = rt.destination_id"

// ListByUser returns one page of the caller's tickets, newest first,
// with the total count of tickets the caller owns.
func (r *TicketRepo) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]TicketView, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tickets t JOIN orders o ON o.id = t.order_id WHERE o.user_id = ?`,
		userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := ticketSelect + " WHERE o.user_id = ? ORDER BY t.id DESC LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]TicketView, 0)
	for rows.Next() {
		var tv TicketView
		var srcName, dstName string
		if err := rows.Scan(&tv.ID, &tv.Row, &tv.Seat, &tv.FlightID, &srcName, &dstName, &tv.DepartureTime); err != nil {
			return nil, 0, err
		}
		tv.Route = fmt.Sprintf("%s -> %s", srcName, dstName)
		out = append(out, tv)
	}
	return out, total, rows.Err()
}

// GetByIDForUser returns one of the caller's tickets. Tickets owned by
// other users surface as ErrTicketNotFound.
func (r *TicketRepo) GetByIDForUser(ctx context.Context, ticketID, userID uint64) (*TicketView, error) {
	q := ticketSelect + " WHERE t.id = ? AND o.user_id = ?"
	var tv TicketView
	var srcName, dstName string
	err := r.db.QueryRowContext(ctx, q, ticketID, userID).
		Scan(&tv.ID, &tv.Row, &tv.Seat, &tv.FlightID, &srcName, &dstName, &tv.DepartureTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	tv.Route = fmt.Sprintf("%s -> %s", srcName, dstName)
	return &tv, nil
}
