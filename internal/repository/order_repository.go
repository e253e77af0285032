// Package repository: orders and their tickets. An order and all of
// its tickets are written in one transaction; the tickets' unique
// (flight, row, seat) key is the arbiter under concurrent callers.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/airport-booking/internal/model"
)

// ErrOrderNotFound covers both an absent order and an order owned by a
// different user; the two are deliberately indistinguishable.
var ErrOrderNotFound = errors.New("order not found")

// TicketRequest is one requested seat within an order.
type TicketRequest struct {
	FlightID uint64 `json:"flight_id"`
	Row      uint32 `json:"row"`
	Seat     uint32 `json:"seat"`
}

// OrderRepo manages orders and their tickets.
type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying sql.DB.
func (r *OrderRepo) DB() *sql.DB { return r.db }

// CreateWithTickets persists an order and every requested ticket
// atomically. Tickets are inserted in request order; the first one
// that collides with an existing (flight, row, seat) aborts the whole
// transaction with a SeatTakenError, leaving no order and no tickets
// behind. On success the returned order carries the created_at the
// database assigned at commit time and the tickets keep request order.
//
// All requests are assumed to be pre-validated against the airplane
// grid; this method only arbitrates seat uniqueness.
func (r *OrderRepo) CreateWithTickets(ctx context.Context, userID uint64, reqs []TicketRequest) (model.Order, []model.Ticket, error) {
	var order model.Order
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return order, nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `INSERT INTO orders (user_id) VALUES (?)`, userID)
	if err != nil {
		return order, nil, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return order, nil, err
	}
	order.ID = uint64(orderID)
	order.UserID = userID

	tickets := make([]model.Ticket, 0, len(reqs))
	for _, req := range reqs {
		ins, err := tx.ExecContext(ctx,
			"INSERT INTO tickets (`row`, seat, flight_id, order_id) VALUES (?,?,?,?)",
			req.Row, req.Seat, req.FlightID, order.ID)
		if err != nil {
			if isDuplicateKey(err) {
				return model.Order{}, nil, &SeatTakenError{FlightID: req.FlightID, Row: req.Row, Seat: req.Seat}
			}
			return model.Order{}, nil, err
		}
		tid, err := ins.LastInsertId()
		if err != nil {
			return model.Order{}, nil, err
		}
		tickets = append(tickets, model.Ticket{
			ID:       uint64(tid),
			Row:      req.Row,
			Seat:     req.Seat,
			FlightID: req.FlightID,
			OrderID:  order.ID,
		})
	}

	// Read back the DB-assigned creation timestamp before committing so
	// the caller never sees a zero created_at.
	if err := tx.QueryRowContext(ctx,
		`SELECT created_at FROM orders WHERE id = ?`, order.ID).Scan(&order.CreatedAt); err != nil {
		return model.Order{}, nil, err
	}

	if err := tx.Commit(); err != nil {
		return model.Order{}, nil, err
	}
	committed = true
	return order, tickets, nil
}

// TicketView is a ticket decorated with flight context for display.
type TicketView struct {
	ID            uint64    `json:"id"`
	Row           uint32    `json:"row"`
	Seat          uint32    `json:"seat"`
	FlightID      uint64    `json:"flight_id"`
	Route         string    `json:"route"`
	DepartureTime time.Time `json:"departure_time"`
}

// OrderView is an order with its tickets, as returned by the list and
// retrieve endpoints.
type OrderView struct {
	ID        uint64       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Tickets   []TicketView `json:"tickets"`
}

// ListByUser returns one page of the user's orders, newest first,
// along with the total number of orders the user owns.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]OrderView, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]OrderView, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var o OrderView
		if err := rows.Scan(&o.ID, &o.CreatedAt); err != nil {
			return nil, 0, err
		}
		o.Tickets = []TicketView{}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(orders) == 0 {
		return orders, total, nil
	}

	// Fetch tickets for the whole page in one query.
	ids := make([]interface{}, 0, len(orders))
	placeholders := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		placeholders = append(placeholders, "?")
	}
	ticketQ := "SELECT t.order_id, t.id, t.`row`, t.seat, t.flight_id, s.name, d.name, f.departure_time" +
		" FROM tickets t" +
		" JOIN flights f ON f.id = t.flight_id" +
		" JOIN routes rt ON rt.id = f.route_id" +
		" JOIN airports s ON s.id = rt.source_id" +
		" JOIN airports d ON d.id = rt.destination_id" +
		" WHERE t.order_id IN (" + strings.Join(placeholders, ",") + ")" +
		" ORDER BY t.order_id, t.id"
	trows, err := r.db.QueryContext(ctx, ticketQ, ids...)
	if err != nil {
		return nil, 0, err
	}
	defer trows.Close()
	for trows.Next() {
		var orderID uint64
		var tv TicketView
		var srcName, dstName string
		if err := trows.Scan(&orderID, &tv.ID, &tv.Row, &tv.Seat, &tv.FlightID, &srcName, &dstName, &tv.DepartureTime); err != nil {
			return nil, 0, err
		}
		tv.Route = fmt.Sprintf("%s -> %s", srcName, dstName)
		if idx, ok := index[orderID]; ok {
			orders[idx].Tickets = append(orders[idx].Tickets, tv)
		}
	}
	if err := trows.Err(); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// GetByIDForUser returns one of the user's orders with its tickets.
// Orders belonging to other users surface as ErrOrderNotFound, the
// same as orders that do not exist.
func (r *OrderRepo) GetByIDForUser(ctx context.Context, orderID, userID uint64) (*OrderView, error) {
	var o OrderView
	err := r.db.QueryRowContext(ctx,
		`SELECT id, created_at FROM orders WHERE id = ? AND user_id = ?`, orderID, userID).
		Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	o.Tickets = []TicketView{}

	const q = "SELECT t.id, t.`row`, t.seat, t.flight_id, s.name, d.name, f.departure_time" +
		" FROM tickets t" +
		" JOIN flights f ON f.id = t.flight_id" +
		" JOIN routes rt ON rt.id = f.route_id" +
		" JOIN airports s ON s.id = rt.source_id" +
		" JOIN airports d ON d.id = rt.destination_id" +
		" WHERE t.order_id = ? ORDER BY t.id"
	rows, err := r.db.QueryContext(ctx, q, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var tv TicketView
		var srcName, dstName string
		if err := rows.Scan(&tv.ID, &tv.Row, &tv.Seat, &tv.FlightID, &srcName, &dstName, &tv.DepartureTime); err != nil {
			return nil, err
		}
		tv.Route = fmt.Sprintf("%s -> %s", srcName, dstName)
		o.Tickets = append(o.Tickets, tv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}
