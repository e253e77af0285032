package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/airport-booking/internal/model"
)

// CrewRepo manages flight personnel records.
type CrewRepo struct {
	db *sql.DB
}

func NewCrewRepo(db *sql.DB) *CrewRepo { return &CrewRepo{db: db} }

// CreateCrew inserts a crew member.
func (r *CrewRepo) CreateCrew(ctx context.Context, c *model.Crew) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO crews (first_name, last_name) VALUES (?,?)`,
		c.FirstName, c.LastName)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// CrewView adds the rendered full name to a crew record.
type CrewView struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

// ListCrews returns all crew members ordered by last then first name.
func (r *CrewRepo) ListCrews(ctx context.Context) ([]CrewView, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, first_name, last_name FROM crews ORDER BY last_name, first_name`)
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

// CountByIDs returns how many of the given crew ids exist. Used to
// verify a flight's crew assignment before insert.
func (r *CrewRepo) CountByIDs(ctx context.Context, ids []uint64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `SELECT COUNT(*) FROM crews WHERE id IN (`
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ")"
	var n int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}
