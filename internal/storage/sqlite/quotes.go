package sqlite

import (
	"database/sql"

	"github.com/google/uuid"

	"growthos/internal/quote"
)

type QuoteRepo struct {
	db *sql.DB
}

var _ quote.Repo = (*QuoteRepo)(nil)

func (r *QuoteRepo) Add(text string) (quote.Quote, error) {
	q := quote.Quote{ID: uuid.NewString(), QuoteText: text}
	if _, err := r.db.Exec(`INSERT INTO quotes (id, quote_text) VALUES (?, ?)`, q.ID, q.QuoteText); err != nil {
		return quote.Quote{}, err
	}
	return q, nil
}

func (r *QuoteRepo) ListAll() ([]quote.Quote, error) {
	rows, err := r.db.Query(`SELECT id, quote_text FROM quotes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []quote.Quote{}
	for rows.Next() {
		var q quote.Quote
		if err := rows.Scan(&q.ID, &q.QuoteText); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *QuoteRepo) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(1) FROM quotes`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
