package sqlite

import (
	"database/sql"
	"errors"

	"growthos/internal/ledger"
)

type LedgerRepo struct {
	db *sql.DB
}

var _ ledger.Repo = (*LedgerRepo)(nil)

func (r *LedgerRepo) Upsert(taskID, date string, completed bool) (ledger.Record, error) {
	_, err := r.db.Exec(`INSERT INTO completions (task_id, date, completed)
		VALUES (?, ?, ?)
		ON CONFLICT (task_id, date) DO UPDATE SET completed = excluded.completed`,
		taskID, date, boolInt(completed))
	if err != nil {
		return ledger.Record{}, err
	}
	return ledger.Record{TaskID: taskID, Date: date, Completed: completed}, nil
}

func (r *LedgerRepo) FindByDate(date string) ([]ledger.Record, error) {
	return r.query(`SELECT task_id, date, completed FROM completions WHERE date = ?`, date)
}

func (r *LedgerRepo) FindByTaskAndDate(taskID, date string) (ledger.Record, error) {
	var rec ledger.Record
	var completed int
	err := r.db.QueryRow(`SELECT task_id, date, completed FROM completions
		WHERE task_id = ? AND date = ?`, taskID, date).
		Scan(&rec.TaskID, &rec.Date, &completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.Record{}, ledger.ErrNotFound
		}
		return ledger.Record{}, err
	}
	rec.Completed = completed != 0
	return rec, nil
}

func (r *LedgerRepo) FindInRange(from, to string) ([]ledger.Record, error) {
	return r.query(`SELECT task_id, date, completed FROM completions
		WHERE date >= ? AND date <= ?`, from, to)
}

func (r *LedgerRepo) DeleteAllForTask(taskID string) error {
	_, err := r.db.Exec(`DELETE FROM completions WHERE task_id = ?`, taskID)
	return err
}

func (r *LedgerRepo) query(q string, args ...any) ([]ledger.Record, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ledger.Record{}
	for rows.Next() {
		var rec ledger.Record
		var completed int
		if err := rows.Scan(&rec.TaskID, &rec.Date, &completed); err != nil {
			return nil, err
		}
		rec.Completed = completed != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
