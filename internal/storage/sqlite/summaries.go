package sqlite

import (
	"database/sql"
	"errors"

	"growthos/internal/summary"
)

type SummaryStore struct {
	db *sql.DB
}

var _ summary.Store = (*SummaryStore)(nil)

const summaryColumns = `date, total_tasks, completed_tasks, completion_percentage, streak, longest_streak`

func (s *SummaryStore) FindByDate(dateKey string) (summary.Summary, error) {
	row := s.db.QueryRow(`SELECT `+summaryColumns+` FROM summaries WHERE date = ?`, dateKey)
	sum, err := scanSummary(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return summary.Summary{}, summary.ErrNotFound
		}
		return summary.Summary{}, err
	}
	return sum, nil
}

func (s *SummaryStore) FindInRange(from, to string) ([]summary.Summary, error) {
	return s.query(`SELECT `+summaryColumns+` FROM summaries
		WHERE date >= ? AND date <= ? ORDER BY date ASC`, from, to)
}

func (s *SummaryStore) FindAllDesc() ([]summary.Summary, error) {
	return s.query(`SELECT ` + summaryColumns + ` FROM summaries ORDER BY date DESC`)
}

func (s *SummaryStore) Upsert(sum summary.Summary) error {
	_, err := s.db.Exec(`INSERT INTO summaries (`+summaryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET
			total_tasks = excluded.total_tasks,
			completed_tasks = excluded.completed_tasks,
			completion_percentage = excluded.completion_percentage,
			streak = excluded.streak,
			longest_streak = excluded.longest_streak`,
		sum.Date, sum.TotalTasks, sum.CompletedTasks,
		sum.CompletionPercentage, sum.Streak, sum.LongestStreak)
	return err
}

func (s *SummaryStore) query(q string, args ...any) ([]summary.Summary, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []summary.Summary{}
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func scanSummary(row rowScanner) (summary.Summary, error) {
	var sum summary.Summary
	err := row.Scan(&sum.Date, &sum.TotalTasks, &sum.CompletedTasks,
		&sum.CompletionPercentage, &sum.Streak, &sum.LongestStreak)
	if err != nil {
		return summary.Summary{}, err
	}
	sum.ID = sum.Date
	return sum, nil
}
