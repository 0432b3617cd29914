package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"growthos/internal/task"
)

type TaskRepo struct {
	db *sql.DB
}

var _ task.Repo = (*TaskRepo)(nil)

const taskColumns = `id, title, category, frequency, scheduled_date, priority, status,
	completion_note, time_spent, completed_at, created_at, updated_at`

func (r *TaskRepo) Create(t task.Task) (task.Task, error) {
	now := time.Now()
	t.ID = uuid.NewString()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := r.db.Exec(`INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Category, string(t.Frequency), t.ScheduledDate,
		string(t.Priority), string(t.Status), t.CompletionNote, t.TimeSpent,
		nullTime(t.CompletedAt), formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
	if err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func (r *TaskRepo) Get(id string) (task.Task, error) {
	row := r.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

func (r *TaskRepo) Update(t task.Task) (task.Task, error) {
	t.UpdatedAt = time.Now()
	res, err := r.db.Exec(`UPDATE tasks SET title = ?, category = ?, frequency = ?,
		scheduled_date = ?, priority = ?, status = ?, completion_note = ?,
		time_spent = ?, completed_at = ?, updated_at = ? WHERE id = ?`,
		t.Title, t.Category, string(t.Frequency), t.ScheduledDate,
		string(t.Priority), string(t.Status), t.CompletionNote, t.TimeSpent,
		nullTime(t.CompletedAt), formatTime(t.UpdatedAt), t.ID)
	if err != nil {
		return task.Task{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return task.Task{}, task.ErrNotFound
	}
	return t, nil
}

func (r *TaskRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return task.ErrNotFound
	}
	return nil
}

func (r *TaskRepo) ListAll() ([]task.Task, error) {
	rows, err := r.db.Query(`SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TaskRepo) ExistsByTitle(title, excludeID string) (bool, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(1) FROM tasks WHERE title = ? AND id != ?`,
		title, excludeID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (task.Task, error) {
	var t task.Task
	var frequency, priority, status string
	var completedAt sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&t.ID, &t.Title, &t.Category, &frequency, &t.ScheduledDate,
		&priority, &status, &t.CompletionNote, &t.TimeSpent,
		&completedAt, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, err
	}

	t.Frequency = task.Frequency(frequency)
	t.Priority = task.Priority(priority)
	t.Status = task.Status(status)
	if completedAt.Valid {
		ts, err := time.Parse(time.RFC3339Nano, completedAt.String)
		if err != nil {
			return task.Task{}, err
		}
		t.CompletedAt = &ts
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return task.Task{}, err
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}
