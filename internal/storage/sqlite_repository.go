package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"focusflow/internal/alert"
	"focusflow/internal/model"
)

const (
	sqliteDayLayout  = "2006-01-02"
	sqliteTimeLayout = time.RFC3339Nano

	alertSettingsID = "alert-settings"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in model.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, tags, notes, persistent_notes, start_time, end_time, weight, completed, not_completed, reassign, repeat_again, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, model.JoinTags(in.Tags), in.Notes, in.PersistentNotes,
		in.StartTime, in.EndTime, in.Weight,
		boolInt(in.Completed), boolInt(in.NotCompleted), boolInt(in.Reassign),
		nullInt(in.RepeatAgain), nullDay(in.Date), mustTime(time.Now()),
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, tags, notes, persistent_notes, start_time, end_time, weight, completed, not_completed, reassign, repeat_again, date
		FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in model.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, tags = ?, notes = ?, persistent_notes = ?, start_time = ?, end_time = ?, weight = ?, completed = ?, not_completed = ?, reassign = ?, repeat_again = ?, date = ?
		WHERE id = ?`,
		in.Title, model.JoinTags(in.Tags), in.Notes, in.PersistentNotes,
		in.StartTime, in.EndTime, in.Weight,
		boolInt(in.Completed), boolInt(in.NotCompleted), boolInt(in.Reassign),
		nullInt(in.RepeatAgain), nullDay(in.Date), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// DeleteTasksByTitle removes every record sharing a title, which is how
// a habit and its whole history are dropped at once.
func (r *SQLiteRepository) DeleteTasksByTitle(ctx context.Context, title string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE title = ?`, title)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error) {
	query := `SELECT id, title, tags, notes, persistent_notes, start_time, end_time, weight, completed, not_completed, reassign, repeat_again, date FROM tasks`
	clauses := make([]string, 0, 4)
	args := make([]any, 0, 6)
	if filter.Day != nil {
		clauses = append(clauses, "date = ?")
		args = append(args, filter.Day.Format(sqliteDayLayout))
	}
	if filter.From != nil {
		clauses = append(clauses, "date >= ?")
		args = append(args, filter.From.Format(sqliteDayLayout))
	}
	if filter.To != nil {
		clauses = append(clauses, "date <= ?")
		args = append(args, filter.To.Format(sqliteDayLayout))
	}
	if filter.Title != "" {
		clauses = append(clauses, "title = ?")
		args = append(args, filter.Title)
	}
	if filter.Repeating != nil {
		if *filter.Repeating {
			clauses = append(clauses, "repeat_again IS NOT NULL")
		} else {
			clauses = append(clauses, "repeat_again IS NULL")
		}
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY date ASC, created_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetAlertSettings(ctx context.Context) (alert.Settings, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT interval_minutes, target, counter, state, started_at
		FROM alert_settings WHERE id = ?`, alertSettingsID)

	var out alert.Settings
	var state string
	var started sql.NullString
	if err := row.Scan(&out.Interval, &out.Target, &out.Counter, &state, &started); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return alert.Settings{}, ErrNotFound
		}
		return alert.Settings{}, err
	}
	out.State = alert.State(state)
	startedAt, err := parseNullableTime(started)
	if err != nil {
		return alert.Settings{}, err
	}
	out.StartedAt = startedAt
	return out, nil
}

func (r *SQLiteRepository) SaveAlertSettings(ctx context.Context, in alert.Settings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO alert_settings (id, interval_minutes, target, counter, state, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE
		SET interval_minutes = excluded.interval_minutes, target = excluded.target,
		    counter = excluded.counter, state = excluded.state, started_at = excluded.started_at`,
		alertSettingsID, in.Interval, in.Target, in.Counter, string(in.State), nullTime(in.StartedAt),
	)
	return err
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func nullDay(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.Format(sqliteDayLayout)
}

func parseNullableDay(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteDayLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var out model.Task
	var tags string
	var completed, notCompleted, reassign int
	var repeat sql.NullInt64
	var date sql.NullString
	if err := s.Scan(&out.ID, &out.Title, &tags, &out.Notes, &out.PersistentNotes,
		&out.StartTime, &out.EndTime, &out.Weight,
		&completed, &notCompleted, &reassign, &repeat, &date); err != nil {
		return model.Task{}, err
	}
	out.Tags = model.ParseTags(tags)
	out.Completed = completed == 1
	out.NotCompleted = notCompleted == 1
	out.Reassign = reassign == 1
	if repeat.Valid {
		v := int(repeat.Int64)
		out.RepeatAgain = &v
	}
	day, err := parseNullableDay(date)
	if err != nil {
		return model.Task{}, err
	}
	out.Date = day
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
