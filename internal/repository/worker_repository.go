package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/shift-roster-api/internal/models"
)

// weekdayColumnPrefixes is indexed by time.Weekday.
var weekdayColumnPrefixes = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

var workerSelectColumns = buildWorkerColumns()

func buildWorkerColumns() string {
	cols := []string{"id", "username", "first_name", "last_name", "department", "employment_type"}
	for _, day := range weekdayColumnPrefixes {
		cols = append(cols, day+"_off", day+"_start_time", day+"_end_time")
	}
	return strings.Join(cols, ", ")
}

// WorkerRepository reads worker profiles. Profiles are maintained elsewhere.
type WorkerRepository struct {
	db *sqlx.DB
}

// NewWorkerRepository constructs the repository.
func NewWorkerRepository(db *sqlx.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

func (r *WorkerRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// ListByDepartment returns every worker of the department in id order.
func (r *WorkerRepository) ListByDepartment(ctx context.Context, department string) ([]models.WorkerProfile, error) {
	query := `SELECT ` + workerSelectColumns + ` FROM worker_profiles WHERE department = $1 ORDER BY id ASC`
	rows, err := r.db.QueryxContext(ctx, query, department)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer rows.Close()

	var workers []models.WorkerProfile
	for rows.Next() {
		worker, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		workers = append(workers, worker)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workers: %w", err)
	}
	return workers, nil
}

// Exists reports whether a worker with id is stored.
func (r *WorkerRepository) Exists(ctx context.Context, exec sqlx.ExtContext, id int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM worker_profiles WHERE id = $1)`
	var exists bool
	if err := sqlx.GetContext(ctx, r.exec(exec), &exists, query, id); err != nil {
		return false, fmt.Errorf("check worker %d: %w", id, err)
	}
	return exists, nil
}

func scanWorker(rows *sqlx.Rows) (models.WorkerProfile, error) {
	var (
		worker         models.WorkerProfile
		employmentType sql.NullString
		off            [7]sql.NullBool
		start, end     [7]sql.NullString
	)
	dest := []interface{}{&worker.ID, &worker.Username, &worker.FirstName, &worker.LastName, &worker.Department, &employmentType}
	for day := range weekdayColumnPrefixes {
		dest = append(dest, &off[day], &start[day], &end[day])
	}
	if err := rows.Scan(dest...); err != nil {
		return worker, fmt.Errorf("scan worker: %w", err)
	}

	worker.EmploymentType = models.EmploymentType(employmentType.String)
	for day := range weekdayColumnPrefixes {
		worker.Weekly[day] = models.WeekdaySchedule{
			Off:   off[day].Valid && off[day].Bool,
			Start: nullableString(start[day]),
			End:   nullableString(end[day]),
		}
	}
	return worker, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
