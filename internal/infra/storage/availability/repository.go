package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/pgerrors"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const tableName = "advisor_availability"

var columns = []string{
	"id",
	"advisor_id",
	"day_of_week",
	"start_time",
	"end_time",
	"created_at",
}

// Repository репозиторий недельного расписания консультантов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByAdvisor возвращает все записи расписания консультанта, отсортированные по дню недели
func (r *Repository) GetByAdvisor(ctx context.Context, advisorID string) ([]*domain.AvailabilityEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"advisor_id": advisorID}).
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAdvisor - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAdvisor - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.AvailabilityEntry, 0, 7)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByAdvisor - scan entry: %w", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByAdvisor - rows error: %w", ErrScanRow, err)
	}

	return entries, nil
}

// GetByAdvisorAndDay возвращает запись расписания на конкретный день недели.
// Если записи нет, возвращает ErrAvailabilityNotFound
func (r *Repository) GetByAdvisorAndDay(ctx context.Context, advisorID string, day time.Weekday) (*domain.AvailabilityEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"advisor_id": advisorID, "day_of_week": int(day)}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAdvisorAndDay - build select query: %w", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAdvisorAndDay - scan entry: %w", ErrScanRow, err)
	}

	return entry, nil
}

// DeleteByAdvisor удаляет всё расписание консультанта, возвращает количество удалённых записей
func (r *Repository) DeleteByAdvisor(ctx context.Context, advisorID string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"advisor_id": advisorID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByAdvisor - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByAdvisor - execute delete: %w", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByAdvisor - get rows affected: %w", ErrExecQuery, err)
	}

	return deleted, nil
}

// CreateBatch вставляет записи одним запросом. Пустой список ничего не делает
func (r *Repository) CreateBatch(ctx context.Context, entries []*domain.AvailabilityEntry) error {
	if len(entries) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert(tableName).
		Columns("advisor_id", "day_of_week", "start_time", "end_time")
	for _, e := range entries {
		builder = builder.Values(e.AdvisorID, int(e.DayOfWeek), e.StartTime, e.EndTime)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %w", ErrBuildQuery, err)
	}

	_, err = executor.ExecContext(ctx, query, args...)
	if pgerrors.IsUniqueViolation(err) {
		return fmt.Errorf("%w: CreateBatch: %w", ErrDayAlreadyExists, err)
	}
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.AvailabilityEntry, error) {
	var (
		entry     domain.AvailabilityEntry
		day       int
		createdAt sql.NullTime
	)

	if err := row.Scan(
		&entry.ID,
		&entry.AdvisorID,
		&day,
		&entry.StartTime,
		&entry.EndTime,
		&createdAt,
	); err != nil {
		return nil, err
	}

	entry.DayOfWeek = time.Weekday(day)
	entry.CreatedAt = createdAt.Time

	return &entry, nil
}
