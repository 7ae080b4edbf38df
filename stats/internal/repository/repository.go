package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/firebase-auth/pkg/kafka"
	"github.com/Astemirdum/firebase-auth/stats/internal/model"
)

type Repository interface {
	GetStats(ctx context.Context, filter model.StatsFilter) (model.StatsInfo, error)
	SaveEvent(ctx context.Context, event kafka.EventAuth) error
}

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const eventsTableName = `auth_events`

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func insertEventQuery(event kafka.EventAuth) (string, []interface{}, error) {
	return qb.Insert(eventsTableName).
		Columns("id", "timestamp", "operation", "email", "success", "error_message").
		Values(event.ID, event.Timestamp, event.Operation, event.Email, event.Success, event.ErrorMessage).
		ToSql()
}

func statsQuery(filter model.StatsFilter) (string, []interface{}, error) {
	q := qb.Select(
		"operation",
		"count(*) as total",
		"count(*) filter (where success) as succeeded",
		"count(*) filter (where not success) as failed",
		"max(timestamp) as last_event",
	).
		From(eventsTableName).
		GroupBy("operation").
		OrderBy("operation")
	if filter.Operation != "" {
		q = q.Where(sq.Eq{"operation": filter.Operation})
	}
	return q.ToSql()
}

// SaveEvent stores one event. Redelivered events are ignored.
func (r *repository) SaveEvent(ctx context.Context, event kafka.EventAuth) error {
	query, args, err := insertEventQuery(event)
	if err != nil {
		return err
	}
	if _, err = r.db.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			r.log.Debug("duplicate event", zap.String("id", event.ID))
			return nil
		}
		return errors.Wrap(err, "insert event")
	}
	return nil
}

func (r *repository) GetStats(ctx context.Context, filter model.StatsFilter) (model.StatsInfo, error) {
	query, args, err := statsQuery(filter)
	if err != nil {
		return model.StatsInfo{}, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("GetStats", zap.String("q", query), zap.Any("args", args))
		return model.StatsInfo{}, err
	}
	defer rows.Close()
	stats, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.OperationStats])
	if err != nil {
		return model.StatsInfo{}, errors.Wrap(err, "pgx.CollectRows")
	}
	return model.StatsInfo{Data: stats}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
