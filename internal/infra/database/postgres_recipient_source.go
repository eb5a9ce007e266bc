package database

import (
	"context"
	"fmt"

	"promo_broadcast_bot/internal/domain/recipient"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// PostgresRecipientSource reads one identifier column from every row of a table.
type PostgresRecipientSource struct {
	dsn     string
	table   string
	idField string
	logger  *logrus.Entry
}

func NewPostgresRecipientSource(dsn, table, idField string, logger *logrus.Entry) *PostgresRecipientSource {
	return &PostgresRecipientSource{
		dsn:     dsn,
		table:   table,
		idField: idField,
		logger:  logger.WithFields(logrus.Fields{"source": "postgres", "table": table}),
	}
}

func (s *PostgresRecipientSource) query() string {
	return fmt.Sprintf("SELECT %s FROM %s", pq.QuoteIdentifier(s.idField), pq.QuoteIdentifier(s.table))
}

func (s *PostgresRecipientSource) Resolve(ctx context.Context) ([]recipient.ID, error) {
	db, err := NewPostgresConnection(ctx, s.dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, s.query())
	if err != nil {
		return nil, fmt.Errorf("error listing recipients from %s: %w", s.table, err)
	}
	defer rows.Close()

	values := make([]any, 0)
	for rows.Next() {
		var raw any
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("error scanning recipient row: %w", err)
		}
		if b, ok := raw.([]byte); ok { // text and numeric columns
			raw = string(b)
		}
		values = append(values, raw)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipient rows: %w", err)
	}

	ids := recipient.CoerceAll(values, s.logger)
	s.logger.WithFields(logrus.Fields{"rows": len(values), "valid": len(ids)}).Info("Recipient IDs loaded from PostgreSQL")
	return ids, nil
}
