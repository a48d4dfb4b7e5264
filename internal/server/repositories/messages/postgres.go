// Package messages provides the PostgreSQL-backed repository for the
// append-only chat feed.
package messages

import (
	"context"
	"database/sql"
	"fmt"

	"cofre/internal/dbx"
	"cofre/internal/server/models"
)

// PostgresRepository implements message storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Append inserts one chat row. The caller guarantees the message has
// non-empty text or an attachment reference before calling; the insert is a
// single statement, so a failure never leaves a partial row behind.
func (r *PostgresRepository) Append(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO mensagens (autor, texto, data, arquivo_url)
		VALUES ($1, $2, $3, $4);
	`
	ref := sql.NullString{String: msg.AttachmentRef, Valid: msg.AttachmentRef != ""}
	if _, err := r.db.ExecContext(ctx, query, msg.Author, msg.Text, msg.SentAt, ref); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Recent returns up to limit rows ordered by insertion identifier
// descending (most recent first). Callers needing chronological order
// reverse the result themselves.
func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]*models.Message, error) {
	query := `
		SELECT id, autor, texto, data, arquivo_url FROM mensagens
		ORDER BY id DESC LIMIT $1;
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select messages: %w", err)
	}
	defer rows.Close()

	var result []*models.Message
	for rows.Next() {
		var item models.Message
		var ref sql.NullString
		if err := rows.Scan(&item.ID, &item.Author, &item.Text, &item.SentAt, &ref); err != nil {
			return nil, err
		}
		item.AttachmentRef = ref.String
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return result, nil
}
