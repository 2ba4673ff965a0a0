package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"memoflow/src/database"
	"memoflow/src/domain"

	"github.com/sirupsen/logrus"
)

const memoColumns = `id, title, content, category, tags, is_pinned, created_at, updated_at`

// MemoRepository implements domain.MemoRepository backed by PostgreSQL
type MemoRepository struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewMemoRepository creates a new memo repository
func NewMemoRepository(db *database.DB, logger *logrus.Logger) domain.MemoRepository {
	return &MemoRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new memo and assigns its ID
func (r *MemoRepository) Create(ctx context.Context, memo *domain.Memo) (*domain.Memo, error) {
	tagsJSON, err := encodeTags(memo.Tags)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO memos (title, content, category, tags, is_pinned, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err = r.db.QueryRowContext(ctx, query,
		memo.Title, memo.Content, memo.Category, tagsJSON,
		memo.IsPinned, memo.CreatedAt, memo.UpdatedAt,
	).Scan(&memo.ID)

	if err != nil {
		r.logger.WithError(err).Error("メモの作成に失敗")
		return nil, fmt.Errorf("failed to create memo: %w", err)
	}

	r.logger.WithField("memo_id", memo.ID).Info("メモを作成しました")
	return memo, nil
}

// GetByID retrieves a memo by ID
func (r *MemoRepository) GetByID(ctx context.Context, id int) (*domain.Memo, error) {
	query := `SELECT ` + memoColumns + ` FROM memos WHERE id = $1`

	memo, err := scanMemo(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("memo not found")
		}
		r.logger.WithError(err).WithField("memo_id", id).Error("メモの取得に失敗")
		return nil, fmt.Errorf("failed to get memo: %w", err)
	}

	return memo, nil
}

// List retrieves a page of memos and the total count for the same filter.
// 並び順は固定: ピン留めが先、各グループ内は新しい順
func (r *MemoRepository) List(ctx context.Context, filter domain.MemoFilter) ([]domain.Memo, int, error) {
	whereClause, args := BuildFilterClause(filter)

	countQuery := `SELECT COUNT(*) FROM memos` + whereClause

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.WithError(err).Error("メモ総数の取得に失敗")
		return nil, 0, fmt.Errorf("failed to count memos: %w", err)
	}

	argIndex := len(args) + 1
	selectQuery := `SELECT ` + memoColumns + ` FROM memos` + whereClause +
		` ORDER BY is_pinned DESC, created_at DESC` +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.db.QueryContext(ctx, selectQuery, args...)
	if err != nil {
		r.logger.WithError(err).Error("メモリストの取得に失敗")
		return nil, 0, fmt.Errorf("failed to get memos: %w", err)
	}
	defer rows.Close()

	memos := []domain.Memo{}
	for rows.Next() {
		memo, err := scanMemo(rows)
		if err != nil {
			r.logger.WithError(err).Error("メモのスキャンに失敗")
			return nil, 0, fmt.Errorf("failed to scan memo: %w", err)
		}
		memos = append(memos, *memo)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return memos, total, nil
}

// Update overwrites the mutable fields of a memo
func (r *MemoRepository) Update(ctx context.Context, id int, memo *domain.Memo) (*domain.Memo, error) {
	tagsJSON, err := encodeTags(memo.Tags)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE memos
		SET title = $1, content = $2, category = $3, tags = $4, is_pinned = $5, updated_at = $6
		WHERE id = $7
		RETURNING ` + memoColumns

	updated, err := scanMemo(r.db.QueryRowContext(ctx, query,
		memo.Title, memo.Content, memo.Category, tagsJSON,
		memo.IsPinned, memo.UpdatedAt, id,
	))

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("memo not found")
		}
		r.logger.WithError(err).WithField("memo_id", id).Error("メモの更新に失敗")
		return nil, fmt.Errorf("failed to update memo: %w", err)
	}

	r.logger.WithField("memo_id", id).Info("メモを更新しました")
	return updated, nil
}

// Delete removes a memo permanently
func (r *MemoRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM memos WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.WithError(err).WithField("memo_id", id).Error("メモの削除に失敗")
		return fmt.Errorf("failed to delete memo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("memo not found")
	}

	r.logger.WithField("memo_id", id).Info("メモを削除しました")
	return nil
}

// SetPinned updates the pin flag and refreshes updated_at
func (r *MemoRepository) SetPinned(ctx context.Context, id int, pinned bool) (*domain.Memo, error) {
	query := `
		UPDATE memos
		SET is_pinned = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + memoColumns

	memo, err := scanMemo(r.db.QueryRowContext(ctx, query, pinned, time.Now(), id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("memo not found")
		}
		r.logger.WithError(err).WithField("memo_id", id).Error("ピン留めの更新に失敗")
		return nil, fmt.Errorf("failed to set pin: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"memo_id": id,
		"pinned":  pinned,
	}).Info("ピン留めを更新しました")
	return memo, nil
}

// ListCategories returns the distinct categories in ascending order
func (r *MemoRepository) ListCategories(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT category FROM memos ORDER BY category ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.WithError(err).Error("カテゴリ一覧の取得に失敗")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return categories, nil
}

// BuildFilterClause builds the WHERE clause and arguments shared by the
// list and count queries. Returns an empty clause when no filter is set.
func BuildFilterClause(filter domain.MemoFilter) (string, []interface{}) {
	clause := ""
	var args []interface{}
	argIndex := 1

	if filter.Search != "" {
		clause += fmt.Sprintf(" WHERE (title ILIKE $%d OR content ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		argIndex++
	}

	if filter.Category != "" {
		if clause == "" {
			clause += fmt.Sprintf(" WHERE category = $%d", argIndex)
		} else {
			clause += fmt.Sprintf(" AND category = $%d", argIndex)
		}
		args = append(args, filter.Category)
	}

	return clause, args
}

// escapeLike escapes LIKE metacharacters so the search term matches as a
// literal substring.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanMemo scans a memo row, decoding the JSON-encoded tags column
func scanMemo(row rowScanner) (*domain.Memo, error) {
	var memo domain.Memo
	var tagsStr sql.NullString

	err := row.Scan(
		&memo.ID, &memo.Title, &memo.Content, &memo.Category,
		&tagsStr, &memo.IsPinned, &memo.CreatedAt, &memo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	memo.Tags, err = decodeTags(tagsStr)
	if err != nil {
		return nil, err
	}

	return &memo, nil
}

// encodeTags serializes tags as a JSON string for the tags column
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tags: %w", err)
	}
	return string(encoded), nil
}

// decodeTags deserializes the tags column, tolerating NULL
func decodeTags(tagsStr sql.NullString) ([]string, error) {
	if !tagsStr.Valid || tagsStr.String == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(tagsStr.String), &tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
