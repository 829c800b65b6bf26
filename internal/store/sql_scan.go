package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Comraich/sortr-sub001/models"
)

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.GoogleID, &u.GithubID, &u.MicrosoftID, &u.Email, &u.DisplayName, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func scanLocation(row rowScanner) (models.Location, error) {
	var l models.Location
	err := row.Scan(&l.ID, &l.Name, &l.ParentID, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func scanBox(row rowScanner) (models.Box, error) {
	var b models.Box
	err := row.Scan(&b.ID, &b.Name, &b.Description, &b.LocationID, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func scanItem(row rowScanner) (models.Item, error) {
	var i models.Item
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.Category, &i.Quantity, &i.BoxID, &i.ImagePath, &i.ThumbnailPath, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

func scanItemExportRow(row rowScanner) (models.ItemExportRow, error) {
	var r models.ItemExportRow
	err := row.Scan(&r.ID, &r.Name, &r.Description, &r.Category, &r.Quantity, &r.BoxID, &r.ImagePath, &r.ThumbnailPath, &r.CreatedAt, &r.UpdatedAt, &r.BoxName, &r.LocationName)
	return r, err
}

func scanCategory(row rowScanner) (models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.Name, &c.CreatedAt)
	return c, err
}

func scanActivity(row rowScanner) (models.Activity, error) {
	var (
		a                 models.Activity
		changes, metadata []byte
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Action, &a.EntityType, &a.EntityID, &a.EntityName, &changes, &metadata, &a.CreatedAt); err != nil {
		return models.Activity{}, err
	}
	if len(changes) > 0 {
		a.Changes = json.RawMessage(changes)
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &a.Metadata); err != nil {
			return models.Activity{}, fmt.Errorf("decoding activity metadata: %w", err)
		}
	}
	return a, nil
}

func scanShare(row rowScanner) (models.Share, error) {
	var s models.Share
	err := row.Scan(&s.ID, &s.UserID, &s.SharedByUserID, &s.Kind, &s.ResourceRef.ID, &s.Permission, &s.CreatedAt)
	return s, err
}

func scanNotification(row rowScanner) (models.Notification, error) {
	var (
		n            models.Notification
		resourceType sql.NullString
		resourceID   sql.NullInt64
	)
	if err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &resourceType, &resourceID, &n.IsRead, &n.CreatedAt); err != nil {
		return models.Notification{}, err
	}
	if resourceType.Valid && resourceID.Valid {
		n.ResourceRef = &models.ResourceRef{Kind: models.ResourceKind(resourceType.String), ID: resourceID.Int64}
	}
	return n, nil
}

func scanComment(row rowScanner) (models.Comment, error) {
	var c models.Comment
	err := row.Scan(&c.ID, &c.UserID, &c.Kind, &c.ResourceRef.ID, &c.Body, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// queryList runs query and scans every row with scan.
func queryList[T any](ctx context.Context, q querier, query string, args []any, scan func(rowScanner) (T, error)) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		results = append(results, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return results, nil
}

func queryCount(ctx context.Context, q querier, query string, args []any) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n, nil
}

// execAffected runs a statement and returns the number of affected rows.
func execAffected(ctx context.Context, q querier, query string, args []any) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func marshalJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// nullableJSON maps an empty document to SQL NULL.
func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
