package store

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/Comraich/sortr-sub001/models"
)

// psql renders $n placeholders for PostgreSQL.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	usersTable         = "users"
	locationsTable     = "locations"
	boxesTable         = "boxes"
	itemsTable         = "items"
	categoriesTable    = "categories"
	activitiesTable    = "activities"
	sharesTable        = "shares"
	notificationsTable = "notifications"
	commentsTable      = "comments"
)

var (
	userColumns         = []string{"id", "username", "password_hash", "google_id", "github_id", "microsoft_id", "email", "display_name", "is_admin", "created_at", "updated_at"}
	locationColumns     = []string{"id", "name", "parent_id", "created_at", "updated_at"}
	boxColumns          = []string{"id", "name", "description", "location_id", "created_at", "updated_at"}
	itemColumns         = []string{"id", "name", "description", "category", "quantity", "box_id", "image_path", "thumbnail_path", "created_at", "updated_at"}
	categoryColumns     = []string{"id", "name", "created_at"}
	activityColumns     = []string{"id", "user_id", "action", "entity_type", "entity_id", "entity_name", "changes", "metadata", "created_at"}
	shareColumns        = []string{"id", "user_id", "shared_by_user_id", "resource_type", "resource_id", "permission", "created_at"}
	notificationColumns = []string{"id", "user_id", "type", "message", "resource_type", "resource_id", "is_read", "created_at"}
	commentColumns      = []string{"id", "user_id", "resource_type", "resource_id", "body", "created_at", "updated_at"}
)

// Unique constraint names generated by PostgreSQL for the users table.
const (
	usersUsernameKey = "users_username_key"
	usersEmailKey    = "users_email_key"
)

// locationTreeLockKey names the advisory lock serializing parent changes.
const locationTreeLockKey int64 = 0x736f7274_6c6f63

// listResourceParticipants has no squirrel form because of the UNION.
const listResourceParticipants = `SELECT user_id FROM shares WHERE resource_type = $1 AND resource_id = $2
	UNION
	SELECT shared_by_user_id FROM shares WHERE resource_type = $1 AND resource_id = $2;`

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// buildSelectQuery renders a SELECT over table. A nil where selects every
// row; a nil page disables LIMIT/OFFSET.
func buildSelectQuery(ctx context.Context, table string, columns []string, where sq.Sqlizer, orderBy string, page *models.Page) (string, []any, error) {
	b := psql.Select(columns...).From(table)
	if where != nil {
		b = b.Where(where)
	}
	if orderBy != "" {
		b = b.OrderBy(orderBy)
	}
	if page != nil {
		p := page.Normalized()
		b = b.Limit(uint64(p.Limit)).Offset(uint64(p.Offset))
	}
	return toSQL(ctx, b)
}

func buildCountQuery(ctx context.Context, table string, where sq.Sqlizer) (string, []any, error) {
	b := psql.Select("COUNT(*)").From(table)
	if where != nil {
		b = b.Where(where)
	}
	return toSQL(ctx, b)
}

// buildLockLocationTreeQuery takes a lock released with the transaction.
func buildLockLocationTreeQuery(ctx context.Context) (string, []any, error) {
	return toSQL(ctx, psql.Select().Column(sq.Expr("pg_advisory_xact_lock(?)", locationTreeLockKey)))
}

func buildDeleteByIDQuery(ctx context.Context, table string, id int64) (string, []any, error) {
	return toSQL(ctx, psql.Delete(table).Where(sq.Eq{"id": id}))
}

func buildInsertUserQuery(ctx context.Context, u models.User) (string, []any, error) {
	return toSQL(ctx, psql.Insert(usersTable).
		Columns("username", "password_hash", "google_id", "github_id", "microsoft_id", "email", "display_name", "is_admin").
		Values(u.Username, u.PasswordHash, u.GoogleID, u.GithubID, u.MicrosoftID, u.Email, u.DisplayName, u.IsAdmin).
		Suffix(returning(userColumns)))
}

// providerColumn maps a provider to the users column holding its subject.
func providerColumn(p models.OAuthProvider) (string, error) {
	switch p {
	case models.ProviderGoogle:
		return "google_id", nil
	case models.ProviderGithub:
		return "github_id", nil
	case models.ProviderMicrosoft:
		return "microsoft_id", nil
	}
	return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, models.ErrUnknownProvider)
}

func buildLinkProviderQuery(ctx context.Context, userID int64, p models.OAuthProvider, subject string) (string, []any, error) {
	col, err := providerColumn(p)
	if err != nil {
		return "", nil, err
	}
	return toSQL(ctx, psql.Update(usersTable).
		Set(col, subject).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID}))
}

func buildSetAdminQuery(ctx context.Context, userID int64, isAdmin bool) (string, []any, error) {
	return toSQL(ctx, psql.Update(usersTable).
		Set("is_admin", isAdmin).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID}).
		Suffix(returning(userColumns)))
}

func buildInsertLocationQuery(ctx context.Context, l models.Location) (string, []any, error) {
	return toSQL(ctx, psql.Insert(locationsTable).
		Columns("name", "parent_id").
		Values(l.Name, l.ParentID).
		Suffix(returning(locationColumns)))
}

func buildUpdateLocationQuery(ctx context.Context, l models.Location) (string, []any, error) {
	return toSQL(ctx, psql.Update(locationsTable).
		Set("name", l.Name).
		Set("parent_id", l.ParentID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": l.ID}).
		Suffix(returning(locationColumns)))
}

func buildInsertBoxQuery(ctx context.Context, b models.Box) (string, []any, error) {
	return toSQL(ctx, psql.Insert(boxesTable).
		Columns("name", "description", "location_id").
		Values(b.Name, b.Description, b.LocationID).
		Suffix(returning(boxColumns)))
}

func buildUpdateBoxQuery(ctx context.Context, b models.Box) (string, []any, error) {
	return toSQL(ctx, psql.Update(boxesTable).
		Set("name", b.Name).
		Set("description", b.Description).
		Set("location_id", b.LocationID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": b.ID}).
		Suffix(returning(boxColumns)))
}

func boxFilterCondition(f models.BoxFilter) sq.Sqlizer {
	if f.LocationID == nil {
		return nil
	}
	return sq.Eq{"location_id": *f.LocationID}
}

func buildCountBoxesByLocationQuery(ctx context.Context) (string, []any, error) {
	return toSQL(ctx, psql.Select("location_id", "COUNT(*)").From(boxesTable).GroupBy("location_id"))
}

func buildOrphanItemsQuery(ctx context.Context, boxID int64) (string, []any, error) {
	return toSQL(ctx, psql.Update(itemsTable).
		Set("box_id", nil).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"box_id": boxID}))
}

// buildInsertItemsQuery renders one multi-row INSERT for items.
func buildInsertItemsQuery(ctx context.Context, items ...models.Item) (string, []any, error) {
	if len(items) == 0 {
		return "", nil, fmt.Errorf("%w: no items to insert", ErrBuildingSQLQuery)
	}
	b := psql.Insert(itemsTable).Columns("name", "description", "category", "quantity", "box_id", "image_path", "thumbnail_path")
	for _, i := range items {
		b = b.Values(i.Name, i.Description, i.Category, i.Quantity, i.BoxID, i.ImagePath, i.ThumbnailPath)
	}
	return toSQL(ctx, b.Suffix(returning(itemColumns)))
}

func buildUpdateItemQuery(ctx context.Context, i models.Item) (string, []any, error) {
	return toSQL(ctx, psql.Update(itemsTable).
		Set("name", i.Name).
		Set("description", i.Description).
		Set("category", i.Category).
		Set("quantity", i.Quantity).
		Set("box_id", i.BoxID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": i.ID}).
		Suffix(returning(itemColumns)))
}

func buildSetItemImageQuery(ctx context.Context, id int64, imagePath, thumbnailPath *string) (string, []any, error) {
	return toSQL(ctx, psql.Update(itemsTable).
		Set("image_path", imagePath).
		Set("thumbnail_path", thumbnailPath).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix(returning(itemColumns)))
}

func itemFilterCondition(f models.ItemFilter) sq.Sqlizer {
	cond := sq.And{}
	if f.BoxID != nil {
		cond = append(cond, sq.Eq{"box_id": *f.BoxID})
	}
	if f.Orphaned {
		cond = append(cond, sq.Eq{"box_id": nil})
	}
	if f.Category != "" {
		cond = append(cond, sq.Eq{"category": f.Category})
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		cond = append(cond, sq.Or{sq.ILike{"name": pattern}, sq.ILike{"description": pattern}})
	}
	if len(cond) == 0 {
		return nil
	}
	return cond
}

func buildExportItemsQuery(ctx context.Context) (string, []any, error) {
	cols := make([]string, 0, len(itemColumns)+2)
	for _, c := range itemColumns {
		cols = append(cols, "i."+c)
	}
	cols = append(cols, "COALESCE(b.name, '')", "COALESCE(l.name, '')")

	return toSQL(ctx, psql.Select(cols...).
		From(itemsTable+" i").
		LeftJoin(boxesTable+" b ON b.id = i.box_id").
		LeftJoin(locationsTable+" l ON l.id = b.location_id").
		OrderBy("i.id"))
}

func buildInsertCategoryQuery(ctx context.Context, c models.Category) (string, []any, error) {
	return toSQL(ctx, psql.Insert(categoriesTable).
		Columns("name").
		Values(c.Name).
		Suffix(returning(categoryColumns)))
}

func buildUpdateCategoryQuery(ctx context.Context, c models.Category) (string, []any, error) {
	return toSQL(ctx, psql.Update(categoriesTable).
		Set("name", c.Name).
		Where(sq.Eq{"id": c.ID}).
		Suffix(returning(categoryColumns)))
}

// buildInsertActivitiesQuery renders one multi-row INSERT for the audit log.
func buildInsertActivitiesQuery(ctx context.Context, activities ...models.Activity) (string, []any, error) {
	if len(activities) == 0 {
		return "", nil, fmt.Errorf("%w: no activities to insert", ErrBuildingSQLQuery)
	}
	b := psql.Insert(activitiesTable).Columns("user_id", "action", "entity_type", "entity_id", "entity_name", "changes", "metadata")
	for _, a := range activities {
		metadata, err := marshalJSON(a.Metadata)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		b = b.Values(a.UserID, a.Action, a.EntityType, a.EntityID, a.EntityName, nullableJSON(a.Changes), metadata)
	}
	return toSQL(ctx, b.Suffix(returning(activityColumns)))
}

func activityFilterCondition(f models.ActivityFilter) sq.Sqlizer {
	cond := sq.And{}
	if f.UserID != nil {
		cond = append(cond, sq.Eq{"user_id": *f.UserID})
	}
	if f.EntityType != nil {
		cond = append(cond, sq.Eq{"entity_type": *f.EntityType})
	}
	if f.EntityID != nil {
		cond = append(cond, sq.Eq{"entity_id": *f.EntityID})
	}
	if f.Action != nil {
		cond = append(cond, sq.Eq{"action": *f.Action})
	}
	if len(cond) == 0 {
		return nil
	}
	return cond
}

func buildInsertShareQuery(ctx context.Context, s models.Share) (string, []any, error) {
	return toSQL(ctx, psql.Insert(sharesTable).
		Columns("user_id", "shared_by_user_id", "resource_type", "resource_id", "permission").
		Values(s.UserID, s.SharedByUserID, s.Kind, s.ResourceRef.ID, s.Permission).
		Suffix(returning(shareColumns)))
}

func buildInsertNotificationsQuery(ctx context.Context, notifications ...models.Notification) (string, []any, error) {
	if len(notifications) == 0 {
		return "", nil, fmt.Errorf("%w: no notifications to insert", ErrBuildingSQLQuery)
	}
	b := psql.Insert(notificationsTable).Columns("user_id", "type", "message", "resource_type", "resource_id")
	for _, n := range notifications {
		var kind, id any
		if n.ResourceRef != nil {
			kind, id = n.ResourceRef.Kind, n.ResourceRef.ID
		}
		b = b.Values(n.UserID, n.Type, n.Message, kind, id)
	}
	return toSQL(ctx, b)
}

func notificationFilterCondition(f models.NotificationFilter) sq.Sqlizer {
	cond := sq.And{sq.Eq{"user_id": f.UserID}}
	if f.UnreadOnly {
		cond = append(cond, sq.Eq{"is_read": false})
	}
	return cond
}

func buildMarkReadQuery(ctx context.Context, id, userID int64) (string, []any, error) {
	return toSQL(ctx, psql.Update(notificationsTable).
		Set("is_read", true).
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix(returning(notificationColumns)))
}

func buildMarkAllReadQuery(ctx context.Context, userID int64) (string, []any, error) {
	return toSQL(ctx, psql.Update(notificationsTable).
		Set("is_read", true).
		Where(sq.Eq{"user_id": userID, "is_read": false}))
}

func buildInsertCommentQuery(ctx context.Context, c models.Comment) (string, []any, error) {
	return toSQL(ctx, psql.Insert(commentsTable).
		Columns("user_id", "resource_type", "resource_id", "body").
		Values(c.UserID, c.Kind, c.ResourceRef.ID, c.Body).
		Suffix(returning(commentColumns)))
}

func resourceCondition(ref models.ResourceRef) sq.Sqlizer {
	return sq.Eq{"resource_type": ref.Kind, "resource_id": ref.ID}
}

func toSQL(_ context.Context, b sq.Sqlizer) (string, []any, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
