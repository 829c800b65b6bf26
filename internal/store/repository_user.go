package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup and administration against the
// "users" table.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user and returns it with server-assigned
// fields. A duplicate username maps to [ErrUsernameTaken], a duplicate
// email to [ErrEmailTaken].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(ctx, user)
	if err != nil {
		return models.User{}, err
	}

	created, err := scanUser(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("error inserting user")
		return models.User{}, translateWriteError(err, map[string]error{
			usersUsernameKey: ErrUsernameTaken,
			usersEmailKey:    ErrEmailTaken,
		})
	}

	return created, nil
}

func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"username": username})
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

func (r *userRepository) FindUserByProvider(ctx context.Context, provider models.OAuthProvider, subject string) (models.User, error) {
	col, err := providerColumn(provider)
	if err != nil {
		return models.User{}, err
	}
	return r.findOne(ctx, sq.Eq{col: subject})
}

func (r *userRepository) findOne(ctx context.Context, where sq.Sqlizer) (models.User, error) {
	query, args, err := buildSelectQuery(ctx, usersTable, userColumns, where, "", nil)
	if err != nil {
		return models.User{}, err
	}

	user, err := scanUser(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.User{}, translateReadError(err)
	}
	return user, nil
}

// LinkProvider attaches an OAuth subject to an existing account.
func (r *userRepository) LinkProvider(ctx context.Context, userID int64, provider models.OAuthProvider, subject string) error {
	query, args, err := buildLinkProviderQuery(ctx, userID, provider, subject)
	if err != nil {
		return err
	}

	n, err := execAffected(ctx, r.db.conn(ctx), query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.LinkProvider").Int64("user_id", userID).Msg("error linking provider")
		return translateWriteError(err, nil)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query, args, err := buildCountQuery(ctx, usersTable, sq.Eq{"username": username})
	if err != nil {
		return false, err
	}
	n, err := queryCount(ctx, r.db.conn(ctx), query, args)
	return n > 0, err
}

func (r *userRepository) ListUsers(ctx context.Context, page models.Page) ([]models.User, int, error) {
	query, args, err := buildSelectQuery(ctx, usersTable, userColumns, nil, "id", &page)
	if err != nil {
		return nil, 0, err
	}
	users, err := queryList(ctx, r.db.conn(ctx), query, args, scanUser)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.ListUsers").Msg("error listing users")
		return nil, 0, err
	}

	query, args, err = buildCountQuery(ctx, usersTable, nil)
	if err != nil {
		return nil, 0, err
	}
	total, err := queryCount(ctx, r.db.conn(ctx), query, args)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) SetAdmin(ctx context.Context, userID int64, isAdmin bool) (models.User, error) {
	query, args, err := buildSetAdminQuery(ctx, userID, isAdmin)
	if err != nil {
		return models.User{}, err
	}

	user, err := scanUser(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.User{}, translateWriteError(err, nil)
	}
	return user, nil
}

func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	query, args, err := buildDeleteByIDQuery(ctx, usersTable, userID)
	if err != nil {
		return err
	}

	n, err := execAffected(ctx, r.db.conn(ctx), query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", userID).Msg("error deleting user")
		return translateDeleteError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
