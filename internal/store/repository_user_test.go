package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &userRepository{db: db, logger: logger.Nop()}, mock
}

func strPtr(s string) *string { return &s }

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	user := models.User{Username: "john", PasswordHash: strPtr("hash"), DisplayName: "John"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("john", "hash", nil, nil, nil, nil, "John", false).
		WillReturnRows(userRows().AddRow(1, "john", "hash", nil, nil, nil, nil, "John", false, testNow, testNow))

	created, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "john", created.Username)
	require.NotNil(t, created.PasswordHash)
	assert.Nil(t, created.GoogleID)
}

func TestCreateUser_UniqueViolations(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{name: "username", constraint: usersUsernameKey, want: ErrUsernameTaken},
		{name: "email", constraint: usersEmailKey, want: ErrEmailTaken},
		{name: "oauth id", constraint: "users_google_id_key", want: ErrAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestUserRepo(t)

			mock.ExpectQuery("INSERT INTO users").
				WillReturnError(pgConstraintError(pgerrcode.UniqueViolation, tt.constraint))

			_, err := repo.CreateUser(context.Background(), models.User{Username: "john"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateUser_CheckViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.CheckViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "nocreds"})
	assert.ErrorIs(t, err, ErrConstraintViolated)
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "john"})
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestFindUserByUsername(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE username = \\$1").
			WithArgs("john").
			WillReturnRows(userRows().AddRow(3, "john", "hash", nil, nil, nil, "j@example.com", "John", true, testNow, testNow))

		u, err := repo.FindUserByUsername(context.Background(), "john")
		require.NoError(t, err)
		assert.Equal(t, int64(3), u.ID)
		assert.True(t, u.IsAdmin)
		require.NotNil(t, u.Email)
		assert.Equal(t, "j@example.com", *u.Email)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs("ghost").
			WillReturnRows(userRows())

		_, err := repo.FindUserByUsername(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestFindUserByProvider(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE github_id = \\$1").
		WithArgs("gh-42").
		WillReturnRows(userRows().AddRow(5, "octo", nil, nil, "gh-42", nil, nil, "", false, testNow, testNow))

	u, err := repo.FindUserByProvider(context.Background(), models.ProviderGithub, "gh-42")
	require.NoError(t, err)
	assert.Nil(t, u.PasswordHash)
	require.NotNil(t, u.GithubID)
	assert.Equal(t, "gh-42", *u.GithubID)
}

func TestLinkProvider(t *testing.T) {
	t.Run("linked", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectExec("UPDATE users SET google_id = \\$1").
			WithArgs("g-1", int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.LinkProvider(context.Background(), 5, models.ProviderGoogle, "g-1"))
	})

	t.Run("unknown user", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectExec("UPDATE users").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.LinkProvider(context.Background(), 5, models.ProviderGoogle, "g-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListUsers(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY id LIMIT 2 OFFSET 0").
		WillReturnRows(userRows().
			AddRow(1, "a", "h", nil, nil, nil, nil, "", true, testNow, testNow).
			AddRow(2, "b", "h", nil, nil, nil, nil, "", false, testNow, testNow))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").
		WillReturnRows(countRows(7))

	users, total, err := repo.ListUsers(context.Background(), models.Page{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, 7, total)
}

func TestSetAdmin_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("UPDATE users SET is_admin = \\$1").
		WithArgs(true, int64(99)).
		WillReturnRows(userRows())

	_, err := repo.SetAdmin(context.Background(), 99, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("DELETE FROM users WHERE id = \\$1").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteUser(context.Background(), 4))
}
