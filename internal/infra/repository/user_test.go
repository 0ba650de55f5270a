//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"booking-platform/internal/domain/user"
	"booking-platform/internal/infra"
	sqlc "booking-platform/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserQueries struct {
	mock.Mock
}

func (m *MockUserQueries) CreateUser(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateUserParams) (uuid.UUID, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUserQueries) FindUserByEmail(ctx context.Context, db sqlc.DBTX, email string) (sqlc.Users, error) {
	args := m.Called(ctx, db, email)
	return args.Get(0).(sqlc.Users), args.Error(1)
}

func (m *MockUserQueries) UpdateUserLastLogin(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateUserLastLoginParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

// nopDB satisfies sqlc.DBTX; the mocked queries never touch it.
type nopDB struct{}

func (nopDB) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (nopDB) Query(context.Context, string, ...interface{}) (pgx.Rows, error) { return nil, nil }

func (nopDB) QueryRow(context.Context, string, ...interface{}) pgx.Row { return nil }

func TestUserRepositoryCreate(t *testing.T) {
	u := user.NewUser(mustEmail(t, "new@example.com"), "New", "hash", user.RoleClient, time.Now())

	tests := []struct {
		name     string
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success"},
		{name: "email taken", mockErr: &pgconn.PgError{Code: "23505"}, wantKind: infra.KindDuplicateKey},
		{name: "database error", mockErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockUserQueries)
			mockQueries.On("CreateUser", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.CreateUserParams) bool {
				return p.Email == "new@example.com" && p.Role == "client"
			})).Return(u.ID(), tt.mockErr)

			id, err := NewUserRepository(mockQueries).Create(context.Background(), nopDB{}, u)

			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind))
				assert.Equal(t, uuid.Nil, id)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, u.ID(), id)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	email := mustEmail(t, "owner@example.com")
	now := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

	t.Run("decodes row", func(t *testing.T) {
		mockQueries := new(MockUserQueries)
		row := sqlc.Users{
			ID:           uuid.New(),
			Email:        "owner@example.com",
			DisplayName:  "Owner",
			PasswordHash: "hash",
			Role:         "owner",
			IsActive:     true,
			CreatedAt:    pgtype.Timestamptz{Time: now, Valid: true},
			UpdatedAt:    pgtype.Timestamptz{Time: now, Valid: true},
		}
		mockQueries.On("FindUserByEmail", mock.Anything, mock.Anything, "owner@example.com").Return(row, nil)

		got, err := NewUserRepository(mockQueries).FindByEmail(context.Background(), nopDB{}, email)
		require.NoError(t, err)
		assert.Equal(t, row.ID, got.ID())
		assert.Equal(t, user.RoleOwner, got.Role())
		assert.Nil(t, got.LastLogin())
	})

	t.Run("no rows is not found", func(t *testing.T) {
		mockQueries := new(MockUserQueries)
		mockQueries.On("FindUserByEmail", mock.Anything, mock.Anything, "owner@example.com").Return(sqlc.Users{}, pgx.ErrNoRows)

		_, err := NewUserRepository(mockQueries).FindByEmail(context.Background(), nopDB{}, email)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("unknown role is a db failure", func(t *testing.T) {
		mockQueries := new(MockUserQueries)
		mockQueries.On("FindUserByEmail", mock.Anything, mock.Anything, "owner@example.com").
			Return(sqlc.Users{ID: uuid.New(), Email: "owner@example.com", Role: "viewer", IsActive: true}, nil)

		_, err := NewUserRepository(mockQueries).FindByEmail(context.Background(), nopDB{}, email)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestUpdateLastLogin(t *testing.T) {
	testUserID := uuid.New()
	at := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mockError error
		wantError bool
	}{
		{name: "success"},
		{name: "database error", mockError: assert.AnError, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockUserQueries)
			mockQueries.On("UpdateUserLastLogin", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.UpdateUserLastLoginParams) bool {
				return p.ID == testUserID && p.LastLogin.Valid && p.LastLogin.Time.Equal(at)
			})).Return(tt.mockError)

			err := NewUserRepository(mockQueries).UpdateLastLogin(context.Background(), nopDB{}, testUserID, at)

			if tt.wantError {
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
			} else {
				assert.NoError(t, err)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func mustEmail(t *testing.T, s string) user.Email {
	t.Helper()
	e, err := user.NewEmail(s)
	require.NoError(t, err)
	return e
}
