//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"booking-platform/internal/infra"
	sqlc "booking-platform/internal/infra/sqlc/generated"
	"booking-platform/internal/pkg/pgconv"
	"booking-platform/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationWriteQueries struct {
	mock.Mock
}

func (m *MockReservationWriteQueries) CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) (uuid.UUID, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockReservationWriteQueries) GetReservationForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Reservations), args.Error(1)
}

func (m *MockReservationWriteQueries) FindOverlappingActiveReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.FindOverlappingActiveReservationsParams) ([]sqlc.FindOverlappingActiveReservationsRow, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.FindOverlappingActiveReservationsRow), args.Error(1)
}

func (m *MockReservationWriteQueries) UpdateReservationStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationStatusParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationWriteQueries) UpdateReservationPayment(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationPaymentParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func TestReservationRepositoryCreate(t *testing.T) {
	res := builder.NewReservationBuilder().MustBuildDomain()

	tests := []struct {
		name     string
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success"},
		{name: "overlap rejected by exclusion constraint", mockErr: &pgconn.PgError{Code: "23P01"}, wantKind: infra.KindConflict},
		{name: "unknown service", mockErr: &pgconn.PgError{Code: "23503"}, wantKind: infra.KindForeignKeyViolated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockReservationWriteQueries)
			mockQueries.On("CreateReservation", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.CreateReservationParams) bool {
				return p.ID == res.ID() && p.BusinessID == res.BusinessID()
			})).Return(res.ID(), tt.mockErr)

			id, err := NewReservationRepository(mockQueries).Create(context.Background(), nopDB{}, res)

			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, res.ID(), id)
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestReservationRepositoryFindOverlapping(t *testing.T) {
	businessID := uuid.New()
	res := builder.NewReservationBuilder().MustBuildDomain()
	other := uuid.New()
	start := builder.MondayAt(10, 30, nil)

	mockQueries := new(MockReservationWriteQueries)
	mockQueries.On("FindOverlappingActiveReservations", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.FindOverlappingActiveReservationsParams) bool {
		return p.BusinessID == businessID && p.ExcludeID == res.ID() &&
			p.RangeStart.Time.Equal(res.Slot().Start()) && p.RangeEnd.Time.Equal(res.Slot().End())
	})).Return([]sqlc.FindOverlappingActiveReservationsRow{{
		ID:      other,
		StartAt: pgconv.TimeToPgtype(start),
		EndAt:   pgconv.TimeToPgtype(start.Add(45 * time.Minute)),
	}}, nil)

	booked, err := NewReservationRepository(mockQueries).FindOverlapping(context.Background(), nopDB{}, businessID, res.Slot(), res.ID())
	require.NoError(t, err)
	require.Len(t, booked, 1)
	assert.Equal(t, other, booked[0].ID)
	assert.Equal(t, 45*time.Minute, booked[0].Slot.Duration())
}

func TestReservationRepositoryUpdates(t *testing.T) {
	res := builder.NewReservationBuilder().MustBuildDomain()

	t.Run("status of a vanished row is not found", func(t *testing.T) {
		mockQueries := new(MockReservationWriteQueries)
		mockQueries.On("UpdateReservationStatus", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)

		err := NewReservationRepository(mockQueries).UpdateStatus(context.Background(), nopDB{}, res)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("payment update", func(t *testing.T) {
		mockQueries := new(MockReservationWriteQueries)
		mockQueries.On("UpdateReservationPayment", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil)

		assert.NoError(t, NewReservationRepository(mockQueries).UpdatePayment(context.Background(), nopDB{}, res))
	})

	t.Run("driver failure", func(t *testing.T) {
		mockQueries := new(MockReservationWriteQueries)
		mockQueries.On("UpdateReservationStatus", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), assert.AnError)

		err := NewReservationRepository(mockQueries).UpdateStatus(context.Background(), nopDB{}, res)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		assert.ErrorIs(t, err, assert.AnError)
	})
}
