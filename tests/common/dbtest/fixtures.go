//go:build unit || e2e

package dbtest

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"booking-platform/internal/domain/business"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TestPasswordHash is the bcrypt hash of "password123".
const TestPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

// bookingTables lists every table the API writes, children first.
var bookingTables = []string{
	"reservation_notifications",
	"idempotency_keys",
	"reservations",
	"services",
	"businesses",
	"users",
}

// StandardWeekHours is open Monday to Friday 09:00-17:00 with a 12:00-13:00 break.
func StandardWeekHours() business.HoursSpec {
	weekday := business.DaySpec{
		IsOpen:    true,
		OpenTime:  "09:00",
		CloseTime: "17:00",
		Breaks:    []business.BreakSpec{{Start: "12:00", End: "13:00"}},
	}
	return business.HoursSpec{
		"monday":    weekday,
		"tuesday":   weekday,
		"wednesday": weekday,
		"thursday":  weekday,
		"friday":    weekday,
		"saturday":  {IsOpen: false},
		"sunday":    {IsOpen: false},
	}
}

// CreateTestUser inserts an active user with password "password123" and
// returns its id; an existing active user with the same email is reused.
func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `INSERT INTO users (id, email, display_name, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		ON CONFLICT (email) WHERE is_active = true DO NOTHING`,
		userID, email, strings.Split(email, "@")[0], TestPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		require.NoError(t, db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND is_active = true", email).Scan(&userID))
	}
	return userID
}

// CreateTestBusiness inserts an active business with StandardWeekHours.
func CreateTestBusiness(t *testing.T, db DBLike, ownerID uuid.UUID, timezone string, minCancellationHours int) uuid.UUID {
	t.Helper()

	hours, err := json.Marshal(StandardWeekHours())
	require.NoError(t, err)

	businessID := uuid.New()
	_, err = db.Exec(context.Background(),
		"INSERT INTO businesses (id, owner_id, name, timezone, hours, min_cancellation_hours) VALUES ($1, $2, $3, $4, $5::jsonb, $6)",
		businessID, ownerID, "Studio "+businessID.String()[:8], timezone, hours, minCancellationHours)
	require.NoError(t, err)
	return businessID
}

func CreateTestService(t *testing.T, db DBLike, businessID uuid.UUID, durationMinutes int, priceCents int64) uuid.UUID {
	t.Helper()

	serviceID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO services (id, business_id, name, duration_minutes, price_cents) VALUES ($1, $2, $3, $4, $5)",
		serviceID, businessID, "Service "+serviceID.String()[:8], durationMinutes, priceCents)
	require.NoError(t, err)
	return serviceID
}

// CountActiveReservations counts pending and confirmed reservations of a business.
func CountActiveReservations(t *testing.T, db DBLike, businessID uuid.UUID) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(context.Background(),
		"SELECT count(*) FROM reservations WHERE business_id = $1 AND status IN ('pending', 'confirmed')",
		businessID).Scan(&n))
	return n
}

// ResetDB empties every booking table.
func ResetDB(db DBLike) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.Exec(ctx, "TRUNCATE "+strings.Join(bookingTables, ", ")+" RESTART IDENTITY CASCADE")
	return err
}
