package queries

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"booking-platform/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200

	keysetVersion = "k1"
)

// Keyset is the (dateTime, id) position of the last row of a page.
type Keyset struct {
	At time.Time
	ID uuid.UUID
}

// Encode renders an opaque, URL-safe token. Time is kept to the microsecond,
// which is what PostgreSQL stores.
func (k Keyset) Encode() string {
	raw := keysetVersion + "." + strconv.FormatInt(k.At.UnixMicro(), 36) + "." + k.ID.String()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func ParseKeyset(token string) (Keyset, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Keyset{}, errs.Wrap(err, "decode cursor")
	}
	parts := strings.Split(string(raw), ".")
	if len(parts) != 3 || parts[0] != keysetVersion {
		return Keyset{}, errs.New("unrecognized cursor")
	}
	micros, err := strconv.ParseInt(parts[1], 36, 64)
	if err != nil {
		return Keyset{}, errs.Wrap(err, "cursor time")
	}
	id, err := uuid.Parse(parts[2])
	if err != nil {
		return Keyset{}, errs.Wrap(err, "cursor id")
	}
	return Keyset{At: time.UnixMicro(micros).UTC(), ID: id}, nil
}

type Cursor struct {
	After string `json:"after,omitempty"`
}

func (c *Cursor) keyset() (*Keyset, error) {
	if c == nil || c.After == "" {
		return nil, nil
	}
	k, err := ParseKeyset(c.After)
	if err != nil {
		return nil, errs.WithCause(ErrInvalidCursor, err)
	}
	return &k, nil
}

// ClampLimit maps non-positive limits to the default and caps the rest.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

// paginate drops the probe row fetched past limit and points the cursor at
// the last row kept.
func paginate(rows []*ReservationView, limit int) ([]*ReservationView, *Cursor) {
	if len(rows) <= limit {
		return rows, nil
	}
	last := rows[limit-1]
	return rows[:limit], &Cursor{After: Keyset{At: last.DateTime, ID: last.ID}.Encode()}
}
