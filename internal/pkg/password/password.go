package password

import (
	"booking-platform/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmpty    = errs.New("password is empty")
	ErrTooLong  = errs.New("password exceeds 72 bytes")
	ErrMismatch = errs.New("password does not match")
)

// bcrypt ignores input past this length, so longer secrets are rejected.
const maxBytes = 72

// dummyHash is compared against when the account does not exist, keeping
// login latency independent of whether the email is registered.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

func HashPassword(plain string) (string, error) {
	if err := check(plain); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", errs.Wrap(err, "bcrypt hash")
	}
	return string(hashed), nil
}

func ComparePassword(hashed, plain string) error {
	if hashed == "" {
		return ErrMismatch
	}
	if err := check(plain); err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		if errs.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return errs.Wrap(err, "bcrypt compare")
	}
	return nil
}

// BurnCompare spends one bcrypt comparison and always fails.
func BurnCompare(plain string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
}

func check(plain string) error {
	switch {
	case plain == "":
		return ErrEmpty
	case len(plain) > maxBytes:
		return ErrTooLong
	}
	return nil
}
