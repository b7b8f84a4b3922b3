package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the bcrypt input limit; longer secrets are rejected rather
// than silently truncated.
const MaxLength = 72

// dummyHash is compared against when the account does not exist so login
// latency does not reveal whether an email is registered.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("task-tracker-dummy-password"), bcrypt.DefaultCost)

func Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Check reports whether secret matches hash. bcrypt compares in constant time.
func Check(hash, secret string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	return err == nil
}

// CheckDummy burns the same CPU as Check and always returns false.
func CheckDummy(secret string) bool {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(secret))
	return false
}
