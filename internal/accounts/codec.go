package accounts

import (
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// Codec turns a plain password into the stored credential secret and checks
// candidates against it. The store never looks inside the secret.
type Codec interface {
	Encode(password string) (string, error)
	Verify(secret, password string) bool
}

// LegacyCodec reproduces the original client's credential handling: plain
// base64 of the password. It is obfuscation, not a hash, and is kept as the
// default only for compatibility with data written by that client. Use
// BcryptCodec for anything that matters.
type LegacyCodec struct{}

func (LegacyCodec) Encode(password string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(password)), nil
}

func (LegacyCodec) Verify(secret, password string) bool {
	encoded := base64.StdEncoding.EncodeToString([]byte(password))
	return subtle.ConstantTimeCompare([]byte(secret), []byte(encoded)) == 1
}

// BcryptCodec stores a salted bcrypt hash instead of the reversible
// encoding. Secrets written by one codec do not verify under the other.
type BcryptCodec struct {
	Cost int // 0 means bcrypt.DefaultCost
}

func (c BcryptCodec) Encode(password string) (string, error) {
	cost := c.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (c BcryptCodec) Verify(secret, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(secret), []byte(password)) == nil
}
