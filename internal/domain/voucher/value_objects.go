package voucher

import (
	"crypto/rand"
	"errors"
	"regexp"
)

var (
	ErrInvalidCode = errors.New("invalid voucher code format")
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9]{12}$`)

// Code is the voucher's globally unique credential. Codes are generated
// from crypto/rand; global uniqueness is enforced by the database unique
// constraint, not by the generator.
type Code string

const (
	codeLength = 12
	// 0/O and 1/I excluded to keep codes readable over the counter
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

func NewCode(s string) (Code, error) {
	if !codeRegex.MatchString(s) {
		return Code(""), ErrInvalidCode
	}
	return Code(s), nil
}

func GenerateCode() (Code, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return Code(""), err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return Code(buf), nil
}

func (c Code) String() string {
	return string(c)
}
