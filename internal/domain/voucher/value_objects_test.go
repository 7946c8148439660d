//go:build unit

package voucher_test

import (
	"regexp"
	"strings"
	"testing"

	"loyalty-ledger/internal/domain/voucher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z2-9]{12}$`)

	t.Run("produces 12-char codes from the readable alphabet", func(t *testing.T) {
		for range 100 {
			code, err := voucher.GenerateCode()
			require.NoError(t, err)

			s := code.String()
			assert.Regexp(t, pattern, s)
			// Ambiguous characters are excluded from the alphabet.
			assert.NotContains(t, s, "0")
			assert.NotContains(t, s, "1")
			assert.NotContains(t, s, "I")
			assert.NotContains(t, s, "O")
		}
	})

	t.Run("does not repeat across a small sample", func(t *testing.T) {
		seen := make(map[string]struct{}, 1000)
		for range 1000 {
			code, err := voucher.GenerateCode()
			require.NoError(t, err)
			_, dup := seen[code.String()]
			require.False(t, dup, "duplicate code %s", code)
			seen[code.String()] = struct{}{}
		}
	})
}

func TestNewCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		errIs error
	}{
		{name: "valid generated shape", input: "ABCDEFGH2345"},
		{name: "digits allowed", input: "234567892345"},
		{name: "too short", input: "ABCDEFGH234", errIs: voucher.ErrInvalidCode},
		{name: "too long", input: "ABCDEFGH23456", errIs: voucher.ErrInvalidCode},
		{name: "lowercase rejected", input: "abcdefgh2345", errIs: voucher.ErrInvalidCode},
		{name: "empty", input: "", errIs: voucher.ErrInvalidCode},
		{name: "whitespace rejected", input: strings.Repeat(" ", 12), errIs: voucher.ErrInvalidCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := voucher.NewCode(tt.input)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, code.String())
		})
	}
}
