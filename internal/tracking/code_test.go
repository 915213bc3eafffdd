package tracking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCode(t *testing.T) {
	day := time.Date(2025, 3, 7, 15, 4, 5, 0, time.UTC)

	code := NewCode(day)
	assert.Len(t, code, 13)
	assert.True(t, strings.HasPrefix(code, "DMG250307"))
	assert.True(t, Valid(code))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("DMG2503070042"))
	assert.False(t, Valid("DMG25030742"))
	assert.False(t, Valid("dmg2503070042"))
	assert.False(t, Valid("DMG25030700425"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("XYZ2503070042"))
}
