// Package tracking generates the short human-readable codes assigned to
// approved damage claims. Format: DMG + YYMMDD + 4 random digits.
package tracking

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

var codePattern = regexp.MustCompile(`^DMG\d{6}\d{4}$`)

// NewCode builds a tracking code for the given day. The 4-digit suffix is
// random and zero-padded; uniqueness is enforced by a sparse unique index
// on the claims collection, with one regeneration retry on conflict.
func NewCode(now time.Time) string {
	return fmt.Sprintf("DMG%s%04d", now.Format("060102"), rand.Intn(10000))
}

// Valid reports whether s matches the tracking-code format.
func Valid(s string) bool {
	return codePattern.MatchString(s)
}
