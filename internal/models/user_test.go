package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserIsLocked(t *testing.T) {
	now := time.Now()

	t.Run("no lock set", func(t *testing.T) {
		u := User{}
		assert.False(t, u.IsLocked(now))
	})

	t.Run("inside lockout window", func(t *testing.T) {
		until := now.Add(10 * time.Minute)
		u := User{LockUntil: &until, FailedLoginAttempts: MaxFailedLogins}
		assert.True(t, u.IsLocked(now))
	})

	t.Run("expired lock reads as cleared", func(t *testing.T) {
		until := now.Add(-time.Minute)
		u := User{LockUntil: &until, FailedLoginAttempts: MaxFailedLogins}
		assert.False(t, u.IsLocked(now))
	})
}
