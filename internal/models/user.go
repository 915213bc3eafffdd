package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff roles. Marketing staff create workflow entities, mid-level managers
// comment/approve, admins hold the terminal decisions.
const (
	RoleAdmin           = "Admin"
	RoleSubAdmin        = "SubAdmin"
	RoleMidLevelManager = "MidLevelManager"
	RoleMarketingStaff  = "MarketingStaff"
)

const (
	MaxFailedLogins = 5
	LockoutWindow   = 30 * time.Minute
)

// User struct matches the document in MongoDB.
type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                string             `bson:"name" json:"name"`
	Email               string             `bson:"email" json:"email"`
	Phone               string             `bson:"phone" json:"phone"`
	Password            string             `bson:"password" json:"-"`
	Role                string             `bson:"role" json:"role"`
	IsActive            bool               `bson:"isActive" json:"isActive"`
	FailedLoginAttempts int                `bson:"failedLoginAttempts" json:"-"`
	LockUntil           *time.Time         `bson:"lockUntil,omitempty" json:"-"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsLocked reports whether the account is still inside its lockout window.
// Expired locks are treated as cleared; the login handler resets the counters
// lazily on the next attempt.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockUntil != nil && now.Before(*u.LockUntil)
}

// UserRef is the populated shape of a user reference embedded in responses.
type UserRef struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
	Role string             `bson:"role" json:"role"`
}
