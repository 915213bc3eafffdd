package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TaskStatusPending    = "Pending"
	TaskStatusInProgress = "In Progress"
	TaskStatusCompleted  = "Completed"
)

// Punch sub-state of a task, independent of the main status.
const (
	TaskPunchedIn  = "Punched In"
	TaskPunchedOut = "Punched Out"
)

type TaskItem struct {
	Name     string  `bson:"name" json:"name"`
	Quantity float64 `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Done     bool    `bson:"done" json:"done"`
}

type PunchRecord struct {
	PunchInTime  time.Time  `bson:"punchInTime" json:"punchInTime"`
	PunchOutTime *time.Time `bson:"punchOutTime,omitempty" json:"punchOutTime,omitempty"`
}

// Task is assigned either to a staff user or, for field helpers without an
// account, to an external assignee by name.
type Task struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title            string              `bson:"title" json:"title"`
	Description      string              `bson:"description,omitempty" json:"description,omitempty"`
	AssignedTo       *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	ExternalAssignee string              `bson:"externalAssignee,omitempty" json:"externalAssignee,omitempty"`
	StaffRole        string              `bson:"staffRole" json:"staffRole"`
	Items            []TaskItem          `bson:"items,omitempty" json:"items,omitempty"`
	Status           string              `bson:"status" json:"status"`
	PunchStatus      string              `bson:"punchStatus,omitempty" json:"punchStatus,omitempty"`
	PunchHistory     []PunchRecord       `bson:"punchHistory,omitempty" json:"punchHistory,omitempty"`
	CreatedBy        primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt" json:"updatedAt"`
}
