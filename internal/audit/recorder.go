// Package audit writes the StaffActivity trail: one record per significant
// mutation, queryable by staff, date and type for manager reports.
package audit

import (
	"context"
	"log"
	"time"

	"field-sales-ops-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Recorder struct {
	DB *mongo.Database
}

func NewRecorder(db *mongo.Database) *Recorder {
	return &Recorder{DB: db}
}

// Record writes one audit row. Best-effort: a failed write is logged and
// never surfaced to the caller, so the originating mutation still succeeds.
func (r *Recorder) Record(staffID primitive.ObjectID, activityType, action string, relatedID primitive.ObjectID, onModel string, details map[string]string) {
	entry := models.StaffActivity{
		StaffID:      staffID,
		ActivityType: activityType,
		Action:       action,
		RelatedID:    relatedID,
		OnModel:      onModel,
		Details:      details,
		CreatedAt:    time.Now(),
	}
	if _, err := r.DB.Collection("staff_activities").InsertOne(context.Background(), entry); err != nil {
		log.Printf("audit write failed (%s %s): %v", activityType, action, err)
	}
}
