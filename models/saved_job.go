package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// SavedJob is a (jobSeeker, job) bookmark, unique per pair.
type SavedJob struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	JobSeekerID bson.ObjectID `bson:"jobSeekerId" json:"jobSeekerId"`
	JobID       bson.ObjectID `bson:"jobId" json:"jobId"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
}
