package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "PENDING"
	ApplicationReviewed  ApplicationStatus = "REVIEWED"
	ApplicationAccepted  ApplicationStatus = "ACCEPTED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
	ApplicationWithdrawn ApplicationStatus = "WITHDRAWN"
)

type Application struct {
	ID          bson.ObjectID     `bson:"_id,omitempty" json:"id"`
	JobID       bson.ObjectID     `bson:"jobId" json:"jobId"`
	JobSeekerID bson.ObjectID     `bson:"jobSeekerId" json:"jobSeekerId"`
	Status      ApplicationStatus `bson:"status" json:"status"`
	CoverLetter string            `bson:"coverLetter,omitempty" json:"coverLetter,omitempty"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time         `bson:"updatedAt" json:"updatedAt"`
}
