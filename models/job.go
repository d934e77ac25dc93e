package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type JobStatus string

const (
	JobStatusActive   JobStatus = "ACTIVE"
	JobStatusInactive JobStatus = "INACTIVE"
	JobStatusDraft    JobStatus = "DRAFT"
	// JobStatusDeleted marks a soft-deleted job. Applications and boosts
	// referencing it stay queryable for history.
	JobStatusDeleted JobStatus = "DELETED"
)

type Job struct {
	ID              bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	OwnerEmployerID bson.ObjectID  `bson:"ownerEmployerId" json:"ownerEmployerId"`
	CompanyID       *bson.ObjectID `bson:"companyId,omitempty" json:"companyId,omitempty"`

	Title        string   `bson:"title" json:"title"`
	Slug         string   `bson:"slug" json:"slug"`
	Description  string   `bson:"description" json:"description"`
	Requirements []string `bson:"requirements,omitempty" json:"requirements,omitempty"`
	Location     string   `bson:"location" json:"location"`
	Type         string   `bson:"type" json:"type"`
	Category     string   `bson:"category,omitempty" json:"category,omitempty"`
	Experience   string   `bson:"experience,omitempty" json:"experience,omitempty"`
	IsRemote     bool     `bson:"isRemote" json:"isRemote"`
	SalaryMin    float64  `bson:"salaryMin,omitempty" json:"salaryMin,omitempty"`
	SalaryMax    float64  `bson:"salaryMax,omitempty" json:"salaryMax,omitempty"`

	Status JobStatus `bson:"status" json:"status"`

	// IsBoosted is flipped when a boost on this job is approved and
	// cleared when the boost expires or is refunded. Boosted jobs sort
	// first in the public listing.
	IsBoosted bool `bson:"isBoosted" json:"isBoosted"`
	// BoostExpiresAt mirrors the approved boost's window end so the
	// public listing stops sorting the job first the moment the window
	// lapses, even before the lazy settle has run.
	BoostExpiresAt *time.Time `bson:"boostExpiresAt,omitempty" json:"boostExpiresAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
