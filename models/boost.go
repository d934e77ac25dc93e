package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type BoostStatus string

const (
	BoostPending  BoostStatus = "PENDING"
	BoostApproved BoostStatus = "APPROVED"
	BoostRejected BoostStatus = "REJECTED"
	BoostExpired  BoostStatus = "EXPIRED"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

type BoostPlan struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Price        float64       `bson:"price" json:"price"`
	DurationDays int           `bson:"durationDays" json:"durationDays"`
	Type         string        `bson:"type" json:"type"`
	IsActive     bool          `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updatedAt"`
}

type Boost struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	JobID       bson.ObjectID `bson:"jobId" json:"jobId"`
	EmployerID  bson.ObjectID `bson:"employerId" json:"employerId"`
	BoostPlanID bson.ObjectID `bson:"boostPlanId" json:"boostPlanId"`

	Status        BoostStatus   `bson:"status" json:"status"`
	PaymentStatus PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod string        `bson:"paymentMethod" json:"paymentMethod"`

	// Price and duration are copied off the plan at creation so later
	// plan edits never change what was charged.
	Price        float64 `bson:"price" json:"price"`
	PlatformFee  float64 `bson:"platformFee" json:"platformFee"`
	NetRevenue   float64 `bson:"netRevenue" json:"netRevenue"`
	DurationDays int     `bson:"durationDays" json:"durationDays"`

	RejectionReason string     `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	RefundReason    string     `bson:"refundReason,omitempty" json:"refundReason,omitempty"`
	ApprovedAt      *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
