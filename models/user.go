package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleEmployer  Role = "EMPLOYER"
	RoleJobSeeker Role = "JOB_SEEKER"
)

// ParseRole maps the URL role segments (admin / employee / job-seeker)
// to the stored role values. Employers are "employee" in the public API.
func ParseRole(segment string) (Role, bool) {
	switch segment {
	case "admin":
		return RoleAdmin, true
	case "employee":
		return RoleEmployer, true
	case "job-seeker":
		return RoleJobSeeker, true
	}
	return "", false
}

type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"passwordHash" json:"-"` // never expose
	Role         Role          `bson:"role" json:"role"`
	FullName     string        `bson:"fullName" json:"fullName"`
	IsActive     bool          `bson:"isActive" json:"isActive"`

	// job seeker profile
	Phone     string   `bson:"phone,omitempty" json:"phone,omitempty"`
	Location  string   `bson:"location,omitempty" json:"location,omitempty"`
	Skills    []string `bson:"skills,omitempty" json:"skills,omitempty"`
	ResumeURL string   `bson:"resumeUrl,omitempty" json:"resumeUrl,omitempty"`

	// employer
	CompanyID *bson.ObjectID `bson:"companyId,omitempty" json:"companyId,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type RefreshToken struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	UserID     bson.ObjectID `bson:"userId"`
	TokenHash  string        `bson:"tokenHash"`
	ExpiresAt  time.Time     `bson:"expiresAt"`
	CreatedAt  time.Time     `bson:"createdAt"`
	RevokedAt  *time.Time    `bson:"revokedAt,omitempty"`
	ReplacedBy *string       `bson:"replacedBy,omitempty"`
}
