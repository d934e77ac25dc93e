package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Company struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerEmployerID bson.ObjectID `bson:"ownerEmployerId" json:"ownerEmployerId"`
	Name            string        `bson:"name" json:"name"`
	Slug            string        `bson:"slug" json:"slug"`
	Description     string        `bson:"description,omitempty" json:"description,omitempty"`
	Website         string        `bson:"website,omitempty" json:"website,omitempty"`
	LogoURL         string        `bson:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt" json:"updatedAt"`
}
