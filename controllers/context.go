package controllers

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rojgarihub/rojgarihub-backend/authz"
	"github.com/rojgarihub/rojgarihub-backend/models"
	"github.com/rojgarihub/rojgarihub-backend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// principalFrom rebuilds the acting principal from the claims the auth
// middleware put on the context.
func principalFrom(c *gin.Context) (authz.Principal, bool) {
	idVal, ok := c.Get("userID")
	if !ok {
		return authz.Principal{}, false
	}
	roleVal, ok := c.Get("role")
	if !ok {
		return authz.Principal{}, false
	}
	return authz.Principal{
		ID:   idVal.(string),
		Role: models.Role(roleVal.(string)),
	}, true
}

// optionalPrincipal resolves the caller from a bearer token when one is
// present. Public routes use it where anonymous and known callers see
// different things; a missing or bad token just means anonymous.
func optionalPrincipal(c *gin.Context) (authz.Principal, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return authz.Principal{}, false
	}
	claims, err := utils.ValidateToken(strings.TrimPrefix(header, "Bearer "), os.Getenv("JWT_SECRET"))
	if err != nil {
		return authz.Principal{}, false
	}
	return authz.Principal{
		ID:   claims.UserID,
		Role: models.Role(claims.Role),
	}, true
}

// actorObjectID is principalFrom plus the hex → ObjectID conversion most
// handlers need for filters.
func actorObjectID(c *gin.Context) (bson.ObjectID, authz.Principal, bool) {
	p, ok := principalFrom(c)
	if !ok {
		return bson.ObjectID{}, authz.Principal{}, false
	}
	oid, err := bson.ObjectIDFromHex(p.ID)
	if err != nil {
		return bson.ObjectID{}, authz.Principal{}, false
	}
	return oid, p, true
}
