package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rojgarihub/rojgarihub-backend/database"
	"github.com/rojgarihub/rojgarihub-backend/dto"
	"github.com/rojgarihub/rojgarihub-backend/models"
	"github.com/rojgarihub/rojgarihub-backend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// GET /profile/me
func GetMyProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := actorObjectID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		usersCol := database.OpenCollection("users")
		var user models.User
		if err := usersCol.FindOne(c.Request.Context(), bson.M{"_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// PUT /profile/me
func UpdateMyProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		userID, _, ok := actorObjectID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		var body dto.UpdateProfileDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		set := bson.M{}
		if body.FullName != nil {
			set["fullName"] = strings.TrimSpace(*body.FullName)
		}
		if body.Phone != nil {
			set["phone"] = *body.Phone
		}
		if body.Location != nil {
			set["location"] = *body.Location
		}
		if body.Skills != nil {
			set["skills"] = *body.Skills
		}

		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}
		set["updatedAt"] = time.Now().UTC()

		usersCol := database.OpenCollection("users")
		if _, err := usersCol.UpdateByID(ctx, userID, bson.M{"$set": set}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := usersCol.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// POST /profile/me/resume — multipart "resume" field, PDF only. The old
// resume object is deleted after the profile points at the new one.
func UploadMyResume(v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		userID, _, ok := actorObjectID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		fh, err := c.FormFile("resume")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing resume file"})
			return
		}
		if _, err := v.ValidateFile(fh); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		usersCol := database.OpenCollection("users")
		var user models.User
		if err := usersCol.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		gcsClient, bucket, err := utils.NewGCSClient(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to init storage client"})
			return
		}

		publicURL, objectName, err := utils.UploadResumePDFToGCS(ctx, gcsClient, bucket, userID.Hex(), fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "resume upload failed", "details": err.Error()})
			return
		}

		now := time.Now().UTC()
		if _, err := usersCol.UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{"resumeUrl": publicURL, "updatedAt": now},
		}); err != nil {
			_ = utils.DeleteGCSObjects(ctx, gcsClient, bucket, []string{objectName})
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// old resume is unreferenced now, remove it best effort
		if user.ResumeURL != "" {
			prefix := "https://storage.googleapis.com/" + bucket + "/"
			if strings.HasPrefix(user.ResumeURL, prefix) {
				_ = utils.DeleteGCSObjects(ctx, gcsClient, bucket, []string{strings.TrimPrefix(user.ResumeURL, prefix)})
			}
		}

		c.JSON(http.StatusOK, gin.H{"resumeUrl": publicURL})
	}
}

// POST /profile/me/password
func ChangeMyPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.ChangeMyPasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		userID, _, ok := actorObjectID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		usersCol := database.OpenCollection("users")

		var user models.User
		if err := usersCol.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user"})
			return
		}

		if err := utils.CheckPassword(user.PasswordHash, body.CurrentPassword); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
			return
		}

		newHash, err := utils.HashPassword(body.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}

		now := time.Now().UTC()
		if _, err := usersCol.UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{
				"passwordHash": newHash,
				"updatedAt":    now,
			},
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		_ = RevokeAllRefreshTokens(c, userID)
		utils.ClearRefreshCookie(c)

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// GET /company/me
func GetMyCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		employerID, _, ok := actorObjectID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		companiesCol := database.OpenCollection("companies")
		var company models.Company
		if err := companiesCol.FindOne(c.Request.Context(), bson.M{"ownerEmployerId": employerID}).Decode(&company); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"company": company})
	}
}

// PUT /company/me
func UpdateMyCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		employerID, _, ok := actorObjectID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		var body dto.UpdateCompanyDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		set := bson.M{}
		if body.Name != nil {
			set["name"] = strings.TrimSpace(*body.Name)
			set["slug"] = utils.GenerateSlug(*body.Name)
		}
		if body.Description != nil {
			set["description"] = *body.Description
		}
		if body.Website != nil {
			set["website"] = *body.Website
		}

		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}
		set["updatedAt"] = time.Now().UTC()

		companiesCol := database.OpenCollection("companies")
		res, err := companiesCol.UpdateOne(ctx, bson.M{"ownerEmployerId": employerID}, bson.M{"$set": set})
		if err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "company name already taken", "field": "name"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
			return
		}

		var company models.Company
		if err := companiesCol.FindOne(ctx, bson.M{"ownerEmployerId": employerID}).Decode(&company); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"company": company})
	}
}

// POST /company/me/logo — multipart "logo" field, image only.
func UploadCompanyLogo() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		employerID, _, ok := actorObjectID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		fh, err := c.FormFile("logo")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing logo file"})
			return
		}

		companiesCol := database.OpenCollection("companies")
		var company models.Company
		if err := companiesCol.FindOne(ctx, bson.M{"ownerEmployerId": employerID}).Decode(&company); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
			return
		}

		r2, err := utils.NewR2Client(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to init storage client"})
			return
		}

		logoURL, err := utils.UploadCompanyLogoToR2(ctx, r2, company.Slug, fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "logo upload failed", "details": err.Error()})
			return
		}

		now := time.Now().UTC()
		if _, err := companiesCol.UpdateByID(ctx, company.ID, bson.M{
			"$set": bson.M{"logoUrl": logoURL, "updatedAt": now},
		}); err != nil {
			if obj, perr := utils.ObjectNameFromR2PublicURL(logoURL); perr == nil {
				_ = utils.DeleteR2Objects(ctx, r2, []string{obj})
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if company.LogoURL != "" {
			if obj, perr := utils.ObjectNameFromR2PublicURL(company.LogoURL); perr == nil {
				_ = utils.DeleteR2Objects(ctx, r2, []string{obj})
			}
		}

		c.JSON(http.StatusOK, gin.H{"logoUrl": logoURL})
	}
}
