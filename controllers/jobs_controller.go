package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rojgarihub/rojgarihub-backend/authz"
	"github.com/rojgarihub/rojgarihub-backend/database"
	"github.com/rojgarihub/rojgarihub-backend/dto"
	"github.com/rojgarihub/rojgarihub-backend/models"
	"github.com/rojgarihub/rojgarihub-backend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// notDeletedJob matches the job unless it has been soft-deleted. Writes
// that reuse it as their filter stay conditional, so a concurrent delete
// can never be overwritten back to life.
func notDeletedJob(jobID bson.ObjectID) bson.M {
	return bson.M{"_id": jobID, "status": bson.M{"$ne": models.JobStatusDeleted}}
}

// publicJobsPipeline sorts boosted jobs first, but only while their
// boost window is still open: a lapsed window stops counting
// immediately, even if the lazy expiry settle has not run yet.
func publicJobsPipeline(filter bson.M, now time.Time, skip, limit int64) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"boostActive": bson.M{"$and": bson.A{
				bson.M{"$eq": bson.A{"$isBoosted", true}},
				bson.M{"$gt": bson.A{"$boostExpiresAt", now}},
			}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "boostActive", Value: -1},
			{Key: "createdAt", Value: -1},
		}}},
		bson.D{{Key: "$skip", Value: skip}},
		bson.D{{Key: "$limit", Value: limit}},
	}
}

// GET /jobs — public search over active jobs. Boosted jobs sort first,
// then newest.
func GetJobs() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		maxLimit, defaultLimit := utils.GetDefaultQueryLimits()
		page := utils.ParseIntDefault(c.Query("page"), 1)
		limit := utils.ParseIntDefault(c.Query("limit"), defaultLimit)
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = defaultLimit
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		skip := int64((page - 1) * limit)

		filter := bson.M{"status": models.JobStatusActive}

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["$or"] = bson.A{
				bson.M{"title": bson.M{"$regex": search, "$options": "i"}},
				bson.M{"description": bson.M{"$regex": search, "$options": "i"}},
			}
		}
		if location := strings.TrimSpace(c.Query("location")); location != "" {
			filter["location"] = bson.M{"$regex": location, "$options": "i"}
		}
		if jobType := strings.TrimSpace(c.Query("type")); jobType != "" {
			filter["type"] = jobType
		}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}
		if experience := strings.TrimSpace(c.Query("experience")); experience != "" {
			filter["experience"] = experience
		}
		if b, err := utils.ParseBoolQuery(c.Query("isRemote")); err == nil && b != nil {
			filter["isRemote"] = *b
		}

		jobsCol := database.OpenCollection("jobs")
		cursor, err := jobsCol.Aggregate(ctx, publicJobsPipeline(filter, time.Now().UTC(), skip, int64(limit)))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		jobs := make([]models.Job, 0)
		for cursor.Next(ctx) {
			var j models.Job
			if err := cursor.Decode(&j); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			jobs = append(jobs, j)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		total, err := jobsCol.CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"jobs":        jobs,
			"currentPage": page,
			"totalPages":  utils.TotalPages(total, limit),
			"totalCount":  total,
		})
	}
}

// GET /jobs/:id — job detail. Anonymous callers resolve only ACTIVE
// jobs; the owning employer and admins resolve any status. Non-owners
// get the same 404 as a missing id so drafts stay invisible.
func GetJob() gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
			return
		}

		jobsCol := database.OpenCollection("jobs")
		var job models.Job
		if err := jobsCol.FindOne(c.Request.Context(), bson.M{"_id": jobID}).Decode(&job); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}

		if job.Status != models.JobStatusActive {
			p, ok := optionalPrincipal(c)
			if !ok || !authz.Can(p, authz.ActionViewJob, authz.Resource{OwnerEmployerID: job.OwnerEmployerID.Hex()}) {
				c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"job": job})
	}
}

// POST /jobs
func CreateJob() gin.HandlerFunc {
	return func(c *gin.Context) {
		employerID, _, ok := actorObjectID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		var body dto.CreateJobDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		status := models.JobStatusActive
		switch models.JobStatus(body.Status) {
		case models.JobStatusDraft:
			status = models.JobStatusDraft
		case models.JobStatusInactive:
			status = models.JobStatusInactive
		}

		var companyID *bson.ObjectID
		var employer models.User
		usersCol := database.OpenCollection("users")
		if err := usersCol.FindOne(c.Request.Context(), bson.M{"_id": employerID}).Decode(&employer); err == nil {
			companyID = employer.CompanyID
		}

		now := time.Now().UTC()
		job := models.Job{
			ID:              bson.NewObjectID(),
			OwnerEmployerID: employerID,
			CompanyID:       companyID,
			Title:           strings.TrimSpace(body.Title),
			Slug:            utils.GenerateSlug(body.Title),
			Description:     body.Description,
			Requirements:    body.Requirements,
			Location:        body.Location,
			Type:            body.Type,
			Category:        body.Category,
			Experience:      body.Experience,
			IsRemote:        body.IsRemote,
			SalaryMin:       body.SalaryMin,
			SalaryMax:       body.SalaryMax,
			Status:          status,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		jobsCol := database.OpenCollection("jobs")
		if _, err := jobsCol.InsertOne(c.Request.Context(), job); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"job": job})
	}
}

// PUT /jobs/:id
func UpdateJob() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		jobID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
			return
		}

		p, ok := principalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		var body dto.UpdateJobDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		jobsCol := database.OpenCollection("jobs")

		var job models.Job
		if err := jobsCol.FindOne(ctx, notDeletedJob(jobID)).Decode(&job); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}

		if !authz.Can(p, authz.ActionUpdateJob, authz.Resource{OwnerEmployerID: job.OwnerEmployerID.Hex()}) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your job"})
			return
		}

		set := bson.M{}
		if body.Title != nil {
			set["title"] = strings.TrimSpace(*body.Title)
			set["slug"] = utils.GenerateSlug(*body.Title)
		}
		if body.Description != nil {
			set["description"] = *body.Description
		}
		if body.Requirements != nil {
			set["requirements"] = *body.Requirements
		}
		if body.Location != nil {
			set["location"] = *body.Location
		}
		if body.Type != nil {
			set["type"] = *body.Type
		}
		if body.Category != nil {
			set["category"] = *body.Category
		}
		if body.Experience != nil {
			set["experience"] = *body.Experience
		}
		if body.IsRemote != nil {
			set["isRemote"] = *body.IsRemote
		}
		if body.SalaryMin != nil {
			set["salaryMin"] = *body.SalaryMin
		}
		if body.SalaryMax != nil {
			set["salaryMax"] = *body.SalaryMax
		}
		if body.Status != nil {
			// DELETED only through the delete endpoint
			switch st := models.JobStatus(*body.Status); st {
			case models.JobStatusActive, models.JobStatusInactive, models.JobStatusDraft:
				set["status"] = st
			default:
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid job status"})
				return
			}
		}

		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}
		set["updatedAt"] = time.Now().UTC()

		// conditional on not-deleted: a delete racing in between the read
		// above and this write must win, not be overwritten
		res, err := jobsCol.UpdateOne(ctx, notDeletedJob(jobID), bson.M{"$set": set})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "job was deleted"})
			return
		}

		var updated models.Job
		if err := jobsCol.FindOne(ctx, bson.M{"_id": jobID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"job": updated})
	}
}

// DELETE /jobs/:id — soft delete. Applications and boosts keep their
// references; the job just stops resolving anywhere except history.
func DeleteJob() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		jobID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
			return
		}

		p, ok := principalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		jobsCol := database.OpenCollection("jobs")

		var job models.Job
		if err := jobsCol.FindOne(ctx, notDeletedJob(jobID)).Decode(&job); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}

		if !authz.Can(p, authz.ActionDeleteJob, authz.Resource{OwnerEmployerID: job.OwnerEmployerID.Hex()}) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your job"})
			return
		}

		now := time.Now().UTC()
		res, err := jobsCol.UpdateOne(ctx,
			notDeletedJob(jobID),
			bson.M{
				"$set":   bson.M{"status": models.JobStatusDeleted, "isBoosted": false, "updatedAt": now},
				"$unset": bson.M{"boostExpiresAt": ""},
			},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// GET /jobs/employee/my-jobs
func GetMyJobs() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		employerID, _, ok := actorObjectID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		maxLimit, defaultLimit := utils.GetDefaultQueryLimits()
		page := utils.ParseIntDefault(c.Query("page"), 1)
		limit := utils.ParseIntDefault(c.Query("limit"), defaultLimit)
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = defaultLimit
		}
		if limit > maxLimit {
			limit = maxLimit
		}

		filter := bson.M{
			"ownerEmployerId": employerID,
			"status":          bson.M{"$ne": models.JobStatusDeleted},
		}

		findOpts := options.Find().
			SetSkip(int64((page - 1) * limit)).
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		jobsCol := database.OpenCollection("jobs")
		cursor, err := jobsCol.Find(ctx, filter, findOpts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		jobs := make([]models.Job, 0)
		for cursor.Next(ctx) {
			var j models.Job
			if err := cursor.Decode(&j); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			jobs = append(jobs, j)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		total, err := jobsCol.CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"jobs":        jobs,
			"currentPage": page,
			"totalPages":  utils.TotalPages(total, limit),
			"totalCount":  total,
		})
	}
}
