package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rojgarihub/rojgarihub-backend/authz"
	"github.com/rojgarihub/rojgarihub-backend/database"
	"github.com/rojgarihub/rojgarihub-backend/dto"
	"github.com/rojgarihub/rojgarihub-backend/models"
	"github.com/rojgarihub/rojgarihub-backend/utils"
	"github.com/rojgarihub/rojgarihub-backend/workflow"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// POST /applications/apply
//
// One open application per (job, seeker). The pre-check gives the client
// a clean 409; the partial unique index catches the race where two apply
// calls pass the check together.
func Apply() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		jobSeekerID, _, ok := actorObjectID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		var body dto.ApplyDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		jobID, err := bson.ObjectIDFromHex(body.JobID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
			return
		}

		jobsCol := database.OpenCollection("jobs")
		var job models.Job
		if err := jobsCol.FindOne(ctx, bson.M{"_id": jobID}).Decode(&job); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		if job.Status != models.JobStatusActive {
			c.JSON(http.StatusConflict, gin.H{"error": "job is not accepting applications"})
			return
		}

		applicationsCol := database.OpenCollection("applications")

		count, err := applicationsCol.CountDocuments(ctx, bson.M{
			"jobId":       jobID,
			"jobSeekerId": jobSeekerID,
			"status":      bson.M{"$in": workflow.OpenApplicationStatuses()},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "you already applied to this job"})
			return
		}

		now := time.Now().UTC()
		application := models.Application{
			ID:          bson.NewObjectID(),
			JobID:       jobID,
			JobSeekerID: jobSeekerID,
			Status:      models.ApplicationPending,
			CoverLetter: body.CoverLetter,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if _, err := applicationsCol.InsertOne(ctx, application); err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "you already applied to this job"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"application": application})
	}
}

// GET /applications/my-applications
func GetMyApplications() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		jobSeekerID, _, ok := actorObjectID(c)
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

		filter := bson.M{"jobSeekerId": jobSeekerID}

		findOpts := options.Find().
			SetSkip(int64((page - 1) * limit)).
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		applicationsCol := database.OpenCollection("applications")
		cursor, err := applicationsCol.Find(ctx, filter, findOpts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		applications := make([]models.Application, 0)
		for cursor.Next(ctx) {
			var a models.Application
			if err := cursor.Decode(&a); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			applications = append(applications, a)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		total, err := applicationsCol.CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"applications": applications,
			"currentPage":  page,
			"totalPages":   utils.TotalPages(total, limit),
			"totalCount":   total,
		})
	}
}

// GET /applications/job/:jobId — applicants to one of the employer's jobs.
func GetJobApplications() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		p, ok := principalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		jobID, err := bson.ObjectIDFromHex(c.Param("jobId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
			return
		}

		jobsCol := database.OpenCollection("jobs")
		var job models.Job
		if err := jobsCol.FindOne(ctx, bson.M{"_id": jobID}).Decode(&job); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}

		if !authz.Can(p, authz.ActionViewJobApplications, authz.Resource{OwnerEmployerID: job.OwnerEmployerID.Hex()}) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your job"})
			return
		}

		applicationsCol := database.OpenCollection("applications")
		cursor, err := applicationsCol.Find(ctx, bson.M{"jobId": jobID},
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		applications := make([]models.Application, 0)
		for cursor.Next(ctx) {
			var a models.Application
			if err := cursor.Decode(&a); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			applications = append(applications, a)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"applications": applications})
	}
}

// PUT /applications/:id/status
//
// The write is conditional on a prior status that may legally move to the
// requested one, so two racing reviews cannot both land: the second
// matches nothing and is reported as a conflict.
func UpdateApplicationStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		p, ok := principalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		applicationID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application id"})
			return
		}

		var body dto.UpdateApplicationStatusDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		newStatus, err := workflow.ParseApplicationStatus(body.Status)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		if !workflow.IsReviewStatus(newStatus) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "status must be REVIEWED, ACCEPTED or REJECTED"})
			return
		}

		applicationsCol := database.OpenCollection("applications")
		jobsCol := database.OpenCollection("jobs")

		var application models.Application
		if err := applicationsCol.FindOne(ctx, bson.M{"_id": applicationID}).Decode(&application); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
			return
		}

		var job models.Job
		if err := jobsCol.FindOne(ctx, bson.M{"_id": application.JobID}).Decode(&job); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}

		if !authz.Can(p, authz.ActionReviewApplication, authz.Resource{OwnerEmployerID: job.OwnerEmployerID.Hex()}) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your job"})
			return
		}

		// statuses this target may legally be reached from
		var from bson.A
		for _, s := range []models.ApplicationStatus{
			models.ApplicationPending, models.ApplicationReviewed,
		} {
			if workflow.CanTransitionApplication(s, newStatus) {
				from = append(from, s)
			}
		}

		now := time.Now().UTC()
		res, err := applicationsCol.UpdateOne(ctx,
			bson.M{"_id": applicationID, "status": bson.M{"$in": from}},
			bson.M{"$set": bson.M{"status": newStatus, "updatedAt": now}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "application can no longer move to " + string(newStatus)})
			return
		}

		var updated models.Application
		if err := applicationsCol.FindOne(ctx, bson.M{"_id": applicationID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"application": updated})
	}
}

// DELETE /applications/:id/withdraw — applicant only, only while PENDING.
func WithdrawApplication() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		jobSeekerID, p, ok := actorObjectID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		applicationID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application id"})
			return
		}

		applicationsCol := database.OpenCollection("applications")

		var application models.Application
		if err := applicationsCol.FindOne(ctx, bson.M{"_id": applicationID}).Decode(&application); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
			return
		}

		if !authz.Can(p, authz.ActionWithdrawApplication, authz.Resource{JobSeekerID: application.JobSeekerID.Hex()}) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your application"})
			return
		}

		now := time.Now().UTC()
		res, err := applicationsCol.UpdateOne(ctx,
			bson.M{"_id": applicationID, "jobSeekerId": jobSeekerID, "status": models.ApplicationPending},
			bson.M{"$set": bson.M{"status": models.ApplicationWithdrawn, "updatedAt": now}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "only pending applications can be withdrawn"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
