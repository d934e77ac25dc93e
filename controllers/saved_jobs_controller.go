package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rojgarihub/rojgarihub-backend/database"
	"github.com/rojgarihub/rojgarihub-backend/models"
	"github.com/rojgarihub/rojgarihub-backend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// POST /saved-jobs/:jobId
func SaveJob() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		jobSeekerID, _, ok := actorObjectID(c)
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
		if err := jobsCol.FindOne(ctx, bson.M{"_id": jobID, "status": models.JobStatusActive}).Decode(&job); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}

		saved := models.SavedJob{
			ID:          bson.NewObjectID(),
			JobSeekerID: jobSeekerID,
			JobID:       jobID,
			CreatedAt:   time.Now().UTC(),
		}

		savedCol := database.OpenCollection("saved_jobs")
		if _, err := savedCol.InsertOne(ctx, saved); err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "job already saved"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"savedJob": saved})
	}
}

// DELETE /saved-jobs/:jobId
func UnsaveJob() gin.HandlerFunc {
	return func(c *gin.Context) {
		jobSeekerID, _, ok := actorObjectID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		jobID, err := bson.ObjectIDFromHex(c.Param("jobId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
			return
		}

		savedCol := database.OpenCollection("saved_jobs")
		res, err := savedCol.DeleteOne(c.Request.Context(), bson.M{
			"jobSeekerId": jobSeekerID,
			"jobId":       jobID,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "saved job not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// GET /saved-jobs
func GetSavedJobs() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		jobSeekerID, _, ok := actorObjectID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		savedCol := database.OpenCollection("saved_jobs")
		cursor, err := savedCol.Find(ctx, bson.M{"jobSeekerId": jobSeekerID},
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		saved := make([]models.SavedJob, 0)
		if err := cursor.All(ctx, &saved); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"savedJobs": saved})
	}
}
