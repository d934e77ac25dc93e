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
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func adminPageParams(c *gin.Context) (page, limit int, skip int64) {
	maxLimit, defaultLimit := utils.GetDefaultQueryLimits()
	page = utils.ParseIntDefault(c.Query("page"), 1)
	limit = utils.ParseIntDefault(c.Query("limit"), defaultLimit)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, int64((page - 1) * limit)
}

// GET /admin/employees and /admin/job-seekers share this shape.
func adminListUsers(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page, limit, skip := adminPageParams(c)

		filter := bson.M{"role": role}
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			filter["$or"] = bson.A{
				bson.M{"email": bson.M{"$regex": q, "$options": "i"}},
				bson.M{"fullName": bson.M{"$regex": q, "$options": "i"}},
			}
		}
		if b, err := utils.ParseBoolQuery(c.Query("isActive")); err == nil && b != nil {
			filter["isActive"] = *b
		}

		usersCol := database.OpenCollection("users")
		cursor, err := usersCol.Find(ctx, filter, options.Find().
			SetSkip(skip).
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "createdAt", Value: -1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		users := make([]models.User, 0)
		if err := cursor.All(ctx, &users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		total, err := usersCol.CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"users":       users,
			"currentPage": page,
			"totalPages":  utils.TotalPages(total, limit),
			"totalCount":  total,
		})
	}
}

func AdminGetEmployees() gin.HandlerFunc {
	return adminListUsers(models.RoleEmployer)
}

func AdminGetJobSeekers() gin.HandlerFunc {
	return adminListUsers(models.RoleJobSeeker)
}

// GET /admin/jobs — all statuses, soft-deleted included.
func AdminGetJobs() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page, limit, skip := adminPageParams(c)

		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = models.JobStatus(status)
		}

		jobsCol := database.OpenCollection("jobs")
		cursor, err := jobsCol.Find(ctx, filter, options.Find().
			SetSkip(skip).
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "createdAt", Value: -1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		jobs := make([]models.Job, 0)
		if err := cursor.All(ctx, &jobs); err != nil {
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

// GET /admin/companies
func AdminGetCompanies() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page, limit, skip := adminPageParams(c)

		filter := bson.M{}
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			filter["name"] = bson.M{"$regex": q, "$options": "i"}
		}

		companiesCol := database.OpenCollection("companies")
		cursor, err := companiesCol.Find(ctx, filter, options.Find().
			SetSkip(skip).
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "name", Value: 1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		companies := make([]models.Company, 0)
		if err := cursor.All(ctx, &companies); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		total, err := companiesCol.CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"companies":   companies,
			"currentPage": page,
			"totalPages":  utils.TotalPages(total, limit),
			"totalCount":  total,
		})
	}
}

// PUT /admin/users/:type/:id/status — soft enable/disable. Users are
// never hard-deleted. Disabling also revokes outstanding refresh tokens
// so the account goes dark at the next access-token expiry.
func AdminSetUserStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		role, ok := models.ParseRole(c.Param("type"))
		if !ok || role == models.RoleAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user type"})
			return
		}

		userID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		var body dto.UpdateUserStatusDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		usersCol := database.OpenCollection("users")
		res, err := usersCol.UpdateOne(ctx,
			bson.M{"_id": userID, "role": role},
			bson.M{"$set": bson.M{"isActive": *body.IsActive, "updatedAt": time.Now().UTC()}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		if !*body.IsActive {
			_ = RevokeAllRefreshTokens(c, userID)
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// GET /admin/dashboard — rollup counts, recomputed per request.
func AdminGetDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usersCol := database.OpenCollection("users")
		jobsCol := database.OpenCollection("jobs")
		applicationsCol := database.OpenCollection("applications")
		boostsCol := database.OpenCollection("boosts")

		counts := gin.H{}

		type countSpec struct {
			key    string
			col    string
			filter bson.M
		}
		specs := []countSpec{
			{"employers", "users", bson.M{"role": models.RoleEmployer}},
			{"jobSeekers", "users", bson.M{"role": models.RoleJobSeeker}},
			{"activeJobs", "jobs", bson.M{"status": models.JobStatusActive}},
			{"totalJobs", "jobs", bson.M{"status": bson.M{"$ne": models.JobStatusDeleted}}},
			{"applications", "applications", bson.M{}},
			{"pendingApplications", "applications", bson.M{"status": models.ApplicationPending}},
			{"pendingBoosts", "boosts", bson.M{"status": models.BoostPending}},
			{"approvedBoosts", "boosts", bson.M{"status": models.BoostApproved}},
		}

		for _, s := range specs {
			var col = usersCol
			switch s.col {
			case "jobs":
				col = jobsCol
			case "applications":
				col = applicationsCol
			case "boosts":
				col = boostsCol
			}
			n, err := col.CountDocuments(ctx, s.filter)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			counts[s.key] = n
		}

		c.JSON(http.StatusOK, counts)
	}
}
