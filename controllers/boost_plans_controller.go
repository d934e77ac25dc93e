package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rojgarihub/rojgarihub-backend/database"
	"github.com/rojgarihub/rojgarihub-backend/dto"
	"github.com/rojgarihub/rojgarihub-backend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// GET /boost/plans — the active catalog, read-only to employers.
func GetBoostPlans() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		plansCol := database.OpenCollection("boost_plans")

		cursor, err := plansCol.Find(ctx, bson.M{"isActive": true},
			options.Find().SetSort(bson.D{{Key: "price", Value: 1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		plans := make([]models.BoostPlan, 0)
		if err := cursor.All(ctx, &plans); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"plans": plans})
	}
}

// POST /admin/boost-plans
func CreateBoostPlan() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateBoostPlanDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		now := time.Now().UTC()
		plan := models.BoostPlan{
			ID:           bson.NewObjectID(),
			Name:         strings.TrimSpace(body.Name),
			Price:        body.Price,
			DurationDays: body.DurationDays,
			Type:         body.Type,
			IsActive:     body.IsActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		plansCol := database.OpenCollection("boost_plans")
		if _, err := plansCol.InsertOne(c.Request.Context(), plan); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"plan": plan})
	}
}

// PUT /admin/boost-plans/:id
func UpdateBoostPlan() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		planID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
			return
		}

		var body dto.UpdateBoostPlanDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		set := bson.M{}
		if body.Name != nil {
			set["name"] = strings.TrimSpace(*body.Name)
		}
		if body.Price != nil {
			if *body.Price <= 0 {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "price must be positive"})
				return
			}
			set["price"] = *body.Price
		}
		if body.DurationDays != nil {
			if *body.DurationDays < 1 {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "duration must be at least one day"})
				return
			}
			set["durationDays"] = *body.DurationDays
		}
		if body.Type != nil {
			set["type"] = *body.Type
		}
		if body.IsActive != nil {
			set["isActive"] = *body.IsActive
		}

		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}
		set["updatedAt"] = time.Now().UTC()

		plansCol := database.OpenCollection("boost_plans")
		res, err := plansCol.UpdateByID(ctx, planID, bson.M{"$set": set})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}

		var plan models.BoostPlan
		if err := plansCol.FindOne(ctx, bson.M{"_id": planID}).Decode(&plan); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"plan": plan})
	}
}

// DELETE /admin/boost-plans/:id — deactivates; existing boosts keep the
// price and duration they copied at creation.
func DeleteBoostPlan() gin.HandlerFunc {
	return func(c *gin.Context) {
		planID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
			return
		}

		plansCol := database.OpenCollection("boost_plans")
		res, err := plansCol.UpdateByID(c.Request.Context(), planID, bson.M{
			"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
