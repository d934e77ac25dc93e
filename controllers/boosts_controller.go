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
	"github.com/rojgarihub/rojgarihub-backend/workflow"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// POST /boost/create
//
// Price, fee and net revenue are derived from the plan once, here, and
// stored. Nothing downstream recomputes them.
func CreateBoost() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		employerID, p, ok := actorObjectID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		var body dto.CreateBoostDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		jobID, err := bson.ObjectIDFromHex(body.JobID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
			return
		}
		planID, err := bson.ObjectIDFromHex(body.BoostPlanID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid boost plan id"})
			return
		}

		jobsCol := database.OpenCollection("jobs")
		var job models.Job
		if err := jobsCol.FindOne(ctx, notDeletedJob(jobID)).Decode(&job); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}

		if !authz.Can(p, authz.ActionCreateBoost, authz.Resource{OwnerEmployerID: job.OwnerEmployerID.Hex()}) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your job"})
			return
		}

		plansCol := database.OpenCollection("boost_plans")
		var plan models.BoostPlan
		if err := plansCol.FindOne(ctx, bson.M{"_id": planID, "isActive": true}).Decode(&plan); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "boost plan not found"})
			return
		}

		now := time.Now().UTC()
		boost := models.Boost{
			ID:            bson.NewObjectID(),
			JobID:         jobID,
			EmployerID:    employerID,
			BoostPlanID:   plan.ID,
			Status:        models.BoostPending,
			PaymentStatus: models.PaymentPending,
			PaymentMethod: strings.TrimSpace(body.PaymentMethod),
			Price:         plan.Price,
			PlatformFee:   workflow.PlatformFee(plan.Price),
			NetRevenue:    workflow.NetRevenue(plan.Price),
			DurationDays:  plan.DurationDays,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		boostsCol := database.OpenCollection("boosts")
		if _, err := boostsCol.InsertOne(ctx, boost); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"boost": boost})
	}
}

// GET /boost/my-boosts
func GetMyBoosts() gin.HandlerFunc {
	return func(c *gin.Context) {
		employerID, _, ok := actorObjectID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		boosts, err := listBoosts(c, bson.M{"employerId": employerID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"boosts": boosts})
	}
}

// GET /boost/admin/all
func GetAllBoosts() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			st, err := workflow.ParseBoostStatus(status)
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			filter["status"] = st
		}

		boosts, err := listBoosts(c, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"boosts": boosts})
	}
}

// listBoosts reads boosts and settles lazy expiry: an APPROVED boost past
// its window is persisted as EXPIRED and the job's boosted flag cleared
// before it is returned.
func listBoosts(c *gin.Context, filter bson.M) ([]models.Boost, error) {
	ctx := c.Request.Context()
	boostsCol := database.OpenCollection("boosts")

	cursor, err := boostsCol.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	now := time.Now().UTC()
	boosts := make([]models.Boost, 0)
	for cursor.Next(ctx) {
		var b models.Boost
		if err := cursor.Decode(&b); err != nil {
			return nil, err
		}
		if effective := workflow.EffectiveBoostStatus(b, now); effective != b.Status {
			settleExpiredBoost(c, b)
			b.Status = effective
		}
		boosts = append(boosts, b)
	}
	return boosts, cursor.Err()
}

// settleExpiredBoost persists a lazily detected expiry, best effort. The
// filter repeats the APPROVED precondition so a concurrent refund wins
// cleanly.
func settleExpiredBoost(c *gin.Context, b models.Boost) {
	ctx := c.Request.Context()
	now := time.Now().UTC()

	boostsCol := database.OpenCollection("boosts")
	res, err := boostsCol.UpdateOne(ctx,
		bson.M{"_id": b.ID, "status": models.BoostApproved},
		bson.M{"$set": bson.M{"status": models.BoostExpired, "updatedAt": now}},
	)
	if err != nil || res.ModifiedCount == 0 {
		return
	}

	jobsCol := database.OpenCollection("jobs")
	_, _ = jobsCol.UpdateByID(ctx, b.JobID, bson.M{
		"$set":   bson.M{"isBoosted": false, "updatedAt": now},
		"$unset": bson.M{"boostExpiresAt": ""},
	})
}

// PUT /boost/:id/approve — admin, PENDING only. Approval marks the
// payment collected and lights up the job.
func ApproveBoost() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		boostID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid boost id"})
			return
		}

		boostsCol := database.OpenCollection("boosts")
		now := time.Now().UTC()

		res, err := boostsCol.UpdateOne(ctx,
			bson.M{"_id": boostID, "status": models.BoostPending},
			bson.M{"$set": bson.M{
				"status":        models.BoostApproved,
				"paymentStatus": models.PaymentPaid,
				"approvedAt":    now,
				"updatedAt":     now,
			}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			boostTransitionConflict(c, boostID, models.BoostApproved)
			return
		}

		var boost models.Boost
		if err := boostsCol.FindOne(ctx, bson.M{"_id": boostID}).Decode(&boost); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		jobsCol := database.OpenCollection("jobs")
		_, _ = jobsCol.UpdateByID(ctx, boost.JobID, bson.M{
			"$set": bson.M{
				"isBoosted":      true,
				"boostExpiresAt": workflow.BoostWindowEnd(now, boost.DurationDays),
				"updatedAt":      now,
			},
		})

		c.JSON(http.StatusOK, gin.H{"boost": boost})
	}
}

// PUT /boost/:id/reject — admin, PENDING only, reason required.
func RejectBoost() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		boostID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid boost id"})
			return
		}

		var body dto.BoostReasonDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		boostsCol := database.OpenCollection("boosts")
		now := time.Now().UTC()

		res, err := boostsCol.UpdateOne(ctx,
			bson.M{"_id": boostID, "status": models.BoostPending},
			bson.M{"$set": bson.M{
				"status":          models.BoostRejected,
				"rejectionReason": strings.TrimSpace(body.Reason),
				"updatedAt":       now,
			}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			boostTransitionConflict(c, boostID, models.BoostRejected)
			return
		}

		var boost models.Boost
		if err := boostsCol.FindOne(ctx, bson.M{"_id": boostID}).Decode(&boost); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"boost": boost})
	}
}

// PUT /boost/:id/refund — admin, APPROVED only. The boost leaves the
// visible pool (EXPIRED) and the payment is marked refunded in the same
// write, so the two can never disagree.
func RefundBoost() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		boostID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid boost id"})
			return
		}

		var body dto.BoostReasonDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		boostsCol := database.OpenCollection("boosts")
		now := time.Now().UTC()

		res, err := boostsCol.UpdateOne(ctx,
			bson.M{"_id": boostID, "status": models.BoostApproved},
			bson.M{"$set": bson.M{
				"status":        models.BoostExpired,
				"paymentStatus": models.PaymentRefunded,
				"refundReason":  strings.TrimSpace(body.Reason),
				"updatedAt":     now,
			}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			boostTransitionConflict(c, boostID, models.BoostExpired)
			return
		}

		var boost models.Boost
		if err := boostsCol.FindOne(ctx, bson.M{"_id": boostID}).Decode(&boost); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		jobsCol := database.OpenCollection("jobs")
		_, _ = jobsCol.UpdateByID(ctx, boost.JobID, bson.M{
			"$set":   bson.M{"isBoosted": false, "updatedAt": now},
			"$unset": bson.M{"boostExpiresAt": ""},
		})

		c.JSON(http.StatusOK, gin.H{"boost": boost})
	}
}

// boostTransitionConflict distinguishes a missing boost from one whose
// status no longer permits the transition.
func boostTransitionConflict(c *gin.Context, boostID bson.ObjectID, target models.BoostStatus) {
	boostsCol := database.OpenCollection("boosts")

	var boost models.Boost
	if err := boostsCol.FindOne(c.Request.Context(), bson.M{"_id": boostID}).Decode(&boost); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "boost not found"})
		return
	}
	c.JSON(http.StatusConflict, gin.H{
		"error": "boost is " + string(boost.Status) + " and cannot move to " + string(target),
	})
}

// GET /boost/admin/analytics — recomputed per request, never cached.
func GetFinancialAnalytics() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		boostsCol := database.OpenCollection("boosts")

		revenuePipeline := mongo.Pipeline{
			bson.D{{Key: "$match", Value: bson.M{"paymentStatus": models.PaymentPaid}}},
			bson.D{{Key: "$group", Value: bson.M{
				"_id":              nil,
				"totalPrice":       bson.M{"$sum": "$price"},
				"totalPlatformFee": bson.M{"$sum": "$platformFee"},
				"totalNetRevenue":  bson.M{"$sum": "$netRevenue"},
				"paidBoosts":       bson.M{"$sum": 1},
			}}},
		}

		var revenue struct {
			TotalPrice       float64 `bson:"totalPrice"`
			TotalPlatformFee float64 `bson:"totalPlatformFee"`
			TotalNetRevenue  float64 `bson:"totalNetRevenue"`
			PaidBoosts       int64   `bson:"paidBoosts"`
		}
		cursor, err := boostsCol.Aggregate(ctx, revenuePipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if cursor.Next(ctx) {
			if err := cursor.Decode(&revenue); err != nil {
				cursor.Close(ctx)
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
		cursor.Close(ctx)

		countsByStatus, err := groupCounts(c, boostsCol, "$status")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		countsByPayment, err := groupCounts(c, boostsCol, "$paymentStatus")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		planPipeline := mongo.Pipeline{
			bson.D{{Key: "$match", Value: bson.M{"paymentStatus": models.PaymentPaid}}},
			bson.D{{Key: "$group", Value: bson.M{
				"_id":        "$boostPlanId",
				"boosts":     bson.M{"$sum": 1},
				"netRevenue": bson.M{"$sum": "$netRevenue"},
			}}},
			bson.D{{Key: "$sort", Value: bson.M{"netRevenue": -1}}},
		}
		planCursor, err := boostsCol.Aggregate(ctx, planPipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer planCursor.Close(ctx)

		revenueByPlan := make([]bson.M, 0)
		if err := planCursor.All(ctx, &revenueByPlan); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"totalPrice":       revenue.TotalPrice,
			"totalPlatformFee": revenue.TotalPlatformFee,
			"totalNetRevenue":  revenue.TotalNetRevenue,
			"paidBoosts":       revenue.PaidBoosts,
			"byStatus":         countsByStatus,
			"byPaymentStatus":  countsByPayment,
			"revenueByPlan":    revenueByPlan,
		})
	}
}

func groupCounts(c *gin.Context, col *mongo.Collection, field string) (map[string]int64, error) {
	ctx := c.Request.Context()
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   field,
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.ID] = row.Count
	}
	return counts, cursor.Err()
}
