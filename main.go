package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rojgarihub/rojgarihub-backend/controllers"
	"github.com/rojgarihub/rojgarihub-backend/database"
	"github.com/rojgarihub/rojgarihub-backend/middleware"
	"github.com/rojgarihub/rojgarihub-backend/models"
	"github.com/rojgarihub/rojgarihub-backend/utils"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	ctx := context.Background()
	if err := database.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}
	//seeding admin user
	usersCol := database.OpenCollection("users")
	if err := utils.SeedAdminUser(ctx, usersCol); err != nil {
		log.Fatal(err)
	}

	r := gin.New()
	resumeValidator := utils.NewPDFOrImageValidator()

	origins := os.Getenv("ALLOWED_ORIGINS")
	allowedOrigins := map[string]bool{}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// auth
	r.POST("/auth/admin/login", controllers.Login(models.RoleAdmin))
	r.POST("/auth/employee/login", controllers.Login(models.RoleEmployer))
	r.POST("/auth/job-seeker/login", controllers.Login(models.RoleJobSeeker))
	r.POST("/auth/employee/register", controllers.RegisterEmployer())
	r.POST("/auth/job-seeker/register", controllers.RegisterJobSeeker())
	r.POST("/auth/refresh", controllers.Refresh())
	r.POST("/auth/logout", controllers.Logout())

	// public catalog
	r.GET("/jobs", controllers.GetJobs())
	r.GET("/jobs/:id", controllers.GetJob())
	r.GET("/boost/plans", controllers.GetBoostPlans())

	// any authenticated user
	me := r.Group("/profile")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("/me", controllers.GetMyProfile())
		me.PUT("/me", controllers.UpdateMyProfile())
		me.POST("/me/resume", controllers.UploadMyResume(resumeValidator))
		me.POST("/me/password", controllers.ChangeMyPassword())
	}

	// employers ("employee" in the public API)
	employee := r.Group("/")
	employee.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RoleEmployer, models.RoleAdmin))
	{
		employee.POST("/jobs", controllers.CreateJob())
		employee.PUT("/jobs/:id", controllers.UpdateJob())
		employee.DELETE("/jobs/:id", controllers.DeleteJob())
		employee.GET("/jobs/employee/my-jobs", controllers.GetMyJobs())
		employee.GET("/applications/job/:jobId", controllers.GetJobApplications())
		employee.PUT("/applications/:id/status", controllers.UpdateApplicationStatus())
		employee.POST("/boost/create", controllers.CreateBoost())
		employee.GET("/boost/my-boosts", controllers.GetMyBoosts())
		employee.GET("/company/me", controllers.GetMyCompany())
		employee.PUT("/company/me", controllers.UpdateMyCompany())
		employee.POST("/company/me/logo", controllers.UploadCompanyLogo())
	}

	// job seekers
	jobSeeker := r.Group("/")
	jobSeeker.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RoleJobSeeker))
	{
		jobSeeker.POST("/applications/apply", controllers.Apply())
		jobSeeker.GET("/applications/my-applications", controllers.GetMyApplications())
		jobSeeker.DELETE("/applications/:id/withdraw", controllers.WithdrawApplication())
		jobSeeker.POST("/saved-jobs/:jobId", controllers.SaveJob())
		jobSeeker.DELETE("/saved-jobs/:jobId", controllers.UnsaveJob())
		jobSeeker.GET("/saved-jobs", controllers.GetSavedJobs())
	}

	// admin
	admin := r.Group("/")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/admin/employees", controllers.AdminGetEmployees())
		admin.GET("/admin/job-seekers", controllers.AdminGetJobSeekers())
		admin.GET("/admin/jobs", controllers.AdminGetJobs())
		admin.GET("/admin/companies", controllers.AdminGetCompanies())
		admin.PUT("/admin/users/:type/:id/status", controllers.AdminSetUserStatus())
		admin.GET("/admin/dashboard", controllers.AdminGetDashboard())

		admin.POST("/admin/boost-plans", controllers.CreateBoostPlan())
		admin.PUT("/admin/boost-plans/:id", controllers.UpdateBoostPlan())
		admin.DELETE("/admin/boost-plans/:id", controllers.DeleteBoostPlan())

		admin.GET("/boost/admin/all", controllers.GetAllBoosts())
		admin.PUT("/boost/:id/approve", controllers.ApproveBoost())
		admin.PUT("/boost/:id/reject", controllers.RejectBoost())
		admin.PUT("/boost/:id/refund", controllers.RefundBoost())
		admin.GET("/boost/admin/analytics", controllers.GetFinancialAnalytics())
	}

	// Start server on port 8080 (default)
	r.Run()
}
