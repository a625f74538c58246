package routes

import (
	"net/http"
	"time"

	"github.com/theaitel/loginaitel-sub003/handlers"
	"github.com/theaitel/loginaitel-sub003/middleware"
	"github.com/theaitel/loginaitel-sub003/models"
	"github.com/theaitel/loginaitel-sub003/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/otp/request", hb.Auth.RequestOTP)
		api.POST("/otp/verify", hb.Auth.VerifyOTP)
		api.POST("/admin/login", hb.Auth.AdminLogin)

		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/logout", hb.Auth.Logout)
	}
}

// RegisterAdminRoutes sets up endpoints for platform operators.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.Use(middleware.RequireRoles("admin", "engineer"))

		api.POST("/clients", hb.Admin.CreateClient)
		api.GET("/clients", hb.Admin.ListClients)
		api.PUT("/clients/:id/suspend", hb.Admin.SuspendClient)
		api.PUT("/clients/:id/reactivate", hb.Admin.ReactivateClient)

		api.POST("/agents", hb.Admin.CreateAgent)
		api.PUT("/agents/:id", hb.Admin.UpdateAgent)
		api.GET("/agents/unassigned", hb.Admin.ListUnassignedAgents)
		api.PUT("/agents/:id/assign", hb.Admin.AssignAgent)
		api.PUT("/agents/:id/unassign", hb.Admin.UnassignAgent)

		api.POST("/numbers", hb.Admin.CreateNumber)
		api.GET("/numbers/unassigned", hb.Admin.ListUnassignedNumbers)
		api.PUT("/numbers/:id/assign", hb.Admin.AssignNumber)
		api.PUT("/numbers/:id/unassign", hb.Admin.UnassignNumber)
	}
}

// RegisterTenantRoutes sets up a client's own-account endpoints.
func RegisterTenantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/account")
	{
		api.Use(middleware.JWTAuthMiddleware())

		api.GET("", middleware.RequireRoles("client"), hb.Tenant.GetAccount)
		api.POST("/team", middleware.RequireRoles("client"), hb.Tenant.InviteSubUser)
		api.GET("/team", middleware.RequireRoles("client", models.RoleLeadManager, models.RoleMonitor), hb.Tenant.ListSubUsers)
		api.DELETE("/team/:id", middleware.RequireRoles("client"), hb.Tenant.DeactivateSubUser)
		api.PUT("/device", hb.Tenant.RegisterDevice)
		api.GET("/agents", hb.Tenant.ListAgents)
		api.GET("/numbers", hb.Tenant.ListNumbers)
	}
}

// RegisterCampaignRoutes sets up campaign and lead endpoints.
func RegisterCampaignRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/campaigns")
	{
		api.Use(middleware.JWTAuthMiddleware())

		manage := middleware.RequireRoles("client", models.RoleLeadManager)
		view := middleware.RequireRoles("client", models.RoleLeadManager, models.RoleTelecaller, models.RoleMonitor)

		api.POST("", manage, hb.Campaign.Create)
		api.GET("", view, hb.Campaign.List)
		api.GET("/:id", view, hb.Campaign.Get)
		api.PUT("/:id", manage, hb.Campaign.Update)
		api.PUT("/:id/status", manage, hb.Campaign.SetStatus)
		api.DELETE("/:id", manage, hb.Campaign.Delete)

		api.POST("/:id/leads", manage, hb.Campaign.UploadLeads)
		api.GET("/:id/leads", view, hb.Campaign.ListLeads)

		api.GET("/:id/calls", view, hb.Calls.ListByCampaign)
	}

	leads := r.Group("/api/leads")
	{
		leads.Use(middleware.JWTAuthMiddleware())

		work := middleware.RequireRoles("client", models.RoleLeadManager, models.RoleTelecaller)

		leads.PUT("/:leadId/assign", middleware.RequireRoles("client", models.RoleLeadManager), hb.Campaign.AssignLead)
		leads.PUT("/:leadId/stage", work, hb.Campaign.SetLeadStage)
		leads.PUT("/:leadId/notes", work, hb.Campaign.SetLeadNotes)
	}
}

// RegisterBillingRoutes sets up credit and seat purchase endpoints. The
// Razorpay webhook is unauthenticated; it is verified by signature instead.
func RegisterBillingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/billing/webhook", hb.Billing.Webhook)

	api := r.Group("/api/billing")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/plans", hb.Billing.Plans)

		owner := middleware.RequireRoles("client")
		api.POST("/credits", owner, hb.Billing.CreateCreditOrder)
		api.POST("/seats", owner, hb.Billing.CreateSeatUpgrade)
		api.GET("/orders", owner, hb.Billing.ListOrders)
	}
}

// RegisterCallRoutes sets up call placement and history endpoints.
func RegisterCallRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/calls")
	{
		api.Use(middleware.JWTAuthMiddleware())

		place := middleware.RequireRoles("client", models.RoleLeadManager, models.RoleTelecaller)
		view := middleware.RequireRoles("client", models.RoleLeadManager, models.RoleTelecaller, models.RoleMonitor, "admin", "engineer")

		api.POST("", place, hb.Calls.PlaceCall)
		api.GET("", view, hb.Calls.ListByClient)
		api.GET("/:id", view, hb.Calls.Get)
		api.GET("/:id/recording", view, hb.Calls.RecordingURL)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// periodic dependency monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "deps": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterTenantRoutes(r, hb)
	RegisterCampaignRoutes(r, hb)
	RegisterBillingRoutes(r, hb)
	RegisterCallRoutes(r, hb)
	RegisterHealthRoute(r)
}
