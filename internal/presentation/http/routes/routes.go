package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/config"
	"github.com/sangkips/billbook-api/internal/presentation/http/handler"
	"github.com/sangkips/billbook-api/internal/presentation/http/middleware"
	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/sangkips/billbook-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Bill      *handler.BillHandler
	Dashboard *handler.DashboardHandler
	Finance   *handler.FinanceHandler
	Expense   *handler.ExpenseHandler
	Catalog   *handler.CatalogHandler
	Tax       *handler.TaxHandler
	Report    *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager  *utils.JWTManager
	Cfg         *config.Config
	Logger      *logger.Logger
	RateLimiter *middleware.RateLimiter
	Idempotency middleware.IdempotencyConfig
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	handler.RegisterValidation()

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		}
		if deps.RateLimiter != nil {
			body["rate_limit"] = deps.RateLimiter.Stats()
		}
		c.JSON(200, body)
	})

	api := router.Group("/api")
	api.Use(middleware.AdminAuth(deps.JWTManager, deps.Cfg.Auth.Enabled))
	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.Middleware())
	}

	registerBillRoutes(api, h, deps)
	registerFinanceRoutes(api, h)
	registerCatalogRoutes(api, h)
	registerReportRoutes(api, h)

	return router
}

func registerBillRoutes(api *gin.RouterGroup, h *Handlers, deps *Deps) {
	bills := api.Group("/bills")
	{
		bills.POST("", middleware.Idempotency(deps.Idempotency), h.Bill.Create)
		bills.GET("/admin/:admin_id", h.Bill.ListByAdmin)
		bills.GET("/pending-balances/:admin_id", h.Bill.PendingBalances)
		bills.GET("/previous-customers/:admin_id", h.Bill.PreviousCustomers)
		bills.GET("/active-services/:admin_id", h.Bill.ActiveServices)
		bills.PUT("/update-payment/:bill_id", h.Bill.UpdatePayment)
		bills.GET("/:bill_id", h.Bill.Get)
		bills.PUT("/:bill_id", h.Bill.Update)
		bills.DELETE("/:bill_id", h.Bill.Delete)
	}
	api.PUT("/customer/update", h.Bill.RenameCustomer)

	api.GET("/dashboard/:admin_id", h.Dashboard.GetSummary)
}

func registerFinanceRoutes(api *gin.RouterGroup, h *Handlers) {
	profit := api.Group("/profit")
	{
		profit.GET("/calculate", h.Finance.Profit)
		profit.GET("/summary", h.Finance.Summary)
	}

	api.POST("/expenses", h.Expense.Add)
	api.GET("/expenses", h.Expense.List)
	api.GET("/expense-categories", h.Expense.Categories)
	api.PATCH("/expenses/:id", h.Expense.Rename)
	api.DELETE("/expenses/:id", h.Expense.Delete)
}

func registerCatalogRoutes(api *gin.RouterGroup, h *Handlers) {
	services := api.Group("/services")
	{
		services.POST("/add", h.Catalog.Add)
		services.GET("/view/:admin_id", h.Catalog.ListActive)
		services.POST("/remove", h.Catalog.Remove)
		services.POST("/restore", h.Catalog.Restore)
		services.GET("/deleted/:admin_id", h.Catalog.ListDeleted)
		services.POST("/edit", h.Catalog.Edit)
	}

	api.GET("/tax-details/:adminId", h.Tax.Get)
	api.POST("/tax-details", h.Tax.Save)
}

func registerReportRoutes(api *gin.RouterGroup, h *Handlers) {
	reports := api.Group("/reports")
	{
		reports.GET("", h.Report.Reports)
		reports.GET("/customer", h.Report.Customer)
		reports.GET("/work-history", h.Report.WorkHistory)
		reports.GET("/export", h.Report.Export)
	}
	api.GET("/work-history", h.Report.WorkHistory)
	api.POST("/export-bills", h.Report.Export)
}
