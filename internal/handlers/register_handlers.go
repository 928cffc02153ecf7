package handlers

import (
	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	portssvc "github.com/agritrack/plot_capacity_app/internal/core/ports/services"
	"github.com/agritrack/plot_capacity_app/internal/middleware"
	"github.com/agritrack/plot_capacity_app/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using the service interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", GetHome)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1",
		middleware.RateLimit(newIPLimiter(cfg.RateLimit)),
		middleware.AuthMiddleware(cfg.JWTSecret),
	)

	registerFieldRoutes(v1, services.Field, services.Plot, services.Analytics)
	registerPlotRoutes(v1, services.Plot)
	registerLedgerRoutes(v1, services.Ledger, services.Validator, services.Detector)
	registerAssignmentRoutes(v1, services.Assignment)
	registerAnalyticsRoutes(v1, services.Analytics)
	registerAuditRoutes(v1, services.Audit, services.Session)
}

// newIPLimiter builds an in-memory per-IP limiter from the formatted rate,
// e.g. "100-M".
func newIPLimiter(formatted string) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("100-M")
	}
	return limiter.New(memory.NewStore(), rate)
}

// registerCustomValidators wires the domain enum checks into gin's binding
// validator.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("plotstatus", func(fl validator.FieldLevel) bool {
		return domain.ValidPlotStatus(domain.PlotStatus(fl.Field().String()))
	})
	_ = v.RegisterValidation("capacitymode", func(fl validator.FieldLevel) bool {
		switch domain.CapacityAdjustmentMode(fl.Field().String()) {
		case domain.AdjustSet, domain.AdjustAdd, domain.AdjustSubtract:
			return true
		}
		return false
	})
	_ = v.RegisterValidation("assignmentstatus", func(fl validator.FieldLevel) bool {
		return domain.ValidAssignmentStatus(domain.AssignmentStatus(fl.Field().String()))
	})
}
