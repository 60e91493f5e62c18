package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctors-portal/internal/middleware"
)

type RouterOptions struct {
	AllowOrigins []string
	// LoginLimiter throttles token issuance on PUT /user/:email. Nil disables it.
	LoginLimiter *middleware.RateLimiter
}

// NewRouter mounts every route on a fresh gin engine.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(h.Log), middleware.Recovery(h.Log))
	r.Use(cors.New(corsConfig(opts.AllowOrigins)))

	verify := middleware.RequireIdentity(h.Issuer)
	admin := middleware.RequireAdmin(h.Authorizer)
	login := []gin.HandlerFunc{}
	if opts.LoginLimiter != nil {
		login = append(login, opts.LoginLimiter.Middleware())
	}

	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "Hello World!") })

	r.GET("/service", h.GetServices)
	r.GET("/available", h.GetAvailable)

	r.GET("/user", verify, h.GetUsers)
	r.GET("/admin/:email", h.GetAdmin)
	r.PUT("/user/admin/:email", verify, admin, h.MakeAdmin)
	r.PUT("/user/:email", append(login, h.UpsertUser)...)

	r.GET("/booking", verify, h.GetBookings)
	r.GET("/booking/:id", verify, h.GetBooking)
	r.POST("/booking", h.CreateBooking)
	r.POST("/create-payment-intent", verify, h.CreatePaymentIntent)

	r.GET("/doctor", h.GetDoctors)
	r.POST("/doctor", verify, admin, h.AddDoctor)
	r.DELETE("/doctor/:email", verify, admin, h.DeleteDoctor)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
