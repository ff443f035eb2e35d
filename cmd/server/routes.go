package main

import (
	"smart-waste/internal/middleware"
)

func (a *AppContext) setupRoutes() {
	r := a.Router

	// ── Global Middleware (outermost → innermost) ──
	r.Use(middleware.Logger())                 // 1. Request logging
	r.Use(middleware.Recovery())               // 2. Panic recovery
	r.Use(middleware.RateLimit(a.RateLimiter)) // 3. Per-IP rate limiting

	// ── Health ──
	r.GET("/health", a.healthCheck)

	// ── Bins ──
	bins := r.Group("/bins")
	{
		bins.GET("", a.BinHandler.List)
		bins.GET("/:id", a.BinHandler.Get)
		bins.GET("/:id/status", a.BinHandler.GetStatus)
		bins.GET("/:id/sensor", a.SensorHandler.GetByBin)

		// Level updates arrive at sensor cadence; they get their own pool
		// and retry-safe idempotency.
		readings := bins.Group("")
		readings.Use(middleware.Bulkhead(a.Config.Bulkhead.ReadingPool))
		readings.Use(middleware.Idempotency(a.IdempotencyStore))
		{
			readings.PATCH("/:id/level", a.BinHandler.UpdateLevel)
		}

		mutations := bins.Group("")
		mutations.Use(middleware.Bulkhead(a.Config.Bulkhead.MutationPool))
		{
			mutations.POST("", a.BinHandler.Create)
			mutations.POST("/:id/collect", a.BinHandler.MarkCollected)
			mutations.DELETE("/:id", a.BinHandler.Delete)
		}
	}

	// ── Alerts ──
	alerts := r.Group("/alerts")
	{
		alerts.GET("", a.AlertHandler.ListAll)
		alerts.GET("/unreviewed", a.AlertHandler.ListUnreviewed)
		alerts.GET("/bin/:binId", a.AlertHandler.GetByBin)
		alerts.PATCH("/bin/:binId/review", a.AlertHandler.MarkReviewed)
	}

	// ── Fleet ──
	r.GET("/trucks", a.FleetHandler.ListTrucks)
	r.GET("/trucks/:id", a.FleetHandler.GetTruck)
	r.POST("/trucks", a.FleetHandler.RegisterTruck)
	r.GET("/drivers", a.FleetHandler.ListDrivers)
	r.GET("/drivers/:id", a.FleetHandler.GetDriver)
	r.POST("/drivers", a.FleetHandler.RegisterDriver)
	r.GET("/staff", a.FleetHandler.ListStaff)
	r.GET("/staff/:id", a.FleetHandler.GetStaff)
	r.POST("/staff", a.FleetHandler.RegisterStaff)

	// ── Routes ──
	routes := r.Group("/routes")
	{
		routes.GET("", a.RouteHandler.List)
		routes.GET("/preview", a.PlannerHandler.Preview)
		routes.GET("/:id", a.RouteHandler.Get)
		routes.GET("/:id/stops", a.RouteHandler.ListStops)

		mutations := routes.Group("")
		mutations.Use(middleware.Bulkhead(a.Config.Bulkhead.MutationPool))
		mutations.Use(middleware.Idempotency(a.IdempotencyStore))
		{
			mutations.POST("", a.DispatchHandler.CreateRoute)
			mutations.POST("/:id/assign", a.DispatchHandler.AssignResources)
			mutations.PATCH("/:id/status", a.DispatchHandler.UpdateStatus)
		}
	}

	// ── Stops ──
	r.GET("/stops/:stopId", a.RouteHandler.GetStop)
	stopMutations := r.Group("/stops")
	stopMutations.Use(middleware.Bulkhead(a.Config.Bulkhead.MutationPool))
	stopMutations.Use(middleware.Idempotency(a.IdempotencyStore))
	{
		stopMutations.POST("/:stopId/complete", a.DispatchHandler.CompleteStop)
	}

	// ── Sensors ──
	r.GET("/sensors", a.SensorHandler.List)
	r.PATCH("/sensors/:id/type", a.SensorHandler.SetType)

	// ── Analytics ──
	analytics := r.Group("/analytics")
	{
		analytics.GET("/dashboard", a.AnalyticsHandler.Dashboard)
		analytics.GET("/waste-by-location", a.AnalyticsHandler.WasteByLocation)
		analytics.GET("/bin-status", a.AnalyticsHandler.BinStatus)
	}
}
