package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"

	"smart-waste/config"
	"smart-waste/internal/alert"
	"smart-waste/internal/analytics"
	"smart-waste/internal/bin"
	"smart-waste/internal/common"
	"smart-waste/internal/dispatch"
	"smart-waste/internal/fleet"
	"smart-waste/internal/planner"
	"smart-waste/internal/redis"
	pgmigrate "smart-waste/internal/repo/postgres"
	"smart-waste/internal/route"
	"smart-waste/internal/sensor"
)

type AppContext struct {
	DB     *sqlx.DB
	Config *config.Config
	Redis  *goredis.Client
	Router *gin.Engine

	// Infrastructure
	BinCache         *redis.BinStatusCache
	AlertNotifier    *redis.AlertNotifier
	IdempotencyStore *redis.IdempotencyStore
	RateLimiter      *redis.RateLimiter

	BinHandler       *bin.Handler
	AlertHandler     *alert.Handler
	FleetHandler     *fleet.Handler
	PlannerHandler   *planner.Handler
	RouteHandler     *route.Handler
	DispatchHandler  *dispatch.Handler
	SensorHandler    *sensor.Handler
	AnalyticsHandler *analytics.Handler

	BinService      bin.Service
	AlertService    alert.Service
	FleetService    fleet.Service
	PlannerService  planner.Service
	RouteService    route.Service
	DispatchService dispatch.Service
	SensorService   sensor.Service

	Simulator *sensor.Simulator
}

func wireApp(cfg *config.Config) (*AppContext, error) {
	// ── Postgres ──
	db, err := pgmigrate.Connect(cfg.Postgres.DSN(), pgmigrate.DefaultPoolConfig())
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	if err := pgmigrate.RunMigrationsUp(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	// ── Redis ──
	var rdb *goredis.Client
	if cfg.Redis.URL != "" {
		opts, err := goredis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("redis parse url: %w", err)
		}
		rdb = goredis.NewClient(opts)
	} else {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	// ── Infrastructure ──
	binCache := redis.NewBinStatusCache(rdb, cfg.Bin.StatusCacheTTLSec)
	alertNotifier := redis.NewAlertNotifier(rdb, cfg.Alerts.Channel)
	idempotencyStore := redis.NewIdempotencyStore(rdb, cfg.Bin.IdempotencyTTLSec)
	rateLimiter := redis.NewRateLimiter(rdb, cfg.RateLimiter.MaxRequests, cfg.RateLimiter.WindowSeconds)

	// ── Repositories ──
	binRepo := bin.NewBinRepository()
	alertRepo := alert.NewAlertRepository()
	sensorRepo := sensor.NewSensorRepository()
	truckRepo := fleet.NewTruckRepository()
	driverRepo := fleet.NewDriverRepository()
	staffRepo := fleet.NewStaffRepository()
	routeRepo := route.NewRouteRepository()
	stopRepo := route.NewStopRepository()

	// ── Services ──
	alertService := alert.NewAlertService(alertRepo, db, alertNotifier)
	sensorService := sensor.NewSensorService(sensorRepo, db)
	binService := bin.NewBinService(binRepo, alertService, sensorService, db, binCache)
	fleetService := fleet.NewFleetService(truckRepo, driverRepo, staffRepo, db)

	depot := common.NewLocation(cfg.Depot.Lat, cfg.Depot.Lng)
	plannerService := planner.NewPlannerService(binService, fleetService, depot,
		cfg.Planner.MaxLinkDistanceKM, cfg.Planner.StaffPerRoute)

	routeService := route.NewRouteService(routeRepo, stopRepo, db)
	dispatchRepo := dispatch.NewRepository(routeRepo, stopRepo, truckRepo, driverRepo, staffRepo, binService)
	dispatchService := dispatch.NewDispatchService(dispatchRepo, plannerService, binService, db)
	analyticsService := analytics.NewAnalyticsService(db)

	simulator := sensor.NewSimulator(binService, sensorService,
		time.Duration(cfg.Sensor.IntervalSeconds)*time.Second,
		cfg.Sensor.MinIncrement, cfg.Sensor.MaxIncrement)

	// ── Handlers ──
	binHandler := bin.NewHandler(binService)
	alertHandler := alert.NewHandler(alertService)
	fleetHandler := fleet.NewHandler(fleetService)
	plannerHandler := planner.NewHandler(plannerService)
	routeHandler := route.NewHandler(routeService)
	dispatchHandler := dispatch.NewHandler(dispatchService)
	sensorHandler := sensor.NewHandler(sensorService)
	analyticsHandler := analytics.NewHandler(analyticsService)

	return &AppContext{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Router: gin.Default(),

		BinCache:         binCache,
		AlertNotifier:    alertNotifier,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      rateLimiter,

		BinHandler:       binHandler,
		AlertHandler:     alertHandler,
		FleetHandler:     fleetHandler,
		PlannerHandler:   plannerHandler,
		RouteHandler:     routeHandler,
		DispatchHandler:  dispatchHandler,
		SensorHandler:    sensorHandler,
		AnalyticsHandler: analyticsHandler,

		BinService:      binService,
		AlertService:    alertService,
		FleetService:    fleetService,
		PlannerService:  plannerService,
		RouteService:    routeService,
		DispatchService: dispatchService,
		SensorService:   sensorService,

		Simulator: simulator,
	}, nil
}

func (a *AppContext) Close() {
	a.DB.Close()
	a.Redis.Close()
}

func (a *AppContext) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()
	checks := map[string]string{}
	healthy := true

	if err := a.DB.PingContext(ctx); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	} else {
		checks["postgres"] = "ok"
	}

	if err := a.Redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	} else {
		checks["redis"] = "ok"
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status": checks,
	})
}
