package dispatch

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	"smart-waste/internal/alert"
	"smart-waste/internal/bin"
	"smart-waste/internal/common"
	domainerrors "smart-waste/internal/errors"
	"smart-waste/internal/fleet"
	"smart-waste/internal/planner"
	"smart-waste/internal/redis"
	pgmigrate "smart-waste/internal/repo/postgres"
	"smart-waste/internal/route"
	"smart-waste/internal/sensor"
)

// testEnv holds the wired services for integration tests.
type testEnv struct {
	DB       *sqlx.DB
	Bins     bin.Service
	Alerts   alert.Service
	Fleet    fleet.Service
	Planner  planner.Service
	Dispatch Service
	Routes   route.RouteRepository
	Stops    route.StopRepository
}

func skipIfNoInfra(t *testing.T) {
	t.Helper()
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("skipping integration test; set INTEGRATION_TEST=1 and ensure Postgres/Redis are running")
	}
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	skipIfNoInfra(t)

	// Postgres
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=waste_admin password=secure_password dbname=smart_waste sslmode=disable"
	}
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		t.Fatalf("postgres connect: %v", err)
	}

	// Redis
	redisAddr := os.Getenv("TEST_REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: redisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		db.Close()
		t.Fatalf("redis connect: %v", err)
	}

	if err := pgmigrate.RunMigrationsUp(db); err != nil {
		db.Close()
		t.Fatalf("migrations: %v", err)
	}
	cleanTestData(t, db)

	// Infrastructure
	binCache := redis.NewBinStatusCache(rdb, 60)
	alertNotifier := redis.NewAlertNotifier(rdb, "alerts:test")

	// Repositories
	binRepo := bin.NewBinRepository()
	alertRepo := alert.NewAlertRepository()
	sensorRepo := sensor.NewSensorRepository()
	truckRepo := fleet.NewTruckRepository()
	driverRepo := fleet.NewDriverRepository()
	staffRepo := fleet.NewStaffRepository()
	routeRepo := route.NewRouteRepository()
	stopRepo := route.NewStopRepository()

	// Services
	alertService := alert.NewAlertService(alertRepo, db, alertNotifier)
	sensorService := sensor.NewSensorService(sensorRepo, db)
	binService := bin.NewBinService(binRepo, alertService, sensorService, db, binCache)
	fleetService := fleet.NewFleetService(truckRepo, driverRepo, staffRepo, db)

	depot := common.NewLocation(40.7128, -74.0060)
	plannerService := planner.NewPlannerService(binService, fleetService, depot, 3.0, 2)

	dispatchRepo := NewRepository(routeRepo, stopRepo, truckRepo, driverRepo, staffRepo, binService)
	dispatchService := NewDispatchService(dispatchRepo, plannerService, binService, db)

	env := &testEnv{
		DB:       db,
		Bins:     binService,
		Alerts:   alertService,
		Fleet:    fleetService,
		Planner:  plannerService,
		Dispatch: dispatchService,
		Routes:   routeRepo,
		Stops:    stopRepo,
	}

	t.Cleanup(func() {
		cleanTestData(t, db)
		rdb.FlushDB(context.Background())
		db.Close()
		rdb.Close()
	})

	return env
}

func cleanTestData(t *testing.T, db *sqlx.DB) {
	t.Helper()
	db.Exec(`DELETE FROM route_stops`)
	db.Exec(`DELETE FROM routes`)
	db.Exec(`DELETE FROM alerts`)
	db.Exec(`DELETE FROM sensors`)
	db.Exec(`DELETE FROM bins`)
	db.Exec(`DELETE FROM trucks`)
	db.Exec(`DELETE FROM drivers`)
	db.Exec(`DELETE FROM staff`)
}

// fullBin creates a bin and pushes a reading that takes it to FULL.
func fullBin(t *testing.T, env *testEnv, location string, lat, lng float64) *bin.SmartBin {
	t.Helper()
	ctx := context.Background()

	b, err := env.Bins.Create(ctx, location, lat, lng, 100)
	if err != nil {
		t.Fatalf("create bin: %v", err)
	}
	b, err = env.Bins.UpdateLevel(ctx, b.ID, 90)
	if err != nil {
		t.Fatalf("update level: %v", err)
	}
	if b.Status != bin.StatusFull {
		t.Fatalf("expected FULL, got %s", b.Status)
	}
	return b
}

func registerCrew(t *testing.T, env *testEnv) (truckID, driverID, staffID string) {
	t.Helper()
	ctx := context.Background()

	tr, err := env.Fleet.RegisterTruck(ctx, "WM-1001", 500)
	if err != nil {
		t.Fatalf("register truck: %v", err)
	}
	d, err := env.Fleet.RegisterDriver(ctx, "Sam Carter", "D-99887")
	if err != nil {
		t.Fatalf("register driver: %v", err)
	}
	m, err := env.Fleet.RegisterStaff(ctx, "Lee Ward", "LOADER")
	if err != nil {
		t.Fatalf("register staff: %v", err)
	}
	return tr.ID, d.ID, m.ID
}

func expectDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	de, ok := err.(*domainerrors.DomainError)
	if !ok {
		t.Fatalf("expected DomainError, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Fatalf("expected %s, got %s: %v", code, de.Code, err)
	}
}

// --- Full dispatch flow ---

func TestDispatchFlow_AssignCompleteRelease(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	b1 := fullBin(t, env, "Downtown", 40.72, -74.00)
	fullBin(t, env, "Downtown", 40.73, -74.00)
	truckID, driverID, staffID := registerCrew(t, env)

	// Both bins raised alerts on crossing into FULL.
	if _, err := env.Alerts.GetByBinID(ctx, b1.ID); err != nil {
		t.Fatalf("expected alert for %s: %v", b1.ID, err)
	}

	created, err := env.Dispatch.CreateRoute(ctx, CreateRouteRequest{Date: time.Now()})
	if err != nil {
		t.Fatalf("create route: %v", err)
	}
	if created.Status != route.StatusPending {
		t.Fatalf("expected PENDING, got %s", created.Status)
	}
	if len(created.Stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(created.Stops))
	}

	rt, err := env.Dispatch.AssignResources(ctx, created.ID, &truckID, &driverID, []string{staffID})
	if err != nil {
		t.Fatalf("assign resources: %v", err)
	}
	if rt.Status != route.StatusAssigned {
		t.Fatalf("expected ASSIGNED, got %s", rt.Status)
	}
	if rt.AssignedTruckID == nil || *rt.AssignedTruckID != truckID {
		t.Fatal("truck not bound")
	}

	tr, _ := env.Fleet.GetTruck(ctx, truckID)
	if tr.IsFree() {
		t.Fatal("assigned truck must not be free")
	}
	d, _ := env.Fleet.GetDriver(ctx, driverID)
	if d.IsAvailable() {
		t.Fatal("assigned driver must not be available")
	}

	if _, err := env.Dispatch.UpdateRouteStatus(ctx, rt.ID, route.StatusInProgress); err != nil {
		t.Fatalf("start route: %v", err)
	}

	// First stop: route keeps going.
	if _, err := env.Dispatch.CompleteStop(ctx, created.Stops[0].ID); err != nil {
		t.Fatalf("complete first stop: %v", err)
	}
	mid, err := env.Routes.GetByID(ctx, env.DB, rt.ID)
	if err != nil {
		t.Fatalf("load route: %v", err)
	}
	if mid.Status != route.StatusInProgress {
		t.Fatalf("expected IN_PROGRESS after first stop, got %s", mid.Status)
	}

	// Last stop: route completes and the crew is released.
	if _, err := env.Dispatch.CompleteStop(ctx, created.Stops[1].ID); err != nil {
		t.Fatalf("complete last stop: %v", err)
	}
	done, err := env.Routes.GetByID(ctx, env.DB, rt.ID)
	if err != nil {
		t.Fatalf("load route: %v", err)
	}
	if done.Status != route.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", done.Status)
	}

	tr, _ = env.Fleet.GetTruck(ctx, truckID)
	if !tr.IsFree() {
		t.Fatal("truck must be released on completion")
	}
	d, _ = env.Fleet.GetDriver(ctx, driverID)
	if !d.IsAvailable() {
		t.Fatal("driver must be released on completion")
	}
	m, _ := env.Fleet.GetStaff(ctx, staffID)
	if !m.IsAvailable() {
		t.Fatal("staff must be released on completion")
	}

	// Collected bins are reset and their alerts resolved.
	fresh, err := env.Bins.GetByID(ctx, b1.ID)
	if err != nil {
		t.Fatalf("load bin: %v", err)
	}
	if fresh.Status != bin.StatusEmpty || fresh.CurrentLevel != 0 {
		t.Fatalf("expected reset bin, got %s at %f", fresh.Status, fresh.CurrentLevel)
	}
	if _, err := env.Alerts.GetByBinID(ctx, b1.ID); err == nil {
		t.Fatal("alert must be resolved on collection")
	}
}

func TestCompleteStop_Idempotent(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	fullBin(t, env, "Downtown", 40.72, -74.00)
	fullBin(t, env, "Downtown", 40.73, -74.00)

	created, err := env.Dispatch.CreateRoute(ctx, CreateRouteRequest{})
	if err != nil {
		t.Fatalf("create route: %v", err)
	}

	stopID := created.Stops[0].ID
	if _, err := env.Dispatch.CompleteStop(ctx, stopID); err != nil {
		t.Fatalf("complete stop: %v", err)
	}
	st, err := env.Dispatch.CompleteStop(ctx, stopID)
	if err != nil {
		t.Fatalf("repeat complete must succeed: %v", err)
	}
	if st.Status != route.StopCompleted {
		t.Fatalf("expected COMPLETED, got %s", st.Status)
	}
}

// --- Assignment edge cases ---

func TestAssignResources_BusyDriverAborts(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	fullBin(t, env, "Downtown", 40.72, -74.00)
	fullBin(t, env, "Downtown", 40.73, -74.00)
	truckID, driverID, _ := registerCrew(t, env)

	first, err := env.Dispatch.CreateRoute(ctx, CreateRouteRequest{DriverID: &driverID})
	if err != nil {
		t.Fatalf("create first route: %v", err)
	}
	if first.Status != route.StatusAssigned {
		t.Fatalf("expected ASSIGNED, got %s", first.Status)
	}

	fullBin(t, env, "Uptown", 40.80, -74.00)
	fullBin(t, env, "Uptown", 40.81, -74.00)
	groupIdx := 0
	second, err := env.Dispatch.CreateRoute(ctx, CreateRouteRequest{GroupIndex: &groupIdx})
	if err != nil {
		t.Fatalf("create second route: %v", err)
	}

	_, err = env.Dispatch.AssignResources(ctx, second.ID, &truckID, &driverID, nil)
	expectDomainCode(t, err, domainerrors.ErrConflict)

	// The aborted assignment must not have bound the truck.
	tr, _ := env.Fleet.GetTruck(ctx, truckID)
	if !tr.IsFree() {
		t.Fatal("truck must stay free after aborted assignment")
	}
}

func TestAssignResources_UnknownIDsSkipped(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	fullBin(t, env, "Downtown", 40.72, -74.00)
	fullBin(t, env, "Downtown", 40.73, -74.00)

	created, err := env.Dispatch.CreateRoute(ctx, CreateRouteRequest{})
	if err != nil {
		t.Fatalf("create route: %v", err)
	}

	ghost := "TRUCK-DEADBEEF"
	rt, err := env.Dispatch.AssignResources(ctx, created.ID, &ghost, nil, []string{"STAFF-DEADBEEF"})
	if err != nil {
		t.Fatalf("unknown ids must be skipped, got: %v", err)
	}
	if rt.Status != route.StatusAssigned {
		t.Fatalf("expected ASSIGNED, got %s", rt.Status)
	}
	if rt.AssignedTruckID != nil {
		t.Fatal("ghost truck must not be bound")
	}
	if len(rt.AssignedStaffIDs) != 0 {
		t.Fatal("ghost staff must not be bound")
	}
}

// --- Status transitions ---

func TestUpdateRouteStatus_CompletedNeedsNoPendingStops(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	fullBin(t, env, "Downtown", 40.72, -74.00)
	fullBin(t, env, "Downtown", 40.73, -74.00)
	truckID, driverID, _ := registerCrew(t, env)

	created, err := env.Dispatch.CreateRoute(ctx, CreateRouteRequest{TruckID: &truckID, DriverID: &driverID})
	if err != nil {
		t.Fatalf("create route: %v", err)
	}

	_, err = env.Dispatch.UpdateRouteStatus(ctx, created.ID, route.StatusCompleted)
	expectDomainCode(t, err, domainerrors.ErrConflict)
}

func TestUpdateRouteStatus_InvalidTransition(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	fullBin(t, env, "Downtown", 40.72, -74.00)
	fullBin(t, env, "Downtown", 40.73, -74.00)

	created, err := env.Dispatch.CreateRoute(ctx, CreateRouteRequest{})
	if err != nil {
		t.Fatalf("create route: %v", err)
	}

	_, err = env.Dispatch.UpdateRouteStatus(ctx, created.ID, route.StatusInProgress)
	expectDomainCode(t, err, domainerrors.ErrInvalidTransition)
}

func TestUpdateRouteStatus_CancelReleasesResources(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	fullBin(t, env, "Downtown", 40.72, -74.00)
	fullBin(t, env, "Downtown", 40.73, -74.00)
	truckID, driverID, staffID := registerCrew(t, env)

	created, err := env.Dispatch.CreateRoute(ctx, CreateRouteRequest{
		TruckID:  &truckID,
		DriverID: &driverID,
		StaffIDs: []string{staffID},
	})
	if err != nil {
		t.Fatalf("create route: %v", err)
	}

	rt, err := env.Dispatch.UpdateRouteStatus(ctx, created.ID, route.StatusCancelled)
	if err != nil {
		t.Fatalf("cancel route: %v", err)
	}
	if rt.Status != route.StatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", rt.Status)
	}

	tr, _ := env.Fleet.GetTruck(ctx, truckID)
	if !tr.IsFree() {
		t.Fatal("truck must be released on cancellation")
	}
	d, _ := env.Fleet.GetDriver(ctx, driverID)
	if !d.IsAvailable() {
		t.Fatal("driver must be released on cancellation")
	}
}

func TestCreateRoute_NoFullBins(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.Dispatch.CreateRoute(context.Background(), CreateRouteRequest{})
	expectDomainCode(t, err, domainerrors.ErrValidation)
}
