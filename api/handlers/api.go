package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/api"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/api/scheduler"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/config"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/databases"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/fleet"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	DB        databases.CollectionHelper
	Config    config.Config
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.dbHelper)}
	if a.Scheduler != nil {
		m.OnLogin = a.Scheduler.RunAfterLogin
	}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	vehicleDB := databases.NewVehicleDatabase(a.dbHelper)
	entryDB := databases.NewFuelEntryDatabase(a.dbHelper)
	serviceDB := databases.NewMaintenanceServiceDatabase(a.dbHelper)
	recordDB := databases.NewMaintenanceRecordDatabase(a.dbHelper)

	ledger := fleet.NewLedger(vehicleDB, entryDB)
	sink := &SheetSink{URL: a.Config.SheetSyncURL}

	u := User{DB: databases.NewUserDatabase(a.dbHelper)}
	v := Vehicle{DB: vehicleDB, Ledger: ledger, Sheet: sink}
	fe := FuelEntry{DB: entryDB, Entries: fleet.NewEntryService(entryDB, ledger), Sheet: sink}
	imp := Import{Reconciler: fleet.NewReconciler(vehicleDB, entryDB)}
	ms := Maintenance{Services: serviceDB, Records: recordDB, Scheduler: fleet.NewScheduler(serviceDB, recordDB, ledger), VDB: vehicleDB}
	adm := Admin{UDB: databases.NewUserDatabase(a.dbHelper)}
	cloudinaryHandler := CloudinaryHandler{}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/user/create-user", http.HandlerFunc(u.UserCreateHandler)).Methods("POST")
	apiCreate.Handle("/user/{user_id}", api.Middleware(http.HandlerFunc(u.UserHandler))).Methods("GET")

	apiCreate.Handle("/vehicle", api.Middleware(http.HandlerFunc(v.CreateVehicleHandler))).Methods("POST")
	apiCreate.Handle("/vehicles", api.Middleware(http.HandlerFunc(v.VehicleHandler))).Methods("GET")
	apiCreate.Handle("/vehicles/search", api.Middleware(http.HandlerFunc(v.VehicleByPlateSearchHandler))).Methods("GET")
	apiCreate.Handle("/vehicle/{vehicle_id}", api.Middleware(http.HandlerFunc(v.VehicleByIDHandler))).Methods("GET")
	apiCreate.Handle("/vehicle/{vehicle_id}", api.Middleware(http.HandlerFunc(v.UpdateVehicleHandler))).Methods("PUT")
	apiCreate.Handle("/vehicle/{vehicle_id}", api.Middleware(http.HandlerFunc(v.DeleteVehicleHandler))).Methods("DELETE")
	apiCreate.Handle("/vehicle/{vehicle_id}/mileage", api.Middleware(http.HandlerFunc(v.VehicleMileageHandler))).Methods("GET")
	apiCreate.Handle("/vehicle/{vehicle_id}/alerts", api.Middleware(http.HandlerFunc(ms.VehicleAlertsHandler))).Methods("GET")

	apiCreate.Handle("/vehicle/{vehicle_id}/fuel-entries", api.Middleware(http.HandlerFunc(fe.CreateFuelEntryHandler))).Methods("POST")
	apiCreate.Handle("/vehicle/{vehicle_id}/fuel-entries", api.Middleware(http.HandlerFunc(fe.FuelEntriesByVehicleIDHandler))).Methods("GET")
	apiCreate.Handle("/fuel-entry/{entry_id}", api.Middleware(http.HandlerFunc(fe.FuelEntryByIDHandler))).Methods("GET")
	apiCreate.Handle("/fuel-entry/{entry_id}", api.Middleware(http.HandlerFunc(fe.AmendFuelEntryHandler))).Methods("PUT")
	apiCreate.Handle("/fuel-entry/{entry_id}", api.Middleware(http.HandlerFunc(fe.DeleteFuelEntryHandler))).Methods("DELETE")

	// imports replay whole spreadsheets; give them a longer leash than the
	// interactive routes
	apiCreate.Handle("/import", api.TimeoutMiddleware(2*time.Minute)(api.Middleware(http.HandlerFunc(imp.ImportHandler)))).Methods("POST")

	apiCreate.Handle("/maintenance-service", api.Middleware(http.HandlerFunc(ms.CreateServiceHandler))).Methods("POST")
	apiCreate.Handle("/maintenance-services", api.Middleware(http.HandlerFunc(ms.ServicesHandler))).Methods("GET")
	apiCreate.Handle("/maintenance-service/{service_id}", api.Middleware(http.HandlerFunc(ms.ServiceByIDHandler))).Methods("GET")
	apiCreate.Handle("/maintenance-service/{service_id}", api.Middleware(http.HandlerFunc(ms.UpdateServiceHandler))).Methods("PUT")
	apiCreate.Handle("/maintenance-service/{service_id}", api.Middleware(http.HandlerFunc(ms.DeleteServiceHandler))).Methods("DELETE")

	apiCreate.Handle("/maintenance-record", api.Middleware(http.HandlerFunc(ms.CreateRecordHandler))).Methods("POST")
	apiCreate.Handle("/vehicle/{vehicle_id}/maintenance-records", api.Middleware(http.HandlerFunc(ms.RecordsByVehicleIDHandler))).Methods("GET")
	apiCreate.Handle("/maintenance-record/{record_id}", api.Middleware(http.HandlerFunc(ms.UpdateRecordHandler))).Methods("PUT")
	apiCreate.Handle("/maintenance-record/{record_id}", api.Middleware(http.HandlerFunc(ms.DeleteRecordHandler))).Methods("DELETE")

	apiCreate.Handle("/export/token", api.Middleware(http.HandlerFunc(adm.ExportTokenHandler))).Methods("POST")

	apiCreate.Handle("/generate-signature", api.Middleware(http.HandlerFunc(cloudinaryHandler.GenerateSignature))).Methods("POST")
	apiCreate.Handle("/evidence/upload", api.Middleware(http.HandlerFunc(cloudinaryHandler.UploadEvidence))).Methods("POST")

	// swagger docs hosted at "/"
	r.PathPrefix("/").Handler(http.StripPrefix("/", http.FileServer(http.Dir("./docs/"))))
	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("gestao-frota-api has connected to the database")

	// start the daily maintenance sweep
	vehicleDB := databases.NewVehicleDatabase(a.dbHelper)
	entryDB := databases.NewFuelEntryDatabase(a.dbHelper)
	serviceDB := databases.NewMaintenanceServiceDatabase(a.dbHelper)
	recordDB := databases.NewMaintenanceRecordDatabase(a.dbHelper)
	a.Scheduler = scheduler.NewScheduler(
		fleet.NewScheduler(serviceDB, recordDB, fleet.NewLedger(vehicleDB, entryDB)),
		vehicleDB,
	)
	a.Scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
