// Package docs Gestao Frota API.
//
// Documentation of the fleet fuel and maintenance API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - basic
//
//    SecurityDefinitions:
//    basic:
//      type: basic
//
// swagger:meta
package docs

import (
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route GET /api/v1/vehicle/{vehicle_id} vehicles vehicleByID
// Gets a single vehicle by ID.
// responses:
//   200: vehicleByIDResponse

// Shows a single vehicle by the given {ID}
// swagger:response vehicleByIDResponse
type vehicleByIDResponseWrapper struct {
	// in:body
	Body models.Vehicle
}

// swagger:route POST /api/v1/import imports importBatch
// Imports a batch of historical fuel rows.
// responses:
//   200: importSummaryResponse

// Shows the outcome of a bulk import: entries and vehicles created plus skipped rows
// swagger:response importSummaryResponse
type importSummaryResponseWrapper struct {
	// in:body
	Body models.ImportSummary
}

// swagger:route GET /api/v1/vehicle/{vehicle_id}/alerts maintenance vehicleAlerts
// Evaluates maintenance services for a vehicle.
// responses:
//   200: vehicleAlertsResponse

// Shows the due/not-due verdict for every service applicable to the vehicle
// swagger:response vehicleAlertsResponse
type vehicleAlertsResponseWrapper struct {
	// in:body
	Body []models.ServiceAlert
}
