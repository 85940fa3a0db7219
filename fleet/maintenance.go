package fleet

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/databases"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
)

// Scheduler evaluates which maintenance services are currently due for a
// vehicle. Alerts come back in service catalog order; there is no priority
// ranking.
type Scheduler struct {
	Services databases.MaintenanceServiceDatabase
	Records  databases.MaintenanceRecordDatabase
	Ledger   *Ledger
}

// NewScheduler wires the due-service evaluator
func NewScheduler(services databases.MaintenanceServiceDatabase, records databases.MaintenanceRecordDatabase, ledger *Ledger) *Scheduler {
	return &Scheduler{Services: services, Records: records, Ledger: ledger}
}

// DueServices computes the due/not-due verdict for every service applicable
// to the vehicle, as of the given day. A service with no record for the
// vehicle is always due.
func (s *Scheduler) DueServices(ctx context.Context, vehicleID primitive.ObjectID, today time.Time) ([]models.ServiceAlert, error) {
	odometer, err := s.Ledger.CurrentOdometer(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	services, err := s.Services.Find(ctx, bson.M{"maintenanceService.vehicleIDs": vehicleID})
	if err != nil {
		return nil, err
	}

	alerts := make([]models.ServiceAlert, 0, len(services))
	for _, service := range services {
		if !service.Details.AppliesTo(vehicleID) {
			continue
		}
		alert, err := s.evaluate(ctx, vehicleID, service, odometer, today)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

func (s *Scheduler) evaluate(ctx context.Context, vehicleID primitive.ObjectID, service models.MaintenanceService, odometer int, today time.Time) (models.ServiceAlert, error) {
	alert := models.ServiceAlert{
		ServiceID:   service.ID,
		ServiceName: service.Details.Name,
	}

	last, err := s.lastRecord(ctx, vehicleID, service.ID)
	if err != nil {
		return alert, err
	}
	if last == nil {
		alert.Due = true
		alert.Justification = JustifyNeverPerformed()
		return alert, nil
	}

	switch service.Details.PeriodicityType {
	case models.PeriodicityDistance:
		alert.Due = odometer >= last.Details.Mileage+service.Details.PeriodicityValue
		alert.Justification = JustifyDistance(last.Details.Mileage)
	case models.PeriodicityCalendar:
		alert.Due = daysBetween(last.Details.Date, today) >= service.Details.PeriodicityValue
		alert.Justification = JustifyCalendar(last.Details.Date)
	}
	return alert, nil
}

// lastRecord returns the most recent maintenance record for the pair, nil
// when the service has never been performed on the vehicle
func (s *Scheduler) lastRecord(ctx context.Context, vehicleID, serviceID primitive.ObjectID) (*models.MaintenanceRecord, error) {
	limit := int64(1)
	records, err := s.Records.Find(ctx,
		bson.M{
			"maintenanceRecord.vehicleID": vehicleID,
			"maintenanceRecord.serviceID": serviceID,
		},
		&options.FindOptions{
			Sort:  bson.D{{Key: "maintenanceRecord.date", Value: -1}},
			Limit: &limit,
		})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// daysBetween counts whole calendar days from one date to another,
// ignoring time of day. Negative when to precedes from.
func daysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours() / 24)
}
