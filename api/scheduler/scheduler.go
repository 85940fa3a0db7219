// Package scheduler runs the daily maintenance sweep: every vehicle's
// applicable services are evaluated and drivers with something due get an
// email digest.
package scheduler

import (
	"context"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/databases"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/fleet"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
	templates "github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/templates/html"
)

// Scheduler handles periodic background jobs for maintenance alerting
type Scheduler struct {
	cron  *cron.Cron
	Fleet *fleet.Scheduler
	VDB   databases.VehicleDatabase
}

// NewScheduler creates a new scheduler instance
func NewScheduler(fleetScheduler *fleet.Scheduler, vDB databases.VehicleDatabase) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithLocation(time.UTC)),
		Fleet: fleetScheduler,
		VDB:   vDB,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Sweep the whole fleet daily at 6 AM UTC, before the workday starts
	_, err := s.cron.AddFunc("0 6 * * *", s.sweepFleet)
	if err != nil {
		zap.S().Errorw("failed to register maintenance sweep job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Maintenance scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Maintenance scheduler stopped")
}

// RunAfterLogin schedules a one-shot sweep shortly after an operator signs
// in, so the dashboard alerts are fresh without waiting for the daily job
func (s *Scheduler) RunAfterLogin() {
	time.AfterFunc(90*time.Second, s.sweepFleet)
}

// sweepFleet evaluates every vehicle's maintenance services and emails the
// driver when something is due
func (s *Scheduler) sweepFleet() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	zap.S().Info("Running maintenance sweep")

	vehicles, err := s.VDB.Find(ctx, bson.D{})
	if err != nil {
		zap.S().Errorw("failed to list vehicles for maintenance sweep", "error", err)
		return
	}

	today := time.Now()
	notified := 0
	for _, vehicle := range vehicles {
		alerts, err := s.Fleet.DueServices(ctx, vehicle.ID, today)
		if err != nil {
			zap.S().Errorw("failed to evaluate maintenance for vehicle",
				"vehicleID", vehicle.ID.Hex(),
				"plate", vehicle.Details.Plate,
				"error", err)
			continue
		}

		due := fleet.DueAlerts(alerts)
		if len(due) == 0 {
			continue
		}

		zap.S().Infow("maintenance due",
			"plate", vehicle.Details.Plate,
			"services", len(due))

		if vehicle.Details.DriverEmail == "" {
			continue
		}
		if err := s.sendAlertEmail(vehicle, due); err != nil {
			zap.S().Errorw("failed to send maintenance alert email",
				"plate", vehicle.Details.Plate,
				"error", err)
			continue
		}
		notified++
	}

	zap.S().Infow("Maintenance sweep finished",
		"vehicles", len(vehicles),
		"notified", notified)
}

func (s *Scheduler) sendAlertEmail(vehicle models.Vehicle, due []models.ServiceAlert) error {
	from := mail.NewEmail("Fleet Maintenance", os.Getenv("FROM_EMAIL"))
	to := mail.NewEmail(vehicle.Details.Driver, vehicle.Details.DriverEmail)
	subject := "Maintenance due for " + vehicle.Details.Plate

	plainText := fleet.RenderAlertSummary(vehicle.Details.Plate, due)
	htmlContent := templates.RenderMaintenanceAlertEmail(vehicle.Details.Plate, due)

	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	zap.S().Debugw("maintenance alert email sent",
		"plate", vehicle.Details.Plate,
		"status", resp.StatusCode)
	return nil
}
