package fleet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/databases"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
)

var (
	// ErrNegativeDistance is returned when a submitted odometer reading
	// precedes the known history for the vehicle
	ErrNegativeDistance = errors.New("new odometer reading precedes known history")
	// ErrEntryNotFound is returned when the fuel entry to amend does not exist
	ErrEntryNotFound = errors.New("fuel entry not found")
	// ErrInvalidCandidate is returned when a candidate carries values no
	// entry may have regardless of ledger state
	ErrInvalidCandidate = errors.New("invalid fuel entry")
)

// EntryCandidate is a proposed fuel entry, interactive or amended
type EntryCandidate struct {
	Date        time.Time `json:"date"`
	TotalCost   float64   `json:"totalCost"`
	Liters      float64   `json:"liters"`
	NewMileage  int       `json:"newMileage"`
	EvidenceURL string    `json:"evidenceURL,omitempty"`
}

// Distance is the kilometers attributed to an entry measured from its baseline
func Distance(baseline, newMileage int) int {
	return newMileage - baseline
}

// CostPerLiter derives the unit price. Zero liters yields zero instead of an
// error so incomplete entries do not block submission.
func CostPerLiter(totalCost, liters float64) float64 {
	if liters <= 0 {
		return 0
	}
	return totalCost / liters
}

// Efficiency is distance per liter with the same zero-liters guard
func Efficiency(distance int, liters float64) float64 {
	if liters <= 0 {
		return 0
	}
	return float64(distance) / liters
}

// EntryService validates fuel entries against the ledger and persists them
type EntryService struct {
	Entries databases.FuelEntryDatabase
	Ledger  *Ledger
}

// NewEntryService wires the validator over the fuel entry collection and ledger
func NewEntryService(entries databases.FuelEntryDatabase, ledger *Ledger) *EntryService {
	return &EntryService{Entries: entries, Ledger: ledger}
}

func (s *EntryService) checkCandidate(c EntryCandidate) error {
	if c.NewMileage < 0 {
		return fmt.Errorf("%w: negative odometer reading %d", ErrInvalidCandidate, c.NewMileage)
	}
	if c.TotalCost < 0 {
		return fmt.Errorf("%w: negative total cost %.2f", ErrInvalidCandidate, c.TotalCost)
	}
	return nil
}

// Submit validates a new interactive entry against the vehicle's ledger
// reading and persists it. The ledger is advanced before the entry is
// written: the conditional advance is what serializes concurrent
// submissions for the same vehicle, so claiming the new reading has to come
// first. A rejected candidate writes nothing.
func (s *EntryService) Submit(ctx context.Context, vehicleID primitive.ObjectID, c EntryCandidate) (*models.FuelEntry, error) {
	if err := s.checkCandidate(c); err != nil {
		return nil, err
	}

	baseline, err := s.Ledger.CurrentMileage(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	distance := Distance(baseline, c.NewMileage)
	if distance < 0 {
		return nil, fmt.Errorf("%w: reading %d is behind ledger %d", ErrNegativeDistance, c.NewMileage, baseline)
	}

	if err := s.Ledger.Advance(ctx, vehicleID, baseline, c.NewMileage); err != nil {
		return nil, err
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	entry := models.FuelEntry{
		ID: primitive.NewObjectID(),
		Details: models.FuelEntryDetails{
			VehicleID:         vehicleID,
			Date:              c.Date,
			TotalCost:         c.TotalCost,
			Liters:            c.Liters,
			CostPerLiter:      CostPerLiter(c.TotalCost, c.Liters),
			NewMileage:        c.NewMileage,
			DistanceTravelled: distance,
			EvidenceURL:       c.EvidenceURL,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
	}

	if _, err := s.Entries.InsertOne(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to persist fuel entry: %w", err)
	}
	return &entry, nil
}

// Amend re-derives an existing entry against the baseline implied by its
// own original record, NewMileage minus DistanceTravelled, so that editing
// one entry cannot corrupt the distance attribution of entries recorded
// after it. Amending never advances the ledger: an edit corrects history,
// it does not extend it.
func (s *EntryService) Amend(ctx context.Context, entryID primitive.ObjectID, c EntryCandidate) (*models.FuelEntry, error) {
	if err := s.checkCandidate(c); err != nil {
		return nil, err
	}

	original, err := s.Entries.FindOne(ctx, bson.M{"_id": entryID})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntryNotFound, err)
	}

	baseline := original.Details.NewMileage - original.Details.DistanceTravelled
	distance := Distance(baseline, c.NewMileage)
	if distance < 0 {
		return nil, fmt.Errorf("%w: reading %d is behind original baseline %d", ErrNegativeDistance, c.NewMileage, baseline)
	}

	amended := original.Details
	amended.Date = c.Date
	amended.TotalCost = c.TotalCost
	amended.Liters = c.Liters
	amended.CostPerLiter = CostPerLiter(c.TotalCost, c.Liters)
	amended.NewMileage = c.NewMileage
	amended.DistanceTravelled = distance
	if c.EvidenceURL != "" {
		amended.EvidenceURL = c.EvidenceURL
	}
	amended.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())

	if _, err := s.Entries.UpdateOne(ctx, bson.M{"_id": entryID}, bson.M{"$set": bson.M{"fuelEntry": amended}}); err != nil {
		return nil, err
	}

	updated := *original
	updated.Details = amended
	return &updated, nil
}
