package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/config"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/fleet"
	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/models"
)

// Import exported for testing purposes
type Import struct {
	Reconciler *fleet.Reconciler
}

// ImportHandler ingests a batch of historical spreadsheet rows. The batch is
// replayed in timestamp order, vehicles are created on first sight, and rows
// with readings behind the running mileage are skipped and reported in the
// summary rather than failing the batch.
func (i Import) ImportHandler(w http.ResponseWriter, r *http.Request) {
	var rows []models.ImportRow
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if len(rows) == 0 {
		config.ErrorStatus("import batch is empty", http.StatusBadRequest, w, fmt.Errorf("no rows"))
		return
	}

	summary, err := i.Reconciler.ImportBatch(r.Context(), rows)
	if err != nil {
		config.ErrorStatus("failed to import batch", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(summary)
}
