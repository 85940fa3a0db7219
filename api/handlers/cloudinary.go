package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/config"
)

// CloudinaryHandler handles Cloudinary related requests
type CloudinaryHandler struct{}

// GenerateSignature generates a signature for direct-to-Cloudinary uploads
// of pump receipt photos
func (c CloudinaryHandler) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	uploadPreset := os.Getenv("CLOUDINARY_UPLOAD_PRESET")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	// Create the signature
	h := hmac.New(sha1.New, []byte(apiSecret))
	h.Write([]byte("timestamp=" + timestamp + "&upload_preset=" + uploadPreset))
	signature := hex.EncodeToString(h.Sum(nil))

	// Respond with the timestamp and signature
	response := map[string]string{
		"timestamp": timestamp,
		"signature": signature,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

type uploadEvidenceRequest struct {
	// data URI or remote URL of the receipt photo
	File string `json:"file"`
	// optional public id, defaults to a Cloudinary-generated one
	PublicID string `json:"publicId,omitempty"`
}

// UploadEvidence uploads a receipt photo server-side and returns the hosted
// URL, for clients that cannot do a signed direct upload
func (c CloudinaryHandler) UploadEvidence(w http.ResponseWriter, r *http.Request) {
	var req uploadEvidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	cld, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		config.ErrorStatus("failed to initialize cloudinary", http.StatusInternalServerError, w, err)
		return
	}

	res, err := cld.Upload.Upload(r.Context(), req.File, uploader.UploadParams{
		PublicID: req.PublicID,
		Folder:   "fuel-evidence",
	})
	if err != nil {
		config.ErrorStatus("failed to upload evidence", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"url":      res.SecureURL,
		"publicId": res.PublicID,
	})
}
