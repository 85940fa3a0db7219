package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/martinezlucio001-crypto/gestao-frota-tim-sub001/databases"
)

type exportTokenRequest struct {
	Email string `json:"email"`
	// which dataset the token grants: "fuel-entries" or "maintenance"
	Scope string `json:"scope"`
}

type exportTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	Scope     string `json:"scope"`
}

// Admin handles administrative operations that fall outside the normal
// bearer-token flow
type Admin struct {
	UDB databases.UserDatabase
}

// ExportTokenHandler issues a short-lived JWT that the spreadsheet bridge
// presents when pulling full dataset exports
func (h Admin) ExportTokenHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req exportTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid request"})
		return
	}
	if req.Scope != "fuel-entries" && req.Scope != "maintenance" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unknown export scope"})
		return
	}

	user, err := h.UDB.FindOne(r.Context(), bson.M{"user.email": req.Email})
	if err != nil || !user.Details.IsAdmin {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
		return
	}

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "server misconfigured"})
		return
	}

	expiresAt := time.Now().Add(1 * time.Hour)
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Details.Email,
		"scope": req.Scope,
		"typ":   "export",
		"iat":   time.Now().Unix(),
		"exp":   expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "token generation failed"})
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(exportTokenResponse{
		Token:     signed,
		ExpiresAt: expiresAt.Unix(),
		Scope:     req.Scope,
	})
}
