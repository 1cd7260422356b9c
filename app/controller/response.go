package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"carrier-contracts/repository"
)

// sampleNotice is shown wherever sample rates replace a failed calculation
const sampleNotice = "The rate calculation failed, showing sample data instead."

// failureResponse is the envelope returned by every failed proxy call
type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, failureResponse{Success: false, Message: message})
}

// backendDetail prefers the body of a failed backend response over the bare status
func backendDetail(err error) string {
	var statusErr *repository.StatusError
	if errors.As(err, &statusErr) && statusErr.Body != "" {
		return fmt.Sprintf("%d: %s", statusErr.StatusCode, statusErr.Body)
	}
	return err.Error()
}

// parseWeeklyCharges validates a weekly spend typed by the user.
// The trimmed input is returned unchanged so it reaches the backend exactly as typed.
func parseWeeklyCharges(raw string) (string, decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", decimal.Zero, fmt.Errorf("weekly charges are required")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("weekly charges must be a number")
	}
	if amount.IsNegative() {
		return "", decimal.Zero, fmt.Errorf("weekly charges cannot be negative")
	}
	return raw, amount, nil
}

func viewerURL(contractID, versionID, weeklyCharges string) string {
	u := fmt.Sprintf("/contract/%s/version/%s", url.PathEscape(contractID), url.PathEscape(versionID))
	if weeklyCharges != "" {
		u += "?" + url.Values{"weeklyCharges": {weeklyCharges}}.Encode()
	}
	return u
}

func calculatorURL(contractID, versionID string, query url.Values) string {
	u := fmt.Sprintf("/contract/%s/version/%s/calculate", url.PathEscape(contractID), url.PathEscape(versionID))
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
