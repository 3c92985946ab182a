package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/karstlund/vendhub/internal/domain"
)

// SellerIDHeader identifies the seller terminal making the request. The
// gateway in front of this service authenticates the session and injects it.
const SellerIDHeader = "X-Seller-ID"

type errorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondError translates domain errors into HTTP responses. Internal error
// details are logged, never surfaced.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if fields := domain.GetValidationFields(err); fields != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{errorDetail{
			Code:    domain.EINVALID,
			Message: "Validation failed",
			Fields:  fields,
		}})
		return
	}

	code := domain.ErrorCode(err)
	status := statusFromCode(code)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	}

	respondJSON(w, status, errorBody{errorDetail{
		Code:    code,
		Message: domain.ErrorMessage(err),
	}})
}

func statusFromCode(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.Invalid("api.decode", "Malformed request body")
	}
	return nil
}

// sellerID extracts the seller id header, required on all seller-scoped
// routes.
func sellerID(r *http.Request) (string, error) {
	id := r.Header.Get(SellerIDHeader)
	if id == "" {
		return "", domain.Invalid("api.seller", "Missing "+SellerIDHeader+" header")
	}
	return id, nil
}
