package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"google.golang.org/grpc/codes"

	"github.com/light-bringer/registry-pricing-service/internal/transport/grpc/pricing"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	EppCode int    `json:"epp_code,omitempty"`
}

var httpStatusByCode = map[codes.Code]int{
	codes.InvalidArgument:    http.StatusBadRequest,
	codes.NotFound:           http.StatusNotFound,
	codes.FailedPrecondition: http.StatusUnprocessableEntity,
	codes.PermissionDenied:   http.StatusForbidden,
	codes.Aborted:            http.StatusConflict,
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError renders a use-case error with the same classification as the gRPC API.
func writeError(w http.ResponseWriter, err error) {
	st := pricing.StatusFromError(err)
	code, ok := httpStatusByCode[st.Code()]
	if !ok {
		code = http.StatusInternalServerError
	}
	writeJSON(w, code, ErrorResponse{
		Error:   st.Message(),
		Code:    st.Code().String(),
		EppCode: pricing.EppCode(st.Err()),
	})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg, Code: codes.InvalidArgument.String()})
}

func parseIntParam(raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}
