package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/usecases/check_fee"
)

// FeesHandler serves fee checks over HTTP.
type FeesHandler struct {
	checkFee *check_fee.Interactor
	logger   *zap.Logger
}

// NewFeesHandler creates a new HTTP fees handler.
func NewFeesHandler(checkFee *check_fee.Interactor, logger *zap.Logger) *FeesHandler {
	return &FeesHandler{checkFee: checkFee, logger: logger}
}

// Register mounts the fee endpoints on the router.
func (h *FeesHandler) Register(r chi.Router) {
	r.Get("/fees", h.ServeHTTP)
}

// Fee is a single line item of a fee check.
type Fee struct {
	Type    string `json:"type"`
	Amount  string `json:"amount"`
	Premium bool   `json:"premium"`
}

// CheckFeeResponse is the body of a successful fee check.
type CheckFeeResponse struct {
	DomainName string `json:"domain_name"`
	Command    string `json:"command"`
	Years      int    `json:"years"`
	AsOf       string `json:"as_of"`
	Currency   string `json:"currency"`
	Fees       []Fee  `json:"fees"`
	Total      string `json:"total"`
	Token      string `json:"token,omitempty"`
}

// ServeHTTP handles GET /api/v1/fees?command=&domain=&registrar=&years=&token=&sunrise=&expired=&as_of=
func (h *FeesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	command, err := domain.ParseCommandName(query.Get("command"))
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if query.Get("domain") == "" || query.Get("registrar") == "" {
		writeBadRequest(w, "domain and registrar are required")
		return
	}
	years, ok := parseIntParam(query.Get("years"))
	if !ok {
		writeBadRequest(w, "years must be an integer")
		return
	}

	req := &check_fee.Request{
		Command:     command,
		DomainName:  query.Get("domain"),
		RegistrarID: query.Get("registrar"),
		Years:       years,
		IsSunrise:   query.Get("sunrise") == "true",
		IsExpired:   query.Get("expired") == "true",
	}
	if query.Has("token") {
		token := query.Get("token")
		req.Token = &token
	}
	if raw := query.Get("as_of"); raw != "" {
		if req.AsOf, err = time.Parse(time.RFC3339, raw); err != nil {
			writeBadRequest(w, "as_of must be an RFC 3339 timestamp")
			return
		}
	}

	resp, err := h.checkFee.Execute(r.Context(), req)
	if err != nil {
		h.logger.Debug("fee check failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("domain", req.DomainName),
			zap.Error(err),
		)
		writeError(w, err)
		return
	}

	body := CheckFeeResponse{
		DomainName: resp.DomainName,
		Command:    string(resp.Command),
		Years:      resp.Years,
		AsOf:       resp.AsOf.Format(time.RFC3339),
		Currency:   resp.Fees.Currency().Code,
		Fees:       make([]Fee, 0, len(resp.Fees.Fees())),
		Total:      resp.Fees.TotalCost().AmountString(),
	}
	for _, fee := range resp.Fees.Fees() {
		body.Fees = append(body.Fees, Fee{
			Type:    string(fee.Type()),
			Amount:  fee.Amount().StringFixed(resp.Fees.Currency().Scale),
			Premium: fee.IsPremium(),
		})
	}
	if resp.Token != nil {
		body.Token = resp.Token.Token()
	}
	writeJSON(w, http.StatusOK, body)
}
