package pricing

import (
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/usecases/check_fee"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/usecases/create_domain"
	"github.com/light-bringer/registry-pricing-service/internal/models/m_outbox"
)

// Request and reply field names.
const (
	FieldCommand       = "command"
	FieldDomainName    = "domain_name"
	FieldRegistrarID   = "registrar_id"
	FieldYears         = "years"
	FieldToken         = "token"
	FieldSunrise       = "sunrise"
	FieldExpired       = "expired"
	FieldAsOf          = "as_of"
	FieldCurrency      = "currency"
	FieldFees          = "fees"
	FieldTotal         = "total"
	FieldHistoryID     = "history_id"
	FieldRecurrenceID  = "recurrence_id"
	FieldRedeemedToken = "redeemed_token"
	FieldCreatedAt     = "created_at"
	FieldEventType     = "event_type"
	FieldAggregateID   = "aggregate_id"
	FieldStatus        = "status"
	FieldLimit         = "limit"
	FieldEvents        = "events"
)

func stringField(s *structpb.Struct, name string) string {
	return s.GetFields()[name].GetStringValue()
}

// optionalStringField distinguishes an absent field from an empty string.
func optionalStringField(s *structpb.Struct, name string) *string {
	v, ok := s.GetFields()[name]
	if !ok {
		return nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil
	}
	str := v.GetStringValue()
	return &str
}

func boolField(s *structpb.Struct, name string) bool {
	return s.GetFields()[name].GetBoolValue()
}

func intField(s *structpb.Struct, name string) (int64, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return 0, nil
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	if n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return int64(n.NumberValue), nil
}

func timeField(s *structpb.Struct, name string) (time.Time, error) {
	raw := stringField(s, name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be an RFC 3339 timestamp", name)
	}
	return t, nil
}

// structToCheckFeeRequest maps a CheckFee request. Validation has already run.
func structToCheckFeeRequest(in *structpb.Struct) (*check_fee.Request, error) {
	command, err := domain.ParseCommandName(stringField(in, FieldCommand))
	if err != nil {
		return nil, err
	}
	years, err := intField(in, FieldYears)
	if err != nil {
		return nil, err
	}
	asOf, err := timeField(in, FieldAsOf)
	if err != nil {
		return nil, err
	}
	return &check_fee.Request{
		Command:     command,
		DomainName:  stringField(in, FieldDomainName),
		RegistrarID: stringField(in, FieldRegistrarID),
		Years:       int(years),
		Token:       optionalStringField(in, FieldToken),
		IsSunrise:   boolField(in, FieldSunrise),
		IsExpired:   boolField(in, FieldExpired),
		AsOf:        asOf,
	}, nil
}

func structToCreateDomainRequest(in *structpb.Struct) (*create_domain.Request, error) {
	years, err := intField(in, FieldYears)
	if err != nil {
		return nil, err
	}
	return &create_domain.Request{
		DomainName:  stringField(in, FieldDomainName),
		RegistrarID: stringField(in, FieldRegistrarID),
		Years:       int(years),
		Token:       optionalStringField(in, FieldToken),
		IsSunrise:   boolField(in, FieldSunrise),
	}, nil
}

func structToListEventsRequest(in *structpb.Struct) (*list_events.Request, error) {
	limit, err := intField(in, FieldLimit)
	if err != nil {
		return nil, err
	}
	return &list_events.Request{
		EventType:   optionalStringField(in, FieldEventType),
		AggregateID: optionalStringField(in, FieldAggregateID),
		Status:      optionalStringField(in, FieldStatus),
		Limit:       limit,
	}, nil
}

// feesToValues renders fee line items as a list of {type, amount, premium}.
func feesToValues(fees *domain.FeesAndCredits) []interface{} {
	out := make([]interface{}, 0, len(fees.Fees()))
	for _, fee := range fees.Fees() {
		out = append(out, map[string]interface{}{
			"type":    string(fee.Type()),
			"amount":  domain.NewMoney(fees.Currency(), fee.Amount()).AmountString(),
			"premium": fee.IsPremium(),
		})
	}
	return out
}

func checkFeeResponseToStruct(resp *check_fee.Response) (*structpb.Struct, error) {
	fields := map[string]interface{}{
		FieldDomainName: resp.DomainName,
		FieldCommand:    string(resp.Command),
		FieldYears:      resp.Years,
		FieldAsOf:       resp.AsOf.Format(time.RFC3339),
		FieldCurrency:   resp.Fees.Currency().Code,
		FieldFees:       feesToValues(resp.Fees),
		FieldTotal:      resp.Fees.TotalCost().AmountString(),
	}
	if resp.Token != nil {
		fields[FieldToken] = resp.Token.Token()
	}
	return structpb.NewStruct(fields)
}

func createDomainResponseToStruct(resp *create_domain.Response) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		FieldHistoryID:     resp.HistoryID,
		FieldDomainName:    resp.DomainName,
		FieldRecurrenceID:  resp.RecurrenceID,
		FieldRedeemedToken: resp.RedeemedToken,
		FieldCurrency:      resp.Fees.Currency().Code,
		FieldFees:          feesToValues(resp.Fees),
		FieldTotal:         resp.Fees.TotalCost().AmountString(),
		FieldCreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	})
}

func tokenToStruct(token *domain.AllocationToken) (*structpb.Struct, error) {
	fields := map[string]interface{}{
		FieldToken:               token.Token(),
		"token_type":             string(token.TokenType()),
		"token_behavior":         string(token.TokenBehavior()),
		"redeemed":               token.IsRedeemed(),
		"redemption_history_id":  token.RedemptionHistoryID(),
		FieldDomainName:          token.DomainName(),
		"allowed_registrar_ids":  stringsToValues(token.AllowedRegistrarIDs()),
		"allowed_tlds":           stringsToValues(token.AllowedTlds()),
		"discount_years":         token.DiscountYears(),
		"discount_premiums":      token.ShouldDiscountPremiums(),
		"registration_behavior":  string(token.RegistrationBehavior()),
		"renewal_price_behavior": string(token.RenewalPriceBehavior()),
		"version":                token.Version(),
	}

	actions := make([]string, 0, len(token.AllowedEppActions()))
	for _, a := range token.AllowedEppActions() {
		actions = append(actions, string(a))
	}
	fields["allowed_epp_actions"] = stringsToValues(actions)

	switch d := token.Discount().(type) {
	case domain.FractionDiscount:
		fields["discount_fraction"] = d.Fraction.String()
	case domain.FixedPriceDiscount:
		fields["discount_price"] = d.Price.String()
	}
	if price, ok := token.RenewalPrice(); ok {
		fields["renewal_price"] = price.String()
	}

	statuses := make([]interface{}, 0, token.StatusTransitions().Len())
	for _, e := range token.StatusTransitions().Entries() {
		statuses = append(statuses, map[string]interface{}{
			"at":     e.At.Format(time.RFC3339),
			"status": string(e.Value),
		})
	}
	fields["status_transitions"] = statuses

	return structpb.NewStruct(fields)
}

func eventsToStruct(events []*m_outbox.Data) (*structpb.Struct, error) {
	list := make([]interface{}, 0, len(events))
	for _, e := range events {
		item := map[string]interface{}{
			"event_id":       e.EventID,
			FieldEventType:   e.EventType,
			FieldAggregateID: e.AggregateID,
			FieldStatus:      e.Status,
			FieldCreatedAt:   e.CreatedAt.Format(time.RFC3339),
			"payload":        e.PayloadString(),
		}
		if e.ProcessedAt.Valid {
			item["processed_at"] = e.ProcessedAt.Time.Format(time.RFC3339)
		}
		list = append(list, item)
	}
	return structpb.NewStruct(map[string]interface{}{
		FieldEvents:   list,
		"total_count": len(events),
	})
}

func stringsToValues(in []string) []interface{} {
	out := make([]interface{}, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}
