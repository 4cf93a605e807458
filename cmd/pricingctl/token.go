package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/queries/get_token"
)

type statusView struct {
	At     string `json:"at" yaml:"at"`
	Status string `json:"status" yaml:"status"`
}

type tokenView struct {
	Token                string       `json:"token" yaml:"token"`
	Type                 string       `json:"token_type" yaml:"token_type"`
	Behavior             string       `json:"token_behavior" yaml:"token_behavior"`
	RedemptionHistoryID  string       `json:"redemption_history_id,omitempty" yaml:"redemption_history_id,omitempty"`
	DomainName           string       `json:"domain_name,omitempty" yaml:"domain_name,omitempty"`
	AllowedRegistrarIDs  []string     `json:"allowed_registrar_ids,omitempty" yaml:"allowed_registrar_ids,omitempty"`
	AllowedTlds          []string     `json:"allowed_tlds,omitempty" yaml:"allowed_tlds,omitempty"`
	AllowedEppActions    []string     `json:"allowed_epp_actions,omitempty" yaml:"allowed_epp_actions,omitempty"`
	DiscountFraction     string       `json:"discount_fraction,omitempty" yaml:"discount_fraction,omitempty"`
	DiscountPrice        string       `json:"discount_price,omitempty" yaml:"discount_price,omitempty"`
	DiscountYears        int          `json:"discount_years" yaml:"discount_years"`
	DiscountPremiums     bool         `json:"discount_premiums" yaml:"discount_premiums"`
	RegistrationBehavior string       `json:"registration_behavior" yaml:"registration_behavior"`
	RenewalPriceBehavior string       `json:"renewal_price_behavior" yaml:"renewal_price_behavior"`
	RenewalPrice         string       `json:"renewal_price,omitempty" yaml:"renewal_price,omitempty"`
	StatusTransitions    []statusView `json:"status_transitions" yaml:"status_transitions"`
}

func newTokenView(t *domain.AllocationToken) tokenView {
	v := tokenView{
		Token:                t.Token(),
		Type:                 string(t.TokenType()),
		Behavior:             string(t.TokenBehavior()),
		RedemptionHistoryID:  t.RedemptionHistoryID(),
		DomainName:           t.DomainName(),
		AllowedRegistrarIDs:  t.AllowedRegistrarIDs(),
		AllowedTlds:          t.AllowedTlds(),
		DiscountYears:        t.DiscountYears(),
		DiscountPremiums:     t.ShouldDiscountPremiums(),
		RegistrationBehavior: string(t.RegistrationBehavior()),
		RenewalPriceBehavior: string(t.RenewalPriceBehavior()),
	}
	for _, a := range t.AllowedEppActions() {
		v.AllowedEppActions = append(v.AllowedEppActions, string(a))
	}
	switch d := t.Discount().(type) {
	case domain.FractionDiscount:
		v.DiscountFraction = d.Fraction.String()
	case domain.FixedPriceDiscount:
		v.DiscountPrice = d.Price.String()
	}
	if price, ok := t.RenewalPrice(); ok {
		v.RenewalPrice = price.String()
	}
	for _, e := range t.StatusTransitions().Entries() {
		v.StatusTransitions = append(v.StatusTransitions, statusView{At: e.At.Format(time.RFC3339), Status: string(e.Value)})
	}
	return v
}

func newTokenCommand(c *cli) *cobra.Command {
	token := &cobra.Command{Use: "token", Short: "Allocation token operations"}

	get := &cobra.Command{
		Use:   "get TOKEN",
		Short: "Show an allocation token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.services(cmd)
			if err != nil {
				return err
			}
			t, err := opts.GetToken.Execute(cmd.Context(), &get_token.Request{Token: args[0]})
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), newTokenView(t))
		},
	}

	token.AddCommand(get)
	return token
}
