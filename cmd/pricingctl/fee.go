package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/usecases/check_fee"
	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/usecases/create_domain"
)

// feeView is the printed form of a fee breakdown.
type feeView struct {
	Type    string `json:"type" yaml:"type"`
	Amount  string `json:"amount" yaml:"amount"`
	Premium bool   `json:"premium" yaml:"premium"`
}

func feeViews(fees *domain.FeesAndCredits) []feeView {
	out := make([]feeView, 0, len(fees.Fees()))
	for _, fee := range fees.Fees() {
		out = append(out, feeView{
			Type:    string(fee.Type()),
			Amount:  domain.NewMoney(fees.Currency(), fee.Amount()).AmountString(),
			Premium: fee.IsPremium(),
		})
	}
	return out
}

type checkFeeView struct {
	Domain   string    `json:"domain" yaml:"domain"`
	Command  string    `json:"command" yaml:"command"`
	Years    int       `json:"years" yaml:"years"`
	AsOf     string    `json:"as_of" yaml:"as_of"`
	Currency string    `json:"currency" yaml:"currency"`
	Fees     []feeView `json:"fees" yaml:"fees"`
	Total    string    `json:"total" yaml:"total"`
	Token    string    `json:"token,omitempty" yaml:"token,omitempty"`
}

func newFeeCommand(c *cli) *cobra.Command {
	fee := &cobra.Command{Use: "fee", Short: "Price domain commands"}

	var (
		command, domainName, registrar, token, asOf string
		years                                       int
		sunrise, expired                            bool
	)
	check := &cobra.Command{
		Use:     "check",
		Short:   "Compute the fee of a command without changing any state",
		Example: "  pricingctl fee check --command renew --domain premium.example --registrar TheRegistrar --years 2",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdName, err := domain.ParseCommandName(command)
			if err != nil {
				return err
			}
			req := &check_fee.Request{
				Command:     cmdName,
				DomainName:  domainName,
				RegistrarID: registrar,
				Years:       years,
				IsSunrise:   sunrise,
				IsExpired:   expired,
			}
			if cmd.Flags().Changed("token") {
				req.Token = &token
			}
			if asOf != "" {
				if req.AsOf, err = time.Parse(time.RFC3339, asOf); err != nil {
					return err
				}
			}

			opts, err := c.services(cmd)
			if err != nil {
				return err
			}
			resp, err := opts.CheckFee.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}

			view := checkFeeView{
				Domain:   resp.DomainName,
				Command:  string(resp.Command),
				Years:    resp.Years,
				AsOf:     resp.AsOf.Format(time.RFC3339),
				Currency: resp.Fees.Currency().Code,
				Fees:     feeViews(resp.Fees),
				Total:    resp.Fees.TotalCost().AmountString(),
			}
			if resp.Token != nil {
				view.Token = resp.Token.Token()
			}
			return c.print(cmd.OutOrStdout(), view)
		},
	}
	check.Flags().StringVar(&command, "command", "create", "command to price (create, renew, restore, transfer, update)")
	check.Flags().StringVar(&domainName, "domain", "", "fully qualified domain name")
	check.Flags().StringVar(&registrar, "registrar", "", "registrar id")
	check.Flags().IntVar(&years, "years", 1, "registration term in years")
	check.Flags().StringVar(&token, "token", "", "allocation token")
	check.Flags().BoolVar(&sunrise, "sunrise", false, "price a sunrise create")
	check.Flags().BoolVar(&expired, "expired", false, "price a restore of an expired domain")
	check.Flags().StringVar(&asOf, "as-of", "", "pricing instant (RFC 3339), defaults to now")
	_ = check.MarkFlagRequired("domain")
	_ = check.MarkFlagRequired("registrar")

	fee.AddCommand(check)
	return fee
}

type createDomainView struct {
	HistoryID     string    `json:"history_id" yaml:"history_id"`
	Domain        string    `json:"domain" yaml:"domain"`
	RecurrenceID  string    `json:"recurrence_id" yaml:"recurrence_id"`
	RedeemedToken string    `json:"redeemed_token,omitempty" yaml:"redeemed_token,omitempty"`
	Currency      string    `json:"currency" yaml:"currency"`
	Fees          []feeView `json:"fees" yaml:"fees"`
	Total         string    `json:"total" yaml:"total"`
	CreatedAt     string    `json:"created_at" yaml:"created_at"`
}

func newDomainCommand(c *cli) *cobra.Command {
	dom := &cobra.Command{Use: "domain", Short: "Domain billing operations"}

	var (
		domainName, registrar, token string
		years                        int
		sunrise                      bool
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Price a create, redeem its token and open the billing recurrence",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := &create_domain.Request{
				DomainName:  domainName,
				RegistrarID: registrar,
				Years:       years,
				IsSunrise:   sunrise,
			}
			if cmd.Flags().Changed("token") {
				req.Token = &token
			}

			opts, err := c.services(cmd)
			if err != nil {
				return err
			}
			resp, err := opts.CreateDomain.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}

			return c.print(cmd.OutOrStdout(), createDomainView{
				HistoryID:     resp.HistoryID,
				Domain:        resp.DomainName,
				RecurrenceID:  resp.RecurrenceID,
				RedeemedToken: resp.RedeemedToken,
				Currency:      resp.Fees.Currency().Code,
				Fees:          feeViews(resp.Fees),
				Total:         resp.Fees.TotalCost().AmountString(),
				CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
			})
		},
	}
	create.Flags().StringVar(&domainName, "domain", "", "fully qualified domain name")
	create.Flags().StringVar(&registrar, "registrar", "", "registrar id")
	create.Flags().IntVar(&years, "years", 1, "registration term in years")
	create.Flags().StringVar(&token, "token", "", "allocation token")
	create.Flags().BoolVar(&sunrise, "sunrise", false, "create during sunrise")
	_ = create.MarkFlagRequired("domain")
	_ = create.MarkFlagRequired("registrar")

	dom.AddCommand(create)
	return dom
}
