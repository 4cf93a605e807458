package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/registry-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/registry-pricing-service/internal/testutil"
)

func TestPrint(t *testing.T) {
	v := cleanupResult{Status: "completed", Cutoff: "2023-04-13T00:00:00Z", Deleted: 3}

	var buf bytes.Buffer
	c := &cli{output: "yaml"}
	require.NoError(t, c.print(&buf, v))
	assert.Contains(t, buf.String(), "status: completed\n")
	assert.Contains(t, buf.String(), "deleted: 3\n")

	buf.Reset()
	c.output = "json"
	require.NoError(t, c.print(&buf, v))
	assert.JSONEq(t, `{"status":"completed","cutoff":"2023-04-13T00:00:00Z","deleted":3,"dry_run":false}`, buf.String())
}

func TestInit_RejectsUnknownOutput(t *testing.T) {
	c := &cli{output: "xml"}
	assert.EqualError(t, c.init(), `unknown output format "xml"`)
}

func TestNewTokenView(t *testing.T) {
	p := testutil.TokenParams("abc123")
	p.Discount = testutil.Fraction("0.5")
	p.DiscountYears = 2
	p.AllowedEppActions = []domain.CommandName{domain.CommandCreate, domain.CommandRenew}
	p.StatusTransitions = testutil.ValidPromotion(t, testutil.Now)

	v := newTokenView(testutil.NewToken(t, p))

	assert.Equal(t, "SINGLE_USE", v.Type)
	assert.Equal(t, "0.5", v.DiscountFraction)
	assert.Empty(t, v.DiscountPrice)
	assert.Equal(t, 2, v.DiscountYears)
	assert.Equal(t, []string{"CREATE", "RENEW"}, v.AllowedEppActions)
	require.Len(t, v.StatusTransitions, 3)
	assert.Equal(t, "VALID", v.StatusTransitions[1].Status)
}

func TestFeeViews(t *testing.T) {
	fees := domain.NewFeesAndCredits(domain.USD,
		domain.NewFee(testutil.Money("13").Amount(), domain.FeeTypeCreate, false),
		domain.NewFee(testutil.Money("100").Amount(), domain.FeeTypeEap, false),
	)

	views := feeViews(fees)

	require.Len(t, views, 2)
	assert.Equal(t, feeView{Type: "CREATE", Amount: "13.00"}, views[0])
	assert.Equal(t, feeView{Type: "EAP", Amount: "100.00"}, views[1])
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()
	for _, path := range [][]string{
		{"fee", "check"},
		{"domain", "create"},
		{"token", "get"},
		{"events", "list"},
		{"outbox", "cleanup"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[1], cmd.Name())
	}
}
