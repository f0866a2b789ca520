package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refundflow/server/internal/refund/model"
)

func writeCustomerData(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "customer_data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidCustomerData(t *testing.T) {
	path := writeCustomerData(t, `{
		"customer_id": "CUST_67890",
		"account_status": "good_standing",
		"loyalty_tier": "Silver",
		"fraud_flag": "No",
		"return_abuse": "Yes"
	}`)

	facts := Load(path)
	assert.Equal(t, model.ProfileFacts{
		CustomerID:    "CUST_67890",
		AccountStatus: "good_standing",
		LoyaltyTier:   "Silver",
		FraudFlag:     "No",
		ReturnAbuse:   "Yes",
	}, facts)
}

func TestLoadMissingFileUsesDefault(t *testing.T) {
	facts := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Equal(t, Default(), facts)
}

func TestLoadMalformedJSONUsesDefault(t *testing.T) {
	path := writeCustomerData(t, `{"customer_id": `)
	assert.Equal(t, Default(), Load(path))
}

func TestLoadOutOfDomainFactsUsesDefault(t *testing.T) {
	path := writeCustomerData(t, `{
		"customer_id": "CUST_1",
		"account_status": "good_standing",
		"loyalty_tier": "Platinum",
		"fraud_flag": "No",
		"return_abuse": "No"
	}`)
	assert.Equal(t, Default(), Load(path))
}

func TestDefaultIsInDomain(t *testing.T) {
	assert.True(t, Default().Valid())
	assert.Equal(t, "UNKNOWN", Default().CustomerID)
}
