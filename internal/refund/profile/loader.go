// Package profile loads the account-level facts a session starts from.
package profile

import (
	"encoding/json"
	"os"

	logx "github.com/refundflow/server/pkg/logger"

	"github.com/refundflow/server/internal/refund/model"
)

// Default is the documented profile used when customer data cannot be
// loaded. Session creation never aborts over a missing or malformed file.
func Default() model.ProfileFacts {
	return model.ProfileFacts{
		CustomerID:    "UNKNOWN",
		AccountStatus: "good_standing",
		LoyaltyTier:   "Gold",
		FraudFlag:     "No",
		ReturnAbuse:   "No",
	}
}

// Load reads the profile facts from a customer JSON document. A missing
// file, malformed JSON or out-of-domain facts are recovered with the default
// profile and logged at warning level.
func Load(path string) model.ProfileFacts {
	raw, err := os.ReadFile(path)
	if err != nil {
		logx.Warn().Err(err).Str("path", path).Msg("Customer data not readable, using default profile")
		return Default()
	}

	var facts model.ProfileFacts
	if err := json.Unmarshal(raw, &facts); err != nil {
		logx.Warn().Err(err).Str("path", path).Msg("Customer data malformed, using default profile")
		return Default()
	}
	if !facts.Valid() {
		logx.Warn().Str("path", path).Str("customer_id", facts.CustomerID).
			Msg("Customer data holds out-of-domain facts, using default profile")
		return Default()
	}

	logx.Info().Str("customer_id", facts.CustomerID).Msg("Customer data loaded")
	return facts
}
