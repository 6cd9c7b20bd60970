// internal/api/types/response.go
package types

// ProcessResponse is the reply envelope for a processed command.
type ProcessResponse struct {
	Text      string  `json:"text"`
	Response  string  `json:"response"`
	AudioID   *string `json:"audio_id"`
	Timestamp string  `json:"timestamp"`
}

// BalanceResponse is the direct balance summary of an account.
type BalanceResponse struct {
	PrincipalBalance int64 `json:"principal_balance"`
	AirtimeCredit    int64 `json:"airtime_credit"`
	DataAllowanceMB  int64 `json:"data_allowance_mb"`
	LoyaltyBonus     int64 `json:"loyalty_bonus"`
}

// HealthResponse reports overall status plus the availability of each
// optional subsystem independently.
type HealthResponse struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Services  map[string]bool `json:"services"`
}

// ErrorResponse is the generic client/server error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
