package request

// RefundCreateRequest is the admin-facing refund payload. Amount is in
// minor units (cents) of the original order currency.

type RefundCreateRequest struct {
	AmountMinor int64  `json:"amount_minor" binding:"required"`
	Reason      string `json:"reason"`
}
