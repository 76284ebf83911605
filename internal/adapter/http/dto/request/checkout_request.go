package request

// CheckoutCreateRequest carries the host checkout return legs for a
// payment creation call. Both are required; the provider refuses a
// session it cannot redirect back from.

type CheckoutCreateRequest struct {
	RedirectURISuccess string `json:"redirect_uri_success" binding:"required"`
	RedirectURICancel  string `json:"redirect_uri_cancel" binding:"required"`
}
