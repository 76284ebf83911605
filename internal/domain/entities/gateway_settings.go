package entities

import (
	"errors"
	"net/url"
	"strings"
)

var (
	ErrMissingCredentials = errors.New("gateway credentials missing for selected environment")
	ErrInvalidEndpoint    = errors.New("gateway endpoint is not an absolute url")
)

// GatewaySettings mirrors the gateway configuration saved by the host's
// admin settings form. It carries both credential sets; the test-mode flag
// decides which one is active.
//
// The adapter never caches these: they are re-read from the store on every
// operation so a saved change applies to the next checkout immediately.

type GatewaySettings struct {
	Enabled      bool   `json:"enabled"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
	TestMode     bool   `json:"testmode"`

	LiveEndpoint     string `json:"api_endpoint"`
	LiveCheckoutURL  string `json:"checkout_app_url"`
	LiveClientID     string `json:"client_id"`
	LiveClientSecret string `json:"client_secret"`

	SandboxEndpoint     string `json:"sandbox_api_endpoint"`
	SandboxCheckoutURL  string `json:"sandbox_checkout_app_url"`
	SandboxClientID     string `json:"sandbox_client_id"`
	SandboxClientSecret string `json:"sandbox_client_secret"`
}

// ResolvedEnvironment is the single active credential+endpoint set for one
// call. Exactly one of {sandbox, live} is selected; fields are never mixed.

type ResolvedEnvironment struct {
	APIEndpoint     string
	CheckoutBaseURL string
	ClientID        string
	ClientSecret    string
	Sandbox         bool
}

// ResolveEnvironment selects the sandbox or live set from the settings.
// Pure function: no I/O, same input yields the same output.
//
// It refuses to return an environment that could not make a valid call:
// blank credentials or a relative/garbage endpoint fail here, before any
// network traffic.
func ResolveEnvironment(s GatewaySettings) (ResolvedEnvironment, error) {
	env := ResolvedEnvironment{
		APIEndpoint:     s.LiveEndpoint,
		CheckoutBaseURL: s.LiveCheckoutURL,
		ClientID:        s.LiveClientID,
		ClientSecret:    s.LiveClientSecret,
	}
	if s.TestMode {
		env = ResolvedEnvironment{
			APIEndpoint:     s.SandboxEndpoint,
			CheckoutBaseURL: s.SandboxCheckoutURL,
			ClientID:        s.SandboxClientID,
			ClientSecret:    s.SandboxClientSecret,
			Sandbox:         true,
		}
	}

	if strings.TrimSpace(env.ClientID) == "" || strings.TrimSpace(env.ClientSecret) == "" {
		return ResolvedEnvironment{}, ErrMissingCredentials
	}
	if !isAbsoluteURL(env.APIEndpoint) || !isAbsoluteURL(env.CheckoutBaseURL) {
		return ResolvedEnvironment{}, ErrInvalidEndpoint
	}
	return env, nil
}

// Name reports which credential set is active, for logs and persistence.
func (e ResolvedEnvironment) Name() string {
	if e.Sandbox {
		return "sandbox"
	}
	return "live"
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
