package integration

import "errors"

var (
	// Connectivity errors
	ErrNotConnected = errors.New("integration: not connected to remote system")
	ErrAuthFailed   = errors.New("integration: authentication failed")
	ErrUnavailable  = errors.New("integration: remote system temporarily unavailable")

	// Request errors
	ErrRequestFailed   = errors.New("integration: remote request failed")
	ErrInvalidResponse = errors.New("integration: invalid remote response")

	// Not-found errors
	ErrProductNotFound = errors.New("integration: product not found")
	ErrOrderNotFound   = errors.New("integration: order not found")
	ErrCountryNotFound = errors.New("integration: country not found")

	// Sale order errors
	ErrNoOrderLines = errors.New("integration: no resolvable order lines")
)
