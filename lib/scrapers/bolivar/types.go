package bolivar

import (
	"errors"
	"time"
)

// This package only ever reads from the portal. It must never submit a
// desistimiento or any other mutating action; the only POST it performs
// replays the portal's own search form.

var (
	// ErrConfiguration means the caller supplied contradictory or missing
	// auth input. Nothing was sent to the portal.
	ErrConfiguration = errors.New("invalid scraper configuration")
	// ErrAuthentication means the credential login sequence failed.
	// The whole batch is unusable.
	ErrAuthentication = errors.New("portal authentication failed")
	// ErrProtocol means an expected page element (view state token or
	// search form) was missing. Fatal for the affected radicado only.
	ErrProtocol = errors.New("unexpected portal page structure")
)

// Credentials is the material for server-side login. Poliza is the role
// the portal expects on the role-selection step.
type Credentials struct {
	UserId   string `json:"user_id"`
	Password string `json:"password"`
	Poliza   string `json:"poliza"`
}

// Result is the outcome of querying one radicado. Immutable once built.
// Field names on the wire match the consumer-facing API.
type Result struct {
	Radicado          string    `json:"radicado"`
	OK                bool      `json:"ok"`
	EstadoRaw         string    `json:"estado_raw"`
	EstadoNormalizado string    `json:"estado_normalizado"`
	Asegurado         string    `json:"asegurado"`
	ConsultedAt       time.Time `json:"consulted_at"`
	Error             string    `json:"error,omitempty"`
}

type BatchResult struct {
	FetchedAt time.Time `json:"fetched_at"`
	Count     int       `json:"count"`
	Results   []Result  `json:"results"`
}
