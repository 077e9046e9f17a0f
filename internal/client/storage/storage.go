package storage

import "context"

// TokenPair is the bearer credential pair persisted between runs.
// Both values are opaque strings: the store never validates shape or expiry,
// the access token is used until the server rejects it.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenStorage persists the single token pair of the current session.
//
// Invariant: at most one pair exists at a time. SaveTokens overwrites
// unconditionally, ClearTokens is idempotent.
type TokenStorage interface {
	// SaveTokens stores the pair, replacing whatever was there before.
	SaveTokens(ctx context.Context, pair *TokenPair) error

	// GetTokens returns the stored pair.
	// Returns ErrTokensNotFound when no pair is stored.
	GetTokens(ctx context.Context) (*TokenPair, error)

	// ClearTokens removes the stored pair. Clearing an empty store is not
	// an error.
	ClearTokens(ctx context.Context) error
}

// PrefsStorage persists small UI preferences (currently only the theme).
type PrefsStorage interface {
	// SaveTheme stores the theme name ("light" or "dark").
	SaveTheme(ctx context.Context, theme string) error

	// GetTheme returns the stored theme, or ErrPrefNotFound.
	GetTheme(ctx context.Context) (string, error)
}
