package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nberthel/formadmin/internal/client/storage"
	"github.com/nberthel/formadmin/internal/validation"
	pkgapi "github.com/nberthel/formadmin/pkg/api"
)

//go:generate moq -out api_mock.go . API

// API is the slice of the HTTP client the session controller needs.
type API interface {
	// Login exchanges credentials for a token pair (public endpoint).
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error)

	// Me fetches the current user profile with the stored access token.
	Me(ctx context.Context) (*pkgapi.UserProfile, error)
}

// State is the session lifecycle state.
type State string

const (
	// StateLoading is the transient startup state, visited once.
	StateLoading State = "loading"
	// StateAnonymous means no valid session exists.
	StateAnonymous State = "anonymous"
	// StateAuthenticated means a profile was fetched with a stored token.
	StateAuthenticated State = "authenticated"
)

// Session is a read-only snapshot of the controller state.
type Session struct {
	State State
	User  *pkgapi.UserProfile
}

// IsAuthenticated reports whether the snapshot carries a live session.
func (s Session) IsAuthenticated() bool { return s.State == StateAuthenticated }

// ErrRestoreInProgress is returned by Login/Logout called while the
// startup restore is still running.
var ErrRestoreInProgress = errors.New("session restore in progress")

// Controller owns the session state machine:
//
//	Loading -> Anonymous | Authenticated
//
// Anonymous and Authenticated are both steady states; Loading is visited
// once per process. All other components read session state through
// Current().
type Controller struct {
	api    API
	tokens storage.TokenStorage

	// opMu serializes Restore/Login/Logout end to end.
	opMu sync.Mutex

	// stateMu guards the snapshot fields below. Kept separate from opMu
	// so ForceLogout (which may fire from inside an operation's own HTTP
	// call) never deadlocks.
	stateMu   sync.Mutex
	state     State
	user      *pkgapi.UserProfile
	restoring bool
	restored  bool
}

// NewController creates the session controller and wires it as the
// broadcaster's logout handler.
func NewController(apiClient API, tokens storage.TokenStorage, broadcaster *Broadcaster) *Controller {
	c := &Controller{
		api:    apiClient,
		tokens: tokens,
		state:  StateLoading,
	}
	if broadcaster != nil {
		broadcaster.Register(c.ForceLogout)
	}
	return c
}

// Current returns a snapshot of the session.
func (c *Controller) Current() Session {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	snapshot := Session{State: c.state}
	if c.user != nil {
		user := *c.user
		snapshot.User = &user
	}
	return snapshot
}

// Restore reconstructs the session from the stored token pair: pair
// present and profile fetch succeeds -> Authenticated; anything else ->
// tokens cleared, Anonymous. Idempotent after the first completed run.
func (c *Controller) Restore(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.stateMu.Lock()
	if c.restored {
		c.stateMu.Unlock()
		return nil
	}
	c.restoring = true
	c.stateMu.Unlock()

	defer func() {
		c.stateMu.Lock()
		c.restoring = false
		c.restored = true
		c.stateMu.Unlock()
	}()

	// Token presence is the sole restore signal.
	if _, err := c.tokens.GetTokens(ctx); err != nil {
		if !errors.Is(err, storage.ErrTokensNotFound) {
			slog.Warn("failed to read stored tokens during restore", "error", err)
		}
		c.becomeAnonymous(ctx)
		return nil
	}

	profile, err := c.api.Me(ctx)
	if err != nil {
		// Stale or rejected token: tear down rather than keep a pair the
		// server will never accept again.
		slog.Debug("session restore failed", "error", err)
		c.becomeAnonymous(ctx)
		return nil
	}

	c.setAuthenticated(profile)
	return nil
}

// Login authenticates against POST /token/, persists the returned pair
// and fetches the profile. On any failure the state stays (or becomes)
// Anonymous and the error carries the server-provided message.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	if err := validation.ValidateEmail(email); err != nil {
		return fmt.Errorf("invalid credentials: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid credentials: %w", err)
	}

	if c.isRestoring() {
		return ErrRestoreInProgress
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	resp, err := c.api.Login(ctx, pkgapi.LoginRequest{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	pair := &storage.TokenPair{Access: resp.Access, Refresh: resp.Refresh}
	if err := c.tokens.SaveTokens(ctx, pair); err != nil {
		return fmt.Errorf("failed to persist tokens: %w", err)
	}

	profile, err := c.api.Me(ctx)
	if err != nil {
		c.becomeAnonymous(ctx)
		return fmt.Errorf("profile fetch failed: %w", err)
	}

	c.setAuthenticated(profile)
	return nil
}

// Logout clears the persisted pair and drops the profile. Safe to call in
// any state.
func (c *Controller) Logout(ctx context.Context) error {
	if c.isRestoring() {
		return ErrRestoreInProgress
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.becomeAnonymous(ctx)
	return nil
}

// ForceLogout is the broadcaster-facing teardown: the HTTP layer has
// already cleared the tokens, only the in-memory state needs dropping.
func (c *Controller) ForceLogout() {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	c.state = StateAnonymous
	c.user = nil
}

// AccessTokenExpiry reads the exp claim of the stored access token without
// verifying the signature. Display only; expiry is never used as an auth
// signal.
func (c *Controller) AccessTokenExpiry(ctx context.Context) (time.Time, error) {
	pair, err := c.tokens.GetTokens(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read stored tokens: %w", err)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(pair.Access, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse access token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("access token carries no expiry claim")
	}
	return exp.Time, nil
}

func (c *Controller) isRestoring() bool {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.restoring
}

func (c *Controller) setAuthenticated(profile *pkgapi.UserProfile) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	c.state = StateAuthenticated
	c.user = profile
}

func (c *Controller) becomeAnonymous(ctx context.Context) {
	if err := c.tokens.ClearTokens(ctx); err != nil {
		slog.Warn("failed to clear stored tokens", "error", err)
	}

	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	c.state = StateAnonymous
	c.user = nil
}
