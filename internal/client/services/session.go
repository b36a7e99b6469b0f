// Package services contains the client-side stores of the vaiti web client:
// the session service (authentication state machine) and the search service
// (filters, vacancies, resumes and auto-apply schedulers). Both are plain
// injected dependencies constructed once at startup; there is no ambient
// global state.
package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/rodion-stepanov/vaiti-web/internal/client/api"
	"github.com/rodion-stepanov/vaiti-web/internal/client/models"
	"github.com/rodion-stepanov/vaiti-web/internal/client/repositories/state"
	"github.com/rodion-stepanov/vaiti-web/internal/dbx"
	"github.com/rodion-stepanov/vaiti-web/internal/logging"
)

// SessionState is the authentication state machine.
//
//	Unauthenticated -> Validating -> Authenticated
//
// A persisted token puts a fresh session into Validating until exactly one
// validation attempt resolves; explicit logout is the only way back to
// Unauthenticated from Authenticated.
type SessionState int

const (
	StateUnauthenticated SessionState = iota
	StateValidating
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Routes the session service navigates to. The presentation layer decides
// what they mean.
const (
	RouteHome      = "/"
	RouteDashboard = "/dashboard"
)

// Navigator is the "redirect-on-condition" capability of the presentation
// layer. The session service calls it after a successful login and after
// logout.
type Navigator interface {
	NavigateTo(route string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(route string)

func (f NavigatorFunc) NavigateTo(route string) { f(route) }

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Session owns the access token lifecycle and the current user profile.
//
// Failure semantics: Login/Register/TelegramLogin return their error to the
// caller (the form renders it); CheckAuth absorbs every failure into a state
// transition and never reports one.
type Session struct {
	client   api.Client
	db       *sql.DB
	nav      Navigator
	log      logging.Logger
	validate *validator.Validate

	mu                sync.Mutex
	state             SessionState
	user              *models.User
	authCheckComplete bool
	checking          bool
}

// NewSession constructs the session service. Call Bootstrap before use to
// load the persisted token.
func NewSession(client api.Client, db *sql.DB, nav Navigator, log logging.Logger) *Session {
	return &Session{
		client:   client,
		db:       db,
		nav:      nav,
		log:      log.With("service", "session"),
		validate: validator.New(),
		state:    StateUnauthenticated,
	}
}

func (s *Session) stateRepo() state.Repository {
	return state.NewSQLiteRepository(s.db)
}

// Bootstrap loads the persisted token, if any. With no token the session is
// immediately Unauthenticated and the auth check is considered complete;
// with one it stays Validating until CheckAuth resolves.
func (s *Session) Bootstrap(ctx context.Context) error {
	token, err := s.stateRepo().Get(ctx, state.KeyAccessToken)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(token) == 0 {
		s.state = StateUnauthenticated
		s.authCheckComplete = true
		return nil
	}
	s.client.SetAccessToken(string(token))
	s.state = StateValidating
	return nil
}

// Login authenticates with email/password. On success the returned token
// replaces any prior one (memory and durable storage) and navigation moves
// to the dashboard. On failure nothing changes and the error is returned
// for the form to render.
func (s *Session) Login(ctx context.Context, email, password string) error {
	if err := s.validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return err
	}

	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.completeLogin(ctx, token, email)
	return nil
}

// Register creates an account; on success behaves exactly like Login.
func (s *Session) Register(ctx context.Context, email, password string) error {
	if err := s.validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return err
	}

	token, err := s.client.Register(ctx, email, password)
	if err != nil {
		return err
	}

	s.completeLogin(ctx, token, email)
	return nil
}

// TelegramLogin authenticates with the payload produced by the Telegram
// login widget.
func (s *Session) TelegramLogin(ctx context.Context, payload models.TelegramAuth) error {
	if err := s.validate.Struct(payload); err != nil {
		return err
	}

	token, err := s.client.TelegramAuth(ctx, payload)
	if err != nil {
		return err
	}

	s.completeLogin(ctx, token, payload.Username)
	return nil
}

func (s *Session) completeLogin(ctx context.Context, token, email string) {
	s.client.SetAccessToken(token)

	// Persistence is best effort: the in-memory session already works for
	// this process lifetime even if the disk write fails.
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := state.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, state.KeyAccessToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, state.KeyLastEmail, []byte(email))
	})
	if err != nil {
		s.log.Warn(ctx, "failed to persist session", "error", err)
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.mu.Unlock()

	s.nav.NavigateTo(RouteDashboard)
}

// Logout notifies the server on a best-effort basis, then unconditionally
// clears the token and profile from memory and durable storage and navigates
// to the public landing page.
func (s *Session) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		s.log.Warn(ctx, "logout request failed", "error", err)
	}

	s.client.SetAccessToken("")

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := state.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, state.KeyAccessToken); err != nil {
			return err
		}
		return repo.Delete(ctx, state.KeyLastEmail)
	})
	if err != nil {
		s.log.Warn(ctx, "failed to clear persisted session", "error", err)
	}

	s.mu.Lock()
	s.user = nil
	s.state = StateUnauthenticated
	s.authCheckComplete = true
	s.mu.Unlock()

	s.nav.NavigateTo(RouteHome)
}

// CheckAuth validates the current session. It is idempotent and self-guards
// against concurrent first-time calls: while one validation request is in
// flight every other call returns immediately.
//
// Only a structured API error (the server explicitly rejecting the token)
// destroys the session; transport failures keep the token so a later call
// can retry.
func (s *Session) CheckAuth(ctx context.Context) {
	s.mu.Lock()

	if s.client.AccessToken() == "" {
		s.user = nil
		s.state = StateUnauthenticated
		s.authCheckComplete = true
		s.mu.Unlock()
		return
	}

	// Profile already cached: trust it for the rest of the page lifetime.
	if s.user != nil {
		s.state = StateAuthenticated
		s.authCheckComplete = true
		s.mu.Unlock()
		return
	}

	if s.checking {
		s.mu.Unlock()
		return
	}
	s.checking = true
	s.state = StateValidating
	s.mu.Unlock()

	user, err := s.client.Me(ctx)

	s.mu.Lock()
	s.checking = false

	if err == nil {
		s.user = user
		s.state = StateAuthenticated
		s.authCheckComplete = true
		s.mu.Unlock()
		return
	}

	if _, ok := api.AsAPIError(err); ok {
		s.mu.Unlock()
		s.log.Warn(ctx, "session rejected by server, logging out", "error", err)
		s.Logout(ctx)
		return
	}

	// Network-level failure: keep the token, just mark the check complete.
	s.authCheckComplete = true
	s.mu.Unlock()
	s.log.Warn(ctx, "auth check failed, keeping session", "error", err)
}

// User returns the cached profile or nil.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// State returns the current state machine position.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// AuthCheckComplete reports whether at least one validation attempt has
// resolved (success, recoverable failure or no-token case).
func (s *Session) AuthCheckComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authCheckComplete
}

// IsAuthenticated reports whether a token is present.
func (s *Session) IsAuthenticated() bool {
	return s.client.AccessToken() != ""
}

// TokenExpiry peeks at the access token's exp claim without verifying the
// signature (the server stays authoritative). Returns false when there is no
// token or it carries no expiry.
func (s *Session) TokenExpiry() (time.Time, bool) {
	token := s.client.AccessToken()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
