package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/rodion-stepanov/vaiti-web/internal/client/api"
	"github.com/rodion-stepanov/vaiti-web/internal/client/models"
	"github.com/rodion-stepanov/vaiti-web/internal/client/repositories/state"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE state (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func storedToken(t *testing.T, db *sql.DB) []byte {
	t.Helper()
	v, err := state.NewSQLiteRepository(db).Get(context.Background(), state.KeyAccessToken)
	require.NoError(t, err)
	return v
}

func newSession(t *testing.T, client *fakeClient) (*Session, *sql.DB, *fakeNavigator) {
	t.Helper()
	db := setupDB(t)
	nav := &fakeNavigator{}
	return NewSession(client, db, nav, testLogger(t)), db, nav
}

func TestBootstrapWithoutToken(t *testing.T) {
	client := &fakeClient{}
	s, _, _ := newSession(t, client)

	require.NoError(t, s.Bootstrap(context.Background()))

	require.Equal(t, StateUnauthenticated, s.State())
	require.True(t, s.AuthCheckComplete())
	require.False(t, s.IsAuthenticated())
}

func TestBootstrapWithPersistedToken(t *testing.T) {
	client := &fakeClient{}
	s, db, _ := newSession(t, client)
	require.NoError(t, state.NewSQLiteRepository(db).Set(context.Background(), state.KeyAccessToken, []byte("tok")))

	require.NoError(t, s.Bootstrap(context.Background()))

	require.Equal(t, StateValidating, s.State())
	require.False(t, s.AuthCheckComplete())
	require.Equal(t, "tok", client.AccessToken())
}

func TestCheckAuthWithoutTokenSkipsNetwork(t *testing.T) {
	client := &fakeClient{}
	s, _, _ := newSession(t, client)

	s.CheckAuth(context.Background())

	require.Nil(t, s.User())
	require.True(t, s.AuthCheckComplete())
	require.Zero(t, client.meCallCount())
}

func TestCheckAuthSuccessCachesProfile(t *testing.T) {
	client := &fakeClient{MeRet: &models.User{Email: "a@b.c"}}
	client.SetAccessToken("tok")
	s, _, _ := newSession(t, client)

	s.CheckAuth(context.Background())

	require.NotNil(t, s.User())
	require.Equal(t, "a@b.c", s.User().Email)
	require.Equal(t, StateAuthenticated, s.State())
	require.True(t, s.AuthCheckComplete())
}

func TestCheckAuthCachedProfileSkipsNetwork(t *testing.T) {
	client := &fakeClient{MeRet: &models.User{Email: "a@b.c"}}
	client.SetAccessToken("tok")
	s, _, _ := newSession(t, client)

	s.CheckAuth(context.Background())
	s.CheckAuth(context.Background())

	require.Equal(t, 1, client.meCallCount())
}

func TestCheckAuthStructuredRejectionLogsOut(t *testing.T) {
	client := &fakeClient{MeErr: &api.APIError{Status: 401, Message: "invalid token"}}
	client.SetAccessToken("tok")
	s, db, nav := newSession(t, client)
	require.NoError(t, state.NewSQLiteRepository(db).Set(context.Background(), state.KeyAccessToken, []byte("tok")))

	s.CheckAuth(context.Background())

	require.Empty(t, client.AccessToken())
	require.Nil(t, s.User())
	require.True(t, s.AuthCheckComplete())
	require.Equal(t, StateUnauthenticated, s.State())
	require.Nil(t, storedToken(t, db))
	require.Equal(t, RouteHome, nav.last())
}

func TestCheckAuthNetworkFailureKeepsToken(t *testing.T) {
	client := &fakeClient{MeErr: errors.New("connection refused")}
	client.SetAccessToken("tok")
	s, _, _ := newSession(t, client)

	s.CheckAuth(context.Background())

	require.Equal(t, "tok", client.AccessToken())
	require.Nil(t, s.User())
	require.True(t, s.AuthCheckComplete())
}

func TestCheckAuthSingleFlight(t *testing.T) {
	client := &fakeClient{
		MeRet:   &models.User{Email: "a@b.c"},
		MeBlock: make(chan struct{}),
	}
	client.SetAccessToken("tok")
	s, _, _ := newSession(t, client)

	done := make(chan struct{})
	go func() {
		s.CheckAuth(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool { return client.meCallCount() == 1 }, time.Second, time.Millisecond)

	// Second call while the first is in flight must not issue another request.
	s.CheckAuth(context.Background())
	require.Equal(t, 1, client.meCallCount())

	close(client.MeBlock)
	<-done
	require.NotNil(t, s.User())
}

func TestLoginSuccessPersistsAndNavigates(t *testing.T) {
	client := &fakeClient{LoginRet: "newtok"}
	s, db, nav := newSession(t, client)

	require.NoError(t, s.Login(context.Background(), "a@b.c", "secret"))

	require.Equal(t, "newtok", client.AccessToken())
	require.Equal(t, []byte("newtok"), storedToken(t, db))
	require.Equal(t, RouteDashboard, nav.last())
	require.Equal(t, StateAuthenticated, s.State())
}

func TestLoginFailureLeavesTokenUntouched(t *testing.T) {
	client := &fakeClient{LoginErr: &api.APIError{Status: 400, Message: "bad credentials"}}
	client.SetAccessToken("old")
	s, _, nav := newSession(t, client)

	err := s.Login(context.Background(), "a@b.c", "wrong")

	require.Error(t, err)
	require.Equal(t, "old", client.AccessToken())
	require.Empty(t, nav.last())
}

func TestLoginValidatesCredentialsLocally(t *testing.T) {
	client := &fakeClient{}
	s, _, _ := newSession(t, client)

	require.Error(t, s.Login(context.Background(), "not-an-email", "secret"))
	require.Error(t, s.Login(context.Background(), "a@b.c", ""))
	require.Zero(t, client.LoginCalls)
}

func TestRegisterSuccess(t *testing.T) {
	client := &fakeClient{RegisterRet: "regtok"}
	s, db, nav := newSession(t, client)

	require.NoError(t, s.Register(context.Background(), "a@b.c", "secret"))

	require.Equal(t, "regtok", client.AccessToken())
	require.Equal(t, []byte("regtok"), storedToken(t, db))
	require.Equal(t, RouteDashboard, nav.last())
}

func TestTelegramLoginValidatesPayload(t *testing.T) {
	client := &fakeClient{TelegramRet: "tgtok"}
	s, _, _ := newSession(t, client)

	require.Error(t, s.TelegramLogin(context.Background(), models.TelegramAuth{}))

	payload := models.TelegramAuth{ID: 42, AuthDate: 1700000000, Hash: "abc"}
	require.NoError(t, s.TelegramLogin(context.Background(), payload))
	require.Equal(t, "tgtok", client.AccessToken())
}

func TestLogoutWipesLocalStateEvenWhenServerFails(t *testing.T) {
	client := &fakeClient{LogoutErr: errors.New("boom")}
	client.SetAccessToken("tok")
	s, db, nav := newSession(t, client)
	require.NoError(t, state.NewSQLiteRepository(db).Set(context.Background(), state.KeyAccessToken, []byte("tok")))

	s.Logout(context.Background())

	require.Equal(t, 1, client.LogoutCalls)
	require.Empty(t, client.AccessToken())
	require.Nil(t, storedToken(t, db))
	require.Nil(t, s.User())
	require.True(t, s.AuthCheckComplete())
	require.Equal(t, RouteHome, nav.last())
}

func TestTokenExpiry(t *testing.T) {
	client := &fakeClient{}
	s, _, _ := newSession(t, client)

	_, ok := s.TokenExpiry()
	require.False(t, ok)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	client.SetAccessToken(signed)

	got, ok := s.TokenExpiry()
	require.True(t, ok)
	require.Equal(t, exp.Unix(), got.Unix())
}
