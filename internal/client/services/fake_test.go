package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/rodion-stepanov/vaiti-web/internal/client/models"
	"github.com/rodion-stepanov/vaiti-web/internal/logging"
)

// fakeClient implements api.Client for unit tests of the stores.
// Every method records its calls/arguments and answers with the
// pre-configured result.
type fakeClient struct {
	mu    sync.Mutex
	token string

	LoginRet   string
	LoginErr   error
	LoginCalls int
	LastLoginEmail string

	RegisterRet string
	RegisterErr error

	TelegramRet string
	TelegramErr error

	LogoutErr   error
	LogoutCalls int

	MeRet   *models.User
	MeErr   error
	MeCalls int
	// MeBlock, when non-nil, makes Me wait until the channel is closed.
	MeBlock chan struct{}

	ResumesRet   []models.Resume
	ResumesErr   error
	ResumesCalls int

	LinkStatusRet bool
	LinkStatusErr error

	LinkAuthURLRet string
	LinkAuthURLErr error

	AreasRet []models.Area
	AreasErr error

	SearchRet     []models.Vacancy
	SearchErr     error
	SearchCalls   int
	LastSearchReq models.VacancyRequest

	CountRet     int
	CountErr     error
	CountCalls   int
	LastCountReq models.VacancyRequest

	ApplyErr     error
	ApplyCalls   int
	LastApplyReq models.VacancyRequest

	SchedulersRet   []models.Scheduler
	SchedulersErr   error
	SchedulersCalls int

	SchedulerRet *models.Scheduler
	SchedulerErr error

	UpsertRet     *models.Scheduler
	UpsertErr     error
	UpsertCalls   int
	LastUpsertReq models.SchedulerRequest
	// UpsertBlock, when non-nil, makes UpsertScheduler wait until closed.
	UpsertBlock chan struct{}

	DeleteSchedulerErr error
	DeletedIDs         []int64
}

func (f *fakeClient) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeClient) SetAccessToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	f.mu.Lock()
	f.LoginCalls++
	f.LastLoginEmail = email
	f.mu.Unlock()
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, email, password string) (string, error) {
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) TelegramAuth(ctx context.Context, payload models.TelegramAuth) (string, error) {
	return f.TelegramRet, f.TelegramErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.mu.Lock()
	f.LogoutCalls++
	f.mu.Unlock()
	return f.LogoutErr
}

func (f *fakeClient) Me(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	f.MeCalls++
	block := f.MeBlock
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.MeRet == nil {
		return nil, f.MeErr
	}
	u := *f.MeRet
	return &u, f.MeErr
}

func (f *fakeClient) Resumes(ctx context.Context) ([]models.Resume, error) {
	f.mu.Lock()
	f.ResumesCalls++
	f.mu.Unlock()
	return f.ResumesRet, f.ResumesErr
}

func (f *fakeClient) LinkStatus(ctx context.Context) (bool, error) {
	return f.LinkStatusRet, f.LinkStatusErr
}

func (f *fakeClient) LinkAuthURL(ctx context.Context) (string, error) {
	return f.LinkAuthURLRet, f.LinkAuthURLErr
}

func (f *fakeClient) Areas(ctx context.Context) ([]models.Area, error) {
	return f.AreasRet, f.AreasErr
}

func (f *fakeClient) SearchVacancies(ctx context.Context, req models.VacancyRequest) ([]models.Vacancy, error) {
	f.mu.Lock()
	f.SearchCalls++
	f.LastSearchReq = req
	f.mu.Unlock()
	return f.SearchRet, f.SearchErr
}

func (f *fakeClient) FilteredCount(ctx context.Context, req models.VacancyRequest) (int, error) {
	f.mu.Lock()
	f.CountCalls++
	f.LastCountReq = req
	f.mu.Unlock()
	return f.CountRet, f.CountErr
}

func (f *fakeClient) Apply(ctx context.Context, req models.VacancyRequest) error {
	f.mu.Lock()
	f.ApplyCalls++
	f.LastApplyReq = req
	f.mu.Unlock()
	return f.ApplyErr
}

func (f *fakeClient) Schedulers(ctx context.Context) ([]models.Scheduler, error) {
	f.mu.Lock()
	f.SchedulersCalls++
	f.mu.Unlock()
	return append([]models.Scheduler(nil), f.SchedulersRet...), f.SchedulersErr
}

func (f *fakeClient) Scheduler(ctx context.Context, id int64) (*models.Scheduler, error) {
	return f.SchedulerRet, f.SchedulerErr
}

func (f *fakeClient) UpsertScheduler(ctx context.Context, req models.SchedulerRequest) (*models.Scheduler, error) {
	f.mu.Lock()
	f.UpsertCalls++
	f.LastUpsertReq = req
	block := f.UpsertBlock
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.UpsertRet, f.UpsertErr
}

func (f *fakeClient) DeleteScheduler(ctx context.Context, id int64) error {
	f.mu.Lock()
	f.DeletedIDs = append(f.DeletedIDs, id)
	f.mu.Unlock()
	return f.DeleteSchedulerErr
}

func (f *fakeClient) meCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.MeCalls
}

// fakeNavigator records every route the session navigates to.
type fakeNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *fakeNavigator) NavigateTo(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *fakeNavigator) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}

func testLogger(t *testing.T) logging.Logger {
	t.Helper()
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
