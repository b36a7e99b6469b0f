// Package api implements the HTTP client adapter for the vaiti backend.
// It owns the base endpoint, attaches the bearer credential to every
// outbound call and maps non-2xx responses to structured errors.
package api

import (
	"context"

	"github.com/rodion-stepanov/vaiti-web/internal/client/models"
)

// Client is the full backend surface consumed by the stores. One method per
// REST operation; no retries and no caching at this layer.
type Client interface {
	// Token management. The adapter holds the in-memory copy of the bearer
	// credential; the session service decides when it changes.
	AccessToken() string
	SetAccessToken(token string)

	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password string) (string, error)
	TelegramAuth(ctx context.Context, payload models.TelegramAuth) (string, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)

	Resumes(ctx context.Context) ([]models.Resume, error)
	LinkStatus(ctx context.Context) (bool, error)
	LinkAuthURL(ctx context.Context) (string, error)
	Areas(ctx context.Context) ([]models.Area, error)

	SearchVacancies(ctx context.Context, req models.VacancyRequest) ([]models.Vacancy, error)
	FilteredCount(ctx context.Context, req models.VacancyRequest) (int, error)
	Apply(ctx context.Context, req models.VacancyRequest) error

	Schedulers(ctx context.Context) ([]models.Scheduler, error)
	Scheduler(ctx context.Context, id int64) (*models.Scheduler, error)
	UpsertScheduler(ctx context.Context, req models.SchedulerRequest) (*models.Scheduler, error)
	DeleteScheduler(ctx context.Context, id int64) error
}
