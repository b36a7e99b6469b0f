package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rodion-stepanov/vaiti-web/internal/client/models"
)

// apiPrefix is the version prefix every backend route lives under.
const apiPrefix = "/v1"

// errorBodyLimit caps how much of an error response body is read when
// extracting the structured message.
const errorBodyLimit = 4096

// HTTPClient is the concrete Client over net/http.
//
// Exactly one base endpoint per instance, resolved at construction. Every
// request carries the bearer token (when present) and a fresh X-Request-Id;
// the underlying http.Client keeps a cookie jar so the cookie-based session
// augmentation travels alongside the token.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client

	mu          sync.RWMutex
	accessToken string
}

// NewHTTPClient builds an adapter bound to baseURL (e.g. "https://api.vaiti.ru").
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("api: base url is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("api: cookie jar: %w", err)
	}

	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}, nil
}

func (c *HTTPClient) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *HTTPClient) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

// do issues one JSON request and decodes the response into out (if non-nil).
// Non-2xx responses become *APIError; transport failures are returned wrapped
// and unmodified otherwise.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reqBody)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

// apiError builds an *APIError from a non-2xx response. The message is taken
// from the body only when it is a well-formed object with a string "message".
func (c *HTTPClient) apiError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Message != nil {
		apiErr.Message = *payload.Message
	}
	return apiErr
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/users/login", body, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/users/register", body, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) TelegramAuth(ctx context.Context, payload models.TelegramAuth) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/telegram/auth", payload, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/users/logout", nil, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Resumes(ctx context.Context) ([]models.Resume, error) {
	var resumes []models.Resume
	if err := c.do(ctx, http.MethodGet, "/hh_ru/resume", nil, &resumes); err != nil {
		return nil, err
	}
	return resumes, nil
}

// LinkStatus reports whether the hh.ru account is linked. The backend is
// loose about the body shape here, so both a bare boolean and a quoted
// "true"/"false" are accepted.
func (c *HTTPClient) LinkStatus(ctx context.Context) (bool, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/hh_ru/is_token", struct{}{}, &raw); err != nil {
		return false, err
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		parsed, err := strconv.ParseBool(s)
		if err != nil {
			return false, fmt.Errorf("api: unexpected link status %q", s)
		}
		return parsed, nil
	}
	return false, fmt.Errorf("api: unexpected link status body")
}

func (c *HTTPClient) LinkAuthURL(ctx context.Context) (string, error) {
	var url string
	if err := c.do(ctx, http.MethodGet, "/hh_ru/get_auth_url", nil, &url); err != nil {
		return "", err
	}
	return url, nil
}

func (c *HTTPClient) Areas(ctx context.Context) ([]models.Area, error) {
	var areas []models.Area
	if err := c.do(ctx, http.MethodGet, "/hh/vacancies/area", nil, &areas); err != nil {
		return nil, err
	}
	return areas, nil
}

func (c *HTTPClient) SearchVacancies(ctx context.Context, req models.VacancyRequest) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy
	if err := c.do(ctx, http.MethodPost, "/hh/vacancies/all", req, &vacancies); err != nil {
		return nil, err
	}
	return vacancies, nil
}

func (c *HTTPClient) FilteredCount(ctx context.Context, req models.VacancyRequest) (int, error) {
	var count int
	if err := c.do(ctx, http.MethodPost, "/hh/vacancies/all_filter", req, &count); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *HTTPClient) Apply(ctx context.Context, req models.VacancyRequest) error {
	return c.do(ctx, http.MethodPost, "/hh/vacancies/apply-to-vacancies", req, nil)
}

func (c *HTTPClient) Schedulers(ctx context.Context) ([]models.Scheduler, error) {
	var schedulers []models.Scheduler
	if err := c.do(ctx, http.MethodGet, "/scheduler/all", nil, &schedulers); err != nil {
		return nil, err
	}
	return schedulers, nil
}

func (c *HTTPClient) Scheduler(ctx context.Context, id int64) (*models.Scheduler, error) {
	var scheduler models.Scheduler
	path := fmt.Sprintf("/scheduler/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &scheduler); err != nil {
		return nil, err
	}
	return &scheduler, nil
}

func (c *HTTPClient) UpsertScheduler(ctx context.Context, req models.SchedulerRequest) (*models.Scheduler, error) {
	var scheduler models.Scheduler
	if err := c.do(ctx, http.MethodPost, "/scheduler/auto", req, &scheduler); err != nil {
		return nil, err
	}
	return &scheduler, nil
}

func (c *HTTPClient) DeleteScheduler(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/scheduler/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
