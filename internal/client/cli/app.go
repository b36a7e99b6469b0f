package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/rodion-stepanov/vaiti-web/internal/client/api"
	"github.com/rodion-stepanov/vaiti-web/internal/client/config"
	"github.com/rodion-stepanov/vaiti-web/internal/client/repositories/state"
	"github.com/rodion-stepanov/vaiti-web/internal/client/services"
	"github.com/rodion-stepanov/vaiti-web/internal/logging"
)

// App wires the HTTP adapter, the session and search stores and the REPL
// together. The current route is what the session's Navigator last asked
// for; the REPL uses it only to report redirects.
type App struct {
	config  *config.Config
	db      *sql.DB
	client  api.Client
	session *services.Session
	search  *services.Search
	log     logging.Logger
	reader  *bufio.Reader
	route   string
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {

	ctx := context.Background()

	db, err := state.Open(ctx, c.StateDBPath)
	if err != nil {
		log.Printf("error initializing state database: %s", err.Error())
		return nil, err
	}

	apiClient, err := api.NewHTTPClient(c.ServerEndpointURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	app := &App{
		config: c,
		db:     db,
		client: apiClient,
		log:    logger,
		reader: bufio.NewReader(os.Stdin),
		route:  services.RouteHome,
	}
	app.session = services.NewSession(apiClient, db, services.NavigatorFunc(app.navigate), logger)
	app.search = services.NewSearch(apiClient, logger)

	return app, nil
}

func (a *App) navigate(route string) {
	if a.route != route {
		a.route = route
		log.Printf("Redirected to %s\n", route)
	}
}

// Run restores any persisted session, validates it once against the server
// and enters the REPL. It blocks until the user exits or input hits EOF.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	if err := a.session.Bootstrap(ctx); err != nil {
		return err
	}
	a.session.CheckAuth(ctx)
	if a.isLoggedIn() {
		a.search.FetchResumes(ctx)
	}

	a.Root(ctx)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == services.StateAuthenticated
}
