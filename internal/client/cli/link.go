package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/rodion-stepanov/vaiti-web/internal/client/api"
)

// How many times the link watcher polls before giving up. The OAuth dance
// happens in the user's browser, so the CLI can only wait.
const linkPollAttempts = 100

// Link starts the HeadHunter account linking flow: it prints the OAuth
// authorization URL and polls the link status until the backend reports the
// account as linked.
//
// In the browser client this is a popup window plus a postMessage; here the
// user opens the URL themselves and the poll loop picks up the result.
func (a *App) Link(ctx context.Context) error {
	linked, err := a.client.LinkStatus(ctx)
	if err == nil && linked {
		fmt.Println("HeadHunter account is already linked")
		return nil
	}

	url, err := a.client.LinkAuthURL(ctx)
	if err != nil {
		log.Printf("Failed to get authorization URL: %s", api.ErrorMessage(err, err.Error()))
		return err
	}

	fmt.Println("Open this URL in your browser to link your HeadHunter account:")
	fmt.Println(url)
	fmt.Println("Waiting for confirmation...")

	return a.waitForLink(ctx)
}

// waitForLink polls the link status on a ticker. Transient poll errors are
// ignored; the loop ends on success, context cancellation or after
// linkPollAttempts polls.
func (a *App) waitForLink(ctx context.Context) error {
	ticker := time.NewTicker(a.config.LinkPollInterval)
	defer ticker.Stop()

	for i := 0; i < linkPollAttempts; i++ {
		select {
		case <-ticker.C:
			pollCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			linked, err := a.client.LinkStatus(pollCtx)
			cancel()

			if err != nil {
				continue
			}
			if linked {
				fmt.Println("Account linked!")
				a.search.FetchResumes(ctx)
				return nil
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}

	fmt.Println("Still not linked, run 'link' again once you finish in the browser")
	return nil
}
