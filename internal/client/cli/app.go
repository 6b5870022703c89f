// Package cli implements the interactive command loop of the identity CLI.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/famly-app/identity/internal/client/api"
	"github.com/famly-app/identity/internal/client/config"
)

// apiClient is the surface of the server API the CLI uses. It is an
// interface so tests can run the loop against a stub.
type apiClient interface {
	Register(ctx context.Context, email, password, name string) (*api.Account, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, token string) (*api.Account, error)
}

type App struct {
	config    *config.Config
	api       apiClient
	reader    *bufio.Reader
	token     string
	userEmail string
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerEndpointAddr),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}
