package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/famly-app/identity/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email, a name and a password and creates a new
// account. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	account, err := a.api.Register(ctx, email, string(password), name)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			fmt.Println("An account with this email already exists")
			return err
		}
		return err
	}

	fmt.Printf("Registered %s (%s)\n", account.Email, account.ID)
	return nil
}

// Login prompts for credentials, exchanges them for an access token and
// keeps the token in memory for subsequent commands.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			fmt.Println("Invalid credentials")
			return err
		}
		return err
	}

	a.token = token
	a.userEmail = email
	fmt.Println("Logged in")
	return nil
}

// WhoAmI resolves and prints the account behind the current token.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Not logged in")
		return common.ErrUnauthorized
	}

	account, err := a.api.Me(ctx, a.token)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			fmt.Println("Session expired, please log in again")
			a.Logout()
			return err
		}
		return err
	}

	fmt.Printf("%s <%s> (id %s, created %s)\n", account.Name, account.Email, account.ID, account.CreatedAt)
	return nil
}

// Logout discards the in-memory token.
func (a *App) Logout() {
	a.token = ""
	a.userEmail = ""
}
