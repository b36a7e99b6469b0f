package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/rodion-stepanov/vaiti-web/internal/client/api"
	"github.com/rodion-stepanov/vaiti-web/internal/client/models"
	"github.com/rodion-stepanov/vaiti-web/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account. A successful registration immediately authenticates the
// session and redirects to the dashboard.
//
// The password byte slice is securely wiped before returning. Any I/O or
// service error is returned unchanged.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Register(ctx, email, string(password)); err != nil {
		log.Printf("Registration unsuccessful: %s", api.ErrorMessage(err, err.Error()))
		return err
	}

	fmt.Println("Success!")
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
// On success the session persists the token and navigates to the dashboard.
// The password is securely wiped before returning.
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

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		log.Printf("Login unsuccessful: %s", api.ErrorMessage(err, err.Error()))
		return err
	}

	log.Printf("Login successful")
	a.search.FetchResumes(ctx)
	return nil
}

// TelegramLogin prompts for the fields of a Telegram login widget payload
// and exchanges them for a session. The hash is the widget's HMAC signature;
// the server verifies it, the client only forwards it.
func (a *App) TelegramLogin(ctx context.Context) error {
	idRaw, err := getSimpleText(a.reader, "Enter Telegram user id", os.Stdout)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(idRaw, 10, 64)
	if err != nil {
		fmt.Println("Telegram user id must be a number")
		return err
	}

	firstName, err := getSimpleText(a.reader, "Enter first name", os.Stdout)
	if err != nil {
		return err
	}

	username, err := getSimpleText(a.reader, "Enter username (optional)", os.Stdout)
	if err != nil {
		return err
	}

	hash, err := getSimpleText(a.reader, "Enter widget hash", os.Stdout)
	if err != nil {
		return err
	}

	payload := models.TelegramAuth{
		ID:        id,
		FirstName: firstName,
		Username:  username,
		AuthDate:  time.Now().Unix(),
		Hash:      hash,
	}

	if err := a.session.TelegramLogin(ctx, payload); err != nil {
		log.Printf("Telegram login unsuccessful: %s", api.ErrorMessage(err, err.Error()))
		return err
	}

	log.Printf("Login successful")
	a.search.FetchResumes(ctx)
	return nil
}

// Logout tears down the session. The server call inside is best effort, so
// this never fails from the user's point of view.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	log.Printf("Logged out")
	return nil
}

// Whoami prints the cached profile and the token expiry.
func (a *App) Whoami(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		a.session.CheckAuth(ctx)
		u = a.session.User()
	}
	if u == nil {
		fmt.Println("Profile is not available")
		return nil
	}

	fmt.Printf("Email: %s\n", u.Email)
	fmt.Printf("Name: %s %s %s\n", u.LastName, u.FirstName, u.MiddleName)
	if u.Role != "" {
		fmt.Printf("Role: %s\n", u.Role)
	}
	if exp, ok := a.session.TokenExpiry(); ok {
		fmt.Printf("Token expires: %s\n", exp.Format(time.RFC3339))
	}
	return nil
}
