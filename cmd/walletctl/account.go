package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/branchbank/wallet-system/internal/core/ports"
)

type registerInput struct {
	Username string `validate:"required,alphanum,min=3,max=32"`
	Email    string `validate:"omitempty,email"`
	Password string `validate:"required,min=8"`
}

var register = cli.Command{
	Name:  "register",
	Usage: "open a new account with a zero balance",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "username", Usage: "unique account name", Required: true},
		&cli.StringFlag{Name: "email", Usage: "contact address"},
		&cli.StringFlag{Name: "password", Usage: "account password", Required: true},
	},
	Action: withEnv(registerAction),
}

func registerAction(c *cli.Context, e *env) error {
	input := registerInput{
		Username: c.String("username"),
		Email:    c.String("email"),
		Password: c.String("password"),
	}
	if err := validateInput(input); err != nil {
		return err
	}

	account, err := e.auth.Register(c.Context, ports.RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return err
	}

	fmt.Printf("account %s created\n", account.Username)
	return nil
}

var login = cli.Command{
	Name:  "login",
	Usage: "authenticate and print a session token",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "username", Required: true},
		&cli.StringFlag{Name: "password", Required: true},
	},
	Action: withEnv(loginAction),
}

func loginAction(c *cli.Context, e *env) error {
	auth, err := e.auth.Login(c.Context, c.String("username"), c.String("password"))
	if err != nil {
		return err
	}

	fmt.Printf("login successful\ntoken: %s\n", auth.Token)
	return nil
}

var changePassword = cli.Command{
	Name:  "change-password",
	Usage: "replace the account password, re-authenticating with the old one",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "username", Required: true},
		&cli.StringFlag{Name: "old-password", Required: true},
		&cli.StringFlag{Name: "new-password", Required: true},
	},
	Action: withEnv(changePasswordAction),
}

func changePasswordAction(c *cli.Context, e *env) error {
	input := struct {
		NewPassword string `validate:"required,min=8"`
	}{NewPassword: c.String("new-password")}
	if err := validateInput(input); err != nil {
		return err
	}

	if err := e.auth.ChangePassword(
		c.Context, c.String("username"), c.String("old-password"), input.NewPassword,
	); err != nil {
		return err
	}

	fmt.Println("password updated")
	return nil
}

var deleteAccount = cli.Command{
	Name:  "delete-account",
	Usage: "remove an account and its transaction history",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "username", Required: true},
	},
	Action: withEnv(deleteAccountAction),
}

func deleteAccountAction(c *cli.Context, e *env) error {
	if err := e.auth.DeleteAccount(c.Context, c.String("username")); err != nil {
		return err
	}

	fmt.Println("account deleted")
	return nil
}
