package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/clio/internal/auth"
	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/internal/datastore"
	"github.com/huangsam/clio/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// userCmd groups account management.
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Register and sign in users",
	Long: `Manage user accounts in the configured store.

Accounts need a persistent backend (sqlite, mysql or postgresql).
Passwords are read from the terminal and stored as argon2id hashes.

Subcommands:
  register - Create a new account
  login    - Check credentials`,
}

// userRegisterCmd creates an account.
var userRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create an account for one of the services: education, hhrr, marketing.

Examples:
  clio user register --email ada@example.com --name Ada --service education`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		email := viper.GetString("email")
		if email == "" {
			contract.LogFatal("Missing flag", fmt.Errorf("--email is required"))
		}
		service := schema.Service(strings.ToLower(viper.GetString("service")))
		if _, ok := schema.ValidServices[service]; !ok {
			contract.LogFatal("Invalid flag", fmt.Errorf("--service must be one of education, hhrr, marketing (received %q)", service))
		}
		password, err := readSecret("Password: ")
		if err != nil {
			contract.LogFatal("Failed to read password", err)
		}
		confirm, err := readSecret("Confirm password: ")
		if err != nil {
			contract.LogFatal("Failed to read password", err)
		}
		if password != confirm {
			contract.LogFatal("Failed to register", fmt.Errorf("passwords do not match"))
		}

		svc := auth.NewService(datastore.Manager.GetStore())
		user, err := svc.Register(rootCtx, email, password, viper.GetString("name"), service)
		if err != nil {
			contract.LogFatal("Failed to register", err)
		}
		fmt.Printf("Registered %s (%s) for %s as user #%d\n", user.Name, user.Email, user.Service, user.ID)
	},
}

// userLoginCmd verifies credentials.
var userLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check credentials of an account",
	Long: `Verify an email and password against the store and print the session.

Examples:
  clio user login --email ada@example.com`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		email := viper.GetString("email")
		if email == "" {
			contract.LogFatal("Missing flag", fmt.Errorf("--email is required"))
		}
		password, err := readSecret("Password: ")
		if err != nil {
			contract.LogFatal("Failed to read password", err)
		}
		session, err := auth.NewService(datastore.Manager.GetStore()).Login(rootCtx, email, password)
		if err != nil {
			contract.LogFatal("Failed to sign in", err)
		}
		fmt.Printf("Welcome back, %s (%s, user #%d)\n", session.Name, session.Service, session.UserID)
	},
}
