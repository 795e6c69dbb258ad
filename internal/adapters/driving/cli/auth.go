package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

// promptPassword reads a password without echo. Replaced in tests.
var promptPassword = readPassword

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage your account",
	Long: `Create an account and sign in so reports saved to the remote store are
owned by you.

Accounts are kept in the remote store, so a remote backend must be
configured first:
  walkthrough settings set remote.backend sqlite

Examples:
  walkthrough auth signup inspector@example.com
  walkthrough auth signin inspector@example.com
  walkthrough auth whoami
  walkthrough auth signout`,
}

var authSignUpCmd = &cobra.Command{
	Use:   "signup [email]",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthSignUp,
}

var authSignInCmd = &cobra.Command{
	Use:   "signin [email]",
	Short: "Sign in",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthSignIn,
}

var authSignOutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out",
	Args:  cobra.NoArgs,
	RunE:  runAuthSignOut,
}

var authWhoAmICmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Args:  cobra.NoArgs,
	RunE:  runAuthWhoAmI,
}

func init() {
	authCmd.AddCommand(authSignUpCmd)
	authCmd.AddCommand(authSignInCmd)
	authCmd.AddCommand(authSignOutCmd)
	authCmd.AddCommand(authWhoAmICmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSignUp(cmd *cobra.Command, args []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	cmd.Print("Password: ")
	password := promptPassword()
	cmd.Println()
	cmd.Print("Confirm password: ")
	confirm := promptPassword()
	cmd.Println()
	if password != confirm {
		return errors.New("passwords do not match")
	}

	user, err := authService.SignUp(cmd.Context(), args[0], password)
	if err != nil {
		return authError("sign up", err)
	}
	cmd.Printf("Account created for %s.\n", user.Email)
	cmd.Printf("Run 'walkthrough auth signin %s' to sign in.\n", user.Email)
	return nil
}

func runAuthSignIn(cmd *cobra.Command, args []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	cmd.Print("Password: ")
	password := promptPassword()
	cmd.Println()

	session, err := authService.SignIn(cmd.Context(), args[0], password)
	if err != nil {
		return authError("sign in", err)
	}
	cmd.Printf("Signed in as %s until %s.\n", session.User.Email, session.ExpiresAt.Format("2006-01-02"))
	return nil
}

func runAuthSignOut(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}
	if err := authService.SignOut(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Signed out.")
	return nil
}

func runAuthWhoAmI(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}
	user, err := authService.CurrentUser(cmd.Context())
	if err != nil {
		return err
	}
	if user == nil {
		cmd.Println("Not signed in.")
		return nil
	}
	cmd.Printf("%s (%s)\n", user.Email, user.ID)
	return nil
}

func authError(action string, err error) error {
	switch {
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return fmt.Errorf("%s: accounts need a remote store; set remote.backend first", action)
	case errors.Is(err, domain.ErrAuthInvalid):
		return fmt.Errorf("%s: wrong email or password", action)
	case errors.Is(err, domain.ErrAlreadyExists):
		return fmt.Errorf("%s: an account with that email already exists", action)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
