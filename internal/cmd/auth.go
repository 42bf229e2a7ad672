package cmd

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/neurocron/neurocron/internal/errors"
	"github.com/neurocron/neurocron/internal/platform"
	"github.com/neurocron/neurocron/internal/session"
	"github.com/neurocron/neurocron/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the platform session",
	Long: `Manage the NeuroCron platform session.

Subcommands:
  login     Sign in with email and password
  register  Create a new account
  logout    Sign out and remove stored credentials
  status    Show who is signed in and when the token expires
  refresh   Exchange the refresh token for a new access token

Credentials are stored in ~/.neurocron/credentials.json (mode 0600).
Set NEUROCRON_PASSPHRASE to seal the file at rest.

Examples:
  neurocron auth login --email user@example.com
  neurocron auth status
  neurocron auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the platform",
	Long: `Sign in to the NeuroCron platform with your email and password.

Missing flags are collected interactively when the terminal allows it.
After signing in, the session is persisted for subsequent commands.

Examples:
  neurocron auth login
  neurocron auth login --email user@example.com --password secret`,
	RunE: runAuthLogin,
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create a new NeuroCron account and sign in with it.

Missing flags are collected interactively when the terminal allows it.
New accounts start without an organization; create one afterwards with
'neurocron org create <name>'.

Examples:
  neurocron auth register
  neurocron auth register --name "Ada Lovelace" --email ada@example.com --password secret123`,
	RunE: runAuthRegister,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove stored credentials",
	Long: `Sign out of the NeuroCron platform.

The server-side logout is best-effort; the local credential file is
removed regardless. A dashboard running in another terminal notices
the removal and exits.

Examples:
  neurocron auth logout`,
	RunE: runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long: `Show who is signed in and when the access token expires.

The expiry is read from the token's unverified claims; the CLI holds no
signing key, so it is advisory display only.

Examples:
  neurocron auth status
  neurocron auth status --format json`,
	RunE: runAuthStatus,
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Renew the access token",
	Long: `Exchange the stored refresh token for a new access token pair.

Tokens are never renewed automatically; run this when 'auth status'
reports an expired token.

Examples:
  neurocron auth refresh`,
	RunE: runAuthRefresh,
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	in := tui.LoginInput{}
	in.Email, _ = cmd.Flags().GetString("email")
	in.Password, _ = cmd.Flags().GetString("password")

	if (in.Email == "" || in.Password == "") && tui.ShouldPrompt() {
		if err := tui.RunLoginForm(&in); err != nil {
			return err
		}
	}
	if in.Email == "" {
		return fmt.Errorf("--email is required")
	}
	if in.Password == "" {
		return fmt.Errorf("--password is required")
	}

	client := platform.NewClient(cmdCtx.APIURL)
	store, err := session.NewStore()
	if err != nil {
		return err
	}
	manager := session.NewManager(client, store, cmdCtx.Logger)

	fmt.Printf("Logging in as: %s\n", in.Email)

	result, err := manager.Login(cmd.Context(), in.Email, in.Password)
	if err != nil {
		return err
	}
	if !result.OK {
		fmt.Println("Login failed:", result.Message)
		return errors.NewInvalidCredentialsError()
	}

	fmt.Println("Login successful!")
	printDestination(result.Destination)
	if manager.OrgErr() != nil {
		fmt.Println("Warning: organization lookup failed; run 'neurocron org list' to retry.")
	}
	return nil
}

func runAuthRegister(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	in := tui.RegisterInput{}
	in.FullName, _ = cmd.Flags().GetString("name")
	in.Email, _ = cmd.Flags().GetString("email")
	in.Password, _ = cmd.Flags().GetString("password")

	if (in.FullName == "" || in.Email == "" || in.Password == "") && tui.ShouldPrompt() {
		if err := tui.RunRegisterForm(&in); err != nil {
			return err
		}
	}
	if in.FullName == "" {
		return fmt.Errorf("--name is required")
	}
	if in.Email == "" {
		return fmt.Errorf("--email is required")
	}
	if in.Password == "" {
		return fmt.Errorf("--password is required")
	}

	client := platform.NewClient(cmdCtx.APIURL)
	store, err := session.NewStore()
	if err != nil {
		return err
	}
	manager := session.NewManager(client, store, cmdCtx.Logger)

	fmt.Printf("Registering: %s\n", in.Email)

	result, err := manager.Register(cmd.Context(), in.FullName, in.Email, in.Password)
	if err != nil {
		return err
	}
	if !result.OK {
		fmt.Println("Registration failed:", result.Message)
		return errors.New(errors.ErrCodeAuthRegisterFailed, "registration failed")
	}

	fmt.Println("Registration successful! You are now logged in.")
	printDestination(result.Destination)
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	store, err := session.NewStore()
	if err != nil {
		return err
	}

	creds, err := store.Load()
	if err != nil {
		if ncErr, ok := err.(*errors.NeuroCronError); ok && ncErr.Code == errors.ErrCodeAuthNotLoggedIn {
			fmt.Println("Not logged in.")
			return nil
		}
		return err
	}

	client := platform.NewClient(cmdCtx.APIURL)
	client.SetToken(creds.AccessToken)
	manager := session.NewManager(client, store, cmdCtx.Logger)

	fmt.Printf("Logging out: %s\n", creds.Email)
	if err := manager.Logout(cmd.Context()); err != nil {
		return err
	}

	fmt.Println("Logged out successfully.")
	return nil
}

// authStatus is the structured shape of 'auth status'.
type authStatus struct {
	LoggedIn       bool           `json:"logged_in"`
	Email          string         `json:"email,omitempty"`
	User           *platform.User `json:"user,omitempty"`
	TokenExpiresAt *time.Time     `json:"token_expires_at,omitempty"`
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	store, err := session.NewStore()
	if err != nil {
		return err
	}

	creds, err := store.Load()
	if err != nil {
		if ncErr, ok := err.(*errors.NeuroCronError); ok && ncErr.Code == errors.ErrCodeAuthNotLoggedIn {
			if cmdCtx.Structured() {
				formatter, ferr := cmdCtx.NewFormatter()
				if ferr != nil {
					return ferr
				}
				return formatter.Format(authStatus{LoggedIn: false})
			}
			fmt.Println("Not logged in.")
			fmt.Println("Use 'neurocron auth login' to authenticate.")
			return nil
		}
		return err
	}

	status := authStatus{
		LoggedIn:       true,
		Email:          creds.Email,
		TokenExpiresAt: tokenExpiry(creds.AccessToken),
	}

	client := platform.NewClient(cmdCtx.APIURL)
	client.SetToken(creds.AccessToken)

	user, userErr := client.GetCurrentUser(cmd.Context())
	if userErr == nil {
		status.User = user
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(status)
	}

	if userErr != nil {
		fmt.Println("Token may be expired or invalid.")
		fmt.Println("Use 'neurocron auth refresh' or 'neurocron auth login' to re-authenticate.")
		return nil
	}

	fmt.Println("Logged in")
	fmt.Printf("User ID:  %s\n", user.ID)
	fmt.Printf("Email:    %s\n", creds.Email)
	fmt.Printf("Name:     %s\n", user.FullName)
	if status.TokenExpiresAt != nil {
		fmt.Printf("Token:    expires %s (%s)\n",
			status.TokenExpiresAt.Format("2006-01-02 15:04:05"),
			expiryPhrase(*status.TokenExpiresAt))
	}
	return nil
}

func runAuthRefresh(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	client := platform.NewClient(cmdCtx.APIURL)
	store, err := session.NewStore()
	if err != nil {
		return err
	}
	manager := session.NewManager(client, store, cmdCtx.Logger)

	if err := manager.RenewAccessToken(cmd.Context()); err != nil {
		return err
	}

	fmt.Println("Access token renewed.")
	return nil
}

// printDestination tells the user where to go after a session change.
func printDestination(dest session.Destination) {
	switch dest {
	case session.DestDashboard:
		fmt.Println("Run 'neurocron dashboard' to open your dashboard.")
	case session.DestOnboarding:
		fmt.Println("No organization yet. Run 'neurocron org create <name>' to get started.")
	}
}

// tokenExpiry reads the exp claim without verifying the signature. The
// CLI has no signing key; the expiry is advisory display only.
func tokenExpiry(token string) *time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	return &exp.Time
}

// expiryPhrase renders "in 59m0s" or "expired 5m0s ago" for a token
// expiry timestamp.
func expiryPhrase(exp time.Time) string {
	d := time.Until(exp)
	if d < 0 {
		return fmt.Sprintf("expired %s ago", (-d).Round(time.Minute))
	}
	return fmt.Sprintf("in %s", d.Round(time.Minute))
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authRefreshCmd)

	authLoginCmd.Flags().String("email", "", "Email address")
	authLoginCmd.Flags().String("password", "", "Password")

	authRegisterCmd.Flags().String("name", "", "Full name")
	authRegisterCmd.Flags().String("email", "", "Email address")
	authRegisterCmd.Flags().String("password", "", "Password (min 8 characters)")

	rootCmd.AddCommand(authCmd)
}
