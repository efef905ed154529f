// Package cmd implements the command-line interface for grundrisse.
package cmd

import (
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/grundrisse/grundrisse/color"
	"github.com/grundrisse/grundrisse/icon"
	"github.com/grundrisse/grundrisse/registry"
	"github.com/grundrisse/grundrisse/session"
	"github.com/grundrisse/grundrisse/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringP("username", "u", "", "Operator username")
	loginCmd.Flags().Bool("print", false, "Print the access token instead of storing it")
}

// loginCmd exchanges operator credentials for an access token and stores it in the keyring.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the source registry",
	Run: func(cmd *cobra.Command, args []string) {
		creds := registry.Credentials{
			Username: lo.Must(cmd.Flags().GetString("username")),
		}

		if creds.Username == "" {
			input := survey.Input{Message: "Username:"}
			handleErr(survey.AskOne(&input, &creds.Username, survey.WithValidator(survey.Required)))
		}

		password := survey.Password{Message: "Password:"}
		handleErr(survey.AskOne(&password, &creds.Password, survey.WithValidator(survey.Required)))

		token, err := registry.NewDefault(session.Static("")).Login(cmd.Context(), creds)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("print")) {
			fmt.Println(token.AccessToken)
			return
		}

		handleErr(session.NewKeyring().Save(token.AccessToken))
		fmt.Printf(
			"%s logged in as %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Yellow)(creds.Username),
		)
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// logoutCmd forgets the stored access token.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(session.NewKeyring().Delete())
		fmt.Printf("%s logged out\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// whoamiCmd shows who the current token belongs to.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the operator the current session belongs to",
	Run: func(cmd *cobra.Command, args []string) {
		credentials := session.Default()
		token, err := credentials.Token()
		handleErr(err)

		claims, err := session.PeekClaims(token)
		if err != nil {
			claims = session.Claims{}
		}

		username, ok := claims.Subject.Get()
		if !ok {
			user, err := registry.NewDefault(credentials).Me(cmd.Context())
			handleErr(err)
			username = user.Username
		}

		fmt.Printf("%s %s\n", icon.Get(icon.User), style.Bold(username))

		if exp, ok := claims.ExpiresAt.Get(); ok {
			label := "expires"
			paint := style.Fg(color.Green)
			if claims.Expired(time.Now()) {
				label = "expired"
				paint = style.Fg(color.Red)
			}
			fmt.Printf("%s %s\n", style.Faint(label), paint(exp.Local().Format(time.RFC1123)))
		}
	},
}
