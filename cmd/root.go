// Package cmd implements the command-line interface for grundrisse.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/grundrisse/grundrisse/color"
	"github.com/grundrisse/grundrisse/constant"
	"github.com/grundrisse/grundrisse/icon"
	"github.com/grundrisse/grundrisse/key"
	"github.com/grundrisse/grundrisse/log"
	"github.com/grundrisse/grundrisse/registry"
	"github.com/grundrisse/grundrisse/session"
	"github.com/grundrisse/grundrisse/style"
	"github.com/grundrisse/grundrisse/tui"
	"github.com/grundrisse/grundrisse/util"
	"github.com/grundrisse/grundrisse/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().String("api", "", "Base URL of the source registry backend")
	lo.Must0(viper.BindPFlag(key.APIBaseURL, rootCmd.PersistentFlags().Lookup("api")))

	rootCmd.PersistentFlags().String("token", "", "Bearer token to use instead of the stored session")
	lo.Must0(viper.BindPFlag(key.SessionToken, rootCmd.PersistentFlags().Lookup("token")))

	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd opens the source dashboard.
var rootCmd = &cobra.Command{
	Use:   constant.Grundrisse,
	Short: "Operator console for the content source registry",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Operator console for the content source registry"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		holder := session.NewKeyring()
		credentials := session.Chain{session.Configured{}, holder}

		options := tui.Options{
			Client:      registry.NewDefault(credentials),
			Credentials: credentials,
			Session:     holder,
		}
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

// newClient returns a registry client authenticated with the configured token or the stored session.
func newClient() *registry.Client {
	return registry.NewDefault(session.Default())
}
