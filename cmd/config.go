// Package cmd implements the command-line interface for grundrisse.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"

	"github.com/grundrisse/grundrisse/color"
	"github.com/grundrisse/grundrisse/config"
	"github.com/grundrisse/grundrisse/filesystem"
	"github.com/grundrisse/grundrisse/icon"
	"github.com/grundrisse/grundrisse/log"
	"github.com/grundrisse/grundrisse/style"
	"github.com/grundrisse/grundrisse/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func errUnknownKey(key string) error {
	closest := lo.MinBy(lo.Keys(config.Default), func(a string, b string) bool {
		return levenshtein.Distance(key, a) < levenshtein.Distance(key, b)
	})

	return fmt.Errorf(
		"%w %s, did you mean %s?",
		config.ErrUnknownKey,
		style.Fg(color.Red)(key),
		style.Fg(color.Yellow)(closest),
	)
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

// keyArg picks the key from the first argument, falling back to --key.
func keyArg(cmd *cobra.Command, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if k, _ := cmd.Flags().GetString("key"); k != "" {
		return k
	}
	handleErr(errors.New("key is required as an argument or --key flag"))
	return ""
}

// saveConfig writes the in-memory settings, creating the file on first use.
func saveConfig() error {
	err := viper.WriteConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return viper.SafeWriteConfig()
	}
	return err
}

func success(w io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, a...))
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage settings for the registry backend, session, dashboard and logs",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", []string{}, "Only describe these keys")
	configInfoCmd.Flags().StringSliceP("section", "s", []string{}, "Only describe these sections (api, session, tui, logs, icons, cli)")
	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
	_ = configInfoCmd.RegisterFlagCompletionFunc("section", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Keys(config.Sections()), cobra.ShellCompDirectiveNoFileComp
	})
}

// configInfoCmd describes settings grouped by section.
var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe settings grouped by section",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			keys     = lo.Must(cmd.Flags().GetStringSlice("key"))
			sections = lo.Must(cmd.Flags().GetStringSlice("section"))
			asJson   = lo.Must(cmd.Flags().GetBool("json"))
			grouped  = config.Sections()
		)

		for _, k := range keys {
			if _, ok := config.Default[k]; !ok {
				handleErr(errUnknownKey(k))
			}
		}
		for _, s := range sections {
			if _, ok := grouped[s]; !ok {
				handleErr(fmt.Errorf("unknown section %s", style.Fg(color.Red)(s)))
			}
		}

		for name, fields := range grouped {
			if len(sections) > 0 && !lo.Contains(sections, name) {
				delete(grouped, name)
				continue
			}
			if len(keys) > 0 {
				fields = lo.Filter(fields, func(f config.Field, _ int) bool {
					return lo.Contains(keys, f.Key)
				})
			}
			if len(fields) == 0 {
				delete(grouped, name)
				continue
			}
			grouped[name] = fields
		}

		out := cmd.OutOrStdout()
		if asJson {
			lo.Must0(json.NewEncoder(out).Encode(grouped))
			return
		}

		names := lo.Keys(grouped)
		sort.Strings(names)
		for i, name := range names {
			if i > 0 {
				_, _ = fmt.Fprintln(out)
			}
			_, _ = fmt.Fprintln(out, style.Title("["+name+"]"))
			for _, field := range grouped[name] {
				_, _ = fmt.Fprintf(out, "%s\n\n", field.Pretty())
			}
		}
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configSetCmd.Flags().StringP("key", "k", "", "The key to update")
	configSetCmd.Flags().StringSliceP("value", "v", []string{}, "The new value")
	_ = configSetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configSetCmd checks a value against its key before persisting it.
var configSetCmd = &cobra.Command{
	Use:               "set [key] [value]",
	Short:             "Check and persist a new value for a key",
	Args:              cobra.MaximumNArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		k := keyArg(cmd, args)

		raw := lo.Must(cmd.Flags().GetStringSlice("value"))
		if len(args) > 1 {
			raw = args[1:]
		}

		v, err := config.Parse(k, raw)
		if errors.Is(err, config.ErrUnknownKey) {
			err = errUnknownKey(k)
		}
		handleErr(err)

		viper.Set(k, v)
		handleErr(saveConfig())
		log.WithFields(log.Fields{"key": k, "value": v}).Info("config updated")

		success(cmd.OutOrStdout(), "set %s to %s",
			style.Fg(color.Purple)(k),
			style.Fg(color.Yellow)(fmt.Sprint(v)),
		)
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configGetCmd.Flags().StringP("key", "k", "", "The key to read")
	_ = configGetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print the effective value of a key",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		k := keyArg(cmd, args)
		if _, ok := config.Default[k]; !ok {
			handleErr(errUnknownKey(k))
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), viper.Get(k))
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the effective settings to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := where.ConfigFile()

		if lo.Must(cmd.Flags().GetBool("force")) {
			if err := filesystem.API().Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
		}

		handleErr(viper.SafeWriteConfig())
		success(cmd.OutOrStdout(), "wrote config to %s", path)
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the config file",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(where.ConfigFile()))
		success(cmd.OutOrStdout(), "deleted config")
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
	configResetCmd.Flags().StringP("key", "k", "", "The key to restore")
	configResetCmd.Flags().StringP("section", "s", "", "Restore every key of a section")
	configResetCmd.Flags().BoolP("all", "a", false, "Restore every key")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "section", "all")
	configResetCmd.MarkFlagsOneRequired("key", "section", "all")
	_ = configResetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configResetCmd restores defaults for a key, a section or everything.
var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default values",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			k       = lo.Must(cmd.Flags().GetString("key"))
			section = lo.Must(cmd.Flags().GetString("section"))
			all     = lo.Must(cmd.Flags().GetBool("all"))
			fields  []config.Field
			what    string
		)

		switch {
		case all:
			fields, what = lo.Values(config.Default), "all settings"
		case section != "":
			var ok bool
			if fields, ok = config.Sections()[section]; !ok {
				handleErr(fmt.Errorf("unknown section %s", style.Fg(color.Red)(section)))
			}
			what = "section " + style.Fg(color.Purple)(section)
		default:
			field, ok := config.Default[k]
			if !ok {
				handleErr(errUnknownKey(k))
			}
			fields, what = []config.Field{field}, style.Fg(color.Purple)(k)
		}

		for _, field := range fields {
			viper.Set(field.Key, field.Value)
		}
		handleErr(saveConfig())

		success(cmd.OutOrStdout(), "reset %s", what)
	},
}
