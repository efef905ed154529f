// Package cmd implements the command-line interface for grundrisse.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/grundrisse/grundrisse/color"
	"github.com/grundrisse/grundrisse/constant"
	"github.com/grundrisse/grundrisse/form"
	"github.com/grundrisse/grundrisse/icon"
	"github.com/grundrisse/grundrisse/registry"
	"github.com/grundrisse/grundrisse/render"
	"github.com/grundrisse/grundrisse/source"
	"github.com/grundrisse/grundrisse/store"
	"github.com/grundrisse/grundrisse/style"
	"github.com/grundrisse/grundrisse/util"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

// sourcesCmd groups the scriptable source operations.
var sourcesCmd = &cobra.Command{
	Use:     "sources",
	Aliases: []string{"s"},
	Short:   "List, add and remove content sources",
}

func init() {
	sourcesCmd.AddCommand(sourcesListCmd)

	sourcesListCmd.Flags().BoolP("json", "j", false, "Format the output as JSON rows")
	sourcesListCmd.SetOut(os.Stdout)
}

// sourcesListCmd prints every registered source.
var sourcesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Display all registered content sources",
	Run: func(cmd *cobra.Command, args []string) {
		asJson := lo.Must(cmd.Flags().GetBool("json"))

		s := store.New(newClient())
		defer s.Close()

		erase := func() {}
		if !asJson {
			erase = util.PrintErasable(fmt.Sprintf("%s %s", icon.Get(icon.Progress), constant.LoadingSources))
		}
		err := s.Refresh(cmd.Context())
		erase()
		handleErr(err)

		if asJson {
			handleErr(render.JSON(cmd.OutOrStdout(), s.Sources()))
			return
		}

		handleErr(render.Text(cmd.OutOrStdout(), s.Sources(), s.Loading()))
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesAddCmd)

	sourcesAddCmd.Flags().StringP("name", "n", "", "Display name of the source")
	sourcesAddCmd.Flags().StringP("type", "t", "", "Source type, one of youtube, rss, podcast")
	sourcesAddCmd.Flags().StringP("url", "u", "", "Address of the channel or feed")

	lo.Must0(sourcesAddCmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return source.TypeNames(), cobra.ShellCompDirectiveNoFileComp
	}))
}

// sourcesAddCmd registers a new source. Missing fields are asked for.
var sourcesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new content source",
	Run: func(cmd *cobra.Command, args []string) {
		s := store.New(newClient())
		defer s.Close()

		controller := form.New(s)
		controller.Toggle()

		for _, field := range source.Fields() {
			value := lo.Must(cmd.Flags().GetString(string(field)))
			if value == "" {
				var err error
				value, err = ask(field)
				handleErr(err)
			}
			handleErr(controller.SetField(field, value))
		}

		draft := controller.Draft()
		err := controller.Submit(cmd.Context())
		if controller.State().Submission != form.Succeeded {
			handleErr(err)
		}
		if err != nil {
			// created, but the list could not be reloaded
			fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), err)
		}

		fmt.Printf(
			"%s added %s %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Yellow)(draft.Name),
			style.Faint(draft.Type.Upper()),
		)
	},
}

// ask prompts for a single draft field.
func ask(field source.Field) (string, error) {
	var (
		answer string
		prompt survey.Prompt
	)

	switch field {
	case source.FieldName:
		prompt = &survey.Input{Message: "Name", Help: constant.NamePlaceholder}
	case source.FieldType:
		prompt = &survey.Select{
			Message: "Type",
			Options: source.TypeNames(),
			Default: string(source.NewDraft().Type),
		}
	case source.FieldURL:
		prompt = &survey.Input{Message: "URL", Help: constant.URLPlaceholder}
	default:
		return "", source.ErrUnknownField
	}

	err := survey.AskOne(prompt, &answer)
	return answer, err
}

func init() {
	sourcesCmd.AddCommand(sourcesRemoveCmd)

	sourcesRemoveCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

// sourcesRemoveCmd deletes sources by id.
var sourcesRemoveCmd = &cobra.Command{
	Use:     "remove [id...]",
	Aliases: []string{"rm"},
	Short:   "Delete content sources by id",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ids := make([]int, 0, len(args))
		for _, arg := range args {
			id, err := strconv.Atoi(arg)
			if err != nil {
				handleErr(fmt.Errorf("invalid source id %q", arg))
			}
			ids = append(ids, id)
		}

		var confirmer store.Confirmer = store.Survey{}
		if lo.Must(cmd.Flags().GetBool("yes")) {
			confirmer = store.Yes
		}

		s := store.New(newClient())
		defer s.Close()

		for _, id := range ids {
			removed, err := s.ConfirmRemove(cmd.Context(), id, confirmer)
			switch {
			case removed && errors.Is(err, registry.ErrFetch):
				// deleted, but the list could not be reloaded
				fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), err)
			case err != nil:
				handleErr(err)
			case !removed:
				continue
			}

			fmt.Printf(
				"%s removed %s\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
				style.Fg(color.Yellow)(source.PathOf(id)),
			)
		}
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesSchemaCmd)

	sourcesSchemaCmd.Flags().BoolP("rows", "r", false, "Generate the JSON Schema of `sources list --json` output")
}

// sourcesSchemaCmd prints JSON schemas for the request body and the list output.
var sourcesSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for source payloads",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return "grundrisse." + t.Name()
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("rows")):
			schema = reflector.Reflect([]render.Row{})
		default:
			schema = reflector.Reflect(&source.Draft{})
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
