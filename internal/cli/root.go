package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mekedron/city-discovery/internal/config"
	"github.com/mekedron/city-discovery/internal/domain"
)

// Command groups follow the app screens: the home list and map, the user's
// lists, the account tab, and local setup.
var commandGroups = []*cobra.Group{
	{ID: "explore", Title: "explore:"},
	{ID: "lists", Title: "your lists:"},
	{ID: "account", Title: "account:"},
	{ID: "setup", Title: "setup:"},
}

// NewRootCommand builds the complete command tree.
func NewRootCommand(deps Dependencies) *cobra.Command {
	root := &cobra.Command{
		Use:           programName,
		Short:         "Discover venues nearby, manage favorites, and review places from the terminal.",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if show, _ := cmd.Flags().GetBool("version"); show {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionLine(deps.Version))
				return errVersionShown
			}
			return cmd.Help()
		},
	}
	root.Flags().BoolP("version", "v", false, "Show CLI version and exit.")
	root.SetHelpCommand(&cobra.Command{Hidden: true})
	root.AddGroup(commandGroups...)

	addGrouped(root, "explore",
		newDiscoverCommand(deps),
		newSearchCommand(deps),
		newMapCommand(deps),
		newVenueCommand(deps),
	)
	addGrouped(root, "lists", newFavoritesCommand(deps), newSavedCommand(deps))
	addGrouped(root, "account", newAuthCommand(deps), newProfileCommand(deps))
	addGrouped(root, "setup", newConfigureCommand(deps), newServeMockCommand(deps))

	subcommandHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != root {
			subcommandHelp(cmd, args)
			return
		}
		renderRootHelp(cmd.OutOrStdout(), root, deps.Settings)
	})
	return root
}

func addGrouped(root *cobra.Command, group string, cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		cmd.GroupID = group
		root.AddCommand(cmd)
	}
}

type verboseHTTPTraceSetter interface {
	SetVerboseOutput(out io.Writer)
}

// attachVerboseHTTPTrace routes request traces to stderr when --verbose is set
// and the container talks to the live API.
func attachVerboseHTTPTrace(cmd *cobra.Command, upstream any) {
	if cmd == nil || upstream == nil {
		return
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
		return
	}
	setter, ok := upstream.(verboseHTTPTraceSetter)
	if !ok {
		return
	}
	setter.SetVerboseOutput(cmd.ErrOrStderr())
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "[verbose] http trace enabled")
}

func renderRootHelp(out io.Writer, root *cobra.Command, settings config.Config) {
	p := func(format string, args ...any) { _, _ = fmt.Fprintf(out, format, args...) }

	p("%s: %s\n\n", root.Name(), root.Short)
	p("usage: %s <command> [options]\n\n", root.Name())

	p("current setup:\n")
	p("  backend: %s\n", orDefault(string(settings.Backend), string(config.BackendMock)))
	p("  session store: %s\n", orDefault(string(settings.Session.Store), string(config.SessionMemory)))
	if settings.Backend == config.BackendLive {
		p("  api: %s\n", orDefault(settings.API.BaseURL, config.DefaultBaseURL))
	}
	if profile, ok := defaultProfileName(settings.Profiles); ok {
		p("  default profile: %s\n", profile)
	}

	p("\noptions accepted by every command:\n")
	if version := root.Flags().Lookup("version"); version != nil {
		opt := docFor(version)
		p("  %s: %s (%s only)\n", opt.token, opt.usage, root.Name())
	}
	for _, opt := range sharedOptions() {
		p("  %s: %s\n", opt.token, opt.usage)
	}

	for _, group := range root.Groups() {
		p("\n%s\n", group.Title)
		for _, cmd := range visibleCommands(root) {
			if cmd.GroupID == group.ID {
				p("  %-12s %s\n", cmd.Name(), cmd.Short)
			}
		}
	}

	p("\nnotes:\n")
	p("  - the mock backend is in-memory; favorites and reviews reset between runs. Use serve-mock with --backend live to keep state.\n")
	if settings.Session.Store == "" || settings.Session.Store == config.SessionMemory {
		p("  - sign-ins last one command with the memory session store; run `configure --session-store file` to keep them.\n")
	}

	p("\nreference:\n")
	emitReference(out, root, root.Name())
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func defaultProfileName(profiles []domain.Profile) (string, bool) {
	for _, profile := range profiles {
		if profile.IsDefault {
			return profile.Name, true
		}
	}
	return "", false
}

func visibleCommands(parent *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range parent.Commands() {
		if !cmd.Hidden {
			out = append(out, cmd)
		}
	}
	return out
}

// emitReference lists every leaf and branch with its own flags. Shared flags
// are documented once at the top.
func emitReference(out io.Writer, parent *cobra.Command, path string) {
	for _, cmd := range visibleCommands(parent) {
		_, _ = fmt.Fprintf(out, "- %s\n  %s\n", strings.TrimSpace(path+" "+cmd.Use), cmd.Short)
		if options := commandOptions(cmd); len(options) > 0 {
			_, _ = fmt.Fprintln(out, "  options:")
			for _, opt := range options {
				label := ""
				if opt.required {
					label = " [required]"
				}
				_, _ = fmt.Fprintf(out, "    %s%s: %s\n", opt.token, label, opt.usage)
			}
		}
		_, _ = fmt.Fprintln(out)
		emitReference(out, cmd, strings.TrimSpace(path+" "+cmd.Name()))
	}
}

type optionDoc struct {
	name     string
	token    string
	usage    string
	required bool
}

// sharedOptions documents the flags addGlobalFlags registers, in registration order.
func sharedOptions() []optionDoc {
	flagsOnly := &cobra.Command{}
	flagsOnly.Flags().SortFlags = false
	addGlobalFlags(flagsOnly, &globalFlags{})
	var out []optionDoc
	flagsOnly.Flags().VisitAll(func(flag *pflag.Flag) {
		out = append(out, docFor(flag))
	})
	return out
}

// commandOptions lists the flags a command defines itself, sorted by name.
func commandOptions(cmd *cobra.Command) []optionDoc {
	var out []optionDoc
	cmd.LocalFlags().VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden || flag.Name == "help" || isSharedGlobalFlag(flag) {
			return
		}
		out = append(out, docFor(flag))
	})
	return out
}

func docFor(flag *pflag.Flag) optionDoc {
	token := "--" + flag.Name
	if flag.Shorthand != "" {
		token += "/-" + flag.Shorthand
	}
	return optionDoc{
		name:     flag.Name,
		token:    token,
		usage:    strings.TrimSpace(flag.Usage),
		required: hasTrueAnnotation(flag, cobra.BashCompOneRequiredFlag),
	}
}

func isSharedGlobalFlag(flag *pflag.Flag) bool {
	return hasTrueAnnotation(flag, sharedGlobalFlagAnnotation)
}

func hasTrueAnnotation(flag *pflag.Flag, key string) bool {
	if flag == nil {
		return false
	}
	values := flag.Annotations[key]
	return len(values) > 0 && (strings.EqualFold(values[0], "true") || values[0] == "1")
}
