package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mekedron/city-discovery/internal/config"
	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/service/output"
	"github.com/mekedron/city-discovery/internal/service/profile"
)

func newConfigureCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var profileName, address string
	var lat, lng float64
	var makeDefault bool
	var backend, baseURL, sessionStore string

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Save a location profile and backend settings to the config file.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := newCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			if deps.Config == nil {
				return env.fail(codeProfile, "Config store is not available.")
			}
			ctx := env.ctx()

			cfg, err := deps.Config.Load(ctx)
			switch {
			case errors.Is(err, config.ErrConfigNotFound):
				cfg = config.Defaults()
			case err != nil:
				return env.fail(codeProfile, err.Error())
			}

			changed := cmd.Flags().Changed
			settingsChanged := false
			if changed("backend") {
				parsed, err := config.ParseBackend(backend)
				if err != nil {
					return env.fail(codeInvalidArgument, err.Error())
				}
				cfg.Backend = parsed
				settingsChanged = true
			}
			if changed("base-url") {
				cfg.API.BaseURL = strings.TrimSpace(baseURL)
				settingsChanged = true
			}
			if changed("session-store") {
				cfg.Session.Store = config.SessionStoreKind(strings.ToLower(strings.TrimSpace(sessionStore)))
				settingsChanged = true
			}
			if settingsChanged {
				if err := deps.Config.Save(ctx, cfg); err != nil {
					return env.fail(codeInvalidArgument, err.Error())
				}
			}

			var saved *domain.Profile
			if name := strings.TrimSpace(profileName); name != "" {
				loc, err := env.resolveProfileLocation(cmd, lat, lng, address)
				if err != nil {
					return err
				}
				p := domain.Profile{
					Name:      name,
					IsDefault: makeDefault,
					Address:   strings.TrimSpace(address),
					Location:  loc,
				}
				cfg, err = profile.Upsert(ctx, deps.Config, p)
				if err != nil {
					return env.fail(codeProfile, err.Error())
				}
				for i := range cfg.Profiles {
					if strings.EqualFold(cfg.Profiles[i].Name, name) {
						saved = &cfg.Profiles[i]
					}
				}
			} else if !settingsChanged {
				return env.fail(codeInvalidArgument, "Nothing to configure. Pass --profile-name or a setting such as --backend.")
			}

			data := map[string]any{
				"config_path": deps.Config.Path(),
				"backend":     cfg.Backend,
				"base_url":    cfg.API.BaseURL,
				"session":     cfg.Session.Store,
				"profiles":    cfg.Profiles,
			}
			if saved != nil {
				data["profile"] = saved
			}
			return env.emit(data, func() string {
				fields := []output.Field{
					{Label: "Config", Value: deps.Config.Path()},
					{Label: "Backend", Value: string(cfg.Backend)},
					{Label: "Base URL", Value: cfg.API.BaseURL},
					{Label: "Session store", Value: string(cfg.Session.Store)},
				}
				if saved != nil {
					fields = append(fields,
						output.Field{Label: "Profile", Value: saved.Name},
						output.Field{Label: "Default", Value: boolToYesNo(saved.IsDefault)},
						output.Field{Label: "Location", Value: formatLocation(saved.Location)},
					)
				}
				return output.RenderFields("Configuration saved", fields)
			})
		},
	}

	cmd.Flags().StringVar(&profileName, "profile-name", "", "Name of the location profile to create or replace.")
	cmd.Flags().StringVar(&address, "address", "", "Profile address, geocoded unless --lat/--lng are given.")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Profile latitude. Requires --lng.")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Profile longitude. Requires --lat.")
	cmd.Flags().BoolVar(&makeDefault, "default", false, "Make this the default profile.")
	cmd.Flags().StringVar(&backend, "backend", "", "Default backend: mock or live.")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Live API base URL.")
	cmd.Flags().StringVar(&sessionStore, "session-store", "", "Where tokens persist: memory, file, or redis.")
	addGlobalFlags(cmd, &flags)
	return cmd
}

// resolveProfileLocation accepts explicit coordinates, with or without an
// address label, and geocodes the address otherwise.
func (e *commandEnv) resolveProfileLocation(cmd *cobra.Command, lat, lng float64, address string) (domain.Location, error) {
	latFlag, lngFlag := optionalFloat(cmd, "lat", lat), optionalFloat(cmd, "lng", lng)
	if latFlag != nil || lngFlag != nil {
		if latFlag == nil || lngFlag == nil {
			return domain.Location{}, e.fail(codeInvalidArgument, "Both --lat and --lng must be provided together.")
		}
		return domain.Location{Lat: *latFlag, Lng: *lngFlag}, nil
	}
	if strings.TrimSpace(address) == "" {
		return domain.Location{}, e.fail(codeInvalidArgument, "A profile needs --address or both --lat and --lng.")
	}
	return e.geocode(address)
}
