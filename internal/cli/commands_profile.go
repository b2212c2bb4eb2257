package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/service/output"
	"github.com/mekedron/city-discovery/internal/viewmodel"
)

func newProfileCommand(deps Dependencies) *cobra.Command {
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Your public profile, stats, and saved venues.",
	}
	profile.AddCommand(newProfileShowCommand(deps))
	profile.AddCommand(newProfileUpdateCommand(deps))
	return profile
}

func newProfileShowCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var tab string
	var category string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the signed-in user with stats and saved venues.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			selected := viewmodel.ProfileTab(strings.ToLower(strings.TrimSpace(tab)))
			if selected != viewmodel.ProfileTabSaved && selected != viewmodel.ProfileTabGrid {
				return fmt.Errorf("invalid --tab %q (use saved or grid)", tab)
			}
			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			vm := env.app.NewProfile()
			vm.Load(env.ctx())
			if selected != viewmodel.ProfileTabSaved {
				vm.SetSelectedTab(env.ctx(), selected)
			}
			vm.SetSelectedCategory(strings.TrimSpace(category))
			st := vm.State()
			if st.Error != "" {
				code := codeUpstream
				if env.app.Session.Tokens().Empty() {
					code = codeAuthRequired
				}
				return env.fail(code, st.Error)
			}
			venues := st.FilteredVenues()
			data := venueList(venues)
			data["user"] = st.User
			data["stats"] = st.Stats
			data["tab"] = st.SelectedTab
			data["category"] = st.SelectedCategory
			return env.emit(data, func() string {
				return buildProfileText(st, venues)
			})
		},
	}
	cmd.Flags().StringVar(&tab, "tab", string(viewmodel.ProfileTabSaved), "Tab to show: saved or grid.")
	cmd.Flags().StringVar(&category, "category", "", "Only saved venues in this category.")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func buildProfileText(st viewmodel.ProfileState, venues []domain.Venue) string {
	var fields []output.Field
	title := "Profile"
	if st.User != nil {
		title = userLabel(*st.User)
		fields = append(fields,
			output.Field{Label: "Username", Value: deref(st.User.Username)},
			output.Field{Label: "Bio", Value: deref(st.User.Bio)},
			output.Field{Label: "Hashtags", Value: strings.Join(st.User.Hashtags, " ")},
		)
	}
	if st.Stats != nil {
		fields = append(fields,
			output.Field{Label: "Favorites", Value: strconv.Itoa(st.Stats.FavoritesCount)},
			output.Field{Label: "Reviews", Value: strconv.Itoa(st.Stats.ReviewsCount)},
			output.Field{Label: "Followers", Value: strconv.Itoa(st.Stats.FollowersCount)},
		)
	}
	text := output.RenderFields(title, fields)
	if st.SelectedTab == viewmodel.ProfileTabGrid {
		return text
	}
	return text + "\n\n" + buildVenueTable("Saved venues", venues)
}

func newProfileUpdateCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var name, username, bio string
	var hashtags []string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your public profile. Only the flags you pass are changed.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var update domain.ProfileUpdate
			changed := cmd.Flags().Changed
			if changed("name") {
				update.Name = &name
			}
			if changed("username") {
				update.Username = &username
			}
			if changed("bio") {
				update.Bio = &bio
			}
			if changed("hashtag") {
				update.Hashtags = hashtags
			}
			if update.Name == nil && update.Username == nil && update.Bio == nil && update.Hashtags == nil {
				return fmt.Errorf("nothing to update; pass at least one of --name, --username, --bio, --hashtag")
			}

			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			user, appErr := env.app.UseCases.UpdateProfile.Execute(env.ctx(), update).Unpack()
			if appErr != nil {
				return env.failResult(appErr)
			}
			return env.emit(map[string]any{"user": user}, func() string {
				return "Profile updated for " + userLabel(user) + "."
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name.")
	cmd.Flags().StringVar(&username, "username", "", "Username.")
	cmd.Flags().StringVar(&bio, "bio", "", "Short bio.")
	cmd.Flags().StringSliceVar(&hashtags, "hashtag", nil, "Replace hashtags. Repeatable or comma-separated.")
	addGlobalFlags(cmd, &flags)
	return cmd
}
