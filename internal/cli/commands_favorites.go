package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mekedron/city-discovery/internal/domain"
)

func newFavoritesCommand(deps Dependencies) *cobra.Command {
	favorites := &cobra.Command{
		Use:   "favorites",
		Short: "Your favorite, want-to-go, and visited lists.",
	}
	favorites.AddCommand(newFavoritesListCommand(deps))
	return favorites
}

func newFavoritesListCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var listValue string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List venues in one of your lists. Requires login.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			listType, err := domain.ParseFavoriteListType(listValue)
			if err != nil {
				return err
			}
			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			favorites := env.app.NewFavorites()
			favorites.Load(env.ctx(), listType)
			st := favorites.State()
			if st.Error != nil {
				return env.failResult(st.Error)
			}
			data := venueList(st.Venues)
			data["list"] = st.SelectedListType
			return env.emit(data, func() string {
				return buildVenueTable(fmt.Sprintf("%s list", st.SelectedListType), st.Venues)
			})
		},
	}
	cmd.Flags().StringVar(&listValue, "list", "favorite", "List to show: favorite, wanttogo, or visited.")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newSavedCommand(deps Dependencies) *cobra.Command {
	saved := &cobra.Command{
		Use:   "saved",
		Short: "Venues you saved for later.",
	}
	saved.AddCommand(newSavedListCommand(deps))
	return saved
}

func newSavedListCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved venues. Requires login.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			venues, appErr := env.app.UseCases.GetSavedVenues.Execute(env.ctx()).Unpack()
			if appErr != nil {
				return env.failResult(appErr)
			}
			category = strings.TrimSpace(category)
			if category != "" {
				filtered := make([]domain.Venue, 0, len(venues))
				for _, v := range venues {
					if v.HasCategory(category) {
						filtered = append(filtered, v)
					}
				}
				venues = filtered
			}
			data := venueList(venues)
			data["category"] = category
			return env.emit(data, func() string {
				title := "Saved venues"
				if category != "" {
					title += " · " + category
				}
				return buildVenueTable(title, venues)
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Only saved venues in this category.")
	addGlobalFlags(cmd, &flags)
	return cmd
}
