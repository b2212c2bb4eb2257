package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/viewmodel"
)

// placeLookupWait bounds how long discover waits for the reverse geocoder after the list loaded.
const placeLookupWait = 3 * time.Second

func newDiscoverCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var lat, lng float64
	var address string
	var category string
	var pages int
	var sortValue string
	var minRating float64
	var openOnly bool
	var prices []string

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List venues near a location, 10 per page.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pages < 1 {
				return fmt.Errorf("--pages must be >= 1")
			}
			sortMode, err := parseVenueRowSort(sortValue)
			if err != nil {
				return err
			}
			priceLevels, err := parsePriceLevels(prices)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("min-rating") && minRating < 0 {
				return fmt.Errorf("--min-rating must be >= 0")
			}

			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			loc, err := env.resolveLocation(optionalFloat(cmd, "lat", lat), optionalFloat(cmd, "lng", lng), address)
			if err != nil {
				return err
			}

			home := env.app.NewHome()
			defer home.Close()
			home.SetUserLocation(env.ctx(), loc)
			if c := strings.TrimSpace(category); c != "" {
				home.SelectCategory(env.ctx(), c)
			}
			for i := 1; i < pages && home.State().HasMore; i++ {
				home.LoadMore(env.ctx())
			}
			waitCtx, cancelWait := context.WithTimeout(env.ctx(), placeLookupWait)
			if !home.WaitPlace(waitCtx) {
				env.warn("place lookup timed out")
			}
			cancelWait()

			st := home.State()
			if st.Error != nil {
				return env.failResult(st.Error)
			}
			venues := applyVenueRowFilters(st.Venues, venueRowFilters{
				MinRatingSet: cmd.Flags().Changed("min-rating"),
				MinRating:    minRating,
				OpenOnly:     openOnly,
				PriceLevels:  priceLevels,
			})
			sortVenueRows(venues, sortMode)

			data := venueList(venues)
			data["location"] = loc
			data["place"] = st.Place
			data["category"] = st.SelectedCategory
			data["page"] = st.CurrentPage
			data["has_more"] = st.HasMore
			return env.emit(data, func() string {
				return buildVenueTable(discoverTitle(st), venues)
			})
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude. Requires --lng.")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude. Requires --lat.")
	cmd.Flags().StringVar(&address, "address", "", "Address to geocode instead of --lat/--lng.")
	cmd.Flags().StringVar(&category, "category", "", "Only venues in this category, for example Kahve.")
	cmd.Flags().IntVar(&pages, "pages", 1, "Number of pages to load.")
	cmd.Flags().StringVar(&sortValue, "sort", "recommended", "Sort rows: recommended, rating, distance, or name.")
	cmd.Flags().Float64Var(&minRating, "min-rating", 0, "Hide venues rated below this value.")
	cmd.Flags().BoolVar(&openOnly, "open-only", false, "Only venues open now.")
	cmd.Flags().StringSliceVar(&prices, "price", nil, "Price levels to keep, for example $,$$.")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func discoverTitle(st viewmodel.HomeState) string {
	title := "Venues nearby"
	if place := formatPlace(st.Place); place != "" {
		title = "Venues near " + place
	}
	if st.SelectedCategory != "" {
		title += " · " + st.SelectedCategory
	}
	if st.HasMore {
		title += fmt.Sprintf(" (page %d, more available)", st.CurrentPage)
	}
	return title
}

func newSearchCommand(deps Dependencies) *cobra.Command {
	search := &cobra.Command{
		Use:   "search",
		Short: "Search the venue catalog.",
	}
	search.AddCommand(newSearchVenuesCommand(deps))
	return search
}

func newSearchVenuesCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var query string
	var category string
	var page int
	var sortValue string

	cmd := &cobra.Command{
		Use:   "venues",
		Short: "Search venues by name, category, or description.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(query) == "" {
				return errors.New(requiredArg("--query"))
			}
			if page < 1 {
				return fmt.Errorf("--page must be >= 1")
			}
			sortMode, err := parseVenueRowSort(sortValue)
			if err != nil {
				return err
			}

			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			params := domain.SearchParams{
				Query:    strings.TrimSpace(query),
				Page:     page,
				PageSize: viewmodel.HomePageSize,
			}
			if c := strings.TrimSpace(category); c != "" {
				params.Filters.Categories = []string{c}
			}
			res := env.app.UseCases.SearchVenues.Execute(env.ctx(), params)
			if res.IsFailure() {
				return env.failResult(res.Err())
			}
			venues := res.Value()
			sortVenueRows(venues, sortMode)

			data := venueList(venues)
			data["query"] = params.Query
			data["page"] = page
			data["has_more"] = len(venues) == viewmodel.HomePageSize
			return env.emit(data, func() string {
				return buildVenueTable(fmt.Sprintf("Search results for %q", params.Query), venues)
			})
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Search text. [required]")
	cmd.Flags().StringVar(&category, "category", "", "Only venues in this category.")
	cmd.Flags().IntVar(&page, "page", 1, "Result page, 10 venues per page.")
	cmd.Flags().StringVar(&sortValue, "sort", "recommended", "Sort rows: recommended, rating, distance, or name.")
	_ = cmd.MarkFlagRequired("query")
	addGlobalFlags(cmd, &flags)
	return cmd
}
