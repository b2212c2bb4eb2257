package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/service/output"
	"github.com/mekedron/city-discovery/internal/viewmodel"
)

func newMapCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var lat, lng float64
	var query string
	cmd := &cobra.Command{
		Use:   "map",
		Short: "List venue pins around a map region, or search and re-centre.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			m := env.app.NewMap()
			region := viewmodel.InitialRegion
			latFlag, lngFlag := optionalFloat(cmd, "lat", lat), optionalFloat(cmd, "lng", lng)
			if latFlag != nil || lngFlag != nil {
				if latFlag == nil || lngFlag == nil {
					return env.fail(codeInvalidArgument, "Both --lat and --lng must be provided together.")
				}
				region.Latitude, region.Longitude = *latFlag, *lngFlag
				m.OnRegionChange(region)
			}

			if q := strings.TrimSpace(query); q != "" {
				m.Search(env.ctx(), q)
			} else {
				m.LoadVenues(env.ctx(), region)
			}
			st := m.State()
			if st.Error != nil {
				return env.failResult(st.Error)
			}

			data := venueList(st.Venues)
			data["region"] = st.Region
			data["query"] = st.SearchQuery
			return env.emit(data, func() string {
				return buildMapTable(st)
			})
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "Region centre latitude. Requires --lng.")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Region centre longitude. Requires --lat.")
	cmd.Flags().StringVar(&query, "query", "", "Search instead of listing the region.")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func buildMapTable(st viewmodel.MapState) string {
	title := "Map centre " + formatLocation(st.Region.Center())
	pins := make([]domain.Venue, 0, len(st.Venues))
	for _, v := range st.Venues {
		if _, ok := v.Coordinates(); ok {
			pins = append(pins, v)
		}
	}
	if len(pins) == 0 {
		return title + "\nNo venues on the map."
	}
	rows := make([][]string, 0, len(pins))
	for _, v := range pins {
		loc, _ := v.Coordinates()
		rows = append(rows, []string{v.ID, v.Name, v.FormatRating(), formatLocation(loc)})
	}
	return output.RenderTable(title, []string{"ID", "Name", "Rating", "Coordinates"}, rows)
}
