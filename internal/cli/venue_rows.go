package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/service/output"
)

func buildVenueTable(title string, venues []domain.Venue) string {
	if len(venues) == 0 {
		return strings.TrimSpace(title + "\nNo venues found.")
	}
	headers := []string{"ID", "Name", "Rating", "Price", "Distance", "Status", "Categories", ""}
	rows := make([][]string, 0, len(venues))
	for _, v := range venues {
		rows = append(rows, []string{
			v.ID,
			v.Name,
			v.FormatRating(),
			string(v.PriceLevel),
			v.FormatDistance(),
			v.FormatOpen(),
			v.FormatCategories(),
			v.FormatFlags(),
		})
	}
	return output.RenderTable(title, headers, rows)
}

func buildVenueDetail(v domain.Venue, share string) string {
	fields := []output.Field{
		{Label: "ID", Value: v.ID},
		{Label: "Area", Value: v.FormatArea()},
		{Label: "Rating", Value: v.FormatRating()},
		{Label: "Price", Value: string(v.PriceLevel)},
		{Label: "Status", Value: v.FormatOpen()},
		{Label: "Categories", Value: v.FormatCategories()},
		{Label: "Favorite", Value: boolToYesNo(v.IsFavorite)},
		{Label: "Saved", Value: boolToYesNo(v.IsSaved)},
		{Label: "About", Value: v.FormatDescription()},
		{Label: "Address", Value: deref(v.Address)},
		{Label: "Hours", Value: deref(v.OpeningHours)},
		{Label: "Phone", Value: deref(v.PhoneNumber)},
		{Label: "Description", Value: deref(v.Description)},
		{Label: "Photos", Value: countLabel(len(v.Photos), "photo")},
		{Label: "Share", Value: share},
	}
	if loc, ok := v.Coordinates(); ok {
		fields = append(fields, output.Field{Label: "Coordinates", Value: formatLocation(loc)})
	}
	return output.RenderFields(v.Name, fields)
}

func buildReviewTable(venueID string, reviews []domain.Review) string {
	title := fmt.Sprintf("Reviews for %s", venueID)
	if len(reviews) == 0 {
		return title + "\nNo reviews yet."
	}
	rows := make([][]string, 0, len(reviews))
	for _, r := range reviews {
		rows = append(rows, []string{r.FormatStars(), r.UserName, r.CreatedAt.UTC().Format("2006-01-02"), r.Text})
	}
	return output.RenderTable(title, []string{"Rating", "User", "Date", "Text"}, rows)
}

func formatLocation(loc domain.Location) string {
	return strconv.FormatFloat(loc.Lat, 'f', 5, 64) + ", " + strconv.FormatFloat(loc.Lng, 'f', 5, 64)
}

func formatPlace(place *domain.Place) string {
	if place == nil {
		return ""
	}
	return strings.Trim(strings.Join([]string{place.District, place.City}, ", "), ", ")
}

func countLabel(n int, noun string) string {
	switch n {
	case 0:
		return ""
	case 1:
		return "1 " + noun
	default:
		return fmt.Sprintf("%d %ss", n, noun)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// venueList is the machine payload shared by listing commands.
func venueList(venues []domain.Venue) map[string]any {
	if venues == nil {
		venues = []domain.Venue{}
	}
	return map[string]any{
		"venues": venues,
		"count":  len(venues),
	}
}
