package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

func capitalizeWords(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(v)
		out = append(out, string(unicode.ToUpper(r))+v[size:])
	}
	return out
}

// FormatCategories renders categories for tables.
func (v Venue) FormatCategories() string {
	if len(v.Categories) == 0 {
		return "-"
	}
	return strings.Join(capitalizeWords(v.Categories), ", ")
}

// FormatRating renders the average with its review count.
func (v Venue) FormatRating() string {
	if v.RatingCount == 0 {
		return "(No rating)"
	}
	return fmt.Sprintf("%.1f (%d)", v.RatingAverage, v.RatingCount)
}

// FormatDistance renders meters below one kilometer, kilometers above.
func (v Venue) FormatDistance() string {
	switch {
	case v.DistanceMeters <= 0:
		return "-"
	case v.DistanceMeters < 1000:
		return fmt.Sprintf("%.0f m", v.DistanceMeters)
	default:
		return fmt.Sprintf("%.1f km", v.DistanceMeters/1000)
	}
}

// FormatOpen renders the open flag.
func (v Venue) FormatOpen() string {
	if v.IsOpen {
		return "Open"
	}
	return "Closed"
}

// FormatArea renders "district, city" skipping blanks.
func (v Venue) FormatArea() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{v.District, v.City} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

// FormatDescription truncates the short description for table cells.
func (v Venue) FormatDescription() string {
	desc := strings.TrimSpace(v.ShortDescription)
	if desc == "" {
		return "-"
	}
	if utf8.RuneCountInString(desc) > 60 {
		return string([]rune(desc)[:60]) + "..."
	}
	return desc
}

// FormatFlags renders favorite and saved markers.
func (v Venue) FormatFlags() string {
	flags := make([]string, 0, 2)
	if v.IsFavorite {
		flags = append(flags, "♥")
	}
	if v.IsSaved {
		flags = append(flags, "saved")
	}
	return strings.Join(flags, " ")
}

// FormatStars renders a review rating as filled and empty stars.
func (r Review) FormatStars() string {
	n := max(0, min(5, r.Rating))
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}
