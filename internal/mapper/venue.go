// Package mapper converts between wire DTOs and domain entities.
package mapper

import (
	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/gateway/api"
)

// VenueFromDTO maps a wire venue. Absent optional fields stay nil.
func VenueFromDTO(dto api.VenueDTO) domain.Venue {
	return domain.Venue{
		ID:               dto.ID,
		Name:             dto.VenueName,
		City:             dto.City,
		District:         dto.District,
		Country:          dto.Country,
		CoverPhotoURL:    dto.CoverPhotoURL,
		RatingAverage:    dto.RatingAverage,
		RatingCount:      dto.RatingCount,
		IsOpen:           dto.IsOpen,
		Categories:       copyStrings(dto.Categories),
		PriceLevel:       domain.PriceLevel(dto.PriceLevel),
		DistanceMeters:   dto.DistanceMeters,
		ShortDescription: dto.ShortDescription,
		IsFavorite:       dto.IsFavorite,
		IsSaved:          dto.IsSaved,
		Lat:              copyFloat(dto.Lat),
		Lng:              copyFloat(dto.Lng),
		Photos:           copyStrings(dto.Photos),
		OpeningHours:     copyString(dto.OpeningHours),
		PhoneNumber:      copyString(dto.PhoneNumber),
		Address:          copyString(dto.Address),
		Description:      copyString(dto.Description),
	}
}

// VenuesFromDTOs maps a list, preserving order. A nil list maps to an empty one.
func VenuesFromDTOs(dtos []api.VenueDTO) []domain.Venue {
	out := make([]domain.Venue, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, VenueFromDTO(dto))
	}
	return out
}

// VenueToDTO is the inverse of VenueFromDTO.
func VenueToDTO(v domain.Venue) api.VenueDTO {
	return api.VenueDTO{
		ID:               v.ID,
		VenueName:        v.Name,
		City:             v.City,
		District:         v.District,
		Country:          v.Country,
		CoverPhotoURL:    v.CoverPhotoURL,
		RatingAverage:    v.RatingAverage,
		RatingCount:      v.RatingCount,
		IsOpen:           v.IsOpen,
		Categories:       copyStrings(v.Categories),
		PriceLevel:       string(v.PriceLevel),
		DistanceMeters:   v.DistanceMeters,
		ShortDescription: v.ShortDescription,
		IsFavorite:       v.IsFavorite,
		IsSaved:          v.IsSaved,
		Lat:              copyFloat(v.Lat),
		Lng:              copyFloat(v.Lng),
		Photos:           copyStrings(v.Photos),
		OpeningHours:     copyString(v.OpeningHours),
		PhoneNumber:      copyString(v.PhoneNumber),
		Address:          copyString(v.Address),
		Description:      copyString(v.Description),
	}
}

// VenuesToDTOs maps a list back to the wire shape.
func VenuesToDTOs(venues []domain.Venue) []api.VenueDTO {
	out := make([]api.VenueDTO, 0, len(venues))
	for _, v := range venues {
		out = append(out, VenueToDTO(v))
	}
	return out
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyFloat(in *float64) *float64 {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}

func copyString(in *string) *string {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}
