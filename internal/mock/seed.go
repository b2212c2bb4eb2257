package mock

import "github.com/mekedron/city-discovery/internal/domain"

// SeedUserID identifies the account every unknown login resolves to.
const SeedUserID = "user1"

const suggestionCoverPhotoURL = "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=800"

func seedVenue(id, name, cover string, rating float64, count int, open bool, categories []string, price domain.PriceLevel, distance float64, short string, favorite, saved bool, lat, lng float64) domain.Venue {
	return domain.Venue{
		ID:               id,
		Name:             name,
		City:             "İstanbul",
		District:         "Kadıköy",
		Country:          "Türkiye",
		CoverPhotoURL:    cover,
		RatingAverage:    rating,
		RatingCount:      count,
		IsOpen:           open,
		Categories:       categories,
		PriceLevel:       price,
		DistanceMeters:   distance,
		ShortDescription: short,
		IsFavorite:       favorite,
		IsSaved:          saved,
		Lat:              &lat,
		Lng:              &lng,
	}
}

// seedVenues builds a fresh copy of the catalogue on every call.
func seedVenues() []domain.Venue {
	moda := seedVenue("1", "Espresso Lab - Moda", "https://images.unsplash.com/photo-1554118811-1e0d58224f24?w=800",
		4.8, 234, true, []string{"Kahve", "Cafe"}, domain.PriceLevelMedium, 300,
		"Modern ve sıcak bir atmosferde kaliteli kahve deneyimi", false, true, 40.9848, 29.0244)
	moda.Photos = []string{
		"https://images.unsplash.com/photo-1511920170033-f8396924c348?w=800",
		"https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?w=800",
		"https://images.unsplash.com/photo-1509042239860-f550ce710b93?w=800",
	}
	moda.OpeningHours = strPtr("09:00 - 23:00")
	moda.PhoneNumber = strPtr("+90 216 555 1234")
	moda.Address = strPtr("Caferağa Mahallesi, Moda Caddesi No:42, Kadıköy/İstanbul")
	moda.Description = strPtr("Espresso Lab, modern ve sıcak bir atmosferde en kaliteli kahve çekirdeklerini kullanarak hazırladığı özel kahveleriyle misafirlerini ağırlıyor. Deneyimli baristalarımız her fincan kahveyi özenle hazırlar. Ayrıca taze pasta ve sandviçlerimizle de kahve keyfinizi tamamlayabilirsiniz.")

	return []domain.Venue{
		moda,
		seedVenue("2", "Burger House", "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=800",
			4.5, 189, true, []string{"Burger", "Fast Food"}, domain.PriceLevelMedium, 450,
			"Lezzetli burgerler ve patates kızartması", true, false, 40.9850, 29.0250),
		seedVenue("3", "Pizza Corner", "https://images.unsplash.com/photo-1513104890138-7c749659a591?w=800",
			4.6, 312, false, []string{"Pizza", "İtalyan"}, domain.PriceLevelHigh, 600,
			"Geleneksel İtalyan pizzaları ve taze malzemeler", false, true, 40.9860, 29.0260),
		seedVenue("4", "Sushi Bar", "https://images.unsplash.com/photo-1579584425555-c3ce17fd4351?w=800",
			4.9, 156, true, []string{"Sushi", "Japon"}, domain.PriceLevelPremium, 800,
			"Taze balık ve geleneksel Japon mutfağı", true, true, 40.9870, 29.0270),
		seedVenue("5", "Cafe Central", "https://images.unsplash.com/photo-1501339847302-ac426a4a7cbb?w=800",
			4.4, 278, true, []string{"Kahve", "Cafe", "Brunch"}, domain.PriceLevelLow, 200,
			"Rahat bir ortamda kahve ve hafif yemekler", false, false, 40.9840, 29.0230),
		seedVenue("6", "Steak House", "https://images.unsplash.com/photo-1546833999-b9f581a1996d?w=800",
			4.7, 445, true, []string{"Et", "Steak"}, domain.PriceLevelPremium, 1200,
			"Premium et çeşitleri ve özel soslar", false, false, 40.9880, 29.0280),
		seedVenue("7", "Vegan Delight", "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?w=800",
			4.3, 98, true, []string{"Vegan", "Sağlıklı"}, domain.PriceLevelMedium, 550,
			"Lezzetli vegan yemekler ve smoothie'ler", false, false, 40.9855, 29.0255),
		seedVenue("8", "Baklava House", "https://images.unsplash.com/photo-1607920591413-4ec007e70023?w=800",
			4.6, 201, true, []string{"Tatlı", "Türk Mutfağı"}, domain.PriceLevelLow, 350,
			"Geleneksel Türk tatlıları ve baklava", true, true, 40.9845, 29.0245),
		seedVenue("9", "Rooftop Bar", "https://images.unsplash.com/photo-1514933651103-005eec06c04b?w=800",
			4.5, 167, true, []string{"Bar", "Kokteyl"}, domain.PriceLevelHigh, 900,
			"Manzaralı çatı barında kokteyller", false, false, 40.9875, 29.0275),
		seedVenue("10", "Breakfast Club", "https://images.unsplash.com/photo-1525351484163-7529414344d8?w=800",
			4.7, 289, true, []string{"Kahvaltı", "Brunch"}, domain.PriceLevelMedium, 400,
			"Zengin kahvaltı menüsü ve taze meyve suları", false, false, 40.9847, 29.0247),
	}
}

func seedUser() domain.User {
	return domain.User{
		ID:        SeedUserID,
		Email:     "elif@example.com",
		Name:      "Elif Yılmaz",
		AvatarURL: strPtr("https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=150"),
		Username:  strPtr("elif_foodie"),
		Bio:       strPtr("İstanbul'un en iyi kahvecilerini keşfediyorum ☕"),
		Hashtags:  []string{"#coffeelover", "#İstanbul"},
	}
}

func seedStats() domain.UserStats {
	return domain.UserStats{FavoritesCount: 45, ReviewsCount: 12, FollowersCount: 152}
}

func strPtr(v string) *string {
	return &v
}
