package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/repository"
	"github.com/mekedron/city-discovery/internal/service/output"
	"github.com/mekedron/city-discovery/internal/usecase"
)

func newVenueCommand(deps Dependencies) *cobra.Command {
	venue := &cobra.Command{
		Use:   "venue",
		Short: "Venue details, reviews, lists, and owner tools.",
	}
	venue.AddCommand(newVenueShowCommand(deps))
	venue.AddCommand(newVenueToggleCommand(deps, "favorite", "Toggle the favorite flag on a venue."))
	venue.AddCommand(newVenueToggleCommand(deps, "save", "Toggle the saved flag on a venue."))
	venue.AddCommand(newVenueReviewsCommand(deps))
	venue.AddCommand(newVenueReviewCommand(deps))
	venue.AddCommand(newVenueSuggestCommand(deps))
	venue.AddCommand(newVenueClaimCommand(deps))
	venue.AddCommand(newVenueUpdateCommand(deps))
	venue.AddCommand(newVenuePhotoCommand(deps))
	return venue
}

func newVenueShowCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	cmd := &cobra.Command{
		Use:   "show <venue-id>",
		Short: "Show full venue details.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			detail := env.app.NewVenueDetail()
			detail.Load(env.ctx(), strings.TrimSpace(args[0]))
			st := detail.State()
			if st.Error != nil {
				return env.failResult(st.Error)
			}
			if st.Venue == nil {
				return env.fail(codeNotFound, "Venue not found")
			}
			share := detail.ShareText()
			return env.emit(map[string]any{
				"venue": st.Venue,
				"share": share,
			}, func() string {
				return buildVenueDetail(*st.Venue, share)
			})
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}

// newVenueToggleCommand loads the venue first so the output reflects the
// flag after the toggle.
func newVenueToggleCommand(deps Dependencies, name, short string) *cobra.Command {
	var flags globalFlags
	cmd := &cobra.Command{
		Use:   name + " <venue-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			detail := env.app.NewVenueDetail()
			detail.Load(env.ctx(), strings.TrimSpace(args[0]))
			if st := detail.State(); st.Error != nil {
				return env.failResult(st.Error)
			}

			toggle := detail.ToggleFavorite
			field := "is_favorite"
			if name == "save" {
				toggle = detail.ToggleSave
				field = "is_saved"
			}
			on, appErr := toggle(env.ctx()).Unpack()
			if appErr != nil {
				return env.failResult(appErr)
			}
			venue := detail.State().Venue
			return env.emit(map[string]any{
				"venue_id": venue.ID,
				field:      on,
			}, func() string {
				state := "off"
				if on {
					state = "on"
				}
				return fmt.Sprintf("%s: %s %s", venue.Name, name, state)
			})
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newVenueReviewsCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var sortValue string
	cmd := &cobra.Command{
		Use:   "reviews <venue-id>",
		Short: "List venue reviews.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sortMode, err := domain.ParseReviewSort(sortValue)
			if err != nil {
				return err
			}
			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			venueID := strings.TrimSpace(args[0])
			reviews, appErr := env.app.UseCases.GetReviews.Execute(env.ctx(), usecase.GetReviewsParams{
				VenueID: venueID,
				Sort:    sortMode,
			}).Unpack()
			if appErr != nil {
				return env.failResult(appErr)
			}
			if reviews == nil {
				reviews = []domain.Review{}
			}
			return env.emit(map[string]any{
				"venue_id": venueID,
				"sort":     sortMode,
				"reviews":  reviews,
				"count":    len(reviews),
			}, func() string {
				return buildReviewTable(venueID, reviews)
			})
		},
	}
	cmd.Flags().StringVar(&sortValue, "sort", "date", "Order: date or rating.")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newVenueReviewCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var rating int
	var text string
	cmd := &cobra.Command{
		Use:   "review <venue-id>",
		Short: "Post a review. Requires login.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rating < 1 || rating > 5 {
				return fmt.Errorf("--rating must be between 1 and 5")
			}
			if strings.TrimSpace(text) == "" {
				return errors.New(requiredArg("--text"))
			}
			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			review, appErr := env.app.UseCases.AddReview.Execute(env.ctx(), domain.AddReviewParams{
				VenueID: strings.TrimSpace(args[0]),
				Rating:  rating,
				Text:    strings.TrimSpace(text),
			}).Unpack()
			if appErr != nil {
				return env.failResult(appErr)
			}
			return env.emit(map[string]any{"review": review}, func() string {
				return buildReviewTable(review.VenueID, []domain.Review{review})
			})
		},
	}
	cmd.Flags().IntVar(&rating, "rating", 0, "Stars from 1 to 5. [required]")
	cmd.Flags().StringVar(&text, "text", "", "Review text. [required]")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newVenueSuggestCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var name, address, city, district, description string
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest a new venue for the catalog.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			form := env.app.NewAddVenue()
			form.SetFields(name, address, city, district, description)
			venue, ok := form.Submit(env.ctx())
			if !ok {
				code := codeUpstream
				if anyBlank(name, address, city, district) {
					code = codeValidation
				}
				return env.fail(code, form.State().Error)
			}
			return env.emit(map[string]any{"venue": venue}, func() string {
				return output.RenderFields("Venue suggested", []output.Field{
					{Label: "ID", Value: venue.ID},
					{Label: "Name", Value: venue.Name},
					{Label: "Area", Value: venue.FormatArea()},
					{Label: "Price", Value: string(venue.PriceLevel)},
				})
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Venue name. [required]")
	cmd.Flags().StringVar(&address, "address", "", "Street address. [required]")
	cmd.Flags().StringVar(&city, "city", "", "City. [required]")
	cmd.Flags().StringVar(&district, "district", "", "District. [required]")
	cmd.Flags().StringVar(&description, "description", "", "Short description.")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newVenueClaimCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	cmd := &cobra.Command{
		Use:   "claim <venue-id>",
		Short: "Claim ownership of a venue. Requires login.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			venueID := strings.TrimSpace(args[0])
			if res := env.app.UseCases.ClaimVenue.Execute(env.ctx(), venueID); res.IsFailure() {
				return env.failResult(res.Err())
			}
			return env.emit(map[string]any{"venue_id": venueID, "claimed": true}, func() string {
				return fmt.Sprintf("Claim submitted for venue %s.", venueID)
			})
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newVenueUpdateCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var name, description, priceLevel string
	var categories []string
	cmd := &cobra.Command{
		Use:   "update <venue-id>",
		Short: "Update an owned venue. Only the flags you pass are changed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var update domain.VenueProfileUpdate
			changed := cmd.Flags().Changed
			if changed("name") {
				update.Name = &name
			}
			if changed("description") {
				update.Description = &description
			}
			if changed("category") {
				update.Categories = categories
			}
			if changed("price-level") {
				level, err := domain.ParsePriceLevel(priceLevel)
				if err != nil {
					return err
				}
				update.PriceLevel = &level
			}
			if update.Name == nil && update.Description == nil && update.Categories == nil && update.PriceLevel == nil {
				return fmt.Errorf("nothing to update; pass at least one of --name, --description, --category, --price-level")
			}

			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			venue, appErr := env.app.UseCases.UpdateVenueProfile.Execute(env.ctx(), usecase.UpdateVenueProfileParams{
				VenueID: strings.TrimSpace(args[0]),
				Update:  update,
			}).Unpack()
			if appErr != nil {
				return env.failResult(appErr)
			}
			return env.emit(map[string]any{"venue": venue}, func() string {
				return buildVenueDetail(venue, "")
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New venue name.")
	cmd.Flags().StringVar(&description, "description", "", "New description.")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Replace categories. Repeatable or comma-separated.")
	cmd.Flags().StringVar(&priceLevel, "price-level", "", "New price level: $, $$, $$$, or $$$$.")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newVenuePhotoCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var file string
	cmd := &cobra.Command{
		Use:   "photo <venue-id>",
		Short: "Upload a photo to an owned venue.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(file) == "" {
				return errors.New(requiredArg("--file"))
			}
			env, err := openCommandEnv(cmd, deps, flags)
			if err != nil {
				return err
			}
			defer env.close()

			f, err := os.Open(file)
			if err != nil {
				return env.fail(codeInvalidArgument, err.Error())
			}
			defer f.Close()

			venueID := strings.TrimSpace(args[0])
			url, appErr := env.app.UseCases.UploadVenuePhoto.Execute(env.ctx(), usecase.UploadVenuePhotoParams{
				VenueID: venueID,
				Photo:   repository.Photo{FileName: filepath.Base(file), Content: f},
			}).Unpack()
			if appErr != nil {
				return env.failResult(appErr)
			}
			return env.emit(map[string]any{"venue_id": venueID, "url": url}, func() string {
				return "Photo uploaded: " + url
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Image file to upload. [required]")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func anyBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
