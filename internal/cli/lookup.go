package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/service"
)

var (
	placesRadius int
	placesLimit  int
	photosCount  int
)

var geocodeCmd = &cobra.Command{
	Use:     "geocode <destination>",
	Short:   "Resolve a destination to coordinates",
	Long:    `Geocode a free-text destination with Nominatim and print its coordinates.`,
	Args:    cobra.MinimumNArgs(1),
	GroupID: "lookup",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := newProviders()
		if err != nil {
			return err
		}
		dest, err := p.Geocoder.Geocode(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, dest)
		}
		printSection(out, dest.Name)
		if dest.DisplayName != "" {
			printLabelValue(out, "Display name", dest.DisplayName)
		}
		printLabelValue(out, "Coordinates", dest.Coordinates.String())
		return nil
	},
}

var placesCmd = &cobra.Command{
	Use:     "places <destination>",
	Short:   "List points of interest near a destination",
	Long:    `Geocode a destination, then list nearby points of interest from the configured places provider.`,
	Args:    cobra.MinimumNArgs(1),
	GroupID: "lookup",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cfg, err := newProviders()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		dest, err := p.Geocoder.Geocode(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		q := domain.PlaceQuery{
			Near:    dest.Name,
			Center:  &dest.Coordinates,
			RadiusM: cfg.PlacesRadiusM,
			Limit:   cfg.PlacesLimit,
		}
		if placesRadius > 0 {
			q.RadiusM = placesRadius
		}
		if placesLimit > 0 {
			q.Limit = placesLimit
		}
		places, err := p.Places.Search(ctx, q)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, places)
		}
		printSection(out, fmt.Sprintf("Places near %s", dest.Name))
		if len(places) == 0 {
			printEmptyState(out, "No places found")
			return nil
		}
		rows := make([][]string, 0, len(places))
		for i, pl := range places {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				pl.Name,
				pl.Category,
				pl.Coordinates().String(),
			})
		}
		printTable(out, []string{"#", "Name", "Category", "Coordinates"}, rows)
		return nil
	},
}

var photosCmd = &cobra.Command{
	Use:     "photos <destination>",
	Short:   "Search stock photos of a destination",
	Args:    cobra.MinimumNArgs(1),
	GroupID: "lookup",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cfg, err := newProviders()
		if err != nil {
			return err
		}
		if p.Photos == nil {
			return errors.New("no photo provider configured: set PEXELS_API_KEY")
		}
		perPage := cfg.PhotosPerPage
		if photosCount > 0 {
			perPage = photosCount
		}
		photos, err := p.Photos.Search(cmd.Context(), strings.Join(args, " "), perPage)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, photos)
		}
		if len(photos) == 0 {
			printWarning(out, domain.ErrNoImages.Error())
			return nil
		}
		rows := make([][]string, 0, len(photos))
		for _, ph := range photos {
			rows = append(rows, []string{ph.Photographer, ph.URL})
		}
		printTable(out, []string{"Photographer", "URL"}, rows)
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:     "summary <destination>",
	Short:   "Show the encyclopedia summary and country facts for a destination",
	Args:    cobra.MinimumNArgs(1),
	GroupID: "lookup",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cfg, err := newProviders()
		if err != nil {
			return err
		}
		svc := service.NewDestinationService(service.DestinationDeps{
			Summaries:     p.Summaries,
			Countries:     p.Countries,
			Facts:         p.Facts,
			Photos:        p.Photos,
			PhotosPerPage: cfg.PhotosPerPage,
		}, nil)
		info, err := svc.Info(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, info)
		}
		printSection(out, info.Summary.Title)
		_, _ = fmt.Fprintln(out, info.Summary.Extract)
		if info.Summary.PageURL != "" {
			printLabelValue(out, "Read more", info.Summary.PageURL)
		}
		if info.Facts.Country != "" {
			printLabelValue(out, "Country", info.Facts.Country)
		}
		printLabelValue(out, "Language", info.Facts.Language)
		printLabelValue(out, "Currency", info.Facts.Currency)
		printLabelValue(out, "Photos", strconv.Itoa(len(info.Photos)))
		for _, w := range info.Warnings {
			printWarning(out, w)
		}
		return nil
	},
}

func init() {
	placesCmd.Flags().IntVar(&placesRadius, "radius", 0, "Search radius in metres (default PLACES_RADIUS_M)")
	placesCmd.Flags().IntVar(&placesLimit, "limit", 0, "Maximum number of places (default PLACES_LIMIT)")
	photosCmd.Flags().IntVar(&photosCount, "count", 0, "Number of photos (default PHOTOS_PER_PAGE)")
}
