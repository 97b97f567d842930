package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/handiism/tocadiscos/internal/catalog"
	"github.com/handiism/tocadiscos/internal/model"
	"github.com/handiism/tocadiscos/internal/report"
	"github.com/handiism/tocadiscos/internal/search"
)

func (c *cli) newArtistCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "artist",
		Short:   "List, add and remove artists",
		GroupID: "catalog",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every artist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := c.app.Store.LoadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			return report.ArtistListing(cat, c.app.Session.IsAuthorized()).Render(cmd.OutOrStdout())
		},
	}

	var nationality string
	var royalty float64
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an artist with the next free id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct := royalty
			if !cmd.Flags().Changed("royalty") {
				pct = c.app.Settings.DefaultRoyaltyPercentage
			}
			a, err := c.app.Store.AddArtist(cmd.Context(), args[0], nationality, pct)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added artist %q with id %d\n", a.Name, a.ID)
			return nil
		},
	}
	add.Flags().StringVar(&nationality, "nationality", "", "artist nationality")
	add.Flags().Float64Var(&royalty, "royalty", 0, "royalty percentage, 0 to 100 (default from settings)")

	remove := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove an artist with their albums and tracks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			res, err := c.app.Store.RemoveArtist(cmd.Context(), args[0], c.confirmer(out))
			if err != nil {
				return err
			}
			if !res.Removed {
				fmt.Fprintln(out, "Nothing removed")
				return nil
			}
			fmt.Fprintf(out, "Removed %q with %d album(s) and %d track(s)\n", res.Artist.Name, res.AlbumsRemoved, res.TracksRemoved)
			return nil
		},
	}

	setRoyalty := &cobra.Command{
		Use:   "royalty <name> <percentage>",
		Short: "Change an artist's royalty percentage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("percentage %q is not a number", args[1])
			}
			a, err := c.app.Store.UpdateArtistRoyalty(cmd.Context(), args[0], pct)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Royalty of %q is now %s\n", a.Name, report.Percent(a.RoyaltyPercentage))
			return nil
		},
	}

	cmd.AddCommand(list, add, remove, setRoyalty)
	return cmd
}

func (c *cli) newAlbumCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "album",
		Short:   "List albums",
		GroupID: "catalog",
	}

	var artist string
	list := &cobra.Command{
		Use:   "list",
		Short: "List every album, or the albums of one artist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := c.app.Store.LoadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			if artist != "" {
				owned := make(map[int]model.Album)
				for _, a := range catalog.AlbumsForArtist(cat.Albums, artist) {
					owned[a.ID] = a
				}
				cat.Albums = owned
			}
			return report.AlbumListing(cat).Render(cmd.OutOrStdout())
		},
	}
	list.Flags().StringVar(&artist, "artist", "", "only albums of this artist")

	cmd.AddCommand(list)
	return cmd
}

func (c *cli) newSearchCommand() *cobra.Command {
	var typ string
	var limit int
	cmd := &cobra.Command{
		Use:     "search [text]",
		Short:   "Search artists, albums and tracks",
		GroupID: "catalog",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docType, err := search.ParseDocType(typ)
			if err != nil {
				return err
			}
			text := ""
			if len(args) == 1 {
				text = args[0]
			}
			hits, err := c.app.Search(cmd.Context(), text, docType, limit)
			if err != nil {
				return err
			}
			if len(hits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches")
				return nil
			}
			return report.HitListing(hits).Render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "", "only this type: artist, album or track")
	cmd.Flags().IntVarP(&limit, "limit", "n", search.DefaultLimit, "maximum number of results")
	return cmd
}

func (c *cli) newReportCommand() *cobra.Command {
	var sortBy, artist string
	cmd := &cobra.Command{
		Use:     "report",
		Short:   "Show revenue and royalties per artist",
		GroupID: "catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if artist != "" {
				f, err := c.app.Reports.ComputeArtistFinancials(cmd.Context(), artist)
				if err != nil {
					return err
				}
				return report.FinancialsListing(f, c.app.Reports.Authorized()).Render(out)
			}

			key, err := report.ParseSortKey(sortBy)
			if err != nil {
				return err
			}
			r, err := c.app.Reports.ComputeFullReport(cmd.Context(), key)
			if err != nil {
				return err
			}
			return r.Table().Render(out)
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort", string(report.SortByName), "sort rows by name or revenue")
	cmd.Flags().StringVar(&artist, "artist", "", "figures of one artist")
	return cmd
}
