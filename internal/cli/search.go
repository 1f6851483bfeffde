package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"animeflix/catalog/internal/domain"
)

func newSearchCommand(opts *options) *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search the catalog, an empty query lists everything",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.build(cmd)
			if err != nil {
				return err
			}

			result, err := app.Client.SearchCatalog(cmd.Context(), domain.CatalogQuery{
				Text:     strings.Join(args, " "),
				Page:     page,
				PageSize: limit,
			})
			if err != nil {
				return err
			}

			return printPage(cmd, result)
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "results per page (default from config)")
	return cmd
}

func printPage(cmd *cobra.Command, page *domain.CatalogPage) error {
	out := cmd.OutOrStdout()
	if len(page.Items) == 0 {
		fmt.Fprintln(out, "No anime found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCORE\tTITLE")
	for _, anime := range page.Items {
		score := "N/A"
		if anime.Score != nil && *anime.Score > 0 {
			score = fmt.Sprintf("%.1f", *anime.Score)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", anime.MalID, score, anime.Title)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	p := page.Pagination
	next := "no"
	if p.HasNextPage {
		next = "yes"
	}
	fmt.Fprintf(out, "\nPage %d of %d, more: %s, nearby pages: %v\n", p.CurrentPage, p.LastVisiblePage, next, p.PageWindow(5))
	return nil
}
