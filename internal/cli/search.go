package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/windoze95/recipe-search/internal/searchclient"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query...>",
		Short: "Search recipes and print one card per result",
		Example: `  recipes search chicken soup
  recipes --relay http://localhost:5000 search "vegan chili"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			relay, err := searchclient.NewRelayClient(opts.relayURL, nil)
			if err != nil {
				return err
			}

			sess := searchclient.NewSession(relay)
			if err := sess.Submit(cmd.Context(), strings.Join(args, " ")); err != nil {
				if errors.Is(err, searchclient.ErrEmptyQuery) {
					return fmt.Errorf("a search query is required")
				}
				return err
			}

			snap := sess.Snapshot()
			cards := searchclient.NewCards(snap.Hits, searchclient.CardOptions{ImageHosts: opts.imageHosts})
			return renderCards(cmd.OutOrStdout(), DefaultTheme(), snap.Query, cards)
		},
	}
}

func renderCards(w io.Writer, theme Theme, query string, cards []searchclient.Card) error {
	if len(cards) == 0 {
		_, err := fmt.Fprintln(w, theme.Subtitle.Render(fmt.Sprintf("No recipes found for %q.", query)))
		return err
	}

	for _, c := range cards {
		lines := []string{theme.Title.Render(c.Title), c.CaloriesText()}
		if len(c.DietLabels) > 0 {
			badges := make([]string, 0, len(c.DietLabels))
			for _, l := range c.DietLabels {
				badges = append(badges, theme.Badge.Render(l))
			}
			lines = append(lines, strings.Join(badges, " "))
		}
		if c.ImageURL != "" {
			lines = append(lines, theme.Subtitle.Render("image: "+c.ImageURL))
		}
		if c.SourceURL != "" {
			lines = append(lines, theme.Link.Render(c.SourceURL))
		}
		if _, err := fmt.Fprintln(w, theme.Card.Render(strings.Join(lines, "\n"))); err != nil {
			return err
		}
	}
	return nil
}
