package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newScoresCmd() *cobra.Command {
	var game, sortField, order string

	cmd := &cobra.Command{
		Use:   "scores",
		Short: "List competition scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if game != "" {
				q.Set("game", game)
			}
			if sortField != "" {
				q.Set("sort", sortField)
			}
			if order != "" {
				q.Set("order", order)
			}

			path := "/api/v1/scores"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			var result ScoreList
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&game, "game", "", "Filter by exact game label ('all' for no filter)")
	cmd.Flags().StringVar(&sortField, "sort", "", "Sort field: employeeName, game, score")
	cmd.Flags().StringVar(&order, "order", "", "Sort order: asc, desc")

	return cmd
}
