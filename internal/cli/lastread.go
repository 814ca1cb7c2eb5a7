package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/sbreader/internal/entities"
	"github.com/mrlokans/sbreader/internal/services"
)

func newLastReadCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "last-read",
		Short: "Show or set the last-read position",
	}

	cmd.AddCommand(newLastReadShowCmd(opts))
	cmd.AddCommand(newLastReadSetCmd(opts))
	return cmd
}

func newLastReadShowCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the saved last-read position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stores, err := opts.openStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			last, found, err := stores.Settings.LoadLastRead(ctx)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintln(out, "No last-read position saved")
				return nil
			}

			pos, resolved, err := services.NewSearch(stores.Corpus).Resume(ctx, *last)
			if err != nil {
				return err
			}

			if jsonOutput {
				payload := map[string]any{"lastRead": last}
				if resolved {
					payload["position"] = pos
				}
				return outputJSON(out, payload)
			}

			fmt.Fprintf(out, "Last read: canto %d, chapter %d, verse %d\n", last.CantoID, last.ChapterCoordinate, last.VerseNumber)
			if resolved {
				fmt.Fprintf(out, "Chapter ID: %d\n", pos.ChapterID)
			} else {
				fmt.Fprintln(out, "The position is not in the current corpus")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newLastReadSetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <cantoId> <chapterNumber> <verseNumber>",
		Short: "Save the last-read position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := services.ParseCoordinates(args[0], args[1], args[2])
			if err != nil {
				return err
			}

			stores, err := opts.openStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			pos := entities.LastReadPosition{
				CantoID:           coords.CantoID,
				ChapterCoordinate: coords.ChapterNumber,
				VerseNumber:       coords.VerseNumber,
			}
			if err := stores.Settings.SaveLastRead(cmd.Context(), pos); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Last read set to %d.%d.%d\n", pos.CantoID, pos.ChapterCoordinate, pos.VerseNumber)
			return nil
		},
	}
}
