package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	flagPublish bool
	flagLimit   int
)

var checklistCmd = &cobra.Command{
	Use:   "checklist <week.json | start-date>",
	Short: "Publish a week's shopping list as a Trello card",
	Long: `Checklist creates a card at the top of the configured Trello list with the
week's dinners in its description and one checklist per store section.

The week is a structured week file or the start date (YYYY-MM-DD) of an
archived week. Requires TRELLO_API_KEY, TRELLO_API_TOKEN and TRELLO_LIST_ID.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		a, err := rt.app(deps{trello: true, archive: true})
		if err != nil {
			return err
		}
		card, err := a.PublishChecklist(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(card.ShortURL)
		return nil
	},
}

var postCmd = &cobra.Command{
	Use:   "post <source>",
	Short: "Publish a rendered menu to Ghost",
	Long: `Post renders the menu as HTML and creates a Ghost post titled after the
menu. A post with the same title is left alone. Posts are drafts unless
--publish is given. Requires GHOST_API_URL and GHOST_ADMIN_API_KEY.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		a, err := rt.app(deps{ghost: true, archive: true})
		if err != nil {
			return err
		}
		post, _, err := a.PublishPost(cmd.Context(), args[0], flagPublish)
		if err != nil {
			return err
		}
		fmt.Println(post.ID)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent Trello cards and Ghost posts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		a, err := rt.app(deps{archive: true})
		if err != nil {
			return err
		}
		pubs, err := a.Publications(cmd.Context(), flagLimit)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PUBLISHED\tTARGET\tMENU\tID\tURL")
		for _, p := range pubs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.PublishedAt.Local().Format("2006-01-02 15:04"), p.Target, p.Menu, p.RemoteID, p.URL)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(checklistCmd, postCmd, historyCmd)
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of entries to show")
	postCmd.Flags().BoolVar(&flagPublish, "publish", false, "Publish instead of saving a draft")
}
