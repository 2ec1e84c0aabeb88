package main

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"text/tabwriter"

	"dinner-daily/internal/app"
	"dinner-daily/internal/render"
	"dinner-daily/internal/week"

	"github.com/spf13/cobra"
)

var (
	flagWeek   string
	flagOutput string
)

var startDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func isStartDate(s string) bool {
	return startDatePattern.MatchString(s)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a week from the menu API and archive it",
	Long: `Fetch downloads the menu and shopping list for the previous or current week,
validates them and stores them in the archive. The structured week is also
written as JSON to --output when given. Requires DINNER_DAILY_TOKEN.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		option, err := week.ParseOption(flagWeek)
		if err != nil {
			return err
		}

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		a, err := rt.app(deps{fetcher: true, archive: true})
		if err != nil {
			return err
		}
		wk, err := a.Fetch(cmd.Context(), option)
		if err != nil {
			return err
		}
		if flagOutput == "" {
			return nil
		}
		data, err := render.MarshalSorted(wk)
		if err != nil {
			return err
		}
		if flagOutput == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		return os.WriteFile(flagOutput, data, 0o644)
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive <source>...",
	Short: "Store menus in the week archive",
	Args:  cobra.MinimumNArgs(1),
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
		for _, src := range args {
			key, err := a.Archive(cmd.Context(), src)
			if err != nil {
				return err
			}
			fmt.Println(key)
		}
		return nil
	},
}

var weeksCmd = &cobra.Command{
	Use:   "weeks",
	Short: "List archived weeks",
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
		summaries, err := a.ListWeeks(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "START\tNAME\tUPDATED")
		for _, s := range summaries {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", s.StartDate, s.Name, s.UpdatedAt.Local().Format("2006-01-02 15:04"))
		}
		return tw.Flush()
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <start-date> [output]",
	Short: "Render an archived week",
	Long: `Export renders the archived week starting on start-date (YYYY-MM-DD). Output
and format flags work as for render, so without an output path the result goes
to standard output.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		startDate := args[0]
		if !isStartDate(startDate) {
			return fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", startDate)
		}
		dst := ""
		if len(args) == 2 {
			dst = args[1]
		}
		format, err := selectFormat(dst)
		if err != nil {
			return err
		}

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		a, err := rt.app(deps{archive: true})
		if err != nil {
			return err
		}
		opts := app.RenderOptions{Format: format, Structured: flagStructured}
		return writeOutput(cmd.OutOrStdout(), dst, func(w io.Writer) error {
			return a.Export(cmd.Context(), startDate, opts, w)
		})
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd, archiveCmd, weeksCmd, exportCmd)
	fetchCmd.Flags().StringVar(&flagWeek, "week", string(week.OptionCurrent), "Week to fetch (previous or current)")
	fetchCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Also write the week as JSON to this path (\"-\" for stdout)")
	addFormatFlags(exportCmd)
}
