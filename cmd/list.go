package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/taskboard/internal/app"
	"github.com/adanyl0v/taskboard/internal/filter"
	"github.com/adanyl0v/taskboard/internal/present"
)

func listCmd() *cobra.Command {
	var (
		criteria filter.Criteria
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the tasks matching the given filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.MustConnectBackend()
			defer app.DisconnectBackend()
			app.MustLoadTaskStore()

			tasks := filter.Apply(app.TaskStore().Tasks(), criteria)
			views := present.NewViews(tasks, time.Now())
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(views)
			}
			return printViews(cmd.OutOrStdout(), views)
		},
	}

	cmd.Flags().StringVarP(&criteria.Search, "search", "s", "", "match title or description")
	cmd.Flags().StringVar(&criteria.Status, "status", "", "pending, in-progress or completed")
	cmd.Flags().StringVarP(&criteria.Priority, "priority", "p", "", "low, medium or high")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "output as JSON")
	return cmd
}

func printViews(w io.Writer, views []present.View) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRIORITY\tSTATUS\tDUE\tCOMMENTS")
	for _, v := range views {
		due := v.DueLabel
		if v.Overdue {
			due += " (!)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			v.ID, v.Title, v.Priority, v.Status, due, len(v.Comments))
	}
	return tw.Flush()
}
