package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"librarium/internal/controller"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Overview of the library system",
	RunE: func(cmd *cobra.Command, args []string) error {
		dc := controller.NewDashboardController(client, sink, cfg.StatCategories, cfg.TrendMonths)
		defer dc.Close()

		if err := dc.Load(cmd.Context()); err != nil {
			return err
		}
		overview, ok := dc.Overview()
		if !ok {
			return errors.New("dashboard stats unavailable")
		}

		fmt.Println("📊 Library Dashboard")
		fmt.Println("─────────────────────────────────────────────────────────")
		fmt.Printf("Total Books:      %d (%d of %d copies available)\n",
			overview.TotalBooks, overview.AvailableCopies, overview.TotalCopies)
		fmt.Printf("Registered Users: %d\n", overview.TotalUsers)
		fmt.Printf("Active Loans:     %d\n", overview.ActiveLoans)
		fmt.Printf("Overdue Loans:    %d\n", overview.OverdueLoans)
		fmt.Printf("Returned Loans:   %d\n", overview.Statuses.Returned)

		if len(overview.Categories) > 0 {
			fmt.Println()
			fmt.Println("Books by category:")
			for _, group := range overview.Categories {
				fmt.Printf("  %-20s %d\n", group.Category, group.Count)
			}
		}

		if len(overview.Trend) > 0 {
			fmt.Println()
			fmt.Println("Borrows per month:")
			for _, month := range overview.Trend {
				fmt.Printf("  %s  %-4d %s\n", month.Month.Format("2006-01"), month.Count,
					strings.Repeat("█", month.Count))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
