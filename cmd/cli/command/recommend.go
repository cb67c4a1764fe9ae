package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"librarium/internal/controller"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Book recommendations",
	Long:  `Show the most borrowed books alongside personalized picks for one user.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetInt64("user")
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = cfg.RecommendationLimit
		}

		rc := controller.NewRecommendationsController(client, sink)
		defer rc.Close()

		if err := rc.Load(cmd.Context(), userID, limit); err != nil {
			return err
		}

		mostBorrowed, ok := rc.MostBorrowed()
		if !ok {
			return errors.New("recommendations unavailable")
		}
		personalized, _ := rc.Personalized()

		fmt.Printf("🔥 Most Borrowed Books (top %d)\n", limit)
		fmt.Println("─────────────────────────────────────────────────────────")
		if len(mostBorrowed) == 0 {
			fmt.Println("No borrowed books data available.")
		}
		for i, rec := range mostBorrowed {
			fmt.Printf("#%d %s (ISBN: %s)", i+1, rec.Title, rec.ISBN)
			if rec.BorrowCount != nil {
				fmt.Printf(", %d borrows", *rec.BorrowCount)
			}
			fmt.Println()
			if rec.Category != nil && *rec.Category != "" {
				fmt.Printf("   Category: %s\n", *rec.Category)
			}
		}

		fmt.Println()
		fmt.Printf("⭐ Personalized for user #%d\n", userID)
		fmt.Println("─────────────────────────────────────────────────────────")
		if len(personalized) == 0 {
			fmt.Println("No personalized recommendations available for this user.")
		}
		for _, rec := range personalized {
			fmt.Printf("%s (ISBN: %s)\n", rec.Title, rec.ISBN)
			if rec.Reason != "" {
				fmt.Printf("   %s\n", rec.Reason)
			}
		}
		return nil
	},
}

func init() {
	recommendCmd.Flags().Int64("user", 1, "User to personalize for")
	recommendCmd.Flags().Int("limit", 0, "How many most-borrowed books to show")

	rootCmd.AddCommand(recommendCmd)
}
