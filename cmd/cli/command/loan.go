package command

// loan.go covers the loans screen: listing with local filtering, per-user
// views, borrowing and the confirmation-gated return.

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"librarium/internal/controller"
	"librarium/internal/gateway"
	"librarium/internal/stats"
)

var loanCmd = &cobra.Command{
	Use:   "loan",
	Short: "Track borrowed books",
}

var loanListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loans",
	RunE: func(cmd *cobra.Command, args []string) error {
		lc := controller.NewLoansController(client, sink)
		defer lc.Close()

		userID, _ := cmd.Flags().GetInt64("user")
		activeOnly, _ := cmd.Flags().GetBool("active")

		var loans []gateway.Loan
		if userID > 0 {
			var err error
			loans, err = lc.ForUser(cmd.Context(), userID, activeOnly)
			if err != nil {
				return err
			}
		} else {
			if err := lc.Refresh(cmd.Context()); err != nil {
				return err
			}
			filter, _ := cmd.Flags().GetString("filter")
			lc.SetFilter(filter)
			loans = lc.Visible()
		}

		if len(loans) == 0 {
			fmt.Println("No loans found.")
			return nil
		}

		fmt.Printf("🔖 Loans (%d)\n", len(loans))
		fmt.Println("─────────────────────────────────────────────────────────")
		now := time.Now()
		for i, loan := range loans {
			fmt.Printf("%d. Loan #%d [%s]\n", i+1, loan.ID, stats.EffectiveStatus(loan, now))
			fmt.Printf("   Book ID: %d, User ID: %d\n", loan.BookID, loan.UserID)
			fmt.Printf("   Borrowed: %s, Due: %s\n", dateOr(loan.BorrowDate, "-"), dateOr(loan.DueDate, "-"))
			if loan.ReturnDate != nil && !loan.ReturnDate.IsZero() {
				fmt.Printf("   Returned: %s\n", loan.ReturnDate)
			}
			fmt.Println()
		}
		return nil
	},
}

var loanBorrowCmd = &cobra.Command{
	Use:   "borrow",
	Short: "Borrow a book for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetInt64("user")
		bookID, _ := cmd.Flags().GetInt64("book")

		lc := controller.NewLoansController(client, sink)
		defer lc.Close()
		return lc.Borrow(cmd.Context(), userID, bookID)
	},
}

var loanChoicesCmd = &cobra.Command{
	Use:   "choices",
	Short: "Show the books and users available for a new loan",
	RunE: func(cmd *cobra.Command, args []string) error {
		lc := controller.NewLoansController(client, sink)
		defer lc.Close()

		books, users, err := lc.BorrowChoices(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Available books (%d)\n", len(books))
		for _, book := range books {
			fmt.Printf("  %s (ID: %d, %d free)\n", book.Title, book.ID, book.AvailableCopies)
		}
		fmt.Printf("Users (%d)\n", len(users))
		for _, user := range users {
			fmt.Printf("  %s (ID: %d)\n", user.FullName, user.ID)
		}
		return nil
	},
}

var loanReturnCmd = &cobra.Command{
	Use:   "return [id]",
	Short: "Return a borrowed book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		loan, err := client.GetLoanByID(cmd.Context(), id)
		if err != nil {
			return err
		}

		lc := controller.NewLoansController(client, sink)
		defer lc.Close()
		lc.RequestReturn(*loan)

		yes, _ := cmd.Flags().GetBool("yes")
		pending, _ := lc.PendingReturn()
		if !confirmPrompt(fmt.Sprintf("Return %s?", pending.Label), yes) {
			lc.CancelReturn()
			fmt.Println("Cancelled.")
			return nil
		}
		return lc.ConfirmReturn(cmd.Context())
	},
}

func init() {
	loanCmd.AddCommand(loanListCmd)
	loanCmd.AddCommand(loanBorrowCmd)
	loanCmd.AddCommand(loanChoicesCmd)
	loanCmd.AddCommand(loanReturnCmd)

	loanListCmd.Flags().String("filter", "", "Filter locally by loan, book or user ID")
	loanListCmd.Flags().Int64("user", 0, "Only this user's loans")
	loanListCmd.Flags().Bool("active", false, "Only active loans (with --user)")

	loanBorrowCmd.Flags().Int64("user", 0, "Borrowing user ID")
	loanBorrowCmd.Flags().Int64("book", 0, "Book ID")
	loanBorrowCmd.MarkFlagRequired("user")
	loanBorrowCmd.MarkFlagRequired("book")

	loanReturnCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(loanCmd)
}
