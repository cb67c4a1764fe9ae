package command

// book.go covers the books screen: list with local filtering, detail view,
// create/update, confirmation-gated delete and the gateway-side search.

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"librarium/internal/controller"
	"librarium/internal/gateway"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Manage the book collection",
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List books",
	RunE: func(cmd *cobra.Command, args []string) error {
		bc := controller.NewBooksController(client, sink)
		defer bc.Close()

		if err := bc.Refresh(cmd.Context()); err != nil {
			return err
		}
		filter, _ := cmd.Flags().GetString("filter")
		bc.SetFilter(filter)

		books := bc.Visible()
		if len(books) == 0 {
			fmt.Println("No books found.")
			return nil
		}

		fmt.Printf("📚 Books (%d)\n", len(books))
		fmt.Println("─────────────────────────────────────────────────────────")
		for i, book := range books {
			fmt.Printf("%d. %s (ID: %d)\n", i+1, book.Title, book.ID)
			fmt.Printf("   ISBN: %s\n", book.ISBN)
			if name := bc.AuthorName(book.AuthorID); name != "" {
				fmt.Printf("   Author: %s\n", name)
			}
			if book.Category != nil && *book.Category != "" {
				fmt.Printf("   Category: %s\n", *book.Category)
			}
			fmt.Printf("   Copies: %d of %d available\n", book.AvailableCopies, book.TotalCopies)
			fmt.Println()
		}
		return nil
	},
}

var bookGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		withAuthor, _ := cmd.Flags().GetBool("with-author")
		if withAuthor {
			book, err := client.GetBookWithAuthor(cmd.Context(), id)
			if err != nil {
				return err
			}
			printBook(book.Book)
			fmt.Printf("Author: %s\n", book.AuthorName)
			if book.AuthorBiography != nil && *book.AuthorBiography != "" {
				fmt.Printf("About the author: %s\n", *book.AuthorBiography)
			}
			return nil
		}

		book, err := client.GetBookByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		printBook(*book)
		return nil
	},
}

var bookCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a book to the collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		draft, err := bookDraft(cmd, gateway.Book{})
		if err != nil {
			return err
		}
		if draft.Title == "" || draft.ISBN == "" {
			return errors.New("title and isbn are required")
		}

		bc := controller.NewBooksController(client, sink)
		defer bc.Close()
		return bc.Save(cmd.Context(), draft)
	},
}

var bookUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		// Full-record replace: start from the current record and overlay
		// whichever flags were set.
		current, err := client.GetBookByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		draft, err := bookDraft(cmd, *current)
		if err != nil {
			return err
		}

		bc := controller.NewBooksController(client, sink)
		defer bc.Close()
		return bc.Save(cmd.Context(), draft)
	},
}

var bookDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		book, err := client.GetBookByID(cmd.Context(), id)
		if err != nil {
			return err
		}

		bc := controller.NewBooksController(client, sink)
		defer bc.Close()
		bc.RequestDelete(*book)

		yes, _ := cmd.Flags().GetBool("yes")
		pending, _ := bc.PendingDelete()
		if !confirmPrompt(fmt.Sprintf("Delete %q (ID: %d)?", pending.Label, pending.ID), yes) {
			bc.CancelDelete()
			fmt.Println("Cancelled.")
			return nil
		}
		return bc.ConfirmDelete(cmd.Context())
	},
}

var bookSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search books on the gateway by title, isbn or category",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		isbn, _ := cmd.Flags().GetString("isbn")
		category, _ := cmd.Flags().GetString("category")
		if title == "" && isbn == "" && category == "" {
			return errors.New("at least one of --title, --isbn or --category is required")
		}

		bc := controller.NewBooksController(client, sink)
		defer bc.Close()
		books, err := bc.Search(cmd.Context(), gateway.BookSearch{Title: title, ISBN: isbn, Category: category})
		if err != nil {
			return err
		}

		if len(books) == 0 {
			fmt.Println("No books matched.")
			return nil
		}
		for i, book := range books {
			fmt.Printf("%d. %s (ID: %d, ISBN: %s)\n", i+1, book.Title, book.ID, book.ISBN)
		}
		return nil
	},
}

func printBook(book gateway.Book) {
	fmt.Printf("%s (ID: %d)\n", book.Title, book.ID)
	fmt.Printf("ISBN: %s\n", book.ISBN)
	fmt.Printf("Category: %s\n", strOr(book.Category, "-"))
	fmt.Printf("Published: %s\n", dateOr(book.PublicationDate, "-"))
	fmt.Printf("Copies: %d of %d available\n", book.AvailableCopies, book.TotalCopies)
	if book.Description != nil && *book.Description != "" {
		fmt.Printf("Description: %s\n", *book.Description)
	}
}

// bookDraft overlays the set flags onto base.
func bookDraft(cmd *cobra.Command, base gateway.Book) (gateway.Book, error) {
	draft := base

	if title := optString(cmd, "title"); title != nil {
		draft.Title = *title
	}
	if isbn := optString(cmd, "isbn"); isbn != nil {
		draft.ISBN = *isbn
	}
	if description := optString(cmd, "description"); description != nil {
		draft.Description = description
	}
	if category := optString(cmd, "category"); category != nil {
		draft.Category = category
	}
	if authorID := optInt64(cmd, "author"); authorID != nil {
		draft.AuthorID = authorID
	}
	published, err := optDate(cmd, "published")
	if err != nil {
		return gateway.Book{}, err
	}
	if published != nil {
		draft.PublicationDate = published
	}
	if cmd.Flags().Changed("total") {
		draft.TotalCopies, _ = cmd.Flags().GetInt("total")
	}
	if cmd.Flags().Changed("available") {
		draft.AvailableCopies, _ = cmd.Flags().GetInt("available")
	}
	return draft, nil
}

func bookPayloadFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Book title")
	cmd.Flags().String("isbn", "", "ISBN")
	cmd.Flags().String("description", "", "Description")
	cmd.Flags().String("category", "", "Category")
	cmd.Flags().Int64("author", 0, "Author ID")
	cmd.Flags().String("published", "", "Publication date (YYYY-MM-DD)")
	cmd.Flags().Int("total", 0, "Total copies")
	cmd.Flags().Int("available", 0, "Available copies")
}

func init() {
	bookCmd.AddCommand(bookListCmd)
	bookCmd.AddCommand(bookGetCmd)
	bookCmd.AddCommand(bookCreateCmd)
	bookCmd.AddCommand(bookUpdateCmd)
	bookCmd.AddCommand(bookDeleteCmd)
	bookCmd.AddCommand(bookSearchCmd)

	bookListCmd.Flags().String("filter", "", "Filter locally by title or ISBN")
	bookGetCmd.Flags().Bool("with-author", false, "Include the author details")
	bookPayloadFlags(bookCreateCmd)
	bookPayloadFlags(bookUpdateCmd)
	bookDeleteCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	bookSearchCmd.Flags().String("title", "", "Title contains")
	bookSearchCmd.Flags().String("isbn", "", "ISBN equals")
	bookSearchCmd.Flags().String("category", "", "Category equals")

	rootCmd.AddCommand(bookCmd)
}
