package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"librarium/internal/controller"
	"librarium/internal/gateway"
)

var authorCmd = &cobra.Command{
	Use:   "author",
	Short: "Manage authors",
}

var authorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List authors",
	RunE: func(cmd *cobra.Command, args []string) error {
		ac := controller.NewAuthorsController(client, sink)
		defer ac.Close()

		if err := ac.Refresh(cmd.Context()); err != nil {
			return err
		}
		filter, _ := cmd.Flags().GetString("filter")
		ac.SetFilter(filter)

		authors := ac.Visible()
		if len(authors) == 0 {
			fmt.Println("No authors found.")
			return nil
		}

		fmt.Printf("✒️  Authors (%d)\n", len(authors))
		fmt.Println("─────────────────────────────────────────────────────────")
		for i, author := range authors {
			fmt.Printf("%d. %s (ID: %d)\n", i+1, author.FullName(), author.ID)
			if author.BirthDate != nil && !author.BirthDate.IsZero() {
				fmt.Printf("   Born: %s\n", author.BirthDate)
			}
			if author.Bio != nil && *author.Bio != "" {
				fmt.Printf("   Bio: %s\n", *author.Bio)
			}
			fmt.Println()
		}
		return nil
	},
}

var authorGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one author",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		author, err := client.GetAuthorByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Printf("%s (ID: %d)\n", author.FullName(), author.ID)
		fmt.Printf("Born: %s\n", dateOr(author.BirthDate, "-"))
		fmt.Printf("Bio: %s\n", strOr(author.Bio, "-"))
		return nil
	},
}

var authorCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add an author",
	RunE: func(cmd *cobra.Command, args []string) error {
		draft, err := authorDraft(cmd, gateway.Author{})
		if err != nil {
			return err
		}
		if draft.FirstName == "" || draft.LastName == "" {
			return errors.New("first-name and last-name are required")
		}

		ac := controller.NewAuthorsController(client, sink)
		defer ac.Close()
		return ac.Save(cmd.Context(), draft)
	},
}

var authorUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update an author",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		current, err := client.GetAuthorByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		draft, err := authorDraft(cmd, *current)
		if err != nil {
			return err
		}

		ac := controller.NewAuthorsController(client, sink)
		defer ac.Close()
		return ac.Save(cmd.Context(), draft)
	},
}

var authorDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an author",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		author, err := client.GetAuthorByID(cmd.Context(), id)
		if err != nil {
			return err
		}

		ac := controller.NewAuthorsController(client, sink)
		defer ac.Close()
		ac.RequestDelete(*author)

		yes, _ := cmd.Flags().GetBool("yes")
		pending, _ := ac.PendingDelete()
		if !confirmPrompt(fmt.Sprintf("Delete %q (ID: %d)?", pending.Label, pending.ID), yes) {
			ac.CancelDelete()
			fmt.Println("Cancelled.")
			return nil
		}
		return ac.ConfirmDelete(cmd.Context())
	},
}

var authorSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search authors on the gateway by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			return errors.New("--name is required")
		}

		ac := controller.NewAuthorsController(client, sink)
		defer ac.Close()
		authors, err := ac.Search(cmd.Context(), name)
		if err != nil {
			return err
		}

		if len(authors) == 0 {
			fmt.Println("No authors matched.")
			return nil
		}
		for i, author := range authors {
			fmt.Printf("%d. %s (ID: %d)\n", i+1, author.FullName(), author.ID)
		}
		return nil
	},
}

func authorDraft(cmd *cobra.Command, base gateway.Author) (gateway.Author, error) {
	draft := base

	if firstName := optString(cmd, "first-name"); firstName != nil {
		draft.FirstName = *firstName
	}
	if lastName := optString(cmd, "last-name"); lastName != nil {
		draft.LastName = *lastName
	}
	if bio := optString(cmd, "bio"); bio != nil {
		draft.Bio = bio
	}
	born, err := optDate(cmd, "born")
	if err != nil {
		return gateway.Author{}, err
	}
	if born != nil {
		draft.BirthDate = born
	}
	return draft, nil
}

func authorPayloadFlags(cmd *cobra.Command) {
	cmd.Flags().String("first-name", "", "First name")
	cmd.Flags().String("last-name", "", "Last name")
	cmd.Flags().String("bio", "", "Biography")
	cmd.Flags().String("born", "", "Birth date (YYYY-MM-DD)")
}

func init() {
	authorCmd.AddCommand(authorListCmd)
	authorCmd.AddCommand(authorGetCmd)
	authorCmd.AddCommand(authorCreateCmd)
	authorCmd.AddCommand(authorUpdateCmd)
	authorCmd.AddCommand(authorDeleteCmd)
	authorCmd.AddCommand(authorSearchCmd)

	authorListCmd.Flags().String("filter", "", "Filter locally by name")
	authorPayloadFlags(authorCreateCmd)
	authorPayloadFlags(authorUpdateCmd)
	authorDeleteCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	authorSearchCmd.Flags().String("name", "", "Name contains")

	rootCmd.AddCommand(authorCmd)
}
