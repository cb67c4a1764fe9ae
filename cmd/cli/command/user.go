package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"librarium/internal/controller"
	"librarium/internal/gateway"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage library users",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library users",
	RunE: func(cmd *cobra.Command, args []string) error {
		uc := controller.NewUsersController(client, sink)
		defer uc.Close()

		if err := uc.Refresh(cmd.Context()); err != nil {
			return err
		}
		filter, _ := cmd.Flags().GetString("filter")
		uc.SetFilter(filter)

		users := uc.Visible()
		if len(users) == 0 {
			fmt.Println("No users found.")
			return nil
		}

		fmt.Printf("👤 Users (%d)\n", len(users))
		fmt.Println("─────────────────────────────────────────────────────────")
		for i, user := range users {
			fmt.Printf("%d. %s (ID: %d)\n", i+1, user.FullName, user.ID)
			fmt.Printf("   Email: %s\n", user.Email)
			if user.Phone != nil && *user.Phone != "" {
				fmt.Printf("   Phone: %s\n", *user.Phone)
			}
			if user.CreatedAt != nil {
				fmt.Printf("   Member since: %s\n", user.CreatedAt.Format("2006-01-02"))
			}
			fmt.Println()
		}
		return nil
	},
}

var userGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		user, err := client.GetUserByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Printf("%s (ID: %d)\n", user.FullName, user.ID)
		fmt.Printf("Email: %s\n", user.Email)
		fmt.Printf("Phone: %s\n", strOr(user.Phone, "-"))
		return nil
	},
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a library user",
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := userDraft(cmd, gateway.User{})
		if draft.FullName == "" || draft.Email == "" {
			return errors.New("name and email are required")
		}

		uc := controller.NewUsersController(client, sink)
		defer uc.Close()
		return uc.Save(cmd.Context(), draft)
	},
}

var userUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a library user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		current, err := client.GetUserByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		draft := userDraft(cmd, *current)

		uc := controller.NewUsersController(client, sink)
		defer uc.Close()
		return uc.Save(cmd.Context(), draft)
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a library user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		user, err := client.GetUserByID(cmd.Context(), id)
		if err != nil {
			return err
		}

		uc := controller.NewUsersController(client, sink)
		defer uc.Close()
		uc.RequestDelete(*user)

		yes, _ := cmd.Flags().GetBool("yes")
		pending, _ := uc.PendingDelete()
		if !confirmPrompt(fmt.Sprintf("Delete %q (ID: %d)?", pending.Label, pending.ID), yes) {
			uc.CancelDelete()
			fmt.Println("Cancelled.")
			return nil
		}
		return uc.ConfirmDelete(cmd.Context())
	},
}

func userDraft(cmd *cobra.Command, base gateway.User) gateway.User {
	draft := base

	if name := optString(cmd, "name"); name != nil {
		draft.FullName = *name
	}
	if email := optString(cmd, "email"); email != nil {
		draft.Email = *email
	}
	if phone := optString(cmd, "phone"); phone != nil {
		draft.Phone = phone
	}
	return draft
}

func userPayloadFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("phone", "", "Phone number")
}

func init() {
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userGetCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userUpdateCmd)
	userCmd.AddCommand(userDeleteCmd)

	userListCmd.Flags().String("filter", "", "Filter locally by name or email")
	userPayloadFlags(userCreateCmd)
	userPayloadFlags(userUpdateCmd)
	userDeleteCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(userCmd)
}
