package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saturnino-fabrica-de-software/facerecon/internal/domain"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage the registered user directory",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List registered users",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.render(cmd, a.session.LoadUsers(cmd.Context()))
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.render(cmd, a.session.LoadUser(cmd.Context(), args[0]))
			},
		},
		newUsersCreateCmd(a),
		newUsersUpdateCmd(a),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.render(cmd, a.session.DeleteUser(cmd.Context(), args[0]))
			},
		},
	)

	return cmd
}

func addUserFieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("given-name", "", "Given name (required)")
	cmd.Flags().String("family-name", "", "Family name (required)")
	cmd.Flags().String("email", "", "Email address (required)")
	cmd.Flags().String("phone", "", "Phone number (required)")
	cmd.Flags().Bool("wanted", false, "Mark the person as wanted")
}

func userFieldsFromFlags(cmd *cobra.Command) (domain.UserFields, error) {
	fields := domain.UserFields{
		GivenName:  mustGetString(cmd, "given-name"),
		FamilyName: mustGetString(cmd, "family-name"),
		Email:      mustGetString(cmd, "email"),
		Phone:      mustGetString(cmd, "phone"),
		Wanted:     mustGetBool(cmd, "wanted"),
	}.Trimmed()
	if err := fields.Validate(); err != nil {
		return domain.UserFields{}, fmt.Errorf("invalid user: %w", err)
	}
	return fields, nil
}

func newUsersCreateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a user with a reference photo",
		Long: `Registers a user and reloads the directory.

Examples:
  facerecon users create --given-name Luis --family-name Perez \
    --email luis@example.pe --phone 999888777 --wanted --photo luis.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fields, err := userFieldsFromFlags(cmd)
			if err != nil {
				return err
			}
			photo := mustGetString(cmd, "photo")
			if photo == "" {
				return errors.New("--photo is required")
			}
			image, err := a.loadImage(photo, false)
			if err != nil {
				return err
			}
			return a.render(cmd, a.session.RegisterUser(cmd.Context(), fields, image))
		},
	}

	addUserFieldFlags(cmd)
	cmd.Flags().String("photo", "", "Path to the reference photo (required)")
	return cmd
}

func newUsersUpdateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a user's fields",
		Long:  `Sends every field; omitted flags are not kept from the current record.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := userFieldsFromFlags(cmd)
			if err != nil {
				return err
			}
			return a.render(cmd, a.session.UpdateUser(cmd.Context(), args[0], fields))
		},
	}

	addUserFieldFlags(cmd)
	return cmd
}
