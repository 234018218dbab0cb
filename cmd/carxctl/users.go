package main

import (
	"fmt"
	"text/tabwriter"

	"carx-store/client"
	"carx-store/models"

	"github.com/spf13/cobra"
)

func newUsersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(newUsersListCmd(opts), newUsersBlockCmd(opts), newUsersRoleCmd(opts))
	return cmd
}

func newUsersListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context()
			defer cancel()
			users, err := opts.client().Users(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tBLOCKED\tORDERS")
			for _, u := range users {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%d\n", u.ID, u.Name, u.Email, u.Role, u.Blocked, len(u.Orders))
			}
			return tw.Flush()
		},
	}
}

func newUsersBlockCmd(opts *rootOptions) *cobra.Command {
	var unblock bool
	cmd := &cobra.Command{
		Use:   "block ID",
		Short: "Block a user (or unblock with --unblock)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blocked := !unblock
			return patchUser(cmd, opts, args[0], client.UserUpdate{Blocked: &blocked})
		},
	}
	cmd.Flags().BoolVar(&unblock, "unblock", false, "lift the block instead")
	return cmd
}

func newUsersRoleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "role ID ROLE",
		Short:     "Set a user's role to user or admin",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{models.RoleUser, models.RoleAdmin},
		RunE: func(cmd *cobra.Command, args []string) error {
			role := args[1]
			if role != models.RoleUser && role != models.RoleAdmin {
				return fmt.Errorf("role must be %q or %q", models.RoleUser, models.RoleAdmin)
			}
			return patchUser(cmd, opts, args[0], client.UserUpdate{Role: &role})
		},
	}
}

func patchUser(cmd *cobra.Command, opts *rootOptions, id string, update client.UserUpdate) error {
	ctx, cancel := opts.context()
	defer cancel()
	user, err := opts.client().PatchUser(ctx, id, update)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> role=%s blocked=%t\n", user.Name, user.Email, user.Role, user.Blocked)
	return nil
}
