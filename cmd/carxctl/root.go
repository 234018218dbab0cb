package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"carx-store/client"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	server  string
	token   string
	timeout time.Duration
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.server, client.WithToken(o.token))
}

func (o *rootOptions) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "carxctl",
		Short:        "Manage a CarX store from the command line",
		SilenceUsage: true,
	}

	server := os.Getenv("CARX_SERVER")
	if server == "" {
		server = "http://localhost:8000"
	}
	cmd.PersistentFlags().StringVar(&opts.server, "server", server, "API base URL (env CARX_SERVER)")
	cmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("CARX_TOKEN"), "bearer token (env CARX_TOKEN)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "request timeout")

	cmd.AddCommand(
		newLoginCmd(opts),
		newProductsCmd(opts),
		newUsersCmd(opts),
		newDashboardCmd(opts),
	)
	return cmd
}

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a token for --token or CARX_TOKEN",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context()
			defer cancel()
			auth, err := opts.client().Login(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), auth.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print the admin dashboard as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context()
			defer cancel()
			dash, err := opts.client().Dashboard(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dash)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
