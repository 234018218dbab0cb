package main

import (
	"fmt"
	"text/tabwriter"

	"carx-store/client"
	"carx-store/store"

	"github.com/spf13/cobra"
)

func newProductsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List and import catalog products",
	}
	cmd.AddCommand(newProductsListCmd(opts), newProductsImportCmd(opts))
	return cmd
}

func newProductsListCmd(opts *rootOptions) *cobra.Command {
	var q client.ProductQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context()
			defer cancel()
			products, err := opts.client().Products(ctx, q)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tPREMIUM")
			for _, p := range products {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%t\n", p.ID, p.Name, p.Category, p.Price, p.IsPremium)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "name substring")
	cmd.Flags().StringVar(&q.Category, "category", "", "category")
	cmd.Flags().BoolVar(&q.Premium, "premium", false, "premium products only")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "maximum number of products")
	return cmd
}

func newProductsImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create products from a CSV or YAML catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := store.LoadProductsFile(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := opts.context()
			defer cancel()
			c := opts.client()
			created := 0
			for _, p := range products {
				p.ID = ""
				if _, err := c.CreateProduct(ctx, p); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipped %q: %v\n", p.Name, err)
					continue
				}
				created++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d products\n", created, len(products))
			return nil
		},
	}
}
