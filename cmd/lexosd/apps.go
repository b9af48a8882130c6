package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/LexOS/backend/internal/domain/catalog"
)

func newAppsCmd() *cobra.Command {
	var (
		catalogGlob string
		category    string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "apps [query]",
		Short: "Print the resolved app catalog",
		Long: `Print the launcher catalog: the built-in apps plus any manifests
matched by --catalog (or CATALOG_GLOB). The optional query matches
title, id or category.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("catalog") {
				catalogGlob = os.Getenv("CATALOG_GLOB")
			}

			apps, err := catalog.Build(catalogGlob)
			if err != nil {
				return err
			}

			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			entries := inCategory(apps.Search(query), category)

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := sonic.MarshalIndent(entries, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tKIND")
			for _, e := range entries {
				kind := e.Kind
				if kind == "" {
					kind = e.ID
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Title, e.Category, kind)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&catalogGlob, "catalog", "", "glob of extra YAML/TOML app manifests")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only apps in this category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

func inCategory(entries []catalog.Entry, category string) []catalog.Entry {
	if category == "" || category == catalog.AllCategories {
		return entries
	}
	out := entries[:0]
	for _, e := range entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}
