package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"aiotoolsuite/backend/internal/app"
	"aiotoolsuite/backend/internal/catalog"
	"aiotoolsuite/backend/internal/export"
	"aiotoolsuite/backend/pkg/config"
	"aiotoolsuite/backend/pkg/logger"
)

// cli carries state shared by every subcommand of one invocation
type cli struct {
	logLevel string
	suite    *app.App
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:          "toolctl",
		Short:        "Inspect the AIOToolSuite catalog and run tools",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := logger.Init(cfg.Env, c.logLevel); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			// Tools load on first use; nothing here needs them warm
			c.suite, err = app.New(cmd.Context(), cfg, logger.Named("toolctl"), app.Options{SkipWarm: true})
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.suite != nil {
				c.suite.Close()
			}
			logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		c.exportCmd(),
		c.listCmd(),
		c.categoriesCmd(),
		c.runCmd(),
	)
	return root
}

func (c *cli) exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the public tool index as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			views := c.suite.Registry.ListPublicTools()
			if out == "" || out == "-" {
				return export.Write(cmd.OutOrStdout(), views)
			}
			if err := export.WriteFile(out, views); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d tools to %s\n", len(views), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func (c *cli) listCmd() *cobra.Command {
	var (
		category string
		all      bool
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			key := catalog.Category(category)
			if key != "" && !catalog.KnownCategory(key) {
				return fmt.Errorf("unknown category: %s", category)
			}

			var views []catalog.PublicToolView
			for _, v := range c.suite.Registry.ListPublicTools() {
				if (v.IsHidden && !all) || (key != "" && v.Category != key) {
					continue
				}
				views = append(views, v)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), views)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tCATEGORY\tTITLE\tFLAGS")
			for _, v := range views {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Slug, v.Category, v.Title, flags(v))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only tools in this category")
	cmd.Flags().BoolVar(&all, "all", false, "include hidden tools")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print public views as JSON")
	return cmd
}

func flags(v catalog.PublicToolView) string {
	var f []string
	if v.IsHidden {
		f = append(f, "hidden")
	}
	if v.IsExperimental {
		f = append(f, "experimental")
	}
	if v.Plan != "" && v.Plan != catalog.PlanFree {
		f = append(f, v.Plan)
	}
	return strings.Join(f, ",")
}

func (c *cli) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Print the category index with visible tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), c.suite.Registry.BuildCategoryIndex())
		},
	}
}

func (c *cli) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <slug> [json-args|-]",
		Short: "Run a tool and print its result",
		Long: `Run a tool with a JSON argument object. Pass "-" to read the arguments
from stdin. Omitted arguments are sent as an empty object.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			switch {
			case len(args) < 2:
				raw = []byte("{}")
			case args[1] == "-":
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read arguments: %w", err)
				}
				raw = data
			default:
				raw = []byte(args[1])
			}

			result, err := c.suite.Run(cmd.Context(), args[0], json.RawMessage(raw))
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
