package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newAncestorsCmd(g *globalFlags) *cobra.Command {
	var maxGen int
	cmd := &cobra.Command{
		Use:   "ancestors <animal-id>",
		Short: "Print an animal's ancestors generation by generation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := g.open(cmd.Context(), "")
			if err != nil {
				return err
			}
			defer b.Close()

			rows, err := b.Ancestors(cmd.Context(), args[0], maxGen)
			if err != nil {
				return err
			}
			if g.jsonOutput {
				return printJSON(cmd.OutOrStdout(), rows)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
			fmt.Fprintln(tw, "GEN\tRELATION\tID\tNAME\tBORN")
			for _, r := range rows {
				born := "-"
				if r.BirthDate != nil {
					born = r.BirthDate.Format("2006-01-02")
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.Generation, r.Label, r.ID, r.Name, born)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&maxGen, "max-generation", 0, "deepest generation to print (0 = all)")
	return cmd
}

func newRegisterCmd(g *globalFlags, defaultPrefix string) *cobra.Command {
	var (
		prefix string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "register <root-id>",
		Short: "Recompute lineage registration codes below a root animal",
		Long: `Assigns PREFIX-GG-SSS codes to the root (generation 00) and every descendant.
Only differences are written: new or changed codes, and same-prefix codes
no longer produced by the recomputation are cleared.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := g.open(cmd.Context(), defaultPrefix)
			if err != nil {
				return err
			}
			defer b.Close()

			res, err := b.Registrations(cmd.Context(), args[0], prefix, !dryRun)
			if err != nil {
				return err
			}
			if g.jsonOutput {
				return printJSON(cmd.OutOrStdout(), res)
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCODE")
			for _, a := range res.Assignments {
				fmt.Fprintf(tw, "%s\t%s\n", a.AnimalID, a.Code)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			verb := "applied"
			if !res.Applied {
				verb = "dry run"
			}
			fmt.Fprintf(out, "\n%s: prefix %s, %d assigned, %d set, %d cleared\n", verb, res.Prefix, len(res.Assignments), res.Set, res.Cleared)
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "lineage prefix (default LINEAGE_PREFIX)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute changes without writing them")
	return cmd
}

func newCompatCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "compat <animal-a> <animal-b>",
		Short: "Score breeding compatibility between two animals",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := g.open(cmd.Context(), "")
			if err != nil {
				return err
			}
			defer b.Close()

			v, err := b.Compatibility(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if g.jsonOutput {
				return printJSON(cmd.OutOrStdout(), v)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d/100  %s\n", v.Score, v.Label)
			fmt.Fprintf(out, "breeding: %s (%s risk)\n", v.Breeding.Type, v.Breeding.RiskLevel)
			fmt.Fprintf(out, "breakdown: genetic=%d breed=%d health=%d color=%d age=%d\n",
				v.Breakdown.GeneticRisk, v.Breakdown.Breed, v.Breakdown.Health, v.Breakdown.Color, v.Breakdown.Age)
			for _, w := range v.Breeding.Warnings {
				fmt.Fprintf(out, "  ! %s\n", w)
			}
			if strings.TrimSpace(v.Advice) != "" {
				fmt.Fprintf(out, "advice: %s\n", v.Advice)
			}
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
