// ABOUTME: CLI commands for committing a measurement row.
// ABOUTME: One subcommand per category with a flag per slider.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/minds/internal/form"
	"github.com/harperreed/minds/internal/models"
	"github.com/spf13/cobra"
)

var (
	commitDate string
	commitTime string
)

var commitCmd = &cobra.Command{
	Use:     "commit",
	Aliases: []string{"add", "log"},
	Short:   "Save a measurement row",
	Long: `Save one row to a measurement log.

Sliders not given are recorded as 0. Values may be passed as flags or
positionally in slider order. Date and time default to now.

CATEGORIES:

  mm      mood, mania, depression, mixed_risk
  wefe    wellbeing, excite, focus, energy (sum is computed)
  cspr    calm, stress, pain, rage

EXAMPLES:

  minds commit wefe --excite 3 --energy 5       # sum 8
  minds commit wefe 0 3 0 5                     # same, positionally
  minds commit cspr --stress 7 --date 2024-03-01 --time 21:30:00
  minds commit mm --mood 6`,
}

func init() {
	for _, c := range models.AllCategories {
		commitCmd.AddCommand(newCommitCategoryCmd(c))
	}
	commitCmd.PersistentFlags().StringVar(&commitDate, "date", "", "row date (YYYY-MM-DD, default today)")
	commitCmd.PersistentFlags().StringVar(&commitTime, "time", "", "row time (HH:MM:SS, default now)")
	rootCmd.AddCommand(commitCmd)
}

func newCommitCategoryCmd(c models.Category) *cobra.Command {
	spec := models.MustSpec(c)

	names := make([]string, len(spec.Fields))
	for i, f := range spec.Fields {
		names[i] = f.ShortName()
	}

	use := string(c)
	var aliases []string
	if c == models.CategoryMentalMental {
		use = "mm"
		aliases = []string{string(c), "mental-mental"}
	}

	values := make([]int, len(spec.Fields))
	cmd := &cobra.Command{
		Use:     fmt.Sprintf("%s [%s]", use, strings.Join(names, " ")),
		Aliases: aliases,
		Short:   fmt.Sprintf("Save a %s row", spec.Title),
		Args:    cobra.MaximumNArgs(len(spec.Fields)),
		RunE: func(cmd *cobra.Command, args []string) error {
			row := make([]int, len(values))
			for i, name := range names {
				if cmd.Flags().Changed(name) {
					row[i] = values[i]
				}
			}
			for i, arg := range args {
				v, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid %s value: %s", names[i], arg)
				}
				if cmd.Flags().Changed(names[i]) {
					return fmt.Errorf("%s given both as flag and argument", names[i])
				}
				row[i] = v
			}
			return runCommit(cmd, c, row)
		},
	}
	for i, f := range spec.Fields {
		cmd.Flags().IntVar(&values[i], names[i], 0, fmt.Sprintf("%s (%d-%d)", f.Label, f.Min, f.Max))
	}
	return cmd
}

func runCommit(cmd *cobra.Command, c models.Category, values []int) error {
	f, err := form.New(c, store, form.WithLogger(logger))
	if err != nil {
		return err
	}
	spec := f.Spec()

	for i, field := range spec.Fields {
		v := values[i]
		if v < field.Min || v > field.Max {
			return fmt.Errorf("%s must be between %d and %d, got %d", field.ShortName(), field.Min, field.Max, v)
		}
		if _, err := f.SetSlider(field.Column, v); err != nil {
			return err
		}
	}
	if commitDate != "" {
		if err := f.SetDate(commitDate); err != nil {
			return err
		}
	}
	if commitTime != "" {
		if err := f.SetTime(commitTime); err != nil {
			return err
		}
	}

	e, err := f.Commit(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", spec.Table, err)
	}

	color.Green("✓ Saved %s", spec.Table)
	fmt.Printf("  %s %s %s %s\n",
		color.New(color.Faint).Sprintf("#%d", e.ID),
		e.Date, e.Time, formatValues(spec, e))
	return nil
}

// formatValues renders "name=value" pairs plus the sum when the category has one.
func formatValues(spec *models.Spec, e *models.Entry) string {
	parts := make([]string, 0, len(e.Values)+1)
	for i, v := range e.Values {
		parts = append(parts, fmt.Sprintf("%s=%d", spec.Fields[i].ShortName(), v))
	}
	if e.Summary != nil {
		parts = append(parts, fmt.Sprintf("sum=%d", *e.Summary))
	}
	return strings.Join(parts, " ")
}
