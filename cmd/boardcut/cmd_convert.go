package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoardCut/internal/units"
)

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <value> <from> <to>",
		Short: "Convert a length between units",
		Long: `Converts a length between inches, feet, meters and centimeters.
The value is also shown in feet and inches.

Examples:
  boardcut convert 2.4 m ft
  boardcut convert 96 in cm`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q", args[0])
			}
			from, err := units.Canonical(args[1])
			if err != nil {
				return err
			}
			to, err := units.Canonical(args[2])
			if err != nil {
				return err
			}

			result, err := units.Convert(value, string(from), string(to))
			if err != nil {
				return err
			}
			in, err := units.ToInches(value, string(from))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s (%s)\n",
				number(value), from, strconv.FormatFloat(result, 'f', 4, 64), to, units.FormatFeetAndInches(in))
			return nil
		},
	}
}
