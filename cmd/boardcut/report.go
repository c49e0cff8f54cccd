package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/units"
)

// writeCutSheet prints a plan grouped by physical board.
func writeCutSheet(w io.Writer, result model.PlanResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, p := range result.Pieces {
		if !p.Used() {
			continue
		}
		fmt.Fprintf(tw, "Board %d\t%s\t%s in\n", p.PieceID+1, boardName(p.Board), inches(p.StartInches))
		for i, a := range result.AssignmentsForPiece(p) {
			fmt.Fprintf(tw, "  %d.\t%s\t%s in\t(%s %s)\n", i+1, cutName(a.Cut), inches(a.CutLengthInches), number(a.Cut.Length), a.Cut.Unit)
		}
		if p.KerfInches > 0 {
			fmt.Fprintf(tw, "  kerf\t\t%s in\n", inches(p.KerfInches))
		}
		fmt.Fprintf(tw, "  leftover\t\t%s in\n", inches(p.RemainingInches))
	}

	if len(result.RemainingBoards) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Remaining boards:")
		for _, r := range result.RemainingBoards {
			fmt.Fprintf(tw, "  %s\t%s in\t%s\n", boardLabel(r.Label), inches(r.Length), units.FormatFeetAndInches(r.Length))
		}
	}

	if len(result.UnsatisfiedCuts) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Cuts that did not fit:")
		for _, c := range result.UnsatisfiedCuts {
			fmt.Fprintf(tw, "  %s\t%s %s\n", cutName(c), number(c.Length), c.Unit)
		}
	}

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Boards used:\t%d\n", result.BoardsUsed())
	fmt.Fprintf(tw, "Total waste:\t%s\n", result.TotalWasteFormatted())
	if result.TotalKerfInches > 0 {
		fmt.Fprintf(tw, "Total kerf:\t%s in\n", inches(result.TotalKerfInches))
	}
	fmt.Fprintf(tw, "Efficiency:\t%.1f%%\n", result.Efficiency())
	fmt.Fprintln(tw, result.Message)

	return tw.Flush()
}

func boardName(b model.BoardSpec) string {
	if b.Label != "" {
		return b.Label
	}
	return fmt.Sprintf("%s %s", number(b.Length), b.Unit)
}

func boardLabel(label string) string {
	if label == "" {
		return "Board"
	}
	return label
}

func cutName(c model.CutSpec) string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprintf("Cut %d", c.ID)
}

// inches renders a length rounded to hundredths without trailing zeros.
func inches(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
