package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlandt/labelator/pkg/grid"
	"github.com/mlandt/labelator/pkg/labels"
	"github.com/mlandt/labelator/pkg/sheet"
)

// newSheetsCmd creates the sheets command group for inspecting
// calibrations.
func newSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "List and inspect sheet calibrations",
	}

	cmd.AddCommand(newSheetsListCmd())
	cmd.AddCommand(newSheetsShowCmd())
	cmd.AddCommand(newSheetsCheckCmd())

	return cmd
}

// newSheetsListCmd creates the "sheets list" subcommand.
func newSheetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known sheet calibrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range sheet.Names() {
				sh, _ := sheet.Named(name)
				marker := " "
				if name == sheet.Default().Name {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, sh)
			}
			printDetail("* default")
			return nil
		},
	}
}

// newSheetsShowCmd creates the "sheets show" subcommand.
func newSheetsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name-or-file]",
		Short: "Show a calibration's full geometry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := resolveSheet(args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(sh.Name))
			printKeyValue("grid", fmt.Sprintf("%d rows × %d cols (%d labels)", sh.Rows, sh.Cols, sh.Count()))
			printKeyValue("page", fmt.Sprintf("%g × %g px", sh.PageWidth, sh.PageHeight))
			printKeyValue("diameter", fmt.Sprintf("%g px", sh.Diameter))
			printKeyValue("pitch", fmt.Sprintf("%g × %g px", sh.PitchX, sh.PitchY))
			printKeyValue("margins", fmt.Sprintf("left %g px, top %g px", sh.MarginLeft, sh.MarginTop))
			printKeyValue("font size", fmt.Sprintf("%g px", sh.FontSize))
			return nil
		},
	}
}

// newSheetsCheckCmd creates the "sheets check" subcommand. It renders an
// empty sheet with circle outlines and crosshair guides so a test print
// can be held against the physical label paper.
func newSheetsCheckCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "check [name-or-file]",
		Short: "Render an alignment test page for a calibration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			sh, err := resolveSheet(name)
			if err != nil {
				return err
			}

			if output == "" {
				output = sh.Name + "-check.pdf"
			}

			err = labels.WriteFile(output, grid.Sequence(nil, grid.OrderDefault),
				labels.WithSheet(sh),
				labels.WithGuides(),
			)
			if err != nil {
				return err
			}

			printSuccess("Rendered alignment page for %s", sh.Name)
			printFile(output)
			printNextStep("Print it and hold it against the label paper", "lp "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <sheet>-check.pdf)")
	return cmd
}
