package cli

import (
	"fmt"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newFormatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List export formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(app.Exports.Formats()))
			for _, name := range app.Exports.Formats() {
				info, err := app.Exports.Describe(name)
				if err != nil {
					return err
				}
				rows = append(rows, []string{info.Name, "." + info.Extension, formatter.Dim(info.ContentType)})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"FORMAT", "EXTENSION", "CONTENT TYPE"}, rows))
			return nil
		},
	}
}
