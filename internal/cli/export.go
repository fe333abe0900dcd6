package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qnl/chipsmith/internal/design"
	"github.com/qnl/chipsmith/internal/service"
	"github.com/qnl/chipsmith/internal/viewer"
)

var (
	flagOut    string
	flagWidth  int
	flagHeight int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the design as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDesign(cmd.Context(), func(ctx context.Context, env *env, d *design.Design) error {
			var svc service.ExportService
			out := cmd.OutOrStdout()
			if flagOut != "" {
				f, err := os.Create(flagOut)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return svc.Export(out, d)
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a design from exported YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		var svc service.ExportService
		d, err := svc.Import(f)
		if err != nil {
			return err
		}
		return withEnv(cmd.Context(), func(ctx context.Context, env *env) error {
			if err := env.designs.Save(ctx, d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %q with %d component(s)\n", d.Name, d.Len())
			return nil
		})
	},
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Print the design's chip plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDesign(cmd.Context(), func(ctx context.Context, env *env, d *design.Design) error {
			w, h := env.cfg.Viewer.Width, env.cfg.Viewer.Height
			if flagWidth > 0 {
				w = flagWidth
			}
			if flagHeight > 0 {
				h = flagHeight
			}
			v := viewer.New(w, h)
			defer v.Close()
			if env.cfg.Viewer.AutoScale {
				if err := v.AutoScale(d); err != nil {
					return err
				}
			}
			out, err := v.Refresh(d)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all persisted designs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagConfirm {
			return fmt.Errorf("refusing without --yes")
		}
		return withEnv(cmd.Context(), func(ctx context.Context, env *env) error {
			m := &service.MaintenanceService{DB: env.db}
			return m.Reset(ctx)
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "write to file instead of stdout")
	viewCmd.Flags().IntVar(&flagWidth, "width", 0, "viewport width in characters")
	viewCmd.Flags().IntVar(&flagHeight, "height", 0, "viewport height in characters")
	resetCmd.Flags().BoolVar(&flagConfirm, "yes", false, "confirm the wipe")

	rootCmd.AddCommand(exportCmd, importCmd, viewCmd, resetCmd)
}
