package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/qnl/chipsmith/internal/design"
	"github.com/qnl/chipsmith/internal/library"
	"github.com/qnl/chipsmith/internal/units"
)

var (
	flagSet     []string
	flagCopies  int
	flagByID    int
	flagConfirm bool
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List component template classes",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, class := range library.Classes() {
			tpl, err := library.Lookup(class)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", class, tpl.Description)
		}
		return nil
	},
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults <class>",
	Short: "Print a template's default options",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := library.Defaults(args[0])
		if err != nil {
			return err
		}
		for _, o := range defaults {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", o.Key, o.Value)
		}
		return nil
	},
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the design's components",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDesign(cmd.Context(), func(ctx context.Context, env *env, d *design.Design) error {
			if d.Len() == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "design %q is empty\n", d.Name)
				return nil
			}
			for _, c := range d.Components() {
				fmt.Fprintf(cmd.OutOrStdout(), "#%-4d %-20s %s\n", c.ID, c.Name, c.Class)
			}
			return nil
		})
	},
}

var designsCmd = &cobra.Command{
	Use:   "designs",
	Short: "List persisted designs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd.Context(), func(ctx context.Context, env *env) error {
			infos, err := env.designs.List(ctx)
			if err != nil {
				return err
			}
			for _, info := range infos {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %3d component(s)  %s\n",
					info.Name, info.Components, info.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create an empty design",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd.Context(), func(ctx context.Context, env *env) error {
			d, err := env.designs.Create(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created design %q\n", d.Name)
			return nil
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add <class> [name]",
	Short: "Add a component from a template",
	Long:  "Add a component. Omitting the name auto-generates one from the template short name.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 2 {
			name = args[1]
		}
		overrides, err := parsePairs(flagSet)
		if err != nil {
			return err
		}
		return withDesign(cmd.Context(), func(ctx context.Context, env *env, d *design.Design) error {
			c, err := d.Add(args[0], name, overrides)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (#%d)\n", c.Name, c.ID)
			return nil
		})
	},
}

var setCmd = &cobra.Command{
	Use:   "set <name|id> <key=value>...",
	Short: "Mutate a component's options",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, err := parsePairs(args[1:])
		if err != nil {
			return err
		}
		return withDesign(cmd.Context(), func(ctx context.Context, env *env, d *design.Design) error {
			c, err := resolve(d, args[0])
			if err != nil {
				return err
			}
			for k, v := range pairs {
				if err := d.SetOption(c.ID, k, v); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy <name|id> [newname]",
	Short: "Copy a component",
	Long: `Copy a component, optionally several times. With --copies N the copies are
auto-named and the --set overrides apply to each one.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides, err := parsePairs(flagSet)
		if err != nil {
			return err
		}
		return withDesign(cmd.Context(), func(ctx context.Context, env *env, d *design.Design) error {
			src, err := resolve(d, args[0])
			if err != nil {
				return err
			}
			if flagCopies > 1 {
				if len(args) == 2 {
					return fmt.Errorf("--copies and an explicit name are mutually exclusive")
				}
				specs := make([]design.CopySpec, flagCopies)
				for i := range specs {
					specs[i] = design.CopySpec{Overrides: overrides}
				}
				copies, err := d.CopyN(src.ID, specs)
				if err != nil {
					return err
				}
				for _, c := range copies {
					fmt.Fprintf(cmd.OutOrStdout(), "copied to %s (#%d)\n", c.Name, c.ID)
				}
				return nil
			}
			name := ""
			if len(args) == 2 {
				name = args[1]
			}
			c, err := d.Copy(src.ID, name, overrides)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "copied to %s (#%d)\n", c.Name, c.ID)
			return nil
		})
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm [name]",
	Short: "Delete a component",
	Long: `Delete a component by name, refusing while other components depend on it.
--id N deletes unconditionally, severing any dependency edges.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagByID == 0 && len(args) == 0 {
			return fmt.Errorf("a name or --id is required")
		}
		return withDesign(cmd.Context(), func(ctx context.Context, env *env, d *design.Design) error {
			if flagByID != 0 {
				return d.DeleteID(flagByID)
			}
			return d.Delete(args[0])
		})
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <id> <newname>",
	Short: "Rename a component by identifier",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad id %q: %w", args[0], err)
		}
		return withDesign(cmd.Context(), func(ctx context.Context, env *env, d *design.Design) error {
			return d.Rename(id, args[1])
		})
	},
}

var overwriteCmd = &cobra.Command{
	Use:   "overwrite <on|off>",
	Short: "Toggle replace-on-name-collision for the design",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var on bool
		switch args[0] {
		case "on":
			on = true
		case "off":
		default:
			return fmt.Errorf("expected on or off, got %q", args[0])
		}
		return withDesign(cmd.Context(), func(ctx context.Context, env *env, d *design.Design) error {
			d.EnableOverwrite(on)
			return nil
		})
	},
}

var positionCmd = &cobra.Command{
	Use:   "position <name|id> <node> <x> <y>",
	Short: "Move a component so a node lands at (x, y)",
	Long: `Move a component so the named node (origin, top, bottom, left, right)
lands at the given coordinates. Coordinates accept unit suffixes ("2mm").`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := units.Parse(args[2])
		if err != nil {
			return err
		}
		y, err := units.Parse(args[3])
		if err != nil {
			return err
		}
		return withDesign(cmd.Context(), func(ctx context.Context, env *env, d *design.Design) error {
			c, err := resolve(d, args[0])
			if err != nil {
				return err
			}
			return d.Position(c.ID, args[1], x, y)
		})
	},
}

var dependCmd = &cobra.Command{
	Use:   "depend <dependent> <dependency>",
	Short: "Record that one component depends on another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDesign(cmd.Context(), func(ctx context.Context, env *env, d *design.Design) error {
			from, err := resolve(d, args[0])
			if err != nil {
				return err
			}
			to, err := resolve(d, args[1])
			if err != nil {
				return err
			}
			return d.AddDependency(from.ID, to.ID)
		})
	},
}

func init() {
	addCmd.Flags().StringArrayVar(&flagSet, "set", nil, "option override key=value (repeatable)")
	copyCmd.Flags().StringArrayVar(&flagSet, "set", nil, "option override key=value (repeatable)")
	copyCmd.Flags().IntVar(&flagCopies, "copies", 1, "number of auto-named copies")
	rmCmd.Flags().IntVar(&flagByID, "id", 0, "delete by identifier, bypassing dependency checks")

	rootCmd.AddCommand(newCmd, classesCmd, defaultsCmd, lsCmd, designsCmd, addCmd, setCmd,
		copyCmd, rmCmd, renameCmd, overwriteCmd, positionCmd, dependCmd)
}
