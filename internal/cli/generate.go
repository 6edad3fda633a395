package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/samdwyer/meiro/internal/render"
	"github.com/samdwyer/meiro/internal/tile"
	"github.com/samdwyer/meiro/internal/world"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	floor floorOpts
	color bool // color tiles with the palette
}

func newGenerateCmd() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a floor and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, &opts)
		},
	}

	addFloorFlags(cmd, &opts.floor)
	cmd.Flags().BoolVar(&opts.color, "color", false, "color the map with the tile palette")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOpts) error {
	ctx := cmd.Context()
	logger := log.FromContext(ctx)

	cfg, err := opts.floor.resolve(cmd)
	if err != nil {
		return err
	}
	palette, err := tile.LoadPalette()
	if err != nil {
		return fmt.Errorf("load palette: %w", err)
	}
	d, err := world.NewDungeon(cfg, tile.NewRegistry(palette))
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	f, err := d.GenerateFloor(ctx)
	if err != nil {
		return err
	}

	if err := writeFloor(cmd.OutOrStdout(), f, palette, opts.color); err != nil {
		return err
	}
	prog.done("floor generated",
		"seed", f.Seed(),
		"rooms", len(f.Rooms()),
		"mode", f.Mode(),
		"fingerprint", fmt.Sprintf("%016x", f.Fingerprint()),
	)
	return nil
}

func writeFloor(w io.Writer, f *world.Floor, p *tile.Palette, color bool) error {
	out := render.Text(f)
	if color {
		out = render.Styled(f, p)
	}
	_, err := io.WriteString(w, out)
	return err
}
