package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/samdwyer/meiro/internal/tile"
	"github.com/samdwyer/meiro/internal/ui"
	"github.com/samdwyer/meiro/internal/world"
)

func newViewCmd() *cobra.Command {
	var opts floorOpts

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse generated floors in the terminal",
		Long: `Opens an interactive viewer.

Keys:
  r          generate a new floor
  c, Tab     cycle the tile classification
  arrows     scroll
  q, Esc     quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
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

			seed := cfg.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			screen, err := ui.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			return ui.NewViewer(screen, d, palette, seed).Run(cmd.Context())
		},
	}

	addFloorFlags(cmd, &opts)
	return cmd
}
