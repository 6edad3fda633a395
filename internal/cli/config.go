package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/samdwyer/meiro/internal/world"
)

// floorOpts holds the generation flags shared by generate and view.
type floorOpts struct {
	configPath string
	cfg        world.Config
}

// addFloorFlags registers the generation flags on cmd. Flag defaults come
// from world.DefaultConfig; only flags the user sets override the config
// file.
func addFloorFlags(cmd *cobra.Command, opts *floorOpts) {
	opts.cfg = world.DefaultConfig()
	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "TOML file with generation options")
	f.IntVar(&opts.cfg.Width, "width", opts.cfg.Width, "floor width")
	f.IntVar(&opts.cfg.Height, "height", opts.cfg.Height, "floor height")
	f.IntVar(&opts.cfg.MinRoomNumber, "min-rooms", opts.cfg.MinRoomNumber, "minimum number of rooms")
	f.IntVar(&opts.cfg.MaxRoomNumber, "max-rooms", opts.cfg.MaxRoomNumber, "maximum number of rooms")
	f.IntVar(&opts.cfg.MinRoomWidth, "min-room-width", opts.cfg.MinRoomWidth, "minimum room width")
	f.IntVar(&opts.cfg.MinRoomHeight, "min-room-height", opts.cfg.MinRoomHeight, "minimum room height")
	f.IntVar(&opts.cfg.MaxRoomWidth, "max-room-width", opts.cfg.MaxRoomWidth, "maximum room width")
	f.IntVar(&opts.cfg.MaxRoomHeight, "max-room-height", opts.cfg.MaxRoomHeight, "maximum room height")
	f.Float64Var(&opts.cfg.BlockSplitFactor, "split-factor", opts.cfg.BlockSplitFactor, "how eagerly blocks keep splitting")
	f.Int64Var(&opts.cfg.Seed, "seed", opts.cfg.Seed, "random seed (0 picks one)")
	f.StringVar(&opts.cfg.Classify, "classify", opts.cfg.Classify, "tile classification: none, rogue_like, detailed or binary")
}

// resolve merges defaults, the config file and the flags the user set, in
// that order of precedence from lowest to highest. Validation is left to
// world.NewDungeon.
func (o *floorOpts) resolve(cmd *cobra.Command) (world.Config, error) {
	if o.configPath == "" {
		return o.cfg, nil
	}

	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return world.Config{}, err
	}

	flags := cmd.Flags()
	fromFlags := o.cfg
	overlay := map[string]func(){
		"width":           func() { cfg.Width = fromFlags.Width },
		"height":          func() { cfg.Height = fromFlags.Height },
		"min-rooms":       func() { cfg.MinRoomNumber = fromFlags.MinRoomNumber },
		"max-rooms":       func() { cfg.MaxRoomNumber = fromFlags.MaxRoomNumber },
		"min-room-width":  func() { cfg.MinRoomWidth = fromFlags.MinRoomWidth },
		"min-room-height": func() { cfg.MinRoomHeight = fromFlags.MinRoomHeight },
		"max-room-width":  func() { cfg.MaxRoomWidth = fromFlags.MaxRoomWidth },
		"max-room-height": func() { cfg.MaxRoomHeight = fromFlags.MaxRoomHeight },
		"split-factor":    func() { cfg.BlockSplitFactor = fromFlags.BlockSplitFactor },
		"seed":            func() { cfg.Seed = fromFlags.Seed },
		"classify":        func() { cfg.Classify = fromFlags.Classify },
	}
	for name, apply := range overlay {
		if flags.Changed(name) {
			apply()
		}
	}
	return cfg, nil
}

// loadConfig reads a TOML file over world.DefaultConfig. Unknown keys are
// rejected.
func loadConfig(path string) (world.Config, error) {
	cfg := world.DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return world.Config{}, fmt.Errorf("%w: %s: %w", world.ErrInvalidConfig, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return world.Config{}, fmt.Errorf("%w: %s: unknown keys %s",
			world.ErrInvalidConfig, path, strings.Join(keys, ", "))
	}
	return cfg, nil
}
