package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/palettemap/internal/colour"
	"github.com/jmylchreest/palettemap/internal/compression"
	"github.com/jmylchreest/palettemap/internal/config"
	"github.com/jmylchreest/palettemap/internal/image"
	"github.com/jmylchreest/palettemap/internal/mapper"
	"github.com/jmylchreest/palettemap/internal/palette"
)

// Output path placeholders. The output is always PNG, so {ext} is "png";
// {name} is the input file name without its extension.
const (
	extPlaceholder  = "{ext}"
	namePlaceholder = "{name}"
)

// stdoutPath as the output writes the PNG to stdout.
const stdoutPath = "-"

// mapOptions holds the map command flags.
type mapOptions struct {
	palettePath string
	base16      string
	base24      string
	algorithm   algorithmValue
	output      string
	workers     int
	maxPixels   int64
	compression string
}

func newMapCmd(a *app) *cobra.Command {
	o := &mapOptions{algorithm: algorithmValue(colour.DefaultAlgorithm)}

	cmd := &cobra.Command{
		Use:   "map <image>",
		Short: "Map an image onto a palette",
		Long: `Map every pixel of an image onto the nearest colour of a palette.

The palette is read from a file (--palette) or taken from a built-in scheme
(--base16 or --base24). Palette files are JSON arrays of [r,g,b], [r,g,b,a]
or "#rrggbb[aa]" entries, or RIFF .pal files. Input images and palette files
may be compressed with gzip, xz, bzip2 or zip.

Pixel alpha is preserved. The output is always PNG; "{ext}" in the output
path becomes "png" and "{name}" becomes the input file name without its
extension. Images declaring more than --max-pixels pixels are rejected
before they are decoded.

Examples:
  # Map a wallpaper onto a palette file
  palettemap map wallpaper.jpg --palette palette.json

  # Use a built-in scheme and a perceptual distance
  palettemap map wallpaper.jpg --base16 gruvbox-dark-hard --algorithm CIE76

  # Write next to the input name without step output
  palettemap map photo.jpg --base24 dracula -o '{name}-dracula.{ext}' --non-interactive`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: completeImages,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(cmd, a, o, args[0])
		},
	}

	cmd.Flags().StringVarP(&o.palettePath, "palette", "p", "", "palette file (.json or .pal)")
	cmd.Flags().StringVar(&o.base16, "base16", "", "use a built-in base16 scheme")
	cmd.Flags().StringVar(&o.base24, "base24", "", "use a built-in base24 scheme")
	cmd.Flags().VarP(&o.algorithm, "algorithm", "a",
		"distance algorithm ("+strings.Join(colour.AlgorithmNames(), ", ")+"; also "+config.EnvAlgorithm+")")
	cmd.Flags().StringVarP(&o.output, "output", "o", config.DefaultOutput,
		`output path ("{ext}" becomes png, "{name}" the input name, "-" writes to stdout)`)
	cmd.Flags().IntVarP(&o.workers, "workers", "w", 0, "colour resolution workers (0 uses all CPUs)")
	cmd.Flags().Int64Var(&o.maxPixels, "max-pixels", image.DefaultMaxPixels,
		"largest accepted image in pixels (also "+config.EnvMaxPixels+")")
	cmd.Flags().StringVar(&o.compression, "compression", "default",
		"PNG compression ("+strings.Join(config.CompressionNames(), ", ")+")")

	cmd.MarkFlagsMutuallyExclusive("palette", "base16", "base24")
	cmd.MarkFlagsOneRequired("palette", "base16", "base24")

	_ = cmd.RegisterFlagCompletionFunc("algorithm", completeAlgorithms)
	_ = cmd.RegisterFlagCompletionFunc("base16", completeSchemes(palette.Base16))
	_ = cmd.RegisterFlagCompletionFunc("base24", completeSchemes(palette.Base24))

	return cmd
}

// settings merges changed flags over the environment configuration.
func (o *mapOptions) settings(cmd *cobra.Command, base config.Config) (config.Config, error) {
	cfg := base
	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		cfg.Algorithm = colour.Algorithm(o.algorithm)
	}
	if flags.Changed("output") {
		cfg.Output = o.output
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("max-pixels") {
		cfg.MaxPixels = o.maxPixels
	}
	if flags.Changed("compression") {
		cfg.Compression = o.compression
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runMap executes the map command.
func runMap(cmd *cobra.Command, a *app, o *mapOptions, inputPath string) (err error) {
	cfg, err := o.settings(cmd, *a.config)
	if err != nil {
		return err
	}

	toStdout := cfg.Output == stdoutPath
	stepOut := cmd.ErrOrStderr()
	s := newSteps(stepOut, a.logger, a.interactive(stepOut),
		"Loading palette", "Loading image", "Converting image", "Saving image")
	defer func() {
		if err != nil {
			s.Fail()
		}
	}()

	s.Next()
	p, err := o.loadPalette(cfg.MaxInputBytes)
	if err != nil {
		return err
	}
	a.logger.Debug("palette loaded", "id", p.ID(), "colours", p.Len())

	s.Next()
	if !image.IsImageFile(inputPath) {
		a.logger.Debug("unrecognised image extension, detecting format from content", "path", inputPath)
	}
	data, inputName, err := image.NewFileLoader(cfg.MaxInputBytes).Load(inputPath)
	if err != nil {
		return err
	}
	a.logger.Debug("image loaded", "path", inputPath, "bytes", len(data))

	s.Next()
	out, err := mapper.MapImage(data, p, string(cfg.Algorithm),
		mapper.WithWorkers(cfg.Workers),
		mapper.WithMaxPixels(cfg.MaxPixels),
		mapper.WithPNGCompression(cfg.PNGCompression()),
		mapper.WithProgress(func(ev mapper.Event) {
			switch ev.Step {
			case mapper.StepDecode:
				a.logger.Debug("decoded", "format", ev.Format, "width", ev.Width, "height", ev.Height, "elapsed", ev.Elapsed)
			case mapper.StepResolve:
				a.logger.Debug("resolved", "distinct_colours", ev.DistinctColors, "algorithm", cfg.Algorithm, "elapsed", ev.Elapsed)
			default:
				a.logger.Debug(string(ev.Step), "elapsed", ev.Elapsed)
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to map image: %w", err)
	}

	s.Next()
	if toStdout {
		if _, err := cmd.OutOrStdout().Write(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		s.Done()
		return nil
	}

	outPath := outputPath(cfg.Output, inputName)
	if err := os.WriteFile(outPath, out, 0o644); err != nil { // #nosec G306 - output image is not sensitive
		return fmt.Errorf("failed to write output: %w", err)
	}
	s.Done()

	a.logger.Info("wrote image", "path", outPath, "bytes", len(out))
	return nil
}

// loadPalette returns the palette selected by the flags.
func (o *mapOptions) loadPalette(maxBytes int64) (*palette.Palette, error) {
	switch {
	case o.base16 != "":
		return mapper.LookupPalette(string(palette.Base16), o.base16)
	case o.base24 != "":
		return mapper.LookupPalette(string(palette.Base24), o.base24)
	default:
		return readPaletteFile(o.palettePath, maxBytes)
	}
}

// readPaletteFile reads a JSON or RIFF palette, choosing the format by
// extension and falling back to content sniffing when there is none.
func readPaletteFile(path string, maxBytes int64) (*palette.Palette, error) {
	data, name, err := compression.ReadFile(path, maxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = ".json"
		if bytes.HasPrefix(data, []byte("RIFF")) {
			ext = ".pal"
		}
	}

	var p *palette.Palette
	switch ext {
	case ".json":
		p, err = palette.Parse(data)
	case ".pal":
		p, err = palette.ReadRIFF(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: unsupported palette format %q (supported: .json, .pal)", mapper.ErrPalette, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", mapper.ErrPalette, path, err)
	}
	return p, nil
}

// outputPath expands the placeholders of pattern. {ext} is always "png"
// because the output is always PNG; {name} is inputName without its extension.
func outputPath(pattern, inputName string) string {
	base := filepath.Base(inputName)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." {
		name = "output"
	}
	return strings.NewReplacer(extPlaceholder, "png", namePlaceholder, name).Replace(pattern)
}
