package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/palettemap/internal/colour"
	"github.com/jmylchreest/palettemap/internal/palette"
)

// Output formats of "schemes show".
const (
	formatJSON = "json"
	formatWire = "wire"
	formatHex  = "hex"
	formatPal  = "pal"
)

func newSchemesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "List and show built-in colour schemes",
		Long:  `Inspect the built-in base16 (16 colour) and base24 (24 colour) schemes.`,
	}

	cmd.AddCommand(newSchemesListCmd(a))
	cmd.AddCommand(newSchemesShowCmd(a))

	return cmd
}

func newSchemesListCmd(a *app) *cobra.Command {
	var (
		family familyValue
		long   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List built-in scheme names",
		Long: `List built-in scheme names in lexicographic order.

Without --family, names are prefixed with their family ("base16/dracula").`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			qualify := family == ""

			if !long {
				for _, f := range family.families() {
					for _, name := range palette.BuiltinNames(f) {
						if qualify {
							name = string(f) + "/" + name
						}
						if _, err := fmt.Fprintln(out, name); err != nil {
							return err
						}
					}
				}
				return nil
			}

			swatches := a.interactive(out)
			table := NewTable("FAMILY", "NAME", "COLOURS", "PREVIEW")
			for _, f := range family.families() {
				for _, name := range palette.BuiltinNames(f) {
					p, err := palette.Builtin(f, name)
					if err != nil {
						return err
					}
					table.AddRow(string(f), name, strconv.Itoa(p.Len()), swatchStrip(p, swatches))
				}
			}
			return table.Render(out)
		},
	}
	cmd.Flags().VarP(&family, "family", "f", "only list one family (base16, base24)")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "show a table with colour previews")
	_ = cmd.RegisterFlagCompletionFunc("family", completeFamilies)

	return cmd
}

func newSchemesShowCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "show <family> <name>",
		Short: "Print a built-in scheme",
		Long: `Print a built-in scheme as a palette that "map --palette" accepts.

Formats:
  json  hex strings, e.g. ["#181818", ...] (default)
  wire  integer arrays, e.g. [[24,24,24], ...]
  hex   one colour per line with an index and terminal swatch
  pal   RIFF palette (requires --output)`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return completeFamilies(cmd, args, toComplete)
			case 1:
				if f, err := palette.ParseFamily(args[0]); err == nil {
					return completeSchemes(f)(cmd, args, toComplete)
				}
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := palette.ParseFamily(args[0])
			if err != nil {
				return err
			}
			p, err := palette.Builtin(f, args[1])
			if err != nil {
				return err
			}

			write, err := schemeWriter(format, output != "")
			if err != nil {
				return err
			}
			if output == "" {
				return write(cmd.OutOrStdout(), p, a.interactive(cmd.OutOrStdout()))
			}

			file, err := os.Create(output) // #nosec G304 - User-specified output path
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			writeErr := write(file, p, false)
			closeErr := file.Close()
			if writeErr != nil {
				return fmt.Errorf("failed to write %s: %w", output, writeErr)
			}
			if closeErr != nil {
				return fmt.Errorf("failed to close %s: %w", output, closeErr)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format (json, wire, hex, pal)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{formatJSON, formatWire, formatHex, formatPal}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// schemeWriter returns the writer for a show format. toFile reports whether
// the output goes to a file; the binary pal format requires one.
func schemeWriter(format string, toFile bool) (func(io.Writer, *palette.Palette, bool) error, error) {
	switch format {
	case formatJSON:
		return func(w io.Writer, p *palette.Palette, _ bool) error {
			return writeJSON(w, p)
		}, nil
	case formatWire:
		return func(w io.Writer, p *palette.Palette, _ bool) error {
			_, err := fmt.Fprintf(w, "%s\n", p.JSON())
			return err
		}, nil
	case formatHex:
		return writeHex, nil
	case formatPal:
		if !toFile {
			return nil, fmt.Errorf("the pal format is binary and requires --output")
		}
		return func(w io.Writer, p *palette.Palette, _ bool) error {
			_, err := p.WriteRIFF(w)
			return err
		}, nil
	default:
		return nil, fmt.Errorf("invalid format %q (valid: %s, %s, %s, %s)", format, formatJSON, formatWire, formatHex, formatPal)
	}
}

// writeHex prints one "index hex" line per colour, with a swatch when decorated.
func writeHex(w io.Writer, p *palette.Palette, swatches bool) error {
	for i, c := range p.All() {
		line := fmt.Sprintf("%2d  %s", i, c.Hex())
		if swatches {
			line += "  " + colour.PreviewWithText(c, c.Hex(), 9)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// swatchStrip renders one small block per colour, or nothing when undecorated.
func swatchStrip(p *palette.Palette, swatches bool) string {
	if !swatches {
		return ""
	}
	strip := ""
	for _, c := range p.All() {
		strip += colour.Preview(c, 1)
	}
	return strip
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
