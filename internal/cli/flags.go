package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/palettemap/internal/colour"
	"github.com/jmylchreest/palettemap/internal/image"
	"github.com/jmylchreest/palettemap/internal/palette"
)

// algorithmValue is a pflag.Value accepting distance algorithm names.
type algorithmValue colour.Algorithm

var _ pflag.Value = (*algorithmValue)(nil)

func (v *algorithmValue) String() string {
	return string(*v)
}

func (v *algorithmValue) Set(s string) error {
	alg, err := colour.ParseAlgorithm(s)
	if err != nil {
		return err
	}
	*v = algorithmValue(alg)
	return nil
}

func (v *algorithmValue) Type() string {
	return "algorithm"
}

// familyValue is a pflag.Value accepting scheme family names.
// The empty value means every family.
type familyValue palette.Family

var _ pflag.Value = (*familyValue)(nil)

func (v *familyValue) String() string {
	return string(*v)
}

func (v *familyValue) Set(s string) error {
	f, err := palette.ParseFamily(s)
	if err != nil {
		return err
	}
	*v = familyValue(f)
	return nil
}

func (v *familyValue) Type() string {
	return "family"
}

// families returns the selected family, or all families when unset.
func (v *familyValue) families() []palette.Family {
	if *v == "" {
		return palette.Families()
	}
	return []palette.Family{palette.Family(*v)}
}

func completeAlgorithms(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return colour.AlgorithmNames(), cobra.ShellCompDirectiveNoFileComp
}

// completeImages completes the single image argument with image files,
// plain or compressed.
func completeImages(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var exts []string
	for _, ext := range image.SupportedImageExtensions() {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	exts = append(exts, "gz", "xz", "bz2", "zip")
	return exts, cobra.ShellCompDirectiveFilterFileExt
}

func completeFamilies(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, f := range palette.Families() {
		names = append(names, string(f))
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeSchemes completes built-in scheme names of one family.
func completeSchemes(family palette.Family) cobra.CompletionFunc {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, name := range palette.BuiltinNames(family) {
			if strings.HasPrefix(name, toComplete) {
				names = append(names, name)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
