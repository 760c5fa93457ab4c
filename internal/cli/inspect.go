package cli

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"noodler/internal/automaton"
	"noodler/internal/dslfile"
	"noodler/internal/equation"
	"noodler/internal/registry"
	"noodler/internal/segmentation"
)

// newInspectCommand prints segmentation and registry statistics for the
// seamed product automaton of an equation file, without noodlifying it.
func newInspectCommand(logger *zap.Logger, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <equation-file>",
		Short: "report segmentation/registry statistics without noodlifying",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, logger, v, args[0])
		},
	}
	return cmd
}

func runInspect(cmd *cobra.Command, logger *zap.Logger, v *viper.Viper, path string) error {
	diag := newDiagnostics(os.Stdout.Fd())

	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "noodler inspect: read %s", path)
	}

	spec, err := dslfile.Parse(string(src))
	if err != nil {
		diag.fail.Fprintln(cmd.ErrOrStderr(), "malformed equation file:", err)
		return err
	}

	compiled, err := dslfile.Compile(spec)
	if err != nil {
		diag.fail.Fprintln(cmd.ErrOrStderr(), "equation compile failed:", err)
		return err
	}

	driver := equation.Driver{Logger: logger}
	cfg := cfgFromViper(v)
	product, eps, _, ok := driver.BuildProduct(compiled.LHS, compiled.RHS, cfg, cfg.NormalizedReduce() != "")
	if !ok {
		diag.warn.Fprintln(cmd.OutOrStdout(), "equation short-circuits: empty LHS or RHS accepts no word")
		return nil
	}
	if automaton.IsLangEmpty(product) {
		diag.warn.Fprintln(cmd.OutOrStdout(), "product language is empty")
		return nil
	}

	seg, err := segmentation.New(product, eps)
	if err != nil {
		diag.fail.Fprintln(cmd.ErrOrStderr(), "malformed segmentation:", err)
		return err
	}

	reg := registry.Build(seg, v.GetBool("include-empty"), product.NumStates())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "states: %d\n", product.NumStates())
	fmt.Fprintf(out, "segments: %d (depth %d)\n", len(seg.Segments()), seg.Depth())
	for i, depth := range seg.EpsilonDepths() {
		fmt.Fprintf(out, "  depth %d: %d epsilon transition(s)\n", i, len(depth))
	}
	fmt.Fprintf(out, "registry entries: %d\n", reg.Len())
	return nil
}
