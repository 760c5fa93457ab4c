package cli

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"noodler/internal/dslfile"
	"noodler/internal/equation"
)

// newSolveCommand runs the equation driver end-to-end against an
// equation file and prints or saves the resulting AFA text.
func newSolveCommand(logger *zap.Logger, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <equation-file>",
		Short: "noodlify an equation file and emit its AFA",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, logger, v, args[0])
		},
	}
	return cmd
}

func runSolve(cmd *cobra.Command, logger *zap.Logger, v *viper.Viper, path string) error {
	diag := newDiagnostics(os.Stdout.Fd())

	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "noodler solve: read %s", path)
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

	sink := cmd.OutOrStdout()
	out := v.GetString("out")
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return errors.Wrapf(err, "noodler solve: create %s", out)
		}
		defer f.Close()
		sink = f
	}

	driver := equation.Driver{Logger: logger}
	cfg := cfgFromViper(v)
	includeEmpty := v.GetBool("include-empty")

	res, err := driver.NoodlifyForEquationOwned(cmd.Context(), compiled.LHS, compiled.RHS, compiled.Variables, includeEmpty, cfg, sink)
	if err != nil {
		diag.fail.Fprintln(cmd.ErrOrStderr(), "solve failed:", err)
		return err
	}

	if !res.Emitted {
		diag.warn.Fprintln(cmd.ErrOrStderr(), "product language is empty: no AFA emitted")
		return nil
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "noodler: %d noodle(s) enumerated\n", len(res.Noodles))
	return nil
}
