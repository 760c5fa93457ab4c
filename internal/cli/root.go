// Package cli wires the noodler command tree: the flag/viper/zap/color
// plumbing shared by the solve and inspect subcommands. Grounded on
// cmd/labyrinth/main.go's argument handling, generalized from a single
// main into cobra's command tree.
package cli

import (
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"noodler/internal/config"
	"noodler/internal/equation"
)

// NewRootCommand builds the noodler command tree, logging through logger
// and reading its configuration bag from internal/config.New layered
// under the root command's persistent flags.
func NewRootCommand(logger *zap.Logger) *cobra.Command {
	v := config.New()

	root := &cobra.Command{
		Use:           "noodler",
		Short:         "noodlify ε-threaded string-equation automata into an AFA",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().String("reduce", "", "post-product reduction: forward, backward, bidirectional")
	root.PersistentFlags().String("afa-type", "bits", "AFA symbol encoding: bits or tracks")
	root.PersistentFlags().Bool("include-empty", false, "keep registry/noodle entries whose language is empty")
	root.PersistentFlags().String("out", "", "output path for the emitted AFA (default: stdout)")
	_ = v.BindPFlags(root.PersistentFlags())

	root.AddCommand(newSolveCommand(logger, v))
	root.AddCommand(newInspectCommand(logger, v))

	return root
}

// cfgFromViper reads the recognized keys out of v into an equation.Config,
// the same lookup the driver itself would do if handed v directly.
func cfgFromViper(v *viper.Viper) equation.Config {
	return equation.LoadConfig(v)
}

// diagnostics is the tty-gated colorizer pair used for non-fatal notices
// and error reporting. Piped output (isatty false) stays plain, per the
// ambient stack's "gated on go-isatty so piped output stays plain."
type diagnostics struct {
	warn *color.Color
	fail *color.Color
}

func newDiagnostics(fd uintptr) diagnostics {
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return diagnostics{warn: color.New(), fail: color.New()}
	}
	return diagnostics{
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed, color.Bold),
	}
}
