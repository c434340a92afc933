package commands

import (
	"github.com/spf13/cobra"
	"go.skade.ch/crashmin/internal/app"
	"go.skade.ch/crashmin/internal/core/domain"
)

// verboser is satisfied by loggers whose threshold can be lowered at runtime.
type verboser interface {
	SetVerbose(bool)
}

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <reproducer> [-- reducer-args...]",
		Short: "Reduce a crash reproducer and synthesize a regression test",
		Long: `Reduce a crash reproducer and synthesize a regression test.

The reproducer is either the shell script clang emits next to a crash report
or a test file with embedded RUN: directives. Arguments after -- are passed
verbatim to the external reducer.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if v, ok := c.components.Logger.(verboser); ok {
				v.SetVerbose(verbose)
			}

			opts, err := c.buildOptions(cmd)
			if err != nil {
				return err
			}
			if at := cmd.ArgsLenAtDash(); at >= 0 && at < len(args) {
				opts.ExtraArgs = args[at:]
				args = args[:at]
			}

			_, err = c.components.App.Run(cmd.Context(), args[0], opts)
			return err
		},
	}

	cmd.Flags().String("clang", "", "Path to the compiler under test")
	cmd.Flags().String("llc", "", "Path to the standalone code generator")
	cmd.Flags().String("opt", "", "Path to the standalone optimizer")
	cmd.Flags().String("not", "", "Path to the crash-assertion wrapper")
	cmd.Flags().String("llvm-dis", "", "Path to the bitcode disassembler")
	cmd.Flags().String("bugpoint", "", "Path to the structural reducer")
	cmd.Flags().String("creduce", "", "Path to the source-level reducer")
	cmd.Flags().String("reducer", "", "Reduction backend: structural or source (default: pick from crash site)")
	cmd.Flags().String("crash-message", "", "Crash message the reduction must preserve")
	cmd.Flags().Bool("no-prepass", false, "Disable the source-stripping pre-pass")
	cmd.Flags().Int("max-region-lines", 0, "Largest expanded include region the pre-pass may drop")
	cmd.Flags().StringP("output", "o", "", "Path for the synthesized regression test")
	cmd.Flags().Bool("keep-scratch", false, "Keep the scratch directory for inspection")

	return cmd
}

// buildOptions merges the configuration file with the command-line flags.
// Flags win on conflicts.
func (c *CLI) buildOptions(cmd *cobra.Command) (app.Options, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := c.components.ConfigLoader.Load(configPath, ".")
	if err != nil {
		return app.Options{}, err
	}

	tools := cfg.Tools
	for _, override := range []struct {
		flag string
		dst  *string
	}{
		{"clang", &tools.Clang},
		{"llc", &tools.LLC},
		{"opt", &tools.Opt},
		{"not", &tools.Not},
		{"llvm-dis", &tools.LLVMDis},
		{"bugpoint", &tools.Bugpoint},
		{"creduce", &tools.Creduce},
	} {
		if v, _ := cmd.Flags().GetString(override.flag); v != "" {
			*override.dst = v
		}
	}

	opts := app.Options{
		Tools:          tools,
		Reducer:        cfg.Reducer,
		MaxRegionLines: cfg.MaxRegionLines,
	}
	if v, _ := cmd.Flags().GetString("reducer"); v != "" {
		opts.Reducer = v
	}
	if v, _ := cmd.Flags().GetString("crash-message"); v != "" {
		opts.Signature = domain.CrashSignature(v)
	}
	if v, _ := cmd.Flags().GetInt("max-region-lines"); v > 0 {
		opts.MaxRegionLines = v
	}
	opts.NoPrepass, _ = cmd.Flags().GetBool("no-prepass")
	opts.Output, _ = cmd.Flags().GetString("output")
	opts.KeepScratch, _ = cmd.Flags().GetBool("keep-scratch")

	return opts, nil
}
