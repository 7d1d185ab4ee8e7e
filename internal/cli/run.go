package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gsarma/codepad/internal/code"
	"github.com/gsarma/codepad/internal/config"
	"github.com/gsarma/codepad/internal/logger"
)

// ErrUnsuccessful is returned by run when the program did not finish with
// stdout output, so the process can exit non-zero.
var ErrUnsuccessful = errors.New("execution did not succeed")

func newRunCmd(loadConfig func() (*config.Config, error), newEngine EngineFactory) *cobra.Command {
	var (
		language  string
		file      string
		stdinFile string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a source file and print its output",
		Long: `Submit a source file to the engine, wait for it to finish and print the
output. The exit code is non-zero unless the program wrote to stdout.

Examples:
  codepad run --language python --file hello.py
  codepad run -l cpp -f main.cpp --stdin-file input.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read source: %w", err)
			}
			var stdin []byte
			if stdinFile != "" {
				if stdin, err = os.ReadFile(stdinFile); err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateEngine(); err != nil {
				return err
			}
			level := "warn"
			if verbose {
				level = "debug"
			}
			log, err := logger.New(logger.Config{Level: level, Mode: "development"})
			if err != nil {
				return err
			}
			defer log.Sync()

			engine, err := newEngine(cfg.Judge0)
			if err != nil {
				return err
			}
			runner := code.NewRunner(engine, code.WithPollConfig(cfg.Poll), code.WithLogger(log))

			out, err := runner.RunCode(cmd.Context(), language, string(source), string(stdin))
			if err != nil {
				return err
			}
			log.Debug("execution finished",
				zap.Stringer("outcome", out.Kind),
				zap.Int("attempts", out.Attempts),
				zap.String("token", string(out.Token)),
			)

			fmt.Fprintln(cmd.OutOrStdout(), out.Text)
			if !out.OK() {
				return fmt.Errorf("%w: %s", ErrUnsuccessful, out.Kind)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "source language (javascript, cpp, python)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the source file")
	cmd.Flags().StringVar(&stdinFile, "stdin-file", "", "file whose contents are passed as stdin")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log poll attempts")
	_ = cmd.MarkFlagRequired("language")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
