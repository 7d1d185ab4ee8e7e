package cli

import (
	"github.com/spf13/cobra"

	"github.com/gsarma/codepad/internal/code"
	"github.com/gsarma/codepad/internal/config"
)

// EngineFactory builds the execution engine for the run command.
type EngineFactory func(cfg code.Judge0Config) (code.Engine, error)

// Judge0Engine is the EngineFactory used by the codepad binary.
func Judge0Engine(cfg code.Judge0Config) (code.Engine, error) {
	return code.NewJudge0Client(cfg)
}

// NewRootCmd assembles the codepad command tree. loadConfig is called lazily
// so that commands which do not talk to the engine work without credentials.
func NewRootCmd(loadConfig func() (*config.Config, error), newEngine EngineFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   "codepad",
		Short: "Run code on a remote Judge0 engine",
		Long: `codepad submits programs to a Judge0 execution engine, waits for the
result with a capped exponential backoff and prints the classified output.

The engine is configured through JUDGE0_URL, X_RAPIDAPI_KEY and
X_RAPIDAPI_HOST, or a YAML file named by CODEPAD_CONFIG.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(loadConfig, newEngine))
	root.AddCommand(newLanguagesCmd())
	return root
}
