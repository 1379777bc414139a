package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/drone/envsubst"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"waitgate/config"
	"waitgate/gate"
	"waitgate/utils"
)

func main() {
	utils.InitLogging()

	cfg := config.LoadConfig()
	if err := newRootCommand(cfg).Execute(); err != nil {
		utils.LogError("entrypoint failed", err)
		os.Exit(1)
	}
}

// newRootCommand builds the CLI. Flags default to the env-derived config so
// `entrypoint -- cmd args...` works with no flags at all, and a successful
// handover on unix never returns from Execute.
func newRootCommand(cfg *config.Config) *cobra.Command {
	var (
		host        string
		port        string
		target      string
		envFile     string
		interval    time.Duration
		dialTimeout time.Duration
		expandEnv   bool
	)

	cmd := &cobra.Command{
		Use:          "entrypoint [flags] -- command [args...]",
		Short:        "Block until a dependency accepts TCP connections, then exec the command",
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved := cfg.Target
			if cmd.Flags().Changed("target") {
				resolved = config.NormalizeTargetAddress(target)
			} else if cmd.Flags().Changed("host") || cmd.Flags().Changed("port") {
				resolved = net.JoinHostPort(host, port)
			}

			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("failed to load env file %q: %w", envFile, err)
				}
			}

			command := args
			if expandEnv {
				expanded := make([]string, 0, len(command))
				for _, arg := range command {
					value, err := envsubst.EvalEnv(arg)
					if err != nil {
						return fmt.Errorf("failed to evaluate %q: %w", arg, err)
					}
					expanded = append(expanded, value)
				}
				command = expanded
			}

			if cfg.StartupDelay > 0 {
				utils.LogInfo("Applying startup delay", "delay", cfg.StartupDelay)
				time.Sleep(cfg.StartupDelay)
			}

			return gate.New(resolved, interval, dialTimeout).Run(command)
		},
	}

	cmd.Flags().StringVar(&host, "host", cfg.Host, "dependency host to probe")
	cmd.Flags().StringVar(&port, "port", cfg.Port, "dependency port to probe")
	cmd.Flags().StringVar(&target, "target", cfg.Target, "dependency address (host:port or redis:// URL), overrides --host/--port")
	cmd.Flags().DurationVar(&interval, "interval", cfg.Interval, "sleep between connection attempts")
	cmd.Flags().DurationVar(&dialTimeout, "dial-timeout", cfg.DialTimeout, "per-attempt connection timeout")
	cmd.Flags().StringVar(&envFile, "env-file", cfg.EnvFile, "dotenv file to load before running the command")
	cmd.Flags().BoolVar(&expandEnv, "expand-env", cfg.ExpandCommandEnv, "substitute ${VAR} references in the command arguments")

	return cmd
}
