package cmds

import (
	"intranet/internal/apiclient"
	"intranet/internal/types"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// env is filled once by the root command before any subcommand runs.
type env struct {
	cfg types.Config
}

func NewRootCmd() *cobra.Command {
	e := &env{}
	cmd := &cobra.Command{
		Use:          "intranet",
		Short:        "Client records API and the client information form",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return e.load()
		},
	}
	cmd.AddCommand(
		newAPICmd(e),
		newFormCmd(e),
		newClientsCmd(e),
	)
	return cmd
}

// load reads the optional env file, then the process configuration.
func (e *env) load() error {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Info("The .env file not found.")
	}

	cfg, err := types.ConfigFromEnv()
	if err != nil {
		return err
	}
	cfg.ApplyLogging()
	e.cfg = cfg
	return nil
}

func (e *env) apiClient() (*apiclient.Client, error) {
	httpCfg := apiclient.DefaultConfig()
	httpCfg.Timeout = e.cfg.APITimeout
	return apiclient.New(e.cfg.ClientsAPIURL, apiclient.NewHTTPClient(httpCfg))
}
