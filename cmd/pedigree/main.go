// Command pedigree consulta ancestros, recalcula códigos de linaje y
// puntúa parejas de cría desde la terminal.
//
// Fuentes de datos (en orden de prioridad):
//
//	--api-url   instancia remota de la API
//	--from-file fixture JSON (lista de animales), se reescribe al registrar
//	--dsn       Postgres (default: DB_DSN del entorno o .env)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pet-pedigree/internal/platform/config"
	"pet-pedigree/internal/platform/logger"
)

type globalFlags struct {
	dsn           string
	fromFile      string
	apiURL        string
	scoringConfig string
	logLevel      string
	jsonOutput    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg, err := config.Load(".env")
	if err != nil {
		// Config inválida no impide usar --from-file o --api-url.
		fmt.Fprintln(os.Stderr, "warning:", err)
		cfg.LineagePrefix = config.DefaultLineagePrefix
	}

	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "pedigree",
		Short:         "Pedigree graph and breeding compatibility tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.dsn, "dsn", cfg.DBDSN, "Postgres DSN")
	pf.StringVar(&g.fromFile, "from-file", "", "JSON fixture with the animals (in-memory store)")
	pf.StringVar(&g.apiURL, "api-url", "", "base URL of a running pedigree API")
	pf.StringVar(&g.scoringConfig, "scoring-config", cfg.ScoringConfig, "TOML file with a [scoring] table")
	pf.StringVar(&g.logLevel, "log-level", "warn", "debug|info|warn|error")
	pf.BoolVar(&g.jsonOutput, "json", false, "print JSON instead of tables")

	root.AddCommand(
		newAncestorsCmd(g),
		newRegisterCmd(g, cfg.LineagePrefix),
		newCompatCmd(g),
	)
	return root
}

func (g *globalFlags) logger() logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(g.logLevel),
		Format: logger.FormatText,
		App:    "pedigree-cli",
		Output: os.Stderr, // stdout queda para tablas y --json
	})
}
