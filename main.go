package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/evebuzz/evebuzz/internal/app"
	"github.com/evebuzz/evebuzz/internal/config"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func init() {
	// .env is optional
	_ = godotenv.Load()

	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	cliApp := &cli.App{
		Name:  "evebuzz",
		Usage: "Campus event analytics and calendar aggregator.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "Path to the YAML configuration file.",
				EnvVars: []string{"EVEBUZZ_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			reportCommand(),
		},
		Action: serve,
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP API.",
		Action: serve,
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Fetch events once with api.token and print the dashboard as CSV.",
		Action: func(c *cli.Context) error {
			application, err := newApplication(c)
			if err != nil {
				return err
			}
			return application.Report(c.Context, os.Stdout)
		},
	}
}

func serve(c *cli.Context) error {
	application, err := newApplication(c)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return application.Run(ctx)
}

func newApplication(c *cli.Context) (*app.Application, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	application, err := app.NewApplication(cfg)
	if err != nil {
		log.Errorf("failed to initialize application: %v", err)
		return nil, err
	}
	return application, nil
}
