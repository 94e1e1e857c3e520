// Command kvcheck validates key=value files such as .env files.
//
// Every file is parsed with one shared state, so a key defined in two files
// is reported as a duplicate. Valid pairs are written to stdout.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "kvcheck",
		Usage:     "validate key=value files",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a config file",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "stop at the first syntax error in a file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "trace, debug, info, warn or error",
			},
			&cli.IntFlag{
				Name:  "max-line",
				Usage: "longest accepted line in bytes, excluding the terminator",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("no files given", 2)
			}

			cfg, err := loadConfig(c.String("config"))
			if err != nil {
				return err
			}
			if cfg, err = overrideConfig(cfg, c); err != nil {
				return err
			}

			logger, err := newLogger(cfg.Log.Level)
			if err != nil {
				return err
			}
			return run(cfg, c.Args().Slice(), c.App.Writer, logger)
		},
	}
}

func overrideConfig(cfg config, c *cli.Context) (config, error) {
	if c.IsSet("strict") {
		cfg.Strict = c.Bool("strict")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("max-line") {
		if c.Int("max-line") < 1 {
			return cfg, cli.Exit("max-line must be positive", 2)
		}
		cfg.MaxLine = c.Int("max-line")
	}
	return cfg, nil
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
