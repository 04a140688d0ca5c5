package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/uhppoted/sheets-plugin/config"
	"github.com/uhppoted/sheets-plugin/httpd"
)

var ServeCmd = Serve{
	config:      DEFAULT_CONFIG,
	credentials: "",
	listen:      "",
	debug:       false,
}

type Serve struct {
	config      string
	credentials string
	listen      string
	nowatch     bool
	debug       bool
}

func (cmd *Serve) Name() string {
	return "serve"
}

func (cmd *Serve) Description() string {
	return "Runs the HTTP endpoint for workflow tool invocations"
}

func (cmd *Serve) Usage() string {
	return "[--config <file>] [--credentials <file>] [--listen <address>]"
}

func (cmd *Serve) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] serve [options]\n", APP)
	fmt.Println()
	fmt.Println("  Runs an HTTP server that executes the batch-get, batch-update and batch-append tools for")
	fmt.Println("  the workflow platform:")
	fmt.Println()
	fmt.Println("    POST /tools/batch-get")
	fmt.Println("    POST /tools/batch-update")
	fmt.Println("    POST /tools/batch-append")
	fmt.Println()
	fmt.Println("  The service account credentials are reloaded whenever the credentials file changes.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sheets-plugin --debug serve --config sheets-plugin.yaml --listen 127.0.0.1:8080`)
	fmt.Println()
}

func (cmd *Serve) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("serve", flag.ExitOnError)

	flagset.StringVar(&cmd.config, "config", cmd.config, "Configuration file path")
	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the service account 'credentials.json' file. Overrides the configuration file")
	flagset.StringVar(&cmd.listen, "listen", cmd.listen, "Listen address. Overrides the configuration file")
	flagset.BoolVar(&cmd.nowatch, "no-watch", cmd.nowatch, "Disables reloading the credentials when the file changes")

	return flagset
}

func (cmd *Serve) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	conf, err := cmd.load()
	if err != nil {
		return err
	}

	if cmd.debug {
		debugf("Configuration - listen:%v  credentials:%v  timeout:%v  auth:%v", conf.Listen, conf.Credentials, conf.Timeout, conf.Auth.Secret != "")
	}

	credentials, err := config.NewCredentials(conf.Credentials)
	if err != nil {
		return fmt.Errorf("unable to load credentials (%v)", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !cmd.nowatch {
		go func() {
			if err := credentials.Watch(ctx); err != nil {
				warnf("%v", err)
			}
		}()
	}

	server := httpd.NewServer(conf, credentials, cmd.debug)
	if err := server.Run(ctx); err != nil {
		return err
	}

	infof("%v stopped", APP)

	return nil
}

// load reads the configuration file, if it exists, and applies the command line
// overrides.
func (cmd *Serve) load() (*config.Config, error) {
	conf := config.NewConfig(DEFAULT_CREDENTIALS)

	if strings.TrimSpace(cmd.config) != "" {
		if err := conf.Load(cmd.config); err != nil {
			if !os.IsNotExist(err) || cmd.config != DEFAULT_CONFIG {
				return nil, fmt.Errorf("could not load configuration (%v)", err)
			}

			warnf("No configuration file at %v - using defaults", cmd.config)
		}
	}

	if strings.TrimSpace(cmd.credentials) != "" {
		conf.Credentials = cmd.credentials
	}

	if strings.TrimSpace(cmd.listen) != "" {
		conf.Listen = cmd.listen
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}
