// Command polyglot is an interactive terminal translator backed by the
// Microsoft Translator API on RapidAPI.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kbukum/polyglot/bootstrap"
	"github.com/kbukum/polyglot/config"
	"github.com/kbukum/polyglot/version"
)

func main() {
	configFile := flag.String("config", "", "path to config.yml (default: searched)")
	envFile := flag.String("env", "", "path to .env (default: searched)")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(serviceName, version.Get())
		return
	}

	if err := run(context.Background(), *configFile, *envFile, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "polyglot:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configFile, envFile string, in io.Reader, out io.Writer, opts ...bootstrap.Option) error {
	loaderOpts := []config.LoaderOption{
		config.WithDefaults(map[string]any{"name": serviceName}),
	}
	if configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		loaderOpts = append(loaderOpts, config.WithEnvFile(envFile))
	}

	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg, loaderOpts...); err != nil {
		return err
	}

	app, err := bootstrap.NewApp(&cfg, opts...)
	if err != nil {
		return err
	}

	r := newREPL(in, out)
	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
		s, err := wire(ctx, a, r)
		if err != nil {
			return err
		}
		r.attach(s)
		return nil
	})
	return app.RunTask(ctx, r.run)
}
