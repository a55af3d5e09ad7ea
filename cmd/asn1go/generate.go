package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/golangsnmp/goasn1"
)

type cmdGenerate struct {
	configPath string
	pkg        string
	output     string
	formats    []string
	modules    []string
}

func (*cmdGenerate) help() *commandHelp {
	return &commandHelp{
		usage:   "generate [options] [FILE...]",
		summary: "Generate Go types for modules",
	}
}

func (cmd *cmdGenerate) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.configPath, "config", "c", "", "YAML config file")
	flags.StringVarP(&cmd.pkg, "package", "p", "", "Go package name (default \""+goasn1.DefaultPackage+"\")")
	flags.StringVarP(&cmd.output, "output", "o", "", "output directory (default \".\")")
	flags.StringSliceVar(&cmd.formats, "format", nil, "wire formats noted in the file header")
	flags.StringSliceVarP(&cmd.modules, "module", "m", nil, "generate only these modules and their imports")
}

func (cmd *cmdGenerate) run(ctx context.Context, c *cli, argv []string) int {
	cfg, err := cmd.config()
	if err != nil {
		c.printError("%v", err)
		return exitError
	}
	if len(argv) == 0 && len(cfg.Sources) == 0 {
		c.printError("no input files (pass FILE arguments or set sources in the config)")
		return exitError
	}

	mods, err := c.load(ctx, argv, cfg.Sources, cfg.Modules)
	if err != nil {
		c.printErrors(err)
		return exitError
	}

	files, err := goasn1.Generate(mods, cfg, c.options()...)
	if err != nil {
		c.printErrors(err)
		return exitError
	}
	if len(files) == 0 {
		c.printError("no type definitions to generate")
		return exitError
	}

	out := cfg.Output
	if out == "" {
		out = "."
	}
	if err := goasn1.WriteFiles(out, files, c.options()...); err != nil {
		c.printError("%v", err)
		return exitError
	}
	for _, f := range files {
		fmt.Fprintln(c.stdout, filepath.Join(out, f.Name))
	}
	return exitOK
}

// config reads the -c file, if any, and applies the flags over it. Paths
// in the file are relative to the file.
func (cmd *cmdGenerate) config() (*goasn1.Config, error) {
	cfg := &goasn1.Config{}
	if cmd.configPath != "" {
		var err error
		if cfg, err = goasn1.LoadConfigFile(cmd.configPath); err != nil {
			return nil, err
		}
		base := filepath.Dir(cmd.configPath)
		for i, src := range cfg.Sources {
			cfg.Sources[i] = relativeTo(base, src)
		}
		if cfg.Output != "" {
			cfg.Output = relativeTo(base, cfg.Output)
		}
	}

	if cmd.pkg != "" {
		cfg.Package = cmd.pkg
	}
	if cmd.output != "" {
		cfg.Output = cmd.output
	}
	if len(cmd.formats) > 0 {
		cfg.Formats = cmd.formats
	}
	if len(cmd.modules) > 0 {
		cfg.Modules = cmd.modules
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func relativeTo(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
