package app

import (
	"fmt"
	"os"
	"path"

	"github.com/uber/perl-dap/src/pdap/internal/fs"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Context struct {
	Environment        string `yaml:"environment"`
	RuntimeEnvironment string `yaml:"runtimeEnvironment"`
}

// Overrides carries command line settings that take precedence over the config files.
type Overrides struct {
	// Address replaces dap.address when set.
	Address string
}

const (
	// EnvLocal indicates that the service is running locally.
	EnvLocal = "local"

	// EnvDevelopment indicates that the service is running in a development environment.
	EnvDevelopment = "development"

	// Environment variables
	_envPdapEnvironment = "PDAP_ENVIRONMENT"
)

func decorateEnvContext(env Context) Context {
	envValue := EnvLocal
	if os.Getenv(_envPdapEnvironment) == EnvDevelopment {
		envValue = EnvDevelopment
	}

	env.Environment = envValue
	env.RuntimeEnvironment = envValue
	return env
}

// DecorateConfigParams is the set of dependencies required to decorate the config.Provider.
type DecorateConfigParams struct {
	fx.In

	Env       Context
	Cfg       config.Provider
	FS        fs.PdapFS
	Overrides Overrides `optional:"true"`
}

// decorateConfigProvider includes any steps that modify the config.Provider before it is used, or use its data for any startup related activities.
func decorateConfigProvider(p DecorateConfigParams) (config.Provider, error) {
	combined, err := applyOverrides(p.Cfg, p.Overrides)
	if err != nil {
		return nil, fmt.Errorf("applying command line overrides: %v", err)
	}

	if combined, err = ensureLogFolder(combined, p.FS); err != nil {
		return nil, fmt.Errorf("ensuring log folder: %v", err)
	}

	return combined, nil
}

// applyOverrides layers the command line settings over cfg.
func applyOverrides(cfg config.Provider, o Overrides) (config.Provider, error) {
	if o.Address == "" {
		return cfg, nil
	}

	flags, err := config.NewStaticProvider(map[string]interface{}{
		"dap": map[string]interface{}{
			"address": o.Address,
		},
	})
	if err != nil {
		return nil, err
	}
	return config.NewProviderGroup("pdap", cfg, flags)
}

// Ensure that all configured logging output directories exist or create if necessary.
func ensureLogFolder(cfg config.Provider, fs fs.PdapFS) (config.Provider, error) {
	var c zap.Config
	if err := cfg.Get("logging").Populate(&c); err != nil {
		return nil, fmt.Errorf("loading logging config: %v", err)
	}

	for _, outputPath := range c.OutputPaths {
		if outputPath == "stderr" || outputPath == "stdout" {
			continue
		}
		dir := path.Dir(outputPath)
		if err := fs.MkdirAll(dir); err != nil {
			return nil, fmt.Errorf("creating logging directory: %v", err)
		}
	}

	return cfg, nil
}
