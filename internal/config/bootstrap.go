package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// BootstrapConfig describes the optional seed file applied on startup.
// It creates the first admin account and any starter assistants so a
// fresh deployment is usable without manual inserts. Folders, when
// declared, is the folder taxonomy the starter assistants may use; a
// GPT entry referencing an undeclared folder fails validation.
type BootstrapConfig struct {
	Admin   *BootstrapAdmin `yaml:"admin"`
	Folders []string        `yaml:"folders"`
	GPTs    []BootstrapGPT  `yaml:"gpts" validate:"dive"`
}

type BootstrapAdmin struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email" validate:"required,email"`
	Password string `yaml:"password" validate:"required,min=8"`
}

type BootstrapGPT struct {
	Name         string `yaml:"name" validate:"required"`
	Description  string `yaml:"description"`
	Instructions string `yaml:"instructions" validate:"required"`
	Model        string `yaml:"model"`
	Folder       string `yaml:"folder"`
}

var bootstrapValidate = validator.New(validator.WithRequiredStructEnabled())

// LoadBootstrapConfig reads and validates the seed file. A missing path
// returns (nil, nil) so bootstrap stays optional.
func LoadBootstrapConfig(path string) (*BootstrapConfig, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bootstrap file %s: %w", path, err)
	}

	var cfg BootstrapConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse bootstrap file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid bootstrap file %s: %w", path, err)
	}

	return &cfg, nil
}

func (cfg *BootstrapConfig) validate() error {
	if cfg.Admin != nil {
		if err := bootstrapValidate.Struct(cfg.Admin); err != nil {
			return fmt.Errorf("admin: %w", err)
		}
	}
	declared := make(map[string]struct{}, len(cfg.Folders))
	for _, folder := range cfg.Folders {
		declared[folder] = struct{}{}
	}
	for i := range cfg.GPTs {
		if err := bootstrapValidate.Struct(&cfg.GPTs[i]); err != nil {
			return fmt.Errorf("gpts[%d]: %w", i, err)
		}
		if folder := cfg.GPTs[i].Folder; folder != "" && len(declared) > 0 {
			if _, ok := declared[folder]; !ok {
				return fmt.Errorf("gpts[%d]: folder %q is not declared in folders", i, folder)
			}
		}
	}
	return nil
}
