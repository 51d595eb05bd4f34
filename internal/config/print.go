package config

import (
	"maps"

	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// MarshalTOML renders the effective configuration as a TOML document that
// LoadFromFile would read back to the same configuration.
func (c *Config) MarshalTOML() ([]byte, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(c, "koanf"), nil); err != nil {
		return nil, err
	}
	raw := k.Raw()

	rulesRaw, _ := raw["rules"].(map[string]any)
	if rulesRaw == nil {
		rulesRaw = make(map[string]any)
	}
	for code, rc := range c.Rules.Checks {
		table := make(map[string]any, len(rc.Options)+3)
		maps.Copy(table, rc.Options)
		if rc.Severity != "" {
			table["severity"] = rc.Severity
		}
		if rc.ID != "" {
			table["id"] = rc.ID
		}
		if len(rc.Exclude.Paths) > 0 {
			table["exclude"] = map[string]any{"paths": rc.Exclude.Paths}
		}
		rulesRaw[code] = table
	}
	raw["rules"] = rulesRaw

	return gotoml.Marshal(raw)
}
