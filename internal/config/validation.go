package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/wharflab/javalint/internal/ruleconfig"
	"github.com/wharflab/javalint/internal/rules"
)

// OutputFormats lists the accepted output.format values.
var OutputFormats = []string{"text", "json", "xml", "sarif", "github-actions"}

var topLevelKeys = []string{"rules", "filters", "output", "file-validation"}

func decodeConfig(k *koanf.Koanf) (*Config, error) {
	for _, key := range k.MapKeys("") {
		if !slices.Contains(topLevelKeys, key) {
			return nil, fmt.Errorf("unknown configuration key %q", key)
		}
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, unmarshalConf(cfg)); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	checks, err := decodeRuleTables(k)
	if err != nil {
		return nil, err
	}
	cfg.Rules.Checks = checks
	return cfg, nil
}

func unmarshalConf(out any) koanf.UnmarshalConf {
	return koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
			Result:           out,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	}
}

// decodeRuleTables decodes every [rules.<code>] table. The include and
// exclude keys of [rules] are selection lists, not rule tables.
func decodeRuleTables(k *koanf.Koanf) (map[string]RuleConfig, error) {
	raw, ok := k.Get("rules").(map[string]any)
	if !ok {
		return nil, nil
	}

	checks := make(map[string]RuleConfig)
	for code, v := range raw {
		if code == "include" || code == "exclude" {
			continue
		}
		table, ok := ruleconfig.CanonicalizeRuleOptions(code, v).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("rules.%s: expected a table, got %T", code, v)
		}

		rk := koanf.New(".")
		if err := rk.Load(confmap.Provider(table, ""), nil); err != nil {
			return nil, fmt.Errorf("load rule config %s: %w", code, err)
		}
		var rc RuleConfig
		if err := rk.UnmarshalWithConf("", &rc, unmarshalConf(&rc)); err != nil {
			return nil, fmt.Errorf("decode rule config %s: %w", code, err)
		}
		checks[strings.ToLower(code)] = rc
	}
	return checks, nil
}

// Validate checks the configuration against the rule registry: every
// configured rule must exist, its severity must parse and its options must
// pass the rule's ValidateConfig. All problems are reported together.
func Validate(cfg *Config, registry *rules.Registry) error {
	var errs []error

	if !slices.Contains(OutputFormats, cfg.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format: unknown format %q (want one of %s)",
			cfg.Output.Format, strings.Join(OutputFormats, ", ")))
	}
	if cfg.Output.FailLevel != "none" {
		if _, err := rules.ParseSeverity(cfg.Output.FailLevel); err != nil {
			errs = append(errs, fmt.Errorf("output.fail-level: %w", err))
		}
	}
	if sev := cfg.Filters.Severity.Severity; sev != "" {
		if _, err := rules.ParseSeverity(sev); err != nil {
			errs = append(errs, fmt.Errorf("filters.severity.severity: %w", err))
		}
	}
	for i, s := range cfg.Filters.Suppressions {
		if s.Location == "" {
			errs = append(errs, fmt.Errorf("filters.suppressions[%d]: missing location", i))
		}
	}

	byCode := make(map[string]rules.Rule)
	for _, r := range registry.All() {
		byCode[strings.ToLower(r.Metadata().Code)] = r
	}
	codes := make([]string, 0, len(cfg.Rules.Checks))
	for code := range cfg.Rules.Checks {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	for _, code := range codes {
		rc := cfg.Rules.Checks[code]
		rule, ok := byCode[code]
		if !ok {
			errs = append(errs, fmt.Errorf("rules.%s: unknown rule", code))
			continue
		}
		name := rule.Metadata().Code
		if rc.Severity != "" {
			if _, err := rules.ParseSeverity(rc.Severity); err != nil {
				errs = append(errs, fmt.Errorf("rules.%s.severity: %w", name, err))
			}
		}
		if cr, ok := rule.(rules.ConfigurableRule); ok && len(rc.Options) > 0 {
			if err := cr.ValidateConfig(rc.Options); err != nil {
				errs = append(errs, fmt.Errorf("rules.%s: %w", name, err))
			}
		} else if len(rc.Options) > 0 {
			errs = append(errs, fmt.Errorf("rules.%s: rule takes no options", name))
		}
	}
	return errors.Join(errs...)
}
