package postprocessors

import (
	"github.com/speaktech/transqiita/internal/core/ports/driven"
	"github.com/speaktech/transqiita/internal/postprocessors/spacing"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register(spacing.Name, buildSpacing)
}

// buildSpacing creates the Markdown spacing repair processor.
// Supported config keys:
//   - extra_rules ([][2]string): Additional from/to pairs run after the defaults
func buildSpacing(cfg map[string]any) (driven.TextProcessor, error) {
	return spacing.New(getRulesFromConfig(cfg, "extra_rules")...), nil
}

// getRulesFromConfig extracts replacement pairs from a generic config map.
// Handles both typed pairs and the []any nesting produced by TOML parsing.
func getRulesFromConfig(cfg map[string]any, key string) []spacing.Rule {
	val, ok := cfg[key]
	if !ok {
		return nil
	}

	var rules []spacing.Rule
	switch v := val.(type) {
	case [][2]string:
		for _, pair := range v {
			rules = append(rules, spacing.Rule{From: pair[0], To: pair[1]})
		}
	case []any:
		for _, item := range v {
			pair, ok := item.([]any)
			if !ok || len(pair) != 2 {
				continue
			}
			from, okFrom := pair[0].(string)
			to, okTo := pair[1].(string)
			if okFrom && okTo {
				rules = append(rules, spacing.Rule{From: from, To: to})
			}
		}
	}
	return rules
}
