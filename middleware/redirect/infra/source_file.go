package infra

import (
	"context"
	"fmt"
	"os"

	"redirect-gateway/middleware/redirect/domain"

	"gopkg.in/yaml.v3"
)

// FileSource lê regras de um arquivo YAML (JSON também é YAML válido):
//
//	redirects:
//	  - from: /about-us
//	    to: /about
type FileSource struct {
	Path string
}

type ruleFile struct {
	Redirects []domain.Rule `yaml:"redirects"`
}

func (s FileSource) Load(_ context.Context) ([]domain.Rule, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return ParseRules(raw)
}

// ParseRules decodifica o documento de regras e valida cada entrada.
func ParseRules(raw []byte) ([]domain.Rule, error) {
	var doc ruleFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	for i, r := range doc.Redirects {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("rule #%d: %w", i, err)
		}
	}
	return doc.Redirects, nil
}
