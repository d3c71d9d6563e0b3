package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var embedded []byte

var (
	ErrMissingEmail = errors.New("contact email is required")
	ErrDuplicateID  = errors.New("duplicate id")
)

var (
	defaultOnce sync.Once
	defaultDoc  *Portfolio
)

// Default returns the portfolio compiled into the binary. It panics if the
// embedded document is invalid, which can only happen at build time.
func Default() *Portfolio {
	defaultOnce.Do(func() {
		p, err := Parse(embedded)
		if err != nil {
			panic(fmt.Sprintf("embedded portfolio: %v", err))
		}
		defaultDoc = p
	})
	return defaultDoc
}

// Load reads the portfolio from path, or returns Default when path is empty.
func Load(path string) (*Portfolio, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read portfolio: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML portfolio document.
func Parse(raw []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode portfolio: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks that ids are unique per list and that a fallback contact
// address exists.
func (p *Portfolio) Validate() error {
	if p.Contact.Email == "" {
		return ErrMissingEmail
	}

	skills := make(map[string]bool, len(p.Skills))
	for _, s := range p.Skills {
		if skills[s.ID] {
			return fmt.Errorf("skill %q: %w", s.ID, ErrDuplicateID)
		}
		skills[s.ID] = true
	}

	seen := map[string]bool{}
	for _, pr := range p.Projects {
		if seen[pr.ID] {
			return fmt.Errorf("project %q: %w", pr.ID, ErrDuplicateID)
		}
		seen[pr.ID] = true
	}

	seen = map[string]bool{}
	for _, c := range p.Certifications {
		if seen[c.ID] {
			return fmt.Errorf("certification %q: %w", c.ID, ErrDuplicateID)
		}
		seen[c.ID] = true
	}

	seen = map[string]bool{}
	for _, t := range p.Timeline {
		if seen[t.ID] {
			return fmt.Errorf("timeline %q: %w", t.ID, ErrDuplicateID)
		}
		seen[t.ID] = true
	}
	return nil
}
