// Package spacing repairs whitespace that translation backends insert
// around Markdown syntax.
package spacing

import (
	"context"
	"strings"
)

// Name is the registry name of the processor.
const Name = "markdown_spacing"

// Rule replaces every occurrence of From with To.
type Rule struct {
	From string
	To   string
}

// DefaultRules is the repair table. Rules run in order and later rules see
// the output of earlier ones.
var DefaultRules = []Rule{
	{": |", ":|"},
	{"|: ", "|:"},
	{`" `, `"`},
	{` "`, `"`},
	{"/ ", "/"},
	{" /", "/"},
	{`\ `, `\`},
	{` \`, `\`},
	{"$ ", "$"},
	{" $", "$"},
	{"! [", "!["},
}

// Processor applies an ordered rule table.
// It implements the TextProcessor interface.
type Processor struct {
	rules []Rule
}

// New creates a processor with the default rules followed by extra.
func New(extra ...Rule) *Processor {
	rules := make([]Rule, 0, len(DefaultRules)+len(extra))
	rules = append(rules, DefaultRules...)
	for _, r := range extra {
		if r.From != "" {
			rules = append(rules, r)
		}
	}
	return &Processor{rules: rules}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Rules returns the rule table in application order.
func (p *Processor) Rules() []Rule {
	return p.rules
}

// Process applies every rule in sequence.
func (p *Processor) Process(_ context.Context, text string) (string, error) {
	return p.Apply(text), nil
}

// Apply is Process without the context.
func (p *Processor) Apply(text string) string {
	for _, r := range p.rules {
		text = strings.ReplaceAll(text, r.From, r.To)
	}
	return text
}
