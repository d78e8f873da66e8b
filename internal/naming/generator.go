package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidPattern is returned when a pattern template contains no counter
// placeholder or uses unsupported placeholder syntax. It is fatal to the run.
var ErrInvalidPattern = errors.New("invalid pattern")

// Generator produces the target basename for the nth file in scan order.
type Generator interface {
	// Name returns the target name for counter value n. srcExt is the source
	// file's extension including the dot ("" when the file has none).
	Name(n int, srcExt string) string
}

// --- Sequential mode ---

// Sequential builds names of the form prefix+separator+zero-padded counter,
// keeping the source extension. With an empty prefix the separator is dropped
// and the name is just the padded counter.
type Sequential struct {
	Prefix    string
	Separator string
	Padding   int
}

// Name implements [Generator].
func (s Sequential) Name(n int, srcExt string) string {
	number := fmt.Sprintf("%0*d", s.Padding, n)
	if s.Prefix == "" {
		return number + srcExt
	}
	return s.Prefix + s.Separator + number + srcExt
}

// --- Pattern mode ---

// placeholder matches the supported counter placeholders: {n}, {n:d} and
// {n:0Nd} (explicit zero-pad width).
var placeholder = regexp.MustCompile(`\{n(?::(0[0-9]+)?d)?\}`)

// Pattern substitutes the counter into a user-supplied template. When the
// template carries its own extension that extension wins; otherwise the
// source extension is appended. Pattern mode takes precedence over the
// sequential parameters, which are ignored entirely while a pattern is set.
type Pattern struct {
	template string
}

// ParsePattern validates a template. At least one placeholder is required,
// and no brace may appear outside a supported placeholder.
func ParsePattern(template string) (Pattern, error) {
	if template == "" {
		return Pattern{}, fmt.Errorf("%w: empty template", ErrInvalidPattern)
	}
	stripped := placeholder.ReplaceAllString(template, "")
	if len(stripped) == len(template) {
		return Pattern{}, fmt.Errorf("%w: template %q has no {n} placeholder", ErrInvalidPattern, template)
	}
	if strings.ContainsAny(stripped, "{}") {
		return Pattern{}, fmt.Errorf("%w: template %q uses unsupported format syntax", ErrInvalidPattern, template)
	}
	return Pattern{template: template}, nil
}

// Name implements [Generator].
func (p Pattern) Name(n int, srcExt string) string {
	rendered := placeholder.ReplaceAllStringFunc(p.template, func(m string) string {
		sub := placeholder.FindStringSubmatch(m)
		if sub[1] == "" {
			return strconv.Itoa(n)
		}
		width, _ := strconv.Atoi(sub[1])
		return fmt.Sprintf("%0*d", width, n)
	})
	if filepath.Ext(rendered) != "" {
		return rendered
	}
	return rendered + srcExt
}

// New selects the generator for cfg-shaped parameters: pattern mode when
// template is non-empty, sequential mode otherwise.
func New(template, prefix, separator string, padding int) (Generator, error) {
	if template != "" {
		return ParsePattern(template)
	}
	return Sequential{Prefix: prefix, Separator: separator, Padding: padding}, nil
}
