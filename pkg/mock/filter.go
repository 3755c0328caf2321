package mock

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"
	"github.com/tidwall/match"

	"moxy/pkg/value"
)

// pattern matches property names. Globs use '*' and '?'; "/source/flags" is an
// ECMAScript regular expression.
type pattern struct {
	raw string
	re  *regexp2.Regexp
}

func compilePattern(raw string, log zerolog.Logger) pattern {
	p := pattern{raw: raw}
	src, flags, ok := splitRegexLiteral(raw)
	if !ok {
		return p
	}
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		}
	}
	re, err := regexp2.Compile(src, opts)
	if err != nil {
		log.Warn().Err(err).Str("pattern", raw).Msg("invalid property pattern, matching literally")
		return p
	}
	p.re = re
	return p
}

// splitRegexLiteral splits "/source/flags" into its parts.
func splitRegexLiteral(raw string) (src, flags string, ok bool) {
	if len(raw) < 2 || raw[0] != '/' {
		return "", "", false
	}
	end := strings.LastIndexByte(raw, '/')
	if end == 0 {
		return "", "", false
	}
	return raw[1:end], raw[end+1:], true
}

func (p pattern) match(name string) bool {
	if p.re != nil {
		ok, err := p.re.MatchString(name)
		return err == nil && ok
	}
	if _, _, isRegex := splitRegexLiteral(p.raw); isRegex {
		return name == p.raw
	}
	return match.Match(name, p.raw)
}

// propertyFilter decides which property values become nested doubles.
type propertyFilter struct {
	mockMethod     bool
	include        []pattern
	exclude        []pattern
	includeSymbols []*value.Symbol
	excludeSymbols []*value.Symbol
}

func newPropertyFilter(o Options) *propertyFilter {
	f := &propertyFilter{
		mockMethod:     o.MockMethod,
		includeSymbols: o.IncludeSymbols,
		excludeSymbols: o.ExcludeSymbols,
	}
	for _, raw := range o.IncludeProperties {
		f.include = append(f.include, compilePattern(raw, o.Logger))
	}
	for _, raw := range o.ExcludeProperties {
		f.exclude = append(f.exclude, compilePattern(raw, o.Logger))
	}
	return f
}

func matchKey(key value.PropertyKey, patterns []pattern, syms []*value.Symbol) bool {
	if key.IsSymbol() {
		for _, s := range syms {
			if s == key.Symbol() {
				return true
			}
		}
		return false
	}
	for _, p := range patterns {
		if p.match(key.Name()) {
			return true
		}
	}
	return false
}

// shouldWrap reports whether the value v read from key is to be proxified.
// Index keys are never wrapped and exclusion wins over both inclusion routes.
func (f *propertyFilter) shouldWrap(key value.PropertyKey, v value.Value) bool {
	if !value.IsProxifiable(v) || key.IsIndex() {
		return false
	}
	if matchKey(key, f.exclude, f.excludeSymbols) {
		return false
	}
	if f.mockMethod && value.IsCallable(v) {
		return true
	}
	return matchKey(key, f.include, f.includeSymbols)
}
