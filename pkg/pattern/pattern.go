package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// SegmentKind identifies what a template segment matches.
type SegmentKind int

const (
	// KindLiteral matches the segment text exactly.
	KindLiteral SegmentKind = iota

	// KindParam matches one or more non-slash characters and captures them.
	KindParam

	// KindWildcard matches the remainder of the path, slashes included.
	KindWildcard
)

// Segment is one parsed element of a route template.
type Segment struct {
	// Kind is the segment type.
	Kind SegmentKind

	// Value is the literal text for KindLiteral, or the parameter name for
	// KindParam and KindWildcard. A bare "*" wildcard has an empty Value and
	// captures nothing.
	Value string
}

// CompileError reports a malformed route template.
type CompileError struct {
	// Template is the offending template string.
	Template string

	// Reason describes why compilation failed.
	Reason string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("pattern: cannot compile %q: %s", e.Template, e.Reason)
}

// Pattern is a compiled route template.
// It is immutable after compilation and safe for concurrent use.
type Pattern struct {
	template string
	segments []Segment
	re       *regexp.Regexp

	// paramNames holds capture names in declaration order. A bare wildcard
	// contributes an empty name for its (discarded) capture group.
	paramNames []string
}

// Compile parses a route template and builds its matcher.
//
// Compilation fails for templates with duplicate parameter names, an empty
// parameter name, or a wildcard segment that is not the final segment.
func Compile(template string) (*Pattern, error) {
	segments, err := parse(template)
	if err != nil {
		return nil, err
	}

	p := &Pattern{
		template: template,
		segments: segments,
	}

	var sb strings.Builder
	sb.WriteString("^")
	for _, seg := range segments {
		switch seg.Kind {
		case KindLiteral:
			sb.WriteString("/")
			sb.WriteString(regexp.QuoteMeta(seg.Value))
		case KindParam:
			sb.WriteString("/([^/]+)")
			p.paramNames = append(p.paramNames, seg.Value)
		case KindWildcard:
			// The leading slash is folded into the optional group so the
			// wildcard also matches an empty remainder: /files/*rest
			// matches both /files and /files/a/b, and a bare * matches /.
			sb.WriteString("(?:/(.*))?")
			p.paramNames = append(p.paramNames, seg.Value)
		}
	}
	if len(segments) == 0 {
		// Root template "/".
		sb.WriteString("/")
	}
	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		// Unreachable for parsed segments; kept as a guard.
		return nil, &CompileError{Template: template, Reason: err.Error()}
	}
	p.re = re
	return p, nil
}

// MustCompile is Compile that panics on error, for static route tables.
func MustCompile(template string) *Pattern {
	p, err := Compile(template)
	if err != nil {
		panic(err)
	}
	return p
}

// parse splits a template into segments and validates it.
func parse(template string) ([]Segment, error) {
	if template == "" {
		return nil, &CompileError{Template: template, Reason: "empty template"}
	}

	trimmed := strings.Trim(template, "/")
	if trimmed == "" {
		// "/" has no segments.
		return nil, nil
	}

	parts := strings.Split(trimmed, "/")
	segments := make([]Segment, 0, len(parts))
	seen := make(map[string]bool, len(parts))

	for i, part := range parts {
		switch {
		case strings.HasPrefix(part, ":"):
			name := part[1:]
			if name == "" {
				return nil, &CompileError{Template: template, Reason: "parameter segment with empty name"}
			}
			if seen[name] {
				return nil, &CompileError{Template: template, Reason: fmt.Sprintf("duplicate parameter name %q", name)}
			}
			seen[name] = true
			segments = append(segments, Segment{Kind: KindParam, Value: name})

		case strings.HasPrefix(part, "*"):
			if i != len(parts)-1 {
				return nil, &CompileError{Template: template, Reason: "wildcard must be the final segment"}
			}
			name := part[1:]
			if name != "" {
				if seen[name] {
					return nil, &CompileError{Template: template, Reason: fmt.Sprintf("duplicate parameter name %q", name)}
				}
				seen[name] = true
			}
			segments = append(segments, Segment{Kind: KindWildcard, Value: name})

		case part == "":
			return nil, &CompileError{Template: template, Reason: "empty path segment"}

		default:
			segments = append(segments, Segment{Kind: KindLiteral, Value: part})
		}
	}

	return segments, nil
}

// Match tests a concrete path against the pattern.
//
// It returns the extracted parameter values, or ok=false when the path does
// not match. The path must not carry a query string; callers strip it first.
// The returned map is never nil on a match.
func (p *Pattern) Match(path string) (map[string]string, bool) {
	m := p.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}

	params := make(map[string]string, len(p.paramNames))
	for i, name := range p.paramNames {
		if name == "" {
			continue // bare wildcard, value discarded
		}
		params[name] = m[i+1]
	}
	return params, true
}

// Template returns the original template string.
func (p *Pattern) Template() string {
	return p.template
}

// Segments returns the parsed segment list in order.
func (p *Pattern) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// ParamNames returns the named captures in declaration order.
// Bare wildcards are excluded.
func (p *Pattern) ParamNames() []string {
	var names []string
	for _, n := range p.paramNames {
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}

// HasWildcard reports whether the pattern ends in a wildcard segment.
func (p *Pattern) HasWildcard() bool {
	n := len(p.segments)
	return n > 0 && p.segments[n-1].Kind == KindWildcard
}

func (p *Pattern) String() string {
	return p.template
}
