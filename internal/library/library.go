// Package library is the static registry of component templates the catalog
// can instantiate. Templates carry the default options a fresh component
// starts from and the short name used for auto-generated component names.
package library

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Template describes one component class.
type Template struct {
	Class       string // canonical class name, e.g. "Transmon"
	ShortName   string // prefix for auto-generated names
	Description string

	// Defaults in declaration order. Copied on every access so callers can
	// mutate freely.
	defaults []Option

	// Option keys giving the footprint extents, used for node positioning.
	// Empty when the template has no meaningful rectangular footprint.
	WidthOpt  string
	HeightOpt string
}

// Option is one named default value.
type Option struct {
	Key   string
	Value string
}

// ErrUnknownClass is wrapped by Lookup failures.
var ErrUnknownClass = fmt.Errorf("library: unknown component class")

// Classes returns all template class names in registry order.
func Classes() []string {
	out := make([]string, len(registry))
	for i, t := range registry {
		out[i] = t.Class
	}
	return out
}

// Lookup finds a template by class name, case-insensitively. Unknown names
// produce an error carrying a nearest-match suggestion when one is close
// enough to be plausible.
func Lookup(class string) (*Template, error) {
	for i := range registry {
		if strings.EqualFold(registry[i].Class, class) {
			return &registry[i], nil
		}
	}
	if s := Suggest(class); s != "" {
		return nil, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownClass, class, s)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownClass, class)
}

// Defaults returns a fresh copy of the template's default options in
// declaration order.
func Defaults(class string) ([]Option, error) {
	t, err := Lookup(class)
	if err != nil {
		return nil, err
	}
	out := make([]Option, len(t.defaults))
	copy(out, t.defaults)
	return out, nil
}

// DefaultMap is Defaults flattened into a map for callers that don't care
// about ordering.
func (t *Template) DefaultMap() map[string]string {
	m := make(map[string]string, len(t.defaults))
	for _, o := range t.defaults {
		m[o.Key] = o.Value
	}
	return m
}

// DefaultOptions returns the template's defaults in declaration order.
func (t *Template) DefaultOptions() []Option {
	out := make([]Option, len(t.defaults))
	copy(out, t.defaults)
	return out
}

// Suggest returns the closest known class name within an edit-distance
// budget, or "" when nothing is convincingly close.
func Suggest(class string) string {
	type cand struct {
		class string
		dist  int
	}
	lower := strings.ToLower(class)
	var cands []cand
	for _, t := range registry {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(t.Class))
		cands = append(cands, cand{t.Class, d})
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	best := cands[0]
	// A third of the name wrong is the cutoff; beyond that the suggestion is
	// more confusing than helpful.
	if best.dist*3 > len(best.class) {
		return ""
	}
	return best.class
}
