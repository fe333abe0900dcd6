package design

import "github.com/qnl/chipsmith/internal/library"

// Options is a component's named option map. Iteration order is the template
// declaration order followed by any keys added later, so renders and exports
// stay stable across runs.
type Options struct {
	keys []string
	vals map[string]string
}

// NewOptions returns an empty option set.
func NewOptions() *Options {
	return &Options{vals: make(map[string]string)}
}

// OptionsFrom builds an option set from template defaults.
func OptionsFrom(defaults []library.Option) *Options {
	o := NewOptions()
	for _, d := range defaults {
		o.Set(d.Key, d.Value)
	}
	return o
}

// Set assigns a value, appending the key on first use.
func (o *Options) Set(key, value string) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = value
}

// Get returns the value and whether the key exists.
func (o *Options) Get(key string) (string, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Keys returns the keys in declaration order.
func (o *Options) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of options.
func (o *Options) Len() int { return len(o.keys) }

// Clone deep-copies the option set.
func (o *Options) Clone() *Options {
	c := &Options{
		keys: make([]string, len(o.keys)),
		vals: make(map[string]string, len(o.vals)),
	}
	copy(c.keys, o.keys)
	for k, v := range o.vals {
		c.vals[k] = v
	}
	return c
}

// Map flattens the options for callers that don't need ordering.
func (o *Options) Map() map[string]string {
	m := make(map[string]string, len(o.vals))
	for k, v := range o.vals {
		m[k] = v
	}
	return m
}
