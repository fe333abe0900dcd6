// Package design implements the chip design catalog: an insertion-ordered
// collection of components keyed by a unique monotonically-assigned integer
// ID and a unique display name.
package design

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/qnl/chipsmith/internal/library"
)

// Typed failures surfaced to the CLI and TUI.
var (
	ErrDuplicateName = fmt.Errorf("design: name already in use")
	ErrNotFound      = fmt.Errorf("design: component not found")
	ErrHasDependents = fmt.Errorf("design: component has dependents")
	ErrEmptyName     = fmt.Errorf("design: empty name")
)

// Component is one design object instantiated from a library template.
type Component struct {
	ID        int
	Name      string
	Class     string
	Options   *Options
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CopySpec describes one copy in a multi-copy operation.
type CopySpec struct {
	Name      string // empty for auto-generated
	Overrides map[string]string
}

// Design is the catalog of components making up one chip layout.
type Design struct {
	UUID string
	Name string

	nextID    int
	order     []*Component
	byID      map[int]*Component
	byName    map[string]*Component
	overwrite bool

	// deps[a][b] means a depends on b: b cannot be deleted by name while
	// the edge exists.
	deps map[int]map[int]bool
}

// New creates an empty design.
func New(name string) *Design {
	return &Design{
		UUID:   uuid.NewString(),
		Name:   name,
		nextID: 1,
		byID:   make(map[int]*Component),
		byName: make(map[string]*Component),
		deps:   make(map[int]map[int]bool),
	}
}

// EnableOverwrite toggles whether name collisions replace the existing
// component instead of failing.
func (d *Design) EnableOverwrite(on bool) { d.overwrite = on }

// OverwriteEnabled reports the overwrite flag.
func (d *Design) OverwriteEnabled() bool { return d.overwrite }

// Len returns the number of components.
func (d *Design) Len() int { return len(d.order) }

// Components returns the components in insertion order.
func (d *Design) Components() []*Component {
	out := make([]*Component, len(d.order))
	copy(out, d.order)
	return out
}

// ByID looks a component up by identifier.
func (d *Design) ByID(id int) (*Component, error) {
	c, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return c, nil
}

// ByName looks a component up by display name.
func (d *Design) ByName(name string) (*Component, error) {
	c, ok := d.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return c, nil
}

// Add instantiates a template into the design. An empty name auto-generates
// "<short_name>_<id>". A duplicate name fails unless overwrite is enabled,
// in which case the existing component is replaced in its insertion slot and
// the replacement still receives a fresh ID.
func (d *Design) Add(class, name string, overrides map[string]string) (*Component, error) {
	tpl, err := library.Lookup(class)
	if err != nil {
		return nil, err
	}

	id := d.nextID
	if name == "" {
		name = fmt.Sprintf("%s_%d", tpl.ShortName, id)
	}

	opts := OptionsFrom(tpl.DefaultOptions())
	for _, k := range sortedKeys(overrides) {
		opts.Set(k, overrides[k])
	}

	now := now()
	c := &Component{
		ID:        id,
		Name:      name,
		Class:     tpl.Class,
		Options:   opts,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if prev, ok := d.byName[name]; ok {
		if !d.overwrite {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		d.replace(prev, c)
		d.nextID++
		return c, nil
	}

	d.order = append(d.order, c)
	d.byID[id] = c
	d.byName[name] = c
	d.nextID++
	return c, nil
}

// replace swaps prev for next in prev's insertion slot and severs prev's
// dependency edges. next keeps its own (fresh) ID.
func (d *Design) replace(prev, next *Component) {
	for i, c := range d.order {
		if c == prev {
			d.order[i] = next
			break
		}
	}
	delete(d.byID, prev.ID)
	delete(d.byName, prev.Name)
	d.severEdges(prev.ID)
	d.byID[next.ID] = next
	d.byName[next.Name] = next
}

// SetOption mutates one named option on a component. New keys append.
func (d *Design) SetOption(id int, key, value string) error {
	c, err := d.ByID(id)
	if err != nil {
		return err
	}
	c.Options.Set(key, value)
	c.UpdatedAt = now()
	return nil
}

// Copy duplicates a component under a new name, applying option overrides.
// An empty newName auto-generates from the template short name.
func (d *Design) Copy(id int, newName string, overrides map[string]string) (*Component, error) {
	src, err := d.ByID(id)
	if err != nil {
		return nil, err
	}
	return d.copyOne(src, newName, overrides)
}

func (d *Design) copyOne(src *Component, newName string, overrides map[string]string) (*Component, error) {
	tpl, err := library.Lookup(src.Class)
	if err != nil {
		return nil, err
	}

	cid := d.nextID
	if newName == "" {
		newName = fmt.Sprintf("%s_%d", tpl.ShortName, cid)
	}
	nowT := now()
	c := &Component{
		ID:        cid,
		Name:      newName,
		Class:     src.Class,
		Options:   applyOverrides(src.Options, overrides),
		CreatedAt: nowT,
		UpdatedAt: nowT,
	}

	if prev, ok := d.byName[newName]; ok {
		if !d.overwrite {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, newName)
		}
		d.replace(prev, c)
		d.nextID++
		return c, nil
	}

	d.order = append(d.order, c)
	d.byID[cid] = c
	d.byName[newName] = c
	d.nextID++
	return c, nil
}

// CopyN duplicates a component once per spec, each copy with its own name
// and overrides. Names are validated up front so a failing spec leaves the
// design untouched.
func (d *Design) CopyN(id int, specs []CopySpec) ([]*Component, error) {
	src, err := d.ByID(id)
	if err != nil {
		return nil, err
	}
	tpl, err := library.Lookup(src.Class)
	if err != nil {
		return nil, err
	}
	if !d.overwrite {
		// Each copy consumes exactly one ID, so auto-generated names are
		// known before the first copy is made.
		seen := make(map[string]bool, len(specs))
		for i, s := range specs {
			name := s.Name
			if name == "" {
				name = fmt.Sprintf("%s_%d", tpl.ShortName, d.nextID+i)
			}
			if _, ok := d.byName[name]; ok || seen[name] {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
			}
			seen[name] = true
		}
	}
	out := make([]*Component, 0, len(specs))
	for _, s := range specs {
		c, err := d.copyOne(src, s.Name, s.Overrides)
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Delete removes a component by name. It refuses while other components
// depend on it; DeleteID is the force path.
func (d *Design) Delete(name string) error {
	c, err := d.ByName(name)
	if err != nil {
		return err
	}
	if deps := d.Dependents(c.ID); len(deps) > 0 {
		return fmt.Errorf("%w: %q has %d dependent(s)", ErrHasDependents, name, len(deps))
	}
	d.remove(c)
	return nil
}

// DeleteID removes a component unconditionally, severing any dependency
// edges pointing at it.
func (d *Design) DeleteID(id int) error {
	c, err := d.ByID(id)
	if err != nil {
		return err
	}
	d.remove(c)
	return nil
}

func (d *Design) remove(c *Component) {
	for i, e := range d.order {
		if e == c {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	delete(d.byID, c.ID)
	delete(d.byName, c.Name)
	d.severEdges(c.ID)
}

// Rename changes a component's display name. A duplicate target fails
// unless overwrite is enabled, in which case the name's previous holder is
// removed.
func (d *Design) Rename(id int, newName string) error {
	if newName == "" {
		return ErrEmptyName
	}
	c, err := d.ByID(id)
	if err != nil {
		return err
	}
	if c.Name == newName {
		return nil
	}
	if prev, ok := d.byName[newName]; ok {
		if !d.overwrite {
			return fmt.Errorf("%w: %q", ErrDuplicateName, newName)
		}
		d.remove(prev)
	}
	delete(d.byName, c.Name)
	c.Name = newName
	c.UpdatedAt = now()
	d.byName[newName] = c
	return nil
}

// AddDependency records that dependent relies on dependency, gating
// by-name deletion of the dependency.
func (d *Design) AddDependency(dependentID, dependencyID int) error {
	if _, err := d.ByID(dependentID); err != nil {
		return err
	}
	if _, err := d.ByID(dependencyID); err != nil {
		return err
	}
	if d.deps[dependentID] == nil {
		d.deps[dependentID] = make(map[int]bool)
	}
	d.deps[dependentID][dependencyID] = true
	return nil
}

// Dependents lists the IDs of components depending on id, ascending.
func (d *Design) Dependents(id int) []int {
	var out []int
	for from, tos := range d.deps {
		if tos[id] {
			out = append(out, from)
		}
	}
	sort.Ints(out)
	return out
}

// Dependencies lists the IDs id depends on, ascending.
func (d *Design) Dependencies(id int) []int {
	var out []int
	for to := range d.deps[id] {
		out = append(out, to)
	}
	sort.Ints(out)
	return out
}

// DependencyEdges returns all (dependent, dependency) pairs, for
// persistence.
func (d *Design) DependencyEdges() [][2]int {
	var out [][2]int
	for from, tos := range d.deps {
		for to := range tos {
			out = append(out, [2]int{from, to})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

func (d *Design) severEdges(id int) {
	delete(d.deps, id)
	for _, tos := range d.deps {
		delete(tos, id)
	}
}

// NextID exposes the allocation counter, for persistence.
func (d *Design) NextID() int { return d.nextID }

// RestoreNextID raises the allocation counter to a persisted value so IDs
// burned by deleted components stay burned across a save/load cycle.
func (d *Design) RestoreNextID(n int) {
	if n > d.nextID {
		d.nextID = n
	}
}

// Restore inserts a previously persisted component with its original ID,
// bumping the allocation counter past it. It is the load path's
// counterpart to Add and rejects collisions outright.
func (d *Design) Restore(c *Component) error {
	if c.Name == "" {
		return ErrEmptyName
	}
	if _, ok := d.byID[c.ID]; ok {
		return fmt.Errorf("design: restore: id %d already present", c.ID)
	}
	if _, ok := d.byName[c.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, c.Name)
	}
	d.order = append(d.order, c)
	d.byID[c.ID] = c
	d.byName[c.Name] = c
	if c.ID >= d.nextID {
		d.nextID = c.ID + 1
	}
	return nil
}

// RestoreDependency re-adds a persisted edge without timestamp churn.
func (d *Design) RestoreDependency(dependentID, dependencyID int) error {
	return d.AddDependency(dependentID, dependencyID)
}

func applyOverrides(src *Options, overrides map[string]string) *Options {
	o := src.Clone()
	for _, k := range sortedKeys(overrides) {
		o.Set(k, overrides[k])
	}
	return o
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// now returns UTC time truncated to seconds, consistent with SQLite storage.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
