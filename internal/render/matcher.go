package render

import (
	"errors"
	"fmt"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	log "github.com/sirupsen/logrus"

	"github.com/Garsondee/Map-Viewer/internal/viewport"
	"github.com/Garsondee/Map-Viewer/internal/worldmap"
)

// ErrNoSuchMatcher is returned for a matcher index outside the chain.
var ErrNoSuchMatcher = errors.New("no such matcher")

// FixtureEnv is what a matcher expression sees. Expressions are compiled
// against it, e.g. `Kind == "unit" && Owner == "Rival"`.
type FixtureEnv struct {
	ID          int
	Kind        string
	Tag         string
	Image       string
	Description string
	Owner       string // empty when the fixture has no owner
	Current     bool   // owned by the current player
}

func envFor(f worldmap.Fixture) FixtureEnv {
	env := FixtureEnv{
		ID:          f.ID(),
		Kind:        f.Kind(),
		Tag:         f.Tag().String(),
		Image:       f.Image(),
		Description: f.ShortDescription(),
	}
	if o, ok := f.(worldmap.Owned); ok {
		env.Owner = o.Owner().Name
		env.Current = o.Owner().Current
	}
	return env
}

// Matcher pairs a fixture predicate with a display flag and a label.
type Matcher struct {
	Label     string
	Displayed bool
	match     func(worldmap.Fixture) bool
	source    string
	program   *vm.Program
	failed    bool // an evaluation error has been logged
}

// NewMatcher wraps a Go predicate.
func NewMatcher(label string, displayed bool, fn func(worldmap.Fixture) bool) *Matcher {
	return &Matcher{Label: label, Displayed: displayed, match: fn}
}

// KindMatcher matches every fixture of one kind.
func KindMatcher(kind string, displayed bool) *Matcher {
	return NewMatcher(kind, displayed, func(f worldmap.Fixture) bool { return f.Kind() == kind })
}

// CompileMatcher builds a matcher from an expr-lang boolean expression over
// FixtureEnv.
func CompileMatcher(label, src string, displayed bool) (*Matcher, error) {
	prog, err := expr.Compile(src, expr.Env(FixtureEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile matcher %q: %w", label, err)
	}
	return &Matcher{Label: label, Displayed: displayed, source: src, program: prog}, nil
}

// Source returns the expression a compiled matcher came from.
func (m *Matcher) Source() string { return m.source }

// Matches reports whether the predicate accepts f. Expression errors count
// as no match.
func (m *Matcher) Matches(f worldmap.Fixture) bool {
	ok, _ := m.eval(f)
	return ok
}

func (m *Matcher) eval(f worldmap.Fixture) (bool, error) {
	if m.program == nil {
		return m.match(f), nil
	}
	out, err := vm.Run(m.program, envFor(f))
	if err != nil {
		return false, err
	}
	ok, _ := out.(bool)
	return ok, nil
}

// MatcherChain is an ordered list of matchers. It is both the display filter
// and the source of the z-order: fixtures matched by earlier matchers are
// drawn on top.
type MatcherChain struct {
	matchers []*Matcher
	log      *log.Entry

	// Changed fires after every reorder, toggle or append.
	Changed viewport.Topic[*MatcherChain]
}

// NewMatcherChain builds a chain from ms in order.
func NewMatcherChain(ms ...*Matcher) *MatcherChain {
	return &MatcherChain{
		matchers: slices.Clone(ms),
		log:      log.WithField("component", "matchers"),
	}
}

// DefaultMatcherChain returns the stock z-order: units over settlements over
// resources over terrain-like fixtures. The synthetic listing fixtures are
// known but hidden since the compositor draws terrain, rivers and mountains
// itself.
func DefaultMatcherChain() *MatcherChain {
	kinds := []string{
		"unit", "fortress", "town", "village",
		"cache", "mine", "mineral", "stone", "animal",
		"grove", "meadow", "shrub", "oasis", "hill", "forest", "ground",
	}
	ms := make([]*Matcher, 0, len(kinds)+3)
	for _, k := range kinds {
		ms = append(ms, KindMatcher(k, true))
	}
	ms = append(ms,
		KindMatcher("mountain", false),
		KindMatcher("river", false),
		KindMatcher("terrain", false),
	)
	return NewMatcherChain(ms...)
}

// SetLogger replaces the chain's log entry.
func (c *MatcherChain) SetLogger(l *log.Entry) { c.log = l }

// Len returns the number of matchers.
func (c *MatcherChain) Len() int { return len(c.matchers) }

// At returns the matcher at index i.
func (c *MatcherChain) At(i int) *Matcher { return c.matchers[i] }

// Matchers returns a copy of the list.
func (c *MatcherChain) Matchers() []*Matcher { return slices.Clone(c.matchers) }

// matches evaluates m against f, logging the first expression error of each
// matcher.
func (c *MatcherChain) matches(m *Matcher, f worldmap.Fixture) bool {
	ok, err := m.eval(f)
	if err != nil && !m.failed {
		m.failed = true
		c.log.WithError(err).WithFields(log.Fields{
			"matcher": m.Label,
			"kind":    f.Kind(),
		}).Warn("matcher expression failed, treating as no match")
	}
	return ok
}

// Add appends m at the lowest priority.
func (c *MatcherChain) Add(m *Matcher) {
	c.matchers = append(c.matchers, m)
	c.Changed.Publish(c)
}

// Compare orders two fixtures: the first matcher that matches exactly one
// of them decides. It is not guaranteed transitive, so sort with a stable
// sort.
func (c *MatcherChain) Compare(a, b worldmap.Fixture) int {
	for _, m := range c.matchers {
		ma, mb := c.matches(m, a), c.matches(m, b)
		switch {
		case ma && !mb:
			return -1
		case mb && !ma:
			return 1
		}
	}
	return 0
}

// ShouldDisplay returns the display flag of the first matcher that matches
// f. A fixture no matcher knows gets a new, displayed matcher for its kind.
func (c *MatcherChain) ShouldDisplay(f worldmap.Fixture) bool {
	for _, m := range c.matchers {
		if c.matches(m, f) {
			return m.Displayed
		}
	}
	c.log.WithField("kind", f.Kind()).Info("adding matcher for new fixture kind")
	c.Add(KindMatcher(f.Kind(), true))
	return true
}

// Drawable returns the displayed fixtures of fixtures, top first.
func (c *MatcherChain) Drawable(fixtures []worldmap.Fixture) []worldmap.Fixture {
	out := make([]worldmap.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if c.ShouldDisplay(f) {
			out = append(out, f)
		}
	}
	slices.SortStableFunc(out, c.Compare)
	return out
}

// Sorted returns every fixture in z-order, hidden ones included.
func (c *MatcherChain) Sorted(fixtures []worldmap.Fixture) []worldmap.Fixture {
	out := slices.Clone(fixtures)
	slices.SortStableFunc(out, c.Compare)
	return out
}

// Move shifts the matcher at from to index to.
func (c *MatcherChain) Move(from, to int) error {
	if from < 0 || from >= len(c.matchers) || to < 0 || to >= len(c.matchers) {
		return fmt.Errorf("%w: move %d to %d of %d", ErrNoSuchMatcher, from, to, len(c.matchers))
	}
	if from == to {
		return nil
	}
	m := c.matchers[from]
	c.matchers = slices.Delete(c.matchers, from, from+1)
	c.matchers = slices.Insert(c.matchers, to, m)
	c.Changed.Publish(c)
	return nil
}

// SetDisplayed sets the display flag of the matcher at i.
func (c *MatcherChain) SetDisplayed(i int, displayed bool) error {
	if i < 0 || i >= len(c.matchers) {
		return fmt.Errorf("%w: %d of %d", ErrNoSuchMatcher, i, len(c.matchers))
	}
	if c.matchers[i].Displayed == displayed {
		return nil
	}
	c.matchers[i].Displayed = displayed
	c.Changed.Publish(c)
	return nil
}
