package catalog

import (
	"strings"

	"github.com/spherical/catalog-extractor/internal/domain"
)

// group collects the fragments believed to describe one product.
type group struct {
	key       string
	fragments []domain.Fragment
}

// nearestEarlier returns the smallest distance from page to a fragment on a
// strictly earlier page. ok is false when the group has no such fragment.
func (g *group) nearestEarlier(page int) (distance int, ok bool) {
	for _, f := range g.fragments {
		if f.Page >= page {
			continue
		}
		d := page - f.Page
		if !ok || d < distance {
			distance, ok = d, true
		}
	}
	return distance, ok
}

// groupTable is an insertion-ordered map from product name to group.
type groupTable struct {
	order []*group
	index map[string]*group
}

func newGroupTable() *groupTable {
	return &groupTable{index: make(map[string]*group)}
}

func (t *groupTable) add(key string, f domain.Fragment) {
	g, ok := t.index[key]
	if !ok {
		g = &group{key: key}
		t.index[key] = g
		t.order = append(t.order, g)
	}
	g.fragments = append(g.fragments, f)
}

func (t *groupTable) groups() []*group {
	return t.order
}

// groupFragments opens one group per distinct trimmed name, then attaches the
// unnamed spec/price fragments to the product they most likely follow.
// Fragments farther than window pages from that product are dropped.
func groupFragments(fragments []domain.Fragment, window int) (*groupTable, int) {
	table := newGroupTable()
	for _, f := range fragments {
		if f.HasName() {
			table.add(strings.TrimSpace(f.Name), f)
		}
	}

	dropped := 0
	for _, f := range fragments {
		if f.HasName() || !f.IsSpecification() {
			continue
		}
		if !table.associate(f, window) {
			dropped++
		}
	}

	return table, dropped
}

// associate appends f to the first group, in insertion order, that owns a
// fragment on an earlier page, provided the nearest such fragment is within
// window pages. Later groups are not considered even if they are closer.
func (t *groupTable) associate(f domain.Fragment, window int) bool {
	for _, g := range t.order {
		distance, ok := g.nearestEarlier(f.Page)
		if !ok {
			continue
		}
		if distance > window {
			return false
		}
		g.fragments = append(g.fragments, f)
		return true
	}
	return false
}
