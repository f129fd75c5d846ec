// Package guide defines the closed set of assistant guides and the subset
// that is currently served to clients.
//
// Guide identifiers are a stable external contract. Clients persist them,
// so an identifier is never renumbered or reused once assigned. Identifier 2
// belonged to a retired guide and must stay unassigned.
package guide

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Guide is a contextual help tour for one UI surface.
type Guide int

// Defined guides. Keep the literal values; they are persisted by clients.
const (
	IssueDetails    Guide = 1
	IssueStream     Guide = 3
	DiscoverSidebar Guide = 4
)

type definition struct {
	guide Guide
	name  string
	key   string
}

// definitions is ordered by identifier.
var definitions = []definition{
	{guide: IssueDetails, name: "ISSUE_DETAILS", key: "issue_details"},
	{guide: IssueStream, name: "ISSUE_STREAM", key: "issue_stream"},
	{guide: DiscoverSidebar, name: "DISCOVER_SIDEBAR", key: "discover_sidebar"},
}

// active lists the guides enabled for delivery, in display order.
var active = []Guide{
	IssueDetails,
	IssueStream,
	DiscoverSidebar,
}

var (
	byID  map[Guide]definition
	byKey map[string]Guide
)

func init() {
	byID = make(map[Guide]definition, len(definitions))
	byKey = make(map[string]Guide, len(definitions)*2)
	for _, d := range definitions {
		if _, dup := byID[d.guide]; dup {
			panic(fmt.Sprintf("guide: duplicate identifier %d", d.guide))
		}
		if _, dup := byKey[d.key]; dup {
			panic(fmt.Sprintf("guide: duplicate key %q", d.key))
		}
		byID[d.guide] = d
		byKey[d.key] = d.guide
		byKey[d.name] = d.guide
	}
	for _, g := range active {
		if _, ok := byID[g]; !ok {
			panic(fmt.Sprintf("guide: active list references undefined identifier %d", g))
		}
	}
}

// Variants returns every defined guide ordered by identifier.
func Variants() []Guide {
	out := make([]Guide, len(definitions))
	for i, d := range definitions {
		out[i] = d.guide
	}
	return out
}

// Active returns the guides currently enabled for delivery, in declared order.
// The returned slice is a copy.
func Active() []Guide {
	return slices.Clone(active)
}

// Resolve looks up a guide by its stable identifier.
func Resolve(id int) (Guide, error) {
	g := Guide(id)
	if _, ok := byID[g]; !ok {
		return 0, &UnknownGuideError{ID: id}
	}
	return g, nil
}

// ResolveKey looks up a guide by its client key ("issue_details") or its
// symbolic name ("ISSUE_DETAILS").
func ResolveKey(key string) (Guide, error) {
	if g, ok := byKey[key]; ok {
		return g, nil
	}
	if g, ok := byKey[strings.ToLower(key)]; ok {
		return g, nil
	}
	return 0, &UnknownGuideError{Key: key, byKey: true}
}

// IsActive reports whether g is in the active list.
func IsActive(g Guide) bool {
	return slices.Contains(active, g)
}

// ID returns the stable integer identifier.
func (g Guide) ID() int {
	return int(g)
}

// Valid reports whether g is a defined guide.
func (g Guide) Valid() bool {
	_, ok := byID[g]
	return ok
}

// String returns the symbolic name, e.g. "ISSUE_DETAILS".
func (g Guide) String() string {
	if d, ok := byID[g]; ok {
		return d.name
	}
	return fmt.Sprintf("Guide(%d)", int(g))
}

// Key returns the lower-case key the front end uses to look up guide content.
// Undefined guides return an empty string.
func (g Guide) Key() string {
	return byID[g].key
}

// Variant is the serialized form of a guide.
type Variant struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

// MarshalJSON encodes g as {"name": ..., "id": ...}.
func (g Guide) MarshalJSON() ([]byte, error) {
	if !g.Valid() {
		return nil, &UnknownGuideError{ID: int(g)}
	}
	return json.Marshal(Variant{Name: g.String(), ID: g.ID()})
}

// UnmarshalJSON accepts either the object form or a bare integer identifier.
// The identifier is authoritative; a mismatched name is rejected. JSON null
// leaves g unchanged.
func (g *Guide) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var id int
	if err := json.Unmarshal(data, &id); err == nil {
		resolved, err := Resolve(id)
		if err != nil {
			return err
		}
		*g = resolved
		return nil
	}

	var v Variant
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode guide: %w", err)
	}
	resolved, err := Resolve(v.ID)
	if err != nil {
		return err
	}
	if v.Name != "" && v.Name != resolved.String() {
		return fmt.Errorf("guide %d is %s, not %s", v.ID, resolved, v.Name)
	}
	*g = resolved
	return nil
}
