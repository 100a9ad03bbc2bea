// internal/adminform/draft.go
package adminform

import "encoding/json"

// Draft is the in-memory state of one entity form before submission:
// scalar fields in a flat map, repeatable fields in separate
// ListFields. A draft lives for the duration of one create or edit
// flow; nothing is persisted client-side.
type Draft struct {
	scalars map[string]any
	lists   map[string]*ListField
}

// NewDraft creates an empty draft for a create flow.
func NewDraft() *Draft {
	return &Draft{
		scalars: map[string]any{},
		lists:   map[string]*ListField{},
	}
}

// Hydrate builds a draft from a fetched record for an edit flow. Field
// names in listFields are parsed as string lists; everything else is
// kept as a scalar.
func Hydrate(record map[string]any, listFields ...string) *Draft {
	d := NewDraft()

	isList := map[string]bool{}
	for _, name := range listFields {
		isList[name] = true
		d.lists[name] = NewListField(nil)
	}

	for name, value := range record {
		if isList[name] {
			d.lists[name] = NewListField(ParseStringList(value))
			continue
		}
		d.scalars[name] = value
	}
	return d
}

// Set stores a scalar field value.
func (d *Draft) Set(name string, value any) {
	d.scalars[name] = value
}

// Get returns a scalar field value, or nil when unset.
func (d *Draft) Get(name string) any {
	return d.scalars[name]
}

// GetString returns a scalar field as a string; non-string and unset
// values come back empty.
func (d *Draft) GetString(name string) string {
	s, _ := d.scalars[name].(string)
	return s
}

// List returns the ListField for a repeatable field, creating an empty
// one on first access.
func (d *Draft) List(name string) *ListField {
	f, ok := d.lists[name]
	if !ok {
		f = NewListField(nil)
		d.lists[name] = f
	}
	return f
}

// Payload assembles the submission body: scalar fields merged with the
// cleaned repeatable fields.
func (d *Draft) Payload() map[string]any {
	out := make(map[string]any, len(d.scalars)+len(d.lists))
	for name, value := range d.scalars {
		out[name] = value
	}
	for name, f := range d.lists {
		out[name] = f.Clean()
	}
	return out
}

// ParseStringList coerces a stored array field into a []string. Legacy
// rows may hold a native array or a JSON-encoded string of one,
// depending on which write path produced them; anything unparseable
// yields an empty list rather than an error.
func ParseStringList(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		if err := json.Unmarshal([]byte(v), &out); err != nil || out == nil {
			return []string{}
		}
		return out
	default:
		return []string{}
	}
}
