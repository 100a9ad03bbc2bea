package adminform

import (
	"reflect"
	"testing"
)

func TestListField_Add(t *testing.T) {
	f := NewListField([]string{"a"})
	f.Add()

	if got := f.Items(); !reflect.DeepEqual(got, []string{"a", ""}) {
		t.Errorf("items: got %v", got)
	}
}

func TestListField_Update(t *testing.T) {
	f := NewListField([]string{"a", "b"})

	f.Update(1, "c")
	if got := f.Items(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("items: got %v", got)
	}

	// Out-of-bounds updates are silent no-ops.
	f.Update(5, "x")
	f.Update(-1, "y")
	if got := f.Items(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("items after out-of-bounds updates: got %v", got)
	}
}

func TestListField_Remove(t *testing.T) {
	f := NewListField([]string{"a", "b", "c"})

	f.Remove(1)
	if got := f.Items(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("items: got %v", got)
	}

	f.Remove(9)
	if f.Len() != 2 {
		t.Errorf("out-of-bounds remove changed length: %d", f.Len())
	}
}

func TestListField_Remove_LastElement(t *testing.T) {
	// Removing the only entry resets to one empty row, never an empty
	// list.
	f := NewListField([]string{"x"})
	f.Remove(0)

	if got := f.Items(); !reflect.DeepEqual(got, []string{""}) {
		t.Errorf("items: got %v, want [\"\"]", got)
	}
}

func TestListField_Clean(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  []string
	}{
		{"strips whitespace-only entries", []string{"a", "  ", "", "b"}, []string{"a", "b"}},
		{"all placeholders", []string{"", "   "}, []string{}},
		{"preserves order", []string{"c", "a", "b"}, []string{"c", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewListField(tt.items)
			if got := f.Clean(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Clean() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewListField_Empty(t *testing.T) {
	for _, items := range [][]string{nil, {}} {
		f := NewListField(items)
		if got := f.Items(); !reflect.DeepEqual(got, []string{""}) {
			t.Errorf("NewListField(%v).Items() = %v, want [\"\"]", items, got)
		}
	}
}

func TestNewListField_CopiesInput(t *testing.T) {
	src := []string{"a"}
	f := NewListField(src)
	src[0] = "mutated"

	if got := f.Items(); got[0] != "a" {
		t.Errorf("field shares backing array with input: %v", got)
	}
}
