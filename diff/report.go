package diff

import (
	"reflect"
	"strconv"
)

// Operation names used as top-level report keys.
const (
	ValuesChanged               = "values_changed"
	TypeChanges                 = "type_changes"
	DictionaryItemAdded         = "dictionary_item_added"
	DictionaryItemRemoved       = "dictionary_item_removed"
	IterableItemAdded           = "iterable_item_added"
	IterableItemRemoved         = "iterable_item_removed"
	IterableItemsAddedAtIndexes = "iterable_items_added_at_indexes"
	IterableItemsRemovedAtIndex = "iterable_items_removed_at_indexes"
	RepetitionChange            = "repetition_change"
)

// Report is a delta-view diff report.
type Report map[string]any

// Empty reports whether no operation was recorded.
func (r Report) Empty() bool {
	return len(r) == 0
}

func (r Report) section(op string) map[string]any {
	s, ok := r[op].(map[string]any)
	if !ok {
		s = make(map[string]any)
		r[op] = s
	}
	return s
}

func (r Report) set(op, path string, v any) {
	r.section(op)[path] = v
}

// Paths returns the paths recorded under op.
func (r Report) Paths(op string) []string {
	s, _ := r[op].(map[string]any)
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	return out
}

// Render returns a copy of r that encodes cleanly: types become their
// names and integer map keys become strings.
func (r Report) Render() map[string]any {
	out, _ := render(map[string]any(r)).(map[string]any)
	return out
}

func render(v any) any {
	switch t := v.(type) {
	case Report:
		return render(map[string]any(t))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = render(e)
		}
		return out
	case map[int]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[strconv.Itoa(k)] = render(e)
		}
		return out
	case reflect.Type:
		return t.String()
	default:
		return v
	}
}
