package diff

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/deepdist/size"
	"github.com/hupe1980/deepdist/testutil"
)

type person struct {
	Name string
	Age  int
	note string
}

func TestDiff(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t1   any
		t2   any
		want Report
	}{
		{"Identical", []int{1, 2, 3}, []int{1, 2, 3}, Report{}},
		{"BothNil", nil, nil, Report{}},
		{
			"ValueChanged",
			[]int{1, 2, 3}, []int{1, 5, 3},
			Report{ValuesChanged: map[string]any{"root[1]": map[string]any{"new_value": 5}}},
		},
		{
			"TypeChanged",
			map[string]any{"a": 1}, map[string]any{"a": "1"},
			Report{TypeChanges: map[string]any{"root['a']": map[string]any{
				"old_type":  reflect.TypeOf(0),
				"new_type":  reflect.TypeOf(""),
				"new_value": "1",
			}}},
		},
		{
			"DictionaryItems",
			map[string]int{"a": 1, "b": 2}, map[string]int{"b": 2, "c": 3},
			Report{
				DictionaryItemAdded:   map[string]any{"root['c']": 3},
				DictionaryItemRemoved: map[string]any{"root['a']": 1},
			},
		},
		{
			"IntKeys",
			map[int]string{1: "x"}, map[int]string{1: "y"},
			Report{ValuesChanged: map[string]any{"root[1]": map[string]any{"new_value": "y"}}},
		},
		{
			"IterableItemAdded",
			[]string{"a"}, []string{"a", "b"},
			Report{IterableItemAdded: map[string]any{"root[1]": "b"}},
		},
		{
			"IterableItemRemoved",
			[]string{"a", "b"}, []string{"a"},
			Report{IterableItemRemoved: map[string]any{"root[1]": "b"}},
		},
		{
			"StructFields",
			person{Name: "ann", Age: 30, note: "x"}, person{Name: "ann", Age: 31, note: "y"},
			Report{ValuesChanged: map[string]any{"root.Age": map[string]any{"new_value": 31}}},
		},
		{
			"PointerFollowed",
			&person{Name: "ann"}, &person{Name: "bob"},
			Report{ValuesChanged: map[string]any{"root.Name": map[string]any{"new_value": "bob"}}},
		},
		{"EqualInstants", now, now.In(time.FixedZone("X", 3600)), Report{}},
		{
			"Bytes",
			[]byte("ab"), []byte("ac"),
			Report{ValuesChanged: map[string]any{"root": map[string]any{"new_value": []byte("ac")}}},
		},
	}

	d := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Diff(tt.t1, tt.t2, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiffIgnoreOrder(t *testing.T) {
	d := New()

	t.Run("Reordered", func(t *testing.T) {
		got, err := d.Diff([]int{1, 2, 3}, []int{3, 1, 2}, Options{IgnoreOrder: true})
		require.NoError(t, err)
		assert.True(t, got.Empty())
	})

	t.Run("AddedAndRemoved", func(t *testing.T) {
		got, err := d.Diff([]any{1, "x", 3}, []any{3, 1, 4.5}, Options{IgnoreOrder: true})
		require.NoError(t, err)
		assert.Equal(t, Report{
			IterableItemsAddedAtIndexes: map[string]any{"root": map[int]any{2: 4.5}},
			IterableItemsRemovedAtIndex: map[string]any{"root": map[int]any{1: "x"}},
		}, got)
	})

	t.Run("RepetitionIgnored", func(t *testing.T) {
		got, err := d.Diff([]int{1, 1, 2}, []int{1, 2}, Options{IgnoreOrder: true})
		require.NoError(t, err)
		assert.True(t, got.Empty())
	})

	t.Run("RepetitionReported", func(t *testing.T) {
		got, err := d.Diff([]int{1, 1, 2}, []int{1, 2}, Options{IgnoreOrder: true, ReportRepetition: true})
		require.NoError(t, err)
		assert.Equal(t, Report{
			RepetitionChange: map[string]any{"root[0]": map[string]any{
				"old_repeat": 2,
				"new_repeat": 1,
				"value":      1,
			}},
		}, got)
	})
}

func TestDiffCycles(t *testing.T) {
	a := testutil.Cyclic()
	b := testutil.Cyclic()
	b["a"] = 2

	got, err := New().Diff(a, b, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"root['a']"}, got.Paths(ValuesChanged))
}

func TestReportSize(t *testing.T) {
	t1 := make([]int, 10)
	t2 := make([]int, 10)
	for i := range t1 {
		t1[i], t2[i] = i, i
	}
	t2[4] = 99

	got, err := New().Diff(t1, t2, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, size.Of(got))
}

func TestReportRender(t *testing.T) {
	got, err := New().Diff([]any{1, "a"}, []any{1.5, "b", 3}, Options{})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		TypeChanges: map[string]any{"root[0]": map[string]any{
			"old_type":  "int",
			"new_type":  "float64",
			"new_value": 1.5,
		}},
		ValuesChanged:     map[string]any{"root[1]": map[string]any{"new_value": "b"}},
		IterableItemAdded: map[string]any{"root[2]": 3},
	}, got.Render())

	unordered, err := New().Diff([]int{1}, []int{2}, Options{IgnoreOrder: true})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"root": map[string]any{"0": 2}}, unordered.Render()[IterableItemsAddedAtIndexes])
}
