package equality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type point struct {
	X, Y int
}

type labelled struct {
	Label string
	Tags  []string
	Inner *point
	hint  string
}

type labelledAlias struct {
	Label string
	Tags  []string
	Inner *point
	hint  string
}

func TestIdentical(t *testing.T) {
	p := &point{1, 2}
	tags := []string{"a"}
	m := map[string]int{"a": 1}
	ch := make(chan int)
	fn := func() {}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil nil", nil, nil, true},
		{"nil vs zero", nil, 0, false},
		{"ints", 1, 1, true},
		{"different ints", 1, 2, false},
		{"int vs int64", 1, int64(1), false},
		{"strings", "x", "x", true},
		{"same pointer", p, p, true},
		{"equal pointees", p, &point{1, 2}, false},
		{"same slice", tags, tags, true},
		{"resliced", tags, tags[:0], false},
		{"copied slice", tags, []string{"a"}, false},
		{"same map", m, m, true},
		{"equal maps", m, map[string]int{"a": 1}, false},
		{"same chan", ch, ch, true},
		{"func", fn, fn, false},
		{"nil funcs", (func())(nil), (func())(nil), true},
		{"struct values", point{1, 2}, point{1, 2}, true},
		{"arrays", [2]int{1, 2}, [2]int{1, 2}, true},
		{"NaN", nanValue(), nanValue(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Identical(tt.a, tt.b))
		})
	}
}

func nanValue() float64 {
	zero := 0.0
	return zero / zero
}

func TestShallow_Maps(t *testing.T) {
	inner := map[string]int{"n": 1}

	assert.True(t, Shallow(map[string]any{"count": 1}, map[string]any{"count": 1}))
	assert.True(t, Shallow(map[string]any{}, map[string]any{}))
	assert.True(t, Shallow(map[string]any{"inner": inner}, map[string]any{"inner": inner}))

	assert.False(t, Shallow(map[string]any{"count": 1}, map[string]any{"count": 2}))
	assert.False(t, Shallow(map[string]any{"count": 1}, map[string]any{"count": 1, "extra": 2}))
	assert.False(t, Shallow(map[string]any{"a": 1}, map[string]any{"b": 1}))
	assert.False(t, Shallow(map[string]any{"a": 1}, map[int]any{1: 1}))
}

func TestShallow_DoesNotRecurse(t *testing.T) {
	a := map[string]any{"inner": map[string]int{"n": 1}}
	b := map[string]any{"inner": map[string]int{"n": 1}}
	assert.False(t, Shallow(a, b), "nested maps must be compared by reference")

	x := labelled{Label: "x", Inner: &point{1, 2}}
	y := labelled{Label: "x", Inner: &point{1, 2}}
	assert.False(t, Shallow(x, y), "nested pointers must be compared by reference")
}

func TestShallow_Structs(t *testing.T) {
	shared := &point{3, 4}
	tags := []string{"a", "b"}

	a := &labelled{Label: "x", Tags: tags, Inner: shared, hint: "h"}
	b := &labelled{Label: "x", Tags: tags, Inner: shared, hint: "h"}
	assert.True(t, Shallow(a, b))
	assert.True(t, Shallow(*a, *b))

	c := &labelled{Label: "x", Tags: tags, Inner: shared, hint: "other"}
	assert.False(t, Shallow(a, c))

	d := &labelledAlias{Label: "x", Tags: tags, Inner: shared, hint: "h"}
	assert.True(t, Shallow(a, d), "structs with the same keys and identical values are equivalent")

	assert.False(t, Shallow(point{1, 2}, map[string]any{"X": 1, "Y": 2}))
	assert.False(t, Shallow((*point)(nil), &point{}))
}

func TestShallow_NonRecords(t *testing.T) {
	assert.True(t, Shallow(1, 1))
	assert.False(t, Shallow(1, 2))
	assert.True(t, Shallow("a", "a"))
	assert.False(t, Shallow([]int{1}, []int{1}))
	assert.False(t, Shallow(nil, map[string]any{}))
	assert.True(t, Shallow(nil, nil))
}

func TestShallow_Property(t *testing.T) {
	values := []any{1, "one", nil}
	for _, va := range values {
		for _, vb := range values {
			a := map[string]any{"k": va}
			b := map[string]any{"k": vb}
			assert.Equal(t, Identical(va, vb), Shallow(a, b), "%v vs %v", va, vb)
		}
	}
}

func TestFunc(t *testing.T) {
	eq := Func[point]()
	assert.True(t, eq(point{1, 1}, point{1, 1}))
	assert.False(t, eq(point{1, 1}, point{1, 2}))
}
