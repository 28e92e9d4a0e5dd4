package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/gradebook/core"
)

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Hello World", core.CleanString(" \tHello World\n"))
	assert.Equal(t, "hello world", core.CleanString(" Hello World ", true))
	assert.Equal(t, "", core.CleanString("   "))
}

func TestParseOrderings(t *testing.T) {
	tests := []struct {
		name string
		val  string
		want []core.Ordering
	}{
		{name: "empty", val: "", want: nil},
		{name: "single", val: "name", want: []core.Ordering{{Field: "name", Ascending: true}}},
		{
			name: "many", val: " name , -id",
			want: []core.Ordering{{Field: "name", Ascending: true}, {Field: "id", Ascending: false}},
		},
		{name: "skip blanks", val: ",-,id,", want: []core.Ordering{{Field: "id", Ascending: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, core.ParseOrderings(tt.val))
		})
	}

	assert.Equal(t, "-id", core.Ordering{Field: "id"}.String())
	assert.Equal(t, "id", core.Ordering{Field: "id", Ascending: true}.String())
}

func TestSortBy(t *testing.T) {
	type item struct {
		name string
		age  int
	}
	compare := func(items []item) func(string, int, int) int {
		return func(field string, i, j int) int {
			a, b := items[i], items[j]
			switch field {
			case "name":
				switch {
				case a.name < b.name:
					return -1
				case a.name > b.name:
					return 1
				}
			case "age":
				return a.age - b.age
			}
			return 0
		}
	}
	sortItems := func(items []item, orderings ...core.Ordering) []item {
		core.SortBy(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] }, compare(items), orderings)
		return items
	}
	newItems := func() []item {
		return []item{{"bob", 30}, {"alice", 30}, {"carl", 20}, {"alice", 10}}
	}

	tests := []struct {
		name      string
		orderings []core.Ordering
		want      []item
	}{
		{name: "no orderings keeps order", want: newItems()},
		{name: "unknown field keeps order", orderings: core.ParseOrderings("lol"), want: newItems()},
		{
			name: "name (stable)", orderings: core.ParseOrderings("name"),
			want: []item{{"alice", 30}, {"alice", 10}, {"bob", 30}, {"carl", 20}},
		},
		{
			name: "name,-age", orderings: core.ParseOrderings("name,-age"),
			want: []item{{"alice", 30}, {"alice", 10}, {"bob", 30}, {"carl", 20}},
		},
		{
			name: "-age,name", orderings: core.ParseOrderings("-age,name"),
			want: []item{{"alice", 30}, {"bob", 30}, {"carl", 20}, {"alice", 10}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sortItems(newItems(), tt.orderings...))
		})
	}
}
