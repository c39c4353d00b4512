package seat

import "fmt"

// rows of the room and the number of seats in each
var rows = []struct {
	name  string
	seats int
}{
	{"A", 6},
	{"B", 6},
	{"C", 4},
	{"D", 2},
}

// Layout lists every seat id in display order: A1..A6, B1..B6, C1..C4, D1..D2.
var Layout = buildLayout()

var known = func() map[string]bool {
	m := make(map[string]bool, len(Layout))
	for _, id := range Layout {
		m[id] = true
	}
	return m
}()

func buildLayout() []string {
	var out []string
	for _, r := range rows {
		for i := 1; i <= r.seats; i++ {
			out = append(out, fmt.Sprintf("%s%d", r.name, i))
		}
	}
	return out
}

// ValidSeat reports whether id is part of the room layout.
func ValidSeat(id string) bool {
	return known[id]
}
