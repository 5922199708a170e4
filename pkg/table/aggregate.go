package table

// Aggregate groups points by exact timestamp and reduces each group to
// min, max and arithmetic mean. Values from different parameters that share
// a timestamp are pooled together.
//
// Rows appear in order of each timestamp's first occurrence in points; the
// result is not sorted chronologically.
func Aggregate(points []Point) *Table {
	type group struct {
		row   Row
		sum   float64
		count int
	}

	index := make(map[int64]int, len(points))
	groups := make([]*group, 0, len(points))

	for _, p := range points {
		key := p.Timestamp.UnixNano()
		i, ok := index[key]
		if !ok {
			index[key] = len(groups)
			groups = append(groups, &group{
				row: Row{Timestamp: p.Timestamp, Min: p.Value, Max: p.Value},
			})
			i = len(groups) - 1
		}

		g := groups[i]
		if p.Value < g.row.Min {
			g.row.Min = p.Value
		}
		if p.Value > g.row.Max {
			g.row.Max = p.Value
		}
		g.sum += p.Value
		g.count++
	}

	rows := make([]Row, 0, len(groups))
	for _, g := range groups {
		g.row.Avg = g.sum / float64(g.count)
		rows = append(rows, g.row)
	}

	return New(rows)
}
