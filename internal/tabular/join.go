package tabular

import (
	"fmt"
	"strings"
)

// JoinSpec names a left join step and its conflict rule. Right-hand columns
// whose name already exists on the left are renamed with Suffix. With
// FirstMatch set, only the first right row per key is used, so left rows
// never fan out.
type JoinSpec struct {
	Name       string
	Keys       []string
	Suffix     string
	FirstMatch bool
}

// LeftJoin keeps every left row in order. Unmatched rows get empty right cells.
func LeftJoin(left, right *Table, spec JoinSpec) (*Table, error) {
	if len(spec.Keys) == 0 {
		return nil, fmt.Errorf("join %s: no keys", spec.Name)
	}
	if err := left.Require(spec.Keys...); err != nil {
		return nil, fmt.Errorf("join %s: %w", spec.Name, err)
	}
	if err := right.Require(spec.Keys...); err != nil {
		return nil, fmt.Errorf("join %s: %w", spec.Name, err)
	}

	isKey := make(map[string]bool, len(spec.Keys))
	for _, k := range spec.Keys {
		isKey[k] = true
	}

	columns := append([]string(nil), left.Columns...)
	var carried []int
	for i, c := range right.Columns {
		if isKey[c] {
			continue
		}
		name := c
		if left.Has(c) {
			name = c + spec.Suffix
		}
		columns = append(columns, name)
		carried = append(carried, i)
	}

	matches := make(map[string][]int)
	for i := range right.Rows {
		k := joinKey(right, i, spec.Keys)
		if spec.FirstMatch && len(matches[k]) > 0 {
			continue
		}
		matches[k] = append(matches[k], i)
	}

	out := New(left.Name, columns)
	for i, row := range left.Rows {
		hits := matches[joinKey(left, i, spec.Keys)]
		if len(hits) == 0 {
			out.Append(row)
			continue
		}
		for _, j := range hits {
			cells := make([]string, 0, len(columns))
			cells = append(cells, row...)
			for _, c := range carried {
				cells = append(cells, right.Rows[j][c])
			}
			out.Append(cells)
		}
	}
	return out, nil
}

func joinKey(t *Table, row int, keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = t.Value(row, k)
	}
	return strings.Join(parts, "\x1f")
}
