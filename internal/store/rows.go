package store

// rows.go converts cleaned table rows into COPY input for sales_clean.
//
// The four known columns map to typed fields. Every other column is kept in
// the extra JSONB object so pass-through data like date_sold survives. A
// repeated label is keyed label.1, label.2 and so on.

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/salesclean/internal/core"
)

var copyColumns = []string{"run_id", "row_num", "prodname", "category", "price", "qty", "extra"}

func copyRows(runID string, t *core.Table) ([][]any, error) {
	id, err := toPgUUID(runID)
	if err != nil {
		return nil, err
	}

	known := map[string]bool{
		core.ColProdName: true,
		core.ColCategory: true,
		core.ColPrice:    true,
		core.ColQty:      true,
	}
	idx := make(map[string]int, len(known))
	for name := range known {
		i, ok := t.ColumnIndex(name)
		if !ok {
			return nil, fmt.Errorf("copy rows: column not found: %q", name)
		}
		idx[name] = i
	}

	rows := make([][]any, 0, t.Len())
	for n, row := range t.Rows {
		price, err := toPgNumeric(row[idx[core.ColPrice]])
		if err != nil {
			return nil, fmt.Errorf("copy rows: row %d price: %w", n+1, err)
		}
		qty, err := toPgNumeric(row[idx[core.ColQty]])
		if err != nil {
			return nil, fmt.Errorf("copy rows: row %d qty: %w", n+1, err)
		}

		extra := make(map[string]string)
		for i, col := range t.Columns {
			if known[col] {
				continue
			}
			key := col
			for n := 1; ; n++ {
				if _, taken := extra[key]; !taken {
					break
				}
				key = fmt.Sprintf("%s.%d", col, n)
			}
			extra[key] = row[i].String()
		}

		rows = append(rows, []any{
			id,
			int32(n + 1),
			toPgText(row[idx[core.ColProdName]]),
			toPgText(row[idx[core.ColCategory]]),
			price,
			qty,
			extra,
		})
	}
	return rows, nil
}

// toPgUUID parses a run id.
func toPgUUID(s string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("invalid run id %q: %w", s, err)
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

// toPgText maps missing cells to NULL. Empty text stays an empty string.
func toPgText(v core.Value) pgtype.Text {
	if v.IsMissing() {
		return pgtype.Text{}
	}
	return pgtype.Text{String: v.String(), Valid: true}
}

// toPgNumeric requires a coerced number; cleaned rows never hold anything else
// in their numeric columns.
func toPgNumeric(v core.Value) (pgtype.Numeric, error) {
	if v.Kind != core.KindNumber {
		return pgtype.Numeric{}, fmt.Errorf("not a number: %+v", v)
	}
	switch {
	case math.IsInf(v.Num, 1):
		return pgtype.Numeric{InfinityModifier: pgtype.Infinity, Valid: true}, nil
	case math.IsInf(v.Num, -1):
		return pgtype.Numeric{InfinityModifier: pgtype.NegativeInfinity, Valid: true}, nil
	}
	var n pgtype.Numeric
	if err := n.Scan(core.FormatNumber(v.Num)); err != nil {
		return pgtype.Numeric{}, err
	}
	return n, nil
}
