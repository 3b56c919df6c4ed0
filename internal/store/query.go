package store

import (
	"fmt"
	"strings"
)

// listClause renders the WHERE/ORDER/LIMIT tail shared by the transaction
// listings. accountCols are OR-ed so a transfer matches on either side.
func listClause(dateCol string, accountCols []string, q ListQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if q.Start != "" {
		conds = append(conds, dateCol+" >= ?")
		args = append(args, q.Start)
	}
	if q.End != "" {
		conds = append(conds, dateCol+" <= ?")
		args = append(args, q.End)
	}
	if q.AccountKey != 0 && len(accountCols) > 0 {
		var ors []string
		for _, col := range accountCols {
			ors = append(ors, col+" = ?")
			args = append(args, q.AccountKey)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	var sb strings.Builder
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	fmt.Fprintf(&sb, " ORDER BY %s DESC, t.key DESC", dateCol)
	if q.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}
	return sb.String(), args
}
