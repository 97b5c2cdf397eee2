package dataset

import (
	"context"
	"database/sql"
	"strings"

	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
)

// ReadSQL reads every row of table and builds a frame with Infer. Column
// names become the header. The driver behind db must already be
// registered by the caller (sqlite3 and postgres are used by the CLI).
func ReadSQL(ctx context.Context, db *sql.DB, table, label string, task Task, opts ...Option) (*Frame, error) {
	header, records, err := queryAll(ctx, db, table)
	if err != nil {
		return nil, err
	}
	return Infer(header, records, label, task, opts...)
}

func queryAll(ctx context.Context, db *sql.DB, table string) ([]string, [][]string, error) {
	const op = "dataset.ReadSQL"

	if table == "" || strings.ContainsAny(table, `"`) {
		return nil, nil, scierrors.NewValidationError("table", `must be non-empty and not contain '"'`, table)
	}
	rows, err := db.QueryContext(ctx, `SELECT * FROM "`+table+`"`)
	if err != nil {
		return nil, nil, scierrors.Wrapf(err, "%s: querying %s", op, table)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, nil, scierrors.Wrapf(err, "%s: reading columns", op)
	}

	var records [][]string
	cells := make([]sql.NullString, len(header))
	dest := make([]interface{}, len(header))
	for i := range cells {
		dest[i] = &cells[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, scierrors.Wrapf(err, "%s: scanning row %d", op, len(records))
		}
		rec := make([]string, len(cells))
		for i, c := range cells {
			// NULL は空文字列として扱い、Infer で欠損値エラーになる
			if c.Valid {
				rec[i] = c.String
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, scierrors.Wrapf(err, "%s: iterating rows", op)
	}
	return header, records, nil
}
