package rowstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Postgres keeps every sheet as numbered rows of text cells in a single
// table, preserving the positional addressing of the spreadsheet it mirrors:
//
//	sheet_cells(sheet_name TEXT, row_num INT, cells TEXT[])
//
// Deleting a row renumbers the rows below it, exactly like removing a row
// from a worksheet.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to the database, verifies the connection and makes
// sure the cells table and the header row of every sheet exist.
func OpenPostgres(host, port, user, password, dbname, sslmode string) (*Postgres, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", ErrStoreUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: connecting to database: %v", ErrStoreUnavailable, err)
	}

	p := &Postgres{db: db}
	if err := p.ensureSheets(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Postgres) ensureSheets() error {
	_, err := p.db.Exec(`CREATE TABLE IF NOT EXISTS sheet_cells (
		sheet_name TEXT NOT NULL,
		row_num    INT  NOT NULL,
		cells      TEXT[] NOT NULL,
		-- deferred so that renumbering after a row delete can move several
		-- rows in one statement without transient key collisions
		PRIMARY KEY (sheet_name, row_num) DEFERRABLE INITIALLY DEFERRED
	)`)
	if err != nil {
		return fmt.Errorf("%w: creating sheet_cells: %v", ErrStoreUnavailable, err)
	}

	for sheet, headers := range SheetHeaders {
		_, err := p.db.Exec(
			`INSERT INTO sheet_cells (sheet_name, row_num, cells)
			 VALUES ($1, 1, $2)
			 ON CONFLICT (sheet_name, row_num) DO NOTHING`,
			sheet, pq.Array(headers),
		)
		if err != nil {
			return fmt.Errorf("%w: seeding headers for %s: %v", ErrStoreUnavailable, sheet, err)
		}
	}
	return nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) ListRows(ctx context.Context, sheet string) ([][]string, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT cells FROM sheet_cells WHERE sheet_name = $1 ORDER BY row_num`, sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: listing rows of %s: %v", ErrStoreUnavailable, sheet, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var cells pq.StringArray
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("%w: scanning row of %s: %v", ErrStoreUnavailable, sheet, err)
		}
		out = append(out, []string(cells))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading rows of %s: %v", ErrStoreUnavailable, sheet, err)
	}
	if len(out) == 0 {
		return nil, ErrSheetNotFound
	}
	return out, nil
}

func (p *Postgres) AppendRow(ctx context.Context, sheet string, cells []string) error {
	res, err := p.db.ExecContext(ctx,
		`INSERT INTO sheet_cells (sheet_name, row_num, cells)
		 SELECT $1, COALESCE(MAX(row_num), 0) + 1, $2
		 FROM sheet_cells WHERE sheet_name = $1
		 HAVING COALESCE(MAX(row_num), 0) >= 1`,
		sheet, pq.Array(cells),
	)
	if err != nil {
		return fmt.Errorf("%w: appending to %s: %v", ErrStoreUnavailable, sheet, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: appending to %s: %v", ErrStoreUnavailable, sheet, err)
	}
	if affected == 0 {
		return ErrSheetNotFound
	}
	return nil
}

func (p *Postgres) UpdateCell(ctx context.Context, sheet string, row, col int, value string) error {
	if row < 2 || col < 1 {
		return ErrRowOutOfRange
	}
	// Postgres arrays are 1-based, matching the sheet column numbering.
	// Assigning past the current length extends the array with NULLs.
	res, err := p.db.ExecContext(ctx,
		`UPDATE sheet_cells SET cells[`+fmt.Sprintf("%d", col)+`] = $3
		 WHERE sheet_name = $1 AND row_num = $2`,
		sheet, row, value,
	)
	if err != nil {
		return fmt.Errorf("%w: updating cell (%d,%d) of %s: %v", ErrStoreUnavailable, row, col, sheet, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: updating cell of %s: %v", ErrStoreUnavailable, sheet, err)
	}
	if affected == 0 {
		return ErrRowOutOfRange
	}
	return nil
}

func (p *Postgres) DeleteRow(ctx context.Context, sheet string, row int) error {
	if row < 2 {
		return ErrRowOutOfRange
	}
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: starting delete of %s row %d: %v", ErrStoreUnavailable, sheet, row, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM sheet_cells WHERE sheet_name = $1 AND row_num = $2`, sheet, row)
	if err != nil {
		return fmt.Errorf("%w: deleting %s row %d: %v", ErrStoreUnavailable, sheet, row, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deleting %s row %d: %v", ErrStoreUnavailable, sheet, row, err)
	}
	if affected == 0 {
		return ErrRowOutOfRange
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE sheet_cells SET row_num = row_num - 1
		 WHERE sheet_name = $1 AND row_num > $2`, sheet, row)
	if err != nil {
		return fmt.Errorf("%w: renumbering %s after row %d: %v", ErrStoreUnavailable, sheet, row, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing delete of %s row %d: %v", ErrStoreUnavailable, sheet, row, err)
	}
	return nil
}
