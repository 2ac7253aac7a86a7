package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// initSchema creates all required tables and indexes. Decimal values
// are stored as TEXT so they round-trip exactly.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS strategies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		underlying_symbol TEXT NOT NULL,
		underlying_price TEXT NOT NULL,
		risk_free_rate TEXT NOT NULL,
		expiry_years TEXT NOT NULL,
		dividend_yield TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS legs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		strategy_id INTEGER NOT NULL,
		strike TEXT NOT NULL,
		implied_volatility TEXT NOT NULL,
		premium TEXT NOT NULL,
		open_fee TEXT NOT NULL,
		close_fee TEXT NOT NULL,
		quantity TEXT NOT NULL,
		style TEXT NOT NULL,
		side TEXT NOT NULL,
		FOREIGN KEY (strategy_id) REFERENCES strategies(id)
	);

	CREATE TABLE IF NOT EXISTS adjustments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		strategy_id INTEGER NOT NULL,
		description TEXT NOT NULL,
		net_delta TEXT NOT NULL,
		applied INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (strategy_id) REFERENCES strategies(id)
	);

	CREATE INDEX IF NOT EXISTS idx_legs_strategy ON legs(strategy_id);
	CREATE INDEX IF NOT EXISTS idx_adjustments_strategy ON adjustments(strategy_id);
	CREATE INDEX IF NOT EXISTS idx_adjustments_applied ON adjustments(applied);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveStrategy persists a strategy and its legs in one transaction and
// returns the assigned id.
func (s *SQLiteStore) SaveStrategy(ctx context.Context, rec *StrategyRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO strategies (name, underlying_symbol, underlying_price, risk_free_rate, expiry_years, dividend_yield)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.Name, rec.UnderlyingSymbol, rec.UnderlyingPrice.String(),
		rec.RiskFreeRate.String(), rec.ExpiryYears.String(), rec.DividendYield.String())
	if err != nil {
		return 0, fmt.Errorf("failed to insert strategy: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read strategy id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO legs (strategy_id, strike, implied_volatility, premium, open_fee, close_fee, quantity, style, side)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, leg := range rec.Legs {
		_, err := stmt.ExecContext(ctx, id,
			leg.Strike.String(), leg.ImpliedVolatility.String(),
			leg.Premium.String(), leg.OpenFee.String(), leg.CloseFee.String(),
			leg.Quantity.String(), string(leg.Style), string(leg.Side))
		if err != nil {
			return 0, fmt.Errorf("failed to insert leg: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	rec.ID = id
	return id, nil
}

// GetStrategy retrieves one strategy with its legs.
func (s *SQLiteStore) GetStrategy(ctx context.Context, id int64) (*StrategyRecord, error) {
	rec := &StrategyRecord{ID: id}
	var price, rate, expiry, yield string
	err := s.db.QueryRowContext(ctx, `
		SELECT name, underlying_symbol, underlying_price, risk_free_rate, expiry_years, dividend_yield, created_at
		FROM strategies WHERE id = ?
	`, id).Scan(&rec.Name, &rec.UnderlyingSymbol, &price, &rate, &expiry, &yield, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: strategy %d", apperrors.ErrDataNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query strategy: %w", err)
	}
	if rec.UnderlyingPrice, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("failed to parse underlying price: %w", err)
	}
	if rec.RiskFreeRate, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("failed to parse risk free rate: %w", err)
	}
	if rec.ExpiryYears, err = decimal.NewFromString(expiry); err != nil {
		return nil, fmt.Errorf("failed to parse expiry: %w", err)
	}
	if rec.DividendYield, err = decimal.NewFromString(yield); err != nil {
		return nil, fmt.Errorf("failed to parse dividend yield: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT strike, implied_volatility, premium, open_fee, close_fee, quantity, style, side
		FROM legs WHERE strategy_id = ? ORDER BY id ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query legs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var leg LegRecord
		var strike, vol, premium, openFee, closeFee, qty, style, side string
		if err := rows.Scan(&strike, &vol, &premium, &openFee, &closeFee, &qty, &style, &side); err != nil {
			return nil, fmt.Errorf("failed to scan leg: %w", err)
		}
		fields := []struct {
			dst *decimal.Decimal
			src string
		}{
			{&leg.Strike, strike},
			{&leg.ImpliedVolatility, vol},
			{&leg.Premium, premium},
			{&leg.OpenFee, openFee},
			{&leg.CloseFee, closeFee},
			{&leg.Quantity, qty},
		}
		for _, f := range fields {
			d, err := decimal.NewFromString(f.src)
			if err != nil {
				return nil, fmt.Errorf("failed to parse leg value %q: %w", f.src, err)
			}
			*f.dst = d
		}
		leg.Style = models.OptionStyle(style)
		leg.Side = models.Side(side)
		rec.Legs = append(rec.Legs, leg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating legs: %w", err)
	}
	return rec, nil
}

// UpdateStrategyLegs replaces the stored legs of a strategy with the
// record's current legs, in one transaction.
func (s *SQLiteStore) UpdateStrategyLegs(ctx context.Context, rec *StrategyRecord) error {
	var exists int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM strategies WHERE id = ?`, rec.ID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: strategy %d", apperrors.ErrDataNotFound, rec.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to query strategy: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM legs WHERE strategy_id = ?`, rec.ID); err != nil {
		return fmt.Errorf("failed to clear legs: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO legs (strategy_id, strike, implied_volatility, premium, open_fee, close_fee, quantity, style, side)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, leg := range rec.Legs {
		_, err := stmt.ExecContext(ctx, rec.ID,
			leg.Strike.String(), leg.ImpliedVolatility.String(),
			leg.Premium.String(), leg.OpenFee.String(), leg.CloseFee.String(),
			leg.Quantity.String(), string(leg.Style), string(leg.Side))
		if err != nil {
			return fmt.Errorf("failed to insert leg: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListStrategies retrieves every stored strategy without legs.
func (s *SQLiteStore) ListStrategies(ctx context.Context) ([]StrategyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, underlying_symbol, underlying_price, created_at
		FROM strategies ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query strategies: %w", err)
	}
	defer rows.Close()

	var out []StrategyRecord
	for rows.Next() {
		var rec StrategyRecord
		var price string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.UnderlyingSymbol, &price, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan strategy: %w", err)
		}
		if rec.UnderlyingPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("failed to parse underlying price: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating strategies: %w", err)
	}
	return out, nil
}

// LogAdjustment appends one entry to the audit trail.
func (s *SQLiteStore) LogAdjustment(ctx context.Context, rec *AdjustmentRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO adjustments (strategy_id, description, net_delta, applied)
		VALUES (?, ?, ?, ?)
	`, rec.StrategyID, rec.Description, rec.NetDelta.String(), rec.Applied)
	if err != nil {
		return 0, fmt.Errorf("failed to insert adjustment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read adjustment id: %w", err)
	}
	rec.ID = id
	return id, nil
}

// GetAdjustments retrieves audit entries matching the filter, newest
// first.
func (s *SQLiteStore) GetAdjustments(ctx context.Context, filter AdjustmentFilter) ([]AdjustmentRecord, error) {
	query := `
		SELECT id, strategy_id, description, net_delta, applied, created_at
		FROM adjustments WHERE 1=1`
	var args []interface{}
	if filter.StrategyID != 0 {
		query += " AND strategy_id = ?"
		args = append(args, filter.StrategyID)
	}
	if filter.Applied != nil {
		query += " AND applied = ?"
		args = append(args, *filter.Applied)
	}
	query += " ORDER BY id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustments: %w", err)
	}
	defer rows.Close()

	var out []AdjustmentRecord
	for rows.Next() {
		var rec AdjustmentRecord
		var netDelta string
		if err := rows.Scan(&rec.ID, &rec.StrategyID, &rec.Description, &netDelta, &rec.Applied, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		if rec.NetDelta, err = decimal.NewFromString(netDelta); err != nil {
			return nil, fmt.Errorf("failed to parse net delta: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating adjustments: %w", err)
	}
	return out, nil
}
