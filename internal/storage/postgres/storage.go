package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/hypnotizedent/printshop-os-sub005/internal/domain/errors"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/repository"
	"github.com/hypnotizedent/printshop-os-sub005/internal/query"
)

// DB is the subset of pgxpool.Pool the storage layer needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   DB
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type approvalRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

// Order numbers are sequential with a printed-invoice prefix, offset so
// the first order is P-1001.
const orderNumberBase = 1000

// newPgxPool is a seam for tests to substitute the connection pool.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (DB, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

var _ repository.Factory = (*Storage)(nil)

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Approvals() repository.ApprovalRepository {
	return &approvalRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            public_id UUID UNIQUE NOT NULL,
            user_id BIGINT NOT NULL REFERENCES users(id),
            number TEXT UNIQUE,
            nickname TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            due_date TIMESTAMPTZ,
            subtotal DOUBLE PRECISION NOT NULL DEFAULT 0,
            tax DOUBLE PRECISION NOT NULL DEFAULT 0,
            shipping_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
            discount DOUBLE PRECISION NOT NULL DEFAULT 0,
            fees DOUBLE PRECISION NOT NULL DEFAULT 0,
            total DOUBLE PRECISION NOT NULL DEFAULT 0,
            amount_paid DOUBLE PRECISION NOT NULL DEFAULT 0,
            outstanding DOUBLE PRECISION NOT NULL DEFAULT 0,
            shipping JSONB,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS line_items (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            description TEXT NOT NULL,
            quantity INT NOT NULL,
            unit_price DOUBLE PRECISION NOT NULL,
            total DOUBLE PRECISION NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS approvals (
            id UUID PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            kind TEXT NOT NULL,
            signature TEXT NOT NULL DEFAULT '',
            name TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            reason TEXT NOT NULL DEFAULT '',
            comments TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id BIGSERIAL PRIMARY KEY,
            sku TEXT UNIQUE NOT NULL,
            supplier TEXT NOT NULL DEFAULT '',
            name TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL DEFAULT '',
            unit_price DOUBLE PRECISION NOT NULL DEFAULT 0,
            inventory INT NOT NULL DEFAULT 0,
            synced_at TIMESTAMPTZ,
            sync_started_at TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(user_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_line_items_order ON line_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_approvals_order ON approvals(order_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Email = email
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE email=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, public_id, user_id, number, nickname, status, due_date,
                      subtotal, tax, shipping_cost, discount, fees, total, amount_paid, outstanding,
                      shipping, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var o model.Order
	var shipping []byte
	err := row.Scan(
		&o.ID, &o.PublicID, &o.UserID, &o.Number, &o.Nickname, &o.Status, &o.DueDate,
		&o.Totals.Subtotal, &o.Totals.Tax, &o.Totals.Shipping, &o.Totals.Discount,
		&o.Totals.Fees, &o.Totals.Total, &o.Totals.AmountPaid, &o.Totals.Outstanding,
		&shipping, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(shipping) > 0 {
		var addr model.Address
		if err := json.Unmarshal(shipping, &addr); err != nil {
			return nil, fmt.Errorf("decode shipping address: %w", err)
		}
		o.Shipping = &addr
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	stored := *order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var shipping []byte
		if order.Shipping != nil {
			encoded, err := json.Marshal(order.Shipping)
			if err != nil {
				return fmt.Errorf("encode shipping address: %w", err)
			}
			shipping = encoded
		}

		const insertOrder = `INSERT INTO orders
            (public_id, user_id, nickname, status, due_date,
             subtotal, tax, shipping_cost, discount, fees, total, amount_paid, outstanding, shipping)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
            RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.PublicID, order.UserID, order.Nickname, order.Status, order.DueDate,
			order.Totals.Subtotal, order.Totals.Tax, order.Totals.Shipping, order.Totals.Discount,
			order.Totals.Fees, order.Totals.Total, order.Totals.AmountPaid, order.Totals.Outstanding,
			shipping,
		).Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
		if err != nil {
			return err
		}

		stored.Number = fmt.Sprintf("P-%d", orderNumberBase+stored.ID)
		if _, err := tx.Exec(ctx, `UPDATE orders SET number=$1 WHERE id=$2`, stored.Number, stored.ID); err != nil {
			return err
		}

		const insertItem = `INSERT INTO line_items (order_id, description, quantity, unit_price, total)
                            VALUES ($1, $2, $3, $4, $5) RETURNING id`
		stored.Items = make([]model.LineItem, len(order.Items))
		for i, item := range order.Items {
			item.OrderID = stored.ID
			err := tx.QueryRow(ctx, insertItem, stored.ID, item.Description, item.Quantity, item.UnitPrice, item.Total).
				Scan(&item.ID)
			if err != nil {
				return err
			}
			stored.Items[i] = item
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *orderRepository) GetByPublicID(ctx context.Context, userID int64, publicID uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 AND public_id=$2`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, userID, publicID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID int64) ([]model.LineItem, error) {
	const query = `SELECT id, order_id, description, quantity, unit_price, total
                   FROM line_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.LineItem
	for rows.Next() {
		var item model.LineItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.Description, &item.Quantity, &item.UnitPrice, &item.Total); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// listFilter renders the criteria into a WHERE tail shared by the count
// and page queries.
func listFilter(userID int64, c query.Criteria) (string, []any) {
	clause := ` FROM orders WHERE user_id=$1`
	args := []any{userID}

	if c.Status != "" {
		args = append(args, c.Status)
		clause += fmt.Sprintf(" AND status=$%d", len(args))
	}
	if c.From != nil {
		args = append(args, *c.From)
		clause += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if c.To != nil {
		args = append(args, *c.To)
		clause += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	if term := strings.TrimSpace(c.Search); term != "" {
		args = append(args, "%"+term+"%")
		clause += fmt.Sprintf(" AND (number ILIKE $%d OR nickname ILIKE $%d)", len(args), len(args))
	}
	return clause, args
}

// orderClause maps the sort key onto a whitelisted column. Anything
// unrecognized falls back to newest-first. Numbers derive from the id
// sequence, so sorting by id gives numeric instead of lexicographic
// order once numbers cross a digit boundary.
func orderClause(key query.SortKey, dir query.Direction) string {
	column := "created_at"
	switch key {
	case query.SortByTotal:
		column = "total"
	case query.SortByNumber:
		column = "id"
	case query.SortByCreated:
		column = "created_at"
	}
	direction := "DESC"
	if dir == query.Asc {
		direction = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, direction)
}

func (r *orderRepository) List(ctx context.Context, userID int64, c query.Criteria, page, limit int) ([]model.Order, query.Pagination, error) {
	filter, args := listFilter(userID, c)

	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*)`+filter, args...).Scan(&total); err != nil {
		return nil, query.Pagination{}, err
	}

	p := query.NewPagination(page, limit, total)

	pageQuery := `SELECT ` + orderColumns + filter + orderClause(c.Sort, c.Dir) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, p.Limit, p.Offset())

	rows, err := r.storage.pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, query.Pagination{}, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, query.Pagination{}, err
	}
	return result, p, nil
}

func (r *orderRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.Status) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- ApprovalRepository implementation ---

func (r *approvalRepository) Create(ctx context.Context, approval *model.Approval) (*model.Approval, error) {
	const query = `INSERT INTO approvals (id, order_id, kind, signature, name, email, reason, comments)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at`
	stored := *approval
	err := r.storage.pool.QueryRow(ctx, query,
		approval.ID, approval.OrderID, approval.Kind, approval.Signature,
		approval.Name, approval.Email, approval.Reason, approval.Comments,
	).Scan(&stored.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *approvalRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.Approval, error) {
	const query = `SELECT id, order_id, kind, signature, name, email, reason, comments, created_at
                   FROM approvals WHERE order_id=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Approval
	for rows.Next() {
		var a model.Approval
		if err := rows.Scan(&a.ID, &a.OrderID, &a.Kind, &a.Signature, &a.Name, &a.Email, &a.Reason, &a.Comments, &a.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ProductRepository implementation ---

func scanProduct(row rowScanner) (*model.Product, error) {
	var p model.Product
	var syncedAt *time.Time
	err := row.Scan(&p.ID, &p.SKU, &p.Supplier, &p.Name, &p.Category, &p.UnitPrice, &p.Inventory, &syncedAt)
	if err != nil {
		return nil, err
	}
	if syncedAt != nil {
		p.SyncedAt = *syncedAt
	}
	return &p, nil
}

func (r *productRepository) Upsert(ctx context.Context, product *model.Product) error {
	const query = `INSERT INTO products (sku, supplier, name, category, unit_price, inventory, synced_at)
                   VALUES ($1, $2, $3, $4, $5, $6, NOW())
                   ON CONFLICT (sku) DO UPDATE SET
                       supplier = EXCLUDED.supplier,
                       name = EXCLUDED.name,
                       category = EXCLUDED.category,
                       unit_price = EXCLUDED.unit_price,
                       inventory = EXCLUDED.inventory,
                       synced_at = NOW()`
	_, err := r.storage.pool.Exec(ctx, query,
		product.SKU, product.Supplier, product.Name, product.Category, product.UnitPrice, product.Inventory)
	return err
}

func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	const query = `SELECT id, sku, supplier, name, category, unit_price, inventory, synced_at
                   FROM products WHERE sku=$1`
	product, err := scanProduct(r.storage.pool.QueryRow(ctx, query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *productRepository) List(ctx context.Context, search string, page, limit int) ([]model.Product, query.Pagination, error) {
	filter := ` FROM products`
	var args []any
	if term := strings.TrimSpace(search); term != "" {
		args = append(args, "%"+term+"%")
		filter += ` WHERE sku ILIKE $1 OR name ILIKE $1 OR supplier ILIKE $1`
	}

	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*)`+filter, args...).Scan(&total); err != nil {
		return nil, query.Pagination{}, err
	}

	p := query.NewPagination(page, limit, total)

	pageQuery := `SELECT id, sku, supplier, name, category, unit_price, inventory, synced_at` +
		filter + ` ORDER BY sku` +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, p.Limit, p.Offset())

	rows, err := r.storage.pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, query.Pagination{}, err
		}
		result = append(result, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, query.Pagination{}, err
	}
	return result, p, nil
}

func (r *productRepository) SelectStaleBatch(ctx context.Context, cutoff time.Time, limit int) ([]model.Product, error) {
	const selectQuery = `SELECT id, sku, supplier, name, category, unit_price, inventory, synced_at
                         FROM products
                         WHERE (synced_at IS NULL OR synced_at < $1)
                           AND (sync_started_at IS NULL OR sync_started_at < $1)
                         ORDER BY synced_at NULLS FIRST
                         LIMIT $2
                         FOR UPDATE SKIP LOCKED`

	var products []model.Product
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, cutoff, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			product, err := scanProduct(rows)
			if err != nil {
				return err
			}
			products = append(products, *product)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for _, p := range products {
			if _, err := tx.Exec(ctx, `UPDATE products SET sync_started_at=NOW() WHERE id=$1`, p.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) UpdateSyncResult(ctx context.Context, productID int64, unitPrice float64, inventory int) error {
	const query = `UPDATE products
                   SET unit_price=$1, inventory=$2, synced_at=NOW(), sync_started_at=NULL
                   WHERE id=$3`
	_, err := r.storage.pool.Exec(ctx, query, unitPrice, inventory, productID)
	return err
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
