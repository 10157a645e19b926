package materials

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mms-suite/mms/internal/platform/httpx"
)

const materialColumns = `id, code, name, category, specification, unit, price, stock, min_stock, max_stock, supplier, location, description, status, created_at, updated_at`

// Repository is the persistence boundary for materials. The pgx implementation
// below is the only production one; tests substitute an in-memory fake.
type Repository interface {
	List(ctx context.Context, q ListQuery) ([]Material, int, error)
	Get(ctx context.Context, id int64) (Material, error)
	Create(ctx context.Context, m Material) (Material, error)
	Update(ctx context.Context, m Material) (Material, error)
	Delete(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	CountLowStock(ctx context.Context) (int, error)
	SumStockPriced(ctx context.Context) (int64, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the PostgreSQL-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, q ListQuery) ([]Material, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		conditions = append(conditions, fmt.Sprintf("(code LIKE $%d OR name LIKE $%d OR specification LIKE $%d)", argPos, argPos, argPos))
		args = append(args, pattern)
		argPos++
	}
	if q.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argPos))
		args = append(args, q.Category)
		argPos++
	}
	if q.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, q.Status)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + conditions[0]
		for i := 1; i < len(conditions); i++ {
			whereClause += " AND " + conditions[i]
		}
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM materials " + whereClause
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("materials: count: %w", err)
	}

	query := "SELECT " + materialColumns + " FROM materials " + whereClause +
		" ORDER BY " + sortClause(q.SortBy, q.SortOrder) +
		" LIMIT $" + strconv.Itoa(argPos) + " OFFSET $" + strconv.Itoa(argPos+1)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("materials: list: %w", err)
	}
	defer rows.Close()

	var result []Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("materials: scan: %w", err)
		}
		result = append(result, m)
	}
	return result, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Material, error) {
	query := "SELECT " + materialColumns + " FROM materials WHERE id = $1"
	m, err := scanMaterial(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Material{}, fmt.Errorf("materials: id %d: %w", id, httpx.ErrNotFound)
		}
		return Material{}, fmt.Errorf("materials: get: %w", err)
	}
	return m, nil
}

func (r *repository) Create(ctx context.Context, m Material) (Material, error) {
	query := `INSERT INTO materials (code, name, category, specification, unit, price, stock, min_stock, max_stock, supplier, location, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		m.Code, m.Name, m.Category, m.Specification, m.Unit, m.Price,
		m.Stock, m.MinStock, m.MaxStock, m.Supplier, m.Location, m.Description,
		m.Status, now, now,
	).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Material{}, fmt.Errorf("materials: code %q: %w", m.Code, httpx.ErrDuplicate)
		}
		return Material{}, fmt.Errorf("materials: create: %w", err)
	}
	m.CreatedAt = now
	m.UpdatedAt = now
	return m, nil
}

func (r *repository) Update(ctx context.Context, m Material) (Material, error) {
	query := `UPDATE materials SET code = $1, name = $2, category = $3, specification = $4, unit = $5, price = $6,
		stock = $7, min_stock = $8, max_stock = $9, supplier = $10, location = $11, description = $12,
		status = $13, updated_at = $14 WHERE id = $15`
	now := time.Now()
	tag, err := r.db.Exec(ctx, query,
		m.Code, m.Name, m.Category, m.Specification, m.Unit, m.Price,
		m.Stock, m.MinStock, m.MaxStock, m.Supplier, m.Location, m.Description,
		m.Status, now, m.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Material{}, fmt.Errorf("materials: code %q: %w", m.Code, httpx.ErrDuplicate)
		}
		return Material{}, fmt.Errorf("materials: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Material{}, fmt.Errorf("materials: id %d: %w", m.ID, httpx.ErrNotFound)
	}
	m.UpdatedAt = now
	return m, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM materials WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("materials: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("materials: id %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func (r *repository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM materials WHERE id = ANY($1)", ids)
	if err != nil {
		return 0, fmt.Errorf("materials: delete many: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *repository) DistinctCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, "SELECT DISTINCT category FROM materials WHERE category IS NOT NULL AND category <> ''")
	if err != nil {
		return nil, fmt.Errorf("materials: categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("materials: categories scan: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *repository) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM materials").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("materials: count all: %w", err)
	}
	return n, nil
}

func (r *repository) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM materials WHERE status = $1", status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("materials: count by status: %w", err)
	}
	return n, nil
}

func (r *repository) CountLowStock(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM materials WHERE stock <= min_stock").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("materials: count low stock: %w", err)
	}
	return n, nil
}

// SumStockPriced sums stock quantity over rows with a non-null price. The
// quantity is deliberately not multiplied by price; see DESIGN.md.
func (r *repository) SumStockPriced(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.QueryRow(ctx, "SELECT COALESCE(SUM(stock), 0) FROM materials WHERE price IS NOT NULL").Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("materials: sum stock: %w", err)
	}
	return sum, nil
}

func scanMaterial(row pgx.Row) (Material, error) {
	var m Material
	err := row.Scan(
		&m.ID, &m.Code, &m.Name, &m.Category, &m.Specification, &m.Unit,
		&m.Price, &m.Stock, &m.MinStock, &m.MaxStock, &m.Supplier, &m.Location,
		&m.Description, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
