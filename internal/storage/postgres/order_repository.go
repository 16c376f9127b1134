package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/shopcrm/internal/domain"
)

// Код PostgreSQL для нарушения внешнего ключа.
const pgForeignKeyViolation = "23503"

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

// Create сохраняет заказ и позиции в одной транзакции: любая ошибка
// вставки позиции откатывает и запись заказа.
func (r *orderRepository) Create(clientID int64, items []domain.LineItem) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var orderID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (client_id) VALUES ($1) RETURNING id
	`, clientID).Scan(&orderID)
	if err != nil {
		if isForeignKeyViolation(err) {
			err = domain.ErrClientNotFound
			return 0, err
		}
		return 0, fmt.Errorf("insert order: %w", err)
	}

	for _, item := range items {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity)
			VALUES ($1, $2, $3)
		`, orderID, item.ProductID, item.Quantity); err != nil {
			if isForeignKeyViolation(err) {
				err = domain.ErrProductNotFound
				return 0, err
			}
			return 0, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create order: %w", err)
	}
	return orderID, nil
}

// OrderTotals агрегирует заказы по текущим ценам каталога.
// LEFT JOIN сохраняет заказы без позиций с нулевой суммой.
func (r *orderRepository) OrderTotals() ([]domain.OrderTotal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id,
		       c.fio,
		       COALESCE(STRING_AGG(p.name || ' x' || oi.quantity::text, ', ' ORDER BY oi.id), ''),
		       COALESCE(SUM(oi.quantity * p.price), 0)
		FROM orders o
		JOIN clients c ON c.id = o.client_id
		LEFT JOIN order_items oi ON oi.order_id = o.id
		LEFT JOIN products p ON p.id = oi.product_id
		GROUP BY o.id, c.fio
		ORDER BY o.id
	`)
	if err != nil {
		return nil, fmt.Errorf("query order totals: %w", err)
	}
	defer rows.Close()

	totals := make([]domain.OrderTotal, 0)
	for rows.Next() {
		var row domain.OrderTotal
		if err := rows.Scan(&row.OrderID, &row.ClientName, &row.Items, &row.Total); err != nil {
			return nil, fmt.Errorf("scan order total row: %w", err)
		}
		totals = append(totals, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order total rows: %w", err)
	}
	return totals, nil
}

// ClientSpendTotals суммирует траты по клиентам в порядке их создания.
func (r *orderRepository) ClientSpendTotals() ([]domain.ClientSpend, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.fio, COALESCE(SUM(oi.quantity * p.price), 0)
		FROM clients c
		JOIN orders o ON o.client_id = c.id
		LEFT JOIN order_items oi ON oi.order_id = o.id
		LEFT JOIN products p ON p.id = oi.product_id
		GROUP BY c.id, c.fio
		ORDER BY c.id
	`)
	if err != nil {
		return nil, fmt.Errorf("query client spend totals: %w", err)
	}
	defer rows.Close()

	totals := make([]domain.ClientSpend, 0)
	for rows.Next() {
		var row domain.ClientSpend
		if err := rows.Scan(&row.ClientName, &row.Total); err != nil {
			return nil, fmt.Errorf("scan client spend row: %w", err)
		}
		totals = append(totals, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client spend rows: %w", err)
	}
	return totals, nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return false
}

var _ domain.OrderRepository = (*orderRepository)(nil)
