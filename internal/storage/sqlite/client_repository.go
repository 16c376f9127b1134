package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/shopcrm/internal/domain"
)

const opTimeout = 5 * time.Second

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository создаёт SQLite-реализацию ClientRepository.
func NewClientRepository(store *Store) domain.ClientRepository {
	return &clientRepository{db: store.DB()}
}

func (r *clientRepository) Create(client domain.Client) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (fio, phone, email, address) VALUES (?, ?, ?, ?)
	`, client.FIO, client.Phone, client.Email, client.Address)
	if err != nil {
		return 0, fmt.Errorf("insert client: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("client last insert id: %w", err)
	}
	return id, nil
}

func (r *clientRepository) List() ([]domain.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, fio, phone, email, address FROM clients ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		var client domain.Client
		if err := rows.Scan(&client.ID, &client.FIO, &client.Phone, &client.Email, &client.Address); err != nil {
			return nil, fmt.Errorf("scan client row: %w", err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client rows: %w", err)
	}
	return clients, nil
}

func (r *clientRepository) IDByName(fio string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, `
		SELECT id FROM clients WHERE fio = ? ORDER BY id LIMIT 1
	`, fio).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrClientNotFound
		}
		return 0, fmt.Errorf("select client by name: %w", err)
	}
	return id, nil
}

var _ domain.ClientRepository = (*clientRepository)(nil)
