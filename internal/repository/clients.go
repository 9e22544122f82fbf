package repository

import (
	"context"
	"time"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
)

func (r *Repository) CreateClient(client *domain.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO clients (name, contact_name, contact_email, contact_phone, address, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at, version
	`

	args := []any{client.Name, client.ContactName, client.ContactEmail, client.ContactPhone, client.Address, client.Notes}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&client.ID, &client.IsActive, &client.CreatedAt, &client.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetClientByID(id int64) (*domain.Client, error) {
	query := `
		SELECT name, contact_name, contact_email, contact_phone, address, notes, is_active, created_at, version
		FROM clients WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	client := &domain.Client{
		ID: id,
	}

	dst := []any{&client.Name, &client.ContactName, &client.ContactEmail, &client.ContactPhone, &client.Address, &client.Notes, &client.IsActive, &client.CreatedAt, &client.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return client, nil
}

// GetClients returns one page of clients plus the unpaginated total. An empty
// search matches everything.
func (r *Repository) GetClients(search string, limit int, offset int) ([]*domain.Client, int64, error) {
	query := `
		SELECT
			id, name, contact_name, contact_email, contact_phone, address, notes, is_active, created_at, version,
			COUNT(*) OVER() AS total
		FROM clients
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, search, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	var total int64
	for rows.Next() {
		client := &domain.Client{}
		dst := []any{&client.ID, &client.Name, &client.ContactName, &client.ContactEmail, &client.ContactPhone, &client.Address, &client.Notes, &client.IsActive, &client.CreatedAt, &client.Version, &total}
		if err := rows.Scan(dst...); err != nil {
			return nil, 0, err
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

func (r *Repository) UpdateClient(client *domain.Client) error {
	query := `
		UPDATE clients
		SET
			name = $1,
			contact_name = $2,
			contact_email = $3,
			contact_phone = $4,
			address = $5,
			notes = $6,
			is_active = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{client.Name, client.ContactName, client.ContactEmail, client.ContactPhone, client.Address, client.Notes, client.IsActive, client.ID, client.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&client.CreatedAt, &client.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteClient(id int64) error {
	query := `
		DELETE FROM clients WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
