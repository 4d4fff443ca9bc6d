package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Lixing-Zhang/foodie-storefront/internal/models"
)

const uniqueViolation = "23505"

const ordersSchema = `
CREATE TABLE IF NOT EXISTS orders (
	id                 TEXT PRIMARY KEY,
	status             TEXT NOT NULL,
	restaurant_name    TEXT NOT NULL DEFAULT '',
	items              JSONB NOT NULL DEFAULT '[]',
	subtotal           NUMERIC(10,2) NOT NULL DEFAULT 0,
	delivery_fee       NUMERIC(10,2) NOT NULL DEFAULT 0,
	tax                NUMERIC(10,2) NOT NULL DEFAULT 0,
	total              NUMERIC(10,2) NOT NULL DEFAULT 0,
	estimated_delivery TEXT NOT NULL DEFAULT '',
	partner_name       TEXT,
	partner_phone      TEXT,
	payment_method     TEXT NOT NULL DEFAULT '',
	customer_name      TEXT NOT NULL DEFAULT '',
	delivery_address   TEXT NOT NULL DEFAULT '',
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresOrderRepository implements OrderRepository on PostgreSQL
type PostgresOrderRepository struct {
	db *sql.DB
}

// OpenPostgres connects with the lib/pq driver and verifies the connection
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// NewPostgresOrderRepository creates a repository over db
func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// EnsureSchema creates the orders table when missing
func (r *PostgresOrderRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, ordersSchema); err != nil {
		return fmt.Errorf("ensure orders schema: %w", err)
	}
	return nil
}

// Get loads an order by ID
func (r *PostgresOrderRepository) Get(ctx context.Context, id string) (*models.Order, error) {
	var (
		order        models.Order
		status       string
		items        []byte
		partnerName  sql.NullString
		partnerPhone sql.NullString
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT id, status, restaurant_name, items, subtotal, delivery_fee, tax, total,
		       estimated_delivery, partner_name, partner_phone, payment_method,
		       customer_name, delivery_address, created_at
		FROM orders WHERE id = $1`, id).
		Scan(&order.ID, &status, &order.RestaurantName, &items, &order.Subtotal, &order.DeliveryFee,
			&order.Tax, &order.Total, &order.EstimatedDelivery, &partnerName, &partnerPhone,
			&order.PaymentMethod, &order.CustomerName, &order.DeliveryAddress, &order.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order %s: %w", id, err)
	}

	order.Status = models.OrderStatus(status)
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("decode items of order %s: %w", id, err)
	}
	if partnerName.Valid {
		order.DeliveryPartner = &models.DeliveryPartner{Name: partnerName.String, Phone: partnerPhone.String}
	}

	return &order, nil
}

// Create inserts a new order
func (r *PostgresOrderRepository) Create(ctx context.Context, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}

	var partnerName, partnerPhone sql.NullString
	if p := order.DeliveryPartner; p != nil {
		partnerName = sql.NullString{String: p.Name, Valid: true}
		partnerPhone = sql.NullString{String: p.Phone, Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (id, status, restaurant_name, items, subtotal, delivery_fee, tax, total,
		                    estimated_delivery, partner_name, partner_phone, payment_method,
		                    customer_name, delivery_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		order.ID, string(order.Status), order.RestaurantName, items, order.Subtotal, order.DeliveryFee,
		order.Tax, order.Total, order.EstimatedDelivery, partnerName, partnerPhone,
		order.PaymentMethod, order.CustomerName, order.DeliveryAddress, order.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrOrderExists
	}
	if err != nil {
		return fmt.Errorf("insert order %s: %w", order.ID, err)
	}
	return nil
}

// UpdateStatus changes the status only while the row still holds from
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		string(to), id, string(from))
	if err != nil {
		return fmt.Errorf("update status of order %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status of order %s: %w", id, err)
	}
	if rows > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check order %s: %w", id, err)
	}
	if !exists {
		return ErrOrderNotFound
	}
	return ErrStatusConflict
}
