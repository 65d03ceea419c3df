package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sawantaditi24/RoomSync/internal/model"
)

// MarketplaceFilter selects marketplace items. Nil fields impose no
// constraint; set fields are AND-combined.
type MarketplaceFilter struct {
	Category *string

	// Upper bound on price.
	PriceMax *float64

	Status *string
}

const marketplaceColumns = `m.id, m.user_id, m.title, m.description, m.category,
	       m.price, m.condition, m.image_url, m.status, m.created_at,
	       u.id, u.name, u.email, u.contact, u.created_at`

// CreateMarketplaceItem inserts a new marketplace listing. The owner must
// exist; ErrNotFound is returned and nothing inserted otherwise.
func CreateMarketplaceItem(ctx context.Context, db *sql.DB, item *model.MarketplaceItem) (*model.MarketplaceItem, error) {
	owner, err := GetUser(ctx, db, item.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("marketplace item owner %d: %w", item.UserID, ErrNotFound)
	}

	status := item.Status
	if status == "" {
		status = model.ItemStatusAvailable
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO marketplace_items (
		     user_id, title, description, category, price, condition, image_url, status
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.UserID, item.Title, item.Description, item.Category,
		item.Price, item.Condition, item.ImageURL, status,
	)
	if err != nil {
		return nil, fmt.Errorf("creating marketplace item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting marketplace item id: %w", err)
	}

	return GetMarketplaceItem(ctx, db, id)
}

// GetMarketplaceItem returns a marketplace item by ID, joined with its owner.
// An item whose owner no longer exists reads as absent.
func GetMarketplaceItem(ctx context.Context, db *sql.DB, id int64) (*model.MarketplaceItem, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+marketplaceColumns+`
		 FROM marketplace_items m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.id = ?`, id,
	)

	item, err := scanMarketplaceItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting marketplace item: %w", err)
	}
	return item, nil
}

// ListMarketplaceItems returns all items matching the filter, joined with
// their owners, in insertion order.
func ListMarketplaceItems(ctx context.Context, db *sql.DB, f MarketplaceFilter) ([]model.MarketplaceItem, error) {
	query := `SELECT ` + marketplaceColumns + `
	 FROM marketplace_items m
	 JOIN users u ON u.id = m.user_id`

	var conds []string
	var args []any
	if f.Category != nil {
		conds = append(conds, "m.category = ?")
		args = append(args, *f.Category)
	}
	if f.PriceMax != nil {
		conds = append(conds, "m.price <= ?")
		args = append(args, *f.PriceMax)
	}
	if f.Status != nil {
		conds = append(conds, "m.status = ?")
		args = append(args, *f.Status)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY m.id"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing marketplace items: %w", err)
	}
	defer rows.Close()

	var items []model.MarketplaceItem
	for rows.Next() {
		item, err := scanMarketplaceItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning marketplace item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// SetMarketplaceItemStatus updates an item's status.
func SetMarketplaceItemStatus(ctx context.Context, db *sql.DB, id int64, status string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE marketplace_items SET status = ? WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("updating marketplace item status: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking marketplace item update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("marketplace item %d: %w", id, ErrNotFound)
	}
	return nil
}

// scanMarketplaceItem scans one joined marketplace row.
func scanMarketplaceItem(scan func(...any) error) (*model.MarketplaceItem, error) {
	item := &model.MarketplaceItem{User: &model.User{}}
	var description, condition, imageURL sql.NullString
	err := scan(
		&item.ID, &item.UserID, &item.Title, &description, &item.Category,
		&item.Price, &condition, &imageURL, &item.Status, &item.CreatedAt,
		&item.User.ID, &item.User.Name, &item.User.Email, &item.User.Contact, &item.User.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Description = description.String
	item.Condition = condition.String
	item.ImageURL = imageURL.String
	return item, nil
}
