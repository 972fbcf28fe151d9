package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/Tarankalsi/backend-triumphllights/internal/entity"
	"github.com/Tarankalsi/backend-triumphllights/internal/usecase"
)

type MySQLUserRepo struct{ db *sql.DB }

func NewMySQLUserRepo(db *sql.DB) *MySQLUserRepo { return &MySQLUserRepo{db: db} }

var _ usecase.UserRepo = (*MySQLUserRepo)(nil)

func (r *MySQLUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT user_id, email, COALESCE(full_name,''), COALESCE(phone_number,'')
FROM users WHERE user_id = ?`, id)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PhoneNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

type MySQLAddressRepo struct{ db *sql.DB }

func NewMySQLAddressRepo(db *sql.DB) *MySQLAddressRepo { return &MySQLAddressRepo{db: db} }

var _ usecase.AddressRepo = (*MySQLAddressRepo)(nil)

func (r *MySQLAddressRepo) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT address_id, street, city, state, country, postal_code
FROM addresses WHERE address_id = ?`, id)

	var a domain.Address
	if err := row.Scan(&a.ID, &a.Street, &a.City, &a.State, &a.Country, &a.PostalCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
