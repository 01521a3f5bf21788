package payment_method

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrPaymentMethodNotFound = errors.New("payment method not found")

type Repo interface {
	Store(ctx context.Context, userId int, method PaymentMethod) (int, error)
	GetAll(ctx context.Context, userId int) ([]PaymentMethod, error)
	Get(ctx context.Context, userId int, methodId int) (PaymentMethod, error)
	Update(ctx context.Context, userId int, method PaymentMethod) (bool, error)
	Delete(ctx context.Context, userId int, methodId int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r RepoImpl) Store(ctx context.Context, userId int, method PaymentMethod) (int, error) {
	query := `INSERT INTO payment_methods (user_id, name, icon) VALUES (?, ?, ?)`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, userId, method.Name, method.Icon)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return 0, err
	}
	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}
	return int(lastInsertID), nil
}

func (r RepoImpl) GetAll(ctx context.Context, userId int) ([]PaymentMethod, error) {
	query := `SELECT id, name, icon FROM payment_methods WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query payment methods: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var methods []PaymentMethod
	for rows.Next() {
		var m PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.Icon); err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return methods, nil
}

func (r RepoImpl) Get(ctx context.Context, userId int, methodId int) (PaymentMethod, error) {
	query := `SELECT id, name, icon FROM payment_methods WHERE id = ? AND user_id = ?`
	var m PaymentMethod
	err := r.db.QueryRowContext(ctx, query, methodId, userId).Scan(&m.ID, &m.Name, &m.Icon)
	if errors.Is(err, sql.ErrNoRows) {
		return PaymentMethod{}, ErrPaymentMethodNotFound
	} else if err != nil {
		log.Errorf("failed to get payment method: %v", err)
		return PaymentMethod{}, err
	}
	return m, nil
}

func (r RepoImpl) Update(ctx context.Context, userId int, method PaymentMethod) (bool, error) {
	query := `UPDATE payment_methods SET name = ?, icon = ? WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, method.Name, method.Icon, method.ID, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r RepoImpl) Delete(ctx context.Context, userId int, methodId int) (bool, error) {
	query := `DELETE FROM payment_methods WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, methodId, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}
