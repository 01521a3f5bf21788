package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, userId int, user User) (User, error)
	DeleteUser(ctx context.Context, id int) error
	GetAllUsers(ctx context.Context) ([]User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type UserRepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO users (uid, username, display_name, display_currency, week_first_day, theme)
				VALUES (?, ?, ?, ?, ?, ?)`
	result, err := u.db.ExecContext(ctx, query,
		user.Uid,
		user.Username,
		user.DisplayName,
		user.Settings.DisplayCurrency,
		int(user.Settings.WeekFirstDay),
		user.Settings.Theme,
	)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
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

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, uid, username, display_name, display_currency, week_first_day, theme
				FROM users WHERE id = ?`
	return u.scanUser(u.db.QueryRowContext(ctx, query, id))
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT id, uid, username, display_name, display_currency, week_first_day, theme
				FROM users WHERE uid = ?`
	return u.scanUser(u.db.QueryRowContext(ctx, query, uid))
}

func (u *UserRepoImpl) scanUser(row *sql.Row) (User, error) {
	var user User
	var weekFirstDay int
	err := row.Scan(
		&user.Id,
		&user.Uid,
		&user.Username,
		&user.DisplayName,
		&user.Settings.DisplayCurrency,
		&weekFirstDay,
		&user.Settings.Theme,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	user.Settings.WeekFirstDay = intToWeekday(weekFirstDay)
	return user, nil
}

func (u *UserRepoImpl) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	query := `UPDATE users SET display_name = ?, display_currency = ?, week_first_day = ?, theme = ? WHERE id = ?`
	result, err := u.db.ExecContext(ctx, query,
		user.DisplayName,
		user.Settings.DisplayCurrency,
		int(user.Settings.WeekFirstDay),
		user.Settings.Theme,
		userId,
	)
	if err != nil {
		return User{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return User{}, err
	}
	if rowsAffected == 0 {
		log.Info("no rows affected of updating user")
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (u *UserRepoImpl) DeleteUser(ctx context.Context, id int) error {
	query := `DELETE FROM users WHERE id = ?`
	result, err := u.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return err
	}
	if rowsAffected == 0 {
		log.Info("no rows affected of deleting user")
		return ErrUserNotFound
	}
	return nil
}

func (u *UserRepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id, uid, username, display_name, display_currency, week_first_day, theme FROM users ORDER BY username`
	rows, err := u.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query users: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		var weekFirstDay int
		if err := rows.Scan(
			&user.Id,
			&user.Uid,
			&user.Username,
			&user.DisplayName,
			&user.Settings.DisplayCurrency,
			&weekFirstDay,
			&user.Settings.Theme,
		); err != nil {
			err := fmt.Errorf("could not scan user: %w", err)
			log.Error(err)
			return nil, err
		}
		user.Settings.WeekFirstDay = intToWeekday(weekFirstDay)
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return users, nil
}

func (u *UserRepoImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	query := `SELECT COUNT(*) FROM users WHERE username = ?`
	var count int
	if err := u.db.QueryRowContext(ctx, query, username).Scan(&count); err != nil {
		log.Errorf("failed to check username availability: %v", err)
		return false, err
	}
	return count == 0, nil
}

func intToWeekday(day int) time.Weekday {
	if day < 0 || day > 6 {
		return time.Monday
	}
	return time.Weekday(day)
}
