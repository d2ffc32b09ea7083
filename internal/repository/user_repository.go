package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/go-sql-driver/mysql"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/model"
)

// UserRepo provides access to user accounts.
type UserRepo struct {
    db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the provided database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, name, email, password_hash, phone, city, role, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*model.User, error) {
    var u model.User
    err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.City, &u.Role, &u.CreatedAt, &u.UpdatedAt)
    if err != nil {
        return nil, err
    }
    return &u, nil
}

// Create inserts a new user and fills in its generated ID.  Emails are
// normalised to lowercase; a duplicate email yields ErrEmailTaken.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
    const q = `INSERT INTO users (name, email, password_hash, phone, city, role)
               VALUES (?, ?, ?, ?, ?, ?)`
    u.Email = strings.ToLower(u.Email)
    res, err := r.db.ExecContext(ctx, q, u.Name, u.Email, u.PasswordHash, u.Phone, u.City, u.Role)
    if err != nil {
        var me *mysql.MySQLError
        if errors.As(err, &me) && me.Number == 1062 {
            return ErrEmailTaken
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    u.ID = uint64(id)
    return nil
}

// GetByEmail returns the user with the given email, or ErrUserNotFound.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
    q := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
    u, err := scanUser(r.db.QueryRowContext(ctx, q, strings.ToLower(email)))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrUserNotFound
        }
        return nil, err
    }
    return u, nil
}

// GetByID returns the user with the given ID, or ErrUserNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
    q := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
    u, err := scanUser(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrUserNotFound
        }
        return nil, err
    }
    return u, nil
}

// List returns every registered user, newest first.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
    q := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    users := make([]model.User, 0)
    for rows.Next() {
        u, err := scanUser(rows)
        if err != nil {
            return nil, err
        }
        users = append(users, *u)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return users, nil
}
