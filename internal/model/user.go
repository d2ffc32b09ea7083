package model

import "time"

// Roles recognised by the API.  Admins may manage the catalog and view
// any booking; regular users may only operate on their own data.
const (
    RoleUser  = "user"
    RoleAdmin = "admin"
)

// User represents a registered account.  Passwords are stored only as
// bcrypt hashes.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name.
//  Email        – unique login identifier, stored lowercase.
//  PasswordHash – bcrypt hash of the password.
//  Phone        – contact number.
//  City         – home city, used for venue suggestions.
//  Role         – "user" or "admin".
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type User struct {
    ID           uint64    `json:"id"`
    Name         string    `json:"name"`
    Email        string    `json:"email"`
    PasswordHash string    `json:"-"`
    Phone        string    `json:"phone"`
    City         string    `json:"city"`
    Role         string    `json:"role"`
    CreatedAt    time.Time `json:"createdAt"`
    UpdatedAt    time.Time `json:"updatedAt"`
}
