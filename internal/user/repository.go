package user

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository wraps data access for portal accounts.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts a new account.
func (r *Repository) Create(u *User) error {
	return r.DB.Create(u).Error
}

// FindByEmail looks an account up by its login email.
func (r *Repository) FindByEmail(email string) (*User, error) {
	var u User
	if err := r.DB.First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID returns an account by ID.
func (r *Repository) FindByID(id uuid.UUID) (*User, error) {
	var u User
	if err := r.DB.First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ListAll returns every account.
func (r *Repository) ListAll() ([]User, error) {
	var list []User
	err := r.DB.Order("created_at ASC").Find(&list).Error
	return list, err
}

// Update saves all fields of an existing account.
func (r *Repository) Update(u *User) error {
	return r.DB.Save(u).Error
}

// UpdatePassword replaces only the password hash.
func (r *Repository) UpdatePassword(id uuid.UUID, hash string) error {
	return r.DB.Model(&User{}).Where("id = ?", id).Update("password", hash).Error
}

// DeleteByID soft-deletes an account.
func (r *Repository) DeleteByID(id uuid.UUID) error {
	res := r.DB.Delete(&User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
