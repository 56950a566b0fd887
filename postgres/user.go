package postgres

import (
	"context"
	"errors"
	"time"

	"movieclub/user"

	"gorm.io/gorm"
)

// UserModel represents the database model for users
type UserModel struct {
	ID        int64     `gorm:"primaryKey"`
	LoginID   string    `gorm:"column:login_id;not null;unique"`
	Password  string    `gorm:"not null"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"not null"`
	Phone     string    `gorm:"not null"`
	Role      string    `gorm:"not null;default:employee"`
	Status    string    `gorm:"not null;default:active"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// UserRepository implements user.Repository interface
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser creates a new user in the database and returns its id.
func (r *UserRepository) CreateUser(ctx context.Context, u user.User) (int64, error) {
	model := toModelUser(u)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isDuplicateKeyError(err) {
			return 0, user.ErrLoginIDTaken
		}
		return 0, err
	}
	return model.ID, nil
}

// GetByLoginID implements [auth.UserRepository].
func (r *UserRepository) GetByLoginID(ctx context.Context, loginID string) (user.User, error) {
	var model UserModel

	err := r.db.WithContext(ctx).Where("login_id = ?", loginID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return toDomainUser(model), nil
}

// UpdateProfile overwrites the mutable profile fields of the user with loginID.
func (r *UserRepository) UpdateProfile(ctx context.Context, loginID string, p user.Profile) error {
	result := r.db.WithContext(ctx).Model(&UserModel{}).Where("login_id = ?", loginID).Updates(map[string]interface{}{
		"name":       p.Name,
		"email":      p.Email,
		"phone":      p.Phone,
		"status":     string(p.Status),
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func toDomainUser(model UserModel) user.User {
	return user.User{
		ID:       model.ID,
		LoginID:  model.LoginID,
		Password: model.Password,
		Name:     model.Name,
		Email:    model.Email,
		Phone:    model.Phone,
		Role:     user.Role(model.Role),
		Status:   user.Status(model.Status),
	}
}

func toModelUser(u user.User) UserModel {
	return UserModel{
		ID:       u.ID,
		LoginID:  u.LoginID,
		Password: u.Password,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     string(u.Role),
		Status:   string(u.Status),
	}
}
