package postgres

import (
	"context"
	"errors"
	"time"

	"movieclub/dependant"
	"movieclub/user"

	"gorm.io/gorm"
)

// DependantModel represents the database model for dependants.
type DependantModel struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"not null"`
	Name        string    `gorm:"not null"`
	Relation    string    `gorm:"not null"`
	DateOfBirth time.Time `gorm:"column:dob;type:date;not null"`
	Gender      string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (DependantModel) TableName() string {
	return "dependants"
}

// DependantRepository implements dependant.Repository interface
type DependantRepository struct {
	db *gorm.DB
}

// NewDependantRepository creates a new dependant repository
func NewDependantRepository(db *gorm.DB) *DependantRepository {
	return &DependantRepository{db: db}
}

// Create implements [dependant.Repository]. The owner lookup and the insert run
// in one transaction; an unknown login id inserts nothing.
func (r *DependantRepository) Create(ctx context.Context, loginID string, d dependant.Dependant) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownerID, err := userIDByLoginID(tx, loginID)
		if err != nil {
			return err
		}

		model := toModelDependant(d)
		model.ID = 0
		model.UserID = ownerID
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		id = model.ID
		return nil
	})
	return id, err
}

// ListByLoginID implements [dependant.Repository].
func (r *DependantRepository) ListByLoginID(ctx context.Context, loginID string) ([]dependant.Dependant, error) {
	db := r.db.WithContext(ctx)
	ownerID, err := userIDByLoginID(db, loginID)
	if err != nil {
		return nil, err
	}

	var models []DependantModel
	if err := db.Where("user_id = ?", ownerID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	dependants := make([]dependant.Dependant, len(models))
	for i, model := range models {
		dependants[i] = toDomainDependant(model)
	}
	return dependants, nil
}

// Update implements [dependant.Repository].
func (r *DependantRepository) Update(ctx context.Context, d dependant.Dependant) error {
	result := r.db.WithContext(ctx).Model(&DependantModel{}).Where("id = ?", d.ID).Updates(map[string]interface{}{
		"name":       d.Name,
		"relation":   string(d.Relation),
		"dob":        d.DateOfBirth.Format(dependant.DateOfBirthLayout),
		"gender":     string(d.Gender),
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return dependant.ErrDependantNotFound
	}
	return nil
}

// Delete implements [dependant.Repository].
func (r *DependantRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DependantModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return dependant.ErrDependantNotFound
	}
	return nil
}

func userIDByLoginID(db *gorm.DB, loginID string) (int64, error) {
	var owner UserModel
	err := db.Select("id").Where("login_id = ?", loginID).First(&owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, user.ErrUserNotFound
		}
		return 0, err
	}
	return owner.ID, nil
}

func toDomainDependant(model DependantModel) dependant.Dependant {
	return dependant.Dependant{
		ID:          model.ID,
		Name:        model.Name,
		Relation:    dependant.Relation(model.Relation),
		DateOfBirth: model.DateOfBirth,
		Gender:      dependant.Gender(model.Gender),
	}
}

func toModelDependant(d dependant.Dependant) DependantModel {
	return DependantModel{
		ID:          d.ID,
		Name:        d.Name,
		Relation:    string(d.Relation),
		DateOfBirth: d.DateOfBirth,
		Gender:      string(d.Gender),
	}
}
