package repositories

import (
	"context"
	"time"

	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// UserRecord is the PostgreSQL row for a user. The primary key is the hex
// form of the ObjectID so that references from MongoDB documents resolve
// unchanged.
type UserRecord struct {
	ID             string `gorm:"primaryKey;size:24"`
	Username       string `gorm:"uniqueIndex;not null"`
	Email          string `gorm:"uniqueIndex;not null"`
	Password       string `gorm:"not null"`
	Bio            string
	ProfilePicture string
	FirebaseUID    *string `gorm:"uniqueIndex"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (UserRecord) TableName() string { return "users" }

func toUserRecord(u *models.User) UserRecord {
	rec := UserRecord{
		ID:             u.ID.Hex(),
		Username:       u.Username,
		Email:          u.Email,
		Password:       u.Password,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	if u.FirebaseUID != "" {
		uid := u.FirebaseUID
		rec.FirebaseUID = &uid
	}
	return rec
}

func (rec UserRecord) toUser() models.User {
	id, _ := primitive.ObjectIDFromHex(rec.ID)
	u := models.User{
		ID:             id,
		Username:       rec.Username,
		Email:          rec.Email,
		Password:       rec.Password,
		Bio:            rec.Bio,
		ProfilePicture: rec.ProfilePicture,
		Followers:      []primitive.ObjectID{},
		Following:      []primitive.ObjectID{},
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
	if rec.FirebaseUID != nil {
		u.FirebaseUID = *rec.FirebaseUID
	}
	return u
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// AutoMigrate creates or updates the users table.
func (r *PostgresUserRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&UserRecord{})
}

func translateGormErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	user.Followers = []primitive.ObjectID{}
	user.Following = []primitive.ObjectID{}
	rec := toUserRecord(user)
	return translateGormErr(r.db.WithContext(ctx).Create(&rec).Error)
}

func (r *PostgresUserRepository) first(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var rec UserRecord
	if err := r.db.WithContext(ctx).Where(query, arg).First(&rec).Error; err != nil {
		return nil, translateGormErr(err)
	}
	u := rec.toUser()
	return &u, nil
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.first(ctx, "id = ?", id.Hex())
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *PostgresUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	return r.first(ctx, "firebase_uid = ?", firebaseUID)
}

func (r *PostgresUserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	hexIDs := make([]string, len(ids))
	for i, id := range ids {
		hexIDs[i] = id.Hex()
	}
	var recs []UserRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", hexIDs).Find(&recs).Error; err != nil {
		return nil, err
	}
	for _, rec := range recs {
		users = append(users, rec.toUser())
	}
	return users, nil
}

func (r *PostgresUserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	var recs []UserRecord
	if err := r.db.WithContext(ctx).Order("username ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(recs))
	for _, rec := range recs {
		users = append(users, rec.toUser())
	}
	return users, nil
}

func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	rec := toUserRecord(user)
	res := r.db.WithContext(ctx).Model(&UserRecord{}).Where("id = ?", rec.ID).
		Select("username", "email", "password", "bio", "profile_picture", "firebase_uid", "updated_at").
		Updates(&rec)
	if res.Error != nil {
		return translateGormErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
