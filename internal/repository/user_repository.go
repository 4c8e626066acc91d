package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quizdeck/internal/domain"
	"quizdeck/internal/repository/models"
	"quizdeck/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}
	return &domain.User{
		ID:                    m.ID,
		GoogleID:              m.GoogleID,
		Email:                 m.Email,
		Name:                  m.Name.String,
		ProfilePictureURL:     m.ProfilePictureURL.String,
		EncryptedAccessToken:  m.EncryptedAccessToken.String,
		EncryptedRefreshToken: m.EncryptedRefreshToken.String,
		TokenExpiresAt:        m.TokenExpiresAt.Time,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
		DeletedAt:             deletedAt,
	}
}

const selectUserColumns = `ID, GOOGLE_ID, EMAIL, NAME, PROFILE_PICTURE_URL, ENCRYPTED_ACCESS_TOKEN, ENCRYPTED_REFRESH_TOKEN, TOKEN_EXPIRES_AT, CREATED_AT, UPDATED_AT, DELETED_AT`

// CreateUser inserts a new user.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	query := `INSERT INTO users (ID, GOOGLE_ID, EMAIL, NAME, PROFILE_PICTURE_URL, ENCRYPTED_ACCESS_TOKEN, ENCRYPTED_REFRESH_TOKEN, TOKEN_EXPIRES_AT, CREATED_AT, UPDATED_AT, DELETED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.GoogleID,
		user.Email,
		util.StringToNullString(user.Name),
		util.StringToNullString(user.ProfilePictureURL),
		util.StringToNullString(user.EncryptedAccessToken),
		util.StringToNullString(user.EncryptedRefreshToken),
		util.TimeToNullTime(user.TokenExpiresAt),
		user.CreatedAt,
		user.UpdatedAt,
		sql.NullTime{},
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateUser updates profile fields and provider tokens.
func (r *sqlxUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()

	query := `UPDATE users SET EMAIL = :1, NAME = :2, PROFILE_PICTURE_URL = :3, ENCRYPTED_ACCESS_TOKEN = :4, ENCRYPTED_REFRESH_TOKEN = :5, TOKEN_EXPIRES_AT = :6, UPDATED_AT = :7
	          WHERE ID = :8 AND DELETED_AT IS NULL`

	res, err := r.db.ExecContext(ctx, query,
		user.Email,
		util.StringToNullString(user.Name),
		util.StringToNullString(user.ProfilePictureURL),
		util.StringToNullString(user.EncryptedAccessToken),
		util.StringToNullString(user.EncryptedRefreshToken),
		util.TimeToNullTime(user.TokenExpiresAt),
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	if rows, errRows := res.RowsAffected(); errRows == nil && rows == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("user not found: %s", user.ID))
	}
	return nil
}

// GetUserByID loads a user by ID. Returns (nil, nil) when no user matches.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	var m models.User
	err := r.db.GetContext(ctx, &m,
		fmt.Sprintf(`SELECT %s FROM users WHERE ID = :1 AND DELETED_AT IS NULL`, selectUserColumns), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return toDomainUser(&m), nil
}

// GetUserByGoogleID loads a user by Google ID. Returns (nil, nil) when no user matches.
func (r *sqlxUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	var m models.User
	err := r.db.GetContext(ctx, &m,
		fmt.Sprintf(`SELECT %s FROM users WHERE GOOGLE_ID = :1 AND DELETED_AT IS NULL`, selectUserColumns), googleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by google_id: %w", err)
	}
	return toDomainUser(&m), nil
}
