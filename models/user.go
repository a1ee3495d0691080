package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/restgest/restgest_backend/config"
	"bitbucket.org/restgest/restgest_backend/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Username  string    `gorm:"size:100;unique;not null" json:"username"`
	Nome      string    `gorm:"size:100;not null" json:"nome"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	IsActive  *bool     `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginInfo struct {
	Token string `json:"token"`
	Nome  string `json:"nome"`
}

var ErrInvalidCredentials = errors.New("invalid username or password")

func Login(ctx context.Context, input *LoginInput) (*LoginInfo, error) {
	logger := config.GetLogger()
	db := config.GetDB()

	var user User
	if err := db.WithContext(ctx).Where("username = ?", input.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		config.LogError(logger, "models", "Login", "fetching user", input.Username, err)
		return nil, err
	}

	if user.IsActive != nil && !*user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := utils.ComparePassword(user.Password, input.Password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	token, err := utils.JwtGenerate(user.ID, user.Username)
	if err != nil {
		config.LogError(logger, "models", "Login", "generating token", user.Username, err)
		return nil, err
	}

	// session bookkeeping, best effort when redis is around
	if err := config.AddRedisSet("Tokens:"+user.Username, token); err != nil {
		config.LogError(logger, "models", "Login", "storing session token", user.Username, err)
	}

	return &LoginInfo{Token: token, Nome: user.Nome}, nil
}

func Logout(ctx context.Context) error {
	username, okUser := utils.GetUsernameFromContext(ctx)
	token, okToken := utils.GetTokenFromContext(ctx)
	if !okUser || !okToken {
		return nil
	}
	return config.RemoveRedisSetMember("Tokens:"+username, token)
}

func GetUser(ctx context.Context, id int) (*User, error) {
	return utils.FetchSingleModel[User](ctx, id)
}

// UpsertUser creates the account or resets its password and display name
// when the username already exists. Used by the seeding command.
func UpsertUser(ctx context.Context, username string, nome string, password string) (*User, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()

	var user User
	err = db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = User{Username: username, Nome: nome, Password: string(hashed), IsActive: utils.NewTrue()}
		if err := db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"Nome":     nome,
		"Password": string(hashed),
	}).Error; err != nil {
		return nil, err
	}

	// A password reset revokes every cached session token.
	if err := config.RemoveRedisKey("Tokens:" + username); err != nil {
		config.LogError(config.GetLogger(), "models", "UpsertUser", "revoke tokens", username, err)
	}
	return &user, nil
}
