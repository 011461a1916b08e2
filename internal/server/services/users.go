// Package services holds the backend use cases behind the HTTP handlers:
// accounts and tokens, job notes, and attachment URLs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/cryptox"
	"github.com/dmitrijs2005/jobkeeper/internal/server/auth"
	"github.com/dmitrijs2005/jobkeeper/internal/server/config"
	"github.com/dmitrijs2005/jobkeeper/internal/server/models"
	"github.com/dmitrijs2005/jobkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobkeeper/internal/shared"
	"github.com/go-playground/validator/v10"
)

// AccessToken is what a successful login hands back to the caller.
type AccessToken struct {
	Token     string
	ExpiresIn time.Duration
}

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	hashParams                  cryptox.Params
	validate                    *validator.Validate
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		hashParams:                  cryptox.DefaultParams,
		validate:                    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *UserService) checkLogin(userName string) error {
	if err := s.validate.Var(userName, "required,min=3,max=64,printascii"); err != nil {
		return shared.ErrorInvalidLoginFormat
	}
	if strings.IndexFunc(userName, unicode.IsSpace) >= 0 {
		return shared.ErrorInvalidLoginFormat
	}
	return nil
}

func (s *UserService) checkPassword(password string) error {
	if err := s.validate.Var(password, "required,min=8,max=128"); err != nil {
		return shared.ErrorInvalidPasswordFormat
	}
	return nil
}

// Register creates an account. The password is stored as an argon2id hash.
func (s *UserService) Register(ctx context.Context, userName, password string) (*models.User, error) {
	if err := s.checkLogin(userName); err != nil {
		return nil, err
	}
	if err := s.checkPassword(password); err != nil {
		return nil, err
	}

	user := &models.User{
		UserName:     userName,
		PasswordHash: cryptox.HashSecret(password, s.hashParams),
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, shared.ErrorLoginAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and issues an access token. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, userName, password string) (*AccessToken, error) {

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, shared.ErrorInvalidLoginPassword
		}
		return nil, common.ErrorInternal
	}

	ok, err := cryptox.VerifySecret(password, user.PasswordHash)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, shared.ErrorInvalidLoginPassword
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AccessToken{Token: token, ExpiresIn: s.accessTokenValidityDuration}, nil
}

// UserIDFromToken resolves a bearer token to its account id.
func (s *UserService) UserIDFromToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}
