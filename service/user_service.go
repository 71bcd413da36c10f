package service

import (
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"personalblog/internal/auth"
	"personalblog/model"
	"personalblog/utils"
)

var (
	ErrEmailExists        = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserFieldsMissing  = errors.New("name, email and password are required")
)

// UserStore is the slice of the DAO the user service depends on.
type UserStore interface {
	CreateUser(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByID(id uint64) (*model.User, error)
}

// UserService handles registration and credential checks.
type UserService struct {
	store      UserStore
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(store UserStore, tokens *auth.TokenManager, bcryptCost int) *UserService {
	return &UserService{store: store, tokens: tokens, bcryptCost: bcryptCost}
}

// Register hashes the password and persists a freshly created user.
// Email uniqueness is enforced by the store's unique index.
func (s *UserService) Register(user *model.User, password string) error {
	if strings.TrimSpace(user.Name) == "" || strings.TrimSpace(user.Email) == "" || password == "" {
		return ErrUserFieldsMissing
	}
	hashed, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if err := s.store.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailExists
		}
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

// Login checks email/password and issues a bearer token for the user.
// 邮箱不存在与密码错误返回同一个错误，避免泄露账号是否注册。
func (s *UserService) Login(email, password string) (string, *model.User, error) {
	user, err := s.store.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
