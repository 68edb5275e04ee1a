package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"elearn/models"
	"elearn/store"
)

// Register creates a student account with a bcrypt hash of password.
func Register(ctx context.Context, st store.Store, name, email, password string, cost int) (models.User, error) {
	email = strings.TrimSpace(email)
	if _, err := st.GetUserByEmail(ctx, email); err == nil {
		return models.User{}, ErrUserExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.User{}, err
	}

	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:        newID(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		Password:  string(hashed),
		Role:      models.RoleStudent,
		CreatedAt: nowFunc(),
	}
	if err := st.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.User{}, ErrUserExists
		}
		return models.User{}, err
	}
	return st.GetUserByID(ctx, user.ID)
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// Login checks password against the stored hash. Unknown emails and wrong
// passwords both return ErrInvalidCredentials after a full hash comparison.
func Login(ctx context.Context, st store.Store, email, password string) (models.User, error) {
	user, err := st.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, store.ErrNotFound) {
		dummyHashOnce.Do(func() {
			dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
		})
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func GetUser(ctx context.Context, st store.Store, userID string) (models.User, error) {
	return st.GetUserByID(ctx, userID)
}
