package usecase

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/kozoukioden/dusakabin-app/internal/domain"
)

type UserUC struct {
	Users domain.UserRepo
}

// HashPassword stores credentials as hex SHA-256. A small shop intranet
// tool, not a public identity system.
func HashPassword(pw string) string {
	sum := sha256.Sum256([]byte(pw))
	return hex.EncodeToString(sum[:])
}

func (uc *UserUC) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	u, err := uc.Users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, errors.New("kullanıcı adı veya şifre hatalı")
	}
	want := []byte(u.Password)
	got := []byte(HashPassword(password))
	if subtle.ConstantTimeCompare(want, got) != 1 {
		return nil, errors.New("kullanıcı adı veya şifre hatalı")
	}
	return u, nil
}

func (uc *UserUC) Save(ctx context.Context, u *domain.User, plainPassword string) error {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" {
		return errors.New("kullanıcı adı boş")
	}
	if !u.Role.Valid() {
		return errors.New("geçersiz rol")
	}
	if plainPassword != "" {
		u.Password = HashPassword(plainPassword)
	}
	if u.Password == "" {
		return errors.New("şifre boş")
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return uc.Users.Save(ctx, u)
}

func (uc *UserUC) List(ctx context.Context) ([]domain.User, error) {
	return uc.Users.List(ctx)
}

func (uc *UserUC) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.Users.Delete(ctx, id)
}

func (uc *UserUC) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return uc.Users.FindByEmail(ctx, email)
}
