package user

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/eventhub-br/eventhub/internal/errdef"
	"github.com/eventhub-br/eventhub/pkg/model"
	"github.com/eventhub-br/eventhub/pkg/notification"

	"golang.org/x/crypto/argon2"
)

func NewService(repository *repository, notifier notifier) *Service {
	return &Service{
		repository: repository,
		notifier:   notifier,
	}
}

type notifier interface {
	Notify(ctx context.Context, message notification.Message)
}

type Service struct {
	repository *repository
	notifier   notifier
}

// SignUpInput carries the registration fields. Phone and document are
// optional and stored digits-only.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Document string
}

func (s Service) SignUp(ctx context.Context, input SignUpInput) (*model.User, error) {
	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %v", err)
	}

	user := &model.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     model.RoleUser,
		Active:   true,
		Phone:    stripNonDigits(input.Phone),
		Document: stripNonDigits(input.Document),
	}

	err = s.repository.create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notification.Message{
		Kind:      notification.KindUserRegistered,
		UserName:  user.Name,
		UserEmail: user.Email,
	})

	return user, nil
}

func (s Service) SignIn(ctx context.Context, email string, password string) (*model.User, error) {
	unauthorizedError := "invalid email and password combination"

	user, err := s.repository.findByEmail(ctx, email)
	if err != nil {
		if errdef.IsNotFound(err) {
			return nil, errdef.NewUnauthorized("%s", unauthorizedError)
		}
		return nil, err
	}

	match, err := comparePasswords(user.Password, password)
	if err != nil {
		return nil, fmt.Errorf("password comparison failed: %v", err)
	}

	if !match {
		return nil, errdef.NewUnauthorized("%s", unauthorizedError)
	}

	if !user.Active {
		return nil, errdef.NewUnauthorized("user is deactivated")
	}

	return user, nil
}

func (s Service) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.repository.findByEmail(ctx, email)
}

func (s Service) FindById(ctx context.Context, id uint) (*model.User, error) {
	return s.repository.findById(ctx, id)
}

func (s Service) FindAll(ctx context.Context) ([]*model.User, error) {
	return s.repository.findAllActive(ctx)
}

// UpdateProfileInput distinguishes absent fields (nil) from cleared fields
// (empty string) for phone and document.
type UpdateProfileInput struct {
	Name     *string
	Phone    *string
	Document *string
}

func (s Service) UpdateProfile(ctx context.Context, user *model.User, input UpdateProfileInput) (*model.User, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		user.Name = *input.Name
	}

	if input.Phone != nil {
		user.Phone = stripNonDigits(*input.Phone)
	}

	if input.Document != nil {
		user.Document = stripNonDigits(*input.Document)
	}

	err := s.repository.save(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %v", err)
	}

	return user, nil
}

// Deactivate flips the active flag. There is no hard delete, the user's
// still-valid tokens get rejected on their next request.
func (s Service) Deactivate(ctx context.Context, id uint) error {
	user, err := s.repository.findById(ctx, id)
	if err != nil {
		return err
	}

	user.Active = false
	return s.repository.save(ctx, user)
}

// HashPassword hashes a plain text password for storage. Used by the quick
// registration flow which assembles the user record itself.
func (s Service) HashPassword(password string) (string, error) {
	return hashPassword(password)
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

const (
	argonTime    = 3
	argonMemory  = 128 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	_, err := rand.Read(salt)
	if err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encodedSalt := base64.RawStdEncoding.EncodeToString(salt)
	encodedHash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads, encodedSalt, encodedHash), nil
}

func comparePasswords(storedPassword string, suppliedPassword string) (bool, error) {
	parts := strings.Split(storedPassword, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, fmt.Errorf("invalid password hash")
	}

	var memory, time uint32
	var threads uint8
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads)
	if err != nil {
		return false, fmt.Errorf("invalid password parameters: %v", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %v", err)
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %v", err)
	}

	hash := argon2.IDKey([]byte(suppliedPassword), salt, time, memory, threads, uint32(len(expectedHash)))

	return subtle.ConstantTimeCompare(hash, expectedHash) == 1, nil
}
