package user

import (
	"context"
	"fmt"

	"github.com/eventhub-br/eventhub/internal/errdef"
	"github.com/eventhub-br/eventhub/pkg/model"
)

// CreateAdminUser ensures the configured administrator account exists and is
// active. It runs on every start so a fresh database comes up usable.
func CreateAdminUser(ctx context.Context, email, password string, userService *Service) error {
	existing, err := userService.FindByEmail(ctx, email)
	if err != nil && !errdef.IsNotFound(err) {
		return fmt.Errorf("error looking up admin user: %v", err)
	}

	if existing == nil {
		hashedPassword, err := userService.HashPassword(password)
		if err != nil {
			return fmt.Errorf("error hashing admin password: %v", err)
		}

		existing = &model.User{
			Name:     "Administrator",
			Email:    email,
			Password: hashedPassword,
		}
		err = userService.repository.create(ctx, existing)
		if err != nil {
			return fmt.Errorf("error creating admin user: %v", err)
		}
	}

	existing.Role = model.RoleAdmin
	existing.Active = true

	err = userService.repository.save(ctx, existing)
	if err != nil {
		return fmt.Errorf("error saving admin user: %v", err)
	}

	return nil
}
