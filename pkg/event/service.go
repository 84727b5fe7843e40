package event

import (
	"context"
	"time"

	"github.com/eventhub-br/eventhub/pkg/model"
)

func NewService(repository *repository) *Service {
	return &Service{repository: repository}
}

type Service struct {
	repository *repository
}

type CreateEventInput struct {
	Name     string
	Details  string
	StartsAt time.Time
	EndsAt   time.Time
	Location string
	Category string
	Capacity *int
	Price    float64
}

func (s Service) Create(ctx context.Context, input CreateEventInput) (*model.Event, error) {
	e := &model.Event{
		Name:     input.Name,
		Details:  input.Details,
		StartsAt: input.StartsAt,
		EndsAt:   input.EndsAt,
		Location: input.Location,
		Category: input.Category,
		Capacity: input.Capacity,
		Price:    input.Price,
		Active:   true,
	}

	err := s.repository.create(ctx, e)
	if err != nil {
		return nil, err
	}

	return e, nil
}

func (s Service) Update(ctx context.Context, id uint, input CreateEventInput) (*model.Event, error) {
	e, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}

	e.Name = input.Name
	e.Details = input.Details
	e.StartsAt = input.StartsAt
	e.EndsAt = input.EndsAt
	e.Location = input.Location
	e.Category = input.Category
	e.Capacity = input.Capacity
	e.Price = input.Price

	err = s.repository.save(ctx, e)
	if err != nil {
		return nil, err
	}

	return e, nil
}

// Deactivate takes an event out of circulation without deleting it, existing
// enrollments and attendances keep pointing at it.
func (s Service) Deactivate(ctx context.Context, id uint) error {
	e, err := s.repository.findById(ctx, id)
	if err != nil {
		return err
	}

	e.Active = false
	return s.repository.save(ctx, e)
}

func (s Service) FindById(ctx context.Context, id uint) (*model.Event, error) {
	return s.repository.findById(ctx, id)
}

func (s Service) FindAll(ctx context.Context) ([]*model.Event, error) {
	return s.repository.findAllActive(ctx)
}
