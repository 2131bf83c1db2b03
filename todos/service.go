package todos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Service applies the todo rules on top of a Repository.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Create validates req and stores a new, incomplete todo for userID.
func (s *Service) Create(ctx context.Context, userID int64, req CreateTodoRequest) (*Todo, error) {
	req.Text = strings.TrimSpace(req.Text)
	req.Description = strings.TrimSpace(req.Description)
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("%w: field %s failed %q", ErrInvalidTodo, strings.ToLower(verrs[0].Field()), verrs[0].Tag())
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidTodo, err)
	}
	priority, err := ParsePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	t := &Todo{
		UserID:      userID,
		Text:        req.Text,
		Description: req.Description,
		Priority:    priority,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns userID's todos narrowed by f.
func (s *Service) List(ctx context.Context, userID int64, f ListFilter) ([]Todo, error) {
	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	if search == "" && (f.Status == "" || f.Status == StatusAll) {
		return all, nil
	}

	out := make([]Todo, 0, len(all))
	for _, t := range all {
		if f.Status == StatusActive && t.Completed || f.Status == StatusCompleted && !t.Completed {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Text), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Toggle flips the completion of one of userID's todos.
func (s *Service) Toggle(ctx context.Context, userID, todoID int64) (*Todo, error) {
	return s.repo.Toggle(ctx, userID, todoID)
}

// Delete removes one of userID's todos.
func (s *Service) Delete(ctx context.Context, userID, todoID int64) error {
	return s.repo.Delete(ctx, userID, todoID)
}

// Stats computes the stars/level summary over all of userID's todos.
func (s *Service) Stats(ctx context.Context, userID int64) (Stats, error) {
	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(all), nil
}
