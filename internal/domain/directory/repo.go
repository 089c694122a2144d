package directory

import (
	"context"

	"github.com/google/uuid"
)

type StaffRepository interface {
	Create(ctx context.Context, s *Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*Staff, error)
	Update(ctx context.Context, s *Staff) error
	List(ctx context.Context, limit, offset int) ([]*Staff, int, error)
	ListActive(ctx context.Context) ([]*Staff, error)
}

type ClientRepository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, limit, offset int) ([]*Client, int, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, s *Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*Service, error)
	Update(ctx context.Context, s *Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Service, int, error)
}
