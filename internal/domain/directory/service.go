package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var validStaffRoles = map[string]bool{
	"admin":        true,
	"manager":      true,
	"stylist":      true,
	"receptionist": true,
}

// DirectoryService manages the salon roster: staff members, clients, and
// the service menu.
type DirectoryService struct {
	staff    StaffRepository
	clients  ClientRepository
	services ServiceRepository
}

func NewDirectoryService(staff StaffRepository, clients ClientRepository, services ServiceRepository) *DirectoryService {
	return &DirectoryService{staff: staff, clients: clients, services: services}
}

// --- Staff ---

func (s *DirectoryService) CreateStaff(ctx context.Context, st *Staff) error {
	st.DisplayName = strings.TrimSpace(st.DisplayName)
	if st.DisplayName == "" {
		return fmt.Errorf("display_name is required")
	}
	if st.Role != nil && !validStaffRoles[*st.Role] {
		return fmt.Errorf("invalid role: %s", *st.Role)
	}
	st.IsActive = true
	return s.staff.Create(ctx, st)
}

func (s *DirectoryService) GetStaff(ctx context.Context, id uuid.UUID) (*Staff, error) {
	return s.staff.GetByID(ctx, id)
}

func (s *DirectoryService) UpdateStaff(ctx context.Context, st *Staff) error {
	st.DisplayName = strings.TrimSpace(st.DisplayName)
	if st.DisplayName == "" {
		return fmt.Errorf("display_name is required")
	}
	if st.Role != nil && !validStaffRoles[*st.Role] {
		return fmt.Errorf("invalid role: %s", *st.Role)
	}
	if _, err := s.staff.GetByID(ctx, st.ID); err != nil {
		return err
	}
	return s.staff.Update(ctx, st)
}

// DeactivateStaff retires a staff member without deleting their history.
// Past appointments keep their assignment.
func (s *DirectoryService) DeactivateStaff(ctx context.Context, id uuid.UUID) error {
	st, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return err
	}
	st.IsActive = false
	return s.staff.Update(ctx, st)
}

func (s *DirectoryService) ListStaff(ctx context.Context, limit, offset int) ([]*Staff, int, error) {
	return s.staff.List(ctx, limit, offset)
}

func (s *DirectoryService) ListActiveStaff(ctx context.Context) ([]*Staff, error) {
	return s.staff.ListActive(ctx)
}

// --- Clients ---

func (s *DirectoryService) CreateClient(ctx context.Context, c *Client) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.clients.Create(ctx, c)
}

func (s *DirectoryService) GetClient(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.clients.GetByID(ctx, id)
}

func (s *DirectoryService) UpdateClient(ctx context.Context, c *Client) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := s.clients.GetByID(ctx, c.ID); err != nil {
		return err
	}
	return s.clients.Update(ctx, c)
}

func (s *DirectoryService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clients.GetByID(ctx, id); err != nil {
		return err
	}
	return s.clients.Delete(ctx, id)
}

func (s *DirectoryService) ListClients(ctx context.Context, search string, limit, offset int) ([]*Client, int, error) {
	return s.clients.List(ctx, search, limit, offset)
}

// --- Services ---

func (s *DirectoryService) CreateService(ctx context.Context, svc *Service) error {
	svc.Name = strings.TrimSpace(svc.Name)
	if svc.Name == "" {
		return fmt.Errorf("name is required")
	}
	if svc.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	if svc.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	svc.IsActive = true
	return s.services.Create(ctx, svc)
}

func (s *DirectoryService) GetService(ctx context.Context, id uuid.UUID) (*Service, error) {
	return s.services.GetByID(ctx, id)
}

func (s *DirectoryService) UpdateService(ctx context.Context, svc *Service) error {
	svc.Name = strings.TrimSpace(svc.Name)
	if svc.Name == "" {
		return fmt.Errorf("name is required")
	}
	if svc.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	if svc.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if _, err := s.services.GetByID(ctx, svc.ID); err != nil {
		return err
	}
	return s.services.Update(ctx, svc)
}

func (s *DirectoryService) DeleteService(ctx context.Context, id uuid.UUID) error {
	if _, err := s.services.GetByID(ctx, id); err != nil {
		return err
	}
	return s.services.Delete(ctx, id)
}

func (s *DirectoryService) ListServices(ctx context.Context, limit, offset int) ([]*Service, int, error) {
	return s.services.List(ctx, limit, offset)
}
