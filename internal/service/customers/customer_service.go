package customers

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/registry"
)

type CustomerUseCase interface {
	AddCustomer(ctx context.Context, input AddCustomerInput) (*domain.Customer, error)
	RemoveCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	Details(ctx context.Context, id int64) (*registry.CustomerDetails, error)
}

type Registry interface {
	AddCustomer(in registry.NewCustomer) (domain.Customer, error)
	RemoveCustomer(id int64) (domain.Customer, error)
	Customers(opts registry.ListOptions) []domain.Customer
	Customer(id int64) (domain.Customer, error)
	CustomerByPhone(phone string) (domain.Customer, error)
	CustomerDetails(id int64) (registry.CustomerDetails, error)
}

type AddCustomerInput struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type CustomerService struct {
	registry Registry
}

func NewCustomerService(reg Registry) *CustomerService {
	return &CustomerService{registry: reg}
}

func (s *CustomerService) AddCustomer(ctx context.Context, input AddCustomerInput) (*domain.Customer, error) {
	c, err := s.registry.AddCustomer(registry.NewCustomer{
		Name:  input.Name,
		Age:   input.Age,
		Phone: input.Phone,
		Email: input.Email,
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// RemoveCustomer hides the customer from active listings and blocks further
// bookings and cancellations. Existing bookings are kept.
func (s *CustomerService) RemoveCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	c, err := s.registry.RemoveCustomer(id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CustomerService) List(ctx context.Context, activeOnly bool) ([]domain.Customer, error) {
	return s.registry.Customers(registry.ListOptions{ActiveOnly: activeOnly}), nil
}

func (s *CustomerService) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	c, err := s.registry.Customer(id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CustomerService) FindByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	c, err := s.registry.CustomerByPhone(phone)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CustomerService) Details(ctx context.Context, id int64) (*registry.CustomerDetails, error) {
	d, err := s.registry.CustomerDetails(id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

var _ CustomerUseCase = (*CustomerService)(nil)
var _ Registry = (*registry.Registry)(nil)
