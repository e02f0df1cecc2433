package registry

import (
	"fmt"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

func (r *Registry) AddAirline(name, email, password string) (domain.Airline, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := domain.Airline{
		ID:       r.seq.Airline + 1,
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if a.Name == "" || a.Email == "" {
		return domain.Airline{}, domain.Reject(domain.ReasonInvalidInput, "airline name and email are required")
	}
	if err := r.insertAirline(a); err != nil {
		return domain.Airline{}, err
	}
	return a, nil
}

func (r *Registry) insertAirline(a domain.Airline) error {
	if _, ok := r.airlines[a.ID]; ok || a.ID <= 0 {
		return fmt.Errorf("airline #%d: %w", a.ID, domain.ErrIDCollision)
	}
	key := airlineKey{email: a.Email, password: a.Password}
	if _, ok := r.airlineKeys[key]; ok {
		return domain.Reject(domain.ReasonDuplicateAirline, "there is an airline with the same email and password in the system")
	}
	r.airlines[a.ID] = &a
	r.airlineKeys[key] = a.ID
	bump(&r.seq.Airline, a.ID)
	return nil
}

func (r *Registry) Airline(id int64) (domain.Airline, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, err := r.airline(id)
	if err != nil {
		return domain.Airline{}, err
	}
	return *a, nil
}

func (r *Registry) airline(id int64) (*domain.Airline, error) {
	a, ok := r.airlines[id]
	if !ok {
		return nil, domain.NotFound("airline", id)
	}
	return a, nil
}

func (r *Registry) Airlines() []domain.Airline {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Airline, 0, len(r.airlines))
	for _, id := range sortedIDs(r.airlines) {
		out = append(out, *r.airlines[id])
	}
	return out
}

// AuthenticateAirline matches the login email and the stored plaintext password.
func (r *Registry) AuthenticateAirline(email, password string) (domain.Airline, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.airlineKeys[airlineKey{email: strings.TrimSpace(email), password: password}]
	if !ok {
		return domain.Airline{}, domain.Reject(domain.ReasonInvalidLogin, "invalid airline credentials")
	}
	return *r.airlines[id], nil
}
