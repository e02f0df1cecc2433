package registry

import (
	"fmt"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

func (r *Registry) AddPlane(model string, capacity int, airlineID int64) (domain.Plane, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.airline(airlineID); err != nil {
		return domain.Plane{}, err
	}
	p := domain.Plane{
		ID:        r.seq.Plane + 1,
		Model:     strings.TrimSpace(model),
		Capacity:  capacity,
		AirlineID: airlineID,
	}
	if p.Model == "" {
		return domain.Plane{}, domain.Reject(domain.ReasonInvalidInput, "plane model is required")
	}
	if err := r.insertPlane(p); err != nil {
		return domain.Plane{}, err
	}
	return p, nil
}

func (r *Registry) insertPlane(p domain.Plane) error {
	if _, ok := r.planes[p.ID]; ok || p.ID <= 0 {
		return fmt.Errorf("plane #%d: %w", p.ID, domain.ErrIDCollision)
	}
	if p.Capacity <= 0 {
		return domain.Reject(domain.ReasonInvalidInput, "plane capacity must be positive, got %d", p.Capacity)
	}
	if _, ok := r.airlines[p.AirlineID]; !ok {
		return domain.NotFound("airline", p.AirlineID)
	}
	key := planeKey{model: p.Model, capacity: p.Capacity}
	if _, ok := r.planeKeys[key]; ok {
		return domain.Reject(domain.ReasonDuplicatePlane, "there is a plane with the same model and capacity in the system")
	}
	r.planes[p.ID] = &p
	r.planeKeys[key] = p.ID
	bump(&r.seq.Plane, p.ID)
	return nil
}

// SetPlaneCapacity changes the seat count of a plane. Every flight flown by
// the plane sees the new capacity, which may not drop below the seats
// already booked on any of them.
func (r *Registry) SetPlaneCapacity(id int64, capacity int) (domain.Plane, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.plane(id)
	if err != nil {
		return domain.Plane{}, err
	}
	if capacity <= 0 {
		return domain.Plane{}, domain.Reject(domain.ReasonInvalidInput, "plane capacity must be positive, got %d", capacity)
	}
	if capacity == p.Capacity {
		return *p, nil
	}
	if booked := r.mostBooked(p.ID); capacity < booked {
		return domain.Plane{}, domain.Reject(domain.ReasonInvalidInput, "plane #%d has %d seats booked on one of its flights, capacity %d is too small", p.ID, booked, capacity)
	}
	newKey := planeKey{model: p.Model, capacity: capacity}
	if _, ok := r.planeKeys[newKey]; ok {
		return domain.Plane{}, domain.Reject(domain.ReasonDuplicatePlane, "there is a plane with the same model and capacity in the system")
	}
	delete(r.planeKeys, planeKey{model: p.Model, capacity: p.Capacity})
	p.Capacity = capacity
	r.planeKeys[newKey] = p.ID
	return *p, nil
}

// mostBooked is the highest booking count over the flights flown by the plane.
func (r *Registry) mostBooked(planeID int64) int {
	most := 0
	for _, f := range r.flights {
		if f.PlaneID != planeID {
			continue
		}
		if n := len(r.bookingsByFlight[f.ID]); n > most {
			most = n
		}
	}
	return most
}

func (r *Registry) Plane(id int64) (domain.Plane, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, err := r.plane(id)
	if err != nil {
		return domain.Plane{}, err
	}
	return *p, nil
}

func (r *Registry) plane(id int64) (*domain.Plane, error) {
	p, ok := r.planes[id]
	if !ok {
		return nil, domain.NotFound("plane", id)
	}
	return p, nil
}

func (r *Registry) Planes() []domain.Plane {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Plane, 0, len(r.planes))
	for _, id := range sortedIDs(r.planes) {
		out = append(out, *r.planes[id])
	}
	return out
}
