// Package auth covers the three user roles: who may run what, how a user
// proves a role, and the signed tokens the HTTP API hands out.
package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleAirline  Role = "airline"
	RoleCustomer Role = "customer"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleAirline, RoleCustomer:
		return r, nil
	default:
		return "", domain.Reject(domain.ReasonInvalidLogin, "Invalid role. Please specify admin, airline, or customer.")
	}
}

// Permits reports whether a user holding role may run an operation that
// requires the given role. Admin may run everything.
func Permits(role, required Role) bool {
	return role == RoleAdmin || role == required
}

func CheckPermission(role, required Role) error {
	if !Permits(role, required) {
		return fmt.Errorf("%w: role %s", ErrForbidden, role)
	}
	return nil
}

type AirlineAuthenticator interface {
	Authenticate(ctx context.Context, email, password string) (*domain.Airline, error)
}

type Credentials struct {
	Role     Role   `json:"role"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Verifier checks login credentials. Admin credentials are fixed by
// configuration, airlines log in with their registered email and password,
// customers need none.
type Verifier struct {
	adminUser     string
	adminPassword string
	airlines      AirlineAuthenticator
}

func NewVerifier(adminUser, adminPassword string, airlines AirlineAuthenticator) *Verifier {
	return &Verifier{adminUser: adminUser, adminPassword: adminPassword, airlines: airlines}
}

// Verify returns the token subject for valid credentials.
func (v *Verifier) Verify(ctx context.Context, c Credentials) (string, error) {
	role, err := ParseRole(string(c.Role))
	if err != nil {
		return "", err
	}
	switch role {
	case RoleAdmin:
		if c.Username != v.adminUser || c.Password != v.adminPassword {
			return "", domain.Reject(domain.ReasonInvalidLogin, "Invalid admin credentials.")
		}
		return c.Username, nil
	case RoleAirline:
		a, err := v.airlines.Authenticate(ctx, c.Username, c.Password)
		if err != nil {
			return "", domain.Reject(domain.ReasonInvalidLogin, "Invalid airline credentials.")
		}
		return "airline:" + strconv.FormatInt(a.ID, 10), nil
	default:
		return string(RoleCustomer), nil
	}
}
