package auth

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// Claims extraction helpers shared by the services. The portal in front of
// this engine issues the tokens; here they only identify the acting tenant
// and person.

func CompanyID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

func EmployeeID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return employeeID, nil
}

// ActorName returns the display name claim, falling back to the employee id.
func ActorName(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	if name, ok := claims["name"].(string); ok && name != "" {
		return name, nil
	}
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		return employeeID, nil
	}
	return "", fmt.Errorf("name claim is missing or invalid")
}

// IsAdmin reports whether the token carries an administrator role.
func IsAdmin(ctx context.Context) bool {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return false
	}
	role, _ := claims["role"].(string)
	return role == "admin"
}
