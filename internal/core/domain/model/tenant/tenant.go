// Package tenant provides the read model of tenant-level settings consumed by
// the orchestration core. Plan/billing management lives outside this core;
// only the loyalty program configuration is read here.
package tenant

import (
	"comanda/internal/core/domain/model/kernel"
)

// Tenant is the settings read model for one restaurant account.
type Tenant struct {
	ID   kernel.UUID
	Name string

	// LoyaltyEnabled gates point accrual on checkout and table closure.
	LoyaltyEnabled bool

	// PointsPerCurrency is the accrual rate in points per whole currency
	// unit; accrual is floor(total * rate).
	PointsPerCurrency int
}
