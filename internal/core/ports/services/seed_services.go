package services

import "context"

// SeedSvcFacade populates an empty store with fixture data so the dashboard
// is never empty on first load.
type SeedSvcFacade interface {
	// SeedIfEmpty seeds only when no transactions exist. It reports whether
	// seeding ran.
	SeedIfEmpty(ctx context.Context) (bool, error)
}
