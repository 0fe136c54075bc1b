// Package flags is a narrow boolean-flag capability, used for the
// demo-data-loaded marker. One implementation per environment, selected at
// startup.
package flags

import "context"

// DemoDataLoadedKey marks that the demo catalog has been seeded.
const DemoDataLoadedKey = "salestracker:demo_data_loaded"

// Store reads and writes named boolean flags.
type Store interface {
	Get(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key string, value bool) error
}
