package ports

import "context"

// CartProvisioner creates the empty cart every new user is registered with
// and returns its id.
type CartProvisioner interface {
	ProvisionCart(ctx context.Context) (string, error)
}
