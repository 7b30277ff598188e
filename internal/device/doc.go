// Package device provides persistence for the devices managed by HomeHub Core.
//
// A device is a named, typed appliance with a free-form status and location.
// All descriptive fields are nullable: a full-replace update writes exactly
// the values it was given, so an omitted field becomes NULL.
//
// # Key Types
//
//   - Device: A stored row, as returned by the REST API
//   - Input: The mutable fields accepted on create and update
//   - Repository: Persistence operations, implemented by SQLRepository
//
// # Usage
//
//	repo := device.NewSQLRepository(store.New(db, store.DialectSQLite))
//	d, err := repo.Create(ctx, device.Input{Name: ptr("Lamp"), Type: ptr("light")})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(*d.Status) // "offline"
//
// Every write is a single statement. Updates and deletes report
// ErrDeviceNotFound from the statement's own result, never from a prior read.
package device
