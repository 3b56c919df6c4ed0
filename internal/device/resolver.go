// Package device resolves the device identity pairs stamped into sync
// payloads.
package device

import (
	"errors"
	"fmt"

	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/store"
)

// Identity is a (deviceId, deviceKey) pair. The zero value is the
// companion application's own "no identity" marker and is written verbatim.
type Identity struct {
	ID  string
	Key int64
}

func (i Identity) IsZero() bool {
	return i.ID == "" && i.Key == 0
}

// Ref points at one reference row.
type Ref struct {
	Table store.EntityTable
	Key   int64
}

type Resolver struct {
	repo store.Repository
}

func NewResolver(repo store.Repository) *Resolver {
	return &Resolver{repo: repo}
}

// PrimaryDevice returns the single active primary device. Zero or several
// candidates is a configuration problem the caller cannot work around.
func (r *Resolver) PrimaryDevice() (Identity, error) {
	devices, err := r.repo.ListPrimaryDevices()
	if err != nil {
		return Identity{}, err
	}
	if len(devices) != 1 {
		return Identity{}, &apperr.DeviceConfigurationError{Count: len(devices)}
	}
	return Identity{ID: devices[0].DeviceID, Key: devices[0].Key}, nil
}

// EntityDevice returns the identity recorded on a reference row, or the
// zero Identity when the row has none. Key 0 means "no entity" (an expense
// without payee) and also resolves to the zero Identity.
func (r *Resolver) EntityDevice(table store.EntityTable, key int64) (Identity, error) {
	if key == 0 {
		return Identity{}, nil
	}

	ed, err := r.repo.GetEntityDevice(table, key)
	if err != nil {
		return Identity{}, err
	}
	if !ed.DeviceIDKey.Valid || ed.DeviceIDKey.Int64 == 0 {
		return Identity{}, nil
	}

	d, err := r.repo.GetDeviceByKey(ed.DeviceIDKey.Int64)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return Identity{}, nil
		}
		return Identity{}, fmt.Errorf("resolve device of %s %d: %w", table, key, err)
	}

	deviceKey := ed.EntityKey
	if ed.DeviceKey.Valid {
		deviceKey = ed.DeviceKey.Int64
	}
	return Identity{ID: d.DeviceID, Key: deviceKey}, nil
}

// Context is the identity state of one write, resolved once up front and
// passed down the pipeline instead of being looked up repeatedly.
type Context struct {
	Primary  Identity
	entities map[Ref]Identity
}

// Entity returns the identity resolved for ref, or the zero Identity.
func (c *Context) Entity(table store.EntityTable, key int64) Identity {
	if c == nil {
		return Identity{}
	}
	return c.entities[Ref{Table: table, Key: key}]
}

// Resolve builds a Context for the primary device and every ref given.
func (r *Resolver) Resolve(refs ...Ref) (*Context, error) {
	primary, err := r.PrimaryDevice()
	if err != nil {
		return nil, err
	}

	ctx := &Context{Primary: primary, entities: make(map[Ref]Identity, len(refs))}
	for _, ref := range refs {
		if _, ok := ctx.entities[ref]; ok {
			continue
		}
		id, err := r.EntityDevice(ref.Table, ref.Key)
		if err != nil {
			return nil, err
		}
		ctx.entities[ref] = id
	}
	return ctx, nil
}
