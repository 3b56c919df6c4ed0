package device_test

import (
	"testing"

	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/device"
	"github.com/hance08/hb/internal/store"
	"github.com/hance08/hb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimaryDevice(t *testing.T) {
	f := testutil.NewSeededFixture(t)

	id, err := device.NewResolver(f.Store).PrimaryDevice()
	require.NoError(t, err)
	assert.Equal(t, device.Identity{ID: testutil.PrimaryDeviceID, Key: 1}, id)
}

func TestPrimaryDeviceMustBeUnique(t *testing.T) {
	tests := []struct {
		name  string
		setup string
		count int
	}{
		{"none", "UPDATE DeviceInfo SET isPrimary = 'N'", 0},
		{"inactive", "UPDATE DeviceInfo SET isActive = 'N' WHERE key = 1", 0},
		{"two", "UPDATE DeviceInfo SET isPrimary = 'Y'", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testutil.NewSeededFixture(t)
			f.Exec(t, tt.setup)

			_, err := device.NewResolver(f.Store).PrimaryDevice()

			var devErr *apperr.DeviceConfigurationError
			require.ErrorAs(t, err, &devErr)
			assert.Equal(t, tt.count, devErr.Count)
		})
	}
}

func TestEntityDevice(t *testing.T) {
	f := testutil.NewSeededFixture(t)
	r := device.NewResolver(f.Store)

	tests := []struct {
		name  string
		table store.EntityTable
		key   int64
		want  device.Identity
	}{
		{"account with identity", store.TableAccount, testutil.AccountWallet, device.Identity{ID: testutil.PrimaryDeviceID, Key: 7}},
		{"account on secondary device", store.TableAccount, testutil.AccountUS, device.Identity{ID: testutil.SecondaryDeviceID, Key: 3}},
		{"account without identity", store.TableAccount, testutil.AccountBank, device.Identity{}},
		{"category", store.TableCategory, testutil.CategoryFood, device.Identity{ID: testutil.PrimaryDeviceID, Key: 21}},
		{"subcategory without deviceKey uses row key", store.TableSubCategory, testutil.SubCategoryFuel, device.Identity{ID: testutil.SecondaryDeviceID, Key: testutil.SubCategoryFuel}},
		{"payee", store.TablePayee, testutil.PayeeCornerStore, device.Identity{ID: testutil.PrimaryDeviceID, Key: 9}},
		{"no payee", store.TablePayee, 0, device.Identity{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.EntityDevice(tt.table, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntityDeviceUnknownDevice(t *testing.T) {
	f := testutil.NewSeededFixture(t)
	f.Exec(t, "UPDATE Account SET deviceIdKey = 99 WHERE key = ?", testutil.AccountBank)

	got, err := device.NewResolver(f.Store).EntityDevice(store.TableAccount, testutil.AccountBank)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestEntityDeviceMissingRow(t *testing.T) {
	f := testutil.NewSeededFixture(t)

	_, err := device.NewResolver(f.Store).EntityDevice(store.TableCategory, 404)

	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestResolveContext(t *testing.T) {
	f := testutil.NewSeededFixture(t)

	ctx, err := device.NewResolver(f.Store).Resolve(
		device.Ref{Table: store.TableAccount, Key: testutil.AccountWallet},
		device.Ref{Table: store.TableCategory, Key: testutil.CategoryTransport},
		device.Ref{Table: store.TableAccount, Key: testutil.AccountWallet},
	)
	require.NoError(t, err)

	assert.Equal(t, testutil.PrimaryDeviceID, ctx.Primary.ID)
	assert.Equal(t, int64(7), ctx.Entity(store.TableAccount, testutil.AccountWallet).Key)
	assert.True(t, ctx.Entity(store.TableCategory, testutil.CategoryTransport).IsZero())
	assert.True(t, ctx.Entity(store.TablePayee, 5).IsZero())
}
