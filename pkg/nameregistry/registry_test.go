package nameregistry_test

import (
	"context"
	"testing"

	mock_qdb "github.com/pg-sharding/walseq/pkg/mock/qdb"
	"github.com/pg-sharding/walseq/pkg/models/walerror"
	"github.com/pg-sharding/walseq/pkg/nameregistry"
	"github.com/pg-sharding/walseq/qdb"
	"github.com/stretchr/testify/assert"
	tassert "github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRegistry(t *testing.T, mangle bool) (*nameregistry.Registry, *qdb.MemQDB) {
	t.Helper()
	db, err := qdb.NewMemQDB("")
	assert.NoError(t, err)
	return nameregistry.NewRegistry(db, mangle), db
}

func TestRegistryWalSystemNameFor(t *testing.T) {
	mangled, _ := newRegistry(t, true)
	plain, _ := newRegistry(t, false)

	assert.Equal(t, "trades~7", mangled.WalSystemNameFor("trades", 7))
	assert.Equal(t, "trades~", plain.WalSystemNameFor("trades", 7))
	assert.Equal(t, "trades", plain.DefaultSystemTableName("trades"))
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	assert := assert.New(t)
	ctx := context.TODO()
	r, _ := newRegistry(t, true)

	sys, ok, err := r.RegisterName(ctx, "trades", "trades~1")
	assert.NoError(err)
	assert.True(ok)
	assert.Equal("trades~1", sys)

	// same binding again is not a new registration
	sys, ok, err = r.RegisterName(ctx, "trades", "trades~1")
	assert.NoError(err)
	assert.False(ok)
	assert.Equal("trades~1", sys)

	// name is taken by a different system name
	sys, ok, err = r.RegisterName(ctx, "trades", "trades~2")
	assert.NoError(err)
	assert.False(ok)
	assert.Equal("trades~1", sys)

	got, found := r.SystemName("trades")
	assert.True(found)
	assert.Equal("trades~1", got)
	assert.Equal("trades~1", r.WalTableSystemName("trades"))
	assert.Equal("", r.WalTableSystemName("quotes"))
	assert.Equal("trades", r.TableNameBySystemName("trades~1"))
	assert.True(r.IsWalSystemName("trades~1"))
	assert.False(r.IsWalSystemName("quotes~2"))
}

func TestRegistryRemoveNameOnce(t *testing.T) {
	assert := assert.New(t)
	ctx := context.TODO()
	r, _ := newRegistry(t, true)

	_, _, err := r.RegisterName(ctx, "trades", "trades~1")
	assert.NoError(err)

	removed, err := r.RemoveName(ctx, "trades", "trades~2")
	assert.NoError(err)
	assert.False(removed)

	removed, err = r.RemoveName(ctx, "trades", "trades~1")
	assert.NoError(err)
	assert.True(removed)

	removed, err = r.RemoveName(ctx, "trades", "trades~1")
	assert.NoError(err)
	assert.False(removed)

	assert.True(r.IsWalTableDropped("trades~1"))
	assert.True(r.IsWalSystemName("trades~1"))
	assert.Equal("trades", r.TableNameBySystemName("trades~1"))
	assert.Equal([]string{"trades~1"}, r.WalTableSystemNames())

	assert.NoError(r.RemoveTableSystemName(ctx, "trades~1"))
	assert.False(r.IsWalSystemName("trades~1"))
	assert.Empty(r.WalTableSystemNames())
}

func TestRegistryRename(t *testing.T) {
	assert := assert.New(t)
	ctx := context.TODO()
	r, _ := newRegistry(t, true)

	_, _, err := r.RegisterName(ctx, "a", "a~1")
	assert.NoError(err)
	_, _, err = r.RegisterName(ctx, "b", "b~2")
	assert.NoError(err)

	_, err = r.Rename(ctx, "a", "b", "a~1")
	assert.True(walerror.HasCode(err, walerror.WAL_TABLE_EXISTS))

	_, err = r.Rename(ctx, "zzz", "c", "a~1")
	assert.True(walerror.HasCode(err, walerror.WAL_NO_SUCH_TABLE))

	newName, err := r.Rename(ctx, "a", "c", "a~1")
	assert.NoError(err)
	assert.Equal("c", newName)
	assert.Equal("c", r.TableNameBySystemName("a~1"))
	_, found := r.SystemName("a")
	assert.False(found)
	assert.Equal("a~1", r.WalTableSystemName("c"))
}

func TestRegistryReload(t *testing.T) {
	assert := assert.New(t)
	ctx := context.TODO()
	r, db := newRegistry(t, true)

	_, _, err := r.RegisterName(ctx, "a", "a~1")
	assert.NoError(err)
	_, _, err = r.RegisterName(ctx, "b", "b~2")
	assert.NoError(err)
	_, err = r.RemoveName(ctx, "b", "b~2")
	assert.NoError(err)

	r.ResetMemory()
	assert.Empty(r.WalTableSystemNames())

	other := nameregistry.NewRegistry(db, true)
	assert.NoError(other.Reload(ctx))
	assert.NoError(r.Reload(ctx))

	for _, reg := range []*nameregistry.Registry{r, other} {
		assert.Equal([]string{"a~1", "b~2"}, reg.WalTableSystemNames())
		assert.Equal("a~1", reg.WalTableSystemName("a"))
		assert.True(reg.IsWalTableDropped("b~2"))
		assert.Equal("b", reg.TableNameBySystemName("b~2"))
	}
}

func TestRegistryPersistFailureKeepsCache(t *testing.T) {
	assert := assert.New(t)
	ctx := context.TODO()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	db := mock_qdb.NewMockWalQDB(ctrl)
	r := nameregistry.NewRegistry(db, true)

	db.EXPECT().PutTableName(ctx, &qdb.TableName{TableName: "a", SystemName: "a~1"}).Return(nil)
	_, ok, err := r.RegisterName(ctx, "a", "a~1")
	assert.NoError(err)
	assert.True(ok)

	db.EXPECT().PutTableName(ctx, &qdb.TableName{TableName: "a", SystemName: "a~1", Dropped: true}).Return(tassert.AnError)
	removed, err := r.RemoveName(ctx, "a", "a~1")
	assert.ErrorIs(err, tassert.AnError)
	assert.False(removed)
	assert.False(r.IsWalTableDropped("a~1"))
	assert.Equal("a~1", r.WalTableSystemName("a"))

	db.EXPECT().ListTableNames(ctx).Return(nil, tassert.AnError)
	assert.ErrorIs(r.Reload(ctx), tassert.AnError)
	assert.Equal("a~1", r.WalTableSystemName("a"))
}
