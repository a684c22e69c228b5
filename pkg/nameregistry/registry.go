package nameregistry

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/pg-sharding/walseq/pkg/models/walerror"
	"github.com/pg-sharding/walseq/pkg/seqlog"
	"github.com/pg-sharding/walseq/qdb"
	"github.com/pg-sharding/walseq/sequencer"
)

// Registry maps user-facing table names to system names and remembers dropped tables.
type Registry struct {
	mu sync.RWMutex

	nameToSystem map[string]string
	systemToName map[string]string
	// dropped system name -> table name at drop time
	dropped map[string]string

	mangle bool
	db     qdb.WalQDB
}

func NewRegistry(db qdb.WalQDB, mangleTableSystemNames bool) *Registry {
	r := &Registry{
		mangle: mangleTableSystemNames,
		db:     db,
	}
	r.ResetMemory()
	return r
}

// ResetMemory forgets cached names without touching qdb.
func (r *Registry) ResetMemory() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nameToSystem = map[string]string{}
	r.systemToName = map[string]string{}
	r.dropped = map[string]string{}
}

// Reload replaces the cache with the names stored in qdb.
func (r *Registry) Reload(ctx context.Context) error {
	names, err := r.db.ListTableNames(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nameToSystem = map[string]string{}
	r.systemToName = map[string]string{}
	r.dropped = map[string]string{}

	for _, n := range names {
		if n.Dropped {
			r.dropped[n.SystemName] = n.TableName
			continue
		}
		if prev, ok := r.nameToSystem[n.TableName]; ok {
			seqlog.Zero.Error().
				Str("table", n.TableName).
				Str("system name", n.SystemName).
				Str("previous system name", prev).
				Msg("name registry: duplicate table name, keeping the first one")
			continue
		}
		r.nameToSystem[n.TableName] = n.SystemName
		r.systemToName[n.SystemName] = n.TableName
	}

	seqlog.Zero.Info().
		Int("tables", len(r.nameToSystem)).
		Int("dropped", len(r.dropped)).
		Msg("name registry: reloaded table names")
	return nil
}

func (r *Registry) SystemName(tableName string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sys, ok := r.nameToSystem[tableName]
	return sys, ok
}

// WalTableSystemName returns the system name of a live WAL table, or "" if there is none.
func (r *Registry) WalTableSystemName(tableName string) string {
	sys, _ := r.SystemName(tableName)
	return sys
}

func (r *Registry) DefaultSystemTableName(tableName string) string {
	return tableName
}

// WalSystemNameFor builds the system name a new WAL table will get.
func (r *Registry) WalSystemNameFor(tableName string, tableID int) string {
	if r.mangle {
		return tableName + sequencer.SystemTableNameSuffix + strconv.Itoa(tableID)
	}
	return tableName + sequencer.SystemTableNameSuffix
}

// TableNameBySystemName resolves live and dropped tables.
func (r *Registry) TableNameBySystemName(systemName string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name, ok := r.systemToName[systemName]; ok {
		return name
	}
	return r.dropped[systemName]
}

// RegisterName binds tableName to systemName. It returns false with the bound
// system name if tableName is already registered, even to systemName itself.
func (r *Registry) RegisterName(ctx context.Context, tableName, systemName string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.nameToSystem[tableName]; ok {
		return existing, false, nil
	}
	if _, ok := r.systemToName[systemName]; ok {
		return "", false, nil
	}

	if err := r.db.PutTableName(ctx, &qdb.TableName{TableName: tableName, SystemName: systemName}); err != nil {
		return "", false, err
	}
	r.nameToSystem[tableName] = systemName
	r.systemToName[systemName] = tableName
	delete(r.dropped, systemName)

	seqlog.Zero.Debug().
		Str("table", tableName).
		Str("system name", systemName).
		Msg("name registry: registered table name")
	return systemName, true, nil
}

// RemoveName marks the table as dropped. Only the first call for a live
// mapping returns true.
func (r *Registry) RemoveName(ctx context.Context, tableName, systemName string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sys, ok := r.nameToSystem[tableName]; !ok || sys != systemName {
		return false, nil
	}

	if err := r.db.PutTableName(ctx, &qdb.TableName{TableName: tableName, SystemName: systemName, Dropped: true}); err != nil {
		return false, err
	}
	delete(r.nameToSystem, tableName)
	delete(r.systemToName, systemName)
	r.dropped[systemName] = tableName
	return true, nil
}

// Rename moves systemName from tableName to newTableName and returns the new name.
func (r *Registry) Rename(ctx context.Context, tableName, newTableName, systemName string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sys, ok := r.nameToSystem[tableName]; !ok || sys != systemName {
		return "", walerror.Newf(walerror.WAL_NO_SUCH_TABLE, "table %q is not registered as %q", tableName, systemName)
	}
	if _, ok := r.nameToSystem[newTableName]; ok {
		return "", walerror.Newf(walerror.WAL_TABLE_EXISTS, "table %q already exists", newTableName)
	}

	if err := r.db.PutTableName(ctx, &qdb.TableName{TableName: newTableName, SystemName: systemName}); err != nil {
		return "", err
	}
	delete(r.nameToSystem, tableName)
	r.nameToSystem[newTableName] = systemName
	r.systemToName[systemName] = newTableName
	return newTableName, nil
}

// WalTableSystemNames returns live and dropped system names, sorted.
func (r *Registry) WalTableSystemNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ret := make([]string, 0, len(r.systemToName)+len(r.dropped))
	for sys := range r.systemToName {
		ret = append(ret, sys)
	}
	for sys := range r.dropped {
		ret = append(ret, sys)
	}
	sort.Strings(ret)
	return ret
}

func (r *Registry) IsWalSystemName(systemName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.systemToName[systemName]; ok {
		return true
	}
	_, ok := r.dropped[systemName]
	return ok
}

func (r *Registry) IsWalTableDropped(systemName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.dropped[systemName]
	return ok
}

// RemoveTableSystemName forgets systemName entirely, live or dropped.
func (r *Registry) RemoveTableSystemName(ctx context.Context, systemName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.DeleteTableName(ctx, systemName); err != nil {
		return err
	}
	if name, ok := r.systemToName[systemName]; ok {
		delete(r.nameToSystem, name)
		delete(r.systemToName, systemName)
	}
	delete(r.dropped, systemName)
	return nil
}

func (r *Registry) Close() {
	r.ResetMemory()
}
