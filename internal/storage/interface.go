package storage

// Store defines typed key/value persistence over the size-constrained local
// medium. Values are JSON documents keyed by namespaced strings.
type Store interface {
	// Get unmarshals the record for key into out. The boolean reports
	// whether the key was present; when it is false, out is untouched.
	Get(key string, out any) (bool, error)
	// Set serializes v and writes it atomically: either the new value is
	// fully written or the previous one remains.
	Set(key string, v any) error
	Remove(key string) error
	// Exclusive runs fn while holding the store's read-modify-write lock.
	// Every component that loads a record, modifies it, and writes it
	// back wraps the whole cycle so concurrent writers cannot interleave
	// and lose updates. Individual Get/Set calls inside fn do not
	// re-enter this lock.
	Exclusive(fn func())
	// UsageInfo estimates usage by serialized byte length.
	UsageInfo() (UsageInfo, error)
	// SetQuotaWarnHook binds the high-water warning callback. The hook
	// consumer (the performance monitor) is constructed after the store,
	// so the binding happens late.
	SetQuotaWarnHook(hook QuotaWarnFunc)
	Clear() error
}
