//go:build sqlite

package storage

// DefaultStoreKind is the persistent backend compiled into this build.
func DefaultStoreKind() string {
	return KindSQLite
}

func newSQLiteStore(path string) (Store, error) {
	return NewSQLiteStore(path), nil
}
