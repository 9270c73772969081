package server

import (
	"path/filepath"
	"strings"

	"github.com/iov-one/tranche/errors"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// splitDBPath turns a leveldb directory such as home/data/blockstore.db
// into the (dir, name) pair the database constructors expect.
func splitDBPath(path string) (string, string, error) {
	clean := filepath.Clean(path)
	if !strings.HasSuffix(clean, ".db") {
		return "", "", errors.Wrapf(errors.ErrInput, "database directory must end with .db: %s", path)
	}
	name := strings.TrimSuffix(filepath.Base(clean), ".db")
	if name == "" {
		return "", "", errors.Wrapf(errors.ErrInput, "database name missing: %s", path)
	}
	return filepath.Dir(clean), name, nil
}

func openDB(path string) (dbm.DB, error) {
	dir, name, err := splitDBPath(path)
	if err != nil {
		return nil, err
	}
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s: %s", path, err)
	}
	return db, nil
}
