package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/fitlog/internal/config"
	"github.com/julianstephens/fitlog/internal/keyring"
	"github.com/julianstephens/fitlog/internal/storage"
	"github.com/julianstephens/fitlog/internal/storage/postgres"
	"github.com/julianstephens/fitlog/internal/storage/sqlite"
)

// KeyringStore selects the PostgreSQL connection string held in the OS keyring.
const KeyringStore = "keyring"

// OpenStore picks a provider for store: a PostgreSQL URL, the keyring
// connection, a .json file, or a SQLite database path.
func OpenStore(store string) (storage.Provider, error) {
	switch {
	case store == KeyringStore:
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, errors.New("no connection string found in keyring. Use 'fitlog keyring set' to store one")
			}
			return nil, err
		}
		if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		return postgres.New(connStr), nil

	case config.IsPostgres(store):
		if _, err := postgres.ValidateConnString(store); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w. Store it with 'fitlog keyring set' and use --store keyring, or use .pgpass", err)
			}
			return nil, err
		}
		return postgres.New(store), nil
	}

	path, err := config.ExpandHome(store)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}
