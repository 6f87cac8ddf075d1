// ABOUTME: Charm KV client wrapper implementing fitrank storage.
// ABOUTME: Provides thread-safe initialization and automatic cloud sync after writes.
package charm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/harperreed/fitrank/internal/storage"
)

// DBName is the Charm KV database holding fitrank records.
const DBName = "fitrank"

const (
	charmHost = "charm.2389.dev"

	ProfilePrefix     = "profile:"
	WorkoutPrefix     = "workout:"
	StatsPrefix       = "stats:"
	AchievementPrefix = "achievement:"
	GymPrefix         = "gym:"
)

// store is the subset of *kv.KV the client uses.
type store interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
	Reset() error
	IsReadOnly() bool
	Close() error
}

var (
	globalClient *Client
	clientOnce   sync.Once
	clientErr    error
)

// Client stores fitrank records in Charm KV.
type Client struct {
	kv       store
	autoSync bool
	mu       sync.RWMutex
}

var _ storage.Repository = (*Client)(nil)

// InitClient initializes the global Charm client.
// Thread-safe; can be called multiple times.
func InitClient() (*Client, error) {
	clientOnce.Do(func() {
		if os.Getenv("CHARM_HOST") == "" {
			if err := os.Setenv("CHARM_HOST", charmHost); err != nil {
				clientErr = err
				return
			}
		}

		db, err := kv.OpenWithDefaultsFallback(DBName)
		if err != nil {
			clientErr = err
			return
		}

		globalClient = newClient(db)

		// Pull remote data on startup (skip in read-only mode)
		if !db.IsReadOnly() {
			_ = db.Sync()
		}
	})

	return globalClient, clientErr
}

func newClient(s store) *Client {
	return &Client{kv: s, autoSync: true}
}

// Close closes the KV database connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// IsReadOnly returns true if the database is open in read-only mode.
// This happens when another process (like an MCP server) holds the lock.
func (c *Client) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *Client) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// syncIfEnabled calls Sync if autoSync is enabled.
func (c *Client) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}

// SetAutoSync enables or disables automatic sync after writes.
func (c *Client) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// set stores a value with the given key.
func (c *Client) set(key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return fmt.Errorf("%w: database is locked by another process (MCP server?)", storage.ErrReadOnly)
	}

	if err := c.kv.Set([]byte(key), data); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

// setMany stores several values and syncs once.
func (c *Client) setMany(entries map[string][]byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return fmt.Errorf("%w: database is locked by another process (MCP server?)", storage.ErrReadOnly)
	}

	for key, data := range entries {
		if err := c.kv.Set([]byte(key), data); err != nil {
			return err
		}
	}
	c.syncIfEnabled()
	return nil
}

// get returns the value for an exact key, or storage.ErrNotFound.
func (c *Client) get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		if string(k) == key {
			return c.kv.Get(k)
		}
	}
	return nil, storage.ErrNotFound
}

// listByPrefix returns all values with keys matching the given prefix.
func (c *Client) listByPrefix(prefix string) ([][]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var results [][]byte
	prefixBytes := []byte(prefix)

	keys, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}

	for _, key := range keys {
		if bytes.HasPrefix(key, prefixBytes) {
			val, err := c.kv.Get(key)
			if err != nil {
				return nil, err
			}
			results = append(results, val)
		}
	}

	return results, nil
}

// getByIDPrefix retrieves a single value by ID prefix match.
// Returns error if no match or multiple matches found.
func (c *Client) getByIDPrefix(typePrefix, idPrefix string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key, err := c.resolveKey(typePrefix, idPrefix)
	if err != nil {
		return nil, err
	}
	return c.kv.Get(key)
}

// deleteByIDPrefix deletes a record by ID prefix match.
func (c *Client) deleteByIDPrefix(typePrefix, idPrefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return fmt.Errorf("%w: database is locked by another process (MCP server?)", storage.ErrReadOnly)
	}

	key, err := c.resolveKey(typePrefix, idPrefix)
	if err != nil {
		return err
	}

	if err := c.kv.Delete(key); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

// resolveKey finds the single key for typePrefix+idPrefix. Callers hold mu.
func (c *Client) resolveKey(typePrefix, idPrefix string) ([]byte, error) {
	if idPrefix == "" {
		return nil, fmt.Errorf("%w: empty id", storage.ErrNotFound)
	}

	keys, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}

	search := []byte(typePrefix + idPrefix)
	exact := storage.IsFullID(idPrefix)

	var matches [][]byte
	for _, key := range keys {
		if exact && bytes.Equal(key, search) {
			return key, nil
		}
		if !exact && bytes.HasPrefix(key, search) {
			matches = append(matches, key)
			if len(matches) > 1 {
				return nil, fmt.Errorf("%w %s: matches multiple records", storage.ErrAmbiguous, idPrefix)
			}
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, idPrefix)
	}
	return matches[0], nil
}

// unmarshalJSON is a helper to unmarshal JSON data.
func unmarshalJSON[T any](data []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// marshalJSON is a helper to marshal data to JSON.
func marshalJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

// extractID extracts the ID portion from a prefixed key.
func extractID(key, prefix string) string {
	return strings.TrimPrefix(key, prefix)
}
