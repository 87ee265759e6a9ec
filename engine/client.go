package engine

import "sync"

// Client is the top-level façade spec.md §4.9 describes: it owns the open
// Database instances and caches one ModelFacade per (database, model) pair,
// constructing on first access the same way the teacher's mcp.go caches one
// QueryBuilder per driver.
type Client struct {
	mu         sync.RWMutex
	databases  map[string]*Database
	facades    map[string]*ModelFacade
	metadata   Metadata
}

// NewClient opens a façade backed by a Metadata collaborator (spec.md §6).
func NewClient(metadata Metadata) *Client {
	return &Client{
		databases: make(map[string]*Database),
		facades:   make(map[string]*ModelFacade),
		metadata:  metadata,
	}
}

// RegisterDatabase makes an already-opened Database available to the façade
// under its descriptor name.
func (c *Client) RegisterDatabase(name string, db *Database) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.databases[name] = db
}

func (c *Client) database(name string) (*Database, *ClientError) {
	c.mu.RLock()
	db, ok := c.databases[name]
	c.mu.RUnlock()
	if ok {
		return db, nil
	}
	return nil, newError(CodeDatabaseNotFound, "database %q is not registered", name)
}

// Model returns the cached ModelFacade for (databaseName, modelName), constructing
// and caching it on first access (spec.md §4.9 "construction on miss").
func (c *Client) Model(databaseName, modelName string) (*ModelFacade, *ClientError) {
	cacheKey := databaseName + "-" + modelName

	c.mu.RLock()
	facade, ok := c.facades[cacheKey]
	c.mu.RUnlock()
	if ok {
		return facade, nil
	}

	db, err := c.database(databaseName)
	if err != nil {
		return nil, err
	}
	facade, cerr := NewModelFacade(db, modelName)
	if cerr != nil {
		if ce, ok := cerr.(*ClientError); ok {
			return nil, ce
		}
		return nil, newError(CodeModelNotFound, "%s", cerr.Error())
	}

	c.mu.Lock()
	c.facades[cacheKey] = facade
	c.mu.Unlock()
	return facade, nil
}

// ClearCache drops every cached ModelFacade, forcing reconstruction on next access.
func (c *Client) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.facades = make(map[string]*ModelFacade)
}
