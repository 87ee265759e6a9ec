package engine

// Metadata is the external collaborator that supplies model/database/bucket/queue/
// task/cache/function descriptors (spec.md §6). The core engine only depends on this
// interface; a concrete directory or config-backed implementation lives outside it.
type Metadata interface {
	GetDatabaseByName(name string) (*DatabaseDescriptor, error)
	GetQueueByName(name string) (interface{}, error)
	GetTaskByName(name string) (interface{}, error)
	GetStorageByName(name string) (interface{}, error)
	GetCacheByName(name string) (interface{}, error)
	GetFunctionByName(name string) (interface{}, error)
	GetEnvID() string
}
