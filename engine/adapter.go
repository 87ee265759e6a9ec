package engine

import "context"

// ActionResult is what an adapter's CRUD/aggregate/search method returns: a single
// record, a list of records, a numeric count wrapped as {count}, or nil
// (spec.md §4.7 "Action dispatch").
type ActionResult struct {
	Record interface{}
	List   []interface{}
	Count  *int64
}

// DatabaseAdapter is the external collaborator that actually executes a compiled
// ActionDefinition against a backing store (spec.md §1 Non-goals, §6). The core
// engine never implements this — only the boundary is specified here.
type DatabaseAdapter interface {
	GetDriver() interface{}

	BeginTransaction(ctx context.Context, db *DatabaseDescriptor) error
	CommitTransaction(ctx context.Context, db *DatabaseDescriptor) error
	RollbackTransaction(ctx context.Context, db *DatabaseDescriptor) error

	CreateOne(ctx context.Context, db *DatabaseDescriptor, model *ModelDescriptor, def *ActionDefinition) (*ActionResult, error)
	CreateMany(ctx context.Context, db *DatabaseDescriptor, model *ModelDescriptor, def *ActionDefinition) (*ActionResult, error)
	FindByID(ctx context.Context, db *DatabaseDescriptor, model *ModelDescriptor, def *ActionDefinition) (*ActionResult, error)
	FindOne(ctx context.Context, db *DatabaseDescriptor, model *ModelDescriptor, def *ActionDefinition) (*ActionResult, error)
	FindMany(ctx context.Context, db *DatabaseDescriptor, model *ModelDescriptor, def *ActionDefinition) (*ActionResult, error)
	DeleteByID(ctx context.Context, db *DatabaseDescriptor, model *ModelDescriptor, def *ActionDefinition) (*ActionResult, error)
	DeleteOne(ctx context.Context, db *DatabaseDescriptor, model *ModelDescriptor, def *ActionDefinition) (*ActionResult, error)
	DeleteMany(ctx context.Context, db *DatabaseDescriptor, model *ModelDescriptor, def *ActionDefinition) (*ActionResult, error)
	UpdateByID(ctx context.Context, db *DatabaseDescriptor, model *ModelDescriptor, def *ActionDefinition) (*ActionResult, error)
	UpdateOne(ctx context.Context, db *DatabaseDescriptor, model *ModelDescriptor, def *ActionDefinition) (*ActionResult, error)
	UpdateMany(ctx context.Context, db *DatabaseDescriptor, model *ModelDescriptor, def *ActionDefinition) (*ActionResult, error)
	Aggregate(ctx context.Context, db *DatabaseDescriptor, model *ModelDescriptor, def *ActionDefinition) (*ActionResult, error)
	SearchText(ctx context.Context, db *DatabaseDescriptor, model *ModelDescriptor, def *ActionDefinition) (*ActionResult, error)
}

// ReadReplicaAdapter exposes only the read-side methods; each entry of
// ReadWriteAdapter.Slaves implements it, and DBAction picks one of them at random
// (spec.md §4.7 "Action dispatch", §9 design note).
type ReadReplicaAdapter interface {
	FindByID(ctx context.Context, db *DatabaseDescriptor, model *ModelDescriptor, def *ActionDefinition) (*ActionResult, error)
	FindOne(ctx context.Context, db *DatabaseDescriptor, model *ModelDescriptor, def *ActionDefinition) (*ActionResult, error)
	FindMany(ctx context.Context, db *DatabaseDescriptor, model *ModelDescriptor, def *ActionDefinition) (*ActionResult, error)
	Aggregate(ctx context.Context, db *DatabaseDescriptor, model *ModelDescriptor, def *ActionDefinition) (*ActionResult, error)
	SearchText(ctx context.Context, db *DatabaseDescriptor, model *ModelDescriptor, def *ActionDefinition) (*ActionResult, error)
}

// ReadWriteAdapter pairs a primary DatabaseAdapter with its optional slave pool
// (spec.md §6: "Read-replica adapters expose only read-side methods via a
// `slaves: {adapter}[]` array").
type ReadWriteAdapter struct {
	Primary DatabaseAdapter
	Slaves  []ReadReplicaAdapter
}

// QueueAdapter is the external collaborator for queue resources (spec.md §6).
type QueueAdapter interface {
	SendMessage(ctx context.Context, meta interface{}, payload interface{}, delayMs int) error
	GetMessageTrackingRecord(ctx context.Context, queueIID, id string) (interface{}, error)
}

// TaskAdapter is the external collaborator for scheduled-task resources (spec.md §6).
type TaskAdapter interface {
	TriggerCronJob(ctx context.Context, meta interface{}) error
	GetTaskTrackingRecord(ctx context.Context, taskIID, id string) (interface{}, error)
}

// CacheAdapter is the external collaborator for key-value cache resources (spec.md §6).
type CacheAdapter interface {
	GetKeyValue(ctx context.Context, key string) (interface{}, error)
	SetKeyValue(ctx context.Context, key string, value interface{}) error
	DeleteKey(ctx context.Context, key string) error
	IncrementKeyValue(ctx context.Context, key string, by int64) (int64, error)
	DecrementKeyValue(ctx context.Context, key string, by int64) (int64, error)
	ExpireKey(ctx context.Context, key string, ttlSeconds int) error
	ListKeys(ctx context.Context, pattern string) ([]string, error)
}

// StorageAdapter is the external collaborator for bucket/file resources (spec.md §6).
type StorageAdapter interface {
	CreateBucket(ctx context.Context, name string) error
	ListBuckets(ctx context.Context) ([]string, error)
	ListFiles(ctx context.Context, bucket string) ([]string, error)
	GetStats(ctx context.Context, bucket string) (interface{}, error)
	BucketExists(ctx context.Context, bucket string) (bool, error)
	GetBucketInfo(ctx context.Context, bucket string) (interface{}, error)
	RenameBucket(ctx context.Context, oldName, newName string) error
	EmptyBucket(ctx context.Context, bucket string) error
	DeleteBucket(ctx context.Context, bucket string) error
	MakeBucketPublic(ctx context.Context, bucket string) error
	MakeBucketPrivate(ctx context.Context, bucket string) error
	SetBucketTag(ctx context.Context, bucket, key, value string) error
	RemoveBucketTag(ctx context.Context, bucket, key string) error
	RemoveAllBucketTags(ctx context.Context, bucket string) error
	UpdateBucketInfo(ctx context.Context, bucket string, info interface{}) error
	DeleteBucketFiles(ctx context.Context, bucket string, prefix string) error
	ListBucketFiles(ctx context.Context, bucket, prefix string) ([]string, error)
	UploadFile(ctx context.Context, bucket, key string, data []byte) error
	FileExists(ctx context.Context, bucket, key string) (bool, error)
	GetFileInfo(ctx context.Context, bucket, key string) (interface{}, error)
	DeleteFile(ctx context.Context, bucket, key string) error
	MakeFilePublic(ctx context.Context, bucket, key string) error
	MakeFilePrivate(ctx context.Context, bucket, key string) error
	CreateFileReadStream(ctx context.Context, bucket, key string) (interface{}, error)
	SetFileTag(ctx context.Context, bucket, key, tagKey, tagValue string) error
	RemoveFileTag(ctx context.Context, bucket, key, tagKey string) error
	RemoveAllFileTags(ctx context.Context, bucket, key string) error
	CopyFileTo(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error
	MoveFileTo(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error
	ReplaceFile(ctx context.Context, bucket, key string, data []byte) error
	UpdateFileInfo(ctx context.Context, bucket, key string, info interface{}) error
}

// RealtimeAdapter is the external collaborator for realtime channel resources (spec.md §6).
type RealtimeAdapter interface {
	Broadcast(ctx context.Context, channel string, payload interface{}) error
	Send(ctx context.Context, channel, memberID string, payload interface{}) error
	GetMembers(ctx context.Context, channel string) ([]string, error)
}

// FunctionAdapter is the external collaborator for custom-function resources (spec.md §6).
type FunctionAdapter interface {
	Run(ctx context.Context, name string, args ...interface{}) (interface{}, error)
}
