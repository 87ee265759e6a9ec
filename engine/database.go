package engine

import (
	"context"
	"fmt"
	"strings"
)

// Database owns a dialect, an adapter, and the registry of models it was opened
// with (spec.md §3 "Database descriptor", §4.6). Models are instantiated eagerly
// from the descriptor when the Database is opened, including recursive sub-model
// registration for every Object/ObjectList field (spec.md §3 "Lifecycle").
type Database struct {
	descriptor *DatabaseDescriptor
	dialect    Dialect
	adapter    ReadWriteAdapter

	modelsByName map[string]*Model
	modelsByIID  map[string]*Model
}

// OpenDatabase builds a Database from descriptor, instantiating every declared
// model (and its nested sub-models) up front (spec.md §4.6 "Database construction").
func OpenDatabase(descriptor *DatabaseDescriptor, adapter ReadWriteAdapter) (*Database, error) {
	if !descriptor.Type.valid() {
		return nil, errInvalidParameter("database %q declares an unrecognized dialect %q", descriptor.Name, descriptor.Type)
	}
	db := &Database{
		descriptor:   descriptor,
		dialect:      descriptor.Type,
		adapter:      adapter,
		modelsByName: make(map[string]*Model),
		modelsByIID:  make(map[string]*Model),
	}
	for _, md := range descriptor.Models {
		if _, err := db.buildModel(md, nil); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Dialect returns the database's fixed dialect.
func (db *Database) Dialect() Dialect { return db.dialect }

// Name returns the descriptor's effective wire name (spec.md §3 "${envId}_${iid}").
func (db *Database) Name(envID string) string { return db.descriptor.EffectiveName(envID) }

// IsSQLDB is a convenience accessor for db.Dialect().IsSQL().
func (db *Database) IsSQLDB() bool { return db.dialect.IsSQL() }

func (db *Database) buildModel(md ModelDescriptor, parent *Model) (*Model, error) {
	modelType := ModelTopLevel
	switch md.Type {
	case "object":
		modelType = ModelObject
	case "object-list":
		modelType = ModelObjectList
	}
	if modelType != ModelTopLevel && db.dialect != DialectMongoDB {
		return nil, errInvalidParameter("nested model %q is only valid on the MongoDB dialect", md.Name)
	}

	m := newModel(md.Name, modelType, db, parent)
	m.schema = md.Schema
	m.iid = md.IID
	m.parentHierarchy = md.ParentHierarchy

	for _, fd := range md.Fields {
		f, err := db.buildField(fd, m)
		if err != nil {
			return nil, err
		}
		m.addField(f)
	}

	db.modelsByName[m.name] = m
	if m.iid != "" {
		db.modelsByIID[m.iid] = m
	}
	return m, nil
}

func (db *Database) buildField(fd FieldDescriptor, owner *Model) (Field, error) {
	switch fd.Type {
	case "id":
		return NewIDField(fd.Name), nil
	case "reference":
		return NewReferenceField(fd.Name, fd.IID, fd.Required), nil
	case "text":
		return NewTextField(fd.Name, fd.Required, fd.MaxLength), nil
	case "richText":
		return NewRichTextField(fd.Name, fd.Required, fd.Searchable), nil
	case "encryptedText":
		return NewEncryptedTextField(fd.Name, fd.Required), nil
	case "email":
		return NewEmailField(fd.Name, fd.Required), nil
	case "link":
		return NewLinkField(fd.Name, fd.Required), nil
	case "phone":
		return NewPhoneField(fd.Name, fd.Required), nil
	case "boolean":
		return NewBooleanField(fd.Name, fd.Required), nil
	case "integer":
		return NewIntegerField(fd.Name, fd.Required), nil
	case "decimal":
		return NewDecimalField(fd.Name, fd.Required), nil
	case "monetary":
		return NewMonetaryField(fd.Name, fd.Required, ""), nil
	case "createdAt":
		return NewCreatedAtField(fd.Name), nil
	case "updatedAt":
		return NewUpdatedAtField(fd.Name), nil
	case "datetime":
		return NewDateTimeField(fd.Name, fd.Required), nil
	case "date":
		return NewDateField(fd.Name, fd.Required), nil
	case "time":
		return NewTimeField(fd.Name, fd.Required), nil
	case "enum":
		return NewEnumField(fd.Name, fd.Required, fd.EnumValues), nil
	case "geoPoint":
		return NewGeoPointField(fd.Name, fd.Required), nil
	case "binary":
		return NewBinaryField(fd.Name, fd.Required), nil
	case "json":
		return NewJSONField(fd.Name, fd.Required), nil
	case "basicValuesList":
		return NewBasicValuesListField(fd.Name, fd.Required), nil
	case "object":
		field := NewObjectField(fd.Name, fd.Required)
		sub, err := db.buildModel(ModelDescriptor{Name: owner.name + "." + fd.Name, IID: fd.IID, Type: "object", Fields: fd.Fields}, owner)
		if err != nil {
			return nil, err
		}
		field.SubModel = sub
		return field, nil
	case "objectList":
		field := NewObjectListField(fd.Name, fd.Required)
		sub, err := db.buildModel(ModelDescriptor{Name: owner.name + "." + fd.Name, IID: fd.IID, Type: "object-list", Fields: fd.Fields}, owner)
		if err != nil {
			return nil, err
		}
		field.SubModel = sub
		return field, nil
	default:
		return nil, errInvalidField("field %q declares an unrecognized type %q", fd.Name, fd.Type)
	}
}

// Model returns a top-level or nested model by its declared (possibly dotted) name.
func (db *Database) Model(name string) (*Model, error) {
	m, ok := db.modelsByName[name]
	if !ok {
		return nil, newError(CodeModelNotFound, "model %q is not registered on database %q", name, db.descriptor.Name)
	}
	return m, nil
}

// ModelByIID resolves a model by its stable internal id, used by join resolution
// across models (spec.md §4.7 "Join resolution").
func (db *Database) ModelByIID(iid string) (*Model, error) {
	m, ok := db.modelsByIID[iid]
	if !ok {
		return nil, newError(CodeModelNotFound, "model with iid %q is not registered on database %q", iid, db.descriptor.Name)
	}
	return m, nil
}

func (db *Database) primary() DatabaseAdapter {
	return db.adapter.Primary
}

// BeginTransaction forwards to the primary adapter (spec.md §4.6 "Transactions").
func (db *Database) BeginTransaction(ctx context.Context) error {
	return db.primary().BeginTransaction(ctx, db.descriptor)
}

// CommitTransaction forwards to the primary adapter.
func (db *Database) CommitTransaction(ctx context.Context) error {
	return db.primary().CommitTransaction(ctx, db.descriptor)
}

// RollbackTransaction forwards to the primary adapter.
func (db *Database) RollbackTransaction(ctx context.Context) error {
	return db.primary().RollbackTransaction(ctx, db.descriptor)
}

// pickReadAdapter selects the primary adapter, or a slave at random when the
// database has read replicas and the caller opted into replica reads
// (spec.md §9 design note on read-replica selection).
func (db *Database) pickReadAdapter(preferReplica bool, rnd RandSource) ReadReplicaAdapter {
	if preferReplica && len(db.adapter.Slaves) > 0 {
		return db.adapter.Slaves[rnd.Intn(len(db.adapter.Slaves))]
	}
	return db.adapter.Primary
}

func (db *Database) describeModel(name string) string {
	var b strings.Builder
	m, err := db.Model(name)
	if err != nil {
		return fmt.Sprintf("<unknown model %q>", name)
	}
	b.WriteString(m.name)
	for _, f := range m.Fields() {
		b.WriteString(" " + f.Name() + ":" + f.Kind().String())
	}
	return b.String()
}
