package entity

// Role identifies which side of a relationship a record contributes to.
type Role int

const (
	// RoleSource marks an entity observed feeding a platform.
	RoleSource Role = iota
	// RoleDownstream marks an entity observed consuming from a platform.
	RoleDownstream
)

// String returns the lower-case role name.
func (r Role) String() string {
	if r == RoleDownstream {
		return "downstream"
	}
	return "source"
}

// Entity is a deduplicated business application accumulated across all
// contributing records in one build.
type Entity struct {
	Key          string // canonical id (lower-cased display name)
	Name         string // display name as first observed
	PlatformKey  string // owning platform (first write wins)
	PlatformName string
	Weight       int  // sum of table counts across all contributing records
	Role         Role // role at first insertion; drives layout grouping
	Mixed        bool // observed as both source and downstream
	Seq          int  // insertion order within the build
}

// Platform is a data platform discovered from the record stream.
type Platform struct {
	Key         string // canonical id (lower-cased platform name)
	Name        string // display name as first observed
	Seq         int    // discovery order
	Connections int    // total records touching this platform
}

// Registry deduplicates nodes by canonical key and accumulates weight.
// It exists only for the duration of one graph build: construct it fresh,
// feed it every record, read the result, discard it. It is not safe for
// concurrent use and is never shared between builds.
type Registry struct {
	entities      map[string]*Entity
	entityOrder   []string
	platforms     map[string]*Platform
	platformOrder []string
}

// NewRegistry creates an empty per-build registry.
func NewRegistry() *Registry {
	return &Registry{
		entities:  make(map[string]*Entity),
		platforms: make(map[string]*Platform),
	}
}

// UpsertSource records a source-side contribution.
//
// First insertion creates the node as a Source. A repeat insertion with the
// same role only adds weight. A repeat insertion on a node first seen as a
// Downstream promotes it to Mixed; promotion is one-directional and
// permanent within the build. The platform recorded at first insertion is
// never overwritten (first write wins).
func (r *Registry) UpsertSource(n Normalized) *Entity {
	return r.upsert(n, RoleSource)
}

// UpsertDownstream records a downstream-side contribution.
// Merge semantics are symmetric to UpsertSource.
func (r *Registry) UpsertDownstream(n Normalized) *Entity {
	return r.upsert(n, RoleDownstream)
}

func (r *Registry) upsert(n Normalized, role Role) *Entity {
	r.registerPlatform(n)

	if e, ok := r.entities[n.Key]; ok {
		e.Weight += n.Weight
		if e.Role != role {
			e.Mixed = true
		}
		return e
	}

	e := &Entity{
		Key:          n.Key,
		Name:         n.Name,
		PlatformKey:  n.PlatformKey,
		PlatformName: n.PlatformName,
		Weight:       n.Weight,
		Role:         role,
		Seq:          len(r.entityOrder),
	}
	r.entities[n.Key] = e
	r.entityOrder = append(r.entityOrder, n.Key)
	return e
}

// registerPlatform records the record's own platform (not the entity's
// first-write platform) so connection counts reflect raw record traffic.
func (r *Registry) registerPlatform(n Normalized) {
	p, ok := r.platforms[n.PlatformKey]
	if !ok {
		p = &Platform{
			Key:  n.PlatformKey,
			Name: n.PlatformName,
			Seq:  len(r.platformOrder),
		}
		r.platforms[n.PlatformKey] = p
		r.platformOrder = append(r.platformOrder, n.PlatformKey)
	}
	p.Connections++
}

// Get returns the entity with the given canonical key.
func (r *Registry) Get(key string) (*Entity, bool) {
	e, ok := r.entities[key]
	return e, ok
}

// All returns all entities in insertion order.
func (r *Registry) All() []*Entity {
	out := make([]*Entity, 0, len(r.entityOrder))
	for _, key := range r.entityOrder {
		out = append(out, r.entities[key])
	}
	return out
}

// Platform returns the platform with the given canonical key.
func (r *Registry) Platform(key string) (*Platform, bool) {
	p, ok := r.platforms[key]
	return p, ok
}

// Platforms returns all platforms in discovery order: the order platform
// keys first appear across the concatenation of source then downstream
// records.
func (r *Registry) Platforms() []*Platform {
	out := make([]*Platform, 0, len(r.platformOrder))
	for _, key := range r.platformOrder {
		out = append(out, r.platforms[key])
	}
	return out
}

// Ingest feeds every record into the registry: sources first, then
// downstreams, preserving list order. This fixes both entity insertion
// order and platform discovery order for the build.
func (r *Registry) Ingest(recs Records) {
	for _, rec := range recs.Sources {
		r.UpsertSource(rec.Normalize())
	}
	for _, rec := range recs.Downstreams {
		r.UpsertDownstream(rec.Normalize())
	}
}
