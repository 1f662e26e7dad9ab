package ecs

// EntityId identifies an entity inside a Storage. The upper 32 bits hold the
// archetype id and the lower 32 bits the slot within that archetype.
type EntityId uint64

func NewEntityId(archetypeId, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

func (e EntityId) Index() uint32 {
	return uint32(e)
}
