// Perspectives: explicit namespaces for reputation queries so an entity id
// and a group id can never be confused for one another.
package reputation

import "github.com/talgya/social-fabric/internal/social"

// PerspectiveKind tags which namespace a perspective refers to.
type PerspectiveKind uint8

const (
	PerspectiveGlobal PerspectiveKind = iota
	PerspectiveGroup
	PerspectiveEntity
)

// Perspective selects how a reputation query is viewed: the stored global
// record, a group's derived view, or another entity's relationship-colored
// view.
type Perspective struct {
	Kind   PerspectiveKind
	Group  social.GroupID
	Entity social.EntityID
}

// Global is the unfiltered perspective.
func Global() Perspective {
	return Perspective{Kind: PerspectiveGlobal}
}

// FromGroup views reputation as a group sees it.
func FromGroup(id social.GroupID) Perspective {
	return Perspective{Kind: PerspectiveGroup, Group: id}
}

// FromEntity views reputation as one entity sees another.
func FromEntity(id social.EntityID) Perspective {
	return Perspective{Kind: PerspectiveEntity, Entity: id}
}
