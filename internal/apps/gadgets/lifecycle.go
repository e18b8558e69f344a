package gadgets

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGadgetNotFound     = errors.New("gadget not found")
	ErrNotAvailable       = errors.New("gadget not available for deployment")
	ErrCannotSelfDestruct = errors.New("gadget cannot be self destructed")
	ErrIdentityTaken      = errors.New("gadget name or skin already in use")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrNothingToUpdate    = errors.New("no fields to update provided")
)

type Transition string

const (
	TransitionCreate       Transition = "create"
	TransitionDeploy       Transition = "deploy"
	TransitionSelfDestruct Transition = "self_destruct"
	TransitionDecommission Transition = "decommission"
	TransitionRename       Transition = "rename"
)

// allowedFrom holds the source-state guard of every transition on an
// existing record. Decommission and rename carry no status guard.
var allowedFrom = map[Transition]func(Status) bool{
	TransitionDeploy:       func(s Status) bool { return s == StatusAvailable },
	TransitionSelfDestruct: func(s Status) bool { return s == StatusDeployed },
	TransitionDecommission: func(Status) bool { return true },
	TransitionRename:       func(Status) bool { return true },
}

// Patch is a column → value set applied by Store.Update.
type Patch map[string]interface{}

func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

// Allowed reports whether t may be applied to a gadget currently in from.
func Allowed(t Transition, from Status) bool {
	guard, ok := allowedFrom[t]
	return ok && guard(from)
}

// Target is the status a transition moves to; rename keeps from.
func Target(t Transition, from Status) Status {
	switch t {
	case TransitionDeploy:
		return StatusDeployed
	case TransitionSelfDestruct:
		return StatusDestroyed
	case TransitionDecommission:
		return StatusDecommissioned
	default:
		return from
	}
}

// DeployPatch assigns g to caller. Fails with ErrNotAvailable unless g is Available.
func DeployPatch(g *Gadget, caller uuid.UUID, now time.Time) (Patch, error) {
	if !Allowed(TransitionDeploy, g.Status) {
		return nil, ErrNotAvailable
	}
	return Patch{
		"status":      Target(TransitionDeploy, g.Status),
		"user_id":     caller,
		"deployed_at": now,
	}, nil
}

// SelfDestructPatch destroys g. Only the deploying user may do so, and only
// while the gadget is Deployed; anything else looks like a missing gadget.
func SelfDestructPatch(g *Gadget, caller uuid.UUID, now time.Time) (Patch, error) {
	if !Allowed(TransitionSelfDestruct, g.Status) || g.UserID == nil || *g.UserID != caller {
		return nil, ErrCannotSelfDestruct
	}
	return Patch{
		"status":       Target(TransitionSelfDestruct, g.Status),
		"destroyed_at": now,
	}, nil
}

func DecommissionPatch(g *Gadget, now time.Time) (Patch, error) {
	if !Allowed(TransitionDecommission, g.Status) {
		return nil, ErrInvalidStatus
	}
	return Patch{
		"status":            Target(TransitionDecommission, g.Status),
		"decommissioned_at": now,
	}, nil
}

// RenamePatch overwrites name and/or skin. Nil fields are left alone.
func RenamePatch(name, skin *string) (Patch, error) {
	patch := Patch{}
	if name != nil {
		patch["name"] = *name
	}
	if skin != nil {
		patch["skin"] = *skin
	}
	if len(patch) == 0 {
		return nil, ErrNothingToUpdate
	}
	return patch, nil
}

// Apply copies a patch produced above onto g.
func (p Patch) Apply(g *Gadget) {
	for col, v := range p {
		switch col {
		case "status":
			g.Status = v.(Status)
		case "user_id":
			id := v.(uuid.UUID)
			g.UserID = &id
		case "deployed_at":
			t := v.(time.Time)
			g.DeployedAt = &t
		case "destroyed_at":
			t := v.(time.Time)
			g.DestroyedAt = &t
		case "decommissioned_at":
			t := v.(time.Time)
			g.DecommissionedAt = &t
		case "name":
			g.Name = v.(string)
		case "skin":
			g.Skin = v.(string)
		}
	}
}
