package gadgets

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// View is the client-facing shape of a gadget. Name, skin and odds are only
// visible through Description; nil timestamps and user_id are omitted.
type View struct {
	ID                   uuid.UUID  `json:"id"`
	OwnerID              uuid.UUID  `json:"owner_id"`
	UserID               *uuid.UUID `json:"user_id,omitempty"`
	Status               Status     `json:"status"`
	SelfDestructSequence int        `json:"self_destruct_sequence"`
	DeployedAt           *time.Time `json:"deployed_at,omitempty"`
	DestroyedAt          *time.Time `json:"destroyed_at,omitempty"`
	DecommissionedAt     *time.Time `json:"decommissioned_at,omitempty"`
	Description          string     `json:"description"`
}

func Describe(name string, probability int, skin string) string {
	return fmt.Sprintf("The %s - %d%% success probability (%s skin)", name, probability, skin)
}

func Present(g *Gadget) View {
	return View{
		ID:                   g.ID,
		OwnerID:              g.OwnerID,
		UserID:               g.UserID,
		Status:               g.Status,
		SelfDestructSequence: g.SelfDestructSequence,
		DeployedAt:           g.DeployedAt,
		DestroyedAt:          g.DestroyedAt,
		DecommissionedAt:     g.DecommissionedAt,
		Description:          Describe(g.Name, g.MissionSuccessProbability, g.Skin),
	}
}

func PresentAll(list []Gadget) []View {
	views := make([]View, len(list))
	for i := range list {
		views[i] = Present(&list[i])
	}
	return views
}
