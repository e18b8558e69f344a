package gadgets

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/metrics"
	"github.com/google/uuid"
)

// GadgetService runs the lifecycle against a Store. Every transition is a
// read followed by an unconditional write; concurrent writers race.
type GadgetService struct {
	store Store
	ids   *IdentityGenerator
	now   func() time.Time
}

func NewGadgetService(store Store, ids *IdentityGenerator) *GadgetService {
	return &GadgetService{store: store, ids: ids, now: time.Now}
}

// Create generates a new Available gadget owned by owner. Name or skin
// collisions are not retried.
func (s *GadgetService) Create(appID string, owner uuid.UUID) (*Gadget, error) {
	id, err := s.ids.Next()
	if err != nil {
		return nil, err
	}

	g := Gadget{
		ID:                        uuid.New(),
		AppID:                     appID,
		OwnerID:                   owner,
		Name:                      id.Name,
		Skin:                      id.Skin,
		MissionSuccessProbability: id.MissionSuccessProbability,
		Status:                    StatusAvailable,
		SelfDestructSequence:      id.SelfDestructSequence,
	}
	if err := s.store.Create(&g); err != nil {
		if errors.Is(err, ErrIdentityTaken) {
			s.rejected(TransitionCreate)
		}
		return nil, err
	}

	s.applied(TransitionCreate, appID, g.ID)
	return &g, nil
}

// List returns gadgets with the given status, or every non-decommissioned
// gadget when status is empty.
func (s *GadgetService) List(appID string, status Status) ([]Gadget, error) {
	f := Filter{Status: status}
	if status == "" {
		f.ExcludeStatus = StatusDecommissioned
	}
	return s.store.Find(appID, f)
}

func (s *GadgetService) Rename(appID string, id uuid.UUID, name, skin *string) (*Gadget, error) {
	patch, err := RenamePatch(name, skin)
	if err != nil {
		return nil, err
	}
	g, err := s.store.FindByID(appID, id)
	if err != nil {
		return nil, err
	}
	if err := s.write(appID, g, TransitionRename, patch); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GadgetService) Deploy(appID string, id, caller uuid.UUID) (*Gadget, error) {
	g, err := s.store.FindByID(appID, id)
	if err != nil {
		return nil, err
	}
	patch, err := DeployPatch(g, caller, s.now())
	if err != nil {
		s.rejected(TransitionDeploy)
		return nil, err
	}
	if err := s.write(appID, g, TransitionDeploy, patch); err != nil {
		return nil, err
	}
	return g, nil
}

// SelfDestruct destroys a gadget the caller has deployed. A missing gadget and
// a refused guard both surface as ErrCannotSelfDestruct.
func (s *GadgetService) SelfDestruct(appID string, id, caller uuid.UUID) (*Gadget, error) {
	g, err := s.store.FindByID(appID, id)
	if errors.Is(err, ErrGadgetNotFound) {
		return nil, ErrCannotSelfDestruct
	}
	if err != nil {
		return nil, err
	}
	patch, err := SelfDestructPatch(g, caller, s.now())
	if err != nil {
		s.rejected(TransitionSelfDestruct)
		return nil, err
	}
	if err := s.write(appID, g, TransitionSelfDestruct, patch); err != nil {
		if errors.Is(err, ErrGadgetNotFound) {
			return nil, ErrCannotSelfDestruct
		}
		return nil, err
	}
	return g, nil
}

func (s *GadgetService) Decommission(appID string, id uuid.UUID) (*Gadget, error) {
	g, err := s.store.FindByID(appID, id)
	if err != nil {
		return nil, err
	}
	patch, err := DecommissionPatch(g, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.write(appID, g, TransitionDecommission, patch); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GadgetService) write(appID string, g *Gadget, t Transition, patch Patch) error {
	found, err := s.store.Update(appID, g.ID, patch)
	if err != nil {
		if errors.Is(err, ErrIdentityTaken) {
			s.rejected(t)
		}
		return err
	}
	// Deleted between the read and the write.
	if !found {
		return ErrGadgetNotFound
	}
	patch.Apply(g)
	s.applied(t, appID, g.ID)
	return nil
}

func (s *GadgetService) applied(t Transition, appID string, id uuid.UUID) {
	metrics.GadgetTransitions.WithLabelValues(string(t)).Inc()
	slog.Info("gadget transition", "action", string(t), "app_id", appID, "gadget_id", id.String())
}

func (s *GadgetService) rejected(t Transition) {
	metrics.GadgetRejections.WithLabelValues(string(t)).Inc()
}
