package gadgets

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderJSON(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "The annualwhitefirefly - 44% success probability (red skin)",
		Describe("annualwhitefirefly", 44, "red"))
}

func TestPresent_AvailableGadget(t *testing.T) {
	g := &Gadget{
		ID:                        uuid.New(),
		AppID:                     "mi6",
		OwnerID:                   uuid.New(),
		Name:                      "annualwhitefirefly",
		Skin:                      "red",
		MissionSuccessProbability: 44,
		Status:                    StatusAvailable,
		SelfDestructSequence:      999999,
		CreatedAt:                 time.Now(),
		UpdatedAt:                 time.Now(),
	}

	out := renderJSON(t, Present(g))

	assert.Equal(t, "The annualwhitefirefly - 44% success probability (red skin)", out["description"])
	assert.Equal(t, "Available", out["status"])
	assert.Equal(t, float64(999999), out["self_destruct_sequence"])
	assert.Equal(t, g.ID.String(), out["id"])
	assert.Equal(t, g.OwnerID.String(), out["owner_id"])

	for _, hidden := range []string{
		"name", "skin", "mission_success_probability",
		"user_id", "deployed_at", "destroyed_at", "decommissioned_at",
		"created_at", "updated_at", "createdAt", "updatedAt", "app_id",
	} {
		assert.NotContains(t, out, hidden)
	}
}

func TestPresent_DeployedGadgetShowsSetFields(t *testing.T) {
	user := uuid.New()
	at := time.Date(2025, 6, 21, 10, 51, 13, 0, time.UTC)
	g := &Gadget{
		ID: uuid.New(), OwnerID: uuid.New(), UserID: &user,
		Name: "x", Skin: "y", MissionSuccessProbability: 1,
		Status: StatusDeployed, DeployedAt: &at,
	}

	out := renderJSON(t, Present(g))
	assert.Equal(t, user.String(), out["user_id"])
	assert.Equal(t, "2025-06-21T10:51:13Z", out["deployed_at"])
	assert.NotContains(t, out, "destroyed_at")
}

func TestPresentAll_MatchesPresent(t *testing.T) {
	list := []Gadget{
		{ID: uuid.New(), Name: "a", Skin: "b", MissionSuccessProbability: 10, Status: StatusAvailable},
		{ID: uuid.New(), Name: "c", Skin: "d", MissionSuccessProbability: 90, Status: StatusDestroyed},
	}

	views := PresentAll(list)
	require.Len(t, views, 2)
	for i := range list {
		assert.Equal(t, Present(&list[i]), views[i])
		assert.NotEmpty(t, views[i].Description)
	}
	assert.Empty(t, PresentAll(nil))
}
