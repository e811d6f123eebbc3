package club_test

import (
	"testing"

	"github.com/mauv0809/tribble-league/internal/club"
	"github.com/mauv0809/tribble-league/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMapperStore() *club.MockStore {
	store := club.NewMock()
	store.Players = []league.Player{
		{ID: "p1", Name: "Ada Lovelace"},
		{ID: "p2", Name: "Bo Berg", Nickname: "Bobo"},
		{ID: "p3", Name: "José García"},
		{ID: "U9", Name: "Registered From Slack"},
	}
	return store
}

func TestFindOrMapPlayer(t *testing.T) {
	t.Run("returns an existing link", func(t *testing.T) {
		store := newMapperStore()
		store.SlackLinks["p1"] = "U1"

		player, suggestions, err := club.NewPlayerMapper(store).FindOrMapPlayer("U1", "whoever")
		require.NoError(t, err)
		require.NotNil(t, player)
		assert.Equal(t, "p1", player.ID)
		assert.Empty(t, suggestions)
		assert.Empty(t, store.LinkSlackUserCalls)
	})

	t.Run("links a confident name match", func(t *testing.T) {
		store := newMapperStore()

		player, _, err := club.NewPlayerMapper(store).FindOrMapPlayer("U1", "ada.lovelace")
		require.NoError(t, err)
		require.NotNil(t, player)
		assert.Equal(t, "p1", player.ID)
		assert.Equal(t, "U1", store.SlackLinks["p1"])
	})

	t.Run("ignores accents and matches nicknames", func(t *testing.T) {
		store := newMapperStore()
		mapper := club.NewPlayerMapper(store)

		player, _, err := mapper.FindOrMapPlayer("U3", "jose_garcia")
		require.NoError(t, err)
		require.NotNil(t, player)
		assert.Equal(t, "p3", player.ID)

		player, _, err = mapper.FindOrMapPlayer("U2", "Bobo")
		require.NoError(t, err)
		require.NotNil(t, player)
		assert.Equal(t, "p2", player.ID)
	})

	t.Run("links a player registered under the slack id", func(t *testing.T) {
		store := newMapperStore()

		player, _, err := club.NewPlayerMapper(store).FindOrMapPlayer("U9", "someone")
		require.NoError(t, err)
		require.NotNil(t, player)
		assert.Equal(t, "U9", player.ID)
		assert.Equal(t, "U9", store.SlackLinks["U9"])
	})

	t.Run("suggests weak matches without linking", func(t *testing.T) {
		store := newMapperStore()

		player, suggestions, err := club.NewPlayerMapper(store).FindOrMapPlayer("U1", "ada")
		require.NoError(t, err)
		assert.Nil(t, player)
		require.Len(t, suggestions, 1)
		assert.Equal(t, "p1", suggestions[0].Player.ID)
		assert.InDelta(t, 0.375, suggestions[0].Confidence, 1e-9)
		assert.Contains(t, suggestions[0].Reasons, "shares part of the name")
		assert.Empty(t, store.LinkSlackUserCalls)
	})

	t.Run("skips players already claimed", func(t *testing.T) {
		store := newMapperStore()
		store.SlackLinks["p1"] = "U7"

		player, suggestions, err := club.NewPlayerMapper(store).FindOrMapPlayer("U1", "ada.lovelace")
		require.NoError(t, err)
		assert.Nil(t, player)
		assert.Empty(t, suggestions)
	})
}

func TestLinkByHand(t *testing.T) {
	store := newMapperStore()
	mapper := club.NewPlayerMapper(store)

	player, err := mapper.Link("U2", "p2")
	require.NoError(t, err)
	assert.Equal(t, "Bobo", player.DisplayName())
	assert.Equal(t, "U2", store.SlackLinks["p2"])

	_, err = mapper.Link("U2", "nobody")
	assert.ErrorIs(t, err, club.ErrNotFound)
}

func TestSlackLinks(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertPlayers([]league.Player{{ID: "p1", Name: "Ada"}, {ID: "p2", Name: "Bo"}}))

	_, err := store.GetPlayerBySlackUserID("U1")
	assert.ErrorIs(t, err, club.ErrNotFound)

	require.NoError(t, store.LinkSlackUser("p1", "U1"))
	linked, err := store.GetPlayerBySlackUserID("U1")
	require.NoError(t, err)
	assert.Equal(t, "p1", linked.ID)

	unlinked, err := store.GetUnlinkedPlayers()
	require.NoError(t, err)
	require.Len(t, unlinked, 1)
	assert.Equal(t, "p2", unlinked[0].ID)

	// Relinking moves the Slack user and an upsert keeps the link.
	require.NoError(t, store.LinkSlackUser("p2", "U1"))
	require.NoError(t, store.UpsertPlayers([]league.Player{{ID: "p2", Name: "Bo Berg"}}))
	linked, err = store.GetPlayerBySlackUserID("U1")
	require.NoError(t, err)
	assert.Equal(t, "p2", linked.ID)
	assert.Equal(t, "Bo Berg", linked.Name)

	assert.ErrorIs(t, store.LinkSlackUser("missing", "U1"), club.ErrNotFound)
	linked, err = store.GetPlayerBySlackUserID("U1")
	require.NoError(t, err)
	assert.Equal(t, "p2", linked.ID, "a failed link must not drop the existing one")
}
