package civ5save

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetActivePlayerRoundTrip(t *testing.T) {
	data := newTestSave().bytes()
	// snapshot taken before Decode, so the diff below cannot degrade
	// into comparing a buffer with itself
	orig := append([]byte(nil), data...)

	s, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, 2, s.ActivePlayer())

	require.NoError(t, s.SetActivePlayer(0))
	out := s.Encode()

	again, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 0, again.ActivePlayer())

	// every byte except the active player field is unchanged
	require.Equal(t, len(orig), len(out))
	diff := 0
	for i := range orig {
		if orig[i] != out[i] {
			diff++
			assert.GreaterOrEqual(t, i, s.activeOff)
			assert.Less(t, i, s.activeOff+4)
		}
	}
	assert.Positive(t, diff, "active player field must actually change")
	assert.LessOrEqual(t, diff, 4)
}

func TestDecodeCopiesCallerBuffer(t *testing.T) {
	input := newTestSave().bytes()
	snapshot := append([]byte(nil), input...)

	s, err := Decode(input)
	require.NoError(t, err)

	require.NoError(t, s.SetActivePlayer(0))
	require.NoError(t, s.SetPlayerStatus(1, StatusHuman))

	// the container owns its buffer: mutation never reaches the input
	assert.Equal(t, snapshot, input)
	assert.NotEqual(t, snapshot, s.Encode())
}

func TestIdempotentMutation(t *testing.T) {
	data := newTestSave().bytes()
	s, err := Decode(data)
	require.NoError(t, err)

	require.NoError(t, s.SetActivePlayer(s.ActivePlayer()))
	require.NoError(t, s.SetPlayerStatus(1, StatusAI))
	require.NoError(t, s.SetCivilization(0, "CIVILIZATION_ROME"))

	assert.Equal(t, data, s.Encode())
}

func TestSetPlayerStatus(t *testing.T) {
	s, err := Decode(newTestSave().bytes())
	require.NoError(t, err)

	require.NoError(t, s.SetPlayerStatus(1, StatusHuman))
	again, err := Decode(s.Encode())
	require.NoError(t, err)
	st, err := again.PlayerStatus(1)
	require.NoError(t, err)
	assert.Equal(t, StatusHuman, st)
}

func TestSetCivilizationResizesContainer(t *testing.T) {
	s, err := Decode(newTestSave().bytes())
	require.NoError(t, err)
	before := s.Summary()

	// longer key than CIVILIZATION_ROME, shifts everything after it
	require.NoError(t, s.SetCivilization(0, "CIVILIZATION_NETHERLANDS"))

	again, err := Decode(s.Encode())
	require.NoError(t, err)
	civ, err := again.Civilization(0)
	require.NoError(t, err)
	assert.Equal(t, "CIVILIZATION_NETHERLANDS", civ)

	// neighbouring fields survive the splice
	civ, err = again.Civilization(1)
	require.NoError(t, err)
	assert.Equal(t, "CIVILIZATION_EGYPT", civ)
	assert.Equal(t, before, again.Summary())

	// and shrinking back restores the original bytes
	require.NoError(t, s.SetCivilization(0, "CIVILIZATION_ROME"))
	assert.Equal(t, newTestSave().bytes(), s.Encode())
}

func TestBoundsEnforcement(t *testing.T) {
	data := newTestSave().bytes()
	s, err := Decode(data)
	require.NoError(t, err)

	var ve *ValidationError

	require.ErrorAs(t, s.SetActivePlayer(-1), &ve)
	require.ErrorAs(t, s.SetActivePlayer(MaxPlayers), &ve)
	require.ErrorAs(t, s.SetActivePlayer(10), &ve) // missing slot

	require.ErrorAs(t, s.SetPlayerStatus(0, StatusMissing), &ve)
	require.ErrorAs(t, s.SetPlayerStatus(0, PlayerStatus(9)), &ve)
	require.ErrorAs(t, s.SetPlayerStatus(30, StatusAI), &ve)
	require.ErrorAs(t, s.SetPlayerStatus(10, StatusAI), &ve) // missing slot

	require.ErrorAs(t, s.SetCivilization(0, "CIVILIZATION_ATLANTIS"), &ve)
	require.ErrorAs(t, s.SetCivilization(-1, "CIVILIZATION_ROME"), &ve)
	require.ErrorAs(t, s.SetCivilization(10, "CIVILIZATION_ROME"), &ve) // missing slot

	_, err = s.PlayerStatus(MaxPlayers)
	require.ErrorAs(t, err, &ve)
	_, err = s.Civilization(-1)
	require.ErrorAs(t, err, &ve)

	// no partial writes: the container is byte-identical after every
	// rejected mutation
	assert.Equal(t, data, s.Encode())
}

func TestSummary(t *testing.T) {
	s, err := Decode(newTestSave().bytes())
	require.NoError(t, err)
	assert.Equal(t, TurnSummary{Turn: 42, ActivePlayer: 2, PasswordCount: 2, DeadPlayers: 1}, s.Summary())
}

func TestKnownCivilizations(t *testing.T) {
	assert.True(t, IsKnownCivilization("CIVILIZATION_POLAND"))
	assert.False(t, IsKnownCivilization("CIVILIZATION_ATLANTIS"))
	assert.NotEmpty(t, KnownCivilizations())
}
