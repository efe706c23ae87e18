package civ5save

// Typed accessors over the modeled fields. Setters validate before touching
// the buffer; a ValidationError means the container is untouched.

func (s *SaveFile) SaveVersion() uint32  { return s.saveVersion }
func (s *SaveFile) GameVersion() string  { return s.gameVersion }
func (s *SaveFile) BuildVersion() string { return s.buildVersion }
func (s *SaveFile) CurrentTurn() int     { return int(s.turn) }

// ActivePlayer is the slot whose turn the container encodes.
func (s *SaveFile) ActivePlayer() int { return int(s.active) }

func (s *SaveFile) PlayerStatus(player int) (PlayerStatus, error) {
	if err := s.checkSlot("player", player); err != nil {
		return 0, err
	}
	return s.statuses[player], nil
}

func (s *SaveFile) PlayerStatuses() []PlayerStatus {
	out := make([]PlayerStatus, MaxPlayers)
	copy(out, s.statuses[:])
	return out
}

func (s *SaveFile) Civilization(player int) (string, error) {
	if err := s.checkSlot("player", player); err != nil {
		return "", err
	}
	return s.civs[player], nil
}

func (s *SaveFile) Civilizations() []string {
	out := make([]string, MaxPlayers)
	copy(out, s.civs[:])
	return out
}

// PasswordCount is the number of slots with a password set. Password values
// themselves are never exposed or mutated.
func (s *SaveFile) PasswordCount() int { return s.passwordCount }

func (s *SaveFile) DeadPlayerCount() int {
	n := 0
	for _, st := range s.statuses {
		if st == StatusDead {
			n++
		}
	}
	return n
}

// SetActivePlayer hands the turn to another slot. The target slot must
// exist on the map.
func (s *SaveFile) SetActivePlayer(player int) error {
	if err := s.checkSlot("active player", player); err != nil {
		return err
	}
	if s.statuses[player] == StatusMissing {
		return validationErrf("active player", "slot %d is not on the map", player)
	}
	s.active = int32(player)
	s.putInt32(s.activeOff, s.active)
	return nil
}

// SetPlayerStatus rewrites one entry of the status table. Missing is not a
// settable state: it reflects map capacity, not a choice.
func (s *SaveFile) SetPlayerStatus(player int, status PlayerStatus) error {
	if err := s.checkSlot("player", player); err != nil {
		return err
	}
	switch status {
	case StatusAI, StatusDead, StatusHuman:
	default:
		return validationErrf("player type", "%d", int32(status))
	}
	if s.statuses[player] == StatusMissing {
		return validationErrf("player type", "slot %d is not on the map", player)
	}
	s.statuses[player] = status
	s.putInt32(s.statusOff+player*4, int32(status))
	return nil
}

// SetCivilization assigns a civilization to a slot. The value must be one
// of the known civilization keys; the container grows or shrinks as needed
// since the field is length-prefixed.
func (s *SaveFile) SetCivilization(player int, civ string) error {
	if err := s.checkSlot("player", player); err != nil {
		return err
	}
	if !IsKnownCivilization(civ) {
		return validationErrf("civilization", "%s", civ)
	}
	if s.statuses[player] == StatusMissing {
		return validationErrf("civilization", "slot %d is not on the map", player)
	}
	if s.civs[player] == civ {
		return nil
	}
	return s.splice(s.civSpans[player], civ)
}

func (s *SaveFile) checkSlot(field string, player int) error {
	if player < 0 || player >= MaxPlayers {
		return validationErrf(field, "slot %d out of range [0,%d)", player, MaxPlayers)
	}
	return nil
}

// TurnSummary is the metadata the play-by-email workflow exchanges about a
// save: whose turn it is and how far the game has progressed.
type TurnSummary struct {
	Turn          int
	ActivePlayer  int
	PasswordCount int
	DeadPlayers   int
}

func (s *SaveFile) Summary() TurnSummary {
	return TurnSummary{
		Turn:          s.CurrentTurn(),
		ActivePlayer:  s.ActivePlayer(),
		PasswordCount: s.PasswordCount(),
		DeadPlayers:   s.DeadPlayerCount(),
	}
}
