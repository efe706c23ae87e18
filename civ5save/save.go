// Package civ5save decodes and re-encodes .Civ5Save containers.
//
// Only the turn metadata the play-by-email workflow needs is modeled: the
// turn counter, the active player slot, the per-slot player status table,
// the civilization table and the password census. Every other byte range is
// carried opaquely between Decode and Encode, referenced by offset and
// length, so an unmutated container always re-encodes byte-identically.
package civ5save

import (
	"encoding/binary"
)

const (
	// MaxPlayers is the number of player slots a container always carries,
	// regardless of map size. Slots beyond the map capacity are Missing.
	MaxPlayers = 22

	saveMagic = "CIV5"

	minSections = 12

	// Section indexes of the modeled tables, counted over the byte-aligned
	// occurrences of the section marker.
	civSection      = 1
	statusSection   = 2
	activeSection   = 8
	passwordSection = 11

	// The active player slot sits a fixed distance before the marker of
	// activeSection rather than after one.
	activePlayerBack = 16
)

// sectionMarker is the little-endian encoding of 0x40000000, the delimiter
// the game writes between save sections.
var sectionMarker = []byte{0x00, 0x00, 0x00, 0x40}

// PlayerStatus is the per-slot state stored in the status table.
type PlayerStatus int32

const (
	StatusAI      PlayerStatus = 1
	StatusDead    PlayerStatus = 2 // dead or closed slot
	StatusHuman   PlayerStatus = 3
	StatusMissing PlayerStatus = 4 // slot beyond the map's player capacity
)

func (s PlayerStatus) String() string {
	switch s {
	case StatusAI:
		return "AI"
	case StatusDead:
		return "Dead"
	case StatusHuman:
		return "Human"
	case StatusMissing:
		return "Missing"
	}
	return "Unknown"
}

// span references a byte range inside the raw buffer.
type span struct {
	off int
	len int
}

// SaveFile is a decoded save container. It owns its byte buffer; mutation
// happens in place through the accessors in fields.go and Encode hands back
// the buffer content, so unrecognized regions are never reconstructed.
type SaveFile struct {
	raw []byte

	saveVersion  uint32
	gameVersion  string
	buildVersion string
	turn         int32

	sections []int

	active    int32
	activeOff int

	statuses  [MaxPlayers]PlayerStatus
	statusOff int

	civs     [MaxPlayers]string
	civSpans [MaxPlayers]span // each span covers the length prefix and bytes

	passwordCount int
}

// Decode parses a save container. Any structural inconsistency, including
// truncation anywhere in the file, fails with a FormatError; a partially
// decoded container is never returned.
func Decode(data []byte) (*SaveFile, error) {
	r := newBitReader(data)

	magic, err := r.readBytes(len(saveMagic))
	if err != nil {
		return nil, formatErrf(0, "missing %q signature", saveMagic)
	}
	if string(magic) != saveMagic {
		return nil, formatErrf(0, "bad signature %q", magic)
	}

	// The container owns its buffer: copy the input so mutations never
	// write through into the caller's slice.
	s := &SaveFile{raw: append([]byte(nil), data...)}

	if s.saveVersion, err = r.readUint32(); err != nil {
		return nil, err
	}
	if s.gameVersion, err = r.readString(); err != nil {
		return nil, err
	}
	if s.buildVersion, err = r.readString(); err != nil {
		return nil, err
	}
	if s.turn, err = r.readInt32(); err != nil {
		return nil, err
	}

	// The declared length written after the turn counter pins the container
	// size, which is what lets Decode reject any truncated prefix outright.
	declared, err := r.readUint32()
	if err != nil {
		return nil, err
	}
	if int(declared) != len(data) {
		return nil, formatErrf(r.byteOffset()-4, "declared length %d, file is %d bytes", declared, len(data))
	}

	s.sections = r.findAligned(sectionMarker)
	if len(s.sections) < minSections {
		return nil, formatErrf(-1, "found %d sections, need at least %d", len(s.sections), minSections)
	}

	// Civilization table.
	r.seekByte(s.sections[civSection] + len(sectionMarker))
	for i := 0; i < MaxPlayers; i++ {
		off := r.byteOffset()
		civ, err := r.readString()
		if err != nil {
			return nil, err
		}
		s.civs[i] = civ
		s.civSpans[i] = span{off: off, len: r.byteOffset() - off}
	}

	// Player status table.
	s.statusOff = s.sections[statusSection] + len(sectionMarker)
	r.seekByte(s.statusOff)
	for i := 0; i < MaxPlayers; i++ {
		v, err := r.readInt32()
		if err != nil {
			return nil, err
		}
		s.statuses[i] = PlayerStatus(v)
	}

	// Active player slot.
	s.activeOff = s.sections[activeSection] - activePlayerBack
	if s.activeOff < 0 {
		return nil, formatErrf(s.sections[activeSection], "no room for active player field")
	}
	r.seekByte(s.activeOff)
	if s.active, err = r.readInt32(); err != nil {
		return nil, err
	}
	if s.active < 0 || s.active >= MaxPlayers {
		return nil, formatErrf(s.activeOff, "active player %d out of range", s.active)
	}

	// Password table. Only the census is exposed; values stay opaque.
	r.seekByte(s.sections[passwordSection] + len(sectionMarker))
	for i := 0; i < MaxPlayers; i++ {
		pw, err := r.readString()
		if err != nil {
			return nil, err
		}
		if pw != "" {
			s.passwordCount++
		}
	}

	return s, nil
}

// Encode serializes the container. For a container that was decoded and not
// mutated the output is byte-identical to the input.
func (s *SaveFile) Encode() []byte {
	out := make([]byte, len(s.raw))
	copy(out, s.raw)
	return out
}

// putInt32 writes a fixed-width field in place.
func (s *SaveFile) putInt32(off int, v int32) {
	binary.LittleEndian.PutUint32(s.raw[off:], uint32(v))
}

// splice replaces the byte range sp with a fresh length-prefixed string and
// re-decodes the resulting buffer, since every offset after the splice
// point shifts. The receiver is replaced atomically: on error (which would
// mean the splice itself was wrong) nothing is modified.
func (s *SaveFile) splice(sp span, value string) error {
	repl := make([]byte, 4+len(value))
	binary.LittleEndian.PutUint32(repl, uint32(len(value)))
	copy(repl[4:], value)

	buf := make([]byte, 0, len(s.raw)-sp.len+len(repl))
	buf = append(buf, s.raw[:sp.off]...)
	buf = append(buf, repl...)
	buf = append(buf, s.raw[sp.off+sp.len:]...)
	binary.LittleEndian.PutUint32(buf[declaredLenOff(buf):], uint32(len(buf)))

	ns, err := Decode(buf)
	if err != nil {
		return err
	}
	*s = *ns
	return nil
}

// declaredLenOff locates the declared-length field: it follows the magic,
// the save version, both header strings and the turn counter.
func declaredLenOff(data []byte) int {
	off := len(saveMagic) + 4
	for i := 0; i < 2; i++ {
		n := binary.LittleEndian.Uint32(data[off:])
		off += 4 + int(n)
	}
	return off + 4
}
