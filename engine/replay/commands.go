package replay

import (
	"encoding/binary"
	"io"
)

// CmdType identifies a command
type CmdType uint8

const (
	CmdToneTest CmdType = iota
	CmdRelativeVelocityTest
)

func (t CmdType) String() string {
	switch t {
	case CmdToneTest:
		return "tone-test"
	case CmdRelativeVelocityTest:
		return "relative-velocity-test"
	}
	return "unknown"
}

// Command switches a test mode on an entity at a given tick
type Command struct {
	Tick     uint64
	EntityID uint64
	Type     CmdType
	On       bool
}

// Encode writes a command to binary
func (c *Command) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, c.Tick); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, c.EntityID); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, c.Type); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, c.On)
}

// Decode reads a command from binary. io.EOF is returned only when r
// ends before the command starts; a partial command is io.ErrUnexpectedEOF.
func (c *Command) Decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &c.Tick); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &c.EntityID); err != nil {
		return noEOF(err)
	}
	if err := binary.Read(r, binary.LittleEndian, &c.Type); err != nil {
		return noEOF(err)
	}
	return noEOF(binary.Read(r, binary.LittleEndian, &c.On))
}

func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
