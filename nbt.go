package ecc

import (
	"fmt"

	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// MarshalContainer serializes the container's component data to binary NBT
// in little-endian encoding, suitable for persistent storage alongside
// other entity data.
func MarshalContainer(c *Container) ([]byte, error) {
	tag := c.ToNBT(nil)
	b, err := nbt.MarshalEncoding(tag, nbt.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("encode container for %s: %w", c.bp.etype, err)
	}
	return b, nil
}

// UnmarshalContainer restores component state in c from binary NBT produced
// by MarshalContainer. Unknown entries in the data are ignored.
func UnmarshalContainer(c *Container, b []byte) error {
	var tag map[string]any
	if err := nbt.UnmarshalEncoding(b, &tag, nbt.LittleEndian); err != nil {
		return fmt.Errorf("decode container for %s: %w", c.bp.etype, err)
	}
	c.FromNBT(tag)
	return nil
}
