package components

import (
	"fmt"
	"strings"
)

// DamageType names a damage category.
type DamageType uint8

const (
	DamageBlunt DamageType = iota
	DamagePiercing
	DamageHeat
	DamageSlash
)

var damageTypeNames = [...]string{
	DamageBlunt:    "Blunt",
	DamagePiercing: "Piercing",
	DamageHeat:     "Heat",
	DamageSlash:    "Slash",
}

func (d DamageType) String() string {
	if int(d) < len(damageTypeNames) {
		return damageTypeNames[d]
	}
	return "Unknown"
}

// MarshalText lets damage types be used as YAML/CSV values and map keys.
func (d DamageType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// AllDamageTypes lists every damage type in declaration order.
func AllDamageTypes() []DamageType {
	return []DamageType{DamageBlunt, DamagePiercing, DamageHeat, DamageSlash}
}

// UnmarshalText parses a damage type name as written by MarshalText.
func (d *DamageType) UnmarshalText(text []byte) error {
	parsed, ok := ParseDamageType(string(text))
	if !ok {
		return fmt.Errorf("unknown damage type %q", text)
	}
	*d = parsed
	return nil
}

// ParseDamageType looks up a damage type by name (case-insensitive).
func ParseDamageType(name string) (DamageType, bool) {
	for i, n := range damageTypeNames {
		if strings.EqualFold(n, name) {
			return DamageType(i), true
		}
	}
	return 0, false
}
