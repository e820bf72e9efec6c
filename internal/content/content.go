// Package content defines the block and unit catalogs the ban rules are
// computed over. The catalog is embedded as YAML and partitioned into the
// tiers the phase rules care about.
package content

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Block names a placeable structure.
type Block string

// Unit names a unit type.
type Unit string

// BlockSet is a set of blocks.
type BlockSet = Set[Block]

// UnitSet is a set of units.
type UnitSet = Set[Unit]

//go:embed catalog/catalog.yaml
var catalogFS embed.FS

// Catalog holds the content tiers the rule engine partitions content into.
type Catalog struct {
	// Core is the block that defines a survivor team.
	Core Block
	// Vault is the storage block survivors may convert into a core.
	Vault Block
	// PowerSource is protected infrastructure; breaking it is filtered.
	PowerSource Block

	// UnitConstructors are all factories, assemblers and reconstructors.
	UnitConstructors BlockSet
	// OpenConstructors is the always-allowed constructor tier.
	OpenConstructors BlockSet
	// Walls is every wall tier.
	Walls BlockSet
	// Power is every generator and battery.
	Power BlockSet

	// AlwaysAllowedUnits is the support tier no role ever loses.
	AlwaysAllowedUnits UnitSet
	// SupportUnits are retired on creation in exchange for an item reward.
	SupportUnits UnitSet
	// WeaponlessAtStart lose their weapons at host time.
	WeaponlessAtStart UnitSet

	Ground UnitSet
	Air    UnitSet
	Naval  UnitSet
	Tank   UnitSet
	Ship   UnitSet
	Mech   UnitSet

	// AllUnits is the union of every unit tier.
	AllUnits UnitSet
}

type catalogFile struct {
	Blocks struct {
		Core             Block   `yaml:"core"`
		Vault            Block   `yaml:"vault"`
		PowerSource      Block   `yaml:"power_source"`
		UnitConstructors []Block `yaml:"unit_constructors"`
		OpenConstructors []Block `yaml:"open_constructors"`
		Walls            []Block `yaml:"walls"`
		Power            []Block `yaml:"power"`
	} `yaml:"blocks"`
	Units struct {
		AlwaysAllowed     []Unit `yaml:"always_allowed"`
		Support           []Unit `yaml:"support"`
		WeaponlessAtStart []Unit `yaml:"weaponless_at_start"`
		Ground            []Unit `yaml:"ground"`
		Air               []Unit `yaml:"air"`
		Naval             []Unit `yaml:"naval"`
		Tank              []Unit `yaml:"tank"`
		Ship              []Unit `yaml:"ship"`
		Mech              []Unit `yaml:"mech"`
	} `yaml:"units"`
}

// Load parses and validates the embedded catalog.
func Load() (*Catalog, error) {
	raw, err := catalogFS.ReadFile("catalog/catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		Core:               file.Blocks.Core,
		Vault:              file.Blocks.Vault,
		PowerSource:        file.Blocks.PowerSource,
		UnitConstructors:   NewSet(file.Blocks.UnitConstructors...),
		OpenConstructors:   NewSet(file.Blocks.OpenConstructors...),
		Walls:              NewSet(file.Blocks.Walls...),
		Power:              NewSet(file.Blocks.Power...),
		AlwaysAllowedUnits: NewSet(file.Units.AlwaysAllowed...),
		SupportUnits:       NewSet(file.Units.Support...),
		WeaponlessAtStart:  NewSet(file.Units.WeaponlessAtStart...),
		Ground:             NewSet(file.Units.Ground...),
		Air:                NewSet(file.Units.Air...),
		Naval:              NewSet(file.Units.Naval...),
		Tank:               NewSet(file.Units.Tank...),
		Ship:               NewSet(file.Units.Ship...),
		Mech:               NewSet(file.Units.Mech...),
	}
	c.AllUnits = c.Ground.Union(c.Air, c.Naval, c.Tank, c.Ship, c.Mech)

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	return c, nil
}

func (c *Catalog) validate() error {
	if c.Core == "" {
		return fmt.Errorf("core block is required")
	}
	if c.Vault == "" {
		return fmt.Errorf("vault block is required")
	}
	if len(c.UnitConstructors) == 0 {
		return fmt.Errorf("unit constructor tier is empty")
	}
	if len(c.AllUnits) == 0 {
		return fmt.Errorf("unit catalog is empty")
	}
	if !c.UnitConstructors.ContainsAll(c.OpenConstructors) {
		return fmt.Errorf("open constructors must be a subset of unit constructors")
	}
	if !c.AllUnits.ContainsAll(c.AlwaysAllowedUnits) {
		return fmt.Errorf("always-allowed units must exist in the unit catalog")
	}
	if !c.AlwaysAllowedUnits.ContainsAll(c.SupportUnits) {
		return fmt.Errorf("support units must be always allowed")
	}
	return nil
}

// MustLoad loads the embedded catalog and panics on failure. The catalog
// ships inside the binary, so a failure here is a build defect.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}
