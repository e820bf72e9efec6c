package content

import "testing"

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if c.Core == "" || c.Vault == "" || c.PowerSource == "" {
		t.Fatalf("special blocks missing: %+v", c)
	}
	if !c.UnitConstructors.ContainsAll(c.OpenConstructors) {
		t.Fatal("open constructors must be unit constructors")
	}
	if !c.AllUnits.ContainsAll(c.AlwaysAllowedUnits) {
		t.Fatal("always-allowed units missing from the unit catalog")
	}
	if !c.AlwaysAllowedUnits.ContainsAll(c.SupportUnits) {
		t.Fatal("support units must be always allowed")
	}
	if len(c.Walls) == 0 || len(c.Power) == 0 {
		t.Fatal("wall and power tiers must be populated")
	}
	if len(c.Ground) == 0 || len(c.Air) == 0 {
		t.Fatal("ground and air tiers must be populated")
	}
}

func TestSetAlgebra(t *testing.T) {
	a := NewSet[Block]("x", "y", "z")
	b := NewSet[Block]("y")

	union := a.Union(b)
	if len(union) != 3 {
		t.Fatalf("union size = %d, want 3", len(union))
	}

	minus := a.Minus(b)
	if minus.Has("y") {
		t.Fatal("minus kept a removed element")
	}
	if !minus.Has("x") || !minus.Has("z") {
		t.Fatal("minus dropped an unrelated element")
	}
	// The receiver is never mutated.
	if !a.Has("y") {
		t.Fatal("set operation mutated its receiver")
	}

	if !a.ContainsAll(b) {
		t.Fatal("superset check failed")
	}
	if b.ContainsAll(a) {
		t.Fatal("subset claimed to contain its superset")
	}

	sorted := a.Sorted()
	if len(sorted) != 3 || sorted[0] != "x" || sorted[2] != "z" {
		t.Fatalf("sorted = %v", sorted)
	}
}
