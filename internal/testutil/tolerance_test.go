package testutil

import "testing"

func TestRequireNear(t *testing.T) {
	RequireNear(t, "value", 1.0, 1.05, 0.1)
	RequireNear(t, "exact", -3, -3, 0)
}

func TestRequireFinite(t *testing.T) {
	RequireFinite(t, 0, -1, 1e300)
	RequireFinite(t)
}

func TestRequireBoolsEqual(t *testing.T) {
	RequireBoolsEqual(t, []bool{true, false}, []bool{true, false})
	RequireBoolsEqual(t, nil, []bool{})
}
