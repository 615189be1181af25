package nutriplan

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command in-process with the given args and
// returns everything it wrote. Commands share package-level flag vars, so
// every call passes the full flag set it cares about.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func testDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nutriplan.db")
}

func TestCLIInitSeedsStarterCatalog(t *testing.T) {
	db := testDBPath(t)

	out, err := runCLI(t, "--db", db, "init")
	if err != nil {
		t.Fatalf("init: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Initialized nutriplan database") {
		t.Fatalf("unexpected init output: %s", out)
	}

	out, err = runCLI(t, "--db", db, "recipe", "list", "--category", "all", "--search", "", "--tag", "", "--sort", "name", "--order", "asc")
	if err != nil {
		t.Fatalf("recipe list: %v\n%s", err, out)
	}
	for _, name := range []string{"Mushroom Risotto", "Trail Mix", "Classic Oatmeal with Banana & Almonds"} {
		if !strings.Contains(out, name) {
			t.Errorf("expected seeded recipe %q in listing:\n%s", name, out)
		}
	}
}

func TestCLIInitNoSeedLeavesEmptyCatalog(t *testing.T) {
	db := testDBPath(t)

	if out, err := runCLI(t, "--db", db, "init", "--no-seed"); err != nil {
		t.Fatalf("init --no-seed: %v\n%s", err, out)
	}

	out, err := runCLI(t, "--db", db, "recipe", "list", "--category", "all", "--search", "", "--tag", "", "--sort", "name", "--order", "asc")
	if err != nil {
		t.Fatalf("recipe list: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No recipes match") {
		t.Fatalf("expected empty listing, got:\n%s", out)
	}

	// Later runs must not re-seed behind the user's back.
	initSkipSeed = false
}

func TestCLIRecipeAddRejectsBadCategory(t *testing.T) {
	db := testDBPath(t)
	if out, err := runCLI(t, "--db", db, "init", "--no-seed"); err != nil {
		t.Fatalf("init: %v\n%s", err, out)
	}
	initSkipSeed = false

	out, err := runCLI(t, "--db", db, "recipe", "add",
		"--name", "Mystery Bowl",
		"--category", "brunch",
		"--servings", "1",
		"--calories", "300",
	)
	if err == nil {
		t.Fatalf("expected category validation error, got:\n%s", out)
	}
}

func TestCLIProfileSetAndShow(t *testing.T) {
	db := testDBPath(t)
	if out, err := runCLI(t, "--db", db, "init", "--no-seed"); err != nil {
		t.Fatalf("init: %v\n%s", err, out)
	}
	initSkipSeed = false

	out, err := runCLI(t, "--db", db, "profile", "set",
		"--height", "175",
		"--weight", "70",
		"--age", "30",
		"--gender", "male",
		"--activity", "moderately_active",
	)
	if err != nil {
		t.Fatalf("profile set: %v\n%s", err, out)
	}

	out, err = runCLI(t, "--db", db, "profile", "show")
	if err != nil {
		t.Fatalf("profile show: %v\n%s", err, out)
	}
	if !strings.Contains(out, "BMI: 22.9") {
		t.Errorf("expected BMI 22.9 in output:\n%s", out)
	}
	if !strings.Contains(out, "Targets:") {
		t.Errorf("expected targets line in output:\n%s", out)
	}
}
