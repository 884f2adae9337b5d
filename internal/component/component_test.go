package component

import (
	"math"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/falldown/falldown/internal/collision"
)

func TestColorNames(t *testing.T) {
	for _, c := range Colors {
		parsed, err := ParseColor(c.DisplayName())
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", c.DisplayName(), err)
		}
		if parsed != c {
			t.Errorf("Expected %v, got %v", c, parsed)
		}
	}
	if Blue.DisplayName() != "Blue" {
		t.Errorf("Expected Blue, got %q", Blue.DisplayName())
	}
	if _, err := ParseColor("teal"); err == nil {
		t.Error("Expected error for unknown color")
	}
	if Color(42).Valid() {
		t.Error("Expected Color(42) invalid")
	}
}

func TestColorYAML(t *testing.T) {
	var doc struct {
		Colors []Color `yaml:"colors"`
	}
	if err := yaml.Unmarshal([]byte("colors: [red, Purple]\n"), &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(doc.Colors) != 2 || doc.Colors[0] != Red || doc.Colors[1] != Purple {
		t.Errorf("Unexpected colors %v", doc.Colors)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != "colors:\n    - red\n    - purple\n" {
		t.Errorf("Unexpected YAML %q", out)
	}
}

func TestAffiliationString(t *testing.T) {
	if s := EnemyOf(Red).String(); s != "Enemy(Red)" {
		t.Errorf("Expected Enemy(Red), got %q", s)
	}
	if s := PlayerOf(Green).String(); s != "Player(Green)" {
		t.Errorf("Expected Player(Green), got %q", s)
	}
}

func TestSpawnerAdvance(t *testing.T) {
	s := NewSpawner(time.Second, 5)
	if s.Advance(600 * time.Millisecond) {
		t.Error("Expected no spawn before interval")
	}
	if !s.Advance(600 * time.Millisecond) {
		t.Error("Expected spawn once interval elapsed")
	}
	if s.Advance(300 * time.Millisecond) {
		t.Error("Expected remainder carried, not a second spawn")
	}
	if !s.Advance(500 * time.Millisecond) {
		t.Error("Expected spawn once the carried remainder reaches the interval")
	}
	if !s.Advance(10*time.Second) || s.Advance(0) {
		t.Error("Expected a stall to yield a single spawn")
	}
}

func TestTrailOldest(t *testing.T) {
	tr := NewTrail(3)
	if _, ok := tr.Oldest(); ok {
		t.Error("Expected empty trail")
	}
	tr.Push(1)
	tr.Push(2)
	if v, _ := tr.Oldest(); v != 1 {
		t.Errorf("Expected 1, got %v", v)
	}
	tr.Push(3)
	tr.Push(4)
	if v, _ := tr.Oldest(); v != 2 {
		t.Errorf("Expected 2 after wrap, got %v", v)
	}
}

func TestTransformRotateWraps(t *testing.T) {
	tr := Transform{Rotation: 3}
	tr.Rotate(1)
	if tr.Rotation > math.Pi || tr.Rotation <= -math.Pi {
		t.Errorf("Rotation out of range: %v", tr.Rotation)
	}
	want := 4 - 2*math.Pi
	if math.Abs(tr.Rotation-want) > 1e-9 {
		t.Errorf("Expected %v, got %v", want, tr.Rotation)
	}
}

func TestColliderProjection(t *testing.T) {
	c := NewCollider(nil, EnemyGroups(), collision.Contacts(0))
	if c.Synced() {
		t.Error("Expected new collider unsynced")
	}
	c.Handle = 7
	if ColliderHandle(c) != 7 || !c.Synced() {
		t.Errorf("Expected handle 7, got %v", ColliderHandle(c))
	}
	if PlayerGroups().CanInteractWith(PlayerGroups()) {
		t.Error("Expected players not to collide with each other")
	}
}
