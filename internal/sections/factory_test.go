package sections_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/google/uuid"
)

func TestNewProducesValidDefaultsForEveryType(t *testing.T) {
	for i, sectionType := range sections.Types() {
		section := sections.New(sectionType, i)

		if section.ID == uuid.Nil {
			t.Fatalf("%s: expected fresh identity", sectionType)
		}
		if section.Type != sectionType {
			t.Fatalf("%s: type mismatch, got %s", sectionType, section.Type)
		}
		if section.Order != i {
			t.Fatalf("%s: expected order %d got %d", sectionType, i, section.Order)
		}
		if len(section.Content) == 0 {
			t.Fatalf("%s: expected non-empty default content", sectionType)
		}
		if section.UserEdited {
			t.Fatalf("%s: new sections must start unlocked", sectionType)
		}
		if section.LastEditedBy != domain.EditorSystem {
			t.Fatalf("%s: expected system provenance got %s", sectionType, section.LastEditedBy)
		}
		if err := sections.ValidateContent(sectionType, section.Content); err != nil {
			t.Fatalf("%s: defaults failed own schema: %v", sectionType, err)
		}
	}
}

func TestNewUnknownTypeDoesNotPanic(t *testing.T) {
	section := sections.New(sections.Type("marquee"), 3)
	if section.Order != 3 {
		t.Fatalf("expected order 3 got %d", section.Order)
	}
	if len(section.Content) != 0 {
		t.Fatalf("unknown type should yield empty content, got %v", section.Content)
	}
	if err := sections.ValidateContent(section.Type, section.Content); err != nil {
		t.Fatalf("unknown type must validate trivially: %v", err)
	}
}

func TestMarkUserEditedLocksAndStamps(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	factory := sections.NewFactory(sections.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))

	section := factory.New(sections.TypeHero, 0)
	created := section.LastEditedAt

	edited := factory.MarkUserEdited(section)
	if !edited.UserEdited {
		t.Fatal("expected user-edit lock to be set")
	}
	if edited.LastEditedBy != domain.EditorUser {
		t.Fatalf("expected user provenance got %s", edited.LastEditedBy)
	}
	if !edited.LastEditedAt.After(created) {
		t.Fatal("expected timestamp refresh on edit")
	}
	if section.UserEdited {
		t.Fatal("input section must not be mutated")
	}

	reset := factory.ResetLock(edited)
	if reset.UserEdited {
		t.Fatal("expected lock cleared")
	}
	if reset.LastEditedBy != domain.EditorSystem {
		t.Fatalf("expected system provenance got %s", reset.LastEditedBy)
	}
}

func TestCloneIsolatesContent(t *testing.T) {
	section := sections.New(sections.TypeFAQ, 0)
	clone := section.Clone()
	clone.Content["title"] = "changed"
	items := clone.Content["items"].([]any)
	items[0].(map[string]any)["question"] = "changed"

	if section.Content["title"] == "changed" {
		t.Fatal("clone shared top-level content")
	}
	original := section.Content["items"].([]any)[0].(map[string]any)
	if original["question"] == "changed" {
		t.Fatal("clone shared nested content")
	}
}

func TestDeterministicFactory(t *testing.T) {
	fixed := uuid.MustParse("6b1e6a52-4c3f-45f2-9f30-111111111111")
	when := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	factory := sections.NewFactory(
		sections.WithIDGenerator(func() uuid.UUID { return fixed }),
		sections.WithClock(func() time.Time { return when }),
	)

	a := factory.New(sections.TypeCTA, 1)
	b := factory.New(sections.TypeCTA, 1)
	if a.ID != fixed || b.ID != fixed {
		t.Fatal("expected injected identity")
	}
	if !a.LastEditedAt.Equal(when) {
		t.Fatalf("expected injected clock, got %s", a.LastEditedAt)
	}
	if a.Content["headline"] != b.Content["headline"] {
		t.Fatal("expected identical defaults")
	}
}
