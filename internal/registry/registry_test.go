package registry

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/warpsnake/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                                          { return g.id }
func (g stubGame) Title() string                                       { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig)                            {}
func (g stubGame) Step(core.InputFrame, time.Duration) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                                 {}
func (g stubGame) State() core.GameState                               { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("zz-stub-b", func() Game { return stubGame{id: "zz-stub-b"} })
	Register("zz-stub-a", func() Game { return stubGame{id: "zz-stub-a"} })

	if !Exists("zz-stub-a") {
		t.Fatal("Exists() should report a registered game")
	}
	g, err := Create("zz-stub-b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz-stub-b" {
		t.Errorf("Create() returned %q", g.ID())
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "zz-stub-a" || info.ID == "zz-stub-b" {
			ids = append(ids, info.ID)
			if info.Title != "Stub "+info.ID {
				t.Errorf("Title for %s = %q", info.ID, info.Title)
			}
		}
	}
	if len(ids) != 2 || ids[0] != "zz-stub-b" {
		t.Errorf("List() should keep registration order, got %v", ids)
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("does-not-exist")
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create() error = %v, expected ErrUnknownGame", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-stub-dup", func() Game { return stubGame{id: "zz-stub-dup"} })
	defer func() {
		if recover() == nil {
			t.Error("Duplicate Register() should panic")
		}
	}()
	Register("zz-stub-dup", func() Game { return stubGame{id: "zz-stub-dup"} })
}
