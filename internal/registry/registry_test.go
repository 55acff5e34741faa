package registry

import (
	"testing"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/replay"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                  { return g.id }
func (g stubGame) Title() string               { return "Stub " + g.id }
func (stubGame) Reset(core.RuntimeConfig)      {}
func (stubGame) ResetWith(replay.Conditions)   {}
func (stubGame) Render(*core.Screen)           {}
func (stubGame) State() core.GameState         { return core.GameState{} }
func (stubGame) Conditions() replay.Conditions { return replay.Conditions{} }
func (stubGame) Step([]core.InputFrame) (core.StepResult, error) {
	return core.StepResult{}, nil
}

func TestRegisterCreate(t *testing.T) {
	Register("stub-b", func() Game { return stubGame{id: "stub-b"} })
	Register("stub-a", func() Game { return stubGame{id: "stub-a"} })

	if !Exists("stub-a") || Exists("stub-missing") {
		t.Error("Exists() reported the wrong registrations")
	}
	g, err := Create("stub-a")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "stub-a" {
		t.Errorf("Create().ID() = %q, expected %q", g.ID(), "stub-a")
	}
	if _, err := Create("stub-missing"); err == nil {
		t.Error("Create(unknown) error = nil")
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "stub-a" || info.ID == "stub-b" {
			ids = append(ids, info.ID)
		}
	}
	if len(ids) != 2 || ids[0] != "stub-a" {
		t.Errorf("List() order = %v, expected [stub-a stub-b]", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return stubGame{id: "stub-dup"} })
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("stub-dup", func() Game { return stubGame{id: "stub-dup"} })
}
