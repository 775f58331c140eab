package source

import (
	"strings"
	"testing"

	"edjecc/common"
	"edjecc/edje"
)

func TestRegenerateRoundTripShape(t *testing.T) {
	f := edje.NewFile()
	f.AddDataItem("version", "1")
	f.AddImage("bg.png", edje.ImageInlineLossless, 0)

	c := f.AddCollection("main")
	part, err := c.AddPart("bg", common.PartRect)
	if err != nil {
		t.Fatalf("AddPart: %v", err)
	}
	if _, err := part.AddState("default", 0.0); err != nil {
		t.Fatalf("AddState: %v", err)
	}

	prog, err := c.AddProgram("show")
	if err != nil {
		t.Fatalf("AddProgram: %v", err)
	}
	prog.Signal = "load"
	prog.Source = "*"
	prog.SetAction(edje.ProgramAction{Kind: common.ActionStateSet, StateName: "default", StateValue: 0})
	if err := prog.AddTarget("bg"); err != nil {
		t.Fatalf("AddTarget: %v", err)
	}

	files := Regenerate(f)
	if len(files) != 1 {
		t.Fatalf("expected one source file, got %d", len(files))
	}
	text := string(files[0].Data)

	for _, want := range []string{
		`name: "main";`,
		`name: "bg";`,
		`type: RECT;`,
		`signal: "load";`,
		`action: STATE_SET "default" 0;`,
		`target: "bg";`,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected generated source to contain %q, got:\n%s", want, text)
		}
	}
}
