package compiler

import (
	"strings"
	"testing"

	"edjecc/common"
	"edjecc/edje"
)

func parse(t *testing.T, src string) *edje.File {
	t.Helper()
	f := edje.NewFile()
	p := New("test.edc", src, f)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return f
}

func parseErr(t *testing.T, src string) *Diagnostic {
	t.Helper()
	f := edje.NewFile()
	p := New("test.edc", src, f)
	err := p.Parse()
	if err == nil {
		t.Fatalf("expected a parse error, got none")
	}
	d, ok := err.(*Diagnostic)
	if !ok {
		t.Fatalf("expected *Diagnostic, got %T", err)
	}
	return d
}

func TestParseSimpleGroup(t *testing.T) {
	src := `
collections {
   group {
      name: "main";
      parts {
         part {
            name: "bg";
            type: RECT;
            description {
               state: "default" 0.0;
               color: 255 0 0 255;
               rel1 { relative: 0.0 0.0; }
               rel2 { relative: 1.0 1.0; }
            }
         }
      }
   }
}
`
	f := parse(t, src)
	if len(f.Collections) != 1 {
		t.Fatalf("expected 1 collection, got %d", len(f.Collections))
	}
	c := f.Collections[0]
	if c.Name != "main" {
		t.Fatalf("collection name = %q, want main", c.Name)
	}
	if len(c.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(c.Parts))
	}
	part := c.Parts[0]
	if part.Name != "bg" || part.Type != common.PartRect {
		t.Fatalf("part = %+v, want name=bg type=RECT", part)
	}
	if len(part.States) != 1 {
		t.Fatalf("expected 1 state, got %d", len(part.States))
	}
	state := part.States[0]
	if state.Color.R != 255 || state.Color.A != 255 {
		t.Fatalf("state color = %+v, want opaque red", state.Color)
	}
	if state.Rel2.RelX != 1.0 || state.Rel2.RelY != 1.0 {
		t.Fatalf("rel2 = %+v, want 1.0 1.0", state.Rel2)
	}
}

// Part references (clip_to, rel1/rel2 "to", program targets) are declared
// by name and resolved to ids only once the enclosing group closes, so a
// part can forward-reference a sibling declared later in the source.
func TestParseForwardPartReference(t *testing.T) {
	src := `
collections {
   group {
      name: "main";
      parts {
         part {
            name: "icon";
            type: IMAGE;
            description {
               state: "default" 0.0;
               rel1 { to: "bg"; }
               rel2 { to: "bg"; }
            }
         }
         part {
            name: "bg";
            type: RECT;
            description { state: "default" 0.0; }
         }
      }
      programs {
         program {
            name: "show";
            signal: "load";
            source: "*";
            action: STATE_SET "default" 0.0;
            target: "icon";
         }
      }
   }
}
`
	f := parse(t, src)
	c := f.Collections[0]
	bgID, ok := c.PartByName("bg")
	if !ok {
		t.Fatalf("expected part %q to be registered", "bg")
	}
	icon := c.Parts[0]
	state := icon.States[0]
	if state.Rel1.ToXID != bgID || state.Rel1.ToYID != bgID {
		t.Fatalf("rel1 to id = %d/%d, want %d", state.Rel1.ToXID, state.Rel1.ToYID, bgID)
	}

	prog := c.Programs[0]
	iconID, _ := c.PartByName("icon")
	if len(prog.TargetIDs) != 1 || edje.PartID(prog.TargetIDs[0]) != iconID {
		t.Fatalf("program target ids = %v, want [%d]", prog.TargetIDs, iconID)
	}
}

func TestParseUnresolvedReferenceFails(t *testing.T) {
	src := `
collections {
   group {
      name: "main";
      parts {
         part {
            name: "icon";
            type: IMAGE;
            description {
               state: "default" 0.0;
               rel1 { to: "nowhere"; }
            }
         }
      }
   }
}
`
	d := parseErr(t, src)
	if d.Kind != KindReference {
		t.Fatalf("kind = %v, want Reference", d.Kind)
	}
}

func TestParseDuplicatePartNameFails(t *testing.T) {
	src := `
collections {
   group {
      name: "main";
      parts {
         part { name: "bg"; type: RECT; description { state: "default" 0.0; } }
         part { name: "bg"; type: RECT; description { state: "default" 0.0; } }
      }
   }
}
`
	d := parseErr(t, src)
	if d.Kind != KindUniqueness {
		t.Fatalf("kind = %v, want Uniqueness", d.Kind)
	}
}

func TestParseDescriptionPropertyBeforeStateFails(t *testing.T) {
	src := `
collections {
   group {
      name: "main";
      parts {
         part {
            name: "bg"; type: RECT;
            description {
               visible: 1;
               state: "default" 0.0;
            }
         }
      }
   }
}
`
	d := parseErr(t, src)
	if d.Kind != KindContext {
		t.Fatalf("kind = %v, want Context", d.Kind)
	}
}

func TestParseOutOfRangeStateValueFails(t *testing.T) {
	src := `
collections {
   group {
      name: "main";
      parts {
         part {
            name: "bg"; type: RECT;
            description { state: "default" 1.5; }
         }
      }
   }
}
`
	d := parseErr(t, src)
	if d.Kind != KindRange {
		t.Fatalf("kind = %v, want Range", d.Kind)
	}
}

func TestParseUnknownPropertyIsIgnored(t *testing.T) {
	src := `
collections {
   group {
      name: "main";
      bogus_property: 1;
      parts {
         part { name: "bg"; type: RECT; description { state: "default" 0.0; } }
      }
   }
}
`
	f := parse(t, src)
	if len(f.Collections[0].Parts) != 1 {
		t.Fatalf("unknown property should not abort parsing")
	}
}

func TestParseImagesAndFonts(t *testing.T) {
	src := `
images {
   image: "bg.png" COMP;
   image: "photo.jpg" LOSSY 80;
}
fonts {
   font: "Vera.ttf" "default";
}
`
	f := parse(t, src)
	if len(f.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(f.Images))
	}
	if f.Images[0].Source != edje.ImageInlineLossless {
		t.Fatalf("image 0 source = %v, want lossless", f.Images[0].Source)
	}
	if f.Images[1].Source != edje.ImageInlineLossy || f.Images[1].Quality != 80 {
		t.Fatalf("image 1 = %+v, want lossy quality 80", f.Images[1])
	}
	if len(f.Fonts) != 1 || f.Fonts[0].Alias != "default" {
		t.Fatalf("fonts = %+v", f.Fonts)
	}
}

func TestParseDuplicateFontAliasMismatchFails(t *testing.T) {
	src := `
fonts {
   font: "Vera.ttf" "default";
   font: "Other.ttf" "default";
}
`
	d := parseErr(t, src)
	if d.Kind != KindUniqueness {
		t.Fatalf("kind = %v, want Uniqueness", d.Kind)
	}
}

func TestParseImageNormalResolvesToSet(t *testing.T) {
	src := `
images {
   set {
      name: "icon-set";
      image: "icon16.png" COMP;
      size: 0 0 16 16;
      image: "icon32.png" COMP;
      size: 17 17 999 999;
   }
}
collections {
   group {
      name: "main";
      parts {
         part {
            name: "icon";
            type: IMAGE;
            description {
               state: "default" 0.0;
               image.normal: "icon-set";
            }
         }
      }
   }
}
`
	f := parse(t, src)
	if len(f.Sets) != 1 || f.Sets[0].Name != "icon-set" {
		t.Fatalf("sets = %+v, want one set named icon-set", f.Sets)
	}
	setID := f.Sets[0].ID
	state := f.Collections[0].Parts[0].States[0]
	if !state.Image.NormalIsSet {
		t.Fatalf("expected image.normal to resolve as a set")
	}
	if int(state.Image.NormalID) != setID {
		t.Fatalf("image.normal id = %d, want set id %d", state.Image.NormalID, setID)
	}
}

func TestParseImageNormalResolvesToPlainEntry(t *testing.T) {
	src := `
images {
   image: "bg.png" COMP;
}
collections {
   group {
      name: "main";
      parts {
         part {
            name: "bg";
            type: IMAGE;
            description {
               state: "default" 0.0;
               image.normal: "bg.png";
            }
         }
      }
   }
}
`
	f := parse(t, src)
	state := f.Collections[0].Parts[0].States[0]
	if state.Image.NormalIsSet {
		t.Fatalf("expected image.normal to resolve as a plain entry, not a set")
	}
	if int(state.Image.NormalID) != f.Images[0].ID {
		t.Fatalf("image.normal id = %d, want %d", state.Image.NormalID, f.Images[0].ID)
	}
}

func TestParseExternalPartSourceResolves(t *testing.T) {
	src := `
externals {
   external: "elm/button";
}
collections {
   group {
      name: "main";
      parts {
         part {
            name: "btn";
            type: EXTERNAL;
            source: "elm/button";
            description { state: "default" 0.0; }
         }
      }
   }
}
`
	f := parse(t, src)
	if len(f.Externals) != 1 || f.Externals[0].Name != "elm/button" {
		t.Fatalf("externals = %+v, want one entry elm/button", f.Externals)
	}
	if f.Collections[0].Parts[0].Source != "elm/button" {
		t.Fatalf("part source = %q, want elm/button", f.Collections[0].Parts[0].Source)
	}
}

func TestParseExternalPartUnregisteredSourceFails(t *testing.T) {
	src := `
collections {
   group {
      name: "main";
      parts {
         part {
            name: "btn";
            type: EXTERNAL;
            source: "elm/button";
            description { state: "default" 0.0; }
         }
      }
   }
}
`
	d := parseErr(t, src)
	if d.Kind != KindReference {
		t.Fatalf("kind = %v, want Reference", d.Kind)
	}
}

// A non-EXTERNAL part's `source` names something else entirely (cursor
// styling, etc.) and must never be checked against the externals table.
func TestParseNonExternalPartSourceIsNotValidated(t *testing.T) {
	src := `
collections {
   group {
      name: "main";
      parts {
         part {
            name: "tb";
            type: TEXTBLOCK;
            source: "whatever";
            description { state: "default" 0.0; }
         }
      }
   }
}
`
	f := parse(t, src)
	if f.Collections[0].Parts[0].Source != "whatever" {
		t.Fatalf("expected source to be stored unchecked for a non-EXTERNAL part")
	}
}

func TestParseScriptIsCapturedVerbatim(t *testing.T) {
	src := `
collections {
   group {
      name: "main";
      script {
         public some_function() { return 1; }
      }
   }
}
`
	f := parse(t, src)
	c := f.Collections[0]
	if c.Script == nil {
		t.Fatalf("expected a captured script")
	}
	if !strings.Contains(c.Script.Text, "some_function") {
		t.Fatalf("script text = %q, missing source body", c.Script.Text)
	}
}

func TestParseProgramScriptAttachesToAction(t *testing.T) {
	src := `
collections {
   group {
      name: "main";
      script {
         public shared_fn() { return 0; }
      }
      programs {
         program {
            name: "run";
            signal: "load";
            source: "*";
            action: SCRIPT;
            script {
               public per_program_fn() { return 1; }
            }
         }
      }
   }
}
`
	f := parse(t, src)
	c := f.Collections[0]
	if c.Script == nil || !strings.Contains(c.Script.Text, "shared_fn") {
		t.Fatalf("expected the group's own shared script to survive untouched")
	}
	prog := c.Programs[0]
	if prog.Action.ScriptRef == nil {
		t.Fatalf("expected program action to carry its own script")
	}
	if !strings.Contains(prog.Action.ScriptRef.Text, "per_program_fn") {
		t.Fatalf("program script text = %q, missing source body", prog.Action.ScriptRef.Text)
	}
	if strings.Contains(c.Script.Text, "per_program_fn") {
		t.Fatalf("program script leaked into the collection's shared script")
	}
}

func TestParseLuaScriptIsCapturedVerbatim(t *testing.T) {
	src := `
collections {
   group {
      name: "main";
      lua_script { x = 1 }
   }
}
`
	f := parse(t, src)
	if f.Collections[0].LuaScript == nil {
		t.Fatalf("expected a captured lua script")
	}
}
