package edje

import "edjecc/common"

// fixupPartID rewrites a single PartID through mapping, leaving ids that
// do not appear in mapping (i.e. ids below every shifted range) untouched.
func fixupPartID(id PartID, mapping map[PartID]PartID) PartID {
	if !id.IsSet() {
		return id
	}
	if newID, ok := mapping[id]; ok {
		return newID
	}
	return id
}

func fixupProgramID(id ProgramID, mapping map[ProgramID]ProgramID) ProgramID {
	if !id.IsSet() {
		return id
	}
	if newID, ok := mapping[id]; ok {
		return newID
	}
	return id
}

// FixupPartReferences rewrites every PartID-valued field across the
// collection's parts and programs after a part is deleted or renumbered,
// per spec.md §4.4: "every dependent field enumerated in §3 must be
// rewritten, including inside every state of every part and inside
// program target lists."
func FixupPartReferences(c *Collection, mapping map[PartID]PartID) {
	for _, p := range c.Parts {
		p.ClipToID = fixupPartID(p.ClipToID, mapping)
		p.Dragable.ConfineID = fixupPartID(p.Dragable.ConfineID, mapping)
		p.Dragable.EventsFromID = fixupPartID(p.Dragable.EventsFromID, mapping)

		// p.Default aliases the first entry of p.States, so iterating
		// States alone covers it.
		for _, s := range p.States {
			fixupStatePartRefs(s, mapping)
		}
	}

	for _, prog := range c.Programs {
		prog.FilterPartID = fixupPartID(prog.FilterPartID, mapping)

		switch prog.Action.Kind {
		case common.ActionParamCopy:
			prog.Action.ParamCopySrcPartID = fixupPartID(prog.Action.ParamCopySrcPartID, mapping)
			prog.Action.ParamCopyDstPartID = fixupPartID(prog.Action.ParamCopyDstPartID, mapping)
		case common.ActionParamSet:
			prog.Action.ParamSetPartID = fixupPartID(prog.Action.ParamSetPartID, mapping)
		}

		if prog.TargetKind() == common.TargetPart {
			for i, t := range prog.TargetIDs {
				if t == int(Unset) {
					continue
				}
				prog.TargetIDs[i] = int(fixupPartID(PartID(t), mapping))
			}
		}
	}
}

func fixupStatePartRefs(s *StateDescription, mapping map[PartID]PartID) {
	s.Rel1.ToXID = fixupPartID(s.Rel1.ToXID, mapping)
	s.Rel1.ToYID = fixupPartID(s.Rel1.ToYID, mapping)
	s.Rel2.ToXID = fixupPartID(s.Rel2.ToXID, mapping)
	s.Rel2.ToYID = fixupPartID(s.Rel2.ToYID, mapping)
	s.Text.SourceID = fixupPartID(s.Text.SourceID, mapping)
	s.Text.Source2ID = fixupPartID(s.Text.Source2ID, mapping)
	s.Map.PerspectivePartID = fixupPartID(s.Map.PerspectivePartID, mapping)
	s.Map.LightPartID = fixupPartID(s.Map.LightPartID, mapping)
	s.Map.RotationCenterID = fixupPartID(s.Map.RotationCenterID, mapping)
}

// FixupProgramReferences rewrites every ProgramID-valued field after a
// program is deleted or renumbered: the `after` list of every program, and
// the target list of any program whose action targets other programs
// (ACTION_STOP).
func FixupProgramReferences(c *Collection, mapping map[ProgramID]ProgramID) {
	for _, prog := range c.Programs {
		for i, id := range prog.AfterIDs {
			prog.AfterIDs[i] = fixupProgramID(id, mapping)
		}
		if prog.TargetKind() == common.TargetProgram {
			for i, t := range prog.TargetIDs {
				if t == int(Unset) {
					continue
				}
				prog.TargetIDs[i] = int(fixupProgramID(ProgramID(t), mapping))
			}
		}
	}
}
