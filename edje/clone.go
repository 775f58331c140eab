package edje

// cloneStateDescription deep-copies a StateDescription so mutating the
// clone never affects the original, following the same value-semantics-
// plus-explicit-slice-copy approach as fb2/clone.go's clone* family: a
// struct literal copy handles every scalar field for free (Go struct
// assignment is already a deep copy for value types), and only slice
// fields need their own fresh backing array.
func cloneStateDescription(s *StateDescription) StateDescription {
	clone := *s
	clone.Image.Tweens = cloneImageTweens(s.Image.Tweens)
	clone.ExternalParams = cloneExternalParams(s.ExternalParams)
	return clone
}

func cloneImageTweens(in []ImageTween) []ImageTween {
	if in == nil {
		return nil
	}
	out := make([]ImageTween, len(in))
	copy(out, in)
	return out
}

func cloneExternalParams(in []ExternalParam) []ExternalParam {
	if in == nil {
		return nil
	}
	out := make([]ExternalParam, len(in))
	copy(out, in)
	return out
}
