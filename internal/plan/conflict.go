package plan

// DetectConflicts annotates a plan with collision state. It is pure (the
// input slice is never mutated) and idempotent: running it twice with the
// same default yields field-for-field identical output.
//
// Two entries conflict when their full destination paths are identical,
// case-sensitively, matching what the executor's filesystem will see. Build
// already uniquifies auto-generated names per directory, so conflicts here
// only arise from independently user-edited entries converging on the same
// literal name after the plan was built.
//
// Resolution defaulting: an entry newly flagged gets autoRenameDefault; an
// entry that was already conflicted keeps its WillRename, preserving a
// user's explicit rename/overwrite choice across repeated detector passes.
// Non-conflicted entries always carry WillRename=true for uniform rendering.
func DetectConflicts(downloads []Download, autoRenameDefault bool) []Download {
	out := make([]Download, len(downloads))
	copy(out, downloads)

	counts := make(map[string]int, len(out))
	for _, d := range out {
		counts[d.Directory+"/"+d.Filename]++
	}

	for i := range out {
		if counts[out[i].Directory+"/"+out[i].Filename] > 1 {
			if !out[i].HasConflict {
				out[i].WillRename = autoRenameDefault
			}
			out[i].HasConflict = true
		} else {
			out[i].HasConflict = false
			out[i].WillRename = true
		}
	}
	return out
}
