package types

// ChallengeDraft is the expected structure for one challenge produced by the
// generation capability, before IDs and ordering are assigned.
type ChallengeDraft struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Encouragement string `json:"encouragement"`
}

// Valid reports whether the draft carries all three required non-empty
// string fields. Drafts failing this check cause the whole batch to be
// rejected in favor of fallback content; no partial repair is attempted.
func (d ChallengeDraft) Valid() bool {
	return d.Title != "" && d.Description != "" && d.Encouragement != ""
}
