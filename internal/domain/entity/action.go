package entity

// Action is a candidate tool/action descriptor returned by the
// action-selection collaborator.
type Action struct {
	Name        string
	Description string
}

// ActionPart is one named section of a (possibly multi-part) action output.
// Parts keep their order so reports are reproducible.
type ActionPart struct {
	Key   string
	Value string
}
