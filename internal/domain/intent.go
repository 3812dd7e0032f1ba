package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentList
	IntentToggle
	IntentSelectAll
	IntentSetField // set quantity or unit of a selected row
	IntentSubmit
	IntentActivate // single-item immediate action ("add 42")
	IntentRelease  // acknowledge a held rejection
	IntentGenerateList
	IntentStatus
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentList:
		return "list"
	case IntentToggle:
		return "toggle"
	case IntentSelectAll:
		return "select_all"
	case IntentSetField:
		return "set_field"
	case IntentSubmit:
		return "submit"
	case IntentActivate:
		return "activate"
	case IntentRelease:
		return "release"
	case IntentGenerateList:
		return "generate_list"
	case IntentStatus:
		return "status"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user action.
type Intent struct {
	Type   IntentType
	Target string // row number or item id
	Field  Field  // IntentSetField only
	Value  string // IntentSetField value, or raw input for unknown
}
