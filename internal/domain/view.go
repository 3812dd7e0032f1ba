package domain

// NoticeID identifies an inline message region on the page.
type NoticeID string

// Well-known notices.
const (
	NoticeSaved        NoticeID = "saved"
	NoticeAnotherSaved NoticeID = "another-saved-msg"
	NoticeBatchSaved   NoticeID = "batch-saved"
)

// Notice is an inline message. Persistent notices are never auto-hidden.
type Notice struct {
	ID         NoticeID
	Text       string
	Persistent bool
}

// ControlID identifies a button or other enable-able control.
type ControlID string

// Well-known controls.
const (
	ControlGenerateList ControlID = "new-list"
	ControlCreateList   ControlID = "create-list"
	ControlSubmit       ControlID = "submit"
	ControlCook         ControlID = "cook-recipe"
	ControlSelectAll    ControlID = "select-all"
)

// CardControl is the add button of a single recipe card.
func CardControl(id ItemID) ControlID { return ControlID("add-" + string(id)) }
