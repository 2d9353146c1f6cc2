package tui

// resultMsg carries rendered output back from a completed storage
// operation; the model switches to the result view to display it.
type resultMsg struct {
	content string
}

// noticeMsg carries a one-line outcome (confirmation, not-found,
// integrity rejection) back to the result view.
type noticeMsg struct {
	text string
	ok   bool
}

// fatalErrMsg carries an unexpected storage failure. The program quits
// and Run returns the error.
type fatalErrMsg struct {
	err error
}
