package tui

import "github.com/Comraich/sortr-sub001/models"

// NavigateTo switches the sign-in router to Page and then delivers Payload
// to it.
type NavigateTo struct {
	Page    string
	Payload any
}

// statusNotice is shown on the menu after a page finished.
type statusNotice struct {
	text string
}

type authResultMsg struct {
	res models.Result[models.Session]
}

type signedInMsg struct {
	session models.Session
}

type serverURLResultMsg struct {
	res models.Result[string]
}
