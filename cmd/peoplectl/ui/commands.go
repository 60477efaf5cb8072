package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "peoplectl/internal/errors"
	"peoplectl/persons"
)

// Messages produced by the backend commands. Failures arrive as errMsg,
// except a rejected credential which arrives as sessionExpiredMsg so the app
// can force the logout transition no matter which operation tripped it.
type (
	sessionExpiredMsg struct{}
	loginDoneMsg      struct{}
	signupDoneMsg     struct{}
	loggedOutMsg      struct{}

	personsLoadedMsg struct {
		items  []persons.Person
		search string
	}
	personLoadedMsg struct {
		person persons.Person
	}
	personSavedMsg struct {
		notice string
	}
	personDeletedMsg struct {
		ref persons.Ref
	}
	deleteErrMsg struct {
		ref persons.Ref
		err error
	}
	errMsg struct {
		err error
	}
)

func classifyErr(err error) tea.Msg {
	if errors.Is(err, apperrors.ErrSessionExpired) {
		return sessionExpiredMsg{}
	}
	return errMsg{err: err}
}

func loginCmd(client *persons.Client, creds persons.Credentials) tea.Cmd {
	return func() tea.Msg {
		if err := client.Login(context.Background(), creds); err != nil {
			return classifyErr(err)
		}
		return loginDoneMsg{}
	}
}

func signupCmd(client *persons.Client, creds persons.Credentials) tea.Cmd {
	return func() tea.Msg {
		if err := client.Signup(context.Background(), creds); err != nil {
			return classifyErr(err)
		}
		return signupDoneMsg{}
	}
}

func logoutCmd(client *persons.Client) tea.Cmd {
	return func() tea.Msg {
		if err := client.Logout(); err != nil {
			return errMsg{err: err}
		}
		return loggedOutMsg{}
	}
}

func listCmd(client *persons.Client, search string) tea.Cmd {
	return func() tea.Msg {
		items, err := client.List(context.Background(), search)
		if err != nil {
			return classifyErr(err)
		}
		return personsLoadedMsg{items: items, search: search}
	}
}

func fetchPersonCmd(client *persons.Client, ref persons.Ref) tea.Cmd {
	return func() tea.Msg {
		person, err := client.Get(context.Background(), ref)
		if err != nil {
			return classifyErr(err)
		}
		return personLoadedMsg{person: person}
	}
}

func createCmd(client *persons.Client, in persons.PersonInput) tea.Cmd {
	return func() tea.Msg {
		if _, err := client.Create(context.Background(), in); err != nil {
			return classifyErr(err)
		}
		return personSavedMsg{notice: "Person created"}
	}
}

func replaceCmd(client *persons.Client, ref persons.Ref, in persons.PersonInput) tea.Cmd {
	return func() tea.Msg {
		if _, err := client.Replace(context.Background(), ref, in); err != nil {
			return classifyErr(err)
		}
		return personSavedMsg{notice: "Person updated"}
	}
}

func patchCmd(client *persons.Client, ref persons.Ref, patch persons.PersonPatch) tea.Cmd {
	return func() tea.Msg {
		if _, err := client.Patch(context.Background(), ref, patch); err != nil {
			return classifyErr(err)
		}
		return personSavedMsg{notice: "Person updated"}
	}
}

func deleteCmd(client *persons.Client, ref persons.Ref) tea.Cmd {
	return func() tea.Msg {
		if err := client.Delete(context.Background(), ref); err != nil {
			if errors.Is(err, apperrors.ErrSessionExpired) {
				return sessionExpiredMsg{}
			}
			return deleteErrMsg{ref: ref, err: err}
		}
		return personDeletedMsg{ref: ref}
	}
}
