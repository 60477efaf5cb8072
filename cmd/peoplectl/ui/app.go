package ui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"peoplectl/apiclient"
	apperrors "peoplectl/internal/errors"
	"peoplectl/persons"
	"peoplectl/session"
)

type page int

const (
	pageLogin page = iota
	pagePersons
)

// App is the root model. It owns the two pages and the notice line, and
// performs the only two state transitions there are: login page to persons
// page on successful login, and the reverse on logout or any 401.
type App struct {
	client   *persons.Client
	sessions session.Store
	styles   Styles

	page    page
	login   LoginPageModel
	persons PersonsPageModel
	notice  NoticeModel

	appName string
	width   int
	height  int
}

func NewApp(appName string, client *persons.Client, sessions session.Store) App {
	styles := DefaultStyles()

	app := App{
		client:   client,
		sessions: sessions,
		styles:   styles,
		login:    NewLoginPageModel(client, styles),
		persons:  NewPersonsPageModel(client, styles),
		notice:   NewNoticeModel(styles),
		appName:  appName,
	}

	// A stored token means we start authenticated; whether it is still
	// accepted is discovered on the first backend call.
	if _, ok := sessions.Token(); ok {
		app.page = pagePersons
	}
	return app
}

func (a App) Init() tea.Cmd {
	if a.page == pagePersons {
		return a.persons.Reload()
	}
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			// Plain q quits only from the list, where no input is focused.
			if a.page == pagePersons && a.persons.mode == personsModeList {
				return a, tea.Quit
			}
		}

	case noticeExpiredMsg:
		a.notice.Update(msg)
		return a, nil

	case sessionExpiredMsg:
		a.page = pageLogin
		a.login.Reset()
		a.persons.Reset()
		return a, a.notice.Show("Session expired. Please log in again.", noticeError)

	case loggedOutMsg:
		a.page = pageLogin
		a.login.Reset()
		a.persons.Reset()
		return a, a.notice.Show("Logged out", noticeSuccess)

	case loginDoneMsg:
		var cmds []tea.Cmd
		a.login, _ = a.login.Update(msg)
		a.page = pagePersons
		cmds = append(cmds, a.notice.Show("Logged in", noticeSuccess), a.persons.Reload())
		return a, tea.Batch(cmds...)

	case signupDoneMsg:
		a.login, _ = a.login.Update(msg)
		return a, a.notice.Show("Account created. You can now log in.", noticeSuccess)

	case personSavedMsg:
		noticeCmd := a.notice.Show(msg.notice, noticeSuccess)
		var pageCmd tea.Cmd
		a.persons, pageCmd = a.persons.Update(msg)
		return a, tea.Batch(noticeCmd, pageCmd)

	case personDeletedMsg:
		noticeCmd := a.notice.Show("Person deleted", noticeSuccess)
		var pageCmd tea.Cmd
		a.persons, pageCmd = a.persons.Update(msg)
		return a, tea.Batch(noticeCmd, pageCmd)

	case deleteErrMsg:
		noticeCmd := a.notice.Show(errorText(msg.err), noticeError)
		var pageCmd tea.Cmd
		a.persons, pageCmd = a.persons.Update(msg)
		return a, tea.Batch(noticeCmd, pageCmd)

	case errMsg:
		noticeCmd := a.notice.Show(errorText(msg.err), noticeError)
		var pageCmd tea.Cmd
		if a.page == pagePersons {
			a.persons, pageCmd = a.persons.Update(msg)
		} else {
			a.login, pageCmd = a.login.Update(msg)
		}
		return a, tea.Batch(noticeCmd, pageCmd)
	}

	var cmd tea.Cmd
	if a.page == pagePersons {
		a.persons, cmd = a.persons.Update(msg)
	} else {
		a.login, cmd = a.login.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Header.Render(a.appName))
	b.WriteString("\n\n")

	if a.page == pagePersons {
		b.WriteString(a.persons.View())
	} else {
		b.WriteString(a.login.View())
	}

	if notice := a.notice.View(); notice != "" {
		b.WriteString("\n\n")
		b.WriteString(notice)
	}
	return b.String()
}

// errorText renders an operation failure for the notice line, preferring the
// server-provided message when there is one.
func errorText(err error) string {
	if errors.Is(err, apperrors.ErrSessionExpired) {
		return "Session expired. Please log in again."
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return sanitizeText(apiErr.Error())
	}

	var decodeErr *apiclient.DecodeError
	if errors.As(err, &decodeErr) {
		return "Server sent an unexpected response"
	}

	return sanitizeText(err.Error())
}
