package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"peoplectl/persons"
)

type loginMode int

const (
	modeLogin loginMode = iota
	modeSignup
)

// LoginPageModel is the unauthenticated view: a username/password form that
// either logs in or signs up.
type LoginPageModel struct {
	client   *persons.Client
	styles   Styles
	mode     loginMode
	username textinput.Model
	password textinput.Model
	focus    int
	busy     bool
}

func NewLoginPageModel(client *persons.Client, styles Styles) LoginPageModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	return LoginPageModel{
		client:   client,
		styles:   styles,
		username: username,
		password: password,
	}
}

// Reset clears the form, returning the page to a fresh login state.
func (m *LoginPageModel) Reset() {
	m.mode = modeLogin
	m.username.SetValue("")
	m.password.SetValue("")
	m.busy = false
	m.setFocus(0)
}

func (m *LoginPageModel) setFocus(focus int) {
	m.focus = focus
	if focus == 0 {
		m.username.Focus()
		m.password.Blur()
	} else {
		m.username.Blur()
		m.password.Focus()
	}
}

func (m LoginPageModel) Update(msg tea.Msg) (LoginPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.busy = false
		return m, nil
	case signupDoneMsg:
		m.busy = false
		m.mode = modeLogin
		m.password.SetValue("")
		m.setFocus(0)
		return m, nil
	case errMsg:
		m.busy = false
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.setFocus((m.focus + 1) % 2)
			return m, nil
		case "ctrl+n":
			if m.mode == modeLogin {
				m.mode = modeSignup
			} else {
				m.mode = modeLogin
			}
			return m, nil
		case "enter":
			if m.focus == 0 {
				m.setFocus(1)
				return m, nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m LoginPageModel) submit() (LoginPageModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	creds := persons.Credentials{
		Username: strings.TrimSpace(m.username.Value()),
		Password: m.password.Value(),
	}
	if err := creds.Validate(); err != nil {
		return m, func() tea.Msg { return errMsg{err: err} }
	}

	m.busy = true
	if m.mode == modeSignup {
		return m, signupCmd(m.client, creds)
	}
	return m, loginCmd(m.client, creds)
}

func (m LoginPageModel) View() string {
	var b strings.Builder

	title := "Log in"
	if m.mode == modeSignup {
		title = "Sign up"
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %s\n", m.styles.FormLabel.Render("user"), m.username.View()))
	b.WriteString(fmt.Sprintf("%s %s\n", m.styles.FormLabel.Render("pass"), m.password.View()))

	b.WriteString("\n")
	if m.busy {
		b.WriteString(m.styles.Help.Render("working..."))
	} else {
		b.WriteString(m.styles.Help.Render("enter submit · tab switch field · ctrl+n toggle login/signup · ctrl+c quit"))
	}
	return b.String()
}
