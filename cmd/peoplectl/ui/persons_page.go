package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"peoplectl/internal/utils"
	"peoplectl/persons"
)

type personsMode int

const (
	personsModeList personsMode = iota
	personsModeForm
	personsModeConfirm
	personsModeSearch
)

type formPurpose int

const (
	formAdd formPurpose = iota
	formEdit
)

const (
	fieldName = iota
	fieldRoll
	fieldAge
	fieldGender
	fieldCount
)

// PersonsPageModel is the authenticated view: the person list plus the add
// and edit forms. The list is fully replaced on every successful fetch;
// overlapping refreshes resolve last-response-wins.
type PersonsPageModel struct {
	client *persons.Client
	styles Styles

	mode    personsMode
	purpose formPurpose

	items  []persons.Person
	cursor int

	search      string
	searchInput textinput.Model

	inputs  []textinput.Model
	focus   int
	editing persons.Person

	confirmTarget persons.Person
	deleting      map[persons.Ref]bool
	busy          bool
}

func NewPersonsPageModel(client *persons.Client, styles Styles) PersonsPageModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "name contains..."
	searchInput.CharLimit = 64

	labels := [fieldCount]string{"name", "roll", "age", "gender"}
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = labels[i]
		inputs[i].CharLimit = 64
	}

	return PersonsPageModel{
		client:      client,
		styles:      styles,
		searchInput: searchInput,
		inputs:      inputs,
		deleting:    make(map[persons.Ref]bool),
	}
}

// Reload fetches the list with the current search term. Called on entering
// the authenticated view and after every successful mutation.
func (m PersonsPageModel) Reload() tea.Cmd {
	return listCmd(m.client, m.search)
}

// Reset returns the page to a clean list state, keeping nothing from a
// previous session.
func (m *PersonsPageModel) Reset() {
	m.mode = personsModeList
	m.items = nil
	m.cursor = 0
	m.search = ""
	m.searchInput.SetValue("")
	m.deleting = make(map[persons.Ref]bool)
	m.busy = false
}

func (m PersonsPageModel) selected() (persons.Person, bool) {
	if len(m.items) == 0 || m.cursor < 0 || m.cursor >= len(m.items) {
		return persons.Person{}, false
	}
	return m.items[m.cursor], true
}

func (m PersonsPageModel) Update(msg tea.Msg) (PersonsPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case personsLoadedMsg:
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = len(m.items) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case personLoadedMsg:
		m.busy = false
		m.editing = msg.person
		m.purpose = formEdit
		m.openForm(msg.person)
		return m, nil

	case personSavedMsg:
		m.busy = false
		m.mode = personsModeList
		return m, m.Reload()

	case personDeletedMsg:
		delete(m.deleting, msg.ref)
		return m, m.Reload()

	case deleteErrMsg:
		delete(m.deleting, msg.ref)
		return m, nil

	case errMsg:
		m.busy = false
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case personsModeList:
			return m.updateList(msg)
		case personsModeConfirm:
			return m.updateConfirm(msg)
		case personsModeSearch:
			return m.updateSearch(msg)
		case personsModeForm:
			return m.updateForm(msg)
		}
	}

	return m, nil
}

func (m PersonsPageModel) updateList(msg tea.KeyMsg) (PersonsPageModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "a":
		m.purpose = formAdd
		m.openForm(persons.Person{})
	case "e":
		if p, ok := m.selected(); ok && !m.busy {
			m.busy = true
			return m, fetchPersonCmd(m.client, p.Ref())
		}
	case "d":
		if p, ok := m.selected(); ok && !m.deleting[p.Ref()] {
			m.confirmTarget = p
			m.mode = personsModeConfirm
		}
	case "r":
		return m, m.Reload()
	case "/":
		m.searchInput.SetValue(m.search)
		m.searchInput.Focus()
		m.mode = personsModeSearch
	case "ctrl+l":
		return m, logoutCmd(m.client)
	}
	return m, nil
}

func (m PersonsPageModel) updateConfirm(msg tea.KeyMsg) (PersonsPageModel, tea.Cmd) {
	switch msg.String() {
	case "y":
		ref := m.confirmTarget.Ref()
		m.mode = personsModeList
		if m.deleting[ref] {
			return m, nil
		}
		m.deleting[ref] = true
		return m, deleteCmd(m.client, ref)
	case "n", "esc":
		m.mode = personsModeList
	}
	return m, nil
}

func (m PersonsPageModel) updateSearch(msg tea.KeyMsg) (PersonsPageModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search = strings.TrimSpace(m.searchInput.Value())
		m.mode = personsModeList
		return m, m.Reload()
	case "esc":
		m.search = ""
		m.searchInput.SetValue("")
		m.mode = personsModeList
		return m, m.Reload()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *PersonsPageModel) openForm(p persons.Person) {
	m.inputs[fieldName].SetValue(p.Name)
	m.inputs[fieldRoll].SetValue(p.Roll)
	if m.purpose == formEdit {
		m.inputs[fieldAge].SetValue(strconv.Itoa(p.Age))
	} else {
		m.inputs[fieldAge].SetValue("")
	}
	m.inputs[fieldGender].SetValue(p.Gender)
	m.setFormFocus(fieldName)
	m.mode = personsModeForm
}

func (m *PersonsPageModel) setFormFocus(focus int) {
	m.focus = focus
	for i := range m.inputs {
		if i == focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m PersonsPageModel) updateForm(msg tea.KeyMsg) (PersonsPageModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = personsModeList
		return m, nil
	case "tab", "down":
		m.setFormFocus((m.focus + 1) % fieldCount)
		return m, nil
	case "shift+tab", "up":
		m.setFormFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil
	case "enter":
		if m.focus < fieldCount-1 {
			m.setFormFocus(m.focus + 1)
			return m, nil
		}
		return m.submitForm(false)
	case "ctrl+f":
		if m.purpose == formEdit {
			return m.submitForm(true)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submitForm sends the form. For an add it creates; for an edit it patches
// only the changed fields, or replaces the whole record when fullReplace is
// set.
func (m PersonsPageModel) submitForm(fullReplace bool) (PersonsPageModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	age, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldAge].Value()))
	if err != nil {
		return m, func() tea.Msg { return errMsg{err: fmt.Errorf("age must be a number")} }
	}

	in := persons.PersonInput{
		Name:   strings.TrimSpace(m.inputs[fieldName].Value()),
		Roll:   strings.TrimSpace(m.inputs[fieldRoll].Value()),
		Age:    age,
		Gender: strings.TrimSpace(m.inputs[fieldGender].Value()),
	}

	if m.purpose == formAdd {
		if err := in.Validate(); err != nil {
			return m, func() tea.Msg { return errMsg{err: err} }
		}
		m.busy = true
		return m, createCmd(m.client, in)
	}

	ref := m.editing.Ref()
	if fullReplace {
		if err := in.Validate(); err != nil {
			return m, func() tea.Msg { return errMsg{err: err} }
		}
		m.busy = true
		return m, replaceCmd(m.client, ref, in)
	}

	patch := m.changedFields(in)
	if patch.IsEmpty() {
		return m, func() tea.Msg { return errMsg{err: fmt.Errorf("nothing to update")} }
	}
	m.busy = true
	return m, patchCmd(m.client, ref, patch)
}

// changedFields diffs the form against the record being edited.
func (m PersonsPageModel) changedFields(in persons.PersonInput) persons.PersonPatch {
	var patch persons.PersonPatch
	if in.Name != m.editing.Name {
		patch.Name = utils.Ptr(in.Name)
	}
	if in.Roll != m.editing.Roll {
		patch.Roll = utils.Ptr(in.Roll)
	}
	if in.Age != m.editing.Age {
		patch.Age = utils.Ptr(in.Age)
	}
	if in.Gender != m.editing.Gender {
		patch.Gender = utils.Ptr(in.Gender)
	}
	return patch
}

func (m PersonsPageModel) View() string {
	switch m.mode {
	case personsModeForm:
		return m.viewForm()
	default:
		return m.viewList()
	}
}

func (m PersonsPageModel) viewList() string {
	var b strings.Builder

	title := "Persons"
	if m.search != "" {
		title = fmt.Sprintf("Persons matching %q", sanitizeText(m.search))
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(m.styles.Help.Render("no records"))
		b.WriteString("\n")
	}

	for i, p := range m.items {
		line := fmt.Sprintf("%-6s %-20s %-10s %4d  %s",
			p.Ref().String(),
			sanitizeText(truncate(p.Name, 20)),
			sanitizeText(truncate(p.Roll, 10)),
			p.Age,
			sanitizeText(truncate(p.Gender, 10)),
		)
		if m.deleting[p.Ref()] {
			line += "  (deleting...)"
		}
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Row.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.mode {
	case personsModeConfirm:
		prompt := fmt.Sprintf("delete %s (%s)? y/n", sanitizeText(m.confirmTarget.Name), m.confirmTarget.Ref())
		b.WriteString(m.styles.Error.Render(prompt))
	case personsModeSearch:
		b.WriteString("search: " + m.searchInput.View())
	default:
		b.WriteString(m.styles.Help.Render("↑/↓ move · a add · e edit · d delete · / search · r refresh · ctrl+l logout · ctrl+c quit"))
	}
	return b.String()
}

func (m PersonsPageModel) viewForm() string {
	var b strings.Builder

	title := "Add person"
	if m.purpose == formEdit {
		title = fmt.Sprintf("Edit person %s", m.editing.Ref())
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	labels := [fieldCount]string{"name", "roll", "age", "gender"}
	for i, input := range m.inputs {
		b.WriteString(fmt.Sprintf("%s %s\n", m.styles.FormLabel.Render(labels[i]), input.View()))
	}

	b.WriteString("\n")
	if m.purpose == formEdit {
		b.WriteString(m.styles.Help.Render("enter save changes · ctrl+f replace all fields · esc cancel"))
	} else {
		b.WriteString(m.styles.Help.Render("enter save · esc cancel"))
	}
	return b.String()
}

// truncate shortens s to at most max runes, never cutting mid-rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
