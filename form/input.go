package form

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// textInput is an editable single line of text.
type textInput struct {
	value     []rune
	cursor    int
	maxLength int
}

func newTextInput(value string, maxLength int) textInput {
	if maxLength <= 0 {
		maxLength = 200
	}
	runes := []rune(value)
	return textInput{
		value:     runes,
		cursor:    len(runes),
		maxLength: maxLength,
	}
}

// update applies an editing key, reporting whether the value changed.
func (ti textInput) update(msg tea.KeyPressMsg) (textInput, bool) {

	old := string(ti.value)

	switch msg.String() {
	case "backspace":
		if ti.cursor > 0 {
			ti.value = append(ti.value[:ti.cursor-1:ti.cursor-1], ti.value[ti.cursor:]...)
			ti.cursor--
		}
	case "delete":
		if ti.cursor < len(ti.value) {
			ti.value = append(ti.value[:ti.cursor:ti.cursor], ti.value[ti.cursor+1:]...)
		}
	case "left":
		if ti.cursor > 0 {
			ti.cursor--
		}
	case "right":
		if ti.cursor < len(ti.value) {
			ti.cursor++
		}
	case "home", "ctrl+a":
		ti.cursor = 0
	case "end", "ctrl+e":
		ti.cursor = len(ti.value)
	case "ctrl+u":
		ti.value = nil
		ti.cursor = 0
	default:
		text := []rune(msg.Text)
		if len(text) > 0 && len(ti.value)+len(text) <= ti.maxLength {
			value := make([]rune, 0, len(ti.value)+len(text))
			value = append(value, ti.value[:ti.cursor]...)
			value = append(value, text...)
			value = append(value, ti.value[ti.cursor:]...)
			ti.value = value
			ti.cursor += len(text)
		}
	}

	return ti, string(ti.value) != old
}

func (ti textInput) Value() string {
	return string(ti.value)
}

// render shows the value, with a cursor mark when focused.
func (ti textInput) render(focused bool) string {

	if !focused {
		return string(ti.value)
	}

	var bld strings.Builder
	bld.WriteString(string(ti.value[:ti.cursor]))
	bld.WriteString("▏")
	bld.WriteString(string(ti.value[ti.cursor:]))
	return bld.String()
}

// choice cycles through a fixed list of options.
type choice struct {
	options  []string
	selected int
}

func newChoice(options []string, value string) choice {

	selected := 0
	for i, opt := range options {
		if opt == value {
			selected = i
		}
	}
	return choice{options: options, selected: selected}
}

func (ch choice) update(msg tea.KeyPressMsg) (choice, bool) {

	switch msg.String() {
	case "left", "h":
		ch.selected--
		if ch.selected < 0 {
			ch.selected = len(ch.options) - 1
		}
		return ch, true
	case "right", "l", "space":
		ch.selected++
		if ch.selected >= len(ch.options) {
			ch.selected = 0
		}
		return ch, true
	}
	return ch, false
}

func (ch choice) Value() string {
	if ch.selected < 0 || ch.selected >= len(ch.options) {
		return ""
	}
	return ch.options[ch.selected]
}

func (ch choice) render() string {

	parts := make([]string, len(ch.options))
	for i, opt := range ch.options {
		mark := "( )"
		if i == ch.selected {
			mark = "(•)"
		}
		parts[i] = mark + " " + strings.ToLower(opt)
	}
	return strings.Join(parts, "  ")
}
