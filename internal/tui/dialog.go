package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wdylt/wdylt/internal/model"
	"github.com/wdylt/wdylt/internal/tui/layout"
)

// DialogKind selects what a dialog creates or edits.
type DialogKind int

const (
	DialogAddFolder DialogKind = iota
	DialogEditFolder
	DialogAddBookmark
	DialogEditBookmark
)

// Field indexes shared by both dialog layouts.
const (
	fieldName = 0 // folder name or bookmark title
	fieldURL  = 1 // bookmark only
)

// Dialog holds the state of an add or edit form.
type Dialog struct {
	Kind     DialogKind
	TargetID string  // item being edited
	ParentID *string // folder receiving a new item
	Labels   []string
	Inputs   []textinput.Model
	Focus    int
	Err      string
}

func newInput(placeholder string, limit, width int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.Width = width
	return input
}

// newFolderDialog builds the folder form. f is nil when adding.
func newFolderDialog(cfg layout.LayoutConfig, f *model.Folder, parentID *string) Dialog {
	d := Dialog{
		Kind:     DialogAddFolder,
		ParentID: parentID,
		Labels:   []string{"Name", "Description"},
		Inputs: []textinput.Model{
			newInput("Folder name", cfg.Input.TitleCharLimit, cfg.Input.StandardWidth),
			newInput("Optional", cfg.Input.DescriptionCharLimit, cfg.Input.StandardWidth),
		},
	}
	if f != nil {
		d.Kind = DialogEditFolder
		d.TargetID = f.ID
		d.Inputs[0].SetValue(f.Name)
		d.Inputs[1].SetValue(f.Description)
	}
	d.Inputs[0].Focus()
	return d
}

// newBookmarkDialog builds the bookmark form. b is nil when adding.
func newBookmarkDialog(cfg layout.LayoutConfig, b *model.Bookmark, folderID *string) Dialog {
	d := Dialog{
		Kind:     DialogAddBookmark,
		ParentID: folderID,
		Labels:   []string{"Title", "URL", "Description"},
		Inputs: []textinput.Model{
			newInput("Defaults to the URL", cfg.Input.TitleCharLimit, cfg.Input.StandardWidth),
			newInput("https://...", cfg.Input.URLCharLimit, cfg.Input.StandardWidth),
			newInput("Optional", cfg.Input.DescriptionCharLimit, cfg.Input.StandardWidth),
		},
	}
	if b != nil {
		d.Kind = DialogEditBookmark
		d.TargetID = b.ID
		d.Inputs[0].SetValue(b.Title)
		d.Inputs[1].SetValue(b.URL)
		d.Inputs[2].SetValue(b.Description)
	}
	d.Inputs[0].Focus()
	return d
}

// Title returns the dialog heading.
func (d Dialog) Title() string {
	switch d.Kind {
	case DialogAddFolder:
		return "Add Folder"
	case DialogEditFolder:
		return "Edit Folder"
	case DialogAddBookmark:
		return "Add Bookmark"
	default:
		return "Edit Bookmark"
	}
}

// IsFolder reports whether the dialog edits a folder.
func (d Dialog) IsFolder() bool {
	return d.Kind == DialogAddFolder || d.Kind == DialogEditFolder
}

// Value returns the current text of field i.
func (d Dialog) Value(i int) string {
	if i < 0 || i >= len(d.Inputs) {
		return ""
	}
	return d.Inputs[i].Value()
}

// description is always the last field.
func (d Dialog) description() string {
	return d.Value(len(d.Inputs) - 1)
}

// setFocus moves focus to field i, wrapping around.
func (d *Dialog) setFocus(i int) {
	n := len(d.Inputs)
	i = ((i % n) + n) % n
	d.Inputs[d.Focus].Blur()
	d.Focus = i
	d.Inputs[d.Focus].Focus()
}

// update forwards a message to the focused input.
func (d Dialog) update(msg tea.Msg) (Dialog, tea.Cmd) {
	var cmd tea.Cmd
	d.Inputs[d.Focus], cmd = d.Inputs[d.Focus].Update(msg)
	return d, cmd
}

// validate checks required fields before anything is sent to the library.
func (d Dialog) validate() error {
	if d.IsFolder() {
		if strings.TrimSpace(d.Value(fieldName)) == "" {
			return model.ErrEmptyName
		}
		return nil
	}
	if strings.TrimSpace(d.Value(fieldURL)) == "" {
		return model.ErrEmptyURL
	}
	return nil
}

// errorText turns library errors into short inline messages.
func errorText(err error) string {
	switch {
	case errors.Is(err, model.ErrEmptyName):
		return "Name is required"
	case errors.Is(err, model.ErrEmptyURL):
		return "URL is required"
	case errors.Is(err, model.ErrCycle):
		return "A folder cannot be moved into itself or its subfolders"
	case errors.Is(err, model.ErrFolderNotFound):
		return "Folder no longer exists"
	case errors.Is(err, model.ErrBookmarkNotFound):
		return "Bookmark no longer exists"
	default:
		return err.Error()
	}
}
