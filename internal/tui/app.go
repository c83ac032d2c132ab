package tui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/browser"
	"github.com/wdylt/wdylt/internal/library"
	"github.com/wdylt/wdylt/internal/model"
	"github.com/wdylt/wdylt/internal/tui/layout"
)

// App is the main bubbletea model for the bookmark tree.
type App struct {
	lib          *library.Library
	ctx          context.Context
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	openURL      func(string) error
	copyText     func(string) error

	// Snapshot of the library used for rendering, refreshed after every mutation
	store *model.Store

	mode     Mode
	expanded map[string]bool // folder id -> expanded, view state only
	rows     []Row
	cursor   int

	// For gg command
	lastKeyWasG bool

	filterInput textinput.Model
	filterQuery string

	dialog        Dialog
	pendingDelete *Item
	clip          *Item // cut item waiting for paste

	messageText string
	messageType MessageType

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Library      *library.Library
	Context      context.Context      // optional, defaults to context.Background
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	OpenURL      func(string) error   // optional, defaults to the system browser
	Clipboard    func(string) error   // optional, defaults to the system clipboard
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	cfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		cfg = *params.LayoutConfig
	}

	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}

	openURL := params.OpenURL
	if openURL == nil {
		openURL = browser.OpenURL
	}

	copyText := params.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	filterInput := textinput.New()
	filterInput.Placeholder = "filter..."
	filterInput.CharLimit = cfg.Input.FilterCharLimit
	filterInput.Width = cfg.Input.FilterWidth

	app := App{
		lib:          params.Library,
		ctx:          ctx,
		keys:         keys,
		styles:       styles,
		layoutConfig: cfg,
		openURL:      openURL,
		copyText:     copyText,
		mode:         ModeNormal,
		expanded:     make(map[string]bool),
		filterInput:  filterInput,
		width:        80,
		height:       24,
	}

	app.refresh()
	return app
}

// WithDimensions returns a copy of the app sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Rows returns the visible tree rows.
func (a App) Rows() []Row {
	return a.rows
}

// Message returns the current status message.
func (a App) Message() string {
	return a.messageText
}

// Dialog returns the open dialog state.
func (a App) Dialog() Dialog {
	return a.dialog
}

// IsExpanded reports whether a folder is expanded in the view.
func (a App) IsExpanded(folderID string) bool {
	return a.expanded[folderID]
}

// Selected returns the item under the cursor.
func (a App) Selected() (Item, bool) {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return Item{}, false
	}
	return a.rows[a.cursor].Item, true
}

// refresh takes a new snapshot and rebuilds the rows, keeping the cursor on
// the same item when it is still visible.
func (a *App) refresh() {
	var keepID string
	if item, ok := a.Selected(); ok {
		keepID = item.ID()
	}
	a.refreshAt(keepID)
}

// refreshAt rebuilds the rows and moves the cursor to id if it is visible.
func (a *App) refreshAt(id string) {
	a.store = a.lib.Snapshot()
	a.rows = buildRows(a.store, a.expanded, a.filterQuery)

	if id != "" {
		if i := indexOf(a.rows, id); i >= 0 {
			a.cursor = i
			return
		}
	}
	a.clampCursor()
}

func (a *App) clampCursor() {
	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageText = ""
	a.messageType = MessageInfo
}

// insertTarget returns the folder that receives a new item: an expanded
// folder under the cursor takes it, anything else adds a sibling.
func (a App) insertTarget() *string {
	if a.cursor >= len(a.rows) {
		return nil
	}
	row := a.rows[a.cursor]
	if row.Item.IsFolder() && a.expanded[row.Item.Folder.ID] {
		id := row.Item.Folder.ID
		return &id
	}
	return row.Item.ParentID()
}

// pasteTarget returns the folder under the cursor, or the folder holding the
// bookmark under the cursor.
func (a App) pasteTarget() *string {
	item, ok := a.Selected()
	if !ok {
		return nil
	}
	if item.IsFolder() {
		id := item.Folder.ID
		return &id
	}
	return item.Bookmark.FolderID
}

// expandTo opens every folder on the path to folderID.
func (a *App) expandTo(folderID *string) {
	if folderID == nil {
		return
	}
	for _, f := range a.store.ResolvePath(*folderID) {
		a.expanded[f.ID] = true
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeFilter:
			return a.updateFilter(msg)
		case ModeDialog:
			return a.updateDialog(msg)
		case ModeConfirmDelete:
			return a.updateConfirmDelete(msg)
		case ModeHelp:
			return a.updateHelp(msg)
		default:
			return a.updateNormal(msg)
		}
	}

	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false
	a.clearMessage()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if len(a.rows) > 0 && a.cursor < len(a.rows)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.rows) > 0 {
			a.cursor = len(a.rows) - 1
		}

	case key.Matches(msg, a.keys.Right):
		a.expandOrOpen()

	case key.Matches(msg, a.keys.Left):
		a.collapseOrParent()

	case key.Matches(msg, a.keys.Toggle):
		if item, ok := a.Selected(); ok && item.IsFolder() {
			a.expanded[item.Folder.ID] = !a.expanded[item.Folder.ID]
			a.refresh()
		}

	case key.Matches(msg, a.keys.AddBookmark):
		a.dialog = newBookmarkDialog(a.layoutConfig, nil, a.insertTarget())
		a.mode = ModeDialog
		return a, textinput.Blink

	case key.Matches(msg, a.keys.AddFolder):
		a.dialog = newFolderDialog(a.layoutConfig, nil, a.insertTarget())
		a.mode = ModeDialog
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Edit):
		item, ok := a.Selected()
		if !ok {
			return a, nil
		}
		if item.IsFolder() {
			a.dialog = newFolderDialog(a.layoutConfig, item.Folder, item.Folder.ParentID)
		} else {
			a.dialog = newBookmarkDialog(a.layoutConfig, item.Bookmark, item.Bookmark.FolderID)
		}
		a.mode = ModeDialog
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Delete):
		if item, ok := a.Selected(); ok {
			a.pendingDelete = &item
			a.mode = ModeConfirmDelete
		}

	case key.Matches(msg, a.keys.Cut):
		if item, ok := a.Selected(); ok {
			a.clip = &item
			a.setMessage(MessageInfo, fmt.Sprintf("Cut %q, p to paste into a folder, P for root", item.Title()))
		}

	case key.Matches(msg, a.keys.Paste):
		a.paste(a.pasteTarget())

	case key.Matches(msg, a.keys.PasteRoot):
		a.paste(nil)

	case key.Matches(msg, a.keys.TogglePrivate):
		a.togglePrivate()

	case key.Matches(msg, a.keys.YankURL):
		a.yankURL()

	case key.Matches(msg, a.keys.Filter):
		a.mode = ModeFilter
		a.filterInput.SetValue(a.filterQuery)
		a.filterInput.CursorEnd()
		a.filterInput.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.Cancel):
		a.clip = nil
		if a.filterQuery != "" {
			a.filterQuery = ""
			a.filterInput.Reset()
			a.refresh()
		}
	}

	return a, nil
}

// expandOrOpen expands a collapsed folder, steps into an expanded one, and
// opens a bookmark in the browser.
func (a *App) expandOrOpen() {
	if a.cursor >= len(a.rows) {
		return
	}
	row := a.rows[a.cursor]

	if row.Item.IsFolder() {
		id := row.Item.Folder.ID
		if !row.Expanded {
			a.expanded[id] = true
			a.refresh()
			if !row.HasChildren {
				a.setMessage(MessageInfo, "(empty folder)")
			}
			return
		}
		if a.cursor+1 < len(a.rows) {
			a.cursor++
		}
		return
	}

	b := row.Item.Bookmark
	if err := a.openURL(b.URL); err != nil {
		a.setMessage(MessageError, "Open failed: "+err.Error())
		return
	}
	if err := a.lib.MarkVisited(a.ctx, b.ID); err != nil {
		a.setMessage(MessageError, "Save failed: "+err.Error())
		return
	}
	a.refresh()
	a.setMessage(MessageSuccess, "Opened "+b.URL)
}

// collapseOrParent collapses an expanded folder, otherwise jumps to the parent row.
func (a *App) collapseOrParent() {
	if a.cursor >= len(a.rows) {
		return
	}
	row := a.rows[a.cursor]

	if row.Item.IsFolder() && row.Expanded && a.filterQuery == "" {
		a.expanded[row.Item.Folder.ID] = false
		a.refresh()
		return
	}
	if p := parentRow(a.rows, a.cursor); p >= 0 {
		a.cursor = p
	}
}

// paste moves the cut item into dest (nil for root).
func (a *App) paste(dest *string) {
	if a.clip == nil {
		a.setMessage(MessageWarning, "Nothing to paste")
		return
	}
	item := *a.clip

	var err error
	if item.IsFolder() {
		id := item.Folder.ID
		if dest != nil && (*dest == id || a.store.IsDescendant(id, *dest)) {
			a.setMessage(MessageError, errorText(model.ErrCycle))
			return
		}
		err = a.lib.MoveFolder(a.ctx, id, dest)
	} else {
		err = a.lib.MoveBookmark(a.ctx, item.Bookmark.ID, dest)
	}
	if err != nil {
		a.setMessage(MessageError, errorText(err))
		return
	}

	a.clip = nil
	a.store = a.lib.Snapshot()
	a.expandTo(dest)
	a.refreshAt(item.ID())
	a.setMessage(MessageSuccess, fmt.Sprintf("Moved %q to %s", item.Title(), a.lib.FolderPath(dest)))
}

func (a *App) togglePrivate() {
	item, ok := a.Selected()
	if !ok {
		return
	}

	var private bool
	var err error
	if item.IsFolder() {
		private, err = a.lib.ToggleFolderPrivate(a.ctx, item.Folder.ID)
	} else {
		private, err = a.lib.ToggleBookmarkPrivate(a.ctx, item.Bookmark.ID)
	}
	if err != nil {
		a.setMessage(MessageError, errorText(err))
		return
	}

	a.refresh()
	if private {
		a.setMessage(MessageSuccess, fmt.Sprintf("%q is now private", item.Title()))
	} else {
		a.setMessage(MessageSuccess, fmt.Sprintf("%q is now public", item.Title()))
	}
}

func (a *App) yankURL() {
	item, ok := a.Selected()
	if !ok || item.IsFolder() {
		a.setMessage(MessageWarning, "Select a bookmark to yank its URL")
		return
	}
	if err := a.copyText(item.Bookmark.URL); err != nil {
		a.setMessage(MessageError, "Copy failed: "+err.Error())
		return
	}
	a.setMessage(MessageSuccess, "Copied "+item.Bookmark.URL)
}

func (a App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.filterQuery = ""
		a.filterInput.Reset()
		a.filterInput.Blur()
		a.refresh()
		return a, nil

	case tea.KeyEnter:
		a.mode = ModeNormal
		a.filterInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(msg)
	a.filterQuery = a.filterInput.Value()
	a.cursor = 0
	a.refreshAt("")
	return a, cmd
}

func (a App) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		a.dialog = Dialog{}
		return a, nil

	case tea.KeyTab, tea.KeyDown:
		a.dialog.setFocus(a.dialog.Focus + 1)
		return a, nil

	case tea.KeyShiftTab, tea.KeyUp:
		a.dialog.setFocus(a.dialog.Focus - 1)
		return a, nil

	case tea.KeyEnter:
		a.submitDialog()
		return a, nil
	}

	var cmd tea.Cmd
	a.dialog, cmd = a.dialog.update(msg)
	return a, cmd
}

// submitDialog applies the dialog. On error the dialog stays open with the
// message shown inline.
func (a *App) submitDialog() {
	d := a.dialog
	if err := d.validate(); err != nil {
		a.dialog.Err = errorText(err)
		return
	}

	name := d.Value(fieldName)
	description := d.description()

	var id string
	var err error
	switch d.Kind {
	case DialogAddFolder:
		var f model.Folder
		f, err = a.lib.AddFolder(a.ctx, model.NewFolderParams{Name: name, Description: description, ParentID: d.ParentID})
		id = f.ID
	case DialogEditFolder:
		_, err = a.lib.UpdateFolder(a.ctx, d.TargetID, model.FolderUpdate{Name: &name, Description: &description})
		id = d.TargetID
	case DialogAddBookmark:
		var b model.Bookmark
		b, err = a.lib.AddBookmark(a.ctx, model.NewBookmarkParams{
			Title:       name,
			URL:         d.Value(fieldURL),
			Description: description,
			FolderID:    d.ParentID,
		})
		id = b.ID
	case DialogEditBookmark:
		url := d.Value(fieldURL)
		_, err = a.lib.UpdateBookmark(a.ctx, d.TargetID, model.BookmarkUpdate{Title: &name, URL: &url, Description: &description})
		id = d.TargetID
	}
	if err != nil {
		a.dialog.Err = errorText(err)
		return
	}

	a.mode = ModeNormal
	a.dialog = Dialog{}
	a.store = a.lib.Snapshot()
	a.expandTo(d.ParentID)
	a.refreshAt(id)

	verb := "Added"
	if d.Kind == DialogEditFolder || d.Kind == DialogEditBookmark {
		verb = "Updated"
	}
	a.setMessage(MessageSuccess, fmt.Sprintf("%s %q", verb, a.selectedTitle()))
}

func (a App) selectedTitle() string {
	if item, ok := a.Selected(); ok {
		return item.Title()
	}
	return ""
}

func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		a.deletePending()
	case "n", "esc", "q":
		a.setMessage(MessageInfo, "Delete cancelled")
	default:
		return a, nil
	}
	a.mode = ModeNormal
	a.pendingDelete = nil
	return a, nil
}

func (a *App) deletePending() {
	if a.pendingDelete == nil {
		return
	}
	item := *a.pendingDelete

	if item.IsFolder() {
		res, err := a.lib.DeleteFolder(a.ctx, item.Folder.ID)
		if err != nil {
			a.setMessage(MessageError, errorText(err))
			return
		}
		for _, id := range res.FolderIDs {
			delete(a.expanded, id)
		}
		a.setMessage(MessageSuccess, fmt.Sprintf("Deleted %q (%d folders, %d bookmarks)",
			item.Title(), len(res.FolderIDs), res.BookmarksRemoved))
	} else {
		if err := a.lib.DeleteBookmark(a.ctx, item.Bookmark.ID); err != nil {
			a.setMessage(MessageError, errorText(err))
			return
		}
		a.setMessage(MessageSuccess, fmt.Sprintf("Deleted %q", item.Title()))
	}

	a.refreshAt("")
	if a.clip != nil && !a.exists(*a.clip) {
		a.clip = nil
	}
}

// exists reports whether item is still in the current snapshot.
func (a App) exists(item Item) bool {
	if item.IsFolder() {
		return a.store.GetFolderByID(item.ID()) != nil
	}
	return a.store.GetBookmarkByID(item.ID()) != nil
}

func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "q", "esc":
		a.mode = ModeNormal
	case "ctrl+c":
		return a, tea.Quit
	}
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
