package screens

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/hearthhq/hearth/internal/api"
	"github.com/hearthhq/hearth/internal/download"
	"github.com/hearthhq/hearth/internal/tui"
	"github.com/hearthhq/hearth/internal/tui/components"
	"github.com/hearthhq/hearth/internal/tui/form"
	"github.com/hearthhq/hearth/internal/tui/notify"
)

// challengeSettleDelay is how long after the challenge opens before the
// password field is focused, so the keystroke that opened it never leaks in.
const challengeSettleDelay = 150 * time.Millisecond

// Documents is the household document browser: a navigable list with
// password-gated downloads and confirm-gated deletion.
type Documents struct {
	styles  *tui.StyleSet
	client  *api.Client
	destDir string

	list         components.DocList
	docs         []api.Document
	gate         download.Gate
	password     *form.Field
	challengeKbd components.KbdHint

	loading bool

	// pendingDelete maps an open confirm dialog to the document it is about.
	pendingDelete struct {
		dialogID string
		docID    string
		name     string
	}
}

type documentsLoadedMsg struct {
	docs []api.Document
	err  error
}

type focusChallengeMsg struct {
	generation int
}

type verifyResultMsg struct {
	generation int
	err        error
}

type downloadDoneMsg struct {
	name string
	path string
	err  error
}

type deleteResultMsg struct {
	name string
	err  error
}

// NewDocuments creates the document browser screen. Downloads are written
// under destDir.
func NewDocuments(styles *tui.StyleSet, client *api.Client, destDir string) *Documents {
	list := components.NewDocList(
		styles.Cursor, styles.SelectedItem, styles.UnselectedItem, styles.DimTxt,
		styles.KbdKey, styles.KbdDesc,
	)

	kbd := components.NewKbdHint(styles.KbdKey, styles.KbdDesc)
	kbd.Bindings = components.ChallengeHints()

	return &Documents{
		styles:       styles,
		client:       client,
		destDir:      destDir,
		list:         list,
		password:     form.NewSecretField("document-password", "Password", form.Required()),
		challengeKbd: kbd,
	}
}

// Title returns the screen title.
func (d *Documents) Title() string { return "Documents" }

// Init loads the document index.
func (d *Documents) Init() tea.Cmd {
	d.loading = true
	return d.fetchCmd()
}

// Update handles input and async results for the document browser.
func (d *Documents) Update(msg tea.Msg) (tui.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case documentsLoadedMsg:
		d.loading = false
		if msg.err != nil {
			return d, notify.Show("Could not load documents. Please try again.", notify.KindError)
		}
		d.docs = msg.docs
		d.list.SetItems(docItems(msg.docs))
		return d, nil

	case focusChallengeMsg:
		// Focus only the challenge this tick was scheduled for.
		if msg.generation == d.gate.Generation() && d.gate.State() == download.StateChallengeOpen {
			return d, d.password.Focus()
		}
		return d, nil

	case verifyResultMsg:
		return d, d.apply(d.gate.Resolve(msg.generation, msg.err))

	case downloadDoneMsg:
		if msg.err != nil {
			return d, notify.Show(fmt.Sprintf("Download of %s failed.", msg.name), notify.KindError)
		}
		return d, notify.Show(fmt.Sprintf("Saved %s to %s.", msg.name, msg.path), notify.KindSuccess)

	case deleteResultMsg:
		if msg.err != nil {
			return d, notify.Show(fmt.Sprintf("Could not delete %s.", msg.name), notify.KindError)
		}
		return d, tea.Batch(
			notify.Show(fmt.Sprintf("Deleted %s.", msg.name), notify.KindSuccess),
			d.fetchCmd(),
		)

	case notify.ResolvedMsg:
		if msg.ID != d.pendingDelete.dialogID || d.pendingDelete.dialogID == "" {
			return d, nil
		}
		docID, name := d.pendingDelete.docID, d.pendingDelete.name
		d.pendingDelete.dialogID = ""
		if !msg.Confirmed {
			return d, nil
		}
		return d, d.deleteCmd(docID, name)

	case tea.KeyMsg:
		if d.gate.State() != download.StateIdle {
			return d, d.updateChallenge(msg)
		}
		return d, d.updateList(msg)
	}

	return d, nil
}

// updateList handles keys while no challenge is open.
func (d *Documents) updateList(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		item, ok := d.selectedDoc()
		if !ok {
			return nil
		}
		return d.apply(d.gate.Activate(download.Item{
			Name:             item.Name,
			RequiresPassword: item.RequiresPassword,
			VerifyURL:        item.VerifyURL,
			DownloadURL:      item.DownloadURL,
		}))

	case "x":
		item, ok := d.selectedDoc()
		if !ok {
			return nil
		}
		d.pendingDelete.dialogID = uuid.NewString()
		d.pendingDelete.docID = item.ID
		d.pendingDelete.name = item.Name
		return notify.RequestConfirm(notify.ConfirmRequest{
			ID:           d.pendingDelete.dialogID,
			Title:        "Delete document",
			Message:      fmt.Sprintf("Delete %s? This cannot be undone.", item.Name),
			ConfirmLabel: "Delete",
			Variant:      notify.VariantDanger,
		})

	case "r":
		d.loading = true
		return d.fetchCmd()
	}

	var cmd tea.Cmd
	d.list, cmd = d.list.Update(msg)
	return cmd
}

// updateChallenge handles keys while the password challenge is open. Keys
// other than cancel are ignored while verification is in flight.
func (d *Documents) updateChallenge(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		return d.apply(d.gate.Cancel())
	}
	if d.gate.State() == download.StateVerifying {
		return nil
	}

	switch msg.String() {
	case "enter":
		return d.apply(d.gate.Submit(d.password.Value()))
	case "ctrl+t":
		d.password.ToggleVisibility()
		return nil
	}
	return d.password.Update(msg)
}

// apply carries out the gate's instruction.
func (d *Documents) apply(act download.Action) tea.Cmd {
	if act.ClearPassword {
		d.password.Reset()
	}

	switch act.Kind {
	case download.ActionOpenChallenge:
		gen := d.gate.Generation()
		return tea.Tick(challengeSettleDelay, func(time.Time) tea.Msg {
			return focusChallengeMsg{generation: gen}
		})

	case download.ActionVerify:
		return d.verifyCmd(act.URL, act.Password, act.Generation)

	case download.ActionDownload:
		name := "document"
		if item, ok := d.selectedDoc(); ok {
			name = item.Name
		}
		return tea.Batch(
			notify.Show(fmt.Sprintf("Downloading %s...", name), notify.KindInfo),
			d.downloadCmd(act.URL, name),
		)
	}

	if act.FocusPassword {
		return d.password.Focus()
	}
	return nil
}

func (d *Documents) selectedDoc() (api.Document, bool) {
	item, ok := d.list.Selected()
	if !ok {
		return api.Document{}, false
	}
	for _, doc := range d.docs {
		if doc.ID == item.ID {
			return doc, true
		}
	}
	return api.Document{}, false
}

func (d *Documents) fetchCmd() tea.Cmd {
	client := d.client
	return func() tea.Msg {
		docs, err := client.ListDocuments(context.Background())
		return documentsLoadedMsg{docs: docs, err: err}
	}
}

func (d *Documents) verifyCmd(verifyURL, password string, generation int) tea.Cmd {
	client := d.client
	return func() tea.Msg {
		err := client.VerifyDocumentPassword(context.Background(), verifyURL, password)
		return verifyResultMsg{generation: generation, err: err}
	}
}

func (d *Documents) downloadCmd(downloadURL, name string) tea.Cmd {
	client := d.client
	destDir := d.destDir
	return func() tea.Msg {
		path, err := client.DownloadDocument(context.Background(), downloadURL, destDir)
		return downloadDoneMsg{name: name, path: path, err: err}
	}
}

func (d *Documents) deleteCmd(id, name string) tea.Cmd {
	client := d.client
	return func() tea.Msg {
		err := client.DeleteDocument(context.Background(), id)
		return deleteResultMsg{name: name, err: err}
	}
}

// Gate exposes the challenge state machine for tests.
func (d *Documents) Gate() *download.Gate { return &d.gate }

// Password exposes the challenge field for tests.
func (d *Documents) Password() *form.Field { return d.password }

// View renders the list and, when open, the password challenge modal.
func (d *Documents) View(width int) string {
	var out string
	out += "  " + d.styles.Title.Render("Household documents") + "\n\n"

	if d.loading {
		out += "  " + d.styles.DimTxt.Render("Loading documents...") + "\n"
		return out
	}

	out += d.list.View(width) + "\n"

	if d.gate.State() != download.StateIdle {
		out += "\n" + d.renderChallenge(width)
	}
	return out
}

func (d *Documents) renderChallenge(width int) string {
	name := ""
	if item := d.gate.Active(); item != nil {
		name = item.Name
	}

	inputWidth := 36
	d.password.SetWidth(inputWidth - 4)

	body := d.styles.ModalTitle.Render("Password required") + "\n" +
		d.styles.SecondaryTxt.Render(name) + "\n\n" +
		d.styles.ActiveBorder.Width(inputWidth).Render(d.password.InputView()) + "\n"

	if msg := d.gate.Err(); msg != "" {
		body += d.styles.FieldError.Render("✗ "+msg) + "\n"
	}
	if d.gate.State() == download.StateVerifying {
		body += d.styles.DimTxt.Render("Verifying...") + "\n"
	}
	body += "\n" + d.challengeKbd.View()

	box := d.styles.ModalBox.Render(body)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

// docItems maps server documents into list rows.
func docItems(docs []api.Document) []components.DocItem {
	items := make([]components.DocItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, components.DocItem{
			ID:       doc.ID,
			Name:     doc.Name,
			Category: doc.Category,
			Size:     humanSize(doc.SizeBytes),
			Locked:   doc.RequiresPassword,
		})
	}
	return items
}

// humanSize renders a byte count the way the web app's document table does.
func humanSize(n int64) string {
	switch {
	case n <= 0:
		return ""
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	case n < 1024*1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	default:
		return fmt.Sprintf("%.1f GB", float64(n)/(1024*1024*1024))
	}
}
