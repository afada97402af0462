// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/ezwrite/internal/config"
	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/editing"
	"github.com/zjrosen/ezwrite/internal/flags"
	"github.com/zjrosen/ezwrite/internal/importer"
	"github.com/zjrosen/ezwrite/internal/keys"
	"github.com/zjrosen/ezwrite/internal/layout"
	"github.com/zjrosen/ezwrite/internal/log"
	"github.com/zjrosen/ezwrite/internal/pubsub"
	"github.com/zjrosen/ezwrite/internal/state"
	"github.com/zjrosen/ezwrite/internal/ui/help"
	"github.com/zjrosen/ezwrite/internal/ui/outline"
	"github.com/zjrosen/ezwrite/internal/ui/styles"
	"github.com/zjrosen/ezwrite/internal/ui/toaster"
	"github.com/zjrosen/ezwrite/internal/watcher"
)

// Options configures a Model.
type Options struct {
	Path       string // file being edited
	ConfigPath string // where ctrl+b persists the status bar setting; empty disables saving
	Config     config.Config
	Tracer     trace.Tracer

	Store *state.Store  // remembered cursor positions; nil disables them
	Zones *zone.Manager // mouse zones for the outline; nil disables outline clicks
	Debug bool          // show the latest log line in the status bar
}

type layoutMsg struct{ gen uint64 }

type blinkMsg struct{}

type sourceChangedMsg struct{ removed bool }

// Model is the root application state.
type Model struct {
	opts   Options
	cfg    config.Config
	flags  *flags.Registry
	loader *importer.Loader
	tracer trace.Tracer

	ed       *editing.Editor
	surface  *surface
	sched    *layout.Scheduler
	relayout *relayout
	blink    *layout.BlinkState

	ctx     context.Context
	cancel  context.CancelFunc
	broker  *pubsub.Broker[editing.Change]
	changes *pubsub.Listener[editing.Change]
	logs    *pubsub.Listener[log.Entry]

	watchCh <-chan watcher.Change

	toaster toaster.Model
	help    help.Model
	outline outline.Model
	zones   *zone.Manager

	width      int
	height     int
	scroll     int
	showStatus bool
	press      *editing.DragSelect // press half of a mouse drag
	lastChange string
	lastLog    string
}

// New loads opts.Path and builds the model around it.
func New(opts Options) (Model, error) {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("ezwrite")
	}
	ctx, cancel := context.WithCancel(context.Background())

	loader := importer.NewLoader(importer.WithTracer(tracer))
	tree, root, err := loader.Load(ctx, opts.Path)
	if err != nil {
		cancel()
		return Model{}, fmt.Errorf("loading %s: %w", opts.Path, err)
	}

	cfg := opts.Config
	m := Model{
		opts:       opts,
		cfg:        cfg,
		flags:      flags.New(cfg.Flags),
		loader:     loader,
		tracer:     tracer,
		blink:      layout.NewBlinkState(cfg.Editor.CursorColours...),
		ctx:        ctx,
		cancel:     cancel,
		broker:     pubsub.NewBroker[editing.Change](),
		toaster:    toaster.New(),
		help:       help.New(keys.Editor),
		outline:    outline.New(opts.Zones),
		zones:      opts.Zones,
		showStatus: cfg.UI.ShowStatusBar,
	}
	m.changes = pubsub.Listen[editing.Change](ctx, m.broker)
	if opts.Debug {
		m.logs = log.NewListener(ctx)
	}

	m.surface = newSurface(tree, root, cfg.UI.ParagraphIndent, tracer)
	m.sched = layout.NewScheduler(m.surface.layout)
	m.relayout = &relayout{sched: m.sched}
	m.ed = editing.New(tree, root,
		editing.WithJoinSpace(cfg.Editor.JoinSpace),
		editing.WithGeometry(m.surface.flow),
		editing.WithRelayout(m.relayout),
		editing.WithBroker(m.broker),
		editing.WithTracer(tracer),
	)
	m.restorePosition()

	if cfg.UI.WatchSource {
		m.startWatcher()
	}
	return m, nil
}

func (m *Model) startWatcher() {
	ch, err := watcher.Watch(m.ctx, m.opts.Path, watcher.DefaultDebounce)
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Failed to start watcher", err, "path", m.opts.Path)
		return
	}
	m.watchCh = ch
}

// restorePosition puts the cursor back where it was when the file was last
// closed. Without a store, or with restore_position off, it does nothing.
func (m *Model) restorePosition() {
	if m.opts.Store == nil || !m.cfg.Editor.RestorePosition {
		return
	}
	pos, ok, err := m.opts.Store.Lookup(m.ctx, m.storeKey())
	if err != nil {
		log.ErrorErr(log.CatState, "Failed to look up position", err, "path", m.opts.Path)
		return
	}
	if !ok {
		return
	}
	if err := state.Restore(m.ed.Tree(), m.ed.Root(), pos); err != nil {
		log.ErrorErr(log.CatState, "Failed to restore position", err, "path", m.opts.Path)
		return
	}
	log.Debug(log.CatState, "restored position", "path", m.opts.Path, "leaf", pos.Leaf, "index", pos.Index)
}

// savePosition remembers the focused token for the next session.
func (m *Model) savePosition() {
	if m.opts.Store == nil || !m.cfg.Editor.RestorePosition {
		return
	}
	pos, ok := state.Capture(m.ed.Tree(), m.ed.Root())
	if !ok {
		return
	}
	// The model context may already be cancelled on shutdown.
	if err := m.opts.Store.Save(context.Background(), m.storeKey(), pos); err != nil {
		log.ErrorErr(log.CatState, "Failed to save position", err, "path", m.opts.Path)
	}
}

func (m *Model) storeKey() string {
	if abs, err := filepath.Abs(m.opts.Path); err == nil {
		return abs
	}
	return m.opts.Path
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.changes.Next()}
	if m.cfg.Editor.BlinkInterval > 0 {
		cmds = append(cmds, m.blinkCmd())
	}
	if m.watchCh != nil {
		cmds = append(cmds, m.waitForSource())
	}
	if m.logs != nil {
		cmds = append(cmds, m.logs.Next())
	}
	return tea.Batch(cmds...)
}

func (m Model) blinkCmd() tea.Cmd {
	return tea.Tick(m.cfg.Editor.BlinkInterval, func(time.Time) tea.Msg { return blinkMsg{} })
}

func (m Model) waitForSource() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch, ctx := m.watchCh, m.ctx
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-ch:
			if !ok {
				return nil
			}
			return sourceChangedMsg{removed: c.Removed}
		}
	}
}

// layoutCmd schedules the pending layout request, or runs it at once when
// debouncing is off.
func (m Model) layoutCmd() tea.Cmd {
	if !m.sched.Pending() {
		return nil
	}
	if m.cfg.Editor.LayoutDebounce <= 0 {
		m.sched.RunNow()
		return nil
	}
	gen := m.relayout.gen
	return tea.Tick(m.cfg.Editor.LayoutDebounce, func(time.Time) tea.Msg { return layoutMsg{gen: gen} })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.surface.width = m.textWidth()
		m.help = m.help.SetWidth(msg.Width)
		m.sched.RunNow()
		m.follow()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case layoutMsg:
		if m.sched.Fire(msg.gen) {
			m.follow()
		}
		return m, nil

	case blinkMsg:
		m.blink.Next()
		return m, m.blinkCmd()

	case sourceChangedMsg:
		return m.handleSourceChanged(msg.removed)

	case pubsub.Event[editing.Change]:
		m.lastChange = msg.Payload.Command
		if msg.Type == pubsub.StructureEvent || msg.Type == pubsub.ReloadEvent {
			m.outline = m.outline.SetEntries(outline.Build(m.ed.Tree(), m.ed.Root()))
		}
		return m, m.changes.Next()

	case log.LogEvent:
		m.lastLog = msg.Payload.Summary()
		return m, m.logs.Next()

	case outline.JumpMsg:
		return m.execute(editing.PlaceCursor{Token: msg.Target})

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := keys.Editor

	if key.Matches(msg, k.Quit) {
		m.savePosition()
		return m, tea.Quit
	}

	if m.help.Visible() {
		if key.Matches(msg, k.Help, k.Deselect) {
			m.help = m.help.Hide()
		}
		return m, nil
	}

	if m.outline.Visible() {
		switch {
		case key.Matches(msg, k.Up):
			m.outline = m.outline.Up()
		case key.Matches(msg, k.Down):
			m.outline = m.outline.Down()
		case key.Matches(msg, k.Choose):
			var cmd tea.Cmd
			m.outline, cmd = m.outline.Choose()
			return m, cmd
		case key.Matches(msg, k.Outline, k.Deselect):
			m.outline = m.outline.Toggle()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, k.Help):
		m.help = m.help.Toggle()
		return m, nil
	case key.Matches(msg, k.Outline):
		m.outline = m.outline.SetEntries(outline.Build(m.ed.Tree(), m.ed.Root())).Toggle()
		return m, nil
	case key.Matches(msg, k.Reload):
		return m.reload("Reloaded " + filepath.Base(m.opts.Path))
	case key.Matches(msg, k.ToggleStatus):
		return m.toggleStatusBar()

	case key.Matches(msg, k.Left):
		return m.execute(editing.MoveCursor{Direction: editing.Left})
	case key.Matches(msg, k.Right):
		return m.execute(editing.MoveCursor{Direction: editing.Right})
	case key.Matches(msg, k.Up):
		return m.execute(editing.MoveCursor{Direction: editing.Up})
	case key.Matches(msg, k.Down):
		return m.execute(editing.MoveCursor{Direction: editing.Down})
	case key.Matches(msg, k.SelectLeft):
		return m.execute(editing.MoveCursor{Direction: editing.Left, Extend: true})
	case key.Matches(msg, k.SelectRight):
		return m.execute(editing.MoveCursor{Direction: editing.Right, Extend: true})
	case key.Matches(msg, k.SelectUp):
		return m.execute(editing.MoveCursor{Direction: editing.Up, Extend: true})
	case key.Matches(msg, k.SelectDown):
		return m.execute(editing.MoveCursor{Direction: editing.Down, Extend: true})
	case key.Matches(msg, k.SelectAll):
		return m.execute(editing.SelectAll{})
	case key.Matches(msg, k.Deselect):
		return m.execute(editing.ClearSelection{})

	case key.Matches(msg, k.Backspace):
		return m.execute(editing.DeleteLeft{})
	case key.Matches(msg, k.Delete):
		return m.execute(editing.DeleteSelection{})
	}

	switch msg.Type {
	case tea.KeyRunes:
		return m.execute(editing.InsertCharacter{Text: string(msg.Runes)})
	case tea.KeySpace:
		return m.execute(editing.InsertCharacter{Text: " "})
	}
	log.Debug(log.CatInput, "Unbound key", "key", msg.String())
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.outline.Visible() {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			var cmd tea.Cmd
			m.outline, cmd = m.outline.Click(msg)
			return m, cmd
		}
		return m, nil
	}
	if m.help.Visible() || msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	x, y := msg.X, msg.Y+m.scroll
	switch msg.Action {
	case tea.MouseActionPress:
		next, cmd := m.execute(editing.ClickAt{X: x, Y: y})
		m = next.(Model)
		m.press = nil
		if m.flags.Enabled(flags.FlagMouseSelect) && m.ed.Focus() != document.None {
			m.press = &editing.DragSelect{Press: m.ed.Focus(), PressIndex: m.ed.Tree().CursorIndex(m.ed.Focus())}
		}
		return m, cmd

	case tea.MouseActionMotion, tea.MouseActionRelease:
		if m.press == nil {
			return m, nil
		}
		drag := *m.press
		if msg.Action == tea.MouseActionRelease {
			m.press = nil
		}
		if ok, err := m.ed.Execute(m.ctx, editing.ClickAt{X: x, Y: y}); !ok || err != nil {
			return m, nil
		}
		drag.Release = m.ed.Focus()
		drag.ReleaseIndex = m.ed.Tree().CursorIndex(drag.Release)
		if drag.Release == drag.Press && drag.ReleaseIndex == drag.PressIndex {
			return m, nil
		}
		return m.execute(drag)
	}
	return m, nil
}

// execute runs cmd and schedules whatever it set in motion.
func (m Model) execute(cmd editing.Command) (tea.Model, tea.Cmd) {
	ok, err := m.ed.Execute(m.ctx, cmd)
	if err != nil {
		var toast tea.Cmd
		m.toaster, toast = m.toaster.Show(err.Error(), toaster.StyleError)
		return m, toast
	}
	if ok {
		m.lastChange = cmd.ID()
		m.blink.Reset()
		m.follow()
	}
	return m, m.layoutCmd()
}

func (m Model) reload(notice string) (tea.Model, tea.Cmd) {
	tree, root, err := m.loader.Load(m.ctx, m.opts.Path)
	if err != nil {
		var toast tea.Cmd
		m.toaster, toast = m.toaster.Show("Reload failed: "+err.Error(), toaster.StyleError)
		return m, toast
	}
	pos, hadPos := state.Capture(m.ed.Tree(), m.ed.Root())

	m.surface.reset(tree, root)
	m.ed.Load(tree, root)
	m.ed.SetGeometry(m.surface.flow)
	if hadPos {
		if err := state.Restore(tree, root, pos); err != nil {
			log.ErrorErr(log.CatState, "Failed to restore position after reload", err)
		}
	}
	m.press = nil
	m.sched.RunNow()
	m.follow()

	var toast tea.Cmd
	m.toaster, toast = m.toaster.Show(notice, toaster.StyleSuccess)
	return m, toast
}

func (m Model) handleSourceChanged(removed bool) (tea.Model, tea.Cmd) {
	if removed {
		var toast tea.Cmd
		m.toaster, toast = m.toaster.Show(filepath.Base(m.opts.Path)+" was removed from disk", toaster.StyleWarn)
		return m, tea.Batch(toast, m.waitForSource())
	}
	if !m.ed.Modified() {
		next, cmd := m.reload(filepath.Base(m.opts.Path) + " changed on disk, reloaded")
		return next, tea.Batch(cmd, m.waitForSource())
	}

	notice := filepath.Base(m.opts.Path) + " changed on disk"
	if tree, root, err := m.loader.Load(m.ctx, m.opts.Path); err == nil {
		added, removed := drift(m.ed.Tree().Content(m.ed.Root()), tree.Content(root))
		notice += fmt.Sprintf(" (+%d/-%d), ctrl+r reloads", added, removed)
	}
	var toast tea.Cmd
	m.toaster, toast = m.toaster.Show(notice, toaster.StyleWarn)
	return m, tea.Batch(toast, m.waitForSource())
}

func (m Model) toggleStatusBar() (tea.Model, tea.Cmd) {
	m.showStatus = !m.showStatus
	m.follow()
	if m.opts.ConfigPath == "" {
		return m, nil
	}
	if err := config.SaveValue(m.opts.ConfigPath, []string{"ui", "show_status_bar"}, m.showStatus); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to save status bar setting", err)
		var toast tea.Cmd
		m.toaster, toast = m.toaster.Show("Could not save setting: "+err.Error(), toaster.StyleError)
		return m, toast
	}
	return m, nil
}

func (m Model) textWidth() int {
	if m.cfg.UI.MaxWidth > 0 {
		return min(m.width, m.cfg.UI.MaxWidth)
	}
	return m.width
}

func (m Model) bodyRows() int {
	if m.showStatus {
		return max(m.height-1, 0)
	}
	return m.height
}

// follow scrolls so the cursor row stays visible.
func (m *Model) follow() {
	focus := m.ed.Focus()
	if focus == document.None {
		return
	}
	if r, ok := m.surface.flow.Bounds(focus); ok {
		m.scroll = scrollTo(m.scroll, r.Y, m.bodyRows())
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	r := renderer{
		tree:   m.ed.Tree(),
		flow:   m.surface.flow,
		cursor: styles.CursorStyle(m.blink.Colour()),
	}
	rows := r.rows(m.scroll, m.bodyRows())
	if m.showStatus {
		rows = append(rows, m.statusBar())
	}
	view := strings.Join(rows, "\n")

	view = m.outline.Overlay(view, m.width, m.height)
	view = m.help.Overlay(view, m.width, m.height)
	view = m.toaster.Overlay(view, m.width, m.height)
	if m.zones != nil {
		view = m.zones.Scan(view)
	}
	return view
}

func (m Model) statusBar() string {
	tree, root := m.ed.Tree(), m.ed.Root()
	name := filepath.Base(m.opts.Path)
	if m.ed.Modified() {
		name += styles.ModifiedStyle.Render(" [+]")
	}

	parts := []string{name}
	if focus := m.ed.Focus(); focus != document.None {
		if tree.Kind(root) == document.KindBook {
			doc := tree.RootDocument(focus)
			parts = append(parts, fmt.Sprintf("ch %d/%d", tree.IndexOf(doc)+1, len(tree.Children(root))))
		}
		para := tree.Ancestor(focus, document.KindParagraph)
		parts = append(parts, fmt.Sprintf("¶ %d/%d", tree.IndexOf(para)+1, len(tree.Children(tree.Parent(para)))))
	}
	if sel := tree.Selected(root); len(sel) > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", len(sel)))
	}

	right := m.lastChange
	if m.opts.Debug && m.lastLog != "" {
		right = m.lastLog
	}
	left := strings.Join(parts, "  ")
	room := m.width - lipgloss.Width(left) - 4
	if room > 0 && right != "" {
		right = truncate.StringWithTail(right, uint(room), "…")
		gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
		left += strings.Repeat(" ", gap) + right
	}
	return styles.StatusBarStyle.Render(truncate.StringWithTail(left, uint(max(m.width-2, 0)), "…"))
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.savePosition()
	m.cancel()
	m.broker.Close()
	return nil
}
