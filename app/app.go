package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"simple-panels/config"
	"simple-panels/inspect"
	"simple-panels/keys"
	"simple-panels/layout"
	"simple-panels/log"
	"simple-panels/ui"
)

const (
	// mousePointer and keyboardPointer identify the two sources that can
	// hold the shared pointer capture.
	mousePointer    = 1
	keyboardPointer = 2

	// keyboardStep is how far one grow or shrink key moves a separator, in
	// percent.
	keyboardStep = 5.0
)

// Options configures Run.
type Options struct {
	// Layout is the declared workspace. Nil selects the built-in layout.
	Layout *config.GroupDecl
	Config *config.Config
	// Storage persists sizes. Nil disables persistence.
	Storage layout.Storage
	// StorageID scopes every declared storage id.
	StorageID string
}

// Run is the main entrypoint into the application.
func Run(ctx context.Context, opts Options) error {
	h := newHome(ctx, opts)
	defer h.close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithReportFocus()}
	if h.cfg.MouseAllMotion {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	} else {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(h, programOpts...)
	_, err := p.Run()
	log.GetProfiler().LogStats()
	return err
}

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	cfg *config.Config

	// -- State --

	ws *workspace
	// drag is the group the mouse is dragging in, if any.
	drag *ui.GroupView
	// focus indexes ws.separators() for keyboard resizing, or -1.
	focus int

	width, height int
	chrome        ui.ChromeMode

	// collapsedDuringDrag keeps a collapse message on the status line when
	// the drag that caused it ends.
	collapsedDuringDrag bool

	// pendingSnapshot indicates that an inspection snapshot is queued
	pendingSnapshot bool

	// -- UI Components --

	menu  *ui.Menu
	zones *zone.Manager
}

func newHome(ctx context.Context, opts Options) *home {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	decl := opts.Layout
	if decl == nil {
		decl = config.DefaultLayout()
	}

	h := &home{
		ctx:   ctx,
		cfg:   cfg,
		focus: -1,
		menu:  ui.NewMenu(),
		zones: zone.New(),
	}
	h.ws = buildWorkspace(decl, workspaceOptions{
		storage:       opts.Storage,
		storagePrefix: opts.StorageID,
		persistDelay:  cfg.PersistDelay(),
		proximity:     cfg.Proximity(),
		capture:       layout.NewPointerCapture(),
		zones:         h.zones,
		onCollapse: func(group, panel string, collapsed bool) {
			verb := "expanded"
			if collapsed {
				verb = "collapsed"
			}
			h.menu.SetStatus(fmt.Sprintf("%s %s", panel, verb))
			h.collapsedDuringDrag = true
		},
		onResizeStart: func() {
			h.collapsedDuringDrag = false
		},
		onResizeEnd: func(group string, sizes []float64) {
			if !h.collapsedDuringDrag {
				h.menu.SetStatus(fmt.Sprintf("%s %s", group, formatSizes(sizes)))
			}
		},
	})
	return h
}

// close flushes every group's pending write and unmounts the workspace.
func (m *home) close() {
	m.ws.close()
	m.zones.Close()
}

// updateHandleWindowSizeEvent sets the sizes of the components.
// The components will try to render inside their bounds.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.relayout()
}

// relayout recomputes the chrome and gives the rest to the root group.
func (m *home) relayout() {
	m.chrome = ui.DetermineChrome(m.width, m.height)
	log.Debug("relayout %dx%d chrome=%s", m.width, m.height, m.chrome)
	m.menu.SetSize(m.width, ui.MenuHeight(m.chrome, m.menu))
	m.ws.root.SetBounds(ui.WorkspaceRect(m.width, m.height, m.chrome, m.menu))
}

func (m *home) Init() tea.Cmd {
	return nil
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case hideStatusMsg:
		if m.menu.Status() == msg.status {
			m.menu.SetStatus("")
		}
		return m, nil
	case snapshotDebounceMsg:
		m.pendingSnapshot = false
		if err := inspect.Write(m.snapshot()); err != nil {
			log.WarningLog.Printf("failed to write inspection snapshot: %v", err)
		}
		return m, nil
	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, tea.Batch(cmd, m.afterChange())
	case tea.BlurMsg:
		// The terminal lost focus: the pointer stream is gone.
		if m.drag != nil {
			m.drag.Group.LostPointerCapture()
			m.drag = nil
		}
		m.ws.pointerLeave()
		return m, m.afterChange()
	case tea.FocusMsg:
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, m.afterChange()
	}
	return m, nil
}

func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	if m.drag != nil {
		m.drag.Group.EndDrag()
		m.drag = nil
	}
	for _, v := range m.ws.views {
		v.Group.Flush()
	}
	return m, tea.Quit
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}

	switch name {
	case keys.KeyQuit:
		return m.handleQuit()
	case keys.KeyHelp:
		m.menu.ToggleHelp()
		m.relayout()
		return m, nil
	case keys.KeyTogglePanel:
		index, _ := keys.PanelIndex(msg.String())
		return m, m.togglePanel(m.targetView(), index)
	case keys.KeyReset:
		m.ws.reset()
		return m, tea.Batch(m.setStatus("sizes reset"), m.afterChange())
	case keys.KeyCopy:
		data, err := json.Marshal(m.ws.sizes())
		if err != nil {
			return m, m.handleError(err)
		}
		if err := clipboard.WriteAll(string(data)); err != nil {
			return m, m.handleError(fmt.Errorf("failed to copy sizes: %w", err))
		}
		return m, m.setStatus("sizes copied")
	case keys.KeyNextSeparator:
		m.moveFocus(1)
		return m, m.afterChange()
	case keys.KeyPrevSeparator:
		m.moveFocus(-1)
		return m, m.afterChange()
	case keys.KeyGrow:
		return m, m.nudge(keyboardStep)
	case keys.KeyShrink:
		return m, m.nudge(-keyboardStep)
	}
	return m, nil
}

// togglePanel collapses or expands panel index of view. Only panels declared
// collapsible may be toggled from the UI.
func (m *home) togglePanel(view *ui.GroupView, index int) tea.Cmd {
	panels := view.Group.Panels()
	if index < 0 || index >= len(panels) {
		return nil
	}
	if !panels[index].Collapsible {
		return m.setStatus(fmt.Sprintf("%s panel %d cannot collapse", view.Name, index+1))
	}
	view.Group.Toggle(index)
	return m.afterChange()
}

// targetView is the group digit keys address: the group of the focused
// separator, otherwise the root.
func (m *home) targetView() *ui.GroupView {
	if sel, ok := m.focused(); ok {
		return sel.view
	}
	return m.ws.root
}

func (m *home) focused() (selection, bool) {
	seps := m.ws.separators()
	if m.focus < 0 || m.focus >= len(seps) {
		return selection{}, false
	}
	return seps[m.focus], true
}

// moveFocus cycles the keyboard selection through every separator.
func (m *home) moveFocus(step int) {
	seps := m.ws.separators()
	if len(seps) == 0 {
		m.focus = -1
		return
	}
	switch {
	case m.focus < 0 && step > 0:
		m.focus = 0
	case m.focus < 0:
		m.focus = len(seps) - 1
	default:
		m.focus = (m.focus + step + len(seps)) % len(seps)
	}
	m.ws.focus(seps[m.focus])
}

// nudge moves the focused separator by deltaPct through a one-step drag, so
// keyboard resizing goes through the same resolution as the mouse.
func (m *home) nudge(deltaPct float64) tea.Cmd {
	sel, ok := m.focused()
	if !ok {
		return m.setStatus("press tab to select a separator")
	}
	g := sel.view.Group
	start := layout.Point{}
	if r, ok := sel.view.SeparatorRect(sel.separator); ok {
		start = r.Center()
	}
	if !g.BeginDrag(sel.separator, start, keyboardPointer) {
		return nil
	}
	g.DragBy(deltaPct)
	g.EndDrag()
	// The keyboard has no pointer to keep the separator highlighted.
	g.PointerLeave()
	return m.afterChange()
}

// cellCenter maps a terminal cell to the pointer position at its middle.
func cellCenter(x, y int) layout.Point {
	return layout.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

// handleMouse routes pointer events: a press on a separator starts a drag
// that owns every following motion until release, plain motion drives hover
// proximity and a click on a panel title toggles that panel.
func (m *home) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p := cellCenter(msg.X, msg.Y)

	if m.drag != nil {
		switch msg.Action {
		case tea.MouseActionRelease:
			m.drag.Group.EndDrag()
			m.drag = nil
			m.ws.pointerMove(p)
		case tea.MouseActionMotion:
			m.drag.Group.Drag(p)
		}
		return nil
	}

	if msg.Action == tea.MouseActionMotion {
		m.ws.pointerMove(p)
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	if view, sep := m.ws.separatorAt(p); view != nil {
		if view.Group.BeginDrag(sep, p, mousePointer) {
			m.drag = view
		}
		return nil
	}

	for _, v := range m.ws.views {
		for i := range v.Panels {
			if m.zones.Get(v.ZoneID(i)).InBounds(msg) {
				return m.togglePanel(v, i)
			}
		}
	}
	return nil
}

// hideStatusMsg clears the status line if it still shows status.
type hideStatusMsg struct {
	status string
}

// setStatus shows status and clears it after 3 seconds.
func (m *home) setStatus(status string) tea.Cmd {
	m.menu.SetStatus(status)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(3 * time.Second):
		}
		return hideStatusMsg{status: status}
	}
}

// handleError logs err and shows it on the status line.
func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Printf("%v", err)
	return m.setStatus(err.Error())
}

// snapshotDebounceMsg is sent after a debounce delay to write a snapshot
type snapshotDebounceMsg struct{}

// snapshotDebounceDelay is how long to wait before writing a snapshot after a change
const snapshotDebounceDelay = 200 * time.Millisecond

// afterChange schedules a debounced inspection snapshot when inspection is
// enabled. If one is already pending this does nothing.
func (m *home) afterChange() tea.Cmd {
	if !inspect.Enabled() || m.pendingSnapshot {
		return nil
	}
	m.pendingSnapshot = true
	return func() tea.Msg {
		time.Sleep(snapshotDebounceDelay)
		return snapshotDebounceMsg{}
	}
}

// snapshot describes the current UI for inspection.
func (m *home) snapshot() *inspect.Snapshot {
	s := inspect.NewSnapshot().
		WithTerminal(m.width, m.height).
		WithChrome(inspect.ChromeInfo{
			Mode:       m.chrome.String(),
			MenuHeight: ui.MenuHeight(m.chrome, m.menu),
			Workspace:  inspect.BoundsOf(m.ws.root.Bounds()),
			Status:     m.menu.Status(),
			Breakpoints: []inspect.BreakpointInfo{
				{Name: "minimal_width", Threshold: ui.MinWidth, Active: m.width < ui.MinWidth, Dimension: "width"},
				{Name: "minimal_height", Threshold: ui.MinHeight, Active: m.height < ui.MinHeight, Dimension: "height"},
				{Name: "compact_width", Threshold: ui.CompactWidth, Active: m.width < ui.CompactWidth, Dimension: "width"},
				{Name: "compact_height", Threshold: ui.CompactHeight, Active: m.height < ui.CompactHeight, Dimension: "height"},
			},
		}).
		WithComponents(m.ws.root.InspectNode()).
		WithStyles()
	for _, v := range m.ws.views {
		s.AddGroup(v.Name, v.Group)
	}
	return s
}

var warningStyle = lipgloss.NewStyle().Foreground(ui.Warning).Bold(true)

func (m *home) View() string {
	start := time.Now()
	defer func() { log.GetProfiler().RecordFrame(time.Since(start)) }()

	if m.chrome == ui.ChromeMinimal {
		msg := fmt.Sprintf("Terminal too small (%dx%d)\nneed at least %dx%d", m.width, m.height, ui.MinWidth, ui.MinHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, warningStyle.Render(msg))
	}

	stop := log.GetProfiler().StartRender("workspace")
	body := m.ws.root.Render()
	stop()

	mainView := lipgloss.JoinVertical(lipgloss.Left, body, m.menu.String())
	return m.zones.Scan(mainView)
}

func formatSizes(sizes []float64) string {
	out := "["
	for i, s := range sizes {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%.0f", s)
	}
	return out + "]"
}
