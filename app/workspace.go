package app

import (
	"time"

	zone "github.com/lrstanley/bubblezone"

	"simple-panels/config"
	"simple-panels/layout"
	"simple-panels/log"
	"simple-panels/ui"
)

// workspaceOptions carries what every mounted group shares.
type workspaceOptions struct {
	storage       layout.Storage
	storagePrefix string
	persistDelay  time.Duration
	proximity     float64
	capture       layout.PointerCapture
	zones         *zone.Manager

	// onCollapse fires when a panel collapses or expands.
	onCollapse func(group string, panel string, collapsed bool)
	// onResizeStart and onResizeEnd bracket a drag.
	onResizeStart func()
	onResizeEnd   func(group string, sizes []float64)
}

// workspace is the tree of groups mounted from a layout declaration.
type workspace struct {
	root *ui.GroupView
	// views lists every group, outermost first.
	views []*ui.GroupView
}

// selection names one separator of one group.
type selection struct {
	view      *ui.GroupView
	separator int
}

func buildWorkspace(decl *config.GroupDecl, opts workspaceOptions) *workspace {
	root := buildGroup(decl, opts)
	return &workspace{root: root, views: root.Views()}
}

// ScopedStorageID scopes a declared storage id under the --storage-id prefix.
func ScopedStorageID(prefix, id string) string {
	if id == "" || prefix == "" {
		return id
	}
	return prefix + "/" + id
}

func buildGroup(decl *config.GroupDecl, opts workspaceOptions) *ui.GroupView {
	name := decl.Name
	specs := decl.PanelSpecs()
	for i := range specs {
		title := decl.Panels[i].Title
		if opts.onCollapse != nil {
			specs[i].OnCollapse = func() { opts.onCollapse(name, title, true) }
			specs[i].OnExpand = func() { opts.onCollapse(name, title, false) }
		}
	}

	panels := make([]ui.PanelContent, len(decl.Panels))
	for i, p := range decl.Panels {
		panels[i] = ui.PanelContent{ID: p.ID, Title: p.Title, Body: p.Body}
		if p.Group != nil {
			panels[i].Child = buildGroup(p.Group, opts)
		}
	}

	group := layout.NewGroup(layout.Options{
		Orientation:        decl.LayoutOrientation(),
		Panels:             specs,
		StorageID:          ScopedStorageID(opts.storagePrefix, decl.StorageID),
		Storage:            opts.storage,
		PersistDelay:       opts.persistDelay,
		ProximityThreshold: opts.proximity,
		Capture:            opts.capture,
		OnSizesChange: func(sizes []float64) {
			log.LayoutTrace("%s sizes %v", name, sizes)
		},
		OnResizeStart: func() {
			if opts.onResizeStart != nil {
				opts.onResizeStart()
			}
		},
		OnResizeEnd: func(sizes []float64) {
			if opts.onResizeEnd != nil {
				opts.onResizeEnd(name, sizes)
			}
		},
	})
	return ui.NewGroupView(name, group, panels, opts.zones)
}

// find returns the group declared under name.
func (w *workspace) find(name string) *ui.GroupView {
	for _, v := range w.views {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// separatorAt returns the innermost group with a draggable separator under p.
func (w *workspace) separatorAt(p layout.Point) (*ui.GroupView, int) {
	for i := len(w.views) - 1; i >= 0; i-- {
		v := w.views[i]
		if sep := v.Group.SeparatorAt(p); sep != layout.NoSeparator {
			return v, sep
		}
	}
	return nil, layout.NoSeparator
}

// pointerMove feeds hover proximity to every group. A group can only take
// the shared hover marker after its holder lets go, so when the first pass
// ends with the marker free a second pass lets a waiting group claim it.
func (w *workspace) pointerMove(p layout.Point) {
	for pass := 0; pass < 2; pass++ {
		for i := len(w.views) - 1; i >= 0; i-- {
			w.views[i].Group.PointerMove(p)
		}
		if layout.HoverOwner() != "" {
			return
		}
	}
}

// pointerLeave clears hover in every group.
func (w *workspace) pointerLeave() {
	for _, v := range w.views {
		v.Group.PointerLeave()
	}
}

// separators lists every draggable separator in display order.
func (w *workspace) separators() []selection {
	var out []selection
	for _, v := range w.views {
		for i := 0; i < v.Group.SeparatorCount(); i++ {
			if v.Group.HasSeparator(i) {
				out = append(out, selection{view: v, separator: i})
			}
		}
	}
	return out
}

// focus marks sel as the keyboard selected separator and clears the rest.
func (w *workspace) focus(sel selection) {
	for _, v := range w.views {
		if v == sel.view {
			v.SetFocused(sel.separator)
		} else {
			v.SetFocused(layout.NoSeparator)
		}
	}
}

// reset restores the declared default sizes in every group.
func (w *workspace) reset() {
	for _, v := range w.views {
		v.Group.ResetSizes()
	}
}

// sizes maps each group name to its committed sizes.
func (w *workspace) sizes() map[string][]float64 {
	out := make(map[string][]float64, len(w.views))
	for _, v := range w.views {
		out[v.Name] = v.Group.Sizes()
	}
	return out
}

// close flushes pending writes and unmounts every group, innermost first.
func (w *workspace) close() {
	for i := len(w.views) - 1; i >= 0; i-- {
		w.views[i].Group.Close()
	}
}
