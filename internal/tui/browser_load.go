package tui

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Comraich/sortr-sub001/internal/service"
	"github.com/Comraich/sortr-sub001/models"
	tea "github.com/charmbracelet/bubbletea"
)

// historySize is how many activity rows the detail view shows.
const historySize = 10

type frameKind int

const (
	frameRoot frameKind = iota
	frameLocation
	frameBox
	frameOrphans
)

// entry is one selectable row of a frame.
type entry struct {
	kind  models.ResourceKind // empty for the orphaned items shortcut
	id    int64
	title string
	note  string
}

func (e entry) ref() (models.ResourceRef, bool) {
	if e.kind == "" {
		return models.ResourceRef{}, false
	}
	return models.ResourceRef{Kind: e.kind, ID: e.id}, true
}

// frame is one level of the hierarchy the user has drilled into.
type frame struct {
	kind    frameKind
	id      int64
	title   string
	entries []entry
	idx     int
	loaded  bool
}

func (f frame) key() string {
	return fmt.Sprintf("%d/%d", f.kind, f.id)
}

func (f frame) selected() (entry, bool) {
	if f.idx < 0 || f.idx >= len(f.entries) {
		return entry{}, false
	}
	return f.entries[f.idx], true
}

// outcome is the failure part of a Result, kept after the data is dropped.
type outcome struct {
	message        string
	sessionExpired bool
}

func outcomeOf[T any](res models.Result[T]) outcome {
	return outcome{message: res.Message, sessionExpired: res.SessionExpired}
}

type frameLoadedMsg struct {
	key     string
	entries []entry
	failure *outcome
}

type detailLoadedMsg struct {
	ref     models.ResourceRef
	title   string
	fields  [][2]string
	history []models.Activity
	failure *outcome
}

type unreadCountMsg struct {
	count int
	ok    bool
}

type sessionEventMsg struct {
	event models.SessionEvent
	open  bool
}

func loadFrame(ctx context.Context, repo service.ClientRepository, f frame) tea.Cmd {
	key := f.key()
	return func() tea.Msg {
		entries, failure := frameEntries(ctx, repo, f)
		return frameLoadedMsg{key: key, entries: entries, failure: failure}
	}
}

func frameEntries(ctx context.Context, repo service.ClientRepository, f frame) ([]entry, *outcome) {
	switch f.kind {
	case frameRoot:
		tree := repo.LocationTree(ctx)
		if !tree.OK {
			return nil, failed(tree)
		}
		entries := locationEntries(tree.Data, tree.Data.RootIDs)
		return append(entries, entry{title: "Orphaned items", note: "items in no box"}), nil

	case frameLocation:
		tree := repo.LocationTree(ctx)
		if !tree.OK {
			return nil, failed(tree)
		}
		var children []int64
		if node, ok := tree.Data.Nodes[f.id]; ok {
			children = node.ChildIDs
		}
		entries := locationEntries(tree.Data, children)

		id := f.id
		boxes := repo.ListBoxes(ctx, models.BoxFilter{LocationID: &id, Page: models.Page{Limit: models.MaxPageSize}})
		if !boxes.OK {
			return nil, failed(boxes)
		}
		for _, b := range boxes.Data.Data {
			entries = append(entries, entry{kind: models.ResourceBox, id: b.ID, title: b.Name, note: b.Description})
		}
		return entries, nil

	case frameBox:
		id := f.id
		return itemEntries(repo.ListItems(ctx, models.ItemFilter{BoxID: &id, Page: models.Page{Limit: models.MaxPageSize}}))

	case frameOrphans:
		return itemEntries(repo.ListItems(ctx, models.ItemFilter{Orphaned: true, Page: models.Page{Limit: models.MaxPageSize}}))
	}
	return nil, nil
}

func failed[T any](res models.Result[T]) *outcome {
	o := outcomeOf(res)
	return &o
}

// locationEntries lists ids sorted by name.
func locationEntries(tree models.LocationTree, ids []int64) []entry {
	entries := make([]entry, 0, len(ids))
	for _, id := range ids {
		node, ok := tree.Nodes[id]
		if !ok {
			continue
		}
		entries = append(entries, entry{
			kind:  models.ResourceLocation,
			id:    id,
			title: node.Name,
			note:  fmt.Sprintf("%d boxes, %d sublocations", node.BoxCount, len(node.ChildIDs)),
		})
	}
	slices.SortFunc(entries, func(a, b entry) int { return cmp.Compare(a.title, b.title) })
	return entries
}

func itemEntries(res models.Result[models.ListResponse[models.Item]]) ([]entry, *outcome) {
	if !res.OK {
		return nil, failed(res)
	}
	entries := make([]entry, 0, len(res.Data.Data))
	for _, it := range res.Data.Data {
		note := fmt.Sprintf("x%d", it.Quantity)
		if it.Category != "" {
			note += " · " + it.Category
		}
		entries = append(entries, entry{kind: models.ResourceItem, id: it.ID, title: it.Name, note: note})
	}
	return entries, nil
}

func loadDetail(ctx context.Context, repo service.ClientRepository, ref models.ResourceRef) tea.Cmd {
	return func() tea.Msg {
		msg := detailFor(ctx, repo, ref)
		if msg.failure != nil {
			return msg
		}

		history := repo.History(ctx, ref, models.Page{Limit: historySize})
		switch {
		case history.OK:
			msg.history = history.Data.Data
		case history.SessionExpired:
			msg.failure = failed(history)
		}
		return msg
	}
}

func detailFor(ctx context.Context, repo service.ClientRepository, ref models.ResourceRef) detailLoadedMsg {
	msg := detailLoadedMsg{ref: ref}

	switch ref.Kind {
	case models.ResourceItem:
		res := repo.GetItem(ctx, ref.ID)
		if !res.OK {
			msg.failure = failed(res)
			return msg
		}
		it := res.Data
		box := "-"
		if it.BoxID != nil {
			box = fmt.Sprintf("box %d", *it.BoxID)
		}
		msg.title = it.Name
		msg.fields = [][2]string{
			{"Description", valueOrDash(it.Description)},
			{"Category", valueOrDash(it.Category)},
			{"Quantity", fmt.Sprint(it.Quantity)},
			{"Box", box},
			{"Image", imageState(it)},
			{"Updated", it.UpdatedAt.Local().Format("2006-01-02 15:04")},
		}

	case models.ResourceBox:
		res := repo.GetBox(ctx, ref.ID)
		if !res.OK {
			msg.failure = failed(res)
			return msg
		}
		b := res.Data
		msg.title = b.Name
		msg.fields = [][2]string{
			{"Description", valueOrDash(b.Description)},
			{"Location", fmt.Sprintf("location %d", b.LocationID)},
			{"Updated", b.UpdatedAt.Local().Format("2006-01-02 15:04")},
		}

	case models.ResourceLocation:
		res := repo.GetLocation(ctx, ref.ID)
		if !res.OK {
			msg.failure = failed(res)
			return msg
		}
		l := res.Data
		path := "-"
		if tree := repo.LocationTree(ctx); tree.OK {
			path = joinPath(tree.Data.Path(l.ID))
		}
		msg.title = l.Name
		msg.fields = [][2]string{
			{"Path", path},
			{"Updated", l.UpdatedAt.Local().Format("2006-01-02 15:04")},
		}

	default:
		msg.failure = &outcome{message: fmt.Sprintf("%s entries cannot be opened here", ref.Kind)}
	}

	return msg
}

func imageState(it models.Item) string {
	if it.ImagePath == nil {
		return "none"
	}
	return "attached"
}

func joinPath(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, " / ")
}

func loadUnreadCount(ctx context.Context, repo service.ClientRepository) tea.Cmd {
	return func() tea.Msg {
		res := repo.UnreadCount(ctx)
		return unreadCountMsg{count: res.Data, ok: res.OK}
	}
}

// waitForSessionEvent delivers the next session event. It is re-armed after
// every event until the channel closes.
func waitForSessionEvent(events <-chan models.SessionEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, open := <-events
		return sessionEventMsg{event: event, open: open}
	}
}
