package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/Comraich/sortr-sub001/internal/mock"
	"github.com/Comraich/sortr-sub001/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var alice = models.Session{Token: "t-alice", UserID: 1, Username: "alice", DisplayName: "Alice"}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func step(t *testing.T, m browserModel, msg tea.Msg) (browserModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(browserModel)
	require.True(t, ok)
	return bm, cmd
}

// run executes cmd and feeds its message back into m.
func run(t *testing.T, m browserModel, cmd tea.Cmd) browserModel {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = step(t, m, cmd())
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func titles(f frame) []string {
	out := make([]string, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.title
	}
	return out
}

func garageTree() models.LocationTree {
	garage := int64(1)
	return models.LocationTree{
		Nodes: map[int64]*models.LocationNode{
			1: {Location: models.Location{ID: 1, Name: "Garage"}, ChildIDs: []int64{3}, BoxCount: 1},
			2: {Location: models.Location{ID: 2, Name: "Attic"}},
			3: {Location: models.Location{ID: 3, Name: "Shelf", ParentID: &garage}},
		},
		RootIDs: []int64{1, 2},
	}
}

type testBrowser struct {
	repo    *mock.MockClientRepository
	copied  []string
	cleared int
}

func newTestBrowser(t *testing.T, baseURL string) (browserModel, *testBrowser) {
	ctrl := gomock.NewController(t)
	tb := &testBrowser{repo: mock.NewMockClientRepository(ctrl)}

	m := newBrowserModel(context.Background(), browserDeps{
		repo:    tb.repo,
		session: alice,
		links:   linkRenderer{baseURL: baseURL},
		copy: func(s string) error {
			tb.copied = append(tb.copied, s)
			return nil
		},
		clearCache: func() { tb.cleared++ },
	})
	return m, tb
}

func (tb *testBrowser) loadRoot(t *testing.T, m browserModel) browserModel {
	t.Helper()
	tb.repo.EXPECT().LocationTree(gomock.Any()).Return(models.Ok(garageTree()))
	return run(t, m, loadFrame(m.ctx, tb.repo, m.top()))
}

func TestBrowser_DrillsDownToItemDetail(t *testing.T) {
	m, tb := newTestBrowser(t, "")
	m = tb.loadRoot(t, m)
	require.Equal(t, []string{"Attic", "Garage", "Orphaned items"}, titles(m.top()))
	assert.False(t, m.loading)

	// Garage
	tb.repo.EXPECT().LocationTree(gomock.Any()).Return(models.Ok(garageTree()))
	tb.repo.EXPECT().ListBoxes(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f models.BoxFilter) models.Result[models.ListResponse[models.Box]] {
			require.NotNil(t, f.LocationID)
			assert.Equal(t, int64(1), *f.LocationID)
			return models.Ok(models.ListResponse[models.Box]{Data: []models.Box{{ID: 7, Name: "Tools", LocationID: 1}}})
		})
	m, _ = step(t, m, press("down"))
	m, cmd := step(t, m, press("enter"))
	assert.True(t, m.loading)
	m = run(t, m, cmd)
	require.Equal(t, []string{"Shelf", "Tools"}, titles(m.top()))
	assert.Contains(t, m.View(), "Locations › Garage")

	// Tools
	tb.repo.EXPECT().ListItems(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f models.ItemFilter) models.Result[models.ListResponse[models.Item]] {
			require.NotNil(t, f.BoxID)
			assert.Equal(t, int64(7), *f.BoxID)
			return models.Ok(models.ListResponse[models.Item]{Data: []models.Item{{ID: 9, Name: "Hammer", Quantity: 2}}})
		})
	m, _ = step(t, m, press("down"))
	m, cmd = step(t, m, press("enter"))
	m = run(t, m, cmd)
	require.Equal(t, []string{"Hammer"}, titles(m.top()))

	// Hammer
	ref := models.ResourceRef{Kind: models.ResourceItem, ID: 9}
	tb.repo.EXPECT().GetItem(gomock.Any(), int64(9)).Return(models.Ok(models.Item{ID: 9, Name: "Hammer", Quantity: 2}))
	tb.repo.EXPECT().History(gomock.Any(), ref, models.Page{Limit: historySize}).
		Return(models.Ok(models.ListResponse[models.Activity]{Data: []models.Activity{{Action: models.ActionCreate}}}))
	m, cmd = step(t, m, press("enter"))
	require.NotNil(t, m.detail)
	assert.True(t, m.detail.loading)
	m = run(t, m, cmd)

	require.NotNil(t, m.detail)
	assert.Equal(t, "Hammer", m.detail.title)
	assert.Contains(t, m.detail.fields, [2]string{"Quantity", "2"})
	assert.Contains(t, m.detail.fields, [2]string{"Box", "-"})
	assert.Len(t, m.detail.history, 1)
	assert.Contains(t, m.View(), "sortr://item/9")

	m, _ = step(t, m, press("esc"))
	assert.Nil(t, m.detail)
	m, _ = step(t, m, press("esc"))
	assert.Len(t, m.frames, 2)
}

func TestBrowser_OrphanedItems(t *testing.T) {
	m, tb := newTestBrowser(t, "")
	m = tb.loadRoot(t, m)

	tb.repo.EXPECT().ListItems(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f models.ItemFilter) models.Result[models.ListResponse[models.Item]] {
			assert.True(t, f.Orphaned)
			return models.Ok(models.ListResponse[models.Item]{Data: []models.Item{{ID: 4, Name: "Loose cable", Quantity: 1, Category: "Cables"}}})
		})
	m, _ = step(t, m, press("down"))
	m, _ = step(t, m, press("down"))
	m, cmd := step(t, m, press("enter"))
	m = run(t, m, cmd)

	assert.Equal(t, frameOrphans, m.top().kind)
	require.Len(t, m.top().entries, 1)
	assert.Equal(t, "x1 · Cables", m.top().entries[0].note)
}

func TestBrowser_CopyLink(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{name: "deep link", want: "sortr://location/2"},
		{name: "web link", baseURL: "https://sortr.example/", want: "https://sortr.example/location/2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, tb := newTestBrowser(t, tt.baseURL)
			m = tb.loadRoot(t, m)

			m, _ = step(t, m, press("c"))

			assert.Equal(t, []string{tt.want}, tb.copied)
			assert.Equal(t, "Copied "+tt.want, m.status)
		})
	}
}

func TestBrowser_CopyFailureIsShown(t *testing.T) {
	m, tb := newTestBrowser(t, "")
	m.deps.copy = func(string) error { return errors.New("no clipboard") }
	m = tb.loadRoot(t, m)

	m, _ = step(t, m, press("c"))

	assert.Empty(t, m.status)
	assert.Contains(t, m.errMsg, "no clipboard")
}

func TestBrowser_OpenLinkPrompt(t *testing.T) {
	m, tb := newTestBrowser(t, "")
	m = tb.loadRoot(t, m)

	m, _ = step(t, m, press("o"))
	require.NotNil(t, m.prompt)
	m, _ = step(t, m, press("sortr://box/7"))

	ref := models.ResourceRef{Kind: models.ResourceBox, ID: 7}
	tb.repo.EXPECT().GetBox(gomock.Any(), int64(7)).Return(models.Ok(models.Box{ID: 7, Name: "Tools", LocationID: 1}))
	tb.repo.EXPECT().History(gomock.Any(), ref, gomock.Any()).Return(models.Ok(models.ListResponse[models.Activity]{}))

	m, cmd := step(t, m, press("enter"))
	assert.Nil(t, m.prompt)
	m = run(t, m, cmd)

	require.NotNil(t, m.detail)
	assert.Equal(t, ref, m.detail.ref)
	assert.Contains(t, m.detail.fields, [2]string{"Location", "location 1"})
}

func TestBrowser_OpenLinkRejectsGarbage(t *testing.T) {
	m, tb := newTestBrowser(t, "")
	m = tb.loadRoot(t, m)

	m, _ = step(t, m, press("o"))
	m, _ = step(t, m, press("sortr://user/1"))
	m, cmd := step(t, m, press("enter"))

	assert.Nil(t, cmd)
	assert.Nil(t, m.detail)
	assert.Equal(t, "Not a Sortr link: sortr://user/1", m.errMsg)
}

func TestBrowser_SessionExpiry(t *testing.T) {
	t.Run("failed load", func(t *testing.T) {
		m, _ := newTestBrowser(t, "")

		m, cmd := step(t, m, frameLoadedMsg{key: m.top().key(), failure: &outcome{message: msgSessionExpired, sessionExpired: true}})

		assert.Equal(t, OutcomeExpired, m.outcome)
		assert.True(t, isQuit(cmd))
	})

	t.Run("session event", func(t *testing.T) {
		m, _ := newTestBrowser(t, "")

		m, cmd := step(t, m, sessionEventMsg{event: models.SessionExpired, open: true})

		assert.Equal(t, OutcomeExpired, m.outcome)
		assert.True(t, isQuit(cmd))
	})

	t.Run("other failures stay inline", func(t *testing.T) {
		m, _ := newTestBrowser(t, "")

		m, cmd := step(t, m, frameLoadedMsg{key: m.top().key(), failure: &outcome{message: "Server unavailable"}})

		assert.Nil(t, cmd)
		assert.Equal(t, "Server unavailable", m.errMsg)
		assert.Equal(t, OutcomeQuit, m.outcome)
	})
}

func TestBrowser_StaleFrameIsIgnored(t *testing.T) {
	m, tb := newTestBrowser(t, "")
	m = tb.loadRoot(t, m)

	m, _ = step(t, m, frameLoadedMsg{key: frame{kind: frameBox, id: 99}.key(), entries: []entry{{title: "stale"}}})

	assert.Equal(t, []string{"Attic", "Garage", "Orphaned items"}, titles(m.top()))
}

func TestBrowser_Keys(t *testing.T) {
	tests := []struct {
		key  string
		want Outcome
	}{
		{key: "q", want: OutcomeQuit},
		{key: "L", want: OutcomeLogout},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, _ := newTestBrowser(t, "")
			m.outcome = OutcomeExpired

			m, cmd := step(t, m, press(tt.key))

			assert.Equal(t, tt.want, m.outcome)
			assert.True(t, isQuit(cmd))
		})
	}
}

func TestBrowser_RefreshClearsCache(t *testing.T) {
	m, tb := newTestBrowser(t, "")
	m = tb.loadRoot(t, m)

	m, cmd := step(t, m, press("r"))

	assert.Equal(t, 1, tb.cleared)
	assert.True(t, m.loading)
	assert.NotNil(t, cmd)
}

func TestBrowser_UnreadCountInHeader(t *testing.T) {
	m, _ := newTestBrowser(t, "")

	m, _ = step(t, m, unreadCountMsg{count: 3, ok: true})

	assert.Contains(t, m.View(), "SORTR · Alice · 3 unread")
}
