package tui

import (
	"context"
	"testing"

	"github.com/Comraich/sortr-sub001/internal/mock"
	"github.com/Comraich/sortr-sub001/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLoginModel_SignsIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	session := mock.NewMockClientSession(ctrl)
	ctx := context.Background()

	m := NewLoginModel(ctx, session)
	m.form.inputs[0].SetValue("alice ")
	m.form.inputs[1].SetValue(" secret ")

	session.EXPECT().Login(ctx, models.Credentials{Username: "alice", Password: " secret "}).Return(models.Ok(alice))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.submitting)
	assert.Contains(t, m.View(), "Signing in")

	_, cmd = m.Update(cmd())
	require.NotNil(t, cmd)
	assert.Equal(t, signedInMsg{session: alice}, cmd())
}

func TestLoginModel_ShowsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	session := mock.NewMockClientSession(ctrl)

	m := NewLoginModel(context.Background(), session)
	m.form.inputs[0].SetValue("alice")
	m.form.inputs[1].SetValue("wrong")

	session.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.Fail[models.Session]("Invalid username or password"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd = m.Update(cmd())

	assert.Nil(t, cmd)
	assert.False(t, m.submitting)
	assert.Contains(t, m.View(), "Invalid username or password")
}

func TestLoginModel_RequiresBothFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewLoginModel(context.Background(), mock.NewMockClientSession(ctrl))
	m.form.inputs[0].SetValue("alice")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, "Username and password are required", m.errMsg)
}

func TestRootModel_SignedInEndsProgram(t *testing.T) {
	root := NewRootModel(map[string]tea.Model{pageMenu: NewMenuModel("")}, pageMenu, models.NewAppBuildInfo("", "", ""))

	next, cmd := root.Update(signedInMsg{session: alice})
	r, ok := next.(RootModel)
	require.True(t, ok)

	assert.Equal(t, alice, r.session)
	require.NotNil(t, cmd)
	_, quit := cmd().(tea.QuitMsg)
	assert.True(t, quit)
}

func TestLinkRenderer(t *testing.T) {
	ref := models.ResourceRef{Kind: models.ResourceBox, ID: 7}

	assert.Equal(t, "sortr://box/7", linkRenderer{}.render(ref))
	assert.Equal(t, "https://inv.example/box/7", linkRenderer{baseURL: "https://inv.example"}.render(ref))
}
