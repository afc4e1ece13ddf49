package flow

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tele "gopkg.in/telebot.v4"

	"payshot/internal/payout"
)

// stubRenderer returns a canned artifact or a fixed error.
type stubRenderer struct {
	artifact payout.Artifact
	err      error
	calls    int
	lastReq  payout.RenderRequest
}

func (r *stubRenderer) Render(_ context.Context, req payout.RenderRequest) (payout.Artifact, error) {
	r.calls++
	r.lastReq = req
	if r.err != nil {
		return payout.Artifact{}, r.err
	}
	return r.artifact, nil
}

// stubTeleContext implements just enough of tele.Context for the text
// handlers: sender identity, message text, per-update values, and outgoing
// sends. Everything else panics via the embedded nil interface, which keeps
// the tests honest about what the handlers actually touch.
type stubTeleContext struct {
	tele.Context

	userID int64
	text   string
	values map[string]any

	sent    []any
	sendErr func(what any) error
}

func newStubTeleContext(userID int64, text string) *stubTeleContext {
	return &stubTeleContext{userID: userID, text: text, values: make(map[string]any)}
}

func (c *stubTeleContext) Sender() *tele.User  { return &tele.User{ID: c.userID} }
func (c *stubTeleContext) Chat() *tele.Chat    { return &tele.Chat{ID: c.userID} }
func (c *stubTeleContext) Update() tele.Update { return tele.Update{ID: 1} }
func (c *stubTeleContext) Text() string        { return c.text }

func (c *stubTeleContext) Get(key string) any    { return c.values[key] }
func (c *stubTeleContext) Set(key string, v any) { c.values[key] = v }

func (c *stubTeleContext) Send(what any, _ ...any) error {
	if c.sendErr != nil {
		if err := c.sendErr(what); err != nil {
			return err
		}
	}
	c.sent = append(c.sent, what)
	return nil
}

func (c *stubTeleContext) sentTexts() []string {
	var out []string
	for _, msg := range c.sent {
		if s, ok := msg.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// driveToAmountStep walks a session up to the point where the next text
// message is treated as the amount.
func driveToAmountStep(t *testing.T, m *Machine, uid int64) {
	t.Helper()
	m.Start(uid)
	_, err := m.ChooseCountry(uid, "colombia")
	require.NoError(t, err)
	_, err = m.ChooseKind(uid, "waiting")
	require.NoError(t, err)
	_, err = m.SetAccount(uid, "12345")
	require.NoError(t, err)
}

func writeArtifact(t *testing.T, data []byte) payout.Artifact {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shot.png")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return payout.Artifact{Path: path, Size: int64(len(data))}
}

func TestRenderFailureClearsSession(t *testing.T) {
	m, store := newTestMachine()
	const uid int64 = 10
	driveToAmountStep(t, m, uid)

	r := &stubRenderer{err: errors.New("browser crashed")}
	h := NewHandlers(m, r)

	c := newStubTeleContext(uid, "500")
	require.NoError(t, h.ManagerHandler(c))

	assert.Equal(t, 1, r.calls)
	_, ok := store.Get(uid)
	assert.False(t, ok, "session must be gone after a failed render")
	assert.False(t, m.InProgress(uid))

	texts := c.sentTexts()
	assert.Contains(t, texts, textGenerating)
	assert.Contains(t, texts, textRenderFailed)

	// The next message from the user is no longer in-flow.
	c2 := newStubTeleContext(uid, "anything")
	require.NoError(t, h.ManagerHandler(c2))
	assert.Contains(t, c2.sentTexts(), textStartHint)
}

func TestSuccessfulDeliveryClearsSessionAndRemovesArtifact(t *testing.T) {
	m, store := newTestMachine()
	const uid int64 = 11
	driveToAmountStep(t, m, uid)

	artifact := writeArtifact(t, []byte("png-bytes"))
	r := &stubRenderer{artifact: artifact}
	h := NewHandlers(m, r)

	c := newStubTeleContext(uid, "1500,50")
	require.NoError(t, h.ManagerHandler(c))

	assert.Equal(t, 1, r.calls)
	assert.Equal(t, "colombia", r.lastReq.Country.Code)
	assert.Equal(t, "12345", r.lastReq.Account)

	var photo *tele.Photo
	for _, msg := range c.sent {
		if p, ok := msg.(*tele.Photo); ok {
			photo = p
		}
	}
	require.NotNil(t, photo, "small artifacts are delivered as photos")
	assert.Contains(t, photo.Caption, "Colombia")
	assert.Contains(t, photo.Caption, "Account: 12345")
	assert.Contains(t, photo.Caption, "1 500.50")

	_, err := os.Stat(artifact.Path)
	assert.True(t, os.IsNotExist(err), "artifact must be removed after delivery")

	_, ok := store.Get(uid)
	assert.False(t, ok)
	assert.NotContains(t, c.sentTexts(), textRenderFailed)
}

func TestDeliveryFailureClearsSession(t *testing.T) {
	m, store := newTestMachine()
	const uid int64 = 12
	driveToAmountStep(t, m, uid)

	artifact := writeArtifact(t, []byte("png-bytes"))
	h := NewHandlers(m, &stubRenderer{artifact: artifact})

	c := newStubTeleContext(uid, "500")
	c.sendErr = func(what any) error {
		if _, ok := what.(*tele.Photo); ok {
			return errors.New("telegram: 502")
		}
		return nil
	}
	require.NoError(t, h.ManagerHandler(c))

	assert.Contains(t, c.sentTexts(), textRenderFailed)
	_, ok := store.Get(uid)
	assert.False(t, ok, "session must be gone after a failed upload")

	_, err := os.Stat(artifact.Path)
	assert.True(t, os.IsNotExist(err), "artifact must be removed even when the upload fails")
}

func TestBadAmountKeepsSessionAlive(t *testing.T) {
	m, store := newTestMachine()
	const uid int64 = 13
	driveToAmountStep(t, m, uid)

	r := &stubRenderer{}
	h := NewHandlers(m, r)

	c := newStubTeleContext(uid, "lots of money")
	require.NoError(t, h.ManagerHandler(c))

	assert.Zero(t, r.calls)
	assert.Contains(t, c.sentTexts(), textBadAmount)
	_, ok := store.Get(uid)
	assert.True(t, ok, "a bad amount re-prompts instead of ending the flow")
}

func TestTextAtButtonStepsPromptsForButtons(t *testing.T) {
	m, _ := newTestMachine()
	const uid int64 = 14
	h := NewHandlers(m, &stubRenderer{})

	m.Start(uid)
	c := newStubTeleContext(uid, "colombia please")
	require.NoError(t, h.ManagerHandler(c))
	assert.Contains(t, c.sentTexts(), textUseButtons)

	_, err := m.ChooseCountry(uid, "colombia")
	require.NoError(t, err)
	c2 := newStubTeleContext(uid, "waiting")
	require.NoError(t, h.ManagerHandler(c2))
	assert.Contains(t, c2.sentTexts(), textUseButtons)

	assert.True(t, m.InProgress(uid), "guidance must not drop the session")
}
