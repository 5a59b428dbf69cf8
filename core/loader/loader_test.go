package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	s.loaded = true
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	enabled := &stubFeature{name: "sync", enabled: true}
	disabled := &stubFeature{name: "embeds"}

	mgr := NewManager()
	mgr.Register(enabled)
	mgr.Register(disabled)

	assert.NoError(t, mgr.LoadAll(fiber.New()))
	assert.True(t, enabled.loaded)
	assert.False(t, disabled.loaded)
	assert.Len(t, mgr.Features(), 2)
}

func TestManager_LoadAllError(t *testing.T) {
	broken := &stubFeature{name: "sync", enabled: true, err: errors.New("boom")}
	after := &stubFeature{name: "embeds", enabled: true}

	mgr := NewManager()
	mgr.Register(broken)
	mgr.Register(after)

	err := mgr.LoadAll(fiber.New())
	assert.EqualError(t, err, "failed to load feature sync: boom")
	assert.False(t, after.loaded)
}
