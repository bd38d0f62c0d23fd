package loader

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	loaded  bool
	loadErr error
}

func (f *stubFeature) Name() string    { return f.name }
func (f *stubFeature) IsEnabled() bool { return f.enabled }
func (f *stubFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.loadErr
}

func TestManager_LoadAll(t *testing.T) {
	app := fiber.New()
	mgr := NewManager()

	on := &stubFeature{name: "on", enabled: true}
	off := &stubFeature{name: "off", enabled: false}
	mgr.Register(on)
	mgr.Register(off)

	require.NoError(t, mgr.LoadAll(app))
	assert.True(t, on.loaded)
	assert.False(t, off.loaded)
}

func TestManager_LoadAll_Error(t *testing.T) {
	app := fiber.New()
	mgr := NewManager()
	mgr.Register(&stubFeature{name: "broken", enabled: true, loadErr: assert.AnError})

	err := mgr.LoadAll(app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}
