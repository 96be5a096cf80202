package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/Veraticus/pinhole/internal/common"
	"github.com/Veraticus/pinhole/internal/exposure"
	"github.com/Veraticus/pinhole/internal/meter"
	"github.com/Veraticus/pinhole/internal/model"
	"github.com/Veraticus/pinhole/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExposeCommand_NoCondition(t *testing.T) {
	env := newTestEnv(t)
	assert.Contains(t, env.mustRun("expose"), "select a lighting condition")
}

func TestExposeCommand_OverridesAreNotSaved(t *testing.T) {
	env := newTestEnv(t)

	s := model.DefaultCameraSettings()
	s.Condition = "Clear/Sunny"
	s.ISO = 400
	want, ok := exposure.Compute(s)
	require.True(t, ok)

	out := env.mustRun("expose", "--condition", "clear/sunny", "--iso", "400")
	assert.Contains(t, out, want.Formatted)
	assert.Contains(t, out, "Clear/Sunny (f/16)")

	out = env.mustRun("settings", "show")
	assert.Regexp(t, `Condition\s+none`, out)
	assert.Regexp(t, `ISO\s+100`, out)
}

func TestExposeCommand_SaveAndLadder(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("expose", "--condition", "Overcast", "--filter", "red", "--save", "--ladder")
	assert.Contains(t, out, "+3 stops")
	assert.Contains(t, out, "-3")
	assert.Contains(t, out, "+3")

	out = env.mustRun("settings", "show")
	assert.Regexp(t, `Condition\s+Overcast`, out)
	assert.Regexp(t, `Filter\s+Red`, out)
}

func TestExposeCommand_InvalidInput(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("expose", "--filter", "green")
	assert.ErrorContains(t, err, "unknown filter")

	_, err = env.run("expose", "--condition", "moonlight")
	assert.ErrorContains(t, err, "unknown lighting condition")

	_, err = env.run("expose", "--iso", "123")
	assert.True(t, errors.Is(err, common.ErrInvalidSettings), "got %v", err)
}

func TestSettingsCommands(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("settings", "set")
	assert.ErrorContains(t, err, "nothing to change")

	out := env.mustRun("settings", "set", "--focal", "75", "--format", "6x9", "--orientation", "Portrait", "--reciprocity")
	assert.Contains(t, out, "Settings saved")
	assert.Contains(t, out, "6x9 (84x56mm)")
	assert.Regexp(t, `Orientation\s+portrait`, out)
	assert.Regexp(t, `Reciprocity\s+true`, out)

	_, err = env.run("settings", "set", "--bracket", "5")
	assert.True(t, errors.Is(err, common.ErrInvalidSettings), "got %v", err)

	out = env.mustRun("settings", "show")
	assert.Regexp(t, `Focal length\s+75mm`, out)
	assert.Regexp(t, `Bracket\s+\+0`, out)

	out = env.mustRun("settings", "reset")
	assert.Contains(t, out, "reset to defaults")
	assert.Regexp(t, `Focal length\s+50mm`, out)
}

func TestProfilesCommands(t *testing.T) {
	env := newTestEnv(t)

	assert.Contains(t, env.mustRun("profiles", "list"), "No profiles saved")

	env.mustRun("settings", "set", "--focal", "40", "--iso", "400")
	assert.Contains(t, env.mustRun("profiles", "save", "Zero 2000"), `Saved profile "Zero 2000"`)

	env.mustRun("settings", "set", "--focal", "150", "--iso", "50")

	out := env.mustRun("profiles", "list")
	assert.Contains(t, out, "Zero 2000")
	assert.Contains(t, out, "40mm")

	out = env.mustRun("profiles", "load", "Zero 2000")
	assert.Contains(t, out, `Loaded profile "Zero 2000"`)
	assert.Regexp(t, `Focal length\s+40mm`, out)
	assert.Regexp(t, `ISO\s+400`, out)

	_, err := env.run("profiles", "load", "nope")
	assert.True(t, errors.Is(err, common.ErrNotFound), "got %v", err)

	assert.Contains(t, env.mustRun("profiles", "delete", "Zero 2000"), "Deleted profile")
	assert.Contains(t, env.mustRun("profiles", "list"), "No profiles saved")
}

func TestReferenceCommands(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("conditions")
	for _, c := range model.LightingConditions {
		assert.Contains(t, out, c.Name)
	}

	out = env.mustRun("filters")
	assert.Contains(t, out, "8x")

	out = env.mustRun("formats")
	assert.Contains(t, out, "6x17")
	assert.Contains(t, out, "3.00")
}

func TestFrameCommand(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("frame", "--width", "1000", "--height", "600")
	assert.Contains(t, out, "540.0x540.0 at (80.0, 30.0)")
	assert.Regexp(t, `Display\s+landscape`, out)

	out = env.mustRun("frame", "--width", "100", "--height", "30", "--cells")
	assert.Contains(t, out, "54.0x27.0")

	out = env.mustRun("frame", "--width", "0", "--height", "600")
	assert.Contains(t, out, "nothing to draw")

	_, err := env.run("frame", "--width", "100")
	assert.Error(t, err)
}

func writeGrayPNG(t *testing.T, dir, name string, level uint8) string {
	t.Helper()
	return testutil.WriteFile(t, dir, name, testutil.GrayPNG(t, 64, 48, level))
}

func TestMeterCommand(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()

	mid := writeGrayPNG(t, dir, "mid.png", 128)
	bright := writeGrayPNG(t, dir, "bright.png", 250)
	junk := testutil.WriteFile(t, dir, "notes.txt", []byte("not an image"))

	out := env.mustRun("meter", mid, junk, bright)
	assert.Contains(t, out, "mid.png")
	assert.Contains(t, out, "bright.png")
	assert.Contains(t, out, "1 of 3 images could not be measured")

	want := meter.SuggestCondition(meter.LuminanceToEV(128)).Name
	assert.Contains(t, out, want)

	out = env.mustRun("readings")
	assert.Contains(t, out, "mid.png")
	assert.Contains(t, out, "bright.png")

	out = env.mustRun("readings", "--limit", "1")
	assert.Contains(t, out, "bright.png")
	assert.NotContains(t, out, "mid.png")
}

func TestMeterCommand_Apply(t *testing.T) {
	env := newTestEnv(t)
	path := writeGrayPNG(t, t.TempDir(), "scene.png", 128)

	want := meter.SuggestCondition(meter.LuminanceToEV(128)).Name
	out := env.mustRun("meter", "--apply", "--no-save", path)
	assert.Contains(t, out, fmt.Sprintf("Selected %q", want))

	assert.Regexp(t, `Condition\s+`+regexp.QuoteMeta(want), env.mustRun("settings", "show"))
	assert.Contains(t, env.mustRun("readings"), "No readings yet")
}

func TestMeterCommand_NothingMeasured(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("meter", filepath.Join(t.TempDir(), "missing.jpg"))
	assert.ErrorContains(t, err, "no image could be measured")
}
