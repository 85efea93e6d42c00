package probe

import (
	"regexp"
	"strings"

	"github.com/sysprobe/sysprobe/internal/parse"
	"github.com/sysprobe/sysprobe/internal/report"
)

var pipewireVersion = regexp.MustCompile(`"([0-9.]+)"`)

// Audio gathers sound hardware and the userspace audio stack (ALSA,
// PulseAudio, PipeWire).
func Audio(ctx *Context) *report.Section {
	sec := report.NewSection()

	setDeviceFields(sec, "audio_hardware", "audio_device", scanPCI(ctx, pciClassMultimedia, "audio", "sound"))

	if ctx.Exec.LookPath("aplay") {
		if res := ctx.Exec.Run("aplay", "-l"); res.OK() {
			cards := 0
			for _, line := range strings.Split(res.Stdout, "\n") {
				if strings.HasPrefix(line, "card ") {
					cards++
				}
			}
			sec.Set("alsa_sound_cards", report.IntValue(int64(cards)))
		}
	}

	if ctx.Exec.LookPath("pactl") {
		if res := ctx.Exec.Run("pactl", "info"); res.OK() {
			for _, line := range strings.Split(res.Stdout, "\n") {
				if strings.Contains(line, "Server Version:") {
					_, value, _ := parse.SplitKeyValue(line, ":")
					sec.SetString("pulseaudio_version", value)
					break
				}
			}
		}
	}

	if ctx.Exec.LookPath("pw-cli") {
		if res := ctx.Exec.Run("pw-cli", "info"); res.OK() {
			for _, line := range strings.Split(res.Stdout, "\n") {
				if !strings.Contains(strings.ToLower(line), "version") {
					continue
				}
				if v, ok := parse.FirstSubmatch(pipewireVersion, line); ok {
					sec.SetString("pipewire_version", v)
					break
				}
			}
		}
	}

	return sec
}
