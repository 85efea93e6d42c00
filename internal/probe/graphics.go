package probe

import (
	"os"
	"strings"

	"github.com/sysprobe/sysprobe/internal/parse"
	"github.com/sysprobe/sysprobe/internal/report"
)

var waylandCompositors = []string{"sway", "weston", "mutter", "kwin_wayland", "river", "wayfire", "hyprland"}

var x11WindowManagers = []string{"i3", "awesome", "dwm", "bspwm", "openbox", "xfwm4", "kwin"}

var graphicsModules = []string{"i915", "nouveau", "nvidia", "amdgpu", "radeon"}

// Graphics gathers GPU hardware, display server, drivers and, outside brief
// mode, OpenGL/Vulkan capability.
func Graphics(ctx *Context) *report.Section {
	sec := report.NewSection()

	setDeviceFields(sec, "gpu", "gpu", scanPCI(ctx, pciClassDisplay, "vga", "3d", "display"))
	addDisplayServerFields(ctx, sec)
	sec.SetString("graphics_drivers", loadedGraphicsDrivers(ctx))

	if !ctx.Brief {
		addOpenGLFields(ctx, sec)
		addVulkanFields(ctx, sec)
	}

	return sec
}

// addDisplayServerFields classifies the session. A Wayland display variable
// or a wayland session type wins over an X11 DISPLAY; neither means a
// console/TTY session.
func addDisplayServerFields(ctx *Context, sec *report.Section) {
	sessionType := os.Getenv("XDG_SESSION_TYPE")
	if sessionType == "" {
		sessionType = "Unknown"
	}
	sec.SetString("session_type", sessionType)

	switch {
	case os.Getenv("WAYLAND_DISPLAY") != "" || sessionType == "wayland":
		sec.SetString("display_server", "Wayland")
		sec.SetString("compositor", firstRunningProcess(ctx, waylandCompositors, "Unknown Wayland Compositor"))
	case os.Getenv("DISPLAY") != "":
		sec.SetString("display_server", "X11")
		sec.SetString("window_manager", firstRunningProcess(ctx, x11WindowManagers, "Unknown WM"))
	default:
		sec.SetString("display_server", "Console/TTY")
	}
}

// firstRunningProcess scans a fixed candidate list with pgrep, first match
// wins.
func firstRunningProcess(ctx *Context, candidates []string, fallback string) string {
	for _, name := range candidates {
		if ctx.Exec.Run("pgrep", "-x", name).OK() {
			return name
		}
	}
	return fallback
}

func loadedGraphicsDrivers(ctx *Context) string {
	var loaded []string
	for _, module := range graphicsModules {
		if len(ctx.Exec.Glob("/sys/module/"+module)) > 0 {
			loaded = append(loaded, module)
		}
	}
	if len(loaded) == 0 {
		return "Unknown"
	}
	return strings.Join(loaded, ", ")
}

func addOpenGLFields(ctx *Context, sec *report.Section) {
	if !ctx.Exec.LookPath("glxinfo") || os.Getenv("DISPLAY") == "" {
		return
	}
	res := ctx.Exec.Run("glxinfo")
	if !res.OK() {
		return
	}
	for _, line := range strings.Split(res.Stdout, "\n") {
		key, value, ok := parse.SplitKeyValue(line, ":")
		if !ok {
			continue
		}
		switch key {
		case "OpenGL vendor string":
			sec.SetString("opengl_vendor", value)
		case "OpenGL renderer string":
			sec.SetString("opengl_renderer", value)
		case "OpenGL version string":
			sec.SetString("opengl_version", value)
		}
	}
}

func addVulkanFields(ctx *Context, sec *report.Section) {
	if !ctx.Exec.LookPath("vulkaninfo") {
		return
	}
	res := ctx.Exec.Run("vulkaninfo", "--summary")
	if !res.OK() || res.Stdout == "" {
		sec.SetString("vulkan_support", "Not available")
		return
	}
	for _, line := range strings.Split(res.Stdout, "\n") {
		if strings.Contains(line, "Vulkan Instance Version:") {
			_, value, _ := parse.SplitKeyValue(line, ":")
			sec.SetString("vulkan_version", value)
			return
		}
	}
}
