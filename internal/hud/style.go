package hud

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorPanel     = rl.NewColor(12, 12, 16, 210)
	colorElement   = rl.NewColor(30, 28, 34, 255)
	colorAccent    = rl.NewColor(196, 164, 92, 255)
	colorText      = rl.NewColor(226, 222, 210, 255)
	colorTextMuted = rl.NewColor(140, 136, 128, 255)
	colorBorder    = rl.NewColor(70, 64, 58, 255)
	colorIndicator = rl.NewColor(240, 230, 200, 255)
)

// initStyle applies the muted theme to raygui.
func initStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorPanel))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(colorBorder))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, gui.NewColorPropertyValue(colorBorder))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 18)
}
