package styles

// Status glyphs used by the printer and doctor output.
var (
	IconCheck   = "✔"
	IconCross   = "✘"
	IconWarn    = "!"
	IconInfo    = "•"
	IconArrow   = "→"
	IconGit     = "\ue702"
	IconUpgrade = "↑"
)
