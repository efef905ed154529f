package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Question
	Active
	Inactive
	Link
	Trash
	Plus
	User
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "💩",
		nerd:    "",
		plain:   "✗",
		kaomoji: "(×_×)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "👾",
		nerd:    "",
		plain:   "~",
		kaomoji: "(・_・)",
		squares: "🟦",
	},
	Question: {
		emoji:   "🤨",
		nerd:    "",
		plain:   "?",
		kaomoji: "(°ロ°)?",
		squares: "🟨",
	},
	Active: {
		emoji:   "🟢",
		nerd:    "",
		plain:   "●",
		kaomoji: "(•‿•)",
		squares: "🟩",
	},
	Inactive: {
		emoji:   "⚪",
		nerd:    "",
		plain:   "○",
		kaomoji: "(-_-)",
		squares: "⬜",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "->",
		kaomoji: "(☞ﾟヮﾟ)☞",
		squares: "🟪",
	},
	Trash: {
		emoji:   "🗑️",
		nerd:    "",
		plain:   "x",
		kaomoji: "(╯°□°)╯",
		squares: "🟫",
	},
	Plus: {
		emoji:   "➕",
		nerd:    "",
		plain:   "+",
		kaomoji: "(＾▽＾)",
		squares: "🟧",
	},
	User: {
		emoji:   "👤",
		nerd:    "",
		plain:   "@",
		kaomoji: "(^_^)/",
		squares: "⬛",
	},
}
