package board

import "math/rand/v2"

// Fixed palettes used when the caller does not choose a look.
var (
	ColorPalette = []string{
		"bg-red-100", "bg-orange-100", "bg-amber-100", "bg-green-100", "bg-emerald-100",
		"bg-teal-100", "bg-cyan-100", "bg-sky-100", "bg-blue-100", "bg-indigo-100",
		"bg-violet-100", "bg-purple-100", "bg-fuchsia-100", "bg-pink-100", "bg-rose-100",
	}

	AvatarPalette = []string{
		"🐶", "🐱", "🐭", "🐹", "🐰", "🦊", "🐻", "🐼", "🐨",
		"🐯", "🦁", "🐮", "🐷", "🐸", "🐵", "🦄", "🐝", "🐞",
	}

	IconPalette = []string{"🧹", "🛏️", "🧸", "🦷", "📚", "🍽️", "🪴", "🐕", "🗑️", "🧺"}
)

func pick(options []string) string {
	return options[rand.IntN(len(options))]
}
