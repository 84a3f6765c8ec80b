package strategy

import "github.com/accesstechnology-mike/stressslider/internal/zone"

// List is an ordered set of coping strategies. Order is display order and
// duplicates are allowed.
type List []string

// Clone returns a copy that shares no backing array with l.
// A nil list clones to an empty, non-nil list so it encodes as [] not null.
func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Equal reports whether two lists hold the same entries in the same order
func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

var keys = map[zone.Zone]string{
	zone.Low:    "lowStressStrategies",
	zone.Medium: "mediumStressStrategies",
	zone.High:   "highStressStrategies",
}

var defaults = map[zone.Zone]List{
	zone.Low: {
		"Take deep breaths for 2 minutes",
		"Count to 10 slowly",
		"Notice 5 things I can see around me",
		"Stretch my arms and legs",
	},
	zone.Medium: {
		"Take a short walk",
		"Listen to calming music",
		"Use a fidget toy",
		"Talk to someone I trust",
	},
	zone.High: {
		"Find a quiet space",
		"Use my breathing technique",
		"Apply deep pressure (weighted blanket)",
		"Use my emergency contact",
	},
}

// Key returns the storage key for a zone's list
func Key(z zone.Zone) string {
	return keys[z.Info().Zone]
}

// Defaults returns a fresh copy of the built-in list for a zone
func Defaults(z zone.Zone) List {
	return defaults[z.Info().Zone].Clone()
}
