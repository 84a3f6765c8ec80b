package zone

// Zone is one of the three stress severity bands
type Zone int

const (
	Low    Zone = iota // 1-3
	Medium             // 4-6
	High               // 7-9
)

// Style describes how a zone indicator is painted: a left-to-right gradient
type Style struct {
	Class string // Tailwind-style class string kept for parity with the web widget
	From  string // Gradient start (hex)
	To    string // Gradient end (hex)
}

// Info is the fixed record associated with a zone
type Info struct {
	Zone  Zone
	TabID string // Selector id for the zone's tab ("1-3", "4-6", "7-9")
	Title string // Short tab title ("Green Zone")
	Label string // Indicator label ("Green Zone (Calm)")
	Style Style
	Min   Level
	Max   Level
}

var zones = [...]Info{
	Low: {
		Zone:  Low,
		TabID: "1-3",
		Title: "Green Zone",
		Label: "Green Zone (Calm)",
		Style: Style{
			Class: "bg-gradient-to-r from-green-300 to-green-500",
			From:  "#86EFAC",
			To:    "#22C55E",
		},
		Min: 1,
		Max: 3,
	},
	Medium: {
		Zone:  Medium,
		TabID: "4-6",
		Title: "Yellow Zone",
		Label: "Yellow Zone (Elevated)",
		Style: Style{
			Class: "bg-gradient-to-r from-yellow-300 to-yellow-500",
			From:  "#FDE047",
			To:    "#EAB308",
		},
		Min: 4,
		Max: 6,
	},
	High: {
		Zone:  High,
		TabID: "7-9",
		Title: "Red Zone",
		Label: "Red Zone (High)",
		Style: Style{
			Class: "bg-gradient-to-r from-red-400 to-red-600",
			From:  "#F87171",
			To:    "#DC2626",
		},
		Min: 7,
		Max: 9,
	},
}

// All returns the zones in display order
func All() []Zone {
	return []Zone{Low, Medium, High}
}

// Classify maps a stress level to its zone.
// Level values are kept within [MinLevel, MaxLevel] by NewLevel/Clamp, so
// every input lands in exactly one closed range.
func Classify(level Level) Zone {
	for _, info := range zones {
		if level >= info.Min && level <= info.Max {
			return info.Zone
		}
	}
	// Unreachable for a clamped level; treat anything above the table as High
	if level < zones[Low].Min {
		return Low
	}
	return High
}

// FromTabID resolves a tab selector id back to its zone
func FromTabID(id string) (Zone, bool) {
	for _, info := range zones {
		if info.TabID == id {
			return info.Zone, true
		}
	}
	return Low, false
}

// Valid reports whether z is one of the three defined zones
func (z Zone) Valid() bool {
	return z >= Low && z <= High
}

// Info returns the fixed record for the zone
func (z Zone) Info() Info {
	if !z.Valid() {
		return zones[Low]
	}
	return zones[z]
}

func (z Zone) TabID() string { return z.Info().TabID }
func (z Zone) Title() string { return z.Info().Title }
func (z Zone) Label() string { return z.Info().Label }
func (z Zone) Style() Style  { return z.Info().Style }

// Range returns the closed level range covered by the zone
func (z Zone) Range() (Level, Level) {
	info := z.Info()
	return info.Min, info.Max
}

// Next returns the following zone in display order, wrapping around
func (z Zone) Next() Zone {
	return Zone((int(z) + 1) % len(zones))
}

// Prev returns the preceding zone in display order, wrapping around
func (z Zone) Prev() Zone {
	return Zone((int(z) + len(zones) - 1) % len(zones))
}

func (z Zone) String() string {
	switch z {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// Parse accepts a zone name ("low"), a tab id ("1-3") or a tab title
// prefix ("green")
func Parse(s string) (Zone, bool) {
	switch s {
	case "low", "green":
		return Low, true
	case "medium", "yellow":
		return Medium, true
	case "high", "red":
		return High, true
	}
	return FromTabID(s)
}
