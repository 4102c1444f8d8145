package sector

// LockGranularity selects the unit an attendance lock applies to.
type LockGranularity string

const (
	LockByDate  LockGranularity = "date"
	LockByMonth LockGranularity = "month"
)

// Profile describes which optional attendance behavior a vertical carries.
// The attendance store is generic; all sector variance lives here.
type Profile struct {
	Code            string
	TracksTime      bool
	MultiShift      bool
	LockGranularity LockGranularity
	WageAware       bool
	DefaultLabel    string
	// Default shift window, "HH:MM", used when a present-mark arrives
	// without explicit hours.
	DefaultShiftStart string
	DefaultShiftEnd   string
}

var profiles = map[string]Profile{
	"education": {
		Code:            "education",
		TracksTime:      false,
		MultiShift:      false,
		LockGranularity: LockByMonth,
		WageAware:       true,
		DefaultLabel:    "class",
	},
	"hospitality": {
		Code:              "hospitality",
		TracksTime:        true,
		MultiShift:        true,
		LockGranularity:   LockByDate,
		WageAware:         true,
		DefaultLabel:      "shift",
		DefaultShiftStart: "09:00",
		DefaultShiftEnd:   "17:00",
	},
	"manufacturing": {
		Code:              "manufacturing",
		TracksTime:        true,
		MultiShift:        false,
		LockGranularity:   LockByDate,
		WageAware:         true,
		DefaultLabel:      "line",
		DefaultShiftStart: "08:00",
		DefaultShiftEnd:   "16:00",
	},
	"it": {
		Code:              "it",
		TracksTime:        true,
		MultiShift:        false,
		LockGranularity:   LockByMonth,
		WageAware:         true,
		DefaultLabel:      "project",
		DefaultShiftStart: "09:00",
		DefaultShiftEnd:   "17:00",
	},
	"personal": {
		Code:            "personal",
		TracksTime:      false,
		MultiShift:      false,
		LockGranularity: LockByDate,
		WageAware:       false,
		DefaultLabel:    "general",
	},
}

// ByCode returns the profile for a sector code, defaulting to "personal"
// for unknown codes so a bad token claim cannot crash a request.
func ByCode(code string) Profile {
	if p, ok := profiles[code]; ok {
		return p
	}
	return profiles["personal"]
}

func Known(code string) bool {
	_, ok := profiles[code]
	return ok
}
