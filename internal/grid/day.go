package grid

// Day is one of the six teaching days, named in Indonesian.
type Day string

const (
	Senin  Day = "Senin"
	Selasa Day = "Selasa"
	Rabu   Day = "Rabu"
	Kamis  Day = "Kamis"
	Jumat  Day = "Jumat"
	Sabtu  Day = "Sabtu"
)

// LabelHeader is the header text above the time-label column.
const LabelHeader = "Jam"

// Days is the fixed weekly order, Monday through Saturday.
var Days = []Day{Senin, Selasa, Rabu, Kamis, Jumat, Sabtu}

// ParseDay returns the Day named by name. Names are case-sensitive and
// Minggu (Sunday) is not a teaching day.
func ParseDay(name string) (Day, error) {
	if _, ok := dayIndex(name); !ok {
		return "", &DomainError{Day: name}
	}
	return Day(name), nil
}

func dayIndex(name string) (int, bool) {
	for i, d := range Days {
		if string(d) == name {
			return i, true
		}
	}
	return 0, false
}
