package models

// Slot is one of the three daily attendance periods.
type Slot string

const (
	SlotMorning   Slot = "morning"
	SlotAfternoon Slot = "afternoon"
	SlotEvening   Slot = "evening"
)

// Slots lists every slot in display order.
var Slots = []Slot{SlotMorning, SlotAfternoon, SlotEvening}

// Valid returns true when the slot is a supported value.
func (s Slot) Valid() bool {
	switch s {
	case SlotMorning, SlotAfternoon, SlotEvening:
		return true
	default:
		return false
	}
}

// AttendanceRecord is one raw attendance write. Slots that were not part of
// the write stay nil; CapturedImages holds inline data URLs keyed by slot.
type AttendanceRecord struct {
	ID             string          `json:"id"`
	StudentID      string          `json:"student_id" validate:"required"`
	Date           string          `json:"date" validate:"required,datetime=2006-01-02"`
	Morning        *bool           `json:"morning,omitempty"`
	Afternoon      *bool           `json:"afternoon,omitempty"`
	Evening        *bool           `json:"evening,omitempty"`
	CapturedImages map[Slot]string `json:"captured_images,omitempty"`
	SchoolID       string          `json:"school_id,omitempty"`
}

// Clone returns a deep copy.
func (r AttendanceRecord) Clone() AttendanceRecord {
	out := r
	out.Morning = cloneBool(r.Morning)
	out.Afternoon = cloneBool(r.Afternoon)
	out.Evening = cloneBool(r.Evening)
	if r.CapturedImages != nil {
		out.CapturedImages = make(map[Slot]string, len(r.CapturedImages))
		for k, v := range r.CapturedImages {
			out.CapturedImages[k] = v
		}
	}
	return out
}

// Presence returns the slot's flag, nil when the record leaves it undefined.
func (r AttendanceRecord) Presence(slot Slot) *bool {
	switch slot {
	case SlotMorning:
		return r.Morning
	case SlotAfternoon:
		return r.Afternoon
	case SlotEvening:
		return r.Evening
	default:
		return nil
	}
}

// Photo returns the captured image for the slot, if any.
func (r AttendanceRecord) Photo(slot Slot) string {
	return r.CapturedImages[slot]
}

// SetPresence defines the slot on the record together with its photo.
func (r *AttendanceRecord) SetPresence(slot Slot, present bool, photo string) {
	v := present
	switch slot {
	case SlotMorning:
		r.Morning = &v
	case SlotAfternoon:
		r.Afternoon = &v
	case SlotEvening:
		r.Evening = &v
	default:
		return
	}
	if r.CapturedImages == nil {
		r.CapturedImages = make(map[Slot]string, 1)
	}
	r.CapturedImages[slot] = photo
}

// AttendancePatch is a shallow merge for attendance updates.
type AttendancePatch struct {
	Date           *string         `json:"date,omitempty"`
	Morning        *bool           `json:"morning,omitempty"`
	Afternoon      *bool           `json:"afternoon,omitempty"`
	Evening        *bool           `json:"evening,omitempty"`
	CapturedImages map[Slot]string `json:"captured_images,omitempty"`
}

// Apply merges the patch into r. CapturedImages is replaced as a whole.
func (p AttendancePatch) Apply(r *AttendanceRecord) {
	setString(&r.Date, p.Date)
	if p.Morning != nil {
		r.Morning = cloneBool(p.Morning)
	}
	if p.Afternoon != nil {
		r.Afternoon = cloneBool(p.Afternoon)
	}
	if p.Evening != nil {
		r.Evening = cloneBool(p.Evening)
	}
	if p.CapturedImages != nil {
		r.CapturedImages = make(map[Slot]string, len(p.CapturedImages))
		for k, v := range p.CapturedImages {
			r.CapturedImages[k] = v
		}
	}
}

// PresenceStatus is the tri-state presence shown in reports.
type PresenceStatus string

const (
	PresencePresent   PresenceStatus = "present"
	PresenceAbsent    PresenceStatus = "absent"
	PresenceNotMarked PresenceStatus = "not_marked"
)

// SlotAttendance is one slot of a grouped day.
type SlotAttendance struct {
	Status PresenceStatus `json:"status"`
	Photo  string         `json:"photo,omitempty"`
}

// DailyAttendance is a calendar day with its three slots merged.
type DailyAttendance struct {
	Date      string         `json:"date"`
	Morning   SlotAttendance `json:"morning"`
	Afternoon SlotAttendance `json:"afternoon"`
	Evening   SlotAttendance `json:"evening"`
}

// Slot returns a pointer to the given slot entry.
func (d *DailyAttendance) Slot(slot Slot) *SlotAttendance {
	switch slot {
	case SlotMorning:
		return &d.Morning
	case SlotAfternoon:
		return &d.Afternoon
	case SlotEvening:
		return &d.Evening
	default:
		return nil
	}
}

// AttendanceStats summarises grouped days.
type AttendanceStats struct {
	Present    int `json:"present"`
	Absent     int `json:"absent"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// AttendanceRange selects the reporting window.
type AttendanceRange string

const (
	RangeDaily   AttendanceRange = "daily"
	RangeWeekly  AttendanceRange = "weekly"
	RangeMonthly AttendanceRange = "monthly"
	RangeAll     AttendanceRange = "all"
)

// Valid returns true when the range is supported.
func (r AttendanceRange) Valid() bool {
	switch r {
	case RangeDaily, RangeWeekly, RangeMonthly, RangeAll:
		return true
	default:
		return false
	}
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
