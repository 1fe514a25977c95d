package rsvp

// Summary is the set of counts shown above the response list.
type Summary struct {
	Attending   int
	Declining   int
	TotalGuests int
}

// Summarize counts attendance over responses. Guests of declining
// responses are never counted, whatever their guests_count says.
func Summarize(responses []Response) Summary {
	var sum Summary
	for _, r := range responses {
		switch r.Attendance {
		case string(AttendanceYes):
			sum.Attending++
			sum.TotalGuests += r.Guests()
		case string(AttendanceNo):
			sum.Declining++
		}
	}
	return sum
}
