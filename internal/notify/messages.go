package notify

import (
	"fmt"

	"github.com/clinicasol/turnero/internal/booking"
)

func patientConfirmation(b *booking.Booking) EmailMessage {
	insurerLine := b.InsurerLine()
	if b.OutOfNetwork {
		insurerLine += " (out of network)"
	}
	body := fmt.Sprintf(`Hello %s,

Your appointment has been booked:
- Doctor: %s
- Date: %s
- Time: %s
- Insurer: %s
- Reason: %s

The clinic will contact you with the consultation fee.
Thank you.`,
		b.PatientName, doctorLine(b), b.Date, b.Time, insurerLine, b.Reason)

	return EmailMessage{
		To:      b.PatientEmail,
		ToName:  b.PatientName,
		Subject: "Appointment confirmation",
		Body:    body,
	}
}

func clinicNotice(b *booking.Booking, clinicEmail string) EmailMessage {
	outOfNetwork := "no"
	if b.OutOfNetwork {
		outOfNetwork = "yes"
	}
	body := fmt.Sprintf(`New appointment booked:
- Booking ID: %s
- Doctor: %s
- Date: %s %s
- Patient: %s <%s>
- Insurer: %s
- Out of network: %s
- Reason: %s

Please send the consultation fee to the patient.`,
		b.ID, doctorLine(b), b.Date, b.Time, b.PatientName, b.PatientEmail,
		b.InsurerLine(), outOfNetwork, b.Reason)

	return EmailMessage{
		To:      clinicEmail,
		Subject: "New appointment booked",
		Body:    body,
	}
}

func doctorLine(b *booking.Booking) string {
	if b.DoctorName != "" {
		return b.DoctorName
	}
	return "#" + b.DoctorID
}
