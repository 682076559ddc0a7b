package email

import "fmt"

// SuspensionNotice builds the message sent to a salon owner when billing
// suspends the salon.
func SuspensionNotice(ownerEmail, salonName string) SendEmailParams {
	return SendEmailParams{
		SendTo:  ownerEmail,
		Subject: fmt.Sprintf("%s is paused", salonName),
		Tag:     "tenant-suspended",
		BodyHTML: fmt.Sprintf(
			`<p>Your salon <strong>%s</strong> has been paused because of a billing issue.</p>`+
				`<p>Visitors will see a generic page until the subscription is settled. `+
				`Update your payment details to bring the salon back online.</p>`,
			salonName),
	}
}

// ReactivationNotice builds the message sent when a suspended salon comes
// back online.
func ReactivationNotice(ownerEmail, salonName string) SendEmailParams {
	return SendEmailParams{
		SendTo:  ownerEmail,
		Subject: fmt.Sprintf("%s is back online", salonName),
		Tag:     "tenant-reactivated",
		BodyHTML: fmt.Sprintf(
			`<p>Payment received. Your salon <strong>%s</strong> is serving visitors again.</p>`,
			salonName),
	}
}
