package notify

import (
	htmltemplate "html/template"
	texttemplate "text/template"
)

type bookingEmailData struct {
	FirstName        string
	FullName         string
	Email            string
	Retreat          string
	Dates            string
	Accommodation    string
	AmountPaid       string
	RemainingBalance string
	SessionID        string
	Gender           string
	Age              string
	BeenHiking       string
	HikingExperience string
	BookedAt         string
}

type contactEmailData struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

var confirmationHTML = htmltemplate.Must(htmltemplate.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <div style="background: #6B8E23; color: #fff; padding: 32px 20px; text-align: center;">
    <h1 style="margin: 0;">Booking Confirmed!</h1>
    <p style="margin: 8px 0 0 0;">Get ready for your adventure, {{.FirstName}}</p>
  </div>
  <div style="padding: 24px 20px;">
    <p>Thank you for booking with Wild Adventure Coach. Your deposit has been received and your place is reserved.</p>
    <div style="background: #f9f9f9; padding: 20px; border-left: 4px solid #6B8E23;">
      <h2 style="color: #6B8E23; margin-top: 0;">Booking Details</h2>
      <p><strong>Retreat:</strong> {{.Retreat}}</p>
      {{if .Dates}}<p><strong>Dates:</strong> {{.Dates}}</p>{{end}}
      {{if .Accommodation}}<p><strong>Accommodation:</strong> {{.Accommodation}}</p>{{end}}
      <p><strong>Deposit paid:</strong> {{.AmountPaid}}</p>
      {{if .RemainingBalance}}<p><strong>Remaining balance:</strong> {{.RemainingBalance}}</p>{{end}}
      <p><strong>Booking reference:</strong> {{.SessionID}}</p>
    </div>
    <p>We will be in touch with everything you need to prepare. Reply to this email with any questions.</p>
  </div>
  <div style="text-align: center; font-size: 12px; color: #888; padding: 16px;">
    <a href="https://wildadventurecoach.com" style="color: #C65D2B;">wildadventurecoach.com</a>
  </div>
</body>
</html>
`))

var confirmationText = texttemplate.Must(texttemplate.New("confirmation").Parse(`Booking Confirmed!

Hi {{.FirstName}},

Thank you for booking with Wild Adventure Coach. Your deposit has been received and your place is reserved.

Retreat: {{.Retreat}}
{{if .Dates}}Dates: {{.Dates}}
{{end}}{{if .Accommodation}}Accommodation: {{.Accommodation}}
{{end}}Deposit paid: {{.AmountPaid}}
{{if .RemainingBalance}}Remaining balance: {{.RemainingBalance}}
{{end}}Booking reference: {{.SessionID}}

We will be in touch with everything you need to prepare.

Wild Adventure Coach
https://wildadventurecoach.com
`))

var adminAlertHTML = htmltemplate.Must(htmltemplate.New("admin").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #6B8E23;">New Booking Received</h1>
  <table cellpadding="6">
    <tr><td><strong>Name</strong></td><td>{{.FullName}}</td></tr>
    <tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>
    <tr><td><strong>Retreat</strong></td><td>{{.Retreat}}</td></tr>
    {{if .Dates}}<tr><td><strong>Dates</strong></td><td>{{.Dates}}</td></tr>{{end}}
    {{if .Accommodation}}<tr><td><strong>Accommodation</strong></td><td>{{.Accommodation}}</td></tr>{{end}}
    <tr><td><strong>Amount paid</strong></td><td>{{.AmountPaid}}</td></tr>
    {{if .RemainingBalance}}<tr><td><strong>Remaining balance</strong></td><td>{{.RemainingBalance}}</td></tr>{{end}}
    {{if .Gender}}<tr><td><strong>Gender</strong></td><td>{{.Gender}}</td></tr>{{end}}
    {{if .Age}}<tr><td><strong>Age</strong></td><td>{{.Age}}</td></tr>{{end}}
    {{if .BeenHiking}}<tr><td><strong>Been hiking</strong></td><td>{{.BeenHiking}}</td></tr>{{end}}
    {{if .HikingExperience}}<tr><td><strong>Hiking experience</strong></td><td>{{.HikingExperience}}</td></tr>{{end}}
    <tr><td><strong>Stripe session</strong></td><td>{{.SessionID}}</td></tr>
    <tr><td><strong>Booked at</strong></td><td>{{.BookedAt}}</td></tr>
  </table>
  <p style="font-size: 12px; color: #888;">This is an automated notification from your booking system</p>
</body>
</html>
`))

var contactHTML = htmltemplate.Must(htmltemplate.New("contact").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #6B8E23;">New Contact Form Message</h1>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  {{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
  <div style="background: #f9f9f9; padding: 16px; border-left: 4px solid #6B8E23; white-space: pre-wrap;">{{.Message}}</div>
</body>
</html>
`))
