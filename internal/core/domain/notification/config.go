package notification

import "fmt"

// Config selects how notifications leave the process. It is resolved once
// at start-up and is one of ProviderService, CustomSMTP, Queue or DevConsole.
type Config interface {
	Transport() string
}

type ProviderService struct {
	Name string
	User string
	Pass string
}

func (c ProviderService) Transport() string {
	return "service:" + c.Name
}

type CustomSMTP struct {
	Host   string
	Port   int
	Secure bool
	User   string
	Pass   string
}

func (c CustomSMTP) Transport() string {
	return fmt.Sprintf("smtp:%s:%d", c.Host, c.Port)
}

// Queue hands messages to a broker; a worker delivers them with Direct.
type Queue struct {
	URL    string
	Queue  string
	Direct Config
}

func (c Queue) Transport() string {
	return "queue:" + c.Queue
}

// DevConsole only logs what would have been sent.
type DevConsole struct{}

func (c DevConsole) Transport() string {
	return "console"
}

const SESServiceName = "ses"

var wellKnownServices = map[string]CustomSMTP{
	"gmail":    {Host: "smtp.gmail.com", Port: 465, Secure: true},
	"outlook":  {Host: "smtp-mail.outlook.com", Port: 587},
	"hotmail":  {Host: "smtp-mail.outlook.com", Port: 587},
	"yahoo":    {Host: "smtp.mail.yahoo.com", Port: 465, Secure: true},
	"zoho":     {Host: "smtp.zoho.com", Port: 465, Secure: true},
	"sendgrid": {Host: "smtp.sendgrid.net", Port: 587},
	"mailgun":  {Host: "smtp.mailgun.org", Port: 465, Secure: true},
	"ethereal": {Host: "smtp.ethereal.email", Port: 587},
}

// ResolveService returns the SMTP settings of a well-known mail service with
// the service credentials applied.
func ResolveService(c ProviderService) (CustomSMTP, bool) {
	smtp, ok := wellKnownServices[c.Name]
	if !ok {
		return smtp, false
	}
	smtp.User = c.User
	smtp.Pass = c.Pass
	return smtp, true
}

func IsKnownService(name string) bool {
	if name == SESServiceName {
		return true
	}
	_, ok := wellKnownServices[name]
	return ok
}
