package mail

type Message struct {
	To      string
	Subject string
	HTML    string
}

type ConsumerConfirmationData struct {
	Name          string
	InsuranceType string
	ZipCode       string
	SiteURL       string
}

type AgentNoticeData struct {
	AgentName     string
	LeadName      string
	LeadEmail     string
	LeadPhone     string
	ZipCode       string
	InsuranceType string
	DashboardURL  string
}
