package health

type CalendarStatus interface {
	Ready() bool
}

type SMSStatus interface {
	Configured() bool
}
