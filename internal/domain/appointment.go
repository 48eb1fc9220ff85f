package domain

import (
	"fmt"
	"strings"
	"time"
)

// Статусы события в календаре
const (
	StatusConfirmed = "confirmed"
	StatusTentative = "tentative"
	StatusCancelled = "cancelled"
)

const defaultServiceType = "Všeobecný"

// Appointment запись клиента в автосервис
// Источник истины - внешний календарь, EventID назначает календарь
type Appointment struct {
	EventID       string
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	ServiceType   string
	VehicleInfo   string
	Notes         string
	Start         time.Time
	End           time.Time
	Status        string
	HTMLLink      string
}

// AppointmentPatch частичное обновление записи: меняются только непустые (не nil) поля
type AppointmentPatch struct {
	CustomerName  *string
	CustomerPhone *string
	CustomerEmail *string
	ServiceType   *string
	VehicleInfo   *string
	Notes         *string
	Start         *time.Time
	End           *time.Time
}

// ChangesWindow true, если патч затрагивает время записи
func (p AppointmentPatch) ChangesWindow() bool {
	return p.Start != nil || p.End != nil
}

// IsEmpty true, если патч ничего не меняет
func (p AppointmentPatch) IsEmpty() bool {
	return p.CustomerName == nil && p.CustomerPhone == nil && p.CustomerEmail == nil &&
		p.ServiceType == nil && p.VehicleInfo == nil && p.Notes == nil && !p.ChangesWindow()
}

// Apply накладывает патч поверх записи и возвращает новую копию
// Если меняется только начало, конец сдвигается так, чтобы сохранить длительность
func (a Appointment) Apply(p AppointmentPatch) Appointment {
	merged := a
	if p.CustomerName != nil {
		merged.CustomerName = *p.CustomerName
	}
	if p.CustomerPhone != nil {
		merged.CustomerPhone = *p.CustomerPhone
	}
	if p.CustomerEmail != nil {
		email := *p.CustomerEmail
		merged.CustomerEmail = &email
	}
	if p.ServiceType != nil {
		merged.ServiceType = *p.ServiceType
	}
	if p.VehicleInfo != nil {
		merged.VehicleInfo = *p.VehicleInfo
	}
	if p.Notes != nil {
		merged.Notes = *p.Notes
	}
	if p.Start != nil {
		duration := a.End.Sub(a.Start)
		merged.Start = *p.Start
		merged.End = p.Start.Add(duration)
	}
	if p.End != nil {
		merged.End = *p.End
	}
	return merged
}

// Reminder напоминание календаря о событии
type Reminder struct {
	Method  string // email | popup
	Minutes int
}

// CalendarEvent событие внешнего календаря в том виде, в котором его читает и пишет шлюз
type CalendarEvent struct {
	ID          string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
	Status      string
	HTMLLink    string
	AllDay      bool // событие на весь день, время хранится как дата
	Private     map[string]string
	Reminders   []Reminder
}

// IsBooking true, если событие создано сервисом: данные клиента лежат в private properties
func (ev *CalendarEvent) IsBooking() bool {
	return ev.Private[PropCustomerName] != "" || ev.Private[PropCustomerPhone] != ""
}

// Patched возвращает копию события с наложенной записью merged
// Поля, которых нет в Appointment, и посторонние private properties сохраняются.
// У событий, созданных вручную, заголовок и описание не меняются, а в private
// попадают только поля из патча
func (ev *CalendarEvent) Patched(merged Appointment, patch AppointmentPatch, loc *time.Location) *CalendarEvent {
	out := *ev
	out.Start = merged.Start.In(loc)
	out.End = merged.End.In(loc)
	if out.TimeZone == "" || !merged.Start.Equal(ev.Start) {
		out.TimeZone = loc.String()
	}
	out.Status = merged.Status
	out.Reminders = append([]Reminder(nil), ev.Reminders...)

	out.Private = make(map[string]string, len(ev.Private))
	for k, v := range ev.Private {
		out.Private[k] = v
	}

	fields := patch.privateFields()
	if ev.IsBooking() {
		out.Summary = merged.Summary()
		out.Description = merged.Description()
		fields = merged.privateFields()
	}
	for k, v := range fields {
		out.Private[k] = v
	}
	return &out
}

// ToEvent формирует событие календаря для записи
// Данные клиента кладутся в описание и private properties, не в attendees:
// сервисный аккаунт календаря не может приглашать участников без domain-wide delegation
func (a Appointment) ToEvent(loc *time.Location, reminders []Reminder) *CalendarEvent {
	return &CalendarEvent{
		ID:          a.EventID,
		Summary:     a.Summary(),
		Description: a.Description(),
		Start:       a.Start.In(loc),
		End:         a.End.In(loc),
		TimeZone:    loc.String(),
		Status:      a.Status,
		Private:     a.privateFields(),
		Reminders:   reminders,
	}
}

func (a Appointment) privateFields() map[string]string {
	private := map[string]string{
		PropCustomerName:  a.CustomerName,
		PropCustomerPhone: a.CustomerPhone,
		PropServiceType:   a.ServiceType,
		PropVehicleInfo:   a.VehicleInfo,
		PropNotes:         a.Notes,
	}
	if a.CustomerEmail != nil {
		private[PropCustomerEmail] = *a.CustomerEmail
	}
	return private
}

func (p AppointmentPatch) privateFields() map[string]string {
	private := make(map[string]string)
	set := func(key string, v *string) {
		if v != nil {
			private[key] = *v
		}
	}
	set(PropCustomerName, p.CustomerName)
	set(PropCustomerPhone, p.CustomerPhone)
	set(PropCustomerEmail, p.CustomerEmail)
	set(PropServiceType, p.ServiceType)
	set(PropVehicleInfo, p.VehicleInfo)
	set(PropNotes, p.Notes)
	return private
}

// Summary заголовок события
func (a Appointment) Summary() string {
	serviceType := a.ServiceType
	if serviceType == "" {
		serviceType = defaultServiceType
	}
	return fmt.Sprintf("Servis - %s (%s)", a.CustomerName, serviceType)
}

// Description человекочитаемое описание события для сотрудников сервиса
func (a Appointment) Description() string {
	lines := []string{
		"Zákazník: " + a.CustomerName,
		"Telefón: " + a.CustomerPhone,
	}
	if a.CustomerEmail != nil && *a.CustomerEmail != "" {
		lines = append(lines, "Email: "+*a.CustomerEmail)
	}
	if a.ServiceType != "" {
		lines = append(lines, "Typ servisu: "+a.ServiceType)
	}
	if a.VehicleInfo != "" {
		lines = append(lines, "Vozidlo: "+a.VehicleInfo)
	}
	if a.Notes != "" {
		lines = append(lines, "Poznámky: "+a.Notes)
	}
	return strings.Join(lines, "\n")
}

// AppointmentFromEvent восстанавливает запись из события календаря
// Поля клиента берутся из private properties; у событий, созданных вручную,
// имя и заметки берутся из заголовка и описания
func AppointmentFromEvent(ev *CalendarEvent) Appointment {
	a := Appointment{
		EventID:  ev.ID,
		Start:    ev.Start,
		End:      ev.End,
		Status:   ev.Status,
		HTMLLink: ev.HTMLLink,
	}

	a.CustomerName = ev.Private[PropCustomerName]
	a.CustomerPhone = ev.Private[PropCustomerPhone]
	a.ServiceType = ev.Private[PropServiceType]
	a.VehicleInfo = ev.Private[PropVehicleInfo]
	a.Notes = ev.Private[PropNotes]
	if email, ok := ev.Private[PropCustomerEmail]; ok && email != "" {
		a.CustomerEmail = &email
	}
	if a.CustomerName == "" {
		a.CustomerName = ev.Summary
	}
	if _, ok := ev.Private[PropNotes]; !ok && !ev.IsBooking() {
		a.Notes = ev.Description
	}
	return a
}

// TimePreference предпочтение клиента по времени суток для поиска альтернатив
type TimePreference string

const (
	PreferenceMorning   TimePreference = "morning"
	PreferenceAfternoon TimePreference = "afternoon"
	PreferenceAny       TimePreference = "any"
)

// IsValid проверяет, что предпочтение известно
func (p TimePreference) IsValid() bool {
	switch p {
	case PreferenceMorning, PreferenceAfternoon, PreferenceAny:
		return true
	default:
		return false
	}
}

// Matches true, если слот подходит под предпочтение (час считается в зоне слота)
func (p TimePreference) Matches(s Slot) bool {
	switch p {
	case PreferenceMorning:
		return s.Start.Hour() < AfternoonStartHour
	case PreferenceAfternoon:
		return s.Start.Hour() >= AfternoonStartHour
	default:
		return true
	}
}
