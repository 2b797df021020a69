package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
	"github.com/Grizzway/SalonSync-sub000/models"
)

var errDuplicate = fmt.Errorf("%w: E11000", apperrors.ErrDuplicateKey)

type memAllocator struct {
	mu   sync.Mutex
	next map[string]int
}

func newMemAllocator() *memAllocator {
	return &memAllocator{next: make(map[string]int)}
}

func (a *memAllocator) Next(_ context.Context, sequence string) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.next[sequence] == 0 {
		a.next[sequence] = models.BaseID
	}
	id := a.next[sequence]
	a.next[sequence]++
	return id, nil
}

// memTransactor runs fn directly. When atomic, a failing fn rolls the appointments back.
type memTransactor struct {
	atomic       bool
	appointments *memAppointments
}

func (t *memTransactor) Atomic() bool { return t.atomic }

func (t *memTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.atomic || t.appointments == nil {
		return fn(ctx)
	}
	snapshot := t.appointments.snapshot()
	if err := fn(ctx); err != nil {
		t.appointments.restore(snapshot)
		return err
	}
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []Message
}

func (n *recordingNotifier) Notify(_ context.Context, msg Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

type memCustomers struct {
	mu   sync.Mutex
	docs []models.Customer
	err  error
}

func (s *memCustomers) FindByID(_ context.Context, id int) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, c := range s.docs {
		if c.CustomerID == id {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (s *memCustomers) FindByEmail(_ context.Context, email string) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, c := range s.docs {
		if c.Email == strings.ToLower(email) {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (s *memCustomers) Insert(_ context.Context, c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.docs {
		if existing.Email == c.Email || existing.CustomerID == c.CustomerID {
			return errDuplicate
		}
	}
	c.ID = primitive.NewObjectID()
	s.docs = append(s.docs, *c)
	return nil
}

func (s *memCustomers) ClaimGuest(_ context.Context, id int, name, hash, phone string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].CustomerID == id && s.docs[i].Password == "" {
			s.docs[i].Name = name
			s.docs[i].Password = hash
			if phone != "" {
				s.docs[i].Phone = phone
			}
			return true, nil
		}
	}
	return false, nil
}

func (s *memCustomers) UpdateProfilePicture(_ context.Context, id int, url string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].CustomerID == id {
			s.docs[i].ProfilePicture = &url
			return true, nil
		}
	}
	return false, nil
}

type memEmployees struct {
	mu   sync.Mutex
	docs []models.Employee
}

func (s *memEmployees) find(match func(e *models.Employee) bool) *models.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.docs {
		if match(&e) {
			e := e
			return &e
		}
	}
	return nil
}

func (s *memEmployees) FindByID(_ context.Context, id int) (*models.Employee, error) {
	return s.find(func(e *models.Employee) bool { return e.EmployeeID == id }), nil
}

func (s *memEmployees) FindByEmail(_ context.Context, email string) (*models.Employee, error) {
	return s.find(func(e *models.Employee) bool { return e.Email == strings.ToLower(email) }), nil
}

func (s *memEmployees) FindByCode(_ context.Context, code string) (*models.Employee, error) {
	return s.find(func(e *models.Employee) bool { return e.EmployeeCode != nil && *e.EmployeeCode == code }), nil
}

func (s *memEmployees) Insert(_ context.Context, e *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, *e)
	return nil
}

func (s *memEmployees) update(id int, fn func(e *models.Employee) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].EmployeeID == id {
			return fn(&s.docs[i])
		}
	}
	return false
}

func (s *memEmployees) CompleteRegistration(_ context.Context, id int, hash string) (bool, error) {
	return s.update(id, func(e *models.Employee) bool {
		if e.EmployeeCode == nil {
			return false
		}
		e.Password = &hash
		e.EmployeeCode = nil
		return true
	}), nil
}

func (s *memEmployees) ListBySalon(_ context.Context, salonID int) ([]models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Employee{}
	for _, e := range s.docs {
		if e.SalonID == salonID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memEmployees) UpdateSpecialties(_ context.Context, id int, sp []models.Specialty) (bool, error) {
	return s.update(id, func(e *models.Employee) bool { e.Specialties = sp; return true }), nil
}

func (s *memEmployees) UpdateProfilePicture(_ context.Context, id int, url string) (bool, error) {
	return s.update(id, func(e *models.Employee) bool { e.ProfilePicture = &url; return true }), nil
}

func (s *memEmployees) Delete(_ context.Context, salonID, id int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.docs {
		if e.EmployeeID == id && e.SalonID == salonID {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type memBusinesses struct {
	mu   sync.Mutex
	docs []models.Business
}

func (s *memBusinesses) FindByID(_ context.Context, id int) (*models.Business, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.docs {
		if b.SalonID == id {
			b := b
			return &b, nil
		}
	}
	return nil, nil
}

func (s *memBusinesses) FindByEmail(_ context.Context, email string) (*models.Business, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.docs {
		if b.Email == email {
			b := b
			return &b, nil
		}
	}
	return nil, nil
}

func (s *memBusinesses) Insert(_ context.Context, b *models.Business) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, *b)
	return nil
}

func (s *memBusinesses) List(_ context.Context, q string) ([]models.Business, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Business{}
	for _, b := range s.docs {
		if q == "" || strings.Contains(strings.ToLower(b.BusinessName), strings.ToLower(q)) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memBusinesses) Update(_ context.Context, id int, req models.BusinessUpdateRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].SalonID != id {
			continue
		}
		if req.BusinessName != nil {
			s.docs[i].BusinessName = *req.BusinessName
		}
		if req.Description != nil {
			s.docs[i].Description = *req.Description
		}
		if req.BusinessHours != nil {
			s.docs[i].BusinessHours = req.BusinessHours
		}
		return true, nil
	}
	return false, nil
}

func (s *memBusinesses) UpdateRating(_ context.Context, id int, rating float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].SalonID == id {
			s.docs[i].Rating = rating
		}
	}
	return nil
}

func (s *memBusinesses) rating(id int) float64 {
	b, _ := s.FindByID(context.Background(), id)
	return b.Rating
}

// memAppointments enforces the (employeeId, date, time) unique index like the real collection
func slotOf(a *models.Appointment) models.Slot {
	return models.Slot{EmployeeID: a.EmployeeID, Date: a.Date, Time: a.Time}
}

type memAppointments struct {
	mu   sync.Mutex
	docs []models.Appointment
}

func (s *memAppointments) snapshot() []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Appointment(nil), s.docs...)
}

func (s *memAppointments) restore(docs []models.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = docs
}

func (s *memAppointments) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

func (s *memAppointments) find(match func(a *models.Appointment) bool) *models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.docs {
		if match(&a) {
			a := a
			return &a
		}
	}
	return nil
}

func (s *memAppointments) FindBySlot(_ context.Context, slot models.Slot) (*models.Appointment, error) {
	return s.find(func(a *models.Appointment) bool { return slotOf(a) == slot }), nil
}

func (s *memAppointments) FindByAppointmentID(_ context.Context, id int) (*models.Appointment, error) {
	return s.find(func(a *models.Appointment) bool { return a.AppointmentID == id }), nil
}

func (s *memAppointments) FindByObjectID(_ context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	return s.find(func(a *models.Appointment) bool { return a.ID == id }), nil
}

func (s *memAppointments) Insert(_ context.Context, a *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.docs {
		if slotOf(&existing) == slotOf(a) {
			return errDuplicate
		}
	}
	a.ID = primitive.NewObjectID()
	s.docs = append(s.docs, *a)
	return nil
}

func (s *memAppointments) DeleteByAppointmentID(_ context.Context, id int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.docs {
		if a.AppointmentID == id {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *memAppointments) list(match func(a *models.Appointment) bool) []models.AppointmentView {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.AppointmentView{}
	for _, a := range s.docs {
		if match(&a) {
			out = append(out, models.AppointmentView{Appointment: a})
		}
	}
	return out
}

func (s *memAppointments) ListByCustomer(_ context.Context, id int) ([]models.AppointmentView, error) {
	return s.list(func(a *models.Appointment) bool { return a.CustomerID == id }), nil
}

func (s *memAppointments) ListByEmployee(_ context.Context, id int) ([]models.AppointmentView, error) {
	return s.list(func(a *models.Appointment) bool { return a.EmployeeID == id }), nil
}

func (s *memAppointments) ListByDate(_ context.Context, date string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range s.docs {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memAppointments) BookedTimes(_ context.Context, employeeID int, date string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	times := []string{}
	for _, a := range s.docs {
		if a.EmployeeID == employeeID && a.Date == date {
			times = append(times, a.Time)
		}
	}
	sort.Strings(times)
	return times, nil
}

type memPayments struct {
	mu        sync.Mutex
	docs      []models.Payment
	insertErr error
}

func (s *memPayments) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

func (s *memPayments) Insert(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	p.ID = primitive.NewObjectID()
	s.docs = append(s.docs, *p)
	return nil
}

func (s *memPayments) FindByAppointment(_ context.Context, ref primitive.ObjectID) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.docs {
		if p.AppointmentID == ref {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (s *memPayments) Upsert(_ context.Context, p *models.Payment) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].AppointmentID == p.AppointmentID {
			s.docs[i].Cost = p.Cost
			s.docs[i].Paid = p.Paid
			return false, nil
		}
	}
	p.ID = primitive.NewObjectID()
	s.docs = append(s.docs, *p)
	return true, nil
}

type memReviews struct {
	mu   sync.Mutex
	docs []models.Review
}

func (s *memReviews) Exists(_ context.Context, salonID, customerID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.docs {
		if r.SalonID == salonID && r.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memReviews) Insert(_ context.Context, r *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, *r)
	return nil
}

func (s *memReviews) ListBySalon(_ context.Context, salonID int) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Review{}
	for _, r := range s.docs {
		if r.SalonID == salonID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memReviews) Ratings(ctx context.Context, salonID int) ([]int, error) {
	reviews, _ := s.ListBySalon(ctx, salonID)
	out := make([]int, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, r.Rating)
	}
	return out, nil
}

type memSurveys struct {
	mu   sync.Mutex
	docs map[int]models.CustomerSurvey
}

func (s *memSurveys) Upsert(_ context.Context, survey *models.CustomerSurvey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs == nil {
		s.docs = make(map[int]models.CustomerSurvey)
	}
	s.docs[survey.CustomerID] = *survey
	return nil
}

func (s *memSurveys) FindByCustomer(_ context.Context, id int) (*models.CustomerSurvey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	survey, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	return &survey, nil
}

type memSchedules struct {
	mu   sync.Mutex
	docs map[[2]int]models.EmployeeSchedule
}

func (s *memSchedules) Upsert(_ context.Context, sc *models.EmployeeSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs == nil {
		s.docs = make(map[[2]int]models.EmployeeSchedule)
	}
	s.docs[[2]int{sc.SalonID, sc.EmployeeID}] = *sc
	return nil
}

func (s *memSchedules) Find(_ context.Context, salonID, employeeID int) (*models.EmployeeSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.docs[[2]int{salonID, employeeID}]
	if !ok {
		return nil, nil
	}
	return &sc, nil
}

type memNotifications struct {
	mu   sync.Mutex
	docs []models.Notification
}

func (s *memNotifications) Insert(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, *n)
	return nil
}

// fixture bundles every fake so tests can seed and inspect state
type fixture struct {
	customers     *memCustomers
	employees     *memEmployees
	businesses    *memBusinesses
	appointments  *memAppointments
	payments      *memPayments
	reviews       *memReviews
	surveys       *memSurveys
	schedules     *memSchedules
	notifications *memNotifications
	ids           *memAllocator
	notifier      *recordingNotifier
}

func newFixture() *fixture {
	return &fixture{
		customers:     &memCustomers{},
		employees:     &memEmployees{},
		businesses:    &memBusinesses{},
		appointments:  &memAppointments{},
		payments:      &memPayments{},
		reviews:       &memReviews{},
		surveys:       &memSurveys{},
		schedules:     &memSchedules{},
		notifications: &memNotifications{},
		ids:           newMemAllocator(),
		notifier:      &recordingNotifier{},
	}
}

func (f *fixture) stores() Stores {
	return Stores{
		Customers:     f.customers,
		Employees:     f.employees,
		Businesses:    f.businesses,
		Appointments:  f.appointments,
		Payments:      f.payments,
		Reviews:       f.reviews,
		Surveys:       f.surveys,
		Schedules:     f.schedules,
		Notifications: f.notifications,
	}
}
