package models

// Collection names. These are part of the wire contract shared with the web client's tooling.
const (
	CollectionBusiness          = "Business"
	CollectionCustomer          = "Customer"
	CollectionEmployee          = "Employee"
	CollectionAppointment       = "Appointment"
	CollectionPayment           = "Payment"
	CollectionReviews           = "Reviews"
	CollectionEmployeeSchedules = "EmployeeSchedules"
	CollectionCustomerSurvey    = "CustomerSurvey"
	CollectionNotifications     = "Notifications"
	CollectionCounters          = "Counters"
)

// Id sequences handed out by the identifier allocator
const (
	SequenceCustomer    = "customerId"
	SequenceEmployee    = "employeeId"
	SequenceAppointment = "appointmentId"
	SequenceSalon       = "salonId"
)

// BaseID is the first id of every sequence
const BaseID = 1000
