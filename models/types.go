package models

import "strconv"

// Operational status values for machines. Reports only ever filter on
// Active; the loader stores whatever the source files carry.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Domain types

type User struct {
	UCINetID   string
	FirstName  string
	MiddleName string
	LastName   string
}

type Course struct {
	CourseID string
	Title    string
	Quarter  string
}

type Machine struct {
	MachineID         string
	Hostname          string
	IPAddress         string
	OperationalStatus string
	Location          string
}

// Report row types. Each carries a Row method producing the field order
// the CLI prints (comma-joined, one row per line).

func (c Course) Row() []string {
	return []string{c.CourseID, c.Title, c.Quarter}
}

// CoursePopularity is one row of the popularCourse report: a course and
// the total number of usage records tied to its projects.
type CoursePopularity struct {
	CourseID string
	Title    string
	UseCount int64
}

func (c CoursePopularity) Row() []string {
	return []string{c.CourseID, c.Title, strconv.FormatInt(c.UseCount, 10)}
}

// AdminEmails is one row of the adminEmails report. Emails holds every
// address of the admin joined with ';'.
type AdminEmails struct {
	AdminUCINetID string
	FirstName     string
	MiddleName    string
	LastName      string
	Emails        string
}

func (a AdminEmails) Row() []string {
	return []string{a.AdminUCINetID, a.FirstName, a.MiddleName, a.LastName, a.Emails}
}

// ActiveStudent is one row of the activeStudent report.
type ActiveStudent struct {
	UCINetID   string
	FirstName  string
	MiddleName string
	LastName   string
}

func (s ActiveStudent) Row() []string {
	return []string{s.UCINetID, s.FirstName, s.MiddleName, s.LastName}
}

// MachineUsage is one row of the machineUsage report. UseCount is zero
// for machines with no usage under the course.
type MachineUsage struct {
	MachineID string
	Hostname  string
	IPAddress string
	UseCount  int64
}

func (m MachineUsage) Row() []string {
	return []string{m.MachineID, m.Hostname, m.IPAddress, strconv.FormatInt(m.UseCount, 10)}
}
