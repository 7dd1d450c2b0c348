/*
Package models defines the domain row types shared across packages.

Domain types (User, Course, Machine) mirror the store's column layout.
Report types (CoursePopularity, AdminEmails, ActiveStudent, MachineUsage)
are the typed results of the reports package; each exposes Row() []string
so presentation can stay in main.
*/
package models
