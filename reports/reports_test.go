package reports_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/icslabs/labtrack/db"
	"github.com/icslabs/labtrack/reports"
	"github.com/icslabs/labtrack/testutil"
)

// seedFixture builds the shared report dataset:
//
//	CS1 (p1), CS2 (p2), CS3 (p3)
//	five usage records under p1, five under p2, three under p3
//	m1 Active, m2 Inactive, m3 Active (unused)
func seedFixture(t *testing.T, s *db.Session) {
	t.Helper()

	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("student%d", i)
		testutil.SeedStudent(t, s, id, "First", "M", fmt.Sprintf("Last%d", i))
		testutil.SeedEmail(t, s, id, id+"@uci.edu")
	}

	testutil.SeedCourse(t, s, "CS1", "Intro", "Fall 2023")
	testutil.SeedCourse(t, s, "CS2", "Data Structures", "Fall 2023")
	testutil.SeedCourse(t, s, "CS3", "Databases", "Winter 2024")
	testutil.SeedProject(t, s, "p1", "Proj1", "", "CS1")
	testutil.SeedProject(t, s, "p2", "Proj2", "", "CS2")
	testutil.SeedProject(t, s, "p3", "Proj3", "", "CS3")

	testutil.SeedMachine(t, s, "m1", "host1", "10.0.0.1", "Active", "Lab A")
	testutil.SeedMachine(t, s, "m2", "host2", "10.0.0.2", "Inactive", "Lab A")
	testutil.SeedMachine(t, s, "m3", "host3", "10.0.0.3", "Active", "Lab B")

	// five per course for CS1 and CS2, three for CS3
	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("student%d", i)
		testutil.SeedUse(t, s, "p1", id, "m1", "2023-02-01", "2023-02-10")
		testutil.SeedUse(t, s, "p2", id, "m2", "2023-02-01", "2023-02-10")
	}
	for i := 1; i <= 3; i++ {
		testutil.SeedUse(t, s, "p3", fmt.Sprintf("student%d", i), "m1", "2023-03-01", "2023-03-05")
	}
}

func TestCoursesForStudent(t *testing.T) {
	s := testutil.SetupTestDB(t)
	seedFixture(t, s)
	r := reports.New(s)

	// student1 used m1 under p1 (CS1) and p3 (CS3), and m2 under p2 (CS2)
	rows, err := r.CoursesForStudent(context.Background(), "student1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 courses, got %d", len(rows))
	}
	for i, want := range []string{"CS1", "CS2", "CS3"} {
		if rows[i].CourseID != want {
			t.Errorf("row %d: expected %s, got %s", i, want, rows[i].CourseID)
		}
	}

	// student4 has no usage under CS3
	rows, err = r.CoursesForStudent(context.Background(), "student4")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Errorf("expected 2 courses for student4, got %d", len(rows))
	}
}

func TestMostPopularCourses(t *testing.T) {
	s := testutil.SetupTestDB(t)
	seedFixture(t, s)
	r := reports.New(s)

	// CS1 and CS2 tie at five records; course id descending breaks the
	// tie, and CS3 (three records) never makes the top two.
	rows, err := r.MostPopularCourses(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(rows))
	}
	if rows[0].CourseID != "CS2" || rows[1].CourseID != "CS1" {
		t.Errorf("expected CS2 then CS1, got %s then %s", rows[0].CourseID, rows[1].CourseID)
	}
	if rows[0].UseCount != 5 || rows[1].UseCount != 5 {
		t.Errorf("expected counts of 5, got %d and %d", rows[0].UseCount, rows[1].UseCount)
	}

	rows, err = r.MostPopularCourses(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[2].CourseID != "CS3" || rows[2].UseCount != 3 {
		t.Errorf("expected CS3 with 3 records last, got %+v", rows)
	}
}

func TestAdminsForMachine(t *testing.T) {
	s := testutil.SetupTestDB(t)
	r := reports.New(s)
	ctx := context.Background()

	testutil.SeedAdmin(t, s, "badmin", "Bob", "", "Admin")
	testutil.SeedEmail(t, s, "badmin", "bob@uci.edu")
	testutil.SeedEmail(t, s, "badmin", "bob2@uci.edu")
	testutil.SeedAdmin(t, s, "aadmin", "Ann", "", "Admin")
	testutil.SeedEmail(t, s, "aadmin", "ann@uci.edu")
	testutil.SeedMachine(t, s, "m1", "host1", "10.0.0.1", "Active", "Lab A")
	testutil.SeedMachine(t, s, "m2", "host2", "10.0.0.2", "Active", "Lab B")
	testutil.SeedManage(t, s, "badmin", "m1")
	testutil.SeedManage(t, s, "aadmin", "m1")
	testutil.SeedManage(t, s, "badmin", "m2")

	rows, err := r.AdminsForMachine(ctx, "m1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 admins, got %d", len(rows))
	}
	// ordered by admin id ascending
	if rows[0].AdminUCINetID != "aadmin" || rows[1].AdminUCINetID != "badmin" {
		t.Errorf("expected aadmin then badmin, got %s then %s", rows[0].AdminUCINetID, rows[1].AdminUCINetID)
	}
	if rows[0].Emails != "ann@uci.edu" {
		t.Errorf("unexpected emails for aadmin: %s", rows[0].Emails)
	}
	// both addresses joined with ';' in some order
	both := rows[1].Emails
	if both != "bob@uci.edu;bob2@uci.edu" && both != "bob2@uci.edu;bob@uci.edu" {
		t.Errorf("unexpected emails for badmin: %s", both)
	}

	rows, err = r.AdminsForMachine(ctx, "m2")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].AdminUCINetID != "badmin" {
		t.Errorf("expected only badmin for m2, got %+v", rows)
	}
}

func TestActiveStudents(t *testing.T) {
	s := testutil.SetupTestDB(t)
	seedFixture(t, s)
	r := reports.New(s)
	ctx := context.Background()

	// Within the window, m1 carries one CS1 record per student plus a
	// CS3 record for students 1-3. minUses=2 keeps exactly those three;
	// students 4 and 5 have a single qualifying record.
	rows, err := r.ActiveStudents(ctx, "m1", "2023-01-01", "2023-06-01", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 students, got %d", len(rows))
	}
	for i, want := range []string{"student1", "student2", "student3"} {
		if rows[i].UCINetID != want {
			t.Errorf("row %d: expected %s, got %s", i, want, rows[i].UCINetID)
		}
	}

	// m2 is Inactive: nobody qualifies regardless of record count
	rows, err = r.ActiveStudents(ctx, "m2", "2023-01-01", "2023-06-01", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no students on inactive machine, got %d", len(rows))
	}

	// a window excluding the usage dates yields nothing
	rows, err = r.ActiveStudents(ctx, "m1", "2024-01-01", "2024-06-01", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no students outside window, got %d", len(rows))
	}
}

func TestMachineUsageForCourse(t *testing.T) {
	s := testutil.SetupTestDB(t)
	seedFixture(t, s)
	r := reports.New(s)

	rows, err := r.MachineUsageForCourse(context.Background(), "CS1")
	if err != nil {
		t.Fatal(err)
	}
	// every machine appears, machine id descending, zero counts kept
	if len(rows) != 3 {
		t.Fatalf("expected all 3 machines, got %d", len(rows))
	}
	for i, want := range []string{"m3", "m2", "m1"} {
		if rows[i].MachineID != want {
			t.Errorf("row %d: expected %s, got %s", i, want, rows[i].MachineID)
		}
	}
	if rows[0].UseCount != 0 || rows[1].UseCount != 0 {
		t.Errorf("expected zero counts for m3 and m2, got %d and %d", rows[0].UseCount, rows[1].UseCount)
	}
	if rows[2].UseCount != 5 {
		t.Errorf("expected 5 CS1 records on m1, got %d", rows[2].UseCount)
	}
}
