package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/icslabs/labtrack/cliparse"
	"github.com/icslabs/labtrack/db"
	"github.com/icslabs/labtrack/importer"
	"github.com/icslabs/labtrack/ops"
	"github.com/icslabs/labtrack/reports"
)

func main() {
	cfg, rest, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	cmd, err := cliparse.ParseCommand(rest)
	if err != nil {
		var ue *cliparse.UsageError
		if errors.As(err, &ue) {
			fmt.Println(ue.Usage)
			os.Exit(1)
		}
		if errors.Is(err, cliparse.ErrNoCommand) {
			fmt.Println("Usage: labtrack <command> [parameters]")
			os.Exit(1)
		}
		fmt.Println("Invalid command")
		os.Exit(1)
	}

	ctx := context.Background()

	// Connectivity failure is fatal; no operation proceeds.
	session, err := db.Connect(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer session.Close()

	if err := run(ctx, session, cmd); err != nil {
		os.Exit(1)
	}
}

// run dispatches one command and prints its observable output: report
// rows comma-joined one per line, Success/Fail for mutations, and the
// headline count line for import.
func run(ctx context.Context, session *db.Session, cmd cliparse.Command) error {
	w := ops.New(session)
	r := reports.New(session)

	switch cmd.Name {
	case "import":
		if err := session.Reset(ctx); err != nil {
			slog.Error("schema reset failed", "error", err)
			fmt.Println("Fail")
			return err
		}
		sum, err := importer.LoadAll(ctx, session, importer.DirSource{Dir: cmd.Args[0]})
		if err != nil {
			slog.Error("bulk load failed", "error", err)
			fmt.Println("Fail")
			return err
		}
		fmt.Printf("%d,%d,%d\n", sum.Users, sum.Machines, sum.Courses)
		return nil

	case "insertStudent":
		return mutation(w.CreateStudent(ctx, cmd.Args[0], cmd.Args[1], cmd.Args[2], cmd.Args[3], cmd.Args[4]))
	case "addEmail":
		return mutation(w.AddEmail(ctx, cmd.Args[0], cmd.Args[1]))
	case "deleteStudent":
		return mutation(w.DeleteStudent(ctx, cmd.Args[0]))
	case "insertMachine":
		return mutation(w.CreateMachine(ctx, cmd.Args[0], cmd.Args[1], cmd.Args[2], cmd.Args[3], cmd.Args[4]))
	case "insertUse":
		return mutation(w.RecordUsage(ctx, cmd.Args[0], cmd.Args[1], cmd.Args[2], cmd.Args[3], cmd.Args[4]))
	case "updateCourse":
		return mutation(w.UpdateCourseTitle(ctx, cmd.Args[0], cmd.Args[1]))

	case "listCourse":
		rows, err := r.CoursesForStudent(ctx, cmd.Args[0])
		return report(rows, err)
	case "popularCourse":
		rows, err := r.MostPopularCourses(ctx, cmd.Int(0))
		return report(rows, err)
	case "adminEmails":
		rows, err := r.AdminsForMachine(ctx, cmd.Args[0])
		return report(rows, err)
	case "activeStudent":
		rows, err := r.ActiveStudents(ctx, cmd.Args[0], cmd.Args[2], cmd.Args[3], cmd.Int(1))
		return report(rows, err)
	case "machineUsage":
		rows, err := r.MachineUsageForCourse(ctx, cmd.Args[0])
		return report(rows, err)
	}
	// ParseCommand only returns declared names
	return fmt.Errorf("unhandled command %q", cmd.Name)
}

func mutation(err error) error {
	if err != nil {
		slog.Error("operation failed", "error", err)
		fmt.Println("Fail")
		return err
	}
	fmt.Println("Success")
	return nil
}

type rower interface {
	Row() []string
}

func report[T rower](rows []T, err error) error {
	if err != nil {
		slog.Error("query failed", "error", err)
		fmt.Println("Fail")
		return err
	}
	for _, row := range rows {
		fmt.Println(strings.Join(row.Row(), ","))
	}
	return nil
}
