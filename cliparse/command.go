package cliparse

import (
	"errors"
	"fmt"
	"strconv"
)

// Command is one validated subcommand invocation: the name and exactly
// the declared number of arguments.
type Command struct {
	Name string
	Args []string
}

// ErrNoCommand is returned when no subcommand was given at all.
var ErrNoCommand = errors.New("no command given")

// UsageError carries the usage line for a command invoked with the
// wrong argument count or an unparsable argument.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string { return e.Usage }

type commandSpec struct {
	arity   int
	usage   string
	intArgs []int // indexes of arguments that must parse as integers
}

var commands = map[string]commandSpec{
	"import":        {arity: 1, usage: "Usage: labtrack import [folderName]"},
	"insertStudent": {arity: 5, usage: "Usage: labtrack insertStudent [UCINetID] [email] [First] [Middle] [Last]"},
	"addEmail":      {arity: 2, usage: "Usage: labtrack addEmail [UCINetID] [email]"},
	"deleteStudent": {arity: 1, usage: "Usage: labtrack deleteStudent [UCINetID]"},
	"insertMachine": {arity: 5, usage: "Usage: labtrack insertMachine [MachineID] [hostname] [IPAddr] [status] [location]"},
	"insertUse":     {arity: 5, usage: "Usage: labtrack insertUse [ProjId] [UCINetID] [MachineID] [start] [end]"},
	"updateCourse":  {arity: 2, usage: "Usage: labtrack updateCourse [CourseId] [title]"},
	"listCourse":    {arity: 1, usage: "Usage: labtrack listCourse [UCINetID]"},
	"popularCourse": {arity: 1, usage: "Usage: labtrack popularCourse [N]", intArgs: []int{0}},
	"adminEmails":   {arity: 1, usage: "Usage: labtrack adminEmails [machineId]"},
	"activeStudent": {arity: 4, usage: "Usage: labtrack activeStudent [machineId] [N] [start] [end]", intArgs: []int{1}},
	"machineUsage":  {arity: 1, usage: "Usage: labtrack machineUsage [courseId]"},
}

// ParseCommand validates the subcommand name, its argument count, and
// any integer-typed arguments. Malformed input never reaches the store.
func ParseCommand(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, ErrNoCommand
	}
	name := args[0]
	spec, ok := commands[name]
	if !ok {
		return Command{}, fmt.Errorf("invalid command %q", name)
	}
	rest := args[1:]
	if len(rest) != spec.arity {
		return Command{}, &UsageError{Usage: spec.usage}
	}
	for _, i := range spec.intArgs {
		if _, err := strconv.Atoi(rest[i]); err != nil {
			return Command{}, &UsageError{Usage: spec.usage}
		}
	}
	return Command{Name: name, Args: rest}, nil
}

// Int returns argument i as an integer. ParseCommand already validated
// the declared integer arguments, so this only fails on programmer
// error.
func (c Command) Int(i int) int {
	n, err := strconv.Atoi(c.Args[i])
	if err != nil {
		panic(fmt.Sprintf("argument %d of %s not validated as int", i, c.Name))
	}
	return n
}
