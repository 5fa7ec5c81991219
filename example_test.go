package taskrunner_test

import (
	"errors"
	"fmt"

	"github.com/joeycumines/go-taskrunner"
)

// printView writes a plain transcript of every update, in place of the
// terminal view, to keep the example output stable.
type printView struct{}

func (printView) Initialize([]string) {}

func (printView) Update(update taskrunner.TaskUpdate) {
	switch change := update.Change.(type) {
	case taskrunner.TaskMessage:
		fmt.Printf(`%s: %s`, update.TaskName, string(change))
	case taskrunner.Status:
		switch change.Kind {
		case taskrunner.StatusFinished:
			if change.Answer != nil {
				fmt.Printf("%s: Finished: %s\n", update.TaskName, *change.Answer)
			} else {
				fmt.Printf("%s: Finished\n", update.TaskName)
			}
		case taskrunner.StatusFailed:
			fmt.Printf("%s: Failed: %s\n", update.TaskName, change.Err)
		default:
			fmt.Printf("%s: %s\n", update.TaskName, change.Kind)
		}
	}
}

func Example() {
	tasks := []taskrunner.Task{
		&simpleTask{name: `alpha`, run: func(logger taskrunner.Logger) (*string, error) {
			logger.Log(`crunching`)
			answer := `42`
			return &answer, nil
		}},
		&simpleTask{name: `bravo`, run: func(taskrunner.Logger) (*string, error) {
			return nil, errors.New(`input missing`)
		}},
	}

	runner := taskrunner.TaskRunner{ThreadCount: 1}
	runner.Run(tasks, printView{})

	// Output:
	// alpha: Running
	// alpha: crunching
	// alpha: Finished: 42
	// bravo: Running
	// bravo: Failed: input missing
}
