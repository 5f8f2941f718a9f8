package board

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/fremantleline/fremantleline/pkg/util"
)

// Filter keeps the records matching expression, e.g. `Line == "Fremantle Line" && Status != "Cancelled"`.
// An empty expression keeps everything.
func Filter(records []DepartureRecord, expression string) ([]DepartureRecord, error) {
	if expression == "" {
		return records, nil
	}

	program, err := expr.Compile(expression, expr.Env(DepartureRecord{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}

	filtered := make([]DepartureRecord, len(records))
	copy(filtered, records)

	var runErr error
	util.InPlaceFilter(&filtered, func(record DepartureRecord) bool {
		matches, err := runFilter(program, record)
		if err != nil && runErr == nil {
			runErr = err
		}

		return matches
	})
	if runErr != nil {
		return nil, runErr
	}

	return filtered, nil
}

func runFilter(program *vm.Program, record DepartureRecord) (bool, error) {
	output, err := expr.Run(program, record)
	if err != nil {
		return false, fmt.Errorf("filter failed: %w", err)
	}

	return output.(bool), nil
}
