package employee

import (
	"cmp"
	"slices"
	"strings"

	"github.com/aanand-mishra/employee-api/internal/types"
)

// TopEarnersLimit is the size of the top-earners ranking.
const TopEarnersLimit = 10

// Search returns the employees whose name contains fragment, ignoring case,
// in the order of all. An empty fragment matches everyone.
func Search(all []types.Employee, fragment string) []types.Employee {
	needle := strings.ToLower(fragment)
	matches := make([]types.Employee, 0, len(all))
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			matches = append(matches, e)
		}
	}
	return matches
}

// MaxSalary returns the highest salary in all, or 0 for an empty list.
func MaxSalary(all []types.Employee) int {
	if len(all) == 0 {
		return 0
	}
	highest := all[0].Salary
	for _, e := range all[1:] {
		highest = max(highest, e.Salary)
	}
	return highest
}

// TopEarners returns the names of the n best paid employees, highest first.
// Equal salaries keep their order from all. all is not modified.
func TopEarners(all []types.Employee, n int) []string {
	if n <= 0 {
		return []string{}
	}

	sorted := slices.Clone(all)
	slices.SortStableFunc(sorted, func(a, b types.Employee) int {
		return cmp.Compare(b.Salary, a.Salary)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	names := make([]string, 0, len(sorted))
	for _, e := range sorted {
		names = append(names, e.Name)
	}
	return names
}
