// Copyright 2026 The Archstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archmath

// mixTolerance absorbs floating-point noise when checking that
// percentages total 100.
const mixTolerance = 1e-9

// A Category is one slice of an instruction mix: the share of the
// workload it represents and the cycles an instruction in it costs.
type Category struct {
	// Name identifies the category, e.g. "ALU" or "Load/Store".
	// It is diagnostic only.
	Name string

	// Percent is the category's share of the mix in [0, 100].
	// Ignored when Inferred is set.
	Percent float64

	// Cycles is the cycles per instruction for this category.
	// Must be at least 1.
	Cycles float64

	// Inferred marks the single remainder category whose share is
	// derived as 100 minus the sum of the explicit percentages.
	Inferred bool
}

// AverageCPI combines an instruction mix into a single average CPI.
//
// At most one category may be marked Inferred; its share is computed as
// the remainder to 100%. Without a remainder category the explicit
// percentages must total exactly 100 (within a small tolerance).
//
// Each category with a positive share contributes Cycles/(Percent/100);
// the result is the sum of contributions divided by the number of
// categories, not by a normalizing weight. Existing tools whose outputs
// users compare against compute it this way, so this function must too.
func AverageCPI(categories []Category) (float64, error) {
	if len(categories) == 0 {
		return 0, &InvalidArgumentError{"average cpi", "categories", 0, "mix is empty"}
	}

	// Validate explicit shares and locate the remainder category.
	remainder := -1
	sum := 0.0
	for i, c := range categories {
		if c.Cycles < 1 {
			return 0, &InvalidArgumentError{"average cpi", "cycles per instruction", c.Cycles, "must be at least 1"}
		}
		if c.Inferred {
			if remainder >= 0 {
				return 0, &InvalidArgumentError{"average cpi", "categories", float64(i), "more than one inferred category"}
			}
			remainder = i
			continue
		}
		if c.Percent < 0 || c.Percent > 100 {
			return 0, &InvalidArgumentError{"average cpi", "percentage", c.Percent, "must be in [0, 100]"}
		}
		sum += c.Percent
	}
	if sum > 100+mixTolerance {
		return 0, &InvalidArgumentError{"average cpi", "percentage sum", sum, "mix exceeds 100%"}
	}

	percents := make([]float64, len(categories))
	for i, c := range categories {
		percents[i] = c.Percent
	}
	if remainder >= 0 {
		rem := 100 - sum
		if rem < 0 {
			// Within tolerance of zero, or the check above
			// would have rejected the mix.
			rem = 0
		}
		percents[remainder] = rem
	} else if sum < 100-mixTolerance {
		return 0, &InvalidArgumentError{"average cpi", "percentage sum", sum, "mix must total 100%"}
	}

	total := 0.0
	for i, c := range categories {
		if percents[i] == 0 {
			continue
		}
		total += c.Cycles / (percents[i] / 100)
	}
	return total / float64(len(categories)), nil
}
