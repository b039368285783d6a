package services

const (
	MinBoardNumbers = 5
	MaxBoardNumbers = 8
	MinNumber       = 1
	MaxNumber       = 16
	WinningCount    = 3
)

func validateNumbers(nums []int, min, max int) *Error {
	if len(nums) < min || len(nums) > max {
		if min == max {
			return validationf("exactly %d numbers required, got %d", min, len(nums))
		}
		return validationf("between %d and %d numbers required, got %d", min, max, len(nums))
	}
	seen := make(map[int]bool, len(nums))
	for _, n := range nums {
		if n < MinNumber || n > MaxNumber {
			return validationf("number %d out of range [%d, %d]", n, MinNumber, MaxNumber)
		}
		if seen[n] {
			return validationf("duplicate number %d", n)
		}
		seen[n] = true
	}
	return nil
}

// ValidateBoardNumbers checks a playable selection: 5-8 distinct numbers in
// [1, 16].
func ValidateBoardNumbers(nums []int) *Error {
	return validateNumbers(nums, MinBoardNumbers, MaxBoardNumbers)
}

// ValidateWinningNumbers checks a draw: exactly 3 distinct numbers in [1, 16].
func ValidateWinningNumbers(nums []int) *Error {
	return validateNumbers(nums, WinningCount, WinningCount)
}

// containsAll reports whether every needle occurs in haystack.
func containsAll(haystack []int, needles []int) bool {
	set := make(map[int]bool, len(haystack))
	for _, n := range haystack {
		set[n] = true
	}
	for _, n := range needles {
		if !set[n] {
			return false
		}
	}
	return true
}
