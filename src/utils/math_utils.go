package utils

// AbsInt64 returns the absolute value of an int64.
func AbsInt64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
