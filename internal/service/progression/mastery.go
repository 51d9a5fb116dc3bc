package progression

// UpdateMastery moves a 0..100 mastery score after one review: up by upStep
// on a correct answer, down by downStep on a miss. The input is clamped first
// and the result always stays in [0,100].
func UpdateMastery(current int, correct bool, upStep, downStep int) int {
	current = clamp(current, 0, 100)
	if correct {
		return min(100, current+upStep)
	}
	return max(0, current-downStep)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
